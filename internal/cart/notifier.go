package cart

import "log"

// Notifier surfaces transient, user-visible notices ("added to cart",
// "out of stock"). Failures in this package never propagate as errors to
// the user; they become notices.
type Notifier interface {
	Notify(message string)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(message string)

func (f NotifierFunc) Notify(message string) { f(message) }

// LogNotifier writes notices to the standard logger.
type LogNotifier struct{}

func (LogNotifier) Notify(message string) {
	log.Println(message)
}
