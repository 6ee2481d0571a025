package models

// CartLineItem is one cart entry, keyed by product id. Price is a snapshot
// taken when the item was first added and is not refreshed afterwards.
// MaxStock is the last stock value observed for the product; it is advisory
// only and is refreshed by reconciliation and quantity updates.
type CartLineItem struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Image    string  `json:"image"`
	MaxStock int     `json:"maxStock"`
}

// Subtotal returns price times quantity for this line.
func (li CartLineItem) Subtotal() float64 {
	return li.Price * float64(li.Quantity)
}
