// Command storefront is an interactive GreenMarket shopping session against
// a running API server: browse and filter the catalog, manage a persisted
// cart, and check out.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/rogerio-castellano/greenmarket/internal/cart"
	"github.com/rogerio-castellano/greenmarket/internal/catalog"
	"github.com/rogerio-castellano/greenmarket/internal/checkout"
	"github.com/rogerio-castellano/greenmarket/internal/client"
	"github.com/rogerio-castellano/greenmarket/internal/config"
	"github.com/rogerio-castellano/greenmarket/internal/models"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	api := client.New(cfg.APIBaseURL)
	notify := cart.NotifierFunc(func(message string) {
		fmt.Println("»", message)
	})

	var storage cart.Storage
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatalf("Could not connect to Redis: %v", err)
		}
		defer rdb.Close()
		storage = cart.NewRedisStorage(rdb, ctx, "cart")
	} else {
		storage = cart.NewFileStorage(cfg.CartFile)
	}

	store := cart.NewStore(api, storage, notify)
	store.Load(ctx)

	fmt.Println("GreenMarket storefront. Type 'help' for commands.")
	printCart(store)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		args := strings.Fields(scanner.Text())
		if len(args) == 0 {
			continue
		}

		switch args[0] {
		case "products":
			showProducts(ctx, api, args[1:])
		case "categories":
			for _, c := range catalog.Categories(catalog.Load(ctx, api)) {
				fmt.Println(" ", c)
			}
		case "add":
			withID(args, func(id int) { store.Add(ctx, id) })
			printCart(store)
		case "qty":
			if len(args) != 3 {
				fmt.Println("usage: qty <product-id> <quantity>")
				continue
			}
			id, err1 := strconv.Atoi(args[1])
			qty, err2 := strconv.Atoi(args[2])
			if err1 != nil || err2 != nil {
				fmt.Println("usage: qty <product-id> <quantity>")
				continue
			}
			store.SetQuantity(ctx, id, qty)
			printCart(store)
		case "remove":
			withID(args, store.Remove)
			printCart(store)
		case "cart":
			printCart(store)
		case "checkout":
			runCheckout(ctx, api, storage, notify, scanner, cfg.ShippingFee)
			store.Load(ctx)
		case "help":
			printHelp()
		case "quit", "exit":
			return
		default:
			fmt.Printf("unknown command %q, type 'help'\n", args[0])
		}
	}
}

func withID(args []string, fn func(id int)) {
	if len(args) != 2 {
		fmt.Println("usage:", args[0], "<product-id>")
		return
	}
	id, err := strconv.Atoi(args[1])
	if err != nil {
		fmt.Println("usage:", args[0], "<product-id>")
		return
	}
	fn(id)
}

func showProducts(ctx context.Context, api *client.Client, args []string) {
	category := catalog.CategoryAll
	maxPrice := 10000.0
	if len(args) > 0 {
		category = args[0]
	}
	if len(args) > 1 {
		if p, err := strconv.ParseFloat(args[1], 64); err == nil {
			maxPrice = p
		}
	}

	products := catalog.Filter(catalog.Load(ctx, api), category, maxPrice)
	if len(products) == 0 {
		fmt.Println("No products found.")
		return
	}
	for _, p := range products {
		stock := fmt.Sprintf("%d in stock", p.Stock)
		if !p.InStock() {
			stock = "Out of stock"
		}
		fmt.Printf("  [%d] %-28s ₹%-9.2f %-10s %s\n", p.ID, p.Name, p.Price, p.Category, stock)
	}
}

func printCart(store *cart.Store) {
	items := store.Items()
	if len(items) == 0 {
		fmt.Println("Your cart is empty.")
		return
	}
	for _, item := range items {
		fmt.Printf("  [%d] %-28s %d / %d × ₹%.2f\n", item.ID, item.Name, item.Quantity, item.MaxStock, item.Price)
	}
	fmt.Printf("  %d items, total ₹%.2f\n", store.Count(), store.Total())
}

func runCheckout(ctx context.Context, api *client.Client, storage cart.Storage, notify cart.Notifier, scanner *bufio.Scanner, shipping float64) {
	o := checkout.New(api, storage, notify, shipping)

	summary, err := o.Begin(ctx)
	switch {
	case errors.Is(err, checkout.ErrEmptyCart):
		fmt.Println("Your cart is empty.")
		return
	case errors.Is(err, checkout.ErrCartAdjusted):
		// corrected cart persisted; user reviews it from the main loop
		return
	case err != nil:
		fmt.Println("Error verifying your cart. Please try again.")
		return
	}

	fmt.Println("Order summary:")
	for _, item := range summary.Items {
		fmt.Printf("  %-28s %d × ₹%.2f = ₹%.2f\n", item.Name, item.Quantity, item.Price, item.Subtotal())
	}
	fmt.Printf("  Subtotal: ₹%.2f\n  Shipping: ₹%.2f\n  Total:    ₹%.2f\n",
		summary.Subtotal, summary.Shipping, summary.Total)

	info, ok := promptPayment(scanner)
	if !ok {
		fmt.Println("Checkout cancelled.")
		return
	}

	confirmation, err := o.PlaceOrder(ctx, info)
	if err != nil {
		fmt.Printf("Payment failed: %v\n", err)
		return
	}

	fmt.Printf("Order #%d confirmed (%s) at %s. Total ₹%.2f.\nThank you for your purchase!\n",
		confirmation.OrderID, confirmation.Reference, confirmation.Timestamp, confirmation.Total)
}

func promptPayment(scanner *bufio.Scanner) (models.PaymentInfo, bool) {
	method := prompt(scanner, "Payment method (upi/card/cod): ")
	switch models.PaymentMethod(method) {
	case models.PaymentUPI:
		return models.UPIInfo{
			UPIID:   prompt(scanner, "UPI ID: "),
			UPIName: prompt(scanner, "Name: "),
		}, true
	case models.PaymentCard:
		return models.CardInfo{
			CardNumber: strings.ReplaceAll(prompt(scanner, "Card number: "), " ", ""),
			Expiry:     prompt(scanner, "Expiry (MM/YY): "),
			CVV:        prompt(scanner, "CVV: "),
			CardName:   prompt(scanner, "Name on card: "),
		}, true
	case models.PaymentCOD:
		return models.CODInfo{
			Address: prompt(scanner, "Delivery address: "),
			Phone:   prompt(scanner, "Phone: "),
		}, true
	}
	fmt.Println("Please select a payment method")
	return nil, false
}

func prompt(scanner *bufio.Scanner, label string) string {
	fmt.Print(label)
	if !scanner.Scan() {
		return ""
	}
	return strings.TrimSpace(scanner.Text())
}

func printHelp() {
	fmt.Println(`Commands:
  products [category] [max-price]  list the catalog, optionally filtered
  categories                       list available categories
  add <id>                         add one unit of a product to the cart
  qty <id> <n>                     set a cart line's quantity
  remove <id>                      remove a product from the cart
  cart                             show the cart
  checkout                         verify the cart and place an order
  quit                             leave`)
}
