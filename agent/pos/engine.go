package pos

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	contractx "github.com/azka-labs/agent-gateway/agent/contract"
)

const emptyCartMessage = "🛒 Your cart is empty!"

// Engine owns the cart. There is deliberately no locking: the deployment
// model is a single shared till per process, and interleaved requests mutate
// the same cart. The engine is injected wherever it is needed so a
// per-session instance stays possible.
type Engine struct {
	cart []Item
}

func NewEngine() *Engine {
	return &Engine{}
}

// AddItem validates and appends one line to the cart. The cart is unchanged
// when validation fails.
func (e *Engine) AddItem(name string, price float64, quantity int) (string, error) {
	item, err := NewItem(name, price, quantity)
	if err != nil {
		return "", err
	}
	e.cart = append(e.cart, item)
	return fmt.Sprintf("✅ Added %d x %s (%.2f) to cart.\n🛒 Current total: %.2f\n📦 Items in cart: %d",
		quantity, name, price, e.Total(), len(e.cart)), nil
}

// Total is recomputed from the cart on every call, never cached.
func (e *Engine) Total() float64 {
	var total float64
	for _, item := range e.cart {
		total += item.LineTotal()
	}
	return total
}

func (e *Engine) ItemCount() int {
	return len(e.cart)
}

func (e *Engine) CartSummary() string {
	if len(e.cart) == 0 {
		return emptyCartMessage
	}

	var b strings.Builder
	b.WriteString("🛒 Cart Summary:\n")
	for i, item := range e.cart {
		fmt.Fprintf(&b, "%d. %s x%d @ %.2f = %.2f\n", i+1, item.Name, item.Quantity, item.Price, item.LineTotal())
	}
	fmt.Fprintf(&b, "\nTotal: %.2f", e.Total())
	return b.String()
}

// Checkout validates the payment method against the cart as it stands,
// renders the receipt, then empties the cart. The receipt must reflect the
// cart state at commit time, so rendering happens before the clear. On any
// failure the cart is unchanged.
func (e *Engine) Checkout(method string) (string, error) {
	if len(e.cart) == 0 {
		return "", fmt.Errorf("%w: cannot checkout, cart is empty", contractx.ErrValidation)
	}

	record, err := newCheckoutRecord(method, e.Total())
	if err != nil {
		return "", err
	}

	itemCount := len(e.cart)
	var b strings.Builder
	b.WriteString("🧾 RECEIPT\n")
	b.WriteString(strings.Repeat("=", 30) + "\n")
	for i, item := range e.cart {
		fmt.Fprintf(&b, "%d. %s x%d @ %.2f = %.2f\n", i+1, item.Name, item.Quantity, item.Price, item.LineTotal())
	}
	b.WriteString(strings.Repeat("=", 30) + "\n")
	fmt.Fprintf(&b, "💰 TOTAL: %.2f\n", record.Total)
	fmt.Fprintf(&b, "💳 Payment: %s\n", record.Method)
	fmt.Fprintf(&b, "🧾 Txn: %s\n", uuid.NewString())
	b.WriteString("✅ Transaction Successful!\n")
	fmt.Fprintf(&b, "📦 %d item(s) purchased\n", itemCount)
	b.WriteString("Thank you for your purchase! 🎉")

	e.cart = nil
	return b.String(), nil
}

// Clear unconditionally empties the cart.
func (e *Engine) Clear() {
	e.cart = nil
}

// CartLine is a transport-facing snapshot of one cart line.
type CartLine struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Total    float64 `json:"total"`
}

func (e *Engine) CartLines() []CartLine {
	lines := make([]CartLine, 0, len(e.cart))
	for _, item := range e.cart {
		lines = append(lines, CartLine{
			Name:     item.Name,
			Price:    item.Price,
			Quantity: item.Quantity,
			Total:    item.LineTotal(),
		})
	}
	return lines
}
