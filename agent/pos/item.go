package pos

import (
	"fmt"
	"strings"

	contractx "github.com/azka-labs/agent-gateway/agent/contract"
)

// Item is a validated cart line. Immutable once constructed.
type Item struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

func NewItem(name string, price float64, quantity int) (Item, error) {
	if strings.TrimSpace(name) == "" {
		return Item{}, fmt.Errorf("%w: name must not be empty", contractx.ErrValidation)
	}
	if price <= 0 {
		return Item{}, fmt.Errorf("%w: price must be greater than zero", contractx.ErrValidation)
	}
	if quantity <= 0 {
		return Item{}, fmt.Errorf("%w: quantity must be at least 1", contractx.ErrValidation)
	}
	return Item{Name: name, Price: price, Quantity: quantity}, nil
}

func (i Item) LineTotal() float64 {
	return i.Price * float64(i.Quantity)
}

var paymentMethods = map[string]struct{}{
	"upi":  {},
	"cash": {},
	"card": {},
}

// checkoutRecord validates a checkout before a receipt is emitted. It is
// discarded afterwards, never persisted.
type checkoutRecord struct {
	Method string
	Total  float64
}

func newCheckoutRecord(method string, total float64) (checkoutRecord, error) {
	normalized := strings.ToLower(strings.TrimSpace(method))
	if _, ok := paymentMethods[normalized]; !ok {
		return checkoutRecord{}, fmt.Errorf("%w: payment method must be one of: upi, cash, card", contractx.ErrValidation)
	}
	if total <= 0 {
		return checkoutRecord{}, fmt.Errorf("%w: total must be greater than zero", contractx.ErrValidation)
	}
	return checkoutRecord{Method: normalized, Total: total}, nil
}
