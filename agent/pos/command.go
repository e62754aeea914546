package pos

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

type IntentKind string

const (
	IntentAddItem      IntentKind = "add_item"
	IntentCheckout     IntentKind = "checkout"
	IntentViewCart     IntentKind = "view_cart"
	IntentClearCart    IntentKind = "clear_cart"
	IntentUnrecognized IntentKind = "unrecognized"
)

// Intent is the parsed meaning of a raw command, one of a fixed closed set.
type Intent struct {
	Kind     IntentKind
	Name     string
	Price    float64
	Quantity int
	Method   string
	Help     string
}

const helpText = `🛒 POS System Commands:

Add Items:
• add <item> <price> <quantity> - e.g., "add milk 40 2"
• add item: <name>, qty=<num>, price=<amount> - e.g., "add item: milk, qty=2, price=40"

Cart Operations:
• total or cart - View cart summary
• clear or empty - Empty the cart

Checkout:
• checkout <method> - e.g., "checkout upi", "checkout cash", "checkout card"
• checkout with <method> - e.g., "checkout with upi"

Try: "add apple 50 3" 🎯`

// Digit classes are enforced in the patterns, so captured price/quantity
// tokens always parse as numbers.
var (
	positionalAddPattern = regexp.MustCompile(`add\s+(\w+)\s+(\d+(?:\.\d+)?)\s+(\d+)`)
	labeledAddPattern    = regexp.MustCompile(`add\s+item[:\s]+(\w+)[,\s]+(?:qty=)?(\d+)[,\s]+(?:price=)?(\d+(?:\.\d+)?)`)
	checkoutPattern      = regexp.MustCompile(`checkout\s+(?:with\s+)?(\w+)`)
)

// commandMatchers is the command grammar: an explicit priority list evaluated
// in fixed order, first match wins. Matching is substring based, not a
// full-string grammar, so a command embedded in extra words still matches.
var commandMatchers = []func(string) (Intent, bool){
	matchAdd(positionalAddPattern),
	matchAdd(labeledAddPattern),
	matchCheckout,
	matchViewCart,
	matchClearCart,
}

// Interpret parses a raw command into an Intent. It never fails; unparseable
// input yields IntentUnrecognized carrying the help text.
func Interpret(raw string) Intent {
	message := strings.ToLower(strings.TrimSpace(raw))
	for _, match := range commandMatchers {
		if intent, ok := match(message); ok {
			return intent
		}
	}
	return Intent{Kind: IntentUnrecognized, Help: helpText}
}

// matchAdd builds the matcher for one add-item surface form. Group ordering
// is decided by the presence of "qty=" anywhere in the message, not by which
// pattern matched. That is heuristic, but it is the documented precedence and
// is preserved as is.
func matchAdd(pattern *regexp.Regexp) func(string) (Intent, bool) {
	return func(message string) (Intent, bool) {
		groups := pattern.FindStringSubmatch(message)
		if groups == nil {
			return Intent{}, false
		}

		var name, rawPrice, rawQty string
		if strings.Contains(message, "qty=") {
			name, rawQty, rawPrice = groups[1], groups[2], groups[3]
		} else {
			name, rawPrice, rawQty = groups[1], groups[2], groups[3]
		}

		price, _ := strconv.ParseFloat(rawPrice, 64)
		quantity, _ := strconv.Atoi(rawQty)
		return Intent{Kind: IntentAddItem, Name: name, Price: price, Quantity: quantity}, true
	}
}

func matchCheckout(message string) (Intent, bool) {
	groups := checkoutPattern.FindStringSubmatch(message)
	if groups == nil {
		return Intent{}, false
	}
	return Intent{Kind: IntentCheckout, Method: groups[1]}, true
}

func matchViewCart(message string) (Intent, bool) {
	if strings.Contains(message, "total") || strings.Contains(message, "cart") {
		return Intent{Kind: IntentViewCart}, true
	}
	return Intent{}, false
}

func matchClearCart(message string) (Intent, bool) {
	if strings.Contains(message, "clear") || strings.Contains(message, "empty") {
		return Intent{Kind: IntentClearCart}, true
	}
	return Intent{}, false
}

// HandleCommand interprets raw text and applies it to the cart. Validation
// failures come back as user-visible strings, never as errors.
func (e *Engine) HandleCommand(raw string) string {
	intent := Interpret(raw)
	switch intent.Kind {
	case IntentAddItem:
		msg, err := e.AddItem(intent.Name, intent.Price, intent.Quantity)
		if err != nil {
			return fmt.Sprintf("❌ Error adding item: %v", err)
		}
		return msg
	case IntentCheckout:
		receipt, err := e.Checkout(intent.Method)
		if err != nil {
			return fmt.Sprintf("❌ Checkout failed: %v", err)
		}
		return receipt
	case IntentViewCart:
		return e.CartSummary()
	case IntentClearCart:
		e.Clear()
		return "🗑️ Cart cleared successfully!"
	default:
		return intent.Help
	}
}
