package analysis

import (
	"errors"
	"net/url"
	"strings"
)

// ErrNoHerbs is returned when an order is built from an empty cart.
var ErrNoHerbs = errors.New("cart is empty")

const orderGreeting = "Hello! I'd like to place an order for the following Ayurvedic herbs from AyurConnect AI:\n\n"

// WhatsAppOrderText is the pre-filled message listing the herbs by name.
func WhatsAppOrderText(herbs []HerbSuggestion) string {
	var b strings.Builder
	b.WriteString(orderGreeting)
	for i, h := range herbs {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("- " + h.Name)
	}
	return b.String()
}

// WhatsAppOrderURL builds a wa.me deep link for the given number. Non digit
// characters in number are ignored.
func WhatsAppOrderURL(number string, herbs []HerbSuggestion) (string, error) {
	if len(herbs) == 0 {
		return "", ErrNoHerbs
	}
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, number)
	if digits == "" {
		return "", NewValidationError("number", "must contain digits")
	}
	return "https://wa.me/" + digits + "?text=" + strings.ReplaceAll(url.QueryEscape(WhatsAppOrderText(herbs)), "+", "%20"), nil
}
