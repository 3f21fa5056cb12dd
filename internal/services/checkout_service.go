package services

import (
	"net/url"
	"strconv"
	"strings"

	"jeetech/internal/repos"

	"github.com/shopspring/decimal"
)

// CheckoutService turns the cart into a WhatsApp order message. There is
// no order persistence: the cart itself is the order until the shop
// confirms it over chat.
type CheckoutService struct {
	Carts  *repos.CartRepo
	Number string // shop's WhatsApp number, digits only
}

func NewCheckoutService(carts *repos.CartRepo, number string) *CheckoutService {
	return &CheckoutService{Carts: carts, Number: number}
}

// Message renders the order text:
//
//	Order Request:
//	2x Wireless Earbuds = ₹2998
//	Total = ₹2998
//
// Amounts drop the fractional part when integral, otherwise round to two
// places.
func Message(lines []repos.CartLine) string {
	out := []string{"Order Request:"}
	total := decimal.Zero
	for _, l := range lines {
		lt := l.LineTotal()
		total = total.Add(lt)
		out = append(out, strconv.Itoa(l.Quantity)+"x "+l.ProductName+" = ₹"+FormatAmount(lt))
	}
	out = append(out, "Total = ₹"+FormatAmount(total))
	return strings.Join(out, "\n")
}

// FormatAmount elides the fractional part of integral values ("30", not
// "30.00") and rounds everything else half away from zero to two places.
func FormatAmount(d decimal.Decimal) string {
	if d.IsInteger() {
		return d.Truncate(0).String()
	}
	return d.Round(2).String()
}

// Link builds the wa.me URL carrying the user's cart as an order message.
func (s *CheckoutService) Link(userID string) (string, error) {
	lines, err := s.Carts.Lines(userID)
	if err != nil {
		return "", err
	}
	if len(lines) == 0 {
		return "", ErrEmptyCart
	}
	return "https://wa.me/" + s.Number + "?text=" + url.QueryEscape(Message(lines)), nil
}
