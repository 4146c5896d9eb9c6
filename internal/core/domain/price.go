package domain

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	crore = 10000000
	lakh  = 100000
)

var pricePrinter = message.NewPrinter(language.English)

// FormatPrice - подпись цены для карточки объекта (₹, крор и лакх)
func FormatPrice(price int64) string {
	switch {
	case price >= crore:
		return fmt.Sprintf("₹%.1f Cr", float64(price)/crore)
	case price >= lakh:
		return fmt.Sprintf("₹%.1f Lakh", float64(price)/lakh)
	}
	return pricePrinter.Sprintf("₹ %d", price)
}
