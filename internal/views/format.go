package views

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/dmitrymomot/flightdesk/pkg/flightapi"
)

// Locale is used for number formatting.
var Locale = language.Spanish

const (
	dateTimeLayout = "02/01/2006 15:04"
	timeLayout     = "15:04"
)

// Money formats an amount with Locale separators, e.g. "$10,50".
func Money(v float64) string {
	// Printers are not safe for concurrent use.
	return message.NewPrinter(Locale).Sprintf("$%.2f", v)
}

// DateTime formats an API timestamp. Unparsable values are returned as is.
func DateTime(v string) string {
	return formatTime(v, dateTimeLayout)
}

// Clock formats the time of day of an API timestamp.
func Clock(v string) string {
	return formatTime(v, timeLayout)
}

func formatTime(v, layout string) string {
	t := flightapi.ParseTime(v)
	if t.IsZero() {
		return v
	}
	return t.Format(layout)
}

var categoryLabels = map[string]string{
	flightapi.CategoryEconomy:  "Económica",
	flightapi.CategoryBusiness: "Business",
	flightapi.CategoryFirst:    "Primera Clase",
}

// Category returns the display name of a seat category.
func Category(c string) string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return c
}
