package adapters

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/finance-tracker/lucapp/internal/application/adapter"
)

var spanishMonths = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

var shortSpanishMonths = [...]string{
	"ene", "feb", "mar", "abr", "may", "jun",
	"jul", "ago", "sept", "oct", "nov", "dic",
}

// currencySymbols holds the display symbol of the currencies the app is configured with.
// Unknown codes are rendered with the ISO code as prefix.
var currencySymbols = map[string]string{
	"CLP": "$",
	"USD": "US$",
	"EUR": "€",
	"ARS": "$",
	"MXN": "$",
}

// labelFormatter implements adapter.LabelFormatter with Spanish month names
// and locale-aware currency formatting.
type labelFormatter struct {
	printer *message.Printer
	symbol  string
	scale   int
}

// NewLabelFormatter creates a formatter for the given BCP 47 language tag and
// ISO 4217 currency code. Unknown values fall back to es-CL and CLP.
func NewLabelFormatter(lang, currencyCode string) adapter.LabelFormatter {
	tag, err := language.Parse(lang)
	if err != nil || strings.EqualFold(lang, "es") {
		tag = language.MustParse("es-CL")
	}

	code := strings.ToUpper(strings.TrimSpace(currencyCode))
	unit, err := currency.ParseISO(code)
	if err != nil {
		code = "CLP"
		unit = currency.MustParseISO(code)
	}
	scale, _ := currency.Standard.Rounding(unit)

	symbol, ok := currencySymbols[code]
	if !ok {
		symbol = code + " "
	}

	return &labelFormatter{
		printer: message.NewPrinter(tag),
		symbol:  symbol,
		scale:   scale,
	}
}

func (f *labelFormatter) MonthName(month time.Month) string {
	if month < time.January || month > time.December {
		return ""
	}
	return spanishMonths[month-1]
}

func (f *labelFormatter) shortMonth(month time.Month) string {
	if month < time.January || month > time.December {
		return ""
	}
	return shortSpanishMonths[month-1]
}

func (f *labelFormatter) ShortMonthLabel(year int, month time.Month) string {
	return fmt.Sprintf("%s %d", f.shortMonth(month), year)
}

func (f *labelFormatter) MonthLabel(year int, month time.Month) string {
	return fmt.Sprintf("%s de %d", f.MonthName(month), year)
}

// WeekLabel renders "26 feb - 4 mar 2024", repeating the year only when the
// week straddles New Year.
func (f *labelFormatter) WeekLabel(start, end time.Time) string {
	if start.Year() != end.Year() {
		return fmt.Sprintf("%d %s %d - %d %s %d",
			start.Day(), f.shortMonth(start.Month()), start.Year(),
			end.Day(), f.shortMonth(end.Month()), end.Year())
	}
	return fmt.Sprintf("%d %s - %d %s %d",
		start.Day(), f.shortMonth(start.Month()),
		end.Day(), f.shortMonth(end.Month()), end.Year())
}

func (f *labelFormatter) YearLabel(year int) string {
	return fmt.Sprintf("%d", year)
}

// FormatCurrency renders the amount with the currency's standard number of
// decimals and the locale's digit grouping, e.g. "$1.234.567" for CLP.
func (f *labelFormatter) FormatCurrency(amount decimal.Decimal) string {
	rounded := amount.Round(int32(f.scale))
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Abs()
	}
	value, _ := rounded.Float64()
	digits := f.printer.Sprint(number.Decimal(value, number.Scale(f.scale)))
	return sign + f.symbol + digits
}
