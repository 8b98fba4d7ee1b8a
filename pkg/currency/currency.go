package currency

import (
	"github.com/shopspring/decimal"
)

// RateTable supplies conversion rates expressed as units of a currency per one
// base unit. Tables are snapshots; swapping in a refreshed table does not
// change any caller.
type RateTable interface {
	// RateFor returns the rate for a currency code and whether the code is known.
	RateFor(code string) (decimal.Decimal, bool)

	// SymbolFor returns the display symbol for a currency code and whether the
	// code is known.
	SymbolFor(code string) (string, bool)
}

// StaticTable is a fixed in-memory rate snapshot keyed by ISO 4217 code.
type StaticTable struct {
	base    string
	rates   map[string]decimal.Decimal
	symbols map[string]string
}

func NewStaticTable(base string, rates map[string]decimal.Decimal, symbols map[string]string) *StaticTable {
	return &StaticTable{base: base, rates: rates, symbols: symbols}
}

func (t *StaticTable) RateFor(code string) (decimal.Decimal, bool) {
	rate, ok := t.rates[code]
	return rate, ok
}

func (t *StaticTable) SymbolFor(code string) (string, bool) {
	symbol, ok := t.symbols[code]
	return symbol, ok
}

func (t *StaticTable) Base() string {
	return t.base
}

// DefaultTable returns the built-in snapshot pivoted through USD.
func DefaultTable() *StaticTable {
	return NewStaticTable("USD",
		map[string]decimal.Decimal{
			"USD": decimal.NewFromFloat(1.0),
			"EUR": decimal.NewFromFloat(0.92),
			"GBP": decimal.NewFromFloat(0.79),
			"JPY": decimal.NewFromFloat(149.50),
			"CAD": decimal.NewFromFloat(1.36),
			"AUD": decimal.NewFromFloat(1.52),
			"CHF": decimal.NewFromFloat(0.88),
			"INR": decimal.NewFromFloat(83.10),
			"BRL": decimal.NewFromFloat(5.04),
			"MXN": decimal.NewFromFloat(17.05),
		},
		map[string]string{
			"USD": "$",
			"EUR": "€",
			"GBP": "£",
			"JPY": "¥",
			"CAD": "CA$",
			"AUD": "A$",
			"CHF": "CHF",
			"INR": "₹",
			"BRL": "R$",
			"MXN": "MX$",
		},
	)
}

// Normalizer converts amounts between currencies by pivoting through the
// table's base unit. It never makes network calls.
type Normalizer struct {
	table RateTable
}

func NewNormalizer(table RateTable) *Normalizer {
	return &Normalizer{table: table}
}

// Convert converts amount from one currency code to another and rounds to
// 2 decimal places. Unknown codes fail closed with a rate of 1, which keeps
// the amount comparable instead of erroring; callers needing strict
// validation should check Known first.
func (n *Normalizer) Convert(amount decimal.Decimal, fromCode, toCode string) decimal.Decimal {
	if fromCode == toCode {
		return amount
	}

	fromRate := n.rateOrOne(fromCode)
	toRate := n.rateOrOne(toCode)

	// amount / fromRate lands in the base unit, * toRate leaves it.
	return amount.Div(fromRate).Mul(toRate).Round(2)
}

// Symbol returns the display symbol for a code, or the code itself followed
// by a space when unknown.
func (n *Normalizer) Symbol(code string) string {
	if symbol, ok := n.table.SymbolFor(code); ok {
		return symbol
	}
	return code + " "
}

// Known reports whether the code exists in the rate table.
func (n *Normalizer) Known(code string) bool {
	_, ok := n.table.RateFor(code)
	return ok
}

func (n *Normalizer) rateOrOne(code string) decimal.Decimal {
	if rate, ok := n.table.RateFor(code); ok && rate.IsPositive() {
		return rate
	}
	return decimal.NewFromInt(1)
}
