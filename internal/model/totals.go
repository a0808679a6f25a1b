package model

import "github.com/shopspring/decimal"

// ProjectTotals is the terminal financial summary of an estimate.
type ProjectTotals struct {
	Materials  decimal.Decimal `json:"materials"`
	Labor      decimal.Decimal `json:"labor"`
	Overhead   decimal.Decimal `json:"overhead"`
	Discounts  decimal.Decimal `json:"discounts"`
	BeforeTax  decimal.Decimal `json:"before_tax"`
	Tax        decimal.Decimal `json:"tax"`
	AfterTax   decimal.Decimal `json:"after_tax"`
	FinalPrice decimal.Decimal `json:"final_price"`
}

// LineKind separates material lines from labor lines.
type LineKind string

const (
	LineKindMaterial LineKind = "material"
	LineKindLabor    LineKind = "labor"
)

// LineItem is one flattened leaf of a priced tree.
type LineItem struct {
	Kind      LineKind        `json:"kind"`
	Category  string          `json:"category"`
	Path      string          `json:"path"`
	Quantity  decimal.Decimal `json:"quantity"`
	Unit      string          `json:"unit"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Price     decimal.Decimal `json:"price"`
	Notes     string          `json:"notes,omitempty"`
}
