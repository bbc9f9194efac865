package costing

import "github.com/shopspring/decimal"

// Product identifies a product line
type Product string

const (
	// ProductSoda is the primary product line
	ProductSoda Product = "SODA"
	// ProductIceCream is the secondary product line
	ProductIceCream Product = "ICE_CREAM"
)

// IsValid checks if the product is a known product line
func (p Product) IsValid() bool {
	switch p {
	case ProductSoda, ProductIceCream:
		return true
	}
	return false
}

// String returns the string representation
func (p Product) String() string {
	return string(p)
}

// AllProducts returns all known product lines
func AllProducts() []Product {
	return []Product{ProductSoda, ProductIceCream}
}

// PriceList maps product lines to their configured unit sale price.
// Prices are configuration, never read back from historical records,
// so old sales are always valued at the current tier.
type PriceList struct {
	prices  map[Product]decimal.Decimal
	primary Product
}

// NewPriceList creates a price list with the given prices. Lookups for
// unknown products fall back to the primary product's price.
func NewPriceList(prices map[Product]decimal.Decimal, primary Product) PriceList {
	copied := make(map[Product]decimal.Decimal, len(prices))
	for product, price := range prices {
		copied[product] = price
	}
	return PriceList{prices: copied, primary: primary}
}

// DefaultPriceList returns the standard two-tier price list
func DefaultPriceList() PriceList {
	return NewPriceList(map[Product]decimal.Decimal{
		ProductSoda:     decimal.NewFromInt(1000),
		ProductIceCream: decimal.NewFromInt(1800),
	}, ProductSoda)
}

// PriceFor returns the unit price for a product, falling back to the
// primary product's price when the product is unknown or missing.
func (l PriceList) PriceFor(product Product) decimal.Decimal {
	if price, ok := l.prices[product]; ok {
		return price
	}
	return l.prices[l.primary]
}

// Primary returns the primary product line used as the pricing fallback
func (l PriceList) Primary() Product {
	return l.primary
}
