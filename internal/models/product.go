package models

// Product is a read-only catalog entry. The catalog is loaded once at startup
// and never mutated at runtime.
type Product struct {
	ID            int                `yaml:"id" json:"id"`
	Name          string             `yaml:"name" json:"name"`
	Price         float64            `yaml:"price" json:"price"`
	SalePrice     *float64           `yaml:"sale_price" json:"sale_price,omitempty"`
	Weight        string             `yaml:"weight" json:"weight,omitempty"`
	Category      string             `yaml:"category" json:"category"`
	Description   string             `yaml:"description" json:"description,omitempty"`
	VariantPrices map[string]float64 `yaml:"variant_prices" json:"variant_prices,omitempty"`
}
