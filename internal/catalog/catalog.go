package catalog

import (
	"fmt"
	"os"
	"sort"

	"github.com/freshcutsco/meat-delivery-platform/internal/models"
	"gopkg.in/yaml.v3"
)

// Catalog is the immutable product reference table. It is loaded once at
// startup; nothing mutates it afterwards.
type Catalog struct {
	products map[int]models.Product
	ordered  []models.Product
}

type catalogFile struct {
	Products []models.Product `yaml:"products"`
}

func Load(path string) (*Catalog, error) {

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var file catalogFile

	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file: %w", err)
	}

	return New(file.Products)
}

func New(products []models.Product) (*Catalog, error) {

	byID := make(map[int]models.Product, len(products))

	for _, p := range products {
		if _, exists := byID[p.ID]; exists {
			return nil, fmt.Errorf("duplicate product id %d in catalog", p.ID)
		}

		byID[p.ID] = p
	}

	ordered := make([]models.Product, len(products))
	copy(ordered, products)

	return &Catalog{products: byID, ordered: ordered}, nil
}

func (c *Catalog) Lookup(id int) (models.Product, bool) {
	p, ok := c.products[id]

	return p, ok
}

// List returns the products in catalog-file order.
func (c *Catalog) List() []models.Product {
	out := make([]models.Product, len(c.ordered))
	copy(out, c.ordered)

	return out
}

func (c *Catalog) Categories() []string {

	seen := make(map[string]struct{})

	var categories []string

	for _, p := range c.ordered {
		if _, ok := seen[p.Category]; ok {
			continue
		}

		seen[p.Category] = struct{}{}
		categories = append(categories, p.Category)
	}

	sort.Strings(categories)

	return categories
}

func (c *Catalog) Size() int {
	return len(c.ordered)
}

// UnitPrice resolves the effective unit price for a product and variant.
// Precedence: variant override, then sale price, then base price.
func UnitPrice(p models.Product, variant string) float64 {

	if variant != "" {
		if override, ok := p.VariantPrices[variant]; ok {
			return override
		}
	}

	if p.SalePrice != nil {
		return *p.SalePrice
	}

	return p.Price
}

// OriginalUnitPrice is the pre-discount price: the variant override when one
// exists, else the base price.
func OriginalUnitPrice(p models.Product, variant string) float64 {

	if variant != "" {
		if override, ok := p.VariantPrices[variant]; ok {
			return override
		}
	}

	return p.Price
}
