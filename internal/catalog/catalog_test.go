package catalog_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/freshcutsco/meat-delivery-platform/internal/catalog"
	"github.com/freshcutsco/meat-delivery-platform/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(f float64) *float64 { return &f }

func sampleProducts() []models.Product {
	return []models.Product{
		{ID: 1, Name: "Chicken Curry Cut", Price: 300, SalePrice: floatPtr(239), Weight: "500g", Category: "chicken"},
		{ID: 2, Name: "Mutton Shoulder", Price: 660, Weight: "500g", Category: "mutton"},
		{ID: 3, Name: "Chicken Breast", Price: 320, SalePrice: floatPtr(290), Category: "chicken",
			VariantPrices: map[string]float64{"1kg": 599}},
	}
}

func TestNew(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		c, err := catalog.New(sampleProducts())
		require.NoError(t, err)
		assert.Equal(t, 3, c.Size())

		p, ok := c.Lookup(2)
		assert.True(t, ok)
		assert.Equal(t, "Mutton Shoulder", p.Name)

		_, ok = c.Lookup(99)
		assert.False(t, ok)
	})

	t.Run("Failure - Duplicate ID", func(t *testing.T) {
		products := sampleProducts()
		products = append(products, models.Product{ID: 1, Name: "Duplicate"})

		c, err := catalog.New(products)
		assert.Error(t, err)
		assert.Nil(t, c)
	})
}

func TestLoad(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		yamlContent := `
products:
  - id: 1
    name: "Chicken Curry Cut"
    price: 300
    sale_price: 239
    weight: "500g"
    category: "chicken"
  - id: 2
    name: "Mutton Shoulder"
    price: 660
    category: "mutton"
    variant_prices:
      "1kg": 1299
`
		path := filepath.Join(t.TempDir(), "catalog.yaml")
		require.NoError(t, os.WriteFile(path, []byte(yamlContent), 0o600))

		c, err := catalog.Load(path)
		require.NoError(t, err)
		assert.Equal(t, 2, c.Size())

		p, ok := c.Lookup(1)
		require.True(t, ok)
		require.NotNil(t, p.SalePrice)
		assert.Equal(t, 239.0, *p.SalePrice)

		p2, ok := c.Lookup(2)
		require.True(t, ok)
		assert.Equal(t, 1299.0, p2.VariantPrices["1kg"])
	})

	t.Run("Failure - Missing File", func(t *testing.T) {
		c, err := catalog.Load("/does/not/exist.yaml")
		assert.Error(t, err)
		assert.Nil(t, c)
	})

	t.Run("Failure - Malformed YAML", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "catalog.yaml")
		require.NoError(t, os.WriteFile(path, []byte("products: [not closed"), 0o600))

		c, err := catalog.Load(path)
		assert.Error(t, err)
		assert.Nil(t, c)
	})
}

func TestCategories(t *testing.T) {
	c, err := catalog.New(sampleProducts())
	require.NoError(t, err)

	assert.Equal(t, []string{"chicken", "mutton"}, c.Categories())
}

func TestUnitPrice(t *testing.T) {
	products := sampleProducts()

	t.Run("Sale price beats base price", func(t *testing.T) {
		assert.Equal(t, 239.0, catalog.UnitPrice(products[0], ""))
	})

	t.Run("Base price when no sale price", func(t *testing.T) {
		assert.Equal(t, 660.0, catalog.UnitPrice(products[1], ""))
	})

	t.Run("Variant override beats sale and base price", func(t *testing.T) {
		assert.Equal(t, 599.0, catalog.UnitPrice(products[2], "1kg"))
	})

	t.Run("Unknown variant falls back to sale price", func(t *testing.T) {
		assert.Equal(t, 290.0, catalog.UnitPrice(products[2], "250g"))
	})
}

func TestOriginalUnitPrice(t *testing.T) {
	products := sampleProducts()

	t.Run("Base price ignores discount", func(t *testing.T) {
		assert.Equal(t, 300.0, catalog.OriginalUnitPrice(products[0], ""))
	})

	t.Run("Variant override is its own original price", func(t *testing.T) {
		assert.Equal(t, 599.0, catalog.OriginalUnitPrice(products[2], "1kg"))
	})
}
