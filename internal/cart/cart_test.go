package cart

import (
	"os"
	"path/filepath"
	"testing"

	"StorefrontAPI/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func product(slug string, price float64) model.Product {
	return model.Product{
		Slug:    slug,
		Name:    slug,
		Pricing: model.Pricing{Price: price},
		Status:  model.ProductStatusActive,
	}
}

func TestAddItemMergesSameKey(t *testing.T) {
	s := NewStore(nil)

	require.NoError(t, s.AddItem(product("widget", 5), 1, ""))
	require.NoError(t, s.AddItem(product("gadget", 3), 1, ""))
	require.NoError(t, s.AddItem(product("widget", 5), 2, ""))

	items := s.Items()
	require.Len(t, items, 2)
	// Updated in place: first-insertion order preserved.
	assert.Equal(t, "widget", items[0].Product.Slug)
	assert.Equal(t, 3, items[0].Quantity)
	assert.Equal(t, "gadget", items[1].Product.Slug)
}

func TestAddItemVariantsAreDistinct(t *testing.T) {
	s := NewStore(nil)

	require.NoError(t, s.AddItem(product("shirt", 20), 1, "size-m"))
	require.NoError(t, s.AddItem(product("shirt", 20), 1, "size-l"))
	require.NoError(t, s.AddItem(product("shirt", 20), 1, "size-m"))

	items := s.Items()
	require.Len(t, items, 2)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, "size-m", items[0].VariantID)
	assert.Equal(t, 1, items[1].Quantity)
}

func TestUpdateQuantityZeroRemoves(t *testing.T) {
	a := NewStore(nil)
	require.NoError(t, a.AddItem(product("widget", 5), 2, ""))
	require.NoError(t, a.UpdateQuantity("widget", 0, ""))

	b := NewStore(nil)
	require.NoError(t, b.AddItem(product("widget", 5), 2, ""))
	require.NoError(t, b.RemoveItem("widget", ""))

	assert.Equal(t, b.Items(), a.Items())
	assert.Empty(t, a.Items())
}

func TestUpdateQuantityReplaces(t *testing.T) {
	s := NewStore(nil)
	require.NoError(t, s.AddItem(product("widget", 5), 2, ""))
	require.NoError(t, s.UpdateQuantity("widget", 7, ""))

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 7, items[0].Quantity)
}

func TestDerivedValues(t *testing.T) {
	s := NewStore(nil)
	require.NoError(t, s.AddItem(product("widget", 5), 2, ""))
	require.NoError(t, s.AddItem(product("ebook", 9.5), 1, ""))

	assert.Equal(t, 3, s.ItemCount())
	assert.InDelta(t, 19.5, s.Subtotal(), 1e-9)

	// Recomputed after every mutation, no stale caching.
	require.NoError(t, s.UpdateQuantity("widget", 1, ""))
	assert.Equal(t, 2, s.ItemCount())
	assert.InDelta(t, 14.5, s.Subtotal(), 1e-9)

	require.NoError(t, s.Clear())
	assert.Equal(t, 0, s.ItemCount())
	assert.Zero(t, s.Subtotal())
}

func TestClearKeepsOpenFlag(t *testing.T) {
	s := NewStore(nil)
	s.Open()
	require.NoError(t, s.AddItem(product("widget", 5), 1, ""))
	require.NoError(t, s.Clear())
	assert.True(t, s.IsOpen())
}

func TestPersistenceRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cart.json")
	storage := NewFileStorage(path)

	s := NewStore(storage)
	require.NoError(t, s.AddItem(product("widget", 5), 2, "size-m"))

	// A fresh store rehydrates from the same storage.
	reloaded := NewStore(NewFileStorage(path))
	items := reloaded.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "widget", items[0].Product.Slug)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, "size-m", items[0].VariantID)
}

func TestCorruptStorageStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cart.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	s := NewStore(NewFileStorage(path))
	assert.Empty(t, s.Items())
	assert.Equal(t, 0, s.ItemCount())
}

func TestMissingStorageStartsEmpty(t *testing.T) {
	s := NewStore(NewFileStorage(filepath.Join(t.TempDir(), "nope", "cart.json")))
	assert.Empty(t, s.Items())
	// First mutation creates the file.
	require.NoError(t, s.AddItem(product("widget", 5), 1, ""))
}
