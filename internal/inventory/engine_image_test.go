package inventory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/locduc071190/shopquanao/internal/blob"
	"github.com/locduc071190/shopquanao/internal/model"
)

func newTestEngineWithBlobs(t *testing.T) (*Engine, *blob.Store) {
	t.Helper()
	blobs, err := blob.NewStore(t.TempDir())
	require.NoError(t, err)
	return NewEngine(newTestDB(t), blobs, nil), blobs
}

func TestAddProductStoresImage(t *testing.T) {
	e, blobs := newTestEngineWithBlobs(t)

	p, err := e.AddProduct(context.Background(), AddProductInput{
		Name: "Shirt", Price: 100, CostPrice: 60, InitialStock: 1,
		Image: []byte("fake-jpeg"), ImageExt: ".jpg",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, p.ImagePath)
	assert.True(t, blobs.Exists(p.ImagePath))
}

func TestUpdateProductReplacesImage(t *testing.T) {
	e, blobs := newTestEngineWithBlobs(t)
	ctx := context.Background()

	p, err := e.AddProduct(ctx, AddProductInput{
		Name: "Shirt", Price: 100, CostPrice: 60,
		Image: []byte("old"), ImageExt: ".png",
	})
	require.NoError(t, err)
	oldPath := p.ImagePath

	updated, err := e.UpdateProduct(ctx, p.ID, UpdateProductInput{
		Name: "Shirt", Price: 100, CostPrice: 60,
		Image: []byte("new"), ImageExt: ".png",
	})
	require.NoError(t, err)
	assert.NotEqual(t, oldPath, updated.ImagePath)
	assert.False(t, blobs.Exists(oldPath))
	assert.True(t, blobs.Exists(updated.ImagePath))
}

func TestUpdateProductRemovesImage(t *testing.T) {
	e, blobs := newTestEngineWithBlobs(t)
	ctx := context.Background()

	p, err := e.AddProduct(ctx, AddProductInput{
		Name: "Shirt", Price: 100, CostPrice: 60,
		Image: []byte("old"), ImageExt: ".png",
	})
	require.NoError(t, err)
	oldPath := p.ImagePath

	updated, err := e.UpdateProduct(ctx, p.ID, UpdateProductInput{
		Name: "Shirt", Price: 100, CostPrice: 60,
		RemoveImage: true,
	})
	require.NoError(t, err)
	assert.Empty(t, updated.ImagePath)
	assert.False(t, blobs.Exists(oldPath))

	var stored model.Product
	require.NoError(t, e.db.First(&stored, "id = ?", p.ID).Error)
	assert.Empty(t, stored.ImagePath)
}

func TestUpdateProductRemoveThenReplaceImage(t *testing.T) {
	e, blobs := newTestEngineWithBlobs(t)
	ctx := context.Background()

	p, err := e.AddProduct(ctx, AddProductInput{
		Name: "Shirt", Price: 100, CostPrice: 60,
		Image: []byte("old"), ImageExt: ".png",
	})
	require.NoError(t, err)
	oldPath := p.ImagePath

	// Remove and replace compose: old blob released, new one stored.
	updated, err := e.UpdateProduct(ctx, p.ID, UpdateProductInput{
		Name: "Shirt", Price: 100, CostPrice: 60,
		RemoveImage: true,
		Image:       []byte("new"), ImageExt: ".jpg",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, updated.ImagePath)
	assert.NotEqual(t, oldPath, updated.ImagePath)
	assert.False(t, blobs.Exists(oldPath))
	assert.True(t, blobs.Exists(updated.ImagePath))
}
