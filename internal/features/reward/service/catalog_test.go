package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ops-admin-backend/internal/features/reward/models"
)

func TestCatalog(t *testing.T) {
	c := NewCatalog(map[string]string{"TON": "1005", "usdt": "663c"})

	asset, ok := c.Resolve("ton")
	assert.True(t, ok)
	assert.Equal(t, models.Asset{Type: "ton", AssetID: "1005"}, asset)

	asset, ok = c.Resolve("Points")
	assert.True(t, ok)
	assert.True(t, asset.Points)
	assert.Empty(t, asset.AssetID)

	_, ok = c.Resolve("doge")
	assert.False(t, ok)

	list := c.List()
	assert.Equal(t, []string{"ton", "usdt", "points"}, []string{list[0].Type, list[1].Type, list[2].Type})
}
