package service

import (
	"sort"
	"strings"

	"ops-admin-backend/internal/features/reward/models"
)

// Catalog resolves asset types to the asset ids the reward service expects.
type Catalog struct {
	assets map[string]string
}

// NewCatalog builds a catalog from an asset type -> asset id map. Types are matched
// case-insensitively and points is always present.
func NewCatalog(assets map[string]string) *Catalog {
	c := &Catalog{assets: make(map[string]string, len(assets))}
	for assetType, assetID := range assets {
		c.assets[strings.ToLower(strings.TrimSpace(assetType))] = strings.TrimSpace(assetID)
	}
	return c
}

// Resolve returns the catalog entry for assetType.
func (c *Catalog) Resolve(assetType string) (models.Asset, bool) {
	key := strings.ToLower(strings.TrimSpace(assetType))
	if key == models.AssetTypePoints {
		return models.Asset{Type: models.AssetTypePoints, Points: true}, true
	}
	assetID, ok := c.assets[key]
	if !ok || assetID == "" {
		return models.Asset{}, false
	}
	return models.Asset{Type: key, AssetID: assetID}, true
}

// List returns the assets sorted by type with points last.
func (c *Catalog) List() []models.Asset {
	out := make([]models.Asset, 0, len(c.assets)+1)
	for assetType, assetID := range c.assets {
		out = append(out, models.Asset{Type: assetType, AssetID: assetID})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Type < out[j].Type })
	return append(out, models.Asset{Type: models.AssetTypePoints, Points: true})
}
