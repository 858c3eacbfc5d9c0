package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// CatalogEntry holds per-product provisioning defaults. Values set on the
// product record itself always win; the catalog only fills gaps.
type CatalogEntry struct {
	ProductName  string `yaml:"product_name"`
	GameConfigID string `yaml:"game_config_id"`
	NodeID       string `yaml:"node_id"`
	Location     string `yaml:"location"`
	NameFormat   string `yaml:"name_format"`
}

// GameCatalog maps billing product ids to provisioning defaults
type GameCatalog struct {
	Products map[string]CatalogEntry `yaml:"products"`
}

// LoadGameCatalog reads the optional YAML game catalog. An empty path yields
// an empty catalog, not an error.
func LoadGameCatalog(path string) (*GameCatalog, error) {
	catalog := &GameCatalog{Products: map[string]CatalogEntry{}}
	if path == "" {
		return catalog, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read game catalog %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, catalog); err != nil {
		return nil, fmt.Errorf("failed to parse game catalog %s: %w", path, err)
	}
	if catalog.Products == nil {
		catalog.Products = map[string]CatalogEntry{}
	}

	return catalog, nil
}

// Lookup returns the catalog entry for a product id, if any
func (gc *GameCatalog) Lookup(productID string) (CatalogEntry, bool) {
	entry, ok := gc.Products[productID]
	return entry, ok
}
