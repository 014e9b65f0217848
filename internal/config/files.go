package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xavierca1/ghostreach/internal/entity"
)

// LoadTargets reads the JSON array of harvest targets.
func LoadTargets(path string) ([]entity.Target, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read targets: %w", err)
	}
	var targets []entity.Target
	if err := json.Unmarshal(data, &targets); err != nil {
		return nil, fmt.Errorf("failed to parse targets %s: %w", path, err)
	}
	return targets, nil
}

func LoadMarketConfig(path string) (*entity.MarketConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read market config: %w", err)
	}
	var cfg entity.MarketConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse market config %s: %w", path, err)
	}
	return &cfg, nil
}

// SaveMarketConfig writes cfg through a temp file so a crash never leaves a
// half-written config behind.
func SaveMarketConfig(path string, cfg *entity.MarketConfig) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode market config: %w", err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write market config: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace market config: %w", err)
	}
	return nil
}
