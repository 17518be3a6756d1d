// Package categories seeds each user with the default spending categories.
// The defaults ship embedded in the binary so seeding needs no config files.
package categories

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"rkeller/pennyflow/internal/models"
	"rkeller/pennyflow/internal/store"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// DefaultCategory is one entry of the embedded defaults file.
type DefaultCategory struct {
	Name  string `yaml:"name"`
	Type  string `yaml:"type"`
	Icon  string `yaml:"icon"`
	Color string `yaml:"color"`
}

type defaultsFile struct {
	Categories []DefaultCategory `yaml:"categories"`
}

// Defaults returns the embedded default category set.
func Defaults() ([]DefaultCategory, error) {
	var file defaultsFile
	if err := yaml.Unmarshal(defaultsYAML, &file); err != nil {
		return nil, fmt.Errorf("failed to parse embedded categories: %w", err)
	}
	return file.Categories, nil
}

// SeedDefaults creates the system categories for a user. It is an explicit
// one-time operation: when the user already has any categories it does
// nothing and reports zero created.
func SeedDefaults(ctx context.Context, s store.Store, userID string) (int, error) {
	existing, err := s.ListCategories(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to check existing categories: %w", err)
	}
	if len(existing) > 0 {
		return 0, nil
	}

	defaults, err := Defaults()
	if err != nil {
		return 0, err
	}

	for i, d := range defaults {
		category := &models.Category{
			ID:        uuid.NewString(),
			UserID:    userID,
			Name:      d.Name,
			Type:      d.Type,
			Icon:      d.Icon,
			Color:     d.Color,
			IsSystem:  true,
			SortOrder: i,
		}
		if err := s.CreateCategory(ctx, category); err != nil {
			return i, fmt.Errorf("failed to create category %q: %w", d.Name, err)
		}
	}
	return len(defaults), nil
}
