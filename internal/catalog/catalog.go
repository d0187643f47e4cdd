// Package catalog holds the default pricing rule set.
package catalog

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/polkiloo/papermill/internal/domain/model"
)

//go:embed defaults.yaml
var defaultsYAML []byte

type document struct {
	Rules []entry `yaml:"rules"`
}

type entry struct {
	Name         string   `yaml:"name"`
	Category     string   `yaml:"category"`
	AppliesTo    string   `yaml:"applies_to"`
	Multiplier   float64  `yaml:"multiplier"`
	BasePrice    *float64 `yaml:"base_price"`
	Priority     int      `yaml:"priority"`
	DisplayOrder int      `yaml:"display_order"`
	DisplayName  string   `yaml:"display_name"`
	Description  string   `yaml:"description"`
	Inactive     bool     `yaml:"inactive"`
}

// Defaults returns the embedded default catalog.
func Defaults() ([]model.PricingRule, error) {
	return Parse(defaultsYAML)
}

// Parse decodes a YAML catalog.
func Parse(data []byte) ([]model.PricingRule, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	seen := make(map[string]struct{}, len(doc.Rules))
	rules := make([]model.PricingRule, 0, len(doc.Rules))
	for i, e := range doc.Rules {
		if e.Name == "" {
			return nil, fmt.Errorf("catalog rule %d: name is required", i)
		}
		if _, dup := seen[e.Name]; dup {
			return nil, fmt.Errorf("catalog rule %q: duplicate name", e.Name)
		}
		seen[e.Name] = struct{}{}

		category := model.RuleCategory(e.Category)
		if !category.Valid() {
			return nil, fmt.Errorf("catalog rule %q: unknown category %q", e.Name, e.Category)
		}
		if e.Multiplier < model.MinMultiplier || e.Multiplier > model.MaxMultiplier {
			return nil, fmt.Errorf("catalog rule %q: multiplier %v out of range", e.Name, e.Multiplier)
		}
		if e.BasePrice != nil && *e.BasePrice < 0 {
			return nil, fmt.Errorf("catalog rule %q: negative base price %v", e.Name, *e.BasePrice)
		}

		rules = append(rules, model.PricingRule{
			Name:         e.Name,
			Category:     category,
			AppliesTo:    e.AppliesTo,
			Multiplier:   e.Multiplier,
			BasePrice:    e.BasePrice,
			Priority:     e.Priority,
			IsActive:     !e.Inactive,
			DisplayOrder: e.DisplayOrder,
			DisplayName:  e.DisplayName,
			Description:  e.Description,
		})
	}
	return rules, nil
}
