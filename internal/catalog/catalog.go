// Package catalog loads the predefined game set and the source platform
// trust weights used by scoring.
package catalog

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// PlatformWeight maps platforms whose name contains Match as whole tokens to
// a trust weight in [0,1].
type PlatformWeight struct {
	Match  string  `yaml:"match"`
	Weight float64 `yaml:"weight"`
}

// Catalog is the static configuration shared by the scoring engine and the snapshot builder.
type Catalog struct {
	PredefinedGames []string         `yaml:"predefined_games"`
	Platforms       []PlatformWeight `yaml:"platforms"`
	DefaultWeight   float64          `yaml:"default_weight"`
}

// Default returns the built-in catalog.
func Default() *Catalog {
	return &Catalog{
		PredefinedGames: []string{"铃兰之剑", "杖剑传说", "植物大战僵尸2"},
		Platforms: []PlatformWeight{
			{Match: "官方", Weight: 1.0},
			{Match: "official", Weight: 1.0},
			{Match: "taptap", Weight: 0.8},
			{Match: "bilibili", Weight: 0.7},
			{Match: "哔哩哔哩", Weight: 0.7},
			{Match: "nga", Weight: 0.6},
			{Match: "微博", Weight: 0.6},
			{Match: "weibo", Weight: 0.6},
			{Match: "贴吧", Weight: 0.4},
			{Match: "用户提交", Weight: 0.3},
		},
		DefaultWeight: 0.3,
	}
}

// Load reads a YAML catalog from path. An empty path yields Default().
// Sections missing from the file fall back to the defaults.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML catalog document.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	def := Default()
	if c.PredefinedGames == nil {
		c.PredefinedGames = def.PredefinedGames
	}
	if c.Platforms == nil {
		c.Platforms = def.Platforms
	}
	if c.DefaultWeight == 0 {
		c.DefaultWeight = def.DefaultWeight
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	c.normalize()
	return &c, nil
}

func (c *Catalog) validate() error {
	if c.DefaultWeight < 0 || c.DefaultWeight > 1 {
		return fmt.Errorf("default_weight must be within [0,1], got %v", c.DefaultWeight)
	}
	for _, p := range c.Platforms {
		if strings.TrimSpace(p.Match) == "" {
			return fmt.Errorf("platform entry with empty match")
		}
		if p.Weight < 0 || p.Weight > 1 {
			return fmt.Errorf("platform %q weight must be within [0,1], got %v", p.Match, p.Weight)
		}
	}
	return nil
}

// normalize trims names, lowercases matches and drops duplicate games keeping the first.
func (c *Catalog) normalize() {
	seen := make(map[string]struct{}, len(c.PredefinedGames))
	games := make([]string, 0, len(c.PredefinedGames))
	for _, g := range c.PredefinedGames {
		g = strings.TrimSpace(g)
		if g == "" {
			continue
		}
		if _, ok := seen[g]; ok {
			continue
		}
		seen[g] = struct{}{}
		games = append(games, g)
	}
	c.PredefinedGames = games

	for i := range c.Platforms {
		c.Platforms[i].Match = strings.ToLower(strings.TrimSpace(c.Platforms[i].Match))
	}
}
