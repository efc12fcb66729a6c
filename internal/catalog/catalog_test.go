package catalog

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestParseOverridesAndDefaults(t *testing.T) {
	c, err := Parse([]byte(`
predefined_games:
  - X
  - " Y "
  - X
platforms:
  - match: TapTap
    weight: 0.9
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if !reflect.DeepEqual(c.PredefinedGames, []string{"X", "Y"}) {
		t.Errorf("Unexpected games: %v", c.PredefinedGames)
	}
	if len(c.Platforms) != 1 || c.Platforms[0].Match != "taptap" || c.Platforms[0].Weight != 0.9 {
		t.Errorf("Unexpected platforms: %+v", c.Platforms)
	}
	if c.DefaultWeight != Default().DefaultWeight {
		t.Errorf("Expected default weight fallback, got %v", c.DefaultWeight)
	}
}

func TestParseRejectsOutOfRangeWeights(t *testing.T) {
	docs := []string{
		"default_weight: 1.5",
		"platforms:\n  - match: nga\n    weight: -0.1",
		"platforms:\n  - match: \"\"\n    weight: 0.5",
	}
	for _, doc := range docs {
		if _, err := Parse([]byte(doc)); err == nil {
			t.Errorf("Expected error for %q", doc)
		}
	}
}

func TestLoad(t *testing.T) {
	c, err := Load("")
	if err != nil {
		t.Fatalf("Load empty path: %v", err)
	}
	if len(c.PredefinedGames) != 3 {
		t.Errorf("Expected 3 default games, got %d", len(c.PredefinedGames))
	}

	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, []byte("predefined_games: [A]\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err = Load(path)
	if err != nil {
		t.Fatalf("Load file: %v", err)
	}
	if !reflect.DeepEqual(c.PredefinedGames, []string{"A"}) {
		t.Errorf("Unexpected games: %v", c.PredefinedGames)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected error for missing file")
	}
}
