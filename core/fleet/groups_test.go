package fleet

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/fawsd/crewrotation/core/model"
)

func TestBuildAssignsOrdinalGroupIDs(t *testing.T) {
	cfg := Config{
		ContainerDeck: []Group{
			{Name: "g1", Vessels: []string{"V1", "V2"}},
			{Name: "g2", Vessels: []string{"V3"}},
		},
	}
	ix, err := Build(cfg, FleetContainer, CategoryDeck, nil)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if got := ix.GroupID("V1"); got != "D1" {
		t.Fatalf("V1 -> %s, want D1", got)
	}
	if got := ix.GroupID("V3"); got != "D2" {
		t.Fatalf("V3 -> %s, want D2", got)
	}
	if got := ix.GroupID("V9"); got != UnknownGroupID {
		t.Fatalf("absent vessel -> %s, want %s", got, UnknownGroupID)
	}
	if got := ix.GroupIDs(); !reflect.DeepEqual(got, []string{"D1", "D2"}) {
		t.Fatalf("group ids %v", got)
	}
}

func TestBuildPrefixes(t *testing.T) {
	cfg := Config{
		ContainerDeck:   []Group{{Name: "a", Vessels: []string{"V"}}},
		ContainerEngine: []Group{{Name: "b", Vessels: []string{"V"}}},
		ManalagiDeck:    []Group{{Name: "c", Vessels: []string{"V"}}},
		ManalagiEngine:  []Group{{Name: "d", Vessels: []string{"V"}}},
	}
	cases := []struct {
		fleet    FleetType
		category Category
		want     string
	}{
		{FleetContainer, CategoryDeck, "D1"},
		{FleetContainer, CategoryEngine, "E1"},
		{FleetManalagi, CategoryDeck, "F1"},
		{FleetManalagi, CategoryEngine, "G1"},
	}
	for _, c := range cases {
		ix, err := Build(cfg, c.fleet, c.category, nil)
		if err != nil {
			t.Fatalf("build %s/%s: %v", c.fleet, c.category, err)
		}
		if got := ix.GroupID("V"); got != c.want {
			t.Errorf("%s/%s -> %s, want %s", c.fleet, c.category, got, c.want)
		}
	}
}

func TestBuildUnknownCategory(t *testing.T) {
	_, err := Build(Config{}, FleetContainer, Category("bridge"), nil)
	if err == nil {
		t.Fatalf("expected configuration error")
	}
	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected *ConfigurationError, got %T", err)
	}
}

func TestBuildOtherFleetsDegenerate(t *testing.T) {
	ix, err := Build(Config{}, FleetType("tb"), CategoryDeck, nil)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if got := ix.GroupID("TB. ALPHA"); got != "1" {
		t.Fatalf("got %s, want constant group 1", got)
	}
}

func TestBuildLastRegistrationWins(t *testing.T) {
	cfg := Config{
		ContainerDeck: []Group{
			{Name: "g1", Vessels: []string{"V1", "DUP"}},
			{Name: "g2", Vessels: []string{"DUP"}},
		},
	}
	ix, err := Build(cfg, FleetContainer, CategoryDeck, nil)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if got := ix.GroupID("DUP"); got != "D2" {
		t.Fatalf("duplicate vessel -> %s, want D2", got)
	}
}

func TestBuildIsPure(t *testing.T) {
	cfg := DefaultConfig()
	a, err := Build(cfg, FleetContainer, CategoryDeck, nil)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	b, err := Build(cfg, FleetContainer, CategoryDeck, nil)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if !reflect.DeepEqual(a.mapping, b.mapping) {
		t.Fatalf("identical configuration produced different mappings")
	}
}

func TestLookupUsesLocation(t *testing.T) {
	ix, err := Build(DefaultConfig(), FleetContainer, CategoryDeck, nil)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	rec := model.CrewRecord{Location: "KM. ORIENTAL RUBY"}
	if got := ix.Lookup(rec); got != "D1" {
		t.Fatalf("lookup -> %s, want D1", got)
	}
	if got := ix.Lookup(model.CrewRecord{Location: "DARAT"}); got != UnknownGroupID {
		t.Fatalf("shore status -> %s, want %s", got, UnknownGroupID)
	}
}

func TestDecodeConfigYAMLOverride(t *testing.T) {
	data := "container_deck:\n  - name: custom\n    vessels: [\"KM. A\", \"KM. B\"]\n"
	cfg, err := DecodeConfig(bytes.NewBufferString(data), "yaml")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(cfg.ContainerDeck) != 1 || cfg.ContainerDeck[0].Name != "custom" {
		t.Fatalf("override not applied: %#v", cfg.ContainerDeck)
	}
	// Untouched partitions keep defaults.
	if len(cfg.ManalagiDeck) == 0 {
		t.Fatalf("defaults dropped for manalagi deck")
	}
}

func TestLoadConfigJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "groups.json")
	payload := `{"manalagi_engine":[{"name":"m","vessels":["KM. M"]}]}`
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(cfg.ManalagiEngine) != 1 || cfg.ManalagiEngine[0].Vessels[0] != "KM. M" {
		t.Fatalf("bad cfg %#v", cfg.ManalagiEngine)
	}
	if _, err := LoadConfig(filepath.Join(dir, "groups.toml")); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
}
