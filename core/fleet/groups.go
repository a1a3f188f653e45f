package fleet

import (
	"fmt"

	"github.com/fawsd/crewrotation/core/logger"
	"github.com/fawsd/crewrotation/core/model"
)

// FleetType identifies a vessel fleet.
type FleetType string

const (
	FleetContainer FleetType = "container"
	FleetManalagi  FleetType = "manalagi"
)

// Category identifies the rotation category a group partition applies to.
type Category string

const (
	CategoryDeck   Category = "deck"
	CategoryEngine Category = "engine"
)

// UnknownGroupID is assigned to vessels absent from every group of a
// partition. Crew on such vessels are excluded from group-filtered queries.
const UnknownGroupID = "UNKNOWN"

// Group is a named set of vessels rotating together.
type Group struct {
	Name    string   `json:"name" yaml:"name"`
	Vessels []string `json:"vessels" yaml:"vessels"`
}

// Config holds the rotation-group partitions per (fleet, category) pair.
// It is configuration data, not computed: defaults are compiled in and can be
// overridden from a YAML or JSON file.
type Config struct {
	ContainerDeck   []Group `json:"container_deck" yaml:"container_deck"`
	ContainerEngine []Group `json:"container_engine" yaml:"container_engine"`
	ManalagiDeck    []Group `json:"manalagi_deck" yaml:"manalagi_deck"`
	ManalagiEngine  []Group `json:"manalagi_engine" yaml:"manalagi_engine"`
}

// ConfigurationError reports an unknown (fleet, category) combination.
type ConfigurationError struct {
	Fleet    FleetType
	Category Category
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("no group partition configured for fleet %q category %q", e.Fleet, e.Category)
}

// partition selects the group list and group-id prefix for a pair.
func (c Config) partition(fleet FleetType, category Category) ([]Group, string, error) {
	switch {
	case fleet == FleetContainer && category == CategoryDeck:
		return c.ContainerDeck, "D", nil
	case fleet == FleetContainer && category == CategoryEngine:
		return c.ContainerEngine, "E", nil
	case fleet == FleetManalagi && category == CategoryDeck:
		return c.ManalagiDeck, "F", nil
	case fleet == FleetManalagi && category == CategoryEngine:
		return c.ManalagiEngine, "G", nil
	default:
		return nil, "", &ConfigurationError{Fleet: fleet, Category: category}
	}
}

// Index maps vessel names to rotation-group identifiers for one
// (fleet, category) partition. Building is a pure function of the
// configuration: identical inputs yield identical mappings.
type Index struct {
	mapping map[string]string
	groups  map[string]Group // groupID -> group, for vessel listings
	order   []string         // groupIDs in configuration order
	uniform string           // non-empty when every vessel maps to one group
}

// Build constructs the index for a partition. Fleets other than container and
// manalagi have no per-rank partitioning; every vessel maps to the constant
// group "1". Unknown (fleet, category) pairs inside the partitioned fleets
// fail with a ConfigurationError. When a vessel appears in more than one
// group of the partition the last registered group wins; this is a
// data-quality problem in the configuration, logged but not fatal.
func Build(cfg Config, fleet FleetType, category Category, log logger.Logger) (*Index, error) {
	if fleet != FleetContainer && fleet != FleetManalagi {
		return &Index{uniform: "1"}, nil
	}
	groups, prefix, err := cfg.partition(fleet, category)
	if err != nil {
		return nil, err
	}
	ix := &Index{
		mapping: make(map[string]string),
		groups:  make(map[string]Group, len(groups)),
	}
	for i, g := range groups {
		id := fmt.Sprintf("%s%d", prefix, i+1)
		ix.groups[id] = g
		ix.order = append(ix.order, id)
		for _, v := range g.Vessels {
			if prev, ok := ix.mapping[v]; ok && prev != id && log != nil {
				log.Warnf("vessel %q registered in both %s and %s, keeping %s", v, prev, id, id)
			}
			ix.mapping[v] = id
		}
	}
	return ix, nil
}

// GroupID resolves a vessel name to its group identifier, or UnknownGroupID.
func (ix *Index) GroupID(vessel string) string {
	if ix.uniform != "" {
		return ix.uniform
	}
	if id, ok := ix.mapping[vessel]; ok {
		return id
	}
	return UnknownGroupID
}

// Lookup resolves a crew record's current location to its group identifier.
func (ix *Index) Lookup(rec model.CrewRecord) string {
	return ix.GroupID(rec.Location)
}

// Vessels returns the configured vessel list of a group, in configuration
// order, or nil for unknown groups.
func (ix *Index) Vessels(groupID string) []string {
	g, ok := ix.groups[groupID]
	if !ok {
		return nil
	}
	out := make([]string, len(g.Vessels))
	copy(out, g.Vessels)
	return out
}

// GroupIDs lists the partition's group identifiers in configuration order.
func (ix *Index) GroupIDs() []string {
	out := make([]string, len(ix.order))
	copy(out, ix.order)
	return out
}
