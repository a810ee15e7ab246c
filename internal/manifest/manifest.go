// Package manifest loads aggregator configuration from a YAML file and builds
// the fixed containers each aggregator reads.
//
// A manifest looks like:
//
//	aggregators:
//	  - kind: coefficients
//	    coefs: [0.9999, 0.998, 0.9333, 0.5]
//	  - kind: paired
//	    coefs: [0.5, 0.25]
//	    ids: [1, 2]
//	  - kind: grouped
//	    groups: [chicken, beef]
//	    members:
//	      chicken: [foo, bar]
//	      beef: [baz, bat]
//	    coefs: [0.5, 0.25]
//	revisit: [0, 1]
//
// Revisit lists aggregator indexes that are built a second time and summed
// after the main set.
package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/funvibe/fixed/internal/config"
	"gopkg.in/yaml.v3"
)

// Manifest is the top-level manifest document.
type Manifest struct {
	Aggregators []AggregatorSpec `yaml:"aggregators"`
	Revisit     []int            `yaml:"revisit,omitempty"`

	// Source is the file the manifest was loaded from, if any.
	Source string `yaml:"-"`
}

// AggregatorSpec describes one aggregator. Which fields apply depends on Kind.
type AggregatorSpec struct {
	// Kind is one of config.Kinds.
	Kind string `yaml:"kind"`

	// Coefs is used by every kind.
	Coefs []float64 `yaml:"coefs"`

	// IDs is the identifier list of a paired aggregator.
	IDs []uint64 `yaml:"ids,omitempty"`

	// Groups, Members and Sentinel configure a grouped aggregator.
	Groups   []string `yaml:"groups,omitempty"`
	Members  Members  `yaml:"members,omitempty"`
	Sentinel string   `yaml:"sentinel,omitempty"`
}

// Member binds a group name to its member names.
type Member struct {
	Group string
	Names []string
}

// Members keeps the group definitions in document order.
type Members []Member

// UnmarshalYAML decodes a mapping of group name to member list without
// going through a Go map, so declaration order survives.
func (m *Members) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: members must be a mapping", value.Line)
	}
	out := make(Members, 0, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		keyNode, valNode := value.Content[i], value.Content[i+1]
		var group string
		if err := keyNode.Decode(&group); err != nil {
			return fmt.Errorf("line %d: group name: %w", keyNode.Line, err)
		}
		var names []string
		if err := valNode.Decode(&names); err != nil {
			return fmt.Errorf("line %d: members of %q: %w", valNode.Line, group, err)
		}
		out = append(out, Member{Group: group, Names: names})
	}
	*m = out
	return nil
}

func (m Members) lookup(group string) bool {
	for _, member := range m {
		if member.Group == group {
			return true
		}
	}
	return false
}

// LoadManifest reads and parses a manifest file. The returned manifest
// remembers path in Source.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}
	m, err := ParseManifest(data, path)
	if err != nil {
		return nil, err
	}
	m.Source = path
	return m, nil
}

// ParseManifest parses manifest content from bytes. Unknown fields are
// rejected so a misspelt key does not silently drop configuration.
// The path argument is used only for error messages.
func ParseManifest(data []byte, path string) (*Manifest, error) {
	var m Manifest
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := m.validate(path); err != nil {
		return nil, err
	}
	m.setDefaults()
	return &m, nil
}

// Location describes a manifest found by FindManifest.
type Location struct {
	// Path is the absolute manifest path.
	Path string
	// Name is the matched entry of config.ManifestFileNames.
	Name string
	// Depth counts the parent directories climbed from the start directory.
	Depth int
}

// FindManifest searches for a manifest starting from dir and walking up to
// parent directories. It returns a nil Location and nil error if none
// exists. A directory holding more than one manifest name is an error.
func FindManifest(dir string) (*Location, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving directory: %w", err)
	}

	for depth := 0; ; depth++ {
		var found *Location
		for _, name := range config.ManifestFileNames {
			candidate := filepath.Join(dir, name)
			info, err := os.Stat(candidate)
			if err != nil || info.IsDir() {
				continue
			}
			if found != nil {
				return nil, fmt.Errorf("%s: both %s and %s present", dir, found.Name, name)
			}
			found = &Location{Path: candidate, Name: name, Depth: depth}
		}
		if found != nil {
			return found, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, nil
		}
		dir = parent
	}
}

func (m *Manifest) validate(path string) error {
	if len(m.Aggregators) == 0 {
		return fmt.Errorf("%s: no aggregators defined", path)
	}

	for i, a := range m.Aggregators {
		if a.Kind == "" {
			return fmt.Errorf("%s: aggregators[%d]: kind is required", path, i)
		}
		if !slices.Contains(config.Kinds, a.Kind) {
			return fmt.Errorf("%s: aggregators[%d]: unknown kind %q", path, i, a.Kind)
		}
		if len(a.Coefs) == 0 {
			return fmt.Errorf("%s: aggregators[%d] (%s): coefs is required", path, i, a.Kind)
		}

		switch a.Kind {
		case config.KindCoefficients:
			if len(a.IDs) > 0 || len(a.Groups) > 0 || len(a.Members) > 0 || a.Sentinel != "" {
				return fmt.Errorf("%s: aggregators[%d] (%s): only coefs is allowed", path, i, a.Kind)
			}
		case config.KindPaired:
			if len(a.IDs) == 0 {
				return fmt.Errorf("%s: aggregators[%d] (%s): ids is required", path, i, a.Kind)
			}
			if len(a.Groups) > 0 || len(a.Members) > 0 || a.Sentinel != "" {
				return fmt.Errorf("%s: aggregators[%d] (%s): groups, members and sentinel are only valid for grouped",
					path, i, a.Kind)
			}
		case config.KindGrouped:
			if len(a.Groups) == 0 {
				return fmt.Errorf("%s: aggregators[%d] (%s): groups is required", path, i, a.Kind)
			}
			if len(a.IDs) > 0 {
				return fmt.Errorf("%s: aggregators[%d] (%s): ids is only valid for paired", path, i, a.Kind)
			}
			for j, g := range a.Groups {
				if !a.Members.lookup(g) {
					return fmt.Errorf("%s: aggregators[%d].groups[%d]: group %q has no members entry",
						path, i, j, g)
				}
			}
		}
	}

	for i, idx := range m.Revisit {
		if idx < 0 || idx >= len(m.Aggregators) {
			return fmt.Errorf("%s: revisit[%d]: index %d out of range [0, %d)",
				path, i, idx, len(m.Aggregators))
		}
	}

	return nil
}

func (m *Manifest) setDefaults() {
	for i := range m.Aggregators {
		if m.Aggregators[i].Kind == config.KindGrouped && m.Aggregators[i].Sentinel == "" {
			m.Aggregators[i].Sentinel = config.DefaultSentinel
		}
	}
}
