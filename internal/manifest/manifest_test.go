package manifest

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/funvibe/fixed/internal/calc"
)

const referenceYAML = `
aggregators:
  - kind: coefficients
    coefs: [0.9999, 0.998, 0.9333, 0.5]
  - kind: paired
    coefs: [0.5, 0.25]
    ids: [1, 2]
  - kind: grouped
    groups: [chicken, beef]
    members:
      chicken: [foo, bar]
      beef: [baz, bat]
    coefs: [0.5, 0.25]
revisit: [0, 1]
`

func TestParseManifest_Reference(t *testing.T) {
	m, err := ParseManifest([]byte(referenceYAML), "test.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(m.Aggregators) != 3 {
		t.Fatalf("expected 3 aggregators, got %d", len(m.Aggregators))
	}
	g := m.Aggregators[2]
	if g.Sentinel != "baz" {
		t.Errorf("sentinel = %q, want baz (default)", g.Sentinel)
	}
	if len(g.Members) != 2 || g.Members[0].Group != "chicken" || g.Members[1].Group != "beef" {
		t.Errorf("members = %+v, want chicken then beef", g.Members)
	}
	if got := strings.Join(g.Members[1].Names, ","); got != "baz,bat" {
		t.Errorf("beef members = %q, want baz,bat", got)
	}
	if len(m.Revisit) != 2 {
		t.Errorf("revisit = %v, want [0 1]", m.Revisit)
	}
}

func TestBuild_ReferenceTotal(t *testing.T) {
	m, err := ParseManifest([]byte(referenceYAML), "test.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	set, revisit, err := m.Build()
	if err != nil {
		t.Fatalf("Build() unexpected error: %v", err)
	}
	if set.Size() != 3 || revisit.Size() != 2 {
		t.Fatalf("sizes = %d/%d, want 3/2", set.Size(), revisit.Size())
	}

	results, total, err := calc.Run(set, revisit)
	if err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}
	if len(results) != 5 {
		t.Errorf("got %d results, want 5", len(results))
	}
	if math.Abs(total-12.1124) > 1e-9 {
		t.Errorf("total = %v, want 12.1124", total)
	}
}

func TestMembersMap_PreservesOrder(t *testing.T) {
	members := Members{
		{Group: "z", Names: []string{"1"}},
		{Group: "a", Names: []string{"2", "3"}},
	}
	m := members.Map()
	keys := m.Keys()
	if len(keys) != 2 || keys[0] != "z" || keys[1] != "a" {
		t.Errorf("Keys() = %v, want [z a]", keys)
	}
	n, err := m.SizeOf("a")
	if err != nil || n != 2 {
		t.Errorf("SizeOf(a) = %d, %v; want 2, nil", n, err)
	}
}

func TestParseManifest_Errors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "empty",
			yaml:    "revisit: []\n",
			wantErr: "no aggregators defined",
		},
		{
			name: "missing kind",
			yaml: `
aggregators:
  - coefs: [1]
`,
			wantErr: "kind is required",
		},
		{
			name: "unknown kind",
			yaml: `
aggregators:
  - kind: product
    coefs: [1]
`,
			wantErr: `unknown kind "product"`,
		},
		{
			name: "missing coefs",
			yaml: `
aggregators:
  - kind: coefficients
`,
			wantErr: "coefs is required",
		},
		{
			name: "paired without ids",
			yaml: `
aggregators:
  - kind: paired
    coefs: [1]
`,
			wantErr: "ids is required",
		},
		{
			name: "coefficients with ids",
			yaml: `
aggregators:
  - kind: coefficients
    coefs: [1]
    ids: [1]
`,
			wantErr: "only coefs is allowed",
		},
		{
			name: "grouped without groups",
			yaml: `
aggregators:
  - kind: grouped
    coefs: [1]
`,
			wantErr: "groups is required",
		},
		{
			name: "group without members",
			yaml: `
aggregators:
  - kind: grouped
    coefs: [1]
    groups: [chicken, pork]
    members:
      chicken: [baz]
`,
			wantErr: `group "pork" has no members entry`,
		},
		{
			name: "members not a mapping",
			yaml: `
aggregators:
  - kind: grouped
    coefs: [1]
    groups: [chicken]
    members: [chicken]
`,
			wantErr: "members must be a mapping",
		},
		{
			name: "revisit out of range",
			yaml: `
aggregators:
  - kind: coefficients
    coefs: [1]
revisit: [1]
`,
			wantErr: "revisit[0]: index 1 out of range",
		},
		{
			name: "unknown field",
			yaml: `
aggregators:
  - kind: coefficients
    coef: [1]
`,
			wantErr: "field coef not found",
		},
		{
			name:    "bad yaml",
			yaml:    "aggregators: [",
			wantErr: "parsing test.yaml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseManifest([]byte(tt.yaml), "test.yaml")
			if err == nil {
				t.Fatalf("expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fixed.yaml")
	if err := os.WriteFile(path, []byte(referenceYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	m, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(m.Aggregators) != 3 {
		t.Errorf("expected 3 aggregators, got %d", len(m.Aggregators))
	}

	if _, err := LoadManifest(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestFindManifest(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(root, "fixed.yml")
	if err := os.WriteFile(path, []byte(referenceYAML), 0o644); err != nil {
		t.Fatal(err)
	}

	loc, err := FindManifest(nested)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loc == nil {
		t.Fatal("FindManifest() found nothing")
	}
	want, _ := filepath.Abs(path)
	if loc.Path != want {
		t.Errorf("Path = %q, want %q", loc.Path, want)
	}
	if loc.Name != "fixed.yml" {
		t.Errorf("Name = %q, want fixed.yml", loc.Name)
	}
	if loc.Depth != 2 {
		t.Errorf("Depth = %d, want 2", loc.Depth)
	}
}

func TestFindManifest_Ambiguous(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"fixed.yaml", "fixed.yml"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(referenceYAML), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	_, err := FindManifest(dir)
	if err == nil || !strings.Contains(err.Error(), "both fixed.yaml and fixed.yml") {
		t.Errorf("error = %v, want ambiguity error", err)
	}
}

func TestFindManifest_SkipsDirectory(t *testing.T) {
	root := t.TempDir()
	if err := os.Mkdir(filepath.Join(root, "fixed.yaml"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "fixed.yml"), []byte(referenceYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	loc, err := FindManifest(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loc == nil || loc.Name != "fixed.yml" || loc.Depth != 0 {
		t.Errorf("FindManifest() = %+v, want fixed.yml at depth 0", loc)
	}
}

func TestLoadManifest_RecordsSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixed.yaml")
	if err := os.WriteFile(path, []byte(referenceYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	m, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Source != path {
		t.Errorf("Source = %q, want %q", m.Source, path)
	}
}
