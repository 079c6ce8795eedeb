package manifest

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

const testManifest = `
generate_bridge_support: false
configurations:
  - {name: Debug, kind: debug}
  - {name: Release, kind: release}
target_definitions:
  - name: Shared
    abstract: true
    children:
      - name: App
        platform: ios
        user_targets: [uuid-app]
        dependencies:
          - {name: Alamofire, version: 5.6.1}
      - name: Watch
        platform: watchos
pods:
  - name: Alamofire
    build_type: dynamic_framework
    should_build: true
    uses_swift: true
    specs:
      - {name: Alamofire, kind: library}
    frameworks:
      Alamofire: ["${PODS_ROOT}/Alamofire/Alamofire.framework"]
    configurations: [Debug, Release]
`

func TestParse(t *testing.T) {
	m, err := Parse("", []byte(testManifest))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if got, want := m.ConfigurationNames(), []string{"Debug", "Release"}; !reflect.DeepEqual(got, want) {
		t.Errorf("ConfigurationNames() = %v, want %v", got, want)
	}

	concrete := m.ConcreteTargetDefinitions()
	if len(concrete) != 2 {
		t.Fatalf("ConcreteTargetDefinitions() = %d definitions, want 2", len(concrete))
	}
	if concrete[0].Name != "App" || concrete[1].Name != "Watch" {
		t.Errorf("concrete definitions = %s, %s; want App, Watch", concrete[0].Name, concrete[1].Name)
	}
	if concrete[0].Label() != "Pods-App" {
		t.Errorf("Label() = %q, want %q", concrete[0].Label(), "Pods-App")
	}
	if concrete[0].Manifest() != m {
		t.Error("Manifest() of nested definition not attached to parsed manifest")
	}

	if len(m.Pods) != 1 || m.Pods[0].Name != "Alamofire" {
		t.Fatalf("Pods = %v, want one Alamofire entry", m.Pods)
	}
	if !m.Pods[0].ShouldBuild || !m.Pods[0].UsesSwift {
		t.Error("pod flags not decoded")
	}
}

func TestParse_fromFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "Podfile.yaml")
	if err := os.WriteFile(file, []byte(testManifest), 0644); err != nil {
		t.Fatal(err)
	}

	m, err := Parse(file, nil)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if m.Path != file {
		t.Errorf("Path = %q, want %q", m.Path, file)
	}
}

func TestParse_missingFile(t *testing.T) {
	_, err := Parse(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	if err == nil || !strings.Contains(err.Error(), "failed to open manifest") {
		t.Errorf("Parse() error = %v, want wrapped open error", err)
	}
}

func TestParse_errors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{
			name:    "no configurations",
			doc:     "target_definitions:\n  - name: App\n",
			wantErr: "no build configurations",
		},
		{
			name: "duplicate configuration",
			doc: `
configurations:
  - {name: Debug, kind: debug}
  - {name: Debug, kind: debug}
target_definitions:
  - name: App
`,
			wantErr: "duplicate build configuration",
		},
		{
			name: "pod references unknown configuration",
			doc: `
configurations:
  - {name: Debug, kind: debug}
target_definitions:
  - name: App
pods:
  - name: A
    configurations: [Profile]
`,
			wantErr: `unknown configuration "Profile" (valid: Debug)`,
		},
		{
			name: "invalid dependency version",
			doc: `
configurations:
  - {name: Debug, kind: debug}
target_definitions:
  - name: App
    dependencies:
      - {name: A, version: not-a-version}
`,
			wantErr: "invalid version",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("", []byte(tt.doc))
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Parse() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestParse_versionForms(t *testing.T) {
	tests := []struct {
		version string
		valid   bool
	}{
		{"5.6.1", true},
		{"v5.6.1", true},
		{"1.0", true},
		{"", true}, // unpinned
		{"banana", false},
	}

	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			doc := `
configurations:
  - {name: Debug, kind: debug}
target_definitions:
  - name: App
    dependencies:
      - {name: A, version: "` + tt.version + `"}
`
			_, err := Parse("", []byte(doc))
			if tt.valid && err != nil {
				t.Errorf("Parse() error = %v, want nil", err)
			}
			if !tt.valid && err == nil {
				t.Error("Parse() error = nil, want invalid version error")
			}
		})
	}
}
