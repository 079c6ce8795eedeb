package integrate

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/podlink/podlink/internal/manifest"
	"github.com/podlink/podlink/internal/project"
	"github.com/podlink/podlink/pkgs/xcode"
)

const planManifest = `
configurations:
  - {name: Debug, kind: debug}
  - {name: Release, kind: release}
target_definitions:
  - name: Shared
    abstract: true
    children:
      - name: App
pods:
  - name: Networking
    build_type: dynamic_framework
    should_build: true
    frameworks:
      Networking: ["${PODS_ROOT}/Networking/Networking.framework"]
  - name: Assets
    resources:
      Assets: ["${PODS_ROOT}/Assets/logo.png"]
    configurations: [Release]
`

func TestPlan(t *testing.T) {
	m, err := manifest.Parse("", []byte(planManifest))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	targets, err := Plan(m, Options{
		SandboxRoot: "/project/Pods",
		ClientRoot:  "/project",
	})
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}
	if len(targets) != 1 {
		t.Fatalf("Plan() = %d targets, want 1 (abstract definitions excluded)", len(targets))
	}

	target := targets[0]
	if target.Label() != "Pods-App" {
		t.Errorf("Label() = %q, want Pods-App", target.Label())
	}

	// Networking (no explicit configurations) is active everywhere; Assets
	// only in Release.
	debug, err := target.PodTargetsForBuildConfiguration("Debug")
	if err != nil {
		t.Fatalf("PodTargetsForBuildConfiguration() error = %v", err)
	}
	if len(debug) != 1 || debug[0].Name != "Networking" {
		t.Errorf("Debug pods = %v, want [Networking]", debug)
	}

	release, err := target.PodTargetsForBuildConfiguration("Release")
	if err != nil {
		t.Fatalf("PodTargetsForBuildConfiguration() error = %v", err)
	}
	if len(release) != 2 {
		t.Errorf("Release pods = %d, want 2", len(release))
	}

	resources, err := target.ResourcePaths("Release")
	if err != nil {
		t.Fatalf("ResourcePaths() error = %v", err)
	}
	if want := []string{"${PODS_ROOT}/Assets/logo.png"}; !reflect.DeepEqual(resources, want) {
		t.Errorf("ResourcePaths(Release) = %v, want %v", resources, want)
	}

	frameworks, err := target.FrameworkPaths("Debug")
	if err != nil {
		t.Fatalf("FrameworkPaths() error = %v", err)
	}
	if want := []string{"${PODS_ROOT}/Networking/Networking.framework"}; !reflect.DeepEqual(frameworks, want) {
		t.Errorf("FrameworkPaths(Debug) = %v, want %v", frameworks, want)
	}
}

func TestPlan_implicitLibrarySpec(t *testing.T) {
	doc := `
configurations:
  - {name: Debug, kind: debug}
target_definitions:
  - name: App
pods:
  - name: A
    resources:
      A: ["r1.png"]
`
	m, err := manifest.Parse("", []byte(doc))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	targets, err := Plan(m, Options{})
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}

	resources, err := targets[0].ResourcePaths("Debug")
	if err != nil {
		t.Fatalf("ResourcePaths() error = %v", err)
	}
	if want := []string{"r1.png"}; !reflect.DeepEqual(resources, want) {
		t.Errorf("ResourcePaths(Debug) = %v, want %v (implicit library spec)", resources, want)
	}
}

func TestPlan_badPod(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{
			name: "unknown build type",
			doc: `
configurations:
  - {name: Debug, kind: debug}
target_definitions:
  - name: App
pods:
  - name: A
    build_type: hologram
`,
		},
		{
			name: "unknown spec kind",
			doc: `
configurations:
  - {name: Debug, kind: debug}
target_definitions:
  - name: App
pods:
  - name: A
    specs:
      - {name: A, kind: benchmark}
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := manifest.Parse("", []byte(tt.doc))
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if _, err := Plan(m, Options{}); err == nil {
				t.Error("Plan() error = nil, want error")
			}
		})
	}
}

func TestDefaultSettingsCompiler(t *testing.T) {
	m, err := manifest.Parse("", []byte(planManifest))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	targets, err := Plan(m, Options{})
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}

	settings, err := targets[0].BuildSettingsFor("Debug")
	if err != nil {
		t.Fatalf("BuildSettingsFor() error = %v", err)
	}
	if settings["CONFIGURATION"] != "Debug" {
		t.Errorf("settings CONFIGURATION = %q, want Debug", settings["CONFIGURATION"])
	}
	if settings["PODS_ROOT"] == "" {
		t.Error("settings PODS_ROOT empty, want set")
	}
}

func TestPlan_attachesUserProject(t *testing.T) {
	doc := `
configurations:
  - {name: Debug, kind: debug}
target_definitions:
  - name: App
    user_targets: [%s]
`
	proj := project.New("/project/App.xcodeproj")
	native := proj.AddNativeTarget("App", xcode.ProductTypeApplication)

	m, err := manifest.Parse("", []byte(fmt.Sprintf(doc, native.UUID)))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	targets, err := Plan(m, Options{UserProject: proj})
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}

	userTargets, err := targets[0].UserTargets()
	if err != nil {
		t.Fatalf("UserTargets() error = %v", err)
	}
	if len(userTargets) != 1 || userTargets[0] != native {
		t.Errorf("UserTargets() = %v, want the registered native target", userTargets)
	}
}
