package target

import (
	"errors"
	"strings"
	"testing"

	"github.com/podlink/podlink/internal/manifest"
	"github.com/podlink/podlink/internal/project"
	"github.com/podlink/podlink/pkgs/xcode"
)

func newClassifyTarget(t *testing.T, proj *project.Project, uuids []string) *AggregateTarget {
	t.Helper()
	target, err := New(Options{
		TargetDefinition: &manifest.TargetDefinition{Name: "App"},
		Configurations:   testConfigs,
		UserProject:      proj,
		UserTargetUUIDs:  uuids,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return target
}

func TestClassify_noUserProject(t *testing.T) {
	target := newClassifyTarget(t, nil, []string{"ignored"})

	targets, err := target.UserTargets()
	if err != nil {
		t.Fatalf("UserTargets() error = %v", err)
	}
	if len(targets) != 0 {
		t.Errorf("UserTargets() = %d targets, want 0", len(targets))
	}

	isLibrary, err := target.IsLibrary()
	if err != nil {
		t.Fatalf("IsLibrary() error = %v", err)
	}
	if isLibrary {
		t.Error("IsLibrary() = true, want false without user project")
	}

	requiresHost, err := target.RequiresHostTarget()
	if err != nil {
		t.Fatalf("RequiresHostTarget() error = %v", err)
	}
	if requiresHost {
		t.Error("RequiresHostTarget() = true, want false without user project")
	}
}

func TestClassify_brokenReference(t *testing.T) {
	proj := project.New("/project/App.xcodeproj")
	app := proj.AddNativeTarget("App", xcode.ProductTypeApplication)

	target := newClassifyTarget(t, proj, []string{app.UUID, "missing-uuid"})

	_, err := target.UserTargets()
	if err == nil {
		t.Fatal("UserTargets() error = nil, want broken reference error")
	}
	var broken *BrokenReferenceError
	if !errors.As(err, &broken) {
		t.Fatalf("UserTargets() error = %T, want *BrokenReferenceError", err)
	}
	if broken.UUID != "missing-uuid" {
		t.Errorf("broken.UUID = %q, want %q", broken.UUID, "missing-uuid")
	}
	if broken.Label != "Pods-App" {
		t.Errorf("broken.Label = %q, want %q", broken.Label, "Pods-App")
	}
}

func TestClassify_inconsistentProductTypes(t *testing.T) {
	proj := project.New("/project/App.xcodeproj")
	fw := proj.AddNativeTarget("Framework", xcode.ProductTypeFramework)
	ext := proj.AddNativeTarget("Extension", xcode.ProductTypeAppExtension)

	target := newClassifyTarget(t, proj, []string{fw.UUID, ext.UUID})

	for name, call := range map[string]func() (bool, error){
		"IsLibrary":          target.IsLibrary,
		"RequiresHostTarget": target.RequiresHostTarget,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := call()
			if err == nil {
				t.Fatalf("%s() error = nil, want inconsistency error", name)
			}
			var inconsistent *InconsistentTargetKindError
			if !errors.As(err, &inconsistent) {
				t.Fatalf("%s() error = %T, want *InconsistentTargetKindError", name, err)
			}
			msg := err.Error()
			if !strings.Contains(msg, "framework") || !strings.Contains(msg, "app_extension") {
				t.Errorf("%s() error = %q, want both type names enumerated", name, msg)
			}
		})
	}
}

func TestIsLibrary(t *testing.T) {
	tests := []struct {
		productType xcode.ProductType
		want        bool
	}{
		{xcode.ProductTypeFramework, true},
		{xcode.ProductTypeDynamicLibrary, true},
		{xcode.ProductTypeStaticLibrary, true},
		{xcode.ProductTypeApplication, false},
		{xcode.ProductTypeAppExtension, false},
	}

	for _, tt := range tests {
		t.Run(tt.productType.String(), func(t *testing.T) {
			proj := project.New("/project/App.xcodeproj")
			native := proj.AddNativeTarget("Consumer", tt.productType)
			target := newClassifyTarget(t, proj, []string{native.UUID})

			got, err := target.IsLibrary()
			if err != nil {
				t.Fatalf("IsLibrary() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("IsLibrary() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRequiresHostTarget(t *testing.T) {
	tests := []struct {
		productType xcode.ProductType
		want        bool
	}{
		{xcode.ProductTypeAppExtension, true},
		{xcode.ProductTypeFramework, true},
		{xcode.ProductTypeStaticLibrary, true},
		{xcode.ProductTypeMessagesExtension, true},
		{xcode.ProductTypeWatchExtension, true},
		{xcode.ProductTypeXPCService, true},
		{xcode.ProductTypeApplication, false},
		{xcode.ProductTypeDynamicLibrary, false},
		{xcode.ProductTypeUnitTestBundle, false},
	}

	for _, tt := range tests {
		t.Run(tt.productType.String(), func(t *testing.T) {
			proj := project.New("/project/App.xcodeproj")
			native := proj.AddNativeTarget("Consumer", tt.productType)
			target := newClassifyTarget(t, proj, []string{native.UUID})

			got, err := target.RequiresHostTarget()
			if err != nil {
				t.Fatalf("RequiresHostTarget() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("RequiresHostTarget() = %v, want %v", got, tt.want)
			}
		})
	}
}
