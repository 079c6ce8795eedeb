// Package integrate turns a parsed manifest into the aggregate targets the
// consumer integrates against. It performs no dependency resolution: the
// manifest already carries the resolved pod descriptions.
package integrate

import (
	"fmt"

	"github.com/podlink/podlink/internal/manifest"
	"github.com/podlink/podlink/internal/project"
	"github.com/podlink/podlink/internal/target"
	"github.com/podlink/podlink/pkgs/xcode"
)

// Options configures planning.
type Options struct {
	// SandboxRoot is the pods sandbox directory; ClientRoot the consumer
	// project root.
	SandboxRoot string
	ClientRoot  string

	// UserProject, when set, is attached to every aggregate target so
	// user-target classification can resolve identifiers.
	UserProject *project.Project

	// SettingsCompiler overrides the default settings compiler.
	SettingsCompiler target.SettingsCompiler
}

// Plan builds one aggregate target per concrete target definition of the
// manifest.
func Plan(m *manifest.Manifest, opts Options) ([]*target.AggregateTarget, error) {
	pods, err := convertPods(m)
	if err != nil {
		return nil, err
	}

	podsByConfig := make(map[string][]*target.PodTarget, len(m.Configurations))
	for i, desc := range m.Pods {
		configs := desc.Configurations
		if len(configs) == 0 {
			configs = m.ConfigurationNames()
		}
		for _, config := range configs {
			podsByConfig[config] = append(podsByConfig[config], pods[i])
		}
	}

	compiler := opts.SettingsCompiler
	if compiler == nil {
		compiler = DefaultSettingsCompiler
	}

	var targets []*target.AggregateTarget
	for _, def := range m.ConcreteTargetDefinitions() {
		t, err := target.New(target.Options{
			BuildType:          xcode.BuildTypeStaticLibrary,
			Platform:           def.Platform,
			TargetDefinition:   def,
			ClientRoot:         opts.ClientRoot,
			SandboxRoot:        opts.SandboxRoot,
			UserProject:        opts.UserProject,
			UserTargetUUIDs:    def.UserTargetUUIDs,
			Configurations:     m.Configurations,
			PodTargetsByConfig: podsByConfig,
			SettingsCompiler:   compiler,
		})
		if err != nil {
			return nil, err
		}
		targets = append(targets, t)
	}
	return targets, nil
}

// convertPods converts the manifest pod descriptions into pod targets. Each
// description converts to exactly one instance so identity-based dedup
// holds across configurations and target definitions.
func convertPods(m *manifest.Manifest) ([]*target.PodTarget, error) {
	pods := make([]*target.PodTarget, 0, len(m.Pods))
	for _, desc := range m.Pods {
		buildType := xcode.BuildTypeStaticLibrary
		if desc.BuildType != "" {
			var err error
			buildType, err = xcode.ParseBuildType(desc.BuildType)
			if err != nil {
				return nil, fmt.Errorf("failed to convert pod %s: %w", desc.Name, err)
			}
		}
		specs := make([]target.Spec, 0, len(desc.Specs))
		for _, spec := range desc.Specs {
			kind, err := parseSpecKind(spec.Kind)
			if err != nil {
				return nil, fmt.Errorf("failed to convert pod %s: %w", desc.Name, err)
			}
			specs = append(specs, target.Spec{Name: spec.Name, Kind: kind})
		}
		// A pod with no declared specs has one implicit library spec named
		// after itself.
		if len(specs) == 0 {
			specs = []target.Spec{{Name: desc.Name, Kind: target.SpecKindLibrary}}
		}
		pods = append(pods, &target.PodTarget{
			Name:                  desc.Name,
			BuildType:             buildType,
			ShouldBuild:           desc.ShouldBuild,
			UsesSwift:             desc.UsesSwift,
			Specs:                 specs,
			ResourcePaths:         desc.Resources,
			FrameworkPaths:        desc.Frameworks,
			XCFrameworkPaths:      desc.XCFrameworks,
			OnDemandResourcePaths: desc.OnDemandResources,
		})
	}
	return pods, nil
}

func parseSpecKind(kind string) (target.SpecKind, error) {
	switch kind {
	case "", "library":
		return target.SpecKindLibrary, nil
	case "test":
		return target.SpecKindTest, nil
	case "app":
		return target.SpecKindApp, nil
	}
	return target.SpecKindLibrary, fmt.Errorf("unknown spec kind %q", kind)
}

// DefaultSettingsCompiler produces a minimal settings table; real installs
// inject the full settings compiler here.
func DefaultSettingsCompiler(configName, configKind string, t *target.AggregateTarget) (target.BuildSettings, error) {
	settings := target.BuildSettings{
		"CONFIGURATION": configName,
		"PODS_ROOT":     target.PodsRootVar,
	}
	if configKind != "" {
		settings["PODS_CONFIGURATION_BUILD_DIR"] = "${PODS_BUILD_DIR}/" + configName
	}
	if t.UsesSwift() {
		settings["ALWAYS_EMBED_SWIFT_STANDARD_LIBRARIES"] = "YES"
	}
	return settings, nil
}
