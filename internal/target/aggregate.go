package target

import (
	"fmt"
	"slices"
	"strings"

	"github.com/podlink/podlink/internal/manifest"
	"github.com/podlink/podlink/internal/project"
	"github.com/podlink/podlink/pkgs/xcode"
)

// AggregateTarget is the consolidation point for all pod contributions to
// one consumer build target. It is constructed once per integration unit
// from an already-resolved snapshot and never mutated afterwards; derived
// artifact lists are computed lazily and memoized (single writer, then
// read-only).
type AggregateTarget struct {
	BuildType        xcode.BuildType
	Platform         string
	Archs            []string
	TargetDefinition *manifest.TargetDefinition

	// ClientRoot is the consumer project's root directory; SandboxRoot is
	// the root of the pods sandbox.
	ClientRoot  string
	SandboxRoot string

	UserProject     *project.Project
	UserTargetUUIDs []string

	// BuildConfigurations is the recognized configuration set, in
	// declaration order. Iteration order of every aggregation result
	// follows it.
	BuildConfigurations []manifest.BuildConfiguration

	// Cross-cutting policy carried unchanged through Merge.
	AppExtensionAPIOnly         bool
	BuildLibraryForDistribution bool
	SearchPathsAggregateTargets []*AggregateTarget

	SettingsCompiler SettingsCompiler

	podTargetsByConfig map[string][]*PodTarget

	// Memoized derived data.
	podTargets               []*PodTarget
	frameworkPathsByConfig   map[string][]string
	xcframeworkPathsByConfig map[string][]string
	resourcePathsByConfig    map[string][]string
	onDemandResourcePaths    []string
	onDemandResolved         bool
	buildSettingsByConfig    map[string]BuildSettings
}

// Options carries the construction inputs for an aggregate target, as
// produced by the resolver/planner.
type Options struct {
	BuildType        xcode.BuildType
	Platform         string
	Archs            []string
	TargetDefinition *manifest.TargetDefinition
	ClientRoot       string
	SandboxRoot      string
	UserProject      *project.Project
	UserTargetUUIDs  []string
	Configurations   []manifest.BuildConfiguration

	// PodTargetsByConfig maps a configuration name to the pod targets
	// active in it. Configurations without an entry get an empty list.
	PodTargetsByConfig map[string][]*PodTarget

	SettingsCompiler SettingsCompiler

	AppExtensionAPIOnly         bool
	BuildLibraryForDistribution bool
	SearchPathsAggregateTargets []*AggregateTarget
}

// New constructs an aggregate target. The target definition must be present
// and concrete; an aggregate target for an abstract definition must not
// exist.
func New(opts Options) (*AggregateTarget, error) {
	if opts.TargetDefinition == nil {
		return nil, fmt.Errorf("failed to create aggregate target: no target definition")
	}
	if opts.TargetDefinition.Abstract {
		return nil, fmt.Errorf("failed to create aggregate target for %s: target definition is abstract", opts.TargetDefinition.Name)
	}
	return newAggregateTarget(opts), nil
}

// newAggregateTarget builds the value without re-validating the target
// definition. Merge goes through here: its source instance already passed
// validation.
func newAggregateTarget(opts Options) *AggregateTarget {
	podsByConfig := make(map[string][]*PodTarget, len(opts.Configurations))
	for _, config := range opts.Configurations {
		podsByConfig[config.Name] = slices.Clone(opts.PodTargetsByConfig[config.Name])
	}
	return &AggregateTarget{
		BuildType:                   opts.BuildType,
		Platform:                    opts.Platform,
		Archs:                       slices.Clone(opts.Archs),
		TargetDefinition:            opts.TargetDefinition,
		ClientRoot:                  opts.ClientRoot,
		SandboxRoot:                 opts.SandboxRoot,
		UserProject:                 opts.UserProject,
		UserTargetUUIDs:             slices.Clone(opts.UserTargetUUIDs),
		BuildConfigurations:         slices.Clone(opts.Configurations),
		AppExtensionAPIOnly:         opts.AppExtensionAPIOnly,
		BuildLibraryForDistribution: opts.BuildLibraryForDistribution,
		SearchPathsAggregateTargets: slices.Clone(opts.SearchPathsAggregateTargets),
		SettingsCompiler:            opts.SettingsCompiler,
		podTargetsByConfig:          podsByConfig,
		frameworkPathsByConfig:      make(map[string][]string),
		xcframeworkPathsByConfig:    make(map[string][]string),
		resourcePathsByConfig:       make(map[string][]string),
		buildSettingsByConfig:       make(map[string]BuildSettings),
	}
}

// Label returns the label of the aggregate target, derived from its target
// definition.
func (a *AggregateTarget) Label() string {
	return a.TargetDefinition.Label()
}

// Name returns the label; the aggregate target is named after it.
func (a *AggregateTarget) Name() string {
	return a.Label()
}

func (a *AggregateTarget) configuration(name string) (manifest.BuildConfiguration, bool) {
	for _, config := range a.BuildConfigurations {
		if config.Name == name {
			return config, true
		}
	}
	return manifest.BuildConfiguration{}, false
}

func (a *AggregateTarget) configurationNames() []string {
	names := make([]string, 0, len(a.BuildConfigurations))
	for _, config := range a.BuildConfigurations {
		names = append(names, config.Name)
	}
	return names
}

func (a *AggregateTarget) unknownConfiguration(name string) error {
	return fmt.Errorf("failed to look up configuration %q for %s: unknown configuration (valid: %s)",
		name, a.Label(), strings.Join(a.configurationNames(), ", "))
}

// PodTargetsForBuildConfiguration returns the pod targets active in the
// given configuration, in resolver order.
func (a *AggregateTarget) PodTargetsForBuildConfiguration(config string) ([]*PodTarget, error) {
	if _, ok := a.configuration(config); !ok {
		return nil, a.unknownConfiguration(config)
	}
	return a.podTargetsByConfig[config], nil
}

// PodTargets returns the union of pod targets across all configurations,
// deduplicated preserving first occurrence, in configuration declaration
// order. The result is memoized.
func (a *AggregateTarget) PodTargets() []*PodTarget {
	if a.podTargets != nil {
		return a.podTargets
	}
	var union []*PodTarget
	for _, config := range a.BuildConfigurations {
		union = append(union, a.podTargetsByConfig[config.Name]...)
	}
	a.podTargets = dedupPodTargets(union)
	return a.podTargets
}

// FrameworkPaths returns the deduplicated framework paths contributed by
// the library specs of the pods active in config. The result is memoized.
func (a *AggregateTarget) FrameworkPaths(config string) ([]string, error) {
	if paths, ok := a.frameworkPathsByConfig[config]; ok {
		return paths, nil
	}
	pods, err := a.PodTargetsForBuildConfiguration(config)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, pod := range pods {
		paths = append(paths, pod.librarySpecPaths(pod.FrameworkPaths)...)
	}
	paths = dedupStrings(paths)
	a.frameworkPathsByConfig[config] = paths
	return paths, nil
}

// XCFrameworkPaths returns the deduplicated xcframework paths contributed
// by the library specs of the pods active in config. The result is memoized.
func (a *AggregateTarget) XCFrameworkPaths(config string) ([]string, error) {
	if paths, ok := a.xcframeworkPathsByConfig[config]; ok {
		return paths, nil
	}
	pods, err := a.PodTargetsForBuildConfiguration(config)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, pod := range pods {
		paths = append(paths, pod.librarySpecPaths(pod.XCFrameworkPaths)...)
	}
	paths = dedupStrings(paths)
	a.xcframeworkPathsByConfig[config] = paths
	return paths, nil
}

// ResourcePaths returns the deduplicated resource paths that must be copied
// into the consumer for config.
//
// Pods that are built by the install and produce a dynamic framework are
// excluded: their resources end up inside the framework bundle and must not
// be copied again. For static-framework pods, compilable resources are
// rewritten to their compiled output under ${BUILT_PRODUCTS_DIR}. The
// bridge-support file is appended when enabled at the manifest level.
func (a *AggregateTarget) ResourcePaths(config string) ([]string, error) {
	if paths, ok := a.resourcePathsByConfig[config]; ok {
		return paths, nil
	}
	pods, err := a.PodTargetsForBuildConfiguration(config)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, pod := range pods {
		if pod.ShouldBuild && pod.BuildAsDynamicFramework() {
			continue
		}
		resourcePaths := pod.librarySpecPaths(pod.ResourcePaths)
		if pod.BuildAsStaticFramework() {
			for i, resourcePath := range resourcePaths {
				resourcePaths[i] = xcode.CompiledResourcePath(BuiltProductsDirVar, resourcePath)
			}
		}
		paths = append(paths, resourcePaths...)
	}
	if bridgeSupport := a.bridgeSupportFile(); bridgeSupport != "" {
		paths = append(paths, bridgeSupport)
	}
	paths = dedupStrings(paths)
	a.resourcePathsByConfig[config] = paths
	return paths, nil
}

// OnDemandResourcePaths returns the configuration-independent union of
// on-demand resource paths across all pod targets. On-demand resources are
// integrated once via the consumer's resource build phase, not per
// configuration.
func (a *AggregateTarget) OnDemandResourcePaths() []string {
	if a.onDemandResolved {
		return a.onDemandResourcePaths
	}
	var paths []string
	for _, pod := range a.PodTargets() {
		paths = append(paths, pod.librarySpecPaths(pod.OnDemandResourcePaths)...)
	}
	a.onDemandResourcePaths = dedupStrings(paths)
	a.onDemandResolved = true
	return a.onDemandResourcePaths
}

// IncludesFrameworks reports whether any configuration contributes
// framework paths.
func (a *AggregateTarget) IncludesFrameworks() bool {
	for _, config := range a.BuildConfigurations {
		paths, err := a.FrameworkPaths(config.Name)
		if err == nil && len(paths) > 0 {
			return true
		}
	}
	return false
}

// IncludesXCFrameworks reports whether any configuration contributes
// xcframework paths.
func (a *AggregateTarget) IncludesXCFrameworks() bool {
	for _, config := range a.BuildConfigurations {
		paths, err := a.XCFrameworkPaths(config.Name)
		if err == nil && len(paths) > 0 {
			return true
		}
	}
	return false
}

// IncludesResources reports whether any configuration contributes resource
// paths.
func (a *AggregateTarget) IncludesResources() bool {
	for _, config := range a.BuildConfigurations {
		paths, err := a.ResourcePaths(config.Name)
		if err == nil && len(paths) > 0 {
			return true
		}
	}
	return false
}

// IncludesOnDemandResources reports whether any pod target contributes
// on-demand resources.
func (a *AggregateTarget) IncludesOnDemandResources() bool {
	return len(a.OnDemandResourcePaths()) > 0
}

// UsesSwift reports whether any pod target in any configuration uses Swift.
func (a *AggregateTarget) UsesSwift() bool {
	for _, pod := range a.PodTargets() {
		if pod.UsesSwift {
			return true
		}
	}
	return false
}

// Merge returns a new aggregate target whose per-configuration pod lists
// are the deduplicated union of the receiver's and additional's, originals
// first. Entries of additional keyed by configuration names outside the
// recognized configuration set are ignored. The receiver is never mutated
// and the new instance starts with cold caches; policy flags and
// search-paths-only targets carry over unchanged.
func (a *AggregateTarget) Merge(additional map[string][]*PodTarget) *AggregateTarget {
	merged := make(map[string][]*PodTarget, len(a.BuildConfigurations))
	for _, config := range a.BuildConfigurations {
		union := slices.Clone(a.podTargetsByConfig[config.Name])
		union = append(union, additional[config.Name]...)
		merged[config.Name] = dedupPodTargets(union)
	}
	return newAggregateTarget(Options{
		BuildType:                   a.BuildType,
		Platform:                    a.Platform,
		Archs:                       a.Archs,
		TargetDefinition:            a.TargetDefinition,
		ClientRoot:                  a.ClientRoot,
		SandboxRoot:                 a.SandboxRoot,
		UserProject:                 a.UserProject,
		UserTargetUUIDs:             a.UserTargetUUIDs,
		Configurations:              a.BuildConfigurations,
		PodTargetsByConfig:          merged,
		SettingsCompiler:            a.SettingsCompiler,
		AppExtensionAPIOnly:         a.AppExtensionAPIOnly,
		BuildLibraryForDistribution: a.BuildLibraryForDistribution,
		SearchPathsAggregateTargets: a.SearchPathsAggregateTargets,
	})
}

// dedupStrings removes duplicates and empty entries, preserving the first
// occurrence of each value.
func dedupStrings(values []string) []string {
	seen := make(map[string]bool, len(values))
	deduped := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		deduped = append(deduped, v)
	}
	return deduped
}

// dedupPodTargets removes duplicate pod targets preserving the first
// occurrence of each.
func dedupPodTargets(pods []*PodTarget) []*PodTarget {
	seen := make(map[*PodTarget]bool, len(pods))
	deduped := make([]*PodTarget, 0, len(pods))
	for _, pod := range pods {
		if pod == nil || seen[pod] {
			continue
		}
		seen[pod] = true
		deduped = append(deduped, pod)
	}
	return deduped
}
