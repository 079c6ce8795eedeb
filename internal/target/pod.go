package target

import (
	"github.com/podlink/podlink/pkgs/xcode"
)

// SpecKind distinguishes library specs from test and app specs. Only
// library specs contribute artifacts to a consumer.
type SpecKind int

const (
	SpecKindLibrary SpecKind = iota
	SpecKindTest
	SpecKindApp
)

// Spec is one declared spec of a pod target.
type Spec struct {
	Name string
	Kind SpecKind
}

// PodTarget is the read-only description of one component target: how it is
// built and which artifacts each of its specs contributes. Instances are
// produced by the resolver and never mutated here.
type PodTarget struct {
	Name        string
	BuildType   xcode.BuildType
	ShouldBuild bool
	UsesSwift   bool
	Specs       []Spec

	// Artifact paths keyed by spec name. Values are consulted in spec
	// declaration order.
	ResourcePaths         map[string][]string
	FrameworkPaths        map[string][]string
	XCFrameworkPaths      map[string][]string
	OnDemandResourcePaths map[string][]string
}

// LibrarySpecNames returns the names of the pod's library specs in
// declaration order.
func (p *PodTarget) LibrarySpecNames() []string {
	var names []string
	for _, spec := range p.Specs {
		if spec.Kind == SpecKindLibrary {
			names = append(names, spec.Name)
		}
	}
	return names
}

// BuildAsDynamicFramework reports whether the pod is built as a dynamic
// framework.
func (p *PodTarget) BuildAsDynamicFramework() bool {
	return p.BuildType == xcode.BuildTypeDynamicFramework
}

// BuildAsStaticFramework reports whether the pod is built as a static
// framework.
func (p *PodTarget) BuildAsStaticFramework() bool {
	return p.BuildType == xcode.BuildTypeStaticFramework
}

// librarySpecPaths flattens the entries of pathsBySpec for the pod's library
// specs, in spec order, skipping empty entries.
func (p *PodTarget) librarySpecPaths(pathsBySpec map[string][]string) []string {
	var paths []string
	for _, specName := range p.LibrarySpecNames() {
		for _, path := range pathsBySpec[specName] {
			if path == "" {
				continue
			}
			paths = append(paths, path)
		}
	}
	return paths
}
