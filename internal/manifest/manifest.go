package manifest

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

// Dependency is a declared dependency of a target definition.
type Dependency struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version,omitempty"`
}

// TargetDefinition declares one consumer integration unit in the manifest.
// Abstract definitions only group children and never produce an aggregate
// target of their own.
type TargetDefinition struct {
	Name            string              `yaml:"name"`
	Abstract        bool                `yaml:"abstract,omitempty"`
	Platform        string              `yaml:"platform,omitempty"`
	UserTargetUUIDs []string            `yaml:"user_targets,omitempty"`
	Dependencies    []Dependency        `yaml:"dependencies,omitempty"`
	Children        []*TargetDefinition `yaml:"children,omitempty"`

	manifest *Manifest
}

// Label returns the label of the aggregate target generated for this
// definition.
func (t *TargetDefinition) Label() string {
	return "Pods-" + t.Name
}

// Manifest returns the manifest this definition was declared in, or nil for
// a definition constructed in memory.
func (t *TargetDefinition) Manifest() *Manifest {
	return t.manifest
}

// BuildConfiguration is one named build variant with its build-style tag
// (e.g. "debug", "release"). The tag is carried through to the settings
// compiler and is not interpreted here.
type BuildConfiguration struct {
	Name string `yaml:"name"`
	Kind string `yaml:"kind"`
}

// Spec is one declared spec of a pod. Kind distinguishes library specs from
// test and app specs, which never contribute artifacts to a consumer.
type Spec struct {
	Name string `yaml:"name"`
	Kind string `yaml:"kind,omitempty"` // library (default), test, app
}

// Pod is the resolved description of one pod target: how it is built and
// which artifacts each of its specs contributes.
type Pod struct {
	Name        string `yaml:"name"`
	BuildType   string `yaml:"build_type,omitempty"`
	ShouldBuild bool   `yaml:"should_build,omitempty"`
	UsesSwift   bool   `yaml:"uses_swift,omitempty"`
	Specs       []Spec `yaml:"specs,omitempty"`

	// Artifact paths keyed by spec name, in spec declaration order.
	Resources         map[string][]string `yaml:"resources,omitempty"`
	Frameworks        map[string][]string `yaml:"frameworks,omitempty"`
	XCFrameworks      map[string][]string `yaml:"xcframeworks,omitempty"`
	OnDemandResources map[string][]string `yaml:"on_demand_resources,omitempty"`

	// Configurations lists the build configuration names this pod is active
	// in. Empty means all configurations.
	Configurations []string `yaml:"configurations,omitempty"`
}

// Manifest is the declarative integration document: the recognized build
// configurations, the target definitions, and the already-resolved pod
// descriptions contributed by the resolver.
type Manifest struct {
	Path string `yaml:"-"`

	GenerateBridgeSupport bool                 `yaml:"generate_bridge_support,omitempty"`
	Configurations        []BuildConfiguration `yaml:"configurations"`
	TargetDefinitions     []*TargetDefinition  `yaml:"target_definitions"`
	Pods                  []*Pod               `yaml:"pods,omitempty"`
}

// Parse reads a manifest from data, or from file when data is nil.
func Parse(file string, data []byte) (*Manifest, error) {
	var reader io.Reader

	if data != nil {
		reader = bytes.NewBuffer(data)
	} else {
		f, err := os.Open(file)
		if err != nil {
			return nil, fmt.Errorf("failed to open manifest: %w", err)
		}
		defer f.Close()
		reader = f
	}

	var m Manifest
	if err := yaml.NewDecoder(reader).Decode(&m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	if data == nil {
		m.Path = file
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	for _, def := range m.TargetDefinitions {
		attach(def, &m)
	}
	return &m, nil
}

func attach(def *TargetDefinition, m *Manifest) {
	def.manifest = m
	for _, child := range def.Children {
		attach(child, m)
	}
}

// ConfigurationNames returns the configuration names in declaration order.
func (m *Manifest) ConfigurationNames() []string {
	names := make([]string, 0, len(m.Configurations))
	for _, c := range m.Configurations {
		names = append(names, c.Name)
	}
	return names
}

// ConcreteTargetDefinitions returns all non-abstract target definitions,
// walking the definition tree depth-first in declaration order.
func (m *Manifest) ConcreteTargetDefinitions() []*TargetDefinition {
	var defs []*TargetDefinition
	var walk func(list []*TargetDefinition)
	walk = func(list []*TargetDefinition) {
		for _, def := range list {
			if !def.Abstract {
				defs = append(defs, def)
			}
			walk(def.Children)
		}
	}
	walk(m.TargetDefinitions)
	return defs
}

func (m *Manifest) validate() error {
	if len(m.Configurations) == 0 {
		return fmt.Errorf("failed to validate manifest: no build configurations declared")
	}
	known := make(map[string]bool, len(m.Configurations))
	for _, c := range m.Configurations {
		if c.Name == "" {
			return fmt.Errorf("failed to validate manifest: build configuration with empty name")
		}
		if known[c.Name] {
			return fmt.Errorf("failed to validate manifest: duplicate build configuration %q", c.Name)
		}
		known[c.Name] = true
	}
	for _, pod := range m.Pods {
		for _, config := range pod.Configurations {
			if !known[config] {
				return fmt.Errorf("failed to validate manifest: pod %s references unknown configuration %q (valid: %s)",
					pod.Name, config, strings.Join(m.ConfigurationNames(), ", "))
			}
		}
	}
	var checkDeps func(defs []*TargetDefinition) error
	checkDeps = func(defs []*TargetDefinition) error {
		for _, def := range defs {
			for _, dep := range def.Dependencies {
				if dep.Version == "" {
					continue
				}
				if !semver.IsValid(canonicalVersion(dep.Version)) {
					return fmt.Errorf("failed to validate manifest: target %s depends on %s with invalid version %q",
						def.Name, dep.Name, dep.Version)
				}
			}
			if err := checkDeps(def.Children); err != nil {
				return err
			}
		}
		return nil
	}
	return checkDeps(m.TargetDefinitions)
}

// canonicalVersion normalizes a manifest version string to the semver form
// expected by golang.org/x/mod/semver ("1.2.3" -> "v1.2.3").
func canonicalVersion(v string) string {
	if strings.HasPrefix(v, "v") {
		return v
	}
	return "v" + v
}
