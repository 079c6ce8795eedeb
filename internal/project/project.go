package project

import (
	"github.com/google/uuid"

	"github.com/podlink/podlink/pkgs/xcode"
)

// NativeTarget is one buildable target of the consumer project.
type NativeTarget struct {
	UUID        string
	Name        string
	ProductType xcode.ProductType
}

// Project is a minimal view of the consumer project's object graph: the
// native targets an aggregate target may need to integrate with, keyed by
// their stable identifiers.
type Project struct {
	Path string

	targets map[string]*NativeTarget
	order   []string
}

// New creates an empty project rooted at path.
func New(path string) *Project {
	return &Project{
		Path:    path,
		targets: make(map[string]*NativeTarget),
	}
}

// AddNativeTarget registers a native target with a freshly generated
// identifier and returns it.
func (p *Project) AddNativeTarget(name string, productType xcode.ProductType) *NativeTarget {
	target := &NativeTarget{
		UUID:        uuid.NewString(),
		Name:        name,
		ProductType: productType,
	}
	p.targets[target.UUID] = target
	p.order = append(p.order, target.UUID)
	return target
}

// NativeTarget looks up a native target by identifier.
func (p *Project) NativeTarget(uuid string) (*NativeTarget, bool) {
	target, ok := p.targets[uuid]
	return target, ok
}

// NativeTargets returns all native targets in insertion order.
func (p *Project) NativeTargets() []*NativeTarget {
	targets := make([]*NativeTarget, 0, len(p.order))
	for _, id := range p.order {
		targets = append(targets, p.targets[id])
	}
	return targets
}
