package target

import (
	"fmt"
	"strings"

	"github.com/podlink/podlink/internal/project"
	"github.com/podlink/podlink/pkgs/xcode"
)

// InconsistentTargetKindError reports user targets of mixed product types.
// A single aggregate target must integrate with consumer targets of one
// consistent product type; the classifier never picks a majority type.
type InconsistentTargetKindError struct {
	Label        string
	ProductTypes []xcode.ProductType
}

func (e *InconsistentTargetKindError) Error() string {
	names := make([]string, 0, len(e.ProductTypes))
	for _, p := range e.ProductTypes {
		names = append(names, p.String())
	}
	return fmt.Sprintf("failed to classify %s: user targets have inconsistent product types (%s)",
		e.Label, strings.Join(names, ", "))
}

// BrokenReferenceError reports a user-target identifier that cannot be
// resolved in the attached user project. This is a planning-stage invariant
// violation, not a user error.
type BrokenReferenceError struct {
	Label string
	UUID  string
}

func (e *BrokenReferenceError) Error() string {
	return fmt.Sprintf("failed to resolve user target %q for %s: not found in user project", e.UUID, e.Label)
}

// UserTargets resolves the user-target identifiers against the user
// project's object graph. With no user project attached it returns the
// empty sequence; an unresolvable identifier is a BrokenReferenceError.
func (a *AggregateTarget) UserTargets() ([]*project.NativeTarget, error) {
	if a.UserProject == nil {
		return nil, nil
	}
	targets := make([]*project.NativeTarget, 0, len(a.UserTargetUUIDs))
	for _, id := range a.UserTargetUUIDs {
		target, ok := a.UserProject.NativeTarget(id)
		if !ok {
			return nil, &BrokenReferenceError{Label: a.Label(), UUID: id}
		}
		targets = append(targets, target)
	}
	return targets, nil
}

// userProductType resolves the single product type of the user targets.
// ok is false when no user project is attached or no targets are declared.
func (a *AggregateTarget) userProductType() (productType xcode.ProductType, ok bool, err error) {
	targets, err := a.UserTargets()
	if err != nil {
		return xcode.ProductTypeUnknown, false, err
	}
	if len(targets) == 0 {
		return xcode.ProductTypeUnknown, false, nil
	}
	seen := make(map[xcode.ProductType]bool)
	var kinds []xcode.ProductType
	for _, target := range targets {
		if !seen[target.ProductType] {
			seen[target.ProductType] = true
			kinds = append(kinds, target.ProductType)
		}
	}
	if len(kinds) > 1 {
		return xcode.ProductTypeUnknown, false, &InconsistentTargetKindError{Label: a.Label(), ProductTypes: kinds}
	}
	return kinds[0], true, nil
}

// IsLibrary reports whether the consumer is a library-type product
// (framework, dynamic library, or static library). Without a user project
// it returns false.
func (a *AggregateTarget) IsLibrary() (bool, error) {
	productType, ok, err := a.userProductType()
	if err != nil || !ok {
		return false, err
	}
	switch productType {
	case xcode.ProductTypeFramework, xcode.ProductTypeDynamicLibrary, xcode.ProductTypeStaticLibrary:
		return true, nil
	}
	return false, nil
}

// hostRequiringProductTypes is the closed set of product types whose build
// artifacts must be embedded in a host application at runtime.
var hostRequiringProductTypes = map[xcode.ProductType]bool{
	xcode.ProductTypeAppExtension:      true,
	xcode.ProductTypeFramework:         true,
	xcode.ProductTypeStaticLibrary:     true,
	xcode.ProductTypeMessagesExtension: true,
	xcode.ProductTypeWatchExtension:    true,
	xcode.ProductTypeXPCService:        true,
}

// RequiresHostTarget reports whether the consumer's artifacts must be
// embedded in a host application. Without a user project it returns false.
func (a *AggregateTarget) RequiresHostTarget() (bool, error) {
	productType, ok, err := a.userProductType()
	if err != nil || !ok {
		return false, err
	}
	return hostRequiringProductTypes[productType], nil
}
