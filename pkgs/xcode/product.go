package xcode

import "fmt"

// ProductType identifies the kind of product a native target produces.
// It is a closed enumeration: values are produced once by ParseProductType
// from the project model's type strings and only pattern-matched afterwards.
type ProductType int

const (
	ProductTypeUnknown ProductType = iota
	ProductTypeApplication
	ProductTypeFramework
	ProductTypeDynamicLibrary
	ProductTypeStaticLibrary
	ProductTypeAppExtension
	ProductTypeMessagesExtension
	ProductTypeWatchExtension
	ProductTypeXPCService
	ProductTypeUnitTestBundle
	ProductTypeUITestBundle
	ProductTypeBundle
)

var productTypeNames = map[ProductType]string{
	ProductTypeUnknown:           "unknown",
	ProductTypeApplication:       "application",
	ProductTypeFramework:         "framework",
	ProductTypeDynamicLibrary:    "dynamic_library",
	ProductTypeStaticLibrary:     "static_library",
	ProductTypeAppExtension:      "app_extension",
	ProductTypeMessagesExtension: "messages_extension",
	ProductTypeWatchExtension:    "watch2_extension",
	ProductTypeXPCService:        "xpc_service",
	ProductTypeUnitTestBundle:    "unit_test_bundle",
	ProductTypeUITestBundle:      "ui_test_bundle",
	ProductTypeBundle:            "bundle",
}

func (p ProductType) String() string {
	if name, ok := productTypeNames[p]; ok {
		return name
	}
	return "unknown"
}

// ParseProductType converts a product type string into its closed enum value.
func ParseProductType(s string) (ProductType, error) {
	for p, name := range productTypeNames {
		if name == s {
			return p, nil
		}
	}
	return ProductTypeUnknown, fmt.Errorf("failed to parse product type: unknown product type %q", s)
}

// BuildType is the build style of a pod target. The three values are
// mutually exclusive.
type BuildType int

const (
	BuildTypeStaticLibrary BuildType = iota
	BuildTypeStaticFramework
	BuildTypeDynamicFramework
)

var buildTypeNames = map[BuildType]string{
	BuildTypeStaticLibrary:    "static_library",
	BuildTypeStaticFramework:  "static_framework",
	BuildTypeDynamicFramework: "dynamic_framework",
}

func (b BuildType) String() string {
	if name, ok := buildTypeNames[b]; ok {
		return name
	}
	return "static_library"
}

// ParseBuildType converts a build style string into its enum value.
func ParseBuildType(s string) (BuildType, error) {
	for b, name := range buildTypeNames {
		if name == s {
			return b, nil
		}
	}
	return BuildTypeStaticLibrary, fmt.Errorf("failed to parse build type: unknown build type %q", s)
}

func (b BuildType) IsFramework() bool {
	return b == BuildTypeStaticFramework || b == BuildTypeDynamicFramework
}

func (b BuildType) IsDynamic() bool {
	return b == BuildTypeDynamicFramework
}

func (b BuildType) IsStatic() bool {
	return b == BuildTypeStaticLibrary || b == BuildTypeStaticFramework
}
