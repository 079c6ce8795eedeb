package xcode

import (
	"path"
	"strings"
)

// compiledResourceExtensions maps a resource source extension to the
// extension of its compiled output. Resources with these extensions are
// compiled into the built product instead of being copied verbatim.
// Read-only after initialization.
var compiledResourceExtensions = map[string]string{
	".storyboard":     ".storyboardc",
	".xib":            ".nib",
	".xcdatamodel":    ".mom",
	".xcdatamodeld":   ".momd",
	".xcmappingmodel": ".cdm",
}

// IsCompilableResource reports whether a resource with the given extension
// (including the leading dot) is compiled rather than copied.
func IsCompilableResource(ext string) bool {
	_, ok := compiledResourceExtensions[strings.ToLower(ext)]
	return ok
}

// CompiledResourceExtension returns the compiled output extension for a
// source extension, or "" if the resource is not compilable.
func CompiledResourceExtension(ext string) string {
	return compiledResourceExtensions[strings.ToLower(ext)]
}

// CompiledResourcePath rewrites a compilable resource path to the location
// of its compiled output under builtProductsDir. Non-compilable paths are
// returned unchanged.
func CompiledResourcePath(builtProductsDir, resourcePath string) string {
	ext := path.Ext(resourcePath)
	outExt, ok := compiledResourceExtensions[strings.ToLower(ext)]
	if !ok {
		return resourcePath
	}
	base := strings.TrimSuffix(path.Base(resourcePath), ext)
	return path.Join(builtProductsDir, base+outExt)
}
