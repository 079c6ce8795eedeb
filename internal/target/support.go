package target

import (
	"fmt"
	"path/filepath"
)

// Build-variable placeholders used in derived paths. PodsRootVar resolves to
// the sandbox root and SrcRootVar to the client project root at build time,
// so paths expressed with them stay valid when the sandbox is relocated.
const (
	PodsRootVar         = "${PODS_ROOT}"
	SrcRootVar          = "${SRCROOT}"
	BuiltProductsDirVar = "${BUILT_PRODUCTS_DIR}"
)

// supportFilesDirName is the directory under the sandbox root holding the
// generated support files of all aggregate targets.
const supportFilesDirName = "Target Support Files"

// SupportFilesDir returns the directory holding this target's generated
// support files.
func (a *AggregateTarget) SupportFilesDir() string {
	return filepath.Join(a.SandboxRoot, supportFilesDirName, a.Label())
}

func (a *AggregateTarget) supportFilePath(suffix string) string {
	return filepath.Join(a.SupportFilesDir(), a.Label()+suffix)
}

// AcknowledgementsPlistPath returns the path of the acknowledgements plist.
func (a *AggregateTarget) AcknowledgementsPlistPath() string {
	return a.supportFilePath("-acknowledgements.plist")
}

// AcknowledgementsMarkdownPath returns the path of the acknowledgements
// markdown document.
func (a *AggregateTarget) AcknowledgementsMarkdownPath() string {
	return a.supportFilePath("-acknowledgements.markdown")
}

// CopyResourcesScriptPath returns the path of the copy-resources script.
func (a *AggregateTarget) CopyResourcesScriptPath() string {
	return a.supportFilePath("-resources.sh")
}

// CopyResourcesScriptInputFilesPath returns the path of the input-file list
// consumed by the copy-resources script for config.
func (a *AggregateTarget) CopyResourcesScriptInputFilesPath(config string) string {
	return a.supportFilePath(fmt.Sprintf("-resources-%s-input-files.xcfilelist", config))
}

// CopyResourcesScriptOutputFilesPath returns the path of the output-file
// list produced by the copy-resources script for config.
func (a *AggregateTarget) CopyResourcesScriptOutputFilesPath(config string) string {
	return a.supportFilePath(fmt.Sprintf("-resources-%s-output-files.xcfilelist", config))
}

// EmbedFrameworksScriptPath returns the path of the embed-frameworks script.
func (a *AggregateTarget) EmbedFrameworksScriptPath() string {
	return a.supportFilePath("-frameworks.sh")
}

// EmbedFrameworksScriptInputFilesPath returns the path of the input-file
// list consumed by the embed-frameworks script for config.
func (a *AggregateTarget) EmbedFrameworksScriptInputFilesPath(config string) string {
	return a.supportFilePath(fmt.Sprintf("-frameworks-%s-input-files.xcfilelist", config))
}

// EmbedFrameworksScriptOutputFilesPath returns the path of the output-file
// list produced by the embed-frameworks script for config.
func (a *AggregateTarget) EmbedFrameworksScriptOutputFilesPath(config string) string {
	return a.supportFilePath(fmt.Sprintf("-frameworks-%s-output-files.xcfilelist", config))
}

// CopyDSYMsScriptPath returns the path of the copy-dSYMs script.
func (a *AggregateTarget) CopyDSYMsScriptPath() string {
	return a.supportFilePath("-copy-dsyms.sh")
}

// CheckManifestLockResultPath returns the derived-file path recording the
// manifest-lock check result for this target.
func (a *AggregateTarget) CheckManifestLockResultPath() string {
	return fmt.Sprintf("$(DERIVED_FILE_DIR)/%s-checkManifestLockResult.txt", a.Label())
}

// RelativeToSandbox expresses path relative to the sandbox root, prefixed
// with the sandbox build-variable placeholder.
func (a *AggregateTarget) RelativeToSandbox(path string) (string, error) {
	rel, err := filepath.Rel(a.SandboxRoot, path)
	if err != nil {
		return "", fmt.Errorf("failed to express %s relative to sandbox root %s: %w", path, a.SandboxRoot, err)
	}
	return PodsRootVar + "/" + filepath.ToSlash(rel), nil
}

// RelativeToClientRoot expresses path relative to the client project root.
func (a *AggregateTarget) RelativeToClientRoot(path string) (string, error) {
	rel, err := filepath.Rel(a.ClientRoot, path)
	if err != nil {
		return "", fmt.Errorf("failed to express %s relative to client root %s: %w", path, a.ClientRoot, err)
	}
	return filepath.ToSlash(rel), nil
}

// bridgeSupportFile returns the sandbox-relative bridge-support file path
// for this target, or "" when bridge-support generation is disabled or the
// target definition has no manifest.
func (a *AggregateTarget) bridgeSupportFile() string {
	m := a.TargetDefinition.Manifest()
	if m == nil || !m.GenerateBridgeSupport {
		return ""
	}
	return PodsRootVar + "/" + a.Label() + ".bridgesupport"
}

// ManifestDirRelativePath returns the directory of the originating manifest
// expressed against the client-root placeholder. A manifest with no on-disk
// location (synthesized in memory) falls back to the sandbox parent.
func (a *AggregateTarget) ManifestDirRelativePath() string {
	m := a.TargetDefinition.Manifest()
	if m != nil && m.Path != "" {
		rel, err := filepath.Rel(a.ClientRoot, filepath.Dir(m.Path))
		if err == nil {
			return SrcRootVar + "/" + filepath.ToSlash(rel)
		}
	}
	return PodsRootVar + "/.."
}
