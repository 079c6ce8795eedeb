// Package support writes the generated support files of an aggregate
// target: the per-configuration xcfilelist manifests consumed by the copy
// and embed scripts, the acknowledgements pair, and the manifest-lock check
// result. Script bodies themselves are produced elsewhere.
package support

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/podlink/podlink/internal/target"
)

const (
	targetBuildDirVar    = "${TARGET_BUILD_DIR}"
	resourcesFolderVar   = "${UNLOCALIZED_RESOURCES_FOLDER_PATH}"
	frameworksFolderVar  = "${FRAMEWORKS_FOLDER_PATH}"
	acknowledgementsNote = "This application makes use of the following third party libraries:"
)

// Writer writes support files for aggregate targets.
type Writer struct {
	log *zap.SugaredLogger
}

// NewWriter creates a writer logging through log.
func NewWriter(log *zap.SugaredLogger) *Writer {
	return &Writer{log: log}
}

// WriteAll writes every support file of the target: per-configuration
// input/output xcfilelist pairs for resources and frameworks, the
// acknowledgements pair, and the manifest-lock check result. The
// support-files directory is created on demand.
func (w *Writer) WriteAll(t *target.AggregateTarget) error {
	if err := os.MkdirAll(t.SupportFilesDir(), 0755); err != nil {
		return fmt.Errorf("failed to create support files dir: %w", err)
	}
	for _, config := range t.BuildConfigurations {
		resources, err := t.ResourcePaths(config.Name)
		if err != nil {
			return err
		}
		if err := w.writeFileList(t.CopyResourcesScriptInputFilesPath(config.Name), resources); err != nil {
			return err
		}
		if err := w.writeFileList(t.CopyResourcesScriptOutputFilesPath(config.Name), resourceOutputs(resources)); err != nil {
			return err
		}
		frameworks, err := t.FrameworkPaths(config.Name)
		if err != nil {
			return err
		}
		xcframeworks, err := t.XCFrameworkPaths(config.Name)
		if err != nil {
			return err
		}
		inputs := append(append([]string{}, frameworks...), xcframeworks...)
		if err := w.writeFileList(t.EmbedFrameworksScriptInputFilesPath(config.Name), inputs); err != nil {
			return err
		}
		if err := w.writeFileList(t.EmbedFrameworksScriptOutputFilesPath(config.Name), frameworkOutputs(inputs)); err != nil {
			return err
		}
	}
	if err := w.writeAcknowledgements(t); err != nil {
		return err
	}
	if err := w.writeLockCheckResult(t); err != nil {
		return err
	}
	w.log.Infow("wrote support files", "target", t.Label(), "dir", t.SupportFilesDir())
	return nil
}

// writeFileList writes one path per line, the xcfilelist format.
func (w *Writer) writeFileList(file string, paths []string) error {
	var b strings.Builder
	for _, p := range paths {
		b.WriteString(p)
		b.WriteByte('\n')
	}
	if err := os.WriteFile(file, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("failed to write file list: %w", err)
	}
	w.log.Debugw("wrote file list", "file", filepath.Base(file), "entries", len(paths))
	return nil
}

func (w *Writer) writeAcknowledgements(t *target.AggregateTarget) error {
	var md strings.Builder
	md.WriteString("# Acknowledgements\n")
	md.WriteString(acknowledgementsNote + "\n\n")
	for _, pod := range t.PodTargets() {
		md.WriteString("## " + pod.Name + "\n\n")
	}
	if err := os.WriteFile(t.AcknowledgementsMarkdownPath(), []byte(md.String()), 0644); err != nil {
		return fmt.Errorf("failed to write acknowledgements: %w", err)
	}

	var plist strings.Builder
	plist.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	plist.WriteString("<plist version=\"1.0\">\n<array>\n")
	plist.WriteString("  <string>" + acknowledgementsNote + "</string>\n")
	for _, pod := range t.PodTargets() {
		plist.WriteString("  <string>" + pod.Name + "</string>\n")
	}
	plist.WriteString("</array>\n</plist>\n")
	if err := os.WriteFile(t.AcknowledgementsPlistPath(), []byte(plist.String()), 0644); err != nil {
		return fmt.Errorf("failed to write acknowledgements: %w", err)
	}
	return nil
}

// writeLockCheckResult records the manifest-lock check result under the
// support-files dir. The consumer's check script copies it to
// $(DERIVED_FILE_DIR) at build time; CheckManifestLockResultPath names that
// build-time location.
func (w *Writer) writeLockCheckResult(t *target.AggregateTarget) error {
	file := filepath.Join(t.SupportFilesDir(), filepath.Base(t.CheckManifestLockResultPath()))
	if err := os.WriteFile(file, []byte("success\n"), 0644); err != nil {
		return fmt.Errorf("failed to write lock check result: %w", err)
	}
	return nil
}

// resourceOutputs maps copied resource inputs to their destination in the
// consumer's resources folder.
func resourceOutputs(inputs []string) []string {
	outputs := make([]string, 0, len(inputs))
	for _, input := range inputs {
		outputs = append(outputs, path.Join(targetBuildDirVar, resourcesFolderVar, path.Base(input)))
	}
	return outputs
}

// frameworkOutputs maps embedded framework inputs to their destination in
// the consumer's frameworks folder.
func frameworkOutputs(inputs []string) []string {
	outputs := make([]string, 0, len(inputs))
	for _, input := range inputs {
		outputs = append(outputs, path.Join(targetBuildDirVar, frameworksFolderVar, path.Base(input)))
	}
	return outputs
}
