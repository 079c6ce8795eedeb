package internal

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/podlink/podlink/internal/integrate"
	"github.com/podlink/podlink/internal/manifest"
	"github.com/podlink/podlink/internal/support"
	"github.com/podlink/podlink/internal/target"
)

var integrateManifest string
var integrateSandbox string
var integrateClientRoot string
var integrateWrite bool
var integrateVerbose bool

var integrateCmd = &cobra.Command{
	Use:   "integrate",
	Short: "Aggregate pod artifacts per build configuration",
	Long: `Integrate loads a manifest, builds one aggregate target per concrete
target definition, and prints its per-configuration framework, xcframework
and resource lists. With --write it also emits the support files.`,
	RunE: runIntegrate,
}

func init() {
	integrateCmd.Flags().StringVarP(&integrateManifest, "manifest", "m", "Podfile.yaml", "Manifest file")
	integrateCmd.Flags().StringVar(&integrateSandbox, "sandbox", "Pods", "Pods sandbox directory")
	integrateCmd.Flags().StringVar(&integrateClientRoot, "client-root", ".", "Consumer project root")
	integrateCmd.Flags().BoolVar(&integrateWrite, "write", false, "Write support files")
	integrateCmd.Flags().BoolVarP(&integrateVerbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.AddCommand(integrateCmd)
}

func runIntegrate(cmd *cobra.Command, args []string) error {
	log, err := newLogger(integrateVerbose)
	if err != nil {
		return err
	}
	defer log.Sync()

	targets, err := planTargets(integrateManifest, integrateSandbox, integrateClientRoot)
	if err != nil {
		return err
	}

	for _, t := range targets {
		fmt.Printf("%s\n", t.Label())
		for _, config := range t.BuildConfigurations {
			frameworks, err := t.FrameworkPaths(config.Name)
			if err != nil {
				return err
			}
			xcframeworks, err := t.XCFrameworkPaths(config.Name)
			if err != nil {
				return err
			}
			resources, err := t.ResourcePaths(config.Name)
			if err != nil {
				return err
			}
			fmt.Printf("  [%s]\n", config.Name)
			printList("frameworks", frameworks)
			printList("xcframeworks", xcframeworks)
			printList("resources", resources)
		}
		printList("on-demand resources", t.OnDemandResourcePaths())

		if integrateWrite {
			writer := support.NewWriter(log)
			if err := writer.WriteAll(t); err != nil {
				return fmt.Errorf("failed to write support files for %s: %w", t.Label(), err)
			}
		}
	}
	return nil
}

func printList(name string, paths []string) {
	if len(paths) == 0 {
		return
	}
	fmt.Printf("    %s:\n", name)
	for _, p := range paths {
		fmt.Printf("      %s\n", p)
	}
}

// planTargets loads a manifest and plans its aggregate targets.
func planTargets(manifestPath, sandboxDir, clientRootDir string) ([]*target.AggregateTarget, error) {
	m, err := manifest.Parse(manifestPath, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load manifest: %w", err)
	}
	clientRoot, err := filepath.Abs(clientRootDir)
	if err != nil {
		return nil, err
	}
	sandbox, err := filepath.Abs(sandboxDir)
	if err != nil {
		return nil, err
	}
	targets, err := integrate.Plan(m, integrate.Options{
		SandboxRoot: sandbox,
		ClientRoot:  clientRoot,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to plan targets: %w", err)
	}
	return targets, nil
}
