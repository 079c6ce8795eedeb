package internal

import (
	"fmt"

	"github.com/spf13/cobra"
)

var pathsManifest string
var pathsSandbox string
var pathsClientRoot string

var pathsCmd = &cobra.Command{
	Use:   "paths",
	Short: "Print the derived support-file paths",
	Long: `Paths prints every derived support-file path of each aggregate
target, in both the sandbox-relative and client-root-relative views.`,
	RunE: runPaths,
}

func init() {
	pathsCmd.Flags().StringVarP(&pathsManifest, "manifest", "m", "Podfile.yaml", "Manifest file")
	pathsCmd.Flags().StringVar(&pathsSandbox, "sandbox", "Pods", "Pods sandbox directory")
	pathsCmd.Flags().StringVar(&pathsClientRoot, "client-root", ".", "Consumer project root")
	rootCmd.AddCommand(pathsCmd)
}

func runPaths(cmd *cobra.Command, args []string) error {
	targets, err := planTargets(pathsManifest, pathsSandbox, pathsClientRoot)
	if err != nil {
		return err
	}

	for _, t := range targets {
		fmt.Printf("%s\n", t.Label())
		fmt.Printf("  manifest dir: %s\n", t.ManifestDirRelativePath())
		fmt.Printf("  lock check:   %s\n", t.CheckManifestLockResultPath())

		paths := []string{
			t.AcknowledgementsPlistPath(),
			t.AcknowledgementsMarkdownPath(),
			t.CopyResourcesScriptPath(),
			t.EmbedFrameworksScriptPath(),
			t.CopyDSYMsScriptPath(),
		}
		for _, config := range t.BuildConfigurations {
			paths = append(paths,
				t.CopyResourcesScriptInputFilesPath(config.Name),
				t.CopyResourcesScriptOutputFilesPath(config.Name),
				t.EmbedFrameworksScriptInputFilesPath(config.Name),
				t.EmbedFrameworksScriptOutputFilesPath(config.Name),
			)
		}
		for _, p := range paths {
			sandboxRel, err := t.RelativeToSandbox(p)
			if err != nil {
				return err
			}
			clientRel, err := t.RelativeToClientRoot(p)
			if err != nil {
				return err
			}
			fmt.Printf("  %s\n    %s\n", sandboxRel, clientRel)
		}
	}
	return nil
}
