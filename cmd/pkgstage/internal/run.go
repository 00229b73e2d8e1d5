package internal

import (
	"fmt"

	"github.com/qiniu/x/log"
	"github.com/spf13/cobra"

	"github.com/pkgstage/pkgstage/manifest"
)

var runPrefix string
var runPlatform string
var runVerbose bool

var runCmd = &cobra.Command{
	Use:   "run [manifest]",
	Short: "Run an install pass from a manifest",
	Long:  `Run executes the whole install pass a manifest describes and finalizes the package descriptor.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runRun,
}

func init() {
	runCmd.Flags().StringVarP(&runPrefix, "prefix", "p", "", "Install prefix root (required)")
	runCmd.Flags().StringVar(&runPlatform, "platform", "", "Platform layout: posix, apple or windows (default: host)")
	runCmd.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "Trace every resolved destination")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	if runPrefix == "" {
		return fmt.Errorf("missing --prefix")
	}
	if runVerbose {
		log.SetOutputLevel(log.Ldebug)
	} else {
		log.SetOutputLevel(log.Lwarn)
	}

	m, err := manifest.Load(args[0])
	if err != nil {
		return fmt.Errorf("failed to load manifest: %w", err)
	}
	return manifest.Run(m, manifest.RunOptions{
		Prefix:   runPrefix,
		Platform: runPlatform,
	})
}
