package internal

import (
	"log"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pkgstage",
	Short: "pkgstage installs built artifacts into a package prefix",
	Long: `pkgstage resolves per-platform, per-variant install destinations for
already-built libraries and plugins, copies them into a prefix tree, and
generates the package descriptor downstream builds consume.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		log.Fatal(err)
	}
}
