package internal

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pkgstage/pkgstage/platform"
)

var resolvePlatform string
var resolvePackage string

var resolveCmd = &cobra.Command{
	Use:   "resolve [base] [subfolder]",
	Short: "Print resolved install destinations",
	Long:  `Resolve prints the concrete install path of a destination for every build variant of the selected platform.`,
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runResolve,
}

func init() {
	resolveCmd.Flags().StringVar(&resolvePlatform, "platform", "", "Platform layout: posix, apple or windows (default: host)")
	resolveCmd.Flags().StringVar(&resolvePackage, "package", "pkgstage", "Package name for package-scoped directories")
	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, args []string) error {
	profile, err := platform.ParseProfile(resolvePlatform, resolvePackage)
	if err != nil {
		return err
	}

	dest := platform.Dest{Base: args[0]}
	if len(args) > 1 {
		dest.Subfolder = args[1]
	}
	for _, v := range profile.Variants() {
		fmt.Printf("%-16s%s\n", v, profile.ResolveDest(dest, v))
	}
	return nil
}
