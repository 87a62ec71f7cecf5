package rescue

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nicholaswilde/rescue-groups-mcp/pkg/version"
)

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().BoolVarP(&versionM, "module", "m", false, "module version information")
}

var versionM bool
var versionCmd = &cobra.Command{
	Use:   "version [-m]",
	Short: "Show the version of rescue-groups-mcp",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("rescue-groups-mcp %s\n", version.GetMore(versionM))
	},
}
