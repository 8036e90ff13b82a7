package cmd

import (
	"fmt"

	"github.com/Layr-Labs/rewards-claimer/internal/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("rewards-claimer %s (%s)\n", version.GetVersion(), version.GetCommit())
	},
}
