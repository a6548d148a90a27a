package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

const masqVersion = "0.1"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of Masq",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("masq %s\n", masqVersion)
	},
}

func init() {
	masqCmd.AddCommand(versionCmd)
}
