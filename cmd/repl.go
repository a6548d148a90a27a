package cmd

import (
	"github.com/spf13/cobra"

	"github.com/masqdata/masq/repl"
)

var replCmd = &cobra.Command{
	Use:   "repl [file ...]",
	Short: "Run statements interactively or from files",
	RunE:  replRun,
}

func init() {
	initServerFlags(replCmd.Flags())
	masqCmd.AddCommand(replCmd)
}

func replRun(cmd *cobra.Command, args []string) error {
	svr, err := newServer(args)
	if err != nil {
		return err
	}

	if len(args) == 0 && len(stmtArgs) == 0 {
		svr.HandleSession(repl.Interact(), "startup", "console", "")
	}

	return svr.Close()
}
