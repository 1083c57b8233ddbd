package cmd

import (
	"github.com/brandbridge/bridgeboard/internal/app"
	"github.com/spf13/cobra"
)

var promoteCmd = &cobra.Command{
	Use:   "promote <username>",
	Short: "Grant admin rights to an existing user",
	Args:  cobra.ExactArgs(1),
	RunE:  runPromote,
}

func init() {
	rootCmd.AddCommand(promoteCmd)
}

func runPromote(cmd *cobra.Command, args []string) error {
	return app.PromoteAdmin(cmd.Context(), appConfig(), args[0])
}
