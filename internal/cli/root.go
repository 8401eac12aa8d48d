package cli

import (
	"github.com/kolah/oacollect/internal/config"
	"github.com/spf13/cobra"
)

func RootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "oacollect",
		Short:         "oacollect - turn OpenAPI v3 documents into request collections",
		Version:       "1.0.0",
		SilenceUsage:  true,
		SilenceErrors: true,

		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	config.BindGlobalFlags(root)
	root.AddCommand(
		ImportCommand(),
		ResolveCommand(),
		LintCommand(),
	)

	return root
}
