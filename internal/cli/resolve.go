package cli

import (
	"encoding/json"
	"fmt"

	"github.com/kolah/oacollect/internal/loader"
	"github.com/kolah/oacollect/internal/refs"
	"github.com/spf13/cobra"
)

func ResolveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <spec>",
		Short: "Print the document with local component references inlined",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runResolve,
	}
}

func runResolve(cmd *cobra.Command, args []string) error {
	cfg, err := prepare(cmd, args)
	if err != nil {
		return err
	}

	result, err := loader.LoadFile(cfg.Spec)
	if err != nil {
		return fmt.Errorf("loading spec: %w", err)
	}

	out, err := json.MarshalIndent(refs.ResolveDocument(result.Document), "", "  ")
	if err != nil {
		return fmt.Errorf("encoding resolved document: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return err
}
