package cli

import (
	"fmt"

	"github.com/kolah/oacollect/internal/loader"
	"github.com/spf13/cobra"
)

func LintCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "lint <spec>",
		Short: "Validate an OpenAPI document and summarise its contents",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLint,
	}
}

func runLint(cmd *cobra.Command, args []string) error {
	cfg, err := prepare(cmd, args)
	if err != nil {
		return err
	}

	result, err := loader.LoadFile(cfg.Spec)
	if err != nil {
		return fmt.Errorf("loading spec: %w", err)
	}

	report, err := loader.InspectResult(result)
	if err != nil {
		return fmt.Errorf("inspecting spec: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Loaded OpenAPI %s: %s\n", report.Version, report.Title)
	fmt.Fprintf(out, "  Paths: %d\n", report.Paths)
	fmt.Fprintf(out, "  Operations: %d\n", report.Operations)
	fmt.Fprintf(out, "  Schemas: %d\n", report.Schemas)
	printIssues(cmd, report)

	if !report.Valid() {
		return fmt.Errorf("%s: %d validation issue(s)", cfg.Spec, len(report.Issues))
	}
	fmt.Fprintln(out, "OK")
	return nil
}

func printIssues(cmd *cobra.Command, report *loader.Report) {
	for _, w := range report.Warnings {
		cmd.PrintErrf("Warning: %s\n", w)
	}
	for _, issue := range report.Issues {
		cmd.PrintErrf("Error: %s\n", issue)
	}
}
