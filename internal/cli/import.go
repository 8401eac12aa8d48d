package cli

import (
	"fmt"

	"github.com/containerd/log"
	"github.com/kolah/oacollect/internal/collection"
	"github.com/kolah/oacollect/internal/config"
	"github.com/kolah/oacollect/internal/importer"
	"github.com/kolah/oacollect/internal/loader"
	"github.com/moby/sys/atomicwriter"
	"github.com/spf13/cobra"
)

func ImportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <spec>",
		Short: "Convert an OpenAPI v3 document into a request collection",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runImport,
	}

	config.BindImportFlags(cmd)

	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, err := prepare(cmd, args)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	result, err := loader.LoadFile(cfg.Spec)
	if err != nil {
		return fmt.Errorf("loading spec: %w", err)
	}

	if cfg.Strict {
		report, err := loader.InspectResult(result)
		if err != nil {
			return fmt.Errorf("inspecting spec: %w", err)
		}
		printIssues(cmd, report)
		if !report.Valid() {
			return fmt.Errorf("%s: %d validation issue(s)", cfg.Spec, len(report.Issues))
		}
	}

	grouping, err := importer.ParseGrouping(cfg.GroupBy)
	if err != nil {
		return err
	}

	im := importer.New(
		importer.WithGrouping(grouping),
		importer.WithValidation(cfg.ValidateOutput),
		importer.WithName(cfg.Name),
	)

	coll, err := im.Import(log.WithLogger(ctx, log.G(ctx).WithField("spec", cfg.Spec)), result.Document)
	if err != nil {
		return err
	}

	data, err := collection.Encode(coll, cfg.Format)
	if err != nil {
		return err
	}

	if cfg.WritesToStdout() {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}

	if err := atomicwriter.WriteFile(cfg.Output, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", cfg.Output, err)
	}

	folders, requests := coll.Stats()
	cmd.PrintErrf("Written: %s (%d folders, %d requests, %d environments)\n", cfg.Output, folders, requests, len(coll.Environments))

	return nil
}
