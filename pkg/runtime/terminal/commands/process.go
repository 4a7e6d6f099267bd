package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/LumpsRGood/tablet-use-app/pkg/models/domain"
	"github.com/LumpsRGood/tablet-use-app/pkg/runtime/terminal/export"
	"github.com/LumpsRGood/tablet-use-app/pkg/services/config"
	"github.com/LumpsRGood/tablet-use-app/pkg/services/ingest"
	"github.com/LumpsRGood/tablet-use-app/pkg/services/report"
)

type ProcessCmd struct {
	mappingsPath string
	profile      string
	outPath      string
	noColor      bool
	quiet        bool
	settings     report.Settings
	reporter     *export.Reporter
}

func NewProcessCmd(settings report.Settings, mappingsPath string, reporter *export.Reporter) *cobra.Command {
	pc := &ProcessCmd{settings: settings, mappingsPath: mappingsPath, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "process <sales-export.csv>",
		Short: "Build a tablet use report from a sales activity export",
		Args:  cobra.ExactArgs(1),
		RunE:  pc.run,
	}

	// Define flags
	cmd.Flags().StringVar(&pc.mappingsPath, "mappings", pc.mappingsPath, "Path to a column mapping profiles INI file")
	cmd.Flags().StringVar(&pc.profile, "profile", "", "Column mapping profile to apply")
	cmd.Flags().StringVar(&pc.outPath, "out", "", "Write the processed report CSV to this path")
	cmd.Flags().BoolVar(&pc.noColor, "no-color", false, "Render the report table without tier colors")
	cmd.Flags().BoolVar(&pc.quiet, "quiet", false, "Suppress the report table")

	return cmd
}

func (pc *ProcessCmd) run(cmd *cobra.Command, args []string) error {
	registry, err := newRegistry(pc.mappingsPath)
	if err != nil {
		return err
	}

	mapping, err := registry.Mapping(cmd.Context(), pc.profile)
	if err != nil {
		return err
	}

	file, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	records, err := ingest.NewDecoder(mapping).Decode(file)
	if err != nil {
		return err
	}

	rep, table := report.NewProcessor(pc.settings).Process(records)

	if pc.outPath != "" {
		if err := writeExport(pc.outPath, table); err != nil {
			return err
		}
	}

	if pc.quiet {
		return nil
	}
	if pc.noColor {
		pc.reporter.DisableColor()
	}
	return pc.reporter.Handle(rep)
}

func writeExport(path string, table domain.ExportTable) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer out.Close()

	if err := report.EncodeCSV(out, table); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}
	return nil
}

// newRegistry resolves the mapping registry for a command invocation. An
// empty path means only the built-in default profile is available.
func newRegistry(path string) (config.Registry, error) {
	if path == "" {
		return config.NewDefaultRegistry(), nil
	}
	return config.NewRegistry(path)
}
