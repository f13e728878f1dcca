// Command importer loads one asset spreadsheet into the database and prints
// the ingestion report as JSON.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"assetserver/src/config"
	"assetserver/src/database"
	"assetserver/src/ingest"
	"assetserver/src/repositories"
	"assetserver/src/services"
	"assetserver/src/utils"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type options struct {
	dialect  string
	file     string
	settings string
	env      string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "importer",
		Short: "Import an asset spreadsheet",
		Long: "Reads an .xlsx or .csv asset sheet with the given dialect, upserts every row by serial number " +
			"and prints the report. Rows that fail are listed in the report and do not fail the command.",
		SilenceUsage: true,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := ingest.DefaultRegistry().Get(opts.dialect); err != nil {
				return fmt.Errorf("%w (known: %v)", err, ingest.DefaultRegistry().Names())
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return runImport(ctx, opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.dialect, "dialect", "", "sheet dialect: cctv, cpu, network or retail")
	cmd.Flags().StringVar(&opts.file, "file", "", "path of the .xlsx or .csv file")
	cmd.Flags().StringVar(&opts.settings, "settings", "./settings", "directory holding appsettings*.yaml")
	cmd.Flags().StringVar(&opts.env, "env", os.Getenv("ENV"), "settings environment suffix, e.g. TESTING")
	_ = cmd.MarkFlagRequired("dialect")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func runImport(ctx context.Context, opts *options, cmd *cobra.Command) error {
	cfg, err := config.LoadConfig(opts.settings, opts.env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := config.ResolveSecretsFromAWS(cfg); err != nil {
		return err
	}
	logger := utils.NewLogger(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.File)
	logger.SetOutput(cmd.ErrOrStderr())
	ctx = utils.WithLogger(ctx, logrus.NewEntry(logger))

	db, err := database.SetupDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	importService := services.NewImportService(repositories.NewPostgresIngestStore(db), ingest.DefaultRegistry(), 0)
	report, err := importService.ImportFile(ctx, opts.dialect, opts.file)
	if err != nil {
		if errors.Is(err, services.ErrUnreadableSource) {
			logger.WithError(err).Error("Could not read the source file")
		}
		return err
	}
	return printReport(cmd, report)
}

func printReport(cmd *cobra.Command, report *ingest.Report) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}
