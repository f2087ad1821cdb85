package standings

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/mpapenbr/nascar-mfg-standings/log"
	"github.com/mpapenbr/nascar-mfg-standings/pkg/cmd/util"
	"github.com/mpapenbr/nascar-mfg-standings/pkg/config"
	"github.com/mpapenbr/nascar-mfg-standings/pkg/output"
)

func NewStandingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "standings",
		Short: "computes the manufacturer standings once and prints them",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStandings(cmd.Context(), cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVarP(&config.OutputFormat,
		"output",
		"o",
		"table",
		"output format (table, json, yaml)")
	return cmd
}

func runStandings(ctx context.Context, w io.Writer) error {
	logger, err := util.SetupLogger()
	if err != nil {
		return err
	}
	cfg, err := config.NewRunConfig(config.CurrentSettings())
	if err != nil {
		return err
	}
	format, err := output.ParseFormat(config.OutputFormat)
	if err != nil {
		return err
	}
	util.LogConfig(cfg)

	shutdown := util.StartTelemetry(ctx, false)
	defer shutdown()

	client := util.NewClient(cfg, logger)
	res, err := util.NewProcessor(cfg, client, logger).Run(ctx)
	if err != nil {
		log.Error("standings could not be computed", log.ErrorField(err))
		return err
	}
	if res.Partial() {
		log.Warn("some races were skipped", log.Int("skipped", res.SkippedCount()))
	}
	return output.Write(w, format, output.NewReport(res, cfg.SeriesFilter))
}
