package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/exoplanet-imaging-challenge/eidc2/eval"
)

func evaluateCmd() *cobra.Command {
	var (
		configPath string
		reportPath string
	)

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Score submission archives against ground truth",
		Long: `Evaluate loads the astrometry and photometry archive pairs named in the
YAML config, computes the distance metric for both tasks and prints the
combined score. With --report the full report is written as JSON.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := eval.LoadConfig(configPath)
			if err != nil {
				return err
			}

			opts, err := cfg.Options()
			if err != nil {
				return err
			}

			logger.Info("running evaluation",
				zap.String("astrometry", cfg.Tasks.Astrometry.Submission),
				zap.String("photometry", cfg.Tasks.Photometry.Submission),
			)

			report, err := eval.Run(cmd.Context(), cfg.Tasks, opts...)
			if err != nil {
				return err
			}

			fmt.Printf("run         %s\n", report.ID)
			fmt.Printf("astrometry  %.6f\n", report.Astrometry.Score)
			fmt.Printf("photometry  %.6f\n", report.Photometry.Score)
			fmt.Printf("final       %.6f\n", report.Final)

			if reportPath == "" {
				return nil
			}

			raw, err := json.MarshalIndent(report, "", "  ")
			if err != nil {
				return fmt.Errorf("encoding report: %w", err)
			}
			if err := os.WriteFile(reportPath, raw, 0o644); err != nil {
				return fmt.Errorf("writing report: %w", err)
			}

			logger.Info("wrote report", zap.String("path", reportPath))
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "YAML evaluation config (required)")
	cmd.Flags().StringVar(&reportPath, "report", "", "write the full report as JSON to this path")

	_ = cmd.MarkFlagRequired("config")

	return cmd
}
