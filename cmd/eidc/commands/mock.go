package commands

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/exoplanet-imaging-challenge/eidc2/submission"
)

func mockCmd() *cobra.Command {
	var (
		outPath string
		cfg     = submission.DefaultMockConfig()
	)

	cmd := &cobra.Command{
		Use:   "mock",
		Short: "Generate a mock submission archive",
		Long: `Mock writes a ZIP archive of randomly generated MEF submissions, one
per cube, for exercising the evaluation pipeline end to end.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			subs, err := submission.Mock(cfg)
			if err != nil {
				return err
			}

			if err := submission.WriteArchive(outPath, subs); err != nil {
				return err
			}

			logger.Info("wrote mock archive",
				zap.String("path", outPath),
				zap.Int("cubes", cfg.Cubes),
				zap.Int("injections", cfg.Injections),
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&outPath, "out", "", "output ZIP path (required)")
	cmd.Flags().IntVar(&cfg.Cubes, "cubes", cfg.Cubes, "number of cubes (MEF files) in the archive")
	cmd.Flags().IntVar(&cfg.Injections, "injections", cfg.Injections, "injections per cube")
	cmd.Flags().IntVar(&cfg.Estimates, "estimates", cfg.Estimates, "estimated quantities per injection")
	cmd.Flags().IntVar(&cfg.PosteriorSamples, "samples", cfg.PosteriorSamples, "posterior samples per estimate")
	cmd.Flags().Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed")

	_ = cmd.MarkFlagRequired("out")

	return cmd
}
