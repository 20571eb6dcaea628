package main

import (
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Noofbiz/latent/datasets"
	"github.com/Noofbiz/latent/latent"
)

func newSampleCmd(opts *options) *cobra.Command {
	var (
		kind      string
		batchSize int
		usePool   bool
	)
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Draw a batch from a latent sampler and write it as CSV and PNG",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.cfg
			if !cmd.Flags().Changed("batch-size") {
				batchSize = cfg.Mixture.BatchSize
			}
			eng := latent.NewEngine(cfg.Seed)

			var (
				batch *latent.Batch
				err   error
			)
			switch kind {
			case "mixture":
				batch, err = sampleMixture(opts, eng, batchSize, usePool)
			case "categorical":
				batch, err = sampleCategorical(opts, eng, batchSize)
			default:
				return errors.Errorf("unknown sampler %q (want mixture or categorical)", kind)
			}
			if err != nil {
				return err
			}

			csvPath := filepath.Join(cfg.Output.Dir, kind+"_batch.csv")
			if err := datasets.WriteBatchCSV(csvPath, batch); err != nil {
				return err
			}
			pngPath := filepath.Join(cfg.Output.Dir, kind+"_batch.png")
			if err := plotBatch(pngPath, kind+" sampler", batch); err != nil {
				return errors.Wrap(err, "failed to generate plot")
			}
			opts.logger.Info("batch written",
				zap.String("sampler", kind),
				zap.Int("rows", batch.Size()),
				zap.String("csv", csvPath),
				zap.String("plot", pngPath))
			return nil
		},
	}
	cmd.Flags().StringVar(&kind, "sampler", "mixture", "sampler to draw from: mixture or categorical")
	cmd.Flags().IntVar(&batchSize, "batch-size", 0, "rows to draw (overrides config)")
	cmd.Flags().BoolVar(&usePool, "pool", false, "route the mixture batches through a warmed-up replay pool")
	return cmd
}

func sampleMixture(opts *options, eng *latent.Engine, batchSize int, usePool bool) (*latent.Batch, error) {
	mc := opts.cfg.Mixture
	s, err := latent.NewGaussianMixture(eng, latent.MixtureConfig{
		NumClasses: mc.NumClasses,
		TotalSize:  mc.TotalSize,
		Dim:        mc.Dim,
		Weights:    mc.Weights,
		StdDev:     mc.StdDev,
	})
	if err != nil {
		return nil, err
	}
	opts.logger.Info("mixture sampler ready",
		zap.Stringer("placement", s.Placement()),
		zap.Int("num_classes", mc.NumClasses),
		zap.Int("dim", mc.Dim))

	var batch *latent.Batch
	if usePool {
		batch, err = replayBatch(opts, eng, s, batchSize)
	} else {
		batch, err = s.TrainWithLabels(batchSize)
	}
	if err != nil {
		return nil, err
	}

	if batch.Labels != nil {
		preds, err := s.PredictMany(batch.Continuous)
		if err != nil {
			return nil, err
		}
		correct, i := 0, 0
		for p := range preds {
			if p == batch.Labels[i] {
				correct++
			}
			i++
		}
		if i > 0 {
			opts.logger.Info("posterior class recovery",
				zap.Int("rows", i),
				zap.Float64("accuracy", float64(correct)/float64(i)))
		}
	}
	return batch, nil
}

func sampleCategorical(opts *options, eng *latent.Engine, batchSize int) (*latent.Batch, error) {
	cc := opts.cfg.Categorical
	s, err := latent.NewGaussianCategorical(eng, latent.CategoricalConfig{
		NumClasses: cc.NumClasses,
		TotalSize:  cc.TotalSize,
		Dim:        cc.Dim,
		StdDev:     cc.StdDev,
		Scale:      cc.Scale,
	})
	if err != nil {
		return nil, err
	}
	return s.Train(batchSize)
}
