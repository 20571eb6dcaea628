package main

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Noofbiz/latent/datasets"
	"github.com/Noofbiz/latent/evaluate"
	"github.com/Noofbiz/latent/latent"
)

func newGapCmd(opts *options) *cobra.Command {
	var (
		embedding   string
		kMax        int
		nReferences int
	)
	cmd := &cobra.Command{
		Use:   "gap",
		Short: "Select the number of clusters of an embedding with the gap statistic",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.cfg
			if !cmd.Flags().Changed("k-max") {
				kMax = cfg.Gap.KMax
			}
			if !cmd.Flags().Changed("n-references") {
				nReferences = cfg.Gap.NReferences
			}
			eng := latent.NewEngine(cfg.Seed)

			var data *latent.Matrix
			if embedding == "" {
				// No embedding given: evaluate the synthetic mixture dataset.
				mc := cfg.Mixture
				s, err := latent.NewGaussianMixture(eng, latent.MixtureConfig{
					NumClasses: mc.NumClasses,
					TotalSize:  mc.TotalSize,
					Dim:        mc.Dim,
					Weights:    mc.Weights,
					StdDev:     mc.StdDev,
				})
				if err != nil {
					return err
				}
				data = s.LoadAll().Continuous
			} else {
				path, err := resolveEmbedding(embedding)
				if err != nil {
					return err
				}
				embedding = path
				m, err := datasets.LoadMatrix(path, datasets.MatrixOptions{
					Comma:       cfg.Gap.Comma(),
					Header:      *cfg.Gap.Header,
					IndexColumn: *cfg.Gap.Index,
				})
				if err != nil {
					return err
				}
				data = m
			}
			rows, cols := data.Dims()
			opts.logger.Info("running gap statistic",
				zap.String("embedding", embedding),
				zap.Int("rows", rows),
				zap.Int("cols", cols),
				zap.Int("k_max", kMax),
				zap.Int("n_references", nReferences))

			ev, err := evaluate.NewEvaluator(eng, opts.logger)
			if err != nil {
				return err
			}
			km, err := evaluate.NewKMeans(2)
			if err != nil {
				return err
			}
			res, err := ev.ComputeGap(km, data, kMax, nReferences)
			if err != nil {
				return err
			}
			for i, k := range res.K {
				opts.logger.Info("gap",
					zap.Int("k", k),
					zap.Float64("gap", res.Gap[i]),
					zap.Float64("log_reference_inertia", res.LogReferenceInertia[i]),
					zap.Float64("log_data_inertia", res.LogDataInertia[i]))
			}

			pngPath := filepath.Join(cfg.Output.Dir, "gap.png")
			if err := plotGap(pngPath, res); err != nil {
				return errors.Wrap(err, "failed to generate plot")
			}
			opts.logger.Info("gap statistic finished",
				zap.Int("best_k", res.BestK()),
				zap.Int("empty_cluster_warnings", len(res.Warnings)),
				zap.String("plot", pngPath))
			return nil
		},
	}
	cmd.Flags().StringVar(&embedding, "embedding", "", "delimited (N, D) embedding matrix, or a directory holding one; empty uses the mixture sampler's dataset")
	cmd.Flags().IntVar(&kMax, "k-max", 0, "largest cluster count (overrides config)")
	cmd.Flags().IntVar(&nReferences, "n-references", 0, "reference datasets per k (overrides config)")
	return cmd
}

// resolveEmbedding returns path, or the first *embedding* file inside it when
// path is a directory.
func resolveEmbedding(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", errors.Wrap(err, "failed to stat embedding")
	}
	if !info.IsDir() {
		return path, nil
	}
	return datasets.FindInDir(path, "*embedding*")
}
