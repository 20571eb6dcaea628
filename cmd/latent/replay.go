package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Noofbiz/latent/latent"
	"github.com/Noofbiz/latent/pool"
)

func newReplayCmd(opts *options) *cobra.Command {
	var capacity, steps int
	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Push categorical batches through a replay pool and report how often it swaps",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.cfg
			if !cmd.Flags().Changed("capacity") {
				capacity = cfg.Pool.Capacity
			}
			if !cmd.Flags().Changed("steps") {
				steps = cfg.Pool.Steps
			}
			eng := latent.NewEngine(cfg.Seed)
			cc := cfg.Categorical
			s, err := latent.NewGaussianCategorical(eng, latent.CategoricalConfig{
				NumClasses: cc.NumClasses,
				TotalSize:  cc.TotalSize,
				Dim:        cc.Dim,
				StdDev:     cc.StdDev,
				Scale:      cc.Scale,
			})
			if err != nil {
				return err
			}
			p, err := pool.New[*latent.Matrix](capacity, eng)
			if err != nil {
				return err
			}

			st, err := runReplay(p, s, cfg.Mixture.BatchSize, steps, opts.logger)
			if err != nil {
				return err
			}
			opts.logger.Info("replay finished",
				zap.Int("capacity", p.Cap()),
				zap.Int("stored", p.Len()),
				zap.Int("steps", steps),
				zap.Int("passed_through", st.passed),
				zap.Int("replayed", st.replayed))
			return nil
		},
	}
	cmd.Flags().IntVar(&capacity, "capacity", 0, "pool capacity (overrides config)")
	cmd.Flags().IntVar(&steps, "steps", 0, "number of batches to push (overrides config)")
	return cmd
}

// replayStats counts how a pool handled a run of pushes.
type replayStats struct {
	passed   int
	replayed int
}

// runReplay pushes steps training batches of s through p. A push either
// hands back the input or swaps every component for a stored one.
func runReplay(p *pool.Pool[*latent.Matrix], s latent.Sampler, batchSize, steps int, logger *zap.Logger) (replayStats, error) {
	var st replayStats
	for step := 0; step < steps; step++ {
		b, err := s.Train(batchSize)
		if err != nil {
			return st, err
		}
		in := b.Components()
		out, err := p.Push(in)
		if err != nil {
			return st, err
		}
		replayed := out[0] != in[0]
		if replayed {
			st.replayed++
		} else {
			st.passed++
		}
		logger.Debug("push",
			zap.Int("step", step),
			zap.Stringer("state", p.State()),
			zap.Bool("replayed", replayed))
	}
	return st, nil
}

// replayBatch warms a pool with one full capacity of batches from s and
// returns the batch the pool hands back for one more push.
func replayBatch(opts *options, eng *latent.Engine, s latent.Sampler, batchSize int) (*latent.Batch, error) {
	p, err := pool.New[*latent.Matrix](opts.cfg.Pool.Capacity, eng)
	if err != nil {
		return nil, err
	}
	ds, err := latent.NewDataset("replay", s, batchSize)
	if err != nil {
		return nil, err
	}
	ds.Pool = p
	var b *latent.Batch
	for i := 0; i <= p.Cap(); i++ {
		if b, err = ds.Next(); err != nil {
			return nil, err
		}
	}
	opts.logger.Info("replay pool warmed", zap.Int("stored", p.Len()), zap.Stringer("state", p.State()))
	return b, nil
}
