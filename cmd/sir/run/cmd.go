/*
 * Licensed to the Apache Software Foundation (ASF) under one or more
 * contributor license agreements.  See the NOTICE file distributed with
 * this work for additional information regarding copyright ownership.
 * The ASF licenses this file to You under the Apache License, Version 2.0
 * (the "License"); you may not use this file except in compliance with
 * the License.  You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package run

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/posterior/sir-go/internal"
	"github.com/posterior/sir-go/posterior"
	"github.com/posterior/sir-go/sampling"
)

func Command() *cobra.Command {
	c := &cobra.Command{
		Use:   "run",
		Short: "Runs SIR over every group of an analysis",
		RunE:  runFunc,
	}
	flags := c.Flags()
	AddFlags(flags)
	return c
}

func runFunc(c *cobra.Command, args []string) error {
	flags := c.Flags()
	config, err := ParseFlags(flags, args)
	if err != nil {
		return err
	}

	log, err := NewLogger(config.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	analyzer, err := posterior.NewAnalyzer(append(config.Options(), posterior.WithLogger(log))...)
	if err != nil {
		return err
	}

	log.Info("starting analysis",
		zap.Int("groups", len(config.Groups)),
		zap.Int("draws", config.Draws),
		zap.Uint64("seed", config.Seed),
	)
	results, err := analyzer.Run(c.Context(), config.Groups)
	if err != nil {
		return err
	}

	if err := Report(c.OutOrStdout(), results, config.Compare); err != nil {
		return err
	}
	if config.OutDir == "" {
		return nil
	}
	if err := WriteDraws(config.OutDir, config.Seed, results); err != nil {
		return err
	}
	log.Info("wrote posterior draws", zap.String("dir", config.OutDir))
	return nil
}

// NewLogger builds a production logger writing to stderr at level.
func NewLogger(level zapcore.Level) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}

// Report prints one line per dataset and, when both compared datasets exist
// in a group, the probability that the first proportion exceeds the second.
func Report(w io.Writer, results []posterior.GroupResult, compare [2]string) error {
	for _, g := range results {
		for _, d := range g.Datasets {
			if d.Err != nil {
				if _, err := fmt.Fprintf(w, "%s\t%s\t%s\tskipped: %v\n", g.ID, g.Prior, d.Name, d.Err); err != nil {
					return err
				}
				continue
			}
			s := d.Summary
			_, err := fmt.Fprintf(w, "%s\t%s\t%s\tmean=%.4f median=%.4f sd=%.4f %g%%CI=[%.4f, %.4f] ess=%.1f\n",
				g.ID, g.Prior, d.Name, s.Mean, s.Median, s.StdDev, 100*s.Mass, s.Lower, s.Upper, d.EffectiveSampleSize())
			if err != nil {
				return err
			}
		}

		a, okA := g.Dataset(compare[0])
		b, okB := g.Dataset(compare[1])
		if !okA || !okB || a.Err != nil || b.Err != nil || len(a.Draws) == 0 {
			continue
		}
		p, err := g.ProbGreater(compare[0], compare[1])
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%s\tP(theta_%s > theta_%s) = %.4f\n", g.ID, compare[0], compare[1], p); err != nil {
			return err
		}
	}
	return nil
}

// DrawsFileName is the name of the file holding the draws of one dataset.
func DrawsFileName(groupID, dataset string) string {
	return fmt.Sprintf("%s_%s.draws", groupID, dataset)
}

// WriteDraws encodes the draws of every resampled dataset into dir, one file
// per dataset, tagged with the seed its draws came from.
func WriteDraws(dir string, seed uint64, results []posterior.GroupResult) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for _, g := range results {
		for _, d := range g.Datasets {
			if d.Err != nil {
				continue
			}
			draws := sampling.Draws[float64]{
				Seed:  internal.DeriveSeed(seed, g.ID+"/"+d.Name),
				Items: d.Draws,
			}
			if err := writeDrawsFile(filepath.Join(dir, DrawsFileName(g.ID, d.Name)), draws); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeDrawsFile(path string, draws sampling.Draws[float64]) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := sampling.NewDrawsEncoder[float64](f, sampling.Float64SerDe{}).Encode(draws); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
