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

// Package posterior applies SIR across groups of datasets that share a prior,
// and summarizes and compares the resulting posterior samples.
package posterior

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/posterior/sir-go/internal"
	"github.com/posterior/sir-go/prior"
	"github.com/posterior/sir-go/sampling"
)

const (
	defaultDraws        = 10_000
	defaultPriorSize    = 10_000
	defaultConcurrency  = 4
	defaultCredibleMass = 0.95
)

// Dataset is one set of observed counts scored against a group's prior.
type Dataset struct {
	Name   string
	Counts sampling.CountData
}

// Group is a prior together with the datasets scored against one sample of
// it.
type Group struct {
	ID    string
	Prior prior.Spec
	// PriorSample, when set, is used as is instead of drawing from Prior.
	PriorSample []float64
	Datasets    []Dataset
}

// DatasetResult is the posterior of one dataset.
type DatasetResult struct {
	Name    string
	Counts  sampling.CountData
	Weights sampling.WeightVector
	Draws   []float64
	Summary Summary
	// Err is set when the dataset was skipped; the other fields are then
	// zero.
	Err error
}

// EffectiveSampleSize returns the effective sample size of the importance
// weights.
func (r DatasetResult) EffectiveSampleSize() float64 {
	return r.Weights.EffectiveSampleSize()
}

// GroupResult holds the posteriors of every dataset of a group, in the order
// the datasets were given.
type GroupResult struct {
	ID          string
	Prior       prior.Spec
	PriorSample []float64
	Datasets    []DatasetResult
}

// Dataset returns the result of the named dataset.
func (g GroupResult) Dataset(name string) (DatasetResult, bool) {
	for _, d := range g.Datasets {
		if d.Name == name {
			return d, true
		}
	}
	return DatasetResult{}, false
}

// ProbGreater estimates P(theta_a > theta_b) from the paired draws of two
// datasets of the group.
func (g GroupResult) ProbGreater(a, b string) (float64, error) {
	ra, err := g.drawsOf(a)
	if err != nil {
		return 0, err
	}
	rb, err := g.drawsOf(b)
	if err != nil {
		return 0, err
	}
	return ProbGreater(ra, rb)
}

func (g GroupResult) drawsOf(name string) ([]float64, error) {
	r, ok := g.Dataset(name)
	if !ok {
		return nil, fmt.Errorf("group %q has no dataset %q", g.ID, name)
	}
	if r.Err != nil {
		return nil, fmt.Errorf("dataset %q of group %q was skipped: %w", name, g.ID, r.Err)
	}
	return r.Draws, nil
}

type Option func(*analyzerConfig)

type analyzerConfig struct {
	draws          int
	priorSize      int
	seed           uint64
	concurrency    int
	skipDegenerate bool
	credibleMass   float64
	logger         *zap.Logger
}

// WithDraws sets the number of posterior draws per dataset.
func WithDraws(n int) Option {
	return func(c *analyzerConfig) { c.draws = n }
}

// WithPriorSize sets the number of prior draws per group.
func WithPriorSize(n int) Option {
	return func(c *analyzerConfig) { c.priorSize = n }
}

// WithSeed sets the base seed from which every group and dataset seed is
// derived.
func WithSeed(seed uint64) Option {
	return func(c *analyzerConfig) { c.seed = seed }
}

// WithConcurrency limits how many groups are processed at once.
func WithConcurrency(n int) Option {
	return func(c *analyzerConfig) { c.concurrency = n }
}

// WithSkipDegenerate records datasets whose weights are degenerate instead of
// failing the whole run.
func WithSkipDegenerate(skip bool) Option {
	return func(c *analyzerConfig) { c.skipDegenerate = skip }
}

// WithCredibleMass sets the mass of the credible interval in summaries.
func WithCredibleMass(mass float64) Option {
	return func(c *analyzerConfig) { c.credibleMass = mass }
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *analyzerConfig) { c.logger = logger }
}

// Analyzer runs SIR for every dataset of every group.
type Analyzer struct {
	cfg analyzerConfig
}

func NewAnalyzer(opts ...Option) (*Analyzer, error) {
	cfg := analyzerConfig{
		draws:        defaultDraws,
		priorSize:    defaultPriorSize,
		concurrency:  defaultConcurrency,
		credibleMass: defaultCredibleMass,
		logger:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.draws < 0 {
		return nil, fmt.Errorf("%w: draws=%d", sampling.ErrInvalidCount, cfg.draws)
	}
	if cfg.priorSize < 1 {
		return nil, fmt.Errorf("%w: prior size=%d", sampling.ErrInvalidCount, cfg.priorSize)
	}
	if cfg.concurrency < 1 {
		return nil, fmt.Errorf("concurrency must be at least 1: %d", cfg.concurrency)
	}
	if !(cfg.credibleMass > 0 && cfg.credibleMass < 1) {
		return nil, fmt.Errorf("credible mass must be in (0, 1): %v", cfg.credibleMass)
	}
	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}
	return &Analyzer{cfg: cfg}, nil
}

// Run processes groups concurrently and returns their results in input
// order. Each group and dataset draws from its own source, seeded from the
// base seed and its ID, so results do not depend on scheduling.
//
// The first error cancels the remaining groups, except degenerate weights
// when WithSkipDegenerate is set.
func (a *Analyzer) Run(ctx context.Context, groups []Group) ([]GroupResult, error) {
	if err := validateGroups(groups); err != nil {
		return nil, err
	}

	results := make([]GroupResult, len(groups))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.cfg.concurrency)
	for i, group := range groups {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			result, err := a.runGroup(group)
			if err != nil {
				return fmt.Errorf("group %q: %w", group.ID, err)
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func validateGroups(groups []Group) error {
	seen := make(map[string]struct{}, len(groups))
	for _, group := range groups {
		if _, ok := seen[group.ID]; ok {
			return fmt.Errorf("duplicate group id %q", group.ID)
		}
		seen[group.ID] = struct{}{}

		names := make(map[string]struct{}, len(group.Datasets))
		for _, d := range group.Datasets {
			if _, ok := names[d.Name]; ok {
				return fmt.Errorf("group %q: duplicate dataset %q", group.ID, d.Name)
			}
			names[d.Name] = struct{}{}
		}
	}
	return nil
}

func (a *Analyzer) runGroup(group Group) (GroupResult, error) {
	log := a.cfg.logger.With(zap.String("group", group.ID), zap.Stringer("prior", group.Prior))

	priorSample, err := a.priorSample(group)
	if err != nil {
		return GroupResult{}, err
	}

	result := GroupResult{
		ID:          group.ID,
		Prior:       group.Prior,
		PriorSample: priorSample,
		Datasets:    make([]DatasetResult, 0, len(group.Datasets)),
	}
	for _, d := range group.Datasets {
		r, err := a.runDataset(group.ID, priorSample, d)
		if errors.Is(err, sampling.ErrDegenerateWeights) && a.cfg.skipDegenerate {
			log.Warn("skipping dataset with degenerate weights",
				zap.String("dataset", d.Name),
				zap.Int("successes", d.Counts.Successes),
				zap.Int("failures", d.Counts.Failures),
			)
			result.Datasets = append(result.Datasets, DatasetResult{Name: d.Name, Counts: d.Counts, Err: err})
			continue
		}
		if err != nil {
			return GroupResult{}, fmt.Errorf("dataset %q: %w", d.Name, err)
		}
		log.Debug("resampled dataset",
			zap.String("dataset", d.Name),
			zap.Float64("ess", r.EffectiveSampleSize()),
			zap.Float64("mean", r.Summary.Mean),
		)
		result.Datasets = append(result.Datasets, r)
	}
	return result, nil
}

func (a *Analyzer) priorSample(group Group) ([]float64, error) {
	if len(group.PriorSample) > 0 {
		return slices.Clone(group.PriorSample), nil
	}
	return group.Prior.Sample(a.cfg.priorSize, sampling.NewSource(internal.DeriveSeed(a.cfg.seed, group.ID)))
}

func (a *Analyzer) runDataset(groupID string, priorSample []float64, d Dataset) (DatasetResult, error) {
	src := sampling.NewSource(internal.DeriveSeed(a.cfg.seed, groupID+"/"+d.Name))
	sir, err := sampling.SIR(priorSample, d.Counts, a.cfg.draws, src)
	if err != nil {
		return DatasetResult{}, err
	}

	result := DatasetResult{
		Name:    d.Name,
		Counts:  d.Counts,
		Weights: sir.Weights,
		Draws:   sir.Draws,
	}
	if len(sir.Draws) > 0 {
		if result.Summary, err = Summarize(sir.Draws, a.cfg.credibleMass); err != nil {
			return DatasetResult{}, err
		}
	}
	return result, nil
}
