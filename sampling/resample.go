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

package sampling

import (
	"fmt"
	"slices"
	"sort"
)

// Strategy selects how a Resampler maps uniform variates to indices. Every
// strategy draws i.i.d. with replacement from the same distribution; they
// differ only in cost.
type Strategy int

const (
	// StrategyInverseCDF binary searches the cumulative weights:
	// O(N) setup, O(log N) per draw.
	StrategyInverseCDF Strategy = iota
	// StrategyAlias uses Vose's alias table: O(N) setup, O(1) per draw.
	StrategyAlias
)

func (s Strategy) String() string {
	switch s {
	case StrategyInverseCDF:
		return "inverse-cdf"
	case StrategyAlias:
		return "alias"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

type ResamplerOption func(*resamplerConfig)

type resamplerConfig struct {
	strategy Strategy
}

// WithStrategy sets the index selection strategy. The default is
// StrategyInverseCDF.
func WithStrategy(s Strategy) ResamplerOption {
	return func(c *resamplerConfig) {
		c.strategy = s
	}
}

// Resampler draws values with replacement according to a fixed WeightVector.
// Validation and table construction happen once in NewResampler, so repeated
// draws from the same weights are cheap.
type Resampler[T any] struct {
	values   []T
	strategy Strategy

	cdf          []float64 // cumulative weights, StrategyInverseCDF
	lastPositive int       // last index with positive weight

	alias *aliasTable // StrategyAlias
}

// NewResampler validates values and weights and builds the sampling table.
// values is copied, so later changes by the caller do not affect draws.
func NewResampler[T any](values []T, weights WeightVector, opts ...ResamplerOption) (*Resampler[T], error) {
	if len(values) == 0 {
		return nil, ErrEmptyInput
	}
	if len(values) != len(weights) {
		return nil, fmt.Errorf("%w: %d values, %d weights", ErrLengthMismatch, len(values), len(weights))
	}
	if err := weights.Validate(); err != nil {
		return nil, err
	}

	cfg := &resamplerConfig{
		strategy: StrategyInverseCDF,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	r := &Resampler[T]{
		values:   slices.Clone(values),
		strategy: cfg.strategy,
	}
	switch cfg.strategy {
	case StrategyInverseCDF:
		r.cdf, r.lastPositive = cumulative(weights)
	case StrategyAlias:
		r.alias = newAliasTable(weights)
	default:
		return nil, fmt.Errorf("unknown resampling strategy: %v", cfg.strategy)
	}
	return r, nil
}

// N returns the number of candidate values.
func (r *Resampler[T]) N() int { return len(r.values) }

// Strategy returns the configured index selection strategy.
func (r *Resampler[T]) Strategy() Strategy { return r.strategy }

// Draw returns count values drawn with replacement, in draw order. count may
// exceed N. A count of zero returns an empty slice without touching src.
func (r *Resampler[T]) Draw(count int, src Source) ([]T, error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: draw count %d", ErrInvalidCount, count)
	}
	if src == nil {
		return nil, ErrNilSource
	}

	out := make([]T, count)
	for i := range out {
		out[i] = r.values[r.index(src)]
	}
	return out, nil
}

// DrawIndices is like Draw but returns the selected indices.
func (r *Resampler[T]) DrawIndices(count int, src Source) ([]int, error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: draw count %d", ErrInvalidCount, count)
	}
	if src == nil {
		return nil, ErrNilSource
	}

	out := make([]int, count)
	for i := range out {
		out[i] = r.index(src)
	}
	return out, nil
}

func (r *Resampler[T]) index(src Source) int {
	if r.alias != nil {
		return r.alias.sample(src)
	}
	return r.searchCDF(Float64(src))
}

// searchCDF returns the smallest index whose cumulative weight exceeds u.
// Rounding can leave the final cumulative weight just below 1; a u past it
// maps to the last index with positive weight.
func (r *Resampler[T]) searchCDF(u float64) int {
	i := sort.Search(len(r.cdf), func(i int) bool {
		return r.cdf[i] > u
	})
	if i == len(r.cdf) {
		return r.lastPositive
	}
	return i
}

func cumulative(weights WeightVector) ([]float64, int) {
	cdf := make([]float64, len(weights))
	lastPositive := 0
	sum := 0.0
	for i, w := range weights {
		sum += w
		cdf[i] = sum
		if w > 0 {
			lastPositive = i
		}
	}
	return cdf, lastPositive
}

// Resample draws count values from values with replacement, each draw
// selecting index i with probability weights[i]. Inputs are validated before
// any entropy is consumed.
func Resample[T any](values []T, weights WeightVector, count int, src Source) ([]T, error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: draw count %d", ErrInvalidCount, count)
	}
	r, err := NewResampler(values, weights)
	if err != nil {
		return nil, err
	}
	return r.Draw(count, src)
}
