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

// Package sampling implements Sampling Importance Resampling (SIR) for a
// Binomial proportion.
//
// The procedure has two steps that can be used separately:
//   - ComputeWeights scores every candidate value of a prior sample with the
//     Binomial likelihood kernel and normalizes the scores into a WeightVector.
//   - Resample draws values with replacement according to a WeightVector.
//
// The resampled values approximate draws from the posterior. SIR composes both
// steps and keeps the weights around for inspection.
//
// Nothing in this package uses a global random generator. Every operation that
// consumes entropy takes a Source, so results are reproducible for a fixed seed.
package sampling

import (
	"errors"
	"fmt"
	"math"

	"github.com/posterior/sir-go/internal"
)

// Error kinds reported by the scorer and the resampling engine. They are
// wrapped with call-specific detail, so compare them with errors.Is.
var (
	ErrEmptyInput        = errors.New("values must not be empty")
	ErrInvalidCount      = errors.New("count must be non-negative")
	ErrInvalidDomain     = errors.New("value outside the likelihood domain [0, 1]")
	ErrDegenerateWeights = errors.New("every candidate has zero likelihood")
	ErrLengthMismatch    = errors.New("values and weights differ in length")
	ErrInvalidWeights    = errors.New("weights are not a probability distribution")
	ErrNilSource         = errors.New("random source must not be nil")
)

// weightTolerance bounds how far the sum of a WeightVector may drift from 1.
const weightTolerance = 1e-9

// CountData is one observed Binomial dataset.
type CountData struct {
	Successes int
	Failures  int
}

// Trials returns the number of observations in the dataset.
func (c CountData) Trials() int {
	return c.Successes + c.Failures
}

// Validate checks that neither count is negative.
func (c CountData) Validate() error {
	if c.Successes < 0 || c.Failures < 0 {
		return fmt.Errorf("%w: successes=%d, failures=%d", ErrInvalidCount, c.Successes, c.Failures)
	}
	return nil
}

// WeightVector is a discrete probability distribution over the indices of a
// prior sample.
type WeightVector []float64

// Sum returns the total weight.
func (w WeightVector) Sum() float64 {
	return internal.KahanSum(w)
}

// MaxWeight returns the largest weight, or 0 for an empty vector.
func (w WeightVector) MaxWeight() float64 {
	maxWeight := 0.0
	for _, v := range w {
		maxWeight = math.Max(maxWeight, v)
	}
	return maxWeight
}

// EffectiveSampleSize returns 1/sum(w^2), the number of equally weighted
// draws the vector is worth. It ranges from 1 (all weight on one candidate) to
// len(w) (uniform weights).
func (w WeightVector) EffectiveSampleSize() float64 {
	sumSq := 0.0
	for _, v := range w {
		sumSq += v * v
	}
	if sumSq == 0 {
		return 0
	}
	return 1.0 / sumSq
}

// Validate checks that w is non-empty, that every weight is finite and
// non-negative, and that the weights sum to 1.
func (w WeightVector) Validate() error {
	if len(w) == 0 {
		return fmt.Errorf("%w: weight vector is empty", ErrEmptyInput)
	}
	if err := internal.CheckPMF(w, weightTolerance); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidWeights, err)
	}
	return nil
}

// Result is the output of one SIR run.
type Result struct {
	// Weights are the normalized importance weights of the prior sample.
	Weights WeightVector
	// Draws are the resampled values, in draw order.
	Draws []float64
}

// SIR scores values against data and draws count values from the weighted
// sample using src.
func SIR(values []float64, data CountData, count int, src Source) (Result, error) {
	weights, err := ComputeWeights(values, data.Successes, data.Failures)
	if err != nil {
		return Result{}, err
	}
	draws, err := Resample(values, weights, count, src)
	if err != nil {
		return Result{}, err
	}
	return Result{Weights: weights, Draws: draws}, nil
}
