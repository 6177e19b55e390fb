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
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/posterior/sir-go/internal"
)

// ComputeWeights scores every value with the Binomial likelihood kernel
// v^successes * (1-v)^failures and normalizes the scores into a WeightVector.
//
// Values must lie in [0, 1] and both counts must be non-negative. When the
// direct kernel underflows for every value, the weights are recomputed in log
// space and rescaled with log-sum-exp, so their relative sizes survive. If every
// value has zero likelihood, ErrDegenerateWeights is returned instead of a
// uniform vector.
func ComputeWeights(values []float64, successes, failures int) (WeightVector, error) {
	if err := validateScoring(values, successes, failures); err != nil {
		return nil, err
	}

	weights := make(WeightVector, len(values))
	for i, v := range values {
		weights[i] = internal.BinomialKernel(v, successes, failures)
	}
	total := internal.KahanSum(weights)
	if total >= internal.MinNormalFloat64 && !math.IsInf(total, 0) {
		normalize(weights, total)
		return weights, nil
	}

	logWeights := make([]float64, len(values))
	for i, v := range values {
		logWeights[i] = internal.LogBinomialKernel(v, successes, failures)
	}
	return fromLogWeights(logWeights)
}

// LogWeights returns the unnormalized log-likelihood of every value. Values
// with zero likelihood get -Inf.
func LogWeights(values []float64, successes, failures int) ([]float64, error) {
	if err := validateScoring(values, successes, failures); err != nil {
		return nil, err
	}
	logWeights := make([]float64, len(values))
	for i, v := range values {
		logWeights[i] = internal.LogBinomialKernel(v, successes, failures)
	}
	return logWeights, nil
}

func validateScoring(values []float64, successes, failures int) error {
	if len(values) == 0 {
		return ErrEmptyInput
	}
	if err := (CountData{Successes: successes, Failures: failures}).Validate(); err != nil {
		return err
	}
	for i, v := range values {
		if math.IsNaN(v) || v < 0 || v > 1 {
			return fmt.Errorf("%w: values[%d]=%v", ErrInvalidDomain, i, v)
		}
	}
	return nil
}

// fromLogWeights exponentiates log weights after shifting them by their
// log-sum-exp.
func fromLogWeights(logWeights []float64) (WeightVector, error) {
	if floats.Max(logWeights) == math.Inf(-1) {
		return nil, ErrDegenerateWeights
	}
	lse := floats.LogSumExp(logWeights)

	weights := make(WeightVector, len(logWeights))
	for i, lw := range logWeights {
		weights[i] = math.Exp(lw - lse)
	}
	total := internal.KahanSum(weights)
	if total == 0 {
		return nil, ErrDegenerateWeights
	}
	normalize(weights, total)
	return weights, nil
}

func normalize(weights WeightVector, total float64) {
	for i, w := range weights {
		w /= total
		if w < 0 {
			w = 0
		}
		weights[i] = w
	}
}
