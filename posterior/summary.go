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

package posterior

import (
	"fmt"

	"github.com/montanaflynn/stats"

	"github.com/posterior/sir-go/internal/binomialproportionsbounds"
	"github.com/posterior/sir-go/sampling"
)

// Summary describes a posterior sample.
type Summary struct {
	Mean   float64
	Median float64
	StdDev float64
	// Lower and Upper bound the equal-tailed credible interval holding Mass
	// of the draws.
	Lower float64
	Upper float64
	Mass  float64
}

// Summarize computes location, spread and an equal-tailed credible interval
// of draws. mass must be in (0, 1).
func Summarize(draws []float64, mass float64) (Summary, error) {
	if len(draws) == 0 {
		return Summary{}, sampling.ErrEmptyInput
	}
	if !(mass > 0 && mass < 1) {
		return Summary{}, fmt.Errorf("credible mass must be in (0, 1): %v", mass)
	}

	data := stats.Float64Data(draws)
	mean, err := stats.Mean(data)
	if err != nil {
		return Summary{}, err
	}
	median, err := stats.Median(data)
	if err != nil {
		return Summary{}, err
	}
	stdDev := 0.0
	if len(data) > 1 {
		if stdDev, err = stats.StandardDeviationSample(data); err != nil {
			return Summary{}, err
		}
	}
	tail := 100 * (1 - mass) / 2
	lower, err := stats.PercentileNearestRank(data, tail)
	if err != nil {
		return Summary{}, err
	}
	upper, err := stats.PercentileNearestRank(data, 100-tail)
	if err != nil {
		return Summary{}, err
	}

	return Summary{
		Mean:   mean,
		Median: median,
		StdDev: stdDev,
		Lower:  lower,
		Upper:  upper,
		Mass:   mass,
	}, nil
}

// FrequentistInterval returns the approximate Clopper-Pearson interval of the
// observed proportion, numStdDevs wide on each side.
func FrequentistInterval(counts sampling.CountData, numStdDevs float64) (binomialproportionsbounds.Interval, error) {
	if err := counts.Validate(); err != nil {
		return binomialproportionsbounds.Interval{}, err
	}
	return binomialproportionsbounds.ApproximateInterval(counts.Successes, counts.Failures, numStdDevs)
}
