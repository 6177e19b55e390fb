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

// Package binomialproportionsbounds computes an approximation to the
// Clopper-Pearson confidence interval for a Binomial proportion. Exact
// Clopper-Pearson intervals are strictly conservative, but these
// approximations are not.
//
// The inputs are the observed successes and failures of a batch of
// independent trials, and numStdDevs, which fixes the confidence level through
// the right tail of the standard normal distribution. The interval is a
// frequentist counterpart to a posterior credible interval under a flat prior.
package binomialproportionsbounds

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Interval is a confidence interval [Lower, Upper] for a proportion.
type Interval struct {
	Lower float64
	Upper float64
}

// Contains reports whether p lies in the interval.
func (i Interval) Contains(p float64) bool {
	return i.Lower <= p && p <= i.Upper
}

// ApproximateInterval returns both bounds for the given counts.
func ApproximateInterval(successes, failures int, numStdDevs float64) (Interval, error) {
	lower, err := ApproximateLowerBoundOnP(successes, failures, numStdDevs)
	if err != nil {
		return Interval{}, err
	}
	upper, err := ApproximateUpperBoundOnP(successes, failures, numStdDevs)
	if err != nil {
		return Interval{}, err
	}
	return Interval{Lower: lower, Upper: upper}, nil
}

// ApproximateLowerBoundOnP computes the lower bound of an approximate
// Clopper-Pearson interval.
//
// The bound is defined with respect to the right tail of the binomial
// distribution: with n trials and k successes, solve for the x = 1-p for which
// I_x(n-k+1, k) = 1 - delta, and return p = 1-x.
func ApproximateLowerBoundOnP(successes, failures int, numStdDevs float64) (float64, error) {
	if err := validateCounts(successes, failures); err != nil {
		return 0, err
	}
	n, k := successes+failures, successes
	switch {
	case n == 0, k == 0:
		return 0.0, nil
	case k == 1:
		return 1.0 - math.Pow(1.0-deltaOfNumStdDevs(numStdDevs), 1.0/float64(n)), nil
	case k == n:
		return math.Pow(deltaOfNumStdDevs(numStdDevs), 1.0/float64(n)), nil
	default:
		x := abramowitzStegunFormula26p5p22(float64(n-k+1), float64(k), -numStdDevs)
		return 1.0 - x, nil
	}
}

// ApproximateUpperBoundOnP computes the upper bound of an approximate
// Clopper-Pearson interval.
//
// The bound is defined with respect to the left tail of the binomial
// distribution: solve for the x = 1-p for which I_x(n-k, k+1) = delta, and
// return p = 1-x.
func ApproximateUpperBoundOnP(successes, failures int, numStdDevs float64) (float64, error) {
	if err := validateCounts(successes, failures); err != nil {
		return 0, err
	}
	n, k := successes+failures, successes
	switch {
	case n == 0, k == n:
		return 1.0, nil
	case k == n-1:
		return math.Pow(1.0-deltaOfNumStdDevs(numStdDevs), 1.0/float64(n)), nil
	case k == 0:
		return 1.0 - math.Pow(deltaOfNumStdDevs(numStdDevs), 1.0/float64(n)), nil
	default:
		x := abramowitzStegunFormula26p5p22(float64(n-k), float64(k+1), numStdDevs)
		return 1.0 - x, nil
	}
}

func validateCounts(successes, failures int) error {
	if successes < 0 || failures < 0 {
		return fmt.Errorf("counts must be non-negative: successes=%d, failures=%d", successes, failures)
	}
	return nil
}

// deltaOfNumStdDevs is the probability mass right of kappa standard
// deviations.
func deltaOfNumStdDevs(kappa float64) float64 {
	return distuv.UnitNormal.CDF(-kappa)
}

// abramowitzStegunFormula26p5p22 is Formula 26.5.22 on page 945 of Abramowitz
// & Stegun, an approximation of the inverse of the incomplete beta function
// I_x(a,b) = delta viewed as a scalar function of x. delta is given through yp,
// the number of standard deviations leaving delta in the right tail of a
// standard normal. Variable names follow the book.
func abramowitzStegunFormula26p5p22(a, b, yp float64) float64 {
	b2m1 := (2.0 * b) - 1.0
	a2m1 := (2.0 * a) - 1.0
	lambda := ((yp * yp) - 3.0) / 6.0
	htmp := (1.0 / a2m1) + (1.0 / b2m1)
	h := 2.0 / htmp
	term1 := (yp * math.Sqrt(h+lambda)) / h
	term2 := (1.0 / b2m1) - (1.0 / a2m1)
	term3 := (lambda + (5.0 / 6.0)) - (2.0 / (3.0 * h))
	w := term1 - (term2 * term3)
	return a / (a + (b * math.Exp(2.0*w)))
}
