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

	"golang.org/x/exp/constraints"

	"github.com/posterior/sir-go/sampling"
)

// Difference returns a[i] - b[i] for paired posterior draws.
func Difference[F constraints.Float](a, b []F) ([]F, error) {
	if err := checkPaired(len(a), len(b)); err != nil {
		return nil, err
	}
	diff := make([]F, len(a))
	for i := range a {
		diff[i] = a[i] - b[i]
	}
	return diff, nil
}

// ProbGreater estimates P(a > b) as the fraction of paired draws where
// a[i] - b[i] > 0.
func ProbGreater[F constraints.Float](a, b []F) (float64, error) {
	if err := checkPaired(len(a), len(b)); err != nil {
		return 0, err
	}
	greater := 0
	for i := range a {
		if a[i]-b[i] > 0 {
			greater++
		}
	}
	return float64(greater) / float64(len(a)), nil
}

func checkPaired(na, nb int) error {
	if na != nb {
		return fmt.Errorf("%w: %d and %d draws", sampling.ErrLengthMismatch, na, nb)
	}
	if na == 0 {
		return sampling.ErrEmptyInput
	}
	return nil
}
