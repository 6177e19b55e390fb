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

// Package prior generates prior samples for a Binomial proportion from named
// parametric families.
package prior

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/posterior/sir-go/sampling"
)

// maxRejections bounds the redraws spent on one value of a truncated prior.
const maxRejections = 1000

var (
	ErrInvalidSpec = errors.New("invalid prior specification")
	ErrTruncation  = errors.New("too many draws outside [0, 1]")
)

// Family names a parametric prior family.
type Family int

const (
	// Beta has shape parameters A (alpha) and B (beta).
	Beta Family = iota + 1
	// Gamma has shape A and rate B.
	Gamma
	// Uniform is uniform on [A, B).
	Uniform
)

var familyNames = map[Family]string{
	Beta:    "beta",
	Gamma:   "gamma",
	Uniform: "uniform",
}

func (f Family) String() string {
	if name, ok := familyNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Family(%d)", int(f))
}

// ParseFamily maps a case-insensitive family name to a Family.
func ParseFamily(name string) (Family, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for f, n := range familyNames {
		if n == name {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown family %q", ErrInvalidSpec, name)
}

// Spec identifies a prior distribution by family and two shape parameters.
type Spec struct {
	Family Family
	A      float64
	B      float64
	// Truncate restricts draws to [0, 1] by rejection. Families whose
	// support extends past 1, like Gamma, need it to produce valid
	// proportions.
	Truncate bool
}

func (s Spec) String() string {
	str := fmt.Sprintf("%s(%g, %g)", s.Family, s.A, s.B)
	if s.Truncate {
		str += "[0,1]"
	}
	return str
}

// Validate checks that the parameters are finite and admissible for the
// family.
func (s Spec) Validate() error {
	if math.IsNaN(s.A) || math.IsInf(s.A, 0) || math.IsNaN(s.B) || math.IsInf(s.B, 0) {
		return fmt.Errorf("%w: %s has non-finite parameters", ErrInvalidSpec, s)
	}
	switch s.Family {
	case Beta, Gamma:
		if s.A <= 0 || s.B <= 0 {
			return fmt.Errorf("%w: %s needs positive parameters", ErrInvalidSpec, s)
		}
	case Uniform:
		if s.A >= s.B {
			return fmt.Errorf("%w: %s needs A < B", ErrInvalidSpec, s)
		}
		if s.Truncate && (s.B <= 0 || s.A >= 1) {
			return fmt.Errorf("%w: %s does not overlap [0, 1]", ErrInvalidSpec, s)
		}
	default:
		return fmt.Errorf("%w: unknown family %v", ErrInvalidSpec, s.Family)
	}
	return nil
}

type rander interface {
	Rand() float64
}

func (s Spec) dist(src sampling.Source) rander {
	switch s.Family {
	case Beta:
		return distuv.Beta{Alpha: s.A, Beta: s.B, Src: src}
	case Gamma:
		return distuv.Gamma{Alpha: s.A, Beta: s.B, Src: src}
	default:
		return distuv.Uniform{Min: s.A, Max: s.B, Src: src}
	}
}

// Sample draws n values from the prior using src.
func (s Spec) Sample(n int, src sampling.Source) ([]float64, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: prior sample size %d", sampling.ErrInvalidCount, n)
	}
	if src == nil {
		return nil, sampling.ErrNilSource
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}

	d := s.dist(src)
	values := make([]float64, n)
	for i := range values {
		v, err := s.draw(d)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}

func (s Spec) draw(d rander) (float64, error) {
	if !s.Truncate {
		return d.Rand(), nil
	}
	for i := 0; i < maxRejections; i++ {
		if v := d.Rand(); v >= 0 && v <= 1 {
			return v, nil
		}
	}
	return 0, fmt.Errorf("%w: %s after %d attempts", ErrTruncation, s, maxRejections)
}
