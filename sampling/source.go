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
	"math"

	"gonum.org/v1/gonum/mathext/prng"
)

// Source is a stream of uniformly distributed 64-bit values. The generators in
// gonum's mathext/prng satisfy it, as does *rand.Rand from math/rand/v2.
//
// A Source is not safe for concurrent use. Give each goroutine its own.
type Source interface {
	// Uint64 returns a random number in [0, MaxUint64] and advances the
	// generator's state.
	Uint64() uint64
}

// NewSource returns a Mersenne Twister seeded with seed.
func NewSource(seed uint64) *prng.MT19937 {
	src := prng.NewMT19937()
	src.Seed(seed)
	return src
}

// Float64 returns a uniform value in [0, 1) built from the top 53 bits of the
// next value of src.
func Float64(src Source) float64 {
	return float64(src.Uint64()>>11) * 0x1p-53
}

// Intn returns a uniform value in [0, n). n must be positive.
func Intn(src Source, n int) int {
	bound := uint64(n)
	if bound&(bound-1) == 0 {
		return int(src.Uint64() & (bound - 1))
	}
	// Reject the top partial block so every residue is equally likely.
	maximum := math.MaxUint64 - math.MaxUint64%bound
	v := src.Uint64()
	for v >= maximum {
		v = src.Uint64()
	}
	return int(v % bound)
}
