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

package prior

import (
	"math"
	"testing"

	"github.com/montanaflynn/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/posterior/sir-go/sampling"
)

func TestSpecSample(t *testing.T) {
	const n = 20_000

	testCases := []struct {
		name string
		spec Spec
		mean float64
	}{
		{name: "beta", spec: Spec{Family: Beta, A: 2, B: 5}, mean: 2.0 / 7.0},
		{name: "jeffreys", spec: Spec{Family: Beta, A: 0.5, B: 0.5}, mean: 0.5},
		{name: "uniform", spec: Spec{Family: Uniform, A: 0, B: 1}, mean: 0.5},
		{name: "gamma", spec: Spec{Family: Gamma, A: 2, B: 10}, mean: 0.2},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			values, err := tc.spec.Sample(n, sampling.NewSource(17))
			require.NoError(t, err)
			require.Len(t, values, n)

			mean, err := stats.Mean(values)
			require.NoError(t, err)
			assert.InDelta(t, tc.mean, mean, 0.01)
		})
	}
}

func TestSpecSampleTruncate(t *testing.T) {
	spec := Spec{Family: Gamma, A: 2, B: 1}

	raw, err := spec.Sample(5_000, sampling.NewSource(1))
	require.NoError(t, err)
	maximum, err := stats.Max(raw)
	require.NoError(t, err)
	assert.Greater(t, maximum, 1.0)

	spec.Truncate = true
	truncated, err := spec.Sample(5_000, sampling.NewSource(1))
	require.NoError(t, err)
	for _, v := range truncated {
		assert.True(t, v >= 0 && v <= 1, "value %v outside [0, 1]", v)
	}

	_, err = sampling.ComputeWeights(truncated, 3, 4)
	assert.NoError(t, err)

	_, err = Spec{Family: Gamma, A: 400, B: 1, Truncate: true}.Sample(10, sampling.NewSource(1))
	assert.ErrorIs(t, err, ErrTruncation)
}

func TestSpecSampleReproducible(t *testing.T) {
	spec := Spec{Family: Beta, A: 1, B: 1}
	first, err := spec.Sample(100, sampling.NewSource(5))
	require.NoError(t, err)
	second, err := spec.Sample(100, sampling.NewSource(5))
	require.NoError(t, err)
	assert.Equal(t, first, second)

	third, err := spec.Sample(100, sampling.NewSource(6))
	require.NoError(t, err)
	assert.NotEqual(t, first, third)
}

func TestSpecSampleErrors(t *testing.T) {
	spec := Spec{Family: Beta, A: 1, B: 1}

	_, err := spec.Sample(0, sampling.NewSource(1))
	assert.ErrorIs(t, err, sampling.ErrInvalidCount)

	_, err = spec.Sample(10, nil)
	assert.ErrorIs(t, err, sampling.ErrNilSource)

	_, err = Spec{Family: Beta, A: -1, B: 1}.Sample(10, sampling.NewSource(1))
	assert.ErrorIs(t, err, ErrInvalidSpec)
}

func TestSpecValidate(t *testing.T) {
	testCases := []struct {
		name  string
		spec  Spec
		valid bool
	}{
		{name: "beta", spec: Spec{Family: Beta, A: 1, B: 1}, valid: true},
		{name: "gamma", spec: Spec{Family: Gamma, A: 2, B: 3}, valid: true},
		{name: "uniform", spec: Spec{Family: Uniform, A: 0.2, B: 0.4}, valid: true},
		{name: "zero alpha", spec: Spec{Family: Beta, A: 0, B: 1}},
		{name: "negative rate", spec: Spec{Family: Gamma, A: 1, B: -2}},
		{name: "reversed uniform", spec: Spec{Family: Uniform, A: 1, B: 0}},
		{name: "truncated uniform outside unit", spec: Spec{Family: Uniform, A: 2, B: 3, Truncate: true}},
		{name: "NaN", spec: Spec{Family: Beta, A: math.NaN(), B: 1}},
		{name: "infinite", spec: Spec{Family: Beta, A: 1, B: math.Inf(1)}},
		{name: "unknown family", spec: Spec{A: 1, B: 1}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.spec.Validate()
			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidSpec)
			}
		})
	}
}

func TestParseFamily(t *testing.T) {
	for _, f := range []Family{Beta, Gamma, Uniform} {
		parsed, err := ParseFamily(f.String())
		require.NoError(t, err)
		assert.Equal(t, f, parsed)
	}

	parsed, err := ParseFamily("  Beta ")
	require.NoError(t, err)
	assert.Equal(t, Beta, parsed)

	_, err = ParseFamily("cauchy")
	assert.ErrorIs(t, err, ErrInvalidSpec)

	assert.Equal(t, "Family(9)", Family(9).String())
	assert.Equal(t, "beta(2, 8)", Spec{Family: Beta, A: 2, B: 8}.String())
	assert.Equal(t, "gamma(2, 10)[0,1]", Spec{Family: Gamma, A: 2, B: 10, Truncate: true}.String())
}
