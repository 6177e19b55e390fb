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

package internal

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKahanSum(t *testing.T) {
	assert.Zero(t, KahanSum(nil))
	assert.Equal(t, 6.0, KahanSum([]float64{1, 2, 3}))

	values := make([]float64, 10_000)
	for i := range values {
		values[i] = 0.1
	}
	assert.InDelta(t, 1000.0, KahanSum(values), 1e-12)
}

func TestCheckPMF(t *testing.T) {
	testCases := []struct {
		name    string
		f       []float64
		wantErr string
	}{
		{name: "valid", f: []float64{0.25, 0.25, 0.5}},
		{name: "within tolerance", f: []float64{0.5, 0.5 + 1e-12}},
		{name: "negative", f: []float64{-0.1, 1.1}, wantErr: "invalid probability -0.1 at index 0"},
		{name: "above one", f: []float64{1.5}, wantErr: "invalid probability 1.5 at index 0"},
		{name: "nan", f: []float64{0.5, math.NaN()}, wantErr: "at index 1"},
		{name: "short", f: []float64{0.25, 0.25}, wantErr: "total is not one"},
		{name: "empty", f: nil, wantErr: "total is not one"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := CheckPMF(tc.f, 1e-9)
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestBinomialKernel(t *testing.T) {
	assert.Equal(t, 1.0, BinomialKernel(0, 0, 0))
	assert.Equal(t, 1.0, BinomialKernel(0, 0, 5))
	assert.Equal(t, 0.0, BinomialKernel(0, 1, 5))
	assert.Equal(t, 1.0, BinomialKernel(1, 5, 0))
	assert.Equal(t, 0.0, BinomialKernel(1, 5, 1))
	assert.InDelta(t, 0.5*0.5*0.5, BinomialKernel(0.5, 2, 1), 1e-15)
	assert.InDelta(t, 0.8*math.Pow(0.2, 7), BinomialKernel(0.8, 1, 7), 1e-18)
}

func TestLogBinomialKernel(t *testing.T) {
	for _, p := range []float64{0.01, 0.125, 0.5, 0.99} {
		assert.InDelta(t, math.Log(BinomialKernel(p, 3, 4)), LogBinomialKernel(p, 3, 4), 1e-12, "p=%v", p)
	}

	assert.Zero(t, LogBinomialKernel(0, 0, 3))
	assert.Zero(t, LogBinomialKernel(1, 3, 0))
	assert.True(t, math.IsInf(LogBinomialKernel(0, 1, 3), -1))
	assert.True(t, math.IsInf(LogBinomialKernel(1, 3, 1), -1))

	// Underflows in the direct kernel but stays finite in log space.
	assert.Zero(t, BinomialKernel(0.5, 1200, 1200))
	assert.InDelta(t, 2400*math.Log(0.5), LogBinomialKernel(0.5, 1200, 1200), 1e-9)
}

func TestDeriveSeed(t *testing.T) {
	assert.Equal(t, DeriveSeed(1972, "uniform"), DeriveSeed(1972, "uniform"))
	assert.NotEqual(t, DeriveSeed(1972, "uniform"), DeriveSeed(1972, "skeptical"))
	assert.NotEqual(t, DeriveSeed(1972, "uniform"), DeriveSeed(1973, "uniform"))
	assert.NotEqual(t, DeriveSeed(1, "a/b"), DeriveSeed(1, "a"))
}
