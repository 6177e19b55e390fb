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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/posterior/sir-go/sampling"
)

func TestDifference(t *testing.T) {
	diff, err := Difference([]float64{0.5, 0.25, 1}, []float64{0.25, 0.5, 1})
	require.NoError(t, err)
	assert.Equal(t, []float64{0.25, -0.25, 0}, diff)

	diff32, err := Difference([]float32{1}, []float32{0.5})
	require.NoError(t, err)
	assert.Equal(t, []float32{0.5}, diff32)

	_, err = Difference([]float64{1}, []float64{1, 2})
	assert.ErrorIs(t, err, sampling.ErrLengthMismatch)
}

func TestProbGreater(t *testing.T) {
	t.Run("fraction of paired draws", func(t *testing.T) {
		p, err := ProbGreater([]float64{0.4, 0.6, 0.8, 0.1}, []float64{0.5, 0.5, 0.5, 0.5})
		require.NoError(t, err)
		assert.Equal(t, 0.5, p)
	})

	t.Run("identical inputs", func(t *testing.T) {
		draws := []float64{0.1, 0.2, 0.3}
		p, err := ProbGreater(draws, draws)
		require.NoError(t, err)
		assert.Zero(t, p)
	})

	t.Run("errors", func(t *testing.T) {
		_, err := ProbGreater([]float64{}, []float64{})
		assert.ErrorIs(t, err, sampling.ErrEmptyInput)

		_, err = ProbGreater([]float64{0.1}, []float64{})
		assert.ErrorIs(t, err, sampling.ErrLengthMismatch)
	})
}
