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
	"testing"

	"github.com/stretchr/testify/assert"
)

type constSource uint64

func (c constSource) Uint64() uint64 { return uint64(c) }

func TestNewSource(t *testing.T) {
	a := NewSource(2024)
	b := NewSource(2024)
	c := NewSource(2025)

	same, differ := true, false
	for i := 0; i < 16; i++ {
		va, vb, vc := a.Uint64(), b.Uint64(), c.Uint64()
		same = same && va == vb
		differ = differ || va != vc
	}
	assert.True(t, same)
	assert.True(t, differ)
}

func TestFloat64(t *testing.T) {
	assert.Equal(t, 0.0, Float64(constSource(0)))
	assert.Less(t, Float64(constSource(math.MaxUint64)), 1.0)
	assert.Equal(t, 0.5, Float64(constSource(1<<63)))

	src := NewSource(3)
	for i := 0; i < 10_000; i++ {
		u := Float64(src)
		assert.True(t, u >= 0 && u < 1)
	}
}

func TestIntn(t *testing.T) {
	src := NewSource(4)
	for _, n := range []int{1, 2, 3, 7, 8, 1000} {
		seen := make(map[int]bool)
		for i := 0; i < 5_000; i++ {
			v := Intn(src, n)
			assert.True(t, v >= 0 && v < n)
			seen[v] = true
		}
		if n <= 8 {
			assert.Len(t, seen, n)
		}
	}
	assert.Equal(t, 0, Intn(constSource(math.MaxUint64), 1))
	assert.Equal(t, 3, Intn(constSource(math.MaxUint64), 4))
}
