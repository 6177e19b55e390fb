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

// aliasTable is Vose's alias method over a validated WeightVector.
type aliasTable struct {
	prob  []float64
	alias []int
}

func newAliasTable(weights WeightVector) *aliasTable {
	n := len(weights)
	prob := make([]float64, n)
	alias := make([]int, n)
	scaled := make([]float64, n)

	small := make([]int, 0, n)
	large := make([]int, 0, n)
	heaviest := 0
	for i, w := range weights {
		scaled[i] = w * float64(n)
		if scaled[i] < 1.0 {
			small = append(small, i)
		} else {
			large = append(large, i)
		}
		if w > weights[heaviest] {
			heaviest = i
		}
	}

	for len(small) > 0 && len(large) > 0 {
		s := small[len(small)-1]
		small = small[:len(small)-1]
		l := large[len(large)-1]
		large = large[:len(large)-1]

		prob[s] = scaled[s]
		alias[s] = l

		scaled[l] -= 1.0 - scaled[s]
		if scaled[l] < 1.0 {
			small = append(small, l)
		} else {
			large = append(large, l)
		}
	}

	// Leftovers are only due to rounding and belong to full columns, except
	// zero-weight entries which must never be selected.
	for _, idx := range large {
		prob[idx] = 1.0
	}
	for _, idx := range small {
		if weights[idx] == 0 {
			prob[idx] = 0
			alias[idx] = heaviest
			continue
		}
		prob[idx] = 1.0
	}

	return &aliasTable{prob: prob, alias: alias}
}

func (t *aliasTable) sample(src Source) int {
	i := Intn(src, len(t.prob))
	if Float64(src) < t.prob[i] {
		return i
	}
	return t.alias[i]
}
