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
	"fmt"
	"math"
)

// MinNormalFloat64 is the smallest positive normal float64. Sums below it have
// lost precision to gradual underflow.
const MinNormalFloat64 = 0x1p-1022

// KahanSum returns the compensated sum of values.
func KahanSum(values []float64) float64 {
	sum := 0.0
	c := 0.0
	for _, v := range values {
		y := v - c
		t := sum + y
		c = (t - sum) - y
		sum = t
	}
	return sum
}

// CheckPMF checks that every entry of f is a finite probability and that the
// entries sum to 1 within tolerance.
func CheckPMF(f []float64, tolerance float64) error {
	for i, x := range f {
		if math.IsNaN(x) || x < 0.0 || x > 1.0 {
			return fmt.Errorf("invalid probability %v at index %d", x, i)
		}
	}
	total := KahanSum(f)
	if math.Abs(total-1.0) > tolerance {
		return fmt.Errorf("total is not one: %v", total)
	}
	return nil
}
