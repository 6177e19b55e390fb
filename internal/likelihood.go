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

import "math"

// BinomialKernel returns p^successes * (1-p)^failures, with 0^0 = 1.
// The binomial coefficient is omitted.
func BinomialKernel(p float64, successes, failures int) float64 {
	return math.Pow(p, float64(successes)) * math.Pow(1.0-p, float64(failures))
}

// LogBinomialKernel returns successes*log(p) + failures*log(1-p). A zero count
// contributes 0 even when the matching log is -Inf, so the result is -Inf only
// when the kernel is exactly zero.
func LogBinomialKernel(p float64, successes, failures int) float64 {
	return xLogY(successes, math.Log(p)) + xLogY(failures, math.Log1p(-p))
}

func xLogY(n int, logY float64) float64 {
	if n == 0 {
		return 0
	}
	return float64(n) * logY
}
