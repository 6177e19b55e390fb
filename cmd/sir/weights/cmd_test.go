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

package weights

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/posterior/sir-go/sampling"
)

func TestCommand(t *testing.T) {
	var stdout bytes.Buffer
	c := Command()
	c.SetOut(&stdout)
	c.SetArgs([]string{"--values=0.125,0.127,0.8", "--successes=1", "--failures=7", "--log"})
	require.NoError(t, c.Execute())

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "0\t0.125\t0.49"), lines[0])
	assert.True(t, strings.HasPrefix(lines[2], "2\t0.8\t0.000104"), lines[2])
	assert.Len(t, strings.Split(lines[0], "\t"), 4)
	assert.True(t, strings.HasPrefix(lines[3], "ess=2.0"), lines[3])
}

func TestPrint(t *testing.T) {
	t.Run("without log weights", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Print(&buf, &Config{Values: []float64{0.2, 0.4}}))
		assert.Equal(t, "0\t0.2\t0.5\n1\t0.4\t0.5\ness=2.000 max=0.5\n", buf.String())
	})

	t.Run("errors", func(t *testing.T) {
		var buf bytes.Buffer
		err := Print(&buf, &Config{})
		assert.ErrorIs(t, err, sampling.ErrEmptyInput)

		err = Print(&buf, &Config{Values: []float64{1.5}})
		assert.ErrorIs(t, err, sampling.ErrInvalidDomain)

		err = Print(&buf, &Config{Values: []float64{0}, Counts: sampling.CountData{Successes: 1}})
		assert.ErrorIs(t, err, sampling.ErrDegenerateWeights)
		assert.Empty(t, buf.String())
	})
}
