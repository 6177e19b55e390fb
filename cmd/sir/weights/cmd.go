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
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/posterior/sir-go/sampling"
)

func Command() *cobra.Command {
	c := &cobra.Command{
		Use:   "weights",
		Short: "Prints the importance weights of a prior sample",
		RunE:  weightsFunc,
	}
	flags := c.Flags()
	AddFlags(flags)
	return c
}

func weightsFunc(c *cobra.Command, args []string) error {
	flags := c.Flags()
	config, err := ParseFlags(flags, args)
	if err != nil {
		return err
	}
	return Print(c.OutOrStdout(), config)
}

// Print writes one line per candidate value with its weight, followed by the
// effective sample size.
func Print(w io.Writer, config *Config) error {
	weights, err := sampling.ComputeWeights(config.Values, config.Counts.Successes, config.Counts.Failures)
	if err != nil {
		return err
	}
	var logWeights []float64
	if config.Log {
		if logWeights, err = sampling.LogWeights(config.Values, config.Counts.Successes, config.Counts.Failures); err != nil {
			return err
		}
	}

	for i, v := range config.Values {
		line := fmt.Sprintf("%d\t%g\t%.6g", i, v, weights[i])
		if config.Log {
			line += fmt.Sprintf("\t%.6g", logWeights[i])
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err = fmt.Fprintf(w, "ess=%.3f max=%.6g\n", weights.EffectiveSampleSize(), weights.MaxWeight())
	return err
}
