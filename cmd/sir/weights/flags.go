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
	"github.com/spf13/pflag"

	"github.com/posterior/sir-go/sampling"
)

const (
	ValuesKey    = "values"
	SuccessesKey = "successes"
	FailuresKey  = "failures"
	LogKey       = "log"
)

func AddFlags(flags *pflag.FlagSet) {
	flags.Float64Slice(ValuesKey, nil, "Prior sample to score, comma separated")
	flags.Int(SuccessesKey, 0, "Observed successes")
	flags.Int(FailuresKey, 0, "Observed failures")
	flags.Bool(LogKey, false, "Also print the unnormalized log weights")
}

type Config struct {
	Values []float64
	Counts sampling.CountData
	Log    bool
}

func ParseFlags(flags *pflag.FlagSet, args []string) (*Config, error) {
	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	values, err := flags.GetFloat64Slice(ValuesKey)
	if err != nil {
		return nil, err
	}

	successes, err := flags.GetInt(SuccessesKey)
	if err != nil {
		return nil, err
	}

	failures, err := flags.GetInt(FailuresKey)
	if err != nil {
		return nil, err
	}

	log, err := flags.GetBool(LogKey)
	if err != nil {
		return nil, err
	}

	return &Config{
		Values: values,
		Counts: sampling.CountData{Successes: successes, Failures: failures},
		Log:    log,
	}, nil
}
