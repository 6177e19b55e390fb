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

package run

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"github.com/posterior/sir-go/posterior"
	"github.com/posterior/sir-go/prior"
	"github.com/posterior/sir-go/sampling"
)

const (
	ConfigFileKey     = "config"
	DrawsKey          = "draws"
	PriorSizeKey      = "prior-size"
	SeedKey           = "seed"
	ConcurrencyKey    = "concurrency"
	SkipDegenerateKey = "skip-degenerate"
	CredibleMassKey   = "credible-mass"
	CompareKey        = "compare"
	OutKey            = "out"
	LogLevelKey       = "log-level"
	GroupsKey         = "groups"
)

var errCompareArity = errors.New("--compare needs exactly two dataset names")

func AddFlags(flags *pflag.FlagSet) {
	flags.String(ConfigFileKey, "", "Analysis config file (YAML, JSON or TOML); the built-in analysis runs without one")
	flags.Int(DrawsKey, 10_000, "Posterior draws per dataset")
	flags.Int(PriorSizeKey, 10_000, "Prior draws per group")
	flags.Uint64(SeedKey, 1972, "Base seed for every group and dataset")
	flags.Int(ConcurrencyKey, 4, "Groups processed at once")
	flags.Bool(SkipDegenerateKey, false, "Skip datasets whose weights are all zero instead of failing")
	flags.Float64(CredibleMassKey, 0.95, "Mass of the reported credible interval")
	flags.StringSlice(CompareKey, []string{"defeated", "not-defeated"}, "Two datasets to compare within each group")
	flags.String(OutKey, "", "Directory to write encoded posterior draws to")
	flags.String(LogLevelKey, "info", "Log level")
}

type Config struct {
	Draws          int
	PriorSize      int
	Seed           uint64
	Concurrency    int
	SkipDegenerate bool
	CredibleMass   float64
	Compare        [2]string
	OutDir         string
	LogLevel       zapcore.Level
	Groups         []posterior.Group
}

// Options returns the analyzer options the config describes.
func (c *Config) Options() []posterior.Option {
	return []posterior.Option{
		posterior.WithDraws(c.Draws),
		posterior.WithPriorSize(c.PriorSize),
		posterior.WithSeed(c.Seed),
		posterior.WithConcurrency(c.Concurrency),
		posterior.WithSkipDegenerate(c.SkipDegenerate),
		posterior.WithCredibleMass(c.CredibleMass),
	}
}

// ParseFlags reads the config from flags and, when given, a config file.
// Flags set on the command line take precedence over the file.
func ParseFlags(flags *pflag.FlagSet, args []string) (*Config, error) {
	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	if err := v.BindPFlags(flags); err != nil {
		return nil, err
	}
	if v.IsSet(ConfigFileKey) && v.GetString(ConfigFileKey) != "" {
		v.SetConfigFile(os.ExpandEnv(v.GetString(ConfigFileKey)))
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	logLevel, err := zapcore.ParseLevel(v.GetString(LogLevelKey))
	if err != nil {
		return nil, err
	}

	compare := v.GetStringSlice(CompareKey)
	if len(compare) != 2 {
		return nil, fmt.Errorf("%w: got %v", errCompareArity, compare)
	}

	groups := DefaultGroups()
	if v.IsSet(GroupsKey) {
		if groups, err = parseGroups(v); err != nil {
			return nil, err
		}
	}

	return &Config{
		Draws:          v.GetInt(DrawsKey),
		PriorSize:      v.GetInt(PriorSizeKey),
		Seed:           v.GetUint64(SeedKey),
		Concurrency:    v.GetInt(ConcurrencyKey),
		SkipDegenerate: v.GetBool(SkipDegenerateKey),
		CredibleMass:   v.GetFloat64(CredibleMassKey),
		Compare:        [2]string{compare[0], compare[1]},
		OutDir:         v.GetString(OutKey),
		LogLevel:       logLevel,
		Groups:         groups,
	}, nil
}

type groupConfig struct {
	ID          string          `mapstructure:"id"`
	Prior       priorConfig     `mapstructure:"prior"`
	PriorSample []float64       `mapstructure:"prior-sample"`
	Datasets    []datasetConfig `mapstructure:"datasets"`
}

type priorConfig struct {
	Family   string  `mapstructure:"family"`
	A        float64 `mapstructure:"a"`
	B        float64 `mapstructure:"b"`
	Truncate bool    `mapstructure:"truncate"`
}

type datasetConfig struct {
	Name      string `mapstructure:"name"`
	Successes int    `mapstructure:"successes"`
	Failures  int    `mapstructure:"failures"`
}

func parseGroups(v *viper.Viper) ([]posterior.Group, error) {
	var raw []groupConfig
	if err := v.UnmarshalKey(GroupsKey, &raw); err != nil {
		return nil, err
	}

	groups := make([]posterior.Group, len(raw))
	for i, g := range raw {
		if g.ID == "" {
			return nil, fmt.Errorf("group %d has no id", i)
		}
		group := posterior.Group{
			ID:          g.ID,
			PriorSample: g.PriorSample,
			Datasets:    make([]posterior.Dataset, len(g.Datasets)),
		}
		if len(g.PriorSample) == 0 {
			family, err := prior.ParseFamily(g.Prior.Family)
			if err != nil {
				return nil, fmt.Errorf("group %q: %w", g.ID, err)
			}
			group.Prior = prior.Spec{Family: family, A: g.Prior.A, B: g.Prior.B, Truncate: g.Prior.Truncate}
		}
		for j, d := range g.Datasets {
			group.Datasets[j] = posterior.Dataset{
				Name:   d.Name,
				Counts: sampling.CountData{Successes: d.Successes, Failures: d.Failures},
			}
		}
		groups[i] = group
	}
	return groups, nil
}

// DefaultGroups is the foreign defeat analysis: how often social revolutions
// followed defeat in war (3 of 5 countries) versus no defeat (1 of 8), under
// priors of varying skepticism.
func DefaultGroups() []posterior.Group {
	datasets := []posterior.Dataset{
		{Name: "defeated", Counts: sampling.CountData{Successes: 3, Failures: 2}},
		{Name: "not-defeated", Counts: sampling.CountData{Successes: 1, Failures: 7}},
	}
	return []posterior.Group{
		{ID: "uniform", Prior: prior.Spec{Family: prior.Beta, A: 1, B: 1}, Datasets: datasets},
		{ID: "jeffreys", Prior: prior.Spec{Family: prior.Beta, A: 0.5, B: 0.5}, Datasets: datasets},
		{ID: "skeptical", Prior: prior.Spec{Family: prior.Beta, A: 2, B: 8}, Datasets: datasets},
		{ID: "gamma", Prior: prior.Spec{Family: prior.Gamma, A: 2, B: 10, Truncate: true}, Datasets: datasets},
	}
}
