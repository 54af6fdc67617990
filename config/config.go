// Copyright 2024 The gpssvm Authors
// This file is part of gpssvm.
//
// gpssvm is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// gpssvm is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with gpssvm. If not, see <http://www.gnu.org/licenses/>.

// Package config loads the run-time configuration for the gpssvm CLI from
// a TOML file, in the teacher's cmd/gprobe convention of unmarshaling a
// single top-level struct via naoina/toml with strict field matching.
package config

import (
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/naoina/toml"
)

// tomlSettings mirrors the teacher's cmd/gprobe config loader: a key's first
// letter is upper-cased and the result must equal the Go field name exactly,
// and unknown keys are rejected rather than silently ignored.
var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string {
		return strings.ToUpper(key[:1]) + key[1:]
	},
	FieldToKey: func(rt reflect.Type, field string) string {
		return field
	},
	MissingField: func(rt reflect.Type, field string) error {
		return fmt.Errorf("field %q is not defined in %s", field, rt.String())
	},
}

// Config is the gpssvm CLI's run-time configuration: the default
// remaining_starts count, the RNG seed, verbosity, and which built-in
// scenario to run.
// Memory and code are supplied separately (see cmd/gpssvm/scenarios.go);
// they are not configuration in the node.Config sense.
type Config struct {
	Starts    uint32 `toml:",omitempty"`
	RNGSeed   int64  `toml:",omitempty"`
	Verbosity int    `toml:",omitempty"` // minimum log level, 0=trace .. 5=crit, matching log.Level
	Scenario  string `toml:",omitempty"` // name of a built-in scenario to run
}

// Default returns the configuration used when no file is supplied.
func Default() Config {
	return Config{
		Starts:    15,
		RNGSeed:   1,
		Verbosity: 2, // log.LevelInfo
		Scenario:  "s1",
	}
}

// Load reads and strictly decodes a TOML configuration file, starting from
// Default() so that a file only overriding a subset of fields still ends
// up with sane values for the rest.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer f.Close()
	return decode(f)
}

func decode(r io.Reader) (Config, error) {
	cfg := Default()
	if err := tomlSettings.NewDecoder(r).Decode(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
