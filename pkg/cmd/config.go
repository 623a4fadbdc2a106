// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/consensys/go-lambda/pkg/lambda/eval"
	"gopkg.in/yaml.v3"
)

// Config captures the settings of the shell, as given by an (optional)
// configuration file.
type Config struct {
	Eval EvalConfig `yaml:"eval"`
	Repl ReplConfig `yaml:"repl"`
}

// EvalConfig determines the bounds under which expressions are evaluated.
type EvalConfig struct {
	MaxDepth      uint   `yaml:"max-depth"`
	MaxIterations uint   `yaml:"max-iterations"`
	Mode          string `yaml:"mode"`
}

// ReplConfig determines the behaviour of the interactive shell.
type ReplConfig struct {
	History string `yaml:"history"`
	Prompt  string `yaml:"prompt"`
}

// Recognised evaluation modes.
const (
	MODE_NORMAL = "normal"
	MODE_WHNF   = "whnf"
)

// DefaultConfig returns the configuration used when no configuration file is
// given.
func DefaultConfig() Config {
	return Config{
		Eval: EvalConfig{eval.DEFAULT_MAX_DEPTH, eval.DEFAULT_MAX_ITERATIONS, MODE_NORMAL},
		Repl: ReplConfig{".lambda", ">> "},
	}
}

// LoadConfig reads a configuration from a given reader.  Any setting not given
// retains its default value, whilst unknown settings are rejected.
func LoadConfig(reader io.Reader) (Config, error) {
	config := DefaultConfig()
	decoder := yaml.NewDecoder(reader)
	decoder.KnownFields(true)
	//
	if err := decoder.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
		return config, fmt.Errorf("config: %w", err)
	}
	//
	if _, err := config.Eval.EvalMode(); err != nil {
		return config, err
	}
	//
	return config, nil
}

// ReadConfigFile reads a configuration from a given file.
func ReadConfigFile(filename string) (Config, error) {
	file, err := os.Open(filename)
	if err != nil {
		return DefaultConfig(), fmt.Errorf("config: open %s: %w", filename, err)
	}
	defer file.Close()
	//
	return LoadConfig(file)
}

// EvalMode translates the mode of this configuration.
func (p EvalConfig) EvalMode() (eval.Mode, error) {
	switch p.Mode {
	case MODE_NORMAL:
		return eval.NORMAL_FORM, nil
	case MODE_WHNF:
		return eval.HEAD_NORMAL_FORM, nil
	}
	//
	return eval.NORMAL_FORM, fmt.Errorf("config: unknown evaluation mode \"%s\"", p.Mode)
}

// Evaluation converts this configuration into one for the evaluator.
func (p EvalConfig) Evaluation() eval.Config {
	// Modes are checked on loading
	mode, _ := p.EvalMode()
	//
	return eval.Config{MaxDepth: p.MaxDepth, MaxIterations: p.MaxIterations, Mode: mode}
}
