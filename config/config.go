// SPDX-License-Identifier: GPL-2.0-or-later

// Package config loads console variables from YAML files.
package config

import (
	"os"

	"etmove/conlog"
	"etmove/cvar"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Load applies the name: value pairs in the file at path. Later files
// override earlier ones, so Load can be called once per file.
func Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "could not read config %s", path)
	}
	if err := Parse(data); err != nil {
		return errors.Wrapf(err, "config %s", path)
	}
	return nil
}

// Parse applies a YAML mapping of variable names to scalar values.
// Booleans become "1" and "0".
func Parse(data []byte) error {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return errors.Wrap(err, "could not parse config")
	}
	if len(doc.Content) == 0 {
		// empty file
		return nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return errors.Errorf("line %d: want a mapping of names to values", root.Line)
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		k, v := root.Content[i], root.Content[i+1]
		if v.Kind != yaml.ScalarNode {
			return errors.Errorf("line %d: %s is not a scalar", v.Line, k.Value)
		}
		value := v.Value
		if v.Tag == "!!bool" {
			var b bool
			if err := v.Decode(&b); err != nil {
				return errors.Wrapf(err, "line %d", v.Line)
			}
			value = "0"
			if b {
				value = "1"
			}
		}
		if _, ok := cvar.Get(k.Value); !ok {
			conlog.Warnf("config: unknown variable %s\n", k.Value)
		}
		cvar.Set(k.Value, value)
	}
	return nil
}
