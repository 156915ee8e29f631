// seehuhn.de/go/ligaturize - add programming ligatures to monospace fonts
// Copyright (C) 2025  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package config reads build settings from YAML files.
//
// A configuration file looks like this:
//
//	catalog:
//	  - "->"
//	  - "=>"
//	  - id: triple_equal
//	    seq: "==="
//	predicate:
//	  separators: "_"
//	  marker: liga
//	  keywords: [hyphen, equal, greater]
//	naming:
//	  suffix: " Liga"
//	policy:
//	  min_rules: 1
//	  allow_empty: false
//	feature: liga
//	min_size: 50000
//
// All sections are optional.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"seehuhn.de/go/ligaturize"
)

// Config holds the settings for a build.
type Config struct {
	Catalog   []Target   `yaml:"catalog"`
	Predicate *Predicate `yaml:"predicate"`
	Naming    *Naming    `yaml:"naming"`
	Policy    Policy     `yaml:"policy"`
	Feature   string     `yaml:"feature"`
	MinSize   int64      `yaml:"min_size"`
}

// Target is a catalog entry.  In the file, a target is either a string
// with the character sequence, or a mapping with keys "id" and "seq".
type Target struct {
	ID  string
	Seq string
}

// UnmarshalYAML implements the [yaml.Unmarshaler] interface.
func (t *Target) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		t.ID = ""
		t.Seq = value.Value
		return nil
	case yaml.MappingNode:
		for i := 0; i+1 < len(value.Content); i += 2 {
			key := value.Content[i].Value
			switch key {
			case "id":
				t.ID = value.Content[i+1].Value
			case "seq":
				t.Seq = value.Content[i+1].Value
			default:
				return fmt.Errorf("line %d: unknown target field %q",
					value.Content[i].Line, key)
			}
		}
		return nil
	default:
		return fmt.Errorf("line %d: invalid target", value.Line)
	}
}

// Predicate configures the recognition of donor ligature glyphs.
// If Keywords is omitted, ligaturize.DefaultKeywords is used.
type Predicate struct {
	Separators string   `yaml:"separators"`
	Marker     string   `yaml:"marker"`
	Keywords   []string `yaml:"keywords"`
}

// Naming configures the family name of the generated font.
type Naming struct {
	Family string `yaml:"family"`
	Suffix string `yaml:"suffix"`
}

// Policy configures which build results are acceptable.
type Policy struct {
	MinRules   int  `yaml:"min_rules"`
	AllowEmpty bool `yaml:"allow_empty"`
}

// Read decodes a configuration from r.  Unknown fields are an error.
func Read(r io.Reader) (*Config, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	c := &Config{}
	err := dec.Decode(c)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	err = c.check()
	if err != nil {
		return nil, err
	}
	return c, nil
}

// ReadFile reads the configuration file fname.
// All errors are of type [*ligaturize.InputError].
func ReadFile(fname string) (*Config, error) {
	fd, err := os.Open(fname)
	if err != nil {
		return nil, &ligaturize.InputError{Path: fname, Err: err}
	}
	defer fd.Close()

	c, err := Read(fd)
	if err != nil {
		return nil, &ligaturize.InputError{Path: fname, Err: err}
	}
	return c, nil
}

func (c *Config) check() error {
	if len(c.Feature) > 4 {
		return fmt.Errorf("invalid feature tag %q", c.Feature)
	}
	if c.Policy.MinRules < 0 {
		return fmt.Errorf("invalid min_rules %d", c.Policy.MinRules)
	}
	if c.Catalog != nil {
		_, err := c.Targets()
		return err
	}
	return nil
}

// Targets returns the target catalog.
// If the file has no catalog, ligaturize.DefaultCatalog is returned.
func (c *Config) Targets() ([]ligaturize.Target, error) {
	if c.Catalog == nil {
		return ligaturize.DefaultCatalog, nil
	}
	res := make([]ligaturize.Target, len(c.Catalog))
	for i, t := range c.Catalog {
		target := ligaturize.NewTarget(t.Seq)
		if t.ID != "" {
			target.ID = t.ID
		}
		res[i] = target
	}
	err := ligaturize.CheckCatalog(res)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Builder returns a builder which uses the configured settings.
func (c *Config) Builder(log logrus.FieldLogger) (*ligaturize.Builder, error) {
	catalog, err := c.Targets()
	if err != nil {
		return nil, err
	}

	b := &ligaturize.Builder{
		Catalog: catalog,
		Feature: c.Feature,
		Policy: ligaturize.Policy{
			MinRules:   c.Policy.MinRules,
			AllowEmpty: c.Policy.AllowEmpty,
		},
		Log: log,
	}
	if p := c.Predicate; p != nil {
		keywords := p.Keywords
		if keywords == nil {
			keywords = ligaturize.DefaultKeywords
		}
		b.Predicate = &ligaturize.NamePredicate{
			Separators: p.Separators,
			Marker:     p.Marker,
			Keywords:   keywords,
		}
	}
	return b, nil
}

// NamingPolicy returns the configured naming policy.
// If the file has no naming section, ligaturize.DefaultNaming is returned.
func (c *Config) NamingPolicy() ligaturize.Naming {
	if c.Naming == nil {
		return ligaturize.DefaultNaming
	}
	return ligaturize.Naming{
		Family: c.Naming.Family,
		Suffix: c.Naming.Suffix,
	}
}
