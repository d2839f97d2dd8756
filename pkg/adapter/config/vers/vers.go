// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package vers contains the common versions parsing which is required
// by all config versions. The configuration file format version must
// be known before trying to parse the actual settings, so the proper
// cfgN package can be chosen for them. The database schema is versioned
// by its migrations table instead, so it is not tracked here.
package vers

import (
	"fmt"

	"github.com/momeni/car-api/pkg/core/cerr"
	"github.com/momeni/car-api/pkg/core/model"
	"gopkg.in/yaml.v3"
)

// Config contains the versions of the configuration settings. It may
// be embedded with inline format in the released config struct versions
// in order to indicate their format.
type Config struct {
	Versions Versions `yaml:"versions"`
}

// Versions contains the configuration file version.
type Versions struct {
	Config model.SemVer `yaml:"config"`
}

// Load deserializes the data byte slice into a new instance of Config
// struct. Of course, data may contain extra fields which will be
// ignored. The deserialized version fields (in the returned Config)
// can be used to detect the format of other settings in the data and
// complete deserialization of the remaining fields.
func Load(data []byte) (*Config, error) {
	vc := &Config{}
	if err := yaml.Unmarshal(data, vc); err != nil {
		return nil, fmt.Errorf("unmarshalling versions: %w", err)
	}
	return vc, nil
}

// Validate returns a *cerr.MismatchingSemVerError if the configuration
// settings version which is stored in the `vc` Config instance is not
// supported by the `supported` version. That is, stored major version
// must match and the stored minor version must not be newer.
func (vc *Config) Validate(supported model.SemVer) error {
	v := vc.Versions.Config
	if !supported.Supports(v) {
		return &cerr.MismatchingSemVerError{supported, v}
	}
	return nil
}
