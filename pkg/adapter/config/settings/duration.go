// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package settings provides the helpers which are shared by the
// configuration sections, such as the Duration type, the Default
// initializer, and the VerifyRange checker.
package settings

import (
	"log/slog"
	"strings"
	"time"
)

// Duration is a time.Duration which is written in the YAML files in
// the time.ParseDuration format, like 30m or 1h30m.
type Duration time.Duration

// Dur returns a pointer to d as a Duration, so it may be used as the
// default value of an optional duration setting.
func Dur(d time.Duration) *Duration {
	dd := Duration(d)
	return &dd
}

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// UnmarshalText parses data with time.ParseDuration. The d receiver is
// only updated if data is valid.
func (d *Duration) UnmarshalText(data []byte) error {
	dd, err := time.ParseDuration(string(data))
	if err != nil {
		return err
	}
	*d = Duration(dd)
	return nil
}

// String formats d like time.Duration, but drops the zero trailing
// units, e.g., 2h is used instead of 2h0m0s.
func (d Duration) String() string {
	s := time.Duration(d).String()
	if t, ok := strings.CutSuffix(s, "0s"); ok && strings.HasSuffix(t, "m") {
		s = t
	}
	if t, ok := strings.CutSuffix(s, "0m"); ok && strings.HasSuffix(t, "h") {
		s = t
	}
	return s
}

// MarshalText implements the encoding.TextMarshaler interface.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// LogValue implements the slog.LogValuer interface.
func (d Duration) LogValue() slog.Value {
	return slog.DurationValue(time.Duration(d))
}
