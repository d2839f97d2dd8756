// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"fmt"
	"strconv"
	"strings"
)

// SemVer represents a released semantic version as its major, minor,
// and patch components. It is used for versioning of the configuration
// file format.
type SemVer [3]uint

// UnmarshalText deserializes text as one to three dot-separated
// numbers (missing components are zero). In case of errors, sv will
// be left unchanged.
func (sv *SemVer) UnmarshalText(text []byte) error {
	p := strings.Split(string(text), ".")
	if len(p) > 3 {
		return fmt.Errorf("the %q has too many components", text)
	}
	var v SemVer
	for i, s := range p {
		n, err := strconv.ParseUint(s, 10, 32)
		if err != nil {
			return fmt.Errorf("the %q component is not numeric", s)
		}
		v[i] = uint(n)
	}
	*sv = v
	return nil
}

// MarshalText implements encoding.TextMarshaler interface.
func (sv SemVer) MarshalText() ([]byte, error) {
	return []byte(sv.String()), nil
}

// String returns sv as major.minor.patch string.
func (sv SemVer) String() string {
	return fmt.Sprintf("%d.%d.%d", sv[0], sv[1], sv[2])
}

// Supports reports if a resource with the v version can be handled
// by an implementation which knows about the sv version. Major versions
// must match and v may not be newer than sv in its minor version.
func (sv SemVer) Supports(v SemVer) bool {
	return sv[0] == v[0] && v[1] <= sv[1]
}
