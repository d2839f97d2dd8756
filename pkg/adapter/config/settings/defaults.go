// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package settings

import (
	"cmp"
	"fmt"
)

// Default makes the (*p) optional setting point to a copy of v when
// it is missing. A present setting is kept as is.
func Default[T any](p **T, v T) {
	if *p == nil {
		*p = &v
	}
}

// RangeError reports a setting which falls out of its configured
// [Min, Max] range, or a range whose Min is greater than its Max.
type RangeError[T cmp.Ordered] struct {
	Name     string
	Value    T
	Min, Max *T
}

func (e *RangeError[T]) Error() string {
	switch {
	case e.Min != nil && e.Max != nil && *e.Min > *e.Max:
		return fmt.Sprintf(
			"%s range is empty: min=%v > max=%v", e.Name, *e.Min, *e.Max,
		)
	case e.Min != nil && e.Value < *e.Min:
		return fmt.Sprintf("%s=%v is less than %v", e.Name, e.Value, *e.Min)
	default:
		return fmt.Sprintf("%s=%v is greater than %v", e.Name, e.Value, *e.Max)
	}
}

// VerifyRange checks that value lies in the inclusive [minb, maxb]
// range. A nil boundary is not checked. The range is checked even if
// value is nil, so a misconfigured boundary pair is always reported.
func VerifyRange[T cmp.Ordered](name string, value, minb, maxb *T) error {
	e := &RangeError[T]{Name: name, Min: minb, Max: maxb}
	if minb != nil && maxb != nil && *minb > *maxb {
		return e
	}
	if value == nil {
		return nil
	}
	e.Value = *value
	if (minb != nil && *value < *minb) || (maxb != nil && *value > *maxb) {
		return e
	}
	return nil
}
