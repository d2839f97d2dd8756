// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package cerr

import (
	"sort"
	"strings"

	"github.com/momeni/car-api/pkg/core/model"
)

// FieldsError maps the invalid input fields to their error messages.
type FieldsError map[string][]string

// Add appends msg to the field messages.
func (e FieldsError) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

func (e FieldsError) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	var sb strings.Builder
	for i, f := range fields {
		if i > 0 {
			sb.WriteString("; ")
		}
		sb.WriteString(f)
		sb.WriteString(": ")
		sb.WriteString(strings.Join(e[f], ", "))
	}
	return sb.String()
}

// Invalid returns nil if vs is empty. Otherwise, it collects vs in
// a FieldsError and returns it as a Validation error.
func Invalid(vs ...model.Violation) error {
	if len(vs) == 0 {
		return nil
	}
	fe := make(FieldsError, len(vs))
	for _, v := range vs {
		fe.Add(v.Field, v.Message)
	}
	return Validation(fe)
}
