// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package serdser

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/momeni/car-api/pkg/core/model"
)

var registerOnce sync.Once

// RegisterValidators configures the gin default validator, so field
// errors are named after the json/form/uri tags of request fields and
// the fuel, transmission, and price tags may be used for validation
// of string fields. It is safe to be called multiple times.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			panic(fmt.Sprintf(
				"unexpected validator engine: %T",
				binding.Validator.Engine(),
			))
		}
		v.RegisterTagNameFunc(tagName)
		for tag, fn := range map[string]validator.Func{
			"fuel":         isFuelType,
			"transmission": isTransmission,
			"price":        isPrice,
		} {
			if err := v.RegisterValidation(tag, fn); err != nil {
				panic(fmt.Sprintf("registering %q validator: %v", tag, err))
			}
		}
	})
}

func tagName(f reflect.StructField) string {
	for _, key := range []string{"json", "form", "uri"} {
		name, _, _ := strings.Cut(f.Tag.Get(key), ",")
		switch name {
		case "-":
			return ""
		case "":
			continue
		default:
			return name
		}
	}
	return f.Name
}

func isFuelType(fl validator.FieldLevel) bool {
	_, err := model.ParseFuelType(fl.Field().String())
	return err == nil
}

func isTransmission(fl validator.FieldLevel) bool {
	_, err := model.ParseTransmission(fl.Field().String())
	return err == nil
}

func isPrice(fl validator.FieldLevel) bool {
	p, err := model.ParsePrice(fl.Field().String())
	return err == nil && p <= model.MaxPrice
}
