// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package serdser contains the serialization and deserialization
// helpers which are shared by all resource packages. Requests are
// bound and validated by Bind, and errors of the use cases layer are
// reported by SerErr, so all resources report errors uniformly as
//
//	{"detail": "message"}
//
// or, for validation errors, as
//
//	{"field": ["message", ...], ...}
package serdser

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/momeni/car-api/pkg/core/cerr"
	"github.com/momeni/car-api/pkg/core/log"
)

// Bind binds the c request into req using the b binding and validates
// it. When it fails, a 422 response is written and false is returned.
func Bind(c *gin.Context, req any, b binding.Binding) bool {
	return report(c, c.ShouldBindWith(req, b))
}

// BindUri binds the path parameters of c into req, like Bind.
func BindUri(c *gin.Context, req any) bool {
	return report(c, c.ShouldBindUri(req))
}

func report(c *gin.Context, err error) bool {
	switch err := err.(type) {
	case nil:
		return true
	case *validator.InvalidValidationError:
		log.Error(c, "invalid request struct", log.Err(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"detail": "Internal server error",
		})
	case validator.ValidationErrors:
		var nameToErrs map[string][]string
		for _, ferr := range err {
			AddErr(&nameToErrs, ferr.Field(), message(ferr))
		}
		c.JSON(http.StatusUnprocessableEntity, nameToErrs)
	default:
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"detail": err.Error(),
		})
	}
	return false
}

func message(ferr validator.FieldError) string {
	switch ferr.Tag() {
	case "required":
		return "field required"
	case "min":
		return "must be at least " + ferr.Param()
	case "max":
		return "must be at most " + ferr.Param()
	case "fuel":
		return "must be one of gasoline, ethanol, flex, diesel, electric, hybrid"
	case "transmission":
		return "must be one of manual, automatic, semi_automatic, cvt"
	case "price":
		return "must be a decimal number with at most two fraction digits"
	default:
		return ferr.Error()
	}
}

// AddErr appends msgs to the name entry of errs, allocating errs if
// it is nil.
func AddErr(errs *map[string][]string, name string, msgs ...string) {
	if (*errs) == nil {
		*errs = make(map[string][]string)
	}
	if elist, ok := (*errs)[name]; !ok {
		(*errs)[name] = msgs
	} else {
		(*errs)[name] = append(elist, msgs...)
	}
}

// Assert adds msgs for name into errs unless ok holds.
func Assert(errs *map[string][]string, ok bool, name string, msgs ...string) bool {
	if ok {
		return true
	}
	AddErr(errs, name, msgs...)
	return false
}

// SerErr writes err as the response. The *cerr.Error errors carry
// their status codes and messages, cerr.FieldsError errors are written
// as a field to messages map, and other errors are logged and hidden
// behind a generic 500 response.
func SerErr(c *gin.Context, err error) {
	var fe cerr.FieldsError
	if errors.As(err, &fe) {
		c.JSON(http.StatusUnprocessableEntity, map[string][]string(fe))
		return
	}
	var ce *cerr.Error
	if errors.As(err, &ce) {
		if ce.HTTPStatusCode == http.StatusUnauthorized {
			c.Header("WWW-Authenticate", "Bearer")
		}
		c.JSON(ce.HTTPStatusCode, gin.H{
			"detail": ce.Err.Error(),
		})
		return
	}
	log.Error(c, "request failed", log.Err(err))
	c.JSON(http.StatusInternalServerError, gin.H{
		"detail": "Internal server error",
	})
}
