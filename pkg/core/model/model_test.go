// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model_test

import (
	"testing"

	"github.com/momeni/car-api/pkg/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePrice(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want model.Price
		ok   bool
	}{
		{"120", 12000, true},
		{"120.5", 12050, true},
		{"120.05", 12005, true},
		{"0.99", 99, true},
		{"-3.10", -310, true},
		{"1.234", 0, false},
		{"", 0, false},
		{".5", 0, false},
		{"12a", 0, false},
		{"1e3", 0, false},
	} {
		p, err := model.ParsePrice(tc.in)
		if !tc.ok {
			assert.ErrorIs(t, err, model.ErrMalformedPrice, tc.in)
			continue
		}
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, p, tc.in)
	}
	assert.Equal(t, "50000.00", model.Price(5000000).String())
	assert.Equal(t, "-0.05", model.Price(-5).String())
}

func TestFuelTypeRoundTrip(t *testing.T) {
	for _, s := range []string{
		"gasoline", "ethanol", "flex", "diesel", "electric", "hybrid",
	} {
		f, err := model.ParseFuelType(s)
		require.NoError(t, err)
		assert.NoError(t, f.Validate())
		assert.Equal(t, s, f.String())
	}
	_, err := model.ParseFuelType("coal")
	assert.ErrorIs(t, err, model.ErrUnknownFuelType)
	assert.Error(t, model.FuelTypeInvalid.Validate())
	assert.Panics(t, func() { _ = model.FuelType(42).String() })
}

func TestTransmissionRoundTrip(t *testing.T) {
	for _, s := range []string{"manual", "automatic", "semi_automatic", "cvt"} {
		tr, err := model.ParseTransmission(s)
		require.NoError(t, err)
		assert.Equal(t, s, tr.String())
	}
	_, err := model.ParseTransmission("dct")
	assert.ErrorIs(t, err, model.ErrUnknownTransmission)
}

func TestCarPatchApply(t *testing.T) {
	c := model.Car{Model: "Corolla", Plate: "ABC1234", Price: 100}
	plate := "XYZ9876"
	desc := "used"
	model.CarPatch{Plate: &plate, Description: &desc}.Apply(&c)
	assert.Equal(t, "Corolla", c.Model)
	assert.Equal(t, "XYZ9876", c.Plate)
	require.NotNil(t, c.Description)
	assert.Equal(t, "used", *c.Description)
	assert.Equal(t, "ABC1234", model.NormalizePlate(" abc1234 "))
}

func TestSemVer(t *testing.T) {
	var v model.SemVer
	require.NoError(t, v.UnmarshalText([]byte("1.2")))
	assert.Equal(t, model.SemVer{1, 2, 0}, v)
	assert.Error(t, v.UnmarshalText([]byte("1.2.3.4")))
	assert.Error(t, v.UnmarshalText([]byte("1.x")))
	assert.True(t, model.SemVer{1, 2, 0}.Supports(v))
	assert.False(t, model.SemVer{1, 1, 0}.Supports(v))
	assert.False(t, model.SemVer{2, 2, 0}.Supports(v))
}

func TestCarPriceBounds(t *testing.T) {
	c := model.Car{
		Model:        "Corolla",
		FactoryYear:  2020,
		ModelYear:    2021,
		Color:        "Silver",
		Plate:        "ABC1234",
		FuelType:     model.FuelTypeFlex,
		Transmission: model.TransmissionManual,
		BrandID:      1,
		OwnerID:      1,
	}
	c.Price = model.MaxPrice
	assert.Empty(t, c.Validate())
	assert.Equal(t, "9999999999.99", model.MaxPrice.String())

	p, err := model.ParsePrice("10000000000.00")
	require.NoError(t, err, "parsing does not bound the price")
	c.Price = p
	vs := c.Validate()
	require.Len(t, vs, 1)
	assert.Equal(t, "price", vs[0].Field)
}
