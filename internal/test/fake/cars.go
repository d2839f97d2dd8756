// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package fake

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/momeni/car-api/pkg/core/model"
	"github.com/momeni/car-api/pkg/core/repo"
)

// carRow keeps a car without its loaded brand and owner.
type carRow model.Car

// Cars implements the repo.Cars interface.
type Cars struct{}

func (Cars) Conn(c repo.Conn) repo.CarsConnQueryer {
	return carsQueryer{db: dbOf(c)}
}

func (Cars) Tx(tx repo.Tx) repo.CarsTxQueryer {
	return carsQueryer{db: dbOf(tx)}
}

type carsQueryer struct {
	db *DB
}

// load fills the Brand and Owner fields of r like a join would do.
func load(s *state, r carRow) model.Car {
	c := model.Car(r)
	if b, ok := s.brands[c.BrandID]; ok {
		mb := model.Brand(b)
		c.Brand = &mb
	}
	if u, ok := s.users[c.OwnerID]; ok {
		mu := model.User(u)
		c.Owner = &mu
	}
	return c
}

func (q carsQueryer) Get(ctx context.Context, id int64) (c *model.Car, err error) {
	err = q.db.read(func(s *state) error {
		r, ok := s.cars[id]
		if !ok {
			return repo.ErrNotFound
		}
		mc := load(s, r)
		c = &mc
		return nil
	})
	return c, err
}

func (q carsQueryer) List(
	ctx context.Context, f model.CarFilter,
) (cars []model.Car, err error) {
	err = q.db.read(func(s *state) error {
		for _, r := range s.cars {
			if matches(f, r) {
				cars = append(cars, load(s, r))
			}
		}
		return nil
	})
	sort.Slice(cars, func(i, j int) bool {
		return cars[i].ID < cars[j].ID
	})
	return page(cars, f.Offset, f.Limit), err
}

func matches(f model.CarFilter, r carRow) bool {
	switch {
	case f.BrandID != nil && r.BrandID != *f.BrandID,
		f.FuelType != nil && r.FuelType != *f.FuelType,
		f.Transmission != nil && r.Transmission != *f.Transmission,
		f.IsAvailable != nil && r.IsAvailable != *f.IsAvailable,
		f.MinPrice != nil && r.Price < *f.MinPrice,
		f.MaxPrice != nil && r.Price > *f.MaxPrice:
		return false
	}
	if f.Search == "" {
		return true
	}
	search := strings.ToLower(f.Search)
	for _, v := range []string{r.Model, r.Color, r.Plate} {
		if strings.Contains(strings.ToLower(v), search) {
			return true
		}
	}
	return false
}

func (q carsQueryer) PlateExists(
	ctx context.Context, plate string,
) (bool, error) {
	return q.any(func(r carRow) bool { return r.Plate == plate })
}

func (q carsQueryer) ExistsByBrand(
	ctx context.Context, brandID int64,
) (bool, error) {
	return q.any(func(r carRow) bool { return r.BrandID == brandID })
}

func (q carsQueryer) ExistsByOwner(
	ctx context.Context, ownerID int64,
) (bool, error) {
	return q.any(func(r carRow) bool { return r.OwnerID == ownerID })
}

func (q carsQueryer) any(pred func(carRow) bool) (found bool, err error) {
	err = q.db.read(func(s *state) error {
		for _, r := range s.cars {
			if pred(r) {
				found = true
				break
			}
		}
		return nil
	})
	return found, err
}

func (q carsQueryer) Create(
	ctx context.Context, c *model.Car,
) (created *model.Car, err error) {
	err = q.db.write(func(s *state, now time.Time) error {
		s.nextID++
		r := carRow(*c)
		r.ID = s.nextID
		r.Brand, r.Owner = nil, nil
		r.CreatedAt, r.UpdatedAt = now, now
		s.cars[r.ID] = r
		mc := load(s, r)
		created = &mc
		return nil
	})
	return created, err
}

func (q carsQueryer) Update(
	ctx context.Context, c *model.Car,
) (updated *model.Car, err error) {
	err = q.db.write(func(s *state, now time.Time) error {
		old, ok := s.cars[c.ID]
		if !ok {
			return repo.ErrNotFound
		}
		r := carRow(*c)
		r.Brand, r.Owner = nil, nil
		r.CreatedAt, r.UpdatedAt = old.CreatedAt, now
		s.cars[r.ID] = r
		mc := load(s, r)
		updated = &mc
		return nil
	})
	return updated, err
}

func (q carsQueryer) Delete(ctx context.Context, id int64) error {
	return q.db.write(func(s *state, _ time.Time) error {
		if _, ok := s.cars[id]; !ok {
			return repo.ErrNotFound
		}
		delete(s.cars, id)
		return nil
	})
}
