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

type brandRow model.Brand

// Brands implements the repo.Brands interface.
type Brands struct{}

func (Brands) Conn(c repo.Conn) repo.BrandsConnQueryer {
	return brandsQueryer{db: dbOf(c)}
}

func (Brands) Tx(tx repo.Tx) repo.BrandsTxQueryer {
	return brandsQueryer{db: dbOf(tx)}
}

type brandsQueryer struct {
	db *DB
}

func (q brandsQueryer) Get(ctx context.Context, id int64) (b *model.Brand, err error) {
	err = q.db.read(func(s *state) error {
		r, ok := s.brands[id]
		if !ok {
			return repo.ErrNotFound
		}
		mb := model.Brand(r)
		b = &mb
		return nil
	})
	return b, err
}

func (q brandsQueryer) List(
	ctx context.Context, f model.BrandFilter,
) (brands []model.Brand, err error) {
	err = q.db.read(func(s *state) error {
		search := strings.ToLower(f.Search)
		for _, r := range s.brands {
			if f.IsActive != nil && r.IsActive != *f.IsActive {
				continue
			}
			if !strings.Contains(strings.ToLower(r.Name), search) {
				continue
			}
			brands = append(brands, model.Brand(r))
		}
		return nil
	})
	sort.Slice(brands, func(i, j int) bool {
		return brands[i].ID < brands[j].ID
	})
	return page(brands, f.Offset, f.Limit), err
}

func (q brandsQueryer) Exists(ctx context.Context, id int64) (found bool, err error) {
	err = q.db.read(func(s *state) error {
		_, found = s.brands[id]
		return nil
	})
	return found, err
}

func (q brandsQueryer) NameExists(
	ctx context.Context, name string,
) (found bool, err error) {
	err = q.db.read(func(s *state) error {
		for _, r := range s.brands {
			if r.Name == name {
				found = true
				break
			}
		}
		return nil
	})
	return found, err
}

func (q brandsQueryer) Create(
	ctx context.Context, b *model.Brand,
) (created *model.Brand, err error) {
	err = q.db.write(func(s *state, now time.Time) error {
		s.nextID++
		r := brandRow(*b)
		r.ID = s.nextID
		r.CreatedAt, r.UpdatedAt = now, now
		s.brands[r.ID] = r
		mb := model.Brand(r)
		created = &mb
		return nil
	})
	return created, err
}

func (q brandsQueryer) Update(
	ctx context.Context, b *model.Brand,
) (updated *model.Brand, err error) {
	err = q.db.write(func(s *state, now time.Time) error {
		old, ok := s.brands[b.ID]
		if !ok {
			return repo.ErrNotFound
		}
		r := brandRow(*b)
		r.CreatedAt, r.UpdatedAt = old.CreatedAt, now
		s.brands[r.ID] = r
		mb := model.Brand(r)
		updated = &mb
		return nil
	})
	return updated, err
}

func (q brandsQueryer) Delete(ctx context.Context, id int64) error {
	return q.db.write(func(s *state, _ time.Time) error {
		if _, ok := s.brands[id]; !ok {
			return repo.ErrNotFound
		}
		delete(s.brands, id)
		return nil
	})
}
