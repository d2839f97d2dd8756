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

type userRow model.User

// Users implements the repo.Users interface.
type Users struct{}

func (Users) Conn(c repo.Conn) repo.UsersConnQueryer {
	return usersQueryer{db: dbOf(c)}
}

func (Users) Tx(tx repo.Tx) repo.UsersTxQueryer {
	return usersQueryer{db: dbOf(tx)}
}

type usersQueryer struct {
	db *DB
}

func (q usersQueryer) Get(ctx context.Context, id int64) (u *model.User, err error) {
	err = q.db.read(func(s *state) error {
		r, ok := s.users[id]
		if !ok {
			return repo.ErrNotFound
		}
		mu := model.User(r)
		u = &mu
		return nil
	})
	return u, err
}

func (q usersQueryer) GetByEmail(
	ctx context.Context, email string,
) (u *model.User, err error) {
	err = q.db.read(func(s *state) error {
		for _, r := range s.users {
			if r.Email == email {
				mu := model.User(r)
				u = &mu
				return nil
			}
		}
		return repo.ErrNotFound
	})
	return u, err
}

func (q usersQueryer) List(
	ctx context.Context, f model.UserFilter,
) (users []model.User, err error) {
	err = q.db.read(func(s *state) error {
		search := strings.ToLower(f.Search)
		for _, r := range s.users {
			if search != "" &&
				!strings.Contains(strings.ToLower(r.Username), search) &&
				!strings.Contains(strings.ToLower(r.Email), search) {
				continue
			}
			users = append(users, model.User(r))
		}
		return nil
	})
	sort.Slice(users, func(i, j int) bool {
		return users[i].ID < users[j].ID
	})
	return page(users, f.Offset, f.Limit), err
}

func (q usersQueryer) Exists(ctx context.Context, id int64) (found bool, err error) {
	err = q.db.read(func(s *state) error {
		_, found = s.users[id]
		return nil
	})
	return found, err
}

func (q usersQueryer) UsernameExists(
	ctx context.Context, username string,
) (bool, error) {
	return q.any(func(r userRow) bool { return r.Username == username })
}

func (q usersQueryer) EmailExists(ctx context.Context, email string) (bool, error) {
	return q.any(func(r userRow) bool { return r.Email == email })
}

func (q usersQueryer) any(pred func(userRow) bool) (found bool, err error) {
	err = q.db.read(func(s *state) error {
		for _, r := range s.users {
			if pred(r) {
				found = true
				break
			}
		}
		return nil
	})
	return found, err
}

func (q usersQueryer) Create(
	ctx context.Context, u *model.User,
) (created *model.User, err error) {
	err = q.db.write(func(s *state, now time.Time) error {
		s.nextID++
		r := userRow(*u)
		r.ID = s.nextID
		r.CreatedAt, r.UpdatedAt = now, now
		s.users[r.ID] = r
		mu := model.User(r)
		created = &mu
		return nil
	})
	return created, err
}

func (q usersQueryer) Update(
	ctx context.Context, u *model.User,
) (updated *model.User, err error) {
	err = q.db.write(func(s *state, now time.Time) error {
		old, ok := s.users[u.ID]
		if !ok {
			return repo.ErrNotFound
		}
		r := userRow(*u)
		r.CreatedAt, r.UpdatedAt = old.CreatedAt, now
		s.users[r.ID] = r
		mu := model.User(r)
		updated = &mu
		return nil
	})
	return updated, err
}

func (q usersQueryer) Delete(ctx context.Context, id int64) error {
	return q.db.write(func(s *state, _ time.Time) error {
		if _, ok := s.users[id]; !ok {
			return repo.ErrNotFound
		}
		delete(s.users, id)
		return nil
	})
}
