// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package serdser

import "github.com/momeni/car-api/pkg/core/model"

// IDReq binds the :id path parameter.
type IDReq struct {
	ID int64 `uri:"id" binding:"required,min=1"`
}

// PageReq binds the common listing query parameters. A missing limit
// is replaced by the use case default, while an explicit zero limit
// is rejected.
type PageReq struct {
	Offset int    `form:"offset"`
	Limit  *int   `form:"limit" binding:"omitempty,min=1"`
	Search string `form:"search"`
}

// Page converts pr to a model.Page.
func (pr PageReq) Page() model.Page {
	p := model.Page{Offset: pr.Offset, Search: pr.Search}
	if pr.Limit != nil {
		p.Limit = *pr.Limit
	}
	return p
}

// PageResp is embedded by the listing responses.
type PageResp struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// NewPageResp reports the effective page p.
func NewPageResp(p model.Page) PageResp {
	return PageResp{Offset: p.Offset, Limit: p.Limit}
}
