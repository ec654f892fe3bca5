// Copyright (c) 2026 JournalHub. All rights reserved.
// Author: dev@journalhub.pub

// Package pagination provides shared types and helpers for API list endpoints.
//
// # Overview
//
// It standardizes how page-based navigation is requested via query parameters
// and how the resulting metadata is delivered in the API response envelope.
// Out-of-range pages are clamped rather than rejected, so a stale link to
// page 99 of a shrinking result set still lands on the last real page.
package pagination

import (
	"net/http"
	"strconv"
)

const (
	// DefaultLimit is the number of items per page if not specified.
	DefaultLimit = 20
	// MaxLimit is the upper bound for items per page to prevent system abuse.
	MaxLimit = 100
	// DefaultPage is the starting page (1-indexed).
	DefaultPage = 1
)

// Params holds the parsed page and limit from a request's query string.
type Params struct {
	Page  int
	Limit int
}

// Offset returns the SQL OFFSET value derived from [Page] and [Limit].
func (p Params) Offset() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// ClampToTotal returns a copy of p with the page clamped into the valid
// range for the given total item count.
//
// # Clamping Rules
//
//   - Page 0 or negative becomes page 1.
//   - A page beyond the last page becomes the last page.
//   - A zero total keeps page 1 so empty listings stay addressable.
func (p Params) ClampToTotal(total int) Params {
	clamped := p
	if clamped.Page < 1 {
		clamped.Page = DefaultPage
	}

	lastPage := DefaultPage
	if clamped.Limit > 0 && total > 0 {
		lastPage = (total + clamped.Limit - 1) / clamped.Limit
	}

	if clamped.Page > lastPage {
		clamped.Page = lastPage
	}

	return clamped
}

// Window returns the half-open index range [start, end) that p selects out
// of a collection of total items, after clamping the page into range.
func (p Params) Window(total int) (start, end int) {
	clamped := p.ClampToTotal(total)

	start = clamped.Offset()
	if start > total {
		start = total
	}

	end = start + clamped.Limit
	if end > total {
		end = total
	}

	return start, end
}

// Meta is the pagination metadata included in API list responses.
type Meta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewMeta constructs pagination metadata for a response.
//
// It automatically calculates the TotalPages based on the total count and limit.
func NewMeta(page, limit, total int) Meta {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}

	return Meta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

// FromRequest parses "page" and "limit" query parameters from an HTTP request.
//
// # Clamping
//
// Invalid, negative, or excessive values are automatically clamped to
// [DefaultPage], [DefaultLimit], or [MaxLimit].
func FromRequest(r *http.Request) Params {
	page := parseIntParam(r, "page", DefaultPage)
	limit := parseIntParam(r, "limit", DefaultLimit)

	if page < 1 {
		page = DefaultPage
	}

	if limit < 1 || limit > MaxLimit {
		limit = DefaultLimit
	}

	return Params{Page: page, Limit: limit}
}

// parseIntParam parses a single integer query parameter with a fallback default.
func parseIntParam(r *http.Request, key string, defaultVal int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return defaultVal
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return defaultVal
	}

	return n
}
