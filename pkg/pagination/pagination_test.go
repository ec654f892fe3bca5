// Copyright (c) 2026 JournalHub. All rights reserved.
// Author: dev@journalhub.pub

package pagination_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/peerreview/journalhub/pkg/pagination"
)

/*
TestFromRequest verifies query-string parsing and limit clamping.
*/
func TestFromRequest(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantPage  int
		wantLimit int
	}{
		{"defaults", "", 1, 20},
		{"explicit", "page=3&limit=50", 3, 50},
		{"zero_page", "page=0", 1, 20},
		{"negative_page", "page=-5", 1, 20},
		{"limit_over_max", "limit=5000", 1, 20},
		{"garbage", "page=abc&limit=xyz", 1, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/papers?"+tt.query, nil)
			params := pagination.FromRequest(r)

			assert.Equal(t, tt.wantPage, params.Page)
			assert.Equal(t, tt.wantLimit, params.Limit)
		})
	}
}

/*
TestWindow_ClampsToLastPage covers the boundary fixture: 45 items at page
size 20 gives 3 pages; requesting page 99 must yield page 3's window.
*/
func TestWindow_ClampsToLastPage(t *testing.T) {
	params := pagination.Params{Page: 99, Limit: 20}

	start, end := params.Window(45)

	assert.Equal(t, 40, start)
	assert.Equal(t, 45, end)
}

/*
TestWindow_Boundaries exercises page-0, negative, and empty-set behavior.
*/
func TestWindow_Boundaries(t *testing.T) {
	tests := []struct {
		name      string
		page      int
		limit     int
		total     int
		wantStart int
		wantEnd   int
	}{
		{"page_zero_clamps_to_first", 0, 20, 45, 0, 20},
		{"negative_clamps_to_first", -3, 20, 45, 0, 20},
		{"exact_last_page", 3, 20, 45, 40, 45},
		{"empty_total", 5, 20, 0, 0, 0},
		{"single_page", 1, 20, 7, 0, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := pagination.Params{Page: tt.page, Limit: tt.limit}.Window(tt.total)

			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}

/*
TestNewMeta verifies total-page math in response metadata.
*/
func TestNewMeta(t *testing.T) {
	meta := pagination.NewMeta(2, 20, 45)

	assert.Equal(t, 2, meta.Page)
	assert.Equal(t, 45, meta.Total)
	assert.Equal(t, 3, meta.TotalPages)
}
