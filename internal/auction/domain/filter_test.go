package domain

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewFilterState_Defaults(t *testing.T) {
	f := NewFilterState()

	require.Equal(t, FilterState{
		CategoryID: "",
		MinPrice:   0,
		MaxPrice:   100000,
		Status:     StatusFilter{Active: false, Ended: false},
		SortBy:     "",
		SortOrder:  SortOrderAsc,
		Title:      "",
	}, f)
}

func TestFilterState_PriceBoundsClamp(t *testing.T) {
	tests := []struct {
		name        string
		apply       func(*FilterState)
		expectedMin float64
		expectedMax float64
	}{
		{
			name:        "raising_min_drags_max_up",
			apply:       func(f *FilterState) { f.MaxPrice = 500; f.SetMinPrice(800) },
			expectedMin: 800,
			expectedMax: 800,
		},
		{
			name:        "lowering_max_drags_min_down",
			apply:       func(f *FilterState) { f.MinPrice = 700; f.SetMaxPrice(300) },
			expectedMin: 300,
			expectedMax: 300,
		},
		{
			name:        "inverted_slider_input_is_clamped",
			apply:       func(f *FilterState) { f.SetPriceRange(20000, 5000) },
			expectedMin: 5000,
			expectedMax: 5000,
		},
		{
			name:        "ordinary_range_is_kept",
			apply:       func(f *FilterState) { f.SetPriceRange(100, 900) },
			expectedMin: 100,
			expectedMax: 900,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := NewFilterState()
			tc.apply(&f)
			require.Equal(t, tc.expectedMin, f.MinPrice)
			require.Equal(t, tc.expectedMax, f.MaxPrice)
			require.LessOrEqual(t, f.MinPrice, f.MaxPrice)
		})
	}
}

func TestFilterState_ResetKeepsTitle(t *testing.T) {
	f := NewFilterState()
	f.CategoryID = "cat-7"
	f.SetPriceRange(100, 900)
	f.Status = StatusFilter{Active: true, Ended: true}
	f.SortBy = "price"
	f.SortOrder = SortOrderDesc
	f.Title = "clock"

	f.Reset()

	expected := NewFilterState()
	expected.Title = "clock"
	require.Equal(t, expected, f)
}

func TestFilterState_QueryString(t *testing.T) {
	f := NewFilterState()
	f.CategoryID = "cat-7"
	f.SetPriceRange(100, 900)
	f.Status.Active = true
	f.SortBy = "price"
	f.SortOrder = SortOrderDesc
	f.Title = "clock"

	q, err := url.ParseQuery(f.QueryString())
	require.NoError(t, err)

	require.Equal(t, "cat-7", q.Get("categoryId"))
	require.Equal(t, "100", q.Get("minPrice"))
	require.Equal(t, "900", q.Get("maxPrice"))
	require.Equal(t, "true", q.Get("active"))
	require.Equal(t, "price", q.Get("sortBy"))
	require.Equal(t, "desc", q.Get("sortOrder"))
	require.Equal(t, "clock", q.Get("title"))
	// unset flags and fields are omitted entirely
	require.False(t, q.Has("ended"))
}

func TestFilterState_QueryStringOmitsEmptyFields(t *testing.T) {
	q, err := url.ParseQuery(NewFilterState().QueryString())
	require.NoError(t, err)

	require.False(t, q.Has("categoryId"))
	require.False(t, q.Has("title"))
	require.False(t, q.Has("sortBy"))
	require.False(t, q.Has("active"))
	require.False(t, q.Has("ended"))
	// the price bounds are always forwarded, zero included
	require.Equal(t, "0", q.Get("minPrice"))
	require.Equal(t, "100000", q.Get("maxPrice"))
	require.Equal(t, "asc", q.Get("sortOrder"))
}
