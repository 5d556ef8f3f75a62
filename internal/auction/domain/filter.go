package domain

import (
	"net/url"
	"strconv"
)

// Filter defaults. The price bounds match the slider range of the listing UI.
const (
	DefaultMinPrice = 0
	DefaultMaxPrice = 100000

	SortOrderAsc  = "asc"
	SortOrderDesc = "desc"
)

// StatusFilter holds the active/ended checkboxes of the filter panel
type StatusFilter struct {
	Active bool `json:"active"`
	Ended  bool `json:"ended"`
}

// FilterState is the filter panel's selections as a single value object.
// Invariant: MinPrice <= MaxPrice at all times; changing one bound clamps the
// other. No client-side filtering happens, every criterion is forwarded as a
// query parameter and the displayed list is exactly what the server returns.
type FilterState struct {
	CategoryID string       `json:"categoryId"`
	MinPrice   float64      `json:"minPrice"`
	MaxPrice   float64      `json:"maxPrice"`
	Status     StatusFilter `json:"status"`
	SortBy     string       `json:"sortBy"`
	SortOrder  string       `json:"sortOrder"`
	Title      string       `json:"title"`
}

// NewFilterState returns the documented defaults: all categories, full price
// range, no status flags, server default ordering ascending, no title search.
func NewFilterState() FilterState {
	return FilterState{
		CategoryID: "",
		MinPrice:   DefaultMinPrice,
		MaxPrice:   DefaultMaxPrice,
		Status:     StatusFilter{},
		SortBy:     "",
		SortOrder:  SortOrderAsc,
		Title:      "",
	}
}

// SetMinPrice sets the lower bound, raising the upper bound when it would
// otherwise fall below the new minimum.
func (f *FilterState) SetMinPrice(v float64) {
	f.MinPrice = v
	if f.MaxPrice < v {
		f.MaxPrice = v
	}
}

// SetMaxPrice sets the upper bound, lowering the lower bound when it would
// otherwise exceed the new maximum.
func (f *FilterState) SetMaxPrice(v float64) {
	f.MaxPrice = v
	if f.MinPrice > v {
		f.MinPrice = v
	}
}

// SetPriceRange applies both bounds from a range control. Inverted input is
// clamped through the single-bound setters so min <= max always holds.
func (f *FilterState) SetPriceRange(min, max float64) {
	f.SetMinPrice(min)
	f.SetMaxPrice(max)
}

// Reset restores every field to its default except the title search box
func (f *FilterState) Reset() {
	title := f.Title
	*f = NewFilterState()
	f.Title = title
}

// QueryString encodes the selections as listing query parameters. Empty
// values are omitted and the status flags are only emitted when set, matching
// what the backend expects.
func (f FilterState) QueryString() string {
	q := url.Values{}
	if f.CategoryID != "" {
		q.Set("categoryId", f.CategoryID)
	}
	q.Set("minPrice", strconv.FormatFloat(f.MinPrice, 'f', -1, 64))
	q.Set("maxPrice", strconv.FormatFloat(f.MaxPrice, 'f', -1, 64))
	if f.Status.Active {
		q.Set("active", "true")
	}
	if f.Status.Ended {
		q.Set("ended", "true")
	}
	if f.SortBy != "" {
		q.Set("sortBy", f.SortBy)
	}
	if f.SortOrder != "" {
		q.Set("sortOrder", f.SortOrder)
	}
	if f.Title != "" {
		q.Set("title", f.Title)
	}
	return q.Encode()
}
