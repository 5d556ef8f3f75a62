package application

import (
	"context"
	"fmt"
	"sync"

	"github.com/eduard-zxc/auctionfront/internal/auction/domain"
	"github.com/eduard-zxc/auctionfront/internal/shared/logger"
	"github.com/eduard-zxc/auctionfront/internal/shared/notify"
	"go.uber.org/zap"
)

var log = logger.GetLogger()

// ListingView owns the auction listing: the filter panel state and the page
// the server last returned for it. Any filter change re-emits the whole
// filter object to the listing query; no filtering or sorting happens client
// side. Fetches carry a generation tag so a response arriving after the view
// moved on is discarded instead of clobbering newer state.
type ListingView struct {
	api    domain.AuctionAPI
	tokens domain.TokenSource
	notes  *notify.Center

	mu       sync.Mutex
	filter   domain.FilterState
	auctions []domain.Auction
	total    int
	gen      uint64
	closed   bool
}

// NewListingView creates a listing view with default filters. Nothing is
// fetched until the first Refresh.
func NewListingView(api domain.AuctionAPI, tokens domain.TokenSource, notes *notify.Center) *ListingView {
	return &ListingView{
		api:    api,
		tokens: tokens,
		notes:  notes,
		filter: domain.NewFilterState(),
	}
}

// Filter returns the current panel selections
func (v *ListingView) Filter() domain.FilterState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.filter
}

// SetCategory selects a category ("" means all) and re-queries
func (v *ListingView) SetCategory(ctx context.Context, categoryID string) error {
	return v.update(ctx, func(f *domain.FilterState) { f.CategoryID = categoryID })
}

// SetPriceRange applies both slider bounds (clamped to min <= max) and
// re-queries
func (v *ListingView) SetPriceRange(ctx context.Context, min, max float64) error {
	return v.update(ctx, func(f *domain.FilterState) { f.SetPriceRange(min, max) })
}

// SetStatus toggles the active/ended flags and re-queries
func (v *ListingView) SetStatus(ctx context.Context, active, ended bool) error {
	return v.update(ctx, func(f *domain.FilterState) {
		f.Status = domain.StatusFilter{Active: active, Ended: ended}
	})
}

// SetSort selects the sort column and direction and re-queries
func (v *ListingView) SetSort(ctx context.Context, sortBy, sortOrder string) error {
	return v.update(ctx, func(f *domain.FilterState) {
		f.SortBy = sortBy
		f.SortOrder = sortOrder
	})
}

// SetTitle applies the title search and re-queries
func (v *ListingView) SetTitle(ctx context.Context, title string) error {
	return v.update(ctx, func(f *domain.FilterState) { f.Title = title })
}

// ResetFilters restores the documented defaults (title excepted) and
// re-queries
func (v *ListingView) ResetFilters(ctx context.Context) error {
	return v.update(ctx, func(f *domain.FilterState) { f.Reset() })
}

// SetFilter replaces the whole panel state at once and re-queries
func (v *ListingView) SetFilter(ctx context.Context, filter domain.FilterState) error {
	return v.update(ctx, func(f *domain.FilterState) {
		filter.SetPriceRange(filter.MinPrice, filter.MaxPrice)
		*f = filter
	})
}

// update mutates the filter and forwards the whole object to the query
func (v *ListingView) update(ctx context.Context, mutate func(*domain.FilterState)) error {
	v.mu.Lock()
	mutate(&v.filter)
	v.mu.Unlock()
	return v.Refresh(ctx)
}

// Refresh re-issues the listing query with the current filter. A newer
// refresh supersedes any in-flight one; the superseded response is dropped.
func (v *ListingView) Refresh(ctx context.Context) error {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return domain.ErrViewClosed
	}
	v.gen++
	gen := v.gen
	filter := v.filter
	v.mu.Unlock()

	page, err := v.api.ListAuctions(ctx, filter)
	if err != nil {
		// prior state stays untouched on failure
		v.notes.Notify(notify.LevelError, "Failed to load auctions")
		return fmt.Errorf("listing view: %w", err)
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed || v.gen != gen {
		log.Debug("discarding superseded listing response", zap.Uint64("gen", gen))
		return domain.ErrStaleResponse
	}
	v.auctions = page.Items
	v.total = page.Total
	return nil
}

// Auctions returns the items exactly as the server last returned them
func (v *ListingView) Auctions() []domain.Auction {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]domain.Auction(nil), v.auctions...)
}

// Total returns the server-reported result count
func (v *ListingView) Total() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.total
}

// Delete removes an auction and, on success only, drops it from the local
// page
func (v *ListingView) Delete(ctx context.Context, id string) error {
	token, err := v.tokens.Token(ctx)
	if err != nil {
		v.notes.Notify(notify.LevelError, "You must be logged in to delete an auction.")
		return fmt.Errorf("listing view: delete: %w", domain.ErrNotAuthorized)
	}

	if err := v.api.DeleteAuction(ctx, id, token); err != nil {
		v.notes.Notify(notify.LevelError, "Failed to delete auction")
		return fmt.Errorf("listing view: delete auction %s: %w", id, err)
	}

	v.mu.Lock()
	kept := v.auctions[:0]
	for _, a := range v.auctions {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	if removed := len(v.auctions) - len(kept); removed > 0 && v.total >= removed {
		v.total -= removed
	}
	v.auctions = kept
	v.mu.Unlock()

	v.notes.Notify(notify.LevelSuccess, "Auction deleted successfully!")
	return nil
}

// Close marks the view as left; in-flight responses will be discarded
func (v *ListingView) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.closed = true
	v.gen++
}
