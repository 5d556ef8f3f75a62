package application

import (
	"context"
	"fmt"
	"sync"

	"github.com/eduard-zxc/auctionfront/internal/auction/domain"
	"github.com/eduard-zxc/auctionfront/internal/shared/notify"
)

// ProfileView backs the user-profile page: the backend profile (via the
// idempotent users/me upsert) plus the caller's bids, wins and selling
// history.
type ProfileView struct {
	api    domain.AuctionAPI
	tokens domain.TokenSource
	notes  *notify.Center

	mu      sync.Mutex
	profile *domain.UserProfile
}

func NewProfileView(api domain.AuctionAPI, tokens domain.TokenSource, notes *notify.Center) *ProfileView {
	return &ProfileView{api: api, tokens: tokens, notes: notes}
}

// EnsureProfile upserts and caches the backend profile. The returned profile
// carries the internal user id bids are attributed to.
func (v *ProfileView) EnsureProfile(ctx context.Context) (domain.UserProfile, error) {
	v.mu.Lock()
	if v.profile != nil {
		p := *v.profile
		v.mu.Unlock()
		return p, nil
	}
	v.mu.Unlock()

	token, err := v.tokens.Token(ctx)
	if err != nil {
		v.notes.Notify(notify.LevelError, "You must be logged in.")
		return domain.UserProfile{}, fmt.Errorf("profile view: %w", domain.ErrNotAuthorized)
	}

	profile, err := v.api.EnsureUser(ctx, token)
	if err != nil {
		v.notes.Notify(notify.LevelError, "Failed to load profile")
		return domain.UserProfile{}, fmt.Errorf("profile view: ensure user: %w", err)
	}

	v.mu.Lock()
	v.profile = &profile
	v.mu.Unlock()
	return profile, nil
}

// UserID returns the internal user id, ensuring the profile first
func (v *ProfileView) UserID(ctx context.Context) (string, error) {
	profile, err := v.EnsureProfile(ctx)
	if err != nil {
		return "", err
	}
	return profile.ID, nil
}

// MyBids lists the caller's bids
func (v *ProfileView) MyBids(ctx context.Context) ([]domain.Bid, error) {
	token, err := v.tokens.Token(ctx)
	if err != nil {
		v.notes.Notify(notify.LevelError, "You must be logged in.")
		return nil, fmt.Errorf("profile view: %w", domain.ErrNotAuthorized)
	}
	bids, err := v.api.MyBids(ctx, token)
	if err != nil {
		v.notes.Notify(notify.LevelError, "Failed to fetch bids")
		return nil, fmt.Errorf("profile view: my bids: %w", err)
	}
	return bids, nil
}

// WonAuctions lists auctions the caller has won
func (v *ProfileView) WonAuctions(ctx context.Context) ([]domain.Auction, error) {
	token, err := v.tokens.Token(ctx)
	if err != nil {
		v.notes.Notify(notify.LevelError, "You must be logged in.")
		return nil, fmt.Errorf("profile view: %w", domain.ErrNotAuthorized)
	}
	auctions, err := v.api.MyWonAuctions(ctx, token)
	if err != nil {
		v.notes.Notify(notify.LevelError, "Failed to fetch won auctions")
		return nil, fmt.Errorf("profile view: won auctions: %w", err)
	}
	return auctions, nil
}

// SellingHistory lists auctions the caller has sold
func (v *ProfileView) SellingHistory(ctx context.Context) ([]domain.Auction, error) {
	token, err := v.tokens.Token(ctx)
	if err != nil {
		v.notes.Notify(notify.LevelError, "You must be logged in.")
		return nil, fmt.Errorf("profile view: %w", domain.ErrNotAuthorized)
	}
	auctions, err := v.api.MySellingHistory(ctx, token)
	if err != nil {
		v.notes.Notify(notify.LevelError, "Failed to fetch selling history")
		return nil, fmt.Errorf("profile view: selling history: %w", err)
	}
	return auctions, nil
}
