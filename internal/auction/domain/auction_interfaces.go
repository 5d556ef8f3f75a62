package domain

import (
	"context"
)

// AuctionAPI is the remote backend surface the views depend on. The backend
// owns the auction lifecycle, bid validation, persistence and authorization;
// this client only displays what it returns.
type AuctionAPI interface {
	ListAuctions(ctx context.Context, filter FilterState) (AuctionPage, error)
	GetAuction(ctx context.Context, id, token string) (Auction, error)
	CreateAuction(ctx context.Context, draft AuctionDraft, token string) (Auction, error)
	UpdateAuction(ctx context.Context, id string, fields map[string]any, token string) error
	DeleteAuction(ctx context.Context, id, token string) error
	UploadImage(ctx context.Context, auctionID, filename string, content []byte, token string) (Image, error)
	ListCategories(ctx context.Context) ([]Category, error)
	CreateCategory(ctx context.Context, name, token string) (Category, error)
	UpdateCategory(ctx context.Context, id, name, token string) (Category, error)
	DeleteCategory(ctx context.Context, id, token string) error
	ListUsers(ctx context.Context, token string) ([]AdminUser, error)
	EnsureUser(ctx context.Context, token string) (UserProfile, error)
	PlaceBid(ctx context.Context, auctionID string, amount float64, userID, token string) (Bid, error)
	MyBids(ctx context.Context, token string) ([]Bid, error)
	MyWonAuctions(ctx context.Context, token string) ([]Auction, error)
	MySellingHistory(ctx context.Context, token string) ([]Auction, error)
	AuditLogs(ctx context.Context, token string, page, pageSize int) (AuditLogPage, error)
}

// BidChannel is one logical subscription to an auction's realtime event
// channel. Open establishes it, Close tears it down; SubmitBid is
// fire-and-forget, the server is the sole arbiter of acceptance.
type BidChannel interface {
	Open(ctx context.Context)
	SubmitBid(amount float64, userID string) error
	Close()
}

// ChannelFactory creates the per-view subscription for one auction. A fresh
// channel is opened per view instance, never shared or pooled.
type ChannelFactory func(auctionID string, onBid func(Bid)) BidChannel

// TokenSource yields the bearer credential every authorized call must await,
// serially, before proceeding.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// RoleChecker gates admin affordances client-side. Authorization is never
// enforced here, the backend re-checks every call.
type RoleChecker interface {
	IsAdmin(ctx context.Context) (bool, error)
}
