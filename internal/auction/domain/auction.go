package domain

import (
	"time"
)

// AuctionStatus is the display status of an auction relative to its time window
type AuctionStatus string

const (
	StatusUpcoming AuctionStatus = "upcoming"
	StatusLive     AuctionStatus = "live"
	StatusEnded    AuctionStatus = "ended"
)

// Image is an auction image reference as returned by the backend
type Image struct {
	URL string `json:"url"`
}

// Auction is the view model for a single auction as the backend returns it.
// Bids are ordered by recency of arrival, not by amount.
type Auction struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	StartingPrice float64   `json:"startingPrice"`
	CategoryID    string    `json:"categoryId"`
	CategoryName  string    `json:"categoryName,omitempty"`
	StartTime     time.Time `json:"startTime"`
	EndTime       time.Time `json:"endTime"`
	Images        []Image   `json:"images"`
	Bids          []Bid     `json:"bids"`
}

// StatusAt derives the display status from the auction time window
func (a *Auction) StatusAt(now time.Time) AuctionStatus {
	if now.Before(a.StartTime) {
		return StatusUpcoming
	}
	if !now.Before(a.EndTime) {
		return StatusEnded
	}
	return StatusLive
}

// CurrentPrice is the highest bid amount, or the starting price when no bids
// exist. Recomputed from the full set on every call, never cached.
func (a *Auction) CurrentPrice() float64 {
	price := a.StartingPrice
	for _, b := range a.Bids {
		if b.Amount > price {
			price = b.Amount
		}
	}
	return price
}

// AuctionPage is one page of listing results exactly as the server returned it
type AuctionPage struct {
	Items []Auction `json:"items"`
	Total int       `json:"total"`
}

// AuctionDraft is the creation payload for POST /auctions. Bids and Images
// must marshal as empty arrays, not null.
type AuctionDraft struct {
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	StartingPrice float64   `json:"startingPrice"`
	CategoryID    string    `json:"categoryId"`
	StartTime     time.Time `json:"startTime"`
	EndTime       time.Time `json:"endTime"`
	Bids          []Bid     `json:"bids"`
	Images        []Image   `json:"images"`
}

// NewAuctionDraft creates a draft with the empty collections the backend expects
func NewAuctionDraft(title, description string, startingPrice float64, categoryID string, startTime, endTime time.Time) AuctionDraft {
	return AuctionDraft{
		Title:         title,
		Description:   description,
		StartingPrice: startingPrice,
		CategoryID:    categoryID,
		StartTime:     startTime,
		EndTime:       endTime,
		Bids:          []Bid{},
		Images:        []Image{},
	}
}

// Category is a listing category as returned by GET /categories
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// UserProfile is the backend-side profile returned by POST /users/me,
// including the internal user id used to attribute bids.
type UserProfile struct {
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
}

// AdminUser is one row of the admin user table
type AdminUser struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Role     string `json:"role"`
	IsActive bool   `json:"isActive"`
}

// AuditLog is a single admin audit entry
type AuditLog struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	Action     string    `json:"action"`
	EntityType string    `json:"entityType"`
	EntityID   string    `json:"entityId"`
	Timestamp  time.Time `json:"timestamp"`
}

// AuditLogPage is one page of audit entries
type AuditLogPage struct {
	Items []AuditLog `json:"items"`
	Total int        `json:"total"`
}
