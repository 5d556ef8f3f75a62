package domain

import (
	"time"
)

// Bid represents a monetary offer against an auction, created by the server
// on submission acceptance. Immutable once created; the client may append a
// locally-originated bid while its confirmation is pending.
type Bid struct {
	ID        string    `json:"id,omitempty"`
	AuctionID string    `json:"auctionId"`
	UserID    string    `json:"userId"`
	Amount    float64   `json:"amount"`
	PlacedAt  time.Time `json:"placedAt"`
}

// NewBid creates a new Bid instance
func NewBid(id, auctionID, userID string, amount float64, placedAt time.Time) Bid {
	return Bid{
		ID:        id,
		AuctionID: auctionID,
		UserID:    userID,
		Amount:    amount,
		PlacedAt:  placedAt,
	}
}
