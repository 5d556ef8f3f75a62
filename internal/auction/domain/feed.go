package domain

import (
	"sync"

	"github.com/eduard-zxc/auctionfront/internal/shared/logger"
	"go.uber.org/zap"
)

var log = logger.GetLogger()

// BidFeed holds the bids displayed for one auction view: the initial snapshot
// from the one-time fetch plus every incrementally arriving bid, as an
// append-only sequence in arrival order. Arrival order carries no guarantee
// relative to amount; a smaller late-arriving bid is recorded, not rejected.
// No de-duplication is performed, broadcasts are appended unconditionally.
type BidFeed struct {
	startingPrice float64
	//protects the bid sequence, channel events and UI reads interleave
	mu   sync.Mutex
	bids []Bid
}

// NewBidFeed creates a feed seeded with the fetched snapshot. The snapshot is
// copied so later server pushes never alias the caller's slice.
func NewBidFeed(startingPrice float64, snapshot []Bid) *BidFeed {
	return &BidFeed{
		startingPrice: startingPrice,
		bids:          append([]Bid(nil), snapshot...),
	}
}

// Append records an arriving bid at the end of the sequence
func (f *BidFeed) Append(b Bid) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.bids = append(f.bids, b)
	log.Debug("bid appended to feed",
		zap.String("auctionID", b.AuctionID),
		zap.String("userID", b.UserID),
		zap.Float64("amount", b.Amount),
		zap.Int("totalBids", len(f.bids)),
	)
}

// CurrentPrice recomputes the maximum amount across the full set, falling
// back to the starting price when the set is empty. Never cached.
func (f *BidFeed) CurrentPrice() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()

	price := f.startingPrice
	for _, b := range f.bids {
		if b.Amount > price {
			price = b.Amount
		}
	}
	return price
}

// Bids returns a copy of the sequence in arrival order
func (f *BidFeed) Bids() []Bid {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]Bid(nil), f.bids...)
}

// Len returns the number of recorded bids
func (f *BidFeed) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.bids)
}

// StartingPrice returns the price the feed falls back to with no bids
func (f *BidFeed) StartingPrice() float64 {
	return f.startingPrice
}
