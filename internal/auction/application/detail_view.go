package application

import (
	"context"
	"fmt"
	"sync"

	"github.com/eduard-zxc/auctionfront/internal/auction/domain"
	"github.com/eduard-zxc/auctionfront/internal/shared/notify"
	"go.uber.org/zap"
)

// DetailView owns the state of one mounted auction-detail view: the fetched
// auction, its bid feed and the realtime subscription. The view is created
// per navigation and discarded on Close; the channel is never shared with
// other views. A generation tag guards the initial fetch so a response
// resolving after Close cannot leak into a later view of another auction.
type DetailView struct {
	api      domain.AuctionAPI
	tokens   domain.TokenSource
	channels domain.ChannelFactory
	notes    *notify.Center

	mu        sync.Mutex
	gen       uint64
	closed    bool
	auctionID string
	auction   *domain.Auction
	feed      *domain.BidFeed
	channel   domain.BidChannel
}

// NewDetailView wires a detail view; Open mounts it on a concrete auction
func NewDetailView(api domain.AuctionAPI, tokens domain.TokenSource, channels domain.ChannelFactory, notes *notify.Center) *DetailView {
	return &DetailView{
		api:      api,
		tokens:   tokens,
		channels: channels,
		notes:    notes,
	}
}

// Open fetches the auction snapshot and establishes the realtime
// subscription. The view still functions on the snapshot if the channel
// cannot be established; live updates resume when the manager reconnects.
func (v *DetailView) Open(ctx context.Context, auctionID string) error {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return domain.ErrViewClosed
	}
	if v.auctionID != "" {
		v.mu.Unlock()
		return fmt.Errorf("detail view: already mounted on auction %s", v.auctionID)
	}
	v.auctionID = auctionID
	v.gen++
	gen := v.gen
	v.mu.Unlock()

	token, err := v.tokens.Token(ctx)
	if err != nil {
		v.notes.Notify(notify.LevelError, "You must be logged in to view this auction.")
		return fmt.Errorf("detail view: %w", domain.ErrNotAuthorized)
	}

	auction, err := v.api.GetAuction(ctx, auctionID, token)
	if err != nil {
		v.notes.Notify(notify.LevelError, "Failed to load auction")
		return fmt.Errorf("detail view: load auction %s: %w", auctionID, err)
	}

	v.mu.Lock()
	if v.closed || v.gen != gen {
		v.mu.Unlock()
		log.Debug("discarding auction fetched for a superseded view", zap.String("auctionID", auctionID))
		return domain.ErrStaleResponse
	}
	v.auction = &auction
	v.feed = domain.NewBidFeed(auction.StartingPrice, auction.Bids)
	ch := v.channels(auctionID, v.applyBid)
	v.channel = ch
	v.mu.Unlock()

	ch.Open(ctx)
	return nil
}

// applyBid merges one server-pushed (or REST-confirmed) bid into the feed.
// Arrival order is preserved; amounts are not assumed monotonic.
func (v *DetailView) applyBid(b domain.Bid) {
	v.mu.Lock()
	feed := v.feed
	closed := v.closed
	v.mu.Unlock()
	if closed || feed == nil {
		return
	}
	feed.Append(b)
}

// Auction returns the mounted auction snapshot
func (v *DetailView) Auction() (domain.Auction, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.auction == nil {
		return domain.Auction{}, false
	}
	return *v.auction, true
}

// Bids returns the merged feed in arrival order
func (v *DetailView) Bids() []domain.Bid {
	v.mu.Lock()
	feed := v.feed
	v.mu.Unlock()
	if feed == nil {
		return nil
	}
	return feed.Bids()
}

// CurrentPrice derives the displayed price from the full bid set
func (v *DetailView) CurrentPrice() float64 {
	v.mu.Lock()
	feed := v.feed
	v.mu.Unlock()
	if feed == nil {
		return 0
	}
	return feed.CurrentPrice()
}

// SubmitBid validates locally, then submits fire-and-forget over the
// channel, falling back to the REST endpoint when the channel is down. A bid
// not exceeding the current price never reaches the network. The server
// re-validates independently; its rejection surfaces as a notification and
// leaves local state unchanged.
func (v *DetailView) SubmitBid(ctx context.Context, amount float64, userID string) error {
	v.mu.Lock()
	feed := v.feed
	ch := v.channel
	closed := v.closed
	auctionID := v.auctionID
	v.mu.Unlock()

	if closed || feed == nil {
		return domain.ErrViewClosed
	}
	if amount <= 0 {
		return domain.ErrInvalidAmount
	}
	if current := feed.CurrentPrice(); amount <= current {
		log.Debug("bid rejected locally",
			zap.String("auctionID", auctionID),
			zap.Float64("amount", amount),
			zap.Float64("currentPrice", current),
		)
		return domain.ErrBidTooLow
	}

	if ch != nil {
		err := ch.SubmitBid(amount, userID)
		if err == nil {
			// acceptance is the server's call; the broadcast updates the feed
			return nil
		}
		log.Debug("channel submit failed, falling back to REST",
			zap.String("auctionID", auctionID),
			zap.Error(err),
		)
	}

	token, err := v.tokens.Token(ctx)
	if err != nil {
		v.notes.Notify(notify.LevelError, "You must be logged in to bid.")
		return fmt.Errorf("detail view: %w", domain.ErrNotAuthorized)
	}

	bid, err := v.api.PlaceBid(ctx, auctionID, amount, userID, token)
	if err != nil {
		v.notes.Notify(notify.LevelError, "Failed to place bid")
		return fmt.Errorf("detail view: place bid on %s: %w", auctionID, err)
	}
	v.applyBid(bid)
	return nil
}

// Close tears down the subscription and supersedes any in-flight fetch.
// Idempotent.
func (v *DetailView) Close() {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return
	}
	v.closed = true
	v.gen++
	ch := v.channel
	v.channel = nil
	v.mu.Unlock()

	if ch != nil {
		ch.Close()
	}
}
