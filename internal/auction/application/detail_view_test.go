package application

import (
	"context"
	"testing"
	"time"

	"github.com/eduard-zxc/auctionfront/internal/auction/domain"
	"github.com/eduard-zxc/auctionfront/internal/shared/notify"
	"github.com/stretchr/testify/require"
)

func newDetailFixture(auction domain.Auction) (*DetailView, *fakeAPI, *fakeChannel, *notify.Center) {
	api := &fakeAPI{getAuction: auction}
	ch := &fakeChannel{}
	factory := func(string, func(domain.Bid)) domain.BidChannel { return ch }
	notes := notify.NewCenter()
	view := NewDetailView(api, &fakeTokens{token: "tok"}, factory, notes)
	return view, api, ch, notes
}

func TestDetailView_OpenEstablishesChannelAndShowsStartingPrice(t *testing.T) {
	view, _, ch, _ := newDetailFixture(domain.Auction{ID: "a1", Title: "Vintage Clock", StartingPrice: 100})

	require.NoError(t, view.Open(context.Background(), "a1"))

	require.True(t, ch.opened)
	require.Equal(t, 100.0, view.CurrentPrice())
	auction, ok := view.Auction()
	require.True(t, ok)
	require.Equal(t, "Vintage Clock", auction.Title)
}

func TestDetailView_SubmitBid(t *testing.T) {
	tests := []struct {
		name          string
		amount        float64
		expectedErr   error
		expectSubmits int
	}{
		{name: "below_current_price", amount: 80, expectedErr: domain.ErrBidTooLow},
		{name: "equal_to_current_price", amount: 100, expectedErr: domain.ErrBidTooLow},
		{name: "zero_amount", amount: 0, expectedErr: domain.ErrInvalidAmount},
		{name: "negative_amount", amount: -10, expectedErr: domain.ErrInvalidAmount},
		{name: "above_current_price", amount: 150, expectSubmits: 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			view, api, ch, _ := newDetailFixture(domain.Auction{ID: "a1", StartingPrice: 100})
			require.NoError(t, view.Open(context.Background(), "a1"))

			err := view.SubmitBid(context.Background(), tc.amount, "user1")

			if tc.expectedErr != nil {
				require.ErrorIs(t, err, tc.expectedErr)
				// a locally rejected bid never reaches the network
				require.Zero(t, api.placeCalls)
				require.Empty(t, ch.submitted())
			} else {
				require.NoError(t, err)
				require.Len(t, ch.submitted(), tc.expectSubmits)
				require.Zero(t, api.placeCalls)
			}
		})
	}
}

func TestDetailView_CurrentPriceIgnoresArrivalOrder(t *testing.T) {
	api := &fakeAPI{getAuction: domain.Auction{ID: "a1", StartingPrice: 50}}
	var onBid func(domain.Bid)
	factory := func(_ string, cb func(domain.Bid)) domain.BidChannel {
		onBid = cb
		return &fakeChannel{}
	}
	view := NewDetailView(api, &fakeTokens{token: "tok"}, factory, notify.NewCenter())
	require.NoError(t, view.Open(context.Background(), "a1"))

	// network reordering: the larger bid arrives first
	onBid(domain.NewBid("b1", "a1", "u1", 80, time.Now()))
	onBid(domain.NewBid("b2", "a1", "u2", 60, time.Now()))

	require.Equal(t, 80.0, view.CurrentPrice())

	bids := view.Bids()
	require.Len(t, bids, 2)
	require.Equal(t, 80.0, bids[0].Amount)
	require.Equal(t, 60.0, bids[1].Amount)
}

func TestDetailView_RESTFallbackWhenChannelDown(t *testing.T) {
	confirmed := domain.NewBid("b9", "a1", "user1", 150, time.Now())
	view, api, ch, _ := newDetailFixture(domain.Auction{ID: "a1", StartingPrice: 100})
	api.placeBid = confirmed
	ch.submitErr = domain.ErrChannelClosed

	require.NoError(t, view.Open(context.Background(), "a1"))
	require.NoError(t, view.SubmitBid(context.Background(), 150, "user1"))

	require.Equal(t, 1, api.placeCalls)
	require.Equal(t, 150.0, view.CurrentPrice())
}

func TestDetailView_ServerRejectionLeavesStateUnchanged(t *testing.T) {
	view, api, ch, notes := newDetailFixture(domain.Auction{ID: "a1", StartingPrice: 100})
	ch.submitErr = domain.ErrChannelClosed
	api.placeErr = errBackendDown

	require.NoError(t, view.Open(context.Background(), "a1"))

	err := view.SubmitBid(context.Background(), 150, "user1")
	require.Error(t, err)

	require.Equal(t, 100.0, view.CurrentPrice())
	require.Empty(t, view.Bids())

	pending := notes.Pending()
	require.NotEmpty(t, pending)
	require.Equal(t, notify.LevelError, pending[len(pending)-1].Level)
}

func TestDetailView_CloseTearsDownSubscription(t *testing.T) {
	api := &fakeAPI{getAuction: domain.Auction{ID: "a1", StartingPrice: 100}}
	ch := &fakeChannel{}
	var onBid func(domain.Bid)
	factory := func(_ string, cb func(domain.Bid)) domain.BidChannel {
		onBid = cb
		return ch
	}
	view := NewDetailView(api, &fakeTokens{token: "tok"}, factory, notify.NewCenter())
	require.NoError(t, view.Open(context.Background(), "a1"))

	view.Close()
	require.True(t, ch.closed)

	// a late event must not mutate state after unmount
	onBid(domain.NewBid("b1", "a1", "u1", 500, time.Now()))
	require.Empty(t, view.Bids())

	view.Close() // idempotent
}

func TestDetailView_StaleFetchIsDiscarded(t *testing.T) {
	api := &fakeAPI{getAuction: domain.Auction{ID: "a1", StartingPrice: 100}}
	factoryCalls := 0
	factory := func(string, func(domain.Bid)) domain.BidChannel {
		factoryCalls++
		return &fakeChannel{}
	}
	notes := notify.NewCenter()
	view := NewDetailView(api, &fakeTokens{token: "tok"}, factory, notes)

	// navigation leaves the view while the fetch is still in flight
	api.getHook = view.Close

	err := view.Open(context.Background(), "a1")
	require.ErrorIs(t, err, domain.ErrStaleResponse)

	_, ok := view.Auction()
	require.False(t, ok)
	require.Zero(t, factoryCalls)
}

func TestDetailView_NotAuthorized(t *testing.T) {
	api := &fakeAPI{}
	view := NewDetailView(api, &fakeTokens{err: errBackendDown}, func(string, func(domain.Bid)) domain.BidChannel {
		return &fakeChannel{}
	}, notify.NewCenter())

	err := view.Open(context.Background(), "a1")
	require.ErrorIs(t, err, domain.ErrNotAuthorized)
	require.Zero(t, api.getCalls)
}
