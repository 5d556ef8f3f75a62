package application

import (
	"context"
	"testing"
	"time"

	"github.com/eduard-zxc/auctionfront/internal/auction/domain"
	"github.com/eduard-zxc/auctionfront/internal/shared/notify"
	"github.com/stretchr/testify/require"
)

func validDraft() domain.AuctionDraft {
	start := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	return domain.NewAuctionDraft("Vintage Clock", "A beautiful old clock.", 100, "cat-1", start, start.Add(48*time.Hour))
}

func TestValidateDraft(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*domain.AuctionDraft)
		badFields []string
	}{
		{name: "valid", mutate: func(*domain.AuctionDraft) {}},
		{
			name:      "missing_title",
			mutate:    func(d *domain.AuctionDraft) { d.Title = "  " },
			badFields: []string{"title"},
		},
		{
			name:      "zero_price",
			mutate:    func(d *domain.AuctionDraft) { d.StartingPrice = 0 },
			badFields: []string{"startingPrice"},
		},
		{
			name:      "end_before_start",
			mutate:    func(d *domain.AuctionDraft) { d.EndTime = d.StartTime.Add(-time.Hour) },
			badFields: []string{"endTime"},
		},
		{
			name: "everything_wrong",
			mutate: func(d *domain.AuctionDraft) {
				d.Title = ""
				d.StartingPrice = -5
				d.StartTime = time.Time{}
				d.EndTime = time.Time{}
			},
			badFields: []string{"title", "startingPrice", "endTime"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			draft := validDraft()
			tc.mutate(&draft)

			errs := ValidateDraft(draft)
			if len(tc.badFields) == 0 {
				require.Nil(t, errs)
				return
			}
			require.Len(t, errs, len(tc.badFields))
			for _, field := range tc.badFields {
				require.Contains(t, errs, field)
			}
			require.ErrorIs(t, errs, domain.ErrInvalidDraft)
		})
	}
}

func TestAuctionEditor_InvalidDraftNeverReachesNetwork(t *testing.T) {
	api := &fakeAPI{}
	editor := NewAuctionEditor(api, &fakeTokens{token: "tok"}, notify.NewCenter())

	draft := validDraft()
	draft.Title = ""
	_, err := editor.Create(context.Background(), draft, nil)

	require.ErrorIs(t, err, domain.ErrInvalidDraft)
	require.Zero(t, api.createCalls)
}

func TestAuctionEditor_CreateUploadsImages(t *testing.T) {
	api := &fakeAPI{created: domain.Auction{ID: "a9"}}
	editor := NewAuctionEditor(api, &fakeTokens{token: "tok"}, notify.NewCenter())

	auction, err := editor.Create(context.Background(), validDraft(), map[string][]byte{
		"clock.jpg": []byte("jpeg-bytes"),
	})

	require.NoError(t, err)
	require.Equal(t, "a9", auction.ID)
	require.Equal(t, 1, api.createCalls)
	require.Equal(t, 1, api.uploadCalls)
	// the backend expects empty collections, not null
	require.NotNil(t, api.lastDraft.Bids)
	require.NotNil(t, api.lastDraft.Images)
}

func TestAuctionEditor_CreateFailureNotifies(t *testing.T) {
	api := &fakeAPI{createErr: errBackendDown}
	notes := notify.NewCenter()
	editor := NewAuctionEditor(api, &fakeTokens{token: "tok"}, notes)

	_, err := editor.Create(context.Background(), validDraft(), nil)

	require.Error(t, err)
	require.Zero(t, api.uploadCalls)
	pending := notes.Pending()
	require.NotEmpty(t, pending)
	require.Equal(t, notify.LevelError, pending[len(pending)-1].Level)
}
