package application

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/eduard-zxc/auctionfront/internal/auction/domain"
	"github.com/eduard-zxc/auctionfront/internal/shared/notify"
)

// FieldErrors maps form field names to inline validation messages. A draft
// failing validation never reaches the network.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+e[f])
	}
	return "invalid auction draft (" + strings.Join(parts, "; ") + ")"
}

// Is lets callers match FieldErrors against domain.ErrInvalidDraft
func (e FieldErrors) Is(target error) bool {
	return target == domain.ErrInvalidDraft
}

// ValidateDraft runs the client-side field checks of the creation form.
// Returns nil when the draft may be submitted.
func ValidateDraft(draft domain.AuctionDraft) FieldErrors {
	errs := FieldErrors{}
	if strings.TrimSpace(draft.Title) == "" {
		errs["title"] = "title is required"
	}
	if draft.StartingPrice <= 0 {
		errs["startingPrice"] = "starting price must be greater than zero"
	}
	if draft.EndTime.IsZero() || draft.StartTime.IsZero() {
		errs["endTime"] = "start and end times are required"
	} else if !draft.EndTime.After(draft.StartTime) {
		errs["endTime"] = "end time must be after start time"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// AuctionEditor backs the creation form and the admin edit affordances
type AuctionEditor struct {
	api    domain.AuctionAPI
	tokens domain.TokenSource
	notes  *notify.Center
}

func NewAuctionEditor(api domain.AuctionAPI, tokens domain.TokenSource, notes *notify.Center) *AuctionEditor {
	return &AuctionEditor{api: api, tokens: tokens, notes: notes}
}

// Create validates the draft, posts it and then uploads any attached images.
// Validation failure blocks submission with inline field errors; a network
// failure surfaces a notification and leaves nothing created client-side.
func (ed *AuctionEditor) Create(ctx context.Context, draft domain.AuctionDraft, images map[string][]byte) (domain.Auction, error) {
	if errs := ValidateDraft(draft); errs != nil {
		return domain.Auction{}, errs
	}

	token, err := ed.tokens.Token(ctx)
	if err != nil {
		ed.notes.Notify(notify.LevelError, "You must be logged in to create an auction.")
		return domain.Auction{}, fmt.Errorf("editor: %w", domain.ErrNotAuthorized)
	}

	auction, err := ed.api.CreateAuction(ctx, draft, token)
	if err != nil {
		ed.notes.Notify(notify.LevelError, "Failed to create auction")
		return domain.Auction{}, fmt.Errorf("editor: create auction: %w", err)
	}

	for name, content := range images {
		if _, err := ed.api.UploadImage(ctx, auction.ID, name, content, token); err != nil {
			// the auction exists, report the image and keep going
			ed.notes.Notify(notify.LevelError, "Failed to upload image "+name)
		}
	}

	ed.notes.Notify(notify.LevelSuccess, "Auction created successfully!")
	return auction, nil
}

// Update sends a partial update for the given auction
func (ed *AuctionEditor) Update(ctx context.Context, id string, fields map[string]any) error {
	token, err := ed.tokens.Token(ctx)
	if err != nil {
		ed.notes.Notify(notify.LevelError, "You must be logged in to edit an auction.")
		return fmt.Errorf("editor: %w", domain.ErrNotAuthorized)
	}

	if err := ed.api.UpdateAuction(ctx, id, fields, token); err != nil {
		ed.notes.Notify(notify.LevelError, "Failed to update auction")
		return fmt.Errorf("editor: update auction %s: %w", id, err)
	}
	ed.notes.Notify(notify.LevelSuccess, "Auction updated successfully!")
	return nil
}

// Categories loads the category options for the form selects
func (ed *AuctionEditor) Categories(ctx context.Context) ([]domain.Category, error) {
	categories, err := ed.api.ListCategories(ctx)
	if err != nil {
		ed.notes.Notify(notify.LevelError, "Failed to load categories")
		return nil, fmt.Errorf("editor: list categories: %w", err)
	}
	return categories, nil
}
