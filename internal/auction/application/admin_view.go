package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/eduard-zxc/auctionfront/internal/auction/domain"
	"github.com/eduard-zxc/auctionfront/internal/shared/notify"
)

// AdminView backs the admin dashboard: the audit-log table, the user table
// and category management. The role check only gates the affordances
// client-side; the backend re-checks authorization on every call.
type AdminView struct {
	api      domain.AuctionAPI
	tokens   domain.TokenSource
	roles    domain.RoleChecker
	notes    *notify.Center
	pageSize int
}

func NewAdminView(api domain.AuctionAPI, tokens domain.TokenSource, roles domain.RoleChecker, notes *notify.Center, pageSize int) *AdminView {
	if pageSize <= 0 {
		pageSize = 20
	}
	return &AdminView{api: api, tokens: tokens, roles: roles, notes: notes, pageSize: pageSize}
}

// IsAdmin reports whether the admin tabs should be shown at all
func (v *AdminView) IsAdmin(ctx context.Context) bool {
	ok, err := v.roles.IsAdmin(ctx)
	if err != nil {
		return false
	}
	return ok
}

// gate blocks the call locally when the caller lacks the admin role and
// returns the credential for the backend check
func (v *AdminView) gate(ctx context.Context) (string, error) {
	ok, err := v.roles.IsAdmin(ctx)
	if err != nil {
		v.notes.Notify(notify.LevelError, "You must be logged in.")
		return "", fmt.Errorf("admin view: %w", domain.ErrNotAuthorized)
	}
	if !ok {
		v.notes.Notify(notify.LevelError, "You are not allowed to access the admin dashboard.")
		return "", fmt.Errorf("admin view: %w", domain.ErrNotAuthorized)
	}

	token, err := v.tokens.Token(ctx)
	if err != nil {
		v.notes.Notify(notify.LevelError, "You must be logged in.")
		return "", fmt.Errorf("admin view: %w", domain.ErrNotAuthorized)
	}
	return token, nil
}

// AuditLogs fetches one page of audit entries
func (v *AdminView) AuditLogs(ctx context.Context, page int) (domain.AuditLogPage, error) {
	token, err := v.gate(ctx)
	if err != nil {
		return domain.AuditLogPage{}, err
	}

	if page < 1 {
		page = 1
	}
	logs, err := v.api.AuditLogs(ctx, token, page, v.pageSize)
	if err != nil {
		v.notes.Notify(notify.LevelError, "Failed to fetch audit logs")
		return domain.AuditLogPage{}, fmt.Errorf("admin view: audit logs page %d: %w", page, err)
	}
	return logs, nil
}

// Users fetches the user table
func (v *AdminView) Users(ctx context.Context) ([]domain.AdminUser, error) {
	token, err := v.gate(ctx)
	if err != nil {
		return nil, err
	}

	users, err := v.api.ListUsers(ctx, token)
	if err != nil {
		v.notes.Notify(notify.LevelError, "Failed to fetch users")
		return nil, fmt.Errorf("admin view: list users: %w", err)
	}
	return users, nil
}

// CreateCategory adds a category. A blank name is blocked before the network.
func (v *AdminView) CreateCategory(ctx context.Context, name string) (domain.Category, error) {
	if strings.TrimSpace(name) == "" {
		return domain.Category{}, fmt.Errorf("admin view: create category: %w", domain.ErrEmptyName)
	}
	token, err := v.gate(ctx)
	if err != nil {
		return domain.Category{}, err
	}

	category, err := v.api.CreateCategory(ctx, name, token)
	if err != nil {
		v.notes.Notify(notify.LevelError, "Failed to create category")
		return domain.Category{}, fmt.Errorf("admin view: create category: %w", err)
	}
	v.notes.Notify(notify.LevelSuccess, "Category created successfully!")
	return category, nil
}

// RenameCategory saves an edited category name
func (v *AdminView) RenameCategory(ctx context.Context, id, name string) (domain.Category, error) {
	if strings.TrimSpace(name) == "" {
		return domain.Category{}, fmt.Errorf("admin view: rename category: %w", domain.ErrEmptyName)
	}
	token, err := v.gate(ctx)
	if err != nil {
		return domain.Category{}, err
	}

	category, err := v.api.UpdateCategory(ctx, id, name, token)
	if err != nil {
		v.notes.Notify(notify.LevelError, "Failed to update category")
		return domain.Category{}, fmt.Errorf("admin view: rename category %s: %w", id, err)
	}
	v.notes.Notify(notify.LevelSuccess, "Category updated successfully!")
	return category, nil
}

// DeleteCategory removes a category
func (v *AdminView) DeleteCategory(ctx context.Context, id string) error {
	token, err := v.gate(ctx)
	if err != nil {
		return err
	}

	if err := v.api.DeleteCategory(ctx, id, token); err != nil {
		v.notes.Notify(notify.LevelError, "Failed to delete category")
		return fmt.Errorf("admin view: delete category %s: %w", id, err)
	}
	v.notes.Notify(notify.LevelSuccess, "Category deleted successfully!")
	return nil
}
