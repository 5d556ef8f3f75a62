package application

import (
	"context"
	"errors"
	"sync"

	"github.com/eduard-zxc/auctionfront/internal/auction/domain"
)

// fakeAPI records calls and serves canned responses for the view tests
type fakeAPI struct {
	mu sync.Mutex

	listCalls  int
	lastFilter domain.FilterState
	listPage   domain.AuctionPage
	listErr    error

	getCalls   int
	getAuction domain.Auction
	getErr     error
	getHook    func()

	placeCalls int
	placeBid   domain.Bid
	placeErr   error

	deleteCalls int
	deleteErr   error

	createCalls int
	lastDraft   domain.AuctionDraft
	created     domain.Auction
	createErr   error

	uploadCalls int
	uploadErr   error

	updateCalls int
	updateErr   error

	ensureCalls int
	profile     domain.UserProfile
	ensureErr   error

	auditCalls    int
	lastPage      int
	lastPageSize  int
	auditPage     domain.AuditLogPage
	auditErr      error
	categoriesErr error

	createCategoryCalls int
	updateCategoryCalls int
	deleteCategoryCalls int
	lastCategoryName    string
	categoryErr         error

	listUserCalls int
	users         []domain.AdminUser
	listUsersErr  error
}

func (f *fakeAPI) ListAuctions(_ context.Context, filter domain.FilterState) (domain.AuctionPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	f.lastFilter = filter
	if f.listErr != nil {
		return domain.AuctionPage{}, f.listErr
	}
	return f.listPage, nil
}

func (f *fakeAPI) GetAuction(_ context.Context, _, _ string) (domain.Auction, error) {
	f.mu.Lock()
	f.getCalls++
	hook := f.getHook
	f.mu.Unlock()
	if hook != nil {
		hook()
	}
	if f.getErr != nil {
		return domain.Auction{}, f.getErr
	}
	return f.getAuction, nil
}

func (f *fakeAPI) CreateAuction(_ context.Context, draft domain.AuctionDraft, _ string) (domain.Auction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	f.lastDraft = draft
	if f.createErr != nil {
		return domain.Auction{}, f.createErr
	}
	return f.created, nil
}

func (f *fakeAPI) UpdateAuction(_ context.Context, _ string, _ map[string]any, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updateCalls++
	return f.updateErr
}

func (f *fakeAPI) DeleteAuction(_ context.Context, _, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteCalls++
	return f.deleteErr
}

func (f *fakeAPI) UploadImage(_ context.Context, _, filename string, _ []byte, _ string) (domain.Image, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploadCalls++
	if f.uploadErr != nil {
		return domain.Image{}, f.uploadErr
	}
	return domain.Image{URL: filename}, nil
}

func (f *fakeAPI) ListCategories(_ context.Context) ([]domain.Category, error) {
	if f.categoriesErr != nil {
		return nil, f.categoriesErr
	}
	return []domain.Category{{ID: "c1", Name: "Art"}}, nil
}

func (f *fakeAPI) CreateCategory(_ context.Context, name, _ string) (domain.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCategoryCalls++
	f.lastCategoryName = name
	if f.categoryErr != nil {
		return domain.Category{}, f.categoryErr
	}
	return domain.Category{ID: "c-new", Name: name}, nil
}

func (f *fakeAPI) UpdateCategory(_ context.Context, id, name, _ string) (domain.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updateCategoryCalls++
	f.lastCategoryName = name
	if f.categoryErr != nil {
		return domain.Category{}, f.categoryErr
	}
	return domain.Category{ID: id, Name: name}, nil
}

func (f *fakeAPI) DeleteCategory(_ context.Context, _, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteCategoryCalls++
	return f.categoryErr
}

func (f *fakeAPI) ListUsers(_ context.Context, _ string) ([]domain.AdminUser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listUserCalls++
	if f.listUsersErr != nil {
		return nil, f.listUsersErr
	}
	return f.users, nil
}

func (f *fakeAPI) EnsureUser(_ context.Context, _ string) (domain.UserProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ensureCalls++
	if f.ensureErr != nil {
		return domain.UserProfile{}, f.ensureErr
	}
	return f.profile, nil
}

func (f *fakeAPI) PlaceBid(_ context.Context, _ string, _ float64, _, _ string) (domain.Bid, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.placeCalls++
	if f.placeErr != nil {
		return domain.Bid{}, f.placeErr
	}
	return f.placeBid, nil
}

func (f *fakeAPI) MyBids(_ context.Context, _ string) ([]domain.Bid, error) {
	return nil, nil
}

func (f *fakeAPI) MyWonAuctions(_ context.Context, _ string) ([]domain.Auction, error) {
	return nil, nil
}

func (f *fakeAPI) MySellingHistory(_ context.Context, _ string) ([]domain.Auction, error) {
	return nil, nil
}

func (f *fakeAPI) AuditLogs(_ context.Context, _ string, page, pageSize int) (domain.AuditLogPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.auditCalls++
	f.lastPage = page
	f.lastPageSize = pageSize
	if f.auditErr != nil {
		return domain.AuditLogPage{}, f.auditErr
	}
	return f.auditPage, nil
}

// fakeTokens hands out a static credential or an error
type fakeTokens struct {
	token string
	err   error
}

func (f *fakeTokens) Token(_ context.Context) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.token, nil
}

// fakeRoles answers the admin gate
type fakeRoles struct {
	admin bool
	err   error
}

func (f *fakeRoles) IsAdmin(_ context.Context) (bool, error) {
	return f.admin, f.err
}

// fakeChannel records subscription lifecycle and submissions
type fakeChannel struct {
	mu        sync.Mutex
	opened    bool
	closed    bool
	submits   []float64
	submitErr error
}

func (f *fakeChannel) Open(_ context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.opened = true
}

func (f *fakeChannel) SubmitBid(amount float64, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.submitErr != nil {
		return f.submitErr
	}
	f.submits = append(f.submits, amount)
	return nil
}

func (f *fakeChannel) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
}

func (f *fakeChannel) submitted() []float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]float64(nil), f.submits...)
}

var errBackendDown = errors.New("backend unreachable")
