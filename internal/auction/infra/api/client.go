package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/eduard-zxc/auctionfront/internal/auction/domain"
	"github.com/eduard-zxc/auctionfront/internal/shared/logger"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

var log = logger.GetLogger()

// Client talks to the auction backend over JSON/HTTPS. It holds no state
// beyond the base URL; every call is a fresh request. Requests carry no
// client-side timeout, matching the backend keep-alive contract.
type Client struct {
	baseURL string
}

// NewClient creates a backend client for the given base URL, e.g.
// http://localhost:5188/api
func NewClient(baseURL string) *Client {
	return &Client{baseURL: baseURL}
}

var _ domain.AuctionAPI = (*Client)(nil)

// ListAuctions queries the listing with the filter encoded as query
// parameters. No authorization is required for browsing.
func (c *Client) ListAuctions(_ context.Context, filter domain.FilterState) (domain.AuctionPage, error) {
	a := fiber.Get(c.baseURL + "/auctions")
	a.QueryString(filter.QueryString())

	var page domain.AuctionPage
	if err := c.do(a, &page); err != nil {
		return domain.AuctionPage{}, fmt.Errorf("list auctions: %w", err)
	}
	return page, nil
}

// GetAuction fetches one auction with bids and images inline
func (c *Client) GetAuction(_ context.Context, id, token string) (domain.Auction, error) {
	a := bearer(fiber.Get(c.baseURL+"/auctions/"+id), token)

	var auction domain.Auction
	if err := c.do(a, &auction); err != nil {
		return domain.Auction{}, fmt.Errorf("get auction %s: %w", id, err)
	}
	return auction, nil
}

// CreateAuction posts a new auction draft and returns the stored auction
func (c *Client) CreateAuction(_ context.Context, draft domain.AuctionDraft, token string) (domain.Auction, error) {
	a := bearer(fiber.Post(c.baseURL+"/auctions"), token)
	a.JSON(draft)

	var auction domain.Auction
	if err := c.do(a, &auction); err != nil {
		return domain.Auction{}, fmt.Errorf("create auction: %w", err)
	}
	return auction, nil
}

// UpdateAuction sends a partial update. The backend expects the id repeated
// in the body and may answer 204 with no content.
func (c *Client) UpdateAuction(_ context.Context, id string, fields map[string]any, token string) error {
	payload := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		payload[k] = v
	}
	payload["id"] = id

	a := bearer(fiber.Put(c.baseURL+"/auctions/"+id), token)
	a.JSON(payload)

	if err := c.do(a, nil); err != nil {
		return fmt.Errorf("update auction %s: %w", id, err)
	}
	return nil
}

// DeleteAuction removes an auction
func (c *Client) DeleteAuction(_ context.Context, id, token string) error {
	a := bearer(fiber.Delete(c.baseURL+"/auctions/"+id), token)

	if err := c.do(a, nil); err != nil {
		return fmt.Errorf("delete auction %s: %w", id, err)
	}
	return nil
}

// UploadImage attaches an image to an auction as a multipart form with the
// single field "file"
func (c *Client) UploadImage(_ context.Context, auctionID, filename string, content []byte, token string) (domain.Image, error) {
	a := bearer(fiber.Post(c.baseURL+"/images/"+auctionID), token)

	ff := fiber.AcquireFormFile()
	ff.Fieldname = "file"
	ff.Name = filename
	ff.Content = content
	a.FileData(ff).MultipartForm(nil)

	var img domain.Image
	if err := c.do(a, &img); err != nil {
		return domain.Image{}, fmt.Errorf("upload image for auction %s: %w", auctionID, err)
	}
	return img, nil
}

// ListCategories fetches the category list, no authorization required
func (c *Client) ListCategories(_ context.Context) ([]domain.Category, error) {
	a := fiber.Get(c.baseURL + "/categories")

	var categories []domain.Category
	if err := c.do(a, &categories); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// CreateCategory adds a listing category. Admin only, server-enforced.
func (c *Client) CreateCategory(_ context.Context, name, token string) (domain.Category, error) {
	a := bearer(fiber.Post(c.baseURL+"/categories"), token)
	a.JSON(struct {
		Name string `json:"name"`
	}{Name: name})

	var category domain.Category
	if err := c.do(a, &category); err != nil {
		return domain.Category{}, fmt.Errorf("create category: %w", err)
	}
	return category, nil
}

// UpdateCategory renames a category. The backend expects the id repeated in
// the body.
func (c *Client) UpdateCategory(_ context.Context, id, name, token string) (domain.Category, error) {
	a := bearer(fiber.Put(c.baseURL+"/categories/"+id), token)
	a.JSON(struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}{ID: id, Name: name})

	var category domain.Category
	if err := c.do(a, &category); err != nil {
		return domain.Category{}, fmt.Errorf("update category %s: %w", id, err)
	}
	return category, nil
}

// DeleteCategory removes a category
func (c *Client) DeleteCategory(_ context.Context, id, token string) error {
	a := bearer(fiber.Delete(c.baseURL+"/categories/"+id), token)

	if err := c.do(a, nil); err != nil {
		return fmt.Errorf("delete category %s: %w", id, err)
	}
	return nil
}

// ListUsers fetches the admin user table. The backend enforces the admin
// role; the client only pre-gates the affordance.
func (c *Client) ListUsers(_ context.Context, token string) ([]domain.AdminUser, error) {
	a := bearer(fiber.Get(c.baseURL+"/admin/users"), token)

	var users []domain.AdminUser
	if err := c.do(a, &users); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// EnsureUser upserts the caller's profile (idempotent) and returns it,
// including the internal user id bids are attributed to
func (c *Client) EnsureUser(_ context.Context, token string) (domain.UserProfile, error) {
	a := bearer(fiber.Post(c.baseURL+"/users/me"), token)
	a.ContentType(fiber.MIMEApplicationJSON)

	var profile domain.UserProfile
	if err := c.do(a, &profile); err != nil {
		return domain.UserProfile{}, fmt.Errorf("ensure user: %w", err)
	}
	return profile, nil
}

// PlaceBid submits a bid over REST. This is the fallback path when the
// realtime channel is down; the server validates independently either way.
func (c *Client) PlaceBid(_ context.Context, auctionID string, amount float64, userID, token string) (domain.Bid, error) {
	body := struct {
		AuctionID string  `json:"auctionId"`
		Amount    float64 `json:"amount"`
		UserID    string  `json:"userId"`
	}{AuctionID: auctionID, Amount: amount, UserID: userID}

	a := bearer(fiber.Post(c.baseURL+"/bids"), token)
	a.JSON(body)

	var bid domain.Bid
	if err := c.do(a, &bid); err != nil {
		return domain.Bid{}, fmt.Errorf("place bid on auction %s: %w", auctionID, err)
	}
	return bid, nil
}

// MyBids returns the caller's bids
func (c *Client) MyBids(_ context.Context, token string) ([]domain.Bid, error) {
	a := bearer(fiber.Get(c.baseURL+"/users/bids"), token)

	var bids []domain.Bid
	if err := c.do(a, &bids); err != nil {
		return nil, fmt.Errorf("my bids: %w", err)
	}
	return bids, nil
}

// MyWonAuctions returns auctions the caller has won
func (c *Client) MyWonAuctions(_ context.Context, token string) ([]domain.Auction, error) {
	a := bearer(fiber.Get(c.baseURL+"/users/won-auctions"), token)

	var auctions []domain.Auction
	if err := c.do(a, &auctions); err != nil {
		return nil, fmt.Errorf("won auctions: %w", err)
	}
	return auctions, nil
}

// MySellingHistory returns auctions the caller has sold
func (c *Client) MySellingHistory(_ context.Context, token string) ([]domain.Auction, error) {
	a := bearer(fiber.Get(c.baseURL+"/users/selling-history"), token)

	var auctions []domain.Auction
	if err := c.do(a, &auctions); err != nil {
		return nil, fmt.Errorf("selling history: %w", err)
	}
	return auctions, nil
}

// AuditLogs fetches one page of admin audit entries. The backend enforces
// the admin role; the client only pre-gates the affordance.
func (c *Client) AuditLogs(_ context.Context, token string, page, pageSize int) (domain.AuditLogPage, error) {
	a := bearer(fiber.Get(c.baseURL+"/auditlogs"), token)
	a.QueryString("page=" + strconv.Itoa(page) + "&pageSize=" + strconv.Itoa(pageSize))

	var logs domain.AuditLogPage
	if err := c.do(a, &logs); err != nil {
		return domain.AuditLogPage{}, fmt.Errorf("audit logs: %w", err)
	}
	return logs, nil
}

// do executes the prepared agent and decodes a 2xx JSON body into out. A
// transport error or non-2xx status leaves out untouched.
func (c *Client) do(a *fiber.Agent, out any) error {
	code, body, errs := a.Bytes()
	if len(errs) > 0 {
		log.Debug("api transport failure", zap.Error(errs[0]))
		return fmt.Errorf("request failed: %w", errs[0])
	}
	if code < fiber.StatusOK || code >= fiber.StatusMultipleChoices {
		return fmt.Errorf("unexpected status %d: %s", code, bytes.TrimSpace(body))
	}
	if out == nil || code == fiber.StatusNoContent || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// bearer attaches the Authorization header
func bearer(a *fiber.Agent, token string) *fiber.Agent {
	return a.Set(fiber.HeaderAuthorization, "Bearer "+token)
}
