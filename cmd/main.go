package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/eduard-zxc/auctionfront/internal/auction/application"
	"github.com/eduard-zxc/auctionfront/internal/auction/domain"
	"github.com/eduard-zxc/auctionfront/internal/auction/infra/api"
	"github.com/eduard-zxc/auctionfront/internal/auction/infra/channel"
	"github.com/eduard-zxc/auctionfront/internal/session"
	"github.com/eduard-zxc/auctionfront/internal/shared/config"
	"github.com/eduard-zxc/auctionfront/internal/shared/logger"
	"github.com/eduard-zxc/auctionfront/internal/shared/notify"
	"go.uber.org/zap"
)

func main() {
	log := logger.GetLogger()
	defer log.Sync()

	cfg := config.Load()

	notes := notify.NewCenter()
	notes.Subscribe(func(n notify.Notice) {
		fmt.Fprintf(os.Stderr, "[%s] %s\n", n.Level, n.Message)
	})

	sess := session.New(session.Config{
		TokenURL:     cfg.TokenURL,
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Audience:     cfg.Audience,
		RolesClaim:   cfg.RolesClaim,
		AdminRole:    cfg.AdminRole,
	})
	client := api.NewClient(cfg.APIBaseURL)
	channels := domain.ChannelFactory(func(auctionID string, onBid func(domain.Bid)) domain.BidChannel {
		return channel.NewManager(cfg.HubURL, auctionID, onBid)
	})

	app := &cli{cfg: cfg, api: client, sess: sess, channels: channels, notes: notes}

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	ctx := context.Background()
	var err error
	switch os.Args[1] {
	case "list":
		err = app.list(ctx, os.Args[2:])
	case "watch":
		err = app.watch(ctx, os.Args[2:])
	case "bid":
		err = app.bid(ctx, os.Args[2:])
	case "create":
		err = app.create(ctx, os.Args[2:])
	case "categories":
		err = app.categories(ctx)
	case "profile":
		err = app.profile(ctx, os.Args[2:])
	case "auditlogs":
		err = app.auditlogs(ctx, os.Args[2:])
	case "users":
		err = app.users(ctx)
	case "category":
		err = app.category(ctx, os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Error("command failed", zap.String("command", os.Args[1]), zap.Error(err))
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: auctionfront <command> [flags]

commands:
  list        browse auctions with filters
  watch       follow one auction's live bid feed
  bid         place a bid on an auction
  create      create a new auction
  categories  list categories
  profile     show profile, bids, wins and selling history
  auditlogs   page through admin audit logs
  users       list registered users (admin)
  category    manage categories: create, rename, delete (admin)`)
}

type cli struct {
	cfg      *config.Config
	api      *api.Client
	sess     *session.Session
	channels domain.ChannelFactory
	notes    *notify.Center
}

func (c *cli) list(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	category := fs.String("category", "", "category id, empty for all")
	min := fs.Float64("min", domain.DefaultMinPrice, "minimum price")
	max := fs.Float64("max", domain.DefaultMaxPrice, "maximum price")
	active := fs.Bool("active", false, "only active auctions")
	ended := fs.Bool("ended", false, "only ended auctions")
	sortBy := fs.String("sort", "", "sort column, empty for server default")
	order := fs.String("order", domain.SortOrderAsc, "sort order: asc or desc")
	title := fs.String("title", "", "title search")
	if err := fs.Parse(args); err != nil {
		return err
	}

	filter := domain.NewFilterState()
	filter.CategoryID = *category
	filter.SetPriceRange(*min, *max)
	filter.Status = domain.StatusFilter{Active: *active, Ended: *ended}
	filter.SortBy = *sortBy
	filter.SortOrder = *order
	filter.Title = *title

	view := application.NewListingView(c.api, c.sess, c.notes)
	defer view.Close()
	if err := view.SetFilter(ctx, filter); err != nil {
		return err
	}

	now := time.Now()
	for _, a := range view.Auctions() {
		label := "Current Bid"
		if a.StatusAt(now) == domain.StatusEnded {
			label = "Final Bid"
		}
		fmt.Printf("%s  %-30s  %s: $%.2f  [%s]\n", a.ID, a.Title, label, a.CurrentPrice(), a.StatusAt(now))
	}
	fmt.Printf("%d of %d auctions\n", len(view.Auctions()), view.Total())
	return nil
}

func (c *cli) watch(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: auctionfront watch <auction-id>")
	}
	auctionID := args[0]

	view := application.NewDetailView(c.api, c.sess, c.channels, c.notes)
	defer view.Close()
	if err := view.Open(ctx, auctionID); err != nil {
		return err
	}

	auction, _ := view.Auction()
	fmt.Printf("%s\n%s\n", auction.Title, auction.Description)
	fmt.Printf("Current Bid: $%.2f\n", view.CurrentPrice())

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	seen := len(view.Bids())
	for {
		select {
		case <-quit:
			return nil
		case <-ticker.C:
			bids := view.Bids()
			for _, b := range bids[seen:] {
				fmt.Printf("bid  $%.2f  by %s  at %s\n", b.Amount, b.UserID, b.PlacedAt.Format(time.RFC3339))
			}
			if len(bids) > seen {
				fmt.Printf("Current Bid: $%.2f\n", view.CurrentPrice())
			}
			seen = len(bids)
		}
	}
}

func (c *cli) bid(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("bid", flag.ExitOnError)
	amount := fs.Float64("amount", 0, "bid amount")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("usage: auctionfront bid -amount <n> <auction-id>")
	}
	auctionID := fs.Arg(0)

	profile := application.NewProfileView(c.api, c.sess, c.notes)
	userID, err := profile.UserID(ctx)
	if err != nil {
		return err
	}

	view := application.NewDetailView(c.api, c.sess, c.channels, c.notes)
	defer view.Close()
	if err := view.Open(ctx, auctionID); err != nil {
		return err
	}

	if err := view.SubmitBid(ctx, *amount, userID); err != nil {
		return err
	}
	fmt.Printf("bid of $%.2f submitted on %s\n", *amount, auctionID)
	return nil
}

func (c *cli) create(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("create", flag.ExitOnError)
	title := fs.String("title", "", "auction title")
	description := fs.String("description", "", "auction description")
	price := fs.Float64("price", 0, "starting price")
	category := fs.String("category", "", "category id")
	start := fs.String("start", "", "start time, RFC3339")
	end := fs.String("end", "", "end time, RFC3339")
	image := fs.String("image", "", "path to an image file to attach")
	if err := fs.Parse(args); err != nil {
		return err
	}

	startTime, err := time.Parse(time.RFC3339, *start)
	if err != nil {
		return fmt.Errorf("parse -start: %w", err)
	}
	endTime, err := time.Parse(time.RFC3339, *end)
	if err != nil {
		return fmt.Errorf("parse -end: %w", err)
	}

	draft := domain.NewAuctionDraft(*title, *description, *price, *category, startTime, endTime)

	images := map[string][]byte{}
	if *image != "" {
		content, err := os.ReadFile(*image)
		if err != nil {
			return fmt.Errorf("read image %s: %w", *image, err)
		}
		images[*image] = content
	}

	editor := application.NewAuctionEditor(c.api, c.sess, c.notes)
	auction, err := editor.Create(ctx, draft, images)
	if err != nil {
		return err
	}
	fmt.Printf("created auction %s\n", auction.ID)
	return nil
}

func (c *cli) categories(ctx context.Context) error {
	editor := application.NewAuctionEditor(c.api, c.sess, c.notes)
	categories, err := editor.Categories(ctx)
	if err != nil {
		return err
	}
	for _, cat := range categories {
		fmt.Printf("%s  %s\n", cat.ID, cat.Name)
	}
	return nil
}

func (c *cli) profile(ctx context.Context, args []string) error {
	view := application.NewProfileView(c.api, c.sess, c.notes)

	section := ""
	if len(args) > 0 {
		section = args[0]
	}

	switch section {
	case "bids":
		bids, err := view.MyBids(ctx)
		if err != nil {
			return err
		}
		for _, b := range bids {
			fmt.Printf("%s  $%.2f  at %s\n", b.AuctionID, b.Amount, b.PlacedAt.Format(time.RFC3339))
		}
	case "won":
		auctions, err := view.WonAuctions(ctx)
		if err != nil {
			return err
		}
		for _, a := range auctions {
			fmt.Printf("%s  %s  $%.2f\n", a.ID, a.Title, a.CurrentPrice())
		}
	case "selling":
		auctions, err := view.SellingHistory(ctx)
		if err != nil {
			return err
		}
		for _, a := range auctions {
			fmt.Printf("%s  %s  $%.2f\n", a.ID, a.Title, a.CurrentPrice())
		}
	default:
		profile, err := view.EnsureProfile(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("id: %s\nname: %s\nemail: %s\n", profile.ID, profile.Name, profile.Email)
	}
	return nil
}

func (c *cli) auditlogs(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("auditlogs", flag.ExitOnError)
	page := fs.Int("page", 1, "page number")
	if err := fs.Parse(args); err != nil {
		return err
	}

	view := application.NewAdminView(c.api, c.sess, c.sess, c.notes, c.cfg.AuditPageSize)
	logs, err := view.AuditLogs(ctx, *page)
	if err != nil {
		return err
	}
	for _, entry := range logs.Items {
		fmt.Printf("%s  %-10s  %s/%s  by %s\n",
			entry.Timestamp.Format(time.RFC3339), entry.Action, entry.EntityType, entry.EntityID, entry.UserID)
	}
	fmt.Printf("page %d, %d entries total\n", *page, logs.Total)
	return nil
}

func (c *cli) users(ctx context.Context) error {
	view := application.NewAdminView(c.api, c.sess, c.sess, c.notes, c.cfg.AuditPageSize)
	users, err := view.Users(ctx)
	if err != nil {
		return err
	}
	for _, u := range users {
		status := "active"
		if !u.IsActive {
			status = "banned"
		}
		fmt.Printf("%s  %-25s  %-15s  %-8s  %s\n", u.ID, u.Email, u.Username, u.Role, status)
	}
	return nil
}

func (c *cli) category(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: auctionfront category <create|rename|delete> ...")
	}
	view := application.NewAdminView(c.api, c.sess, c.sess, c.notes, c.cfg.AuditPageSize)

	switch args[0] {
	case "create":
		if len(args) < 2 {
			return fmt.Errorf("usage: auctionfront category create <name>")
		}
		category, err := view.CreateCategory(ctx, args[1])
		if err != nil {
			return err
		}
		fmt.Printf("created category %s  %s\n", category.ID, category.Name)
	case "rename":
		if len(args) < 3 {
			return fmt.Errorf("usage: auctionfront category rename <id> <name>")
		}
		category, err := view.RenameCategory(ctx, args[1], args[2])
		if err != nil {
			return err
		}
		fmt.Printf("renamed category %s  %s\n", category.ID, category.Name)
	case "delete":
		if len(args) < 2 {
			return fmt.Errorf("usage: auctionfront category delete <id>")
		}
		if err := view.DeleteCategory(ctx, args[1]); err != nil {
			return err
		}
		fmt.Printf("deleted category %s\n", args[1])
	default:
		return fmt.Errorf("usage: auctionfront category <create|rename|delete> ...")
	}
	return nil
}
