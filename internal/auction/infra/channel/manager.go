package channel

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/eduard-zxc/auctionfront/internal/auction/domain"
	"github.com/eduard-zxc/auctionfront/internal/shared/logger"
	"github.com/fasthttp/websocket"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var log = logger.GetLogger()

// Constants for WebSocket configuration (adjust as needed)
const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Maximum message size allowed from the peer.
	maxMessageSize = 4096

	// Pause between reconnect attempts after a dial or read failure.
	defaultRetryInterval = 3 * time.Second
)

// Conn is the subset of the websocket connection the manager needs. The
// fasthttp websocket Conn satisfies it.
type Conn interface {
	ReadMessage() (int, []byte, error)
	WriteMessage(messageType int, data []byte) error
	WriteControl(messageType int, data []byte, deadline time.Time) error
	SetReadLimit(limit int64)
	SetReadDeadline(t time.Time) error
	SetWriteDeadline(t time.Time) error
	SetPongHandler(h func(appData string) error)
	Close() error
}

// DialFunc establishes one hub connection
type DialFunc func(ctx context.Context) (Conn, error)

// Manager owns one logical subscription to an auction's event channel: it
// dials the hub, joins the auction group, forwards inbound bid events in
// arrival order and re-dials on transient loss. Rejoining after a reconnect
// is explicit, the group membership does not survive the transport. Failure
// to establish the channel degrades silently: the view keeps working on
// last-fetched data and simply misses live updates until a retry succeeds.
type Manager struct {
	auctionID     string
	clientID      string
	dial          DialFunc
	onBid         func(domain.Bid)
	retryInterval time.Duration

	mu     sync.Mutex
	conn   Conn
	cancel context.CancelFunc
	opened bool
	closed bool

	// serializes data-frame writes (join/leave/place_bid)
	wmu sync.Mutex
}

// NewManager creates the subscription manager for one auction. Nothing is
// dialed until Open is called.
func NewManager(hubURL, auctionID string, onBid func(domain.Bid)) *Manager {
	return &Manager{
		auctionID: auctionID,
		clientID:  uuid.New().String(),
		onBid:     onBid,
		dial: func(ctx context.Context) (Conn, error) {
			c, _, err := websocket.DefaultDialer.DialContext(ctx, hubURL, nil)
			if err != nil {
				return nil, fmt.Errorf("channel: dial %s: %w", hubURL, err)
			}
			return c, nil
		},
		retryInterval: defaultRetryInterval,
	}
}

// Open starts the connect/join/read loop in the background. Safe to call
// once per manager; later calls and calls after Close are no-ops.
func (m *Manager) Open(ctx context.Context) {
	m.mu.Lock()
	if m.opened || m.closed {
		m.mu.Unlock()
		return
	}
	m.opened = true
	runCtx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.mu.Unlock()

	go m.run(runCtx)
}

// SubmitBid sends a fire-and-forget bid invoke over the channel. The caller
// gets ErrChannelClosed when no connection is up and may fall back to the
// REST endpoint; acceptance is never awaited here.
func (m *Manager) SubmitBid(amount float64, userID string) error {
	m.mu.Lock()
	conn := m.conn
	m.mu.Unlock()
	if conn == nil {
		return domain.ErrChannelClosed
	}

	msg := PlaceBidMessage{BaseMessage: BaseMessage{Type: MessageTypePlaceBid}}
	msg.Payload.AuctionID = m.auctionID
	msg.Payload.UserID = userID
	msg.Payload.Amount = amount

	if err := m.write(conn, msg); err != nil {
		return fmt.Errorf("channel: submit bid: %w", err)
	}
	log.Debug("bid submitted over channel",
		zap.String("auctionID", m.auctionID),
		zap.String("userID", userID),
		zap.Float64("amount", amount),
	)
	return nil
}

// Close invokes leave, drops the connection and stops the reconnect loop.
// Idempotent; the manager cannot be reopened afterwards.
func (m *Manager) Close() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	cancel := m.cancel
	conn := m.conn
	m.conn = nil
	m.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if conn != nil {
		// best effort, the server also drops membership on disconnect
		leave := LeaveAuctionMessage{BaseMessage: BaseMessage{Type: MessageTypeLeaveAuction}}
		leave.Payload.AuctionID = m.auctionID
		leave.Payload.ClientID = m.clientID
		if err := m.write(conn, leave); err != nil {
			log.Debug("leave invoke failed on close", zap.String("auctionID", m.auctionID), zap.Error(err))
		}
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
		_ = conn.Close()
	}
	log.Info("bid channel closed", zap.String("auctionID", m.auctionID), zap.String("clientID", m.clientID))
}

func (m *Manager) run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}

		conn, err := m.dial(ctx)
		if err != nil {
			log.Warn("bid hub dial failed, will retry",
				zap.String("auctionID", m.auctionID),
				zap.Error(err),
			)
			if !m.pause(ctx) {
				return
			}
			continue
		}

		// group membership is per connection, join again every time
		if err := m.join(conn); err != nil {
			log.Warn("join invoke failed, will retry",
				zap.String("auctionID", m.auctionID),
				zap.Error(err),
			)
			_ = conn.Close()
			if !m.pause(ctx) {
				return
			}
			continue
		}

		if !m.adopt(conn) {
			_ = conn.Close()
			return
		}
		log.Info("joined auction channel",
			zap.String("auctionID", m.auctionID),
			zap.String("clientID", m.clientID),
		)

		m.readPump(conn)
		m.release(conn)
		_ = conn.Close()

		if ctx.Err() != nil {
			return
		}
		log.Info("bid hub connection lost, reconnecting", zap.String("auctionID", m.auctionID))
		if !m.pause(ctx) {
			return
		}
	}
}

// readPump delivers inbound events until the connection fails. Runs on the
// manager goroutine; there is at most one reader per connection.
func (m *Manager) readPump(conn Conn) {
	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn("channel read error", zap.String("auctionID", m.auctionID), zap.Error(err))
			} else {
				log.Debug("channel closed by peer", zap.String("auctionID", m.auctionID), zap.Error(err))
			}
			return
		}
		m.dispatch(data)
	}
}

// dispatch decodes one inbound frame and forwards bid events. Events are
// delivered at most once per broadcast, in arrival order; no ordering by
// amount is assumed or enforced.
func (m *Manager) dispatch(data []byte) {
	var base BaseMessage
	if err := json.Unmarshal(data, &base); err != nil {
		log.Warn("discarding malformed channel message", zap.String("auctionID", m.auctionID), zap.Error(err))
		return
	}

	switch base.Type {
	case MessageTypeBidReceived:
		var msg BidReceivedMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Warn("discarding malformed bid event", zap.String("auctionID", m.auctionID), zap.Error(err))
			return
		}
		if m.onBid != nil {
			m.onBid(domain.NewBid(
				msg.Payload.BidID,
				msg.Payload.AuctionID,
				msg.Payload.UserID,
				msg.Payload.Amount,
				msg.Payload.PlacedAt,
			))
		}
	case MessageTypeServerError:
		// channel failures degrade silently, log only
		var msg ServerErrorMessage
		if err := json.Unmarshal(data, &msg); err == nil {
			log.Warn("server rejected channel invoke",
				zap.String("auctionID", m.auctionID),
				zap.String("error", msg.Payload.Error),
			)
		}
	default:
		log.Debug("ignoring channel message",
			zap.String("auctionID", m.auctionID),
			zap.String("type", string(base.Type)),
		)
	}
}

func (m *Manager) join(conn Conn) error {
	msg := JoinAuctionMessage{BaseMessage: BaseMessage{Type: MessageTypeJoinAuction}}
	msg.Payload.AuctionID = m.auctionID
	msg.Payload.ClientID = m.clientID
	return m.write(conn, msg)
}

func (m *Manager) write(conn Conn, msg any) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	m.wmu.Lock()
	defer m.wmu.Unlock()
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return fmt.Errorf("write message: %w", err)
	}
	return nil
}

// adopt publishes the live connection for SubmitBid; refused once closed
func (m *Manager) adopt(conn Conn) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return false
	}
	m.conn = conn
	return true
}

func (m *Manager) release(conn Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.conn == conn {
		m.conn = nil
	}
}

// pause waits one retry interval, reporting false when the context ended
func (m *Manager) pause(ctx context.Context) bool {
	t := time.NewTimer(m.retryInterval)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
