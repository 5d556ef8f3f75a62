package channel

import (
	"time"
)

// MessageType identifies a wire message on the bid hub
type MessageType string

const (
	MessageTypeJoinAuction  MessageType = "join_auction"  // client invoke, subscribe to an auction group
	MessageTypeLeaveAuction MessageType = "leave_auction" // client invoke, unsubscribe on teardown
	MessageTypePlaceBid     MessageType = "place_bid"     // client invoke, fire-and-forget bid submission
	MessageTypeBidReceived  MessageType = "bid_received"  // server push, one per broadcast
	MessageTypeServerError  MessageType = "server_error"  // server push, submission rejected
)

// BaseMessage is the envelope shared by every hub message, the Type field
// drives dispatch
type BaseMessage struct {
	Type MessageType `json:"type"`
}

// JoinAuctionMessage subscribes this connection to one auction's group.
// Rejoining after a reconnect is the client's responsibility, it is not
// implicit in the transport.
type JoinAuctionMessage struct {
	BaseMessage
	Payload struct {
		AuctionID string `json:"auctionId"`
		ClientID  string `json:"clientId"`
	} `json:"payload"`
}

// LeaveAuctionMessage unsubscribes this connection from the auction group
type LeaveAuctionMessage struct {
	BaseMessage
	Payload struct {
		AuctionID string `json:"auctionId"`
		ClientID  string `json:"clientId"`
	} `json:"payload"`
}

// PlaceBidMessage carries a bid submission; the server alone decides
// acceptance and broadcasts the result
type PlaceBidMessage struct {
	BaseMessage
	Payload struct {
		AuctionID string  `json:"auctionId"`
		UserID    string  `json:"userId"`
		Amount    float64 `json:"amount"`
	} `json:"payload"`
}

// BidReceivedMessage is the server broadcast for an accepted bid
type BidReceivedMessage struct {
	BaseMessage
	Payload struct {
		BidID     string    `json:"bidId,omitempty"`
		AuctionID string    `json:"auctionId"`
		UserID    string    `json:"userId"`
		Amount    float64   `json:"amount"`
		PlacedAt  time.Time `json:"placedAt"`
	} `json:"payload"`
}

// ServerErrorMessage reports a rejected invoke
type ServerErrorMessage struct {
	BaseMessage
	Payload struct {
		Error string `json:"error"`
	} `json:"payload"`
}
