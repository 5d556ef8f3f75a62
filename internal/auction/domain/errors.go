package domain

import "errors"

var (
	ErrInvalidAmount = errors.New("bid amount must be greater than zero")
	ErrBidTooLow     = errors.New("bid amount does not exceed the current price")
	ErrNotAuthorized = errors.New("not authorized for this action")
	ErrChannelClosed = errors.New("realtime channel is not open")
	ErrStaleResponse = errors.New("response belongs to a superseded view")
	ErrViewClosed    = errors.New("view has been closed")
	ErrInvalidDraft  = errors.New("auction draft is invalid")
	ErrEmptyName     = errors.New("name must not be blank")
)
