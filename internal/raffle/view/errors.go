package view

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

var (
	// ErrUnsupportedNetwork means the connected chain has no Raffle deployment. It is
	// a display branch, not a failure.
	ErrUnsupportedNetwork = errors.New("no raffle deployed on the connected chain")
	ErrNotConnected       = errors.New("wallet session is not connected")
	ErrNotMounted         = errors.New("raffle view is not mounted")
	ErrMounted            = errors.New("raffle view is already mounted")
	ErrBusy               = errors.New("an entry is already pending")
	// ErrInitialRefresh wraps a refresh failure during Mount. The view is still mounted.
	ErrInitialRefresh = errors.New("initial refresh failed")
)

// QueryError is one failed read query.
type QueryError struct {
	Query string
	Err   error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("query %s failed: %v", e.Query, e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// EventHandlerError is a refresh failure triggered by a WinnerPicked event.
type EventHandlerError struct {
	Winner common.Address
	Err    error
}

func (e *EventHandlerError) Error() string {
	return fmt.Sprintf("refresh after winner %s was picked failed: %v", e.Winner.Hex(), e.Err)
}

func (e *EventHandlerError) Unwrap() error {
	return e.Err
}
