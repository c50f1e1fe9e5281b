package game

import "errors"

// Setup errors.
var (
	ErrInvalidPlayerCount = errors.New("player count must be 1, 2 or 4")
	ErrAlreadyStarted     = errors.New("match already set up")
)

// Build request rejections. None of them change match state.
var (
	ErrNotInMarket       = errors.New("not in a market turn")
	ErrNoSelection       = errors.New("no structure selected")
	ErrUnknownTemplate   = errors.New("unknown structure template")
	ErrOutOfBounds       = errors.New("cell out of bounds")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrTerritoryDenied   = errors.New("cell inside an enemy king's territory")
	ErrCellOccupied      = errors.New("cell occupied by another structure")
	ErrGameOver          = errors.New("match is over")
)

// ErrNotSetUp is returned by operations that need kings on the board.
var ErrNotSetUp = errors.New("match not set up")
