package game

import "fmt"

// Ledger holds per-seat money. Presenters render it; the match reads and
// writes it through this interface only.
type Ledger interface {
	Balance(player int) int
	SetBalance(player, amount int)
	// MarkEliminated freezes the seat. Its balance renders as "-".
	MarkEliminated(player int)
	Eliminated(player int) bool
}

// MemoryLedger is the in-process ledger used by every presenter.
type MemoryLedger struct {
	balances   [MaxPlayers]int
	eliminated [MaxPlayers]bool
}

// NewMemoryLedger creates a ledger with every seat at zero.
func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{}
}

func validSeat(p int) bool { return p >= 0 && p < MaxPlayers }

func (l *MemoryLedger) Balance(player int) int {
	if !validSeat(player) {
		return 0
	}
	return l.balances[player]
}

func (l *MemoryLedger) SetBalance(player, amount int) {
	if !validSeat(player) {
		return
	}
	l.balances[player] = amount
}

func (l *MemoryLedger) MarkEliminated(player int) {
	if !validSeat(player) {
		return
	}
	l.eliminated[player] = true
}

func (l *MemoryLedger) Eliminated(player int) bool {
	return validSeat(player) && l.eliminated[player]
}

// Display is the money counter text for a seat.
func (l *MemoryLedger) Display(player int) string {
	return LedgerDisplay(l, player)
}

// LedgerDisplay formats a seat's counter for any Ledger.
func LedgerDisplay(l Ledger, player int) string {
	if l.Eliminated(player) {
		return "-"
	}
	return fmt.Sprintf("%d€", l.Balance(player))
}
