// Package tenant defines the persisted economy record for a single user.
package tenant

import (
	"math"
	"time"
)

// Tenant is one user's closet ledger entry. ID is the chat platform user
// ID and never changes after move-in.
type Tenant struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	FloorSpace  float64   `json:"floor_space"` // ft², may go negative
	Balance     int64     `json:"balance"`     // may go negative (debt)
	Worked      bool      `json:"worked"`      // worked this period
	GambleCount int       `json:"gamble_count"`
	SlotCount   int       `json:"slot_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// InDebt reports whether the tenant owes money, which blocks gambling.
func (t *Tenant) InDebt() bool { return t.Balance < 0 }

// RoundFt rounds a floor-space quantity to the ledger's 3-decimal precision.
func RoundFt(ft float64) float64 {
	return math.Round(ft*1000) / 1000
}
