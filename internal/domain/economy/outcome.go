// Package economy defines the engine's typed operation outcomes and the
// randomness sources the engine draws from.
//
// Business-rule failures (not a tenant, quota reached, bad input) are not
// Go errors: every operation result carries an optional Rejection with a
// machine code and the human-readable reason shown to the user. Only store
// or transport failures travel as error values.
package economy

import "fmt"

// Code classifies why an operation was rejected.
type Code string

const (
	CodeNotATenant        Code = "not_a_tenant"
	CodeQuotaExceeded     Code = "quota_exceeded"
	CodeInvalidArgument   Code = "invalid_argument"
	CodeInsufficientFunds Code = "insufficient_funds"
	CodeAlreadyExists     Code = "already_exists"
	CodeAlreadyOwned      Code = "already_owned"
)

// Rejection is a user-facing refusal of an operation.
type Rejection struct {
	Code   Code
	Reason string
}

// Rejectf builds a Rejection with a formatted reason.
func Rejectf(code Code, format string, args ...any) *Rejection {
	return &Rejection{Code: code, Reason: fmt.Sprintf(format, args...)}
}

// CoinSide is the drawn outcome of a coin-flip gamble.
type CoinSide string

const (
	Heads CoinSide = "heads"
	Tails CoinSide = "tails"
)

// Direction selects the sign of an admin floor-space adjustment.
type Direction int

const (
	Increase Direction = iota
	Decrease
)

// WorkResult reports a work shift.
type WorkResult struct {
	Rejection *Rejection
	Name      string
	Job       string
	Earned    int64
	Balance   int64
}

// GambleResult reports a coin-flip bet.
type GambleResult struct {
	Rejection *Rejection
	Name      string
	Drawn     CoinSide
	Win       bool
	Amount    int64
	Balance   int64
	Remaining int
}

// SlotsResult reports a slot roll. Payout is the signed balance delta.
type SlotsResult struct {
	Rejection *Rejection
	Name      string
	Symbols   [3]string
	Win       bool
	Jackpot   bool
	Payout    int64
	Balance   int64
	Remaining int
}

// PurchaseSpec selects one of the two floor-space purchase paths:
// spend Money dollars (converted at the configured rate) or buy Units
// whole square feet. Exactly one field is set.
type PurchaseSpec struct {
	Money int64
	Units int64
}

// PurchaseResult reports a floor-space purchase.
type PurchaseResult struct {
	Rejection  *Rejection
	Name       string
	GainedFt   float64
	FloorSpace float64
	Cost       int64
	Balance    int64
}

// RoleResult reports a role purchase. GrantFailed is set when the balance
// was deducted but the external role assignment failed; the deduction is
// not rolled back.
type RoleResult struct {
	Rejection   *Rejection
	Name        string
	Role        string
	Price       int64
	Balance     int64
	GrantFailed bool
}

// MoveInResult reports an admin move-in. Duplicate move-ins are rejected
// with CodeAlreadyExists and change nothing.
type MoveInResult struct {
	Rejection *Rejection
	Name      string
}

// EvictResult reports an eviction, carrying the removed tenant's name.
type EvictResult struct {
	Rejection *Rejection
	Name      string
}

// AdjustResult reports a random admin floor-space adjustment.
type AdjustResult struct {
	Rejection *Rejection
	Name      string
	Delta     float64
	OldFt     float64
	NewFt     float64
}

// SetFloorResult reports a direct floor-space overwrite.
type SetFloorResult struct {
	Rejection *Rejection
	Name      string
	OldFt     float64
	NewFt     float64
}

// SetBalanceResult reports a direct balance overwrite.
type SetBalanceResult struct {
	Rejection  *Rejection
	Name       string
	OldBalance int64
	NewBalance int64
}

// ComplianceResult reports the penalty applied to a non-landlord who
// attempted a landlord command. Created is true when the actor had no
// record and was forcibly moved in first.
type ComplianceResult struct {
	Name       string
	Created    bool
	Penalty    float64
	FloorSpace float64
}

// RosterEntry is one tenant's line in the public roster.
type RosterEntry struct {
	Name          string
	FloorSpace    float64
	Balance       int64
	GamblesLeft   int
	SlotRollsLeft int
}

// Roster is the full tenant listing. TotalFt sums only positive holdings.
type Roster struct {
	Entries []RosterEntry
	TotalFt float64
}

// StudyResult carries the resolved caller name and the mention tokens
// for the go-study callout.
type StudyResult struct {
	Name     string
	Mentions []string
}

// RoleSetupResult lists catalog roles created on the chat platform.
type RoleSetupResult struct {
	Created []string
}
