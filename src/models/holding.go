package models

import (
	"time"
)

// Holding records how many shares of one equity one user owns. At most one
// row exists per (UserID, EquityID) pair, and a row with zero shares is
// deleted rather than persisted.
type Holding struct {
	ID             int64     `db:"id"`
	UserID         int64     `db:"user_id"`
	EquityID       int64     `db:"equity_id"`
	TotalShares    int64     `db:"total_shares"`
	LastModifiedOn time.Time `db:"last_modified_on"`
}
