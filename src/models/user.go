package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// User holds the cash balance a registered user trades with. Balance must
// never go negative; the broking service enforces that, not the store.
type User struct {
	ID             int64           `db:"id"`
	Name           string          `db:"name"`
	Balance        decimal.Decimal `db:"balance"`
	LastModifiedOn time.Time       `db:"last_modified_on"`
}
