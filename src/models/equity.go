package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Equity is reference data: its price only changes through administrative
// updates, never through trading activity.
type Equity struct {
	ID             int64           `db:"id"`
	Name           string          `db:"name"`
	Price          decimal.Decimal `db:"price"`
	LastModifiedOn time.Time       `db:"last_modified_on"`
}
