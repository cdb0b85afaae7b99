package schemas

import (
	"github.com/shopspring/decimal"
)

// Request fields are pointers so a handler can tell an absent field from a
// zero value; absence maps to the 400 "'<field>' not found in request"
// contract.

type TradeRequest struct {
	UserID      *int64  `json:"userId"`
	EquityID    *int64  `json:"equityId"`
	NumOfShares *int64  `json:"numOfShares"`
	TimeStamp   *string `json:"timeStamp"`
}

type AddAmountRequest struct {
	UserID *int64           `json:"userId"`
	Amount *decimal.Decimal `json:"amount"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// BalanceResponse echoes the userId query parameter as received.
type BalanceResponse struct {
	UserID  string          `json:"userId"`
	Balance decimal.Decimal `json:"balance"`
}

type UserResponse struct {
	ID      int64           `json:"id"`
	Name    string          `json:"name"`
	Balance decimal.Decimal `json:"balance"`
}

type CreateUserRequest struct {
	Name    *string          `json:"name"`
	Balance *decimal.Decimal `json:"balance"`
}

type EquityResponse struct {
	ID    int64           `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

type CreateEquityRequest struct {
	Name  *string          `json:"name"`
	Price *decimal.Decimal `json:"price"`
}

type UpdateEquityRequest struct {
	Name  *string          `json:"name"`
	Price *decimal.Decimal `json:"price"`
}

type HoldingResponse struct {
	ID          int64 `json:"id"`
	UserID      int64 `json:"userId"`
	EquityID    int64 `json:"equityId"`
	TotalShares int64 `json:"totalShares"`
}
