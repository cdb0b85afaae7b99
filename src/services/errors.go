package services

// The message strings below are part of the service contract: the HTTP layer
// returns them verbatim and the tests pin them.

// ValidationError rejects bad input before any store access happens.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

func NewValidationError(msg string) *ValidationError {
	return &ValidationError{msg: msg}
}

// DomainError reports a business-rule violation: closed trading window,
// unknown rows, insufficient funds or shares.
type DomainError struct {
	msg string
}

func (e *DomainError) Error() string { return e.msg }

func NewDomainError(msg string) *DomainError {
	return &DomainError{msg: msg}
}

var (
	ErrNegativeBuyShares  = NewValidationError("Provide non negative number of shares to buy")
	ErrZeroBuyShares      = NewValidationError("Provide minimum one share to buy")
	ErrNegativeSellShares = NewValidationError("Provide non negative number of shares to sell")
	ErrZeroSellShares     = NewValidationError("Provide minimum one share to sell")
	ErrBadTimeStamp       = NewValidationError("Provide timeStamp in DD/MM/YYYY HH:MM:SS format")
	ErrNegativeAmount     = NewValidationError("Negative amount cannot be added")

	ErrOutsideTradingHours = NewDomainError("You can only buy an equity between 9am and 5pm")
	ErrOutsideTradingDays  = NewDomainError("You can only buy an equity between Monday and Friday")
	ErrInsufficientBalance = NewDomainError("Insufficient balance to buy")
	ErrInsufficientShares  = NewDomainError("Insufficient shares to sell")
	ErrNoSuchHolding       = NewDomainError("User does not have selected equity")
	ErrNoSuchUser          = NewDomainError("No such user exists")
	ErrNoSuchEquity        = NewDomainError("No such equity exists")
	ErrBalanceUpdateFailed = NewDomainError("Some error occurred while updating user balance")
)
