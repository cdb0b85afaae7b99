package services

import (
	"context"
	"time"

	"ebroker/src/models"
	"ebroker/src/repositories"
	"ebroker/src/utils"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const (
	tradingOpensAt  = 9 * 3600  // 09:00:00, inclusive
	tradingClosesAt = 17 * 3600 // 17:00:00, inclusive
)

// BrokingService orchestrates buy, sell, fund and balance operations over
// the entity repositories. It is stateless per call; all state lives in the
// store, and each mutating operation runs inside one store transaction with
// the holding write ordered before the balance write.
type BrokingService struct {
	store repositories.Store
}

func NewBrokingService(store repositories.Store) *BrokingService {
	return &BrokingService{store: store}
}

// CanPerformTransaction checks the trading window: time-of-day within
// [09:00:00, 17:00:00] and weekday Monday to Friday. Hours are checked
// before the weekday, so a Saturday 08:00 request reports the hours message.
func (s *BrokingService) CanPerformTransaction(timeStamp string) (bool, error) {
	dateTime, err := utils.ParseTransactionTime(timeStamp)
	if err != nil {
		return false, ErrBadTimeStamp
	}
	seconds := utils.SecondsOfDay(dateTime)
	if seconds < tradingOpensAt || seconds > tradingClosesAt {
		return false, ErrOutsideTradingHours
	}
	if wd := dateTime.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return false, ErrOutsideTradingDays
	}
	return true, nil
}

// BuyEquity buys numOfShares of an equity for a user, debiting
// price*numOfShares from the balance.
func (s *BrokingService) BuyEquity(ctx context.Context, userID, equityID, numOfShares int64, timeStamp string) (string, error) {
	if numOfShares < 0 {
		return "", ErrNegativeBuyShares
	}
	if numOfShares == 0 {
		return "", ErrZeroBuyShares
	}
	if _, err := s.CanPerformTransaction(timeStamp); err != nil {
		return "", err
	}

	err := s.store.WithinTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		user, err := s.store.Users().GetByID(ctx, userID, tx)
		if err != nil {
			return err
		}
		if user == nil {
			return ErrNoSuchUser
		}
		equity, err := s.store.Equities().GetByID(ctx, equityID, tx)
		if err != nil {
			return err
		}
		if equity == nil {
			return ErrNoSuchEquity
		}

		amountToDeduct := equity.Price.Mul(decimal.NewFromInt(numOfShares))
		if user.Balance.LessThan(amountToDeduct) {
			return ErrInsufficientBalance
		}

		// Holding first, balance second: if the holding write fails the
		// balance must remain untouched.
		if err := s.upsertHolding(ctx, tx, userID, equityID, numOfShares); err != nil {
			return err
		}

		user.Balance = user.Balance.Sub(amountToDeduct)
		return s.store.Users().Update(ctx, user, tx)
	})
	if err != nil {
		return "", err
	}

	utils.LoggerFromContext(ctx).WithFields(map[string]interface{}{
		"userId":      userID,
		"equityId":    equityID,
		"numOfShares": numOfShares,
	}).Info("equity bought")
	return "Equity bought successfully", nil
}

func (s *BrokingService) upsertHolding(ctx context.Context, tx pgx.Tx, userID, equityID, numOfShares int64) error {
	mappingID, found, err := s.store.Holdings().GetMappingID(ctx, userID, equityID, tx)
	if err != nil {
		return err
	}
	if found {
		holding, err := s.store.Holdings().GetByID(ctx, mappingID, tx)
		if err != nil {
			return err
		}
		holding.TotalShares += numOfShares
		return s.store.Holdings().Update(ctx, holding, tx)
	}
	holding := &models.Holding{
		UserID:      userID,
		EquityID:    equityID,
		TotalShares: numOfShares,
	}
	return s.store.Holdings().Create(ctx, holding, tx)
}

// SellEquity sells numOfShares of a held equity, crediting
// price*numOfShares to the balance. Selling every held share deletes the
// holding row; a zero-share holding is never persisted.
func (s *BrokingService) SellEquity(ctx context.Context, userID, equityID, numOfShares int64, timeStamp string) (string, error) {
	if numOfShares < 0 {
		return "", ErrNegativeSellShares
	}
	if numOfShares == 0 {
		return "", ErrZeroSellShares
	}
	if _, err := s.CanPerformTransaction(timeStamp); err != nil {
		return "", err
	}

	err := s.store.WithinTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		mappingID, found, err := s.store.Holdings().GetMappingID(ctx, userID, equityID, tx)
		if err != nil {
			return err
		}
		if !found {
			return ErrNoSuchHolding
		}
		holding, err := s.store.Holdings().GetByID(ctx, mappingID, tx)
		if err != nil {
			return err
		}
		if holding.TotalShares < numOfShares {
			return ErrInsufficientShares
		}

		equity, err := s.store.Equities().GetByID(ctx, equityID, tx)
		if err != nil {
			return err
		}
		if equity == nil {
			return ErrNoSuchEquity
		}
		user, err := s.store.Users().GetByID(ctx, userID, tx)
		if err != nil {
			return err
		}
		if user == nil {
			return ErrNoSuchUser
		}
		amountToAdd := equity.Price.Mul(decimal.NewFromInt(numOfShares))

		if holding.TotalShares == numOfShares {
			if err := s.store.Holdings().Delete(ctx, mappingID, tx); err != nil {
				return err
			}
		} else {
			holding.TotalShares -= numOfShares
			if err := s.store.Holdings().Update(ctx, holding, tx); err != nil {
				return err
			}
		}

		user.Balance = user.Balance.Add(amountToAdd)
		return s.store.Users().Update(ctx, user, tx)
	})
	if err != nil {
		return "", err
	}

	utils.LoggerFromContext(ctx).WithFields(map[string]interface{}{
		"userId":      userID,
		"equityId":    equityID,
		"numOfShares": numOfShares,
	}).Info("equity sold")
	return "Equity sold successfully", nil
}

// AddFund credits amount to the user's balance. Negative amounts are
// rejected before any store access.
func (s *BrokingService) AddFund(ctx context.Context, userID int64, amount decimal.Decimal) (string, error) {
	if amount.IsNegative() {
		return "", ErrNegativeAmount
	}

	err := s.store.WithinTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		user, err := s.store.Users().GetByID(ctx, userID, tx)
		if err != nil {
			return err
		}
		if user == nil {
			return ErrNoSuchUser
		}
		user.Balance = user.Balance.Add(amount)
		if err := s.store.Users().Update(ctx, user, tx); err != nil {
			return ErrBalanceUpdateFailed
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	utils.LoggerFromContext(ctx).WithFields(map[string]interface{}{
		"userId": userID,
		"amount": amount.String(),
	}).Info("funds added")
	return "User balance updated successfully", nil
}

// GetBalance returns the user's current balance. Pure read, no mutation.
func (s *BrokingService) GetBalance(ctx context.Context, userID int64) (decimal.Decimal, error) {
	user, err := s.store.Users().GetByID(ctx, userID, nil)
	if err != nil {
		return decimal.Zero, err
	}
	if user == nil {
		return decimal.Zero, ErrNoSuchUser
	}
	return user.Balance, nil
}
