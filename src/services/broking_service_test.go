package services_test

import (
	"context"
	"errors"
	"testing"

	"ebroker/src/models"
	"ebroker/src/repositories"
	"ebroker/src/services"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 15/09/2021 was a Wednesday.
const openWindow = "15/09/2021 10:30:00"

func setupService(t *testing.T, balance int64, price int64) (*services.BrokingService, repositories.Store, *models.User, *models.Equity) {
	t.Helper()
	store := repositories.NewMemoryStore()

	user := &models.User{Name: "Himanshu", Balance: decimal.NewFromInt(balance)}
	require.NoError(t, store.Users().Create(context.Background(), user, nil))

	equity := &models.Equity{Name: "TCS", Price: decimal.NewFromInt(price)}
	require.NoError(t, store.Equities().Create(context.Background(), equity, nil))

	return services.NewBrokingService(store), store, user, equity
}

func getBalance(t *testing.T, store repositories.Store, userID int64) decimal.Decimal {
	t.Helper()
	user, err := store.Users().GetByID(context.Background(), userID, nil)
	require.NoError(t, err)
	require.NotNil(t, user)
	return user.Balance
}

func getHolding(t *testing.T, store repositories.Store, userID, equityID int64) (*models.Holding, bool) {
	t.Helper()
	id, found, err := store.Holdings().GetMappingID(context.Background(), userID, equityID, nil)
	require.NoError(t, err)
	if !found {
		return nil, false
	}
	holding, err := store.Holdings().GetByID(context.Background(), id, nil)
	require.NoError(t, err)
	return holding, true
}

func TestCanPerformTransaction(t *testing.T) {
	svc := services.NewBrokingService(repositories.NewMemoryStore())

	tests := []struct {
		name      string
		timeStamp string
		wantErr   error
	}{
		{"weekday mid-window", "15/09/2021 10:30:00", nil},
		{"opening boundary inclusive", "15/09/2021 09:00:00", nil},
		{"closing boundary inclusive", "15/09/2021 17:00:00", nil},
		{"one second before opening", "15/09/2021 08:59:59", services.ErrOutsideTradingHours},
		{"one second after closing", "15/09/2021 17:00:01", services.ErrOutsideTradingHours},
		{"saturday inside hours", "18/09/2021 11:00:00", services.ErrOutsideTradingDays},
		{"sunday inside hours", "19/09/2021 11:00:00", services.ErrOutsideTradingDays},
		// Hours are checked before the weekday, so an out-of-hours weekend
		// request reports the hours message.
		{"sunday outside hours", "19/09/2021 02:00:00", services.ErrOutsideTradingHours},
		{"unparseable timestamp", "2021-09-15 10:30:00", services.ErrBadTimeStamp},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := svc.CanPerformTransaction(tt.timeStamp)
			if tt.wantErr == nil {
				require.NoError(t, err)
				assert.True(t, ok)
			} else {
				assert.False(t, ok)
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestBuyEquity(t *testing.T) {
	ctx := context.Background()

	t.Run("debits balance and creates holding", func(t *testing.T) {
		svc, store, user, equity := setupService(t, 1000, 10)

		message, err := svc.BuyEquity(ctx, user.ID, equity.ID, 30, openWindow)
		require.NoError(t, err)
		assert.Equal(t, "Equity bought successfully", message)

		assert.True(t, getBalance(t, store, user.ID).Equal(decimal.NewFromInt(700)))
		holding, found := getHolding(t, store, user.ID, equity.ID)
		require.True(t, found)
		assert.Equal(t, int64(30), holding.TotalShares)
	})

	t.Run("second buy updates the existing holding row", func(t *testing.T) {
		svc, store, user, equity := setupService(t, 1000, 10)

		_, err := svc.BuyEquity(ctx, user.ID, equity.ID, 30, openWindow)
		require.NoError(t, err)
		_, err = svc.BuyEquity(ctx, user.ID, equity.ID, 20, openWindow)
		require.NoError(t, err)

		holding, found := getHolding(t, store, user.ID, equity.ID)
		require.True(t, found)
		assert.Equal(t, int64(50), holding.TotalShares)
		assert.True(t, getBalance(t, store, user.ID).Equal(decimal.NewFromInt(500)))

		holdings, err := store.Holdings().GetByUserID(ctx, user.ID)
		require.NoError(t, err)
		assert.Len(t, holdings, 1, "one row per (user, equity) pair")
	})

	t.Run("rejects negative shares", func(t *testing.T) {
		svc, store, user, equity := setupService(t, 1000, 10)

		_, err := svc.BuyEquity(ctx, user.ID, equity.ID, -5, openWindow)
		assert.EqualError(t, err, "Provide non negative number of shares to buy")
		assert.True(t, getBalance(t, store, user.ID).Equal(decimal.NewFromInt(1000)))
	})

	t.Run("rejects zero shares with a distinct message", func(t *testing.T) {
		svc, _, user, equity := setupService(t, 1000, 10)

		_, err := svc.BuyEquity(ctx, user.ID, equity.ID, 0, openWindow)
		assert.EqualError(t, err, "Provide minimum one share to buy")
	})

	t.Run("rejects buying outside the trading window", func(t *testing.T) {
		svc, store, user, equity := setupService(t, 1000, 10)

		_, err := svc.BuyEquity(ctx, user.ID, equity.ID, 10, "18/09/2021 11:00:00")
		assert.ErrorIs(t, err, services.ErrOutsideTradingDays)
		assert.True(t, getBalance(t, store, user.ID).Equal(decimal.NewFromInt(1000)))
	})

	t.Run("rejects insufficient balance", func(t *testing.T) {
		svc, store, user, equity := setupService(t, 100, 10)

		_, err := svc.BuyEquity(ctx, user.ID, equity.ID, 11, openWindow)
		assert.EqualError(t, err, "Insufficient balance to buy")
		assert.True(t, getBalance(t, store, user.ID).Equal(decimal.NewFromInt(100)))
		_, found := getHolding(t, store, user.ID, equity.ID)
		assert.False(t, found)
	})

	t.Run("exact balance is sufficient", func(t *testing.T) {
		svc, store, user, equity := setupService(t, 100, 10)

		_, err := svc.BuyEquity(ctx, user.ID, equity.ID, 10, openWindow)
		require.NoError(t, err)
		assert.True(t, getBalance(t, store, user.ID).IsZero())
	})

	t.Run("unknown user", func(t *testing.T) {
		svc, _, _, equity := setupService(t, 1000, 10)

		_, err := svc.BuyEquity(ctx, 999, equity.ID, 10, openWindow)
		assert.EqualError(t, err, "No such user exists")
	})

	t.Run("unknown equity", func(t *testing.T) {
		svc, store, user, _ := setupService(t, 1000, 10)

		_, err := svc.BuyEquity(ctx, user.ID, 999, 10, openWindow)
		assert.EqualError(t, err, "No such equity exists")
		assert.True(t, getBalance(t, store, user.ID).Equal(decimal.NewFromInt(1000)))
	})

	t.Run("failed holding write leaves balance unchanged", func(t *testing.T) {
		_, store, user, equity := setupService(t, 1000, 10)

		faulty := &faultyStore{Store: store}
		svc := services.NewBrokingService(faulty)

		_, err := svc.BuyEquity(ctx, user.ID, equity.ID, 10, openWindow)
		require.Error(t, err)
		assert.True(t, getBalance(t, store, user.ID).Equal(decimal.NewFromInt(1000)))
		_, found := getHolding(t, store, user.ID, equity.ID)
		assert.False(t, found)
	})
}

func TestSellEquity(t *testing.T) {
	ctx := context.Background()

	t.Run("partial sale reduces the holding and credits the balance", func(t *testing.T) {
		svc, store, user, equity := setupService(t, 1000, 10)
		_, err := svc.BuyEquity(ctx, user.ID, equity.ID, 50, openWindow)
		require.NoError(t, err)

		message, err := svc.SellEquity(ctx, user.ID, equity.ID, 20, openWindow)
		require.NoError(t, err)
		assert.Equal(t, "Equity sold successfully", message)

		holding, found := getHolding(t, store, user.ID, equity.ID)
		require.True(t, found)
		assert.Equal(t, int64(30), holding.TotalShares)
		assert.True(t, getBalance(t, store, user.ID).Equal(decimal.NewFromInt(700)))
	})

	t.Run("selling every share deletes the holding row", func(t *testing.T) {
		svc, store, user, equity := setupService(t, 1000, 10)
		_, err := svc.BuyEquity(ctx, user.ID, equity.ID, 50, openWindow)
		require.NoError(t, err)

		_, err = svc.SellEquity(ctx, user.ID, equity.ID, 50, openWindow)
		require.NoError(t, err)

		_, found := getHolding(t, store, user.ID, equity.ID)
		assert.False(t, found, "zero-share holdings must not exist")
		assert.True(t, getBalance(t, store, user.ID).Equal(decimal.NewFromInt(1000)))
	})

	t.Run("buy then sell round trip restores the balance exactly", func(t *testing.T) {
		svc, store, user, equity := setupService(t, 1100, 10)

		_, err := svc.BuyEquity(ctx, user.ID, equity.ID, 100, openWindow)
		require.NoError(t, err)
		assert.True(t, getBalance(t, store, user.ID).Equal(decimal.NewFromInt(100)))
		holding, found := getHolding(t, store, user.ID, equity.ID)
		require.True(t, found)
		assert.Equal(t, int64(100), holding.TotalShares)

		_, err = svc.SellEquity(ctx, user.ID, equity.ID, 100, openWindow)
		require.NoError(t, err)
		assert.True(t, getBalance(t, store, user.ID).Equal(decimal.NewFromInt(1100)))
		_, found = getHolding(t, store, user.ID, equity.ID)
		assert.False(t, found)
	})

	t.Run("rejects negative shares", func(t *testing.T) {
		svc, _, user, equity := setupService(t, 1000, 10)

		_, err := svc.SellEquity(ctx, user.ID, equity.ID, -5, openWindow)
		assert.EqualError(t, err, "Provide non negative number of shares to sell")
	})

	t.Run("rejects zero shares with a distinct message", func(t *testing.T) {
		svc, _, user, equity := setupService(t, 1000, 10)

		_, err := svc.SellEquity(ctx, user.ID, equity.ID, 0, openWindow)
		assert.EqualError(t, err, "Provide minimum one share to sell")
	})

	t.Run("rejects selling outside the trading window", func(t *testing.T) {
		svc, _, user, equity := setupService(t, 1000, 10)

		_, err := svc.SellEquity(ctx, user.ID, equity.ID, 10, "19/09/2021 11:00:00")
		assert.ErrorIs(t, err, services.ErrOutsideTradingDays)
	})

	t.Run("rejects selling an equity the user does not hold", func(t *testing.T) {
		svc, _, user, equity := setupService(t, 1000, 10)

		_, err := svc.SellEquity(ctx, user.ID, equity.ID, 10, openWindow)
		assert.EqualError(t, err, "User does not have selected equity")
	})

	t.Run("rejects selling more shares than held", func(t *testing.T) {
		svc, store, user, equity := setupService(t, 1000, 10)
		_, err := svc.BuyEquity(ctx, user.ID, equity.ID, 10, openWindow)
		require.NoError(t, err)

		_, err = svc.SellEquity(ctx, user.ID, equity.ID, 11, openWindow)
		assert.EqualError(t, err, "Insufficient shares to sell")

		holding, found := getHolding(t, store, user.ID, equity.ID)
		require.True(t, found)
		assert.Equal(t, int64(10), holding.TotalShares)
	})
}

func TestAddFund(t *testing.T) {
	ctx := context.Background()

	t.Run("credits the balance", func(t *testing.T) {
		svc, store, user, _ := setupService(t, 1000, 10)

		message, err := svc.AddFund(ctx, user.ID, decimal.NewFromInt(250))
		require.NoError(t, err)
		assert.Equal(t, "User balance updated successfully", message)
		assert.True(t, getBalance(t, store, user.ID).Equal(decimal.NewFromInt(1250)))
	})

	t.Run("zero amount is allowed", func(t *testing.T) {
		svc, store, user, _ := setupService(t, 1000, 10)

		_, err := svc.AddFund(ctx, user.ID, decimal.Zero)
		require.NoError(t, err)
		assert.True(t, getBalance(t, store, user.ID).Equal(decimal.NewFromInt(1000)))
	})

	t.Run("rejects negative amount without touching the balance", func(t *testing.T) {
		svc, store, user, _ := setupService(t, 1000, 10)

		_, err := svc.AddFund(ctx, user.ID, decimal.NewFromInt(-50))
		assert.EqualError(t, err, "Negative amount cannot be added")
		assert.True(t, getBalance(t, store, user.ID).Equal(decimal.NewFromInt(1000)))
	})

	t.Run("unknown user", func(t *testing.T) {
		svc, _, _, _ := setupService(t, 1000, 10)

		_, err := svc.AddFund(ctx, 999, decimal.NewFromInt(50))
		assert.EqualError(t, err, "No such user exists")
	})
}

func TestGetBalance(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the current balance", func(t *testing.T) {
		svc, _, user, _ := setupService(t, 1000, 10)

		balance, err := svc.GetBalance(ctx, user.ID)
		require.NoError(t, err)
		assert.True(t, balance.Equal(decimal.NewFromInt(1000)))
	})

	t.Run("unknown user yields an error and no partial result", func(t *testing.T) {
		svc, _, _, _ := setupService(t, 1000, 10)

		balance, err := svc.GetBalance(ctx, 999)
		assert.EqualError(t, err, "No such user exists")
		assert.True(t, balance.IsZero())
	})
}

// faultyStore fails every holding write so tests can observe that the
// balance mutation never runs before the holding mutation succeeded.
type faultyStore struct {
	repositories.Store
}

func (s *faultyStore) Holdings() repositories.HoldingRepository {
	return &faultyHoldingRepo{HoldingRepository: s.Store.Holdings()}
}

type faultyHoldingRepo struct {
	repositories.HoldingRepository
}

func (r *faultyHoldingRepo) Create(context.Context, *models.Holding, pgx.Tx) error {
	return errors.New("holding write failed")
}

func (r *faultyHoldingRepo) Update(context.Context, *models.Holding, pgx.Tx) error {
	return errors.New("holding write failed")
}
