package repositories

import (
	"context"
	"sort"
	"sync"
	"time"

	"ebroker/src/models"

	"github.com/jackc/pgx/v5"
)

// memoryStore is the map-backed Store used by tests and the "memory"
// backend. WithinTransaction serializes whole operations with a store-wide
// mutex, which gives the same isolation the serializable postgres
// transaction provides. It does not roll back on error: in-memory writes
// cannot fail, and the fixed holding-before-balance write order keeps
// partial states consistent.
type memoryStore struct {
	opMu sync.Mutex

	mu         sync.RWMutex
	users      map[int64]models.User
	equities   map[int64]models.Equity
	holdings   map[int64]models.Holding
	nextUserID int64
	nextEqID   int64
	nextHoldID int64
}

func NewMemoryStore() Store {
	return &memoryStore{
		users:      make(map[int64]models.User),
		equities:   make(map[int64]models.Equity),
		holdings:   make(map[int64]models.Holding),
		nextUserID: 1,
		nextEqID:   1,
		nextHoldID: 1,
	}
}

func (s *memoryStore) Users() UserRepository       { return (*memoryUserRepo)(s) }
func (s *memoryStore) Equities() EquityRepository  { return (*memoryEquityRepo)(s) }
func (s *memoryStore) Holdings() HoldingRepository { return (*memoryHoldingRepo)(s) }

func (s *memoryStore) WithinTransaction(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()
	return fn(ctx, nil)
}

type memoryUserRepo memoryStore

func (r *memoryUserRepo) GetByID(_ context.Context, id int64, _ pgx.Tx) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *memoryUserRepo) GetAll(_ context.Context) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	users := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (r *memoryUserRepo) Create(_ context.Context, u *models.User, _ pgx.Tx) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u.ID = r.nextUserID
	r.nextUserID++
	u.LastModifiedOn = time.Now()
	r.users[u.ID] = *u
	return nil
}

func (r *memoryUserRepo) Update(_ context.Context, u *models.User, _ pgx.Tx) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u.LastModifiedOn = time.Now()
	r.users[u.ID] = *u
	return nil
}

func (r *memoryUserRepo) Delete(_ context.Context, id int64, _ pgx.Tx) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

type memoryEquityRepo memoryStore

func (r *memoryEquityRepo) GetByID(_ context.Context, id int64, _ pgx.Tx) (*models.Equity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.equities[id]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (r *memoryEquityRepo) GetAll(_ context.Context) ([]models.Equity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	equities := make([]models.Equity, 0, len(r.equities))
	for _, e := range r.equities {
		equities = append(equities, e)
	}
	sort.Slice(equities, func(i, j int) bool { return equities[i].ID < equities[j].ID })
	return equities, nil
}

func (r *memoryEquityRepo) Create(_ context.Context, e *models.Equity, _ pgx.Tx) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e.ID = r.nextEqID
	r.nextEqID++
	e.LastModifiedOn = time.Now()
	r.equities[e.ID] = *e
	return nil
}

func (r *memoryEquityRepo) Update(_ context.Context, e *models.Equity, _ pgx.Tx) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e.LastModifiedOn = time.Now()
	r.equities[e.ID] = *e
	return nil
}

func (r *memoryEquityRepo) Delete(_ context.Context, id int64, _ pgx.Tx) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.equities, id)
	return nil
}

type memoryHoldingRepo memoryStore

func (r *memoryHoldingRepo) GetByID(_ context.Context, id int64, _ pgx.Tx) (*models.Holding, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.holdings[id]
	if !ok {
		return nil, nil
	}
	return &h, nil
}

func (r *memoryHoldingRepo) GetMappingID(_ context.Context, userID, equityID int64, _ pgx.Tx) (int64, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, h := range r.holdings {
		if h.UserID == userID && h.EquityID == equityID {
			return h.ID, true, nil
		}
	}
	return 0, false, nil
}

func (r *memoryHoldingRepo) GetByUserID(_ context.Context, userID int64) ([]models.Holding, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var holdings []models.Holding
	for _, h := range r.holdings {
		if h.UserID == userID {
			holdings = append(holdings, h)
		}
	}
	sort.Slice(holdings, func(i, j int) bool { return holdings[i].EquityID < holdings[j].EquityID })
	return holdings, nil
}

func (r *memoryHoldingRepo) Create(_ context.Context, h *models.Holding, _ pgx.Tx) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	h.ID = r.nextHoldID
	r.nextHoldID++
	h.LastModifiedOn = time.Now()
	r.holdings[h.ID] = *h
	return nil
}

func (r *memoryHoldingRepo) Update(_ context.Context, h *models.Holding, _ pgx.Tx) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	h.LastModifiedOn = time.Now()
	r.holdings[h.ID] = *h
	return nil
}

func (r *memoryHoldingRepo) Delete(_ context.Context, id int64, _ pgx.Tx) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.holdings, id)
	return nil
}
