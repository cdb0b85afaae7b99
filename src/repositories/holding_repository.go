package repositories

import (
	"context"

	"ebroker/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type HoldingRepository interface {
	// GetByID returns (nil, nil) when no such holding exists.
	GetByID(ctx context.Context, id int64, tx pgx.Tx) (*models.Holding, error)
	// GetMappingID looks up the holding row for a (user, equity) pair; the
	// boolean reports whether one exists. The service uses it to decide
	// between inserting a new holding and updating the existing one.
	GetMappingID(ctx context.Context, userID, equityID int64, tx pgx.Tx) (int64, bool, error)
	GetByUserID(ctx context.Context, userID int64) ([]models.Holding, error)
	Create(ctx context.Context, h *models.Holding, tx pgx.Tx) error
	Update(ctx context.Context, h *models.Holding, tx pgx.Tx) error
	Delete(ctx context.Context, id int64, tx pgx.Tx) error
}

type holdingRepo struct {
	db *pgxpool.Pool
}

func NewHoldingRepository(db *pgxpool.Pool) HoldingRepository {
	return &holdingRepo{db: db}
}

func (r *holdingRepo) q(tx pgx.Tx) querier {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *holdingRepo) GetByID(ctx context.Context, id int64, tx pgx.Tx) (*models.Holding, error) {
	var h models.Holding
	err := r.q(tx).QueryRow(ctx,
		`SELECT id, user_id, equity_id, total_shares, last_modified_on
		FROM holdings WHERE id = $1`,
		id).Scan(&h.ID, &h.UserID, &h.EquityID, &h.TotalShares, &h.LastModifiedOn)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, wrapStorage(err)
	}
	return &h, nil
}

func (r *holdingRepo) GetMappingID(ctx context.Context, userID, equityID int64, tx pgx.Tx) (int64, bool, error) {
	var id int64
	err := r.q(tx).QueryRow(ctx,
		`SELECT id FROM holdings WHERE user_id = $1 AND equity_id = $2`,
		userID, equityID).Scan(&id)
	if err == pgx.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, wrapStorage(err)
	}
	return id, true, nil
}

func (r *holdingRepo) GetByUserID(ctx context.Context, userID int64) ([]models.Holding, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, equity_id, total_shares, last_modified_on
		FROM holdings WHERE user_id = $1 ORDER BY equity_id`,
		userID)
	if err != nil {
		return nil, wrapStorage(err)
	}
	defer rows.Close()

	var holdings []models.Holding
	for rows.Next() {
		var h models.Holding
		if err := rows.Scan(&h.ID, &h.UserID, &h.EquityID, &h.TotalShares, &h.LastModifiedOn); err != nil {
			return nil, wrapStorage(err)
		}
		holdings = append(holdings, h)
	}
	return holdings, wrapStorage(rows.Err())
}

func (r *holdingRepo) Create(ctx context.Context, h *models.Holding, tx pgx.Tx) error {
	err := r.q(tx).QueryRow(ctx,
		`INSERT INTO holdings (user_id, equity_id, total_shares, last_modified_on)
		VALUES ($1, $2, $3, now())
		RETURNING id, last_modified_on`,
		h.UserID, h.EquityID, h.TotalShares).Scan(&h.ID, &h.LastModifiedOn)
	return wrapStorage(err)
}

func (r *holdingRepo) Update(ctx context.Context, h *models.Holding, tx pgx.Tx) error {
	_, err := r.q(tx).Exec(ctx,
		`UPDATE holdings SET user_id = $1, equity_id = $2, total_shares = $3,
		last_modified_on = now() WHERE id = $4`,
		h.UserID, h.EquityID, h.TotalShares, h.ID)
	return wrapStorage(err)
}

func (r *holdingRepo) Delete(ctx context.Context, id int64, tx pgx.Tx) error {
	_, err := r.q(tx).Exec(ctx, `DELETE FROM holdings WHERE id = $1`, id)
	return wrapStorage(err)
}
