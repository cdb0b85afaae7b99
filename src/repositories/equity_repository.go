package repositories

import (
	"context"

	"ebroker/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type EquityRepository interface {
	// GetByID returns (nil, nil) when no such equity exists.
	GetByID(ctx context.Context, id int64, tx pgx.Tx) (*models.Equity, error)
	GetAll(ctx context.Context) ([]models.Equity, error)
	Create(ctx context.Context, e *models.Equity, tx pgx.Tx) error
	Update(ctx context.Context, e *models.Equity, tx pgx.Tx) error
	Delete(ctx context.Context, id int64, tx pgx.Tx) error
}

type equityRepo struct {
	db *pgxpool.Pool
}

func NewEquityRepository(db *pgxpool.Pool) EquityRepository {
	return &equityRepo{db: db}
}

func (r *equityRepo) q(tx pgx.Tx) querier {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *equityRepo) GetByID(ctx context.Context, id int64, tx pgx.Tx) (*models.Equity, error) {
	var e models.Equity
	err := r.q(tx).QueryRow(ctx,
		`SELECT id, name, price, last_modified_on FROM equities WHERE id = $1`,
		id).Scan(&e.ID, &e.Name, &e.Price, &e.LastModifiedOn)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, wrapStorage(err)
	}
	return &e, nil
}

func (r *equityRepo) GetAll(ctx context.Context) ([]models.Equity, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, price, last_modified_on FROM equities ORDER BY id`)
	if err != nil {
		return nil, wrapStorage(err)
	}
	defer rows.Close()

	var equities []models.Equity
	for rows.Next() {
		var e models.Equity
		if err := rows.Scan(&e.ID, &e.Name, &e.Price, &e.LastModifiedOn); err != nil {
			return nil, wrapStorage(err)
		}
		equities = append(equities, e)
	}
	return equities, wrapStorage(rows.Err())
}

func (r *equityRepo) Create(ctx context.Context, e *models.Equity, tx pgx.Tx) error {
	err := r.q(tx).QueryRow(ctx,
		`INSERT INTO equities (name, price, last_modified_on) VALUES ($1, $2, now())
		RETURNING id, last_modified_on`,
		e.Name, e.Price).Scan(&e.ID, &e.LastModifiedOn)
	return wrapStorage(err)
}

func (r *equityRepo) Update(ctx context.Context, e *models.Equity, tx pgx.Tx) error {
	_, err := r.q(tx).Exec(ctx,
		`UPDATE equities SET name = $1, price = $2, last_modified_on = now() WHERE id = $3`,
		e.Name, e.Price, e.ID)
	return wrapStorage(err)
}

func (r *equityRepo) Delete(ctx context.Context, id int64, tx pgx.Tx) error {
	_, err := r.q(tx).Exec(ctx, `DELETE FROM equities WHERE id = $1`, id)
	return wrapStorage(err)
}
