package repositories

import (
	"context"

	"ebroker/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository interface {
	// GetByID returns (nil, nil) when no such user exists.
	GetByID(ctx context.Context, id int64, tx pgx.Tx) (*models.User, error)
	GetAll(ctx context.Context) ([]models.User, error)
	Create(ctx context.Context, u *models.User, tx pgx.Tx) error
	Update(ctx context.Context, u *models.User, tx pgx.Tx) error
	Delete(ctx context.Context, id int64, tx pgx.Tx) error
}

type userRepo struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) q(tx pgx.Tx) querier {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *userRepo) GetByID(ctx context.Context, id int64, tx pgx.Tx) (*models.User, error) {
	var u models.User
	err := r.q(tx).QueryRow(ctx,
		`SELECT id, name, balance, last_modified_on FROM users WHERE id = $1`,
		id).Scan(&u.ID, &u.Name, &u.Balance, &u.LastModifiedOn)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, wrapStorage(err)
	}
	return &u, nil
}

func (r *userRepo) GetAll(ctx context.Context) ([]models.User, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, balance, last_modified_on FROM users ORDER BY id`)
	if err != nil {
		return nil, wrapStorage(err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Balance, &u.LastModifiedOn); err != nil {
			return nil, wrapStorage(err)
		}
		users = append(users, u)
	}
	return users, wrapStorage(rows.Err())
}

func (r *userRepo) Create(ctx context.Context, u *models.User, tx pgx.Tx) error {
	err := r.q(tx).QueryRow(ctx,
		`INSERT INTO users (name, balance, last_modified_on) VALUES ($1, $2, now())
		RETURNING id, last_modified_on`,
		u.Name, u.Balance).Scan(&u.ID, &u.LastModifiedOn)
	return wrapStorage(err)
}

func (r *userRepo) Update(ctx context.Context, u *models.User, tx pgx.Tx) error {
	_, err := r.q(tx).Exec(ctx,
		`UPDATE users SET name = $1, balance = $2, last_modified_on = now() WHERE id = $3`,
		u.Name, u.Balance, u.ID)
	return wrapStorage(err)
}

func (r *userRepo) Delete(ctx context.Context, id int64, tx pgx.Tx) error {
	_, err := r.q(tx).Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	return wrapStorage(err)
}
