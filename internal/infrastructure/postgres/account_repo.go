package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sinclaire-white/vehicle-renting-server/internal/apperror"
	"github.com/sinclaire-white/vehicle-renting-server/internal/domain/account"
)

type AccountRepository struct {
	pool *pgxpool.Pool
}

func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

func (r *AccountRepository) Create(ctx context.Context, a *account.Account) error {
	const sql = `
		INSERT INTO accounts (name, email, password, phone, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := pick(ctx, r.pool).QueryRow(ctx, sql,
		a.Name, a.Email, a.PasswordHash, a.Phone, a.Role,
	).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.New(apperror.KindConflict, "Email already in use")
		}
		return fmt.Errorf("insert account: %w", err)
	}

	return nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id int64) (*account.Account, error) {
	const sql = `
		SELECT id, name, email, password, phone, role, created_at
		FROM accounts
		WHERE id = $1
	`

	var a account.Account
	err := pick(ctx, r.pool).QueryRow(ctx, sql, id).Scan(
		&a.ID, &a.Name, &a.Email, &a.PasswordHash, &a.Phone, &a.Role, &a.CreatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, apperror.New(apperror.KindNotFound, "User not found")
		}
		return nil, fmt.Errorf("get account by id: %w", err)
	}

	return &a, nil
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*account.Account, error) {
	const sql = `
		SELECT id, name, email, password, phone, role, created_at
		FROM accounts
		WHERE email = $1
	`

	var a account.Account
	err := pick(ctx, r.pool).QueryRow(ctx, sql, email).Scan(
		&a.ID, &a.Name, &a.Email, &a.PasswordHash, &a.Phone, &a.Role, &a.CreatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, apperror.New(apperror.KindNotFound, "User not found")
		}
		return nil, fmt.Errorf("get account by email: %w", err)
	}

	return &a, nil
}

func (r *AccountRepository) List(ctx context.Context) ([]account.Account, error) {
	const sql = `
		SELECT id, name, email, phone, role, created_at
		FROM accounts
		ORDER BY id ASC
	`

	rows, err := r.pool.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []account.Account
	for rows.Next() {
		var a account.Account
		if err := rows.Scan(&a.ID, &a.Name, &a.Email, &a.Phone, &a.Role, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		accounts = append(accounts, a)
	}

	return accounts, rows.Err()
}

// Update merges non-nil patch fields into the row and returns the result.
func (r *AccountRepository) Update(ctx context.Context, id int64, p account.Patch) (*account.Account, error) {
	const sql = `
		UPDATE accounts SET
			name = COALESCE($1, name),
			email = COALESCE($2, email),
			password = COALESCE($3, password),
			phone = COALESCE($4, phone),
			role = COALESCE($5, role)
		WHERE id = $6
		RETURNING id, name, email, password, phone, role, created_at
	`

	var a account.Account
	err := pick(ctx, r.pool).QueryRow(ctx, sql,
		p.Name, p.Email, p.PasswordHash, p.Phone, p.Role, id,
	).Scan(&a.ID, &a.Name, &a.Email, &a.PasswordHash, &a.Phone, &a.Role, &a.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, apperror.New(apperror.KindNotFound, "User not found")
		}
		if isUniqueViolation(err) {
			return nil, apperror.New(apperror.KindConflict, "Email already in use")
		}
		return nil, fmt.Errorf("update account: %w", err)
	}

	return &a, nil
}

func (r *AccountRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.pool.Exec(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperror.New(apperror.KindNotFound, "User not found")
	}
	return nil
}

// EmailTaken reports whether another account already uses the email.
func (r *AccountRepository) EmailTaken(ctx context.Context, email string, excludeID int64) (bool, error) {
	const sql = `SELECT EXISTS (SELECT 1 FROM accounts WHERE email = $1 AND id != $2)`

	var taken bool
	if err := r.pool.QueryRow(ctx, sql, email, excludeID).Scan(&taken); err != nil {
		return false, fmt.Errorf("check email: %w", err)
	}
	return taken, nil
}
