package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/coffeelux/auth/internal/auth/domain"
	"github.com/coffeelux/auth/internal/auth/store"
)

type usersRepo struct {
	db *sql.DB
}

const userColumns = `id, full_name, email, password_hash, role_id, is_active, created_at`

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ?`,
		foldEmail(email),
	)
	return scanUser(row)
}

func (r *usersRepo) GetActiveUserByEmail(ctx context.Context, email string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ? AND is_active = 1`,
		foldEmail(email),
	)
	return scanUser(row)
}

func (r *usersRepo) ExistsAndActive(ctx context.Context, email string) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM users WHERE email = ? AND is_active = 1`,
		foldEmail(email),
	).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) (int64, error) {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (full_name, email, password_hash, role_id, is_active, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		u.FullName, foldEmail(u.Email), u.PasswordHash, u.RoleID, boolToInt(u.Active), u.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, store.ErrAlreadyExists
		}
		return 0, err
	}
	return res.LastInsertId()
}

func (r *usersRepo) UpdatePasswordHash(ctx context.Context, userID int64, newHash string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET password_hash = ? WHERE id = ?`,
		newHash, userID,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *usersRepo) SetActive(ctx context.Context, userID int64, active bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET is_active = ? WHERE id = ?`,
		boolToInt(active), userID,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func scanUser(row *sql.Row) (domain.User, error) {
	var (
		u      domain.User
		active int
	)
	err := row.Scan(&u.ID, &u.FullName, &u.Email, &u.PasswordHash, &u.RoleID, &active, &u.CreatedAt)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	u.Active = active != 0
	return u, nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func foldEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func isUniqueViolation(err error) bool {
	// modernc.org/sqlite surfaces constraint failures in the error text;
	// there is no portable sentinel across driver versions.
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
