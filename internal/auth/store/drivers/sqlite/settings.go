package sqlite

import (
	"context"
	"database/sql"

	"github.com/coffeelux/auth/internal/auth/domain"
)

type settingsRepo struct {
	db *sql.DB
}

func (r *settingsRepo) RoleName(ctx context.Context, roleID int64) (string, error) {
	var name string
	err := r.db.QueryRowContext(ctx,
		`SELECT value FROM settings WHERE id = ? AND type = 'Role' AND is_active = 1`,
		roleID,
	).Scan(&name)
	if err != nil {
		return "", mapNotFound(err)
	}
	return name, nil
}

func (r *settingsRepo) ListByType(ctx context.Context, settingType string) ([]domain.Setting, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, type, value, is_active FROM settings WHERE type = ? AND is_active = 1 ORDER BY id`,
		settingType,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Setting
	for rows.Next() {
		var (
			s      domain.Setting
			active int
		)
		if err := rows.Scan(&s.ID, &s.Type, &s.Value, &active); err != nil {
			return nil, err
		}
		s.Active = active != 0
		out = append(out, s)
	}
	return out, rows.Err()
}
