package db

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/predixarena/authsvc/internal/config"
	"github.com/predixarena/authsvc/internal/domain/user"
	"github.com/predixarena/authsvc/internal/security"
)

// EnsureSuperUser seeds the bootstrap super user when ADMIN_EMAIL and
// ADMIN_PASSWORD are set and no record exists for that email yet.
func EnsureSuperUser(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}

	// check if the user exists

	var dummy string

	err := pool.QueryRow(ctx, `SELECT id FROM users WHERE email = $1`, cfg.AdminEmail).Scan(&dummy)

	if err == nil {
		return nil
	}

	if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	hash, err := security.HashPassword(cfg.AdminPassword)

	if err != nil {
		return err
	}

	name := cfg.AdminName

	_, err = pool.Exec(ctx,
		`INSERT INTO users (id, email, password_hash, display_name, role, is_super_user, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		`,
		uuid.NewString(), cfg.AdminEmail, hash, name, string(user.RoleAdmin), true, time.Now().UTC(),
	)

	return err
}
