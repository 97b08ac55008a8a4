package repository

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	sqlite3 "github.com/mattn/go-sqlite3"

	database "authservice/internal/adapter/database/sqlite"
	"authservice/internal/core/domain"
	"authservice/internal/core/port"
)

type UserRepository struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) port.UserRepository {
	return &UserRepository{db: db}
}

func (ur *UserRepository) GetByUUID(ctx context.Context, uid string) (domain.User, error) {
	query := ur.db.QueryBuilder.Select("uuid", "email", "encrypted_password", "role", "created_at").
		From("users").
		Where(sq.Eq{"uuid": uid}).
		Limit(1)

	return ur.scanOne(ctx, query)
}

func (ur *UserRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	query := ur.db.QueryBuilder.Select("uuid", "email", "encrypted_password", "role", "created_at").
		From("users").
		Where(sq.Eq{"email": email}).
		Limit(1)

	return ur.scanOne(ctx, query)
}

func (ur *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	stmt, args, err := ur.db.QueryBuilder.Select("1").
		From("users").
		Where(sq.Eq{"email": email}).
		Limit(1).
		ToSql()

	if err != nil {
		return false, err
	}

	var one int
	err = ur.db.QueryRowContext(ctx, stmt, args...).Scan(&one)

	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}

	if err != nil {
		return false, err
	}

	return true, nil
}

func (ur *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	stmt, args, err := ur.db.QueryBuilder.Insert("users").
		Columns("uuid", "email", "encrypted_password", "role", "created_at").
		Values(user.UUID.String(), user.Email, user.EncryptedPassword, string(user.Role), user.CreatedAt).
		ToSql()

	if err != nil {
		return domain.User{}, err
	}

	_, err = ur.db.ExecContext(ctx, stmt, args...)

	if err != nil {
		var sqliteErr sqlite3.Error

		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return domain.User{}, domain.ErrUserAlreadyExists
		}

		slog.Error("Error creating user", "error", err)
		return domain.User{}, err
	}

	return ur.GetByUUID(ctx, user.UUID.String())
}

func (ur *UserRepository) scanOne(ctx context.Context, query sq.SelectBuilder) (domain.User, error) {
	stmt, args, err := query.ToSql()

	if err != nil {
		return domain.User{}, err
	}

	var user domain.User

	err = ur.db.QueryRowContext(ctx, stmt, args...).Scan(
		&user.UUID,
		&user.Email,
		&user.EncryptedPassword,
		&user.Role,
		&user.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, domain.ErrUserNotFound
	}

	if err != nil {
		slog.Error("Error getting user", "error", err)
		return domain.User{}, err
	}

	return user, nil
}
