package repository

import (
	"context"
	"errors"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	database "authservice/internal/adapter/database/postgres"
	"authservice/internal/core/domain"
	"authservice/internal/core/port"
)

const uniqueViolation = "23505"

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
	query := ur.db.QueryBuilder.Select("1").
		From("users").
		Where(sq.Eq{"email": email}).
		Limit(1)

	stmt, args, err := query.ToSql()

	if err != nil {
		return false, err
	}

	var one int
	err = ur.db.QueryRow(ctx, stmt, args...).Scan(&one)

	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}

	if err != nil {
		return false, err
	}

	return true, nil
}

func (ur *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	query := ur.db.QueryBuilder.Insert("users").
		Columns("uuid", "email", "encrypted_password", "role", "created_at").
		Values(user.UUID.String(), user.Email, user.EncryptedPassword, user.Role, user.CreatedAt).
		Suffix("RETURNING uuid, email, encrypted_password, role, created_at")

	stmt, args, err := query.ToSql()

	if err != nil {
		return domain.User{}, err
	}

	var saved domain.User

	err = ur.db.QueryRow(ctx, stmt, args...).Scan(
		&saved.UUID,
		&saved.Email,
		&saved.EncryptedPassword,
		&saved.Role,
		&saved.CreatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError

		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.User{}, domain.ErrUserAlreadyExists
		}

		slog.Error("Error creating user", "error", err)
		return domain.User{}, err
	}

	return saved, nil
}

func (ur *UserRepository) scanOne(ctx context.Context, query sq.SelectBuilder) (domain.User, error) {
	stmt, args, err := query.ToSql()

	if err != nil {
		return domain.User{}, err
	}

	var user domain.User

	err = ur.db.QueryRow(ctx, stmt, args...).Scan(
		&user.UUID,
		&user.Email,
		&user.EncryptedPassword,
		&user.Role,
		&user.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, domain.ErrUserNotFound
	}

	if err != nil {
		slog.Error("Error getting user", "error", err)
		return domain.User{}, err
	}

	return user, nil
}
