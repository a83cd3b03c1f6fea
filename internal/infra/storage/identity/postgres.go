package identity

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-BookingClient/internal/session"
	"github.com/m04kA/SMC-BookingClient/pkg/psqlbuilder"
)

const identitiesTable = "client_identities"

// Schema DDL таблицы личностей
const Schema = `CREATE TABLE IF NOT EXISTS client_identities (
	profile      TEXT PRIMARY KEY,
	token        TEXT NOT NULL,
	user_payload JSONB NOT NULL,
	updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// PostgresStore хранит личность в таблице client_identities, одна строка на профиль
type PostgresStore struct {
	db      DBExecutor
	profile string
}

// NewPostgresStore создает postgres-хранилище
func NewPostgresStore(db DBExecutor, profile string) *PostgresStore {
	return &PostgresStore{db: db, profile: profile}
}

// Migrate создает таблицу, если её нет
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("%w: Migrate: %v", ErrExecQuery, err)
	}
	return nil
}

// Load получает личность профиля
func (s *PostgresStore) Load(ctx context.Context) (*session.Identity, error) {
	query, args, err := buildSelectQuery(s.profile)
	if err != nil {
		return nil, fmt.Errorf("%w: Load - build select query: %v", ErrBuildQuery, err)
	}

	var token string
	var payload []byte
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&token, &payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: Load - execute select: %v", ErrExecQuery, err)
	}

	identity := session.Identity{Token: token}
	if err := json.Unmarshal(payload, &identity.User); err != nil {
		return nil, fmt.Errorf("%w: Load: %v", ErrDecode, err)
	}
	return &identity, nil
}

// Save вставляет или обновляет строку профиля
func (s *PostgresStore) Save(ctx context.Context, identity *session.Identity) error {
	payload, err := json.Marshal(identity.User)
	if err != nil {
		return fmt.Errorf("%w: Save: %v", ErrEncode, err)
	}

	query, args, err := buildUpsertQuery(s.profile, identity.Token, payload)
	if err != nil {
		return fmt.Errorf("%w: Save - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Save - execute upsert: %v", ErrExecQuery, err)
	}
	return nil
}

// Clear удаляет строку профиля
func (s *PostgresStore) Clear(ctx context.Context) error {
	query, args, err := buildDeleteQuery(s.profile)
	if err != nil {
		return fmt.Errorf("%w: Clear - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Clear - execute delete: %v", ErrExecQuery, err)
	}
	return nil
}

func buildSelectQuery(profile string) (string, []interface{}, error) {
	return psqlbuilder.Select("token", "user_payload").
		From(identitiesTable).
		Where(squirrel.Eq{"profile": profile}).
		ToSql()
}

func buildUpsertQuery(profile, token string, payload []byte) (string, []interface{}, error) {
	return psqlbuilder.Insert(identitiesTable).
		Columns("profile", "token", "user_payload").
		Values(profile, token, payload).
		Suffix("ON CONFLICT (profile) DO UPDATE SET token = EXCLUDED.token, user_payload = EXCLUDED.user_payload, updated_at = now()").
		ToSql()
}

func buildDeleteQuery(profile string) (string, []interface{}, error) {
	return psqlbuilder.Delete(identitiesTable).
		Where(squirrel.Eq{"profile": profile}).
		ToSql()
}
