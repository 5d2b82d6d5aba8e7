package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authDomain "github.com/paservices/auth-service/internal/auth/domain"
	apperrors "github.com/paservices/auth-service/internal/errors"
)

func newMockDB(t *testing.T) (*PostgreSQLClientRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})

	return NewPostgreSQLClientRepository(db), mock
}

func testClient() *authDomain.Client {
	return &authDomain.Client{
		ID:        uuid.Must(uuid.NewV7()),
		Secret:    "test-secret-hash",
		Name:      "test-client",
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}
}

func TestPostgreSQLClientRepository_Create(t *testing.T) {
	repo, mock := newMockDB(t)
	ctx := context.Background()
	client := testClient()

	mock.ExpectExec(`INSERT INTO clients`).
		WithArgs(client.ID, client.Secret, client.Name, client.IsActive, client.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(ctx, client)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLClientRepository_Update(t *testing.T) {
	repo, mock := newMockDB(t)
	ctx := context.Background()
	client := testClient()
	client.IsActive = false

	mock.ExpectExec(`UPDATE clients`).
		WithArgs(client.Secret, client.Name, client.IsActive, client.ID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Update(ctx, client)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLClientRepository_Get(t *testing.T) {
	t.Run("Success_ReturnsClient", func(t *testing.T) {
		repo, mock := newMockDB(t)
		ctx := context.Background()
		client := testClient()

		rows := sqlmock.NewRows([]string{"id", "secret", "name", "is_active", "created_at"}).
			AddRow(client.ID, client.Secret, client.Name, client.IsActive, client.CreatedAt)

		mock.ExpectQuery(`SELECT id, secret, name, is_active, created_at FROM clients WHERE id`).
			WithArgs(client.ID).
			WillReturnRows(rows)

		retrieved, err := repo.Get(ctx, client.ID)
		require.NoError(t, err)

		assert.Equal(t, client.ID, retrieved.ID)
		assert.Equal(t, client.Secret, retrieved.Secret)
		assert.Equal(t, client.Name, retrieved.Name)
		assert.True(t, retrieved.IsActive)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure_NotFound", func(t *testing.T) {
		repo, mock := newMockDB(t)
		ctx := context.Background()
		clientID := uuid.Must(uuid.NewV7())

		mock.ExpectQuery(`SELECT id, secret, name, is_active, created_at FROM clients WHERE id`).
			WithArgs(clientID).
			WillReturnRows(sqlmock.NewRows([]string{"id", "secret", "name", "is_active", "created_at"}))

		retrieved, err := repo.Get(ctx, clientID)
		assert.ErrorIs(t, err, authDomain.ErrClientNotFound)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		assert.Nil(t, retrieved)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgreSQLClientRepository_GetByName(t *testing.T) {
	t.Run("Success_ReturnsClient", func(t *testing.T) {
		repo, mock := newMockDB(t)
		ctx := context.Background()
		client := testClient()

		rows := sqlmock.NewRows([]string{"id", "secret", "name", "is_active", "created_at"}).
			AddRow(client.ID, client.Secret, client.Name, client.IsActive, client.CreatedAt)

		mock.ExpectQuery(`SELECT id, secret, name, is_active, created_at FROM clients WHERE name`).
			WithArgs(client.Name).
			WillReturnRows(rows)

		retrieved, err := repo.GetByName(ctx, client.Name)
		require.NoError(t, err)
		assert.Equal(t, client.ID, retrieved.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure_NotFound", func(t *testing.T) {
		repo, mock := newMockDB(t)
		ctx := context.Background()

		mock.ExpectQuery(`SELECT id, secret, name, is_active, created_at FROM clients WHERE name`).
			WithArgs("missing-client").
			WillReturnRows(sqlmock.NewRows([]string{"id", "secret", "name", "is_active", "created_at"}))

		retrieved, err := repo.GetByName(ctx, "missing-client")
		assert.ErrorIs(t, err, authDomain.ErrClientNotFound)
		assert.Nil(t, retrieved)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgreSQLClientRepository_List(t *testing.T) {
	t.Run("Success_ReturnsClients", func(t *testing.T) {
		repo, mock := newMockDB(t)
		ctx := context.Background()
		client1 := testClient()
		client2 := testClient()

		rows := sqlmock.NewRows([]string{"id", "secret", "name", "is_active", "created_at"}).
			AddRow(client2.ID, client2.Secret, client2.Name, client2.IsActive, client2.CreatedAt).
			AddRow(client1.ID, client1.Secret, client1.Name, client1.IsActive, client1.CreatedAt)

		mock.ExpectQuery(`SELECT id, secret, name, is_active, created_at\s+FROM clients`).
			WithArgs(10, 0).
			WillReturnRows(rows)

		clients, err := repo.List(ctx, 0, 10)
		require.NoError(t, err)
		assert.Len(t, clients, 2)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success_EmptyResultIsNotNil", func(t *testing.T) {
		repo, mock := newMockDB(t)
		ctx := context.Background()

		mock.ExpectQuery(`SELECT id, secret, name, is_active, created_at\s+FROM clients`).
			WithArgs(10, 0).
			WillReturnRows(sqlmock.NewRows([]string{"id", "secret", "name", "is_active", "created_at"}))

		clients, err := repo.List(ctx, 0, 10)
		require.NoError(t, err)
		assert.NotNil(t, clients)
		assert.Empty(t, clients)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
