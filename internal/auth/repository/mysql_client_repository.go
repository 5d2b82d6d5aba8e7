package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	authDomain "github.com/paservices/auth-service/internal/auth/domain"
	"github.com/paservices/auth-service/internal/database"
	apperrors "github.com/paservices/auth-service/internal/errors"
)

// MySQLClientRepository implements Client persistence for MySQL.
// Uses BINARY(16) for UUID storage with transaction support via database.GetTx().
type MySQLClientRepository struct {
	db *sql.DB
}

// Create inserts a new Client into the MySQL database using BINARY(16) for UUIDs.
func (m *MySQLClientRepository) Create(ctx context.Context, client *authDomain.Client) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO clients (id, secret, name, is_active, created_at)
			  VALUES (?, ?, ?, ?, ?)`

	id, err := client.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal client id")
	}

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		client.Secret,
		client.Name,
		client.IsActive,
		client.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create client")
	}
	return nil
}

// Update modifies an existing Client in the MySQL database using BINARY(16) for UUIDs.
func (m *MySQLClientRepository) Update(ctx context.Context, client *authDomain.Client) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE clients
			  SET secret = ?,
			  	  name = ?,
				  is_active = ?
			  WHERE id = ?`

	id, err := client.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal client id")
	}

	_, err = querier.ExecContext(
		ctx,
		query,
		client.Secret,
		client.Name,
		client.IsActive,
		id,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update client")
	}

	return nil
}

// Get retrieves a Client by ID from the MySQL database using BINARY(16) for UUIDs.
// Returns ErrClientNotFound if the client doesn't exist.
func (m *MySQLClientRepository) Get(ctx context.Context, clientID uuid.UUID) (*authDomain.Client, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, secret, name, is_active, created_at FROM clients WHERE id = ?`

	id, err := clientID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal client id")
	}

	var client authDomain.Client
	var idBytes []byte

	err = querier.QueryRowContext(ctx, query, id).Scan(
		&idBytes,
		&client.Secret,
		&client.Name,
		&client.IsActive,
		&client.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, authDomain.ErrClientNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get client")
	}

	if err := client.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal client id")
	}

	return &client, nil
}

// GetByName retrieves a Client by its unique name from the MySQL database.
func (m *MySQLClientRepository) GetByName(ctx context.Context, name string) (*authDomain.Client, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, secret, name, is_active, created_at FROM clients WHERE name = ?`

	var client authDomain.Client
	var idBytes []byte

	err := querier.QueryRowContext(ctx, query, name).Scan(
		&idBytes,
		&client.Secret,
		&client.Name,
		&client.IsActive,
		&client.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, authDomain.ErrClientNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get client by name")
	}

	if err := client.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal client id")
	}

	return &client, nil
}

// List retrieves clients ordered by ID descending with pagination support using
// BINARY(16) for UUIDs. Returns an empty slice if no clients are found.
func (m *MySQLClientRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*authDomain.Client, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, secret, name, is_active, created_at
			  FROM clients
			  ORDER BY id DESC
			  LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list clients")
	}
	defer func() {
		_ = rows.Close()
	}()

	// Initialize empty slice to avoid returning nil for empty results
	clients := make([]*authDomain.Client, 0)
	for rows.Next() {
		var client authDomain.Client
		var idBytes []byte

		err := rows.Scan(
			&idBytes,
			&client.Secret,
			&client.Name,
			&client.IsActive,
			&client.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan client row")
		}

		if err := client.ID.UnmarshalBinary(idBytes); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal client id")
		}

		clients = append(clients, &client)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "error iterating client rows")
	}

	return clients, nil
}

// NewMySQLClientRepository creates a new MySQL Client repository.
func NewMySQLClientRepository(db *sql.DB) *MySQLClientRepository {
	return &MySQLClientRepository{db: db}
}
