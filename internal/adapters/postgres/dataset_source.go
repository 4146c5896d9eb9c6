package postgres

import (
	"context"
	"fmt"
	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	selectPropertiesQuery = `
		SELECT id, title, description, address, location, price, bedrooms, bathrooms, area,
		       year_built, status, type, featured, amenities, images,
		       agent_name, agent_phone, agent_email, agent_image
		FROM properties
		ORDER BY sort_order, id`

	selectAgentsQuery = `
		SELECT name, phone, email, image, title, bio, specialties
		FROM agents
		ORDER BY sort_order, id`

	selectServicesQuery = `
		SELECT id, title, description, icon
		FROM services
		ORDER BY sort_order, id`
)

// rowScanner - общая часть pgx.Row и pgx.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

// DatasetSource читает весь набор данных одной read-only транзакцией,
// чтобы три таблицы были согласованы между собой.
type DatasetSource struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

func NewDatasetSource(pool *pgxpool.Pool) (*DatasetSource, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &DatasetSource{pool: pool, now: time.Now}, nil
}

func (s *DatasetSource) Name() string {
	return "postgres"
}

func (s *DatasetSource) Load(ctx context.Context) (*domain.Dataset, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"component": "PostgresDatasetSource"})

	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	now := s.now()
	dataset := &domain.Dataset{Source: s.Name(), LoadedAt: now.UTC()}

	dataset.Properties, err = collect(ctx, tx, selectPropertiesQuery, func(row rowScanner) (domain.Property, error) {
		return scanProperty(row, now.Year())
	})
	if err != nil {
		logger.Error("Failed to load properties", err, nil)
		return nil, err
	}

	dataset.Agents, err = collect(ctx, tx, selectAgentsQuery, scanAgent)
	if err != nil {
		logger.Error("Failed to load agents", err, nil)
		return nil, err
	}

	dataset.Services, err = collect(ctx, tx, selectServicesQuery, scanService)
	if err != nil {
		logger.Error("Failed to load services", err, nil)
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit read transaction: %w", err)
	}

	logger.Debug("Dataset loaded from postgres", port.Fields{"counts": dataset.Counts()})
	return dataset, nil
}

func collect[T any](ctx context.Context, tx pgx.Tx, query string, scan func(rowScanner) (T, error)) ([]T, error) {
	rows, err := tx.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	result := make([]T, 0)
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return result, nil
}

// scanProperty: NULL в year_built означает текущий год, как и в JSON-источнике
func scanProperty(row rowScanner, currentYear int) (domain.Property, error) {
	var p domain.Property
	var yearBuilt *int32

	err := row.Scan(
		&p.ID, &p.Title, &p.Description, &p.Address, &p.Location, &p.Price,
		&p.Bedrooms, &p.Bathrooms, &p.Area, &yearBuilt, &p.Status, &p.Type, &p.Featured,
		&p.Amenities, &p.Images,
		&p.Agent.Name, &p.Agent.Phone, &p.Agent.Email, &p.Agent.Image,
	)
	if err != nil {
		return domain.Property{}, err
	}

	p.YearBuilt = currentYear
	if yearBuilt != nil && *yearBuilt != 0 {
		p.YearBuilt = int(*yearBuilt)
	}
	if p.Images == nil {
		p.Images = []string{}
	}
	if p.Amenities == nil {
		p.Amenities = []string{}
	}
	return p, nil
}

func scanAgent(row rowScanner) (domain.Agent, error) {
	var a domain.Agent
	err := row.Scan(&a.Name, &a.Phone, &a.Email, &a.Image, &a.Title, &a.Bio, &a.Specialties)
	return a, err
}

func scanService(row rowScanner) (domain.Service, error) {
	var s domain.Service
	err := row.Scan(&s.ID, &s.Title, &s.Description, &s.Icon)
	return s, err
}
