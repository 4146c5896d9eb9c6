package postgres

import (
	"context"
	"fmt"
	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	propertyColumns = []string{
		"id", "title", "description", "address", "location", "price", "bedrooms", "bathrooms", "area",
		"year_built", "status", "type", "featured", "amenities", "images",
		"agent_name", "agent_phone", "agent_email", "agent_image", "sort_order",
	}
	agentColumns   = []string{"name", "phone", "email", "image", "title", "bio", "specialties", "sort_order"}
	serviceColumns = []string{"id", "title", "description", "icon", "sort_order"}
)

// DatasetWriter полностью заменяет содержимое таблиц набором данных (импорт из JSON)
type DatasetWriter struct {
	pool *pgxpool.Pool
}

func NewDatasetWriter(pool *pgxpool.Pool) (*DatasetWriter, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &DatasetWriter{pool: pool}, nil
}

// Save заменяет данные в одной транзакции через COPY
func (w *DatasetWriter) Save(ctx context.Context, dataset *domain.Dataset) error {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"component": "PostgresDatasetWriter"})

	tx, err := w.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `TRUNCATE properties, agents, services RESTART IDENTITY`); err != nil {
		return fmt.Errorf("failed to truncate dataset tables: %w", err)
	}

	if _, err := tx.CopyFrom(ctx, pgx.Identifier{"properties"}, propertyColumns,
		pgx.CopyFromRows(propertyRows(dataset.Properties))); err != nil {
		return fmt.Errorf("failed to copy properties: %w", err)
	}
	if _, err := tx.CopyFrom(ctx, pgx.Identifier{"agents"}, agentColumns,
		pgx.CopyFromRows(agentRows(dataset.Agents))); err != nil {
		return fmt.Errorf("failed to copy agents: %w", err)
	}
	if _, err := tx.CopyFrom(ctx, pgx.Identifier{"services"}, serviceColumns,
		pgx.CopyFromRows(serviceRows(dataset.Services))); err != nil {
		return fmt.Errorf("failed to copy services: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit dataset import: %w", err)
	}

	logger.Info("Dataset imported into postgres", port.Fields{"counts": dataset.Counts()})
	return nil
}

// sort_order сохраняет порядок документа, от него зависят опции фильтров
func propertyRows(properties []domain.Property) [][]any {
	rows := make([][]any, 0, len(properties))
	for i, p := range properties {
		rows = append(rows, []any{
			p.ID, p.Title, p.Description, p.Address, p.Location, p.Price, p.Bedrooms, p.Bathrooms, p.Area,
			p.YearBuilt, p.Status, p.Type, p.Featured, nonNil(p.Amenities), nonNil(p.Images),
			p.Agent.Name, p.Agent.Phone, p.Agent.Email, p.Agent.Image, i,
		})
	}
	return rows
}

func agentRows(agents []domain.Agent) [][]any {
	rows := make([][]any, 0, len(agents))
	for i, a := range agents {
		rows = append(rows, []any{a.Name, a.Phone, a.Email, a.Image, a.Title, a.Bio, nonNil(a.Specialties), i})
	}
	return rows
}

func serviceRows(services []domain.Service) [][]any {
	rows := make([][]any, 0, len(services))
	for i, s := range services {
		rows = append(rows, []any{s.ID, s.Title, s.Description, s.Icon, i})
	}
	return rows
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
