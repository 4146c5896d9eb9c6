package datasetfile

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"listing-service/internal/contextkeys"
	"listing-service/internal/contracts"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
	"math"
	"net/http"
	"os"
	"strings"
	"time"
)

const maxDocumentSize = 32 << 20

// Source загружает набор данных из JSON-файла или по http(s) URL
type Source struct {
	location   string
	httpClient *http.Client
	now        func() time.Time
}

func NewSource(location string) (*Source, error) {
	if strings.TrimSpace(location) == "" {
		return nil, fmt.Errorf("dataset location is required")
	}
	return &Source{
		location:   location,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		now:        time.Now,
	}, nil
}

func (s *Source) Name() string {
	if isRemote(s.location) {
		return s.location
	}
	return "file:" + s.location
}

func isRemote(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}

func (s *Source) Load(ctx context.Context) (*domain.Dataset, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "DatasetFileSource",
		"source":    s.Name(),
	})

	body, err := s.read(ctx)
	if err != nil {
		logger.Error("Failed to read dataset", err, nil)
		return nil, err
	}

	dataset, err := Decode(body, s.now())
	if err != nil {
		logger.Error("Failed to decode dataset", err, nil)
		return nil, err
	}
	dataset.Source = s.Name()

	logger.Debug("Dataset decoded", port.Fields{"counts": dataset.Counts()})
	return dataset, nil
}

func (s *Source) read(ctx context.Context) ([]byte, error) {
	if !isRemote(s.location) {
		body, err := os.ReadFile(s.location)
		if err != nil {
			return nil, fmt.Errorf("failed to read dataset file: %w", err)
		}
		return body, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.location, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create dataset request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if traceID := contextkeys.TraceIDFromContext(ctx); traceID != "" {
		req.Header.Set("X-Trace-ID", traceID)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch dataset: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("dataset endpoint returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset response: %w", err)
	}
	return body, nil
}

// Decode проверяет документ по схеме и переводит его в доменную модель.
// now нужен для года постройки по умолчанию.
func Decode(body []byte, now time.Time) (*domain.Dataset, error) {
	if err := contracts.ValidateDataset(body); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidDataset, err)
	}

	var doc datasetDocumentDTO
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidDataset, err)
	}

	dataset := &domain.Dataset{
		Properties: make([]domain.Property, 0, len(doc.Properties)),
		Agents:     make([]domain.Agent, 0, len(doc.Agents)),
		Services:   make([]domain.Service, 0, len(doc.Services)),
		LoadedAt:   now.UTC(),
	}

	seen := make(map[int]struct{}, len(doc.Properties))
	for _, p := range doc.Properties {
		if _, dup := seen[p.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate property id %d", domain.ErrInvalidDataset, p.ID)
		}
		seen[p.ID] = struct{}{}
		dataset.Properties = append(dataset.Properties, toDomainProperty(p, now.Year()))
	}
	for _, a := range doc.Agents {
		dataset.Agents = append(dataset.Agents, toDomainAgent(a))
	}
	for _, s := range doc.Services {
		dataset.Services = append(dataset.Services, domain.Service{
			ID:          s.ID,
			Title:       s.Title,
			Description: s.Description,
			Icon:        s.Icon,
		})
	}
	return dataset, nil
}

func toDomainProperty(p propertyDTO, currentYear int) domain.Property {
	yearBuilt := currentYear
	if p.YearBuilt != nil && *p.YearBuilt != 0 {
		yearBuilt = *p.YearBuilt
	}
	images := p.Images
	if images == nil {
		images = []string{}
	}
	amenities := p.Amenities
	if amenities == nil {
		amenities = []string{}
	}

	return domain.Property{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Address:     p.Address,
		Location:    p.Location,
		Price:       parsePrice(p.Price),
		Bedrooms:    p.Bedrooms,
		Bathrooms:   p.Bathrooms,
		Area:        int(math.Round(p.Area)),
		YearBuilt:   yearBuilt,
		Status:      p.Status,
		Type:        p.Type,
		Featured:    p.Featured,
		Amenities:   amenities,
		Images:      images,
		Agent:       toDomainAgent(p.Agent),
	}
}

func toDomainAgent(a agentDTO) domain.Agent {
	return domain.Agent{
		Name:        a.Name,
		Phone:       a.Phone,
		Email:       a.Email,
		Image:       a.Image,
		Title:       a.Title,
		Bio:         a.Bio,
		Specialties: a.Specialties,
	}
}
