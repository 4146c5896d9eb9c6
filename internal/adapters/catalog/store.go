package catalog

import (
	"listing-service/internal/core/domain"
	"sync/atomic"
)

// Store хранит набор данных только для чтения. Замена идет целым снимком
// через atomic.Pointer, поэтому читатели никогда не видят частично загруженные данные.
type Store struct {
	current atomic.Pointer[domain.Dataset]
}

func NewStore() *Store {
	return &Store{}
}

// Replace публикует новый снимок. Срезы копируются, чтобы источник
// не мог поменять данные после публикации.
func (s *Store) Replace(dataset *domain.Dataset) {
	if dataset == nil {
		return
	}
	snapshot := &domain.Dataset{
		Properties: cloneProperties(dataset.Properties),
		Agents:     cloneAgents(dataset.Agents),
		Services:   append([]domain.Service(nil), dataset.Services...),
		Source:     dataset.Source,
		LoadedAt:   dataset.LoadedAt,
	}
	s.current.Store(snapshot)
}

// snapshot - текущий снимок или пустой набор, если данных еще нет.
// Наружу снимок не отдается, только копии срезов и Info.
func (s *Store) snapshot() *domain.Dataset {
	if ds := s.current.Load(); ds != nil {
		return ds
	}
	return &domain.Dataset{}
}

func (s *Store) Loaded() bool {
	return s.current.Load() != nil
}

func (s *Store) Info() domain.DatasetInfo {
	ds := s.snapshot()
	return domain.DatasetInfo{
		Source:   ds.Source,
		LoadedAt: ds.LoadedAt,
		Counts:   ds.Counts(),
	}
}

// Properties возвращает копию, вызывающий может ее свободно менять
func (s *Store) Properties() []domain.Property {
	return cloneProperties(s.snapshot().Properties)
}

func (s *Store) Agents() []domain.Agent {
	return cloneAgents(s.snapshot().Agents)
}

func (s *Store) Services() []domain.Service {
	return append([]domain.Service{}, s.snapshot().Services...)
}

func cloneProperties(src []domain.Property) []domain.Property {
	out := make([]domain.Property, len(src))
	for i, p := range src {
		p.Amenities = append([]string(nil), p.Amenities...)
		p.Images = append([]string(nil), p.Images...)
		p.Agent.Specialties = append([]string(nil), p.Agent.Specialties...)
		out[i] = p
	}
	return out
}

func cloneAgents(src []domain.Agent) []domain.Agent {
	out := make([]domain.Agent, len(src))
	for i, a := range src {
		a.Specialties = append([]string(nil), a.Specialties...)
		out[i] = a
	}
	return out
}
