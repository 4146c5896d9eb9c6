package catalog

import (
	"listing-service/internal/core/domain"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStore_EmptyBeforeFirstLoad(t *testing.T) {
	s := NewStore()

	assert.False(t, s.Loaded())
	assert.Empty(t, s.Properties())
	assert.Empty(t, s.Agents())
	assert.Empty(t, s.Services())
	info := s.Info()
	assert.Equal(t, map[string]int{"properties": 0, "agents": 0, "services": 0}, info.Counts)
	assert.True(t, info.LoadedAt.IsZero())
}

func TestStore_Info(t *testing.T) {
	s := NewStore()
	loadedAt := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	s.Replace(&domain.Dataset{
		Properties: []domain.Property{{ID: 1}, {ID: 2}},
		Agents:     []domain.Agent{{Name: "Raj"}},
		Source:     "file:data/properties.json",
		LoadedAt:   loadedAt,
	})

	info := s.Info()
	assert.True(t, s.Loaded())
	assert.Equal(t, "file:data/properties.json", info.Source)
	assert.Equal(t, loadedAt, info.LoadedAt)
	assert.Equal(t, map[string]int{"properties": 2, "agents": 1, "services": 0}, info.Counts)

	// изменение сводки не трогает каталог
	info.Counts["properties"] = 100
	assert.Len(t, s.Properties(), 2)
}

func TestStore_ReplaceIgnoresNil(t *testing.T) {
	s := NewStore()
	s.Replace(&domain.Dataset{Properties: []domain.Property{{ID: 1}}})
	s.Replace(nil)
	assert.Len(t, s.Properties(), 1)
}

func TestStore_ConsumersCannotMutateSharedState(t *testing.T) {
	s := NewStore()
	source := &domain.Dataset{
		Properties: []domain.Property{{ID: 1, Title: "Villa", Images: []string{"a.jpg"}}},
		Agents:     []domain.Agent{{Name: "Raj", Specialties: []string{"Luxury"}}},
	}
	s.Replace(source)

	// изменения источника после публикации не видны
	source.Properties[0].Title = "changed"

	props := s.Properties()
	props[0].Images[0] = "hacked.jpg"
	props[0].Title = "hacked"

	agents := s.Agents()
	agents[0].Specialties[0] = "hacked"

	fresh := s.Properties()
	assert.Equal(t, "Villa", fresh[0].Title)
	assert.Equal(t, "a.jpg", fresh[0].Images[0])
	assert.Equal(t, "Luxury", s.Agents()[0].Specialties[0])
}

func TestStore_ConcurrentReadersDuringReplace(t *testing.T) {
	s := NewStore()
	small := &domain.Dataset{Properties: []domain.Property{{ID: 1}}}
	large := &domain.Dataset{Properties: []domain.Property{{ID: 1}, {ID: 2}, {ID: 3}}}
	s.Replace(small)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 500; j++ {
				n := len(s.Properties())
				// читатель видит либо старый, либо новый снимок целиком
				assert.True(t, n == 1 || n == 3, "unexpected snapshot size %d", n)
			}
		}()
	}
	for j := 0; j < 100; j++ {
		if j%2 == 0 {
			s.Replace(large)
		} else {
			s.Replace(small)
		}
	}
	wg.Wait()
}
