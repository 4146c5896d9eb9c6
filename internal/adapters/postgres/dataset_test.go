package postgres

import (
	"errors"
	"fmt"
	"listing-service/internal/core/domain"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRow раскладывает заранее заданные значения по указателям, как это делает pgx
type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if len(dest) != len(r.values) {
		return fmt.Errorf("expected %d destinations, got %d", len(r.values), len(dest))
	}
	for i, d := range dest {
		reflect.ValueOf(d).Elem().Set(reflect.ValueOf(r.values[i]))
	}
	return nil
}

func int32Ptr(v int32) *int32 { return &v }

func propertyRow(yearBuilt *int32, amenities, images []string) fakeRow {
	return fakeRow{values: []any{
		7, "Sea View Villa", "Pool", "12 Beach Road", "Goa", int64(2_000_000), 4, 3, 3200,
		yearBuilt, "For Sale", "Villa", true, amenities, images,
		"Raj", "+91 1", "raj@example.com", "raj.jpg",
	}}
}

func TestScanProperty(t *testing.T) {
	p, err := scanProperty(propertyRow(int32Ptr(2015), []string{"Pool"}, []string{"a.jpg"}), 2025)
	require.NoError(t, err)
	assert.Equal(t, 7, p.ID)
	assert.Equal(t, int64(2_000_000), p.Price)
	assert.Equal(t, 2015, p.YearBuilt)
	assert.Equal(t, "a.jpg", p.CoverImage())
	assert.Equal(t, "Raj", p.Agent.Name)
	assert.True(t, p.Featured)
}

func TestScanProperty_Defaults(t *testing.T) {
	p, err := scanProperty(propertyRow(nil, nil, nil), 2025)
	require.NoError(t, err)
	assert.Equal(t, 2025, p.YearBuilt)
	assert.NotNil(t, p.Images)
	assert.NotNil(t, p.Amenities)

	p, err = scanProperty(propertyRow(int32Ptr(0), nil, nil), 2030)
	require.NoError(t, err)
	assert.Equal(t, 2030, p.YearBuilt)
}

func TestScanProperty_Error(t *testing.T) {
	_, err := scanProperty(fakeRow{err: errors.New("conn reset")}, 2025)
	assert.Error(t, err)
}

func TestScanAgentAndService(t *testing.T) {
	a, err := scanAgent(fakeRow{values: []any{"Priya", "+91 2", "priya@example.com", "p.jpg", "Consultant", "Bio", []string{"Rentals"}}})
	require.NoError(t, err)
	assert.Equal(t, domain.Agent{Name: "Priya", Phone: "+91 2", Email: "priya@example.com", Image: "p.jpg",
		Title: "Consultant", Bio: "Bio", Specialties: []string{"Rentals"}}, a)

	s, err := scanService(fakeRow{values: []any{3, "Rentals", "Tenant search", "Key"}})
	require.NoError(t, err)
	assert.Equal(t, domain.Service{ID: 3, Title: "Rentals", Description: "Tenant search", Icon: "Key"}, s)
}

func TestCopyRows(t *testing.T) {
	props := []domain.Property{
		{ID: 5, Title: "B", Location: "Pune"},
		{ID: 2, Title: "A", Location: "Goa", Images: []string{"x.jpg"}},
	}
	rows := propertyRows(props)
	require.Len(t, rows, 2)
	for _, row := range rows {
		assert.Len(t, row, len(propertyColumns))
	}
	// порядок документа переходит в sort_order
	assert.Equal(t, 0, rows[0][len(propertyColumns)-1])
	assert.Equal(t, 1, rows[1][len(propertyColumns)-1])
	assert.Equal(t, []string{}, rows[0][13])

	agents := agentRows([]domain.Agent{{Name: "Raj"}})
	require.Len(t, agents, 1)
	assert.Len(t, agents[0], len(agentColumns))

	services := serviceRows([]domain.Service{{ID: 1, Title: "Sales", Icon: "Home"}})
	require.Len(t, services, 1)
	assert.Len(t, services[0], len(serviceColumns))
}

func TestNewAdapters_NilPool(t *testing.T) {
	_, err := NewDatasetSource(nil)
	assert.Error(t, err)
	_, err = NewDatasetWriter(nil)
	assert.Error(t, err)
}
