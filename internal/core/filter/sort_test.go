package filter

import (
	"listing-service/internal/core/domain"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSort(t *testing.T) {
	t.Parallel()
	props := catalogProperties()

	tests := []struct {
		name    string
		order   SortOrder
		wantIDs []int
	}{
		{name: "default keeps dataset order", order: SortDefault, wantIDs: []int{1, 2, 3, 4, 5}},
		{name: "price ascending", order: SortPriceAsc, wantIDs: []int{5, 1, 3, 2, 4}},
		{name: "price descending", order: SortPriceDesc, wantIDs: []int{4, 2, 3, 1, 5}},
		{name: "newest first", order: SortNewest, wantIDs: []int{4, 2, 3, 1, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.wantIDs, ids(Sort(props, tt.order)))
		})
	}
}

func TestSort_StableOnEqualKeys(t *testing.T) {
	props := []domain.Property{
		{ID: 10, Price: 100}, {ID: 11, Price: 50}, {ID: 12, Price: 100}, {ID: 13, Price: 50},
	}
	assert.Equal(t, []int{11, 13, 10, 12}, ids(Sort(props, SortPriceAsc)))
	// исходный срез не тронут
	assert.Equal(t, []int{10, 11, 12, 13}, ids(props))
}

func TestParseSortOrder(t *testing.T) {
	o, ok := ParseSortOrder("price_desc")
	assert.True(t, ok)
	assert.Equal(t, SortPriceDesc, o)

	o, ok = ParseSortOrder("cheapest")
	assert.False(t, ok)
	assert.Equal(t, SortDefault, o)
}

func TestPage(t *testing.T) {
	props := catalogProperties()

	assert.Equal(t, []int{1, 2}, ids(Page(props, 1, 2)))
	assert.Equal(t, []int{5}, ids(Page(props, 3, 2)))
	assert.Empty(t, Page(props, 4, 2))
	assert.Equal(t, []int{1, 2}, ids(Page(props, 0, 2)))
	assert.Len(t, Page(props, 1, 0), len(props))
	assert.Empty(t, Page(nil, 1, 2))
}

func TestPage_HugeValuesDoNotOverflow(t *testing.T) {
	props := catalogProperties()

	assert.NotPanics(t, func() {
		assert.Empty(t, Page(props, 1<<62+1, 2))
	})
	assert.NotPanics(t, func() {
		assert.Equal(t, []int{1, 2, 3, 4, 5}, ids(Page(props, 1, int(^uint(0)>>1))))
	})
}
