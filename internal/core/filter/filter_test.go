package filter

import (
	"listing-service/internal/core/domain"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func int64Ptr(v int64) *int64 { return &v }

func sampleProperties() []domain.Property {
	return []domain.Property{
		{ID: 1, Title: "Sea View Villa", Description: "Private pool and garden", Address: "12 Beach Road",
			Location: "Goa", Price: 2_000_000, Type: "Villa", Status: "For Sale", YearBuilt: 2015},
		{ID: 2, Title: "City Apartment", Description: "Close to the station", Address: "4 Marine Drive",
			Location: "Mumbai", Price: 6_000_000, Type: "Apartment", Status: "For Rent", YearBuilt: 2020},
	}
}

// более широкий набор для законов фильтрации
func catalogProperties() []domain.Property {
	return append(sampleProperties(),
		domain.Property{ID: 3, Title: "Hillside Cottage", Description: "Quiet VILLA-style retreat", Address: "Lane 7",
			Location: "Navi Mumbai", Price: 3_000_000, Type: "Villa", Status: "For Sale", YearBuilt: 2018},
		domain.Property{ID: 4, Title: "Penthouse", Description: "Top floor, terrace", Address: "Tower B, Worli",
			Location: "Mumbai", Price: 12_000_000, Type: "Apartment", Status: "For Sale", YearBuilt: 2022, Featured: true},
		domain.Property{ID: 5, Title: "Studio", Description: "", Address: "",
			Location: "Pune", Price: 0, Type: "Studio", Status: "Sold", YearBuilt: 2010},
	)
}

func criteriaMatrix() []domain.FilterCriteria {
	return []domain.FilterCriteria{
		{},
		{Location: "Mumbai"},
		{PropertyType: "Villa"},
		{Status: "For Sale"},
		{SearchQuery: "villa"},
		{PriceRange: &domain.PriceRange{Min: 1_000_000, Max: int64Ptr(3_000_000)}},
		{PriceRange: &domain.PriceRange{Min: 10_000_000}},
		{PriceRange: &domain.PriceRange{Min: 5_000_000, Max: int64Ptr(1_000_000)}},
		{Location: "Mumbai", Status: "For Sale", SearchQuery: "TOWER"},
		{PropertyType: "Apartment", PriceRange: &domain.PriceRange{Min: 0, Max: int64Ptr(7_000_000)}},
		{SearchQuery: "nothing matches this"},
	}
}

func TestApply_Examples(t *testing.T) {
	t.Parallel()
	props := sampleProperties()

	tests := []struct {
		name     string
		criteria domain.FilterCriteria
		wantIDs  []int
	}{
		{
			name:     "price range keeps the villa",
			criteria: domain.FilterCriteria{PriceRange: &domain.PriceRange{Min: 1_000_000, Max: int64Ptr(3_000_000)}},
			wantIDs:  []int{1},
		},
		{
			name:     "apartment for sale matches nothing",
			criteria: domain.FilterCriteria{PropertyType: "Apartment", Status: "For Sale"},
			wantIDs:  []int{},
		},
		{
			name:     "search matches on location",
			criteria: domain.FilterCriteria{SearchQuery: "mumbai"},
			wantIDs:  []int{2},
		},
		{
			name:     "lower bound only",
			criteria: domain.FilterCriteria{PriceRange: &domain.PriceRange{Min: 5_000_000}},
			wantIDs:  []int{2},
		},
		{
			name:     "bounds are inclusive",
			criteria: domain.FilterCriteria{PriceRange: &domain.PriceRange{Min: 2_000_000, Max: int64Ptr(6_000_000)}},
			wantIDs:  []int{1, 2},
		},
		{
			name:     "reversed bounds give empty result",
			criteria: domain.FilterCriteria{PriceRange: &domain.PriceRange{Min: 6_000_000, Max: int64Ptr(2_000_000)}},
			wantIDs:  []int{},
		},
		{
			name:     "search over address",
			criteria: domain.FilterCriteria{SearchQuery: "marine"},
			wantIDs:  []int{2},
		},
		{
			name:     "search over description",
			criteria: domain.FilterCriteria{SearchQuery: "POOL"},
			wantIDs:  []int{1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Apply(props, tt.criteria)
			assert.Equal(t, tt.wantIDs, ids(got))
		})
	}
}

func TestApply_EmptyInput(t *testing.T) {
	got := Apply(nil, domain.FilterCriteria{Location: "Goa"})
	assert.Empty(t, got)

	got = Apply([]domain.Property{}, domain.FilterCriteria{})
	assert.Empty(t, got)
}

func TestApply_IdentityLaw(t *testing.T) {
	props := catalogProperties()
	got := Apply(props, domain.FilterCriteria{})
	assert.Equal(t, props, got)
}

func TestApply_ConjunctionLaw(t *testing.T) {
	props := catalogProperties()

	for _, c := range criteriaMatrix() {
		for _, p := range Apply(props, c) {
			if c.Location != "" {
				assert.Contains(t, p.Location, c.Location)
			}
			if c.PropertyType != "" {
				assert.Equal(t, c.PropertyType, p.Type)
			}
			if c.PriceRange != nil {
				assert.GreaterOrEqual(t, p.Price, c.PriceRange.Min)
				if c.PriceRange.Max != nil {
					assert.LessOrEqual(t, p.Price, *c.PriceRange.Max)
				}
			}
			if c.Status != "" {
				assert.Equal(t, c.Status, p.Status)
			}
			if c.SearchQuery != "" {
				q := strings.ToLower(c.SearchQuery)
				hit := strings.Contains(strings.ToLower(p.Title), q) ||
					strings.Contains(strings.ToLower(p.Description), q) ||
					strings.Contains(strings.ToLower(p.Location), q) ||
					strings.Contains(strings.ToLower(p.Address), q)
				assert.True(t, hit, "property %d does not match query %q", p.ID, c.SearchQuery)
			}
		}
	}
}

func TestApply_Idempotent(t *testing.T) {
	props := catalogProperties()
	for _, c := range criteriaMatrix() {
		once := Apply(props, c)
		twice := Apply(once, c)
		assert.Equal(t, once, twice)
	}
}

func TestApply_PreservesOrder(t *testing.T) {
	props := catalogProperties()
	position := make(map[int]int, len(props))
	for i, p := range props {
		position[p.ID] = i
	}

	for _, c := range criteriaMatrix() {
		got := Apply(props, c)
		for i := 1; i < len(got); i++ {
			assert.Less(t, position[got[i-1].ID], position[got[i].ID])
		}
	}
}

func TestApply_CaseInsensitiveSearch(t *testing.T) {
	props := catalogProperties()
	upper := Apply(props, domain.FilterCriteria{SearchQuery: "VILLA"})
	lower := Apply(props, domain.FilterCriteria{SearchQuery: "villa"})

	require.NotEmpty(t, upper)
	assert.Equal(t, upper, lower)
	assert.Equal(t, []int{1, 3}, ids(upper))
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	props := catalogProperties()
	snapshot := catalogProperties()

	_ = Apply(props, domain.FilterCriteria{Status: "For Sale"})
	assert.Equal(t, snapshot, props)
}

// Локация сравнивается по подстроке, хотя значения приходят из выпадающего списка.
// "Mumbai" цепляет и "Navi Mumbai", поведение сохранено намеренно.
func TestApply_LocationMatchesSubstring(t *testing.T) {
	props := catalogProperties()

	got := Apply(props, domain.FilterCriteria{Location: "Mumbai"})
	assert.Equal(t, []int{2, 3, 4}, ids(got))

	// а вот регистр для локации важен
	got = Apply(props, domain.FilterCriteria{Location: "mumbai"})
	assert.Empty(t, got)
}

func TestOptions_FirstSeenOrder(t *testing.T) {
	opts := Options(sampleProperties())
	assert.Equal(t, []string{"Villa", "Apartment"}, opts.Types)
	assert.Equal(t, []string{"Goa", "Mumbai"}, opts.Locations)
	assert.Equal(t, []string{"For Sale", "For Rent"}, opts.Statuses)

	opts = Options(catalogProperties())
	assert.Equal(t, []string{"Goa", "Mumbai", "Navi Mumbai", "Pune"}, opts.Locations)
	assert.Equal(t, []string{"Villa", "Apartment", "Studio"}, opts.Types)
	assert.Equal(t, []string{"For Sale", "For Rent", "Sold"}, opts.Statuses)
}

func TestOptions_Empty(t *testing.T) {
	opts := Options(nil)
	assert.Empty(t, opts.Locations)
	assert.Empty(t, opts.Types)
	assert.Empty(t, opts.Statuses)
}

func TestFindByID(t *testing.T) {
	props := sampleProperties()

	p, ok := FindByID(props, 2)
	require.True(t, ok)
	assert.Equal(t, "City Apartment", p.Title)

	_, ok = FindByID(props, 99)
	assert.False(t, ok)

	_, ok = FindByID(nil, 1)
	assert.False(t, ok)
}

func TestFeatured(t *testing.T) {
	got := Featured(catalogProperties())
	assert.Equal(t, []int{4}, ids(got))
}

func ids(props []domain.Property) []int {
	out := make([]int, 0, len(props))
	for _, p := range props {
		out = append(out, p.ID)
	}
	return out
}
