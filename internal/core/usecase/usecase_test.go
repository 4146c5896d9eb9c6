package usecase

import (
	"context"
	"errors"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/filter"
	"listing-service/internal/core/port/usecases_port"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCatalog struct {
	dataset *domain.Dataset
}

func (f *fakeCatalog) Properties() []domain.Property { return f.dataset.Properties }
func (f *fakeCatalog) Agents() []domain.Agent        { return f.dataset.Agents }
func (f *fakeCatalog) Services() []domain.Service    { return f.dataset.Services }
func (f *fakeCatalog) Replace(ds *domain.Dataset)    { f.dataset = ds }

type fakeQueue struct {
	mu       sync.Mutex
	enqueued []domain.Inquiry
	err      error
}

func (q *fakeQueue) Enqueue(ctx context.Context, inquiry domain.Inquiry) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.err != nil {
		return q.err
	}
	q.enqueued = append(q.enqueued, inquiry)
	return nil
}

type fakeRelay struct {
	relayed []domain.Inquiry
	err     error
}

func (r *fakeRelay) Relay(ctx context.Context, inquiry domain.Inquiry) error {
	if r.err != nil {
		return r.err
	}
	r.relayed = append(r.relayed, inquiry)
	return nil
}

type fakeSource struct {
	dataset *domain.Dataset
	err     error
}

func (s *fakeSource) Load(ctx context.Context) (*domain.Dataset, error) { return s.dataset, s.err }
func (s *fakeSource) Name() string                                      { return "fake" }

func testDataset() *domain.Dataset {
	services := make([]domain.Service, 0, 8)
	for i := 1; i <= 8; i++ {
		services = append(services, domain.Service{ID: i, Title: "Service", Icon: "Home"})
	}
	return &domain.Dataset{
		Properties: []domain.Property{
			{ID: 1, Title: "Sea View Villa", Location: "Goa", Price: 2_000_000, Type: "Villa", Status: "For Sale", Featured: true},
			{ID: 2, Title: "City Apartment", Location: "Mumbai", Price: 6_000_000, Type: "Apartment", Status: "For Rent"},
			{ID: 3, Title: "Garden House", Location: "Pune", Price: 4_000_000, Type: "Villa", Status: "For Sale", Featured: true},
		},
		Agents:   []domain.Agent{{Name: "Raj"}, {Name: "Priya"}},
		Services: services,
	}
}

func TestFindPropertiesUseCase(t *testing.T) {
	uc := NewFindPropertiesUseCase(&fakeCatalog{dataset: testDataset()})

	res, err := uc.Execute(context.Background(), usecases_port.FindPropertiesQuery{
		Criteria: domain.FilterCriteria{PropertyType: "Villa"},
		Sort:     filter.SortPriceDesc,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Total)
	assert.Equal(t, 1, res.Page)
	assert.Equal(t, 2, res.PerPage)
	require.Len(t, res.Properties, 2)
	assert.Equal(t, 3, res.Properties[0].ID)
	assert.Equal(t, 1, res.Properties[1].ID)
}

func TestFindPropertiesUseCase_Paginated(t *testing.T) {
	uc := NewFindPropertiesUseCase(&fakeCatalog{dataset: testDataset()})

	res, err := uc.Execute(context.Background(), usecases_port.FindPropertiesQuery{Page: 2, PerPage: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Total)
	assert.Equal(t, 2, res.Page)
	require.Len(t, res.Properties, 1)
	assert.Equal(t, 3, res.Properties[0].ID)
}

func TestGetPropertyDetailsUseCase(t *testing.T) {
	uc := NewGetPropertyDetailsUseCase(&fakeCatalog{dataset: testDataset()})

	p, err := uc.Execute(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "City Apartment", p.Title)

	_, err = uc.Execute(context.Background(), 99)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrPropertyNotFound))
}

func TestGetFilterOptionsUseCase(t *testing.T) {
	uc := NewGetFilterOptionsUseCase(&fakeCatalog{dataset: testDataset()})

	opts, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Goa", "Mumbai", "Pune"}, opts.Locations)
	assert.Equal(t, []string{"Villa", "Apartment"}, opts.Types)
	assert.Equal(t, []string{"For Sale", "For Rent"}, opts.Statuses)
}

func TestGetHomeUseCase(t *testing.T) {
	uc := NewGetHomeUseCase(&fakeCatalog{dataset: testDataset()})

	view, err := uc.Execute(context.Background())
	require.NoError(t, err)
	require.Len(t, view.Featured, 2)
	assert.Equal(t, 1, view.Featured[0].ID)
	assert.Equal(t, 3, view.Featured[1].ID)
	assert.Len(t, view.Services, HomeServicesLimit)
}

func TestDirectoryUseCases(t *testing.T) {
	catalog := &fakeCatalog{dataset: testDataset()}

	agents, err := NewGetAgentsUseCase(catalog).Execute(context.Background())
	require.NoError(t, err)
	assert.Len(t, agents, 2)

	services, err := NewGetServicesUseCase(catalog).Execute(context.Background())
	require.NoError(t, err)
	assert.Len(t, services, 8)
}

func newSubmitUC(queue *fakeQueue, relay *fakeRelay) *SubmitInquiryUseCase {
	uc := NewSubmitInquiryUseCase(&fakeCatalog{dataset: testDataset()}, nil, NewRelayInquiryUseCase(relay),
		InquiryRedirects{Contact: "https://example.com", Property: "https://example.com/thank-you"})
	if queue != nil {
		uc.queue = queue
	}
	uc.now = func() time.Time { return time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC) }
	uc.newID = func() uuid.UUID { return uuid.MustParse("11111111-2222-3333-4444-555555555555") }
	return uc
}

func TestSubmitInquiryUseCase_RelaysDirectlyWithoutQueue(t *testing.T) {
	relay := &fakeRelay{}
	uc := newSubmitUC(nil, relay)

	res, err := uc.Execute(context.Background(), usecases_port.SubmitInquiryCommand{
		Kind:    domain.InquiryKindContact,
		Name:    "  Asha ",
		Email:   "asha@example.com",
		Subject: "Viewing",
		Message: "Hello",
	})
	require.NoError(t, err)
	assert.False(t, res.Queued)
	assert.False(t, res.Dropped)
	assert.Equal(t, "https://example.com", res.RedirectTo)

	require.Len(t, relay.relayed, 1)
	got := relay.relayed[0]
	assert.Equal(t, "Asha", got.Name)
	assert.Equal(t, res.InquiryID, got.ID)
	assert.Equal(t, time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC), got.CreatedAt)
}

func TestSubmitInquiryUseCase_PropertyInquiryIsQueued(t *testing.T) {
	queue := &fakeQueue{}
	relay := &fakeRelay{}
	uc := newSubmitUC(queue, relay)

	res, err := uc.Execute(context.Background(), usecases_port.SubmitInquiryCommand{
		Kind:       domain.InquiryKindProperty,
		PropertyID: 2,
		Name:       "Asha",
		Email:      "asha@example.com",
		Phone:      "+91 98765 43210",
		Message:    "Is it available?",
	})
	require.NoError(t, err)
	assert.True(t, res.Queued)
	assert.Equal(t, "https://example.com/thank-you", res.RedirectTo)
	assert.Empty(t, relay.relayed)

	require.Len(t, queue.enqueued, 1)
	assert.Equal(t, "Inquiry: City Apartment", queue.enqueued[0].Subject)
	assert.Equal(t, "City Apartment", queue.enqueued[0].PropertyTitle)
}

func TestSubmitInquiryUseCase_UnknownProperty(t *testing.T) {
	uc := newSubmitUC(nil, &fakeRelay{})

	_, err := uc.Execute(context.Background(), usecases_port.SubmitInquiryCommand{
		Kind:       domain.InquiryKindProperty,
		PropertyID: 42,
		Name:       "Asha",
		Email:      "asha@example.com",
	})
	assert.True(t, errors.Is(err, domain.ErrPropertyNotFound))
}

func TestSubmitInquiryUseCase_HoneypotDropsSilently(t *testing.T) {
	queue := &fakeQueue{}
	relay := &fakeRelay{}
	uc := newSubmitUC(queue, relay)

	res, err := uc.Execute(context.Background(), usecases_port.SubmitInquiryCommand{
		Kind:     domain.InquiryKindContact,
		Name:     "bot",
		Email:    "bot@example.com",
		Honeypot: "http://spam.example",
	})
	require.NoError(t, err)
	assert.True(t, res.Dropped)
	assert.Empty(t, queue.enqueued)
	assert.Empty(t, relay.relayed)
}

func TestSubmitInquiryUseCase_HoneypotOnUnknownPropertyIsNotFound(t *testing.T) {
	queue := &fakeQueue{}
	uc := newSubmitUC(queue, &fakeRelay{})

	res, err := uc.Execute(context.Background(), usecases_port.SubmitInquiryCommand{
		Kind:       domain.InquiryKindProperty,
		PropertyID: 999,
		Name:       "bot",
		Email:      "bot@example.com",
		Honeypot:   "http://spam.example",
	})
	assert.Nil(t, res)
	assert.True(t, errors.Is(err, domain.ErrPropertyNotFound))
	assert.Empty(t, queue.enqueued)
}

func TestSubmitInquiryUseCase_PropagatesRelayError(t *testing.T) {
	relay := &fakeRelay{err: domain.ErrRelayRejected}
	uc := newSubmitUC(nil, relay)

	_, err := uc.Execute(context.Background(), usecases_port.SubmitInquiryCommand{
		Kind: domain.InquiryKindContact, Name: "Asha", Email: "asha@example.com",
	})
	assert.True(t, errors.Is(err, domain.ErrRelayRejected))
}

func TestReloadDatasetUseCase(t *testing.T) {
	catalog := &fakeCatalog{dataset: testDataset()}
	fresh := &domain.Dataset{Properties: []domain.Property{{ID: 7}}}

	err := NewReloadDatasetUseCase(&fakeSource{dataset: fresh}, catalog).Execute(context.Background())
	require.NoError(t, err)
	assert.Same(t, fresh, catalog.dataset)

	// неудачная загрузка оставляет прежний снимок
	err = NewReloadDatasetUseCase(&fakeSource{err: errors.New("boom")}, catalog).Execute(context.Background())
	require.Error(t, err)
	assert.Same(t, fresh, catalog.dataset)
}
