package reserve_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/integrations/catalogservice"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fakeTxManager struct{ calls int }

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

type fakeBookingRepo struct {
	bookings []*domain.Booking
	created  *domain.Booking
	nextID   int64
}

func (r *fakeBookingRepo) GetWithFilter(_ context.Context, _ domain.SpecialistBookingsFilter) ([]*domain.Booking, error) {
	return r.bookings, nil
}

func (r *fakeBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	created := *b
	created.ID = r.nextID
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	r.created = &created
	return &created, nil
}

type fakeCatalog struct {
	service    *catalogservice.Service
	specialist *catalogservice.Specialist
}

func (c *fakeCatalog) GetService(_ context.Context, _, serviceID int64) (*catalogservice.Service, error) {
	if c.service == nil || c.service.ID != serviceID {
		return nil, catalogservice.ErrServiceNotFound
	}
	return c.service, nil
}

func (c *fakeCatalog) GetSpecialist(_ context.Context, _, specialistID int64) (*catalogservice.Specialist, error) {
	if c.specialist == nil || c.specialist.ID != specialistID {
		return nil, catalogservice.ErrSpecialistNotFound
	}
	return c.specialist, nil
}

type fakeCache struct{ deletedPrefixes []string }

func (c *fakeCache) DeleteByPrefix(_ context.Context, prefix string) error {
	c.deletedPrefixes = append(c.deletedPrefixes, prefix)
	return nil
}

var day = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC) // Monday

func at(hour, minute int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, time.UTC)
}

func fullWeek(open, close string) catalogservice.WeekSchedule {
	d := catalogservice.DaySchedule{
		IsOpen:  true,
		Windows: []catalogservice.TimeWindow{{OpenTime: open, CloseTime: close}},
	}
	return catalogservice.WeekSchedule{
		Monday: d, Tuesday: d, Wednesday: d, Thursday: d, Friday: d, Saturday: d, Sunday: d,
	}
}

func setup(existing []*domain.Booking) (*UseCase, *fakeBookingRepo, *fakeCache, *fakeTxManager) {
	repo := &fakeBookingRepo{bookings: existing, nextID: 77}
	catalog := &fakeCatalog{
		service: &catalogservice.Service{
			ID:                     10,
			ShopID:                 1,
			Name:                   "Haircut",
			DurationMinutes:        60,
			BufferBeforeMinutes:    5,
			BufferAfterMinutes:     10,
			QualifiedSpecialistIDs: []int64{100},
		},
		specialist: &catalogservice.Specialist{
			ID:           100,
			ShopID:       1,
			Active:       true,
			WorkingHours: fullWeek("09:00", "18:00"),
		},
	}
	cache := &fakeCache{}
	tx := &fakeTxManager{}

	uc := NewUseCase(repo, catalog, cache, tx, nopLogger{})
	uc.timeProvider = fixedTime{now: at(8, 0)}
	return uc, repo, cache, tx
}

func validRequest() *Request {
	return &Request{
		ShopID:       1,
		ServiceID:    10,
		SpecialistID: 100,
		CustomerID:   500,
		StartTime:    at(11, 0),
	}
}

func TestExecute_ReservesFreeSlot(t *testing.T) {
	uc, repo, cache, tx := setup(nil)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(77), resp.ID)
	assert.Equal(t, at(11, 0), resp.StartTime)
	assert.Equal(t, at(12, 0), resp.EndTime)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Equal(t, "Haircut", resp.ServiceName)
	assert.Equal(t, 5, resp.BufferBefore)
	assert.Equal(t, 10, resp.BufferAfter)

	require.NotNil(t, repo.created)
	assert.Equal(t, day, repo.created.BookingDate)

	assert.Equal(t, 1, tx.calls)
	require.Len(t, cache.deletedPrefixes, 1)
	assert.Equal(t, "slots:v1:1:2025-06-02:", cache.deletedPrefixes[0])
}

func TestExecute_SlotTakenInsideTransaction(t *testing.T) {
	existing := &domain.Booking{
		ID:           42,
		SpecialistID: 100,
		StartTime:    at(11, 30),
		EndTime:      at(12, 30),
		Status:       domain.StatusScheduled,
	}
	uc, repo, cache, _ := setup([]*domain.Booking{existing})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Nil(t, repo.created)
	assert.Empty(t, cache.deletedPrefixes)
}

func TestExecute_BufferedFootprintCollides(t *testing.T) {
	// booking ends 10:58; candidate footprint starts 10:55 (buffer before)
	existing := &domain.Booking{
		ID:           43,
		SpecialistID: 100,
		StartTime:    at(9, 58),
		EndTime:      at(10, 58),
		Status:       domain.StatusConfirmed,
	}
	uc, _, _, _ := setup([]*domain.Booking{existing})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_SpecialistNotWorking(t *testing.T) {
	uc, _, _, _ := setup(nil)

	req := validRequest()
	req.StartTime = at(17, 30) // footprint runs past 18:00
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSpecialistNotWorking)
}

func TestExecute_NotQualified(t *testing.T) {
	uc, _, _, _ := setup(nil)
	uc.catalogClient.(*fakeCatalog).service.QualifiedSpecialistIDs = []int64{200}

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSpecialistNotQualified)
}

func TestExecute_InactiveSpecialist(t *testing.T) {
	uc, _, _, _ := setup(nil)
	uc.catalogClient.(*fakeCatalog).specialist.Active = false

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSpecialistNotQualified)
}

func TestExecute_StartInPast(t *testing.T) {
	uc, _, _, _ := setup(nil)
	uc.timeProvider = fixedTime{now: at(12, 0)}

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_ValidationErrors(t *testing.T) {
	uc, _, _, _ := setup(nil)

	req := validRequest()
	req.CustomerID = 0
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = validRequest()
	req.StartTime = time.Time{}
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_UnknownService(t *testing.T) {
	uc, _, _, _ := setup(nil)

	req := validRequest()
	req.ServiceID = 999
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}
