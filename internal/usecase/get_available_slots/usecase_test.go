package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeBookingRepo struct {
	bookings map[int64][]*domain.Booking // keyed by specialist id
	calls    int
}

func (r *fakeBookingRepo) GetWithFilter(_ context.Context, filter domain.SpecialistBookingsFilter) ([]*domain.Booking, error) {
	r.calls++
	if filter.SpecialistID == nil {
		return nil, nil
	}
	return r.bookings[*filter.SpecialistID], nil
}

type fakeCatalog struct {
	shop        *catalogservice.Shop
	service     *catalogservice.Service
	specialists []*catalogservice.Specialist
}

func (c *fakeCatalog) GetShop(_ context.Context, shopID int64) (*catalogservice.Shop, error) {
	if c.shop == nil || c.shop.ID != shopID {
		return nil, catalogservice.ErrShopNotFound
	}
	return c.shop, nil
}

func (c *fakeCatalog) GetService(_ context.Context, _, serviceID int64) (*catalogservice.Service, error) {
	if c.service == nil || c.service.ID != serviceID {
		return nil, catalogservice.ErrServiceNotFound
	}
	return c.service, nil
}

func (c *fakeCatalog) GetSpecialists(_ context.Context, _ int64) ([]*catalogservice.Specialist, error) {
	return c.specialists, nil
}

type fakeCache struct {
	entries map[string][]domain.TimeInterval
	sets    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string][]domain.TimeInterval)}
}

func (c *fakeCache) GetSlots(_ context.Context, key string) ([]domain.TimeInterval, bool, error) {
	slots, ok := c.entries[key]
	return slots, ok, nil
}

func (c *fakeCache) SetSlots(_ context.Context, key string, slots []domain.TimeInterval, _ time.Duration) error {
	c.entries[key] = slots
	c.sets++
	return nil
}

func weekdaysOnly(open, close string) catalogservice.WeekSchedule {
	day := catalogservice.DaySchedule{
		IsOpen:  true,
		Windows: []catalogservice.TimeWindow{{OpenTime: open, CloseTime: close}},
	}
	return catalogservice.WeekSchedule{
		Monday:    day,
		Tuesday:   day,
		Wednesday: day,
		Thursday:  day,
		Friday:    day,
	}
}

func testBooking(specialistID int64, start, end time.Time) *domain.Booking {
	return &domain.Booking{
		ID:           start.Unix(),
		ShopID:       1,
		ServiceID:    10,
		SpecialistID: specialistID,
		BookingDate:  testDay,
		StartTime:    start,
		EndTime:      end,
		Status:       domain.StatusConfirmed,
	}
}

func testSetup(bookings map[int64][]*domain.Booking) (*UseCase, *fakeBookingRepo, *fakeCache) {
	catalog := &fakeCatalog{
		shop: &catalogservice.Shop{ID: 1, Name: "Main Street", WorkingHours: weekdaysOnly("09:00", "18:00")},
		service: &catalogservice.Service{
			ID:                     10,
			ShopID:                 1,
			DurationMinutes:        60,
			BufferBeforeMinutes:    5,
			BufferAfterMinutes:     10,
			SlotGranularityMinutes: 30,
			QualifiedSpecialistIDs: []int64{100, 200},
		},
		specialists: []*catalogservice.Specialist{
			{ID: 100, ShopID: 1, Active: true, WorkingHours: weekdaysOnly("09:00", "18:00")},
			{ID: 200, ShopID: 1, Active: true, WorkingHours: weekdaysOnly("09:00", "18:00")},
		},
	}

	repo := &fakeBookingRepo{bookings: bookings}
	cache := newFakeCache()
	uc := NewUseCase(repo, catalog, cache, 15*time.Minute, nopLogger{})
	return uc, repo, cache
}

func TestExecute_SingleSpecialistWithBooking(t *testing.T) {
	uc, _, cache := testSetup(map[int64][]*domain.Booking{
		100: {testBooking(100, at(10, 0), at(11, 0))},
	})

	resp, err := uc.Execute(context.Background(), &Request{
		ShopID:       1,
		ServiceID:    10,
		Date:         testDay,
		SpecialistID: ptr.Ptr(int64(100)),
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Slots)

	assert.False(t, resp.FromCache)
	assert.Equal(t, 60, resp.DurationMinutes)

	// every cursor up to 10:30 collides with the booking through its
	// buffered footprint, so 11:05 is the first bookable start
	assert.Equal(t, at(11, 5), resp.Slots[0].Start)
	assert.Equal(t, at(12, 5), resp.Slots[0].End)

	assert.Equal(t, 1, cache.sets)
}

func TestExecute_MergedAcrossSpecialists(t *testing.T) {
	uc, _, _ := testSetup(map[int64][]*domain.Booking{
		100: {testBooking(100, at(9, 0), at(13, 0))},
		200: {testBooking(200, at(13, 0), at(18, 0))},
	})

	resp, err := uc.Execute(context.Background(), &Request{ShopID: 1, ServiceID: 10, Date: testDay})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Slots)

	// merged result is sorted and deduplicated
	for i := 1; i < len(resp.Slots); i++ {
		assert.True(t, resp.Slots[i-1].Start.Before(resp.Slots[i].Start) ||
			(resp.Slots[i-1].Start.Equal(resp.Slots[i].Start) && resp.Slots[i-1].End.Before(resp.Slots[i].End)))
	}

	// specialist 100 is free from 13:00, specialist 200 until 13:00;
	// the union still spans both halves of the day
	assert.Equal(t, at(9, 5), resp.Slots[0].Start)
	last := resp.Slots[len(resp.Slots)-1]
	assert.Equal(t, at(16, 35), last.Start)
}

func TestExecute_DedupIdenticalSlots(t *testing.T) {
	uc, _, _ := testSetup(map[int64][]*domain.Booking{})

	all, err := uc.Execute(context.Background(), &Request{ShopID: 1, ServiceID: 10, Date: testDay})
	require.NoError(t, err)

	one, err := uc.Execute(context.Background(), &Request{
		ShopID: 1, ServiceID: 10, Date: testDay, SpecialistID: ptr.Ptr(int64(100)),
	})
	require.NoError(t, err)

	// both specialists are fully free, so the merged set collapses to a
	// single specialist's slots
	assert.Equal(t, len(one.Slots), len(all.Slots))
}

func TestExecute_CacheHitSkipsRecomputation(t *testing.T) {
	uc, repo, cache := testSetup(map[int64][]*domain.Booking{})

	key := CacheKey(1, testDay, 10, nil, 60, 30)
	cache.entries[key] = []domain.TimeInterval{span(9, 5, 10, 5)}

	resp, err := uc.Execute(context.Background(), &Request{ShopID: 1, ServiceID: 10, Date: testDay})
	require.NoError(t, err)

	assert.True(t, resp.FromCache)
	require.Len(t, resp.Slots, 1)
	assert.Equal(t, 0, repo.calls)
}

func TestExecute_ShopClosed(t *testing.T) {
	uc, _, _ := testSetup(map[int64][]*domain.Booking{})

	sunday := testDay.AddDate(0, 0, -1)
	resp, err := uc.Execute(context.Background(), &Request{ShopID: 1, ServiceID: 10, Date: sunday})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_ServiceAvailabilityNarrowsShopHours(t *testing.T) {
	uc, _, _ := testSetup(map[int64][]*domain.Booking{})
	availability := weekdaysOnly("10:00", "12:00")
	ucCatalog := uc.catalogClient.(*fakeCatalog)
	ucCatalog.service.Availability = &availability

	resp, err := uc.Execute(context.Background(), &Request{ShopID: 1, ServiceID: 10, Date: testDay})
	require.NoError(t, err)

	// footprint is 75 minutes: only cursors 10:00 and 10:30 fit inside
	require.Len(t, resp.Slots, 2)
	assert.Equal(t, at(10, 5), resp.Slots[0].Start)
	assert.Equal(t, at(10, 35), resp.Slots[1].Start)
}

func TestExecute_Overrides(t *testing.T) {
	uc, _, _ := testSetup(map[int64][]*domain.Booking{})

	resp, err := uc.Execute(context.Background(), &Request{
		ShopID:              1,
		ServiceID:           10,
		Date:                testDay,
		SpecialistID:        ptr.Ptr(int64(100)),
		DurationOverride:    ptr.Ptr(30),
		GranularityOverride: ptr.Ptr(60),
	})
	require.NoError(t, err)

	assert.Equal(t, 30, resp.DurationMinutes)
	require.NotEmpty(t, resp.Slots)
	assert.Equal(t, at(9, 5), resp.Slots[0].Start)
	assert.Equal(t, at(9, 35), resp.Slots[0].End)
	assert.Equal(t, at(10, 5), resp.Slots[1].Start)
}

func TestExecute_SpecialistNotFound(t *testing.T) {
	uc, _, _ := testSetup(map[int64][]*domain.Booking{})

	_, err := uc.Execute(context.Background(), &Request{
		ShopID:       1,
		ServiceID:    10,
		Date:         testDay,
		SpecialistID: ptr.Ptr(int64(999)),
	})
	assert.ErrorIs(t, err, ErrSpecialistNotFound)
}

func TestExecute_UnqualifiedSpecialistGetsNoSlots(t *testing.T) {
	uc, _, _ := testSetup(map[int64][]*domain.Booking{})
	ucCatalog := uc.catalogClient.(*fakeCatalog)
	ucCatalog.specialists = append(ucCatalog.specialists,
		&catalogservice.Specialist{ID: 300, ShopID: 1, Active: true, WorkingHours: weekdaysOnly("09:00", "18:00")})

	resp, err := uc.Execute(context.Background(), &Request{
		ShopID:       1,
		ServiceID:    10,
		Date:         testDay,
		SpecialistID: ptr.Ptr(int64(300)),
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_ValidationErrors(t *testing.T) {
	uc, _, _ := testSetup(map[int64][]*domain.Booking{})

	_, err := uc.Execute(context.Background(), &Request{ShopID: 0, ServiceID: 10, Date: testDay})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{ShopID: 1, ServiceID: 10})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{
		ShopID: 1, ServiceID: 10, Date: testDay, DurationOverride: ptr.Ptr(0),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestIsSlotAvailable_Tolerance(t *testing.T) {
	uc, _, _ := testSetup(map[int64][]*domain.Booking{})

	req := &Request{ShopID: 1, ServiceID: 10, Date: testDay, SpecialistID: ptr.Ptr(int64(100))}

	ok, err := uc.IsSlotAvailable(context.Background(), req, at(9, 5))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = uc.IsSlotAvailable(context.Background(), req, at(9, 5).Add(40*time.Second))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = uc.IsSlotAvailable(context.Background(), req, at(9, 10))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEarliestSlot_SkipsClosedDays(t *testing.T) {
	uc, _, _ := testSetup(map[int64][]*domain.Booking{})

	saturday := testDay.AddDate(0, 0, -2)
	resp, err := uc.EarliestSlot(context.Background(), &EarliestRequest{
		ShopID:      1,
		ServiceID:   10,
		StartDate:   saturday,
		DaysToCheck: 7,
	})
	require.NoError(t, err)

	require.True(t, resp.Found)
	assert.Equal(t, testDay, resp.Date)
	require.NotNil(t, resp.Slot)
	assert.Equal(t, at(9, 5), resp.Slot.Start)
}

func TestEarliestSlot_NoneWithinHorizon(t *testing.T) {
	uc, _, _ := testSetup(map[int64][]*domain.Booking{})
	ucCatalog := uc.catalogClient.(*fakeCatalog)
	ucCatalog.shop.WorkingHours = catalogservice.WeekSchedule{} // closed all week

	resp, err := uc.EarliestSlot(context.Background(), &EarliestRequest{
		ShopID:      1,
		ServiceID:   10,
		StartDate:   testDay,
		DaysToCheck: 14,
	})
	require.NoError(t, err)
	assert.False(t, resp.Found)
	assert.Nil(t, resp.Slot)
}

func TestEarliestSlot_ValidationErrors(t *testing.T) {
	uc, _, _ := testSetup(map[int64][]*domain.Booking{})

	_, err := uc.EarliestSlot(context.Background(), &EarliestRequest{
		ShopID: 1, ServiceID: 10, StartDate: testDay, DaysToCheck: 0,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.EarliestSlot(context.Background(), &EarliestRequest{
		ShopID: 1, ServiceID: 10, StartDate: testDay, DaysToCheck: maxDaysToCheck + 1,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
