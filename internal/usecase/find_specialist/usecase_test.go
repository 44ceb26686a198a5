package find_specialist

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	storage "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SchedulingService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-SchedulingService/internal/service/scoring"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeBookingRepo struct {
	bookings  map[int64][]*domain.Booking
	dayCounts map[int64]int
	waits     map[int64]float64
	perf      map[int64]storage.PerformanceRow
}

func (r *fakeBookingRepo) GetWithFilter(_ context.Context, filter domain.SpecialistBookingsFilter) ([]*domain.Booking, error) {
	if filter.SpecialistID == nil {
		return nil, nil
	}
	return r.bookings[*filter.SpecialistID], nil
}

func (r *fakeBookingRepo) GetDayBookingCounts(_ context.Context, _ int64, _ time.Time) (map[int64]int, error) {
	return r.dayCounts, nil
}

func (r *fakeBookingRepo) GetWaitTimeAverages(_ context.Context, _ int64, _ []int64, _ time.Time) (map[int64]float64, error) {
	return r.waits, nil
}

func (r *fakeBookingRepo) GetPerformanceStats(_ context.Context, _ []int64, _ time.Time) (map[int64]storage.PerformanceRow, error) {
	return r.perf, nil
}

type fakePreferenceRepo struct {
	prefs map[int64]domain.CustomerPreference
}

func (r *fakePreferenceRepo) GetByCustomerAndSpecialists(_ context.Context, _ int64, _ []int64) (map[int64]domain.CustomerPreference, error) {
	return r.prefs, nil
}

type fakeCatalog struct {
	service     *catalogservice.Service
	specialists []*catalogservice.Specialist
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

func specialist(id int64, skills ...catalogservice.SpecialistSkill) *catalogservice.Specialist {
	return &catalogservice.Specialist{
		ID:           id,
		ShopID:       1,
		Active:       true,
		WorkingHours: fullWeek("09:00", "18:00"),
		Skills:       skills,
	}
}

func setup(repo *fakeBookingRepo, specialists ...*catalogservice.Specialist) *UseCase {
	scorer, err := scoring.NewService(scoring.DefaultConfig())
	if err != nil {
		panic(err)
	}

	if repo.dayCounts == nil {
		repo.dayCounts = map[int64]int{}
	}
	if repo.waits == nil {
		repo.waits = map[int64]float64{}
	}
	if repo.perf == nil {
		repo.perf = map[int64]storage.PerformanceRow{}
	}

	ids := make([]int64, 0, len(specialists))
	for _, sp := range specialists {
		ids = append(ids, sp.ID)
	}

	catalog := &fakeCatalog{
		service: &catalogservice.Service{
			ID:                     10,
			ShopID:                 1,
			DurationMinutes:        60,
			BufferBeforeMinutes:    5,
			BufferAfterMinutes:     5,
			QualifiedSpecialistIDs: ids,
		},
		specialists: specialists,
	}

	uc := NewUseCase(repo, &fakePreferenceRepo{prefs: map[int64]domain.CustomerPreference{}}, catalog, scorer, nopLogger{})
	uc.timeProvider = fixedTime{now: at(8, 0)}
	return uc
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

func TestExecute_WorkloadDecides(t *testing.T) {
	// no skills, no preferences, no history: only workload separates X and Y
	repo := &fakeBookingRepo{dayCounts: map[int64]int{100: 0, 200: 5}}
	uc := setup(repo, specialist(100), specialist(200))

	resp, err := uc.Execute(context.Background(), &Request{
		ShopID: 1, ServiceID: 10, StartTime: at(11, 0),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(100), resp.Best.SpecialistID)
	require.Len(t, resp.Ranked, 2)

	assert.Equal(t, 1.0, resp.Ranked[0].SubScores.Workload)
	assert.Equal(t, 0.0, resp.Ranked[1].SubScores.Workload)

	// the gap comes entirely from the workload term
	assert.InDelta(t, 0.30, resp.Ranked[0].Score-resp.Ranked[1].Score, 1e-9)
}

func TestExecute_ConflictingSpecialistFiltered(t *testing.T) {
	repo := &fakeBookingRepo{
		bookings: map[int64][]*domain.Booking{
			100: {{
				ID: 1, SpecialistID: 100,
				StartTime: at(11, 30), EndTime: at(12, 30),
				Status: domain.StatusConfirmed,
			}},
		},
	}
	uc := setup(repo, specialist(100), specialist(200))

	resp, err := uc.Execute(context.Background(), &Request{
		ShopID: 1, ServiceID: 10, StartTime: at(11, 0),
	})
	require.NoError(t, err)

	require.Len(t, resp.Ranked, 1)
	assert.Equal(t, int64(200), resp.Best.SpecialistID)
}

func TestExecute_RequiredSkillsFilter(t *testing.T) {
	repo := &fakeBookingRepo{}
	uc := setup(repo,
		specialist(100, catalogservice.SpecialistSkill{SkillID: 7, Proficiency: 4}),
		specialist(200),
	)

	resp, err := uc.Execute(context.Background(), &Request{
		ShopID: 1, ServiceID: 10, StartTime: at(11, 0),
		RequiredSkillIDs: []int64{7},
	})
	require.NoError(t, err)

	require.Len(t, resp.Ranked, 1)
	assert.Equal(t, int64(100), resp.Best.SpecialistID)
}

func TestExecute_NoEligibleSpecialists(t *testing.T) {
	repo := &fakeBookingRepo{}
	inactive := specialist(100)
	inactive.Active = false
	uc := setup(repo, inactive)

	_, err := uc.Execute(context.Background(), &Request{
		ShopID: 1, ServiceID: 10, StartTime: at(11, 0),
	})
	assert.ErrorIs(t, err, ErrNoSpecialistAvailable)
}

func TestExecute_OutsideWorkingWindow(t *testing.T) {
	repo := &fakeBookingRepo{}
	uc := setup(repo, specialist(100))

	// footprint 17:25..18:35 runs past the 18:00 close
	_, err := uc.Execute(context.Background(), &Request{
		ShopID: 1, ServiceID: 10, StartTime: at(17, 30),
	})
	assert.ErrorIs(t, err, ErrNoSpecialistAvailable)
}

func TestExecute_PreferenceBreaksTie(t *testing.T) {
	repo := &fakeBookingRepo{}
	uc := setup(repo, specialist(100), specialist(200))
	uc.preferenceRepo = &fakePreferenceRepo{prefs: map[int64]domain.CustomerPreference{
		200: {CustomerID: 500, SpecialistID: 200, Rating: ptr.Ptr(5), Preferred: true},
	}}

	resp, err := uc.Execute(context.Background(), &Request{
		ShopID: 1, ServiceID: 10, StartTime: at(11, 0),
		CustomerID: ptr.Ptr(int64(500)),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(200), resp.Best.SpecialistID)
	assert.Greater(t, resp.Ranked[0].SubScores.Preference, resp.Ranked[1].SubScores.Preference)
}

func TestExecute_RankedCappedAtThree(t *testing.T) {
	repo := &fakeBookingRepo{}
	uc := setup(repo, specialist(100), specialist(200), specialist(300), specialist(400))

	resp, err := uc.Execute(context.Background(), &Request{
		ShopID: 1, ServiceID: 10, StartTime: at(11, 0),
	})
	require.NoError(t, err)

	assert.Len(t, resp.Ranked, 3)
	// equal scores fall back to ascending id ordering
	assert.Equal(t, int64(100), resp.Ranked[0].SpecialistID)
}

func TestExecute_ValidationErrors(t *testing.T) {
	uc := setup(&fakeBookingRepo{}, specialist(100))

	_, err := uc.Execute(context.Background(), &Request{ShopID: 0, ServiceID: 10, StartTime: at(11, 0)})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{ShopID: 1, ServiceID: 10})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
