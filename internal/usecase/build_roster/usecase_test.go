package build_roster

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	rosterStorage "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/roster"
	"github.com/m04kA/SMC-SchedulingService/internal/integrations/catalogservice"
)

// Monday
var testStart = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeBookingRepo struct {
	history []*domain.Booking
}

func (r *fakeBookingRepo) GetWithFilter(_ context.Context, _ domain.SpecialistBookingsFilter) ([]*domain.Booking, error) {
	return r.history, nil
}

type fakeRosterRepo struct {
	saves       int
	saveErr     error
	nextID      int64
	gotShopID   int64
	gotStart    time.Time
	gotDays     int
	gotSchedule []domain.ShiftAssignment
}

func (r *fakeRosterRepo) Save(_ context.Context, shopID int64, startDate time.Time, days int, assignments []domain.ShiftAssignment) (int64, error) {
	r.saves++
	if r.saveErr != nil {
		return 0, r.saveErr
	}
	r.gotShopID = shopID
	r.gotStart = startDate
	r.gotDays = days
	r.gotSchedule = assignments
	return r.nextID, nil
}

type fakeCatalog struct {
	shop        *catalogservice.Shop
	shopErr     error
	specialists []*catalogservice.Specialist
}

func (c *fakeCatalog) GetShop(_ context.Context, _ int64) (*catalogservice.Shop, error) {
	if c.shopErr != nil {
		return nil, c.shopErr
	}
	return c.shop, nil
}

func (c *fakeCatalog) GetSpecialists(_ context.Context, _ int64) ([]*catalogservice.Specialist, error) {
	return c.specialists, nil
}

type fakeTxManager struct {
	calls int
}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

func fullWeek(open, close string) catalogservice.WeekSchedule {
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
		Saturday:  day,
		Sunday:    day,
	}
}

func staff(id int64, maxWeekly int) *catalogservice.Specialist {
	return &catalogservice.Specialist{ID: id, ShopID: 1, Active: true, MaxWeeklyHours: maxWeekly}
}

func historyBooking(specialistID int64, start time.Time, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ShopID:       1,
		SpecialistID: specialistID,
		StartTime:    start,
		EndTime:      start.Add(time.Hour),
		Status:       status,
	}
}

func newTestUseCase(t *testing.T, params Params, catalog *fakeCatalog, history []*domain.Booking) (*UseCase, *fakeRosterRepo, *fakeTxManager) {
	t.Helper()
	roster := &fakeRosterRepo{nextID: 1}
	tx := &fakeTxManager{}
	uc, err := NewUseCase(&fakeBookingRepo{history: history}, roster, catalog, tx, params, nopLogger{})
	require.NoError(t, err)
	return uc, roster, tx
}

func warningsOfType(warnings []Warning, warnType string) []Warning {
	var result []Warning
	for _, w := range warnings {
		if w.Type == warnType {
			result = append(result, w)
		}
	}
	return result
}

// staffedHours распределение назначений: дата -> час -> число мастеров
func staffedHours(schedule []domain.ShiftAssignment) map[string]map[int]int {
	result := make(map[string]map[int]int)
	for _, a := range schedule {
		date := a.Date.String()
		if result[date] == nil {
			result[date] = make(map[int]int)
		}
		for _, h := range a.Hours {
			result[date][h]++
		}
	}
	return result
}

func TestExecute_CoversAllHoursWithSufficientCapacity(t *testing.T) {
	// 56 открытых часов в неделю против ёмкости 3x20=60: каждый час
	// закрыт, без предупреждений о дефиците
	catalog := &fakeCatalog{
		shop:        &catalogservice.Shop{ID: 1, WorkingHours: fullWeek("09:00", "17:00")},
		specialists: []*catalogservice.Specialist{staff(101, 20), staff(102, 20), staff(103, 20)},
	}
	uc, _, _ := newTestUseCase(t, DefaultParams(), catalog, nil)

	resp, err := uc.Execute(context.Background(), &Request{ShopID: 1, StartDate: testStart, Days: 7, DryRun: true})
	require.NoError(t, err)

	assert.Empty(t, warningsOfType(resp.Warnings, WarnInsufficientCapacity))
	assert.Empty(t, warningsOfType(resp.Warnings, WarnUnderstaffed))
	assert.Empty(t, warningsOfType(resp.Warnings, WarnShortShift))
	assert.Empty(t, warningsOfType(resp.Warnings, WarnLongShift))
	assert.Empty(t, warningsOfType(resp.Warnings, WarnSplitShift))

	assert.Equal(t, 56, resp.Stats.TotalRequiredHours)
	assert.Equal(t, 56, resp.Stats.TotalAssignedHours)
	assert.InDelta(t, 100, resp.Stats.CoveragePct, 0.001)

	counts := staffedHours(resp.Schedule)
	for day := 0; day < 7; day++ {
		date := domain.NewDateKey(testStart.AddDate(0, 0, day)).String()
		for hour := 9; hour < 17; hour++ {
			assert.GreaterOrEqual(t, counts[date][hour], 1, "date %s hour %d uncovered", date, hour)
		}
	}

	for _, a := range resp.Schedule {
		assert.True(t, a.IsContiguous(), "staff %d on %s has a split shift", a.StaffID, a.Date)
	}

	assert.Empty(t, resp.Suggestions)
}

func TestExecute_ZeroDemandUsesMinimumCoverage(t *testing.T) {
	params := DefaultParams()
	params.MinStaffCoverage = 2
	params.MinShiftHours = 1

	catalog := &fakeCatalog{
		shop:        &catalogservice.Shop{ID: 1, WorkingHours: fullWeek("10:00", "12:00")},
		specialists: []*catalogservice.Specialist{staff(101, 10), staff(102, 10), staff(103, 10)},
	}
	uc, _, _ := newTestUseCase(t, params, catalog, nil)

	resp, err := uc.Execute(context.Background(), &Request{ShopID: 1, StartDate: testStart, Days: 1, DryRun: true})
	require.NoError(t, err)

	// спрос нулевой, покрытие задаёт нижняя граница
	require.Len(t, resp.Coverage, 2)
	for _, c := range resp.Coverage {
		assert.Equal(t, 2, c.Required)
	}

	counts := staffedHours(resp.Schedule)
	assert.Equal(t, 2, counts[testStart.Format(domain.DateFormat)][10])
	assert.Equal(t, 2, counts[testStart.Format(domain.DateFormat)][11])
	assert.Empty(t, warningsOfType(resp.Warnings, WarnUnderstaffed))
}

func TestExecute_ForecastAveragesHistory(t *testing.T) {
	// две брони в 10:00 прошлых понедельников при окне в четыре недели
	// дают прогноз 0.5; отменённые в спрос не входят
	history := []*domain.Booking{
		historyBooking(101, testStart.AddDate(0, 0, -7).Add(10*time.Hour), domain.StatusCompleted),
		historyBooking(101, testStart.AddDate(0, 0, -14).Add(10*time.Hour), domain.StatusCompleted),
		historyBooking(101, testStart.AddDate(0, 0, -7).Add(14*time.Hour), domain.StatusCancelled),
		historyBooking(101, testStart.AddDate(0, 0, -14).Add(14*time.Hour), domain.StatusCancelled),
	}
	catalog := &fakeCatalog{
		shop:        &catalogservice.Shop{ID: 1, WorkingHours: fullWeek("09:00", "17:00")},
		specialists: []*catalogservice.Specialist{staff(101, 40), staff(102, 40)},
	}
	uc, _, _ := newTestUseCase(t, DefaultParams(), catalog, history)

	resp, err := uc.Execute(context.Background(), &Request{ShopID: 1, StartDate: testStart, Days: 7, DryRun: true})
	require.NoError(t, err)

	monday := resp.DemandForecast[testStart.Format(domain.DateFormat)]
	require.NotNil(t, monday)
	assert.InDelta(t, 0.5, monday[10], 0.001)

	_, ok := monday[14]
	assert.False(t, ok, "cancelled bookings must not contribute to demand")

	tuesday := resp.DemandForecast[testStart.AddDate(0, 0, 1).Format(domain.DateFormat)]
	assert.Empty(t, tuesday)
}

func TestExecute_HighDemandRaisesRequiredCoverage(t *testing.T) {
	// 24 брони за четыре недели -> 6 единиц спроса в час -> floor(6/3)=2
	var history []*domain.Booking
	for i := 0; i < 24; i++ {
		history = append(history, historyBooking(101, testStart.AddDate(0, 0, -7).Add(10*time.Hour), domain.StatusCompleted))
	}
	catalog := &fakeCatalog{
		shop:        &catalogservice.Shop{ID: 1, WorkingHours: fullWeek("09:00", "17:00")},
		specialists: []*catalogservice.Specialist{staff(101, 40), staff(102, 40), staff(103, 40)},
	}
	uc, _, _ := newTestUseCase(t, DefaultParams(), catalog, history)

	resp, err := uc.Execute(context.Background(), &Request{ShopID: 1, StartDate: testStart, Days: 7, DryRun: true})
	require.NoError(t, err)

	mondayKey := testStart.Format(domain.DateFormat)
	for _, c := range resp.Coverage {
		if c.Date.String() == mondayKey && c.Hour == 10 {
			assert.Equal(t, 2, c.Required)
		} else {
			assert.Equal(t, 1, c.Required, "date %s hour %d", c.Date, c.Hour)
		}
	}
}

func splitDaySchedule() catalogservice.WeekSchedule {
	return catalogservice.WeekSchedule{
		Monday: catalogservice.DaySchedule{
			IsOpen: true,
			Windows: []catalogservice.TimeWindow{
				{OpenTime: "09:00", CloseTime: "11:00"},
				{OpenTime: "14:00", CloseTime: "16:00"},
			},
		},
	}
}

func TestExecute_NoSplitShiftsWhenDisallowed(t *testing.T) {
	catalog := &fakeCatalog{
		shop:        &catalogservice.Shop{ID: 1, WorkingHours: splitDaySchedule()},
		specialists: []*catalogservice.Specialist{staff(101, 40)},
	}
	uc, _, _ := newTestUseCase(t, DefaultParams(), catalog, nil)

	resp, err := uc.Execute(context.Background(), &Request{ShopID: 1, StartDate: testStart, Days: 1, DryRun: true})
	require.NoError(t, err)

	// единственный мастер закрывает утреннее окно; дневное остаётся
	// пустым, потому что разрыв смены запрещён
	for _, a := range resp.Schedule {
		assert.True(t, a.IsContiguous())
	}

	understaffed := warningsOfType(resp.Warnings, WarnUnderstaffed)
	require.Len(t, understaffed, 2)
	var hours []int
	for _, w := range understaffed {
		require.NotNil(t, w.Hour)
		hours = append(hours, *w.Hour)
	}
	assert.ElementsMatch(t, []int{14, 15}, hours)
}

func TestExecute_SplitShiftsAllowedCoverBothWindows(t *testing.T) {
	params := DefaultParams()
	params.AllowSplitShifts = true

	catalog := &fakeCatalog{
		shop:        &catalogservice.Shop{ID: 1, WorkingHours: splitDaySchedule()},
		specialists: []*catalogservice.Specialist{staff(101, 40)},
	}
	uc, _, _ := newTestUseCase(t, params, catalog, nil)

	resp, err := uc.Execute(context.Background(), &Request{ShopID: 1, StartDate: testStart, Days: 1, DryRun: true})
	require.NoError(t, err)

	require.Len(t, resp.Schedule, 1)
	assert.Equal(t, []int{9, 10, 14, 15}, resp.Schedule[0].Hours)
	assert.False(t, resp.Schedule[0].IsContiguous())

	assert.Empty(t, warningsOfType(resp.Warnings, WarnUnderstaffed))
	assert.Empty(t, warningsOfType(resp.Warnings, WarnSplitShift))
}

func TestExecute_InsufficientCapacityWarnsAndSuggests(t *testing.T) {
	// единственный мастер с бюджетом 4 часа против 56 требуемых
	catalog := &fakeCatalog{
		shop:        &catalogservice.Shop{ID: 1, WorkingHours: fullWeek("09:00", "17:00")},
		specialists: []*catalogservice.Specialist{staff(101, 4)},
	}
	uc, _, _ := newTestUseCase(t, DefaultParams(), catalog, nil)

	resp, err := uc.Execute(context.Background(), &Request{ShopID: 1, StartDate: testStart, Days: 7, DryRun: true})
	require.NoError(t, err)

	assert.NotEmpty(t, warningsOfType(resp.Warnings, WarnInsufficientCapacity))
	assert.NotEmpty(t, warningsOfType(resp.Warnings, WarnUnderstaffed))

	require.NotEmpty(t, resp.Suggestions)
	assert.Contains(t, resp.Suggestions[0], "add")
}

func TestExecute_SavesRosterAndReturnsID(t *testing.T) {
	catalog := &fakeCatalog{
		shop:        &catalogservice.Shop{ID: 1, WorkingHours: fullWeek("09:00", "17:00")},
		specialists: []*catalogservice.Specialist{staff(101, 40), staff(102, 40)},
	}
	uc, roster, tx := newTestUseCase(t, DefaultParams(), catalog, nil)
	roster.nextID = 42

	resp, err := uc.Execute(context.Background(), &Request{ShopID: 1, StartDate: testStart, Days: 7})
	require.NoError(t, err)

	assert.Equal(t, int64(42), resp.RosterID)
	assert.Equal(t, 1, tx.calls)
	assert.Equal(t, 1, roster.saves)
	assert.Equal(t, int64(1), roster.gotShopID)
	assert.Equal(t, testStart, roster.gotStart)
	assert.Equal(t, 7, roster.gotDays)
	assert.Equal(t, resp.Schedule, roster.gotSchedule)
}

func TestExecute_DryRunSkipsPersistence(t *testing.T) {
	catalog := &fakeCatalog{
		shop:        &catalogservice.Shop{ID: 1, WorkingHours: fullWeek("09:00", "17:00")},
		specialists: []*catalogservice.Specialist{staff(101, 40)},
	}
	uc, roster, tx := newTestUseCase(t, DefaultParams(), catalog, nil)

	resp, err := uc.Execute(context.Background(), &Request{ShopID: 1, StartDate: testStart, Days: 7, DryRun: true})
	require.NoError(t, err)

	assert.Zero(t, resp.RosterID)
	assert.Zero(t, roster.saves)
	assert.Zero(t, tx.calls)
	assert.NotEmpty(t, resp.Schedule)
}

func TestExecute_RosterAlreadyExists(t *testing.T) {
	catalog := &fakeCatalog{
		shop:        &catalogservice.Shop{ID: 1, WorkingHours: fullWeek("09:00", "17:00")},
		specialists: []*catalogservice.Specialist{staff(101, 40)},
	}
	uc, roster, _ := newTestUseCase(t, DefaultParams(), catalog, nil)
	roster.saveErr = rosterStorage.ErrRosterExists

	_, err := uc.Execute(context.Background(), &Request{ShopID: 1, StartDate: testStart, Days: 7})
	assert.ErrorIs(t, err, ErrRosterAlreadyExists)
}

func TestExecute_NoActiveStaff(t *testing.T) {
	inactive := staff(101, 40)
	inactive.Active = false

	catalog := &fakeCatalog{
		shop:        &catalogservice.Shop{ID: 1, WorkingHours: fullWeek("09:00", "17:00")},
		specialists: []*catalogservice.Specialist{inactive},
	}
	uc, _, _ := newTestUseCase(t, DefaultParams(), catalog, nil)

	_, err := uc.Execute(context.Background(), &Request{ShopID: 1, StartDate: testStart, Days: 7, DryRun: true})
	assert.ErrorIs(t, err, ErrNoStaff)
}

func TestExecute_ShopNotFound(t *testing.T) {
	catalog := &fakeCatalog{shopErr: catalogservice.ErrShopNotFound}
	uc, _, _ := newTestUseCase(t, DefaultParams(), catalog, nil)

	_, err := uc.Execute(context.Background(), &Request{ShopID: 404, StartDate: testStart, Days: 7})
	assert.ErrorIs(t, err, ErrShopNotFound)
}

func TestExecute_UnknownSpecialistInHistory(t *testing.T) {
	history := []*domain.Booking{
		historyBooking(999, testStart.AddDate(0, 0, -7).Add(10*time.Hour), domain.StatusCompleted),
		historyBooking(999, testStart.AddDate(0, 0, -14).Add(11*time.Hour), domain.StatusCompleted),
	}
	catalog := &fakeCatalog{
		shop:        &catalogservice.Shop{ID: 1, WorkingHours: fullWeek("09:00", "17:00")},
		specialists: []*catalogservice.Specialist{staff(101, 40)},
	}
	uc, _, _ := newTestUseCase(t, DefaultParams(), catalog, history)

	resp, err := uc.Execute(context.Background(), &Request{ShopID: 1, StartDate: testStart, Days: 7, DryRun: true})
	require.NoError(t, err)

	unknown := warningsOfType(resp.Warnings, WarnUnknownSpecialist)
	require.Len(t, unknown, 1)
	require.NotNil(t, unknown[0].StaffID)
	assert.Equal(t, int64(999), *unknown[0].StaffID)
}

func TestExecute_ValidationErrors(t *testing.T) {
	catalog := &fakeCatalog{
		shop:        &catalogservice.Shop{ID: 1, WorkingHours: fullWeek("09:00", "17:00")},
		specialists: []*catalogservice.Specialist{staff(101, 40)},
	}
	uc, _, _ := newTestUseCase(t, DefaultParams(), catalog, nil)

	tests := []struct {
		name string
		req  *Request
	}{
		{"zero shop id", &Request{StartDate: testStart, Days: 7}},
		{"missing start date", &Request{ShopID: 1, Days: 7}},
		{"zero days", &Request{ShopID: 1, StartDate: testStart}},
		{"horizon too long", &Request{ShopID: 1, StartDate: testStart, Days: maxHorizonDays + 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestNewUseCase_RejectsInvalidParams(t *testing.T) {
	params := DefaultParams()
	params.DemandDivisor = 0

	_, err := NewUseCase(&fakeBookingRepo{}, &fakeRosterRepo{}, &fakeCatalog{}, &fakeTxManager{}, params, nopLogger{})
	assert.ErrorIs(t, err, ErrInvalidParams)
}
