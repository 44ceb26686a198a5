package check_conflict

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeBookingRepo struct {
	bookings []*domain.Booking
	err      error
}

func (r *fakeBookingRepo) GetWithFilter(_ context.Context, filter domain.SpecialistBookingsFilter) ([]*domain.Booking, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []*domain.Booking
	for _, b := range r.bookings {
		if filter.SpecialistID != nil && b.SpecialistID != *filter.SpecialistID {
			continue
		}
		if filter.ExcludeID != nil && b.ID == *filter.ExcludeID {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

var day = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

func at(hour, minute int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, time.UTC)
}

func existingBooking() *domain.Booking {
	return &domain.Booking{
		ID:           42,
		ShopID:       1,
		ServiceID:    10,
		SpecialistID: 100,
		BookingDate:  day,
		StartTime:    at(10, 0),
		EndTime:      at(11, 0),
		Status:       domain.StatusConfirmed,
	}
}

func TestExecute_OverlapDetection(t *testing.T) {
	uc := NewUseCase(&fakeBookingRepo{bookings: []*domain.Booking{existingBooking()}}, nopLogger{})

	// partial overlap from the left
	resp, err := uc.Execute(context.Background(), &Request{
		ShopID: 1, SpecialistID: 100, Start: at(9, 30), End: at(10, 30),
	})
	require.NoError(t, err)
	assert.True(t, resp.HasConflict)
	assert.Equal(t, []int64{42}, resp.ConflictingBookingIDs)

	// disjoint earlier interval
	resp, err = uc.Execute(context.Background(), &Request{
		ShopID: 1, SpecialistID: 100, Start: at(8, 0), End: at(9, 0),
	})
	require.NoError(t, err)
	assert.False(t, resp.HasConflict)
	assert.Empty(t, resp.ConflictingBookingIDs)
}

func TestExecute_HalfOpenBoundaries(t *testing.T) {
	uc := NewUseCase(&fakeBookingRepo{bookings: []*domain.Booking{existingBooking()}}, nopLogger{})

	// candidate ending exactly at booking start does not conflict
	resp, err := uc.Execute(context.Background(), &Request{
		ShopID: 1, SpecialistID: 100, Start: at(9, 0), End: at(10, 0),
	})
	require.NoError(t, err)
	assert.False(t, resp.HasConflict)

	// candidate starting exactly at booking end does not conflict
	resp, err = uc.Execute(context.Background(), &Request{
		ShopID: 1, SpecialistID: 100, Start: at(11, 0), End: at(12, 0),
	})
	require.NoError(t, err)
	assert.False(t, resp.HasConflict)
}

func TestExecute_ExcludeBookingID(t *testing.T) {
	uc := NewUseCase(&fakeBookingRepo{bookings: []*domain.Booking{existingBooking()}}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		ShopID:           1,
		SpecialistID:     100,
		Start:            at(9, 30),
		End:              at(10, 30),
		ExcludeBookingID: ptr.Ptr(int64(42)),
	})
	require.NoError(t, err)
	assert.False(t, resp.HasConflict)
}

func TestExecute_InactiveBookingIgnored(t *testing.T) {
	cancelled := existingBooking()
	cancelled.Status = domain.StatusCancelled
	uc := NewUseCase(&fakeBookingRepo{bookings: []*domain.Booking{cancelled}}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		ShopID: 1, SpecialistID: 100, Start: at(10, 0), End: at(11, 0),
	})
	require.NoError(t, err)
	assert.False(t, resp.HasConflict)
}

func TestExecute_ValidationErrors(t *testing.T) {
	uc := NewUseCase(&fakeBookingRepo{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		ShopID: 0, SpecialistID: 100, Start: at(9, 0), End: at(10, 0),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{
		ShopID: 1, SpecialistID: 100, Start: at(10, 0), End: at(10, 0),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_RepoErrorPropagates(t *testing.T) {
	uc := NewUseCase(&fakeBookingRepo{err: errors.New("connection reset")}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		ShopID: 1, SpecialistID: 100, Start: at(9, 0), End: at(10, 0),
	})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestExecuteBatch(t *testing.T) {
	uc := NewUseCase(&fakeBookingRepo{bookings: []*domain.Booking{existingBooking()}}, nopLogger{})

	resp, err := uc.ExecuteBatch(context.Background(), &BatchRequest{
		ShopID: 1,
		Items: []BatchItem{
			{SpecialistID: 100, Start: at(9, 30), End: at(10, 30)},
			{SpecialistID: 100, Start: at(8, 0), End: at(9, 0)},
			{SpecialistID: 100, Start: at(9, 30), End: at(10, 30), ExcludeBookingID: ptr.Ptr(int64(42))},
			{SpecialistID: 200, Start: at(10, 0), End: at(11, 0)},
		},
	})
	require.NoError(t, err)
	require.Len(t, resp.Results, 4)

	assert.True(t, resp.Results[0].HasConflict)
	assert.False(t, resp.Results[1].HasConflict)
	assert.False(t, resp.Results[2].HasConflict)
	assert.False(t, resp.Results[3].HasConflict)
}

func TestExecuteBatch_ValidationFailsFast(t *testing.T) {
	repo := &fakeBookingRepo{bookings: []*domain.Booking{existingBooking()}}
	uc := NewUseCase(repo, nopLogger{})

	_, err := uc.ExecuteBatch(context.Background(), &BatchRequest{
		ShopID: 1,
		Items: []BatchItem{
			{SpecialistID: 100, Start: at(9, 0), End: at(10, 0)},
			{SpecialistID: 0, Start: at(9, 0), End: at(10, 0)},
		},
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.ExecuteBatch(context.Background(), &BatchRequest{ShopID: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
