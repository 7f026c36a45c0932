package services

import (
	"context"
	"sync"
	"time"

	"fleetadmin/internal/filter"
	"fleetadmin/internal/models"
	"fleetadmin/internal/stats"
)

type DashboardService struct {
	client *Client
}

func NewDashboardService(client *Client) *DashboardService {
	return &DashboardService{client: client}
}

// Overview fetches bookings, cars, users and parking spots concurrently and
// summarizes them. The first failure, in that order, fails the overview.
// The parking list is public, so the token is checked up front.
func (s *DashboardService) Overview(ctx context.Context, period filter.Period, now time.Time) models.Outcome[stats.Overview] {
	if _, ok := s.client.session.Token(); !ok {
		return models.Fail[stats.Overview](models.KindNoToken, NoTokenMessage)
	}

	var (
		wg       sync.WaitGroup
		bookings models.Outcome[[]models.Booking]
		cars     models.Outcome[[]models.Car]
		users    models.Outcome[[]models.User]
		parking  models.Outcome[[]models.ParkingSpot]
	)
	fetch := func(load func()) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			load()
		}()
	}
	fetch(func() { bookings = NewBookingService(s.client).List(ctx) })
	fetch(func() { cars = NewCarService(s.client).List(ctx) })
	fetch(func() { users = NewUserService(s.client).List(ctx) })
	fetch(func() { parking = NewParkingService(s.client).List(ctx) })
	wg.Wait()

	for _, part := range []struct {
		ok   bool
		kind models.FailureKind
		msg  string
	}{
		{bookings.Success, bookings.Kind, bookings.Message},
		{cars.Success, cars.Kind, cars.Message},
		{users.Success, users.Kind, users.Message},
		{parking.Success, parking.Kind, parking.Message},
	} {
		if !part.ok {
			return models.Fail[stats.Overview](part.kind, part.msg)
		}
	}

	overview := stats.Dashboard(stats.Input{
		Bookings: bookings.Data,
		Cars:     cars.Data,
		Users:    users.Data,
		Parking:  parking.Data,
	}, period, now)
	return models.Succeed(overview, "")
}
