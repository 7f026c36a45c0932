// Package stats computes the dashboard overview from lists the backend has
// already returned.
package stats

import (
	"math"
	"strings"
	"time"

	"fleetadmin/internal/filter"
	"fleetadmin/internal/models"
)

const unknownCarType = "Unknown"

type Overview struct {
	Period         filter.Period  `json:"period"`
	TotalRevenue   float64        `json:"totalRevenue"`
	PeriodBookings int            `json:"periodBookings"`
	ActiveBookings int            `json:"activeBookings"`
	TotalUsers     int            `json:"totalUsers"`
	Cars           CarStats       `json:"cars"`
	Parking        []ParkingUsage `json:"parking"`
	RevenueByType  []TypeRevenue  `json:"revenueByType"`
	Daily          []DayStat      `json:"daily"`
}

type CarStats struct {
	Total            int     `json:"total"`
	Available        int     `json:"available"`
	Booked           int     `json:"booked"`
	Maintenance      int     `json:"maintenance"`
	AvailabilityRate float64 `json:"availabilityRate"`
}

// ParkingUsage counts the cars parked at one spot against its capacity.
type ParkingUsage struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Cars        int     `json:"cars"`
	Capacity    int     `json:"capacity"`
	Utilization float64 `json:"utilization"`
	Available   int     `json:"available"`
}

type TypeRevenue struct {
	Type     string  `json:"type"`
	Revenue  float64 `json:"revenue"`
	Bookings int     `json:"bookings"`
}

type DayStat struct {
	Date     string  `json:"date"`
	Revenue  float64 `json:"revenue"`
	Bookings int     `json:"bookings"`
}

type Input struct {
	Bookings []models.Booking
	Cars     []models.Car
	Users    []models.User
	Parking  []models.ParkingSpot
}

// Dashboard builds the overview. Revenue, per-type revenue and the daily
// series only count bookings created inside period; the active count and
// the fleet figures cover everything.
func Dashboard(in Input, period filter.Period, now time.Time) Overview {
	windowed := filter.Bookings(in.Bookings, filter.BookingQuery{Period: period, Now: now})

	o := Overview{
		Period:         period,
		PeriodBookings: len(windowed),
		TotalUsers:     len(in.Users),
		Cars:           carStats(in.Cars),
		Parking:        parkingUsage(in.Parking, in.Cars),
		RevenueByType:  revenueByType(windowed),
		Daily:          daily(windowed, period, now),
	}
	for _, b := range windowed {
		o.TotalRevenue += float64(b.TotalAmount)
	}
	for _, b := range in.Bookings {
		if b.Status == models.BookingActive {
			o.ActiveBookings++
		}
	}
	return o
}

func carStats(cars []models.Car) CarStats {
	s := CarStats{Total: len(cars)}
	for _, c := range cars {
		switch {
		case filter.AvailabilityAvailable.Match(c):
			s.Available++
		case filter.AvailabilityMaintenance.Match(c):
			s.Maintenance++
		default:
			s.Booked++
		}
	}
	s.AvailabilityRate = percent(s.Available, s.Total)
	return s
}

func parkingUsage(spots []models.ParkingSpot, cars []models.Car) []ParkingUsage {
	parked := make(map[int64]int)
	for _, c := range cars {
		if c.ParkingID != nil {
			parked[*c.ParkingID]++
		}
	}

	out := make([]ParkingUsage, 0, len(spots))
	for _, p := range spots {
		capacity := int(p.Capacity)
		out = append(out, ParkingUsage{
			ID:          p.ID,
			Name:        p.Name,
			Cars:        parked[p.ID],
			Capacity:    capacity,
			Utilization: percent(parked[p.ID], capacity),
			Available:   capacity - parked[p.ID],
		})
	}
	return out
}

// revenueByType groups by the booked car's type in first-seen order.
func revenueByType(bookings []models.Booking) []TypeRevenue {
	index := make(map[string]int)
	var out []TypeRevenue
	for _, b := range bookings {
		t := unknownCarType
		if b.Car != nil && strings.TrimSpace(b.Car.Type) != "" {
			t = titleCase(strings.TrimSpace(b.Car.Type))
		}
		i, ok := index[t]
		if !ok {
			i = len(out)
			index[t] = i
			out = append(out, TypeRevenue{Type: t})
		}
		out[i].Revenue += float64(b.TotalAmount)
		out[i].Bookings++
	}
	return out
}

// daily buckets bookings by UTC creation date: 1 day for today, 7 for a
// week and 30 otherwise, oldest first.
func daily(bookings []models.Booking, period filter.Period, now time.Time) []DayStat {
	days := 30
	switch period {
	case filter.PeriodToday:
		days = 1
	case filter.PeriodWeek:
		days = 7
	}

	today := now.UTC().Truncate(24 * time.Hour)
	out := make([]DayStat, days)
	index := make(map[string]int, days)
	for i := 0; i < days; i++ {
		date := today.AddDate(0, 0, i-days+1).Format(time.DateOnly)
		out[i].Date = date
		index[date] = i
	}
	for _, b := range bookings {
		if b.CreatedAt.IsZero() {
			continue
		}
		if i, ok := index[b.CreatedAt.UTC().Format(time.DateOnly)]; ok {
			out[i].Revenue += float64(b.TotalAmount)
			out[i].Bookings++
		}
	}
	return out
}

// percent is part/total as a percentage rounded to one decimal; 0 when
// total is not positive.
func percent(part, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(part)/float64(total)*1000) / 10
}

func titleCase(s string) string {
	return strings.ToUpper(s[:1]) + s[1:]
}
