// Package filter narrows lists the backend has already returned. The rental
// backend has no query parameters, so the console filters locally.
package filter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"fleetadmin/internal/models"
)

type Period string

const (
	PeriodAll   Period = ""
	PeriodToday Period = "today"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
)

// Since returns the earliest createdAt still inside the period, counted
// back from the start of now's day. ok is false for PeriodAll and unknown
// values.
func (p Period) Since(now time.Time) (time.Time, bool) {
	var days int
	switch p {
	case PeriodToday:
		days = 0
	case PeriodWeek:
		days = 7
	case PeriodMonth:
		days = 30
	default:
		return time.Time{}, false
	}
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, now.Location()).AddDate(0, 0, -days), true
}

type Category string

const (
	CategoryAll      Category = ""
	CategoryActive   Category = "active"
	CategoryUpcoming Category = "upcoming"
	CategoryPast     Category = "past"
)

func (c Category) Match(b models.Booking, now time.Time) bool {
	switch c {
	case CategoryActive:
		return b.Status == models.BookingActive
	case CategoryUpcoming:
		return b.StartDate.After(now) &&
			(b.Status == models.BookingConfirmed || b.Status == models.BookingPending)
	case CategoryPast:
		return !b.EndDate.After(now) && b.Status == models.BookingCompleted
	default:
		return true
	}
}

type BookingQuery struct {
	Period   Period
	Category Category
	Search   string
	Now      time.Time
}

func Bookings(in []models.Booking, q BookingQuery) []models.Booking {
	now := q.Now
	if now.IsZero() {
		now = time.Now()
	}
	since, windowed := q.Period.Since(now)
	term := normalize(q.Search)

	out := make([]models.Booking, 0, len(in))
	for _, b := range in {
		if windowed && b.CreatedAt.Before(since) {
			continue
		}
		if !q.Category.Match(b, now) {
			continue
		}
		if term != "" && !bookingMatches(b, term) {
			continue
		}
		out = append(out, b)
	}
	return out
}

func bookingMatches(b models.Booking, term string) bool {
	fields := []string{strconv.FormatInt(b.ID, 10)}
	if b.User != nil {
		fields = append(fields, deref(b.User.Name), deref(b.User.Email))
	}
	if b.Car != nil {
		fields = append(fields, b.Car.Maker, b.Car.Name, b.Car.CarNumber)
	}
	return containsAny(fields, term)
}

type Availability string

const (
	AvailabilityAll         Availability = ""
	AvailabilityAvailable   Availability = "available"
	AvailabilityBooked      Availability = "booked"
	AvailabilityMaintenance Availability = "maintenance"
)

func (a Availability) Match(c models.Car) bool {
	switch a {
	case AvailabilityAvailable:
		return c.IsAvailable
	case AvailabilityBooked:
		return !c.IsAvailable && !c.InMaintenance
	case AvailabilityMaintenance:
		return c.InMaintenance
	default:
		return true
	}
}

func Cars(in []models.Car, availability Availability, search string) []models.Car {
	term := normalize(search)
	out := make([]models.Car, 0, len(in))
	for _, c := range in {
		if !availability.Match(c) {
			continue
		}
		if term != "" && !containsAny([]string{c.Name, c.Maker, c.CarNumber}, term) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// BookedCarIDs collects the distinct car ids of bookings, in first-seen order.
func BookedCarIDs(bookings []models.Booking) []int64 {
	seen := make(map[int64]bool, len(bookings))
	ids := make([]int64, 0, len(bookings))
	for _, b := range bookings {
		if b.CarID == 0 || seen[b.CarID] {
			continue
		}
		seen[b.CarID] = true
		ids = append(ids, b.CarID)
	}
	return ids
}

// CarsIn keeps the cars whose id is in ids, preserving the order of in.
func CarsIn(in []models.Car, ids []int64) []models.Car {
	want := make(map[int64]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	out := make([]models.Car, 0, len(ids))
	for _, c := range in {
		if want[c.ID] {
			out = append(out, c)
		}
	}
	return out
}

// ParseDate reads a calendar date (2006-01-02, taken as UTC midnight) or an
// RFC 3339 timestamp.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD or RFC 3339", s)
	}
	return t, nil
}

// Users matches search against name and email. Vendors use it too.
func Users(in []models.User, search string) []models.User {
	term := normalize(search)
	if term == "" {
		return in
	}
	out := make([]models.User, 0, len(in))
	for _, u := range in {
		if containsAny([]string{u.DisplayName(), u.EmailAddress()}, term) {
			out = append(out, u)
		}
	}
	return out
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func containsAny(fields []string, term string) bool {
	for _, f := range fields {
		if f != "" && strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
