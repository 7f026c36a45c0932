package services

import (
	"context"
	"time"

	"fleetadmin/internal/models"
)

var BookingResource = ResourceConfig{
	Name:   "booking",
	Plural: "bookings",
	Routes: Routes{
		List:   get("/booking/getallbookings", AuthBearer),
		Get:    get("/booking/getbooking/{id}", AuthBearer),
		Update: put("/booking/updatebooking/{id}", AuthBearer),
		Delete: remove("/booking/deletebooking/{id}", AuthBearer),
	},
}

// The date-range lookup is public on the backend, like the parking list.
var bookedBetweenRoute = post("/booking/bd", AuthNone)

// DateRange is the body of the booked-in-range lookup.
type DateRange struct {
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}

// BookingService reads bookings and moves them through their statuses.
// Bookings are created by customers, never from the console.
type BookingService struct {
	*Resource[models.Booking]
}

func NewBookingService(client *Client) *BookingService {
	return &BookingService{Resource: NewResource[models.Booking](client, BookingResource)}
}

func (s *BookingService) UpdateStatus(ctx context.Context, id int64, status models.BookingStatus) models.Outcome[models.Booking] {
	if !status.Valid() {
		return models.Fail[models.Booking](models.KindValidation, "Invalid booking status: "+string(status))
	}
	return s.Update(ctx, id, models.Patch{"status": status})
}

// BookedBetween returns the bookings that overlap [start, end].
func (s *BookingService) BookedBetween(ctx context.Context, start, end time.Time) models.Outcome[[]models.Booking] {
	if start.IsZero() || end.IsZero() {
		return models.Fail[[]models.Booking](models.KindValidation, "Please select both start and end date")
	}
	if end.Before(start) {
		return models.Fail[[]models.Booking](models.KindValidation, "End date must not be before start date")
	}
	return Invoke[[]models.Booking](ctx, s.client, Call{
		Resource: "bookings",
		Op:       "booked between",
		Route:    bookedBetweenRoute,
		Path:     bookedBetweenRoute.Path,
		Payload:  DateRange{StartDate: start.UTC(), EndDate: end.UTC()},
		Failed:   "No bookings found for selected range",
		Error:    "Failed to filter by booking date range",
	})
}
