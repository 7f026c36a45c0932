package services

import (
	"context"
	"time"

	"fleetadmin/internal/filter"
	"fleetadmin/internal/models"
)

var CarResource = ResourceConfig{
	Name:   "car",
	Plural: "cars",
	Routes: Routes{
		List:   get("/cars/getcar", AuthBearer),
		Get:    get("/cars/getcar/{id}", AuthBearer),
		Create: post("/cars/add", AuthBearer),
		Update: put("/cars/update/{id}", AuthRaw),
		Delete: remove("/cars/delete/{id}", AuthBearer),
	},
	CheckStatusCode: true,
	Messages: Messages{
		CreateError: "An error occurred while adding the car",
		UpdateError: "An error occurred while updating the car",
		DeleteError: "An error occurred while deleting the car",
	},
}

type CarService struct {
	*Resource[models.Car]
}

func NewCarService(client *Client) *CarService {
	return &CarService{Resource: NewResource[models.Car](client, CarResource)}
}

func (s *CarService) Create(ctx context.Context, car models.CarInput) models.Outcome[models.Car] {
	return s.Resource.Create(ctx, car)
}

// SetAvailability flips the availability and maintenance flags in one update.
func (s *CarService) SetAvailability(ctx context.Context, id int64, available, inMaintenance bool) models.Outcome[models.Car] {
	return s.Update(ctx, id, models.Patch{
		"isavailable":    available,
		"inmaintainance": inMaintenance,
	})
}

// ListBookedBetween lists the cars that have a booking overlapping
// [start, end]. A failed booking lookup fails the whole list.
func (s *CarService) ListBookedBetween(ctx context.Context, start, end time.Time) models.Outcome[[]models.Car] {
	cars := s.List(ctx)
	if !cars.Success {
		return cars
	}
	booked := NewBookingService(s.client).BookedBetween(ctx, start, end)
	if !booked.Success {
		return models.Fail[[]models.Car](booked.Kind, booked.Message)
	}
	cars.Data = filter.CarsIn(cars.Data, filter.BookedCarIDs(booked.Data))
	return cars
}
