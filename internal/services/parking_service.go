package services

import (
	"context"

	"fleetadmin/internal/models"
)

// The parking list is public; every other parking route takes the raw token.
var ParkingResource = ResourceConfig{
	Name:   "parking spot",
	Plural: "parking spots",
	Routes: Routes{
		List:   get("/parking/get", AuthNone),
		Get:    get("/parking/getbyidadmin/{id}", AuthRaw),
		Create: post("/parking/add", AuthRaw),
		Update: put("/parking/update/{id}", AuthRaw),
		Delete: remove("/parking/delete/{id}", AuthRaw),
	},
}

type ParkingService struct {
	*Resource[models.ParkingSpot]
}

func NewParkingService(client *Client) *ParkingService {
	return &ParkingService{Resource: NewResource[models.ParkingSpot](client, ParkingResource)}
}

func (s *ParkingService) Create(ctx context.Context, spot models.ParkingSpotInput) models.Outcome[models.ParkingSpot] {
	return s.Resource.Create(ctx, spot)
}
