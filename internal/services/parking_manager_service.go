package services

import (
	"context"
	"strconv"

	"fleetadmin/internal/models"
)

// Parking managers ("parking incharges") are users bound to one parking
// spot. All of their routes take the raw token.
var ParkingManagerResource = ResourceConfig{
	Name:   "parking manager",
	Plural: "parking managers",
	Routes: Routes{
		Get:    get("/user/getuser/{id}", AuthRaw),
		Create: post("/user/addparkingincharge", AuthRaw),
		Update: put("/user/updateuser/{id}", AuthRaw),
	},
}

var (
	managerSearchRoute = post("/user/getparkinginchargebynumber", AuthRaw)
	managerAssignRoute = post("/user/assignparkingincharge", AuthRaw)
	managerByParking   = get("/user/getparkinginchargebyparkingid/{id}", AuthRaw)
)

type ParkingManagerService struct {
	*Resource[models.User]
	client *Client
}

func NewParkingManagerService(client *Client) *ParkingManagerService {
	return &ParkingManagerService{
		Resource: NewResource[models.User](client, ParkingManagerResource),
		client:   client,
	}
}

// Create registers a new manager already bound to parkingID.
func (s *ParkingManagerService) Create(ctx context.Context, parkingID int64, manager models.AccountInput) models.Outcome[models.User] {
	manager.Role = models.RoleParkingIncharge
	manager.ParkingID = &parkingID
	return s.Resource.Create(ctx, manager)
}

func (s *ParkingManagerService) SearchByPhone(ctx context.Context, number string) models.Outcome[models.User] {
	return Invoke[models.User](ctx, s.client, Call{
		Resource:    ParkingManagerResource.Plural,
		Op:          "search",
		Route:       managerSearchRoute,
		Path:        managerSearchRoute.Path,
		Payload:     map[string]string{"number": number},
		Failed:      "No parking manager found for " + number,
		Error:       "An error occurred while searching parking managers",
		RequireData: true,
	})
}

func (s *ParkingManagerService) Assign(ctx context.Context, parkingID, managerID int64) models.Outcome[models.User] {
	return Invoke[models.User](ctx, s.client, Call{
		Resource: ParkingManagerResource.Plural,
		Op:       "assign",
		Route:    managerAssignRoute,
		Path:     managerAssignRoute.Path,
		Payload:  models.ManagerAssignment{ParkingID: parkingID, ID: managerID},
		Failed:   "Failed to assign parking manager",
		Error:    "An error occurred while assigning parking manager",
	})
}

func (s *ParkingManagerService) ListByParking(ctx context.Context, parkingID int64) models.Outcome[[]models.User] {
	return Invoke[[]models.User](ctx, s.client, Call{
		Resource:    ParkingManagerResource.Plural,
		Op:          "list_by_parking",
		Route:       managerByParking,
		Path:        managerByParking.WithID(parkingID),
		Failed:      "Failed to fetch parking managers for parking " + strconv.FormatInt(parkingID, 10),
		Error:       "An error occurred while fetching parking managers",
		RequireData: true,
	})
}

// Detach unbinds a manager from their parking spot. The account is kept.
func (s *ParkingManagerService) Detach(ctx context.Context, managerID int64) models.Outcome[models.User] {
	return s.Update(ctx, managerID, models.Patch{"parkingid": nil})
}
