package services

import (
	"context"

	"fleetadmin/internal/models"
)

// Vendors are users with role "vendor". The list and add routes take the
// raw token; the shared user routes take a Bearer token.
var VendorResource = ResourceConfig{
	Name:   "vendor",
	Plural: "vendors",
	Routes: Routes{
		List:   get("/user/getusersbyvendor", AuthRaw),
		Get:    get("/user/getuser/{id}", AuthBearer),
		Create: post("/user/addvendor", AuthRaw),
		Update: put("/user/updateuser/{id}", AuthBearer),
		Delete: remove("/user/deleteuser/{id}", AuthBearer),
	},
	Messages: Messages{
		ListFailed: "Failed to get vendors",
		GetFailed:  "Failed to get vendor by id",
	},
}

type VendorService struct {
	*Resource[models.User]
}

func NewVendorService(client *Client) *VendorService {
	return &VendorService{Resource: NewResource[models.User](client, VendorResource)}
}

func (s *VendorService) Create(ctx context.Context, vendor models.AccountInput) models.Outcome[models.User] {
	vendor.Role = models.RoleVendor
	return s.Resource.Create(ctx, vendor)
}
