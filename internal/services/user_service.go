package services

import (
	"context"

	"fleetadmin/internal/models"
)

var UserResource = ResourceConfig{
	Name:   "user",
	Plural: "users",
	Routes: Routes{
		List:   get("/user/getallusers", AuthBearer),
		Get:    get("/user/getuser/{id}", AuthBearer),
		Update: put("/user/updateuser/{id}", AuthBearer),
		Delete: remove("/user/deleteuser/{id}", AuthBearer),
	},
}

type UserService struct {
	*Resource[models.User]
}

func NewUserService(client *Client) *UserService {
	return &UserService{Resource: NewResource[models.User](client, UserResource)}
}

// SetVerified marks a user's identity documents as checked or unchecked.
func (s *UserService) SetVerified(ctx context.Context, id int64, verified bool) models.Outcome[models.User] {
	return s.Update(ctx, id, models.Patch{"isverified": verified})
}
