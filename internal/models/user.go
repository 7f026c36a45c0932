package models

import "time"

type User struct {
	ID             int64      `json:"id"`
	Name           *string    `json:"name"`
	Avatar         *string    `json:"avatar"`
	Age            *FlexInt   `json:"age"`
	Number         FlexInt    `json:"number"`
	Email          *string    `json:"email"`
	AadharNumber   *string    `json:"aadharNumber"`
	AadharImg      *string    `json:"aadharimg"`
	DLNumber       *string    `json:"dlNumber"`
	DLImg          *string    `json:"dlimg"`
	PassportNumber *string    `json:"passportNumber"`
	PassportImg    *string    `json:"passportimg"`
	Lat            *FlexFloat `json:"lat"`
	Lng            *FlexFloat `json:"lng"`
	Locality       *string    `json:"locality"`
	City           *string    `json:"city"`
	State          *string    `json:"state"`
	Country        *string    `json:"country"`
	Pincode        FlexString `json:"pincode"`
	Role           Role       `json:"role"`
	IsVerified     bool       `json:"isverified"`
	ParkingID      *int64     `json:"parkingid"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

type Role string

const (
	RoleAdmin           Role = "admin"
	RoleUser            Role = "user"
	RoleVendor          Role = "vendor"
	RoleParkingIncharge Role = "parkingincharge"
)

// AccountInput is the form payload used to create vendors and parking
// managers. Document image fields hold URLs returned by the asset host.
type AccountInput struct {
	Name           string `json:"name"`
	Avatar         string `json:"avatar"`
	Age            int    `json:"age,omitempty"`
	Number         int64  `json:"number,omitempty"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	AadharNumber   string `json:"aadharNumber"`
	AadharImg      string `json:"aadharimg"`
	DLNumber       string `json:"dlNumber"`
	DLImg          string `json:"dlimg"`
	PassportNumber string `json:"passportNumber"`
	PassportImg    string `json:"passportimg"`
	Locality       string `json:"locality"`
	City           string `json:"city"`
	State          string `json:"state"`
	Country        string `json:"country"`
	Pincode        int    `json:"pincode,omitempty"`
	IsVerified     bool   `json:"isverified"`
	Role           Role   `json:"role"`
	ParkingID      *int64 `json:"parkingid,omitempty"`
}

type LoginRequest struct {
	Number   string `json:"number"`
	Password string `json:"password"`
}

// LoginData is the payload of a successful loginAdmin envelope.
type LoginData struct {
	User        *User  `json:"user"`
	AccessToken string `json:"accessToken"`
}

type LoginOutcome struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	User    *User  `json:"user,omitempty"`
}

// DisplayName returns the user's name, or an empty string when unset.
func (u *User) DisplayName() string {
	if u.Name == nil {
		return ""
	}
	return *u.Name
}

func (u *User) EmailAddress() string {
	if u.Email == nil {
		return ""
	}
	return *u.Email
}
