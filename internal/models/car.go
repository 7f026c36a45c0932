package models

import "time"

type Car struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Maker           string    `json:"maker"`
	Year            FlexInt   `json:"year"`
	CarNumber       string    `json:"carnumber"`
	Price           FlexFloat `json:"price"`
	DiscountedPrice FlexFloat `json:"discountedprice"`
	Color           string    `json:"color"`
	Transmission    string    `json:"transmission"`
	Fuel            string    `json:"fuel"`
	Type            string    `json:"type"`
	Seats           FlexInt   `json:"seats"`
	RCNumber        string    `json:"rcnumber"`
	RCImg           string    `json:"rcimg"`
	PollutionImg    string    `json:"pollutionimg"`
	InsuranceImg    string    `json:"insuranceimg"`
	InMaintenance   bool      `json:"inmaintainance"`
	IsAvailable     bool      `json:"isavailable"`
	Images          []string  `json:"images"`
	MainImg         string    `json:"mainimg"`
	VendorID        int64     `json:"vendorid"`
	ParkingID       *int64    `json:"parkingid"`
	IsApproved      bool      `json:"isapproved"`
	IsPopular       bool      `json:"ispopular"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// CarInput is the add/edit car form. Image fields are asset host URLs.
type CarInput struct {
	Name            string   `json:"name"`
	Maker           string   `json:"maker"`
	Year            int      `json:"year"`
	CarNumber       string   `json:"carnumber"`
	Price           float64  `json:"price"`
	DiscountedPrice float64  `json:"discountedprice"`
	Color           string   `json:"color"`
	Transmission    string   `json:"transmission"`
	Fuel            string   `json:"fuel"`
	Type            string   `json:"type"`
	Seats           int      `json:"seats"`
	RCNumber        string   `json:"rcnumber"`
	RCImg           string   `json:"rcimg"`
	PollutionImg    string   `json:"pollutionimg"`
	InsuranceImg    string   `json:"insuranceimg"`
	InMaintenance   bool     `json:"inmaintainance"`
	IsAvailable     bool     `json:"isavailable"`
	Images          []string `json:"images"`
	MainImg         string   `json:"mainimg"`
	VendorID        int64    `json:"vendorid"`
	ParkingID       *int64   `json:"parkingid,omitempty"`
}

type ParkingSpot struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Locality  string    `json:"locality"`
	City      *string   `json:"city"`
	State     *string   `json:"state"`
	Country   *string   `json:"country"`
	Pincode   FlexString `json:"pincode"`
	Capacity  FlexInt   `json:"capacity"`
	MainImg   string    `json:"mainimg"`
	Images    []string  `json:"images"`
	Lat       FlexFloat `json:"lat"`
	Lng       FlexFloat `json:"lng"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type ParkingSpotInput struct {
	Name     string   `json:"name"`
	Locality string   `json:"locality"`
	City     string   `json:"city,omitempty"`
	State    string   `json:"state,omitempty"`
	Country  string   `json:"country,omitempty"`
	Pincode  *int     `json:"pincode,omitempty"`
	Capacity int      `json:"capacity"`
	MainImg  string   `json:"mainimg"`
	Images   []string `json:"images"`
	Lat      float64  `json:"lat"`
	Lng      float64  `json:"lng"`
}

// ManagerAssignment binds a parking manager to a parking spot.
type ManagerAssignment struct {
	ParkingID int64 `json:"parkingid"`
	ID        int64 `json:"id"`
}
