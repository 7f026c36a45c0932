package models

import "time"

type Booking struct {
	ID              int64         `json:"id"`
	UserID          int64         `json:"userId"`
	CarID           int64         `json:"carId"`
	StartDate       time.Time     `json:"startDate"`
	EndDate         time.Time     `json:"endDate"`
	Status          BookingStatus `json:"status"`
	TotalAmount     FlexFloat     `json:"totalAmount"`
	PaymentStatus   PaymentStatus `json:"paymentStatus"`
	PickupLocation  *string       `json:"pickupLocation"`
	DropoffLocation *string       `json:"dropoffLocation"`
	Notes           *string       `json:"notes"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`
	User            *BookingUser  `json:"user,omitempty"`
	Car             *BookingCar   `json:"car,omitempty"`
}

// BookingUser is the shallow user copy embedded in a booking for display.
type BookingUser struct {
	ID     int64   `json:"id"`
	Name   *string `json:"name"`
	Email  *string `json:"email"`
	Number FlexInt `json:"number"`
}

// BookingCar is the shallow car copy embedded in a booking for display.
type BookingCar struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Maker     string `json:"maker"`
	CarNumber string `json:"carnumber"`
	Type      string `json:"type"`
	MainImg   string `json:"mainimg"`
}

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingActive    BookingStatus = "active"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingActive, BookingCompleted, BookingCancelled:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)
