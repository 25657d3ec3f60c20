package models

import (
	"time"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusArchived  BookingStatus = "archived"
)

// Booking is a single customer transfer request, one-way or round-trip.
// IDs are short URL-safe strings so customers can quote them over the phone.
type Booking struct {
	ID         string        `json:"id" gorm:"primaryKey"`
	Status     BookingStatus `json:"status" gorm:"not null;default:'pending'"`
	ReceivedAt time.Time     `json:"receivedAt" gorm:"column:received_at;not null"`

	Name      string `json:"name" gorm:"not null"`
	Phone     string `json:"phone" gorm:"not null"`
	Email     string `json:"email"`
	People    int    `json:"people" gorm:"not null"`
	HasMinors bool   `json:"hasMinors" gorm:"column:has_minors"`
	MinorsAge string `json:"minorsAge" gorm:"column:minors_age"`
	// NeedsBabySeat and NeedsBooster are separate because a group can need both.
	NeedsBabySeat bool   `json:"needsBabySeat" gorm:"column:needs_baby_seat"`
	NeedsBooster  bool   `json:"needsBooster" gorm:"column:needs_booster"`
	LuggageType   string `json:"luggageType" gorm:"column:luggage_type"`

	ArrivalDate         string `json:"arrival_date" gorm:"column:arrival_date;not null"`
	ArrivalTime         string `json:"arrival_time" gorm:"column:arrival_time;not null"`
	ArrivalFlightNumber string `json:"arrival_flight_number" gorm:"column:arrival_flight_number"`
	Destination         string `json:"destination" gorm:"not null"`

	// Return leg fields are only meaningful together; an empty ReturnDate
	// means the booking is one-way.
	ReturnDate          string `json:"return_date" gorm:"column:return_date"`
	ReturnTime          string `json:"return_time" gorm:"column:return_time"`
	ReturnFlightTime    string `json:"return_flight_time" gorm:"column:return_flight_time"`
	ReturnPickupAddress string `json:"return_pickup_address" gorm:"column:return_pickup_address"`
	ReturnFlightNumber  string `json:"return_flight_number" gorm:"column:return_flight_number"`

	AdditionalInfo string `json:"additional_info" gorm:"column:additional_info"`

	IsModification    bool   `json:"isModification" gorm:"column:is_modification"`
	OriginalBookingID string `json:"originalBookingId" gorm:"column:original_booking_id"`

	// Lang is the language the customer submitted in; every email about
	// this booking is localized with it.
	Lang string `json:"lang"`

	DriverID *string `json:"driverId" gorm:"column:driver_id"`
	Driver   *Driver `json:"driver,omitempty" gorm:"foreignKey:DriverID"`
}

func (Booking) TableName() string {
	return "bookings"
}

// IsRoundTrip classifies the booking for reporting. A return leg without a
// return date counts as one-way.
func (b *Booking) IsRoundTrip() bool {
	return b.ReturnDate != ""
}
