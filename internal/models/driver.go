package models

// Driver is a transfer driver staff can assign to bookings. Bookings hold
// the reference; a driver does not own its bookings.
type Driver struct {
	ID    string `json:"id" gorm:"primaryKey"`
	Name  string `json:"name" gorm:"not null"`
	Phone string `json:"phone" gorm:"not null"`
}

func (Driver) TableName() string {
	return "drivers"
}
