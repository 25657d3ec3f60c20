package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/ogarridot/transfersol-backend/internal/models"
	"gorm.io/gorm"
)

// ErrNotFound is returned when the requested record does not exist.
var ErrNotFound = errors.New("record not found")

// BookingFilter holds the search criteria supported by the admin list.
// Name, Destination and ID are substring matches, Status is exact and
// ArrivalDate is a prefix match (so "2025-06" finds the whole month).
type BookingFilter struct {
	Name        string
	Destination string
	ID          string
	Status      string
	ArrivalDate string
}

// Bookings is the gorm-backed booking store. Reads always expand the
// assigned driver so notification content can resolve its name and phone.
type Bookings struct {
	db *gorm.DB
}

func NewBookings(db *gorm.DB) *Bookings {
	return &Bookings{db: db}
}

func (s *Bookings) Create(ctx context.Context, booking *models.Booking) error {
	if err := s.db.WithContext(ctx).Create(booking).Error; err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

func (s *Bookings) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	var booking models.Booking
	err := s.db.WithContext(ctx).Preload("Driver").First(&booking, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch booking %s: %w", id, err)
	}
	return &booking, nil
}

// Update applies the given column values and returns the re-read record
// with its driver expanded. Last writer wins; there is no concurrency token.
func (s *Bookings) Update(ctx context.Context, id string, fields map[string]interface{}) (*models.Booking, error) {
	res := s.db.WithContext(ctx).Model(&models.Booking{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update booking %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return s.GetByID(ctx, id)
}

func (s *Bookings) List(ctx context.Context, page, pageSize int) ([]models.Booking, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}

	var total int64
	if err := s.db.WithContext(ctx).Model(&models.Booking{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	var bookings []models.Booking
	err := s.db.WithContext(ctx).
		Preload("Driver").
		Order("received_at desc").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&bookings).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, total, nil
}

func (s *Bookings) Search(ctx context.Context, filter BookingFilter) ([]models.Booking, error) {
	query := s.db.WithContext(ctx).Model(&models.Booking{})

	if filter.Name != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Name+"%")
	}
	if filter.Destination != "" {
		query = query.Where("destination ILIKE ?", "%"+filter.Destination+"%")
	}
	if filter.ID != "" {
		query = query.Where("id LIKE ?", "%"+filter.ID+"%")
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.ArrivalDate != "" {
		query = query.Where("arrival_date LIKE ?", filter.ArrivalDate+"%")
	}

	var bookings []models.Booking
	err := query.Preload("Driver").Order("received_at desc").Find(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search bookings: %w", err)
	}
	return bookings, nil
}

// ArchivePast bulk-moves bookings whose arrival date is before the cutoff
// to the archived status. Cancelled and already archived rows are left alone.
func (s *Bookings) ArchivePast(ctx context.Context, before string) (int64, error) {
	res := s.db.WithContext(ctx).Model(&models.Booking{}).
		Where("arrival_date < ?", before).
		Where("status NOT IN ?", []models.BookingStatus{models.BookingStatusCancelled, models.BookingStatusArchived}).
		Update("status", models.BookingStatusArchived)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to archive bookings: %w", res.Error)
	}
	return res.RowsAffected, nil
}
