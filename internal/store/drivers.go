package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/ogarridot/transfersol-backend/internal/models"
	"gorm.io/gorm"
)

type Drivers struct {
	db *gorm.DB
}

func NewDrivers(db *gorm.DB) *Drivers {
	return &Drivers{db: db}
}

func (s *Drivers) ListAll(ctx context.Context) ([]models.Driver, error) {
	var drivers []models.Driver
	if err := s.db.WithContext(ctx).Order("name asc").Find(&drivers).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch drivers: %w", err)
	}
	return drivers, nil
}

func (s *Drivers) Create(ctx context.Context, driver *models.Driver) error {
	if driver.ID == "" {
		driver.ID = uuid.NewString()
	}
	if err := s.db.WithContext(ctx).Create(driver).Error; err != nil {
		return fmt.Errorf("failed to create driver: %w", err)
	}
	return nil
}

func (s *Drivers) Update(ctx context.Context, id, name, phone string) (*models.Driver, error) {
	res := s.db.WithContext(ctx).Model(&models.Driver{}).Where("id = ?", id).
		Updates(map[string]interface{}{"name": name, "phone": phone})
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update driver %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	var driver models.Driver
	if err := s.db.WithContext(ctx).First(&driver, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch driver %s: %w", id, err)
	}
	return &driver, nil
}

// Delete removes a driver and unassigns it from any bookings still
// referencing it. Bookings themselves are never deleted.
func (s *Drivers) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Booking{}).Where("driver_id = ?", id).
			Update("driver_id", nil).Error; err != nil {
			return fmt.Errorf("failed to unassign driver %s: %w", id, err)
		}

		res := tx.Delete(&models.Driver{}, "id = ?", id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete driver %s: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (s *Drivers) GetByID(ctx context.Context, id string) (*models.Driver, error) {
	var driver models.Driver
	err := s.db.WithContext(ctx).First(&driver, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch driver %s: %w", id, err)
	}
	return &driver, nil
}
