package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/ogarridot/transfersol-backend/internal/models"
	"github.com/ogarridot/transfersol-backend/internal/store"
)

type driverInput struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone" binding:"required"`
}

// GetAllDrivers lists all drivers ordered by name
func GetAllDrivers(drivers *store.Drivers) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := drivers.ListAll(c.Request.Context())
		if err != nil {
			c.JSON(500, gin.H{"error": "Error fetching drivers"})
			return
		}
		c.JSON(200, items)
	}
}

// CreateDriver adds a new driver
func CreateDriver(drivers *store.Drivers) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input driverInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": "Name and phone are required"})
			return
		}

		driver := models.Driver{Name: input.Name, Phone: input.Phone}
		if err := drivers.Create(c.Request.Context(), &driver); err != nil {
			c.JSON(500, gin.H{"error": "Error creating driver"})
			return
		}

		c.JSON(201, driver)
	}
}

// UpdateDriver renames a driver or changes its phone
func UpdateDriver(drivers *store.Drivers) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input driverInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": "Name and phone are required"})
			return
		}

		driver, err := drivers.Update(c.Request.Context(), c.Param("id"), input.Name, input.Phone)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(404, gin.H{"error": "Driver not found"})
				return
			}
			c.JSON(500, gin.H{"error": "Error updating driver"})
			return
		}

		c.JSON(200, driver)
	}
}

// DeleteDriver removes a driver; bookings referencing it become unassigned
func DeleteDriver(drivers *store.Drivers) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := drivers.Delete(c.Request.Context(), c.Param("id")); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(404, gin.H{"error": "Driver not found"})
				return
			}
			c.JSON(500, gin.H{"error": "Error deleting driver"})
			return
		}

		c.Status(204)
	}
}
