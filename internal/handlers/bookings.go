package handlers

import (
	"errors"
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ogarridot/transfersol-backend/internal/models"
	"github.com/ogarridot/transfersol-backend/internal/services"
	"github.com/ogarridot/transfersol-backend/internal/store"
)

// GetAllBookings returns one page of bookings, newest first, with their
// assigned drivers expanded
func GetAllBookings(bookings *store.Bookings) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "10"))
		if page < 1 {
			page = 1
		}
		if pageSize < 1 {
			pageSize = 10
		}

		items, total, err := bookings.List(c.Request.Context(), page, pageSize)
		if err != nil {
			c.JSON(500, gin.H{"error": "Error reading from database"})
			return
		}

		c.JSON(200, gin.H{
			"bookings":   items,
			"total":      total,
			"page":       page,
			"pageSize":   pageSize,
			"totalPages": int(math.Ceil(float64(total) / float64(pageSize))),
		})
	}
}

// SearchBookings filters bookings by name/destination/id substring, exact
// status and arrival date prefix
func SearchBookings(bookings *store.Bookings) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := store.BookingFilter{
			Name:        c.Query("name"),
			Destination: c.Query("destination"),
			ID:          c.Query("id"),
			Status:      c.Query("status"),
			ArrivalDate: c.Query("arrival_date"),
		}

		items, err := bookings.Search(c.Request.Context(), filter)
		if err != nil {
			c.JSON(500, gin.H{"error": "Error searching bookings"})
			return
		}

		c.JSON(200, items)
	}
}

// GetBookingStatus is the public endpoint customers use to check their
// booking by its short id
func GetBookingStatus(bookings *store.Bookings) gin.HandlerFunc {
	return func(c *gin.Context) {
		booking, err := bookings.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(404, gin.H{"error": "Booking not found"})
				return
			}
			c.JSON(500, gin.H{"error": "Error fetching booking status"})
			return
		}

		c.JSON(200, gin.H{
			"id":     booking.ID,
			"status": booking.Status,
		})
	}
}

type createBookingInput struct {
	Name                string `json:"name" binding:"required,min=3"`
	Phone               string `json:"phone" binding:"required"`
	Email               string `json:"email" binding:"omitempty,email"`
	People              int    `json:"people" binding:"required,min=1"`
	HasMinors           bool   `json:"hasMinors"`
	MinorsAge           string `json:"minorsAge"`
	NeedsBabySeat       bool   `json:"needsBabySeat"`
	NeedsBooster        bool   `json:"needsBooster"`
	LuggageType         string `json:"luggageType"`
	ArrivalDate         string `json:"arrival_date" binding:"required"`
	ArrivalTime         string `json:"arrival_time" binding:"required"`
	ArrivalFlightNumber string `json:"arrival_flight_number"`
	Destination         string `json:"destination" binding:"required"`
	ReturnDate          string `json:"return_date"`
	ReturnTime          string `json:"return_time"`
	ReturnFlightTime    string `json:"return_flight_time"`
	ReturnPickupAddress string `json:"return_pickup_address"`
	ReturnFlightNumber  string `json:"return_flight_number"`
	AdditionalInfo      string `json:"additional_info"`
	IsModification      bool   `json:"isModification"`
	OriginalBookingID   string `json:"originalBookingId"`
	Lang                string `json:"lang"`
	DriverID            string `json:"driverId"`
}

// CreateBooking is the public submission endpoint
func CreateBooking(engine *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input createBookingInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		booking := models.Booking{
			Name:                input.Name,
			Phone:               input.Phone,
			Email:               input.Email,
			People:              input.People,
			HasMinors:           input.HasMinors,
			MinorsAge:           input.MinorsAge,
			NeedsBabySeat:       input.NeedsBabySeat,
			NeedsBooster:        input.NeedsBooster,
			LuggageType:         input.LuggageType,
			ArrivalDate:         input.ArrivalDate,
			ArrivalTime:         input.ArrivalTime,
			ArrivalFlightNumber: input.ArrivalFlightNumber,
			Destination:         input.Destination,
			ReturnDate:          input.ReturnDate,
			ReturnTime:          input.ReturnTime,
			ReturnFlightTime:    input.ReturnFlightTime,
			ReturnPickupAddress: input.ReturnPickupAddress,
			ReturnFlightNumber:  input.ReturnFlightNumber,
			AdditionalInfo:      input.AdditionalInfo,
			IsModification:      input.IsModification,
			OriginalBookingID:   input.OriginalBookingID,
			Lang:                input.Lang,
		}
		if input.DriverID != "" {
			booking.DriverID = &input.DriverID
		}

		created, err := engine.Create(c.Request.Context(), &booking)
		if err != nil {
			c.JSON(500, gin.H{"error": "Error creating booking"})
			return
		}

		c.JSON(201, created)
	}
}

// ConfirmBooking confirms a booking and emails the customer. A failed
// email does not undo the confirmation; the response says so.
func ConfirmBooking(engine *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		booking, err := engine.Confirm(c.Request.Context(), c.Param("id"))

		var notifyErr *services.NotificationError
		switch {
		case err == nil:
			c.JSON(200, gin.H{"message": "Booking confirmed and email sent", "booking": booking})
		case errors.As(err, &notifyErr):
			c.JSON(500, gin.H{
				"message": "Booking status updated, but failed to send email.",
				"error":   notifyErr.Error(),
				"booking": booking,
			})
		case errors.Is(err, store.ErrNotFound):
			c.JSON(404, gin.H{"error": "Booking not found"})
		default:
			c.JSON(500, gin.H{"error": "Error confirming booking"})
		}
	}
}

// CancelBooking cancels a booking. Push only, never an email.
func CancelBooking(engine *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		booking, err := engine.Cancel(c.Request.Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(404, gin.H{"error": "Booking not found"})
				return
			}
			c.JSON(500, gin.H{"error": "Error cancelling booking"})
			return
		}

		c.JSON(200, gin.H{"message": "Booking cancelled", "booking": booking})
	}
}

// UpdateBooking applies a partial update and emails the customer the diff.
// Here a failed email fails the whole request, unlike ConfirmBooking.
func UpdateBooking(engine *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var patch services.BookingPatch
		if err := c.ShouldBindJSON(&patch); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		booking, err := engine.Update(c.Request.Context(), c.Param("id"), patch)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(404, gin.H{"error": "Booking not found"})
				return
			}
			c.JSON(500, gin.H{"error": "Error updating booking"})
			return
		}

		c.JSON(200, gin.H{"message": "Booking updated successfully", "booking": booking})
	}
}

// RequestInfo emails a staff question to the customer
func RequestInfo(engine *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Message string `json:"message" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": "Message is required"})
			return
		}

		err := engine.RequestInfo(c.Request.Context(), c.Param("id"), input.Message)
		switch {
		case err == nil:
			c.JSON(200, gin.H{"message": "Query email sent successfully"})
		case errors.Is(err, store.ErrNotFound):
			c.JSON(404, gin.H{"error": "Booking not found"})
		case errors.Is(err, services.ErrNoEmailOnFile):
			c.JSON(400, gin.H{"error": "Client does not have an email address on file."})
		default:
			c.JSON(500, gin.H{"error": "Failed to send query email."})
		}
	}
}

// ArchiveBookings bulk-moves past bookings to the archived status
func ArchiveBookings(bookings *store.Bookings) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Before string `json:"before" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": "Cutoff date is required"})
			return
		}

		archived, err := bookings.ArchivePast(c.Request.Context(), input.Before)
		if err != nil {
			c.JSON(500, gin.H{"error": "Error archiving bookings"})
			return
		}

		c.JSON(200, gin.H{"message": "Bookings archived", "archived": archived})
	}
}
