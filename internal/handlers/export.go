package handlers

import (
	"bytes"
	"encoding/csv"
	"log"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ogarridot/transfersol-backend/internal/services"
	"github.com/ogarridot/transfersol-backend/internal/store"
)

var exportHeader = []string{
	"id", "status", "received_at", "name", "phone", "email", "people",
	"has_minors", "minors_age", "needs_baby_seat", "needs_booster",
	"luggage_type", "arrival_date", "arrival_time", "arrival_flight_number",
	"destination", "return_date", "return_time", "return_flight_time",
	"return_pickup_address", "return_flight_number", "additional_info",
	"driver_name", "driver_phone", "lang",
}

// ExportBookingsCSV streams all bookings as CSV and keeps an archive copy
// in export storage. The archive is best-effort; a storage failure never
// blocks the download.
func ExportBookingsCSV(bookings *store.Bookings, storage *services.ExportStorage) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := bookings.Search(c.Request.Context(), store.BookingFilter{})
		if err != nil {
			c.JSON(500, gin.H{"error": "Error reading from database"})
			return
		}

		var buf bytes.Buffer
		w := csv.NewWriter(&buf)
		w.Write(exportHeader)

		yesNo := func(v bool) string {
			if v {
				return "yes"
			}
			return "no"
		}

		for _, b := range items {
			driverName, driverPhone := "", ""
			if b.Driver != nil {
				driverName, driverPhone = b.Driver.Name, b.Driver.Phone
			}
			w.Write([]string{
				b.ID, string(b.Status), b.ReceivedAt.Format("2006-01-02 15:04:05"),
				b.Name, b.Phone, b.Email, strconv.Itoa(b.People),
				yesNo(b.HasMinors), b.MinorsAge, yesNo(b.NeedsBabySeat), yesNo(b.NeedsBooster),
				b.LuggageType, b.ArrivalDate, b.ArrivalTime, b.ArrivalFlightNumber,
				b.Destination, b.ReturnDate, b.ReturnTime, b.ReturnFlightTime,
				b.ReturnPickupAddress, b.ReturnFlightNumber, b.AdditionalInfo,
				driverName, driverPhone, b.Lang,
			})
		}
		w.Flush()
		if err := w.Error(); err != nil {
			c.JSON(500, gin.H{"error": "Error building export"})
			return
		}

		if storage != nil {
			if location, err := storage.SaveExport("bookings.csv", buf.Bytes()); err != nil {
				log.Printf("Failed to archive bookings export: %v", err)
			} else {
				log.Printf("Archived bookings export at %s", location)
			}
		}

		c.Header("Content-Disposition", `attachment; filename="bookings.csv"`)
		c.Data(200, "text/csv; charset=utf-8", buf.Bytes())
	}
}
