package handlers

import (
	"encoding/json"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ogarridot/transfersol-backend/internal/models"
	"github.com/ogarridot/transfersol-backend/internal/services"
	"github.com/ogarridot/transfersol-backend/internal/store"
)

// respondChart serves one dashboard chart: cached payload if fresh,
// otherwise aggregate over the full booking set and cache the result.
func respondChart(c *gin.Context, bookings *store.Bookings, cache *services.DashboardCache,
	key string, aggregate func(items []models.Booking) interface{}) {
	ctx := c.Request.Context()

	if payload, ok := cache.Get(ctx, key); ok {
		c.Data(200, "application/json; charset=utf-8", []byte(payload))
		return
	}

	items, err := bookings.Search(ctx, store.BookingFilter{})
	if err != nil {
		c.JSON(500, gin.H{"error": "Error reading from database"})
		return
	}

	payload, err := json.Marshal(aggregate(items))
	if err != nil {
		c.JSON(500, gin.H{"error": "Error building chart data"})
		return
	}

	cache.Set(ctx, key, string(payload))
	c.Data(200, "application/json; charset=utf-8", payload)
}

// GetPhoneOriginDistribution groups bookings by phone prefix
func GetPhoneOriginDistribution(bookings *store.Bookings, cache *services.DashboardCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		respondChart(c, bookings, cache, "phone-origin-distribution", func(items []models.Booking) interface{} {
			return services.PhoneOriginDistribution(items)
		})
	}
}

// GetRoundtripVsOneway splits the booking set by trip type
func GetRoundtripVsOneway(bookings *store.Bookings, cache *services.DashboardCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		respondChart(c, bookings, cache, "roundtrip-vs-oneway", func(items []models.Booking) interface{} {
			return services.RoundtripVsOneway(items)
		})
	}
}

// GetBookingsByPeriod buckets bookings by day, week or month received
func GetBookingsByPeriod(bookings *store.Bookings, cache *services.DashboardCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		period := c.DefaultQuery("period", "month")
		respondChart(c, bookings, cache, "bookings-by-period:"+period, func(items []models.Booking) interface{} {
			return services.BookingsByPeriod(items, period)
		})
	}
}

// GetPopularDestinations returns the most booked destinations
func GetPopularDestinations(bookings *store.Bookings, cache *services.DashboardCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))
		respondChart(c, bookings, cache, "popular-destinations:"+strconv.Itoa(limit), func(items []models.Booking) interface{} {
			return services.PopularDestinations(items, limit)
		})
	}
}

// GetBookingsByHour buckets bookings into arrival hours
func GetBookingsByHour(bookings *store.Bookings, cache *services.DashboardCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		respondChart(c, bookings, cache, "bookings-by-hour", func(items []models.Booking) interface{} {
			return services.BookingsByHour(items)
		})
	}
}
