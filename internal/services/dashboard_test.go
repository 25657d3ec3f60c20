package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ogarridot/transfersol-backend/internal/models"
)

func receivedAt(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return t
}

func TestPhoneOriginDistribution(t *testing.T) {
	bookings := []models.Booking{
		{Phone: "+34600111222"},
		{Phone: "+34600333444"},
		{Phone: "+44770012345"},
		{Phone: "07"}, // too short to classify
	}

	got := PhoneOriginDistribution(bookings)
	assert.Equal(t, []PhoneOriginCount{
		{Origin: "+34", Count: 2},
		{Origin: "+44", Count: 1},
	}, got)
}

func TestRoundtripVsOneway(t *testing.T) {
	bookings := []models.Booking{
		{ReturnDate: "2026-09-17"},
		{ReturnDate: ""},
		{ReturnDate: "2026-10-01"},
	}

	got := RoundtripVsOneway(bookings)
	assert.Equal(t, []TripTypeCount{
		{Type: "Roundtrip", Count: 2},
		{Type: "Oneway", Count: 1},
	}, got)
}

func TestBookingsByPeriod(t *testing.T) {
	bookings := []models.Booking{
		{ReceivedAt: receivedAt("2026-01-05"), ReturnDate: "2026-01-12"},
		{ReceivedAt: receivedAt("2026-01-05")},
		{ReceivedAt: receivedAt("2026-02-10")},
	}

	t.Run("by day", func(t *testing.T) {
		got := BookingsByPeriod(bookings, "day")
		assert.Equal(t, []PeriodCount{
			{Period: "2026-01-05", OneWay: 1, RoundTrip: 1},
			{Period: "2026-02-10", OneWay: 1},
		}, got)
	})

	t.Run("by month", func(t *testing.T) {
		got := BookingsByPeriod(bookings, "month")
		assert.Equal(t, []PeriodCount{
			{Period: "2026-01", OneWay: 1, RoundTrip: 1},
			{Period: "2026-02", OneWay: 1},
		}, got)
	})

	t.Run("by week", func(t *testing.T) {
		got := BookingsByPeriod(bookings, "week")
		require.Len(t, got, 2)
		// 2026-01-05 is a Monday, ISO week 2.
		assert.Equal(t, PeriodCount{Period: "2026-W02", OneWay: 1, RoundTrip: 1}, got[0])
	})
}

func TestPopularDestinations(t *testing.T) {
	bookings := []models.Booking{
		{Destination: "Marbella"},
		{Destination: "Marbella"},
		{Destination: "Estepona"},
		{Destination: "Fuengirola"},
		{Destination: ""},
	}

	t.Run("ordered by count then name", func(t *testing.T) {
		got := PopularDestinations(bookings, 0)
		assert.Equal(t, []DestinationCount{
			{Destination: "Marbella", Count: 2},
			{Destination: "Estepona", Count: 1},
			{Destination: "Fuengirola", Count: 1},
		}, got)
	})

	t.Run("limit applies", func(t *testing.T) {
		got := PopularDestinations(bookings, 1)
		assert.Equal(t, []DestinationCount{{Destination: "Marbella", Count: 2}}, got)
	})
}

func TestBookingsByHour(t *testing.T) {
	bookings := []models.Booking{
		{ArrivalTime: "09:15"},
		{ArrivalTime: "9:45"},
		{ArrivalTime: "23:00"},
		{ArrivalTime: ""},
		{ArrivalTime: "not a time"},
		{ArrivalTime: "25:00"},
	}

	got := BookingsByHour(bookings)
	require.Len(t, got, 24)

	assert.Equal(t, HourCount{Hour: "09:00", Count: 2}, got[9])
	assert.Equal(t, HourCount{Hour: "23:00", Count: 1}, got[23])
	assert.Equal(t, HourCount{Hour: "00:00", Count: 0}, got[0])
}
