package services

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/ogarridot/transfersol-backend/internal/models"
)

// Dashboard aggregations are pure functions over the loaded booking set.
// The stored date/time fields are strings, so the grouping happens in
// process rather than in SQL.

type PhoneOriginCount struct {
	Origin string `json:"origin"`
	Count  int    `json:"count"`
}

// PhoneOriginDistribution groups bookings by the first three characters of
// the contact phone, a rough prefix-based origin indicator.
func PhoneOriginDistribution(bookings []models.Booking) []PhoneOriginCount {
	counts := make(map[string]int)
	for _, b := range bookings {
		if len(b.Phone) >= 3 {
			counts[b.Phone[:3]]++
		}
	}

	data := make([]PhoneOriginCount, 0, len(counts))
	for origin, count := range counts {
		data = append(data, PhoneOriginCount{Origin: origin, Count: count})
	}
	sort.Slice(data, func(i, j int) bool { return data[i].Origin < data[j].Origin })
	return data
}

type TripTypeCount struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// RoundtripVsOneway splits the booking set by trip type. A booking with no
// return date counts as one-way.
func RoundtripVsOneway(bookings []models.Booking) []TripTypeCount {
	roundtrip := 0
	for _, b := range bookings {
		if b.IsRoundTrip() {
			roundtrip++
		}
	}
	return []TripTypeCount{
		{Type: "Roundtrip", Count: roundtrip},
		{Type: "Oneway", Count: len(bookings) - roundtrip},
	}
}

type PeriodCount struct {
	Period    string `json:"period"`
	OneWay    int    `json:"oneWay"`
	RoundTrip int    `json:"roundTrip"`
}

// BookingsByPeriod buckets bookings by the day, ISO week or month they were
// received, split into one-way and round-trip counts, sorted by period key.
func BookingsByPeriod(bookings []models.Booking, period string) []PeriodCount {
	grouped := make(map[string]*PeriodCount)

	for _, b := range bookings {
		var key string
		switch period {
		case "day":
			key = b.ReceivedAt.Format("2006-01-02")
		case "week":
			_, week := b.ReceivedAt.ISOWeek()
			key = fmt.Sprintf("%d-W%02d", b.ReceivedAt.Year(), week)
		default: // month
			key = b.ReceivedAt.Format("2006-01")
		}

		bucket, ok := grouped[key]
		if !ok {
			bucket = &PeriodCount{Period: key}
			grouped[key] = bucket
		}
		if b.IsRoundTrip() {
			bucket.RoundTrip++
		} else {
			bucket.OneWay++
		}
	}

	data := make([]PeriodCount, 0, len(grouped))
	for _, bucket := range grouped {
		data = append(data, *bucket)
	}
	sort.Slice(data, func(i, j int) bool { return data[i].Period < data[j].Period })
	return data
}

type DestinationCount struct {
	Destination string `json:"destination"`
	Count       int    `json:"count"`
}

// PopularDestinations returns the most booked destinations, highest first.
func PopularDestinations(bookings []models.Booking, limit int) []DestinationCount {
	if limit <= 0 {
		limit = 5
	}

	counts := make(map[string]int)
	for _, b := range bookings {
		if b.Destination != "" {
			counts[b.Destination]++
		}
	}

	data := make([]DestinationCount, 0, len(counts))
	for destination, count := range counts {
		data = append(data, DestinationCount{Destination: destination, Count: count})
	}
	sort.Slice(data, func(i, j int) bool {
		if data[i].Count != data[j].Count {
			return data[i].Count > data[j].Count
		}
		return data[i].Destination < data[j].Destination
	})

	if len(data) > limit {
		data = data[:limit]
	}
	return data
}

type HourCount struct {
	Hour  string `json:"hour"`
	Count int    `json:"count"`
}

// BookingsByHour buckets bookings into the 24 arrival hours. Malformed
// arrival times are skipped.
func BookingsByHour(bookings []models.Booking) []HourCount {
	counts := make([]HourCount, 24)
	for i := range counts {
		counts[i] = HourCount{Hour: fmt.Sprintf("%02d:00", i)}
	}

	for _, b := range bookings {
		if b.ArrivalTime == "" {
			continue
		}
		hourPart, _, _ := strings.Cut(b.ArrivalTime, ":")
		hour, err := strconv.Atoi(hourPart)
		if err != nil || hour < 0 || hour > 23 {
			continue
		}
		counts[hour].Count++
	}
	return counts
}
