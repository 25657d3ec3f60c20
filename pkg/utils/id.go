package utils

import (
	"crypto/rand"
)

// BookingIDLength is the length of generated booking ids. Short enough to
// quote over the phone, long enough that collisions are negligible.
const BookingIDLength = 8

// bookingIDAlphabet is URL-safe so ids can appear in links unescaped.
// 64 characters, so masking a random byte with 0x3f picks uniformly.
const bookingIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"

// NewBookingID generates a random 8-character booking id.
func NewBookingID() string {
	buf := make([]byte, BookingIDLength)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms
		panic(err)
	}

	for i, b := range buf {
		buf[i] = bookingIDAlphabet[b&0x3f]
	}
	return string(buf)
}
