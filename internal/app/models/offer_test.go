package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

func datePtr(s string) *time.Time {
	t := day(s)
	return &t
}

func TestOfferIsExpired(t *testing.T) {
	today := day("2025-06-15")

	noDeadline := Offer{}
	assert.False(t, noDeadline.IsExpired(today))

	past := Offer{Deadline: datePtr("2025-06-14")}
	assert.True(t, past.IsExpired(today))

	sameDay := Offer{Deadline: datePtr("2025-06-15")}
	assert.False(t, sameDay.IsExpired(today))

	future := Offer{Deadline: datePtr("2025-07-01")}
	assert.False(t, future.IsExpired(today))
}

func TestOfferIsFull(t *testing.T) {
	assert.False(t, (&Offer{Capacity: 2, PlacesTaken: 1}).IsFull())
	assert.True(t, (&Offer{Capacity: 2, PlacesTaken: 2}).IsFull())
	assert.True(t, (&Offer{Capacity: 2, PlacesTaken: 3}).IsFull())
}

func TestOfferIsAvailable(t *testing.T) {
	today := day("2025-06-15")

	open := Offer{IsActive: true, Capacity: 3, PlacesTaken: 1, Deadline: datePtr("2025-07-01")}
	assert.True(t, open.IsAvailable(today))

	inactive := open
	inactive.IsActive = false
	assert.False(t, inactive.IsAvailable(today))

	full := open
	full.PlacesTaken = 3
	assert.False(t, full.IsAvailable(today))

	expired := open
	expired.Deadline = datePtr("2025-06-01")
	assert.False(t, expired.IsAvailable(today))
}
