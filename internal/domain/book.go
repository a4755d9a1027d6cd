// Package domain contains core business entities and rules.
package domain

import (
	"strconv"
)

// Rating is a single user's rating of a book. A book holds at most one
// Rating per distinct user.
type Rating struct {
	UserID string
	Value  float64
}

// Ratings is the ordered sequence of per-user ratings for a book.
type Ratings []Rating

// Book represents a story with reader ratings.
// This is a domain entity - it has no knowledge of external systems.
type Book struct {
	// ID is the store-assigned identifier, opaque to callers.
	ID string

	// Title is the story's display title.
	Title string

	// Text is the story body.
	Text string

	// Extra holds any further caller-supplied fields. Books are
	// schema-flexible; only ratings are interpreted by the server.
	Extra map[string]any

	// Ratings holds at most one entry per distinct user.
	Ratings Ratings

	// AvgRating is the mean of Ratings formatted to one decimal place,
	// stored redundantly for display. Empty while Ratings is empty.
	AvgRating string
}

// Apply records a user's rating. An existing entry for the same user is
// overwritten in place; a new user is appended. It returns the updated
// sequence and the recomputed mean.
func (r Ratings) Apply(userID string, value float64) (Ratings, float64) {
	updated := make(Ratings, len(r))
	copy(updated, r)

	found := false

	for i := range updated {
		if updated[i].UserID == userID {
			updated[i].Value = value
			found = true

			break
		}
	}

	if !found {
		updated = append(updated, Rating{UserID: userID, Value: value})
	}

	return updated, updated.Mean()
}

// Mean returns the arithmetic mean of all rating values.
// It returns 0 for an empty sequence.
func (r Ratings) Mean() float64 {
	if len(r) == 0 {
		return 0
	}

	var sum float64
	for _, entry := range r {
		sum += entry.Value
	}

	return sum / float64(len(r))
}

// FormatAverage renders a mean rating to one decimal place for display,
// e.g. 3.5 -> "3.5", 3 -> "3.0".
func FormatAverage(mean float64) string {
	return strconv.FormatFloat(mean, 'f', 1, 64)
}
