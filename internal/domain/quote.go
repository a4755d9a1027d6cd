package domain

import "time"

// Quote represents a quotation with its author and category.
type Quote struct {
	// ID is the store-assigned identifier, opaque to callers.
	ID string

	// Text is the text of the quote.
	Text string

	// Author is who said or wrote the quote.
	Author string

	// Category groups quotes by theme.
	Category string

	// Likes is the set of user IDs who have liked this quote.
	// It contains no user more than once.
	Likes LikeSet

	// CreatedAt is set by the server on creation and never changes.
	CreatedAt time.Time
}

// LikeSet is the set of users who liked a quote, kept as a sequence.
type LikeSet []string

// Contains reports whether the user has liked the quote.
func (l LikeSet) Contains(userID string) bool {
	for _, id := range l {
		if id == userID {
			return true
		}
	}

	return false
}

// Toggle flips the user's membership: present users are removed (unlike),
// absent users are added (like). Removal reconstructs the sequence, so
// relative order of the remaining members is not guaranteed. It returns
// the updated set and whether the user is a member afterwards.
func (l LikeSet) Toggle(userID string) (LikeSet, bool) {
	if l.Contains(userID) {
		updated := make(LikeSet, 0, len(l)-1)

		for _, id := range l {
			if id != userID {
				updated = append(updated, id)
			}
		}

		return updated, false
	}

	updated := make(LikeSet, len(l), len(l)+1)
	copy(updated, l)

	return append(updated, userID), true
}
