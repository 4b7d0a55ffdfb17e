// Package article defines the Article aggregate.
//
// title and content are analyzed full-text fields; author, category and tags
// are exact-match keywords. The tags set is stored as given: no deduplication,
// no guaranteed order.
package article

import "time"

// Article is a single indexed article document.
type Article struct {
	ID        string
	Title     string
	Content   string
	Author    string
	Category  string
	Tags      []string
	Views     int
	Rating    float64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Stamp applies persistence timestamps: CreatedAt is set exactly once, on the
// first save; UpdatedAt is set on every save and never precedes CreatedAt.
func (a *Article) Stamp(now time.Time) {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	a.UpdatedAt = now
}
