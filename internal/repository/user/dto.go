package user

import (
	"time"

	domuser "github.com/kailas-cloud/docsearch/internal/domain/user"
)

// indexMapping defines the user index: keywords for identity fields, analyzed
// text for full_name/bio. is_active stays a keyword carrying "true"/"false".
const indexMapping = `{
  "settings": {"number_of_shards": 1, "number_of_replicas": 0},
  "mappings": {
    "properties": {
      "username":   {"type": "keyword"},
      "email":      {"type": "keyword"},
      "full_name":  {"type": "text"},
      "bio":        {"type": "text"},
      "is_active":  {"type": "keyword"},
      "created_at": {"type": "date"},
      "updated_at": {"type": "date"}
    }
  }
}`

// doc is the wire representation of a user inside the index.
type doc struct {
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Bio       string    `json:"bio"`
	IsActive  string    `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toDoc(u *domuser.User) doc {
	return doc{
		Username:  u.Username,
		Email:     u.Email,
		FullName:  u.FullName,
		Bio:       u.Bio,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func fromDoc(id string, d doc) domuser.User {
	return domuser.User{
		ID:        id,
		Username:  d.Username,
		Email:     d.Email,
		FullName:  d.FullName,
		Bio:       d.Bio,
		IsActive:  d.IsActive,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}
