package article

import (
	"time"

	domart "github.com/kailas-cloud/docsearch/internal/domain/article"
)

// indexMapping defines the article index: analyzed text for title/content,
// exact-match keywords for author/category/tags, dates for the timestamps.
const indexMapping = `{
  "settings": {"number_of_shards": 1, "number_of_replicas": 0},
  "mappings": {
    "properties": {
      "title":      {"type": "text"},
      "content":    {"type": "text"},
      "author":     {"type": "keyword"},
      "category":   {"type": "keyword"},
      "tags":       {"type": "keyword"},
      "views":      {"type": "integer"},
      "rating":     {"type": "float"},
      "created_at": {"type": "date"},
      "updated_at": {"type": "date"}
    }
  }
}`

// doc is the wire representation of an article inside the index.
// The id lives in the document metadata, not the source.
type doc struct {
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	Category  string    `json:"category"`
	Tags      []string  `json:"tags"`
	Views     int       `json:"views"`
	Rating    float64   `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toDoc(a *domart.Article) doc {
	tags := a.Tags
	if tags == nil {
		tags = []string{}
	}
	return doc{
		Title:     a.Title,
		Content:   a.Content,
		Author:    a.Author,
		Category:  a.Category,
		Tags:      tags,
		Views:     a.Views,
		Rating:    a.Rating,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func fromDoc(id string, d doc) domart.Article {
	return domart.Article{
		ID:        id,
		Title:     d.Title,
		Content:   d.Content,
		Author:    d.Author,
		Category:  d.Category,
		Tags:      d.Tags,
		Views:     d.Views,
		Rating:    d.Rating,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}
