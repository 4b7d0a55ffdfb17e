package article

// Patch is a partial article update. Nil fields are left untouched; each
// present field overwrites the stored value wholesale (tags replace the whole
// set, they are not merged).
type Patch struct {
	Title    *string
	Content  *string
	Author   *string
	Category *string
	Tags     *[]string
	Views    *int
	Rating   *float64
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Title == nil && p.Content == nil && p.Author == nil &&
		p.Category == nil && p.Tags == nil && p.Views == nil && p.Rating == nil
}

// Apply overwrites only the fields present in the patch.
func (p Patch) Apply(a *Article) {
	if p.Title != nil {
		a.Title = *p.Title
	}
	if p.Content != nil {
		a.Content = *p.Content
	}
	if p.Author != nil {
		a.Author = *p.Author
	}
	if p.Category != nil {
		a.Category = *p.Category
	}
	if p.Tags != nil {
		a.Tags = append([]string(nil), (*p.Tags)...)
	}
	if p.Views != nil {
		a.Views = *p.Views
	}
	if p.Rating != nil {
		a.Rating = *p.Rating
	}
}
