package post

// Sortable fields and directions accepted by the list operation.
const (
	SortByTitle   = "title"
	SortByContent = "content"

	DirectionAsc  = "asc"
	DirectionDesc = "desc"
)

// ListOptions controls ordering of a list read. Sorting only applies when
// both fields are set.
type ListOptions struct {
	Sort      string
	Direction string
}

// Sorted reports whether the options request an explicit ordering.
func (o ListOptions) Sorted() bool {
	return o.Sort != "" && o.Direction != ""
}

// Filter holds the optional search terms. Empty terms match everything.
type Filter struct {
	Title   string
	Content string
}

// Patch describes a partial update; nil fields are left untouched.
type Patch struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}
