package post

// Post is the single record kept by the blog backend.
type Post struct {
	ID      int    `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Seed returns the posts every fresh process starts with.
func Seed() []Post {
	return []Post{
		{
			ID:      1,
			Title:   "First Post",
			Content: "This is the first post.",
		},
		{
			ID:      2,
			Title:   "Second Post",
			Content: "This is the second post.",
		},
	}
}
