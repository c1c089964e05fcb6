package post

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/zhouzirui/masterblog/backend/internal/model/post"
)

var (
	ErrNotFound             = errors.New("post not found")
	ErrDuplicateID          = errors.New("duplicate post id")
	ErrInvalidSortField     = errors.New("invalid sort field")
	ErrInvalidSortDirection = errors.New("invalid sort direction")
)

// Service owns the in-memory post collection.
type Service struct {
	mu    sync.RWMutex
	posts []post.Post
}

// NewService returns a store preloaded with a copy of seed.
func NewService(seed []post.Post) *Service {
	return &Service{posts: append(make([]post.Post, 0, len(seed)), seed...)}
}

// List returns every post, ordered by opts when both sort and direction are set.
func (s *Service) List(_ context.Context, opts post.ListOptions) ([]post.Post, error) {
	if !opts.Sorted() {
		return s.snapshot(), nil
	}

	if opts.Sort != post.SortByTitle && opts.Sort != post.SortByContent {
		return nil, fmt.Errorf("%q: %w", opts.Sort, ErrInvalidSortField)
	}
	if opts.Direction != post.DirectionAsc && opts.Direction != post.DirectionDesc {
		return nil, fmt.Errorf("%q: %w", opts.Direction, ErrInvalidSortDirection)
	}

	items := s.snapshot()
	key := func(p post.Post) string { return p.Title }
	if opts.Sort == post.SortByContent {
		key = func(p post.Post) string { return p.Content }
	}
	desc := opts.Direction == post.DirectionDesc
	sort.SliceStable(items, func(i, j int) bool {
		if desc {
			return key(items[i]) > key(items[j])
		}
		return key(items[i]) < key(items[j])
	})
	return items, nil
}

// Create appends a new post with the next free identifier.
func (s *Service) Create(_ context.Context, title, content string) (post.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	created := post.Post{
		ID:      s.nextID(),
		Title:   title,
		Content: content,
	}
	if s.indexOf(created.ID) >= 0 {
		return post.Post{}, fmt.Errorf("post %d: %w", created.ID, ErrDuplicateID)
	}

	s.posts = append(s.posts, created)
	return created, nil
}

// FindByID looks up a post by identifier.
func (s *Service) FindByID(_ context.Context, id int) (post.Post, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(id); i >= 0 {
		return s.posts[i], true
	}
	return post.Post{}, false
}

// Update overwrites the fields present in patch.
func (s *Service) Update(_ context.Context, id int, patch post.Patch) (post.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return post.Post{}, fmt.Errorf("post %d: %w", id, ErrNotFound)
	}

	if patch.Title != nil {
		s.posts[i].Title = *patch.Title
	}
	if patch.Content != nil {
		s.posts[i].Content = *patch.Content
	}
	return s.posts[i], nil
}

// Delete removes a post.
func (s *Service) Delete(_ context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("post %d: %w", id, ErrNotFound)
	}

	s.posts = append(s.posts[:i], s.posts[i+1:]...)
	return nil
}

// Search returns the posts whose fields contain every non-empty filter term,
// ignoring case.
func (s *Service) Search(_ context.Context, filter post.Filter) []post.Post {
	title := strings.ToLower(filter.Title)
	content := strings.ToLower(filter.Content)

	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := make([]post.Post, 0, len(s.posts))
	for _, item := range s.posts {
		if title != "" && !strings.Contains(strings.ToLower(item.Title), title) {
			continue
		}
		if content != "" && !strings.Contains(strings.ToLower(item.Content), content) {
			continue
		}
		matches = append(matches, item)
	}
	return matches
}

func (s *Service) snapshot() []post.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()

	copied := make([]post.Post, len(s.posts))
	copy(copied, s.posts)
	return copied
}

// nextID must be called with mu held.
func (s *Service) nextID() int {
	maxID := 0
	for _, item := range s.posts {
		if item.ID > maxID {
			maxID = item.ID
		}
	}
	return maxID + 1
}

func (s *Service) indexOf(id int) int {
	for i, item := range s.posts {
		if item.ID == id {
			return i
		}
	}
	return -1
}
