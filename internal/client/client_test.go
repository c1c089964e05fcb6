package client_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhouzirui/masterblog/backend/internal/client"
	"github.com/zhouzirui/masterblog/backend/internal/handler"
	"github.com/zhouzirui/masterblog/backend/internal/model/post"
	postservice "github.com/zhouzirui/masterblog/backend/internal/service/post"
)

func startServer(t *testing.T, seed []post.Post) *client.Client {
	t.Helper()
	srv := httptest.NewServer(handler.NewRouter(postservice.NewService(seed), []string{"*"}))
	t.Cleanup(srv.Close)
	return client.New(srv.URL+"/api", srv.Client())
}

func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func strPtr(v string) *string { return &v }

func TestCreateListRoundTrip(t *testing.T) {
	c := startServer(t, post.Seed())
	ctx := testContext(t)

	created, err := c.Create(ctx, "Third Post", "Hello")
	require.NoError(t, err)
	assert.Equal(t, 3, created.ID)

	posts, err := c.List(ctx, post.ListOptions{})
	require.NoError(t, err)

	count := 0
	for _, p := range posts {
		if p.ID == created.ID {
			count++
			assert.Equal(t, created, p)
		}
	}
	assert.Equal(t, 1, count)
}

func TestEmptyStoreStartsAtOne(t *testing.T) {
	c := startServer(t, nil)
	ctx := testContext(t)

	first, err := c.Create(ctx, "A", "B")
	require.NoError(t, err)
	second, err := c.Create(ctx, "C", "D")
	require.NoError(t, err)

	assert.Equal(t, 1, first.ID)
	assert.Equal(t, 2, second.ID)
}

func TestListSorted(t *testing.T) {
	c := startServer(t, post.Seed())
	ctx := testContext(t)

	posts, err := c.List(ctx, post.ListOptions{Sort: "title", Direction: "desc"})
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "Second Post", posts[0].Title)

	_, err = c.List(ctx, post.ListOptions{Sort: "bogus", Direction: "asc"})
	var apiErr *client.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Contains(t, apiErr.Message, "'title' or 'content'")
}

func TestUpdateAndDelete(t *testing.T) {
	c := startServer(t, post.Seed())
	ctx := testContext(t)

	updated, err := c.Update(ctx, 1, post.Patch{Title: strPtr("X")})
	require.NoError(t, err)
	assert.Equal(t, post.Post{ID: 1, Title: "X", Content: "This is the first post."}, updated)

	_, err = c.Update(ctx, 999, post.Patch{Title: strPtr("X")})
	assert.ErrorIs(t, err, client.ErrNotFound)

	msg, err := c.Delete(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Post with id 1 has been deleted successfully.", msg)

	_, err = c.Delete(ctx, 1)
	assert.ErrorIs(t, err, client.ErrNotFound)
}

func TestSearch(t *testing.T) {
	c := startServer(t, post.Seed())
	ctx := testContext(t)

	posts, err := c.Search(ctx, post.Filter{Title: "first"})
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "First Post", posts[0].Title)

	posts, err = c.Search(ctx, post.Filter{})
	require.NoError(t, err)
	assert.Len(t, posts, 2)
}
