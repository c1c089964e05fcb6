package apiclient_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhouzirui/masterblog/backend/internal/client/apiclient"
)

func TestNewListPostsRequestEncodesQuery(t *testing.T) {
	sort := apiclient.Title
	direction := apiclient.Desc
	req, err := apiclient.NewListPostsRequest("http://localhost:5002/api/", &apiclient.ListPostsParams{
		Sort:      &sort,
		Direction: &direction,
	})
	require.NoError(t, err)

	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, "/api/posts", req.URL.Path)
	assert.Equal(t, "title", req.URL.Query().Get("sort"))
	assert.Equal(t, "desc", req.URL.Query().Get("direction"))
}

func TestNewUpdatePostRequestUsesIDPath(t *testing.T) {
	title := "X"
	req, err := apiclient.NewUpdatePostRequest("http://localhost:5002/api/", 7, apiclient.UpdatePostJSONRequestBody{Title: &title})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPut, req.Method)
	assert.Equal(t, "/api/posts/7", req.URL.Path)
	assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
}

func TestNewClientAddsTrailingSlash(t *testing.T) {
	c, err := apiclient.NewClient("http://localhost:5002/api")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5002/api/", c.Server)
}
