package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/zhouzirui/masterblog/backend/internal/client/apiclient"
	"github.com/zhouzirui/masterblog/backend/internal/model/post"
)

// ErrNotFound matches any 404 returned by the API.
var ErrNotFound = errors.New("not found")

// APIError surfaces non-2xx responses from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status=%d message=%s", e.StatusCode, e.Message)
}

//nolint:errorlint
func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// Client talks to the /posts endpoints of a running API service.
type Client struct {
	api *apiclient.ClientWithResponses
}

// New creates a client for baseURL, e.g. "http://localhost:5002/api".
// A nil httpClient gets a client with a 10s timeout.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	api, err := apiclient.NewClientWithResponses(baseURL, apiclient.WithHTTPClient(httpClient))
	if err != nil {
		panic(fmt.Sprintf("failed to create api client: %v", err))
	}
	return &Client{api: api}
}

// List fetches every post, optionally ordered.
func (c *Client) List(ctx context.Context, opts post.ListOptions) ([]post.Post, error) {
	params := &apiclient.ListPostsParams{}
	if opts.Sort != "" {
		sort := apiclient.ListPostsParamsSort(opts.Sort)
		params.Sort = &sort
	}
	if opts.Direction != "" {
		direction := apiclient.ListPostsParamsDirection(opts.Direction)
		params.Direction = &direction
	}

	resp, err := c.api.ListPostsWithResponse(ctx, params)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, newAPIError(resp.StatusCode(), resp.Body)
	}
	if resp.JSON200 == nil {
		return nil, fmt.Errorf("missing body for 200 response")
	}
	return fromWirePosts(*resp.JSON200), nil
}

// Create adds a post and returns it with its assigned id.
func (c *Client) Create(ctx context.Context, title, content string) (post.Post, error) {
	resp, err := c.api.CreatePostWithResponse(ctx, apiclient.CreatePostJSONRequestBody{
		Title:   title,
		Content: content,
	})
	if err != nil {
		return post.Post{}, err
	}
	if resp.StatusCode() != http.StatusCreated {
		return post.Post{}, newAPIError(resp.StatusCode(), resp.Body)
	}
	if resp.JSON201 == nil {
		return post.Post{}, fmt.Errorf("missing body for 201 response")
	}
	return fromWirePost(*resp.JSON201), nil
}

// Update applies patch to the post with the given id.
func (c *Client) Update(ctx context.Context, id int, patch post.Patch) (post.Post, error) {
	resp, err := c.api.UpdatePostWithResponse(ctx, id, apiclient.UpdatePostJSONRequestBody{
		Title:   patch.Title,
		Content: patch.Content,
	})
	if err != nil {
		return post.Post{}, err
	}
	if resp.StatusCode() != http.StatusOK {
		return post.Post{}, newAPIError(resp.StatusCode(), resp.Body)
	}
	if resp.JSON200 == nil {
		return post.Post{}, fmt.Errorf("missing body for 200 response")
	}
	return fromWirePost(*resp.JSON200), nil
}

// Delete removes a post and returns the server's confirmation message.
func (c *Client) Delete(ctx context.Context, id int) (string, error) {
	resp, err := c.api.DeletePostWithResponse(ctx, id)
	if err != nil {
		return "", err
	}
	if resp.StatusCode() != http.StatusOK {
		return "", newAPIError(resp.StatusCode(), resp.Body)
	}
	if resp.JSON200 == nil {
		return "", fmt.Errorf("missing body for 200 response")
	}
	return resp.JSON200.Message, nil
}

// Search returns the posts matching every non-empty filter term.
func (c *Client) Search(ctx context.Context, filter post.Filter) ([]post.Post, error) {
	params := &apiclient.SearchPostsParams{}
	if filter.Title != "" {
		params.Title = &filter.Title
	}
	if filter.Content != "" {
		params.Content = &filter.Content
	}

	resp, err := c.api.SearchPostsWithResponse(ctx, params)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, newAPIError(resp.StatusCode(), resp.Body)
	}
	if resp.JSON200 == nil {
		return nil, fmt.Errorf("missing body for 200 response")
	}
	return fromWirePosts(*resp.JSON200), nil
}

func fromWirePost(w apiclient.Post) post.Post {
	return post.Post{ID: w.Id, Title: w.Title, Content: w.Content}
}

func fromWirePosts(ws []apiclient.Post) []post.Post {
	out := make([]post.Post, 0, len(ws))
	for _, w := range ws {
		out = append(out, fromWirePost(w))
	}
	return out
}

func newAPIError(status int, body []byte) error {
	message := strings.TrimSpace(string(body))

	var payload apiclient.Error
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		message = payload.Error
	}
	return &APIError{StatusCode: status, Message: message}
}
