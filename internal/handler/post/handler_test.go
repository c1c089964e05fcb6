package post

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/masterblog/backend/internal/model/post"
	postservice "github.com/zhouzirui/masterblog/backend/internal/service/post"
)

func setupRouter(seed []post.Post) (*chi.Mux, *postservice.Service) {
	svc := postservice.NewService(seed)
	handler := New(svc)

	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r, svc
}

func doRequest(r http.Handler, method, target string, body []byte) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func decodePosts(t *testing.T, resp *httptest.ResponseRecorder) []post.Post {
	t.Helper()
	var posts []post.Post
	if err := json.NewDecoder(resp.Body).Decode(&posts); err != nil {
		t.Fatalf("decode posts: %v", err)
	}
	return posts
}

func decodeMap(t *testing.T, resp *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return body
}

func TestListReturnsSeedInOrder(t *testing.T) {
	r, _ := setupRouter(post.Seed())

	resp := doRequest(r, http.MethodGet, "/posts", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	posts := decodePosts(t, resp)
	if len(posts) != 2 || posts[0].ID != 1 || posts[1].ID != 2 {
		t.Fatalf("unexpected posts: %+v", posts)
	}
}

func TestListEmptyStoreEncodesEmptyArray(t *testing.T) {
	r, _ := setupRouter(nil)

	resp := doRequest(r, http.MethodGet, "/posts", nil)
	if got := bytes.TrimSpace(resp.Body.Bytes()); string(got) != "[]" {
		t.Fatalf("expected [], got %s", got)
	}
}

func TestListSortedDescending(t *testing.T) {
	r, _ := setupRouter(post.Seed())

	resp := doRequest(r, http.MethodGet, "/posts?sort=title&direction=desc", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	posts := decodePosts(t, resp)
	if posts[0].Title != "Second Post" || posts[1].Title != "First Post" {
		t.Fatalf("unexpected order: %+v", posts)
	}
}

func TestListInvalidSortField(t *testing.T) {
	r, _ := setupRouter(post.Seed())

	resp := doRequest(r, http.MethodGet, "/posts?sort=bogus&direction=asc", nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	if msg := decodeMap(t, resp)["error"]; msg != msgInvalidSortField {
		t.Fatalf("unexpected error message %q", msg)
	}
}

func TestListInvalidDirection(t *testing.T) {
	r, _ := setupRouter(post.Seed())

	resp := doRequest(r, http.MethodGet, "/posts?sort=content&direction=up", nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	if msg := decodeMap(t, resp)["error"]; msg != msgInvalidSortDirection {
		t.Fatalf("unexpected error message %q", msg)
	}
}

func TestListInvalidSortWithoutDirectionIsIgnored(t *testing.T) {
	r, _ := setupRouter(post.Seed())

	resp := doRequest(r, http.MethodGet, "/posts?sort=bogus", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
}

func TestCreatePost(t *testing.T) {
	r, svc := setupRouter(post.Seed())

	resp := doRequest(r, http.MethodPost, "/posts", []byte(`{"title":"Third","content":"Hello"}`))
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.Code)
	}

	var created post.Post
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.ID != 3 || created.Title != "Third" || created.Content != "Hello" {
		t.Fatalf("unexpected post: %+v", created)
	}
	if _, ok := svc.FindByID(context.Background(), 3); !ok {
		t.Fatal("expected post 3 to be stored")
	}
}

func TestCreateAllowsEmptyStrings(t *testing.T) {
	r, _ := setupRouter(nil)

	resp := doRequest(r, http.MethodPost, "/posts", []byte(`{"title":"","content":""}`))
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.Code)
	}
}

func TestCreateRejectsMissingFields(t *testing.T) {
	bodies := map[string][]byte{
		"missing content": []byte(`{"title":"only"}`),
		"missing title":   []byte(`{"content":"only"}`),
		"null title":      []byte(`{"title":null,"content":"x"}`),
		"empty object":    []byte(`{}`),
		"not json":        []byte(`title=x`),
		"array":           []byte(`[]`),
		"empty body":      {},
		"trailing junk":   []byte(`{"title":"a","content":"b"} trailing junk`),
		"two objects":     []byte(`{"title":"a","content":"b"}{"title":"c","content":"d"}`),
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			r, _ := setupRouter(post.Seed())
			resp := doRequest(r, http.MethodPost, "/posts", body)
			if resp.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", resp.Code)
			}
			if msg := decodeMap(t, resp)["error"]; msg != msgTitleContentRequired {
				t.Fatalf("unexpected error message %q", msg)
			}
		})
	}
}

func TestUpdatePartial(t *testing.T) {
	r, _ := setupRouter(post.Seed())

	resp := doRequest(r, http.MethodPut, "/posts/1", []byte(`{"title":"X"}`))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var updated post.Post
	if err := json.NewDecoder(resp.Body).Decode(&updated); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if updated.Title != "X" || updated.Content != "This is the first post." {
		t.Fatalf("unexpected post: %+v", updated)
	}
}

func TestUpdateUnknownID(t *testing.T) {
	r, _ := setupRouter(post.Seed())

	resp := doRequest(r, http.MethodPut, "/posts/999", []byte(`{"title":"X"}`))
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
	if msg := decodeMap(t, resp)["error"]; msg != msgNotFound {
		t.Fatalf("unexpected error message %q", msg)
	}
}

func TestUpdateNonNumericID(t *testing.T) {
	r, _ := setupRouter(post.Seed())

	resp := doRequest(r, http.MethodPut, "/posts/abc", []byte(`{"title":"X"}`))
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestUpdateMalformedBody(t *testing.T) {
	r, svc := setupRouter(post.Seed())

	resp := doRequest(r, http.MethodPut, "/posts/1", []byte(`{"title":`))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}

	got, _ := svc.FindByID(context.Background(), 1)
	if got != post.Seed()[0] {
		t.Fatalf("post changed after rejected update: %+v", got)
	}
}

func TestUpdateRejectsTrailingData(t *testing.T) {
	r, svc := setupRouter(post.Seed())

	resp := doRequest(r, http.MethodPut, "/posts/1", []byte(`{"title":"X"} trailing junk`))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	if msg := decodeMap(t, resp)["error"]; msg != msgInvalidBody {
		t.Fatalf("unexpected error message %q", msg)
	}

	got, _ := svc.FindByID(context.Background(), 1)
	if got != post.Seed()[0] {
		t.Fatalf("post changed after rejected update: %+v", got)
	}
}

func TestUpdateNullFieldsLeavePostUnchanged(t *testing.T) {
	r, svc := setupRouter(post.Seed())

	resp := doRequest(r, http.MethodPut, "/posts/1", []byte(`{"title":null,"content":null}`))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var updated post.Post
	if err := json.NewDecoder(resp.Body).Decode(&updated); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if updated != post.Seed()[0] {
		t.Fatalf("unexpected post in response: %+v", updated)
	}

	got, _ := svc.FindByID(context.Background(), 1)
	if got != post.Seed()[0] {
		t.Fatalf("post changed after null update: %+v", got)
	}
}

func TestUpdateNullTitleKeepsTitle(t *testing.T) {
	r, _ := setupRouter(post.Seed())

	resp := doRequest(r, http.MethodPut, "/posts/2", []byte(`{"title":null,"content":"New body"}`))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var updated post.Post
	if err := json.NewDecoder(resp.Body).Decode(&updated); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if updated.Title != "Second Post" || updated.Content != "New body" {
		t.Fatalf("unexpected post: %+v", updated)
	}
}

func TestDeleteThenDeleteAgain(t *testing.T) {
	r, _ := setupRouter(post.Seed())

	resp := doRequest(r, http.MethodDelete, "/posts/1", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if msg := decodeMap(t, resp)["message"]; msg != "Post with id 1 has been deleted successfully." {
		t.Fatalf("unexpected message %q", msg)
	}

	resp = doRequest(r, http.MethodDelete, "/posts/1", nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on second delete, got %d", resp.Code)
	}
}

func TestSearchCaseInsensitive(t *testing.T) {
	r, _ := setupRouter(post.Seed())

	resp := doRequest(r, http.MethodGet, "/posts/search?title=first", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	posts := decodePosts(t, resp)
	if len(posts) != 1 || posts[0].Title != "First Post" {
		t.Fatalf("unexpected matches: %+v", posts)
	}
}

func TestSearchEmptyFiltersMatchAll(t *testing.T) {
	r, _ := setupRouter(post.Seed())

	resp := doRequest(r, http.MethodGet, "/posts/search?title=&content=", nil)
	if posts := decodePosts(t, resp); len(posts) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(posts))
	}
}

func TestSearchNoMatchEncodesEmptyArray(t *testing.T) {
	r, _ := setupRouter(post.Seed())

	resp := doRequest(r, http.MethodGet, "/posts/search?title=first&content=second", nil)
	if got := bytes.TrimSpace(resp.Body.Bytes()); string(got) != "[]" {
		t.Fatalf("expected [], got %s", got)
	}
}

func TestCreateThenListRoundTrip(t *testing.T) {
	r, _ := setupRouter(post.Seed())

	resp := doRequest(r, http.MethodPost, "/posts", []byte(`{"title":"Round","content":"Trip"}`))
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.Code)
	}

	posts := decodePosts(t, doRequest(r, http.MethodGet, "/posts", nil))
	count := 0
	for _, p := range posts {
		if p.Title == "Round" {
			count++
			if p.ID != 3 {
				t.Fatalf("expected id 3, got %d", p.ID)
			}
		}
	}
	if count != 1 {
		t.Fatalf("expected created post once, found %d", count)
	}
}
