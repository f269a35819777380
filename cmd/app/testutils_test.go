package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/sushihentaime/blogapi/internal/blogservice"
	"github.com/sushihentaime/blogapi/internal/common"
	"github.com/sushihentaime/blogapi/internal/userservice"
)

const (
	testSecret = "test-secret"
	testIssuer = "blogapi-test"
)

type testServer struct {
	*httptest.Server
}

func newTestServer(t *testing.T, h http.Handler) *testServer {
	ts := httptest.NewServer(h)

	t.Cleanup(ts.Close)

	return &testServer{ts}
}

func testConfig() *Config {
	return &Config{
		Port:           "4000",
		Environment:    "testing",
		Version:        "1.0.0",
		TrustedOrigins: "http://localhost:3000",
		Store:          storeMemory,
		JWT: JWTConfig{
			Secret:    testSecret,
			ExpiresIn: time.Hour,
			Issuer:    testIssuer,
		},
	}
}

// newTestApplication wires the application against a fresh in-memory store.
func newTestApplication(t *testing.T) *application {
	t.Helper()

	c := common.NewMemoryStore()
	t.Cleanup(c.Flush)

	cfg := testConfig()
	tokens := userservice.NewTokenService(userservice.TokenConfig{
		Secret: []byte(cfg.JWT.Secret),
		TTL:    cfg.JWT.ExpiresIn,
		Issuer: cfg.JWT.Issuer,
	})

	return &application{
		config:      cfg,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		userService: userservice.NewService(userservice.NewMemoryModel(c), tokens),
		blogService: blogservice.NewBlogService(blogservice.NewMemoryModel(c)),
	}
}

func readResponse(t *testing.T, res *http.Response) (int, http.Header, envelope) {
	defer res.Body.Close()

	responseBody, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatal(err)
	}

	var envelope envelope
	err = json.Unmarshal(responseBody, &envelope)
	if err != nil {
		t.Fatalf("could not decode response %q: %v", responseBody, err)
	}

	return res.StatusCode, res.Header, envelope
}

// do sends a request with an optional JSON payload and bearer token. A string payload is sent
// as is so tests can post malformed bodies.
func (ts *testServer) do(t *testing.T, method, path, token string, payload any) (int, http.Header, envelope) {
	t.Helper()

	var body io.Reader
	switch p := payload.(type) {
	case nil:
	case string:
		body = bytes.NewBufferString(p)
	default:
		jsonPayload, err := json.Marshal(p)
		if err != nil {
			t.Fatal(err)
		}
		body = bytes.NewReader(jsonPayload)
	}

	req, err := http.NewRequest(method, ts.URL+path, body)
	if err != nil {
		t.Fatal(err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	}

	res, err := ts.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}

	return readResponse(t, res)
}

func (ts *testServer) post(t *testing.T, path, token string, payload any) (int, http.Header, envelope) {
	return ts.do(t, http.MethodPost, path, token, payload)
}

func (ts *testServer) get(t *testing.T, path, token string) (int, http.Header, envelope) {
	return ts.do(t, http.MethodGet, path, token, nil)
}

func (ts *testServer) put(t *testing.T, path, token string, payload any) (int, http.Header, envelope) {
	return ts.do(t, http.MethodPut, path, token, payload)
}

func (ts *testServer) patch(t *testing.T, path, token string, payload any) (int, http.Header, envelope) {
	return ts.do(t, http.MethodPatch, path, token, payload)
}

func (ts *testServer) delete(t *testing.T, path, token string) (int, http.Header, envelope) {
	return ts.do(t, http.MethodDelete, path, token, nil)
}

// signup registers a user and returns its token and id.
func (ts *testServer) signup(t *testing.T, first, last, email string) (string, string) {
	t.Helper()

	status, _, body := ts.post(t, "/users/signup", "", map[string]any{
		"first_name": first,
		"last_name":  last,
		"email":      email,
		"password":   "TestPassword123!",
	})
	require.Equal(t, http.StatusCreated, status, body)

	user := body["user"].(map[string]any)
	return body["token"].(string), user["id"].(string)
}

// createBlog posts a blog and returns its id.
func (ts *testServer) createBlog(t *testing.T, token string, payload map[string]any) string {
	t.Helper()

	status, _, body := ts.post(t, "/blogs", token, payload)
	require.Equal(t, http.StatusCreated, status, body)

	return body["blog"].(map[string]any)["id"].(string)
}

func (ts *testServer) publishBlog(t *testing.T, token, id string) {
	t.Helper()

	status, _, body := ts.patch(t, "/blogs/"+id+"/state", token, map[string]any{"state": "published"})
	require.Equal(t, http.StatusOK, status, body)
}

func blogTitles(body envelope) []string {
	titles := []string{}
	for _, b := range body["blogs"].([]any) {
		titles = append(titles, b.(map[string]any)["title"].(string))
	}
	return titles
}
