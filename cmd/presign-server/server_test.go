package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/tendant/simple-presign/pkg/simplepresign"
	"github.com/tendant/simple-presign/pkg/simplepresign/api"
	"github.com/tendant/simple-presign/pkg/simplepresign/config"
	"github.com/tendant/simple-presign/pkg/simplepresign/urllog/memory"
)

func newTestServer(t *testing.T, jwtSecret string) *HTTPServer {
	t.Helper()

	signerConfig, err := config.Load(
		config.WithCredentials("AKIDEXAMPLE", "secret"),
		config.WithEndpointHost("s3.amazonaws.com"),
	)
	if err != nil {
		t.Fatalf("config load error: %v", err)
	}

	signer, err := signerConfig.BuildSigner(
		simplepresign.WithClock(func() time.Time {
			return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		}),
	)
	if err != nil {
		t.Fatalf("signer build error: %v", err)
	}

	handler := api.NewSignHandler(signer, memory.New(), signerConfig.ValidityMinutes)
	cfg := &serverConfig{Environment: "testing", JWTSecret: jwtSecret, Signer: signerConfig}
	return NewHTTPServer(handler, cfg)
}

func doJSON(t *testing.T, ts *HTTPServer, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		buf = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	ts.Routes().ServeHTTP(rr, req)
	return rr
}

func TestHealthEndpoint(t *testing.T) {
	ts := newTestServer(t, "")

	rr := doJSON(t, ts, http.MethodGet, "/health", nil, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "healthy") {
		t.Errorf("unexpected health body: %s", rr.Body.String())
	}
}

func TestSignAndFetchEntry(t *testing.T) {
	ts := newTestServer(t, "")

	rr := doJSON(t, ts, http.MethodPost, "/api/v1/sign", map[string]any{
		"bucket":           "my-bucket",
		"object_key":       "path/to/file.zip",
		"validity_minutes": 60,
	}, "")
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp struct {
		URL     string `json:"url"`
		EntryID string `json:"entry_id"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("json decode: %v", err)
	}
	if !strings.Contains(resp.URL, "X-Amz-Signature=") {
		t.Errorf("response URL is not signed: %s", resp.URL)
	}
	if resp.EntryID == "" {
		t.Fatal("expected an entry_id")
	}

	rr = doJSON(t, ts, http.MethodGet, "/api/v1/urls/"+resp.EntryID, nil, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), "my-bucket") {
		t.Errorf("entry body missing bucket: %s", rr.Body.String())
	}
	if strings.Contains(rr.Body.String(), "X-Amz-Signature") {
		t.Error("issuance log must not contain the signed URL")
	}
}

func TestJWTProtectedRoutes(t *testing.T) {
	const secret = "test-signing-secret"
	ts := newTestServer(t, secret)

	signReq := map[string]any{
		"bucket":           "my-bucket",
		"object_key":       "file.txt",
		"validity_minutes": 5,
	}

	rr := doJSON(t, ts, http.MethodPost, "/api/v1/sign", signReq, "")
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rr.Code)
	}

	ja := api.NewJWTAuth([]byte(secret))
	_, token, err := ja.Encode(map[string]interface{}{"sub": "tester"})
	if err != nil {
		t.Fatalf("token encode: %v", err)
	}

	rr = doJSON(t, ts, http.MethodPost, "/api/v1/sign", signReq, token)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201 with token, got %d: %s", rr.Code, rr.Body.String())
	}

	// Health stays open
	rr = doJSON(t, ts, http.MethodGet, "/health", nil, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 for health, got %d", rr.Code)
	}
}
