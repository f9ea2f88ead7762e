package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/McKayRansom/auto-factorio/pkg/cache"
	"github.com/McKayRansom/auto-factorio/pkg/pipeline"
	"github.com/McKayRansom/auto-factorio/pkg/problem"
	"github.com/McKayRansom/auto-factorio/pkg/store"
)

const startingTunnels = `
name = "starting tunnels"
width = 5
height = 5
attempts = 1

[[nets]]
start = [1, 0]
end = [1, 4]

[[nets]]
start = [0, 2]
end = [4, 2]
`

const cannotTunnel = `{"name": "cannot tunnel", "width": 5, "height": 5, "attempts": 1,
 "nets": [{"start": [1, 0], "end": [1, 4]}, {"start": [3, 0], "end": [3, 4]}, {"start": [2, 0], "end": [4, 2]}]}`

func newTestServer(t *testing.T, cfg Config) *httptest.Server {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{})
	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
	srv := httptest.NewServer(New(runner, store.NewMemory(), logger, cfg).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, method, url, body string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp, data
}

func decodeResult(t *testing.T, data []byte) problem.Result {
	t.Helper()
	var res problem.Result
	if err := json.Unmarshal(data, &res); err != nil {
		t.Fatalf("decode %s: %v", data, err)
	}
	return res
}

func errorCode(t *testing.T, data []byte) string {
	t.Helper()
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		t.Fatalf("decode error body %s: %v", data, err)
	}
	return body.Error.Code
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t, Config{})
	resp, body := do(t, http.MethodGet, srv.URL+"/healthz", "")
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(body), "ok") {
		t.Errorf("healthz = %d %s", resp.StatusCode, body)
	}
}

func TestCreateAndGet(t *testing.T) {
	srv := newTestServer(t, Config{})

	resp, body := do(t, http.MethodPost, srv.URL+"/v1/routes", startingTunnels)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("POST = %d %s", resp.StatusCode, body)
	}
	created := decodeResult(t, body)
	if !created.Solved || created.Cost != 11 {
		t.Errorf("created = solved %v cost %d, want solved cost 11", created.Solved, created.Cost)
	}
	if loc := resp.Header.Get("Location"); loc != "/v1/routes/"+created.ID {
		t.Errorf("Location = %q", loc)
	}

	resp, body = do(t, http.MethodGet, srv.URL+"/v1/routes/"+created.ID, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET = %d %s", resp.StatusCode, body)
	}
	if got := decodeResult(t, body); got.ID != created.ID || len(got.Belts) != len(created.Belts) {
		t.Errorf("GET returned a different result")
	}

	resp, body = do(t, http.MethodGet, srv.URL+"/v1/routes/"+created.ID+"?format=text", "")
	if resp.StatusCode != http.StatusOK || !strings.HasPrefix(resp.Header.Get("Content-Type"), "text/plain") {
		t.Fatalf("GET text = %d %s", resp.StatusCode, resp.Header.Get("Content-Type"))
	}
	if !strings.Contains(string(body), "|1]0v1]1>1>|") {
		t.Errorf("text map:\n%s", body)
	}

	resp, body = do(t, http.MethodGet, srv.URL+"/v1/routes", "")
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(body), created.ID) {
		t.Errorf("list = %d %s", resp.StatusCode, body)
	}

	resp, _ = do(t, http.MethodDelete, srv.URL+"/v1/routes/"+created.ID, "")
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("DELETE = %d", resp.StatusCode)
	}
	resp, body = do(t, http.MethodGet, srv.URL+"/v1/routes/"+created.ID, "")
	if resp.StatusCode != http.StatusNotFound || errorCode(t, body) != "NOT_FOUND" {
		t.Errorf("GET after delete = %d %s", resp.StatusCode, body)
	}
}

func TestCreate_Unroutable(t *testing.T) {
	srv := newTestServer(t, Config{})

	resp, body := do(t, http.MethodPost, srv.URL+"/v1/routes", cannotTunnel)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("POST = %d %s", resp.StatusCode, body)
	}
	res := decodeResult(t, body)
	if res.Solved || res.Cost != -1 || res.Code != "UNROUTABLE" {
		t.Errorf("result = solved %v cost %d code %q", res.Solved, res.Cost, res.Code)
	}

	resp, body = do(t, http.MethodPost, srv.URL+"/v1/routes?attempts=3", cannotTunnel)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("POST = %d %s", resp.StatusCode, body)
	}
	if res := decodeResult(t, body); !res.Solved || res.Cost != 20 {
		t.Errorf("result = solved %v cost %d, want solved cost 20", res.Solved, res.Cost)
	}
}

func TestCreate_Timeout(t *testing.T) {
	srv := newTestServer(t, Config{Timeout: time.Nanosecond})

	resp, body := do(t, http.MethodPost, srv.URL+"/v1/routes", startingTunnels)
	if resp.StatusCode != http.StatusGatewayTimeout {
		t.Errorf("status = %d, want %d (%s)", resp.StatusCode, http.StatusGatewayTimeout, body)
	}
	if got := errorCode(t, body); got != "TIMEOUT" {
		t.Errorf("code = %q, want TIMEOUT", got)
	}
}

func TestErrors(t *testing.T) {
	srv := newTestServer(t, Config{MaxCells: 100})

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
		code   string
	}{
		{"empty body", http.MethodPost, "/v1/routes", "", http.StatusBadRequest, "INVALID_INPUT"},
		{"bad problem", http.MethodPost, "/v1/routes", `width = 0`, http.StatusBadRequest, "INVALID_PROBLEM"},
		{"too large", http.MethodPost, "/v1/routes", `{"width": 20, "height": 20, "nets": [{"start": [0, 0], "end": [1, 1]}]}`, http.StatusBadRequest, "INVALID_PROBLEM"},
		{"bad attempts", http.MethodPost, "/v1/routes?attempts=x", startingTunnels, http.StatusBadRequest, "INVALID_INPUT"},
		{"bad ordering", http.MethodPost, "/v1/routes?ordering=random", startingTunnels, http.StatusBadRequest, "INVALID_INPUT"},
		{"bad id", http.MethodGet, "/v1/routes/not-a-uuid", "", http.StatusBadRequest, "INVALID_INPUT"},
		{"unknown id", http.MethodGet, "/v1/routes/7d444840-9dc0-11d1-b245-5ffdce74fad2", "", http.StatusNotFound, "NOT_FOUND"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := do(t, tt.method, srv.URL+tt.path, tt.body)
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d (%s)", resp.StatusCode, tt.status, body)
			}
			if got := errorCode(t, body); got != tt.code {
				t.Errorf("code = %q, want %q", got, tt.code)
			}
		})
	}
}

func TestGet_BadFormat(t *testing.T) {
	srv := newTestServer(t, Config{})
	_, body := do(t, http.MethodPost, srv.URL+"/v1/routes", startingTunnels)
	created := decodeResult(t, body)

	resp, body := do(t, http.MethodGet, srv.URL+"/v1/routes/"+created.ID+"?format=png", "")
	if resp.StatusCode != http.StatusBadRequest || errorCode(t, body) != "INVALID_FORMAT" {
		t.Errorf("GET png = %d %s", resp.StatusCode, body)
	}
}
