package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"rrsim/internal/experiment"
	"rrsim/internal/sched"
)

func newApp(t *testing.T) *fiber.App {
	t.Helper()
	app, err := NewServer(sched.DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	return app
}

func do(t *testing.T, app *fiber.App, method, path, body string) (int, []byte) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp.StatusCode, data
}

const textbook = `{"processes":[{"id":1,"arrival_time":0,"burst_time":5},{"id":2,"arrival_time":1,"burst_time":3},{"id":3,"arrival_time":2,"burst_time":1}]`

func TestTraditionalEndpoint(t *testing.T) {
	code, body := do(t, newApp(t), http.MethodPost, "/api/v1/traditional", textbook+`,"quantum":4}`)
	if code != http.StatusOK {
		t.Fatalf("status %d: %s", code, body)
	}
	var resp ScheduleResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Algorithm != "Traditional RR (Q=4)" || resp.TotalTime != 9 || resp.ContextSwitches != 4 {
		t.Errorf("response = %+v", resp)
	}
	want := []int{2, 3, 1}
	for i, d := range resp.Details {
		if d.ProcessId != want[i] {
			t.Errorf("details[%d] = P%d, want P%d", i, d.ProcessId, want[i])
		}
	}
	if resp.Details[2].CompletionTime != 9 || resp.Details[2].WaitingTime != 4 {
		t.Errorf("P1 = %+v", resp.Details[2])
	}
}

func TestEnhancedEndpointDefaults(t *testing.T) {
	code, body := do(t, newApp(t), http.MethodPost, "/api/v1/enhanced", textbook+`}`)
	if code != http.StatusOK {
		t.Fatalf("status %d: %s", code, body)
	}
	var resp ScheduleResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Algorithm != "Enhanced RR" || len(resp.Details) != 3 {
		t.Errorf("response = %+v", resp)
	}
}

func TestCompareEndpoint(t *testing.T) {
	app := newApp(t)

	code, body := do(t, app, http.MethodPost, "/api/v1/compare", "")
	if code != http.StatusOK {
		t.Fatalf("status %d: %s", code, body)
	}
	var sum experiment.Summary
	if err := json.Unmarshal(body, &sum); err != nil {
		t.Fatal(err)
	}
	if len(sum.Comparisons) != 4 || len(sum.Comparisons[0].Runs) != 3 {
		t.Errorf("summary = %+v", sum)
	}

	code, body = do(t, app, http.MethodPost, "/api/v1/compare", textbook+`}`)
	if code != http.StatusOK {
		t.Fatalf("status %d: %s", code, body)
	}
	sum = experiment.Summary{}
	if err := json.Unmarshal(body, &sum); err != nil {
		t.Fatal(err)
	}
	if len(sum.Comparisons) != 1 || sum.Comparisons[0].Workload != "request" {
		t.Errorf("summary = %+v", sum)
	}
}

func TestSweepEndpoint(t *testing.T) {
	code, body := do(t, newApp(t), http.MethodPost, "/api/v1/sweep", textbook+`}`)
	if code != http.StatusOK {
		t.Fatalf("status %d: %s", code, body)
	}
	var resp SweepResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatal(err)
	}
	// bursts 1..5
	if len(resp.Runs) != 5 || resp.Runs[4].Algorithm != "Traditional RR (Q=5)" {
		t.Errorf("sweep = %+v", resp)
	}
}

func TestWorkloadsEndpoint(t *testing.T) {
	code, body := do(t, newApp(t), http.MethodGet, "/api/v1/workloads", "")
	if code != http.StatusOK || !strings.Contains(string(body), `"bursty"`) {
		t.Errorf("status %d: %s", code, body)
	}
}

func TestBadRequests(t *testing.T) {
	app := newApp(t)
	cases := []struct {
		path, body string
	}{
		{"/api/v1/traditional", `{"processes":[]}`},
		{"/api/v1/traditional", textbook + `,"quantum":-1}`},
		{"/api/v1/enhanced", textbook + `,"adjustment_factor":-2}`},
		{"/api/v1/enhanced", `{"processes":[{"id":1,"arrival_time":0,"burst_time":0}]}`},
		{"/api/v1/sweep", `{}`},
		{"/api/v1/enhanced", `{"processes":`},
		{"/api/v1/sweep", `{"processes":[{"id":1,"arrival_time":0,"burst_time":1},{"id":2,"arrival_time":0,"burst_time":200000}]}`},
		{"/api/v1/traditional", `{"processes":[{"id":1,"arrival_time":2000000,"burst_time":1}]}`},
		{"/api/v1/sweep", `{"processes":[{"id":1,"arrival_time":0,"burst_time":0},{"id":2,"arrival_time":0,"burst_time":3}]}`},
	}
	for _, c := range cases {
		code, body := do(t, app, http.MethodPost, c.path, c.body)
		if code != http.StatusBadRequest {
			t.Errorf("%s %s: status %d: %s", c.path, c.body, code, body)
		}
		if !strings.Contains(string(body), `"error"`) {
			t.Errorf("%s: body %s", c.path, body)
		}
	}
}

func TestSweepWidthFromConfig(t *testing.T) {
	cfg := sched.DefaultConfig()
	cfg.MaxSweepWidth = 3
	app, err := NewServer(cfg, nil)
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}

	// bursts 5, 3, 1 need five quanta
	code, body := do(t, app, http.MethodPost, "/api/v1/sweep", textbook+`}`)
	if code != http.StatusBadRequest || !strings.Contains(string(body), "limit is 3") {
		t.Errorf("status %d: %s", code, body)
	}

	narrow := `{"processes":[{"id":1,"arrival_time":0,"burst_time":4},{"id":2,"arrival_time":1,"burst_time":6}]}`
	if code, body := do(t, app, http.MethodPost, "/api/v1/sweep", narrow); code != http.StatusOK {
		t.Errorf("status %d: %s", code, body)
	}
}
