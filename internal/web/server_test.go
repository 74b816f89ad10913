package web

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sweeney/lamp-controller/internal/status"
)

func newTestServer(t *testing.T) (*httptest.Server, *status.Tracker) {
	t.Helper()
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	cfg := status.Config{
		Broker:      "tcp://192.168.1.200:1883",
		HTTPPort:    ":8080",
		HeartbeatMs: 900000,
		Pin:         -1,
	}
	tr := status.NewTracker(start, cfg)
	srv := New(":0", tr)
	ts := httptest.NewServer(srv.httpServer.Handler)
	t.Cleanup(ts.Close)
	return ts, tr
}

func TestJSONEndpoint(t *testing.T) {
	ts, tr := newTestServer(t)
	tr.Update("Lamp", 12, 20, status.EventCounts{Increase: 5, Outage: 1})
	tr.SetMQTTConnected(true)

	resp, err := http.Get(ts.URL + "/index.json")
	if err != nil {
		t.Fatalf("GET /index.json: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		t.Errorf("status: got %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type: got %q, want application/json", ct)
	}

	var sj status.StatusJSON
	if err := json.NewDecoder(resp.Body).Decode(&sj); err != nil {
		t.Fatalf("decode JSON: %v", err)
	}

	if sj.Status.Device != "Lamp" {
		t.Errorf("device: got %q, want Lamp", sj.Status.Device)
	}
	if sj.Status.Level != 12 {
		t.Errorf("level: got %d, want 12", sj.Status.Level)
	}
	if sj.Status.MaxLevel != 20 {
		t.Errorf("max_level: got %d, want 20", sj.Status.MaxLevel)
	}
	if !sj.Status.MQTT.Connected {
		t.Error("expected MQTT.Connected=true")
	}
	if sj.Status.Counts.Increase != 5 {
		t.Errorf("Counts.Increase: got %d, want 5", sj.Status.Counts.Increase)
	}
	if sj.Status.Counts.Outage != 1 {
		t.Errorf("Counts.Outage: got %d, want 1", sj.Status.Counts.Outage)
	}
}

func TestIndexPage(t *testing.T) {
	ts, tr := newTestServer(t)
	tr.Update("Lamp", 20, 20, status.EventCounts{})

	resp, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatalf("GET /: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		t.Errorf("status: got %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type: got %q, want text/html", ct)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	html := string(body)

	if !strings.Contains(html, "Lamp Controller") {
		t.Error("page should carry the device name")
	}
	if !strings.Contains(html, "20 / 20") {
		t.Error("page should show level / max")
	}
	if strings.Contains(html, "OVERDRIVEN") {
		t.Error("full lamp is at capacity, not overdriven")
	}
}

func TestIndexPageOverdriven(t *testing.T) {
	ts, tr := newTestServer(t)
	tr.Update("Lamp", 200, 20, status.EventCounts{Surge: 1})

	resp, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatalf("GET /: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if !strings.Contains(string(body), "OVERDRIVEN") {
		t.Error("surged lamp should be flagged overdriven")
	}
}

func TestNotFound(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/nope")
	if err != nil {
		t.Fatalf("GET /nope: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 404 {
		t.Errorf("status: got %d, want 404", resp.StatusCode)
	}
}
