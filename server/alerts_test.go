package server

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stockfolio/stockfolio"
)

func createAlert(t *testing.T, ts *testServer, body string) stockfolio.Alert {
	t.Helper()
	w := ts.do(t, http.MethodPost, "/api/alerts", ts.token, body)
	if w.Code != http.StatusCreated {
		t.Fatalf("create alert status = %d %s", w.Code, w.Body)
	}
	var a stockfolio.Alert
	decode(t, w, &a)
	return a
}

func TestCreateAlert(t *testing.T) {
	ts := newTestServer(t, nil)
	a := createAlert(t, ts, `{"symbol":"aapl","target_price":200,"direction":"above"}`)
	if a.Symbol != "AAPL" || a.TargetPrice != 200 || a.Direction != "above" || a.Triggered {
		t.Errorf("alert = %+v", a)
	}
}

func TestCreateAlertValidation(t *testing.T) {
	ts := newTestServer(t, nil)
	cases := []string{
		`{"symbol":"AAPL","target_price":200,"direction":"sideways"}`,
		`{"symbol":"AAPL","target_price":0,"direction":"above"}`,
		`{"target_price":200,"direction":"above"}`,
	}
	for _, body := range cases {
		w := ts.do(t, http.MethodPost, "/api/alerts", ts.token, body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("create %s: status = %d", body, w.Code)
		}
	}
}

func TestDeleteAlert(t *testing.T) {
	ts := newTestServer(t, nil)
	a := createAlert(t, ts, `{"symbol":"AAPL","target_price":200,"direction":"above"}`)

	w := ts.do(t, http.MethodDelete, "/api/alerts/"+a.ID, ts.token, "")
	if w.Code != http.StatusOK {
		t.Fatalf("delete status = %d %s", w.Code, w.Body)
	}
	w = ts.do(t, http.MethodDelete, "/api/alerts/"+a.ID, ts.token, "")
	if w.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d", w.Code)
	}
}

func TestCheckAlertsTriggersOnce(t *testing.T) {
	provider := &stubProvider{name: "stub", quotes: map[string]stockfolio.Quote{
		"AAPL": {Symbol: "AAPL", Price: 250},
	}}
	ts := newTestServer(t, provider)
	a := createAlert(t, ts, `{"symbol":"AAPL","target_price":200,"direction":"above"}`)
	createAlert(t, ts, `{"symbol":"AAPL","target_price":300,"direction":"above"}`)

	w := ts.do(t, http.MethodPost, "/api/alerts/check", ts.token, "")
	if w.Code != http.StatusOK {
		t.Fatalf("check status = %d %s", w.Code, w.Body)
	}
	var reply struct {
		Triggered []stockfolio.Alert `json:"triggered"`
	}
	decode(t, w, &reply)
	if len(reply.Triggered) != 1 {
		t.Fatalf("triggered %d alerts, want 1", len(reply.Triggered))
	}
	got := reply.Triggered[0]
	if got.ID != a.ID || !got.Triggered || got.TriggeredAt == "" {
		t.Errorf("triggered alert = %+v", got)
	}

	// a second check must not re-trigger it
	w = ts.do(t, http.MethodPost, "/api/alerts/check", ts.token, "")
	decode(t, w, &reply)
	if len(reply.Triggered) != 0 {
		t.Errorf("second check triggered %d alerts, want 0", len(reply.Triggered))
	}
}

func TestCheckAlertsBelowDirection(t *testing.T) {
	provider := &stubProvider{name: "stub", quotes: map[string]stockfolio.Quote{
		"AAPL": {Symbol: "AAPL", Price: 90},
	}}
	ts := newTestServer(t, provider)
	createAlert(t, ts, `{"symbol":"AAPL","target_price":100,"direction":"below"}`)

	w := ts.do(t, http.MethodPost, "/api/alerts/check", ts.token, "")
	var reply struct {
		Triggered []stockfolio.Alert `json:"triggered"`
	}
	decode(t, w, &reply)
	if len(reply.Triggered) != 1 {
		t.Errorf("triggered %d alerts, want 1", len(reply.Triggered))
	}
}

func TestCheckAlertsIgnoresMockQuotes(t *testing.T) {
	// no provider at all: every quote is a mock, and a mock price must
	// never flip an alert
	ts := newTestServer(t, nil)
	createAlert(t, ts, `{"symbol":"AAPL","target_price":1,"direction":"above"}`)

	w := ts.do(t, http.MethodPost, "/api/alerts/check", ts.token, "")
	var reply struct {
		Triggered []stockfolio.Alert `json:"triggered"`
	}
	decode(t, w, &reply)
	if len(reply.Triggered) != 0 {
		t.Errorf("mock quotes triggered %d alerts, want 0", len(reply.Triggered))
	}
}

func TestAlertSweep(t *testing.T) {
	provider := &stubProvider{name: "stub", quotes: map[string]stockfolio.Quote{
		"AAPL": {Symbol: "AAPL", Price: 250},
	}}
	ts := newTestServer(t, provider)
	a := createAlert(t, ts, `{"symbol":"AAPL","target_price":200,"direction":"above"}`)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ts.StartAlertSweep(ctx, 5*time.Millisecond)

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		ts.store.mu.Lock()
		triggered := ts.store.alerts[a.ID].Triggered
		ts.store.mu.Unlock()
		if triggered {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("the sweep never triggered the alert")
}

func TestListAlerts(t *testing.T) {
	ts := newTestServer(t, nil)
	createAlert(t, ts, `{"symbol":"AAPL","target_price":200,"direction":"above"}`)
	createAlert(t, ts, `{"symbol":"TSLA","target_price":100,"direction":"below"}`)

	w := ts.do(t, http.MethodGet, "/api/alerts", ts.token, "")
	var alerts []stockfolio.Alert
	decode(t, w, &alerts)
	if len(alerts) != 2 {
		t.Errorf("got %d alerts, want 2", len(alerts))
	}
}
