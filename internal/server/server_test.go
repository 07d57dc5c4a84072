package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/example/hausbot/internal/command"
	"github.com/example/hausbot/internal/ranking"
	"github.com/example/hausbot/internal/slack"
)

const testToken = "hunter2"

type staticGeocoder struct {
	address string
	err     error
}

func (g *staticGeocoder) ReverseGeocode(ctx context.Context, lat, lon float64) (string, error) {
	return g.address, g.err
}

type fixture struct {
	server  *Server
	dataDir string
	store   *ranking.Store
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dataDir := t.TempDir()
	store := ranking.NewStore(filepath.Join(dataDir, "schika.json"))

	router := command.NewRouter()
	router.Register(command.NewSchikaHandler(store))
	router.Register(command.NewSayHandler())
	router.Alias("alle", "say")
	router.Alias("ruf", "say")

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := New(":0", testToken, dataDir, router,
		slack.NewClient(time.Second), &staticGeocoder{address: "Teststraße 1"},
		time.Second, logger)
	return &fixture{server: srv, dataDir: dataDir, store: store}
}

func (f *fixture) postForm(t *testing.T, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	f.server.Handler().ServeHTTP(w, req)
	return w
}

func slackForm(text, user string) url.Values {
	return url.Values{
		"token":     {testToken},
		"text":      {text},
		"user_name": {user},
	}
}

func TestSlackBadToken(t *testing.T) {
	f := newFixture(t)
	form := slackForm("schika list", "alice")
	form.Set("token", "wrong")

	w := f.postForm(t, "/slack", form)
	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
	if w.Body.Len() != 0 {
		t.Errorf("forbidden response must have no body, got %q", w.Body.String())
	}
}

func TestSlackCommandRoundTrip(t *testing.T) {
	f := newFixture(t)
	if err := f.store.Save(ranking.Table{
		"anton": {Score: 1000, Active: true},
		"berta": {Score: 992, Active: true},
	}); err != nil {
		t.Fatal(err)
	}

	w := f.postForm(t, "/slack", slackForm("schika list", "alice"))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var msg slack.Message
	if err := json.Unmarshal(w.Body.Bytes(), &msg); err != nil {
		t.Fatalf("response not a reply payload: %v", err)
	}
	if msg.ResponseType != slack.ResponseInChannel {
		t.Errorf("response type = %q, want in_channel", msg.ResponseType)
	}
	if len(msg.Attachments) != 1 || !strings.Contains(msg.Attachments[0].Text, "1000") {
		t.Errorf("attachments = %v, want the rendered table", msg.Attachments)
	}
}

func TestSlackCommandFailureStaysEphemeral(t *testing.T) {
	f := newFixture(t)
	// Corrupt document: the command fails but the server answers with
	// a well-formed ephemeral payload.
	if err := os.WriteFile(filepath.Join(f.dataDir, "schika.json"), []byte("{broken"), 0644); err != nil {
		t.Fatal(err)
	}

	w := f.postForm(t, "/slack", slackForm("schika list", "alice"))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var msg slack.Message
	if err := json.Unmarshal(w.Body.Bytes(), &msg); err != nil {
		t.Fatalf("response not a reply payload: %v", err)
	}
	if msg.ResponseType != slack.ResponseEphemeral {
		t.Errorf("response type = %q, want ephemeral", msg.ResponseType)
	}
}

func TestSlackDeferredReply(t *testing.T) {
	f := newFixture(t)

	received := make(chan slack.Message, 1)
	callback := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var msg slack.Message
		if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
			t.Errorf("callback body: %v", err)
		}
		received <- msg
	}))
	defer callback.Close()

	form := slackForm("say essen ist fertig", "alice")
	form.Set("response_url", callback.URL)

	w := f.postForm(t, "/slack", form)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if w.Body.Len() != 0 {
		t.Errorf("deferred command should close the request empty, got %q", w.Body.String())
	}

	select {
	case msg := <-received:
		if msg.Text != "essen ist fertig" {
			t.Errorf("deferred text = %q", msg.Text)
		}
		if msg.ResponseType != slack.ResponseInChannel {
			t.Errorf("deferred response type = %q, want in_channel", msg.ResponseType)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no deferred reply arrived at the response URL")
	}
}

func TestEloEndpoint(t *testing.T) {
	f := newFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/elo.json?x=1000&y=1000&who=1", nil)
	w := httptest.NewRecorder()
	f.server.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var result map[string]int
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatal(err)
	}
	if result["x"] != 1008 || result["y"] != 992 {
		t.Errorf("result = %v, want x=1008 y=992", result)
	}
}

func TestEloEndpointBadInput(t *testing.T) {
	f := newFixture(t)
	for _, query := range []string{
		"x=1000&y=1000&who=3",
		"x=abc&y=1000&who=1",
		"x=1000&y=1000&who=1&k=nope",
		"y=1000&who=1",
	} {
		req := httptest.NewRequest(http.MethodGet, "/elo.json?"+query, nil)
		w := httptest.NewRecorder()
		f.server.Handler().ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Errorf("query %q: status = %d, want 400", query, w.Code)
		}
	}
}

func TestSnapshotServing(t *testing.T) {
	f := newFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/mood.json", nil)
	w := httptest.NewRecorder()
	f.server.Handler().ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("missing snapshot: status = %d, want 404", w.Code)
	}

	res := f.postForm(t, "/mood", url.Values{"mood": {"gut"}})
	if res.Code != http.StatusNoContent {
		t.Fatalf("POST /mood status = %d, want 204", res.Code)
	}

	w = httptest.NewRecorder()
	f.server.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/mood.json", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("GET /mood.json status = %d, want 200", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("CORS header = %q, want *", got)
	}
	if !strings.Contains(w.Body.String(), "gut") {
		t.Errorf("snapshot body = %q", w.Body.String())
	}
}

func TestPhoneTelemetry(t *testing.T) {
	f := newFixture(t)

	res := f.postForm(t, "/phone", url.Values{
		"battery": {"85"},
		"event":   {"Zahnarzt"},
		"lat":     {"52.5"},
		"lon":     {"13.4"},
	})
	if res.Code != http.StatusNoContent {
		t.Fatalf("POST /phone status = %d, want 204", res.Code)
	}

	battery, err := os.ReadFile(filepath.Join(f.dataDir, "battery.json"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(battery), "85") {
		t.Errorf("battery snapshot = %s", battery)
	}

	calendar, err := os.ReadFile(filepath.Join(f.dataDir, "calendar.json"))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(calendar), "Zahnarzt") {
		t.Errorf("calendar text must be redacted: %s", calendar)
	}
	if !strings.Contains(string(calendar), "undisclosed") {
		t.Errorf("calendar snapshot = %s", calendar)
	}

	location, err := os.ReadFile(filepath.Join(f.dataDir, "location.json"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(location), "Teststraße 1") {
		t.Errorf("location snapshot = %s", location)
	}
}

func TestPhoneGeocoderFailureIsNotFatal(t *testing.T) {
	f := newFixture(t)
	f.server.geocoder = &staticGeocoder{err: context.DeadlineExceeded}

	res := f.postForm(t, "/phone", url.Values{
		"battery": {"50"},
		"lat":     {"52.5"},
		"lon":     {"13.4"},
	})
	if res.Code != http.StatusNoContent {
		t.Fatalf("POST /phone status = %d, want 204 despite geocoder failure", res.Code)
	}
	if _, err := os.Stat(filepath.Join(f.dataDir, "location.json")); !os.IsNotExist(err) {
		t.Error("failed geocoding must not write a location snapshot")
	}
}

func TestMensaRating(t *testing.T) {
	f := newFixture(t)

	res := f.postForm(t, "/mensa.json", url.Values{
		"meal":   {"Pasta Buffet"},
		"rating": {"4"},
	})
	if res.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", res.Code, res.Body.String())
	}

	res = f.postForm(t, "/mensa.json", url.Values{
		"meal":   {"pasta buffet deluxe"},
		"rating": {"2"},
	})
	if res.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", res.Code)
	}

	var agg struct {
		Stars  int `json:"stars"`
		Number int `json:"number"`
	}
	if err := json.Unmarshal(res.Body.Bytes(), &agg); err != nil {
		t.Fatal(err)
	}
	// Both spellings collapse onto the same pasta buffet record.
	if agg.Stars != 6 || agg.Number != 2 {
		t.Errorf("aggregate = %+v, want stars=6 number=2", agg)
	}
}

func TestMensaRejectsBadRating(t *testing.T) {
	f := newFixture(t)
	for _, rating := range []string{"6", "-1", "viele", ""} {
		res := f.postForm(t, "/mensa.json", url.Values{
			"meal":   {"Eintopf"},
			"rating": {rating},
		})
		if res.Code != http.StatusBadRequest {
			t.Errorf("rating %q: status = %d, want 400", rating, res.Code)
		}
	}
}
