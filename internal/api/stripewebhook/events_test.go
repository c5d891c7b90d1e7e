package stripewebhooks

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"sellify-app/database"
	"sellify-app/internal/domain/webhooks"

	"github.com/gin-gonic/gin"
)

func seedEvents(t *testing.T) {
	t.Helper()
	rows := []webhooks.WebhookEvent{
		{StripeEventID: "evt_a", EventType: "checkout.session.completed", Status: webhooks.EventCompleted, Attempts: 1},
		{StripeEventID: "evt_b", EventType: "payment_intent.succeeded", Status: webhooks.EventCompleted, Attempts: 1},
		{StripeEventID: "evt_c", EventType: "payment_intent.payment_failed", Status: webhooks.EventRetrying, Attempts: 2},
	}
	for i := range rows {
		if err := database.DB.Create(&rows[i]).Error; err != nil {
			t.Fatal(err)
		}
	}
}

func adminEventsRouter(t *testing.T) *gin.Engine {
	t.Helper()
	setupWebhookTest(t) // reuse db wiring
	r := gin.New()
	r.GET("/api/webhooks/events", ListWebhookEvents)
	r.GET("/api/webhooks/events/:eventId", GetWebhookEvent)
	r.GET("/api/webhooks/stats", WebhookEventStats)
	return r
}

func TestListWebhookEventsFilters(t *testing.T) {
	r := adminEventsRouter(t)
	seedEvents(t)

	req := httptest.NewRequest(http.MethodGet, "/api/webhooks/events?status=retrying", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("got %d", w.Code)
	}

	var events []webhooks.WebhookEvent
	if err := json.Unmarshal(w.Body.Bytes(), &events); err != nil {
		t.Fatal(err)
	}
	if len(events) != 1 || events[0].StripeEventID != "evt_c" {
		t.Fatalf("unexpected filter result: %+v", events)
	}
}

func TestGetWebhookEventByStripeID(t *testing.T) {
	r := adminEventsRouter(t)
	seedEvents(t)

	req := httptest.NewRequest(http.MethodGet, "/api/webhooks/events/evt_b", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("got %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/webhooks/events/evt_missing", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("got %d, want 404", w.Code)
	}
}

func TestWebhookEventStats(t *testing.T) {
	r := adminEventsRouter(t)
	seedEvents(t)

	req := httptest.NewRequest(http.MethodGet, "/api/webhooks/stats", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("got %d", w.Code)
	}

	var stats struct {
		Total    int64            `json:"total"`
		ByStatus map[string]int64 `json:"by_status"`
		ByType   map[string]int64 `json:"by_type"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &stats); err != nil {
		t.Fatal(err)
	}
	if stats.Total != 3 {
		t.Fatalf("total = %d, want 3", stats.Total)
	}
	if stats.ByStatus["completed"] != 2 || stats.ByStatus["retrying"] != 1 {
		t.Fatalf("by_status = %v", stats.ByStatus)
	}
	if stats.ByType["checkout.session.completed"] != 1 {
		t.Fatalf("by_type = %v", stats.ByType)
	}
}
