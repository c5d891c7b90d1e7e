package webhooks

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{})
	if err != nil {
		t.Fatal(err)
	}
	if err := db.AutoMigrate(&WebhookEvent{}); err != nil {
		t.Fatal(err)
	}
	return db
}

func TestRecordIfNewInserts(t *testing.T) {
	db := newTestDB(t)

	ev, process, err := RecordIfNew(db, "evt_1", "checkout.session.completed", []byte(`{}`))
	if err != nil {
		t.Fatal(err)
	}
	if !process {
		t.Fatal("first delivery should be processed")
	}
	if ev.Status != EventReceived || ev.Attempts != 1 {
		t.Fatalf("got status=%s attempts=%d", ev.Status, ev.Attempts)
	}
}

func TestRecordIfNewDedups(t *testing.T) {
	db := newTestDB(t)

	first, _, err := RecordIfNew(db, "evt_1", "checkout.session.completed", []byte(`{}`))
	if err != nil {
		t.Fatal(err)
	}
	if err := first.MarkCompleted(db); err != nil {
		t.Fatal(err)
	}

	second, process, err := RecordIfNew(db, "evt_1", "checkout.session.completed", []byte(`{}`))
	if err != nil {
		t.Fatal(err)
	}
	if process {
		t.Fatal("completed event redelivery must not be processed again")
	}
	if second.ID != first.ID {
		t.Fatalf("expected the same row, got id %d vs %d", second.ID, first.ID)
	}

	var count int64
	db.Model(&WebhookEvent{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected 1 row, got %d", count)
	}
}

func TestRecordIfNewReopensFailed(t *testing.T) {
	db := newTestDB(t)

	first, _, err := RecordIfNew(db, "evt_1", "payment_intent.succeeded", []byte(`{}`))
	if err != nil {
		t.Fatal(err)
	}
	if err := first.MarkFailed(db, errors.New("db went away")); err != nil {
		t.Fatal(err)
	}
	if first.Status != EventRetrying {
		t.Fatalf("got %s, want retrying", first.Status)
	}

	reopened, process, err := RecordIfNew(db, "evt_1", "payment_intent.succeeded", []byte(`{}`))
	if err != nil {
		t.Fatal(err)
	}
	if !process {
		t.Fatal("redelivery of a failed event should be processed")
	}
	if reopened.Status != EventProcessing {
		t.Fatalf("got %s, want processing", reopened.Status)
	}
	if reopened.Attempts != 2 {
		t.Fatalf("got attempts=%d, want 2", reopened.Attempts)
	}
}

func TestMarkFailedCapsRetries(t *testing.T) {
	db := newTestDB(t)

	ev, _, err := RecordIfNew(db, "evt_1", "payment_intent.succeeded", []byte(`{}`))
	if err != nil {
		t.Fatal(err)
	}
	ev.Attempts = maxAttempts

	if err := ev.MarkFailed(db, errors.New("still broken")); err != nil {
		t.Fatal(err)
	}
	if ev.Status != EventFailed {
		t.Fatalf("got %s, want failed", ev.Status)
	}
	if ev.LastError == nil || *ev.LastError != "still broken" {
		t.Fatalf("last error not recorded: %v", ev.LastError)
	}
}

func TestMarkCompletedClearsError(t *testing.T) {
	db := newTestDB(t)

	ev, _, err := RecordIfNew(db, "evt_1", "account.updated", []byte(`{}`))
	if err != nil {
		t.Fatal(err)
	}
	if err := ev.MarkFailed(db, errors.New("transient")); err != nil {
		t.Fatal(err)
	}
	if err := ev.MarkCompleted(db); err != nil {
		t.Fatal(err)
	}

	var stored WebhookEvent
	if err := db.Where("stripe_event_id = ?", "evt_1").First(&stored).Error; err != nil {
		t.Fatal(err)
	}
	if stored.Status != EventCompleted {
		t.Fatalf("got %s, want completed", stored.Status)
	}
	if stored.LastError != nil {
		t.Fatalf("last error should be cleared, got %q", *stored.LastError)
	}
	if stored.ProcessedAt == nil {
		t.Fatal("processed_at should be set")
	}
}
