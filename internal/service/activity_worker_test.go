package service

import (
	"context"
	"testing"
	"time"
)

func TestActivityWorker_ProcessesJob(t *testing.T) {
	recorder := &mockRecorder{}

	w := NewActivityWorker(recorder, testLogger(), 10)
	ctx, cancel := context.WithCancel(context.Background())
	go w.Run(ctx)

	w.Enqueue(&ActivityJob{
		UserID:     testUserID,
		Action:     "task.create",
		EntityType: "task",
		EntityID:   "7",
	})

	time.Sleep(50 * time.Millisecond)
	cancel()

	calls := recorder.getCalls()
	if len(calls) != 1 {
		t.Fatalf("expected 1 activity call, got %d", len(calls))
	}
	if calls[0].Action != "task.create" {
		t.Errorf("action = %q, want %q", calls[0].Action, "task.create")
	}
	if calls[0].EntityID != "7" {
		t.Errorf("entity_id = %q, want %q", calls[0].EntityID, "7")
	}
	if calls[0].UserID != testUserID {
		t.Errorf("user_id = %s, want %s", calls[0].UserID, testUserID)
	}
}

func TestActivityWorker_DropsWhenFull(t *testing.T) {
	// Queue size 2, worker not started so nothing drains.
	w := NewActivityWorker(&mockRecorder{}, testLogger(), 2)

	w.Enqueue(&ActivityJob{Action: "a"})
	w.Enqueue(&ActivityJob{Action: "b"})

	done := make(chan struct{})
	go func() {
		w.Enqueue(&ActivityJob{Action: "c"})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Enqueue blocked when queue was full")
	}

	if len(w.jobs) != 2 {
		t.Errorf("queue len = %d, want 2", len(w.jobs))
	}
}

func TestActivityWorker_StopDrains(t *testing.T) {
	recorder := &mockRecorder{}
	w := NewActivityWorker(recorder, testLogger(), 100)

	for i := range 5 {
		w.Enqueue(&ActivityJob{Action: "drain", EntityID: string(rune('a' + i))})
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run didn't return after cancel")
	}

	if calls := recorder.getCalls(); len(calls) != 5 {
		t.Errorf("expected 5 drained activity calls, got %d", len(calls))
	}
}
