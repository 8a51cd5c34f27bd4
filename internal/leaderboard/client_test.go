package leaderboard

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/vovakirdan/hardest-game/internal/world"
)

func TestClientRoundTrip(t *testing.T) {
	_, ts := newTestServer(t)
	c := NewClient(ts.URL+"/", time.Second)
	ctx := context.Background()

	doc, err := c.FetchWorld(ctx)
	if err != nil {
		t.Fatalf("FetchWorld: %v", err)
	}
	if len(doc.Objects) != 4 || len(doc.SpeedIncreases) != 1 {
		t.Errorf("unexpected world: %d objects, %d portals", len(doc.Objects), len(doc.SpeedIncreases))
	}

	if err := c.SubmitScore(ctx, Score{Player: "alice", Score: 420}); err != nil {
		t.Fatalf("SubmitScore: %v", err)
	}
	if err := c.SubmitScore(ctx, Score{Player: "", Score: 1}); !errors.Is(err, ErrEmptyPlayer) {
		t.Errorf("empty player error = %v", err)
	}

	scores, err := c.FetchLeaderboard(ctx)
	if err != nil {
		t.Fatalf("FetchLeaderboard: %v", err)
	}
	if len(scores) != 1 || scores[0] != (Score{"alice", 420}) {
		t.Errorf("scores = %v", scores)
	}
}

func TestClientAcceptsDoubleEncodedWorld(t *testing.T) {
	inner, err := world.Encode(world.DefaultDocument(), world.FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(strconv.Quote(string(inner))))
	}))
	defer ts.Close()

	doc, err := NewClient(ts.URL, time.Second).FetchWorld(context.Background())
	if err != nil {
		t.Fatalf("FetchWorld: %v", err)
	}
	if len(doc.MovingObjects) != 3 {
		t.Errorf("got %d moving objects, want 3", len(doc.MovingObjects))
	}
}

func TestClientErrors(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer ts.Close()

	c := NewClient(ts.URL, time.Second)
	ctx := context.Background()

	if _, err := c.FetchWorld(ctx); err == nil {
		t.Error("FetchWorld should fail on 500")
	}
	if _, err := c.FetchLeaderboard(ctx); err == nil {
		t.Error("FetchLeaderboard should fail on 500")
	}
	if err := c.SubmitScore(ctx, Score{Player: "a", Score: 1}); err == nil {
		t.Error("SubmitScore should fail on 500")
	}
}

func TestClientRejectsBadWorld(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"objects":[]}`))
	}))
	defer ts.Close()

	_, err := NewClient(ts.URL, time.Second).FetchWorld(context.Background())
	if !errors.Is(err, world.ErrInvalidDocument) {
		t.Errorf("error = %v, want ErrInvalidDocument", err)
	}
}

func TestSubmitAsync(t *testing.T) {
	_, ts := newTestServer(t)
	c := NewClient(ts.URL, time.Second)

	select {
	case err := <-c.SubmitAsync(Score{Player: "bg", Score: 77}, nil):
		if err != nil {
			t.Fatalf("SubmitAsync: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("SubmitAsync did not finish")
	}

	scores, err := c.FetchLeaderboard(context.Background())
	if err != nil || len(scores) != 1 || scores[0].Player != "bg" {
		t.Errorf("scores = %v, %v", scores, err)
	}
}

func TestWatchReceivesUpdates(t *testing.T) {
	srv, ts := newTestServer(t)
	c := NewClient(ts.URL, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	snapshots := make(chan []Score, 8)
	done := make(chan error, 1)
	go func() {
		done <- c.Watch(ctx, func(s []Score) { snapshots <- s })
	}()

	select {
	case s := <-snapshots:
		if len(s) != 0 {
			t.Errorf("initial snapshot = %v, want empty", s)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no initial snapshot")
	}

	// Wait until the server has registered the subscriber.
	deadline := time.Now().Add(5 * time.Second)
	for srv.Feed().SubscriberCount() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}

	if err := c.SubmitScore(context.Background(), Score{Player: "live", Score: 9}); err != nil {
		t.Fatalf("SubmitScore: %v", err)
	}

	select {
	case s := <-snapshots:
		if len(s) != 1 || s[0] != (Score{"live", 9}) {
			t.Errorf("update = %v", s)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no update after submission")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Watch = %v, want nil after cancel", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Watch did not return after cancel")
	}
}

func TestFeedDropsWhenFull(t *testing.T) {
	f := NewFeed()
	id, ch := f.Subscribe()
	for i := 0; i < 100; i++ {
		f.Broadcast(Update{Type: UpdateTypeLeaderboard})
	}
	if got := len(ch); got != cap(ch) {
		t.Errorf("buffered %d updates, want %d", got, cap(ch))
	}
	f.Unsubscribe(id)
	if f.SubscriberCount() != 0 {
		t.Error("subscriber not removed")
	}
	if _, ok := <-drain(ch); ok {
		t.Error("channel not closed")
	}
}

func drain(ch <-chan Update) <-chan Update {
	for range len(ch) {
		<-ch
	}
	return ch
}
