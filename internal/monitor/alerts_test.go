package monitor

import (
	"context"
	"errors"
	"testing"

	"pricetrack/internal/models"
)

// stubNotifier records sends and can be scripted to fail.
type stubNotifier struct {
	sent []string // recipient addresses in dispatch order
	err  error
}

func (n *stubNotifier) Send(_ context.Context, to, _, _ string) error {
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, to)
	return nil
}

func seedAlert(repo *stubRepo, id, productID string, target int64) *models.Alert {
	a := &models.Alert{
		ID:          id,
		UserID:      "user-1",
		ProductID:   productID,
		TargetPrice: price(target),
		IsActive:    true,
	}
	repo.alerts[id] = a
	return a
}

func seedUser(repo *stubRepo) {
	repo.users["user-1"] = models.User{ID: "user-1", Name: "Asha", Email: "asha@example.com"}
}

func TestEvaluateDispatchesAtOrBelowTarget(t *testing.T) {
	repo := newStubRepo()
	seedUser(repo)
	product := seedProduct(repo, "p1", 65000)
	seedAlert(repo, "a1", "p1", 60000)
	notifier := &stubNotifier{}
	e := &AlertEvaluator{Repo: repo, Notifier: notifier}

	if err := e.Evaluate(context.Background(), product, price(59999), price(65000)); err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if len(notifier.sent) != 1 || notifier.sent[0] != "asha@example.com" {
		t.Fatalf("sent = %v, want one mail to asha", notifier.sent)
	}
	if !repo.alerts["a1"].Notified {
		t.Fatalf("alert not flagged notified")
	}
	if repo.alerts["a1"].NotifiedAt == nil {
		t.Fatalf("notified timestamp missing")
	}
}

func TestEvaluateSkipsAboveTarget(t *testing.T) {
	repo := newStubRepo()
	seedUser(repo)
	product := seedProduct(repo, "p1", 65000)
	seedAlert(repo, "a1", "p1", 60000)
	notifier := &stubNotifier{}
	e := &AlertEvaluator{Repo: repo, Notifier: notifier}

	if err := e.Evaluate(context.Background(), product, price(60001), price(65000)); err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if len(notifier.sent) != 0 {
		t.Fatalf("sent = %v, want nothing above target", notifier.sent)
	}
	if repo.alerts["a1"].Notified {
		t.Fatalf("alert flagged without dispatch")
	}
}

func TestEvaluateNotifiedAlertFiresOnce(t *testing.T) {
	repo := newStubRepo()
	seedUser(repo)
	product := seedProduct(repo, "p1", 60000)
	seedAlert(repo, "a1", "p1", 60000)
	notifier := &stubNotifier{}
	e := &AlertEvaluator{Repo: repo, Notifier: notifier}

	for i := 0; i < 3; i++ {
		if err := e.Evaluate(context.Background(), product, price(58000), price(60000)); err != nil {
			t.Fatalf("evaluate #%d: %v", i, err)
		}
	}
	if len(notifier.sent) != 1 {
		t.Fatalf("sent %d mails across repeat crossings, want 1", len(notifier.sent))
	}
}

func TestEvaluateNotifierFailureLeavesAlertArmed(t *testing.T) {
	repo := newStubRepo()
	seedUser(repo)
	product := seedProduct(repo, "p1", 65000)
	seedAlert(repo, "a1", "p1", 60000)
	notifier := &stubNotifier{err: errors.New("smtp timeout")}
	e := &AlertEvaluator{Repo: repo, Notifier: notifier}

	if err := e.Evaluate(context.Background(), product, price(59000), price(65000)); err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if repo.alerts["a1"].Notified {
		t.Fatalf("alert flagged after a failed dispatch")
	}

	// Transport recovers; the next cycle delivers.
	notifier.err = nil
	if err := e.Evaluate(context.Background(), product, price(59000), price(65000)); err != nil {
		t.Fatalf("evaluate retry: %v", err)
	}
	if len(notifier.sent) != 1 || !repo.alerts["a1"].Notified {
		t.Fatalf("retry did not deliver: sent=%v notified=%v", notifier.sent, repo.alerts["a1"].Notified)
	}
}

func TestEvaluateMissingRecipientSkipped(t *testing.T) {
	repo := newStubRepo()
	product := seedProduct(repo, "p1", 65000)
	seedAlert(repo, "a1", "p1", 60000)
	notifier := &stubNotifier{}
	e := &AlertEvaluator{Repo: repo, Notifier: notifier}

	if err := e.Evaluate(context.Background(), product, price(59000), price(65000)); err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if len(notifier.sent) != 0 {
		t.Fatalf("dispatched to a recipient that cannot be resolved")
	}
	if repo.alerts["a1"].Notified {
		t.Fatalf("alert flagged without dispatch")
	}
}

func TestEvaluateInactiveAlertIgnored(t *testing.T) {
	repo := newStubRepo()
	seedUser(repo)
	product := seedProduct(repo, "p1", 65000)
	a := seedAlert(repo, "a1", "p1", 60000)
	a.IsActive = false
	notifier := &stubNotifier{}
	e := &AlertEvaluator{Repo: repo, Notifier: notifier}

	if err := e.Evaluate(context.Background(), product, price(59000), price(65000)); err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if len(notifier.sent) != 0 {
		t.Fatalf("inactive alert dispatched")
	}
}
