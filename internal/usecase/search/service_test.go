package search

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/nitinanarwal/Search-AI/internal/domain"
	"github.com/nitinanarwal/Search-AI/internal/domain/search/query"
	"github.com/nitinanarwal/Search-AI/internal/domain/search/request"
	"github.com/nitinanarwal/Search-AI/internal/domain/search/result"
	"github.com/nitinanarwal/Search-AI/internal/domain/search/state"
)

// --- Mocks ---

type reply struct {
	raws []result.Raw
	err  error
}

// gatedTransport blocks each call until the test releases it by query text.
type gatedTransport struct {
	mu      sync.Mutex
	gates   map[string]chan reply
	calls   []request.Payload
	started chan string
}

func newGatedTransport() *gatedTransport {
	return &gatedTransport{
		gates:   make(map[string]chan reply),
		started: make(chan string, 16),
	}
}

func (g *gatedTransport) gate(q string) chan reply {
	g.mu.Lock()
	defer g.mu.Unlock()
	ch, ok := g.gates[q]
	if !ok {
		ch = make(chan reply, 1)
		g.gates[q] = ch
	}
	return ch
}

func (g *gatedTransport) Search(ctx context.Context, p request.Payload) ([]result.Raw, error) {
	g.mu.Lock()
	g.calls = append(g.calls, p)
	g.mu.Unlock()
	ch := g.gate(p.Query)
	g.started <- p.Query
	select {
	case r := <-ch:
		return r.raws, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (g *gatedTransport) release(q string, r reply) { g.gate(q) <- r }

func payload(text string) request.Payload {
	m := query.New()
	m.SetText(text)
	return request.Serialize(m)
}

func waitTicket(t *testing.T, tk *Ticket) (state.State, bool) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	st, applied, err := tk.Wait(ctx)
	if err != nil {
		t.Fatalf("Wait: %v", err)
	}
	return st, applied
}

func staticTransport(raws []result.Raw, err error) Transport {
	return TransportFunc(func(context.Context, request.Payload) ([]result.Raw, error) {
		return raws, err
	})
}

// --- Tests ---

func TestService_InitialStateIdle(t *testing.T) {
	svc := New(staticTransport(nil, nil), nil)
	if got := svc.State().Status(); got != state.StatusIdle {
		t.Errorf("Status() = %q, want idle", got)
	}
}

func TestService_SubmitTransitionsToLoading(t *testing.T) {
	tr := newGatedTransport()
	svc := New(tr, nil)

	tk := svc.Submit(context.Background(), payload("housing"))
	st := svc.State()
	if st.Status() != state.StatusLoading {
		t.Errorf("Status() = %q, want loading", st.Status())
	}
	if st.Seq() != tk.Seq() {
		t.Errorf("Seq() = %d, want %d", st.Seq(), tk.Seq())
	}

	<-tr.started
	tr.release("housing", reply{raws: []result.Raw{result.Raw(`{"id":"a"}`)}})
	waitTicket(t, tk)

	st = svc.State()
	if st.Status() != state.StatusSuccess {
		t.Fatalf("Status() = %q, want success", st.Status())
	}
	if len(st.Results()) != 1 || st.Results()[0].ID() != "a" {
		t.Errorf("Results() = %v", st.Results())
	}
}

func TestService_LatestSubmitWins(t *testing.T) {
	tr := newGatedTransport()
	svc := New(tr, nil)
	ctx := context.Background()

	t1 := svc.Submit(ctx, payload("first"))
	<-tr.started
	t2 := svc.Submit(ctx, payload("second"))
	<-tr.started

	// S2 completes before S1.
	tr.release("second", reply{raws: []result.Raw{result.Raw(`{"id":"s2"}`)}})
	_, applied2 := waitTicket(t, t2)
	if !applied2 {
		t.Fatal("second response was not applied")
	}

	tr.release("first", reply{raws: []result.Raw{result.Raw(`{"id":"s1"}`)}})
	outcome1, applied1 := waitTicket(t, t1)
	if applied1 {
		t.Fatal("stale first response was applied")
	}
	if outcome1.Status() != state.StatusSuccess {
		t.Errorf("first outcome = %q", outcome1.Status())
	}

	st := svc.State()
	if st.Seq() != t2.Seq() {
		t.Errorf("Seq() = %d, want %d", st.Seq(), t2.Seq())
	}
	if res := st.Results(); len(res) != 1 || res[0].ID() != "s2" {
		t.Errorf("Results() = %v, want s2", res)
	}
}

func TestService_StaleErrorDoesNotOverwrite(t *testing.T) {
	tr := newGatedTransport()
	svc := New(tr, nil)
	ctx := context.Background()

	t1 := svc.Submit(ctx, payload("slow"))
	<-tr.started
	t2 := svc.Submit(ctx, payload("fast"))
	<-tr.started

	tr.release("fast", reply{raws: []result.Raw{}})
	waitTicket(t, t2)
	tr.release("slow", reply{err: domain.NewStatusError(500, "Internal Server Error", "boom")})
	waitTicket(t, t1)

	if got := svc.State().Status(); got != state.StatusSuccess {
		t.Errorf("Status() = %q, want success", got)
	}
}

func TestService_StaleResponseWhileLatestLoading(t *testing.T) {
	tr := newGatedTransport()
	svc := New(tr, nil)
	ctx := context.Background()

	t1 := svc.Submit(ctx, payload("one"))
	<-tr.started
	t2 := svc.Submit(ctx, payload("two"))
	<-tr.started

	tr.release("one", reply{raws: []result.Raw{result.Raw(`{}`)}})
	waitTicket(t, t1)

	st := svc.State()
	if st.Status() != state.StatusLoading || st.Seq() != t2.Seq() {
		t.Errorf("state = %q/%d, want loading/%d", st.Status(), st.Seq(), t2.Seq())
	}

	tr.release("two", reply{})
	waitTicket(t, t2)
}

func TestService_StatusErrorMessage(t *testing.T) {
	svc := New(staticTransport(nil, domain.NewStatusError(500, "Internal Server Error", "server error")), nil)
	st, applied := waitTicket(t, svc.Submit(context.Background(), payload("x")))
	if !applied {
		t.Fatal("not applied")
	}
	if st.Status() != state.StatusError {
		t.Fatalf("Status() = %q, want error", st.Status())
	}
	for _, want := range []string{"500", "server error"} {
		if !strings.Contains(st.Message(), want) {
			t.Errorf("Message() = %q, missing %q", st.Message(), want)
		}
	}
}

func TestService_TransportFailureGeneric(t *testing.T) {
	err := fmt.Errorf("dial tcp: %w", domain.ErrTransport)
	svc := New(staticTransport(nil, err), nil)
	st, _ := waitTicket(t, svc.Submit(context.Background(), payload("x")))
	if st.Message() != GenericFailureMessage {
		t.Errorf("Message() = %q", st.Message())
	}
}

func TestService_EmptyResultsIsSuccess(t *testing.T) {
	for name, raws := range map[string][]result.Raw{"empty": {}, "absent": nil} {
		t.Run(name, func(t *testing.T) {
			svc := New(staticTransport(raws, nil), nil)
			st, _ := waitTicket(t, svc.Submit(context.Background(), payload("x")))
			if st.Status() != state.StatusSuccess {
				t.Errorf("Status() = %q, want success", st.Status())
			}
			if r := st.Results(); r == nil || len(r) != 0 {
				t.Errorf("Results() = %#v, want empty", r)
			}
		})
	}
}

func TestService_MalformedRecordsKeepCount(t *testing.T) {
	raws := []result.Raw{result.Raw(`{"id":"ok"}`), result.Raw(`"bad"`), result.Raw(`{}`)}
	svc := New(staticTransport(raws, nil), nil)
	st, _ := waitTicket(t, svc.Submit(context.Background(), payload("x")))
	if len(st.Results()) != 3 {
		t.Errorf("len(Results()) = %d, want 3", len(st.Results()))
	}
}

func TestService_SubmitClearsError(t *testing.T) {
	var fail bool
	var mu sync.Mutex
	tr := TransportFunc(func(context.Context, request.Payload) ([]result.Raw, error) {
		mu.Lock()
		defer mu.Unlock()
		if fail {
			return nil, errors.New("down")
		}
		return []result.Raw{}, nil
	})
	svc := New(tr, nil)

	mu.Lock()
	fail = true
	mu.Unlock()
	waitTicket(t, svc.Submit(context.Background(), payload("x")))
	if svc.State().Status() != state.StatusError {
		t.Fatalf("Status() = %q, want error", svc.State().Status())
	}

	mu.Lock()
	fail = false
	mu.Unlock()
	tk := svc.Submit(context.Background(), payload("x"))
	if svc.State().Message() != "" {
		t.Errorf("Message() after resubmit = %q, want empty", svc.State().Message())
	}
	waitTicket(t, tk)
	if svc.State().Status() != state.StatusSuccess {
		t.Errorf("Status() = %q, want success", svc.State().Status())
	}
}

func TestService_SubscribersSeeMonotonicStates(t *testing.T) {
	tr := newGatedTransport()
	svc := New(tr, nil)

	var mu sync.Mutex
	var seen []state.State
	svc.Subscribe(func(st state.State) {
		mu.Lock()
		seen = append(seen, st)
		mu.Unlock()
	})

	ctx := context.Background()
	t1 := svc.Submit(ctx, payload("a"))
	<-tr.started
	t2 := svc.Submit(ctx, payload("b"))
	<-tr.started
	tr.release("b", reply{raws: []result.Raw{}})
	waitTicket(t, t2)
	tr.release("a", reply{raws: []result.Raw{}})
	waitTicket(t, t1)

	mu.Lock()
	defer mu.Unlock()
	if len(seen) == 0 {
		t.Fatal("no notifications")
	}
	for i := 1; i < len(seen); i++ {
		if seen[i].Seq() < seen[i-1].Seq() {
			t.Errorf("notification %d regressed: seq %d after %d", i, seen[i].Seq(), seen[i-1].Seq())
		}
	}
	last := seen[len(seen)-1]
	if last.Seq() != t2.Seq() || last.Status() != state.StatusSuccess {
		t.Errorf("last = %q/%d, want success/%d", last.Status(), last.Seq(), t2.Seq())
	}
}

func TestService_SubscriberMaySubmit(t *testing.T) {
	svc := New(staticTransport([]result.Raw{result.Raw(`{"id":"a"}`)}, nil), nil)

	var mu sync.Mutex
	var seen []state.State
	resubmitted := false
	settled := make(chan struct{})
	svc.Subscribe(func(st state.State) {
		mu.Lock()
		seen = append(seen, st)
		first := !resubmitted && st.Status() == state.StatusSuccess
		if first {
			resubmitted = true
		}
		mu.Unlock()

		if first {
			svc.Submit(context.Background(), payload("page two"))
			return
		}
		if st.Status() == state.StatusSuccess && st.Seq() == 2 {
			close(settled)
		}
	})

	svc.Submit(context.Background(), payload("page one"))

	select {
	case <-settled:
	case <-time.After(2 * time.Second):
		t.Fatal("re-entrant Submit from a subscriber did not settle")
	}

	mu.Lock()
	defer mu.Unlock()
	for i := 1; i < len(seen); i++ {
		if seen[i].Seq() < seen[i-1].Seq() {
			t.Errorf("notification %d regressed: seq %d after %d", i, seen[i].Seq(), seen[i-1].Seq())
		}
	}
	if st := svc.State(); st.Seq() != 2 || st.Status() != state.StatusSuccess {
		t.Errorf("State() = %q/%d, want success/2", st.Status(), st.Seq())
	}
}

func TestTicket_WaitContextCancelled(t *testing.T) {
	tr := newGatedTransport()
	svc := New(tr, nil)
	tk := svc.Submit(context.Background(), payload("hang"))
	<-tr.started

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, err := tk.Wait(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Wait err = %v, want context.Canceled", err)
	}
	tr.release("hang", reply{})
	waitTicket(t, tk)
}

func TestFailureMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"status", domain.NewStatusError(404, "Not Found", "missing"), "Search failed: 404 Not Found: missing"},
		{"status no body", domain.NewStatusError(503, "", ""), "Search failed: 503 Service Unavailable"},
		{"rejected", &domain.RejectedError{Message: "index rebuilding"}, "index rebuilding"},
		{"rejected empty", &domain.RejectedError{}, "Search failed"},
		{"invalid body", fmt.Errorf("decode: %w", domain.ErrInvalidResponse), invalidBodyMessage},
		{"network", errors.New("connection refused"), GenericFailureMessage},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := FailureMessage(tc.err); got != tc.want {
				t.Errorf("FailureMessage() = %q, want %q", got, tc.want)
			}
		})
	}
}
