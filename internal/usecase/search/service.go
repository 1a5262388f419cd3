package search

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/nitinanarwal/Search-AI/internal/domain"
	"github.com/nitinanarwal/Search-AI/internal/domain/search/request"
	"github.com/nitinanarwal/Search-AI/internal/domain/search/result"
	"github.com/nitinanarwal/Search-AI/internal/domain/search/state"
	"github.com/nitinanarwal/Search-AI/internal/metrics"
)

// Error messages surfaced in the Error state.
const (
	GenericFailureMessage = "Search failed. Check backend and console."
	rejectedMessage       = "Search failed"
	invalidBodyMessage    = "Search failed: invalid response from server"
)

// Service is the search lifecycle: idle -> loading -> success/error.
// Only the most recently submitted request may change the state.
type Service struct {
	transport Transport
	logger    *zap.Logger

	mu      sync.Mutex
	seq     uint64
	rev     uint64
	current state.State

	notifyMu    sync.Mutex
	notifiedRev uint64
	delivering  bool
	subscribers []func(state.State)
}

// New creates a lifecycle service. logger may be nil.
func New(transport Transport, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		transport: transport,
		logger:    logger,
		current:   state.Idle(),
	}
}

// Subscribe registers fn to receive applied states in order. Rapid transitions
// may be coalesced, but a subscriber never sees an older state after a newer one.
// Subscribers are called one state at a time; fn may call Submit, whose Loading
// state is delivered after fn returns.
func (s *Service) Subscribe(fn func(state.State)) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// State returns a snapshot of the current lifecycle state.
func (s *Service) State() state.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Submit moves the lifecycle to Loading and sends payload in the background.
// A later Submit supersedes this one: its outcome is then discarded.
func (s *Service) Submit(ctx context.Context, payload request.Payload) *Ticket {
	s.mu.Lock()
	s.seq++
	seq := s.seq
	s.current = state.Loading(seq)
	s.rev++
	s.mu.Unlock()

	metrics.SearchSubmitsTotal.Inc()
	s.logger.Debug("search submitted",
		zap.Uint64("seq", seq),
		zap.String("query", payload.Query),
		zap.Int("page", payload.Page),
	)
	s.notify()

	t := &Ticket{seq: seq, done: make(chan struct{})}
	go s.run(ctx, seq, payload, t)
	return t
}

func (s *Service) run(ctx context.Context, seq uint64, payload request.Payload, t *Ticket) {
	defer close(t.done)
	start := time.Now()

	raws, err := s.transport.Search(ctx, payload)
	outcome := s.outcome(seq, raws, err)

	applied := s.apply(outcome)
	t.outcome = outcome
	t.applied = applied

	label := metrics.OutcomeSuccess
	switch {
	case !applied:
		label = metrics.OutcomeSuperseded
	case outcome.Status() == state.StatusError:
		label = metrics.OutcomeError
	}
	metrics.SearchOutcomesTotal.WithLabelValues(label).Inc()
	metrics.SearchDuration.WithLabelValues(label).Observe(time.Since(start).Seconds())

	if !applied {
		s.logger.Debug("stale search response discarded", zap.Uint64("seq", seq))
		return
	}
	if err != nil {
		s.logger.Warn("search failed", zap.Uint64("seq", seq), zap.Error(err))
	} else {
		s.logger.Debug("search completed",
			zap.Uint64("seq", seq),
			zap.Int("results", len(outcome.Results())),
			zap.Duration("duration", time.Since(start)),
		)
	}
	s.notify()
}

// outcome maps a transport completion to the state it would produce.
func (s *Service) outcome(seq uint64, raws []result.Raw, err error) state.State {
	if err != nil {
		return state.Failure(seq, FailureMessage(err))
	}
	return state.Success(seq, result.NormalizeAll(raws))
}

// apply stores next only if it belongs to the latest submit.
func (s *Service) apply(next state.State) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if next.Seq() != s.seq {
		return false
	}
	s.current = next
	s.rev++
	return true
}

// notify delivers the current state unless a newer revision was already delivered.
// Only one goroutine delivers at a time. Others return at once and the active
// deliverer picks up their revision before it stops.
func (s *Service) notify() {
	s.notifyMu.Lock()
	if s.delivering {
		s.notifyMu.Unlock()
		return
	}
	s.delivering = true

	for {
		s.mu.Lock()
		rev, st := s.rev, s.current
		s.mu.Unlock()

		if rev <= s.notifiedRev {
			s.delivering = false
			s.notifyMu.Unlock()
			return
		}
		s.notifiedRev = rev
		subs := slices.Clone(s.subscribers)
		s.notifyMu.Unlock()

		for _, fn := range subs {
			fn(st)
		}

		s.notifyMu.Lock()
	}
}

// FailureMessage renders a transport error for display.
// Status errors keep the code and body; network failures get a generic message.
func FailureMessage(err error) string {
	var statusErr *domain.StatusError
	if errors.As(err, &statusErr) {
		return fmt.Sprintf("Search failed: %s", statusErr.Error())
	}
	var rejected *domain.RejectedError
	if errors.As(err, &rejected) {
		if rejected.Message != "" {
			return rejected.Message
		}
		return rejectedMessage
	}
	if errors.Is(err, domain.ErrInvalidResponse) {
		return invalidBodyMessage
	}
	return GenericFailureMessage
}

// Ticket tracks one submitted request.
type Ticket struct {
	seq     uint64
	done    chan struct{}
	outcome state.State
	applied bool
}

// Seq returns the request's sequence number.
func (t *Ticket) Seq() uint64 { return t.seq }

// Done is closed once the request has completed and its outcome was applied or discarded.
func (t *Ticket) Done() <-chan struct{} { return t.done }

// Wait blocks until the request completes or ctx is done.
// It returns the state this request produced and whether it was applied.
func (t *Ticket) Wait(ctx context.Context) (state.State, bool, error) {
	select {
	case <-t.done:
		return t.outcome, t.applied, nil
	case <-ctx.Done():
		return state.State{}, false, fmt.Errorf("wait for search %d: %w", t.seq, ctx.Err())
	}
}
