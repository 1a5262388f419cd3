package searchai

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/nitinanarwal/Search-AI/internal/config"
	"github.com/nitinanarwal/Search-AI/internal/domain/search/query"
	"github.com/nitinanarwal/Search-AI/internal/domain/search/request"
	"github.com/nitinanarwal/Search-AI/internal/domain/search/result"
	"github.com/nitinanarwal/Search-AI/internal/domain/search/state"
	"github.com/nitinanarwal/Search-AI/internal/transport/httpapi"
	healthuc "github.com/nitinanarwal/Search-AI/internal/usecase/health"
	searchuc "github.com/nitinanarwal/Search-AI/internal/usecase/search"
)

// Internal interfaces so tests can swap the use cases.
type lifecycleUseCase interface {
	Submit(ctx context.Context, payload request.Payload) *searchuc.Ticket
	State() state.State
	Subscribe(fn func(state.State))
}

type apiUseCase interface {
	HealthCheck(ctx context.Context) error
	Business(ctx context.Context, id string) (result.Raw, error)
	Businesses(ctx context.Context) ([]result.Raw, error)
}

// Client is the searchai SDK entry point. It is safe for concurrent use.
type Client struct {
	mu    sync.Mutex
	model query.Model

	baseURL   string
	lifecycle lifecycleUseCase
	api       apiUseCase
	healthSvc healthUseCase
	obs       *observer
}

// New creates a Client. No request is made until Submit, Health, Ping or Business.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}
	if cfg.baseURL == "" {
		cfg.baseURL = os.Getenv(config.BaseURLEnv)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	api := httpapi.New(&httpapi.Config{
		BaseURL:    cfg.baseURL,
		Timeout:    cfg.timeout,
		HTTPClient: cfg.httpClient,
		UserAgent:  cfg.userAgent,
		Logger:     cfg.logger,
	})
	lifecycle := searchuc.New(api, cfg.logger)
	healthSvc := healthuc.New(map[string]healthuc.Checker{
		"search_api": healthuc.CheckerFunc(api.HealthCheck),
	})

	c := wireClient(lifecycle, api, healthSvc, obs)
	c.baseURL = api.BaseURL()
	return c, nil
}

func wireClient(lifecycle lifecycleUseCase, api apiUseCase, healthSvc healthUseCase, obs *observer) *Client {
	return &Client{
		model:     query.New(),
		lifecycle: lifecycle,
		api:       api,
		healthSvc: healthSvc,
		obs:       obs,
	}
}

// BaseURL returns the search API base URL in use.
func (c *Client) BaseURL() string { return c.baseURL }

// Query returns the handle for editing the search intent.
func (c *Client) Query() *QueryService {
	return &QueryService{c: c}
}

// Submit sends the current search intent and moves the lifecycle to loading.
// page, when given and >= 1, overrides the intent's page for this request only.
// Edits made after Submit returns do not affect the request in flight.
func (c *Client) Submit(ctx context.Context, page ...int) *Ticket {
	payload := c.payload(page...)
	start := time.Now()

	t := c.lifecycle.Submit(ctx, payload)
	if c.obs.enabled() {
		go c.watch(t, start)
	}
	return &Ticket{inner: t}
}

// Preview returns the JSON body the next Submit would send.
func (c *Client) Preview(page ...int) ([]byte, error) {
	body, err := c.payload(page...).Encode()
	if err != nil {
		return nil, fmt.Errorf("preview: %w", err)
	}
	return body, nil
}

func (c *Client) payload(page ...int) request.Payload {
	c.mu.Lock()
	defer c.mu.Unlock()
	return request.Serialize(c.model, page...)
}

// watch records the outcome of a submit once it completes.
func (c *Client) watch(t *searchuc.Ticket, start time.Time) {
	<-t.Done()
	st, applied, _ := t.Wait(context.Background())

	status := statusOK
	var err error
	switch {
	case !applied:
		status = statusSuperseded
	case st.Status() == state.StatusError:
		status = statusError
		err = fmt.Errorf("search %d: %s", st.Seq(), st.Message())
	}
	c.obs.record("search", status, start, err)
}

// State returns the current lifecycle snapshot.
func (c *Client) State() State {
	return fromState(c.lifecycle.State())
}

// Subscribe registers fn to receive lifecycle states in order.
// Rapid transitions may be coalesced; an older state is never delivered after a newer one.
// fn may call Submit. It should return quickly, since later states wait for it.
func (c *Client) Subscribe(fn func(State)) {
	c.lifecycle.Subscribe(func(s state.State) {
		fn(fromState(s))
	})
}

// Business fetches and normalizes a single record by id.
func (c *Client) Business(ctx context.Context, id string) (_ Result, err error) {
	start := time.Now()
	defer func() { c.obs.observe("business", start, err) }()

	raw, err := c.api.Business(ctx, id)
	if err != nil {
		return Result{}, fmt.Errorf("business %q: %w", id, err)
	}
	r := result.Normalize(raw, 0)
	return fromResult(&r), nil
}

// Businesses fetches and normalizes every record the search API lists.
func (c *Client) Businesses(ctx context.Context) (_ []Result, err error) {
	start := time.Now()
	defer func() { c.obs.observe("businesses", start, err) }()

	raws, err := c.api.Businesses(ctx)
	if err != nil {
		return nil, fmt.Errorf("businesses: %w", err)
	}
	return fromResults(result.NormalizeAll(raws)), nil
}

// Ping checks that the search API answers /health with status ok.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if err = c.api.HealthCheck(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Ticket tracks one submitted search.
type Ticket struct {
	inner *searchuc.Ticket
}

// Seq returns the submit's sequence number.
func (t *Ticket) Seq() uint64 { return t.inner.Seq() }

// Done is closed once the response has been applied or discarded.
func (t *Ticket) Done() <-chan struct{} { return t.inner.Done() }

// Wait blocks until the search completes or ctx is done. It returns the state
// this submit produced and whether it was applied; applied is false when a newer
// submit superseded it.
func (t *Ticket) Wait(ctx context.Context) (State, bool, error) {
	st, applied, err := t.inner.Wait(ctx)
	if err != nil {
		return State{}, false, err
	}
	return fromState(st), applied, nil
}

