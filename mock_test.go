package searchai

import (
	"context"

	"github.com/nitinanarwal/Search-AI/internal/domain/search/request"
	"github.com/nitinanarwal/Search-AI/internal/domain/search/result"
	healthuc "github.com/nitinanarwal/Search-AI/internal/usecase/health"
	searchuc "github.com/nitinanarwal/Search-AI/internal/usecase/search"
)

// --- apiUseCase mock ---

type mockAPI struct {
	healthFn   func(ctx context.Context) error
	businessFn func(ctx context.Context, id string) (result.Raw, error)
	listFn     func(ctx context.Context) ([]result.Raw, error)
}

func (m *mockAPI) HealthCheck(ctx context.Context) error {
	return m.healthFn(ctx)
}

func (m *mockAPI) Business(ctx context.Context, id string) (result.Raw, error) {
	return m.businessFn(ctx, id)
}

func (m *mockAPI) Businesses(ctx context.Context) ([]result.Raw, error) {
	return m.listFn(ctx)
}

// --- healthUseCase mock ---

type mockHealthUC struct {
	checkFn func(ctx context.Context) healthuc.Report
}

func (m *mockHealthUC) Check(ctx context.Context) healthuc.Report {
	return m.checkFn(ctx)
}

// newTestClient wires a client around a real lifecycle with a fake transport.
func newTestClient(
	fn func(ctx context.Context, p request.Payload) ([]result.Raw, error),
	api apiUseCase, obs *observer,
) *Client {
	lifecycle := searchuc.New(searchuc.TransportFunc(fn), nil)
	return wireClient(lifecycle, api, nil, obs)
}
