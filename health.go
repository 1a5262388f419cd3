package searchai

import (
	"context"
	"time"

	healthuc "github.com/nitinanarwal/Search-AI/internal/usecase/health"
)

// Health checks the search API and reports its aggregated status.
func (c *Client) Health(ctx context.Context) HealthStatus {
	start := time.Now()
	report := c.healthSvc.Check(ctx)

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}
	c.obs.record("health", string(report.Status), start, nil)

	return HealthStatus{
		Status: string(report.Status),
		Checks: checks,
	}
}

// healthUseCase is the internal interface for health checks.
type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}
