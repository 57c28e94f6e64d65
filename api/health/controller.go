// Package health 暴露存活、就绪与依赖探测接口
package health

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"runtime"
	"time"

	"greencity/config"

	"github.com/gin-gonic/gin"
)

const (
	probeTimeout = 2 * time.Second

	statusUp       = "up"
	statusDown     = "down"
	statusDegraded = "degraded"
)

// Probe checks one dependency. A failing critical probe makes the service unready;
// a failing non-critical probe only degrades the report.
type Probe struct {
	Name     string
	Critical bool
	Check    func(ctx context.Context) error
}

// DatabaseProbe pings the connection pool.
func DatabaseProbe(db *sql.DB) Probe {
	return Probe{
		Name:     "database",
		Critical: true,
		Check:    db.PingContext,
	}
}

// Backlogger is satisfied by the mailer pool.
type Backlogger interface {
	Backlog() (queued, capacity int)
}

// MailerProbe reports degraded when the email queue is at least 90% full.
func MailerProbe(pool Backlogger) Probe {
	return Probe{
		Name: "mailer",
		Check: func(context.Context) error {
			queued, capacity := pool.Backlog()
			if capacity > 0 && queued*10 >= capacity*9 {
				return fmt.Errorf("email queue near capacity: %d/%d", queued, capacity)
			}
			return nil
		},
	}
}

type Controller struct {
	config  *config.Config
	probes  []Probe
	started time.Time
}

func NewController(cfg *config.Config, probes ...Probe) *Controller {
	return &Controller{config: cfg, probes: probes, started: time.Now()}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/health")
	group.GET("", c.Health)
	group.GET("/live", c.Liveness)
	group.GET("/ready", c.Readiness)
}

// Report is the body of GET /health.
type Report struct {
	Status    string                 `json:"status"`
	Version   string                 `json:"version"`
	Uptime    string                 `json:"uptime"`
	CheckedAt time.Time              `json:"checked_at"`
	Checks    map[string]ProbeResult `json:"checks,omitempty"`
	Runtime   *RuntimeInfo           `json:"runtime,omitempty"`
}

type ProbeResult struct {
	Status  string `json:"status"`
	Error   string `json:"error,omitempty"`
	Latency string `json:"latency"`
}

// RuntimeInfo 仅开发环境返回
type RuntimeInfo struct {
	GoVersion  string `json:"go_version"`
	Goroutines int    `json:"goroutines"`
	HeapBytes  uint64 `json:"heap_bytes"`
}

func (c *Controller) Health(ctx *gin.Context) {
	results, ready, degraded := c.run(ctx.Request.Context())

	report := Report{
		Status:    statusUp,
		Version:   c.config.App.Version,
		Uptime:    time.Since(c.started).Round(time.Second).String(),
		CheckedAt: time.Now().UTC(),
		Checks:    results,
	}
	switch {
	case !ready:
		report.Status = statusDown
	case degraded:
		report.Status = statusDegraded
	}
	if c.config.IsDevelopment() {
		var mem runtime.MemStats
		runtime.ReadMemStats(&mem)
		report.Runtime = &RuntimeInfo{
			GoVersion:  runtime.Version(),
			Goroutines: runtime.NumGoroutine(),
			HeapBytes:  mem.HeapAlloc,
		}
	}

	ctx.JSON(statusCode(ready), report)
}

func (c *Controller) Liveness(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": statusUp})
}

func (c *Controller) Readiness(ctx *gin.Context) {
	_, ready, _ := c.run(ctx.Request.Context())
	status := statusUp
	if !ready {
		status = statusDown
	}
	ctx.JSON(statusCode(ready), gin.H{"status": status})
}

func (c *Controller) run(ctx context.Context) (results map[string]ProbeResult, ready, degraded bool) {
	results = make(map[string]ProbeResult, len(c.probes))
	ready = true
	for _, p := range c.probes {
		pctx, cancel := context.WithTimeout(ctx, probeTimeout)
		start := time.Now()
		err := p.Check(pctx)
		cancel()

		res := ProbeResult{Status: statusUp, Latency: time.Since(start).String()}
		if err != nil {
			res.Status = statusDown
			res.Error = err.Error()
			if p.Critical {
				ready = false
			} else {
				degraded = true
			}
		}
		results[p.Name] = res
	}
	return results, ready, degraded
}

func statusCode(ready bool) int {
	if ready {
		return http.StatusOK
	}
	return http.StatusServiceUnavailable
}
