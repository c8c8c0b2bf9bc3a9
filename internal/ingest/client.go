package ingest

import (
	"log/slog"
	"runtime"
	"time"

	"golang.org/x/time/rate"

	"github.com/felipelastra26/lumin-payroll-calculator/internal/source"
)

// Options tunes how a Client reads from its source.
type Options struct {
	Workers int           // concurrent per-day fetches; 0 = min(4, NumCPU)
	Rate    float64       // fetches per second; 0 = unlimited
	Timeout time.Duration // deadline for a whole range fetch; 0 = none
	Logger  *slog.Logger
}

// Client reads employee and transaction exports from a source.
type Client struct {
	src     source.Fetcher
	workers int
	limiter *rate.Limiter
	timeout time.Duration
	log     *slog.Logger
}

// NewClient creates a Client over src.
func NewClient(src source.Fetcher, opts Options) *Client {
	workers := opts.Workers
	if workers <= 0 {
		workers = min(4, runtime.NumCPU())
	}
	var limiter *rate.Limiter
	if opts.Rate > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.Rate), workers)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		src:     src,
		workers: workers,
		limiter: limiter,
		timeout: opts.Timeout,
		log:     logger,
	}
}
