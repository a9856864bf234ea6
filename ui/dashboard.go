package ui

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"crypto_kiosk/api"
	"crypto_kiosk/config"
)

type quoteSource interface {
	Quote(ctx context.Context, symbol string) api.Quote
}

type quoteView interface {
	showQuote(token config.Token, q api.Quote)
}

// dashboard owns the selected token and serialises every refresh on one
// goroutine: the startup fetch, the warmup fetch, selections and ticks.
type dashboard struct {
	src    quoteSource
	view   quoteView
	logger *zap.Logger
	warmup time.Duration

	mu      sync.Mutex
	queue   []config.Token
	wake    chan struct{}
	current config.Token
}

func newDashboard(src quoteSource, view quoteView, initial config.Token, warmup time.Duration, logger *zap.Logger) *dashboard {
	return &dashboard{
		src:      src,
		view:     view,
		logger:   logger.Named("dashboard"),
		warmup:   warmup,
		wake:     make(chan struct{}, 1),
		current:  initial,
	}
}

// selectToken queues t for an immediate refresh. Every selection is served
// once, in the order made.
func (d *dashboard) selectToken(t config.Token) {
	d.mu.Lock()
	d.queue = append(d.queue, t)
	d.mu.Unlock()

	select {
	case d.wake <- struct{}{}:
	default:
	}
}

func (d *dashboard) nextSelection() (config.Token, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.queue) == 0 {
		return config.Token{}, false
	}
	t := d.queue[0]
	d.queue = d.queue[1:]
	return t, true
}

// run refreshes once, then on every selection, tick and the optional warmup
// timer until ctx is done. Pending selections are served before ticks.
func (d *dashboard) run(ctx context.Context, ticks <-chan time.Time) {
	d.refresh(ctx)

	var warmup <-chan time.Time
	if d.warmup > 0 {
		t := time.NewTimer(d.warmup)
		defer t.Stop()
		warmup = t.C
	}

	for {
		d.serveSelections(ctx)

		select {
		case <-ctx.Done():
			return
		case <-d.wake:
		case <-warmup:
			warmup = nil
			d.serveSelections(ctx)
			d.refresh(ctx)
		case <-ticks:
			d.serveSelections(ctx)
			d.refresh(ctx)
		}
	}
}

// serveSelections refreshes once for each queued selection. A tick that
// races a selection is handled after it.
func (d *dashboard) serveSelections(ctx context.Context) {
	for ctx.Err() == nil {
		t, ok := d.nextSelection()
		if !ok {
			return
		}
		d.switchTo(ctx, t)
	}
}

func (d *dashboard) switchTo(ctx context.Context, t config.Token) {
	d.logger.Info("Change token", zap.String("symbol", t.Symbol))
	d.current = t
	d.refresh(ctx)
}

func (d *dashboard) refresh(ctx context.Context) {
	q := d.src.Quote(ctx, d.current.Symbol)
	d.view.showQuote(d.current, q)
}

// quoteText is the rendered form of a quote.
type quoteText struct {
	Name   string
	Price  string
	Change string
	Rising bool
}

func renderQuote(token config.Token, q api.Quote) quoteText {
	return quoteText{
		Name:   token.Label(),
		Price:  "Price: " + api.FormatPrice(q.Price) + " $",
		Change: api.FormatChange(q.Change24h),
		Rising: q.Rising(),
	}
}

const dateFormat = "02-01-2006"
const timeFormat = "15:04:05"

func clockText(t time.Time) (date, clock string) {
	return t.Format(dateFormat), t.Format(timeFormat)
}
