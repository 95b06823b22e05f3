package poller

import (
	"context"
	"log"
	"sync"
	"time"

	"go-carewatch/notify"
	"go-carewatch/types"
	"go-carewatch/weather"
)

// Fetcher abstracts the weather/AQI provider client.
type Fetcher interface {
	Fetch(ctx context.Context, location string) (types.EnvironmentalSnapshot, error)
}

// MirrorFunc receives each newly derived notification for best-effort
// persistence. Called outside any poller lock.
type MirrorFunc func(types.Notification)

// Poller owns snapshot production. Ticks for a location that is already
// being polled are dropped, not queued, so snapshots are never applied out
// of order; after Stop no in-flight fetch result is applied.
type Poller struct {
	fetcher  Fetcher
	notifier *notify.Store
	mirror   MirrorFunc
	now      func() time.Time

	mu       sync.Mutex
	inFlight map[string]bool
	latest   map[string]types.EnvironmentalSnapshot
	stopped  bool
}

func New(fetcher Fetcher, notifier *notify.Store, mirror MirrorFunc) *Poller {
	return &Poller{
		fetcher:  fetcher,
		notifier: notifier,
		mirror:   mirror,
		now:      time.Now,
		inFlight: make(map[string]bool),
		latest:   make(map[string]types.EnvironmentalSnapshot),
	}
}

// PollLocation runs one poll cycle for a location: fetch, substitute the
// offline fallback on any provider failure, apply the snapshot, derive
// notifications.
func (p *Poller) PollLocation(ctx context.Context, location string) {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	if p.inFlight[location] {
		p.mu.Unlock()
		log.Printf("Dropping poll tick for %s: previous poll still in flight", location)
		return
	}
	p.inFlight[location] = true
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		delete(p.inFlight, location)
		p.mu.Unlock()
	}()

	snapshot, err := p.fetcher.Fetch(ctx, location)
	if err != nil {
		log.Printf("Weather fetch failed for %s: %v. Using offline fallback snapshot.", location, err)
		snapshot = weather.FallbackSnapshot(location, p.now())
	}

	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.latest[location] = snapshot
	p.mu.Unlock()

	if n := p.notifier.Derive(snapshot); n != nil {
		log.Printf("Derived %s notification for %s: %s", n.Severity, n.Location, n.Title)
		if p.mirror != nil {
			p.mirror(*n)
		}
	}
}

// Latest returns the most recently applied snapshot for a location.
func (p *Poller) Latest(location string) (types.EnvironmentalSnapshot, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	snapshot, ok := p.latest[location]
	return snapshot, ok
}

// Stop prevents any future snapshot application, including from fetches
// already in flight.
func (p *Poller) Stop() {
	p.mu.Lock()
	p.stopped = true
	p.mu.Unlock()
}
