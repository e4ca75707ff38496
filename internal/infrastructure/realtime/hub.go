// Package realtime fans out full collection snapshots to stream subscribers.
package realtime

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"laundry_desk/internal/usecase/interfaces"
)

var ErrUnknownCollection = errors.New("unknown collection")

// Snapshot is the full content of one collection at Version. Versions grow
// per collection; subscribers may skip versions.
type Snapshot struct {
	Collection interfaces.Collection `json:"collection"`
	Version    uint64                `json:"version"`
	At         time.Time             `json:"at"`
	Data       any                   `json:"data"`
}

// Loader reads the current content of a collection.
type Loader func(ctx context.Context) (any, error)

type subscriber struct {
	ch chan Snapshot
}

// Hub keeps the latest snapshot per collection and pushes updates to
// subscribers. A slow subscriber only ever holds the newest snapshot.
type Hub struct {
	mu        sync.Mutex
	loaders   map[interfaces.Collection]Loader
	subs      map[interfaces.Collection]map[*subscriber]struct{}
	latest    map[interfaces.Collection]Snapshot
	version   map[interfaces.Collection]uint64
	ticket    map[interfaces.Collection]uint64
	published map[interfaces.Collection]uint64
	closed    bool

	onSubscribers func(collection string, n int)
	log           *zap.Logger
	now           func() time.Time
}

var _ interfaces.ISnapshotPublisher = (*Hub)(nil)

type Option func(*Hub)

// WithSubscriberGauge reports subscriber counts, e.g. to metrics.SetSubscribers.
func WithSubscriberGauge(fn func(collection string, n int)) Option {
	return func(h *Hub) { h.onSubscribers = fn }
}

func NewHub(logger *zap.Logger, opts ...Option) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &Hub{
		loaders:   make(map[interfaces.Collection]Loader),
		subs:      make(map[interfaces.Collection]map[*subscriber]struct{}),
		latest:    make(map[interfaces.Collection]Snapshot),
		version:   make(map[interfaces.Collection]uint64),
		ticket:    make(map[interfaces.Collection]uint64),
		published: make(map[interfaces.Collection]uint64),
		log:       logger.Named("realtime"),
		now:       func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register installs the loader used by Notify and Current for collection.
func (h *Hub) Register(collection interfaces.Collection, loader Loader) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.loaders[collection] = loader
}

// Known reports whether collection has a loader.
func (h *Hub) Known(collection interfaces.Collection) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ok := h.loaders[collection]
	return ok
}

// Subscribe returns a channel of snapshots for collection and a cancel
// function. The channel is closed by cancel or Close.
func (h *Hub) Subscribe(collection interfaces.Collection) (<-chan Snapshot, func()) {
	s := &subscriber{ch: make(chan Snapshot, 1)}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		close(s.ch)
		return s.ch, func() {}
	}
	if h.subs[collection] == nil {
		h.subs[collection] = make(map[*subscriber]struct{})
	}
	h.subs[collection][s] = struct{}{}
	n := len(h.subs[collection])
	h.mu.Unlock()
	h.reportSubscribers(collection, n)

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			_, ok := h.subs[collection][s]
			if ok {
				delete(h.subs[collection], s)
				close(s.ch)
			}
			n := len(h.subs[collection])
			h.mu.Unlock()
			if ok {
				h.reportSubscribers(collection, n)
			}
		})
	}
	return s.ch, cancel
}

// Current returns the cached snapshot of collection, loading it on a miss.
func (h *Hub) Current(ctx context.Context, collection interfaces.Collection) (Snapshot, error) {
	h.mu.Lock()
	if snap, ok := h.latest[collection]; ok {
		h.mu.Unlock()
		return snap, nil
	}
	h.mu.Unlock()

	snap, err := h.refresh(ctx, collection)
	if err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

// Notify reloads every given collection and broadcasts the result. Load
// failures are logged; subscribers keep their previous snapshot.
func (h *Hub) Notify(ctx context.Context, collections ...interfaces.Collection) {
	for _, col := range collections {
		h.mu.Lock()
		idle := len(h.subs[col]) == 0
		if idle {
			// Nobody is listening; drop the cache so the next reader reloads
			// and discard any load still in flight.
			delete(h.latest, col)
			h.ticket[col]++
			h.published[col] = h.ticket[col]
		}
		h.mu.Unlock()
		if idle {
			continue
		}
		if _, err := h.refresh(ctx, col); err != nil {
			h.log.Warn("snapshot reload failed", zap.String("collection", string(col)), zap.Error(err))
		}
	}
}

// refresh loads collection and publishes it unless a newer load already
// published. A discarded load with nothing cached is retried.
func (h *Hub) refresh(ctx context.Context, collection interfaces.Collection) (Snapshot, error) {
	for {
		h.mu.Lock()
		loader, ok := h.loaders[collection]
		if !ok {
			h.mu.Unlock()
			return Snapshot{}, ErrUnknownCollection
		}
		h.ticket[collection]++
		ticket := h.ticket[collection]
		h.mu.Unlock()

		data, err := loader(ctx)
		if err != nil {
			return Snapshot{}, err
		}

		h.mu.Lock()
		if ticket >= h.published[collection] {
			h.published[collection] = ticket
			snap := h.publishLocked(collection, data)
			h.mu.Unlock()
			return snap, nil
		}
		snap, cached := h.latest[collection]
		h.mu.Unlock()
		if cached {
			return snap, nil
		}
		if err := ctx.Err(); err != nil {
			return Snapshot{}, err
		}
	}
}

// Publish broadcasts data as the new content of collection.
func (h *Hub) Publish(collection interfaces.Collection, data any) Snapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.publishLocked(collection, data)
}

func (h *Hub) publishLocked(collection interfaces.Collection, data any) Snapshot {
	h.version[collection]++
	snap := Snapshot{
		Collection: collection,
		Version:    h.version[collection],
		At:         h.now(),
		Data:       data,
	}
	h.latest[collection] = snap
	if h.closed {
		return snap
	}

	for s := range h.subs[collection] {
		select {
		case s.ch <- snap:
		default:
			// Replace the stale pending snapshot.
			select {
			case <-s.ch:
			default:
			}
			select {
			case s.ch <- snap:
			default:
			}
		}
	}
	return snap
}

// Close ends every subscription. Later subscriptions get a closed channel.
func (h *Hub) Close() {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.closed = true
	cols := make([]interfaces.Collection, 0, len(h.subs))
	for col, subs := range h.subs {
		for s := range subs {
			close(s.ch)
		}
		delete(h.subs, col)
		cols = append(cols, col)
	}
	h.mu.Unlock()

	for _, col := range cols {
		h.reportSubscribers(col, 0)
	}
}

func (h *Hub) reportSubscribers(collection interfaces.Collection, n int) {
	if h.onSubscribers != nil {
		h.onSubscribers(string(collection), n)
	}
}
