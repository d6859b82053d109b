package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/pbis-gateway/internal/models"
	"github.com/noah-isme/pbis-gateway/internal/repository"
	appErrors "github.com/noah-isme/pbis-gateway/pkg/errors"
)

const subscriberBuffer = 4

type subscriberGauge interface {
	SubscriberDelta(delta int)
}

// Broadcaster fans date range changes out to subscribers of the same session.
type Broadcaster struct {
	mu     sync.Mutex
	subs   map[string]map[uint64]chan models.DateRange
	nextID uint64
	gauge  subscriberGauge
	logger *zap.Logger
}

// NewBroadcaster constructs an empty Broadcaster.
func NewBroadcaster(gauge subscriberGauge, logger *zap.Logger) *Broadcaster {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Broadcaster{subs: make(map[string]map[uint64]chan models.DateRange), gauge: gauge, logger: logger}
}

// Subscribe registers interest in sessionID. cancel releases the subscription
// and closes the channel; it is safe to call more than once.
func (b *Broadcaster) Subscribe(sessionID string) (<-chan models.DateRange, func()) {
	ch := make(chan models.DateRange, subscriberBuffer)

	b.mu.Lock()
	b.nextID++
	id := b.nextID
	if b.subs[sessionID] == nil {
		b.subs[sessionID] = make(map[uint64]chan models.DateRange)
	}
	b.subs[sessionID][id] = ch
	b.mu.Unlock()
	b.delta(1)

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			if set, ok := b.subs[sessionID]; ok {
				delete(set, id)
				if len(set) == 0 {
					delete(b.subs, sessionID)
				}
			}
			close(ch)
			b.mu.Unlock()
			b.delta(-1)
		})
	}
	return ch, cancel
}

// Publish delivers r to every subscriber of sessionID. A subscriber whose
// buffer is full misses the event.
func (b *Broadcaster) Publish(sessionID string, r models.DateRange) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	delivered := 0
	for id, ch := range b.subs[sessionID] {
		select {
		case ch <- r:
			delivered++
		default:
			b.logger.Debug("date range subscriber lagging, event dropped",
				zap.String("session_id", sessionID), zap.Uint64("subscriber", id))
		}
	}
	return delivered
}

// Subscribers counts live subscriptions for sessionID.
func (b *Broadcaster) Subscribers(sessionID string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs[sessionID])
}

func (b *Broadcaster) delta(d int) {
	if b.gauge != nil {
		b.gauge.SubscriberDelta(d)
	}
}

// DateRangeService resolves and persists the reporting window of a session.
type DateRangeService struct {
	store       repository.SessionStore
	broadcaster *Broadcaster
	logger      *zap.Logger
	defaultDays int
	now         func() time.Time
}

// NewDateRangeService constructs a DateRangeService instance.
func NewDateRangeService(store repository.SessionStore, broadcaster *Broadcaster, logger *zap.Logger, defaultDays int) *DateRangeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if broadcaster == nil {
		broadcaster = NewBroadcaster(nil, logger)
	}
	if defaultDays <= 0 {
		defaultDays = 28
	}
	return &DateRangeService{store: store, broadcaster: broadcaster, logger: logger, defaultDays: defaultDays, now: time.Now}
}

// Broadcaster exposes the subscription hub for the event stream.
func (s *DateRangeService) Broadcaster() *Broadcaster {
	return s.broadcaster
}

// Resolve picks the window for a request: an explicit pair in the query wins
// and is persisted, then the session's stored pair, then the trailing default.
func (s *DateRangeService) Resolve(ctx context.Context, sessionID string, query models.DateRange) (models.ResolvedDateRange, error) {
	if query.Start != "" && query.End != "" {
		if err := query.Validate(); err != nil {
			return models.ResolvedDateRange{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
		}
		if err := s.persist(ctx, sessionID, query); err != nil {
			return models.ResolvedDateRange{}, err
		}
		return models.ResolvedDateRange{DateRange: query, Source: models.DateRangeFromQuery}, nil
	}

	stored, err := s.store.GetDateRange(ctx, sessionID)
	switch {
	case err == nil && stored != nil:
		return models.ResolvedDateRange{DateRange: *stored, Source: models.DateRangeFromSession}, nil
	case err != nil && !errors.Is(err, appErrors.ErrCacheMiss):
		s.logger.Warn("failed to read stored date range", zap.String("session_id", sessionID), zap.Error(err))
	}

	return models.ResolvedDateRange{DateRange: s.Default(), Source: models.DateRangeFromDefault}, nil
}

// Set validates and persists r, then notifies the session's subscribers.
func (s *DateRangeService) Set(ctx context.Context, sessionID string, r models.DateRange) (models.DateRange, error) {
	if err := r.Validate(); err != nil {
		return models.DateRange{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
	}
	if err := s.persist(ctx, sessionID, r); err != nil {
		return models.DateRange{}, err
	}
	s.broadcaster.Publish(sessionID, r)
	return r, nil
}

// Default is the trailing window ending today.
func (s *DateRangeService) Default() models.DateRange {
	today := s.now()
	return models.DateRange{
		Start: today.AddDate(0, 0, -s.defaultDays).Format(models.DateLayout),
		End:   today.Format(models.DateLayout),
	}
}

func (s *DateRangeService) persist(ctx context.Context, sessionID string, r models.DateRange) error {
	if err := s.store.SaveDateRange(ctx, sessionID, r); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist date range")
	}
	return nil
}
