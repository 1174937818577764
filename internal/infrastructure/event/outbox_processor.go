package event

import (
	"context"
	"time"

	"github.com/erp/saleflow/internal/domain/shared"
	"github.com/erp/saleflow/internal/infrastructure/config"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OutboxProcessorConfig tunes the relay loop
type OutboxProcessorConfig struct {
	BatchSize        int
	PollInterval     time.Duration
	CleanupEnabled   bool
	CleanupRetention time.Duration
	CleanupInterval  time.Duration
}

func DefaultOutboxProcessorConfig() OutboxProcessorConfig {
	return OutboxProcessorConfig{
		BatchSize:        100,
		PollInterval:     5 * time.Second,
		CleanupEnabled:   true,
		CleanupRetention: 7 * 24 * time.Hour,
		CleanupInterval:  time.Hour,
	}
}

// OutboxProcessorConfigFrom applies the non-zero [event] settings over the defaults
func OutboxProcessorConfigFrom(cfg config.EventConfig) OutboxProcessorConfig {
	out := DefaultOutboxProcessorConfig()
	if cfg.BatchSize > 0 {
		out.BatchSize = cfg.BatchSize
	}
	if cfg.PollInterval > 0 {
		out.PollInterval = cfg.PollInterval
	}
	if cfg.CleanupRetention > 0 {
		out.CleanupRetention = cfg.CleanupRetention
	}
	return out
}

// OutboxProcessor moves committed outbox entries onto the event bus.
// Entries are claimed before dispatch so two processors never deliver the
// same entry; failed deliveries back off until the entry is dead.
type OutboxProcessor struct {
	repo       shared.OutboxRepository
	bus        shared.EventBus
	serializer *EventSerializer
	config     OutboxProcessorConfig
	logger     *zap.Logger

	stop chan struct{}
	done chan struct{}
}

func NewOutboxProcessor(
	repo shared.OutboxRepository,
	bus shared.EventBus,
	serializer *EventSerializer,
	cfg OutboxProcessorConfig,
	logger *zap.Logger,
) *OutboxProcessor {
	return &OutboxProcessor{
		repo:       repo,
		bus:        bus,
		serializer: serializer,
		config:     cfg,
		logger:     logger,
	}
}

// Start launches the relay goroutine. It runs until Stop or until ctx is done.
func (p *OutboxProcessor) Start(ctx context.Context) error {
	p.stop = make(chan struct{})
	p.done = make(chan struct{})
	go p.run(ctx)

	p.logger.Info("Outbox processor started",
		zap.Int("batch_size", p.config.BatchSize),
		zap.Duration("poll_interval", p.config.PollInterval),
		zap.Bool("cleanup", p.config.CleanupEnabled),
	)
	return nil
}

// Stop signals the relay goroutine and waits for the batch in flight
func (p *OutboxProcessor) Stop(ctx context.Context) error {
	if p.stop == nil {
		return nil
	}
	close(p.stop)
	select {
	case <-p.done:
		p.logger.Info("Outbox processor stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *OutboxProcessor) run(ctx context.Context) {
	defer close(p.done)

	poll := time.NewTicker(p.config.PollInterval)
	defer poll.Stop()

	var cleanupC <-chan time.Time
	if p.config.CleanupEnabled {
		cleanup := time.NewTicker(p.config.CleanupInterval)
		defer cleanup.Stop()
		cleanupC = cleanup.C
	}

	for {
		select {
		case <-p.stop:
			return
		case <-ctx.Done():
			return
		case <-poll.C:
			p.processBatch(ctx)
		case <-cleanupC:
			p.cleanup(ctx)
		}
	}
}

// processBatch relays new entries first, then failed entries whose backoff elapsed
func (p *OutboxProcessor) processBatch(ctx context.Context) {
	fetchers := []struct {
		name  string
		fetch func() ([]*shared.OutboxEntry, error)
	}{
		{"pending", func() ([]*shared.OutboxEntry, error) { return p.repo.FindPending(ctx, p.config.BatchSize) }},
		{"retryable", func() ([]*shared.OutboxEntry, error) {
			return p.repo.FindRetryable(ctx, time.Now(), p.config.BatchSize)
		}},
	}
	for _, f := range fetchers {
		entries, err := f.fetch()
		if err != nil {
			p.logger.Error("Outbox fetch failed", zap.String("kind", f.name), zap.Error(err))
			return
		}
		p.relay(ctx, entries)
	}
}

func (p *OutboxProcessor) relay(ctx context.Context, entries []*shared.OutboxEntry) {
	if len(entries) == 0 {
		return
	}
	ids := make([]uuid.UUID, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.ID)
	}
	claimed, err := p.repo.MarkProcessing(ctx, ids)
	if err != nil {
		p.logger.Error("Outbox claim failed", zap.Int("entries", len(ids)), zap.Error(err))
		return
	}

	for _, entry := range claimed {
		fields := []zap.Field{
			zap.String("event_id", entry.EventID.String()),
			zap.String("event_type", entry.EventType),
		}
		if err := p.deliver(ctx, entry); err != nil {
			entry.MarkFailed(err.Error())
			if entry.IsDead() {
				p.logger.Warn("Outbox entry is dead", append(fields,
					zap.String("aggregate_id", entry.AggregateID.String()),
					zap.Int("retry_count", entry.RetryCount),
					zap.Error(err))...)
			} else {
				p.logger.Error("Outbox delivery failed", append(fields, zap.Error(err))...)
			}
		} else {
			entry.MarkSent()
			p.logger.Debug("Outbox entry delivered", fields...)
		}
		if err := p.repo.Update(ctx, entry); err != nil {
			p.logger.Error("Outbox entry update failed", append(fields, zap.Error(err))...)
		}
	}
}

func (p *OutboxProcessor) deliver(ctx context.Context, entry *shared.OutboxEntry) error {
	event, err := p.serializer.Deserialize(entry.EventType, entry.Payload)
	if err != nil {
		return err
	}
	return p.bus.Publish(ctx, event)
}

// cleanup drops sent entries past the retention window
func (p *OutboxProcessor) cleanup(ctx context.Context) {
	cutoff := time.Now().Add(-p.config.CleanupRetention)
	deleted, err := p.repo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		p.logger.Error("Outbox cleanup failed", zap.Error(err))
		return
	}
	if deleted > 0 {
		p.logger.Info("Outbox cleaned up", zap.Int64("deleted", deleted), zap.Time("cutoff", cutoff))
	}
}
