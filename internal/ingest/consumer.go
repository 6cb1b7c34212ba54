package ingest

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/IBM/sarama"
)

// SyncConsumer consumes record sync events from the upstream practice system.
type SyncConsumer interface {
	StartConsumers(ctx context.Context, numWorkers int) error
	Stop() error
	HealthCheck(ctx context.Context) error
}

type ConsumerConfig struct {
	Brokers           []string
	GroupID           string
	Topics            []string
	SessionTimeoutMs  int
	HeartbeatMs       int
	RetryBackoffMs    int
	MaxProcessingTime time.Duration
	AutoCommit        bool
	OffsetOldest      bool
}

func DefaultConsumerConfig() *ConsumerConfig {
	return &ConsumerConfig{
		Brokers:           []string{"localhost:9092"},
		GroupID:           "practipulse-sync-workers",
		Topics:            []string{"record-sync"},
		SessionTimeoutMs:  30000,
		HeartbeatMs:       3000,
		RetryBackoffMs:    100,
		MaxProcessingTime: 5 * time.Minute,
		AutoCommit:        true,
		// Sync events are idempotent upserts, so replaying from the oldest
		// offset after a rebalance is safe.
		OffsetOldest: true,
	}
}

type KafkaSyncConsumer struct {
	consumerGroup sarama.ConsumerGroup
	config        *ConsumerConfig
	syncService   Service
	topics        []string
	ctx           context.Context
	cancel        context.CancelFunc
}

func NewKafkaSyncConsumer(config *ConsumerConfig, syncService Service) (SyncConsumer, error) {
	saramaConfig := sarama.NewConfig()

	saramaConfig.Consumer.Group.Session.Timeout = time.Duration(config.SessionTimeoutMs) * time.Millisecond
	saramaConfig.Consumer.Group.Heartbeat.Interval = time.Duration(config.HeartbeatMs) * time.Millisecond
	saramaConfig.Consumer.Retry.Backoff = time.Duration(config.RetryBackoffMs) * time.Millisecond
	saramaConfig.Consumer.MaxProcessingTime = config.MaxProcessingTime
	saramaConfig.Consumer.Return.Errors = true

	if config.OffsetOldest {
		saramaConfig.Consumer.Offsets.Initial = sarama.OffsetOldest
	} else {
		saramaConfig.Consumer.Offsets.Initial = sarama.OffsetNewest
	}

	if config.AutoCommit {
		saramaConfig.Consumer.Offsets.AutoCommit.Enable = true
		saramaConfig.Consumer.Offsets.AutoCommit.Interval = 1 * time.Second
	}

	consumerGroup, err := sarama.NewConsumerGroup(config.Brokers, config.GroupID, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer group: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &KafkaSyncConsumer{
		consumerGroup: consumerGroup,
		config:        config,
		syncService:   syncService,
		topics:        config.Topics,
		ctx:           ctx,
		cancel:        cancel,
	}, nil
}

func (ksc *KafkaSyncConsumer) StartConsumers(ctx context.Context, numWorkers int) error {
	log.Printf("📥 Starting %d sync consumer workers for topics: %v", numWorkers, ksc.topics)

	go ksc.handleErrors()

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			ksc.runWorker(ctx, workerID)
		}(i)
	}

	log.Printf("📥 All %d sync consumer workers started", numWorkers)
	return nil
}

func (ksc *KafkaSyncConsumer) runWorker(ctx context.Context, workerID int) {
	handler := &syncGroupHandler{
		workerID:    workerID,
		syncService: ksc.syncService,
	}

	for {
		select {
		case <-ctx.Done():
			log.Printf("📥 Worker %d shutting down", workerID)
			return
		default:
			if err := ksc.consumerGroup.Consume(ctx, ksc.topics, handler); err != nil {
				log.Printf("📥 Worker %d error consuming messages: %v", workerID, err)
				time.Sleep(time.Second)
			}
		}
	}
}

func (ksc *KafkaSyncConsumer) handleErrors() {
	for err := range ksc.consumerGroup.Errors() {
		log.Printf("📥 Consumer group error: %v", err)
	}
}

func (ksc *KafkaSyncConsumer) Stop() error {
	log.Println("📥 Stopping sync consumer...")
	ksc.cancel()

	if err := ksc.consumerGroup.Close(); err != nil {
		return fmt.Errorf("failed to close consumer group: %w", err)
	}

	log.Println("📥 Sync consumer stopped")
	return nil
}

func (ksc *KafkaSyncConsumer) HealthCheck(ctx context.Context) error {
	select {
	case <-ksc.ctx.Done():
		return fmt.Errorf("consumer context is cancelled")
	default:
		if ksc.syncService == nil {
			return fmt.Errorf("sync service not configured")
		}
		return nil
	}
}

type syncGroupHandler struct {
	workerID    int
	syncService Service
}

func (h *syncGroupHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Printf("📥 Worker %d: Consumer group session started", h.workerID)
	return nil
}

func (h *syncGroupHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Printf("📥 Worker %d: Consumer group session ended", h.workerID)
	return nil
}

func (h *syncGroupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message := <-claim.Messages():
			if message == nil {
				return nil
			}

			if err := h.processMessage(session.Context(), message); err != nil {
				// Malformed events are logged and skipped; the upstream
				// system re-sends full snapshots periodically.
				log.Printf("📥 Worker %d: Error processing message at offset %d: %v", h.workerID, message.Offset, err)
			}
			session.MarkMessage(message, "")

		case <-session.Context().Done():
			return nil
		}
	}
}

func (h *syncGroupHandler) processMessage(ctx context.Context, message *sarama.ConsumerMessage) error {
	event, err := SyncEventFromJSON(message.Value)
	if err != nil {
		return err
	}

	if err := event.Validate(); err != nil {
		return err
	}

	return h.syncService.Apply(ctx, event)
}
