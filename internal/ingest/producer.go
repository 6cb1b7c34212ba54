package ingest

import (
	"context"
	"fmt"
	"log"
	"time"

	"practipulse/internal/analytics"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
)

// ReportProducer publishes report-generated events. It satisfies the
// analytics.ReportPublisher interface.
type ReportProducer interface {
	PublishReportGenerated(ctx context.Context, report *analytics.PeriodReport) error
	Close() error
	HealthCheck(ctx context.Context) error
}

// KafkaProducerConfig contains configuration for the Kafka report producer
type KafkaProducerConfig struct {
	Brokers          []string
	ReportTopic      string
	RetryMax         int
	TimeoutMs        int
	RequiredAcks     sarama.RequiredAcks
	CompressionType  sarama.CompressionCodec
	IdempotentWrites bool
	MaxMessageBytes  int
}

// DefaultKafkaProducerConfig returns a default producer configuration
func DefaultKafkaProducerConfig() *KafkaProducerConfig {
	return &KafkaProducerConfig{
		Brokers:          []string{"localhost:9092"},
		ReportTopic:      "analytics-reports",
		RetryMax:         3,
		TimeoutMs:        10000, // 10 seconds
		RequiredAcks:     sarama.WaitForAll,
		CompressionType:  sarama.CompressionSnappy,
		IdempotentWrites: true,
		MaxMessageBytes:  1000000, // 1MB
	}
}

// KafkaReportProducer handles publishing report events to Kafka
type KafkaReportProducer struct {
	producer sarama.SyncProducer
	config   *KafkaProducerConfig
}

// NewKafkaReportProducer creates a new Kafka report producer
func NewKafkaReportProducer(config *KafkaProducerConfig) (ReportProducer, error) {
	saramaConfig := sarama.NewConfig()

	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	saramaConfig.Producer.RequiredAcks = config.RequiredAcks
	saramaConfig.Producer.Compression = config.CompressionType
	saramaConfig.Producer.Retry.Max = config.RetryMax
	saramaConfig.Producer.Timeout = time.Duration(config.TimeoutMs) * time.Millisecond
	saramaConfig.Producer.Idempotent = config.IdempotentWrites
	saramaConfig.Producer.MaxMessageBytes = config.MaxMessageBytes

	if config.IdempotentWrites {
		saramaConfig.Net.MaxOpenRequests = 1
	}

	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner

	producer, err := sarama.NewSyncProducer(config.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	log.Printf("📤 Kafka report producer created successfully")
	return &KafkaReportProducer{producer: producer, config: config}, nil
}

// PublishReportGenerated publishes a report summary for a finished period
func (krp *KafkaReportProducer) PublishReportGenerated(ctx context.Context, report *analytics.PeriodReport) error {
	event := &ReportEvent{
		ID:          uuid.New(),
		PeriodLabel: report.Metrics.Period.Label,
		StartDate:   report.Metrics.Period.Start.Format("2006-01-02"),
		EndDate:     report.Metrics.Period.End.Format("2006-01-02"),
		Leads:       report.Metrics.Leads,
		Patients:    report.Metrics.Patients,
		Production:  report.Metrics.Production,
		NetRevenue:  report.Metrics.NetProduction,
		GeneratedAt: time.Now(),
	}
	for _, loc := range report.Locations {
		event.LocationIDs = append(event.LocationIDs, loc.Location)
	}

	messageBytes, err := event.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal report event: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic:     krp.config.ReportTopic,
		Key:       sarama.StringEncoder(event.GetPartitionKey()),
		Value:     sarama.ByteEncoder(messageBytes),
		Headers:   krp.createHeaders(event),
		Timestamp: event.GeneratedAt,
	}

	partition, offset, err := krp.producer.SendMessage(message)
	if err != nil {
		return fmt.Errorf("failed to send report event to Kafka: %w", err)
	}

	log.Printf("📤 Report event published to Kafka - Topic: %s, Partition: %d, Offset: %d, Period: %s..%s",
		krp.config.ReportTopic, partition, offset, event.StartDate, event.EndDate)

	return nil
}

// createHeaders creates Kafka headers for report events
func (krp *KafkaReportProducer) createHeaders(event *ReportEvent) []sarama.RecordHeader {
	return []sarama.RecordHeader{
		{Key: []byte("report_id"), Value: []byte(event.ID.String())},
		{Key: []byte("start_date"), Value: []byte(event.StartDate)},
		{Key: []byte("end_date"), Value: []byte(event.EndDate)},
		{Key: []byte("version"), Value: []byte("1.0")},
		{Key: []byte("producer"), Value: []byte("practipulse-analytics")},
		{Key: []byte("generated_at"), Value: []byte(event.GeneratedAt.Format(time.RFC3339))},
	}
}

// Close closes the Kafka producer
func (krp *KafkaReportProducer) Close() error {
	if krp.producer != nil {
		if err := krp.producer.Close(); err != nil {
			return fmt.Errorf("failed to close Kafka producer: %w", err)
		}
		log.Printf("📤 Kafka report producer closed")
	}
	return nil
}

// HealthCheck performs a health check on the Kafka producer
func (krp *KafkaReportProducer) HealthCheck(ctx context.Context) error {
	if krp.producer == nil {
		return fmt.Errorf("health check failed - producer is nil")
	}
	if krp.config.ReportTopic == "" {
		return fmt.Errorf("health check failed - report topic not configured")
	}
	return nil
}
