// Package kafka carries document ingestion tasks between the upload path
// and the background processor.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/shankar1om/AI-Powered-Customer-Support-Chat-Application/internal/config"
	"github.com/shankar1om/AI-Powered-Customer-Support-Chat-Application/pkg/database"
	"github.com/shankar1om/AI-Powered-Customer-Support-Chat-Application/pkg/log"
	"github.com/shankar1om/AI-Powered-Customer-Support-Chat-Application/pkg/tasks"
)

// TaskProcessor is implemented by anything that can process an ingestion
// task. It decouples the consumer from the concrete pipeline. Abandon is
// called once a task has exhausted its retries.
type TaskProcessor interface {
	Process(ctx context.Context, task tasks.DocumentProcessingTask) error
	Abandon(ctx context.Context, task tasks.DocumentProcessingTask)
}

var producer *kafka.Writer

// maxAttempts caps per-document retries before the offset is committed and
// the task abandoned.
const maxAttempts = 3

// InitProducer initializes the Kafka producer.
func InitProducer(cfg config.KafkaConfig) {
	producer = &kafka.Writer{
		Addr:     kafka.TCP(cfg.Brokers),
		Topic:    cfg.Topic,
		Balancer: &kafka.LeastBytes{},
	}
	log.Info("Kafka producer initialized successfully")
}

// ProduceDocumentTask enqueues a document processing task.
func ProduceDocumentTask(task tasks.DocumentProcessingTask) error {
	taskBytes, err := json.Marshal(task)
	if err != nil {
		return err
	}

	return producer.WriteMessages(context.Background(),
		kafka.Message{Value: taskBytes},
	)
}

// StartConsumer runs the ingestion consumer loop. Failures are counted in
// Redis per document; after maxAttempts the offset is committed so a broken
// file cannot block the queue.
func StartConsumer(cfg config.KafkaConfig, processor TaskProcessor) {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  []string{cfg.Brokers},
		Topic:    cfg.Topic,
		GroupID:  "support-chat-ingest",
		MinBytes: 10e3, // 10KB
		MaxBytes: 10e6, // 10MB
	})

	log.Infof("Kafka consumer started, listening on topic '%s'", cfg.Topic)

	for {
		m, err := r.FetchMessage(context.Background())
		if err != nil {
			log.Error("failed to read message from Kafka", err)
			break
		}

		var task tasks.DocumentProcessingTask
		if err := json.Unmarshal(m.Value, &task); err != nil {
			log.Errorf("failed to unmarshal Kafka message: %v, value: %s", err, string(m.Value))
			// Malformed message, commit to avoid blocking the queue.
			if err := r.CommitMessages(context.Background(), m); err != nil {
				log.Errorf("failed to commit malformed message: %v", err)
			}
			continue
		}

		log.Infof("processing document task: id=%d, file=%s", task.DocumentID, task.FileName)
		if err := processor.Process(context.Background(), task); err != nil {
			log.Errorf("document task failed: id=%d, error: %v", task.DocumentID, err)
			attemptsKey := fmt.Sprintf("ingest:attempts:%d", task.DocumentID)
			attempts, incErr := database.RDB.Incr(context.Background(), attemptsKey).Result()
			if incErr != nil {
				// Redis unavailable: leave the offset uncommitted and let
				// Kafka redeliver.
				continue
			}
			_ = database.RDB.Expire(context.Background(), attemptsKey, 24*time.Hour).Err()
			if attempts >= maxAttempts {
				log.Errorf("document task abandoned after %d attempts: id=%d", attempts, task.DocumentID)
				processor.Abandon(context.Background(), task)
				if err := r.CommitMessages(context.Background(), m); err != nil {
					log.Errorf("failed to commit Kafka offset: %v", err)
				}
			}
		} else {
			log.Infof("document task completed: id=%d", task.DocumentID)
			_ = database.RDB.Del(context.Background(), fmt.Sprintf("ingest:attempts:%d", task.DocumentID)).Err()
			if err := r.CommitMessages(context.Background(), m); err != nil {
				log.Errorf("failed to commit Kafka offset: %v", err)
			}
		}
	}

	if err := r.Close(); err != nil {
		log.Fatalf("failed to close Kafka consumer: %v", err)
	}
}
