package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/salonhq/scheduler-api/internal/handoff"
	"github.com/salonhq/scheduler-api/internal/model"
	"github.com/salonhq/scheduler-api/pkg/logger"
	"github.com/salonhq/scheduler-api/pkg/messaging"
	"github.com/salonhq/scheduler-api/pkg/metrics"
)

type HandoffProcessorConfig struct {
	PollTimeout time.Duration
	WebhookURL  string
	HTTPTimeout time.Duration
}

// HandoffProcessor drains the checkout queue and forwards each payload to the
// external checkout collaborator. The scheduler side is fire and forget; this
// worker is the only component that ever looks at the queue.
type HandoffProcessor struct {
	broker  messaging.Broker
	config  HandoffProcessorConfig
	client  *http.Client
	logger  *logger.Logger
	metrics *metrics.Metrics
}

func NewHandoffProcessor(broker messaging.Broker, config HandoffProcessorConfig, log *logger.Logger, m *metrics.Metrics) *HandoffProcessor {
	if config.PollTimeout <= 0 {
		config.PollTimeout = 5 * time.Second
	}
	if config.HTTPTimeout <= 0 {
		config.HTTPTimeout = 10 * time.Second
	}
	return &HandoffProcessor{
		broker:  broker,
		config:  config,
		client:  &http.Client{Timeout: config.HTTPTimeout},
		logger:  log,
		metrics: m,
	}
}

func (p *HandoffProcessor) Start(ctx context.Context) {
	p.logger.Info("Starting handoff processor")

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("Shutting down handoff processor")
			return
		default:
			payload, err := p.broker.Dequeue(ctx, handoff.QueueName, p.config.PollTimeout)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				p.logger.Error(err, "Failed to dequeue handoff")
				time.Sleep(time.Second)
				continue
			}
			if payload == nil {
				continue
			}
			if err := p.process(ctx, payload); err != nil {
				p.logger.Error(err, "Failed to process handoff")
				if p.metrics != nil {
					p.metrics.HandoffsFailed.Inc()
				}
				continue
			}
			if p.metrics != nil {
				p.metrics.HandoffsProcessed.Inc()
			}
		}
	}
}

func (p *HandoffProcessor) process(ctx context.Context, payload []byte) error {
	var h model.CheckoutHandoff
	if err := json.Unmarshal(payload, &h); err != nil {
		return fmt.Errorf("malformed handoff payload: %w", err)
	}

	p.logger.Info("Processing checkout handoff",
		"appointment_id", h.AppointmentID.String(),
		"service", h.ServiceName,
		"price", h.Price,
	)

	if p.config.WebhookURL == "" {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.config.WebhookURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("checkout webhook call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("checkout webhook returned %d", resp.StatusCode)
	}
	return nil
}
