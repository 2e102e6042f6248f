package presence

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/salonhq/scheduler-api/internal/model"
	"github.com/salonhq/scheduler-api/pkg/logger"
	"github.com/salonhq/scheduler-api/pkg/messaging"
)

const (
	channel = "scheduler:presence"

	// snapshotTTL is how long a presence entry stays visible without a
	// refresh. Entries expire rather than being reconciled; the core only
	// ever displays the latest snapshot per staff member.
	snapshotTTL = 45 * time.Second
)

// Tracker fans presence snapshots out over the broker and keeps the latest
// snapshot per staff member in a TTL cache. Display-only: nothing here feeds
// back into scheduling decisions.
type Tracker struct {
	broker   messaging.Broker
	snapshot *cache.Cache
	logger   *logger.Logger
}

func NewTracker(broker messaging.Broker, log *logger.Logger) *Tracker {
	return &Tracker{
		broker:   broker,
		snapshot: cache.New(snapshotTTL, time.Minute),
		logger:   log,
	}
}

// Start subscribes to the presence channel and applies incoming snapshots
// until ctx is cancelled.
func (t *Tracker) Start(ctx context.Context) error {
	msgs, err := t.broker.Subscribe(ctx, channel)
	if err != nil {
		return err
	}
	go func() {
		for payload := range msgs {
			var p model.Presence
			if err := json.Unmarshal(payload, &p); err != nil {
				t.logger.Warn("dropping malformed presence message", "error", err.Error())
				continue
			}
			t.snapshot.SetDefault(p.StaffID.String(), &p)
		}
	}()
	return nil
}

// Publish announces which date a staff member is viewing. Local state is
// updated immediately so a single-node deployment works without the broker
// round-trip.
func (t *Tracker) Publish(ctx context.Context, p *model.Presence) {
	p.SeenAt = time.Now()
	t.snapshot.SetDefault(p.StaffID.String(), p)
	if err := t.broker.Publish(ctx, channel, p); err != nil {
		t.logger.Warn("presence publish failed", "error", err.Error())
	}
}

// Current returns the latest snapshot for every staff member still fresh.
func (t *Tracker) Current() []*model.Presence {
	items := t.snapshot.Items()
	out := make([]*model.Presence, 0, len(items))
	for _, item := range items {
		out = append(out, item.Object.(*model.Presence))
	}
	return out
}

// Forget drops a staff member's presence, used on logout.
func (t *Tracker) Forget(staffID uuid.UUID) {
	t.snapshot.Delete(staffID.String())
}
