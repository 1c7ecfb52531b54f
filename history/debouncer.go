package history

import (
	"sync"
	"time"

	"github.com/saniainf/tablecore/eventbus"
	"github.com/saniainf/tablecore/model"
)

// Debouncer groups rapid table changes into a single [Service] snapshot. A
// pending snapshot fires after delay has elapsed since the last [Debouncer.Schedule]
// call, or immediately when the model's bus delivers "batch:flush" — whichever
// comes first.
type Debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	timer   *time.Timer
	service *Service
	model   *model.TableModel
	bus     *eventbus.Bus
	subID   eventbus.SubscriptionID
}

// NewDebouncer creates a Debouncer that records into service from model
// after delay of inactivity, or immediately on the model's bus's
// "batch:flush".
func NewDebouncer(service *Service, m *model.TableModel, delay time.Duration) *Debouncer {
	d := &Debouncer{service: service, model: m, delay: delay, bus: m.Bus()}
	if d.bus != nil {
		d.subID = d.bus.On(eventbus.EventBatchFlush, func(any) { d.onBatchFlush() })
	}
	return d
}

// Schedule (re)starts the delay timer. Each call resets any timer already
// pending.
func (d *Debouncer) Schedule() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.onExpire)
}

func (d *Debouncer) onExpire() {
	d.mu.Lock()
	d.timer = nil
	d.mu.Unlock()
	d.service.Record(d.model)
}

func (d *Debouncer) onBatchFlush() {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.mu.Unlock()
	d.service.Record(d.model)
}

// Flush forces immediate recording if a snapshot is currently pending; it
// is a no-op if nothing is scheduled.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if d.timer == nil {
		d.mu.Unlock()
		return
	}
	d.timer.Stop()
	d.timer = nil
	d.mu.Unlock()
	d.service.Record(d.model)
}

// Cancel discards any pending snapshot without recording it.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Close cancels any pending snapshot and unsubscribes from the bus.
func (d *Debouncer) Close() {
	d.Cancel()
	if d.bus != nil {
		d.bus.Off(eventbus.EventBatchFlush, d.subID)
	}
}
