package eventbus

import "sync"

// Known event names emitted by the document core. Payload shapes are the
// payload types of the emitting packages (e.g. model.CellChangePayload,
// merge.MergePayload); the bus itself treats payloads opaquely.
const (
	EventCellChange      = "cell:change"
	EventStructureChange = "structure:change"
	EventPaste           = "paste"
	EventMerge           = "merge"
	EventSplit           = "split"
	EventSelectionChange = "selection:change"
	EventSelectionRange  = "selection:range"
	EventEditStart       = "edit:start"
	EventEditCommit      = "edit:commit"
	EventEditCancel      = "edit:cancel"
	EventBatchFlush      = "batch:flush"
)

// Handler receives a payload emitted for a subscribed event name.
type Handler func(payload any)

// SubscriptionID identifies a single On call so it can be removed with Off.
// Go has no notion of function-value equality, so unlike the handler-identity
// semantics implied by a DOM-style addEventListener/removeEventListener pair,
// Off here takes the token returned by On rather than the handler itself.
type SubscriptionID uint64

type subscription struct {
	id      SubscriptionID
	handler Handler
}

// BatchFlushPayload is the payload carried by the synthetic "batch:flush"
// event delivered once per completed batch.
type BatchFlushPayload struct {
	BufferedEventCount int
}

type bufferedEvent struct {
	name    string
	payload any
}

// Bus is a synchronous, single-threaded publish/subscribe event bus with
// pausable, batched delivery. The zero value is not usable; construct one
// with [New].
type Bus struct {
	mu            sync.Mutex
	subscribers   map[string][]subscription
	nextID        SubscriptionID
	pauseDepth    int
	buffer        []bufferedEvent
	OnHandlerError func(name string, payload any, recovered any)
}

// New creates a ready-to-use Bus.
func New() *Bus {
	return &Bus{
		subscribers: make(map[string][]subscription),
	}
}

// On registers handler for name and returns a token that can later be passed
// to Off to remove it. Registration order among handlers for the same name is
// preserved for delivery.
func (b *Bus) On(name string, handler Handler) SubscriptionID {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.subscribers[name] = append(b.subscribers[name], subscription{id: id, handler: handler})
	return id
}

// Off removes the subscription identified by id for the given event name. It
// is a no-op if the subscription does not exist.
func (b *Bus) Off(name string, id SubscriptionID) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.subscribers[name]
	for i, s := range subs {
		if s.id == id {
			b.subscribers[name] = append(subs[:i:i], subs[i+1:]...)
			return
		}
	}
}

// Emit delivers payload to every handler subscribed to name, synchronously
// and in registration order. While the bus is paused (see [Bus.Pause]),
// payloads are buffered instead and delivered on [Bus.Resume].
func (b *Bus) Emit(name string, payload any) {
	b.mu.Lock()
	if b.pauseDepth > 0 {
		b.buffer = append(b.buffer, bufferedEvent{name: name, payload: payload})
		b.mu.Unlock()
		return
	}
	b.mu.Unlock()

	b.deliver(name, payload)
}

// Pause increments the pause counter. While the counter is above zero, Emit
// buffers rather than delivers. Pause/Resume are reference-counted so nested
// batches compose safely.
func (b *Bus) Pause() {
	b.mu.Lock()
	b.pauseDepth++
	b.mu.Unlock()
}

// Resume decrements the pause counter. When it reaches zero, every buffered
// payload is flushed in emission order, followed by a single "batch:flush"
// event carrying the total buffered count. Resume on an already-resumed bus
// is a no-op.
func (b *Bus) Resume() {
	b.mu.Lock()
	if b.pauseDepth == 0 {
		b.mu.Unlock()
		return
	}
	b.pauseDepth--
	if b.pauseDepth > 0 {
		b.mu.Unlock()
		return
	}

	buffered := b.buffer
	b.buffer = nil
	b.mu.Unlock()

	for _, ev := range buffered {
		b.deliver(ev.name, ev.payload)
	}
	b.deliver(EventBatchFlush, BatchFlushPayload{BufferedEventCount: len(buffered)})
}

// Batch pauses the bus, invokes fn, and resumes the bus even if fn panics.
func (b *Bus) Batch(fn func()) {
	b.Pause()
	defer b.Resume()
	fn()
}

// deliver calls every handler registered for name, recovering and reporting
// any panic so that one failing handler does not prevent delivery to its
// siblings.
func (b *Bus) deliver(name string, payload any) {
	b.mu.Lock()
	subs := append([]subscription(nil), b.subscribers[name]...)
	b.mu.Unlock()

	for _, s := range subs {
		b.callHandler(name, payload, s.handler)
	}
}

func (b *Bus) callHandler(name string, payload any, handler Handler) {
	defer func() {
		if r := recover(); r != nil {
			if b.OnHandlerError != nil {
				b.OnHandlerError(name, payload, r)
			}
		}
	}()
	handler(payload)
}

// IsPaused reports whether the bus currently has buffering active.
func (b *Bus) IsPaused() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.pauseDepth > 0
}
