// Package eventbus provides a synchronous, single-threaded publish/subscribe
// bus with pausable, batched delivery.
//
// The bus has no dependencies beyond the standard library: it is the
// coordination primitive every other package in this module uses to report
// state changes, not a general-purpose message queue.
//
// # Basic usage
//
//	bus := eventbus.New()
//	id := bus.On("cell:change", func(payload any) {
//	    fmt.Println(payload)
//	})
//	bus.Emit("cell:change", model.CellChangePayload{R: 0, C: 0})
//	bus.Off("cell:change", id)
//
// # Pausing and batching
//
// [Bus.Pause] and [Bus.Resume] are reference-counted. While the pause count
// is above zero, [Bus.Emit] buffers payloads per event name instead of
// delivering them. When the count returns to zero, every buffered payload is
// flushed in the order it was emitted, followed by a synthetic
// "batch:flush" event carrying the total buffered count.
//
// [Bus.Batch] wraps a function between Pause and Resume:
//
//	bus.Batch(func() {
//	    model.SetCellValue(0, 0, "a")
//	    model.SetCellValue(0, 1, "b")
//	})
//
// # Handler errors
//
// A handler that panics does not stop delivery to the handlers that follow
// it. The panic is recovered and reported through [Bus.OnHandlerError], which
// defaults to a no-op; callers that want logging assign their own callback.
package eventbus
