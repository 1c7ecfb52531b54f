package eventbus

import (
	"testing"
)

func TestOnEmitDelivery(t *testing.T) {
	b := New()
	var got []any
	b.On("cell:change", func(p any) { got = append(got, p) })

	b.Emit("cell:change", 1)
	b.Emit("cell:change", 2)

	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Errorf("Emit() delivered = %v, want [1 2]", got)
	}
}

func TestOffRemovesHandler(t *testing.T) {
	b := New()
	var calls int
	id := b.On("x", func(p any) { calls++ })
	b.Emit("x", nil)
	b.Off("x", id)
	b.Emit("x", nil)

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestMultipleHandlersRegistrationOrder(t *testing.T) {
	b := New()
	var order []int
	b.On("x", func(p any) { order = append(order, 1) })
	b.On("x", func(p any) { order = append(order, 2) })
	b.On("x", func(p any) { order = append(order, 3) })

	b.Emit("x", nil)

	want := []int{1, 2, 3}
	for i, v := range want {
		if order[i] != v {
			t.Errorf("order = %v, want %v", order, want)
			break
		}
	}
}

func TestPauseBuffersAndResumeFlushesInOrder(t *testing.T) {
	b := New()
	var delivered []any
	b.On("a", func(p any) { delivered = append(delivered, p) })

	b.Pause()
	b.Emit("a", "first")
	b.Emit("a", "second")

	if len(delivered) != 0 {
		t.Fatalf("delivered while paused = %v, want none", delivered)
	}

	b.Resume()

	if len(delivered) != 2 || delivered[0] != "first" || delivered[1] != "second" {
		t.Errorf("delivered after resume = %v, want [first second]", delivered)
	}
}

func TestBatchFlushFollowsBufferedPayloads(t *testing.T) {
	b := New()
	var sequence []string
	b.On("a", func(p any) { sequence = append(sequence, "a") })
	b.On(EventBatchFlush, func(p any) { sequence = append(sequence, "flush") })

	b.Batch(func() {
		b.Emit("a", nil)
		b.Emit("a", nil)
	})

	want := []string{"a", "a", "flush"}
	if len(sequence) != len(want) {
		t.Fatalf("sequence = %v, want %v", sequence, want)
	}
	for i, v := range want {
		if sequence[i] != v {
			t.Errorf("sequence = %v, want %v", sequence, want)
			break
		}
	}
}

func TestBatchFlushCarriesBufferedCount(t *testing.T) {
	b := New()
	var count int
	b.On(EventBatchFlush, func(p any) {
		if fp, ok := p.(BatchFlushPayload); ok {
			count = fp.BufferedEventCount
		}
	})

	b.Batch(func() {
		b.Emit("a", nil)
		b.Emit("b", nil)
		b.Emit("b", nil)
	})

	if count != 3 {
		t.Errorf("BufferedEventCount = %d, want 3", count)
	}
}

func TestNestedPauseIsReferenceCounted(t *testing.T) {
	b := New()
	var delivered int
	b.On("a", func(p any) { delivered++ })

	b.Pause()
	b.Pause()
	b.Emit("a", nil)
	b.Resume()
	if delivered != 0 {
		t.Fatalf("delivered after inner resume = %d, want 0", delivered)
	}
	b.Resume()
	if delivered != 1 {
		t.Errorf("delivered after outer resume = %d, want 1", delivered)
	}
}

func TestHandlerPanicDoesNotBlockSiblings(t *testing.T) {
	b := New()
	var secondCalled bool
	var reportedName string

	b.OnHandlerError = func(name string, payload any, recovered any) {
		reportedName = name
	}

	b.On("a", func(p any) { panic("boom") })
	b.On("a", func(p any) { secondCalled = true })

	b.Emit("a", nil)

	if !secondCalled {
		t.Error("second handler was not called after first panicked")
	}
	if reportedName != "a" {
		t.Errorf("reportedName = %q, want %q", reportedName, "a")
	}
}

func TestBatchResumesEvenIfFnPanics(t *testing.T) {
	b := New()

	func() {
		defer func() { recover() }()
		b.Batch(func() {
			panic("boom")
		})
	}()

	if b.IsPaused() {
		t.Error("bus still paused after panicking batch")
	}
}
