package history

import (
	"testing"
	"time"

	"github.com/saniainf/tablecore/eventbus"
	"github.com/saniainf/tablecore/model"
)

func TestDebouncerFlushRecordsPendingSnapshot(t *testing.T) {
	bus := eventbus.New()
	m := model.NewTableModel(model.NewDocument("t", 2, 2), bus)
	s := NewService(10)
	d := NewDebouncer(s, m, time.Hour)
	defer d.Close()

	mustSet(t, m, 0, 0, "x")
	d.Schedule()
	d.Flush()

	if len(s.stack) != 1 {
		t.Fatalf("len(s.stack) = %d, want 1 after Flush", len(s.stack))
	}
}

func TestDebouncerFlushWithoutScheduleIsNoOp(t *testing.T) {
	bus := eventbus.New()
	m := model.NewTableModel(model.NewDocument("t", 2, 2), bus)
	s := NewService(10)
	d := NewDebouncer(s, m, time.Hour)
	defer d.Close()

	d.Flush()
	if len(s.stack) != 0 {
		t.Fatalf("len(s.stack) = %d, want 0 (nothing was scheduled)", len(s.stack))
	}
}

func TestDebouncerCancelDiscardsPendingSnapshot(t *testing.T) {
	bus := eventbus.New()
	m := model.NewTableModel(model.NewDocument("t", 2, 2), bus)
	s := NewService(10)
	d := NewDebouncer(s, m, time.Hour)
	defer d.Close()

	d.Schedule()
	d.Cancel()
	d.Flush()
	if len(s.stack) != 0 {
		t.Fatalf("len(s.stack) = %d, want 0 after Cancel", len(s.stack))
	}
}

func TestDebouncerExpiresAfterDelay(t *testing.T) {
	bus := eventbus.New()
	m := model.NewTableModel(model.NewDocument("t", 2, 2), bus)
	s := NewService(10)
	d := NewDebouncer(s, m, 20*time.Millisecond)
	defer d.Close()

	mustSet(t, m, 0, 0, "x")
	d.Schedule()
	time.Sleep(200 * time.Millisecond)

	if len(s.stack) != 1 {
		t.Fatalf("len(s.stack) = %d, want 1 after the delay elapsed", len(s.stack))
	}
}

func TestDebouncerRecordsOnBatchFlush(t *testing.T) {
	bus := eventbus.New()
	m := model.NewTableModel(model.NewDocument("t", 2, 2), bus)
	s := NewService(10)
	d := NewDebouncer(s, m, time.Hour)
	defer d.Close()

	bus.Batch(func() {
		_, _ = m.SetCellValue(0, 0, "x")
		d.Schedule()
	})

	if len(s.stack) != 1 {
		t.Fatalf("len(s.stack) = %d, want 1 (batch:flush should record immediately)", len(s.stack))
	}
}
