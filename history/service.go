package history

import (
	"bytes"
	"encoding/json"
	"sync"

	"github.com/saniainf/tablecore/model"
)

// Service is a bounded stack of document snapshots with a cursor, used for
// undo/redo. The zero value is not usable; construct one with [NewService].
type Service struct {
	mu      sync.Mutex
	stack   []*model.Document
	index   int
	limit   int
	suspend bool
}

// NewService creates a Service that retains at most limit snapshots,
// clamped to at least 1.
func NewService(limit int) *Service {
	if limit < 1 {
		limit = 1
	}
	return &Service{index: -1, limit: limit}
}

// Record takes a snapshot of model via [model.TableModel.ToJSON] and pushes
// it onto the stack, reporting whether it actually recorded one. It is a
// no-op while suspended (see [Service.Restore]), and while the snapshot is
// byte-identical, by canonical JSON, to the current top. If the cursor is
// not at the top, the tail is truncated first. If the stack then exceeds
// its limit, the oldest snapshot is dropped and the cursor stays at the new
// top.
func (s *Service) Record(m *model.TableModel) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.suspend {
		return false
	}

	doc := m.ToJSON()
	if s.index >= 0 && stableEqual(doc, s.stack[s.index]) {
		return false
	}

	if s.index < len(s.stack)-1 {
		s.stack = s.stack[:s.index+1]
	}
	s.stack = append(s.stack, doc)
	s.index++

	if len(s.stack) > s.limit {
		s.stack = s.stack[1:]
		s.index--
	}
	return true
}

// CanUndo reports whether Undo would succeed.
func (s *Service) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index > 0
}

// CanRedo reports whether Redo would succeed.
func (s *Service) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index >= 0 && s.index < len(s.stack)-1
}

// Undo moves the cursor one snapshot back and returns the document there.
// It does not apply the document to any model; the caller does that via
// [Service.Restore].
func (s *Service) Undo() (*model.Document, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.index <= 0 {
		return nil, false
	}
	s.index--
	return s.stack[s.index], true
}

// Redo moves the cursor one snapshot forward and returns the document
// there.
func (s *Service) Redo() (*model.Document, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.index < 0 || s.index >= len(s.stack)-1 {
		return nil, false
	}
	s.index++
	return s.stack[s.index], true
}

// IsSuspended reports whether a Restore is currently in progress.
func (s *Service) IsSuspended() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.suspend
}

// Restore marks the service suspended, invokes applyFn with doc, and always
// clears the suspended flag afterward, even if applyFn returns an error.
// Mutators and the [Debouncer] must honor the suspended flag — it is the
// discipline that keeps a restore from recursively recording itself.
func (s *Service) Restore(applyFn func(*model.Document) error, doc *model.Document) error {
	s.mu.Lock()
	s.suspend = true
	s.mu.Unlock()

	err := applyFn(doc)

	s.mu.Lock()
	s.suspend = false
	s.mu.Unlock()
	return err
}

func stableEqual(a, b *model.Document) bool {
	ab, errA := json.Marshal(a)
	bb, errB := json.Marshal(b)
	if errA != nil || errB != nil {
		return false
	}
	return bytes.Equal(ab, bb)
}
