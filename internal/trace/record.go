package trace

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/roach88/regbits/internal/register"
)

// Op is the kind of access an event records.
type Op string

const (
	// OpLoad is a raw word read.
	OpLoad Op = "load"

	// OpStore is a raw word write.
	OpStore Op = "store"
)

// Event is one recorded access.
type Event struct {
	Session  string
	Seq      int64
	Register string
	Op       Op
	Value    uint64
}

// Session groups the accesses of one debugging run under a fresh UUID,
// with a monotonic per-session sequence.
//
// Thread-safety: Record and Err take an internal mutex, so one session
// can serve storage cells touched from multiple goroutines (the cells
// themselves still need external serialization per the register
// ownership model).
type Session struct {
	store *Store
	id    string

	mu  sync.Mutex
	seq int64
	err error
}

// NewSession starts a trace session.
func (s *Store) NewSession() *Session {
	return &Session{store: s, id: uuid.NewString()}
}

// ID returns the session's UUID.
func (s *Session) ID() string { return s.id }

// Err returns the first recording failure, if any. The Storage
// interface has no error channel, so a failed insert parks its error
// here instead of dropping it.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Record appends one access event.
func (s *Session) Record(registerName string, op Op, value uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	_, err := s.store.db.ExecContext(context.Background(), `
		INSERT INTO access_events (session_id, seq, register, op, value)
		VALUES (?, ?, ?, ?, ?)
	`,
		s.id,
		s.seq,
		registerName,
		string(op),
		int64(value),
	)
	if err != nil && s.err == nil {
		s.err = fmt.Errorf("record %s %s: %w", registerName, op, err)
	}
}

// Wrap returns a Storage that forwards to inner and records every
// access under the given register name.
func (s *Session) Wrap(registerName string, inner register.Storage) register.Storage {
	return &tracedStorage{sess: s, name: registerName, inner: inner}
}

type tracedStorage struct {
	sess  *Session
	name  string
	inner register.Storage
}

func (t *tracedStorage) Load() uint64 {
	v := t.inner.Load()
	t.sess.Record(t.name, OpLoad, v)
	return v
}

func (t *tracedStorage) Store(v uint64) {
	t.inner.Store(v)
	t.sess.Record(t.name, OpStore, v)
}
