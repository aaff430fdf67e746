// Package store owns the canonical in-memory reading collection for the
// signed-in user and keeps it reconciled with the remote document store.
//
// One live subscription feeds the collection; local mutations are
// applied optimistically and rolled back when the remote write fails.
// The sync status is never stored: it is derived from the current flags
// on every read.
package store

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/bpkeeper/internal/client/models"
	"github.com/dmitrijs2005/bpkeeper/internal/client/remote"
	"github.com/dmitrijs2005/bpkeeper/internal/common"
	"github.com/dmitrijs2005/bpkeeper/internal/logging"
	"github.com/google/uuid"
)

// SyncStatus describes the store's relationship to the remote source of
// truth.
type SyncStatus string

const (
	StatusLoading SyncStatus = "loading"
	StatusSyncing SyncStatus = "syncing"
	StatusSynced  SyncStatus = "synced"
	StatusOffline SyncStatus = "offline"
	StatusError   SyncStatus = "error"
)

// NetworkStatus exposes the connectivity flag. netx.OnlineWatcher
// satisfies this.
type NetworkStatus interface {
	Online() bool
}

// DefaultSyncTimeout bounds how long the store waits for a
// server-confirmed snapshot before it stops blocking the UI.
const DefaultSyncTimeout = 3000 * time.Millisecond

// ReadingStore is the single source of truth for the current user's
// readings. All fields behind mu; the collection is owned exclusively
// by the store and only ever mutated through Add, Delete, and
// subscription snapshots.
type ReadingStore struct {
	remote      remote.Store
	net         NetworkStatus
	log         logging.Logger
	syncTimeout time.Duration

	mu        sync.Mutex
	userID    string
	readings  []models.Reading
	loading   bool
	errMsg    string
	hasSynced bool
	fromCache bool
	sub       remote.Subscription
	timer     *time.Timer

	// gen identifies the current session; callbacks carrying a stale
	// generation are ignored so results of torn-down sessions cannot
	// leak into a new one.
	gen uint64

	updates chan struct{}
}

func New(r remote.Store, net NetworkStatus, log logging.Logger, syncTimeout time.Duration) *ReadingStore {
	if syncTimeout <= 0 {
		syncTimeout = DefaultSyncTimeout
	}
	return &ReadingStore{
		remote:      r,
		net:         net,
		log:         log.With("component", "store"),
		syncTimeout: syncTimeout,
		hasSynced:   true,
		updates:     make(chan struct{}, 1),
	}
}

// SetUser switches the store to a new signed-in user, or clears it when
// userID is empty. Switching tears down the previous subscription and
// timer before anything else.
func (s *ReadingStore) SetUser(ctx context.Context, userID string) error {
	if userID == "" {
		s.mu.Lock()
		s.gen++
		s.teardownLocked()
		s.userID = ""
		s.readings = nil
		s.loading = false
		s.errMsg = ""
		// An empty signed-out store is a valid terminal state, not a
		// loading state.
		s.hasSynced = true
		s.fromCache = false
		s.notifyLocked()
		s.mu.Unlock()
		return nil
	}
	return s.start(ctx, userID, true)
}

// Refresh forces the status back through syncing semantics by
// re-subscribing. No-op while offline or signed out.
func (s *ReadingStore) Refresh(ctx context.Context) {
	s.mu.Lock()
	userID := s.userID
	s.mu.Unlock()
	if userID == "" || !s.net.Online() {
		return
	}
	_ = s.start(ctx, userID, false)
}

// Stop tears down the subscription and timer. In-flight mutations are
// not cancelled; their results are discarded via the generation guard.
func (s *ReadingStore) Stop() {
	s.mu.Lock()
	s.gen++
	s.teardownLocked()
	s.mu.Unlock()
}

// start opens a fresh subscription session for userID. When clear is
// set the collection is blanked first (initial sign-in); Refresh keeps
// the current collection visible while re-syncing.
func (s *ReadingStore) start(ctx context.Context, userID string, clear bool) error {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.teardownLocked()
	s.userID = userID
	if clear {
		s.readings = nil
		s.loading = true
	}
	s.errMsg = ""
	s.hasSynced = false
	s.fromCache = true
	s.notifyLocked()
	s.mu.Unlock()

	sub, err := s.remote.Subscribe(ctx, userID)
	if err != nil {
		s.applyError(gen, err)
		return err
	}

	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		sub.Close()
		return nil
	}
	s.sub = sub
	s.timer = time.AfterFunc(s.syncTimeout, func() { s.onSyncTimeout(gen) })
	s.mu.Unlock()

	go s.consume(gen, sub)
	return nil
}

// Add synthesizes an optimistic reading with a temporary id, prepends
// it, and issues the remote create. On failure the temporary entry is
// removed and the error is returned to the caller. On success nothing
// more happens here: the live subscription delivers the authoritative
// document, and the store never reconciles ids itself.
func (s *ReadingStore) Add(ctx context.Context, form models.ReadingForm) error {
	s.mu.Lock()
	if s.userID == "" {
		s.mu.Unlock()
		return common.ErrorNotLoggedIn
	}
	gen := s.gen
	temp := models.Reading{
		Id:        "temp-" + uuid.NewString(),
		UserId:    s.userID,
		Systolic:  form.Systolic,
		Diastolic: form.Diastolic,
		Pulse:     form.Pulse,
		Timestamp: form.Date,
		TimeOfDay: form.TimeOfDay,
		Notes:     form.Notes,
		CreatedAt: time.Now(),
	}
	s.readings = append([]models.Reading{temp}, s.readings...)
	s.notifyLocked()
	s.mu.Unlock()

	doc := temp
	doc.Id = "" // assigned by the remote store

	if _, err := s.remote.Create(ctx, doc); err != nil {
		s.mu.Lock()
		if gen == s.gen {
			s.removeLocked(temp.Id)
			s.notifyLocked()
		}
		s.mu.Unlock()
		return err
	}
	return nil
}

// Delete removes the reading immediately, keeping it for rollback, and
// issues the remote delete. On failure the captured reading is
// reinserted and the collection re-sorted by timestamp descending.
func (s *ReadingStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	if s.userID == "" {
		s.mu.Unlock()
		return common.ErrorNotLoggedIn
	}
	idx := -1
	for i := range s.readings {
		if s.readings[i].Id == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return common.ErrorNotFound
	}
	gen := s.gen
	captured := s.readings[idx]
	s.readings = append(s.readings[:idx:idx], s.readings[idx+1:]...)
	s.notifyLocked()
	s.mu.Unlock()

	if err := s.remote.Delete(ctx, id); err != nil {
		s.mu.Lock()
		if gen == s.gen {
			s.readings = append(s.readings, captured)
			sort.Slice(s.readings, func(i, j int) bool {
				return s.readings[i].Timestamp.After(s.readings[j].Timestamp)
			})
			s.notifyLocked()
		}
		s.mu.Unlock()
		return err
	}
	return nil
}

// SyncStatus derives the current status from the store flags.
func (s *ReadingStore) SyncStatus() SyncStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statusLocked()
}

func (s *ReadingStore) statusLocked() SyncStatus {
	switch {
	case s.errMsg != "":
		return StatusError
	case !s.net.Online():
		return StatusOffline
	case s.loading && !s.hasSynced:
		return StatusLoading
	case !s.hasSynced && s.fromCache:
		return StatusSyncing
	default:
		return StatusSynced
	}
}

// Err returns the user-facing message of the last subscription error,
// or "" when there is none. Mutation errors are never stored here.
func (s *ReadingStore) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}

// HasSyncedWithServer reports whether a server-confirmed snapshot has
// been observed (or the store gave up waiting for one).
func (s *ReadingStore) HasSyncedWithServer() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hasSynced
}

// Updates returns a coalesced notification channel: one token is
// pending whenever the collection or status changed since the last
// receive.
func (s *ReadingStore) Updates() <-chan struct{} {
	return s.updates
}

// consume drains both subscription channels until each is closed. A
// closed channel is nilled out rather than ending the loop: the
// producer may buffer a terminal error and close both channels at once,
// and that error must still be applied.
func (s *ReadingStore) consume(gen uint64, sub remote.Subscription) {
	updates := sub.Updates()
	errs := sub.Errors()
	for updates != nil || errs != nil {
		select {
		case snap, ok := <-updates:
			if !ok {
				updates = nil
				continue
			}
			s.applySnapshot(gen, snap)
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			s.applyError(gen, err)
		}
	}
}

// applySnapshot replaces the collection with a listener snapshot. The
// snapshot fully replaces local state: optimistic entries not yet
// confirmed may transiently disappear until the next one.
func (s *ReadingStore) applySnapshot(gen uint64, snap remote.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return
	}
	s.readings = snap.Readings
	s.fromCache = snap.FromCache
	s.loading = false
	s.errMsg = ""
	if !snap.FromCache || !s.net.Online() {
		s.hasSynced = true
		s.stopTimerLocked()
	}
	s.notifyLocked()
}

func (s *ReadingStore) applyError(gen uint64, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return
	}
	s.log.Error(context.Background(), "subscription error", "error", err)

	// Unavailable while already offline is the expected condition, not
	// a fault: settle into a ready state on whatever data we have.
	if errors.Is(err, remote.ErrUnavailable) && !s.net.Online() {
		s.hasSynced = true
		s.loading = false
		s.stopTimerLocked()
		s.notifyLocked()
		return
	}

	s.errMsg = userMessage(err)
	s.loading = false
	s.notifyLocked()
}

// onSyncTimeout stops blocking the UI even though the last snapshot may
// still be cache-sourced.
func (s *ReadingStore) onSyncTimeout(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return
	}
	s.hasSynced = true
	s.loading = false
	s.notifyLocked()
}

func (s *ReadingStore) removeLocked(id string) {
	for i := range s.readings {
		if s.readings[i].Id == id {
			s.readings = append(s.readings[:i:i], s.readings[i+1:]...)
			return
		}
	}
}

func (s *ReadingStore) teardownLocked() {
	if s.sub != nil {
		s.sub.Close()
		s.sub = nil
	}
	s.stopTimerLocked()
}

func (s *ReadingStore) stopTimerLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *ReadingStore) notifyLocked() {
	select {
	case s.updates <- struct{}{}:
	default:
	}
}

func userMessage(err error) string {
	switch {
	case errors.Is(err, remote.ErrPermissionDenied):
		return "Permission denied. Please log in again."
	case errors.Is(err, remote.ErrUnavailable):
		return "Network error. Please check your connection."
	case errors.Is(err, remote.ErrUnauthenticated):
		return "Authentication required. Please log in again."
	default:
		return "Failed to load readings"
	}
}
