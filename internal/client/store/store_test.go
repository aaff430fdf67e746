package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/bpkeeper/internal/client/models"
	"github.com/dmitrijs2005/bpkeeper/internal/client/remote"
	"github.com/dmitrijs2005/bpkeeper/internal/common"
	"github.com/dmitrijs2005/bpkeeper/internal/logging"
)

type fakeNet struct{ online atomic.Bool }

func (f *fakeNet) Online() bool { return f.online.Load() }

// fakeSub leaves its channels open on Close so tests can keep pushing
// events at a torn-down session and assert they are discarded.
type fakeSub struct {
	updates chan remote.Snapshot
	errs    chan error
	closed  atomic.Bool
}

func newFakeSub() *fakeSub {
	return &fakeSub{
		updates: make(chan remote.Snapshot, 4),
		errs:    make(chan error, 4),
	}
}

func (s *fakeSub) Updates() <-chan remote.Snapshot { return s.updates }
func (s *fakeSub) Errors() <-chan error            { return s.errs }
func (s *fakeSub) Close()                          { s.closed.Store(true) }

type fakeRemote struct {
	mu           sync.Mutex
	subs         []*fakeSub
	subscribeErr error
	createErr    error
	deleteErr    error
	deleted      []string
}

func (f *fakeRemote) Subscribe(ctx context.Context, userID string) (remote.Subscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.subscribeErr != nil {
		return nil, f.subscribeErr
	}
	sub := newFakeSub()
	f.subs = append(f.subs, sub)
	return sub, nil
}

func (f *fakeRemote) Create(ctx context.Context, r models.Reading) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return "", f.createErr
	}
	return "srv-" + fmt.Sprint(len(f.subs)), nil
}

func (f *fakeRemote) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeRemote) lastSub() *fakeSub {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.subs[len(f.subs)-1]
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newTestStore(t *testing.T, timeout time.Duration) (*ReadingStore, *fakeRemote, *fakeNet) {
	t.Helper()
	r := &fakeRemote{}
	net := &fakeNet{}
	net.online.Store(true)
	s := New(r, net, testLogger(), timeout)
	t.Cleanup(s.Stop)
	return s, r, net
}

func sampleReading(id string, ts time.Time) models.Reading {
	return models.Reading{
		Id: id, UserId: "u1",
		Systolic: 120, Diastolic: 80, Pulse: 60,
		Timestamp: ts, TimeOfDay: models.TimeOfDayMorning,
	}
}

func waitStatus(t *testing.T, s *ReadingStore, want SyncStatus) {
	t.Helper()
	require.Eventually(t, func() bool {
		return s.SyncStatus() == want
	}, 2*time.Second, 5*time.Millisecond, "want status %s, have %s", want, s.SyncStatus())
}

func TestStore_InitialStateIsSynced(t *testing.T) {
	s, _, _ := newTestStore(t, time.Hour)
	require.Equal(t, StatusSynced, s.SyncStatus())
	require.Empty(t, s.Readings())
}

func TestStore_StatusProgression(t *testing.T) {
	s, r, _ := newTestStore(t, time.Hour)

	require.NoError(t, s.SetUser(context.Background(), "u1"))
	require.Equal(t, StatusLoading, s.SyncStatus())

	sub := r.lastSub()
	now := time.Now()

	// cache echo arrives first: data visible but not server-confirmed
	sub.updates <- remote.Snapshot{Readings: []models.Reading{sampleReading("a", now)}, FromCache: true}
	waitStatus(t, s, StatusSyncing)
	require.Len(t, s.Readings(), 1)
	require.False(t, s.HasSyncedWithServer())

	// confirmed snapshot completes the sync
	sub.updates <- remote.Snapshot{Readings: []models.Reading{
		sampleReading("b", now),
		sampleReading("a", now.Add(-time.Hour)),
	}}
	waitStatus(t, s, StatusSynced)
	require.True(t, s.HasSyncedWithServer())
	require.Len(t, s.Readings(), 2)
	require.Equal(t, "b", s.Readings()[0].Id)
}

func TestStore_SyncTimeoutUnblocks(t *testing.T) {
	s, r, _ := newTestStore(t, 30*time.Millisecond)

	require.NoError(t, s.SetUser(context.Background(), "u1"))
	sub := r.lastSub()
	sub.updates <- remote.Snapshot{Readings: []models.Reading{sampleReading("a", time.Now())}, FromCache: true}

	// no confirmed snapshot ever arrives; the timeout settles the store
	waitStatus(t, s, StatusSynced)
	require.True(t, s.HasSyncedWithServer())
	require.Len(t, s.Readings(), 1)
}

func TestStore_OfflineCacheSnapshotSettles(t *testing.T) {
	s, r, net := newTestStore(t, time.Hour)
	net.online.Store(false)

	require.NoError(t, s.SetUser(context.Background(), "u1"))
	sub := r.lastSub()

	// while offline a cache snapshot is as good as it gets
	sub.updates <- remote.Snapshot{Readings: []models.Reading{sampleReading("a", time.Now())}, FromCache: true}
	waitStatus(t, s, StatusOffline)
	require.True(t, s.HasSyncedWithServer())
	require.Empty(t, s.Err())
}

func TestStore_UnavailableWhileOfflineIsNotAnError(t *testing.T) {
	s, r, net := newTestStore(t, time.Hour)
	net.online.Store(false)

	require.NoError(t, s.SetUser(context.Background(), "u1"))
	sub := r.lastSub()
	sub.errs <- fmt.Errorf("watch: %w", remote.ErrUnavailable)

	waitStatus(t, s, StatusOffline)
	require.True(t, s.HasSyncedWithServer())
	require.Empty(t, s.Err())
}

func TestStore_SubscriptionErrorSurfacesMessage(t *testing.T) {
	s, r, _ := newTestStore(t, time.Hour)

	require.NoError(t, s.SetUser(context.Background(), "u1"))
	sub := r.lastSub()
	sub.errs <- fmt.Errorf("listen: %w", remote.ErrPermissionDenied)

	waitStatus(t, s, StatusError)
	require.Equal(t, "Permission denied. Please log in again.", s.Err())
}

func TestStore_TerminalErrorSurvivesChannelClose(t *testing.T) {
	// The remote producer buffers its terminal error and then closes
	// both channels. The consumer must drain the error instead of
	// returning on whichever closed channel the select picks first, so
	// run the scenario repeatedly to flush out ordering luck.
	for i := 0; i < 50; i++ {
		s, r, _ := newTestStore(t, time.Hour)
		require.NoError(t, s.SetUser(context.Background(), "u1"))

		sub := r.lastSub()
		sub.errs <- fmt.Errorf("stream ended: %w", remote.ErrPermissionDenied)
		close(sub.updates)
		close(sub.errs)

		waitStatus(t, s, StatusError)
		require.Equal(t, "Permission denied. Please log in again.", s.Err())
		s.Stop()
	}
}

func TestStore_SubscribeFailureSurfacesError(t *testing.T) {
	r := &fakeRemote{subscribeErr: fmt.Errorf("dial: %w", remote.ErrUnavailable)}
	net := &fakeNet{}
	net.online.Store(true)
	s := New(r, net, testLogger(), time.Hour)
	t.Cleanup(s.Stop)

	require.Error(t, s.SetUser(context.Background(), "u1"))
	require.Equal(t, StatusError, s.SyncStatus())
	require.Equal(t, "Network error. Please check your connection.", s.Err())
}

func TestStore_AddRequiresLogin(t *testing.T) {
	s, _, _ := newTestStore(t, time.Hour)
	err := s.Add(context.Background(), models.ReadingForm{Systolic: 120, Diastolic: 80, Pulse: 60})
	require.ErrorIs(t, err, common.ErrorNotLoggedIn)
}

func TestStore_AddOptimistic(t *testing.T) {
	s, _, _ := newTestStore(t, time.Hour)
	require.NoError(t, s.SetUser(context.Background(), "u1"))

	form := models.ReadingForm{
		Systolic: 135, Diastolic: 85, Pulse: 70,
		Date: time.Now(), TimeOfDay: models.TimeOfDayEvening, Notes: "after run",
	}
	require.NoError(t, s.Add(context.Background(), form))

	readings := s.Readings()
	require.Len(t, readings, 1)
	require.True(t, readings[0].IsTemporary())
	require.Equal(t, "u1", readings[0].UserId)
	require.Equal(t, 135, readings[0].Systolic)
	require.Equal(t, "after run", readings[0].Notes)
}

func TestStore_AddRollsBackOnCreateFailure(t *testing.T) {
	s, r, _ := newTestStore(t, time.Hour)
	require.NoError(t, s.SetUser(context.Background(), "u1"))

	sub := r.lastSub()
	sub.updates <- remote.Snapshot{Readings: []models.Reading{sampleReading("a", time.Now())}}
	waitStatus(t, s, StatusSynced)

	r.mu.Lock()
	r.createErr = errors.New("write refused")
	r.mu.Unlock()

	err := s.Add(context.Background(), models.ReadingForm{
		Systolic: 135, Diastolic: 85, Pulse: 70, Date: time.Now(),
	})
	require.Error(t, err)

	readings := s.Readings()
	require.Len(t, readings, 1, "temporary entry must be rolled back")
	require.Equal(t, "a", readings[0].Id)
}

func TestStore_DeleteOptimistic(t *testing.T) {
	s, r, _ := newTestStore(t, time.Hour)
	require.NoError(t, s.SetUser(context.Background(), "u1"))

	now := time.Now()
	sub := r.lastSub()
	sub.updates <- remote.Snapshot{Readings: []models.Reading{
		sampleReading("c", now),
		sampleReading("b", now.Add(-time.Hour)),
		sampleReading("a", now.Add(-2*time.Hour)),
	}}
	waitStatus(t, s, StatusSynced)

	require.NoError(t, s.Delete(context.Background(), "b"))
	readings := s.Readings()
	require.Len(t, readings, 2)
	require.Equal(t, "c", readings[0].Id)
	require.Equal(t, "a", readings[1].Id)
	require.Equal(t, []string{"b"}, r.deleted)
}

func TestStore_DeleteRollsBackAndResorts(t *testing.T) {
	s, r, _ := newTestStore(t, time.Hour)
	require.NoError(t, s.SetUser(context.Background(), "u1"))

	now := time.Now()
	sub := r.lastSub()
	sub.updates <- remote.Snapshot{Readings: []models.Reading{
		sampleReading("c", now),
		sampleReading("b", now.Add(-time.Hour)),
		sampleReading("a", now.Add(-2*time.Hour)),
	}}
	waitStatus(t, s, StatusSynced)

	r.mu.Lock()
	r.deleteErr = errors.New("delete refused")
	r.mu.Unlock()

	require.Error(t, s.Delete(context.Background(), "b"))

	readings := s.Readings()
	require.Len(t, readings, 3, "deleted entry must be restored")
	require.Equal(t, "c", readings[0].Id)
	require.Equal(t, "b", readings[1].Id, "restored entry keeps timestamp order")
	require.Equal(t, "a", readings[2].Id)
}

func TestStore_DeleteUnknownId(t *testing.T) {
	s, _, _ := newTestStore(t, time.Hour)
	require.NoError(t, s.SetUser(context.Background(), "u1"))
	require.ErrorIs(t, s.Delete(context.Background(), "nope"), common.ErrorNotFound)
}

func TestStore_SignOutClears(t *testing.T) {
	s, r, _ := newTestStore(t, time.Hour)
	require.NoError(t, s.SetUser(context.Background(), "u1"))

	sub := r.lastSub()
	sub.updates <- remote.Snapshot{Readings: []models.Reading{sampleReading("a", time.Now())}}
	waitStatus(t, s, StatusSynced)

	require.NoError(t, s.SetUser(context.Background(), ""))
	require.Empty(t, s.Readings())
	require.Equal(t, StatusSynced, s.SyncStatus())
	require.True(t, sub.closed.Load(), "sign-out must close the subscription")
}

func TestStore_RefreshKeepsCollectionVisible(t *testing.T) {
	s, r, _ := newTestStore(t, time.Hour)
	require.NoError(t, s.SetUser(context.Background(), "u1"))

	now := time.Now()
	sub := r.lastSub()
	sub.updates <- remote.Snapshot{Readings: []models.Reading{sampleReading("a", now)}}
	waitStatus(t, s, StatusSynced)

	s.Refresh(context.Background())
	require.Equal(t, StatusSyncing, s.SyncStatus())
	require.Len(t, s.Readings(), 1, "refresh must not blank the collection")

	fresh := r.lastSub()
	require.NotSame(t, sub, fresh)
	fresh.updates <- remote.Snapshot{Readings: []models.Reading{
		sampleReading("b", now.Add(time.Minute)),
		sampleReading("a", now),
	}}
	waitStatus(t, s, StatusSynced)
	require.Len(t, s.Readings(), 2)
}

func TestStore_RefreshIsNoopOfflineOrSignedOut(t *testing.T) {
	s, r, net := newTestStore(t, time.Hour)

	s.Refresh(context.Background())
	require.Empty(t, r.subs, "signed-out refresh must not subscribe")

	require.NoError(t, s.SetUser(context.Background(), "u1"))
	net.online.Store(false)
	s.Refresh(context.Background())
	require.Len(t, r.subs, 1, "offline refresh must not subscribe")
}

func TestStore_StaleSessionEventsAreDiscarded(t *testing.T) {
	s, r, _ := newTestStore(t, time.Hour)
	require.NoError(t, s.SetUser(context.Background(), "u1"))
	stale := r.lastSub()

	require.NoError(t, s.SetUser(context.Background(), "u2"))
	fresh := r.lastSub()

	now := time.Now()
	stale.updates <- remote.Snapshot{Readings: []models.Reading{sampleReading("ghost", now)}}
	fresh.updates <- remote.Snapshot{Readings: []models.Reading{sampleReading("real", now)}}

	waitStatus(t, s, StatusSynced)
	readings := s.Readings()
	require.Len(t, readings, 1)
	require.Equal(t, "real", readings[0].Id)

	// stale errors must not surface either
	stale.errs <- fmt.Errorf("late: %w", remote.ErrPermissionDenied)
	time.Sleep(20 * time.Millisecond)
	require.Empty(t, s.Err())
	require.Equal(t, StatusSynced, s.SyncStatus())
}

func TestStore_UpdatesChannelCoalesces(t *testing.T) {
	s, r, _ := newTestStore(t, time.Hour)
	require.NoError(t, s.SetUser(context.Background(), "u1"))

	sub := r.lastSub()
	sub.updates <- remote.Snapshot{Readings: []models.Reading{sampleReading("a", time.Now())}}
	waitStatus(t, s, StatusSynced)

	select {
	case <-s.Updates():
	case <-time.After(time.Second):
		t.Fatal("expected a pending update notification")
	}
}
