package remote

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/bpkeeper/internal/client/cache"
	"github.com/dmitrijs2005/bpkeeper/internal/client/models"
	"github.com/dmitrijs2005/bpkeeper/internal/common"
	"github.com/dmitrijs2005/bpkeeper/internal/logging"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const readingsCollectionName = "readings"

// MongoStore implements Store on top of a MongoDB collection. Live
// updates come from a change stream; every event triggers a re-query so
// subscribers always receive whole snapshots. Confirmed snapshots are
// written through to the local cache, and the cache is echoed as the
// first snapshot of every subscription (provenance FromCache).
type MongoStore struct {
	client    *mongo.Client
	db        *mongo.Database
	snapshots cache.SnapshotRepository
	log       logging.Logger
}

func NewMongoStore(ctx context.Context, uri, database string, snapshots cache.SnapshotRepository, log logging.Logger) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	return &MongoStore{
		client:    client,
		db:        client.Database(database),
		snapshots: snapshots,
		log:       log.With("component", "remote"),
	}, nil
}

// Database exposes the underlying database for sibling collaborators
// (the auth service keeps its users collection next to the readings).
func (s *MongoStore) Database() *mongo.Database {
	return s.db
}

// Ping probes server reachability. Used by the online watcher.
func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *MongoStore) readings() *mongo.Collection {
	return s.db.Collection(readingsCollectionName)
}

func (s *MongoStore) Create(ctx context.Context, r models.Reading) (string, error) {
	r.Id = uuid.NewString()
	r.CreatedAt = time.Now().UTC()

	if _, err := s.readings().InsertOne(ctx, r); err != nil {
		return "", ClassifyError(err)
	}
	return r.Id, nil
}

func (s *MongoStore) Delete(ctx context.Context, id string) error {
	res, err := s.readings().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return ClassifyError(err)
	}
	if res.DeletedCount == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (s *MongoStore) query(ctx context.Context, userID string) ([]models.Reading, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	cur, err := s.readings().Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, ClassifyError(err)
	}
	result := []models.Reading{}
	if err := cur.All(ctx, &result); err != nil {
		return nil, ClassifyError(err)
	}
	return result, nil
}

func (s *MongoStore) Subscribe(ctx context.Context, userID string) (Subscription, error) {
	subCtx, cancel := context.WithCancel(ctx)
	sub := &mongoSubscription{
		updates: make(chan Snapshot, 1),
		errs:    make(chan error, 1),
		cancel:  cancel,
	}
	go s.run(subCtx, userID, sub)
	return sub, nil
}

// run drives one subscription: cache echo, change stream, initial
// query, then a re-query per change event.
func (s *MongoStore) run(ctx context.Context, userID string, sub *mongoSubscription) {
	defer close(sub.updates)
	defer close(sub.errs)

	if cached, err := s.snapshots.Load(ctx, userID); err == nil {
		sub.deliver(ctx, Snapshot{Readings: cached, FromCache: true})
	} else if ctx.Err() == nil {
		s.log.Warn(ctx, "cache load failed", "error", err)
	}

	// The stream is opened before the first query so no event between
	// query and watch can be missed.
	stream, err := s.readings().Watch(ctx, mongo.Pipeline{})
	if err != nil {
		if ctx.Err() == nil {
			sub.fail(ClassifyError(err))
		}
		return
	}
	defer stream.Close(context.Background())

	if !s.refresh(ctx, userID, sub) {
		return
	}

	for stream.Next(ctx) {
		if !s.refresh(ctx, userID, sub) {
			return
		}
	}
	if err := stream.Err(); err != nil && ctx.Err() == nil {
		sub.fail(ClassifyError(err))
	}
}

// refresh queries the authoritative snapshot, delivers it and writes it
// through to the cache. Returns false when the subscription should end.
func (s *MongoStore) refresh(ctx context.Context, userID string, sub *mongoSubscription) bool {
	readings, err := s.query(ctx, userID)
	if err != nil {
		if ctx.Err() == nil {
			sub.fail(err)
		}
		return false
	}

	sub.deliver(ctx, Snapshot{Readings: readings})

	if err := s.snapshots.Replace(ctx, userID, readings); err != nil && ctx.Err() == nil {
		s.log.Warn(ctx, "cache write failed", "error", err)
	}
	return true
}

type mongoSubscription struct {
	updates   chan Snapshot
	errs      chan error
	cancel    context.CancelFunc
	closeOnce sync.Once
}

func (m *mongoSubscription) Updates() <-chan Snapshot { return m.updates }
func (m *mongoSubscription) Errors() <-chan error     { return m.errs }

func (m *mongoSubscription) Close() {
	m.closeOnce.Do(m.cancel)
}

// deliver pushes a snapshot, displacing an unread one so a slow
// consumer always observes the latest state (last snapshot wins).
func (m *mongoSubscription) deliver(ctx context.Context, snap Snapshot) {
	for {
		select {
		case <-ctx.Done():
			return
		case m.updates <- snap:
			return
		default:
			select {
			case <-m.updates:
			default:
			}
		}
	}
}

func (m *mongoSubscription) fail(err error) {
	select {
	case m.errs <- err:
	default:
	}
}
