// Package auth exposes the current-user identity to the rest of the
// client. Accounts live in the remote users collection; the session is
// a locally cached token so identity survives offline restarts.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/bpkeeper/internal/client/cache"
	"github.com/dmitrijs2005/bpkeeper/internal/common"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

const (
	usersCollectionName = "users"
	sessionMetadataKey  = "session"
)

// Identity is the signed-in user as seen by the rest of the client.
type Identity struct {
	ID          string
	Email       string
	DisplayName string
}

type userDocument struct {
	Id           string    `bson:"_id"`
	Email        string    `bson:"email"`
	DisplayName  string    `bson:"displayName"`
	PasswordHash []byte    `bson:"passwordHash"`
	CreatedAt    time.Time `bson:"createdAt"`
}

// Service implements register/login against the users collection and
// keeps the session token in the local metadata cache.
type Service struct {
	users    *mongo.Collection
	meta     cache.MetadataRepository
	secret   []byte
	tokenTTL time.Duration
}

func NewService(db *mongo.Database, meta cache.MetadataRepository, secret []byte, tokenTTL time.Duration) *Service {
	return &Service{
		users:    db.Collection(usersCollectionName),
		meta:     meta,
		secret:   secret,
		tokenTTL: tokenTTL,
	}
}

// EnsureIndexes creates the unique email index. Safe to call on every
// start.
func (s *Service) EnsureIndexes(ctx context.Context) error {
	_, err := s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// Register creates an account and signs the user in.
func (s *Service) Register(ctx context.Context, email, displayName string, password []byte) (*Identity, error) {
	hash, err := bcrypt.GenerateFromPassword(password, bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing error: %w", err)
	}

	doc := userDocument{
		Id:           uuid.NewString(),
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if _, err := s.users.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, common.ErrorEmailTaken
		}
		return nil, fmt.Errorf("register error: %w", err)
	}

	id := Identity{ID: doc.Id, Email: doc.Email, DisplayName: doc.DisplayName}
	if err := s.saveSession(ctx, id); err != nil {
		return nil, err
	}
	return &id, nil
}

// Login verifies credentials against the users collection and caches a
// fresh session token for offline use.
func (s *Service) Login(ctx context.Context, email string, password []byte) (*Identity, error) {
	var doc userDocument
	err := s.users.FindOne(ctx, bson.M{"email": email}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, common.ErrorUnauthorized
	}
	if err != nil {
		return nil, fmt.Errorf("login error: %w", err)
	}

	if bcrypt.CompareHashAndPassword(doc.PasswordHash, password) != nil {
		return nil, common.ErrorUnauthorized
	}

	id := Identity{ID: doc.Id, Email: doc.Email, DisplayName: doc.DisplayName}
	if err := s.saveSession(ctx, id); err != nil {
		return nil, err
	}
	return &id, nil
}

// OfflineLogin restores the identity from the locally cached session
// token. Returns common.ErrorNoCachedSession when nothing is cached and
// common.ErrorSessionExpired when the token is no longer valid.
func (s *Service) OfflineLogin(ctx context.Context) (*Identity, error) {
	token, err := s.meta.Get(ctx, sessionMetadataKey)
	if errors.Is(err, cache.ErrNotFound) {
		return nil, common.ErrorNoCachedSession
	}
	if err != nil {
		return nil, fmt.Errorf("session read error: %w", err)
	}

	claims, err := parseToken(string(token), s.secret)
	if err != nil {
		return nil, err
	}
	return &Identity{ID: claims.UserID, Email: claims.Email, DisplayName: claims.DisplayName}, nil
}

// Logout wipes the cached session.
func (s *Service) Logout(ctx context.Context) error {
	return s.meta.Delete(ctx, sessionMetadataKey)
}

func (s *Service) saveSession(ctx context.Context, id Identity) error {
	token, err := generateToken(id, s.secret, s.tokenTTL)
	if err != nil {
		return fmt.Errorf("token error: %w", err)
	}
	if err := s.meta.Set(ctx, sessionMetadataKey, []byte(token)); err != nil {
		return fmt.Errorf("session save error: %w", err)
	}
	return nil
}
