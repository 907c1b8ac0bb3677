package minio

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"time"

	"github.com/bryanmylee/LetsMeetService/internal/model"
)

var (
	_ model.UserStore         = (*DocumentStore)(nil)
	_ model.RefreshTokenStore = (*DocumentStore)(nil)
)

// userDocument is the JSON object stored per event user.
type userDocument struct {
	EventID      string    `json:"eventId"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"passwordHash"`
	IsAdmin      bool      `json:"isAdmin"`
	RefreshToken string    `json:"refreshToken,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// DocumentStore keeps one JSON document per event user in object storage.
// Updates are read-modify-write without locking; concurrent writers race.
type DocumentStore struct {
	objects model.ObjectStorage
	now     func() time.Time
}

func NewDocumentStore(objects model.ObjectStorage) *DocumentStore {
	return &DocumentStore{objects: objects, now: time.Now}
}

// UserKey returns the object key of an event user's document.
func UserKey(eventID, username string) string {
	return path.Join("events", url.PathEscape(eventID), "users", url.PathEscape(username)+".json")
}

func (s *DocumentStore) Create(ctx context.Context, user model.User) error {
	key := UserKey(user.EventID, user.Username)

	exists, err := s.objects.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	if exists {
		return model.ErrDuplicateUser
	}

	now := s.now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	if err := s.save(ctx, toDocument(user)); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (s *DocumentStore) GetByUsername(ctx context.Context, eventID, username string) (model.User, error) {
	doc, err := s.load(ctx, eventID, username)
	if err != nil {
		return model.User{}, err
	}
	return doc.user(), nil
}

func (s *DocumentStore) GetRefreshToken(ctx context.Context, eventID, username string) (string, error) {
	doc, err := s.load(ctx, eventID, username)
	if err != nil {
		return "", err
	}
	return doc.RefreshToken, nil
}

func (s *DocumentStore) SetRefreshToken(ctx context.Context, eventID, username, token string) error {
	doc, err := s.load(ctx, eventID, username)
	if err != nil {
		return err
	}

	doc.RefreshToken = token
	doc.UpdatedAt = s.now().UTC()

	if err := s.save(ctx, doc); err != nil {
		return fmt.Errorf("failed to set refresh token: %w", err)
	}
	return nil
}

func (s *DocumentStore) ClearRefreshToken(ctx context.Context, eventID, username string) error {
	return s.SetRefreshToken(ctx, eventID, username, "")
}

func (s *DocumentStore) Ping(ctx context.Context) error {
	if p, ok := s.objects.(model.Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

func (s *DocumentStore) load(ctx context.Context, eventID, username string) (userDocument, error) {
	rc, err := s.objects.Download(ctx, UserKey(eventID, username))
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return userDocument{}, model.ErrNotFound
		}
		return userDocument{}, fmt.Errorf("failed to load user: %w", err)
	}
	defer rc.Close()

	body, err := io.ReadAll(rc)
	if err != nil {
		if IsNotFound(err) {
			return userDocument{}, model.ErrNotFound
		}
		return userDocument{}, fmt.Errorf("failed to read user: %w", err)
	}

	var doc userDocument
	if err := json.Unmarshal(body, &doc); err != nil {
		return userDocument{}, fmt.Errorf("failed to decode user: %w", err)
	}
	return doc, nil
}

func (s *DocumentStore) save(ctx context.Context, doc userDocument) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}
	return s.objects.Upload(ctx, UserKey(doc.EventID, doc.Username), bytes.NewReader(body), int64(len(body)))
}

func toDocument(u model.User) userDocument {
	return userDocument{
		EventID:      u.EventID,
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		IsAdmin:      u.IsAdmin,
		RefreshToken: u.RefreshToken,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func (d userDocument) user() model.User {
	return model.User{
		EventID:      d.EventID,
		Username:     d.Username,
		PasswordHash: d.PasswordHash,
		IsAdmin:      d.IsAdmin,
		RefreshToken: d.RefreshToken,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}
