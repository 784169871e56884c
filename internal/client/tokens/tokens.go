// Package tokens is the Token Store: it persists the access/refresh credential
// pair in durable storage and guarantees that both halves always come from
// the same issuance.
package tokens

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/faktura/internal/client/storage"
	"github.com/golang-jwt/jwt/v5"
)

const (
	KeyAccessToken  = "access_token"
	KeyRefreshToken = "refresh_token"
)

var ErrIncompletePair = errors.New("credential pair has no access token")

// Pair is one issuance of credentials, as returned by /auth/login and
// /auth/refresh.
type Pair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// AccessExpiry reads the exp claim of a JWT access token without verifying
// the signature. It is informational only; the server remains the authority
// on validity. ok is false for opaque or malformed tokens.
func (p Pair) AccessExpiry() (exp time.Time, ok bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(p.AccessToken, claims); err != nil {
		return time.Time{}, false
	}
	t, err := claims.GetExpirationTime()
	if err != nil || t == nil {
		return time.Time{}, false
	}
	return t.Time, true
}

type Store struct {
	kv storage.Store
}

func NewStore(kv storage.Store) *Store {
	return &Store{kv: kv}
}

func (s *Store) AccessToken(ctx context.Context) (string, error) {
	v, _, err := s.kv.Get(ctx, KeyAccessToken)
	if err != nil {
		return "", fmt.Errorf("read access token: %w", err)
	}
	return v, nil
}

func (s *Store) RefreshToken(ctx context.Context) (string, error) {
	v, _, err := s.kv.Get(ctx, KeyRefreshToken)
	if err != nil {
		return "", fmt.Errorf("read refresh token: %w", err)
	}
	return v, nil
}

func (s *Store) Load(ctx context.Context) (Pair, error) {
	access, err := s.AccessToken(ctx)
	if err != nil {
		return Pair{}, err
	}
	refresh, err := s.RefreshToken(ctx)
	if err != nil {
		return Pair{}, err
	}
	return Pair{AccessToken: access, RefreshToken: refresh}, nil
}

// Save replaces the stored pair in one atomic write. A pair without a refresh
// token removes any previously stored refresh token in the same write.
func (s *Store) Save(ctx context.Context, p Pair) error {
	if p.AccessToken == "" {
		return ErrIncompletePair
	}
	c := storage.Change{Set: map[string]string{KeyAccessToken: p.AccessToken}}
	if p.RefreshToken != "" {
		c.Set[KeyRefreshToken] = p.RefreshToken
	} else {
		c.Delete = []string{KeyRefreshToken}
	}
	if err := s.kv.Update(ctx, c); err != nil {
		return fmt.Errorf("save tokens: %w", err)
	}
	return nil
}

// Clear removes both tokens.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.kv.Update(ctx, storage.Change{Delete: []string{KeyAccessToken, KeyRefreshToken}}); err != nil {
		return fmt.Errorf("clear tokens: %w", err)
	}
	return nil
}
