package auth

import (
	"context"
	"errors"
	"slot_math/pkg/pass"
	"slot_math/pkg/token"
	"testing"
	"time"
)

type jwtConfig struct {
	hash []byte
}

func (c jwtConfig) AccessTokenSecretKey() []byte { return []byte("secret") }

func (c jwtConfig) AccessTokenDuration() time.Duration { return time.Minute }

func (c jwtConfig) OperatorKeyHash() []byte { return c.hash }

func TestIssueToken(t *testing.T) {
	hash, err := pass.HashPassword("op-key")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	s := NewService(jwtConfig{hash: []byte(hash)}, nil)

	tok, err := s.IssueToken(context.Background(), "op-key")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	claims, err := token.VerifyToken(tok, []byte("secret"))
	if err != nil || claims.Subject != OperatorSubject {
		t.Fatalf("verify: %+v %v", claims, err)
	}

	if _, err = s.IssueToken(context.Background(), "wrong"); !errors.Is(err, ErrInvalidOperatorKey) {
		t.Fatalf("expected ErrInvalidOperatorKey, got %v", err)
	}
}
