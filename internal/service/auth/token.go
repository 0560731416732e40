package auth

import (
	"context"
	"errors"
	"slot_math/pkg/pass"
	"slot_math/pkg/token"
)

var ErrInvalidOperatorKey = errors.New("invalid operator key")

// IssueToken выдает access токен, если ключ совпал с bcrypt хешем из конфигурации
func (s *serv) IssueToken(_ context.Context, operatorKey string) (string, error) {
	if operatorKey == "" || !pass.VerifyPassword(string(s.jwtConfig.OperatorKeyHash()), operatorKey) {
		s.log.Warn("operator key rejected")
		return "", ErrInvalidOperatorKey
	}

	return token.GenerateAccessToken(
		OperatorSubject,
		s.jwtConfig.AccessTokenSecretKey(),
		s.jwtConfig.AccessTokenDuration())
}
