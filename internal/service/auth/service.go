package auth

import (
	"slot_math/internal/config"
	"slot_math/internal/service"

	"go.uber.org/zap"
)

// OperatorSubject subject токена оператора
const OperatorSubject = "operator"

type serv struct {
	jwtConfig config.JWTConfig
	log       *zap.Logger
}

func NewService(jwtConfig config.JWTConfig, log *zap.Logger) service.AuthService {
	if log == nil {
		log = zap.NewNop()
	}
	return &serv{
		jwtConfig: jwtConfig,
		log:       log,
	}
}
