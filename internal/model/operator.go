package model

import (
	"github.com/golang-jwt/jwt/v5"
)

// OperatorClaims claims токена оператора для API отчетов
type OperatorClaims struct {
	jwt.RegisteredClaims
}
