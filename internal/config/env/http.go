package env

import (
	"os"
	"slot_math/internal/config"
)

const (
	httpAddrEnvName = "HTTP_ADDR"
)

type httpConfig struct {
	address string
}

// NewHTTPConfig адрес API отчетов. ok=false - API не поднимается.
func NewHTTPConfig() (cfg config.HTTPConfig, ok bool) {
	addr := os.Getenv(httpAddrEnvName)
	if len(addr) == 0 {
		return nil, false
	}
	return &httpConfig{address: addr}, true
}

func (c *httpConfig) Address() string {
	return c.address
}
