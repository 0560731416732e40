package model

import (
	"errors"
	"fmt"
)

// ConfigurationError фатальная ошибка конфигурации, прерывает прогон режима
type ConfigurationError struct {
	Mode string
	Err  error
}

func (e *ConfigurationError) Error() string {
	if e.Mode == "" {
		return fmt.Sprintf("configuration error: %v", e.Err)
	}
	return fmt.Sprintf("configuration error in mode %q: %v", e.Mode, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// NewConfigurationError оборачивает форматированную ошибку режима mode
func NewConfigurationError(mode string, format string, args ...any) error {
	return &ConfigurationError{Mode: mode, Err: fmt.Errorf(format, args...)}
}

// ForceUnsatisfiable превышен лимит перегенераций для форсированного раунда
type ForceUnsatisfiable struct {
	Mode      string
	Criteria  string
	Discarded int
}

func (e *ForceUnsatisfiable) Error() string {
	return fmt.Sprintf("mode %q criteria %q: forced outcome not reached, discarded %d rounds", e.Mode, e.Criteria, e.Discarded)
}

// InfeasibleTarget цель оптимизатора недостижима в границах весов
type InfeasibleTarget struct {
	Mode     string
	Criteria string
	Target   float64
	Low      float64
	High     float64
	Reason   string
}

func (e *InfeasibleTarget) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("mode %q criteria %q: infeasible target %.6f: %s", e.Mode, e.Criteria, e.Target, e.Reason)
	}
	return fmt.Sprintf("mode %q criteria %q: infeasible target %.6f, reachable range [%.6f, %.6f]",
		e.Mode, e.Criteria, e.Target, e.Low, e.High)
}

// IOError ошибка записи артефактов режима
type IOError struct {
	Mode string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("publish mode %q: %s: %v", e.Mode, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

var (
	ErrModeNotFound = errors.New("mode not found")
	ErrBookNotFound = errors.New("book not found")
	ErrDuplicateID  = errors.New("duplicate book id")
	ErrIncomplete   = errors.New("round log ids differ from lookup table ids")
)
