package indent

import (
	"fmt"
	"log/slog"
)

// Settings supplies configuration read when a tree is built.
type Settings interface {
	AutoCloseComments() (bool, error)
}

// defaultAutoCloseComments is used when settings are unavailable.
const defaultAutoCloseComments = false

// resolveTreeConfig reads the tree configuration from s. A nil collaborator,
// an error or a panic yields the defaults; failures are logged, never
// returned.
func resolveTreeConfig(s Settings, logger *slog.Logger) (cfg TreeConfig) {
	cfg.AutoCloseComments = defaultAutoCloseComments
	if s == nil {
		return cfg
	}

	defer func() {
		if r := recover(); r != nil {
			logger.Debug("settings panicked, using defaults", "panic", fmt.Sprint(r))
			cfg.AutoCloseComments = defaultAutoCloseComments
		}
	}()

	v, err := s.AutoCloseComments()
	if err != nil {
		logger.Debug("settings unavailable, using defaults", "error", err)
		return cfg
	}
	cfg.AutoCloseComments = v
	return cfg
}

// StaticSettings is a Settings with fixed values.
type StaticSettings struct {
	CloseComments bool
}

// AutoCloseComments returns the fixed value.
func (s StaticSettings) AutoCloseComments() (bool, error) {
	return s.CloseComments, nil
}
