// Package preference keeps the persisted theme preference and resolves it to
// a concrete colour scheme.
package preference

import (
	"context"
	"log/slog"
	"sync"

	"github.com/couchcryptid/dwlr-monitor/internal/domain"
	"github.com/couchcryptid/dwlr-monitor/internal/observability"
)

// ThemeKey is the store key holding the theme preference.
const ThemeKey = "theme_preference"

// Store is a string key/value store.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}

// Service holds the in-memory theme preference. Store failures never reach
// callers: reads fall back to the default and writes are logged.
type Service struct {
	store   Store
	logger  *slog.Logger
	metrics *observability.Metrics

	// writeMu orders writers so the stored value matches the last in-memory
	// update. mu alone guards current for readers.
	writeMu sync.Mutex
	mu      sync.RWMutex
	current domain.ThemePreference
}

// NewService returns a service holding the default preference until Load runs.
func NewService(store Store, logger *slog.Logger, metrics *observability.Metrics) *Service {
	return &Service{
		store:   store,
		logger:  logger,
		metrics: metrics,
		current: domain.DefaultTheme,
	}
}

// Load reads the stored preference once. A missing key, a read failure or an
// unrecognised value all leave the default in place.
func (s *Service) Load(ctx context.Context) domain.ThemePreference {
	pref := domain.DefaultTheme

	raw, ok, err := s.store.Get(ctx, ThemeKey)
	switch {
	case err != nil:
		s.metrics.PreferenceErrors.WithLabelValues("read").Inc()
		s.logger.Warn("theme preference read failed, using default", "default", pref, "error", err)
	case !ok:
		s.logger.Debug("no stored theme preference, using default", "default", pref)
	default:
		parsed, perr := domain.ParseThemePreference(raw)
		if perr != nil {
			s.logger.Warn("stored theme preference invalid, using default", "value", raw, "default", pref)
		} else {
			pref = parsed
		}
	}

	s.mu.Lock()
	s.current = pref
	s.mu.Unlock()

	s.logger.Info("theme preference loaded", "preference", pref)
	return pref
}

// Current returns the in-memory preference.
func (s *Service) Current() domain.ThemePreference {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Set updates the preference and persists it. Only an invalid preference is
// an error; the in-memory value changes even when the write fails.
func (s *Service) Set(ctx context.Context, pref domain.ThemePreference) error {
	if _, err := domain.ParseThemePreference(string(pref)); err != nil {
		return err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	s.current = pref
	s.mu.Unlock()

	s.persist(ctx, pref)
	return nil
}

// Toggle flips the scheme the user currently sees and stores the result as an
// explicit light or dark preference.
func (s *Service) Toggle(ctx context.Context, system domain.Scheme) domain.ThemePreference {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	next := domain.ThemeLight
	if domain.Resolve(s.current, system).Flip() == domain.SchemeDark {
		next = domain.ThemeDark
	}
	s.current = next
	s.mu.Unlock()

	s.persist(ctx, next)
	return next
}

// Scheme resolves the current preference against the device scheme.
func (s *Service) Scheme(system domain.Scheme) domain.Scheme {
	return domain.Resolve(s.Current(), system)
}

// Palette returns the palette for the resolved scheme.
func (s *Service) Palette(system domain.Scheme) domain.Palette {
	return domain.PaletteFor(s.Scheme(system))
}

func (s *Service) persist(ctx context.Context, pref domain.ThemePreference) {
	if err := s.store.Set(ctx, ThemeKey, string(pref)); err != nil {
		s.metrics.PreferenceErrors.WithLabelValues("write").Inc()
		s.logger.Error("theme preference write failed", "preference", pref, "error", err)
		return
	}
	s.logger.Info("theme preference saved", "preference", pref)
}
