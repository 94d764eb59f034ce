package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/SscSPs/expense_tracker/internal/apperrors"
	"github.com/SscSPs/expense_tracker/internal/core/domain"
	"github.com/SscSPs/expense_tracker/internal/core/ports/clients"
	portsrepo "github.com/SscSPs/expense_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/expense_tracker/internal/core/ports/services"
)

// DefaultSettingsDebounce is how long settings changes are batched before they are written to the store.
const DefaultSettingsDebounce = 500 * time.Millisecond

// SettingsConfig holds what the settings service needs from configuration.
type SettingsConfig struct {
	// CachePath is the local mirror of the settings document. Empty disables it.
	CachePath string
	Debounce  time.Duration
}

// settingsService keeps the deployment settings in memory, mirrors them to a local cache file
// and writes them through to the store after a quiet period.
type settingsService struct {
	BaseService
	repo    portsrepo.AppSettingsRepository
	storage clients.ObjectStorage
	cfg     SettingsConfig

	mu      sync.Mutex
	current domain.AppSettings
	pending bool
	timer   *time.Timer
	closed  bool

	// flushMu serializes store writes so versions advance one at a time.
	flushMu sync.Mutex
}

// NewSettingsService creates the settings service. Call Load before serving requests.
func NewSettingsService(repo portsrepo.AppSettingsRepository, storage clients.ObjectStorage, cfg SettingsConfig, opts ...BaseOption) portssvc.SettingsSvc {
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultSettingsDebounce
	}
	svc := &settingsService{
		repo:    repo,
		storage: storage,
		cfg:     cfg,
		current: domain.DefaultAppSettings(),
	}
	svc.apply(opts)
	return svc
}

var _ portssvc.SettingsSvc = (*settingsService)(nil)

// Load paints from the cache, then reconciles with the store: the stored document wins,
// a missing one is seeded from the cache or, failing that, from the defaults.
func (s *settingsService) Load(ctx context.Context) (domain.AppSettings, error) {
	cached, hasCache := s.readCache(ctx)
	if hasCache {
		s.mu.Lock()
		s.current = cached
		s.mu.Unlock()
	}

	remote, err := s.repo.FindAppSettings(ctx)
	switch {
	case err == nil:
		s.adopt(ctx, *remote)
	case errors.Is(err, apperrors.ErrNotFound):
		seed := domain.DefaultAppSettings()
		if hasCache {
			seed.LogoURL = cached.LogoURL
		}
		created, createErr := s.repo.CreateAppSettings(ctx, seed)
		if createErr != nil {
			s.LogError(ctx, createErr, "Failed to seed app settings")
			return s.Get(), createErr
		}
		s.LogInfo(ctx, "App settings seeded", slog.Bool("from_cache", hasCache))
		s.adopt(ctx, *created)
	default:
		s.LogError(ctx, err, "Failed to load app settings, serving cached copy")
		return s.Get(), err
	}
	return s.Get(), nil
}

func (s *settingsService) Get() domain.AppSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func (s *settingsService) SetLogoURL(ctx context.Context, logoURL *string) domain.AppSettings {
	s.mu.Lock()
	s.current.LogoURL = logoURL
	snapshot := s.current
	s.scheduleLocked()
	s.mu.Unlock()

	s.writeCache(ctx, snapshot)
	return snapshot
}

func (s *settingsService) UploadLogo(ctx context.Context, fileName, contentType string, body io.Reader, size int64) (domain.AppSettings, error) {
	if s.storage == nil {
		return s.Get(), fmt.Errorf("object storage: %w", apperrors.ErrNotConfigured)
	}
	key := fmt.Sprintf("logos/%d_%s", s.NowMillis(), sanitizeFileName(fileName))
	url, err := s.storage.Upload(ctx, key, contentType, body, size)
	if err != nil {
		s.LogError(ctx, err, "Failed to upload logo", slog.String("key", key))
		return s.Get(), err
	}
	return s.SetLogoURL(ctx, &url), nil
}

// Flush writes the pending change now. On a version conflict the stored document is
// reloaded and replaces the local change.
func (s *settingsService) Flush(ctx context.Context) error {
	s.flushMu.Lock()
	defer s.flushMu.Unlock()

	s.mu.Lock()
	if !s.pending {
		s.mu.Unlock()
		return nil
	}
	s.pending = false
	snapshot := s.current
	s.mu.Unlock()

	var (
		saved *domain.AppSettings
		err   error
	)
	if snapshot.ID == "" {
		// Load never reached the store. Look again so an existing document is updated, not duplicated.
		snapshot, err = s.rebaseOnStored(ctx, snapshot)
	}
	if err == nil {
		if snapshot.ID == "" {
			saved, err = s.repo.CreateAppSettings(ctx, snapshot)
		} else {
			saved, err = s.repo.UpdateAppSettings(ctx, snapshot)
		}
	}
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			s.LogInfo(ctx, "App settings changed elsewhere, reloading", slog.Int64("based_on", snapshot.Version))
			if remote, findErr := s.repo.FindAppSettings(ctx); findErr == nil {
				s.adopt(ctx, *remote)
			}
			return err
		}
		s.mu.Lock()
		s.pending = true
		s.mu.Unlock()
		s.LogError(ctx, err, "Failed to save app settings")
		return err
	}

	s.mu.Lock()
	s.current.ID = saved.ID
	s.current.Version = saved.Version
	s.current.UpdatedAt = saved.UpdatedAt
	current := s.current
	s.mu.Unlock()

	s.writeCache(ctx, current)
	s.Publish(ctx, clients.EventSettingsUpdated, "", saved.ID, map[string]any{"version": saved.Version})
	return nil
}

func (s *settingsService) Close(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
	}
	s.mu.Unlock()
	return s.Flush(ctx)
}

func (s *settingsService) scheduleLocked() {
	s.pending = true
	if s.closed {
		return
	}
	if s.timer == nil {
		s.timer = time.AfterFunc(s.cfg.Debounce, s.flushAfterDebounce)
		return
	}
	s.timer.Reset(s.cfg.Debounce)
}

func (s *settingsService) flushAfterDebounce() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	_ = s.Flush(ctx)
}

// rebaseOnStored moves an unsaved change onto the stored document's identity and version.
// The snapshot keeps an empty ID when no document exists yet.
func (s *settingsService) rebaseOnStored(ctx context.Context, snapshot domain.AppSettings) (domain.AppSettings, error) {
	remote, err := s.repo.FindAppSettings(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return snapshot, nil
		}
		return snapshot, err
	}
	s.LogInfo(ctx, "Found stored app settings for unsaved change",
		slog.String("settings_id", remote.ID), slog.Int64("version", remote.Version))
	snapshot.ID = remote.ID
	snapshot.Version = remote.Version

	s.mu.Lock()
	s.current.ID = remote.ID
	s.current.Version = remote.Version
	s.mu.Unlock()
	return snapshot, nil
}

// adopt makes remote the current state and mirrors it to the cache.
func (s *settingsService) adopt(ctx context.Context, remote domain.AppSettings) {
	s.mu.Lock()
	s.current = remote
	s.pending = false
	s.mu.Unlock()
	s.writeCache(ctx, remote)
}

func (s *settingsService) readCache(ctx context.Context) (domain.AppSettings, bool) {
	if s.cfg.CachePath == "" {
		return domain.AppSettings{}, false
	}
	raw, err := os.ReadFile(s.cfg.CachePath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.LogError(ctx, err, "Failed to read settings cache", slog.String("path", s.cfg.CachePath))
		}
		return domain.AppSettings{}, false
	}
	var cached domain.AppSettings
	if err := json.Unmarshal(raw, &cached); err != nil {
		s.LogError(ctx, err, "Ignoring corrupt settings cache", slog.String("path", s.cfg.CachePath))
		return domain.AppSettings{}, false
	}
	return cached, true
}

// writeCache replaces the cache file atomically. Failures only cost the fast start-up path.
func (s *settingsService) writeCache(ctx context.Context, settings domain.AppSettings) {
	if s.cfg.CachePath == "" {
		return
	}
	raw, err := json.Marshal(settings)
	if err == nil {
		err = writeFileAtomic(s.cfg.CachePath, raw)
	}
	if err != nil {
		s.LogError(ctx, err, "Failed to write settings cache", slog.String("path", s.cfg.CachePath))
	}
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".settings-*.json")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
