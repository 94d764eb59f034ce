package services_test

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/expense_tracker/internal/apperrors"
	"github.com/SscSPs/expense_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/expense_tracker/internal/core/ports/services"
	"github.com/SscSPs/expense_tracker/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type SettingsServiceTestSuite struct {
	suite.Suite
	ctx       context.Context
	repo      *MockSettingsRepository
	storage   *MockObjectStorage
	cachePath string
}

func (suite *SettingsServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.repo = new(MockSettingsRepository)
	suite.storage = new(MockObjectStorage)
	suite.cachePath = filepath.Join(suite.T().TempDir(), "cache", "app_settings.json")
}

func TestSettingsServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SettingsServiceTestSuite))
}

func (suite *SettingsServiceTestSuite) newService(debounce time.Duration) portssvc.SettingsSvc {
	return services.NewSettingsService(suite.repo, suite.storage, services.SettingsConfig{
		CachePath: suite.cachePath,
		Debounce:  debounce,
	}, services.WithClock(fixedClock))
}

func (suite *SettingsServiceTestSuite) writeCache(settings domain.AppSettings) {
	raw, err := json.Marshal(settings)
	suite.Require().NoError(err)
	suite.Require().NoError(os.MkdirAll(filepath.Dir(suite.cachePath), 0o755))
	suite.Require().NoError(os.WriteFile(suite.cachePath, raw, 0o644))
}

func (suite *SettingsServiceTestSuite) readCache() domain.AppSettings {
	raw, err := os.ReadFile(suite.cachePath)
	suite.Require().NoError(err)
	var cached domain.AppSettings
	suite.Require().NoError(json.Unmarshal(raw, &cached))
	return cached
}

func (suite *SettingsServiceTestSuite) loadRemote(svc portssvc.SettingsSvc, remote domain.AppSettings) {
	suite.repo.On("FindAppSettings", mock.Anything).Return(&remote, nil).Once()
	_, err := svc.Load(suite.ctx)
	suite.Require().NoError(err)
}

func (suite *SettingsServiceTestSuite) TestLoad_RemoteWins() {
	suite.writeCache(domain.AppSettings{ID: "s1", LogoURL: strPtr("https://cdn.test/stale.png"), Version: 1})
	svc := suite.newService(time.Hour)

	suite.loadRemote(svc, domain.AppSettings{ID: "s1", LogoURL: strPtr("https://cdn.test/fresh.png"), Version: 3})

	got := svc.Get()
	suite.Equal(int64(3), got.Version)
	suite.Equal("https://cdn.test/fresh.png", *got.LogoURL)
	suite.Equal(got, suite.readCache())
}

func (suite *SettingsServiceTestSuite) TestLoad_SeedsFromCache() {
	suite.writeCache(domain.AppSettings{LogoURL: strPtr("https://cdn.test/cached.png")})
	svc := suite.newService(time.Hour)

	suite.repo.On("FindAppSettings", mock.Anything).Return(nil, apperrors.ErrNotFound).Once()
	suite.repo.On("CreateAppSettings", mock.Anything, mock.MatchedBy(func(s domain.AppSettings) bool {
		return s.LogoURL != nil && *s.LogoURL == "https://cdn.test/cached.png"
	})).Return(&domain.AppSettings{ID: "s1", LogoURL: strPtr("https://cdn.test/cached.png"), Version: 1}, nil).Once()

	got, err := svc.Load(suite.ctx)

	suite.Require().NoError(err)
	suite.Equal("s1", got.ID)
	suite.Equal(int64(1), got.Version)
	suite.repo.AssertExpectations(suite.T())
}

func (suite *SettingsServiceTestSuite) TestLoad_SeedsDefaultsWithoutCache() {
	svc := suite.newService(time.Hour)

	suite.repo.On("FindAppSettings", mock.Anything).Return(nil, apperrors.ErrNotFound).Once()
	suite.repo.On("CreateAppSettings", mock.Anything, domain.DefaultAppSettings()).
		Return(&domain.AppSettings{ID: "s1", Version: 1}, nil).Once()

	got, err := svc.Load(suite.ctx)

	suite.Require().NoError(err)
	suite.Nil(got.LogoURL)
	suite.repo.AssertExpectations(suite.T())
}

func (suite *SettingsServiceTestSuite) TestLoad_StoreDownServesCache() {
	suite.writeCache(domain.AppSettings{ID: "s1", LogoURL: strPtr("https://cdn.test/cached.png"), Version: 2})
	svc := suite.newService(time.Hour)

	suite.repo.On("FindAppSettings", mock.Anything).Return(nil, assert.AnError).Once()

	got, err := svc.Load(suite.ctx)

	suite.ErrorIs(err, assert.AnError)
	suite.Equal("https://cdn.test/cached.png", *got.LogoURL)
	suite.Equal(int64(2), got.Version)
}

func (suite *SettingsServiceTestSuite) TestSetLogoURL_BatchesUntilClose() {
	svc := suite.newService(time.Hour)
	suite.loadRemote(svc, domain.AppSettings{ID: "s1", Version: 3})

	svc.SetLogoURL(suite.ctx, strPtr("https://cdn.test/one.png"))
	got := svc.SetLogoURL(suite.ctx, strPtr("https://cdn.test/two.png"))
	suite.Equal("https://cdn.test/two.png", *got.LogoURL)
	// the cache is written immediately
	suite.Equal("https://cdn.test/two.png", *suite.readCache().LogoURL)

	suite.repo.On("UpdateAppSettings", mock.Anything, mock.MatchedBy(func(s domain.AppSettings) bool {
		return s.ID == "s1" && s.Version == 3 && *s.LogoURL == "https://cdn.test/two.png"
	})).Return(&domain.AppSettings{ID: "s1", LogoURL: strPtr("https://cdn.test/two.png"), Version: 4, UpdatedAt: 99}, nil).Once()

	suite.Require().NoError(svc.Close(suite.ctx))

	suite.Equal(int64(4), svc.Get().Version)
	suite.Equal(int64(4), suite.readCache().Version)
	suite.repo.AssertNumberOfCalls(suite.T(), "UpdateAppSettings", 1)
}

func (suite *SettingsServiceTestSuite) TestSetLogoURL_DebouncedWrite() {
	svc := suite.newService(20 * time.Millisecond)
	suite.loadRemote(svc, domain.AppSettings{ID: "s1", Version: 1})

	done := make(chan struct{})
	suite.repo.On("UpdateAppSettings", mock.Anything, mock.AnythingOfType("domain.AppSettings")).
		Return(&domain.AppSettings{ID: "s1", Version: 2}, nil).
		Run(func(mock.Arguments) { close(done) }).Once()

	svc.SetLogoURL(suite.ctx, strPtr("https://cdn.test/logo.png"))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		suite.FailNow("debounced write did not happen")
	}
	suite.Eventually(func() bool { return svc.Get().Version == 2 }, time.Second, 10*time.Millisecond)
	suite.Require().NoError(svc.Close(suite.ctx))
}

func (suite *SettingsServiceTestSuite) TestFlush_ConflictAdoptsRemote() {
	svc := suite.newService(time.Hour)
	suite.loadRemote(svc, domain.AppSettings{ID: "s1", Version: 3})

	svc.SetLogoURL(suite.ctx, strPtr("https://cdn.test/mine.png"))
	suite.repo.On("UpdateAppSettings", mock.Anything, mock.Anything).Return(nil, apperrors.ErrConflict).Once()
	suite.repo.On("FindAppSettings", mock.Anything).
		Return(&domain.AppSettings{ID: "s1", LogoURL: strPtr("https://cdn.test/theirs.png"), Version: 5}, nil).Once()

	err := svc.Flush(suite.ctx)

	suite.ErrorIs(err, apperrors.ErrConflict)
	got := svc.Get()
	suite.Equal(int64(5), got.Version)
	suite.Equal("https://cdn.test/theirs.png", *got.LogoURL)
	// nothing is left to write
	suite.NoError(svc.Flush(suite.ctx))
	suite.repo.AssertNumberOfCalls(suite.T(), "UpdateAppSettings", 1)
}

func (suite *SettingsServiceTestSuite) TestFlush_RetriesAfterFailure() {
	svc := suite.newService(time.Hour)
	suite.loadRemote(svc, domain.AppSettings{ID: "s1", Version: 1})

	svc.SetLogoURL(suite.ctx, nil)
	suite.repo.On("UpdateAppSettings", mock.Anything, mock.Anything).Return(nil, assert.AnError).Once()
	suite.ErrorIs(svc.Flush(suite.ctx), assert.AnError)

	suite.repo.On("UpdateAppSettings", mock.Anything, mock.Anything).Return(&domain.AppSettings{ID: "s1", Version: 2}, nil).Once()
	suite.Require().NoError(svc.Flush(suite.ctx))
	suite.Equal(int64(2), svc.Get().Version)
}

func (suite *SettingsServiceTestSuite) TestFlush_AfterFailedLoadUpdatesStoredDocument() {
	svc := suite.newService(time.Hour)

	suite.repo.On("FindAppSettings", mock.Anything).Return(nil, assert.AnError).Once()
	_, err := svc.Load(suite.ctx)
	suite.Require().ErrorIs(err, assert.AnError)
	suite.Empty(svc.Get().ID)

	svc.SetLogoURL(suite.ctx, strPtr("https://cdn.test/new.png"))

	suite.repo.On("FindAppSettings", mock.Anything).
		Return(&domain.AppSettings{ID: "s1", LogoURL: strPtr("https://cdn.test/old.png"), Version: 4}, nil).Once()
	suite.repo.On("UpdateAppSettings", mock.Anything, mock.MatchedBy(func(s domain.AppSettings) bool {
		return s.ID == "s1" && s.Version == 4 && *s.LogoURL == "https://cdn.test/new.png"
	})).Return(&domain.AppSettings{ID: "s1", LogoURL: strPtr("https://cdn.test/new.png"), Version: 5}, nil).Once()

	suite.Require().NoError(svc.Flush(suite.ctx))

	got := svc.Get()
	suite.Equal("s1", got.ID)
	suite.Equal(int64(5), got.Version)
	suite.Equal("s1", suite.readCache().ID)
	suite.repo.AssertNotCalled(suite.T(), "CreateAppSettings", mock.Anything, mock.Anything)
	suite.repo.AssertExpectations(suite.T())
}

func (suite *SettingsServiceTestSuite) TestFlush_StoreStillDownKeepsChangePending() {
	svc := suite.newService(time.Hour)
	svc.SetLogoURL(suite.ctx, strPtr("https://cdn.test/new.png"))

	suite.repo.On("FindAppSettings", mock.Anything).Return(nil, assert.AnError).Once()
	suite.ErrorIs(svc.Flush(suite.ctx), assert.AnError)
	suite.repo.AssertNotCalled(suite.T(), "CreateAppSettings", mock.Anything, mock.Anything)

	suite.repo.On("FindAppSettings", mock.Anything).Return(nil, apperrors.ErrNotFound).Once()
	suite.repo.On("CreateAppSettings", mock.Anything, mock.AnythingOfType("domain.AppSettings")).
		Return(&domain.AppSettings{ID: "s1", LogoURL: strPtr("https://cdn.test/new.png"), Version: 1}, nil).Once()
	suite.Require().NoError(svc.Flush(suite.ctx))
	suite.Equal("s1", svc.Get().ID)
}

func (suite *SettingsServiceTestSuite) TestFlush_NothingPending() {
	svc := suite.newService(time.Hour)
	suite.NoError(svc.Flush(suite.ctx))
	suite.repo.AssertNotCalled(suite.T(), "UpdateAppSettings", mock.Anything, mock.Anything)
	suite.repo.AssertNotCalled(suite.T(), "CreateAppSettings", mock.Anything, mock.Anything)
}

func (suite *SettingsServiceTestSuite) TestUploadLogo() {
	svc := suite.newService(time.Hour)
	body := strings.NewReader("png-bytes")
	key := fmt.Sprintf("logos/%d_logo.png", fixedNow.UnixMilli())
	suite.storage.On("Upload", mock.Anything, key, "image/png", body, int64(9)).
		Return("https://cdn.test/"+key, nil).Once()

	got, err := svc.UploadLogo(suite.ctx, "logo.png", "image/png", body, 9)

	suite.Require().NoError(err)
	suite.Equal("https://cdn.test/"+key, *got.LogoURL)

	// never loaded and nothing stored, so the first write creates the document
	suite.repo.On("FindAppSettings", mock.Anything).Return(nil, apperrors.ErrNotFound).Once()
	suite.repo.On("CreateAppSettings", mock.Anything, mock.AnythingOfType("domain.AppSettings")).
		Return(&domain.AppSettings{ID: "s1", LogoURL: got.LogoURL, Version: 1}, nil).Once()
	suite.Require().NoError(svc.Close(suite.ctx))
	suite.Equal("s1", svc.Get().ID)
}

func TestUploadLogo_NoStorage(t *testing.T) {
	svc := services.NewSettingsService(new(MockSettingsRepository), nil, services.SettingsConfig{}, services.WithClock(fixedClock))
	_, err := svc.UploadLogo(context.Background(), "logo.png", "image/png", strings.NewReader("x"), 1)
	assert.ErrorIs(t, err, apperrors.ErrNotConfigured)
}
