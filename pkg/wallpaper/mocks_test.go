package wallpaper

import (
	"context"

	"github.com/dixieflatline76/wallsearch/pkg/provider"
	"github.com/stretchr/testify/mock"
)

// MockCatalog implements provider.Catalog for testing
type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) Name() string {
	return "Wallhaven"
}

func (m *MockCatalog) Search(ctx context.Context, q provider.SearchQuery) ([]provider.Wallpaper, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]provider.Wallpaper), args.Error(1)
}

// MockDetector implements ResolutionDetector
type MockDetector struct {
	mock.Mock
}

func (m *MockDetector) Detect(ctx context.Context) provider.Resolution {
	args := m.Called(ctx)
	return args.Get(0).(provider.Resolution)
}

// MockThumbs implements ThumbnailFetcher
type MockThumbs struct {
	mock.Mock
}

func (m *MockThumbs) Fetch(ctx context.Context, thumbURL string) (string, error) {
	args := m.Called(ctx, thumbURL)
	return args.String(0), args.Error(1)
}

// MockSetter implements Setter
type MockSetter struct {
	mock.Mock
}

func (m *MockSetter) SetWallpaper(ctx context.Context, imagePath string) error {
	args := m.Called(ctx, imagePath)
	return args.Error(0)
}

// MockRunner implements sysinfo.Runner
type MockRunner struct {
	mock.Mock
}

func (m *MockRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	ret := m.Called(name, args)
	if ret.Get(0) == nil {
		return nil, ret.Error(1)
	}
	return ret.Get(0).([]byte), ret.Error(1)
}
