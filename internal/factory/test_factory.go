package factory

import (
	"time"

	"github.com/memoryxin/battlechess/internal/dependencies/mocks"
	"github.com/memoryxin/battlechess/internal/logging"
	"github.com/memoryxin/battlechess/internal/match"
	"github.com/memoryxin/battlechess/internal/services/auth"
	"github.com/memoryxin/battlechess/internal/storage/memory"
	"github.com/memoryxin/battlechess/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()
	logger := testutil.NopLogger()

	app := &App{
		Storage:     store,
		Clock:       mockClock,
		Random:      mockRandom,
		AuthService: auth.New(store, logger),
		Pool:        match.NewPool(),
		Audit:       logging.Nop(),
	}

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}
