package app

import (
	"context"
	"testing"
	"time"

	"statement-analyzer/internal/metrics"
	"statement-analyzer/internal/service"
	"statement-analyzer/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		Upload: config.UploadConfig{MaxBytes: config.DefaultMaxUploadSize, TempDir: t.TempDir()},
		Completion: config.CompletionConfig{
			Provider: config.ProviderOpenAI,
			Timeout:  time.Second,
		},
		Analyzer: config.AnalyzerConfig{Profile: service.ProfileStatement, PDFEngine: config.EngineNative},
	}
}

func TestNew(t *testing.T) {
	a, err := New(testConfig(t), metrics.New(), zap.NewNop())
	require.NoError(t, err)
	defer a.Close()

	assert.Equal(t, service.ProfileStatement, a.Profiles.Default())
	assert.NotNil(t, a.Statements)
}

func TestNew_WithoutCredentialFailsPerRequest(t *testing.T) {
	a, err := New(testConfig(t), metrics.New(), zap.NewNop())
	require.NoError(t, err)

	_, err = a.Statements.Analyze(context.Background(), nil, "")
	assert.ErrorIs(t, err, service.ErrNoFile)
}

func TestNew_BadEngine(t *testing.T) {
	cfg := testConfig(t)
	cfg.Analyzer.PDFEngine = "ocr"

	_, err := New(cfg, metrics.New(), zap.NewNop())
	assert.Error(t, err)
}

func TestNew_UnknownDefaultProfile(t *testing.T) {
	cfg := testConfig(t)
	cfg.Analyzer.Profile = "missing"

	_, err := New(cfg, metrics.New(), zap.NewNop())
	assert.Error(t, err)
}
