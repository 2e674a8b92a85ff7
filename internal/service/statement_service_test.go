package service

import (
	"context"
	"testing"
	"time"

	"statement-analyzer/internal/metrics"
	"statement-analyzer/internal/storage"
	"statement-analyzer/internal/testutil"
	"statement-analyzer/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestStatementService(t *testing.T, completer Completer) (*StatementService, string) {
	t.Helper()
	logger := zap.NewNop()
	m := metrics.New()

	dir := t.TempDir()
	store, err := storage.NewTempStore(dir)
	require.NoError(t, err)

	profiles, err := LoadProfiles("", ProfileStatement)
	require.NoError(t, err)

	ingest := NewIngestService(store, &NativeExtractor{logger: logger}, config.EngineNative, config.DefaultMaxUploadSize, m, logger)
	analysis := NewAnalysisService(completer, 5*time.Second, m, logger)
	return NewStatementService(ingest, analysis, profiles, m, logger), dir
}

func TestStatementService_EndToEnd(t *testing.T) {
	completer := &mockCompleter{}
	completer.On("Complete", mock.Anything, mock.MatchedBy(isSummaryCall)).Return("Stable spending.", nil)
	completer.On("Complete", mock.Anything, mock.MatchedBy(isTransactionCall)).
		Return(`[{"date":"01/05/2024","description":"Grocery","amount":-20,"category":"food"}]`, nil)

	svc, dir := newTestStatementService(t, completer)
	data := testutil.BuildPDF("Paid $20 to Grocery on 01/05/2024", "Closing balance 980.00")

	resp, err := svc.Analyze(context.Background(), pdfUpload("may.pdf", data), "")
	require.NoError(t, err)

	assert.Equal(t, "Stable spending.", resp.Summary)
	assert.Equal(t, "may.pdf", resp.Filename)
	assert.Equal(t, 2, resp.Pages)
	assert.Greater(t, resp.TextLength, 0)
	assert.Equal(t, ProfileStatement, resp.Profile)

	require.NotNil(t, resp.Transactions)
	require.Len(t, *resp.Transactions, 1)
	assert.Equal(t, -20.0, (*resp.Transactions)[0].Amount)

	require.NotNil(t, resp.CategorySummary)
	require.Len(t, *resp.CategorySummary, 1)
	assert.Equal(t, "food", (*resp.CategorySummary)[0].Category)
	assert.Equal(t, 20.0, (*resp.CategorySummary)[0].Amount)

	assertDirEmpty(t, dir)
}

func TestStatementService_SummaryOnlyOmitsTransactions(t *testing.T) {
	completer := &mockCompleter{}
	completer.On("Complete", mock.Anything, mock.MatchedBy(isSummaryCall)).Return("summary", nil).Once()

	svc, _ := newTestStatementService(t, completer)

	resp, err := svc.Analyze(context.Background(), pdfUpload("s.pdf", testutil.BuildPDF("Salary 5000")), ProfileSummaryGPT4)
	require.NoError(t, err)
	assert.Nil(t, resp.Transactions)
	assert.Nil(t, resp.CategorySummary)
	assert.Equal(t, ProfileSummaryGPT4, resp.Profile)
}

func TestStatementService_UnknownProfile(t *testing.T) {
	completer := &mockCompleter{}
	svc, dir := newTestStatementService(t, completer)

	_, err := svc.Analyze(context.Background(), pdfUpload("s.pdf", testutil.BuildPDF("x")), "premium")
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	completer.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
	assertDirEmpty(t, dir)
}

func TestStatementService_NoFile(t *testing.T) {
	completer := &mockCompleter{}
	svc, _ := newTestStatementService(t, completer)

	_, err := svc.Analyze(context.Background(), nil, "")
	assert.ErrorIs(t, err, ErrNoFile)
	completer.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
}

func TestStatementService_CorruptPDF(t *testing.T) {
	completer := &mockCompleter{}
	svc, dir := newTestStatementService(t, completer)

	_, err := svc.Analyze(context.Background(), pdfUpload("bad.pdf", []byte("%PDF-1.4 truncated")), "")
	require.Error(t, err)
	assert.Equal(t, KindPDFExtraction, ErrorKind(err))
	completer.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
	assertDirEmpty(t, dir)
}

func TestStatementService_Deterministic(t *testing.T) {
	completer := &mockCompleter{}
	completer.On("Complete", mock.Anything, mock.MatchedBy(isSummaryCall)).Return("same", nil)
	completer.On("Complete", mock.Anything, mock.MatchedBy(isTransactionCall)).Return("no json here", nil)

	svc, _ := newTestStatementService(t, completer)
	data := testutil.BuildPDF("Opening balance 1000.00", "Closing balance 980.00")

	first, err := svc.Analyze(context.Background(), pdfUpload("a.pdf", data), "")
	require.NoError(t, err)
	second, err := svc.Analyze(context.Background(), pdfUpload("a.pdf", data), "")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	require.NotNil(t, first.Transactions)
	assert.Empty(t, *first.Transactions)
}
