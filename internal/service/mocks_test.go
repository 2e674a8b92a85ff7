package service

import (
	"context"
	"errors"
	"io"
	"strings"

	"statement-analyzer/internal/models"

	"github.com/stretchr/testify/mock"
)

type mockExtractor struct {
	mock.Mock
}

func (m *mockExtractor) Extract(ctx context.Context, data []byte) (*models.ExtractedText, error) {
	args := m.Called(ctx, data)
	if v := args.Get(0); v != nil {
		return v.(*models.ExtractedText), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockCompleter struct {
	mock.Mock
}

func (m *mockCompleter) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

// isSummaryCall and isTransactionCall tell the two prompts apart in mock expectations.
func isSummaryCall(req CompletionRequest) bool {
	return strings.Contains(req.Prompt, "BANK STATEMENT TEXT")
}

func isTransactionCall(req CompletionRequest) bool {
	return strings.Contains(req.Prompt, "financial transactions")
}

func pdfUpload(name string, content []byte) *models.UploadedDocument {
	return &models.UploadedDocument{
		FileName:    name,
		ContentType: "application/pdf",
		Size:        int64(len(content)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader(string(content))), nil
		},
	}
}

func brokenUpload() *models.UploadedDocument {
	return &models.UploadedDocument{
		FileName:    "gone.pdf",
		ContentType: "application/pdf",
		Size:        10,
		Open: func() (io.ReadCloser, error) {
			return nil, errors.New("multipart: file vanished")
		},
	}
}
