package service

import (
	"context"
	"io"
	"mime"
	"time"

	"statement-analyzer/internal/metrics"
	"statement-analyzer/internal/models"

	"go.uber.org/zap"
)

const pdfMediaType = "application/pdf"

// FileStore is scratch storage for an upload while it is being extracted.
type FileStore interface {
	Save(r io.Reader, fileName string) (string, error)
	Read(path string) ([]byte, error)
	Remove(path string) error
}

// IngestService validates an upload, stages it in a FileStore and extracts
// its text. The staged file is removed before Ingest returns.
type IngestService struct {
	store     FileStore
	extractor PDFExtractor
	engine    string
	maxBytes  int64
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

func NewIngestService(
	store FileStore,
	extractor PDFExtractor,
	engine string,
	maxBytes int64,
	m *metrics.Metrics,
	logger *zap.Logger,
) *IngestService {
	return &IngestService{
		store:     store,
		extractor: extractor,
		engine:    engine,
		maxBytes:  maxBytes,
		metrics:   m,
		logger:    logger,
	}
}

func (s *IngestService) MaxBytes() int64 {
	return s.maxBytes
}

// ValidateUpload checks the declared type and size. It never reads content.
func (s *IngestService) ValidateUpload(doc *models.UploadedDocument) error {
	if doc == nil {
		return ErrNoFile
	}

	mediaType, _, err := mime.ParseMediaType(doc.ContentType)
	if err != nil || mediaType != pdfMediaType {
		return ErrNotPDF
	}

	if doc.Size > s.maxBytes {
		return fileTooLarge(s.maxBytes)
	}

	if doc.Open == nil {
		return ErrFileUnavailable
	}

	return nil
}

// Ingest validates doc, then extracts its text and page count.
func (s *IngestService) Ingest(ctx context.Context, doc *models.UploadedDocument) (*models.ExtractedText, error) {
	if err := s.ValidateUpload(doc); err != nil {
		return nil, err
	}

	src, err := doc.Open()
	if err != nil {
		s.logger.Warn("Failed to open uploaded file",
			zap.String("file_name", doc.FileName),
			zap.Error(err),
		)
		return nil, ErrFileUnavailable
	}
	defer src.Close()

	// one byte over the limit is enough to detect a lying Size header
	path, err := s.store.Save(io.LimitReader(src, s.maxBytes+1), doc.FileName)
	if err != nil {
		return nil, newServiceError(KindInternal, "failed to store upload", err)
	}
	defer s.cleanup(path)

	data, err := s.store.Read(path)
	if err != nil {
		return nil, newServiceError(KindInternal, "failed to read upload", err)
	}
	if int64(len(data)) > s.maxBytes {
		return nil, fileTooLarge(s.maxBytes)
	}
	s.metrics.ObserveUpload(int64(len(data)))

	start := time.Now()
	extracted, err := s.extractor.Extract(ctx, data)
	s.metrics.ObserveExtraction(s.engine, time.Since(start))
	if err != nil {
		return nil, newServiceError(KindPDFExtraction, "failed to extract text from PDF", err)
	}

	s.logger.Info("PDF text extracted",
		zap.String("file_name", doc.FileName),
		zap.Int("pages", extracted.Pages),
		zap.Int("chars", extracted.CharCount),
		zap.Duration("duration", time.Since(start)),
	)

	if extracted.Text == "" {
		s.logger.Warn("No text layer found in PDF, continuing with empty text",
			zap.String("file_name", doc.FileName),
			zap.Int("pages", extracted.Pages),
		)
	}

	return extracted, nil
}

func (s *IngestService) cleanup(path string) {
	if err := s.store.Remove(path); err != nil {
		s.metrics.RecordCleanupFailure()
		s.logger.Warn("Failed to remove temporary upload",
			zap.String("path", path),
			zap.Error(err),
		)
	}
}
