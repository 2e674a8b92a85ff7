package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"statement-analyzer/internal/models"
	"statement-analyzer/pkg/config"

	"github.com/dslipak/pdf"
	"github.com/gen2brain/go-fitz"
	"go.uber.org/zap"
)

// PDFExtractor turns raw PDF bytes into plain text and a page count.
type PDFExtractor interface {
	Extract(ctx context.Context, data []byte) (*models.ExtractedText, error)
}

// NewPDFExtractor returns the extractor for the configured engine.
func NewPDFExtractor(engine string, logger *zap.Logger) (PDFExtractor, error) {
	switch engine {
	case config.EngineFitz, "":
		return &FitzExtractor{logger: logger}, nil
	case config.EngineNative:
		return &NativeExtractor{logger: logger}, nil
	default:
		return nil, fmt.Errorf("unknown PDF engine: %s", engine)
	}
}

// FitzExtractor uses MuPDF through go-fitz.
type FitzExtractor struct {
	logger *zap.Logger
}

func (e *FitzExtractor) Extract(ctx context.Context, data []byte) (*models.ExtractedText, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	var textBuilder strings.Builder
	pages := doc.NumPage()
	for i := 0; i < pages; i++ {
		pageText, err := doc.Text(i)
		if err != nil {
			e.logger.Warn("Failed to extract text from page",
				zap.Int("page", i+1),
				zap.Error(err),
			)
			continue
		}
		if pageText != "" {
			textBuilder.WriteString(pageText)
			textBuilder.WriteString("\n")
		}
	}

	return newExtractedText(textBuilder.String(), pages), nil
}

// NativeExtractor is a pure-Go extractor built on dslipak/pdf. It needs no
// shared library, at the cost of weaker layout handling than MuPDF.
type NativeExtractor struct {
	logger *zap.Logger
}

func (e *NativeExtractor) Extract(ctx context.Context, data []byte) (result *models.ExtractedText, err error) {
	// the parser panics on some malformed content streams
	defer func() {
		if r := recover(); r != nil {
			result, err = nil, fmt.Errorf("malformed PDF: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}

	plain, err := r.GetPlainText()
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return nil, fmt.Errorf("failed to read PDF text: %w", err)
	}

	return newExtractedText(buf.String(), r.NumPage()), nil
}

func newExtractedText(raw string, pages int) *models.ExtractedText {
	text := strings.TrimSpace(sanitizeUTF8(raw))
	return &models.ExtractedText{
		Text:      text,
		Pages:     pages,
		CharCount: utf8.RuneCountInString(text),
	}
}
