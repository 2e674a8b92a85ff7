// Command analyze-pdf runs the statement analysis pipeline on local PDF files
// and prints one JSON result per file.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"statement-analyzer/internal/app"
	"statement-analyzer/internal/metrics"
	"statement-analyzer/internal/models"
	"statement-analyzer/pkg/config"
	"statement-analyzer/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	profile := flag.String("profile", "", "analysis profile (defaults to ANALYZER_PROFILE)")
	engine := flag.String("engine", "", "PDF engine: fitz or native (defaults to PDF_ENGINE)")
	compact := flag.Bool("compact", false, "print compact JSON")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] statement.pdf [more.pdf ...]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *engine != "" {
		cfg.Analyzer.PDFEngine = *engine
	}

	// Logs go to stderr via zap; results go to stdout.
	if err := logger.Init(cfg.Logger.Level, cfg.Logger.Format); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	application, err := app.New(cfg, metrics.New(), appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize application", zap.Error(err))
	}
	defer application.Close()

	enc := json.NewEncoder(os.Stdout)
	if !*compact {
		enc.SetIndent("", "  ")
	}

	ctx := context.Background()
	failed := 0
	for _, path := range flag.Args() {
		doc, err := localDocument(path)
		if err != nil {
			appLogger.Error("Failed to open PDF file", zap.String("path", path), zap.Error(err))
			failed++
			continue
		}

		appLogger.Info("Processing PDF file", zap.String("path", path))

		resp, err := application.Statements.Analyze(ctx, doc, *profile)
		if err != nil {
			appLogger.Error("Failed to analyze PDF file", zap.String("path", path), zap.Error(err))
			failed++
			continue
		}

		if err := enc.Encode(resp); err != nil {
			appLogger.Fatal("Failed to write result", zap.Error(err))
		}
	}

	if failed > 0 {
		appLogger.Warn("Some files could not be analyzed", zap.Int("failed", failed), zap.Int("total", flag.NArg()))
		logger.Sync()
		os.Exit(1)
	}
}

// localDocument describes a file on disk the way an upload would be described.
// The content type is sniffed from the leading bytes.
func localDocument(path string) (*models.UploadedDocument, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	head := make([]byte, 512)
	n, err := io.ReadFull(file, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return &models.UploadedDocument{
		FileName:    filepath.Base(path),
		ContentType: http.DetectContentType(head[:n]),
		Size:        info.Size(),
		Open: func() (io.ReadCloser, error) {
			return os.Open(path)
		},
	}, nil
}
