package service

import (
	"context"

	"statement-analyzer/internal/dto"
	"statement-analyzer/internal/metrics"
	"statement-analyzer/internal/models"

	"go.uber.org/zap"
)

// StatementService runs the full upload -> extract -> analyze pipeline.
type StatementService struct {
	ingest   *IngestService
	analysis *AnalysisService
	profiles *ProfileSet
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

func NewStatementService(
	ingest *IngestService,
	analysis *AnalysisService,
	profiles *ProfileSet,
	m *metrics.Metrics,
	logger *zap.Logger,
) *StatementService {
	return &StatementService{
		ingest:   ingest,
		analysis: analysis,
		profiles: profiles,
		metrics:  m,
		logger:   logger,
	}
}

func (s *StatementService) Profiles() *ProfileSet {
	return s.profiles
}

// Analyze processes one uploaded statement. An empty profileName selects the
// default profile. Validation problems are returned as *ValidationError
// before any content is read; everything else is a *ServiceError.
func (s *StatementService) Analyze(ctx context.Context, doc *models.UploadedDocument, profileName string) (resp *dto.AnalysisResponse, err error) {
	// label stays fixed until the name is known to be valid
	outcomeProfile := "unresolved"
	defer func() {
		s.metrics.RecordAnalysis(outcomeProfile, outcome(err))
	}()

	if err := s.ingest.ValidateUpload(doc); err != nil {
		return nil, err
	}

	profile, err := s.profiles.Get(profileName)
	if err != nil {
		return nil, err
	}
	outcomeProfile = profile.Name

	extracted, err := s.ingest.Ingest(ctx, doc)
	if err != nil {
		return nil, err
	}

	analysis, err := s.analysis.Analyze(ctx, profile, extracted.Text)
	if err != nil {
		return nil, err
	}

	resp = &dto.AnalysisResponse{
		Summary:    analysis.Summary,
		Filename:   doc.FileName,
		Pages:      extracted.Pages,
		TextLength: extracted.CharCount,
		Profile:    profile.Name,
	}
	if profile.ExtractTransactions {
		transactions := dto.NewTransactionResponses(analysis.Transactions)
		categories := dto.NewCategorySummaryResponses(analysis.Categories)
		resp.Transactions = &transactions
		resp.CategorySummary = &categories
	}

	s.logger.Info("Statement analyzed",
		zap.String("file_name", doc.FileName),
		zap.String("profile", profile.Name),
		zap.Int("pages", resp.Pages),
		zap.Int("transactions", len(analysis.Transactions)),
	)

	return resp, nil
}

func outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case IsValidation(err):
		return metrics.OutcomeValidation
	default:
		return ErrorKind(err)
	}
}
