package service

import (
	"context"
	"errors"
	"time"

	"statement-analyzer/internal/metrics"
	"statement-analyzer/internal/models"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	callSummary      = "summary"
	callTransactions = "transactions"
)

// Analysis is the model's view of one statement. Transactions and Categories
// are nil when the profile does not extract transactions.
type Analysis struct {
	Summary      string
	Transactions []models.TransactionRecord
	Categories   []models.CategorySummary
}

// AnalysisService prompts the completion service and shapes its replies.
type AnalysisService struct {
	completer Completer
	timeout   time.Duration
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

func NewAnalysisService(completer Completer, timeout time.Duration, m *metrics.Metrics, logger *zap.Logger) *AnalysisService {
	return &AnalysisService{
		completer: completer,
		timeout:   timeout,
		metrics:   m,
		logger:    logger,
	}
}

// Analyze runs the summary and, when the profile asks for it, the
// transaction extraction concurrently. Any completion failure fails the
// whole analysis; an unparseable transaction reply does not.
func (s *AnalysisService) Analyze(ctx context.Context, profile *Profile, text string) (*Analysis, error) {
	summaryPrompt, err := profile.SummaryPrompt(text)
	if err != nil {
		return nil, newServiceError(KindInternal, "failed to build summary prompt", err)
	}

	var transactionPrompt string
	if profile.ExtractTransactions {
		transactionPrompt, err = profile.TransactionPrompt(text)
		if err != nil {
			return nil, newServiceError(KindInternal, "failed to build transaction prompt", err)
		}
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	var (
		summary string
		reply   string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		summary, err = s.complete(gctx, callSummary, CompletionRequest{
			Model:       profile.Model,
			System:      profile.SystemPrompt,
			Prompt:      summaryPrompt,
			Temperature: profile.SummaryTemperature,
		})
		return err
	})
	if profile.ExtractTransactions {
		g.Go(func() error {
			var err error
			reply, err = s.complete(gctx, callTransactions, CompletionRequest{
				Model:       profile.Model,
				Prompt:      transactionPrompt,
				Temperature: profile.TransactionTemperature,
			})
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &Analysis{Summary: summary}
	if !profile.ExtractTransactions {
		return result, nil
	}

	records, ok := ParseTransactions(reply)
	if !ok {
		s.metrics.RecordParseWarning()
		s.logger.Warn("Could not find a transaction array in model reply",
			zap.String("profile", profile.Name),
			zap.String("reply_prefix", prefixRunes(reply, 200)),
		)
	}
	s.metrics.RecordTransactions(len(records))

	result.Transactions = records
	result.Categories = SummarizeCategories(records)
	return result, nil
}

func (s *AnalysisService) complete(ctx context.Context, call string, req CompletionRequest) (string, error) {
	start := time.Now()
	reply, err := s.completer.Complete(ctx, req)
	s.metrics.ObserveCompletion(call, time.Since(start), err != nil)

	if err != nil {
		s.logger.Error("Completion call failed",
			zap.String("call", call),
			zap.String("model", req.Model),
			zap.Error(err),
		)
		var sErr *ServiceError
		if errors.As(err, &sErr) {
			return "", err
		}
		return "", newServiceError(KindCompletion, "completion service request failed", err)
	}

	s.logger.Debug("Completion call finished",
		zap.String("call", call),
		zap.Duration("duration", time.Since(start)),
		zap.Int("reply_chars", len([]rune(reply))),
	)
	return reply, nil
}
