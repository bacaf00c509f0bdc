// Package modulus validates UK sort code and account number pairs.
//
// Every weight entry of the sort code is one check. A check normalizes the
// account detail, adjusts weights, and lets the exception rules decide before
// and after the weighted sum. The standard modulus comparison decides only
// when no exception rule did.
package modulus

import (
	"context"
	"fmt"
	"strconv"

	"github.com/nkiryanov/modcheck/internal/exception"
	"github.com/nkiryanov/modcheck/internal/logger"
	"github.com/nkiryanov/modcheck/internal/metrics"
	"github.com/nkiryanov/modcheck/internal/models"
	"github.com/nkiryanov/modcheck/internal/service/validate"
	"github.com/nkiryanov/modcheck/internal/substitution"
)

type weightRepo interface {
	FindWeights(ctx context.Context, sortCode int) ([]models.WeightEntry, error)
}

type substitutionSource interface {
	ListSubstitutions(ctx context.Context) (map[string]string, error)
}

type recorder interface {
	ObserveValidation(result string)
	ObserveDecision(exception string)
}

type noopRecorder struct{}

func (noopRecorder) ObserveValidation(string) {}
func (noopRecorder) ObserveDecision(string)   {}

type Option func(*Service)

func WithRecorder(r recorder) Option {
	return func(s *Service) {
		s.recorder = r
	}
}

func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		s.logger = l
	}
}

type Service struct {
	weights weightRepo

	// Loaded once, never changed afterwards
	substitutions *substitution.Table

	recorder recorder
	logger   logger.Logger
}

// NewService reads the substitution table from subs once
func NewService(ctx context.Context, weights weightRepo, subs substitutionSource, opts ...Option) (*Service, error) {
	pairs, err := subs.ListSubstitutions(ctx)
	if err != nil {
		return nil, fmt.Errorf("error while loading substitution table: %w", err)
	}

	s := &Service{
		weights:       weights,
		substitutions: substitution.New(pairs),
		recorder:      noopRecorder{},
		logger:        logger.NewNoOpLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Validate checks the account number against every weight entry of the sort code.
// Sort codes without entries can't be checked and are reported valid.
func (s *Service) Validate(ctx context.Context, sortCode string, accountNumber string) (models.CheckResult, error) {
	if err := validate.SortCode(sortCode); err != nil {
		return models.CheckResult{}, err
	}
	if err := validate.AccountNumber(accountNumber); err != nil {
		return models.CheckResult{}, err
	}

	entries, err := s.FindWeights(ctx, sortCode)
	if err != nil {
		return models.CheckResult{}, err
	}

	if len(entries) == 0 {
		s.recorder.ObserveValidation(metrics.ResultUnchecked)
		return models.CheckResult{Valid: true, Checked: false}, nil
	}

	reports := make([]models.CheckReport, 0, len(entries))
	for _, entry := range entries {
		report := s.check(entry, sortCode, accountNumber)
		if report.Decided {
			s.recorder.ObserveDecision(strconv.Itoa(int(report.Exception)))
		}
		reports = append(reports, report)
	}

	result := models.CheckResult{
		Valid:   combine(entries, reports),
		Checked: true,
		Checks:  reports,
	}

	s.logger.Debug("Account checked", "sort_code", sortCode, logger.AccountNumberKey, accountNumber, "valid", result.Valid, "checks", len(reports))
	if result.Valid {
		s.recorder.ObserveValidation(metrics.ResultValid)
	} else {
		s.recorder.ObserveValidation(metrics.ResultInvalid)
	}

	return result, nil
}

// FindWeights returns the weight entries of a valid sort code
func (s *Service) FindWeights(ctx context.Context, sortCode string) ([]models.WeightEntry, error) {
	if err := validate.SortCode(sortCode); err != nil {
		return nil, err
	}

	n, _ := strconv.Atoi(sortCode)
	entries, err := s.weights.FindWeights(ctx, n)
	if err != nil {
		return nil, fmt.Errorf("error while looking up weights: %w", err)
	}

	return entries, nil
}

// Exception 14 only applies when the standard check fails
func (s *Service) check(entry models.WeightEntry, sortCode string, accountNumber string) models.CheckReport {
	if entry.Exception == 14 {
		standard := entry
		standard.Exception = models.ExceptionNone

		if report := s.run(standard, sortCode, accountNumber); report.Valid {
			report.Exception = entry.Exception
			return report
		}
	}

	return s.run(entry, sortCode, accountNumber)
}

func (s *Service) run(entry models.WeightEntry, sortCode string, accountNumber string) models.CheckReport {
	detail := exception.NormalizeAccountDetail(sortCode, accountNumber, entry.Exception, s.substitutions)
	weights := exception.AdjustWeights(entry, detail)

	detail, outcome := exception.Overwrite(entry, detail)
	report := models.CheckReport{
		CheckType:     entry.CheckType,
		Exception:     entry.Exception,
		AccountDetail: detail,
	}
	if outcome.Decided() {
		report.Valid, report.Decided = outcome.Valid(), true
		return report
	}

	total := WeightedSum(entry.CheckType, weights, detail)

	total, outcome = exception.PostTotal(entry.Exception, total, detail)
	if outcome.Decided() {
		report.Valid, report.Decided = outcome.Valid(), true
		return report
	}

	report.Valid = total%entry.CheckType.Modulus() == 0
	return report
}

// Pairs of checks where passing either one is enough, keyed by the first check's exception
var eitherPasses = map[models.Exception]bool{
	2:  true,
	9:  true,
	10: true,
	11: true,
	12: true,
	13: true,
}

func combine(entries []models.WeightEntry, reports []models.CheckReport) bool {
	if len(reports) > 1 && eitherPasses[entries[0].Exception] {
		for _, r := range reports {
			if r.Valid {
				return true
			}
		}
		return false
	}

	for _, r := range reports {
		if !r.Valid {
			return false
		}
	}
	return true
}
