package verification

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"crossverify/internal/audit"
	"crossverify/internal/verification/metrics"
	"crossverify/internal/verification/ports"
	"crossverify/pkg/domainerrors"
	"crossverify/pkg/requestcontext"
)

// AuditEmitter records verification activity. Emit failures never affect the
// verdict; the service logs them and moves on.
type AuditEmitter interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Config carries the comparison knobs.
type Config struct {
	ElectricityMismatchThreshold int
	LPGTolerances                LPGTolerances
}

// DefaultConfig returns the standard thresholds.
func DefaultConfig() Config {
	return Config{
		ElectricityMismatchThreshold: 3,
		LPGTolerances:                DefaultLPGTolerances(),
	}
}

// Service orchestrates one verification request start to finish: adapt input,
// fetch baseline, guard identity, compare, persist, audit. It holds no state
// across requests; concurrent requests for the same account are not ordered
// and racing sink writes resolve last-writer-wins, which is acceptable
// because every verdict is independently recomputable from the same inputs.
type Service struct {
	baselines ports.BaselineProvider
	sink      ports.VerdictSink
	auditor   AuditEmitter
	cfg       Config
	logger    *slog.Logger
	metrics   *metrics.Metrics
	tracer    trace.Tracer
}

// NewService constructs the engine. auditor and m may be nil (disabled).
func NewService(baselines ports.BaselineProvider, sink ports.VerdictSink, auditor AuditEmitter, cfg Config, logger *slog.Logger, m *metrics.Metrics) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{
		baselines: baselines,
		sink:      sink,
		auditor:   auditor,
		cfg:       cfg,
		logger:    logger,
		metrics:   m,
		tracer:    otel.Tracer("crossverify/internal/verification"),
	}
}

// VerifyElectricity reconciles a set of extracted bill statements against the
// electricity baseline for the account they identify.
func (s *Service) VerifyElectricity(ctx context.Context, req ElectricityRequest) (*Result, error) {
	ctx, span := s.tracer.Start(ctx, "verify.electricity")
	defer span.End()
	start := time.Now()
	defer func() { s.metrics.ObserveVerifyLatency(string(DomainElectricity), time.Since(start)) }()

	if err := validateIdentifiers(req.ApplicationID, req.SubjectID); err != nil {
		return nil, err
	}
	if len(req.Records) == 0 {
		return nil, domainerrors.New(domainerrors.CodeValidation, "at least one bill record is required")
	}

	records := make([]ExtractedBillRecord, 0, len(req.Records))
	coerced := 0
	for _, raw := range req.Records {
		rec, n := AdaptBill(raw)
		coerced += n
		records = append(records, rec)
	}
	if coerced > 0 {
		s.logger.WarnContext(ctx, "malformed bill fields coerced to zero",
			"request_id", requestcontext.RequestID(ctx),
			"coerced_fields", coerced,
		)
	}

	// Statements in one request belong to one account; the first record names it.
	accountNo := records[0].AccountNo
	if accountNo == "" {
		return nil, domainerrors.New(domainerrors.CodeValidation, "account number missing from bill records")
	}
	span.SetAttributes(attribute.String("verification.account", accountNo))

	computed, ok := Aggregate(records)
	if !ok {
		return nil, domainerrors.New(domainerrors.CodeValidation, "no records to aggregate")
	}

	fetchStart := time.Now()
	baseline, err := s.baselines.FetchElectricity(ctx, accountNo)
	s.metrics.ObserveBaselineLatency(string(DomainElectricity), time.Since(fetchStart))
	if err != nil {
		return s.cannotVerify(ctx, DomainElectricity, req.SubjectID, accountNo, err), nil
	}

	if !IdentityMatches(req.SubjectID, baseline.OwnerID) {
		result := s.identityMismatch(ctx, DomainElectricity, req.SubjectID, accountNo)
		result.Computed = &computed
		return result, nil
	}

	verdict := CompareElectricity(computed, *baseline, s.cfg.ElectricityMismatchThreshold)
	result := &Result{
		Domain:   DomainElectricity,
		Outcome:  outcomeFor(verdict),
		Verdict:  &verdict,
		Computed: &computed,
	}

	s.persist(ctx, result, accountNo, req.ApplicationID, req.SubjectID, map[string]any{
		"elec_account_no": accountNo,
	})
	s.finish(ctx, result, req.SubjectID, accountNo)
	return result, nil
}

// VerifyLPG checks a self-reported refill pattern against the LPG baseline
// within fixed tolerance bands.
func (s *Service) VerifyLPG(ctx context.Context, req LPGRequest) (*Result, error) {
	ctx, span := s.tracer.Start(ctx, "verify.lpg")
	defer span.End()
	start := time.Now()
	defer func() { s.metrics.ObserveVerifyLatency(string(DomainLPG), time.Since(start)) }()

	if err := validateIdentifiers(req.ApplicationID, req.SubjectID); err != nil {
		return nil, err
	}
	if req.ConsumerNo == "" {
		return nil, domainerrors.New(domainerrors.CodeValidation, "consumer number is required")
	}
	span.SetAttributes(attribute.String("verification.account", req.ConsumerNo))

	fetchStart := time.Now()
	baseline, err := s.baselines.FetchLPG(ctx, req.ConsumerNo)
	s.metrics.ObserveBaselineLatency(string(DomainLPG), time.Since(fetchStart))
	if err != nil {
		return s.cannotVerify(ctx, DomainLPG, req.SubjectID, req.ConsumerNo, err), nil
	}

	if !IdentityMatches(req.SubjectID, baseline.OwnerID) {
		return s.identityMismatch(ctx, DomainLPG, req.SubjectID, req.ConsumerNo), nil
	}

	verdict := CompareLPG(req.Report, *baseline, s.cfg.LPGTolerances)
	result := &Result{Domain: DomainLPG, Outcome: outcomeFor(verdict), Verdict: &verdict}

	s.persist(ctx, result, req.ConsumerNo, req.ApplicationID, req.SubjectID, map[string]any{
		"user_lpg_consumer_no":                  req.ConsumerNo,
		"user_refills_in_last_3m":               req.Report.Refills,
		"user_average_refill_cost":              req.Report.AvgRefillCost,
		"user_average_refill_interval_days":     req.Report.AvgIntervalDays,
		"provider_lpg_consumer_no":              baseline.ConsumerNo,
		"provider_refills_in_last_3m":           baseline.Refills,
		"provider_average_refill_cost":          baseline.AvgRefillCost,
		"provider_average_refill_interval_days": baseline.AvgRefillIntervalDays,
	})
	s.finish(ctx, result, req.SubjectID, req.ConsumerNo)
	return result, nil
}

// VerifyMobile checks a self-reported recharge pattern against the mobile
// baseline held for the claimant's own identity key.
func (s *Service) VerifyMobile(ctx context.Context, req MobileRequest) (*Result, error) {
	ctx, span := s.tracer.Start(ctx, "verify.mobile")
	defer span.End()
	start := time.Now()
	defer func() { s.metrics.ObserveVerifyLatency(string(DomainMobile), time.Since(start)) }()

	if err := validateIdentifiers(req.ApplicationID, req.SubjectID); err != nil {
		return nil, err
	}

	fetchStart := time.Now()
	baseline, err := s.baselines.FetchMobile(ctx, req.SubjectID)
	s.metrics.ObserveBaselineLatency(string(DomainMobile), time.Since(fetchStart))
	if err != nil {
		return s.cannotVerify(ctx, DomainMobile, req.SubjectID, req.SubjectID, err), nil
	}

	// The mobile baseline is keyed by the identity itself, but the guard still
	// runs: a row whose owner field disagrees with its key is suspect.
	if !IdentityMatches(req.SubjectID, baseline.OwnerID) {
		return s.identityMismatch(ctx, DomainMobile, req.SubjectID, req.SubjectID), nil
	}

	verdict := CompareMobile(req.Report, *baseline)
	result := &Result{Domain: DomainMobile, Outcome: outcomeFor(verdict), Verdict: &verdict}

	s.persist(ctx, result, req.SubjectID, req.ApplicationID, req.SubjectID, map[string]any{
		"user_provider_avg_recharge_amount":    req.Report.AvgRechargeAmount,
		"user_provider_avg_recharge_frequency": req.Report.RechargeFrequency,
		"user_provider_name":                   req.Report.Provider,
		"api_provider_avg_recharge_amount":     baseline.AvgRechargeAmount,
		"api_provider_avg_recharge_frequency":  baseline.RechargeFrequency,
		"api_provider_name":                    baseline.Provider,
	})
	s.finish(ctx, result, req.SubjectID, req.SubjectID)
	return result, nil
}

func validateIdentifiers(applicationID, subjectID string) error {
	if applicationID == "" || subjectID == "" {
		return domainerrors.New(domainerrors.CodeValidation, "application and subject identifiers are required")
	}
	return nil
}

// persist runs both sink writes concurrently. Each failure is logged and
// recorded as a warning on the result; neither invalidates the verdict, and a
// failure of one write does not cancel the other.
func (s *Service) persist(ctx context.Context, result *Result, accountKey, applicationID, subjectID string, fields map[string]any) {
	var flagErr, fieldsErr error
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		flagErr = s.sink.PersistFlag(gctx, string(result.Domain), accountKey, int(result.Verdict.Flag))
		return nil
	})
	g.Go(func() error {
		fieldsErr = s.sink.PersistDerivedFields(gctx, applicationID, subjectID, fields)
		return nil
	})
	_ = g.Wait()

	s.warnPersist(ctx, result, "flag", flagErr)
	s.warnPersist(ctx, result, "derived_fields", fieldsErr)
}

func (s *Service) warnPersist(ctx context.Context, result *Result, target string, err error) {
	if err == nil {
		return
	}
	s.metrics.IncrementPersistFailure(string(result.Domain), target)
	s.logger.ErrorContext(ctx, "verdict persistence failed",
		"request_id", requestcontext.RequestID(ctx),
		"domain", result.Domain,
		"target", target,
		"error", err,
	)
	result.Warnings = append(result.Warnings, fmt.Sprintf("%s write failed", target))
}

// identityMismatch produces the fixed escalation verdict and marks the
// baseline row itself suspect. The derived profile is left untouched for a
// claimant who does not own the account.
func (s *Service) identityMismatch(ctx context.Context, domain Domain, subjectID, accountKey string) *Result {
	verdict := identityMismatchVerdict()
	result := &Result{Domain: domain, Outcome: OutcomeIdentityMismatch, Verdict: &verdict}

	if err := s.sink.PersistFlag(ctx, string(domain), accountKey, int(FlagReview)); err != nil {
		s.warnPersist(ctx, result, "flag", err)
	}

	s.logger.WarnContext(ctx, "baseline owner identity does not match claimant",
		"request_id", requestcontext.RequestID(ctx),
		"domain", domain,
		"account_key", accountKey,
	)
	s.emit(ctx, audit.Event{
		Action:     audit.ActionIdentityMismatch,
		Subject:    subjectID,
		Domain:     string(domain),
		AccountKey: accountKey,
		Outcome:    string(OutcomeIdentityMismatch),
		Flag:       int(FlagReview),
	})
	s.metrics.IncrementOutcome(string(domain), string(OutcomeIdentityMismatch))
	return result
}

// cannotVerify is the explicit "no baseline" result. It is never conflated
// with a mismatch: no flag is written anywhere because no row is known.
func (s *Service) cannotVerify(ctx context.Context, domain Domain, subjectID, accountKey string, cause error) *Result {
	s.logger.InfoContext(ctx, "baseline unavailable",
		"request_id", requestcontext.RequestID(ctx),
		"domain", domain,
		"account_key", accountKey,
		"error", cause,
	)
	s.emit(ctx, audit.Event{
		Action:     audit.ActionCannotVerify,
		Subject:    subjectID,
		Domain:     string(domain),
		AccountKey: accountKey,
		Outcome:    string(OutcomeCannotVerify),
	})
	s.metrics.IncrementOutcome(string(domain), string(OutcomeCannotVerify))
	return &Result{Domain: domain, Outcome: OutcomeCannotVerify}
}

func (s *Service) finish(ctx context.Context, result *Result, subjectID, accountKey string) {
	s.emit(ctx, audit.Event{
		Action:     audit.ActionVerdict,
		Subject:    subjectID,
		Domain:     string(result.Domain),
		AccountKey: accountKey,
		Outcome:    string(result.Outcome),
		Flag:       int(result.Verdict.Flag),
	})
	s.metrics.IncrementOutcome(string(result.Domain), string(result.Outcome))

	mismatches := 0
	if result.Verdict != nil {
		mismatches = len(result.Verdict.Differences)
	}
	s.logger.InfoContext(ctx, "verification verdict",
		"request_id", requestcontext.RequestID(ctx),
		"domain", result.Domain,
		"outcome", result.Outcome,
		"flag", int(result.Verdict.Flag),
		"mismatches", mismatches,
		"warnings", len(result.Warnings),
	)
}

func (s *Service) emit(ctx context.Context, event audit.Event) {
	if s.auditor == nil {
		return
	}
	if err := s.auditor.Emit(ctx, event); err != nil {
		s.logger.ErrorContext(ctx, "audit emit failed", "action", event.Action, "error", err)
	}
}
