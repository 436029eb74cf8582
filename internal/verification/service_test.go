package verification

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"crossverify/internal/audit"
	"crossverify/internal/verification/ports"
	"crossverify/internal/verification/ports/mocks"
	"crossverify/pkg/domainerrors"
	"crossverify/pkg/platform/sentinel"
)

// recordingAuditor captures emitted events so tests can assert on the trail.
type recordingAuditor struct {
	mu     sync.Mutex
	events []audit.Event
}

func (r *recordingAuditor) Emit(_ context.Context, event audit.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *recordingAuditor) actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Action)
	}
	return out
}

type ServiceSuite struct {
	suite.Suite
	ctx       context.Context
	baselines *mocks.MockBaselineProvider
	sink      *mocks.MockVerdictSink
	auditor   *recordingAuditor
	service   *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.T().Cleanup(ctrl.Finish)
	s.ctx = context.Background()
	s.baselines = mocks.NewMockBaselineProvider(ctrl)
	s.sink = mocks.NewMockVerdictSink(ctrl)
	s.auditor = &recordingAuditor{}
	s.service = NewService(s.baselines, s.sink, s.auditor, DefaultConfig(), nil, nil)
}

func (s *ServiceSuite) electricityBaseline() *ports.ElectricityBaseline {
	return &ports.ElectricityBaseline{
		AccountNo:          "ACC-001",
		OwnerID:            "AAD-1",
		TotalBills:         2,
		TotalAmount:        decimal.NewFromInt(2100),
		AverageAmount:      decimal.NewFromInt(1050),
		OnTimeBills:        2,
		LateBills:          0,
		TotalDelayDays:     0,
		MaxDelayDays:       0,
		CurrentOutstanding: decimal.NewFromInt(0),
		SuddenDropIndex:    decimal.Zero,
	}
}

func (s *ServiceSuite) electricityRequest() ElectricityRequest {
	return ElectricityRequest{
		ApplicationID: "APP-7",
		SubjectID:     "AAD-1",
		Records: []RawBillRecord{
			{AccountNo: "ACC-001", BillAmount: "1000", DelayDays: "0"},
			{AccountNo: "ACC-001", BillAmount: "1100", DelayDays: "0"},
		},
	}
}

func (s *ServiceSuite) TestVerifyElectricityMatch() {
	s.baselines.EXPECT().FetchElectricity(gomock.Any(), "ACC-001").Return(s.electricityBaseline(), nil)
	s.sink.EXPECT().PersistFlag(gomock.Any(), "electricity", "ACC-001", 0).Return(nil)
	s.sink.EXPECT().PersistDerivedFields(gomock.Any(), "APP-7", "AAD-1", gomock.Any()).Return(nil)

	result, err := s.service.VerifyElectricity(s.ctx, s.electricityRequest())
	require.NoError(s.T(), err)

	assert.Equal(s.T(), DomainElectricity, result.Domain)
	assert.Equal(s.T(), OutcomeMatch, result.Outcome)
	require.NotNil(s.T(), result.Verdict)
	assert.True(s.T(), result.Verdict.Match)
	assert.Equal(s.T(), FlagClear, result.Verdict.Flag)
	require.NotNil(s.T(), result.Computed)
	assert.Equal(s.T(), int64(2), result.Computed.TotalBills)
	assert.Empty(s.T(), result.Warnings)
	assert.Equal(s.T(), []string{audit.ActionVerdict}, s.auditor.actions())
}

func (s *ServiceSuite) TestVerifyElectricityMismatchBelowThresholdUnflagged() {
	baseline := s.electricityBaseline()
	baseline.TotalAmount = decimal.NewFromInt(9999)

	s.baselines.EXPECT().FetchElectricity(gomock.Any(), "ACC-001").Return(baseline, nil)
	s.sink.EXPECT().PersistFlag(gomock.Any(), "electricity", "ACC-001", 0).Return(nil)
	s.sink.EXPECT().PersistDerivedFields(gomock.Any(), "APP-7", "AAD-1", gomock.Any()).Return(nil)

	result, err := s.service.VerifyElectricity(s.ctx, s.electricityRequest())
	require.NoError(s.T(), err)

	assert.Equal(s.T(), OutcomeMismatch, result.Outcome)
	assert.False(s.T(), result.Verdict.Match)
	assert.Equal(s.T(), FlagClear, result.Verdict.Flag)
	assert.Contains(s.T(), result.Verdict.Differences, "total_amount")
}

func (s *ServiceSuite) TestVerifyElectricityMismatchBeyondThresholdFlagged() {
	baseline := s.electricityBaseline()
	baseline.TotalBills = 5
	baseline.TotalAmount = decimal.NewFromInt(9999)
	baseline.AverageAmount = decimal.NewFromInt(2000)
	baseline.OnTimeBills = 4
	baseline.LateBills = 1

	s.baselines.EXPECT().FetchElectricity(gomock.Any(), "ACC-001").Return(baseline, nil)
	s.sink.EXPECT().PersistFlag(gomock.Any(), "electricity", "ACC-001", 1).Return(nil)
	s.sink.EXPECT().PersistDerivedFields(gomock.Any(), "APP-7", "AAD-1", gomock.Any()).Return(nil)

	result, err := s.service.VerifyElectricity(s.ctx, s.electricityRequest())
	require.NoError(s.T(), err)

	assert.Equal(s.T(), OutcomeMismatch, result.Outcome)
	assert.Equal(s.T(), FlagReview, result.Verdict.Flag)
}

func (s *ServiceSuite) TestVerifyElectricityCannotVerify() {
	s.baselines.EXPECT().FetchElectricity(gomock.Any(), "ACC-001").Return(nil, sentinel.ErrNotFound)

	result, err := s.service.VerifyElectricity(s.ctx, s.electricityRequest())
	require.NoError(s.T(), err)

	assert.Equal(s.T(), OutcomeCannotVerify, result.Outcome)
	assert.Nil(s.T(), result.Verdict)
	assert.Equal(s.T(), []string{audit.ActionCannotVerify}, s.auditor.actions())
}

func (s *ServiceSuite) TestVerifyElectricityIdentityMismatch() {
	baseline := s.electricityBaseline()
	baseline.OwnerID = "AAD-OTHER"

	s.baselines.EXPECT().FetchElectricity(gomock.Any(), "ACC-001").Return(baseline, nil)
	// The baseline row is flagged; the derived profile is never touched.
	s.sink.EXPECT().PersistFlag(gomock.Any(), "electricity", "ACC-001", 1).Return(nil)

	result, err := s.service.VerifyElectricity(s.ctx, s.electricityRequest())
	require.NoError(s.T(), err)

	assert.Equal(s.T(), OutcomeIdentityMismatch, result.Outcome)
	require.NotNil(s.T(), result.Verdict)
	assert.False(s.T(), result.Verdict.Match)
	assert.Equal(s.T(), FlagReview, result.Verdict.Flag)
	assert.Empty(s.T(), result.Verdict.Differences)
	assert.Equal(s.T(), []string{audit.ActionIdentityMismatch}, s.auditor.actions())
}

func (s *ServiceSuite) TestVerifyElectricityPersistFailuresBecomeWarnings() {
	s.baselines.EXPECT().FetchElectricity(gomock.Any(), "ACC-001").Return(s.electricityBaseline(), nil)
	s.sink.EXPECT().PersistFlag(gomock.Any(), "electricity", "ACC-001", 0).Return(errors.New("db down"))
	s.sink.EXPECT().PersistDerivedFields(gomock.Any(), "APP-7", "AAD-1", gomock.Any()).Return(errors.New("db down"))

	result, err := s.service.VerifyElectricity(s.ctx, s.electricityRequest())
	require.NoError(s.T(), err)

	assert.Equal(s.T(), OutcomeMatch, result.Outcome)
	assert.Len(s.T(), result.Warnings, 2)
}

func (s *ServiceSuite) TestVerifyElectricityValidation() {
	tests := []struct {
		name string
		req  ElectricityRequest
	}{
		{name: "missing application", req: ElectricityRequest{SubjectID: "AAD-1", Records: []RawBillRecord{{AccountNo: "A"}}}},
		{name: "missing subject", req: ElectricityRequest{ApplicationID: "APP-7", Records: []RawBillRecord{{AccountNo: "A"}}}},
		{name: "no records", req: ElectricityRequest{ApplicationID: "APP-7", SubjectID: "AAD-1"}},
		{name: "blank account number", req: ElectricityRequest{ApplicationID: "APP-7", SubjectID: "AAD-1", Records: []RawBillRecord{{AccountNo: "  ", BillAmount: "1"}}}},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			result, err := s.service.VerifyElectricity(s.ctx, tt.req)
			require.Error(s.T(), err)
			assert.Nil(s.T(), result)

			var derr *domainerrors.Error
			require.ErrorAs(s.T(), err, &derr)
			assert.Equal(s.T(), domainerrors.CodeValidation, derr.Code)
		})
	}
}

func (s *ServiceSuite) lpgBaseline() *ports.LPGBaseline {
	return &ports.LPGBaseline{
		ConsumerNo:            "LPG-9",
		OwnerID:               "AAD-1",
		Refills:               6,
		AvgRefillCost:         decimal.NewFromInt(500),
		AvgRefillIntervalDays: decimal.NewFromInt(25),
	}
}

func (s *ServiceSuite) TestVerifyLPGMatchWithinTolerance() {
	s.baselines.EXPECT().FetchLPG(gomock.Any(), "LPG-9").Return(s.lpgBaseline(), nil)
	s.sink.EXPECT().PersistFlag(gomock.Any(), "lpg", "LPG-9", 0).Return(nil)
	s.sink.EXPECT().PersistDerivedFields(gomock.Any(), "APP-7", "AAD-1", gomock.Any()).DoAndReturn(
		func(_ context.Context, _, _ string, fields map[string]any) error {
			assert.Equal(s.T(), "LPG-9", fields["user_lpg_consumer_no"])
			assert.Contains(s.T(), fields, "provider_average_refill_cost")
			return nil
		})

	result, err := s.service.VerifyLPG(s.ctx, LPGRequest{
		ApplicationID: "APP-7",
		SubjectID:     "AAD-1",
		ConsumerNo:    "LPG-9",
		Report: LPGReport{
			Refills:         5,
			AvgRefillCost:   decimal.NewFromInt(600),
			AvgIntervalDays: decimal.NewFromInt(30),
		},
	})
	require.NoError(s.T(), err)

	assert.Equal(s.T(), OutcomeMatch, result.Outcome)
	assert.True(s.T(), result.Verdict.Match)
}

func (s *ServiceSuite) TestVerifyLPGIdentityGuardRunsBeforeComparison() {
	baseline := s.lpgBaseline()
	baseline.OwnerID = "AAD-OTHER"

	s.baselines.EXPECT().FetchLPG(gomock.Any(), "LPG-9").Return(baseline, nil)
	s.sink.EXPECT().PersistFlag(gomock.Any(), "lpg", "LPG-9", 1).Return(nil)

	// Numbers agree perfectly; the identity mismatch must still win.
	result, err := s.service.VerifyLPG(s.ctx, LPGRequest{
		ApplicationID: "APP-7",
		SubjectID:     "AAD-1",
		ConsumerNo:    "LPG-9",
		Report: LPGReport{
			Refills:         6,
			AvgRefillCost:   decimal.NewFromInt(500),
			AvgIntervalDays: decimal.NewFromInt(25),
		},
	})
	require.NoError(s.T(), err)

	assert.Equal(s.T(), OutcomeIdentityMismatch, result.Outcome)
	assert.False(s.T(), result.Verdict.Match)
	assert.Equal(s.T(), FlagReview, result.Verdict.Flag)
}

func (s *ServiceSuite) TestVerifyLPGRequiresConsumerNo() {
	_, err := s.service.VerifyLPG(s.ctx, LPGRequest{ApplicationID: "APP-7", SubjectID: "AAD-1"})
	require.Error(s.T(), err)

	var derr *domainerrors.Error
	require.ErrorAs(s.T(), err, &derr)
	assert.Equal(s.T(), domainerrors.CodeValidation, derr.Code)
}

func (s *ServiceSuite) TestVerifyMobileMatch() {
	s.baselines.EXPECT().FetchMobile(gomock.Any(), "AAD-1").Return(&ports.MobileBaseline{
		OwnerID:           "AAD-1",
		AvgRechargeAmount: decimal.NewFromInt(299),
		RechargeFrequency: decimal.NewFromInt(2),
		Provider:          "Airtel",
	}, nil)
	s.sink.EXPECT().PersistFlag(gomock.Any(), "mobile", "AAD-1", 0).Return(nil)
	s.sink.EXPECT().PersistDerivedFields(gomock.Any(), "APP-7", "AAD-1", gomock.Any()).Return(nil)

	result, err := s.service.VerifyMobile(s.ctx, MobileRequest{
		ApplicationID: "APP-7",
		SubjectID:     "AAD-1",
		Report: MobileReport{
			AvgRechargeAmount: decimal.NewFromInt(299),
			RechargeFrequency: decimal.NewFromInt(2),
			Provider:          "airtel",
		},
	})
	require.NoError(s.T(), err)

	assert.Equal(s.T(), OutcomeMatch, result.Outcome)
	assert.True(s.T(), result.Verdict.Match)
}

func (s *ServiceSuite) TestVerifyMobileCannotVerify() {
	s.baselines.EXPECT().FetchMobile(gomock.Any(), "AAD-1").Return(nil, errors.New("upstream timeout"))

	result, err := s.service.VerifyMobile(s.ctx, MobileRequest{
		ApplicationID: "APP-7",
		SubjectID:     "AAD-1",
		Report:        MobileReport{Provider: "Airtel"},
	})
	require.NoError(s.T(), err)

	assert.Equal(s.T(), OutcomeCannotVerify, result.Outcome)
	assert.Nil(s.T(), result.Verdict)
}
