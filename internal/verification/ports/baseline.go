// Package ports defines the collaborator interfaces the verification engine
// depends on. The engine never touches SQL, HTTP, or any concrete storage;
// adapters in internal/verification/store implement these.
package ports

//go:generate mockgen -destination=mocks/mocks.go -package=mocks crossverify/internal/verification/ports BaselineProvider,VerdictSink

import (
	"context"

	"github.com/shopspring/decimal"
)

// BaselineProvider returns the independently sourced reference record for a
// utility account. Implementations return sentinel.ErrNotFound (possibly
// wrapped) when no baseline exists; the engine treats any other error the
// same way, as "cannot verify".
type BaselineProvider interface {
	// FetchElectricity looks up the electricity baseline by account number.
	FetchElectricity(ctx context.Context, accountNo string) (*ElectricityBaseline, error)

	// FetchLPG looks up the LPG baseline by consumer number.
	FetchLPG(ctx context.Context, consumerNo string) (*LPGBaseline, error)

	// FetchMobile looks up the mobile baseline by the owner identity key.
	FetchMobile(ctx context.Context, subjectID string) (*MobileBaseline, error)
}

// ElectricityBaseline carries the provider-side statistics for one
// electricity account. Field meanings mirror the engine's computed
// statistics; both sides derive from the same formulas.
type ElectricityBaseline struct {
	AccountNo          string
	OwnerID            string
	TotalBills         int64
	TotalAmount        decimal.Decimal
	AverageAmount      decimal.Decimal
	OnTimeBills        int64
	LateBills          int64
	TotalDelayDays     int64
	MaxDelayDays       int64
	CurrentOutstanding decimal.Decimal
	SuddenDropIndex    decimal.Decimal
	Flag               int
}

// LPGBaseline carries the provider-side refill pattern for one LPG consumer.
type LPGBaseline struct {
	ConsumerNo            string
	OwnerID               string
	Refills               int64
	AvgRefillCost         decimal.Decimal
	AvgRefillIntervalDays decimal.Decimal
	Flag                  int
}

// MobileBaseline carries the provider-side recharge pattern for one subject.
type MobileBaseline struct {
	OwnerID           string
	AvgRechargeAmount decimal.Decimal
	RechargeFrequency decimal.Decimal
	Provider          string
	Flag              int
}
