package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"

	"crossverify/internal/verification/ports"
	"crossverify/pkg/platform/sentinel"
)

// PostgresStore implements BaselineProvider and VerdictSink over the
// provider-sourced baseline tables and the applicant derived-profile table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) FetchElectricity(ctx context.Context, accountNo string) (*ports.ElectricityBaseline, error) {
	const query = `
		SELECT elec_account_no, aadhar_no,
		       elec_total_bills, elec_total_bill_amt_3m, elec_avg_bill_amt_3m,
		       elec_on_time_bills_3m, elec_late_bills_3m,
		       elec_total_delay_days_3m, elec_max_delay_days_3m,
		       elec_outstanding_amount_current, sudden_drop_index, flag
		FROM electricity_bill
		WHERE elec_account_no = $1
	`
	var b ports.ElectricityBaseline
	err := s.db.QueryRowContext(ctx, query, accountNo).Scan(
		&b.AccountNo, &b.OwnerID,
		&b.TotalBills, &b.TotalAmount, &b.AverageAmount,
		&b.OnTimeBills, &b.LateBills,
		&b.TotalDelayDays, &b.MaxDelayDays,
		&b.CurrentOutstanding, &b.SuddenDropIndex, &b.Flag,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("electricity baseline %s: %w", accountNo, sentinel.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("fetch electricity baseline: %w", err)
	}
	return &b, nil
}

func (s *PostgresStore) FetchLPG(ctx context.Context, consumerNo string) (*ports.LPGBaseline, error) {
	const query = `
		SELECT consumer_no, aadhar_no,
		       lpg_refills_3m, lpg_avg_cost, lpg_avg_refill_interval_days, flag
		FROM lpg_bill
		WHERE consumer_no = $1
	`
	var b ports.LPGBaseline
	err := s.db.QueryRowContext(ctx, query, consumerNo).Scan(
		&b.ConsumerNo, &b.OwnerID,
		&b.Refills, &b.AvgRefillCost, &b.AvgRefillIntervalDays, &b.Flag,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("lpg baseline %s: %w", consumerNo, sentinel.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("fetch lpg baseline: %w", err)
	}
	return &b, nil
}

func (s *PostgresStore) FetchMobile(ctx context.Context, subjectID string) (*ports.MobileBaseline, error) {
	const query = `
		SELECT aadhar_no, mobile_recharge_amt_avg, mobile_recharge_freq_pm, provider, flag
		FROM mobile_bill
		WHERE aadhar_no = $1
	`
	var b ports.MobileBaseline
	err := s.db.QueryRowContext(ctx, query, subjectID).Scan(
		&b.OwnerID, &b.AvgRechargeAmount, &b.RechargeFrequency, &b.Provider, &b.Flag,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("mobile baseline %s: %w", subjectID, sentinel.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("fetch mobile baseline: %w", err)
	}
	return &b, nil
}

// PersistFlag overwrites the flag on the baseline row. Updating zero rows is
// reported as not-found so the caller's warning names the real problem.
func (s *PostgresStore) PersistFlag(ctx context.Context, domain, accountKey string, flag int) error {
	var query string
	switch domain {
	case "electricity":
		query = `UPDATE electricity_bill SET flag = $1 WHERE elec_account_no = $2`
	case "lpg":
		query = `UPDATE lpg_bill SET flag = $1 WHERE consumer_no = $2`
	case "mobile":
		query = `UPDATE mobile_bill SET flag = $1 WHERE aadhar_no = $2`
	default:
		return fmt.Errorf("unknown domain %q: %w", domain, sentinel.ErrInvalidState)
	}

	res, err := s.db.ExecContext(ctx, query, flag, accountKey)
	if err != nil {
		return fmt.Errorf("persist %s flag: %w", domain, err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("persist %s flag: %w", domain, err)
	}
	if rows == 0 {
		return fmt.Errorf("%s baseline %s: %w", domain, accountKey, sentinel.ErrNotFound)
	}
	return nil
}

// PersistDerivedFields mirrors values onto the applicant's derived-profile
// row. Columns are sorted so the statement is deterministic for a given
// field set.
func (s *PostgresStore) PersistDerivedFields(ctx context.Context, applicationID, subjectID string, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}

	columns := make([]string, 0, len(fields))
	for col := range fields {
		columns = append(columns, col)
	}
	sort.Strings(columns)

	assignments := make([]string, 0, len(columns))
	args := make([]any, 0, len(columns)+2)
	for i, col := range columns {
		assignments = append(assignments, fmt.Sprintf("%s = $%d", col, i+1))
		args = append(args, fields[col])
	}
	args = append(args, applicationID, subjectID)

	query := fmt.Sprintf(
		`UPDATE expenses_and_commodities SET %s WHERE loan_application_id = $%d AND aadhar_no = $%d`,
		strings.Join(assignments, ", "), len(columns)+1, len(columns)+2,
	)

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("persist derived fields: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("persist derived fields: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("derived profile %s/%s: %w", applicationID, subjectID, sentinel.ErrNotFound)
	}
	return nil
}
