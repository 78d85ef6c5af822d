package compensation

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/cmlabs-hris/hris-compensation-go/internal/domain/compensation"
	"github.com/cmlabs-hris/hris-compensation-go/internal/domain/record"
	"github.com/cmlabs-hris/hris-compensation-go/internal/pkg/events"
	"github.com/cmlabs-hris/hris-compensation-go/internal/pkg/period"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Store is the subset of the record repository the payroll workflow needs.
type Store interface {
	record.EmployeeReader
	record.CompensationReader
	record.SalaryWriter
	record.Transactor
}

type CompensationServiceImpl struct {
	store     Store
	policy    compensation.Policy
	publisher events.Publisher
	logger    *slog.Logger
	now       func() time.Time
}

func NewCompensationService(
	store Store,
	policy compensation.Policy,
	publisher events.Publisher,
	logger *slog.Logger,
) compensation.CompensationService {
	return &CompensationServiceImpl{
		store:     store,
		policy:    policy,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// ========== PAYSLIP ==========

func (s *CompensationServiceImpl) GetPayslip(ctx context.Context, employeeID string, month period.Month) (compensation.PayslipResponse, error) {
	emp, err := s.store.GetEmployee(ctx, employeeID)
	if err != nil {
		return compensation.PayslipResponse{}, err
	}
	return s.payslipFor(ctx, emp, month)
}

// payslipFor reads the month's overtime and bonus rows sequentially so it is safe inside a transaction.
func (s *CompensationServiceImpl) payslipFor(ctx context.Context, emp record.Employee, month period.Month) (compensation.PayslipResponse, error) {
	window := month.Window()
	scope := record.Filter{EmployeeIDs: []string{emp.ID}, Window: &window}

	otFilter := scope
	otFilter.Status = string(record.ApprovalApproved)
	overtime, err := s.store.ListOvertimeRecords(ctx, otFilter)
	if err != nil {
		return compensation.PayslipResponse{}, err
	}
	bonuses, err := s.store.ListBonusRecords(ctx, scope)
	if err != nil {
		return compensation.PayslipResponse{}, err
	}

	hours := decimal.Zero
	for _, o := range overtime {
		hours = hours.Add(o.Hours)
	}
	bonus := decimal.Zero
	for _, b := range bonuses {
		bonus = bonus.Add(b.Amount)
	}

	slip, err := compensation.Calculate(compensation.PayslipInput{
		BaseSalary:    emp.BaseSalary,
		Unit:          emp.SalaryUnit,
		Allowances:    slices.Clone(s.policy.Allowances),
		OvertimeHours: hours,
		OvertimeRate:  emp.OvertimeRate,
		Bonus:         bonus,
		Deductions:    s.policy.Deductions,
	})
	if err != nil {
		return compensation.PayslipResponse{}, err
	}

	return compensation.PayslipResponse{
		EmployeeID:   emp.ID,
		EmployeeName: emp.Name,
		Department:   emp.Department,
		Position:     emp.Position,
		Period:       month,
		Payslip:      slip,
	}, nil
}

func (s *CompensationServiceImpl) RenderPayslipPDF(ctx context.Context, employeeID string, month period.Month) ([]byte, error) {
	slip, err := s.GetPayslip(ctx, employeeID, month)
	if err != nil {
		return nil, err
	}
	return renderPayslip(slip, s.now())
}

// ========== PAY RUN ==========

// RecordPayRun writes one immutable salary record per roster employee. Employees that already
// have a record for the period are skipped; a run where every employee is skipped fails.
func (s *CompensationServiceImpl) RecordPayRun(ctx context.Context, req compensation.PayRunRequest) (compensation.PayRunResponse, error) {
	month, err := req.Validate()
	if err != nil {
		return compensation.PayRunResponse{}, err
	}

	roster := dedupe(req.EmployeeIDs)
	resp := compensation.PayRunResponse{Period: month, SkippedEmployeeIDs: []string{}}
	var recorded []record.SalaryRecord

	err = s.store.WithinTransaction(ctx, func(txCtx context.Context) error {
		for _, id := range roster {
			exists, err := s.store.SalaryRecordExists(txCtx, id, month)
			if err != nil {
				return err
			}
			if exists {
				resp.SkippedEmployeeIDs = append(resp.SkippedEmployeeIDs, id)
				continue
			}

			emp, err := s.store.GetEmployee(txCtx, id)
			if err != nil {
				return err
			}
			slip, err := s.payslipFor(txCtx, emp, month)
			if err != nil {
				return err
			}

			rec := record.SalaryRecord{
				ID:            uuid.Must(uuid.NewV7()).String(),
				EmployeeID:    id,
				Period:        month,
				BasicSalary:   slip.MonthlySalary,
				Allowances:    slip.TotalAllowances,
				OvertimePay:   slip.OTAmount,
				BonusPay:      slip.Bonus,
				Deductions:    slip.TotalDeductions,
				TotalSalary:   slip.NetSalary,
				EffectiveDate: month.LastDay(),
				CreatedAt:     s.now(),
			}
			inserted, err := s.store.InsertSalaryRecordIfAbsent(txCtx, rec)
			if err != nil {
				return err
			}
			if !inserted {
				resp.SkippedEmployeeIDs = append(resp.SkippedEmployeeIDs, id)
				continue
			}
			recorded = append(recorded, rec)
		}

		if len(recorded) == 0 {
			return compensation.ErrPayRunAlreadyProcessed
		}
		return nil
	})
	if err != nil {
		return compensation.PayRunResponse{}, err
	}

	resp.ProcessedCount = len(recorded)
	s.publishPayRun(ctx, month, recorded)
	return resp, nil
}

func (s *CompensationServiceImpl) publishPayRun(ctx context.Context, month period.Month, recorded []record.SalaryRecord) {
	total := decimal.Zero
	ids := make([]string, 0, len(recorded))
	for _, r := range recorded {
		total = total.Add(r.TotalSalary)
		ids = append(ids, r.EmployeeID)
	}

	err := s.publisher.Publish(ctx, events.Event{
		Topic: events.TopicPayRunRecorded,
		Key:   month.String(),
		Type:  "payroll.run_recorded",
		Payload: map[string]any{
			"period":       month.String(),
			"employee_ids": ids,
			"total_net":    total.StringFixed(2),
		},
		OccurredAt: s.now(),
	})
	if err != nil {
		s.logger.WarnContext(ctx, "failed to publish pay run event", slog.String("period", month.String()), slog.Any("error", err))
	}
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
