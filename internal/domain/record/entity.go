package record

import (
	"time"

	"github.com/cmlabs-hris/hris-compensation-go/internal/pkg/period"
	"github.com/shopspring/decimal"
)

var monthsPerYear = decimal.NewFromInt(12)

type EmployeeStatus string

const (
	EmployeeStatusActive     EmployeeStatus = "active"
	EmployeeStatusTerminated EmployeeStatus = "terminated"
)

// SalaryUnit tells whether BaseSalary is a monthly or an annual figure.
type SalaryUnit string

const (
	SalaryUnitMonthly SalaryUnit = "monthly"
	SalaryUnitAnnual  SalaryUnit = "annual"
)

type Employee struct {
	ID           string
	Name         string
	Department   string
	Position     string
	BaseSalary   decimal.Decimal
	SalaryUnit   SalaryUnit
	OvertimeRate decimal.Decimal
	BonusToDate  decimal.Decimal
	ManagerID    *string
	Role         string
	Status       EmployeeStatus
	HireDate     *time.Time
	// CreditScore is nil when no credit profile is on file.
	CreditScore    *int
	LeadershipFlag bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// MonthlySalary normalizes BaseSalary to a monthly figure at full precision.
func (e Employee) MonthlySalary() decimal.Decimal {
	if e.SalaryUnit == SalaryUnitAnnual {
		return e.BaseSalary.Div(monthsPerYear)
	}
	return e.BaseSalary
}

// AnnualSalary normalizes BaseSalary to an annual figure.
func (e Employee) AnnualSalary() decimal.Decimal {
	if e.SalaryUnit == SalaryUnitAnnual {
		return e.BaseSalary
	}
	return e.BaseSalary.Mul(monthsPerYear)
}

// SalaryRecord is one pay run for one employee. Rows are immutable; corrections are new rows.
type SalaryRecord struct {
	ID            string
	EmployeeID    string
	Period        period.Month
	BasicSalary   decimal.Decimal
	Allowances    decimal.Decimal
	OvertimePay   decimal.Decimal
	BonusPay      decimal.Decimal
	Deductions    decimal.Decimal
	TotalSalary   decimal.Decimal
	EffectiveDate time.Time
	CreatedAt     time.Time
}

type BonusRecord struct {
	ID         string
	EmployeeID string
	Amount     decimal.Decimal
	Reason     string
	PaidAt     time.Time
}

type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

type OvertimeRecord struct {
	ID         string
	EmployeeID string
	Hours      decimal.Decimal
	WorkDate   time.Time
	Approval   ApprovalStatus
}

type ContributionStatus string

const (
	ContributionPending ContributionStatus = "pending"
	ContributionPaid    ContributionStatus = "paid"
)

type ContributionRecord struct {
	ID          string
	EmployeeID  string
	Period      period.Month
	Salary      decimal.Decimal
	EmployeeEPF decimal.Decimal
	EmployerEPF decimal.Decimal
	ETF         decimal.Decimal
	AppliedDate time.Time
	Status      ContributionStatus
}

type LoanType struct {
	ID              string
	Name            string
	MaxAmount       decimal.Decimal
	MinRate         decimal.Decimal
	MaxRate         decimal.Decimal
	MaxTenureMonths int
	Description     string
}

type LoanStatus string

const (
	LoanStatusPending  LoanStatus = "pending"
	LoanStatusApproved LoanStatus = "approved"
	LoanStatusRejected LoanStatus = "rejected"
)

type LoanRequest struct {
	ID             string
	EmployeeID     string
	LoanTypeID     string
	Principal      decimal.Decimal
	InterestRate   decimal.Decimal
	TenureMonths   int
	Purpose        string
	Status         LoanStatus
	ReviewerID     *string
	ReviewDate     *time.Time
	ReviewComments *string
	CreatedAt      time.Time
}

// LoanTransition is a conditional status write: it applies only while the row still has status From.
type LoanTransition struct {
	LoanID     string
	From       LoanStatus
	To         LoanStatus
	ReviewerID string
	Comments   string
	At         time.Time
}

type PromotionRecord struct {
	ID             string
	EmployeeID     string
	OldPosition    string
	NewPosition    string
	PromotionDate  time.Time
	SalaryIncrease decimal.Decimal
	Reason         string
}

type KPIRecord struct {
	ID           string
	EmployeeID   string
	Value        float64
	Rank         string
	CalculatedAt time.Time
}

type TrainingAssignment struct {
	ID         string
	EmployeeID string
	TrainingID string
	Title      string
	Category   string
	StartTime  time.Time
	EndTime    time.Time
}

type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceLate    AttendanceStatus = "late"
)

type AttendanceRecord struct {
	ID         string
	EmployeeID string
	Date       time.Time
	Status     AttendanceStatus
	MarkedAt   time.Time
}

type LeaveRequest struct {
	ID         string
	EmployeeID string
	LeaveType  string
	StartDate  time.Time
	EndDate    time.Time
	Approval   ApprovalStatus
	UpdatedAt  time.Time
}

type TaskStatus string

const (
	TaskOpen      TaskStatus = "open"
	TaskCompleted TaskStatus = "completed"
)

type TaskRecord struct {
	ID          string
	EmployeeID  string
	Title       string
	Status      TaskStatus
	CompletedAt *time.Time
	UpdatedAt   time.Time
}
