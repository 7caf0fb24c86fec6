package payslip

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status enum. Transitions are one-way: generated -> sent, generated ->
// downloaded. Repeated downloads only bump the counter.
type Status string

const (
	StatusGenerated  Status = "generated"
	StatusSent       Status = "sent"
	StatusDownloaded Status = "downloaded"
)

// CanTransitionTo reports whether a payslip may move to target.
func (s Status) CanTransitionTo(target Status) bool {
	return s == StatusGenerated && (target == StatusSent || target == StatusDownloaded)
}

// Payslip - one per payroll entry, materialized when a run completes.
type Payslip struct {
	ID            string
	EntryID       string
	RunID         string
	EmployeeID    string
	CompanyID     string
	PayslipNumber string
	PeriodStart   time.Time
	PeriodEnd     time.Time
	PayDate       time.Time
	NetPay        decimal.Decimal
	Status        Status
	FilePath      *string
	DownloadCount int
	SentAt        *time.Time
	DownloadedAt  *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Joined fields
	EmployeeName *string
}
