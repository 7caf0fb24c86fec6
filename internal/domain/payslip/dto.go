package payslip

import (
	"time"

	"github.com/shopspring/decimal"
)

type Response struct {
	ID            string          `json:"id"`
	EntryID       string          `json:"entry_id"`
	RunID         string          `json:"run_id"`
	EmployeeID    string          `json:"employee_id"`
	EmployeeName  string          `json:"employee_name,omitempty"`
	PayslipNumber string          `json:"payslip_number"`
	PeriodStart   string          `json:"period_start"`
	PeriodEnd     string          `json:"period_end"`
	PayDate       string          `json:"pay_date"`
	NetPay        decimal.Decimal `json:"net_pay"`
	Status        string          `json:"status"`
	DownloadCount int             `json:"download_count"`
	SentAt        *string         `json:"sent_at,omitempty"`
	DownloadedAt  *string         `json:"downloaded_at,omitempty"`
}

func NewResponse(p Payslip) Response {
	resp := Response{
		ID:            p.ID,
		EntryID:       p.EntryID,
		RunID:         p.RunID,
		EmployeeID:    p.EmployeeID,
		PayslipNumber: p.PayslipNumber,
		PeriodStart:   p.PeriodStart.Format("2006-01-02"),
		PeriodEnd:     p.PeriodEnd.Format("2006-01-02"),
		PayDate:       p.PayDate.Format("2006-01-02"),
		NetPay:        p.NetPay,
		Status:        string(p.Status),
		DownloadCount: p.DownloadCount,
	}
	if p.EmployeeName != nil {
		resp.EmployeeName = *p.EmployeeName
	}
	if p.SentAt != nil {
		s := p.SentAt.Format(time.RFC3339)
		resp.SentAt = &s
	}
	if p.DownloadedAt != nil {
		s := p.DownloadedAt.Format(time.RFC3339)
		resp.DownloadedAt = &s
	}
	return resp
}
