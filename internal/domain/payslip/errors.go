package payslip

import "errors"

var (
	ErrPayslipNotFound     = errors.New("payslip not found")
	ErrInvalidTransition   = errors.New("invalid payslip status transition")
	ErrRunNotCompleted     = errors.New("payslips can only be emitted for completed runs")
	ErrPayslipNumberExists = errors.New("payslip number already exists")
)
