package leave

import "errors"

var (
	ErrOverlappingLeave = errors.New("employee has overlapping approved leave applications")
	ErrPolicyNotFound   = errors.New("leave policy not found for leave type")
)
