package leave

import (
	"context"
	"time"
)

// Repository defines data access for leave applications and policies.
type Repository interface {
	// ListApprovedApplications returns approved applications whose span
	// intersects [from, to].
	ListApprovedApplications(ctx context.Context, employeeID, companyID string, from, to time.Time) ([]Application, error)
	GetPolicies(ctx context.Context, companyID string) (map[string]Policy, error)
}
