package payslip

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus_CanTransitionTo(t *testing.T) {
	assert.True(t, StatusGenerated.CanTransitionTo(StatusSent))
	assert.True(t, StatusGenerated.CanTransitionTo(StatusDownloaded))

	assert.False(t, StatusSent.CanTransitionTo(StatusGenerated))
	assert.False(t, StatusSent.CanTransitionTo(StatusDownloaded))
	assert.False(t, StatusDownloaded.CanTransitionTo(StatusSent))
	assert.False(t, StatusDownloaded.CanTransitionTo(StatusGenerated))
}
