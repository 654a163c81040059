package statemachine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"restaurant-management-api/models"
)

func TestValidateTarget(t *testing.T) {
	for _, s := range AllStatuses() {
		assert.NoError(t, ValidateTarget(s), string(s))
	}

	err := ValidateTarget("delivered")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid status 'delivered'")

	assert.Error(t, ValidateTarget(""))
	assert.Error(t, ValidateTarget("PENDING")) // enum is lowercase
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, IsTerminal(models.StatusCompleted))
	assert.True(t, IsTerminal(models.StatusCancelled))

	for _, s := range []models.OrderStatus{
		models.StatusPending,
		models.StatusConfirmed,
		models.StatusPreparing,
		models.StatusReady,
	} {
		assert.False(t, IsTerminal(s), string(s))
	}
}

func TestCanCancel(t *testing.T) {
	for _, s := range []models.OrderStatus{
		models.StatusPending,
		models.StatusConfirmed,
		models.StatusPreparing,
		models.StatusReady,
	} {
		assert.NoError(t, CanCancel(s), string(s))
	}

	err := CanCancel(models.StatusCompleted)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "cannot cancel order with status: completed")

	err = CanCancel(models.StatusCancelled)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "cancelled")
}
