package statemachine

import (
	"errors"

	"restaurant-management-api/models"
)

// allStatuses is the authoritative enumeration of order states
var allStatuses = []models.OrderStatus{
	models.StatusPending,
	models.StatusConfirmed,
	models.StatusPreparing,
	models.StatusReady,
	models.StatusCompleted,
	models.StatusCancelled,
}

var statusSet = func() map[models.OrderStatus]bool {
	m := make(map[models.OrderStatus]bool, len(allStatuses))
	for _, s := range allStatuses {
		m[s] = true
	}
	return m
}()

// terminal states never transition again
var terminalStatuses = map[models.OrderStatus]bool{
	models.StatusCompleted: true,
	models.StatusCancelled: true,
}

// AllStatuses returns the full status enumeration for documentation
func AllStatuses() []models.OrderStatus {
	return allStatuses
}

// IsValidStatus checks a target against the fixed enumeration
func IsValidStatus(status models.OrderStatus) bool {
	return statusSet[status]
}

// IsTerminal reports whether no further transition is allowed from status
func IsTerminal(status models.OrderStatus) bool {
	return terminalStatuses[status]
}

// ValidateTarget rejects any status outside the enumeration. Transitions
// between the named statuses are intentionally permissive.
func ValidateTarget(status models.OrderStatus) error {
	if !IsValidStatus(status) {
		return errors.New("invalid status '" + string(status) + "'. Must be one of: " + describeAll())
	}
	return nil
}

// CanCancel checks whether an order in the given state may move to cancelled
func CanCancel(current models.OrderStatus) error {
	if IsTerminal(current) {
		return errors.New("cannot cancel order with status: " + string(current))
	}
	return nil
}

func describeAll() string {
	result := ""
	for i, s := range allStatuses {
		if i > 0 {
			result += ", "
		}
		result += string(s)
	}
	return result
}
