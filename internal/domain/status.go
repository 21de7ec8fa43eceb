package domain

// allowedTransitions defines the reservation status graph.
// Terminal statuses (completed, cancelled, rejected, no_show) have no outgoing edges.
var allowedTransitions = map[ReservationStatus][]ReservationStatus{
	StatusPending:    {StatusConfirmed, StatusCancelled, StatusRejected},
	StatusConfirmed:  {StatusInProgress, StatusCompleted, StatusCancelled, StatusNoShow},
	StatusInProgress: {StatusCompleted},
}

// IsValid returns true if the status is one of the known reservation statuses
func (s ReservationStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusInProgress, StatusCompleted,
		StatusCancelled, StatusRejected, StatusNoShow:
		return true
	}
	return false
}

// IsTerminal returns true if no transition out of the status is allowed
func (s ReservationStatus) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusCancelled, StatusRejected, StatusNoShow:
		return true
	}
	return false
}

// CanTransitionTo returns true if the status graph permits moving to next
func (s ReservationStatus) CanTransitionTo(next ReservationStatus) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ReleasedStatuses список статусов, освобождающих временной слот.
// Используется при проверке пересечений бронирований.
var ReleasedStatuses = []ReservationStatus{
	StatusCancelled,
	StatusRejected,
}
