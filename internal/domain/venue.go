package domain

import "fmt"

// ParseVenueType converts the catalog's string representation to a VenueType
func ParseVenueType(s string) (VenueType, error) {
	switch VenueType(s) {
	case VenueBeach, VenuePool, VenueYacht, VenueDayTrip:
		return VenueType(s), nil
	}
	return "", fmt.Errorf("unknown venue type %q", s)
}

// ParseReservationStatus converts a boundary string to a ReservationStatus
func ParseReservationStatus(s string) (ReservationStatus, error) {
	status := ReservationStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("unknown reservation status %q", s)
	}
	return status, nil
}

// ParseReservationSource converts a boundary string to a ReservationSource
func ParseReservationSource(s string) (ReservationSource, error) {
	switch ReservationSource(s) {
	case SourceOnline, SourcePhone, SourceWalkIn:
		return ReservationSource(s), nil
	}
	return "", fmt.Errorf("unknown reservation source %q", s)
}
