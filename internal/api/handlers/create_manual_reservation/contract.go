package create_manual_reservation

import (
	"context"

	createManualReservation "github.com/kaancelik05/swimago-api-sub000/internal/usecase/create_manual_reservation"
)

type CreateManualReservationUseCase interface {
	Execute(ctx context.Context, req *createManualReservation.Request) (*createManualReservation.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
