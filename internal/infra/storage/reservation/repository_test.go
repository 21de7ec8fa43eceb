package reservation

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapConstraintError_ExclusionViolation(t *testing.T) {
	err := mapConstraintError(&pq.Error{Code: pq.ErrorCode(pgExclusionViolation)})
	assert.ErrorIs(t, err, ErrWindowConflict)
}

func TestMapConstraintError_UniqueViolation(t *testing.T) {
	err := mapConstraintError(&pq.Error{Code: pq.ErrorCode(pgUniqueViolation)})
	assert.ErrorIs(t, err, ErrDuplicateConfirmation)
}

func TestMapConstraintError_SerializationFailurePreservesDriverError(t *testing.T) {
	// 40001 возвращается с сохранением цепочки: txmanager различает
	// его через errors.As и повторяет транзакцию
	driverErr := &pq.Error{Code: pq.ErrorCode(pgSerializationFailure)}

	mapped := mapConstraintError(fmt.Errorf("query failed: %w", driverErr))

	require.Error(t, mapped)
	var pqErr *pq.Error
	require.True(t, errors.As(mapped, &pqErr))
	assert.Equal(t, pgSerializationFailure, string(pqErr.Code))
}

func TestMapConstraintError_UnknownErrorsNotMapped(t *testing.T) {
	assert.Nil(t, mapConstraintError(errors.New("connection refused")))
	assert.Nil(t, mapConstraintError(&pq.Error{Code: "23503"}))
}
