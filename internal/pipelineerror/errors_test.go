package pipelineerror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFetchError(t *testing.T) {
	cause := errors.New("connection refused")
	err := &FetchError{Currency: "USD", Transient: true, Err: cause}

	assert.Contains(t, err.Error(), "transient")
	assert.Contains(t, err.Error(), "USD")
	assert.ErrorIs(t, err, cause)

	permanent := &FetchError{Currency: "XXX", Status: 404, Err: errors.New("unexpected status 404 Not Found")}
	assert.Contains(t, permanent.Error(), "permanent")
	assert.Contains(t, permanent.Error(), "404")
}

func TestSchemaError(t *testing.T) {
	err := &SchemaError{FilePath: "data/ECB_EUR_USD.csv", Field: "OBS_VALUE"}
	assert.Contains(t, err.Error(), "OBS_VALUE")
	assert.Contains(t, err.Error(), "data/ECB_EUR_USD.csv")
}

func TestUnitErrorUnwrap(t *testing.T) {
	schema := &SchemaError{FilePath: "f.csv", Field: "TIME_PERIOD"}
	err := &UnitError{Pair: "EUR_USD", Stage: "normalize", Err: schema}

	assert.Contains(t, err.Error(), "normalize")
	assert.Contains(t, err.Error(), "EUR_USD")

	var target *SchemaError
	assert.True(t, errors.As(err, &target))

	wrapped := fmt.Errorf("unit failed: %w", err)
	var unit *UnitError
	assert.True(t, errors.As(wrapped, &unit))
}
