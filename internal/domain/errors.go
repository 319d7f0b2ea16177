package domain

import "errors"

// ErrInvalidInput marks precondition violations on otherwise pure
// computations (e.g. materializing log sheets from an empty timeline).
// Callers test for it with errors.Is.
var ErrInvalidInput = errors.New("invalid input")

// ErrAddressNotFound marks a geocode lookup that completed but matched no
// location. Distinct from transport failures so the API can blame the
// address rather than the upstream service.
var ErrAddressNotFound = errors.New("address not found")
