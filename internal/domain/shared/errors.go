package shared

import "fmt"

// DomainError is the base error type for all domain errors.
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func NewDomainError(message string) *DomainError {
	return &DomainError{Message: message}
}

// ShipError covers invalid ship state or capability violations.
type ShipError struct {
	*DomainError
	ShipID string
}

func NewShipError(shipID, message string) *ShipError {
	return &ShipError{
		DomainError: &DomainError{Message: fmt.Sprintf("ship %s: %s", shipID, message)},
		ShipID:      shipID,
	}
}

// CargoOverflowError is raised when a purchase would exceed cargo capacity.
type CargoOverflowError struct {
	*ShipError
	Requested int
	Available int
}

func NewCargoOverflowError(shipID string, requested, available int) *CargoOverflowError {
	return &CargoOverflowError{
		ShipError: NewShipError(shipID,
			fmt.Sprintf("cargo overflow: requested %d units, %d available", requested, available)),
		Requested: requested,
		Available: available,
	}
}

// UnknownLocationError is raised when a ship reports a location that is not
// present in any fetched system.
type UnknownLocationError struct {
	*DomainError
	Symbol string
}

func NewUnknownLocationError(symbol string) *UnknownLocationError {
	return &UnknownLocationError{
		DomainError: &DomainError{Message: fmt.Sprintf("location %s does not exist", symbol)},
		Symbol:      symbol,
	}
}

// ValidationError reports an invalid field value.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
