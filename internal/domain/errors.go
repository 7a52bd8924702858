package domain

import "errors"

var (
	ErrEscrowNotFound         = errors.New("escrow not found")
	ErrDisputeNotFound        = errors.New("dispute not found")
	ErrUserNotFound           = errors.New("user not found")
	ErrUnauthenticated        = errors.New("unauthenticated")
	ErrUnauthorized           = errors.New("unauthorized")
	ErrInvalidStateTransition = errors.New("invalid escrow state transition")
	ErrConflictingDispute     = errors.New("open dispute already exists")
	ErrPaymentGateway         = errors.New("payment gateway failure")
)
