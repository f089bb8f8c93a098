package apperrors

import "errors"

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrNotFound            = errors.New("not found")
	ErrNoActiveSession     = errors.New("no active session")
	ErrActiveSessionExists = errors.New("active session already exists")
	ErrSessionNotRunning   = errors.New("session is not running")
	ErrVehicleLocked       = errors.New("vehicle is locked")
	ErrNoRoute             = errors.New("no route found")
)
