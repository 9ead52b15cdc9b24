package services

import "errors"

// Sentinel errors shared across services and mapped to HTTP statuses in the
// handlers package.
var (
	ErrGameNotFound  = errors.New("game not found")
	ErrMatchNotFound = errors.New("match not found")

	// Schedule generation
	ErrInvalidConfiguration = errors.New("invalid schedule configuration")
	ErrScheduleExists       = errors.New("fixtures already exist for this game")
	ErrTeamsNotConfigured   = errors.New("at least two teams must be configured before scheduling")

	// Round progression
	ErrNotRoundRobin   = errors.New("game is not under round-robin control")
	ErrRoundNotFound   = errors.New("no matches exist for the requested round")
	ErrRoundNotCurrent = errors.New("round is not the active round")
	ErrInvalidScore    = errors.New("scores must be non-negative integers")
	ErrUnknownMatch    = errors.New("score refers to a match outside this game")

	// Finalization
	ErrAlreadyFinalized = errors.New("game is already finalized; edit results via re-finalize")
	ErrNotFinalized     = errors.New("game has not been finalized yet")
	ErrUnknownTeam      = errors.New("team is not configured for this game")
	ErrNoWinner         = errors.New("no completed matches to determine a winner from")

	// Manual mode
	ErrRoundRobinManaged = errors.New("matches of a scheduled tournament cannot be edited manually")

	// Auth
	ErrAuthInvalidCredentials = errors.New("invalid email or password")
	ErrAuthEmailTaken         = errors.New("email is already taken")
	ErrPasswordTooShort       = errors.New("password is too short")
)
