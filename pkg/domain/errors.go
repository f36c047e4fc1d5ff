package domain

import "errors"

// ErrInvalidParameter is returned when a scenario parameter or control value is rejected.
// No step is taken and the current state is left unchanged.
var ErrInvalidParameter = errors.New("invalid parameter")

// ErrUnknownScenario is returned when a preset name is not defined for a module.
var ErrUnknownScenario = errors.New("unknown scenario")

// ErrUnknownModule is returned when a module or simulation id is not registered.
var ErrUnknownModule = errors.New("unknown module")

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// ErrExhausted signals that an exhausted generator was asked for another step.
// Reaching it means the driver failed to detect completion.
var ErrExhausted = errors.New("generator exhausted")
