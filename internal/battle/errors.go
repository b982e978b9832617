package battle

import "errors"

var (
	// State machine construction.
	ErrNoInitialState    = errors.New("battle: initial state is not registered")
	ErrUnknownState      = errors.New("battle: transition targets an unregistered state")
	ErrMissingFinished   = errors.New("battle: non-terminal state has no FINISHED transition")
	ErrMissingTransition = errors.New("battle: state emits an event with no transition")
	ErrInvalidTransition = errors.New("battle: transition endpoints out of range")

	// Orchestrator lifecycle.
	ErrMachineActive = errors.New("battle: state machine already active")
	ErrBattleActive  = errors.New("battle: a battle is already running")
	ErrNoBattle      = errors.New("battle: no battle has been started")
)
