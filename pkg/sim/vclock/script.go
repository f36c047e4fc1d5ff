package vclock

import (
	"errors"
	"fmt"

	"github.com/aretw0/algoviz/pkg/domain"
	"github.com/aretw0/algoviz/pkg/sim"
)

// Kind is the type of a scripted event.
type Kind string

const (
	Local   Kind = "local"
	Send    Kind = "send"
	Receive Kind = "receive"
)

// Action is one line of a script.
type Action struct {
	Kind    Kind   `mapstructure:"kind" json:"kind" validate:"oneof=local send receive"`
	Process int    `mapstructure:"process" json:"process" validate:"gte=0"`
	Message string `mapstructure:"message" json:"message,omitempty" validate:"required_unless=Kind local"`
}

// Script errors. They all wrap domain.ErrInvalidParameter.
var (
	ErrUnknownProcess    = fmt.Errorf("%w: unknown process", domain.ErrInvalidParameter)
	ErrReceiveBeforeSend = fmt.Errorf("%w: receive before send", domain.ErrInvalidParameter)
	ErrDuplicateMessage  = fmt.Errorf("%w: message label reused", domain.ErrInvalidParameter)
)

// Validate checks that every action names a known process, every message is
// sent once and every receive follows its send.
func Validate(processes int, script []Action) error {
	if processes < 1 {
		return fmt.Errorf("%w: at least one process is required", domain.ErrInvalidParameter)
	}
	sent := map[string]bool{}
	received := map[string]bool{}
	var errs []error
	for i, a := range script {
		if a.Process < 0 || a.Process >= processes {
			errs = append(errs, fmt.Errorf("action %d: %w %d", i, ErrUnknownProcess, a.Process))
			continue
		}
		switch a.Kind {
		case Send:
			if sent[a.Message] {
				errs = append(errs, fmt.Errorf("action %d: %w %q", i, ErrDuplicateMessage, a.Message))
			}
			sent[a.Message] = true
		case Receive:
			if !sent[a.Message] {
				errs = append(errs, fmt.Errorf("action %d: %w %q", i, ErrReceiveBeforeSend, a.Message))
			} else if received[a.Message] {
				errs = append(errs, fmt.Errorf("action %d: %w %q", i, ErrDuplicateMessage, a.Message))
			}
			received[a.Message] = true
		}
	}
	return errors.Join(errs...)
}

// RandomScript draws a valid script. Receives always pick an in-flight message.
func RandomScript(env sim.Env, processes, length int) []Action {
	var (
		script   []Action
		inFlight []Action
		n        int
	)
	for range length {
		roll := env.Rand.Intn(3)
		switch {
		case roll == 2 && len(inFlight) > 0:
			k := env.Rand.Intn(len(inFlight))
			msg := inFlight[k]
			inFlight = append(inFlight[:k], inFlight[k+1:]...)
			to := env.Rand.Intn(processes)
			if processes > 1 {
				for to == msg.Process {
					to = env.Rand.Intn(processes)
				}
			}
			script = append(script, Action{Kind: Receive, Process: to, Message: msg.Message})
		case roll == 1:
			n++
			a := Action{Kind: Send, Process: env.Rand.Intn(processes), Message: fmt.Sprintf("m%d", n)}
			inFlight = append(inFlight, a)
			script = append(script, a)
		default:
			script = append(script, Action{Kind: Local, Process: env.Rand.Intn(processes)})
		}
	}
	return script
}
