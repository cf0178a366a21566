package quiz

import (
	"fmt"
	"time"
)

type IntentKind int

const (
	IntentStart IntentKind = iota
	IntentSelect
	IntentSubmit
	IntentNext
	IntentTick
	IntentRestart
)

func (k IntentKind) String() string {
	switch k {
	case IntentStart:
		return "start"
	case IntentSelect:
		return "select"
	case IntentSubmit:
		return "submit"
	case IntentNext:
		return "next"
	case IntentTick:
		return "tick"
	case IntentRestart:
		return "restart"
	default:
		return fmt.Sprintf("intent(%d)", int(k))
	}
}

// Intent is one user action or timer tick forwarded by a host.
// Option is read only for IntentSelect.
type Intent struct {
	Kind   IntentKind
	Option int
}

func (in Intent) String() string {
	if in.Kind == IntentSelect {
		return fmt.Sprintf("select(%d)", in.Option)
	}
	return in.Kind.String()
}

// Apply is the pure transition function: it returns the next session and
// whether it differs from the argument, which is never modified. An expired
// session moves to PhaseTimedOut and the intent itself is dropped.
func Apply(s Session, in Intent, now time.Time) (Session, bool) {
	if s.expire(now) {
		return s, true
	}

	var applied bool
	switch in.Kind {
	case IntentStart:
		applied = s.Start(now)
	case IntentSelect:
		applied = s.Select(in.Option, now)
	case IntentSubmit:
		applied = s.Submit(now)
	case IntentNext:
		applied = s.Next(now)
	case IntentTick:
		applied = s.Tick(now)
	case IntentRestart:
		applied = s.Restart()
	}
	return s, applied
}
