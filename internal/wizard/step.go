package wizard

// Step is a wizard page.
type Step int

// Wizard steps in order.
const (
	StepListener Step = iota
	StepTargets
	StepComplete
)

func (s Step) String() string {
	switch s {
	case StepListener:
		return "listener"
	case StepTargets:
		return "targets"
	case StepComplete:
		return "complete"
	default:
		return "unknown"
	}
}
