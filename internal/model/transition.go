package model

// TransitionTable lists, for every declared state, the states it may move to.
type TransitionTable map[string]map[string]bool

// AnyToAny builds a table where every declared state may move to every
// declared state, itself included.
func AnyToAny(states []Option) TransitionTable {
	t := make(TransitionTable, len(states))
	for _, from := range states {
		targets := make(map[string]bool, len(states))
		for _, to := range states {
			targets[to.ID] = true
		}
		t[from.ID] = targets
	}
	return t
}

// Allows reports whether from → to is listed.
func (t TransitionTable) Allows(from, to string) bool {
	return t[from][to]
}

// Both boards let users jump between any two columns. Whether, for example,
// bloqueada → completada should require passing through en_proceso is an
// open product question; change these tables if that is ever decided.
var (
	PipelineTransitions = AnyToAny(PipelineStages)
	TaskTransitions     = AnyToAny(TaskStatuses)
)

func (s PipelineStage) CanTransition(to PipelineStage) bool {
	return PipelineTransitions.Allows(string(s), string(to))
}

func (s TaskStatus) CanTransition(to TaskStatus) bool {
	return TaskTransitions.Allows(string(s), string(to))
}
