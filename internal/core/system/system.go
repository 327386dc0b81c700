package system

// Phase defines execution ordering within a single frame.
type Phase int

const (
	PhaseInput     Phase = iota // 0: input and pending events
	PhaseScript                 // 1: scripted behaviour
	PhaseAnimation              // 2: animation timers
	PhaseLate                   // 3: follow-up logic that reads animation state
	PhaseCleanup                // 4: destroy queued entities
)

// System is the interface every per-frame system implements.
// dt is the frame time in seconds.
type System interface {
	Phase() Phase
	Update(dt float64)
}
