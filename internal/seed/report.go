package seed

const (
	KindUser     = "user"
	KindVenue    = "venue"
	KindMusician = "musician"
	KindEvent    = "event"
	KindBooking  = "booking"
)

type Status string

const (
	StatusCreated Status = "created"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
)

type StepResult struct {
	Kind   string
	Name   string
	Status Status
	ID     string
	Err    error
}

// Report lists the outcome of every seed step in execution order.
type Report struct {
	Steps []StepResult
}

func (r *Report) add(res StepResult) {
	r.Steps = append(r.Steps, res)
}

func (r *Report) Count(status Status) int {
	n := 0
	for _, s := range r.Steps {
		if s.Status == status {
			n++
		}
	}
	return n
}

// Find returns the result for kind and name, if any.
func (r *Report) Find(kind, name string) (StepResult, bool) {
	for _, s := range r.Steps {
		if s.Kind == kind && s.Name == name {
			return s, true
		}
	}
	return StepResult{}, false
}
