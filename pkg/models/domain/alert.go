package domain

// Priority orders alerts on the dashboard. Higher sorts first.
type Priority string

const (
	PriorityInfo     Priority = "info"
	PriorityWarning  Priority = "warning"
	PriorityCritical Priority = "critical"
)

// Rank maps a priority to its sort weight. Unknown priorities rank
// below info.
func (p Priority) Rank() int {
	switch p {
	case PriorityCritical:
		return 3
	case PriorityWarning:
		return 2
	case PriorityInfo:
		return 1
	}
	return 0
}

// AlertSource records which strategy produced an alert list: the remote
// notifications feed or the local rule table. A single list never mixes
// the two.
type AlertSource string

const (
	AlertSourceRemote AlertSource = "remote"
	AlertSourceLocal  AlertSource = "local"
)

// Alert is one prioritized business notice.
type Alert struct {
	ID       string
	Type     string
	Priority Priority
	Message  string
	Domain   Name
	Source   AlertSource
}
