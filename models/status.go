package models

// OrderStatus enumerates the production lifecycle of an order.
// The string values are wire-stable and stored as-is.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"   // created, not yet in production
	StatusCutting   OrderStatus = "cutting"   // fabric cut
	StatusStitching OrderStatus = "stitching" // garment assembly
	StatusFitting   OrderStatus = "fitting"   // customer fitting
	StatusCompleted OrderStatus = "completed" // production finished
	StatusDelivered OrderStatus = "delivered" // handed over to the customer
	StatusCancelled OrderStatus = "cancelled" // absorbing side-state
)

// StatusSequence is the fixed forward production sequence. Cancellation is a
// distinct action, not a position in this sequence.
var StatusSequence = []OrderStatus{
	StatusPending,
	StatusCutting,
	StatusStitching,
	StatusFitting,
	StatusCompleted,
	StatusDelivered,
}

var statusLabels = map[OrderStatus]string{
	StatusPending:   "Pending",
	StatusCutting:   "Cutting",
	StatusStitching: "Stitching",
	StatusFitting:   "Fitting",
	StatusCompleted: "Completed",
	StatusDelivered: "Delivered",
	StatusCancelled: "Cancelled",
}

// Valid reports whether s is one of the seven known status values.
func (s OrderStatus) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

// Label returns the display label for a status.
func (s OrderStatus) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

// IsTerminal reports whether no further transitions are permitted from s.
func (s OrderStatus) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// StageIndex maps a status to its position in the forward sequence.
// Cancelled (and any unknown value) maps to -1 for comparison purposes.
func StageIndex(s OrderStatus) int {
	for i, stage := range StatusSequence {
		if stage == s {
			return i
		}
	}
	return -1
}

// CanTransition reports whether an order may move from one status to another.
// Rules:
//   - both values must be known statuses and must differ
//   - delivered and cancelled are terminal: nothing leaves them
//   - cancellation is reachable from any non-terminal state
//   - forward moves may target any later stage in the sequence (stage
//     skipping is permitted); moving backwards is not
func CanTransition(from, to OrderStatus) bool {
	if !from.Valid() || !to.Valid() {
		return false
	}
	if from == to {
		return false
	}
	if from.IsTerminal() {
		return false
	}
	if to == StatusCancelled {
		return true
	}
	return StageIndex(to) > StageIndex(from)
}

// AllowedNext returns the forward stages an operator may move the order to:
// every stage later in the fixed sequence. The recommended transition is the
// first element. Cancellation is offered separately via CanTransition.
func AllowedNext(s OrderStatus) []OrderStatus {
	idx := StageIndex(s)
	if idx < 0 || s.IsTerminal() {
		return nil
	}
	next := make([]OrderStatus, 0, len(StatusSequence)-idx-1)
	next = append(next, StatusSequence[idx+1:]...)
	return next
}

// NextStatus returns the recommended (immediate next) stage, if any.
func NextStatus(s OrderStatus) (OrderStatus, bool) {
	next := AllowedNext(s)
	if len(next) == 0 {
		return "", false
	}
	return next[0], true
}

// TimelineStage is one node of the six-stage production timeline.
type TimelineStage struct {
	Status   OrderStatus `json:"status"`
	Label    string      `json:"label"`
	Complete bool        `json:"complete"`
	Current  bool        `json:"current"`
	State    string      `json:"state"` // "Completed", "In Progress" or "Pending"
}

// Timeline renders the six forward stages for the given status. Nodes at or
// before the current stage index are complete; the current node is
// additionally flagged. A cancelled order resolves to index -1, so no node is
// complete; callers render cancelled orders as an alert instead of the chain.
func Timeline(s OrderStatus) []TimelineStage {
	current := StageIndex(s)
	stages := make([]TimelineStage, len(StatusSequence))
	for i, stage := range StatusSequence {
		node := TimelineStage{
			Status:   stage,
			Label:    stage.Label(),
			Complete: i <= current,
			Current:  i == current,
		}
		switch {
		case i < current:
			node.State = "Completed"
		case i == current:
			node.State = "In Progress"
		default:
			node.State = "Pending"
		}
		stages[i] = node
	}
	return stages
}
