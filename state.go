package fuse

// State is a phase of a processor run.
type State uint8

const (
	StateProcessingUnion State = iota
	StateWritingMetadata
	StateProcessingPointEdgeIntersections
	StateProcessingEdgeEdgeIntersections
	StateWritingClusters
	StateDone
)

var stateNames = [...]string{
	StateProcessingUnion:                  "ProcessingUnion",
	StateWritingMetadata:                  "WritingMetadata",
	StateProcessingPointEdgeIntersections: "ProcessingPointEdgeIntersections",
	StateProcessingEdgeEdgeIntersections:  "ProcessingEdgeEdgeIntersections",
	StateWritingClusters:                  "WritingClusters",
	StateDone:                             "Done",
}

// String returns the state name.
func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "Unknown"
}
