package geomwatch

// MutationKind classifies a change notification from the rendered surface
type MutationKind int

const (
	// MutationStructure is a change to the rendered row/column structure
	MutationStructure MutationKind = iota
	// MutationStyle is a visual change that can alter measured heights
	MutationStyle
	// MutationAttribute is unrelated attribute churn with no geometric
	// consequence; filtered out before any recomputation is scheduled
	MutationAttribute
)

// Source is the observation capability a host environment must supply:
// "notify me when geometry changes" and "notify me when the rendered
// structure changes". How the host implements it (windowing events,
// platform observers, polling) is its own business.
type Source interface {
	// OnResize registers a callback for container dimension changes
	OnResize(fn func(width, height int))
	// OnMutation registers a callback for rendered-surface changes
	OnMutation(fn func(kind MutationKind))
}

// Event types
type SettledEvent struct {
	Width  int
	Height int
}
