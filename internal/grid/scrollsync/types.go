package scrollsync

// State holds the scroll offsets owned by the synchronizer. The header
// and body keep their own horizontal offsets so a propagation can be
// short-circuited when the target already matches the source.
type State struct {
	ScrollTop  int
	HeaderLeft int
	BodyLeft   int
}

// Event types
type VerticalScrolledEvent struct {
	ScrollTop int
}

type HorizontalScrolledEvent struct {
	ScrollLeft int
}
