package columns

import "gridview/internal/domain"

// State holds the canonical column sequence. Insertion order follows the
// dataset's field order and is preserved across resizes and sorts.
type State struct {
	Columns []domain.Column
}
