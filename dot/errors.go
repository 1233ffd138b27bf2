package dot

import (
	"errors"
	"fmt"
)

// ErrAttached is returned when an element that already belongs to a graph
// is added to another one.
var ErrAttached = errors.New("element already belongs to a graph")

// ArgumentTypeError reports an add operation called with a value of the
// wrong element kind.
type ArgumentTypeError struct {
	Op  string // operation, e.g. "AddSubgraph"
	Got string // kind that was received
}

func (e *ArgumentTypeError) Error() string {
	return fmt.Sprintf("%s: unexpected %s", e.Op, e.Got)
}

func attached(op, name string) error {
	return fmt.Errorf("%s %q: %w", op, name, ErrAttached)
}
