package scope

import "fmt"

// MissingProviderError reports a family read with no provider in reach. It is
// a programming error: the consuming component was built outside the tree
// that provides the family.
type MissingProviderError struct {
	Family string
}

func (e *MissingProviderError) Error() string {
	return fmt.Sprintf("[%s] scope is missing: build this component under a %s provider", e.Family, e.Family)
}
