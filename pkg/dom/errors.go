package dom

import (
	"fmt"
	"strings"
)

// UnsupportedElementError reports an element the walker cannot traverse
// through. It aborts the whole extraction; no partial tree is returned.
type UnsupportedElementError struct {
	Tag string
}

func (e *UnsupportedElementError) Error() string {
	return fmt.Sprintf("unsupported element <%s>: cross-document content cannot be traversed", strings.ToLower(e.Tag))
}
