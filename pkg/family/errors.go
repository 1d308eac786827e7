package family

import (
	"fmt"
	"slices"
	"strings"

	kerrors "github.com/matzehuels/kintree/pkg/errors"
)

// StructuralError reports a parent chain that cannot be laid out: a person
// listed as their own parent, or a directed cycle. For a cycle each ID is a
// parent of the next and the last is a parent of the first.
type StructuralError struct {
	Code kerrors.Code
	IDs  []string
}

func (e *StructuralError) Error() string {
	switch e.Code {
	case kerrors.ErrCodeSelfParent:
		return fmt.Sprintf("%s: person %q is listed as their own parent", e.Code, e.IDs[0])
	default:
		return fmt.Sprintf("%s: parent references form a cycle: %s", e.Code, strings.Join(append(slices.Clone(e.IDs), e.IDs[0]), " -> "))
	}
}

// Unwrap exposes the error code so that kerrors.Is and kerrors.IsStructural
// recognise structural errors.
func (e *StructuralError) Unwrap() error {
	return kerrors.New(e.Code, "%s", strings.Join(e.IDs, ","))
}
