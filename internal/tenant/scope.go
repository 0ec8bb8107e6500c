// Mohamedbadhey | 2026
// scope.go

package tenant

import (
	"fmt"
	"strconv"

	"github.com/Mohamedbadhey/rtailed-core/internal/core"
)

// Scope is the set of business identifiers a request may touch: exactly one
// business, or every business (superadmin aggregation). It is resolved once
// per request and is immutable afterwards.
type Scope struct {
	businessID int64
	all        bool
}

func ForBusiness(businessID int64) Scope {
	return Scope{businessID: businessID}
}

func All() Scope {
	return Scope{all: true}
}

func (s Scope) IsAll() bool {
	return s.all
}

func (s Scope) BusinessID() (int64, bool) {
	if s.all {
		return 0, false
	}
	return s.businessID, true
}

// MustBusinessID returns the single business id a write must be stamped
// with. Writes under the ALL scope have no unambiguous target.
func (s Scope) MustBusinessID() (int64, error) {
	if s.all {
		return 0, fmt.Errorf("resolve write target: %w", core.ErrInvalidScope)
	}
	return s.businessID, nil
}

// Predicate emits the business_id clause for a WHERE condition starting at
// the given placeholder index. The clause is structurally part of every
// statement: under ALL it degenerates to TRUE rather than being omitted, so
// no accessor query can be built without passing through a Scope.
func (s Scope) Predicate(column string, argIdx int) (string, []any, int) {
	if s.all {
		return "TRUE", nil, argIdx
	}
	return fmt.Sprintf("%s = $%d", column, argIdx),
		[]any{s.businessID},
		argIdx + 1
}

func (s Scope) String() string {
	if s.all {
		return "ALL"
	}
	return strconv.FormatInt(s.businessID, 10)
}
