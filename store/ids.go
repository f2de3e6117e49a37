package store

import (
	"strconv"
	"time"
)

// idSource hands out millisecond-timestamp identifiers, bumped forward when
// two entities are created within the same millisecond. Callers must hold
// the owning store's lock.
type idSource struct {
	last int64
}

func (s *idSource) next() string {
	id := time.Now().UnixMilli()
	if id <= s.last {
		id = s.last + 1
	}
	s.last = id
	return strconv.FormatInt(id, 10)
}
