package domain

import (
	"time"

	"github.com/google/uuid"
)

// Visit records that the traveller went to a place. Recent visits are
// excluded from plan candidates.
type Visit struct {
	ID        uuid.UUID
	PlaceID   string
	VisitedAt time.Time
}
