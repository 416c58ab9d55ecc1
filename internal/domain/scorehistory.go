package domain

import (
	"time"

	"github.com/google/uuid"
)

// BaseScoreHistory is one entry in the append-only audit log of an
// adjudicator's base score. A nil RoundID marks the pre-tournament baseline.
// Entries are never updated or deleted.
type BaseScoreHistory struct {
	ID            uuid.UUID
	AdjudicatorID uuid.UUID
	RoundID       *uuid.UUID
	Score         float64
	Timestamp     time.Time
}
