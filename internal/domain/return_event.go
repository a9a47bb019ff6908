package domain

import (
	"time"

	"github.com/google/uuid"
)

type ReturnCondition string

const (
	ReturnConditionGood    ReturnCondition = "GOOD"
	ReturnConditionDamaged ReturnCondition = "DAMAGED"
	ReturnConditionLost    ReturnCondition = "LOST"
)

// IsValid reports whether c is one of the known conditions.
func (c ReturnCondition) IsValid() bool {
	return c == ReturnConditionGood || c == ReturnConditionDamaged || c == ReturnConditionLost
}

// RequiresDescription reports whether a return in this condition must
// carry a damage description.
func (c ReturnCondition) RequiresDescription() bool {
	return c == ReturnConditionDamaged || c == ReturnConditionLost
}

// ReturnEvent records a partial or full return of one line. Events are
// immutable once created; corrections are new compensating events. The
// uuid gives callers a stable key for de-duplicating resubmissions.
type ReturnEvent struct {
	ID                uuid.UUID       `json:"id"`
	OrderID           int32           `json:"order_id"`
	LineID            int32           `json:"line_id"`
	ReturnDate        time.Time       `json:"return_date"`
	Quantity          int32           `json:"quantity"`
	Condition         ReturnCondition `json:"condition"`
	DamageDescription string          `json:"damage_description,omitempty"`
	DamageCostCents   int64           `json:"damage_cost_cents"`
	Notes             string          `json:"notes,omitempty"`
	CreatedOn         time.Time       `json:"created_on"`
}
