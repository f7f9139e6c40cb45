package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/Vvitsh/ticketstore/internal/common"
)

// Optional is a tri-state JSON field: absent, explicit null, or a value.
// A zero Optional means the field was not present in the payload at all.
// encoding/json only calls UnmarshalJSON for keys that exist, which is what
// keeps "omitted" and "null" apart.
type Optional[T any] struct {
	Set   bool
	Valid bool
	Value T
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		var zero T
		o.Valid = false
		o.Value = zero
		return nil
	}
	if err := json.Unmarshal(data, &o.Value); err != nil {
		return err
	}
	o.Valid = true
	return nil
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set || !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// Ptr returns the value as a nullable pointer: nil for an explicit null.
// Only meaningful when Set is true.
func (o Optional[T]) Ptr() *T {
	if !o.Valid {
		return nil
	}
	v := o.Value
	return &v
}

// TicketPatch is a partial update of a Ticket. Each field is independently
// absent (leave as is), null (clear), or a value (replace).
type TicketPatch struct {
	Title       Optional[string]    `json:"title"`
	Description Optional[string]    `json:"description"`
	Priority    Optional[string]    `json:"priority"`
	CompletedAt Optional[time.Time] `json:"completed_at"`
	DeletedAt   Optional[time.Time] `json:"deleted_at"`
	InProgress  Optional[bool]      `json:"in_progress"`
}

// IsZero reports whether the patch touches no fields.
func (p TicketPatch) IsZero() bool {
	return !p.Title.Set && !p.Description.Set && !p.Priority.Set &&
		!p.CompletedAt.Set && !p.DeletedAt.Set && !p.InProgress.Set
}

// Apply mutates ticket in place according to the patch. Values replace,
// nulls clear, absent fields stay untouched. Title is not nullable and, as
// on creation, must not be set to an empty string. Applying the same patch
// twice leaves the ticket in the same state as applying it once.
func (p TicketPatch) Apply(ticket *Ticket) error {
	if p.Title.Set {
		if !p.Title.Valid {
			return fmt.Errorf("%w: title cannot be null", common.ErrValidation)
		}
		if p.Title.Value == "" {
			return fmt.Errorf("%w: title cannot be empty", common.ErrValidation)
		}
		ticket.Title = p.Title.Value
	}
	if p.Description.Set {
		ticket.Description = p.Description.Ptr()
	}
	if p.Priority.Set {
		ticket.Priority = p.Priority.Ptr()
	}
	if p.CompletedAt.Set {
		ticket.CompletedAt = p.CompletedAt.Ptr()
	}
	if p.DeletedAt.Set {
		ticket.DeletedAt = p.DeletedAt.Ptr()
	}
	if p.InProgress.Set {
		ticket.InProgress = p.InProgress.Ptr()
	}
	return nil
}
