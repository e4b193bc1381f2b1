package points

import (
	"errors"

	"adelanta/internal/domain/entity"
	"adelanta/internal/utils/apierror"
)

// ErrEmployeeNotFound is returned by ledger stores when the entry
// references an employee that does not exist.
var ErrEmployeeNotFound = errors.New("points: employee not found")

// Entry is one requested ledger operation. Value must be validated as
// non-negative before Apply runs; Validate enforces that plus the
// per-type id requirements.
type Entry struct {
	Type       entity.TransactionType
	Value      int
	SenderID   *int64
	ReceiverID *int64
	CompanyID  int64
}

// SubjectID returns the id of the employee whose balance the entry
// mutates: the sender for CONSUMPTION, the receiver otherwise.
func (e Entry) SubjectID() (int64, bool) {
	switch e.Type {
	case entity.TransactionConsumption:
		if e.SenderID == nil {
			return 0, false
		}
		return *e.SenderID, true
	default:
		if e.ReceiverID == nil {
			return 0, false
		}
		return *e.ReceiverID, true
	}
}

// Validate checks the entry shape and returns field-keyed problems.
// No mutation may happen when this returns a non-nil error.
func (e Entry) Validate() *apierror.StructuredError {
	se := apierror.NewStructured(400)

	switch e.Type {
	case entity.TransactionTransfer:
		if e.SenderID == nil {
			se.Add("senderId", "A sender is required for transfers")
		}
		if e.ReceiverID == nil {
			se.Add("receiverId", "A receiver is required for transfers")
		}
		if e.SenderID != nil && e.ReceiverID != nil && *e.SenderID == *e.ReceiverID {
			se.Add("senderId", "Sender and receiver cannot be the same employee")
		}
	case entity.TransactionReward, entity.TransactionModification:
		if e.ReceiverID == nil {
			se.Add("receiverId", "A receiver is required for this transaction")
		}
	case entity.TransactionConsumption:
		if e.SenderID == nil {
			se.Add("senderId", "A sender is required for consumptions")
		}
	default:
		se.Add("type", "Unknown transaction type")
	}

	if e.Value < 0 {
		se.Add("value", "Value cannot be negative")
	}
	if e.CompanyID <= 0 {
		se.Add("companyId", "A company is required")
	}

	if !se.HasErrors() {
		return nil
	}
	return se
}

// Apply mutates the subject employee's balance and the company
// aggregate per the entry type and returns the audit row recording the
// operation. The caller persists all three in one database transaction.
//
// Invariant: after Apply returns, the employee balance and both company
// counters are >= 0. Overdrawing never rejects the entry; the balance
// is clamped to the floor instead.
func Apply(e Entry, emp *entity.Employee, agg *entity.CompanyPoints) (entity.PointTransaction, error) {
	switch e.Type {
	case entity.TransactionTransfer, entity.TransactionReward:
		emp.AvailablePoints += e.Value
		agg.CurrentBudget += int64(e.Value)
		agg.CirculatingPoints += int64(e.Value)

	case entity.TransactionConsumption:
		emp.AvailablePoints -= e.Value
		agg.CirculatingPoints -= int64(e.Value)
		agg.SpentPoints += int64(e.Value)

	case entity.TransactionModification:
		delta := int64(e.Value - emp.AvailablePoints)
		emp.AvailablePoints = e.Value
		agg.CurrentBudget += delta
		agg.CirculatingPoints += delta

	default:
		return entity.PointTransaction{}, errors.New("points: unknown transaction type")
	}

	emp.AvailablePoints = int(clampToFloor(int64(emp.AvailablePoints), 0))
	agg.CurrentBudget = clampToFloor(agg.CurrentBudget, 0)
	agg.CirculatingPoints = clampToFloor(agg.CirculatingPoints, 0)

	return entity.PointTransaction{
		Type:       e.Type,
		Value:      e.Value,
		SenderID:   e.SenderID,
		ReceiverID: e.ReceiverID,
		CompanyID:  e.CompanyID,
	}, nil
}

// clampToFloor is the named invariant-enforcement step: every ledger
// mutation passes through it so a balance is never reported below floor.
func clampToFloor(v, floor int64) int64 {
	if v < floor {
		return floor
	}
	return v
}
