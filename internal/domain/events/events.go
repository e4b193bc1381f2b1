package events

import "adelanta/internal/contract"

type SocketEvent interface {
	GetType() contract.EventType
}

// AdvanceRequested is pushed to admin dashboards when an employee
// submits a new advance request.
type AdvanceRequested struct {
	*contract.AdvanceResponse
}

func (e *AdvanceRequested) GetType() contract.EventType {
	return contract.EventAdvanceRequested
}

// AdvanceStatusChanged is pushed to the requesting employee when an
// admin moves their advance through the status machine.
type AdvanceStatusChanged struct {
	AdvanceID int64  `json:"advance_id"`
	Status    string `json:"status"`
}

func (e *AdvanceStatusChanged) GetType() contract.EventType {
	return contract.EventAdvanceStatusChanged
}
