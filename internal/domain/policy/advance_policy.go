package policy

import (
	"adelanta/internal/domain/entity"
	"adelanta/internal/utils/apierror"
)

// AdvancePolicy gates the advance flow. Inactive accounts are turned
// away from the whole flow (403), not given a field error.
type AdvancePolicy struct{}

func NewAdvancePolicy() *AdvancePolicy {
	return &AdvancePolicy{}
}

// CanRequest checks whether the employee may calculate or submit an
// advance. Employee must be preloaded with its Company.
func (p *AdvancePolicy) CanRequest(emp *entity.Employee) apierror.ErrorResponse {
	if emp.Company.Status != entity.CompanyStatusActive {
		return apierror.InactiveCompanyError
	}
	if !emp.IsActive() {
		return apierror.InactiveEmployeeError
	}
	return nil
}

// CanTransition validates one status transition of an advance.
//
// Admins drive REQUESTED→APPROVED→PAID and REQUESTED→DENIED; the
// requesting employee may cancel while the advance is REQUESTED or
// APPROVED. Terminal states never transition.
func (p *AdvancePolicy) CanTransition(actor *entity.Employee, adv *entity.Advance, to entity.AdvanceStatus) apierror.ErrorResponse {
	if adv.Status.IsTerminal() {
		return apierror.NewSimple(409, "Advance is already %s", adv.Status)
	}

	if to == entity.AdvanceCancelled {
		if actor.ID != adv.EmployeeID {
			return apierror.MissingPermsError
		}
		return nil
	}

	if !actor.Permissions.HasEffective(entity.PermissionManageAdvances) {
		return apierror.MissingPermsError
	}

	switch {
	case adv.Status == entity.AdvanceRequested && to == entity.AdvanceApproved:
		return nil
	case adv.Status == entity.AdvanceRequested && to == entity.AdvanceDenied:
		return nil
	case adv.Status == entity.AdvanceApproved && to == entity.AdvancePaid:
		return nil
	}
	return apierror.NewSimple(409, "Cannot move an advance from %s to %s", adv.Status, to)
}

// ActorKind resolves the history stamp for a transition performed by
// the given employee on the given advance.
func (p *AdvancePolicy) ActorKind(actor *entity.Employee, adv *entity.Advance) entity.AdvanceActor {
	if actor.ID == adv.EmployeeID {
		return entity.ActorEmployee
	}
	return entity.ActorAdmin
}
