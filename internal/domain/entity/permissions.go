package entity

// Permission is a custom type for bitwise flags
type Permission int64

const (
	// PermissionAdministrator grants god-mode.
	// Admins are immune to all restrictions and cannot be modified via API.
	PermissionAdministrator Permission = 1 << iota

	// PermissionManageEmployees allows creating employees and modifying
	// their status, ceilings and payout destinations.
	PermissionManageEmployees

	// PermissionManagePoints allows applying ledger transactions and
	// reading the company points aggregate.
	PermissionManagePoints

	// PermissionManageAdvances allows approving, denying and marking
	// advance requests as paid.
	PermissionManageAdvances

	// PermissionManageBenefits allows creating, editing and deleting
	// benefits, including their images.
	PermissionManageBenefits
)

// Has checks if the permission bitmask contains ALL bits
// requested in 'target'. It ignores Administrator status.
// Logic: (p & target) == target
func (p Permission) Has(target Permission) bool {
	return (p & target) == target
}

// HasAny returns true if the user has ANY of the target permissions
func (p Permission) HasAny(target Permission) bool {
	return (p & target) > 0
}

// Add appends a permission to the bitmask
func (p Permission) Add(perm Permission) Permission {
	return p | perm
}

// Remove clears a permission from the bitmask
func (p Permission) Remove(perm Permission) Permission {
	return p &^ perm
}

// HasEffective checks if the permission bitmask contains the target bits
// OR if the permission includes Administrator
func (p Permission) HasEffective(target Permission) bool {
	return p.Has(PermissionAdministrator) || p.Has(target)
}
