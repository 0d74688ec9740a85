package services

import "mitrabus/models"

// Principal is the authenticated caller as supplied by the identity
// layer. The core trusts it and only performs ownership checks.
type Principal struct {
	UserID  uint
	MitraID *uint
	Role    string
}

func PrincipalFromUser(u models.User) Principal {
	return Principal{UserID: u.ID, MitraID: u.MitraID, Role: u.Role}
}

func (p Principal) IsAdmin() bool {
	return p.Role == models.RoleAdmin
}

func (p Principal) OwnsMitra(mitraID uint) bool {
	if p.IsAdmin() {
		return true
	}
	return p.MitraID != nil && *p.MitraID == mitraID
}
