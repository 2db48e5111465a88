package domain

import "time"

// Role is a dashboard user's permission level.
type Role string

const (
	RoleSuperAdmin   Role = "super_admin"
	RoleAgencyAdmin  Role = "agency_admin"
	RoleCompanyAdmin Role = "company_admin"
	RoleSeller       Role = "seller"
)

// UserProfile is the authenticated user's profile as returned by the
// auth endpoints.
type UserProfile struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      Role   `json:"role"`
	CompanyID string `json:"companyId,omitempty"`
}

// FullName returns the user's display name.
func (u UserProfile) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// Session is the persisted login state: an opaque credential plus the
// profile it was issued for. A Session exists only after a successful
// login or register and is destroyed on logout. The token is opaque to
// everything except the server that issued it.
type Session struct {
	Token    string      `json:"token"`
	User     UserProfile `json:"user"`
	IssuedAt time.Time   `json:"timestamp"`
}
