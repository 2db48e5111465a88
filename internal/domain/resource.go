package domain

import "time"

// Company is a tenant on the platform.
type Company struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Document  string    `json:"document,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	AgencyID  string    `json:"agencyId,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
}

// Agency groups companies under a reseller.
type Agency struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
}

// WhatsAppConnection is a provisioned WhatsApp number bound to a
// company. Connection provisioning is entirely server-side; the client
// only lists connections and their health.
type WhatsAppConnection struct {
	ID          string     `json:"id"`
	PhoneNumber string     `json:"phoneNumber"`
	CompanyID   string     `json:"companyId"`
	Status      string     `json:"status"` // connected, disconnected, qr_pending
	LastSeenAt  *time.Time `json:"lastSeenAt,omitempty"`
}

// ReportRequest describes a report to generate.
type ReportRequest struct {
	Type      string `json:"type"` // conversations, performance, billing
	CompanyID string `json:"companyId,omitempty"`
	StartDate string `json:"startDate,omitempty"`
	EndDate   string `json:"endDate,omitempty"`
	Format    string `json:"format,omitempty"` // pdf, csv, xlsx
}

// Report is the server's handle for a generated report.
type Report struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Status      string    `json:"status"`
	DownloadURL string    `json:"downloadUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CreateUserRequest is the payload for creating a dashboard user.
type CreateUserRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      Role   `json:"role"`
	CompanyID string `json:"companyId,omitempty"`
}

// UpdateUserRequest carries partial updates for a user. Nil fields are
// left untouched by the server.
type UpdateUserRequest struct {
	Email     *string `json:"email,omitempty"`
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Role      *Role   `json:"role,omitempty"`
	Active    *bool   `json:"active,omitempty"`
}

// CreateCompanyRequest is the payload for creating a company.
type CreateCompanyRequest struct {
	Name     string `json:"name"`
	Document string `json:"document,omitempty"`
	Phone    string `json:"phone,omitempty"`
	AgencyID string `json:"agencyId,omitempty"`
}

// CreateConversationRequest opens a conversation with a contact.
type CreateConversationRequest struct {
	ContactName  string `json:"contactName"`
	ContactPhone string `json:"contactPhone"`
	CompanyID    string `json:"companyId"`
}
