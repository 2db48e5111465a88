package domain

import "time"

// ConversationStatus is the workflow state of a conversation.
type ConversationStatus string

const (
	ConversationActive   ConversationStatus = "active"
	ConversationPending  ConversationStatus = "pending"
	ConversationArchived ConversationStatus = "archived"
)

// Conversation is a chat thread with a WhatsApp contact. Conversations
// are created and archived server-side; the chat core treats one as an
// immutable key scoping a transport connection and a message log.
type Conversation struct {
	ID             string             `json:"id"`
	ContactName    string             `json:"contactName"`
	ContactPhone   string             `json:"contactPhone"`
	CompanyID      string             `json:"companyId"`
	AssignedUserID string             `json:"assignedUserId,omitempty"`
	Status         ConversationStatus `json:"status"`
	LastMessageAt  *time.Time         `json:"lastMessageAt,omitempty"`
	CreatedAt      time.Time          `json:"createdAt"`
}
