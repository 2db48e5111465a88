package domain

import "time"

// Direction indicates whether a message was sent by the local user or
// received from the contact.
type Direction string

const (
	DirectionOutbound Direction = "outbound"
	DirectionInbound  Direction = "inbound"
)

// DeliveryState tracks the lifecycle of an outbound message.
// States only move forward: pending -> delivered -> read.
type DeliveryState string

const (
	DeliveryPending   DeliveryState = "pending"
	DeliveryDelivered DeliveryState = "delivered"
	DeliveryRead      DeliveryState = "read"
)

// deliveryRank orders delivery states for the monotonic transition check.
var deliveryRank = map[DeliveryState]int{
	DeliveryPending:   0,
	DeliveryDelivered: 1,
	DeliveryRead:      2,
}

// MessageKind is the content type of a message.
type MessageKind string

const (
	KindText     MessageKind = "text"
	KindImage    MessageKind = "image"
	KindDocument MessageKind = "document"
)

// Message is a single entry in a conversation's message log.
type Message struct {
	ID            string        `json:"id"`
	Content       string        `json:"content"`
	Timestamp     time.Time     `json:"timestamp"`
	Direction     Direction     `json:"direction"`
	DeliveryState DeliveryState `json:"deliveryState,omitempty"`
	Kind          MessageKind   `json:"kind"`
	MediaURL      string        `json:"mediaUrl,omitempty"`
	// IsRead is set on inbound messages when a read receipt referencing
	// them arrives. Outbound messages use DeliveryState instead.
	IsRead bool `json:"isRead,omitempty"`
}

// AdvanceDelivery moves the message's delivery state forward.
// Backward transitions are rejected; delivery states never regress.
// Skipping a state (pending -> read) is allowed: a genuine read
// receipt may arrive before any delivered confirmation.
// Returns true if the state changed.
func (m *Message) AdvanceDelivery(target DeliveryState) bool {
	if m.Direction != DirectionOutbound {
		return false
	}
	if deliveryRank[target] <= deliveryRank[m.DeliveryState] {
		return false
	}
	m.DeliveryState = target
	return true
}
