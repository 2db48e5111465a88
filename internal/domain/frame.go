package domain

import (
	"fmt"

	"github.com/bytedance/sonic"
)

// FrameType discriminates WebSocket frames. Every frame is a UTF-8
// JSON object with a mandatory "type" field.
type FrameType string

const (
	// FrameSendMessage is sent by the client to deliver a message.
	FrameSendMessage FrameType = "send_message"
	// FrameNewMessage carries an inbound message from the contact.
	FrameNewMessage FrameType = "new_message"
	// FrameMessageRead acknowledges that an outbound message was read.
	FrameMessageRead FrameType = "message_read"
	// FrameTyping signals typing activity; bidirectional.
	FrameTyping FrameType = "typing"
)

// Frame is the wire envelope for all chat WebSocket traffic. Fields
// beyond Type are populated depending on the frame type.
type Frame struct {
	Type           FrameType `json:"type"`
	ConversationID string    `json:"conversationId,omitempty"`
	Message        *Message  `json:"message,omitempty"`
	MessageID      string    `json:"messageId,omitempty"`
	IsTyping       bool      `json:"isTyping,omitempty"`
}

// ParseFrame decodes a raw inbound frame. Malformed JSON or a missing
// type field yields an error; callers drop such frames rather than
// tearing down the connection.
func ParseFrame(raw []byte) (*Frame, error) {
	var f Frame
	if err := sonic.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("malformed frame: %w", err)
	}
	if f.Type == "" {
		return nil, fmt.Errorf("frame missing type field")
	}
	return &f, nil
}

// NewSendMessageFrame builds the outbound envelope for a message.
func NewSendMessageFrame(conversationID string, msg *Message) Frame {
	return Frame{
		Type:           FrameSendMessage,
		ConversationID: conversationID,
		Message:        msg,
	}
}

// NewTypingFrame builds a typing indicator frame.
func NewTypingFrame(conversationID string, isTyping bool) Frame {
	return Frame{
		Type:           FrameTyping,
		ConversationID: conversationID,
		IsTyping:       isTyping,
	}
}
