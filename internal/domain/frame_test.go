package domain

import "testing"

func TestParseFrame(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantErr  bool
		wantType FrameType
	}{
		{
			name:     "new_message",
			raw:      `{"type":"new_message","message":{"id":"m1","content":"oi","kind":"text"}}`,
			wantType: FrameNewMessage,
		},
		{
			name:     "message_read",
			raw:      `{"type":"message_read","messageId":"m1"}`,
			wantType: FrameMessageRead,
		},
		{
			name:     "typing",
			raw:      `{"type":"typing","conversationId":"c1","isTyping":true}`,
			wantType: FrameTyping,
		},
		{
			name:     "unknown type still parses",
			raw:      `{"type":"presence","status":"online"}`,
			wantType: FrameType("presence"),
		},
		{
			name:    "not json",
			raw:     `not json at all`,
			wantErr: true,
		},
		{
			name:    "missing type",
			raw:     `{"messageId":"m1"}`,
			wantErr: true,
		},
		{
			name:    "empty",
			raw:     ``,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame, err := ParseFrame([]byte(tt.raw))
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseFrame() expected error, got frame %+v", frame)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseFrame() unexpected error: %v", err)
			}
			if frame.Type != tt.wantType {
				t.Errorf("frame.Type = %q, want %q", frame.Type, tt.wantType)
			}
		})
	}
}

func TestParseFrameTypingPayload(t *testing.T) {
	frame, err := ParseFrame([]byte(`{"type":"typing","conversationId":"c1","isTyping":true}`))
	if err != nil {
		t.Fatalf("ParseFrame() error: %v", err)
	}
	if !frame.IsTyping {
		t.Error("IsTyping = false, want true")
	}
	if frame.ConversationID != "c1" {
		t.Errorf("ConversationID = %q, want %q", frame.ConversationID, "c1")
	}
}

func TestNewSendMessageFrame(t *testing.T) {
	msg := &Message{ID: "m1", Content: "hello", Direction: DirectionOutbound}
	frame := NewSendMessageFrame("c1", msg)
	if frame.Type != FrameSendMessage {
		t.Errorf("Type = %q, want %q", frame.Type, FrameSendMessage)
	}
	if frame.ConversationID != "c1" {
		t.Errorf("ConversationID = %q, want %q", frame.ConversationID, "c1")
	}
	if frame.Message == nil || frame.Message.ID != "m1" {
		t.Errorf("Message not carried through: %+v", frame.Message)
	}
}
