package validator

import (
	"ctchen222/Tic-Tac-Toe-Solo/pkg/proto"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStruct_ClientMessages(t *testing.T) {
	tests := []struct {
		name    string
		msg     proto.ClientToServerMessage
		wantErr string
	}{
		{
			name: "Move with position",
			msg:  proto.ClientToServerMessage{Type: proto.TypeMove, Position: []int{1, 2}},
		},
		{
			name: "Reset without position",
			msg:  proto.ClientToServerMessage{Type: proto.TypeReset},
		},
		{
			name:    "Missing type",
			msg:     proto.ClientToServerMessage{},
			wantErr: "type failed required",
		},
		{
			name:    "Unknown type",
			msg:     proto.ClientToServerMessage{Type: "rematch"},
			wantErr: "type failed oneof=move reset",
		},
		{
			name:    "Move without position",
			msg:     proto.ClientToServerMessage{Type: proto.TypeMove},
			wantErr: "position failed required_if=Type move",
		},
		{
			name:    "Move with a short position",
			msg:     proto.ClientToServerMessage{Type: proto.TypeMove, Position: []int{1}},
			wantErr: "position failed len=2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(tt.msg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}
