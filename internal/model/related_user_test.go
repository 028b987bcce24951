package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRelatedUserUnmarshal(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		want     string
		resolved bool
	}{
		{"single object", `{"full_name":"Alice Perera"}`, "Alice Perera", true},
		{"one element array", `[{"full_name":"Bob Silva"}]`, "Bob Silva", true},
		{"array keeps first element", `[{"full_name":"Alice"},{"full_name":"Bob"}]`, "Alice", true},
		{"empty array", `[]`, "", false},
		{"null relation", `null`, "", false},
		{"object without name", `{}`, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r RelatedUser
			err := json.Unmarshal([]byte(tt.payload), &r)
			assert.NoError(t, err)

			name, ok := r.Resolved()
			assert.Equal(t, tt.want, name)
			assert.Equal(t, tt.resolved, ok)
		})
	}
}

func TestRelatedUserInsideRow(t *testing.T) {
	type legacyLeave struct {
		LeaveDate string      `json:"leave_date"`
		LeaveTime string      `json:"leave_time"`
		Users     RelatedUser `json:"users"`
	}

	payload := `{"leave_date":"2025-03-03","leave_time":"Full Day","users":[{"full_name":"Alice"}]}`
	var row legacyLeave
	assert.NoError(t, json.Unmarshal([]byte(payload), &row))
	assert.Equal(t, "Alice", row.Users.FullName)
}
