package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcusball/class-scheduler/internal/domain"
)

func TestBuildMessage(t *testing.T) {
	// templates are looked up relative to the repository root
	require.NoError(t, os.Chdir(filepath.Join("..", "..")))

	body, err := json.Marshal(domain.MailMessage{
		Type: domain.MailTypeSchedulesGenerated,
		To:   "registrar@example.com",
		Data: domain.SchedulesGeneratedMailData{
			FullName:    "Ada",
			CatalogName: "Fall",
			Count:       3,
			Tables:      "Period | Monday",
		},
	})
	require.NoError(t, err)

	m, err := buildMessage("noreply@example.com", body)
	require.NoError(t, err)
	assert.Equal(t, []string{"Class Scheduler - schedules generated"}, m.GetGenHeader("Subject"))
}

func TestBuildMessage_Rejects(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `{`},
		{"unknown type", `{"type": "reset_password", "to": "a@example.com", "data": {}}`},
		{"bad data", `{"type": "create_user", "to": "a@example.com", "data": []}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := buildMessage("noreply@example.com", []byte(tt.body))
			assert.Error(t, err)
		})
	}
}
