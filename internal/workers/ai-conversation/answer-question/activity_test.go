package answerquestion

import (
	"testing"

	"internship-assistant/internal/common/validation"
	"internship-assistant/pkg/registry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivity(t *testing.T) {
	a := Activity()

	assert.Equal(t, ActivityID, a.ID)
	assert.Equal(t, TaskType, a.TaskType)
	assert.Equal(t, "30s", a.Timeout)
	assert.Equal(t, 3, a.Retries)
	assert.Contains(t, a.ErrorCodes, "INVALID_QUESTION")
	assert.Contains(t, a.ErrorCodes, "GENERATION_TIMEOUT")
	assert.Equal(t, []interface{}{"question"}, a.InputSchema["required"])

	reg := &registry.ActivityRegistry{Version: registry.CurrentVersion}
	reg.Upsert(a)
	require.NoError(t, reg.Validate())
}

func TestOutputSchema_AcceptsHandlerOutput(t *testing.T) {
	out := validation.MustCompile(outputSchema).Validate(map[string]interface{}{
		"answer":        "Bonjour !",
		"queryType":     "GREETING",
		"language":      "fr",
		"requestId":     "3f1c",
		"contextBlocks": 0,
	})
	assert.True(t, out.Valid, out.GetErrorMessages())

	bad := validation.MustCompile(outputSchema).Validate(map[string]interface{}{
		"answer":    "x",
		"queryType": "SUMMARY",
		"language":  "de",
		"requestId": "1",
	})
	assert.False(t, bad.Valid)
}
