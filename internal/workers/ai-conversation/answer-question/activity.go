package answerquestion

import (
	"encoding/json"

	"internship-assistant/internal/common/errors"
	"internship-assistant/pkg/registry"
)

const ActivityID = "answer-question"

const outputSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["answer", "queryType", "language", "requestId"],
  "properties": {
    "answer": {"type": "string"},
    "queryType": {"type": "string", "enum": ["COUNT", "LIST", "DETAIL", "GREETING", "FALLBACK"]},
    "language": {"type": "string", "enum": ["fr", "en"]},
    "requestId": {"type": "string"},
    "contextBlocks": {"type": "integer", "minimum": 0}
  }
}`

var errorCodes = []errors.ErrorCode{
	errors.ErrCodeInvalidQuestion,
	errors.ErrCodeInputParsing,
	errors.ErrCodeStoreQueryFailed,
	errors.ErrCodeStoreTimeout,
	errors.ErrCodeGenerationFailed,
	errors.ErrCodeGenerationTimeout,
}

// Activity is the registry entry for this worker.
func Activity() registry.Activity {
	codes := make([]string, 0, len(errorCodes))
	retries := 0
	for _, c := range errorCodes {
		codes = append(codes, errors.BPMNErrorMapping[c])
		if r := errors.GetRetryCount(c); r > retries {
			retries = r
		}
	}

	return registry.Activity{
		ID:                   ActivityID,
		DisplayName:          "Answer Question",
		Description:          "Answers a French or English question about internship records using stored context and text generation",
		Category:             "ai-conversation",
		Version:              "1.0.0",
		TaskType:             TaskType,
		ImplementationStatus: registry.StatusCompleted,
		InputSchema:          mustDecode(inputSchema),
		OutputSchema:         mustDecode(outputSchema),
		ErrorCodes:           codes,
		Timeout:              DefaultConfig().Timeout.String(),
		Retries:              retries,
		Tags:                 []string{"assistant", "genai", "read-only"},
	}
}

func mustDecode(schema string) map[string]interface{} {
	var out map[string]interface{}
	if err := json.Unmarshal([]byte(schema), &out); err != nil {
		panic(err)
	}
	return out
}
