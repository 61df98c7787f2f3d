// internal/workers/ai-conversation/answer-question/models.go
package answerquestion

const (
	MaxQuestionLength = 2000
	MaxLanguageLength = 35
)

type Input struct {
	Question string `json:"question"`
	Language string `json:"language,omitempty"`
}

type Output struct {
	Answer        string `json:"answer"`
	QueryType     string `json:"queryType"`
	Language      string `json:"language"`
	RequestID     string `json:"requestId"`
	ContextBlocks int    `json:"contextBlocks"`
}

const inputSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["question"],
  "properties": {
    "question": {
      "type": "string",
      "minLength": 1,
      "maxLength": 2000,
      "pattern": "\\S"
    },
    "language": {
      "type": "string",
      "maxLength": 35
    }
  }
}`
