package answerquestion

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"strings"
	"testing"
	"time"

	"internship-assistant/internal/assistant"
	"internship-assistant/internal/common/config"
	"internship-assistant/internal/common/errors"
	"internship-assistant/internal/common/logger"
	"internship-assistant/internal/store"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// ==========================
// Mock Service Implementation
// ==========================

type MockService struct {
	mock.Mock
}

func (m *MockService) Answer(ctx context.Context, question, languageHint string) (*assistant.Answer, error) {
	args := m.Called(ctx, question, languageHint)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*assistant.Answer), args.Error(1)
}

// ==========================
// Mock Job Helper
// ==========================

func createMockJob(key int64, variables map[string]interface{}) entities.Job {
	variablesJSON, _ := json.Marshal(variables)
	return createRawJob(key, string(variablesJSON))
}

func createRawJob(key int64, variables string) entities.Job {
	activatedJob := &pb.ActivatedJob{
		Key:                      key,
		Type:                     TaskType,
		ProcessInstanceKey:       key * 10,
		BpmnProcessId:            "test-process",
		ProcessDefinitionVersion: 1,
		ProcessDefinitionKey:     1,
		ElementId:                "Activity_AnswerQuestion",
		ElementInstanceKey:       1,
		CustomHeaders:            "{}",
		Worker:                   "test-worker",
		Retries:                  3,
		Deadline:                 0,
		Variables:                variables,
	}
	return entities.Job{ActivatedJob: activatedJob}
}

func createTestHandler(t *testing.T, svc Answerer) *Handler {
	h, err := NewHandler(HandlerOptions{
		CustomConfig: DefaultConfig(),
		Service:      svc,
		Logger:       logger.NewTestLogger(t),
	})
	require.NoError(t, err)
	return h
}

// ==========================
// Input Parsing Tests
// ==========================

func TestHandler_ParseInput(t *testing.T) {
	handler := createTestHandler(t, &MockService{})

	tests := []struct {
		name      string
		variables map[string]interface{}
		wantErr   bool
		errCode   errors.ErrorCode
		want      *Input
	}{
		{
			name:      "question only",
			variables: map[string]interface{}{"question": "Donne moi l'offre id 42"},
			want:      &Input{Question: "Donne moi l'offre id 42"},
		},
		{
			name:      "question and language",
			variables: map[string]interface{}{"question": "How many offers?", "language": "en-US,en;q=0.9"},
			want:      &Input{Question: "How many offers?", Language: "en-US,en;q=0.9"},
		},
		{
			name:      "extra variables ignored",
			variables: map[string]interface{}{"question": "bonjour", "sessionId": "abc"},
			want:      &Input{Question: "bonjour"},
		},
		{
			name:      "missing question",
			variables: map[string]interface{}{"language": "fr"},
			wantErr:   true,
			errCode:   errors.ErrCodeInvalidQuestion,
		},
		{
			name:      "empty question",
			variables: map[string]interface{}{"question": ""},
			wantErr:   true,
			errCode:   errors.ErrCodeInvalidQuestion,
		},
		{
			name:      "blank question",
			variables: map[string]interface{}{"question": "   \n\t"},
			wantErr:   true,
			errCode:   errors.ErrCodeInvalidQuestion,
		},
		{
			name:      "question too long",
			variables: map[string]interface{}{"question": strings.Repeat("é", MaxQuestionLength+1)},
			wantErr:   true,
			errCode:   errors.ErrCodeInvalidQuestion,
		},
		{
			name:      "question not a string",
			variables: map[string]interface{}{"question": 42},
			wantErr:   true,
			errCode:   errors.ErrCodeInvalidQuestion,
		},
		{
			name:      "language too long",
			variables: map[string]interface{}{"question": "bonjour", "language": strings.Repeat("x", MaxLanguageLength+1)},
			wantErr:   true,
			errCode:   errors.ErrCodeInvalidQuestion,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input, err := handler.parseInput(createMockJob(12345, tt.variables))

			if tt.wantErr {
				require.Error(t, err)
				stdErr, ok := err.(*errors.StandardError)
				require.True(t, ok, "error should be StandardError")
				assert.Equal(t, tt.errCode, stdErr.Code)
				assert.False(t, stdErr.Retryable)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, input)
		})
	}
}

func TestHandler_ParseInput_MalformedVariables(t *testing.T) {
	handler := createTestHandler(t, &MockService{})

	_, err := handler.parseInput(createRawJob(1, "{not json"))

	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInputParsing, errors.CodeOf(err))
}

// ==========================
// Execute Tests
// ==========================

func TestHandler_Execute_Success(t *testing.T) {
	svc := &MockService{}
	svc.On("Answer", mock.Anything, "Give me a list of every offer", "en").Return(&assistant.Answer{
		Text:          "- Offer A\n- Offer B",
		QueryType:     assistant.QueryList,
		Language:      assistant.English,
		ContextBlocks: 2,
		Generated:     true,
		RequestID:     "req-1",
	}, nil)

	handler := createTestHandler(t, svc)
	output, err := handler.Execute(context.Background(), &Input{Question: "Give me a list of every offer", Language: "en"})

	require.NoError(t, err)
	assert.Equal(t, &Output{
		Answer:        "- Offer A\n- Offer B",
		QueryType:     "LIST",
		Language:      "en",
		RequestID:     "req-1",
		ContextBlocks: 2,
	}, output)
	svc.AssertExpectations(t)
}

func TestHandler_Execute_Error(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		code      errors.ErrorCode
		retryable bool
	}{
		{"generation failed", errors.NewGenerationFailedError(stderrors.New("503")), errors.ErrCodeGenerationFailed, true},
		{"generation timeout", errors.NewGenerationTimeoutError(context.DeadlineExceeded), errors.ErrCodeGenerationTimeout, true},
		{"store failure", errors.NewStoreQueryFailedError("offer", stderrors.New("conn reset")), errors.ErrCodeStoreQueryFailed, true},
		{"unexpected", stderrors.New("boom"), errors.ErrCodeInternal, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockService{}
			svc.On("Answer", mock.Anything, "offre 3", "").Return(nil, tt.err)

			handler := createTestHandler(t, svc)
			output, err := handler.Execute(context.Background(), &Input{Question: "offre 3"})

			assert.Nil(t, output)
			require.Error(t, err)
			bpmnErr := errors.ConvertToBPMNError(errors.AsStandardError(err))
			assert.Equal(t, string(tt.code), bpmnErr.Code)
			assert.Equal(t, tt.retryable, bpmnErr.Retries > 0)
		})
	}
}

func TestHandler_Execute_WithAssistant(t *testing.T) {
	svc := assistant.NewService(store.Stores{}, nil, assistant.Options{AnswerTimeout: time.Second}, nil, logger.NewTestLogger(t))
	handler := createTestHandler(t, svc)

	input, err := handler.parseInput(createMockJob(7, map[string]interface{}{"question": "bonjour"}))
	require.NoError(t, err)

	output, err := handler.Execute(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, "GREETING", output.QueryType)
	assert.Equal(t, "fr", output.Language)
	assert.Equal(t, assistant.GreetingText(assistant.French), output.Answer)
	assert.NotEmpty(t, output.RequestID)
	assert.Zero(t, output.ContextBlocks)
}

// ==========================
// Configuration Tests
// ==========================

func TestNewHandler_Validation(t *testing.T) {
	_, err := NewHandler(HandlerOptions{CustomConfig: DefaultConfig()})
	assert.Error(t, err)

	bad := DefaultConfig()
	bad.Timeout = 0
	_, err = NewHandler(HandlerOptions{CustomConfig: bad, Service: &MockService{}})
	assert.Error(t, err)

	bad = DefaultConfig()
	bad.MaxJobsActive = 0
	_, err = NewHandler(HandlerOptions{CustomConfig: bad, Service: &MockService{}})
	assert.Error(t, err)
}

func TestCreateConfigFromAppConfig(t *testing.T) {
	assert.Equal(t, DefaultConfig(), createConfigFromAppConfig(nil, nil))

	appCfg := &config.Config{Workers: map[string]config.WorkerConfig{
		WorkerName: {Enabled: true, MaxJobsActive: 12, Timeout: 45000},
	}}
	cfg := createConfigFromAppConfig(appCfg, nil)
	assert.True(t, cfg.Enabled)
	assert.Equal(t, 12, cfg.MaxJobsActive)
	assert.Equal(t, 45*time.Second, cfg.Timeout)

	disabled := &config.Config{Workers: map[string]config.WorkerConfig{WorkerName: {Enabled: false}}}
	assert.False(t, createConfigFromAppConfig(disabled, nil).Enabled)

	custom := &Config{Enabled: true, MaxJobsActive: 1, Timeout: time.Second}
	assert.Same(t, custom, createConfigFromAppConfig(appCfg, custom))
}
