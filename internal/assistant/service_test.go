package assistant

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/healthsense/healthsense-ai/internal/chat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLLM struct {
	reqs []LLMRequest
	text string
	err  error
}

func (s *stubLLM) Complete(_ context.Context, req LLMRequest) (LLMResponse, error) {
	s.reqs = append(s.reqs, req)
	return LLMResponse{Text: s.text}, s.err
}

func newTestService(llm LLMClient) *Service {
	s := NewService(llm, nil, nil, nil)
	s.now = func() time.Time { return time.Date(2026, 3, 4, 14, 30, 0, 0, time.UTC) }
	return s
}

func TestAsk_EmptyMessage(t *testing.T) {
	_, err := newTestService(nil).Ask(context.Background(), "   ", nil)
	assert.ErrorIs(t, err, ErrEmptyMessage)
}

func TestAsk_LocalDoctorAnswer(t *testing.T) {
	answer, err := newTestService(nil).Ask(context.Background(), "I need a doctor, ideally a cardiologist", nil)
	require.NoError(t, err)
	assert.Equal(t, "Doctor Information Agent", answer.AgentUsed)
	assert.Contains(t, answer.Response, "Here are available Cardiology specialists:")
	assert.Contains(t, answer.Response, "Dr. Sarah Johnson")
	assert.NotContains(t, answer.Response, "Dr. Michael Chen")
}

func TestAsk_LocalDoctorAnswerSkipsUnavailable(t *testing.T) {
	answer, err := newTestService(nil).Ask(context.Background(), "book an orthopedics appointment", nil)
	require.NoError(t, err)
	// the only orthopedist is not taking appointments
	assert.NotContains(t, answer.Response, "Dr. James Williams")
	assert.Contains(t, answer.Response, "Here are some doctors with open appointments:")
}

func TestAsk_LocalDiagnosticAnswer(t *testing.T) {
	answer, err := newTestService(nil).Ask(context.Background(), "Which lab test checks thyroid levels?", nil)
	require.NoError(t, err)
	assert.Equal(t, "Diagnostic Information Agent", answer.AgentUsed)
	assert.Contains(t, answer.Response, "Thyroid Profile (TSH, T3, T4)")
}

func TestAsk_LocalDiagnosticDefaultPanel(t *testing.T) {
	answer, err := newTestService(nil).Ask(context.Background(), "I want a lab checkup", nil)
	require.NoError(t, err)
	assert.Contains(t, answer.Response, "For a comprehensive health checkup, I recommend:")
	assert.Contains(t, answer.Response, "Complete Blood Count (CBC)")
	assert.Contains(t, answer.Response, "Lipid Profile")
}

func TestAsk_LocalHospitalAndEmergency(t *testing.T) {
	s := newTestService(nil)

	answer, err := s.Ask(context.Background(), "compare hospitals", nil)
	require.NoError(t, err)
	assert.Equal(t, "Hospital Comparison Agent", answer.AgentUsed)
	assert.Contains(t, answer.Response, "🏥 ")

	answer, err = s.Ask(context.Background(), "call an ambulance", nil)
	require.NoError(t, err)
	assert.Equal(t, "Emergency Services Agent", answer.AgentUsed)
	assert.Equal(t, emergencyGuidance, answer.Response)

	answer, err = s.Ask(context.Background(), "hi", nil)
	require.NoError(t, err)
	assert.Equal(t, generalGuidance, answer.Response)
}

func TestAsk_UsesModelWithHistory(t *testing.T) {
	llm := &stubLLM{text: "Dr. Sarah Johnson is available tomorrow."}
	s := newTestService(llm)

	history := []ChatMessage{
		{Role: RoleUser, Content: "hello"},
		{Role: RoleAssistant, Content: "Hi! How can I help?"},
	}
	answer, err := s.Ask(context.Background(), "find me a cardiologist doctor", history)
	require.NoError(t, err)
	assert.Equal(t, "Dr. Sarah Johnson is available tomorrow.", answer.Response)
	assert.Equal(t, time.Date(2026, 3, 4, 14, 30, 0, 0, time.UTC), answer.Timestamp)

	require.Len(t, llm.reqs, 1)
	req := llm.reqs[0]
	require.Len(t, req.Messages, 3)
	assert.Equal(t, ChatMessage{Role: RoleUser, Content: "find me a cardiologist doctor"}, req.Messages[2])
	require.Len(t, req.System, 3)
	assert.Contains(t, req.System[2], "Dr. Sarah Johnson")
}

func TestAsk_DoesNotDuplicateTrailingUserTurn(t *testing.T) {
	llm := &stubLLM{text: "ok"}
	s := newTestService(llm)

	history := []ChatMessage{{Role: RoleUser, Content: "hello"}}
	_, err := s.Ask(context.Background(), "hello", history)
	require.NoError(t, err)
	require.Len(t, llm.reqs, 1)
	assert.Len(t, llm.reqs[0].Messages, 1)
}

func TestAsk_ModelFailureFallsBackToCatalog(t *testing.T) {
	llm := &stubLLM{err: errors.New("quota exceeded")}
	answer, err := newTestService(llm).Ask(context.Background(), "call 911", nil)
	require.NoError(t, err)
	assert.Equal(t, emergencyGuidance, answer.Response)
}

func TestReply_ImplementsChatReplier(t *testing.T) {
	var r chat.Replier = newTestService(nil)
	out, err := r.Reply(context.Background(), "hello", []chat.Message{{Role: chat.RoleUser, Content: "hello"}})
	require.NoError(t, err)
	assert.Equal(t, generalGuidance, out)
}

func TestMentionedSpecialty(t *testing.T) {
	assert.Equal(t, "Cardiology", mentionedSpecialty("see a cardiologist"))
	assert.Equal(t, "Pediatrics", mentionedSpecialty("pediatrician for my son"))
	assert.Equal(t, "Internal Medicine", mentionedSpecialty("internal medicine please"))
	assert.Empty(t, mentionedSpecialty("general question"))
}
