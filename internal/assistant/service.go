package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/healthsense/healthsense-ai/internal/chat"
	"github.com/healthsense/healthsense-ai/internal/doctors"
	"github.com/healthsense/healthsense-ai/internal/labtests"
	"github.com/healthsense/healthsense-ai/pkg/logging"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var assistantTracer = otel.Tracer("healthsense.internal.assistant")

// ErrEmptyMessage is returned for blank queries.
var ErrEmptyMessage = errors.New("assistant: message cannot be empty")

const basePrompt = "You are HealthSense AI, a helpful healthcare assistant for patients in New York. " +
	"Answer concisely and in plain language. Never diagnose; recommend seeing a professional when appropriate. " +
	"For life-threatening situations always tell the user to call 911."

var agentPrompts = map[Agent]string{
	AgentEmergency:  "The user may be in an emergency. Lead with calling 911, then point to nearby emergency rooms and urgent care.",
	AgentDoctor:     "Help the user find a doctor and book an appointment. Only recommend doctors from the catalog below.",
	AgentDiagnostic: "Help the user choose lab tests. Only recommend tests from the catalog below and mention prices and fasting requirements.",
	AgentHospital:   "Help the user compare hospitals using the doctors and hospitals listed below.",
	AgentGeneral:    "Explain what you can help with: hospitals, doctors and appointments, lab tests, emergency services, and general health questions.",
}

// Answer is the assistant's reply to one query.
type Answer struct {
	Response  string
	AgentUsed string
	Timestamp time.Time
}

// Service routes queries to an agent and answers them with the configured
// model, falling back to catalog answers.
type Service struct {
	llm    LLMClient
	local  localAnswerer
	logger *logging.Logger
	now    func() time.Time
}

// NewService wires the assistant. llm may be nil, in which case every answer
// comes from the catalogs.
func NewService(llm LLMClient, providers doctors.Catalog, tests labtests.Catalog, logger *logging.Logger) *Service {
	if providers == nil {
		providers = doctors.NewStaticCatalog(doctors.DefaultProviders())
	}
	if tests == nil {
		tests = labtests.NewStaticCatalog(labtests.DefaultTests())
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		llm:    llm,
		local:  localAnswerer{doctors: providers, tests: tests},
		logger: logger,
		now:    time.Now,
	}
}

// Ask answers message given the prior turns in history.
func (s *Service) Ask(ctx context.Context, message string, history []ChatMessage) (Answer, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return Answer{}, ErrEmptyMessage
	}

	agent := Classify(message)
	ctx, span := assistantTracer.Start(ctx, "assistant.ask")
	defer span.End()
	span.SetAttributes(
		attribute.String("healthsense.assistant.agent", string(agent)),
		attribute.Bool("healthsense.assistant.llm", s.llm != nil),
	)

	if s.llm != nil {
		text, err := s.complete(ctx, agent, message, history)
		if err == nil && text != "" {
			return Answer{Response: text, AgentUsed: agent.DisplayName(), Timestamp: s.now()}, nil
		}
		if err != nil {
			span.RecordError(err)
			s.logger.Warn("assistant: model unavailable, answering from catalog", "agent", agent, "error", err)
		}
	}

	text, err := s.local.answer(ctx, agent, message)
	if err != nil {
		span.RecordError(err)
		return Answer{}, err
	}
	return Answer{Response: text, AgentUsed: agent.DisplayName(), Timestamp: s.now()}, nil
}

func (s *Service) complete(ctx context.Context, agent Agent, message string, history []ChatMessage) (string, error) {
	system := []string{basePrompt, agentPrompts[agent]}
	if agent == AgentDoctor || agent == AgentDiagnostic || agent == AgentHospital {
		catalog, err := s.local.answer(ctx, agent, message)
		if err != nil {
			return "", err
		}
		system = append(system, "Catalog:\n"+catalog)
	}

	msgs := make([]ChatMessage, 0, len(history)+1)
	for _, m := range history {
		if strings.TrimSpace(m.Content) == "" {
			continue
		}
		msgs = append(msgs, m)
	}
	if n := len(msgs); n == 0 || msgs[n-1].Role != RoleUser || strings.TrimSpace(msgs[n-1].Content) != message {
		msgs = append(msgs, ChatMessage{Role: RoleUser, Content: message})
	}

	resp, err := s.llm.Complete(ctx, LLMRequest{
		System:      system,
		Messages:    msgs,
		MaxTokens:   800,
		Temperature: 0.3,
	})
	if err != nil {
		return "", fmt.Errorf("assistant: complete: %w", err)
	}
	return resp.Text, nil
}

// Reply lets the chat controller use the assistant in-process.
func (s *Service) Reply(ctx context.Context, message string, history []chat.Message) (string, error) {
	prior := make([]ChatMessage, 0, len(history))
	for _, m := range history {
		prior = append(prior, ChatMessage{Role: string(m.Role), Content: m.Content})
	}
	answer, err := s.Ask(ctx, message, prior)
	if err != nil {
		return "", err
	}
	return answer.Response, nil
}

var _ chat.Replier = (*Service)(nil)
