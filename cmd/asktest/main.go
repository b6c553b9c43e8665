package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/healthsense/healthsense-ai/internal/assistant"
	"github.com/healthsense/healthsense-ai/pkg/logging"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	question := "Which cardiologists have open appointments this week?"
	if len(os.Args) > 1 {
		question = strings.Join(os.Args[1:], " ")
	}
	history := []assistant.ChatMessage{
		{Role: assistant.RoleUser, Content: "Hi, I've been having chest pain when I climb stairs."},
		{Role: assistant.RoleAssistant, Content: "I'm sorry to hear that. Chest pain on exertion should be checked by a cardiologist. Would you like help finding one?"},
	}

	rule := strings.Repeat("=", 60)
	fmt.Println(rule)
	fmt.Println("HealthSense assistant check")
	fmt.Println(rule)
	fmt.Printf("Question: %s\n", question)
	fmt.Printf("Routed to: %s\n", assistant.Classify(question).DisplayName())

	logger := logging.New("warn")

	fmt.Println("\n[1] Catalog answer (no model)...")
	local := assistant.NewService(nil, nil, nil, logger)
	printAnswer(ctx, local, question, history)

	geminiKey := os.Getenv("GEMINI_API_KEY")
	if geminiKey == "" {
		fmt.Println("\n[2] Skipping Gemini check (GEMINI_API_KEY not set)")
		return
	}

	fmt.Println("\n[2] Gemini answer...")
	modelID := os.Getenv("GEMINI_MODEL_ID")
	client, err := assistant.NewGeminiClient(ctx, geminiKey, modelID)
	if err != nil {
		fmt.Printf("    failed to create Gemini client: %v\n", err)
		os.Exit(1)
	}
	defer client.Close()
	printAnswer(ctx, assistant.NewService(client, nil, nil, logger), question, history)
}

func printAnswer(ctx context.Context, svc *assistant.Service, question string, history []assistant.ChatMessage) {
	start := time.Now()
	answer, err := svc.Ask(ctx, question, history)
	if err != nil {
		fmt.Printf("    error: %v\n", err)
		return
	}
	fmt.Printf("    %s (%v):\n", answer.AgentUsed, time.Since(start).Round(time.Millisecond))
	for _, line := range strings.Split(answer.Response, "\n") {
		fmt.Printf("    %s\n", line)
	}
}
