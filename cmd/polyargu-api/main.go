package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/polyarguminds/polyargu/internal/adapters/extract"
	httpadapter "github.com/polyarguminds/polyargu/internal/adapters/http"
	"github.com/polyarguminds/polyargu/internal/adapters/llm"
	firestorestore "github.com/polyarguminds/polyargu/internal/adapters/storage/firestore"
	memstore "github.com/polyarguminds/polyargu/internal/adapters/storage/memory"
	"github.com/polyarguminds/polyargu/internal/app/discussion"
	"github.com/polyarguminds/polyargu/internal/config"
	"github.com/polyarguminds/polyargu/internal/domain"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using process environment")
	}
	cfg := config.Load()

	keys := llm.RoleKeys{
		Pro:     cfg.APIKeyPro,
		Con:     cfg.APIKeyCon,
		Judge:   cfg.APIKeyJudge,
		Default: cfg.APIKeyDefault,
	}

	var (
		oracle domain.LLMClient
		err    error
	)
	switch cfg.Oracle {
	case "mock":
		log.Println("[LLM] Using mock oracle")
		oracle = llm.NewMockLLM()
	case "gemini":
		log.Printf("[LLM] Using Gemini oracle (model=%s)", cfg.ModelName)
		oracle, err = llm.NewGeminiClient(ctx, llm.GeminiConfig{
			Model:   cfg.ModelName,
			Keys:    keys,
			Timeout: cfg.OracleTimeout,
		})
		if err != nil {
			log.Fatalf("error initializing Gemini client: %v", err)
		}
	default:
		log.Printf("[LLM] Using OpenRouter oracle (model=%s)", cfg.ModelName)
		oracle = llm.NewOpenRouterClient(llm.OpenRouterConfig{
			Model:   cfg.ModelName,
			Keys:    keys,
			Timeout: cfg.OracleTimeout,
			Referer: cfg.HTTPReferer,
			Title:   "PolyArguMinds",
		})
	}

	var (
		sessionStore domain.SessionStore
		agentStore   domain.AgentStore
		messageStore domain.MessageStore
	)
	switch cfg.StorageBackend {
	case "firestore":
		log.Printf("[STORE] Using Firestore storage (project=%s)", cfg.GCPProjectID)
		fsStore, err := firestorestore.NewStore(ctx, cfg.GCPProjectID)
		if err != nil {
			log.Fatalf("error initializing Firestore store: %v", err)
		}

		// 1 store, implements 3 interfaces
		sessionStore = fsStore
		agentStore = fsStore
		messageStore = fsStore
	default:
		log.Println("[STORE] Using in-memory storage")
		sessionStore = memstore.NewSessionStore()
		agentStore = memstore.NewAgentStore()
		messageStore = memstore.NewMessageStore()
	}

	svc := discussion.NewService(oracle, sessionStore, agentStore, messageStore)
	router := httpadapter.NewRouter(svc, extract.New())

	log.Println("PolyArgu API listening on port:", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
