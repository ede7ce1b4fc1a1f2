package main

import (
	"context"
	"log"
	"net/http"

	localblob "github.com/inspectly/qassist/internal/adapters/blob/local"
	supablob "github.com/inspectly/qassist/internal/adapters/blob/supabase"
	httpadapter "github.com/inspectly/qassist/internal/adapters/http"
	"github.com/inspectly/qassist/internal/adapters/llm"
	memstore "github.com/inspectly/qassist/internal/adapters/storage/memory"
	"github.com/inspectly/qassist/internal/app/chat"
	sessionapp "github.com/inspectly/qassist/internal/app/session"
	"github.com/inspectly/qassist/internal/config"
	"github.com/inspectly/qassist/internal/domain"
)

func main() {
	ctx := context.Background()
	cfg := config.Load()

	// Model: mock for dev, Gemini on GCP. If the Gemini client cannot be
	// built the server still starts and chat degrades to the apology path.
	var gateway domain.InferenceGateway
	if cfg.UseMockLLM {
		log.Println("[LLM] Using MOCK inference gateway")
		gateway = llm.NewMockGateway()
	} else {
		log.Println("[LLM] Using Gemini inference gateway")
		client, err := llm.NewGeminiClient(ctx, llm.GeminiConfig{
			ProjectID: cfg.GCPProjectID,
			Location:  cfg.GCPLocation,
			ModelName: cfg.ModelName,
		})
		if err != nil {
			log.Printf("[LLM] Gemini client init failed, chat will be degraded: %v", err)
			gateway = llm.NewUnavailableGateway()
		} else {
			gateway = client
		}
	}

	// Uploads: local disk or a Supabase Storage bucket.
	var blobs domain.BlobStore
	switch cfg.BlobBackend {
	case "supabase":
		log.Printf("[BLOB] Using Supabase storage (bucket=%s)", cfg.SupabaseBucket)
		store, err := supablob.New(supablob.Config{
			URL:    cfg.SupabaseURL,
			APIKey: cfg.SupabaseKey,
			Bucket: cfg.SupabaseBucket,
		})
		if err != nil {
			log.Fatalf("error initializing Supabase blob store: %v", err)
		}
		blobs = store
	default:
		log.Printf("[BLOB] Using local storage (dir=%s)", cfg.UploadDir)
		store, err := localblob.NewStore(cfg.UploadDir)
		if err != nil {
			log.Fatalf("error initializing local blob store: %v", err)
		}
		blobs = store
	}

	// Session state is in-memory only; a restart starts every session over.
	store := memstore.NewSessionStore()

	chatSvc := chat.NewService(gateway, store, blobs, cfg.InferenceTimeout)
	sessionSvc := sessionapp.NewService(store, blobs)

	handler := httpadapter.NewServer(chatSvc, sessionSvc)

	port := ":" + cfg.Port
	log.Println("QAssist API listening on port:", port)
	if err := http.ListenAndServe(port, handler); err != nil {
		log.Fatal(err)
	}
}
