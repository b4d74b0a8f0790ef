package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/johnquangdev/minutemind/internal/adapter/repository"
	"github.com/johnquangdev/minutemind/internal/infrastructure/cache"
	"github.com/johnquangdev/minutemind/internal/infrastructure/database"
	"github.com/johnquangdev/minutemind/internal/usecase/conflict"
	"github.com/johnquangdev/minutemind/internal/usecase/meeting"
	"github.com/johnquangdev/minutemind/internal/usecase/submission"
	"github.com/johnquangdev/minutemind/internal/usecase/task"
	"github.com/johnquangdev/minutemind/pkg/config"
	pkgjwt "github.com/johnquangdev/minutemind/pkg/jwt"
)

const demoAnalysis = `## Summary
Weekly sync on the Q3 launch.

## Task Assignment
| Task | Owner | Deadline |
|------|-------|----------|
| Finalize pricing page | Alice | Friday |
| Load test the checkout API | Bob | Next Wednesday |
| Draft launch announcement | Charlie | Not Mentioned |

## Conflict Detection
{"Name of speaker1": "Alice", "Name of speaker2": "Bob", "conflict type (Orig_type)": "Negative", "conflict description": "Disagreement on whether to delay launch for load testing"}
{"Name of speaker1": "Charlie", "Name of speaker2": "Diana", "conflict type (Orig_type)": "Neutral", "conflict description": "Different preferences for the announcement channel"}
`

func main() {
	log.Println("🚀 Seeding demo meeting...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	meetingRepo := repository.NewMeetingRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	conflictRepo := repository.NewConflictRepository(db)

	taskService := task.NewTaskService(taskRepo, meetingRepo, nil)
	conflictService := conflict.NewConflictService(conflictRepo, meetingRepo, nil)
	submitter := submission.NewSubmitter(taskService, conflictService, submission.Options{
		Concurrency: cfg.Submission.Concurrency,
		MaxAttempts: cfg.Submission.MaxAttempts,
	}, nil)
	guard := cache.NewMemoryStore(time.Hour)
	defer guard.Close()
	meetingService := meeting.NewMeetingService(meetingRepo, taskRepo, conflictRepo, submitter, guard, nil, nil)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	m, err := meetingService.Create(ctx, meeting.CreateInput{
		Title:      "Q3 launch sync",
		Host:       "Alice",
		Presentees: "Alice, Bob, Charlie, Diana",
		Agenda:     "Pricing, load testing, announcement",
	})
	if err != nil {
		log.Fatalf("❌ Failed to create meeting: %v", err)
	}

	result, err := meetingService.IngestAnalysis(ctx, m.ID, demoAnalysis)
	if err != nil {
		log.Fatalf("❌ Failed to ingest analysis: %v", err)
	}

	fmt.Printf("═══════════════════════════════════════════════════════════════\n")
	fmt.Printf("🟢 Meeting:    %s\n", m.Title)
	fmt.Printf("Meeting ID:    %s\n", m.ID)
	fmt.Printf("Tasks:         %d created (%s)\n", result.Submission.Tasks.Succeeded(), result.TaskSource)
	fmt.Printf("Conflicts:     %d created (%s)\n", result.Submission.Conflicts.Succeeded(), result.ConflictSource)
	fmt.Printf("───────────────────────────────────────────────────────────────\n")

	if cfg.Auth.Enabled {
		jwtManager := pkgjwt.NewManager(cfg.JWT.AccessSecret, cfg.JWT.AccessExpiry)
		token, expiresAt, err := jwtManager.GenerateAccessToken(cfg.Auth.Username, pkgjwt.RoleOperator)
		if err != nil {
			log.Fatalf("❌ Failed to generate access token: %v", err)
		}
		fmt.Printf("\n📋 Operator Access Token (expires %s):\n", expiresAt.Format(time.RFC3339))
		fmt.Printf("%s\n", token)
		log.Println("\n💡 Usage: set header Authorization: Bearer <access_token>")
	}

	log.Println("✅ Demo data seeded")
}
