// Command seed wipes the database and loads a demo account with a spread of
// tasks across statuses, priorities and due dates.
package main

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskflow/task-manager/internal/core/domain"
	"github.com/taskflow/task-manager/internal/core/service"
	"github.com/taskflow/task-manager/internal/infrastructure/config"
	mongodb "github.com/taskflow/task-manager/internal/infrastructure/db/mongo"
	"github.com/taskflow/task-manager/pkg/logger"
)

const (
	demoEmail    = "sarah.johnson@email.com"
	demoPassword = "password123"
	demoName     = "Sarah Johnson"
)

func main() {
	cfg := config.Load(zerolog.New(os.Stderr).With().Timestamp().Logger())
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true, Service: "seed"})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		Timeout:  cfg.Mongo.Timeout,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connect mongodb")
	}
	defer client.Disconnect(context.Background())

	users := mongodb.NewAuthRepository(db)
	tasks := mongodb.NewTaskRepository(db)

	if err := users.DeleteAll(ctx); err != nil {
		log.Fatal().Err(err).Msg("clear users")
	}
	if err := tasks.DeleteAll(ctx); err != nil {
		log.Fatal().Err(err).Msg("clear tasks")
	}
	log.Info().Msg("cleared existing data")

	if err := mongodb.EnsureIndexes(ctx, users, tasks); err != nil {
		log.Fatal().Err(err).Msg("create indexes")
	}

	auth := service.NewAuthService(users, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, log)
	_, user, err := auth.Register(ctx, demoEmail, demoPassword, demoName)
	if err != nil {
		log.Fatal().Err(err).Msg("create demo user")
	}
	log.Info().Str("email", user.Email).Msg("user created")

	seeded := demoTasks(user.ID, time.Now().UTC())
	if err := tasks.InsertMany(ctx, seeded); err != nil {
		log.Fatal().Err(err).Msg("insert tasks")
	}
	log.Info().Int("count", len(seeded)).Msg("tasks created")
	log.Info().Str("email", demoEmail).Str("password", demoPassword).Msg("seeding complete, log in with the demo account")
}

type seedTask struct {
	draft domain.TaskDraft
	// createdAgo and doneAfter backdate the timestamps so the insights
	// report has history to work with.
	createdAgo time.Duration
	doneAfter  time.Duration
	dueIn      *time.Duration
}

func days(n int) *time.Duration {
	d := time.Duration(n) * 24 * time.Hour
	return &d
}

func hours(n float64) *float64 { return &n }

var seedData = []seedTask{
	{
		draft: domain.TaskDraft{
			Title:       "Q3 Financial Review",
			Description: "Analyze Q3 financial performance and prepare board presentation with key metrics and recommendations",
			Status:      domain.StatusInProgress,
			Extras: domain.ExtrasDraft{
				Priority: domain.PriorityHigh, Tags: []string{"finance", "quarterly", "board", "presentation"},
				EstimatedHours: hours(12), ActualHours: hours(8),
				Notes: "Waiting for final numbers from accounting team",
			},
		},
		createdAgo: 10 * 24 * time.Hour, dueIn: days(3),
	},
	{
		draft: domain.TaskDraft{
			Title:       "Database Migration Test",
			Description: "Test database migration scripts and validate data integrity",
			Status:      domain.StatusInProgress,
			Extras: domain.ExtrasDraft{
				Priority: domain.PriorityHigh, Tags: []string{"database", "migration", "testing", "data-integrity"},
				EstimatedHours: hours(12), ActualHours: hours(8),
				Notes: "Testing environment setup complete, running validation scripts",
			},
		},
		createdAgo: 8 * 24 * time.Hour, dueIn: days(1),
	},
	{
		draft: domain.TaskDraft{
			Title:       "Mobile App Optimization",
			Description: "Optimize mobile application performance and reduce loading times by 30%",
			Extras: domain.ExtrasDraft{
				Priority: domain.PriorityMedium, Tags: []string{"mobile", "performance", "optimization", "app"},
				EstimatedHours: hours(16),
				Notes:          "Performance baseline established, need to implement lazy loading",
			},
		},
		createdAgo: 6 * 24 * time.Hour, dueIn: days(5),
	},
	{
		draft: domain.TaskDraft{
			Title:       "Website Accessibility",
			Description: "Update company website to meet WCAG 2.1 AA compliance standards",
			Extras: domain.ExtrasDraft{
				Priority: domain.PriorityMedium, Tags: []string{"website", "accessibility", "wcag", "compliance"},
				EstimatedHours: hours(15),
				Notes:          "Audit completed, need to implement alt text and keyboard navigation fixes",
			},
		},
		createdAgo: 20 * 24 * time.Hour, dueIn: days(-2),
	},
	{
		draft: domain.TaskDraft{
			Title:       "API Rate Limiting",
			Description: "Implement rate limiting and throttling for public API endpoints",
			Extras: domain.ExtrasDraft{
				Priority: domain.PriorityMedium, Tags: []string{"api", "rate-limiting", "security", "backend"},
				EstimatedHours: hours(8),
				Notes:          "Need to define rate limits per user tier",
			},
		},
		createdAgo: 4 * 24 * time.Hour, dueIn: days(12),
	},
	{
		draft: domain.TaskDraft{
			Title:       "Performance Monitoring",
			Description: "Set up comprehensive application performance monitoring and alerting",
			Status:      domain.StatusInProgress,
			Extras: domain.ExtrasDraft{
				Priority: domain.PriorityMedium, Tags: []string{"monitoring", "performance", "alerting", "devops"},
				EstimatedHours: hours(14), ActualHours: hours(7),
			},
		},
		createdAgo: 15 * 24 * time.Hour, dueIn: days(6),
	},
	{
		draft: domain.TaskDraft{
			Title:       "Security Compliance Audit",
			Description: "Prepare for annual SOC 2 Type II audit and ensure all security controls are documented",
			Status:      domain.StatusInProgress,
			Extras: domain.ExtrasDraft{
				Priority: domain.PriorityHigh, Tags: []string{"security", "compliance", "audit", "soc2"},
				EstimatedHours: hours(25), ActualHours: hours(15),
			},
		},
		createdAgo: 25 * 24 * time.Hour, dueIn: days(30),
	},
	{
		draft: domain.TaskDraft{
			Title:       "Team Onboarding Guide",
			Description: "Write the onboarding guide for new engineering hires",
			Status:      domain.StatusDone,
			Extras: domain.ExtrasDraft{
				Priority: domain.PriorityLow, Tags: []string{"docs", "team"},
				EstimatedHours: hours(6), ActualHours: hours(5),
			},
		},
		createdAgo: 12 * 24 * time.Hour, doneAfter: 30 * time.Hour,
	},
	{
		draft: domain.TaskDraft{
			Title:       "CI Pipeline Cleanup",
			Description: "Remove stale jobs and cache dependencies in the CI pipeline",
			Status:      domain.StatusDone,
			Extras: domain.ExtrasDraft{
				Priority: domain.PriorityMedium, Tags: []string{"ci", "devops"},
				EstimatedHours: hours(4), ActualHours: hours(3),
			},
		},
		createdAgo: 5 * 24 * time.Hour, doneAfter: 18 * time.Hour,
	},
	{
		draft: domain.TaskDraft{
			Title:       "Customer Feedback Survey",
			Description: "Draft and send the quarterly customer satisfaction survey",
			Status:      domain.StatusDone,
			Extras: domain.ExtrasDraft{
				Priority: domain.PriorityLow, Tags: []string{"customers", "survey"},
				EstimatedHours: hours(3), ActualHours: hours(4),
			},
		},
		createdAgo: 40 * 24 * time.Hour, doneAfter: 48 * time.Hour,
	},
	{
		draft: domain.TaskDraft{
			Title:       "Archive Old Projects",
			Description: "Move finished project folders to cold storage",
			Extras: domain.ExtrasDraft{
				Priority: domain.PriorityLow, Tags: []string{"housekeeping"},
			},
		},
		createdAgo: 2 * 24 * time.Hour,
	},
}

// demoTasks materialises the seed table relative to now.
func demoTasks(ownerID string, now time.Time) []*domain.Task {
	out := make([]*domain.Task, 0, len(seedData))
	for _, s := range seedData {
		created := now.Add(-s.createdAgo)
		d := s.draft
		if s.dueIn != nil {
			due := now.Add(*s.dueIn).Truncate(time.Hour)
			d.Extras.DueDate = &due
		}
		t := domain.NewTask(ownerID, d, created)
		if s.doneAfter > 0 {
			t.UpdatedAt = created.Add(s.doneAfter)
		}
		out = append(out, t)
	}
	return out
}
