package main

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"flowsmith/internal/config"
	"flowsmith/internal/logging"
	"flowsmith/internal/repository"
	"flowsmith/pkg/models"
)

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Seed the database with sample workflows",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd.Context())
		},
	}
}

func runSeed(ctx context.Context) error {
	logger := logging.NewLogger()

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	pool, err := initDatabase(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to connect to DB: %w", err)
	}
	defer pool.Close()

	if err := repository.Initialize(ctx, pool); err != nil {
		return fmt.Errorf("schema initialization failed: %w", err)
	}

	store := repository.NewPostgresStore(pool)

	// Check for existing workflows to prevent duplicates.
	existing, err := store.ListWorkflows(ctx)
	if err != nil {
		return fmt.Errorf("failed to list existing workflows: %w", err)
	}
	existingByTitle := make(map[string]bool)
	for _, wf := range existing {
		existingByTitle[wf.Title] = true
	}

	seeds := []struct {
		Title       string
		Description string
		Status      models.WorkflowStatus
		Actions     []models.ActionType
	}{
		{"Phishing Triage", "Receives reported emails and enriches indicators.", models.WorkflowStatusOnline,
			[]models.ActionType{models.ActionTypeWebhook, models.ActionTypeDataTransform, models.ActionTypeSendEmail}},
		{"Alert Enrichment", "Looks up alert context against threat intel feeds.", models.WorkflowStatusOnline,
			[]models.ActionType{models.ActionTypeWebhook, models.ActionTypeHTTPRequest, models.ActionTypeCondition}},
		{"Ticket Summarizer", "Summarizes long incident tickets with an LLM.", models.WorkflowStatusOffline,
			[]models.ActionType{models.ActionTypeWebhook, models.ActionTypeLLM}},
	}

	for _, seed := range seeds {
		if existingByTitle[seed.Title] {
			logger.Info("Skipping existing workflow %q", seed.Title)
			continue
		}

		wf := &models.Workflow{
			ID:          uuid.New().String(),
			Title:       seed.Title,
			Description: seed.Description,
			Status:      seed.Status,
		}
		if err := store.CreateWorkflow(ctx, wf); err != nil {
			logger.Error("Failed to create workflow %s: %v", seed.Title, err)
			continue
		}

		for i, typ := range seed.Actions {
			id := uuid.New().String()
			action := &models.Action{
				ID:          id,
				WorkflowID:  wf.ID,
				Type:        typ,
				Title:       fmt.Sprintf("%s step %d", seed.Title, i+1),
				Description: "",
				Status:      models.ActionStatusOffline,
				Key:         models.ActionKey(typ, id),
			}
			if err := store.CreateAction(ctx, action); err != nil {
				logger.Error("Failed to create action for %s: %v", seed.Title, err)
			}
		}
		logger.Info("Seeded workflow %q (%s)", seed.Title, wf.ID)
	}

	logger.Info("Seeding complete!")
	return nil
}
