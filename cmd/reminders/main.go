// Package main runs the overdue invoice check once, for use from cron.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/billing-panel/backend/config"
	"github.com/billing-panel/backend/internal/infra/cache"
	"github.com/billing-panel/backend/internal/infra/db"
	"github.com/billing-panel/backend/internal/infra/dependency"
	"github.com/billing-panel/backend/internal/integration/entrypoint/dto"
)

type actionResult struct {
	dto.ReminderActionResponse
	Done    bool   `json:"done"`
	Skipped bool   `json:"skipped,omitempty"`
	Error   string `json:"error,omitempty"`
}

type executeResult struct {
	Actions   []actionResult `json:"actions"`
	Succeeded int            `json:"succeeded"`
	Failed    int            `json:"failed"`
	Skipped   int            `json:"skipped"`
	EmailSent int            `json:"emails_sent"`
	EmailLeft int            `json:"emails_retrying"`
}

func main() {
	execute := flag.Bool("execute", false, "carry out reminders, suspensions and shutdowns")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, nil)))

	if err := run(*execute); err != nil {
		slog.Error("Reminder run failed", "error", err)
		os.Exit(1)
	}
}

func run(execute bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	database, err := db.NewPostgresConnection(ctx, &cfg.Database)
	if err != nil {
		return err
	}
	defer database.Close()

	redisClient, err := cache.NewRedisClient(ctx, &cfg.Redis)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	injector, err := dependency.NewInjector(cfg, database.DB(), redisClient, dependency.Overrides{})
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")

	if !execute {
		classification, err := injector.CheckPending.Execute(ctx)
		if err != nil {
			return err
		}
		return encoder.Encode(dto.ToPendingInvoicesResponse(classification))
	}

	output, err := injector.ExecuteActions.Execute(ctx)
	if err != nil {
		return err
	}
	batch := injector.EmailWorker.Drain(ctx)

	result := executeResult{
		Actions:   make([]actionResult, len(output.Outcomes)),
		Succeeded: output.Succeeded,
		Failed:    output.Failed,
		Skipped:   output.Skipped,
		EmailSent: batch.Sent,
		EmailLeft: batch.Retrying,
	}
	for i, o := range output.Outcomes {
		result.Actions[i] = actionResult{
			ReminderActionResponse: dto.ToReminderActionResponse(o.Action),
			Done:                   o.Done,
			Skipped:                o.Skipped,
			Error:                  o.Error,
		}
	}
	slog.Info("Reminder run finished", "succeeded", output.Succeeded, "failed", output.Failed, "emails_sent", batch.Sent)
	return encoder.Encode(result)
}
