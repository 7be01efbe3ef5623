// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs periodic housekeeping jobs.
package scheduler

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"bip-go/internal/store"
)

// Retention policies for the housekeeping jobs.
const (
	// ViewRetention is how long anonymized view fingerprints are kept.
	// They are only needed for the 24h dedup window; a month gives
	// generous slack for audits.
	ViewRetention = 30 * 24 * time.Hour

	// EventRetention is how long event log entries are kept.
	EventRetention = 180 * 24 * time.Hour

	// VersionsKept is how many versions are retained per article.
	VersionsKept = 20
)

// Scheduler runs periodic cleanup of view fingerprints, article version
// history and the event log.
type Scheduler struct {
	db     *sql.DB
	cron   *cron.Cron
	logger *slog.Logger
}

// New creates a new scheduler instance.
func New(db *sql.DB, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		db:     db,
		cron:   cron.New(),
		logger: logger,
	}
}

// Start registers the jobs and begins the cron loop. View fingerprints
// are purged hourly; version pruning and event retention run nightly.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("0 * * * *", func() {
		if err := s.purgeViewFingerprints(context.Background()); err != nil {
			s.logger.Error("purging view fingerprints", "error", err)
		}
	}); err != nil {
		return err
	}

	if _, err := s.cron.AddFunc("30 3 * * *", func() {
		if err := s.pruneArticleVersions(context.Background()); err != nil {
			s.logger.Error("pruning article versions", "error", err)
		}
	}); err != nil {
		return err
	}

	if _, err := s.cron.AddFunc("45 3 * * *", func() {
		if err := s.purgeOldEvents(context.Background()); err != nil {
			s.logger.Error("purging old events", "error", err)
		}
	}); err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
	return nil
}

// Stop gracefully stops the scheduler, waiting for running jobs.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// purgeViewFingerprints deletes view dedup rows past their retention.
// The aggregated view_count on articles is unaffected.
func (s *Scheduler) purgeViewFingerprints(ctx context.Context) error {
	queries := store.New(s.db)

	deleted, err := queries.DeleteArticleViewsBefore(ctx, time.Now().Add(-ViewRetention))
	if err != nil {
		return err
	}
	if deleted > 0 {
		s.logger.Info("purged view fingerprints", "deleted", deleted)
	}
	return nil
}

// pruneArticleVersions keeps only the newest VersionsKept versions of
// each article.
func (s *Scheduler) pruneArticleVersions(ctx context.Context) error {
	queries := store.New(s.db)

	ids, err := queries.ListArticleIDs(ctx)
	if err != nil {
		return err
	}

	var pruned int
	for _, id := range ids {
		latest, err := queries.GetLatestArticleVersionNumber(ctx, id)
		if err != nil {
			s.logger.Error("reading latest version number", "error", err, "article_id", id)
			continue
		}
		if latest <= VersionsKept {
			continue
		}
		if err := queries.DeleteArticleVersionsBefore(ctx, store.DeleteArticleVersionsBeforeParams{
			ArticleID:     id,
			VersionNumber: latest - VersionsKept + 1,
		}); err != nil {
			s.logger.Error("pruning versions", "error", err, "article_id", id)
			continue
		}
		pruned++
	}

	if pruned > 0 {
		s.logger.Info("pruned article versions", "articles", pruned)
	}
	return nil
}

// purgeOldEvents deletes event log entries past their retention.
func (s *Scheduler) purgeOldEvents(ctx context.Context) error {
	queries := store.New(s.db)

	deleted, err := queries.DeleteEventsBefore(ctx, time.Now().Add(-EventRetention))
	if err != nil {
		return err
	}
	if deleted > 0 {
		s.logger.Info("purged old events", "deleted", deleted)
	}
	return nil
}
