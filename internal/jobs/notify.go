// Copyright (c) 2026 JournalHub. All rights reserved.
// Author: dev@journalhub.pub

package jobs

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/peerreview/journalhub/internal/notify"
)

// FlagNotificationsPaused suppresses notification dispatch while enabled.
// Off (including unknown) means notifications flow normally.
const FlagNotificationsPaused = "notifications.pause"

// FlagChecker reports whether a named feature flag is switched on.
type FlagChecker interface {
	Enabled(ctx context.Context, name string) bool
}

// NotifyEnqueuer turns notification requests from the domain services into
// queued dispatch jobs, so delivery happens off the request path.
type NotifyEnqueuer struct {
	jobs   *Service
	flags  FlagChecker
	logger *slog.Logger
}

func NewNotifyEnqueuer(jobs *Service, flags FlagChecker, logger *slog.Logger) *NotifyEnqueuer {
	return &NotifyEnqueuer{jobs: jobs, flags: flags, logger: logger}
}

func (enqueuer *NotifyEnqueuer) Notify(context context.Context, recipientID, key string, notifyContext *notify.Context) error {
	if enqueuer.flags.Enabled(context, FlagNotificationsPaused) {
		enqueuer.logger.Debug("notification_suppressed",
			slog.String("key", key),
			slog.String("recipient", recipientID),
		)
		return nil
	}

	payload, err := json.Marshal(notify.Dispatch{
		Key:       key,
		Recipient: recipientID,
		Context:   notifyContext,
	})
	if err != nil {
		return err
	}

	_, err = enqueuer.jobs.EnqueueJob(context, JobNotificationDispatch, payload)
	return err
}
