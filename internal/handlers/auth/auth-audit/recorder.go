package authaudit

import (
	"context"
	"sync"
	"time"

	"sales-briefing/internal/common/database"
	"sales-briefing/internal/common/logger"
	"sales-briefing/internal/common/metrics"
	"sales-briefing/internal/models"
)

const insertAuthEventQuery = `
	INSERT INTO auth_logs (id, user_id, event_type, email, success, error_message, ip_address, user_agent, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

// Recorder writes auth events to auth_logs off the request path. Failures are
// logged and counted but never reach the caller.
type Recorder struct {
	db      *database.PostgresClient
	logger  logger.Logger
	timeout time.Duration
	wg      sync.WaitGroup
}

func NewRecorder(db *database.PostgresClient, log logger.Logger, timeout time.Duration) *Recorder {
	return &Recorder{
		db:      db,
		logger:  log.WithFields(map[string]interface{}{"component": "audit-recorder"}),
		timeout: timeout,
	}
}

// Record returns immediately. The insert runs on its own context so a
// finished request does not cancel it.
func (r *Recorder) Record(event models.AuthEvent) {
	fields := map[string]interface{}{
		"eventId":   event.ID,
		"eventType": event.EventType,
		"email":     event.Email,
		"success":   event.Success,
		"ipAddress": event.IPAddress,
	}

	if r.db == nil {
		r.logger.Info("Auth event (no audit database configured)", fields)
		metrics.AuditEventsRecorded.WithLabelValues(string(event.EventType), "logged").Inc()
		return
	}

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		defer cancel()

		_, err := r.db.Exec(ctx, insertAuthEventQuery,
			event.ID,
			event.UserID,
			string(event.EventType),
			event.Email,
			event.Success,
			event.ErrorMessage,
			event.IPAddress,
			event.UserAgent,
			event.CreatedAt,
		)
		if err != nil {
			fields["error"] = err.Error()
			r.logger.Error("Failed to record auth event", fields)
			metrics.AuditEventsRecorded.WithLabelValues(string(event.EventType), "failed").Inc()
			return
		}
		r.logger.Debug("Auth event recorded", fields)
		metrics.AuditEventsRecorded.WithLabelValues(string(event.EventType), "stored").Inc()
	}()
}

// Drain waits for in-flight inserts or until ctx is done.
func (r *Recorder) Drain(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
