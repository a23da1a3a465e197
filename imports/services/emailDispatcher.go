package services

import (
	"context"
	"fmt"
	"time"

	"facility-backend/db/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// DefaultSendInterval spaces sequential sends to stay inside the SMTP
// provider's rate limit.
const DefaultSendInterval = 3 * time.Second

const notConfiguredReason = "email provider not configured"

// Sender is the transactional email collaborator. *utils.Mailer satisfies it;
// tests substitute fakes.
type Sender interface {
	IsConfigured() bool
	Send(to, subject, message, attachmentPath string) error
}

// NewUserCredential carries a freshly created account together with its
// plaintext temporary password. The plaintext lives only between credential
// generation and the one email send; it is never persisted or logged.
type NewUserCredential struct {
	FullName     string
	Email        string
	Username     string
	TempPassword string
}

// SendResult is the outcome of one credential email attempt.
type SendResult struct {
	Target  string
	Success bool
	Error   string
}

// ProgressFunc is invoked exactly once after every send attempt with the
// running totals.
type ProgressFunc func(sent, total int, currentTarget string, success bool)

// EmailDispatcher sends credential emails one at a time, in input order, with
// a fixed delay between sends. Individual failures never abort the batch.
type EmailDispatcher struct {
	sender  Sender
	limiter *rate.Limiter
	logger  *zap.Logger
}

// NewEmailDispatcher builds a dispatcher spacing sends by the given interval.
// An interval of zero disables the spacing (used by tests).
func NewEmailDispatcher(sender Sender, interval time.Duration, logger *zap.Logger) *EmailDispatcher {
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EmailDispatcher{
		sender:  sender,
		limiter: rate.NewLimiter(limit, 1),
		logger:  logger,
	}
}

// SendOne attempts a single credential email. Failures are captured as the
// result value; nothing is thrown past this boundary.
func (d *EmailDispatcher) SendOne(target NewUserCredential, orgName string) SendResult {
	if !d.sender.IsConfigured() {
		return SendResult{Target: target.Email, Success: false, Error: notConfiguredReason}
	}

	subject := fmt.Sprintf("Your %s account", orgName)
	message := fmt.Sprintf(
		"Hello %s,\n\nAn account has been created for you at %s.\n\nUsername: %s\nTemporary password: %s\n\nPlease sign in and change your password.",
		target.FullName, orgName, target.Username, target.TempPassword,
	)

	if err := d.sender.Send(target.Email, subject, message, ""); err != nil {
		d.logger.Warn("Credential email failed",
			zap.String("recipient", target.Email),
			zap.Error(err),
		)
		return SendResult{Target: target.Email, Success: false, Error: err.Error()}
	}
	return SendResult{Target: target.Email, Success: true}
}

// SendBatch dispatches credential emails sequentially in input order. Every
// target is attempted regardless of earlier failures, and onProgress fires
// after each attempt with a monotonically increasing sent count. When the
// provider is unconfigured, every target is reported failed with a fixed
// reason and no network call is made.
func (d *EmailDispatcher) SendBatch(ctx context.Context, targets []NewUserCredential, orgName string, onProgress ProgressFunc) []SendResult {
	results := make([]SendResult, 0, len(targets))
	total := len(targets)

	for i, target := range targets {
		if d.sender.IsConfigured() {
			// First acquisition passes immediately; later ones wait the
			// configured interval.
			if err := d.limiter.Wait(ctx); err != nil {
				d.logger.Warn("Send pacing interrupted", zap.Error(err))
			}
		}

		result := d.SendOne(target, orgName)
		results = append(results, result)

		if onProgress != nil {
			onProgress(i+1, total, target.Email, result.Success)
		}
	}

	return results
}

// LogResults converts send results to email log rows for the audit table.
// Message bodies are not logged; they contain the temporary password.
func LogResults(results []SendResult, subject string) []models.EmailLog {
	logs := make([]models.EmailLog, 0, len(results))
	for _, r := range results {
		if !r.Success {
			continue
		}
		active := true
		logs = append(logs, models.EmailLog{
			ID:        uuid.New(),
			Recipient: r.Target,
			Subject:   subject,
			SentAt:    time.Now(),
			Active:    &active,
		})
	}
	return logs
}
