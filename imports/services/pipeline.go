package services

import (
	"context"
	"fmt"
	"strings"

	asset_services "facility-backend/assets/services"
	"facility-backend/db/models"
	user_services "facility-backend/users/services"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrNoValidUsers and ErrNoValidAssets terminate an import whose file parsed
// but yielded zero usable rows.
var (
	ErrNoValidUsers  = fmt.Errorf("No valid users data found.")
	ErrNoValidAssets = fmt.Errorf("No valid assets data found.")
)

// BatchContext scopes one import invocation. Every persisted record carries
// the same organization ID; per-row overrides are never accepted.
type BatchContext struct {
	OrganizationID   uuid.UUID
	OrganizationName string
	RequestedBy      string
	ActivateUsers    bool
}

// ImportResult is the terminal state of one pipeline invocation.
type ImportResult struct {
	InsertedCount int                      `json:"inserted_count"`
	EmailsSent    int                      `json:"emails_sent"`
	EmailsFailed  int                      `json:"emails_failed"`
	FailedTargets []string                 `json:"failed_targets,omitempty"`
	InvalidRows   []models.BulkImportError `json:"-"`
}

// UserBatchStore persists a transformed user batch atomically.
type UserBatchStore interface {
	BulkCreateUsers(users []models.User) ([]models.User, error)
}

// AssetBatchStore persists a transformed asset batch atomically and resolves
// categories, creating them on first reference.
type AssetBatchStore interface {
	GetOrCreateCategory(name string, organizationID uuid.UUID, createdBy string) (*models.AssetCategory, error)
	BulkCreateAssets(assets []models.Asset) error
}

// ImportErrorStore records dropped rows and sent emails for auditing. Both
// operations are best-effort: failures are logged, never fatal to the batch.
type ImportErrorStore interface {
	LogBulkImportErrors(rows []models.BulkImportError) error
	LogEmailsSent(logs []models.EmailLog) error
}

// ImportPipeline drives parse -> validate -> transform -> persist -> notify
// for one uploaded CSV batch. Persistence is authoritative; notification is
// best-effort.
type ImportPipeline struct {
	users      UserBatchStore
	assets     AssetBatchStore
	errStore   ImportErrorStore
	dispatcher *EmailDispatcher
	progress   *ProgressReporter
	logger     *zap.Logger
}

func NewImportPipeline(
	users UserBatchStore,
	assets AssetBatchStore,
	errStore ImportErrorStore,
	dispatcher *EmailDispatcher,
	progress *ProgressReporter,
	logger *zap.Logger,
) *ImportPipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ImportPipeline{
		users:      users,
		assets:     assets,
		errStore:   errStore,
		dispatcher: dispatcher,
		progress:   progress,
		logger:     logger,
	}
}

// pendingUser pairs the persistable record with the transient plaintext
// password. The plaintext is handed to the dispatcher once and then dropped
// with this batch-scoped value; it never reaches the store or the logs.
type pendingUser struct {
	user      models.User
	plaintext string
}

// ImportUsers runs the full pipeline for a user CSV batch. The store error,
// if any, is surfaced verbatim. Email dispatch runs only after persistence
// succeeds and never fails the import.
func (p *ImportPipeline) ImportUsers(ctx context.Context, fileText string, batch BatchContext) (*ImportResult, error) {
	rows, err := ParseCSV(fileText)
	if err != nil {
		return nil, err
	}

	pendings := make([]pendingUser, 0, len(rows))
	invalid := make([]models.BulkImportError, 0)
	seenEmails := make(map[string]struct{})

	status := models.InactiveUserStatus
	if batch.ActivateUsers {
		status = models.PendingActivationUserStatus
	}

	for i, row := range rows {
		name := row.Get("name")
		email := strings.ToLower(row.Get("email"))

		if reason := user_services.ValidateImportedUserRow(name, email); reason != "" {
			invalid = append(invalid, p.invalidRow("users", i+2, row, reason, models.MissingDataErrorType, batch))
			continue
		}
		if _, dup := seenEmails[email]; dup {
			invalid = append(invalid, p.invalidRow("users", i+2, row, "duplicate email in the uploaded file", models.DuplicateErrorType, batch))
			continue
		}
		seenEmails[email] = struct{}{}

		password := user_services.GeneratePassword(user_services.DefaultPasswordLength)
		pendings = append(pendings, pendingUser{
			user: models.User{
				FullName:       name,
				Email:          email,
				Username:       user_services.GenerateUsername(email),
				Password:       user_services.HashTempPassword(password),
				RoleID:         user_services.ResolveRole(row.Get("role")),
				JobPosition:    optional(row.Get("job_position")),
				Status:         status,
				OrganizationID: batch.OrganizationID,
				CreatedBy:      batch.RequestedBy,
			},
			plaintext: password,
		})
	}

	p.recordInvalidRows(invalid)

	if len(pendings) == 0 {
		return nil, ErrNoValidUsers
	}

	users := make([]models.User, len(pendings))
	for i, pend := range pendings {
		users[i] = pend.user
	}

	created, err := p.users.BulkCreateUsers(users)
	if err != nil {
		// Surface the store's message verbatim; the batch was not applied.
		return nil, err
	}

	result := &ImportResult{InsertedCount: len(created), InvalidRows: invalid}

	targets := make([]NewUserCredential, len(pendings))
	for i, pend := range pendings {
		targets[i] = NewUserCredential{
			FullName:     pend.user.FullName,
			Email:        pend.user.Email,
			Username:     pend.user.Username,
			TempPassword: pend.plaintext,
		}
	}

	if p.progress != nil {
		p.progress.Reset(len(targets))
	}
	sendResults := p.dispatcher.SendBatch(ctx, targets, batch.OrganizationName, func(sent, total int, currentTarget string, success bool) {
		if p.progress != nil {
			p.progress.Advance(currentTarget, success)
		}
	})

	for _, r := range sendResults {
		if r.Success {
			result.EmailsSent++
		} else {
			result.EmailsFailed++
			result.FailedTargets = append(result.FailedTargets, r.Target)
		}
	}

	if p.errStore != nil {
		subject := fmt.Sprintf("Your %s account", batch.OrganizationName)
		if err := p.errStore.LogEmailsSent(LogResults(sendResults, subject)); err != nil {
			p.logger.Warn("Failed to log sent emails", zap.Error(err))
		}
	}

	return result, nil
}

// ImportAssets runs the pipeline for an asset CSV batch. Asset imports stop
// at persistence; no emails are dispatched.
func (p *ImportPipeline) ImportAssets(ctx context.Context, fileText string, batch BatchContext) (*ImportResult, error) {
	rows, err := ParseCSV(fileText)
	if err != nil {
		return nil, err
	}

	assets := make([]models.Asset, 0, len(rows))
	invalid := make([]models.BulkImportError, 0)

	for i, row := range rows {
		name := row.Get("name")
		categoryName := row.Get("category")
		if name == "" || categoryName == "" {
			invalid = append(invalid, p.invalidRow("assets", i+2, row, "name and category are required", models.MissingDataErrorType, batch))
			continue
		}

		category, err := p.assets.GetOrCreateCategory(categoryName, batch.OrganizationID, batch.RequestedBy)
		if err != nil {
			return nil, err
		}

		location := row.Get("location")
		if location == "" {
			location = models.DefaultAssetLocation
		}

		status := models.AssetStatus(strings.ToLower(row.Get("status")))
		if status != models.UnderMaintenanceAssetStatus && status != models.RetiredAssetStatus {
			status = models.OperationalAssetStatus
		}

		assets = append(assets, models.Asset{
			Name:            name,
			CategoryID:      category.ID,
			Location:        location,
			Status:          status,
			AcquisitionDate: asset_services.ReformatAcquisitionDate(row.Get("acquisitionDate")),
			OrganizationID:  batch.OrganizationID,
			CreatedBy:       batch.RequestedBy,
		})
	}

	p.recordInvalidRows(invalid)

	if len(assets) == 0 {
		return nil, ErrNoValidAssets
	}

	if err := p.assets.BulkCreateAssets(assets); err != nil {
		return nil, err
	}

	return &ImportResult{InsertedCount: len(assets), InvalidRows: invalid}, nil
}

func (p *ImportPipeline) invalidRow(entity string, rowNumber int, row ImportRow, reason string, errType models.BulkImportErrorType, batch BatchContext) models.BulkImportError {
	parts := make([]string, 0, len(row))
	for k, v := range row {
		parts = append(parts, fmt.Sprintf("%s=%s", k, v))
	}
	return models.BulkImportError{
		ID:             uuid.New(),
		Entity:         entity,
		RowNumber:      rowNumber,
		RawRow:         strings.Join(parts, "; "),
		Reason:         reason,
		ErrorType:      errType,
		AddedVia:       models.BulkAddedViaType,
		OrganizationID: batch.OrganizationID,
		CreatedBy:      batch.RequestedBy,
	}
}

func (p *ImportPipeline) recordInvalidRows(rows []models.BulkImportError) {
	if p.errStore == nil || len(rows) == 0 {
		return
	}
	if err := p.errStore.LogBulkImportErrors(rows); err != nil {
		p.logger.Warn("Failed to log invalid import rows", zap.Error(err), zap.Int("rows", len(rows)))
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
