package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"facility-backend/db/models"

	"github.com/google/uuid"
)

type fakeUserStore struct {
	created   []models.User
	createErr error
	calls     int
}

func (f *fakeUserStore) BulkCreateUsers(users []models.User) ([]models.User, error) {
	f.calls++
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, users...)
	return users, nil
}

type fakeAssetStore struct {
	categories map[string]*models.AssetCategory
	assets     []models.Asset
	createErr  error
}

func newFakeAssetStore() *fakeAssetStore {
	return &fakeAssetStore{categories: make(map[string]*models.AssetCategory)}
}

func (f *fakeAssetStore) GetOrCreateCategory(name string, organizationID uuid.UUID, createdBy string) (*models.AssetCategory, error) {
	if c, ok := f.categories[name]; ok {
		return c, nil
	}
	c := &models.AssetCategory{ID: uuid.New(), Name: name, OrganizationID: organizationID, CreatedBy: createdBy}
	f.categories[name] = c
	return c, nil
}

func (f *fakeAssetStore) BulkCreateAssets(assets []models.Asset) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.assets = append(f.assets, assets...)
	return nil
}

type fakeErrStore struct {
	invalid []models.BulkImportError
	emails  []models.EmailLog
}

func (f *fakeErrStore) LogBulkImportErrors(rows []models.BulkImportError) error {
	f.invalid = append(f.invalid, rows...)
	return nil
}

func (f *fakeErrStore) LogEmailsSent(logs []models.EmailLog) error {
	f.emails = append(f.emails, logs...)
	return nil
}

func testBatch() BatchContext {
	return BatchContext{
		OrganizationID:   uuid.New(),
		OrganizationName: "Acme Facilities",
		RequestedBy:      "admin@acme.example",
		ActivateUsers:    true,
	}
}

func newTestPipeline(users *fakeUserStore, assets *fakeAssetStore, errStore *fakeErrStore, sender *fakeSender) *ImportPipeline {
	return NewImportPipeline(users, assets, errStore, NewEmailDispatcher(sender, 0, nil), NewProgressReporter(nil), nil)
}

func TestImportUsersEndToEnd(t *testing.T) {
	users := &fakeUserStore{}
	sender := &fakeSender{configured: true}
	errStore := &fakeErrStore{}
	p := newTestPipeline(users, newFakeAssetStore(), errStore, sender)

	batch := testBatch()
	result, err := p.ImportUsers(context.Background(), "name,email,role\n\"Jane Doe\",\"jane@x.com\",\"Standard User\"\n", batch)
	if err != nil {
		t.Fatalf("ImportUsers returned error: %v", err)
	}

	if result.InsertedCount != 1 || result.EmailsSent != 1 || result.EmailsFailed != 0 {
		t.Errorf("unexpected result: %+v", result)
	}

	created := users.created[0]
	if created.Email != "jane@x.com" {
		t.Errorf("email = %q, want jane@x.com", created.Email)
	}
	if created.RoleID != models.StandardUserRoleID {
		t.Errorf("role = %d, want %d", created.RoleID, models.StandardUserRoleID)
	}
	if created.OrganizationID != batch.OrganizationID {
		t.Error("organization scope not applied")
	}
	if created.Status != models.PendingActivationUserStatus {
		t.Errorf("status = %q, want pending_activation", created.Status)
	}
	if len(created.Password) != 64 {
		t.Errorf("stored password is not a hex SHA-256 digest: %q", created.Password)
	}
	if !strings.HasPrefix(created.Username, "jane") {
		t.Errorf("username %q not derived from email local part", created.Username)
	}

	// The plaintext temporary password reaches the email, never the store.
	body := sender.bodies[0]
	if strings.Contains(body, created.Password) {
		t.Error("credential email contains the stored hash")
	}
	if len(errStore.emails) != 1 {
		t.Errorf("sent email not logged, got %d log rows", len(errStore.emails))
	}
}

func TestImportUsersLowerCasesEmailAndDefaultsRole(t *testing.T) {
	users := &fakeUserStore{}
	p := newTestPipeline(users, newFakeAssetStore(), &fakeErrStore{}, &fakeSender{configured: true})

	_, err := p.ImportUsers(context.Background(), "name,email,role\nBob,BOB@Example.COM,chief vibes officer\n", testBatch())
	if err != nil {
		t.Fatalf("ImportUsers returned error: %v", err)
	}
	if users.created[0].Email != "bob@example.com" {
		t.Errorf("email not lower-cased: %q", users.created[0].Email)
	}
	if users.created[0].RoleID != models.StandardUserRoleID {
		t.Errorf("unmapped role resolved to %d, want standard user", users.created[0].RoleID)
	}
}

func TestImportUsersDropsInvalidRows(t *testing.T) {
	users := &fakeUserStore{}
	errStore := &fakeErrStore{}
	p := newTestPipeline(users, newFakeAssetStore(), errStore, &fakeSender{configured: true})

	text := "name,email,role\n" +
		",missing-name@x.com,user\n" +
		"No At Sign,nodomain,user\n" +
		"Valid,valid@x.com,user\n" +
		"Dup,valid@x.com,user\n"
	result, err := p.ImportUsers(context.Background(), text, testBatch())
	if err != nil {
		t.Fatalf("ImportUsers returned error: %v", err)
	}
	if result.InsertedCount != 1 {
		t.Errorf("InsertedCount = %d, want 1", result.InsertedCount)
	}
	if len(errStore.invalid) != 3 {
		t.Errorf("logged %d invalid rows, want 3", len(errStore.invalid))
	}
}

func TestImportUsersMalformedFile(t *testing.T) {
	users := &fakeUserStore{}
	p := newTestPipeline(users, newFakeAssetStore(), &fakeErrStore{}, &fakeSender{configured: true})

	_, err := p.ImportUsers(context.Background(), "name,email,role\n", testBatch())
	if !errors.Is(err, ErrMalformedInput) {
		t.Fatalf("error = %v, want ErrMalformedInput", err)
	}
	if users.calls != 0 {
		t.Error("store called despite malformed input")
	}
}

func TestImportUsersNoValidRows(t *testing.T) {
	users := &fakeUserStore{}
	sender := &fakeSender{configured: true}
	p := newTestPipeline(users, newFakeAssetStore(), &fakeErrStore{}, sender)

	_, err := p.ImportUsers(context.Background(), "name,email,role\n,broken,\n", testBatch())
	if err == nil || err.Error() != "No valid users data found." {
		t.Fatalf("error = %v, want no-valid-users message", err)
	}
	if users.calls != 0 {
		t.Error("store called with zero valid rows")
	}
	if len(sender.sent) != 0 {
		t.Error("emails sent with zero valid rows")
	}
}

func TestImportUsersStoreErrorSurfacedVerbatim(t *testing.T) {
	users := &fakeUserStore{createErr: fmt.Errorf(`duplicate key value violates unique constraint "users_email_key"`)}
	sender := &fakeSender{configured: true}
	p := newTestPipeline(users, newFakeAssetStore(), &fakeErrStore{}, sender)

	_, err := p.ImportUsers(context.Background(), "name,email,role\nJane,jane@x.com,user\n", testBatch())
	if err == nil || !strings.Contains(err.Error(), "users_email_key") {
		t.Fatalf("store error not surfaced verbatim: %v", err)
	}
	if len(sender.sent) != 0 {
		t.Error("emails dispatched despite persistence failure")
	}
}

func TestImportUsersUnconfiguredProviderStillPersists(t *testing.T) {
	users := &fakeUserStore{}
	p := newTestPipeline(users, newFakeAssetStore(), &fakeErrStore{}, &fakeSender{configured: false})

	result, err := p.ImportUsers(context.Background(), "name,email,role\nJane,jane@x.com,user\nBob,bob@x.com,user\n", testBatch())
	if err != nil {
		t.Fatalf("ImportUsers returned error: %v", err)
	}
	if result.InsertedCount != 2 || result.EmailsSent != 0 || result.EmailsFailed != 2 {
		t.Errorf("unexpected result: %+v", result)
	}
	if len(result.FailedTargets) != 2 {
		t.Errorf("FailedTargets = %v, want both recipients", result.FailedTargets)
	}
}

func TestImportAssetsEndToEnd(t *testing.T) {
	assets := newFakeAssetStore()
	p := newTestPipeline(&fakeUserStore{}, assets, &fakeErrStore{}, &fakeSender{})

	text := "name,category,location,status,acquisitionDate\n" +
		"Forklift,Vehicles,Warehouse B,operational,15/03/2024\n" +
		"Projector,Electronics,,,\n"
	batch := testBatch()
	result, err := p.ImportAssets(context.Background(), text, batch)
	if err != nil {
		t.Fatalf("ImportAssets returned error: %v", err)
	}
	if result.InsertedCount != 2 {
		t.Fatalf("InsertedCount = %d, want 2", result.InsertedCount)
	}

	forklift := assets.assets[0]
	if forklift.AcquisitionDate == nil || *forklift.AcquisitionDate != "2024-03-15" {
		t.Errorf("acquisition date not reformatted: %v", forklift.AcquisitionDate)
	}
	if forklift.Location != "Warehouse B" {
		t.Errorf("location = %q", forklift.Location)
	}

	projector := assets.assets[1]
	if projector.Location != models.DefaultAssetLocation {
		t.Errorf("blank location not defaulted: %q", projector.Location)
	}
	if projector.Status != models.OperationalAssetStatus {
		t.Errorf("blank status not defaulted: %q", projector.Status)
	}
	if projector.AcquisitionDate != nil {
		t.Errorf("blank date should stay nil, got %q", *projector.AcquisitionDate)
	}
	if len(assets.categories) != 2 {
		t.Errorf("categories lazily created = %d, want 2", len(assets.categories))
	}
	if forklift.OrganizationID != batch.OrganizationID {
		t.Error("organization scope not applied to assets")
	}
}

func TestImportAssetsNoValidRows(t *testing.T) {
	p := newTestPipeline(&fakeUserStore{}, newFakeAssetStore(), &fakeErrStore{}, &fakeSender{})

	_, err := p.ImportAssets(context.Background(), "name,category\n,\n", testBatch())
	if err == nil || err.Error() != "No valid assets data found." {
		t.Fatalf("error = %v, want no-valid-assets message", err)
	}
}
