package controllers

import (
	"context"
	"io"
	"scorekeeper/internal/models"
	"scorekeeper/internal/providers"
)

// --- local mocks (scoped to controller tests) ---

type mockLogger struct {
	errors []string
}

func (m *mockLogger) Errorf(_ providers.TypeEnum, format string, _ ...interface{}) {
	m.errors = append(m.errors, format)
}
func (m *mockLogger) Warnf(_ providers.TypeEnum, _ string, _ ...interface{})  {}
func (m *mockLogger) Debugf(_ providers.TypeEnum, _ string, _ ...interface{}) {}
func (m *mockLogger) Infof(_ providers.TypeEnum, _ string, _ ...interface{})  {}
func (m *mockLogger) Fatalf(_ providers.TypeEnum, _ string, _ ...interface{}) {}
func (m *mockLogger) Close()                                                  {}

type mockCoordinator struct {
	createName   string
	createErr    error
	infos        []models.SnapshotInfo
	listErr      error
	snapshot     *models.Snapshot
	getErr       error
	restoreCount int
	restoreErr   error
	gotFilename  string
}

func (m *mockCoordinator) CreateBackup(_ context.Context) (string, error) {
	return m.createName, m.createErr
}

func (m *mockCoordinator) Restore(_ context.Context, filename string) (int, error) {
	m.gotFilename = filename
	return m.restoreCount, m.restoreErr
}

func (m *mockCoordinator) List() ([]models.SnapshotInfo, error) {
	return m.infos, m.listErr
}

func (m *mockCoordinator) Get(filename string) (*models.Snapshot, error) {
	m.gotFilename = filename
	return m.snapshot, m.getErr
}

type mockGuestService struct {
	link      string
	reused    bool
	genErr    error
	gotOrigin string
	gotClass  string
	view      *models.GuestView
	viewErr   error
	gotToken  string
}

func (m *mockGuestService) GenerateLink(_ context.Context, origin, classID string) (string, bool, error) {
	m.gotOrigin, m.gotClass = origin, classID
	return m.link, m.reused, m.genErr
}

func (m *mockGuestService) ResolveToken(_ context.Context, token string) (*models.GuestView, error) {
	m.gotToken = token
	return m.view, m.viewErr
}

type mockImportService struct {
	count   int
	err     error
	gotBody string
}

func (m *mockImportService) ImportClassTemplate(_ context.Context, r io.Reader) (int, error) {
	b, _ := io.ReadAll(r)
	m.gotBody = string(b)
	return m.count, m.err
}
