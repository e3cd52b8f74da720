package sync

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uniteam-app/uniteam-backend-go/internal/domain/appconfig"
	"github.com/uniteam-app/uniteam-backend-go/internal/domain/attendance"
	"github.com/uniteam-app/uniteam-backend-go/internal/domain/branch"
	"github.com/uniteam-app/uniteam-backend-go/internal/domain/job"
	"github.com/uniteam-app/uniteam-backend-go/internal/domain/report"
	syncdomain "github.com/uniteam-app/uniteam-backend-go/internal/domain/sync"
	"github.com/uniteam-app/uniteam-backend-go/internal/domain/user"
	"github.com/uniteam-app/uniteam-backend-go/internal/pkg/sheet"
)

const testEndpoint = "https://script.example.com/exec"

type fakeBranchRepo struct {
	branches []branch.Branch
}

func (f *fakeBranchRepo) Create(ctx context.Context, b branch.Branch) (branch.Branch, error) {
	f.branches = append(f.branches, b)
	return b, nil
}

func (f *fakeBranchRepo) GetByID(ctx context.Context, id string) (branch.Branch, error) {
	for _, b := range f.branches {
		if b.ID == id {
			return b, nil
		}
	}
	return branch.Branch{}, branch.ErrBranchNotFound
}

func (f *fakeBranchRepo) List(ctx context.Context) ([]branch.Branch, error) {
	return f.branches, nil
}

func (f *fakeBranchRepo) Update(ctx context.Context, req branch.UpdateBranchRequest) error {
	return nil
}

func (f *fakeBranchRepo) Delete(ctx context.Context, id string) error { return nil }

func (f *fakeBranchRepo) ReplaceAll(ctx context.Context, branches []branch.Branch) error {
	f.branches = branches
	return nil
}

type fakeJobRepo struct {
	jobs []job.Job
}

func (f *fakeJobRepo) Create(ctx context.Context, j job.Job) (job.Job, error) {
	f.jobs = append(f.jobs, j)
	return j, nil
}

func (f *fakeJobRepo) GetByID(ctx context.Context, id string) (job.Job, error) {
	for _, j := range f.jobs {
		if j.ID == id {
			return j, nil
		}
	}
	return job.Job{}, job.ErrJobNotFound
}

func (f *fakeJobRepo) List(ctx context.Context) ([]job.Job, error) { return f.jobs, nil }

func (f *fakeJobRepo) Update(ctx context.Context, req job.UpdateJobRequest) error { return nil }

func (f *fakeJobRepo) Delete(ctx context.Context, id string) error { return nil }

func (f *fakeJobRepo) ReplaceAll(ctx context.Context, jobs []job.Job) error {
	f.jobs = jobs
	return nil
}

type fakeUserRepo struct {
	users []user.User
}

func (f *fakeUserRepo) Create(ctx context.Context, u user.User) (user.User, error) {
	f.users = append(f.users, u)
	return u, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetByNationalID(ctx context.Context, nationalID string) (user.User, error) {
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetByDeviceID(ctx context.Context, deviceID string) (user.User, error) {
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) List(ctx context.Context) ([]user.User, error) { return f.users, nil }

func (f *fakeUserRepo) Update(ctx context.Context, req user.UpdateUserRequest) error { return nil }

func (f *fakeUserRepo) Delete(ctx context.Context, id string) error { return nil }

func (f *fakeUserRepo) BindDevice(ctx context.Context, id string, deviceID string) error { return nil }

func (f *fakeUserRepo) ClearDevice(ctx context.Context, id string) error { return nil }

func (f *fakeUserRepo) ReplaceAll(ctx context.Context, users []user.User) error {
	f.users = users
	return nil
}

type fakeRecordRepo struct {
	records []attendance.Record
}

func (f *fakeRecordRepo) Create(ctx context.Context, r attendance.Record) (attendance.Record, error) {
	f.records = append(f.records, r)
	return r, nil
}

func (f *fakeRecordRepo) ListByUser(ctx context.Context, userID string, limit int) ([]attendance.Record, error) {
	return nil, nil
}

func (f *fakeRecordRepo) List(ctx context.Context, filter attendance.RecordFilter) ([]attendance.Record, error) {
	return f.records, nil
}

func (f *fakeRecordRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(f.records)), nil
}

type fakeAccountRepo struct {
	accounts []report.Account
}

func (f *fakeAccountRepo) Create(ctx context.Context, a report.Account) (report.Account, error) {
	f.accounts = append(f.accounts, a)
	return a, nil
}

func (f *fakeAccountRepo) GetByID(ctx context.Context, id string) (report.Account, error) {
	return report.Account{}, report.ErrAccountNotFound
}

func (f *fakeAccountRepo) GetByUsername(ctx context.Context, username string) (report.Account, error) {
	return report.Account{}, report.ErrAccountNotFound
}

func (f *fakeAccountRepo) List(ctx context.Context) ([]report.Account, error) {
	return f.accounts, nil
}

func (f *fakeAccountRepo) Update(ctx context.Context, req report.UpdateAccountRequest) error {
	return nil
}

func (f *fakeAccountRepo) Delete(ctx context.Context, id string) error { return nil }

func (f *fakeAccountRepo) ReplaceAll(ctx context.Context, accounts []report.Account) error {
	f.accounts = accounts
	return nil
}

type fakeConfigRepo struct {
	cfg appconfig.Config
}

func (f *fakeConfigRepo) Get(ctx context.Context) (appconfig.Config, error) { return f.cfg, nil }

func (f *fakeConfigRepo) Save(ctx context.Context, cfg appconfig.Config) error {
	f.cfg = cfg
	return nil
}

func (f *fakeConfigRepo) TouchLastUpdated(ctx context.Context, at time.Time) error {
	f.cfg.LastUpdated = &at
	return nil
}

type fakeOutboxRepo struct {
	entries   []syncdomain.OutboxEntry
	delivered []int64
	failed    []int64
}

func (f *fakeOutboxRepo) Enqueue(ctx context.Context, action string, payload []byte) error {
	f.entries = append(f.entries, syncdomain.OutboxEntry{
		ID:      int64(len(f.entries) + 1),
		Action:  action,
		Payload: payload,
	})
	return nil
}

func (f *fakeOutboxRepo) ListPending(ctx context.Context, limit int) ([]syncdomain.OutboxEntry, error) {
	if len(f.entries) > limit {
		return f.entries[:limit], nil
	}
	return f.entries, nil
}

func (f *fakeOutboxRepo) MarkDelivered(ctx context.Context, id int64) error {
	f.delivered = append(f.delivered, id)
	return nil
}

func (f *fakeOutboxRepo) MarkFailed(ctx context.Context, id int64, reason string) error {
	f.failed = append(f.failed, id)
	return nil
}

func (f *fakeOutboxRepo) CountPending(ctx context.Context) (int64, error) {
	return int64(len(f.entries)), nil
}

type fakeSheetClient struct {
	snapshot sheet.Snapshot
	getErr   error
	posts    []any
	postErr  error
}

func (f *fakeSheetClient) GetData(ctx context.Context, endpoint string) (sheet.Snapshot, error) {
	if f.getErr != nil {
		return sheet.Snapshot{}, f.getErr
	}
	return f.snapshot, nil
}

func (f *fakeSheetClient) Post(ctx context.Context, endpoint string, body any) error {
	if f.postErr != nil {
		return f.postErr
	}
	f.posts = append(f.posts, body)
	return nil
}

func (f *fakeSheetClient) Ping(ctx context.Context, endpoint string) error { return nil }

type fixture struct {
	svc      *SyncServiceImpl
	branches *fakeBranchRepo
	jobs     *fakeJobRepo
	users    *fakeUserRepo
	records  *fakeRecordRepo
	accounts *fakeAccountRepo
	config   *fakeConfigRepo
	outbox   *fakeOutboxRepo
	sheets   *fakeSheetClient
}

func newFixture() *fixture {
	fx := &fixture{
		branches: &fakeBranchRepo{},
		jobs:     &fakeJobRepo{},
		users:    &fakeUserRepo{},
		records:  &fakeRecordRepo{},
		accounts: &fakeAccountRepo{},
		config:   &fakeConfigRepo{cfg: appconfig.Config{SyncURL: testEndpoint, AdminUsername: "admin", AdminPassword: "admin123"}},
		outbox:   &fakeOutboxRepo{},
		sheets:   &fakeSheetClient{},
	}
	svc := NewSyncService(nil, fx.branches, fx.jobs, fx.users, fx.records, fx.accounts, fx.config, fx.outbox, fx.sheets)
	fx.svc = svc.(*SyncServiceImpl)
	// No database in these tests; run the replacement callback directly.
	fx.svc.runInTx = func(ctx context.Context, fn func(ctx context.Context) error) error {
		return fn(ctx)
	}
	return fx
}

func fullSnapshot() sheet.Snapshot {
	return sheet.Snapshot{
		Branches: []sheet.BranchPayload{
			{ID: "b1", Name: "Headquarters", Latitude: 30.0444, Longitude: 31.2357, Radius: 75},
		},
		Jobs: []sheet.JobPayload{
			{ID: "j1", Title: "Cashier"},
			{ID: "j2", Title: "Supervisor"},
		},
		Users: []sheet.UserPayload{
			{
				ID:           "u1",
				FullName:     "Sara Ahmed",
				NationalID:   "29805041234567",
				Password:     "secret1",
				Role:         "employee",
				DeviceID:     "dev_abc123xyz_lk2j3h",
				JobTitle:     "Cashier",
				Registration: "2026-08-01T09:00:00Z",
			},
			{ID: "u2", FullName: "Omar Khaled", NationalID: "29911223344556", Password: "secret2", JobTitle: "Supervisor"},
		},
		ReportAccounts: []sheet.AccountPayload{
			{ID: "r1", Username: "hr-viewer", Password: "viewer1", AllowedJobs: []string{"Cashier"}},
		},
	}
}

func TestPull_ReplacesLocalRegistry(t *testing.T) {
	fx := newFixture()
	fx.sheets.snapshot = fullSnapshot()

	// Stale rows that the pull must sweep away.
	fx.branches.branches = []branch.Branch{{ID: "old", Name: "Closed Branch"}}
	fx.jobs.jobs = []job.Job{{ID: "old", Title: "Retired Title"}}

	require.NoError(t, fx.svc.Pull(context.Background()))

	require.Len(t, fx.branches.branches, 1)
	assert.Equal(t, "Headquarters", fx.branches.branches[0].Name)
	assert.Equal(t, 75, fx.branches.branches[0].RadiusMeters)

	require.Len(t, fx.jobs.jobs, 2)

	require.Len(t, fx.users.users, 2)
	sara := fx.users.users[0]
	assert.Equal(t, user.RoleEmployee, sara.Role)
	require.NotNil(t, sara.DeviceID)
	assert.Equal(t, "dev_abc123xyz_lk2j3h", *sara.DeviceID)
	require.NotNil(t, sara.RegistrationDate)
	assert.Equal(t, 2026, sara.RegistrationDate.Year())

	// Role defaults to employee when the remote row omits it.
	assert.Equal(t, user.RoleEmployee, fx.users.users[1].Role)

	require.Len(t, fx.accounts.accounts, 1)
	assert.Equal(t, []string{"Cashier"}, fx.accounts.accounts[0].AllowedJobs)

	require.NotNil(t, fx.config.cfg.LastUpdated)

	status, err := fx.svc.Status(context.Background())
	require.NoError(t, err)
	assert.False(t, status.SyncError)
	assert.False(t, status.Syncing)
}

func TestPull_OmittedCollectionsAreKept(t *testing.T) {
	fx := newFixture()
	snap := fullSnapshot()
	snap.Users = nil
	snap.ReportAccounts = nil
	fx.sheets.snapshot = snap

	fx.users.users = []user.User{{ID: "u1", FullName: "Sara Ahmed"}}
	fx.accounts.accounts = []report.Account{{ID: "r1", Username: "hr-viewer"}}

	require.NoError(t, fx.svc.Pull(context.Background()))

	// Branches and jobs are always replaced; the optional collections
	// survive when the endpoint does not serve them.
	assert.Len(t, fx.branches.branches, 1)
	assert.Len(t, fx.users.users, 1)
	assert.Len(t, fx.accounts.accounts, 1)
}

func TestPull_FetchFailureKeepsLocalData(t *testing.T) {
	fx := newFixture()
	fx.sheets.getErr = errors.New("status 500")
	fx.branches.branches = []branch.Branch{{ID: "b1", Name: "Headquarters"}}

	err := fx.svc.Pull(context.Background())
	require.Error(t, err)

	assert.Len(t, fx.branches.branches, 1)
	assert.Nil(t, fx.config.cfg.LastUpdated)

	status, statusErr := fx.svc.Status(context.Background())
	require.NoError(t, statusErr)
	assert.True(t, status.SyncError)
}

func TestPull_WithoutEndpoint(t *testing.T) {
	fx := newFixture()
	fx.config.cfg.SyncURL = ""

	err := fx.svc.Pull(context.Background())
	assert.ErrorIs(t, err, syncdomain.ErrNoSyncURL)
}

func TestPush_SendsFullState(t *testing.T) {
	fx := newFixture()
	fx.branches.branches = []branch.Branch{{ID: "b1", Name: "Headquarters", Latitude: 30.0444, Longitude: 31.2357, RadiusMeters: 75}}
	fx.jobs.jobs = []job.Job{{ID: "j1", Title: "Cashier"}}
	deviceID := "dev_abc123xyz_lk2j3h"
	fx.users.users = []user.User{{ID: "u1", FullName: "Sara Ahmed", NationalID: "29805041234567", Password: "secret1", Role: user.RoleEmployee, DeviceID: &deviceID, JobTitle: "Cashier"}}
	fx.accounts.accounts = []report.Account{{ID: "r1", Username: "hr-viewer", Password: "viewer1", AllowedJobs: []string{"Cashier"}}}

	require.NoError(t, fx.svc.Push(context.Background()))

	require.Len(t, fx.sheets.posts, 1)
	payload, ok := fx.sheets.posts[0].(sheet.UpdateSystemPayload)
	require.True(t, ok)
	assert.Equal(t, "updateSystem", payload.Action)
	assert.Equal(t, "admin", payload.AdminUsername)
	assert.Equal(t, "admin123", payload.AdminPassword)
	require.Len(t, payload.Branches, 1)
	assert.Equal(t, 75, payload.Branches[0].Radius)
	require.Len(t, payload.Users, 1)
	assert.Equal(t, "dev_abc123xyz_lk2j3h", payload.Users[0].DeviceID)
	assert.Equal(t, "employee", payload.Users[0].Role)
}

func TestBootstrap(t *testing.T) {
	fx := newFixture()
	fx.config.cfg.SyncURL = ""
	fx.sheets.snapshot = fullSnapshot()

	encoded := base64.StdEncoding.EncodeToString([]byte(testEndpoint))
	require.NoError(t, fx.svc.Bootstrap(context.Background(), encoded))

	assert.Equal(t, testEndpoint, fx.config.cfg.SyncURL)
	assert.Equal(t, testEndpoint, fx.config.cfg.GoogleSheetLink)

	// The bootstrap runs an initial pull once the link is bound.
	assert.Len(t, fx.branches.branches, 1)
}

func TestBootstrap_URLSafeEncoding(t *testing.T) {
	fx := newFixture()
	fx.sheets.snapshot = fullSnapshot()

	endpoint := "https://script.example.com/macros/s/AKfycb???/exec"
	encoded := base64.URLEncoding.EncodeToString([]byte(endpoint))
	require.NoError(t, fx.svc.Bootstrap(context.Background(), encoded))
	assert.Equal(t, endpoint, fx.config.cfg.SyncURL)
}

func TestBootstrap_RejectsBadLinks(t *testing.T) {
	fx := newFixture()

	cases := []struct {
		name string
		link string
	}{
		{"not base64", "%%%not-base64%%%"},
		{"decodes to non-url", base64.StdEncoding.EncodeToString([]byte("ftp://nope"))},
		{"decodes to garbage", base64.StdEncoding.EncodeToString([]byte("hello world"))},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := fx.svc.Bootstrap(context.Background(), tc.link)
			assert.ErrorIs(t, err, syncdomain.ErrInvalidBootstrapLink)
		})
	}
	assert.Equal(t, testEndpoint, fx.config.cfg.SyncURL, "a bad link never clobbers the stored endpoint")
}

func TestBootstrap_BindsLinkEvenWhenPullFails(t *testing.T) {
	fx := newFixture()
	fx.config.cfg.SyncURL = ""
	fx.sheets.getErr = errors.New("status 503")

	encoded := base64.StdEncoding.EncodeToString([]byte(testEndpoint))
	require.NoError(t, fx.svc.Bootstrap(context.Background(), encoded))
	assert.Equal(t, testEndpoint, fx.config.cfg.SyncURL)
}

func TestDispatchOutbox(t *testing.T) {
	fx := newFixture()
	body, _ := json.Marshal(map[string]string{"action": "saveAttendance", "id": "rec1"})
	require.NoError(t, fx.outbox.Enqueue(context.Background(), syncdomain.ActionSaveAttendance, body))
	require.NoError(t, fx.outbox.Enqueue(context.Background(), syncdomain.ActionRegisterUser, body))

	require.NoError(t, fx.svc.DispatchOutbox(context.Background()))

	assert.Equal(t, []int64{1, 2}, fx.outbox.delivered)
	assert.Empty(t, fx.outbox.failed)
	assert.Len(t, fx.sheets.posts, 2)
}

func TestDispatchOutbox_FailedEntriesStayQueued(t *testing.T) {
	fx := newFixture()
	body, _ := json.Marshal(map[string]string{"action": "saveAttendance"})
	require.NoError(t, fx.outbox.Enqueue(context.Background(), syncdomain.ActionSaveAttendance, body))
	fx.sheets.postErr = errors.New("status 502")

	require.NoError(t, fx.svc.DispatchOutbox(context.Background()))

	assert.Empty(t, fx.outbox.delivered)
	assert.Equal(t, []int64{1}, fx.outbox.failed)
}

func TestDispatchOutbox_NoopWhenNotConnected(t *testing.T) {
	fx := newFixture()
	fx.config.cfg.SyncURL = ""
	body, _ := json.Marshal(map[string]string{"action": "saveAttendance"})
	require.NoError(t, fx.outbox.Enqueue(context.Background(), syncdomain.ActionSaveAttendance, body))

	require.NoError(t, fx.svc.DispatchOutbox(context.Background()))
	assert.Empty(t, fx.sheets.posts)
}

func TestStatus_CountsPendingAndRecords(t *testing.T) {
	fx := newFixture()
	body, _ := json.Marshal(map[string]string{"action": "saveAttendance"})
	require.NoError(t, fx.outbox.Enqueue(context.Background(), syncdomain.ActionSaveAttendance, body))
	_, err := fx.records.Create(context.Background(), attendance.Record{ID: "rec1", UserID: "u1"})
	require.NoError(t, err)
	_, err = fx.records.Create(context.Background(), attendance.Record{ID: "rec2", UserID: "u1"})
	require.NoError(t, err)

	status, err := fx.svc.Status(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 1, status.Pending)
	assert.EqualValues(t, 2, status.Records)
	assert.Nil(t, status.LastUpdated)
}
