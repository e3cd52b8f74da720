package master

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uniteam-app/uniteam-backend-go/internal/domain/appconfig"
	"github.com/uniteam-app/uniteam-backend-go/internal/domain/branch"
	"github.com/uniteam-app/uniteam-backend-go/internal/domain/job"
	"github.com/uniteam-app/uniteam-backend-go/internal/domain/report"
	"github.com/uniteam-app/uniteam-backend-go/internal/domain/user"
	"github.com/uniteam-app/uniteam-backend-go/internal/pkg/validator"
)

type fakeBranchRepo struct {
	branches map[string]branch.Branch
}

func (f *fakeBranchRepo) Create(ctx context.Context, b branch.Branch) (branch.Branch, error) {
	f.branches[b.ID] = b
	return b, nil
}

func (f *fakeBranchRepo) GetByID(ctx context.Context, id string) (branch.Branch, error) {
	b, ok := f.branches[id]
	if !ok {
		return branch.Branch{}, branch.ErrBranchNotFound
	}
	return b, nil
}

func (f *fakeBranchRepo) List(ctx context.Context) ([]branch.Branch, error) {
	var out []branch.Branch
	for _, b := range f.branches {
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeBranchRepo) Update(ctx context.Context, req branch.UpdateBranchRequest) error {
	b, ok := f.branches[req.ID]
	if !ok {
		return branch.ErrBranchNotFound
	}
	if req.Name != nil {
		b.Name = *req.Name
	}
	if req.Latitude != nil {
		b.Latitude = *req.Latitude
	}
	if req.Longitude != nil {
		b.Longitude = *req.Longitude
	}
	if req.RadiusMeters != nil {
		b.RadiusMeters = *req.RadiusMeters
	}
	f.branches[req.ID] = b
	return nil
}

func (f *fakeBranchRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.branches[id]; !ok {
		return branch.ErrBranchNotFound
	}
	delete(f.branches, id)
	return nil
}

func (f *fakeBranchRepo) ReplaceAll(ctx context.Context, branches []branch.Branch) error {
	f.branches = map[string]branch.Branch{}
	for _, b := range branches {
		f.branches[b.ID] = b
	}
	return nil
}

type fakeJobRepo struct {
	jobs map[string]job.Job
}

func (f *fakeJobRepo) Create(ctx context.Context, j job.Job) (job.Job, error) {
	f.jobs[j.ID] = j
	return j, nil
}

func (f *fakeJobRepo) GetByID(ctx context.Context, id string) (job.Job, error) {
	j, ok := f.jobs[id]
	if !ok {
		return job.Job{}, job.ErrJobNotFound
	}
	return j, nil
}

func (f *fakeJobRepo) List(ctx context.Context) ([]job.Job, error) {
	var out []job.Job
	for _, j := range f.jobs {
		out = append(out, j)
	}
	return out, nil
}

func (f *fakeJobRepo) Update(ctx context.Context, req job.UpdateJobRequest) error {
	j, ok := f.jobs[req.ID]
	if !ok {
		return job.ErrJobNotFound
	}
	if req.Title != nil {
		j.Title = *req.Title
	}
	f.jobs[req.ID] = j
	return nil
}

func (f *fakeJobRepo) Delete(ctx context.Context, id string) error {
	delete(f.jobs, id)
	return nil
}

func (f *fakeJobRepo) ReplaceAll(ctx context.Context, jobs []job.Job) error {
	f.jobs = map[string]job.Job{}
	for _, j := range jobs {
		f.jobs[j.ID] = j
	}
	return nil
}

type fakeUserRepo struct {
	users map[string]user.User
}

func (f *fakeUserRepo) Create(ctx context.Context, u user.User) (user.User, error) {
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByNationalID(ctx context.Context, nationalID string) (user.User, error) {
	for _, u := range f.users {
		if u.NationalID == nationalID {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetByDeviceID(ctx context.Context, deviceID string) (user.User, error) {
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) List(ctx context.Context) ([]user.User, error) {
	var out []user.User
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, req user.UpdateUserRequest) error { return nil }

func (f *fakeUserRepo) Delete(ctx context.Context, id string) error {
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) BindDevice(ctx context.Context, id string, deviceID string) error {
	u, ok := f.users[id]
	if !ok {
		return user.ErrUserNotFound
	}
	u.DeviceID = &deviceID
	f.users[id] = u
	return nil
}

func (f *fakeUserRepo) ClearDevice(ctx context.Context, id string) error {
	u, ok := f.users[id]
	if !ok {
		return user.ErrUserNotFound
	}
	u.DeviceID = nil
	f.users[id] = u
	return nil
}

func (f *fakeUserRepo) ReplaceAll(ctx context.Context, users []user.User) error {
	f.users = map[string]user.User{}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return nil
}

type fakeAccountRepo struct {
	accounts map[string]report.Account
}

func (f *fakeAccountRepo) Create(ctx context.Context, a report.Account) (report.Account, error) {
	f.accounts[a.ID] = a
	return a, nil
}

func (f *fakeAccountRepo) GetByID(ctx context.Context, id string) (report.Account, error) {
	a, ok := f.accounts[id]
	if !ok {
		return report.Account{}, report.ErrAccountNotFound
	}
	return a, nil
}

func (f *fakeAccountRepo) GetByUsername(ctx context.Context, username string) (report.Account, error) {
	for _, a := range f.accounts {
		if a.Username == username {
			return a, nil
		}
	}
	return report.Account{}, report.ErrAccountNotFound
}

func (f *fakeAccountRepo) List(ctx context.Context) ([]report.Account, error) {
	var out []report.Account
	for _, a := range f.accounts {
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeAccountRepo) Update(ctx context.Context, req report.UpdateAccountRequest) error {
	return nil
}

func (f *fakeAccountRepo) Delete(ctx context.Context, id string) error {
	delete(f.accounts, id)
	return nil
}

func (f *fakeAccountRepo) ReplaceAll(ctx context.Context, accounts []report.Account) error {
	f.accounts = map[string]report.Account{}
	for _, a := range accounts {
		f.accounts[a.ID] = a
	}
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

type fixture struct {
	svc      MasterService
	branches *fakeBranchRepo
	users    *fakeUserRepo
	accounts *fakeAccountRepo
	config   *fakeConfigRepo
}

func newFixture() *fixture {
	branches := &fakeBranchRepo{branches: map[string]branch.Branch{}}
	jobs := &fakeJobRepo{jobs: map[string]job.Job{}}
	users := &fakeUserRepo{users: map[string]user.User{}}
	accounts := &fakeAccountRepo{accounts: map[string]report.Account{}}
	config := &fakeConfigRepo{cfg: appconfig.Config{
		SyncURL:       "https://script.example.com/exec",
		AdminUsername: "admin",
		AdminPassword: "admin123",
	}}
	return &fixture{
		svc:      NewMasterService(branches, jobs, users, accounts, config),
		branches: branches,
		users:    users,
		accounts: accounts,
		config:   config,
	}
}

func TestCreateBranch_DefaultRadius(t *testing.T) {
	fx := newFixture()

	created, err := fx.svc.CreateBranch(context.Background(), branch.CreateBranchRequest{
		Name:      "Headquarters",
		Latitude:  30.0444,
		Longitude: 31.2357,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, branch.DefaultRadiusMeters, created.RadiusMeters)

	explicit, err := fx.svc.CreateBranch(context.Background(), branch.CreateBranchRequest{
		Name:         "Warehouse",
		Latitude:     30.1,
		Longitude:    31.3,
		RadiusMeters: 250,
	})
	require.NoError(t, err)
	assert.Equal(t, 250, explicit.RadiusMeters)
}

func TestCreateBranch_Validation(t *testing.T) {
	fx := newFixture()

	_, err := fx.svc.CreateBranch(context.Background(), branch.CreateBranchRequest{
		Latitude:  30.0444,
		Longitude: 31.2357,
	})

	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Equal(t, "name", errs[0].Field)
}

func TestCreateBranch_NegativeRadiusRejected(t *testing.T) {
	fx := newFixture()

	_, err := fx.svc.CreateBranch(context.Background(), branch.CreateBranchRequest{
		Name:         "Headquarters",
		Latitude:     30.0444,
		Longitude:    31.2357,
		RadiusMeters: -5,
	})

	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Equal(t, "radius_meters", errs[0].Field)
	assert.Equal(t, "radius_meters must not be negative", errs[0].Message)
}

func TestCreateJob(t *testing.T) {
	fx := newFixture()

	created, err := fx.svc.CreateJob(context.Background(), job.CreateJobRequest{Title: "Cashier"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Cashier", created.Title)

	_, err = fx.svc.CreateJob(context.Background(), job.CreateJobRequest{})
	var errs validator.ValidationErrors
	assert.ErrorAs(t, err, &errs)

	found, err := fx.svc.GetJob(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cashier", found.Title)

	_, err = fx.svc.GetJob(context.Background(), "ghost")
	assert.ErrorIs(t, err, job.ErrJobNotFound)
}

func TestResetDevice(t *testing.T) {
	fx := newFixture()
	deviceID := "dev_abc123xyz_lk2j3h"
	fx.users.users["u1"] = user.User{ID: "u1", FullName: "Sara Ahmed", DeviceID: &deviceID}

	require.NoError(t, fx.svc.ResetDevice(context.Background(), "u1"))
	assert.Nil(t, fx.users.users["u1"].DeviceID)

	assert.ErrorIs(t, fx.svc.ResetDevice(context.Background(), "ghost"), user.ErrUserNotFound)
}

func TestGetUser(t *testing.T) {
	fx := newFixture()
	deviceID := "dev_abc123xyz_lk2j3h"
	registered := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	fx.users.users["u1"] = user.User{
		ID:               "u1",
		FullName:         "Sara Ahmed",
		NationalID:       "29805041234567",
		Role:             user.RoleEmployee,
		DeviceID:         &deviceID,
		JobTitle:         "Cashier",
		RegistrationDate: &registered,
	}

	found, err := fx.svc.GetUser(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "Sara Ahmed", found.FullName)
	require.NotNil(t, found.DeviceID)
	assert.Equal(t, deviceID, *found.DeviceID)
	require.NotNil(t, found.RegistrationDate)
	assert.Equal(t, "2026-08-01T09:00:00Z", *found.RegistrationDate)

	_, err = fx.svc.GetUser(context.Background(), "ghost")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestGetReportAccount(t *testing.T) {
	fx := newFixture()
	fx.accounts.accounts["r1"] = report.Account{
		ID:          "r1",
		Username:    "hr-viewer",
		Password:    "viewer1",
		AllowedJobs: []string{"Cashier"},
	}

	found, err := fx.svc.GetReportAccount(context.Background(), "r1")
	require.NoError(t, err)
	assert.Equal(t, "hr-viewer", found.Username)
	assert.Equal(t, []string{"Cashier"}, found.AllowedJobs)

	_, err = fx.svc.GetReportAccount(context.Background(), "ghost")
	assert.ErrorIs(t, err, report.ErrAccountNotFound)
}

func TestCreateReportAccount_ResponseOmitsPassword(t *testing.T) {
	fx := newFixture()

	created, err := fx.svc.CreateReportAccount(context.Background(), report.CreateAccountRequest{
		Username:    "hr-viewer",
		Password:    "viewer1",
		AllowedJobs: []string{"Cashier"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, []string{"Cashier"}, created.AllowedJobs)
}

func TestUpdateSettings_MergesOnlyProvidedFields(t *testing.T) {
	fx := newFixture()

	newPassword := "s3cure-pass"
	updated, err := fx.svc.UpdateSettings(context.Background(), appconfig.UpdateConfigRequest{
		AdminPassword: &newPassword,
	})
	require.NoError(t, err)

	// Untouched fields survive the partial update.
	assert.Equal(t, "https://script.example.com/exec", updated.SyncURL)
	assert.Equal(t, "admin", updated.AdminUsername)
	assert.Equal(t, "s3cure-pass", fx.config.cfg.AdminPassword)
}

func TestUpdateSettings_RejectsBadSyncURL(t *testing.T) {
	fx := newFixture()

	bad := "ftp://nope"
	_, err := fx.svc.UpdateSettings(context.Background(), appconfig.UpdateConfigRequest{SyncURL: &bad})

	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Equal(t, "https://script.example.com/exec", fx.config.cfg.SyncURL)
}

func TestGetSettings(t *testing.T) {
	fx := newFixture()
	at := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	require.NoError(t, fx.config.TouchLastUpdated(context.Background(), at))

	settings, err := fx.svc.GetSettings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "admin", settings.AdminUsername)
	require.NotNil(t, settings.LastUpdated)
	assert.Equal(t, "2026-08-28T12:00:00Z", *settings.LastUpdated)
}
