package approval

import (
	"StaffGate/entity"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	users     map[string]*entity.User
	workers   map[string]*entity.Worker
	companies []*entity.Company
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		users:   make(map[string]*entity.User),
		workers: make(map[string]*entity.Worker),
	}
}

func (r *fakeRepo) GetUserByID(_ context.Context, id string) (*entity.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (r *fakeRepo) UpdateUser(_ context.Context, user *entity.User) error {
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeRepo) CreateCompany(_ context.Context, company *entity.Company) (string, error) {
	company.ID = fmt.Sprintf("company-%d", len(r.companies)+1)
	r.companies = append(r.companies, company)
	return company.ID, nil
}

func (r *fakeRepo) GetWorkerByUserID(_ context.Context, userID string) (*entity.Worker, error) {
	worker, ok := r.workers[userID]
	if !ok {
		return nil, nil
	}
	copied := *worker
	return &copied, nil
}

func (r *fakeRepo) UpdateWorker(_ context.Context, worker *entity.Worker) error {
	copied := *worker
	r.workers[worker.UserID] = &copied
	return nil
}

func (r *fakeRepo) Atomically(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type sentMessage struct {
	chatID int64
	text   string
}

type fakeGateway struct {
	sent     []sentMessage
	edits    []sentMessage
	failEdit bool
}

func (g *fakeGateway) SendText(chatID int64, text string) error {
	g.sent = append(g.sent, sentMessage{chatID, text})
	return nil
}

func (g *fakeGateway) EditText(chatID, messageID int64, text string) error {
	if g.failEdit {
		return errors.New("message to edit not found")
	}
	g.edits = append(g.edits, sentMessage{chatID, text})
	return nil
}

func callback(data string, chatID, messageID int64) *entity.CallbackQuery {
	return &entity.CallbackQuery{
		Data: data,
		Message: &entity.Message{
			MessageID: messageID,
			Chat:      entity.Chat{ID: chatID},
		},
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func seedHolder(repo *fakeRepo) *entity.User {
	holder := &entity.User{
		ID:      "42",
		Name:    "Jane",
		Email:   "jane@x.com",
		ChatID:  700,
		Role:    entity.HolderRole,
		Company: "Acme",
		Status:  entity.StatusPending,
	}
	repo.users[holder.ID] = holder
	return holder
}

func seedWorker(repo *fakeRepo) (*entity.User, *entity.Worker) {
	user := &entity.User{
		ID:      "77",
		Name:    "Bob",
		Email:   "bob@x.com",
		ChatID:  800,
		Role:    entity.EmployeeRole,
		Company: "Acme",
		Status:  entity.StatusPending,
	}
	worker := &entity.Worker{
		ID:        "w-1",
		UserID:    user.ID,
		CompanyID: "company-1",
		Status:    entity.StatusPending,
	}
	repo.users[user.ID] = user
	repo.workers[user.ID] = worker
	return user, worker
}

func TestApproveCompany(t *testing.T) {
	repo := newFakeRepo()
	gateway := &fakeGateway{}
	seedHolder(repo)
	svc := NewService(repo, gateway, discardLogger())

	err := svc.HandleCallback(context.Background(), callback("approve_company_42", 100, 5))
	require.NoError(t, err)

	assert.Equal(t, entity.StatusApproved, repo.users["42"].Status)

	require.Len(t, repo.companies, 1)
	company := repo.companies[0]
	assert.Equal(t, "Acme", company.Name)
	assert.Equal(t, "jane@x.com", company.Email)
	assert.Equal(t, "42", company.OwnerID)
	assert.Equal(t, entity.CompanyActive, company.Status)

	require.Len(t, gateway.edits, 1)
	assert.Equal(t, int64(100), gateway.edits[0].chatID)
	assert.Contains(t, gateway.edits[0].text, "Approved")

	require.Len(t, gateway.sent, 1)
	assert.Equal(t, int64(700), gateway.sent[0].chatID)
	assert.Contains(t, gateway.sent[0].text, "approved")
}

func TestApproveCompanyRepeatedCallbackIsIdempotent(t *testing.T) {
	repo := newFakeRepo()
	gateway := &fakeGateway{}
	seedHolder(repo)
	svc := NewService(repo, gateway, discardLogger())

	require.NoError(t, svc.HandleCallback(context.Background(), callback("approve_company_42", 100, 5)))
	require.NoError(t, svc.HandleCallback(context.Background(), callback("approve_company_42", 100, 5)))

	assert.Len(t, repo.companies, 1, "a repeated approval must not create a second company")
	assert.Equal(t, entity.StatusApproved, repo.users["42"].Status)
}

func TestApproveCompanyMissingAccountIsFatal(t *testing.T) {
	repo := newFakeRepo()
	gateway := &fakeGateway{}
	svc := NewService(repo, gateway, discardLogger())

	err := svc.HandleCallback(context.Background(), callback("approve_company_99", 100, 5))
	require.NoError(t, err, "operation failures are reported to the approver, not the provider")

	assert.Empty(t, repo.companies)
	require.Len(t, gateway.sent, 1)
	assert.Equal(t, int64(100), gateway.sent[0].chatID)
	assert.Contains(t, gateway.sent[0].text, "Failed to process")
}

func TestRejectCompany(t *testing.T) {
	repo := newFakeRepo()
	gateway := &fakeGateway{}
	seedHolder(repo)
	svc := NewService(repo, gateway, discardLogger())

	err := svc.HandleCallback(context.Background(), callback("reject_company_42", 100, 5))
	require.NoError(t, err)

	assert.Equal(t, entity.StatusRejected, repo.users["42"].Status)
	assert.Empty(t, repo.companies, "rejection must not create a company")
	require.Len(t, gateway.edits, 1)
	assert.Contains(t, gateway.edits[0].text, "Rejected")
}

func TestRejectCompanyEditFailureKeepsStatus(t *testing.T) {
	repo := newFakeRepo()
	gateway := &fakeGateway{failEdit: true}
	seedHolder(repo)
	svc := NewService(repo, gateway, discardLogger())

	err := svc.HandleCallback(context.Background(), callback("reject_company_42", 100, 5))
	require.NoError(t, err)

	// Reject is not atomic: the status flip survives the failed edit.
	assert.Equal(t, entity.StatusRejected, repo.users["42"].Status)
}

func TestApproveWorker(t *testing.T) {
	repo := newFakeRepo()
	gateway := &fakeGateway{}
	seedWorker(repo)
	svc := NewService(repo, gateway, discardLogger())

	err := svc.HandleCallback(context.Background(), callback("approve_worker_77", 100, 5))
	require.NoError(t, err)

	assert.Equal(t, entity.StatusApproved, repo.users["77"].Status)
	assert.Equal(t, entity.StatusApproved, repo.workers["77"].Status)

	require.Len(t, gateway.sent, 1)
	assert.Equal(t, int64(800), gateway.sent[0].chatID)
}

func TestApproveWorkerMissingWorkerRowIsFatal(t *testing.T) {
	repo := newFakeRepo()
	gateway := &fakeGateway{}
	user, _ := seedWorker(repo)
	delete(repo.workers, user.ID)
	svc := NewService(repo, gateway, discardLogger())

	err := svc.HandleCallback(context.Background(), callback("approve_worker_77", 100, 5))
	require.NoError(t, err)

	assert.Equal(t, entity.StatusPending, repo.users["77"].Status)
	require.Len(t, gateway.sent, 1)
	assert.Contains(t, gateway.sent[0].text, "Failed to process")
}

func TestRejectWorkerLeavesWorkerRowUntouched(t *testing.T) {
	repo := newFakeRepo()
	gateway := &fakeGateway{}
	seedWorker(repo)
	svc := NewService(repo, gateway, discardLogger())

	err := svc.HandleCallback(context.Background(), callback("reject_worker_77", 100, 5))
	require.NoError(t, err)

	assert.Equal(t, entity.StatusRejected, repo.users["77"].Status)
	assert.Equal(t, entity.StatusPending, repo.workers["77"].Status)
}

func TestMalformedCallbackIsDropped(t *testing.T) {
	repo := newFakeRepo()
	gateway := &fakeGateway{}
	seedHolder(repo)
	svc := NewService(repo, gateway, discardLogger())

	for _, data := range []string{"", "approve", "approve_company", "nonsense_company_42"} {
		err := svc.HandleCallback(context.Background(), callback(data, 100, 5))
		require.NoError(t, err)
	}

	assert.Equal(t, entity.StatusPending, repo.users["42"].Status)
	assert.Empty(t, repo.companies)
	assert.Empty(t, gateway.edits)
	assert.Empty(t, gateway.sent)
}
