package draft

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/patungan/backend/internal/application/adapter"
	"github.com/patungan/backend/internal/domain/entity"
)

// memoryDraftStore is an in-memory DraftStore for tests.
type memoryDraftStore struct {
	drafts  map[uuid.UUID]*entity.BillDraft
	getErr  error
	putErr  error
	puts    int
	deletes int
}

func newMemoryDraftStore() *memoryDraftStore {
	return &memoryDraftStore{drafts: map[uuid.UUID]*entity.BillDraft{}}
}

func (s *memoryDraftStore) Get(_ context.Context, userID uuid.UUID) (*entity.BillDraft, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	if draft, ok := s.drafts[userID]; ok {
		return draft, nil
	}
	return entity.NewBillDraft(), nil
}

func (s *memoryDraftStore) Put(_ context.Context, userID uuid.UUID, draft *entity.BillDraft) error {
	if s.putErr != nil {
		return s.putErr
	}
	s.puts++
	s.drafts[userID] = draft
	return nil
}

func (s *memoryDraftStore) Delete(_ context.Context, userID uuid.UUID) error {
	s.deletes++
	delete(s.drafts, userID)
	return nil
}

// recordingBillRepository records the order of persistence calls and can be
// told to fail at a given step.
type recordingBillRepository struct {
	calls        []string
	failAt       string
	bill         *entity.Bill
	items        []*entity.BillItem
	participants []*entity.BillParticipant
	assignments  []*entity.ItemAssignment
}

var errRepoFailure = errors.New("storage unavailable")

func (r *recordingBillRepository) step(name string) error {
	r.calls = append(r.calls, name)
	if r.failAt == name {
		return errRepoFailure
	}
	return nil
}

func (r *recordingBillRepository) CreateBill(_ context.Context, bill *entity.Bill) error {
	r.bill = bill
	return r.step("bill")
}

func (r *recordingBillRepository) CreateItems(_ context.Context, items []*entity.BillItem) error {
	r.items = items
	return r.step("items")
}

func (r *recordingBillRepository) CreateParticipants(_ context.Context, participants []*entity.BillParticipant) error {
	r.participants = participants
	return r.step("participants")
}

func (r *recordingBillRepository) CreateAssignments(_ context.Context, assignments []*entity.ItemAssignment) error {
	r.assignments = assignments
	return r.step("assignments")
}

func (r *recordingBillRepository) FindByUser(_ context.Context, _ uuid.UUID) ([]*entity.Bill, error) {
	return nil, nil
}

func (r *recordingBillRepository) FindByID(_ context.Context, _, _ uuid.UUID) (*entity.BillDetails, error) {
	return nil, nil
}

// stubUserRepository returns one fixed user.
type stubUserRepository struct {
	user *entity.User
}

func (r *stubUserRepository) Create(_ context.Context, _ *entity.User) error { return nil }

func (r *stubUserRepository) FindByID(_ context.Context, _ uuid.UUID) (*entity.User, error) {
	if r.user == nil {
		return nil, errors.New("user not found")
	}
	return r.user, nil
}

func (r *stubUserRepository) FindByEmail(_ context.Context, _ string) (*entity.User, error) {
	return r.user, nil
}

func (r *stubUserRepository) ExistsByEmail(_ context.Context, _ string) (bool, error) {
	return r.user != nil, nil
}

// recordingEmailQueue records created jobs.
type recordingEmailQueue struct {
	jobs      []*entity.EmailJob
	createErr error
}

func (q *recordingEmailQueue) Create(_ context.Context, job *entity.EmailJob) error {
	if q.createErr != nil {
		return q.createErr
	}
	q.jobs = append(q.jobs, job)
	return nil
}

func (q *recordingEmailQueue) GetPendingJobs(_ context.Context, _ int) ([]*entity.EmailJob, error) {
	return nil, nil
}

func (q *recordingEmailQueue) Update(_ context.Context, _ *entity.EmailJob) error { return nil }

func (q *recordingEmailQueue) GetByID(_ context.Context, _ uuid.UUID) (*entity.EmailJob, error) {
	return nil, errors.New("not found")
}

// stubScanner returns fixed candidates or an error.
type stubScanner struct {
	available  bool
	candidates []adapter.ScannedItem
	err        error
}

func (s *stubScanner) IsAvailable() bool { return s.available }

func (s *stubScanner) Scan(_ context.Context, _ []byte, _ string) ([]adapter.ScannedItem, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.candidates, nil
}
