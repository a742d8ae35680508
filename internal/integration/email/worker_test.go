package email

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/patungan/backend/internal/domain/entity"
	"github.com/patungan/backend/internal/integration/email/templates"
)

// memoryQueue is an in-memory email queue for worker tests.
type memoryQueue struct {
	jobs map[uuid.UUID]*entity.EmailJob
}

func newMemoryQueue() *memoryQueue {
	return &memoryQueue{jobs: map[uuid.UUID]*entity.EmailJob{}}
}

func (q *memoryQueue) Create(_ context.Context, job *entity.EmailJob) error {
	q.jobs[job.ID] = job
	return nil
}

func (q *memoryQueue) GetPendingJobs(_ context.Context, limit int) ([]*entity.EmailJob, error) {
	var pending []*entity.EmailJob
	now := time.Now().UTC()
	for _, job := range q.jobs {
		if job.Status == entity.EmailStatusPending && !job.ScheduledAt.After(now) {
			pending = append(pending, job)
			if len(pending) == limit {
				break
			}
		}
	}
	return pending, nil
}

func (q *memoryQueue) Update(_ context.Context, job *entity.EmailJob) error {
	q.jobs[job.ID] = job
	return nil
}

func (q *memoryQueue) GetByID(_ context.Context, id uuid.UUID) (*entity.EmailJob, error) {
	if job, ok := q.jobs[id]; ok {
		return job, nil
	}
	return nil, errors.New("not found")
}

func newSummaryJob() *entity.EmailJob {
	return entity.NewEmailJob(
		entity.TemplateBillSummary,
		"budi@example.com",
		"Budi",
		"Rincian patungan: Makan Malam",
		map[string]interface{}{
			"billTitle":  "Makan Malam",
			"grandTotal": "Rp 46.000",
			"shares": []map[string]interface{}{
				{"name": "Budi", "amount": "Rp 23.000"},
				{"name": "Sari", "amount": "Rp 23.000"},
			},
		},
	)
}

func TestWorker_ProcessBillSummary(t *testing.T) {
	ctx := context.Background()
	renderer, err := templates.NewRenderer()
	if err != nil {
		t.Fatalf("failed to create renderer: %v", err)
	}

	queue := newMemoryQueue()
	sender := NewMockEmailSender()
	worker := NewWorker(queue, sender, renderer, DefaultWorkerConfig())

	job := newSummaryJob()
	if err := queue.Create(ctx, job); err != nil {
		t.Fatalf("failed to queue job: %v", err)
	}

	worker.ProcessNow(ctx)

	if len(sender.SentEmails) != 1 {
		t.Fatalf("expected 1 sent email, got %d", len(sender.SentEmails))
	}
	sent := sender.SentEmails[0]
	if sent.To != "budi@example.com" {
		t.Errorf("expected recipient budi@example.com, got %s", sent.To)
	}
	for _, want := range []string{"Makan Malam", "Budi", "Sari", "Rp 23.000", "Rp 46.000"} {
		if !strings.Contains(sent.HTML, want) {
			t.Errorf("expected HTML body to contain %q", want)
		}
		if !strings.Contains(sent.Text, want) {
			t.Errorf("expected text body to contain %q", want)
		}
	}

	stored, _ := queue.GetByID(ctx, job.ID)
	if stored.Status != entity.EmailStatusSent {
		t.Errorf("expected job to be marked sent, got %s", stored.Status)
	}
	if stored.ResendID == "" {
		t.Error("expected a resend ID on the sent job")
	}
}

func TestWorker_TemporaryFailureSchedulesRetry(t *testing.T) {
	ctx := context.Background()
	renderer, err := templates.NewRenderer()
	if err != nil {
		t.Fatalf("failed to create renderer: %v", err)
	}

	queue := newMemoryQueue()
	sender := NewMockEmailSender()
	sender.SetFailure(errors.New("rate limited"), false)
	worker := NewWorker(queue, sender, renderer, DefaultWorkerConfig())

	job := newSummaryJob()
	_ = queue.Create(ctx, job)

	worker.ProcessNow(ctx)

	stored, _ := queue.GetByID(ctx, job.ID)
	if stored.Status != entity.EmailStatusPending {
		t.Fatalf("expected job to stay pending for retry, got %s", stored.Status)
	}
	if stored.Attempts != 1 {
		t.Errorf("expected 1 attempt, got %d", stored.Attempts)
	}
	if !stored.ScheduledAt.After(time.Now().UTC()) {
		t.Error("expected the retry to be scheduled in the future")
	}
}

func TestWorker_PermanentFailureMarksFailed(t *testing.T) {
	ctx := context.Background()
	renderer, err := templates.NewRenderer()
	if err != nil {
		t.Fatalf("failed to create renderer: %v", err)
	}

	queue := newMemoryQueue()
	sender := NewMockEmailSender()
	sender.SetFailure(errors.New("422 validation"), true)
	worker := NewWorker(queue, sender, renderer, DefaultWorkerConfig())

	job := newSummaryJob()
	_ = queue.Create(ctx, job)

	worker.ProcessNow(ctx)

	stored, _ := queue.GetByID(ctx, job.ID)
	if stored.Status != entity.EmailStatusFailed {
		t.Fatalf("expected job to be marked failed, got %s", stored.Status)
	}
}

func TestIsPermanentError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"unauthorized", errors.New("401 Unauthorized"), true},
		{"validation", errors.New("validation failed"), true},
		{"rate limit", errors.New("429 too many requests"), false},
		{"server error", errors.New("500 internal server error"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isPermanentError(tt.err); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}
