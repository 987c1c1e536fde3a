//go:build unit || e2e

package fake

import (
	"context"
	"fmt"
	"sync"
	"time"

	"inspection-marketplace/internal/domain/booking"
	"inspection-marketplace/internal/domain/inspection"
	"inspection-marketplace/internal/usecase/shared"
)

// Payment records processor calls. Requests repeated with an idempotency key return the
// first intent in its current status, like the real processor.
type Payment struct {
	mu sync.Mutex

	Authorizations []shared.AuthorizationRequest
	Cancels        []string
	Captures       []string
	Refunds        []string
	Accounts       []string

	byKey  map[string]shared.Authorization
	status map[string]shared.AuthorizationStatus
	seq    int

	// AuthorizeStatus overrides the status of newly created intents when set.
	AuthorizeStatus shared.AuthorizationStatus

	AuthorizeErr  error
	CancelErr     error
	CaptureErr    error
	AccountErr    error
	CancelOutcome shared.CancelOutcome
	Event         shared.PaymentEvent
	ParseErr      error
	OnboardingURL string
	DashboardURL  string
	NextAccountID string
}

var _ shared.PaymentGateway = (*Payment)(nil)

func NewPayment() *Payment {
	return &Payment{
		byKey:         map[string]shared.Authorization{},
		status:        map[string]shared.AuthorizationStatus{},
		CancelOutcome: shared.CancelVoided,
		OnboardingURL: "https://connect.example.test/onboarding",
		DashboardURL:  "https://connect.example.test/dashboard",
		NextAccountID: "acct_fake_1",
	}
}

// Reset forgets every recorded call and restores the default outcomes.
func (p *Payment) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	fresh := NewPayment()
	p.Authorizations, p.Cancels, p.Captures, p.Refunds, p.Accounts = nil, nil, nil, nil, nil
	p.byKey, p.status, p.seq = fresh.byKey, fresh.status, 0
	p.AuthorizeStatus = ""
	p.AuthorizeErr, p.CancelErr, p.CaptureErr, p.AccountErr, p.ParseErr = nil, nil, nil, nil, nil
	p.CancelOutcome, p.Event = fresh.CancelOutcome, shared.PaymentEvent{}
	p.OnboardingURL, p.DashboardURL, p.NextAccountID = fresh.OnboardingURL, fresh.DashboardURL, fresh.NextAccountID
}

func (p *Payment) CreateAuthorization(_ context.Context, req shared.AuthorizationRequest) (shared.Authorization, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.AuthorizeErr != nil {
		return shared.Authorization{}, p.AuthorizeErr
	}
	if a, ok := p.byKey[req.IdempotencyKey]; ok && req.IdempotencyKey != "" {
		a.Status = p.status[a.ID]
		return a, nil
	}
	p.seq++
	a := shared.Authorization{
		ID:           fmt.Sprintf("pi_fake_%d", p.seq),
		ClientSecret: fmt.Sprintf("pi_fake_%d_secret", p.seq),
		Status:       shared.AuthorizationRequiresPaymentMethod,
	}
	if p.AuthorizeStatus != "" {
		a.Status = p.AuthorizeStatus
	}
	p.Authorizations = append(p.Authorizations, req)
	p.byKey[req.IdempotencyKey] = a
	p.status[a.ID] = a.Status
	return a, nil
}

func (p *Payment) CancelAuthorization(_ context.Context, id, _ string) (shared.CancelOutcome, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.CancelErr != nil {
		return "", p.CancelErr
	}
	p.Cancels = append(p.Cancels, id)
	if p.CancelOutcome == shared.CancelVoided {
		p.status[id] = shared.AuthorizationCanceled
	}
	return p.CancelOutcome, nil
}

func (p *Payment) CaptureAuthorization(_ context.Context, id, _ string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.CaptureErr != nil {
		return p.CaptureErr
	}
	p.Captures = append(p.Captures, id)
	return nil
}

func (p *Payment) Refund(_ context.Context, id string, _ *int64, _ string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Refunds = append(p.Refunds, id)
	return nil
}

func (p *Payment) CreateConnectedAccount(_ context.Context, email string) (shared.ConnectedAccount, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.AccountErr != nil {
		return shared.ConnectedAccount{}, p.AccountErr
	}
	p.Accounts = append(p.Accounts, email)
	return shared.ConnectedAccount{AccountID: p.NextAccountID, OnboardingURL: p.OnboardingURL}, nil
}

func (p *Payment) CreateLoginLink(_ context.Context, _ string) (string, error) {
	if p.AccountErr != nil {
		return "", p.AccountErr
	}
	return p.DashboardURL, nil
}

func (p *Payment) ParseWebhook(_ []byte, _ string) (shared.PaymentEvent, error) {
	if p.ParseErr != nil {
		return shared.PaymentEvent{}, p.ParseErr
	}
	return p.Event, nil
}

type ScheduledJob struct {
	Delay     time.Duration
	Job       shared.Job
	DedupeKey string
}

// Scheduler keeps jobs until the test runs them.
type Scheduler struct {
	Once      []ScheduledJob
	Recurring []ScheduledJob
	Err       error
}

var _ shared.Scheduler = (*Scheduler)(nil)

func (s *Scheduler) ScheduleOnce(delay time.Duration, job shared.Job, dedupeKey string) error {
	if s.Err != nil {
		return s.Err
	}
	for _, j := range s.Once {
		if j.DedupeKey == dedupeKey {
			return nil
		}
	}
	s.Once = append(s.Once, ScheduledJob{Delay: delay, Job: job, DedupeKey: dedupeKey})
	return nil
}

func (s *Scheduler) ScheduleRecurring(interval time.Duration, job shared.Job) error {
	if s.Err != nil {
		return s.Err
	}
	s.Recurring = append(s.Recurring, ScheduledJob{Delay: interval, Job: job})
	return nil
}

// RunOnce fires and forgets every pending one-shot job.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	jobs := s.Once
	s.Once = nil
	for _, j := range jobs {
		if err := j.Job.Run(ctx); err != nil {
			return err
		}
	}
	return nil
}

type Upload struct {
	Data        []byte
	ContentType string
	URL         string
}

type Storage struct {
	Uploads []Upload
	Err     error
}

var _ shared.ObjectStorage = (*Storage)(nil)

func (s *Storage) Upload(_ context.Context, data []byte, contentType string) (string, error) {
	if s.Err != nil {
		return "", s.Err
	}
	url := fmt.Sprintf("https://files.example.test/%d", len(s.Uploads)+1)
	s.Uploads = append(s.Uploads, Upload{Data: data, ContentType: contentType, URL: url})
	return url, nil
}

type Renderer struct {
	Calls int
	Err   error
}

var _ shared.ReportRenderer = (*Renderer)(nil)

func (r *Renderer) Render(_ *booking.Booking, _ *inspection.Proof) ([]byte, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	r.Calls++
	return []byte("%PDF-1.3 fake"), nil
}

type Published struct {
	RoutingKey string
	Payload    []byte
}

type Publisher struct {
	Messages []Published
	Err      error
}

var _ shared.EventPublisher = (*Publisher)(nil)

func (p *Publisher) Publish(_ context.Context, routingKey string, payload []byte) error {
	if p.Err != nil {
		return p.Err
	}
	p.Messages = append(p.Messages, Published{RoutingKey: routingKey, Payload: payload})
	return nil
}
