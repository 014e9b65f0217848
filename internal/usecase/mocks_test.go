package usecase_test

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/ghostreach/internal/entity"
	"github.com/xavierca1/ghostreach/internal/infra/harvest"
)

type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) Insert(ctx context.Context, email, name, role, company string) (entity.InsertResult, error) {
	args := m.Called(ctx, email, name, role, company)
	return args.Get(0).(entity.InsertResult), args.Error(1)
}

func (m *MockLeadRepository) FetchByStatus(ctx context.Context, status entity.LeadStatus) ([]entity.Lead, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) UpdateStatus(ctx context.Context, ids []int64, status entity.LeadStatus) error {
	return m.Called(ctx, ids, status).Error(0)
}

func (m *MockLeadRepository) CountByStatus(ctx context.Context) (map[entity.LeadStatus]int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[entity.LeadStatus]int), args.Error(1)
}

type MockEntryLog struct {
	mock.Mock
}

func (m *MockEntryLog) Append(entries []entity.Entry) (int, error) {
	args := m.Called(entries)
	return args.Int(0), args.Error(1)
}

type MockHarvester struct {
	mock.Mock
}

func (m *MockHarvester) Harvest(ctx context.Context, targets []entity.Target) harvest.Report {
	return m.Called(ctx, targets).Get(0).(harvest.Report)
}

type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(ctx context.Context, msg entity.OutreachMessage) error {
	return m.Called(ctx, msg).Error(0)
}

// recordingSender keeps every message it is given.
type recordingSender struct {
	mu   sync.Mutex
	sent []entity.OutreachMessage
}

func (r *recordingSender) Send(_ context.Context, msg entity.OutreachMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, msg)
	return nil
}

func (r *recordingSender) Bodies() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.sent))
	for _, m := range r.sent {
		out = append(out, m.Body)
	}
	return out
}
