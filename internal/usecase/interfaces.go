package usecase

import (
	"context"

	"github.com/xavierca1/ghostreach/internal/entity"
	"github.com/xavierca1/ghostreach/internal/infra/harvest"
)

type LeadRepository interface {
	entity.LeadRepositoryInterface
}

type EntryLog interface {
	Append(entries []entity.Entry) (int, error)
}

type Harvester interface {
	Harvest(ctx context.Context, targets []entity.Target) harvest.Report
}

// Sender delivers or hands off one rendered message.
type Sender interface {
	Send(ctx context.Context, msg entity.OutreachMessage) error
}

type TemplateMutator interface {
	MutateTemplate(tmpl string) string
}
