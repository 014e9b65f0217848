package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/xavierca1/ghostreach/internal/entity"
	"github.com/xavierca1/ghostreach/internal/infra/harvest"
	"github.com/xavierca1/ghostreach/internal/logger"
	"github.com/xavierca1/ghostreach/internal/metrics"
)

type HarvestLeadsUseCase struct {
	Harvester   Harvester
	Vault       EntryLog
	Repo        LeadRepository
	DefaultRole string
	log         logger.Logger
}

func NewHarvestLeadsUseCase(h Harvester, vault EntryLog, repo LeadRepository, defaultRole string, log logger.Logger) *HarvestLeadsUseCase {
	return &HarvestLeadsUseCase{
		Harvester:   h,
		Vault:       vault,
		Repo:        repo,
		DefaultRole: defaultRole,
		log:         log,
	}
}

// Execute harvests the targets, records every entry in the vault and
// inserts each address as a lead.
func (uc *HarvestLeadsUseCase) Execute(ctx context.Context, input HarvestLeadsInput) (*HarvestLeadsOutput, error) {
	runID := input.RunID
	if runID == "" {
		runID = uuid.NewString()
	}
	log := uc.log.With(logger.String("run_id", runID))

	for _, verr := range ValidateTargets(input.Targets) {
		log.Warn("Target will be skipped", logger.String("field", verr.Field), logger.String("reason", verr.Message))
	}

	report := uc.Harvester.Harvest(ctx, input.Targets)
	for _, source := range report.FailedSources {
		metrics.RecordFetchError(source)
	}

	out := &HarvestLeadsOutput{
		RunID:     runID,
		Fetched:   report.Fetched,
		Failed:    report.Failed,
		Harvested: len(report.Entries),
	}

	if len(report.Entries) == 0 {
		out.Msg = MsgNoEmailsHarvested
		log.Info(MsgNoEmailsHarvested, logger.Int("targets", len(input.Targets)))
		return out, nil
	}

	for _, e := range report.Entries {
		e[entity.EntryRunID] = runID
		e[entity.EntryRole] = uc.DefaultRole
		metrics.RecordHarvested(e.String(entity.EntrySource), 1)
	}

	logged, err := uc.Vault.Append(report.Entries)
	if err != nil {
		return nil, &TechnicalError{Code: CodeVaultAppend, Message: "failed to append harvested entries", Err: err}
	}
	out.Logged = logged

	for _, e := range report.Entries {
		email := e.String(entity.EntryEmail)
		res, err := uc.Repo.Insert(ctx, email, harvest.LocalPart(email), uc.DefaultRole, e.String(entity.EntryCompany))
		if err != nil {
			return nil, &TechnicalError{Code: CodeLeadInsert, Message: "failed to insert lead " + email, Err: err}
		}
		metrics.RecordLeadInsert(res.String())

		switch res {
		case entity.InsertResultInserted:
			out.Inserted++
		case entity.InsertResultAlreadyPresent:
			out.AlreadyPresent++
		}
	}

	log.Info("Harvest complete",
		logger.Int("fetched", out.Fetched),
		logger.Int("failed", out.Failed),
		logger.Int("harvested", out.Harvested),
		logger.Int("logged", out.Logged),
		logger.Int("inserted", out.Inserted),
		logger.Int("already_present", out.AlreadyPresent),
	)
	return out, nil
}
