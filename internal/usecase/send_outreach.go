package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/xavierca1/ghostreach/internal/entity"
	"github.com/xavierca1/ghostreach/internal/logger"
	"github.com/xavierca1/ghostreach/internal/metrics"
	"github.com/xavierca1/ghostreach/internal/templating"
)

type SendOutreachUseCase struct {
	Repo    LeadRepository
	Sender  Sender
	Subject string
	log     logger.Logger
	now     func() time.Time
}

func NewSendOutreachUseCase(repo LeadRepository, sender Sender, subject string, log logger.Logger) *SendOutreachUseCase {
	return &SendOutreachUseCase{
		Repo:    repo,
		Sender:  sender,
		Subject: subject,
		log:     log,
		now:     time.Now,
	}
}

// Execute sends one message to every new lead. A lead is marked contacted as
// soon as its message is accepted by the sender; a send failure leaves it new
// for the next run. A template that cannot be rendered aborts the run.
func (uc *SendOutreachUseCase) Execute(ctx context.Context, input SendOutreachInput) (*SendOutreachOutput, error) {
	log := uc.log
	if input.RunID != "" {
		log = log.With(logger.String("run_id", input.RunID))
	}

	leads, err := uc.Repo.FetchByStatus(ctx, entity.LeadStatusNew)
	if err != nil {
		return nil, &TechnicalError{Code: CodeLeadFetch, Message: "failed to fetch new leads", Err: err}
	}

	out := &SendOutreachOutput{Pending: len(leads)}
	if len(leads) == 0 {
		out.Msg = MsgNoNewLeads
		log.Info(MsgNoNewLeads)
		return out, nil
	}

	for _, lead := range leads {
		msg, err := uc.compose(lead, input)
		if err != nil {
			return out, &DomainError{Code: CodeTemplateRender, Message: "failed to render message for " + lead.Email, Err: err}
		}

		if err := uc.Sender.Send(ctx, msg); err != nil {
			out.Failed++
			metrics.RecordMessage("failed")
			log.Warn("Send failed, lead stays new",
				logger.Int64("lead_id", lead.ID),
				logger.String("email", lead.Email),
				logger.Error(err),
			)
			continue
		}

		if err := uc.Repo.UpdateStatus(ctx, []int64{lead.ID}, entity.LeadStatusContacted); err != nil {
			return out, &TechnicalError{Code: CodeLeadStatusUpdate, Message: "failed to mark lead contacted", Err: err}
		}
		out.Sent++
		metrics.RecordMessage("sent")
		log.Debug("Lead contacted", logger.Int64("lead_id", lead.ID), logger.String("message_id", msg.ID))
	}

	log.Info("Outreach complete",
		logger.Int("pending", out.Pending),
		logger.Int("sent", out.Sent),
		logger.Int("failed", out.Failed),
	)
	return out, nil
}

func (uc *SendOutreachUseCase) compose(lead entity.Lead, input SendOutreachInput) (entity.OutreachMessage, error) {
	fields := templating.Fields(lead, input.Market)

	body, err := templating.Render(templating.TemplateFor(lead, input.Market), fields)
	if err != nil {
		return entity.OutreachMessage{}, err
	}

	var subject string
	if uc.Subject != "" {
		if subject, err = templating.Render(uc.Subject, fields); err != nil {
			return entity.OutreachMessage{}, err
		}
	}

	return entity.OutreachMessage{
		ID:        uuid.NewString(),
		RunID:     input.RunID,
		LeadID:    lead.ID,
		To:        lead.Email,
		Name:      lead.Name,
		Company:   lead.Company,
		Subject:   subject,
		Body:      body,
		CreatedAt: uc.now().UTC(),
	}, nil
}
