package cli

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/xavierca1/ghostreach/internal/config"
	"github.com/xavierca1/ghostreach/internal/infra/database"
	"github.com/xavierca1/ghostreach/internal/infra/harvest"
	"github.com/xavierca1/ghostreach/internal/infra/mail"
	"github.com/xavierca1/ghostreach/internal/infra/queue"
	"github.com/xavierca1/ghostreach/internal/infra/vault"
	"github.com/xavierca1/ghostreach/internal/templating"
	"github.com/xavierca1/ghostreach/internal/usecase"
)

func (a *app) openStore(ctx context.Context) (*sqlx.DB, *database.LeadRepository, error) {
	db, err := database.NewDBConnection(a.settings.DB)
	if err != nil {
		return nil, nil, err
	}
	repo, err := database.NewLeadRepository(ctx, db)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	return db, repo, nil
}

func (a *app) newVault() *vault.AppendLog {
	return vault.NewAppendLog(a.settings.Vault, a.log)
}

func (a *app) newHarvester() *harvest.Harvester {
	return harvest.NewHarvester(a.settings.FetchTimeout, a.log, harvest.WithUserAgent(a.settings.UserAgent))
}

func (a *app) newEmailSender() *mail.EmailSender {
	smtp := a.settings.SMTP
	return mail.NewEmailSender(smtp.Host, smtp.Port, smtp.User, smtp.Password, smtp.From)
}

// newSender builds the configured sender. The returned func releases
// whatever the sender holds open.
func (a *app) newSender() (usecase.Sender, func(), error) {
	switch a.settings.Sender {
	case config.SenderSMTP:
		return a.newEmailSender(), func() {}, nil
	case config.SenderAMQP:
		rabbit, err := queue.NewRabbitMQ(a.settings.AMQP.URL)
		if err != nil {
			return nil, nil, err
		}
		return queue.NewProducer(rabbit.Ch), func() { rabbit.Close() }, nil
	case config.SenderLog:
		return mail.NewLogSender(a.log), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown sender %q", a.settings.Sender)
	}
}

func (a *app) newHarvestUseCase(repo usecase.LeadRepository) *usecase.HarvestLeadsUseCase {
	return usecase.NewHarvestLeadsUseCase(a.newHarvester(), a.newVault(), repo, a.settings.DefaultRole, a.log)
}

func (a *app) newSendUseCase(repo usecase.LeadRepository, sender usecase.Sender) *usecase.SendOutreachUseCase {
	return usecase.NewSendOutreachUseCase(repo, sender, a.settings.SMTP.Subject, a.log)
}

func (a *app) newMutateUseCase(rng *rand.Rand) *usecase.MutateTemplatesUseCase {
	return usecase.NewMutateTemplatesUseCase(templating.NewMutator(templating.DefaultSynonyms, rng), a.log)
}

func (a *app) newPipeline(repo usecase.LeadRepository, sender usecase.Sender) *usecase.RunPipelineUseCase {
	rng := newRand()
	return usecase.NewRunPipelineUseCase(
		a.newHarvestUseCase(repo),
		a.newSendUseCase(repo, sender),
		a.newMutateUseCase(rng),
		rng,
		a.log,
	)
}

func newRand() *rand.Rand {
	return rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), rand.Uint64()))
}
