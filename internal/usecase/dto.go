package usecase

import "github.com/xavierca1/ghostreach/internal/entity"

const (
	MsgNoEmailsHarvested = "No emails harvested from targets."
	MsgNoNewLeads        = "No new leads to contact."
)

type HarvestLeadsInput struct {
	RunID   string
	Targets []entity.Target
}

type HarvestLeadsOutput struct {
	RunID          string `json:"run_id"`
	Fetched        int    `json:"fetched"`
	Failed         int    `json:"failed"`
	Harvested      int    `json:"harvested"`
	Logged         int    `json:"logged"`
	Inserted       int    `json:"inserted"`
	AlreadyPresent int    `json:"already_present"`
	Msg            string `json:"msg,omitempty"`
}

type SendOutreachInput struct {
	RunID  string
	Market *entity.MarketConfig
}

type SendOutreachOutput struct {
	Pending int    `json:"pending"`
	Sent    int    `json:"sent"`
	Failed  int    `json:"failed"`
	Msg     string `json:"msg,omitempty"`
}

type RunPipelineInput struct {
	TargetsPath   string
	MarketPath    string
	RotatePersona bool
	Mutate        bool
}

type RunPipelineOutput struct {
	RunID    string              `json:"run_id"`
	Harvest  HarvestLeadsOutput  `json:"harvest"`
	Industry string              `json:"industry,omitempty"`
	Outreach *SendOutreachOutput `json:"outreach,omitempty"`
}

type MutateTemplatesOutput struct {
	Mutated int `json:"mutated"`
}
