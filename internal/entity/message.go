package entity

import "time"

// OutreachMessage is a rendered message ready for a sender.
type OutreachMessage struct {
	ID        string    `json:"id"`
	RunID     string    `json:"run_id,omitempty"`
	LeadID    int64     `json:"lead_id"`
	To        string    `json:"to"`
	Name      string    `json:"name,omitempty"`
	Company   string    `json:"company,omitempty"`
	Subject   string    `json:"subject,omitempty"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}
