package entity

import (
	"strings"
	"time"
)

// Entry is one line of the append log. The shape is open: harvested entries
// use the Entry* keys below but anything JSON-encodable is accepted.
// Entries read back from the log carry encoding/json's decoded types: numbers
// come back as float64, objects as map[string]any and arrays as []any.
type Entry map[string]any

const (
	EntryTimestamp = "timestamp"
	EntryRunID     = "run_id"
	EntrySource    = "source"
	EntryEmail     = "email"
	EntryDomain    = "domain"
	EntryCompany   = "company"
	EntryRole      = "role"
	EntryCategory  = "category"
	EntryPrice     = "price"
	EntryScore     = "score"
)

// String returns the value under key when it is a string.
func (e Entry) String(key string) string {
	s, _ := e[key].(string)
	return s
}

// NewHarvestEntry builds the entry recorded for one extracted address.
func NewHarvestEntry(target Target, email string, score float64, company string, at time.Time) Entry {
	domain := ""
	if i := strings.LastIndex(email, "@"); i >= 0 {
		domain = email[i+1:]
	}
	return Entry{
		EntryTimestamp: at.UTC().Format(time.RFC3339),
		EntrySource:    target.DisplayLabel(),
		EntryEmail:     email,
		EntryDomain:    domain,
		EntryCompany:   company,
		EntryCategory:  target.Category(),
		EntryPrice:     target.Price,
		EntryScore:     score,
	}
}
