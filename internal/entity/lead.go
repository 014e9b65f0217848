package entity

import (
	"context"
	"errors"
	"fmt"
)

type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "new"
	LeadStatusContacted LeadStatus = "contacted"
)

var (
	ErrInvalidStatus           = errors.New("invalid lead status")
	ErrInvalidStatusTransition = errors.New("lead status can only move from new to contacted")
	ErrEmailRequired           = errors.New("email is required")
)

// ParseLeadStatus accepts the two known states, case-sensitive like the column.
func ParseLeadStatus(s string) (LeadStatus, error) {
	switch LeadStatus(s) {
	case LeadStatusNew, LeadStatusContacted:
		return LeadStatus(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

// Lead is a deduplicated contact keyed by email.
type Lead struct {
	ID      int64      `json:"id" db:"id"`
	Email   string     `json:"email" db:"email"`
	Name    string     `json:"name,omitempty" db:"name"`
	Role    string     `json:"role,omitempty" db:"role"`
	Company string     `json:"company,omitempty" db:"company"`
	Status  LeadStatus `json:"status" db:"status"`
}

// InsertResult tells the caller whether an insert created a lead or hit an
// existing email.
type InsertResult int

const (
	InsertResultInserted InsertResult = iota + 1
	InsertResultAlreadyPresent
)

func (r InsertResult) String() string {
	switch r {
	case InsertResultInserted:
		return "inserted"
	case InsertResultAlreadyPresent:
		return "already-present"
	default:
		return "unknown"
	}
}

type LeadRepositoryInterface interface {
	Insert(ctx context.Context, email, name, role, company string) (InsertResult, error)
	FetchByStatus(ctx context.Context, status LeadStatus) ([]Lead, error)
	UpdateStatus(ctx context.Context, ids []int64, status LeadStatus) error
	CountByStatus(ctx context.Context) (map[LeadStatus]int, error)
}
