package usecase

import "errors"

// DomainError is a failure caused by the inputs of a run: bad targets, a
// template that references an unknown field.
type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

func IsDomainError(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}

// TechnicalError is a failure of the store, the log or the transport.
type TechnicalError struct {
	Code    string
	Message string
	Err     error
}

func (e *TechnicalError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *TechnicalError) Unwrap() error {
	return e.Err
}

func IsTechnicalError(err error) bool {
	var te *TechnicalError
	return errors.As(err, &te)
}

const (
	CodeInvalidTargets   = "INVALID_TARGETS"
	CodeTemplateRender   = "TEMPLATE_RENDER_FAILED"
	CodeConfigLoad       = "CONFIG_LOAD_FAILED"
	CodeConfigSave       = "CONFIG_SAVE_FAILED"
	CodeVaultAppend      = "VAULT_APPEND_FAILED"
	CodeLeadInsert       = "LEAD_INSERT_FAILED"
	CodeLeadFetch        = "LEAD_FETCH_FAILED"
	CodeLeadStatusUpdate = "LEAD_STATUS_UPDATE_FAILED"
)
