package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrNotFound           = errors.New("not found")
	ErrIllegalTransition  = errors.New("illegal placement transition")
	ErrNotTrackable       = errors.New("placement does not accept exposure")
	ErrInsufficientBudget = errors.New("insufficient budget")
)

// ServiceKind names the generative task an AI call serves.
type ServiceKind string

const (
	ServiceContent      ServiceKind = "content"
	ServiceMatching     ServiceKind = "matching"
	ServiceGeneration   ServiceKind = "generation"
	ServiceEmbedding    ServiceKind = "embedding"
	ServiceVariation    ServiceKind = "variation"
	ServiceQuality      ServiceKind = "quality"
	ServiceCompliance   ServiceKind = "compliance"
	ServiceRequirements ServiceKind = "requirements"
)

// AI service error codes.
const (
	CodeInvalidInput       = "INVALID_INPUT"
	CodeTimeout            = "TIMEOUT"
	CodeCancelled          = "CANCELLED"
	CodeRateLimited        = "RATE_LIMITED"
	CodeUpstream           = "UPSTREAM_ERROR"
	CodeRejected           = "REQUEST_REJECTED"
	CodeCallFailed         = "CALL_FAILED"
	CodeInvalidResponse    = "INVALID_RESPONSE"
	CodeMaxRetriesExceeded = "MAX_RETRIES_EXCEEDED"
)

// AIServiceError is a classified failure of the generative collaborator.
type AIServiceError struct {
	Service   ServiceKind
	Code      string
	Message   string
	Retryable bool
	Err       error
}

func (e *AIServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("ai %s: %s: %s: %v", e.Service, e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("ai %s: %s: %s", e.Service, e.Code, e.Message)
}

func (e *AIServiceError) Unwrap() error { return e.Err }

// Is lets errors.Is match ErrInvalidInput for input validation failures.
func (e *AIServiceError) Is(target error) bool {
	return target == ErrInvalidInput && e.Code == CodeInvalidInput
}

// ComplianceViolation aborts ad generation for a single campaign.
type ComplianceViolation struct {
	CampaignID string
	Result     ComplianceResult
}

func (e *ComplianceViolation) Error() string {
	return fmt.Sprintf("campaign %s: ad copy not compliant (%s): %v", e.CampaignID, e.Result.Severity, e.Result.Violations)
}

// Ledger error codes.
const (
	LedgerInsufficientBudget = "INSUFFICIENT_BUDGET"
	LedgerTransactionFailed  = "TRANSACTION_FAILED"
	LedgerUnavailable        = "UNAVAILABLE"
)

// LedgerError reports a settlement that did not commit.
type LedgerError struct {
	Code    string
	Message string
	Err     error
}

func (e *LedgerError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("ledger %s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("ledger %s: %s", e.Code, e.Message)
}

func (e *LedgerError) Unwrap() error { return e.Err }

func (e *LedgerError) Is(target error) bool {
	return target == ErrInsufficientBudget && e.Code == LedgerInsufficientBudget
}
