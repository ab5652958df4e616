package handler

import (
	id "bureau/pkg/domain"
	dErrors "bureau/pkg/domain-errors"
)

// HTTP Request DTOs - contain JSON tags for API serialization.

// maxBatchAccounts bounds a single batch score lookup.
const maxBatchAccounts = 100

type UpdateProfileRequest struct {
	Transactions   uint64 `json:"transactions"`
	Volume         uint64 `json:"volume"`
	AccountAgeDays uint64 `json:"account_age_days"`
}

type RecordPaymentRequest struct {
	Amount uint64 `json:"amount"`
	// OnTime is required; a pointer distinguishes false from absent.
	OnTime *bool `json:"on_time"`
}

func (r *RecordPaymentRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	if r.OnTime == nil {
		return dErrors.New(dErrors.CodeValidation, "on_time is required")
	}
	return nil
}

type ScoreBatchRequest struct {
	Accounts []string `json:"accounts"`
}

func (r *ScoreBatchRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	if len(r.Accounts) == 0 {
		return dErrors.New(dErrors.CodeValidation, "accounts is required")
	}
	if len(r.Accounts) > maxBatchAccounts {
		return dErrors.New(dErrors.CodeValidation, "too many accounts in batch")
	}
	for _, raw := range r.Accounts {
		if _, err := id.ParseAccountID(raw); err != nil {
			return dErrors.New(dErrors.CodeValidation, "invalid account id: "+raw)
		}
	}
	return nil
}

// AccountIDs returns the parsed accounts. Call after Validate.
func (r *ScoreBatchRequest) AccountIDs() []id.AccountID {
	accounts := make([]id.AccountID, 0, len(r.Accounts))
	for _, raw := range r.Accounts {
		accounts = append(accounts, id.AccountID(raw))
	}
	return accounts
}
