// Package shared holds the error taxonomy for the accounting subsystem.
//
// Sentinels wrap the httpx classes so handlers can map them to problem
// responses with a single errors.Is chain: validation errors surface as 400,
// state errors as 409, missing references as 404.
package shared

import (
	"fmt"

	"github.com/meridian-erp/meridian-erp/internal/platform/httpx"
)

var (
	// ErrTooFewLines indicates less than two journal lines.
	ErrTooFewLines = fmt.Errorf("%w: journal requires at least two lines", httpx.ErrValidation)
	// ErrUnbalanced indicates debit != credit.
	ErrUnbalanced = fmt.Errorf("%w: journal lines must balance", httpx.ErrValidation)
	// ErrBothSides indicates a line carrying both a debit and a credit.
	ErrBothSides = fmt.Errorf("%w: journal line cannot be both debit and credit", httpx.ErrValidation)
	// ErrEmptyLine indicates a line with neither debit nor credit.
	ErrEmptyLine = fmt.Errorf("%w: journal line requires a debit or a credit", httpx.ErrValidation)
	// ErrNegativeAmount indicates a negative debit or credit.
	ErrNegativeAmount = fmt.Errorf("%w: journal amounts must not be negative", httpx.ErrValidation)
	// ErrAccountNotFound indicates a missing chart-of-accounts reference.
	ErrAccountNotFound = fmt.Errorf("%w: account", httpx.ErrNotFound)
	// ErrAccountInactive indicates posting against a deactivated account.
	ErrAccountInactive = fmt.Errorf("%w: account is inactive", httpx.ErrValidation)
	// ErrAccountNotLeaf indicates posting against a parent account.
	ErrAccountNotLeaf = fmt.Errorf("%w: cannot post to a parent account", httpx.ErrValidation)
	// ErrInvalidReference indicates an unknown reference kind or missing target.
	ErrInvalidReference = fmt.Errorf("%w: invalid journal reference", httpx.ErrValidation)
	// ErrEntryNotFound indicates a missing journal entry.
	ErrEntryNotFound = fmt.Errorf("%w: journal entry", httpx.ErrNotFound)
	// ErrNotDraft indicates an edit/post/delete attempt on a non-draft entry.
	ErrNotDraft = fmt.Errorf("%w: journal entry is not a draft", httpx.ErrState)
	// ErrDuplicateCode indicates a chart-of-accounts code collision.
	ErrDuplicateCode = fmt.Errorf("%w: account code already exists", httpx.ErrDuplicate)
	// ErrParentIsLeaf indicates nesting under a non-parent account.
	ErrParentIsLeaf = fmt.Errorf("%w: parent account does not accept children", httpx.ErrValidation)
	// ErrAccountInUse indicates a delete attempt on an account with journal lines.
	ErrAccountInUse = fmt.Errorf("%w: account has journal activity", httpx.ErrState)
)
