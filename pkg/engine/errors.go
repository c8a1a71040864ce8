package engine

import "fmt"

// Kind is the coarse error category. Transports can map it to a status
// code; the substring in Error() carries the specific canonical phrase
// callers match on.
type Kind string

const (
	KindValidation Kind = "validation_error"
	KindNotFound   Kind = "not_found"
	KindConflict   Kind = "conflict"
	KindPermission Kind = "permission"
	KindState      Kind = "state"
)

// Error is the engine's single error type. Sentinels below are compared
// with errors.Is via pointer identity on the underlying *Error the
// sentinel wraps.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func newErr(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func newErrf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Validation errors
var (
	ErrFullNameEmpty   = newErr(KindValidation, "Full name cannot be empty")
	ErrFullNameTooLong = newErr(KindValidation, "Full name is too long")
	ErrNicknameEmpty   = newErr(KindValidation, "Nickname cannot be empty")
	ErrNicknameTooLong = newErr(KindValidation, "Nickname is too long")
	ErrEmailEmpty      = newErr(KindValidation, "Email cannot be empty")
	ErrEmailTooLong    = newErr(KindValidation, "Email is too long")
	ErrCompanyNameEmpty = newErr(KindValidation, "Company name cannot be empty")
	ErrCompanyNameTooLong = newErr(KindValidation, "Company name is too long")
	ErrSlugEmpty       = newErr(KindValidation, "Slug cannot be empty")
	ErrSlugInvalid     = newErr(KindValidation, "Slug is invalid")
	ErrSlugTooLong     = newErr(KindValidation, "Slug is too long")
	ErrLocationEmpty   = newErr(KindValidation, "Location cannot be empty")
	ErrLocationTooLong = newErr(KindValidation, "Location is too long")
	ErrBioTooLong      = newErr(KindValidation, "Bio is too long")
	ErrKVKTooLong      = newErr(KindValidation, "KVK number is too long")
	ErrInviteCodeInvalidFormat = newErr(KindValidation, "Invite code has an invalid format")
	ErrMaxUsesTooLow   = newErr(KindValidation, "max_uses must be at least 1")
	ErrMessageTooLong  = newErr(KindValidation, "Message is too long")
	ErrChatTextEmpty   = newErr(KindValidation, "Message cannot be empty")
	ErrChatTextTooLong = newErr(KindValidation, "Message is too long")
	ErrProjectNameEmpty = newErr(KindValidation, "Project name cannot be empty")
	ErrProjectNameTooLong = newErr(KindValidation, "Project name is too long")
	ErrProjectDescriptionTooLong = newErr(KindValidation, "Project description is too long")
	ErrInvalidRole     = newErr(KindValidation, "Invalid role")
)

// Not found
var (
	ErrAccountNotFound     = newErr(KindNotFound, "Account not found")
	ErrCompanyNotFound     = newErr(KindNotFound, "Company not found")
	ErrConnectionNotFound  = newErr(KindNotFound, "Connection not found")
	ErrProjectNotFound     = newErr(KindNotFound, "Project not found")
	ErrInviteCodeInvalid   = newErr(KindNotFound, "Invalid invite code")
	ErrMembershipNotFound  = newErr(KindNotFound, "Membership not found")
	ErrNotificationNotFound = newErr(KindNotFound, "Notification not found")
)

// Conflict
var (
	ErrAccountAlreadyExists      = newErr(KindConflict, "Account already exists")
	ErrSlugTaken                 = newErr(KindConflict, "Slug is already taken")
	ErrConnectionAlreadyExists   = newErr(KindConflict, "A connection already exists between these companies")
	ErrAlreadyInvited            = newErr(KindConflict, "Company has already been invited to this project")
	ErrAlreadyMember             = newErr(KindConflict, "Already a member of this company")
	ErrColleagueAlreadyInCompany = newErr(KindConflict, "This user already belongs to a company")
)

// Permission
var (
	ErrNotPermitted            = newErr(KindPermission, "Not permitted")
	ErrOnlyOwnerCanDoThis      = newErr(KindPermission, "Only the owner can do this")
	ErrCannotChangeOwnRole     = newErr(KindPermission, "Cannot change your own role")
	ErrCannotRemoveSelf        = newErr(KindPermission, "Cannot remove yourself")
	ErrCannotConnectToSelf     = newErr(KindPermission, "Cannot connect to your own company")
	ErrCannotBlockSelf         = newErr(KindPermission, "Cannot block your own company")
	ErrCannotInviteOwnCompany  = newErr(KindPermission, "Cannot invite your own company")
	ErrCannotKickSelf          = newErr(KindPermission, "Cannot kick your own company")
	ErrOwnerCannotLeave        = newErr(KindPermission, "Owner company cannot leave")
	ErrOnlyRequesterCanCancel  = newErr(KindPermission, "Only the requesting side can cancel a request")
	ErrOnlyBlockerCanUnblock   = newErr(KindPermission, "Only the company that blocked it can unblock")
	ErrUseTransferOwnership    = newErr(KindPermission, "Use transfer_ownership to assign the Owner role")
	ErrOnlyOwnerCompanyCanInvite = newErr(KindPermission, "Only the owner company can invite")
	ErrTargetAtOrAboveCaller   = newErr(KindPermission, "You do not have permission to change this member's role")
)

// State
var (
	ErrNotPending          = newErr(KindState, "Connection is not pending")
	ErrBlockedConnection   = newErr(KindState, "Cannot chat on a blocked connection")
	ErrNoPendingInvite     = newErr(KindState, "No pending invite for this project")
	ErrNoAcceptedConnection = newErr(KindState, "Inviting this company requires an accepted connection")
	ErrConnectionNotAccepted = newErr(KindState, "Connection is not active")
	ErrConnectionNotBlocked = newErr(KindState, "Connection is not blocked")
	ErrNotAcceptedMember    = newErr(KindState, "Your company is not an accepted member of this project")
	ErrTargetNotInCompany   = newErr(KindState, "Target is not in your company")
	ErrTargetIsPending      = newErr(KindState, "Target membership is pending")
)
