package services

import "errors"

// Sentinel errors returned by the roster and kinship services.
var (
	ErrMemberNotFound  = errors.New("member not found")
	ErrDuplicateMember = errors.New("member already exists")
	ErrSelfLink        = errors.New("member cannot be linked to themselves")
	ErrInvalidMember   = errors.New("invalid member")
)
