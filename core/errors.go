package core

import "errors"

// Error taxonomy spec §7 defines: short strings surfaced to the client and
// logged at warn level. Every error path here leaves core state unchanged.
var (
	ErrPlayerNotExist             = errors.New("player_doesn't_exist")
	ErrOnlyClientsCanRequest      = errors.New("only_clients_can_request")
	ErrCannotChangeAliasWhileAlive = errors.New("cannot_change_alias_while_alive")
	ErrInvalidFPS                 = errors.New("invalid_fps")
	ErrTraceTooLong               = errors.New("trace_too_long")
	ErrTooManyTraces              = errors.New("too_many_traces")
)
