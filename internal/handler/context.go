package handler

type ContextKey string

var (
	RoleCtxKey  ContextKey = "role"
	SubCtxKey   ContextKey = "sub"
	EmailCtxKey ContextKey = "email"
	JobCtxKey   ContextKey = "job"
)
