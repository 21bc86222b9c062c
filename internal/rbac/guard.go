package rbac

// RoleContext resolves the caller's role from the external user_role
// signal. It is an explicit dependency, constructed once and injected
// wherever a role needs resolving; nothing in this package reads ambient
// process-wide state.
type RoleContext struct {
	fallback Role
}

// NewRoleContext builds a resolver with an optional fallback role applied
// when the signal is absent or garbage. Pass RoleUnresolved to keep
// unresolved signals unresolved. The fallback exists for deployments that
// want a default surface; it should be the least-privileged role, never
// super_admin.
func NewRoleContext(fallback Role) RoleContext {
	return RoleContext{fallback: fallback}
}

// Resolve parses a raw signal value. Malformed values are recovered
// locally: the result is the configured fallback (possibly
// RoleUnresolved), never an error.
func (rc RoleContext) Resolve(raw string) Role {
	role, err := ParseRole(raw)
	if err != nil {
		return rc.fallback
	}
	return role
}

// Guard exposes the three-valued capability and route checks consumed by
// rendering collaborators.
type Guard struct {
	engine *Engine
	routes *AccessEvaluator
}

// NewGuard constructs a Guard over the shared engine and route evaluator.
func NewGuard(engine *Engine, routes *AccessEvaluator) *Guard {
	return &Guard{engine: engine, routes: routes}
}

// Capability evaluates one or more permission atoms under mode.
// RoleUnresolved and unknown roles yield Indeterminate so consumers can
// suppress rendering instead of flashing denied or allowed content.
func (g *Guard) Capability(role Role, mode Mode, perms ...Permission) Decision {
	if role == RoleUnresolved {
		return Indeterminate
	}
	allowed, err := g.engine.Evaluate(role, perms, mode)
	if err != nil {
		return Indeterminate
	}
	if allowed {
		return Allowed
	}
	return Denied
}

// Route evaluates access to a route identifier with the same three-valued
// contract as Capability.
func (g *Guard) Route(role Role, route string) Decision {
	return g.routes.CanAccess(role, route)
}
