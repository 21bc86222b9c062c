package rbac

// RouteRule declares the permissions required to access a route.
type RouteRule struct {
	Required []Permission
	Mode     Mode
}

// AccessEvaluator answers route access queries for a resolved role.
// Routes are opt-in to protection: a route without a registered rule is
// public unless the evaluator was built fail-closed.
type AccessEvaluator struct {
	engine     *Engine
	rules      map[string]RouteRule
	failClosed bool
}

// NewAccessEvaluator constructs an evaluator over the engine. failClosed
// inverts the default-allow posture for unregistered routes; flipping it
// changes the security posture of every undocumented route, so it is a
// deployment decision, not a per-route one.
func NewAccessEvaluator(engine *Engine, failClosed bool) *AccessEvaluator {
	return &AccessEvaluator{
		engine:     engine,
		rules:      make(map[string]RouteRule),
		failClosed: failClosed,
	}
}

// Register adds or replaces the rule for a route identifier.
func (ev *AccessEvaluator) Register(route string, rule RouteRule) {
	ev.rules[route] = rule
}

// CanAccess answers whether role may access route. While the role signal
// is still unresolved the result is Indeterminate, never a flash of
// allowed or denied content.
func (ev *AccessEvaluator) CanAccess(role Role, route string) Decision {
	rule, ok := ev.rules[route]
	if !ok {
		if ev.failClosed {
			return Denied
		}
		return Allowed
	}
	if role == RoleUnresolved {
		return Indeterminate
	}
	allowed, err := ev.engine.Evaluate(role, rule.Required, rule.Mode)
	if err != nil {
		// Unknown role reads as "not yet known", not as a hard deny.
		return Indeterminate
	}
	if allowed {
		return Allowed
	}
	return Denied
}
