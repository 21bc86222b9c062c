package rbac

// Engine is the single evaluation primitive behind every guard and route
// check. Centralizing the set algebra here keeps permission logic from
// diverging across call sites.
type Engine struct {
	catalog *Catalog
}

// NewEngine constructs an Engine over the given catalog.
func NewEngine(catalog *Catalog) *Engine {
	return &Engine{catalog: catalog}
}

// Evaluate reports whether role satisfies the required permission set
// under mode. An empty required set evaluates to true for both modes;
// callers must not pass an empty set expecting a deny. The check is pure
// and performs no I/O.
func (e *Engine) Evaluate(role Role, required []Permission, mode Mode) (bool, error) {
	granted, err := e.catalog.grantSet(role)
	if err != nil {
		return false, err
	}
	if len(required) == 0 {
		return true, nil
	}
	switch mode {
	case All:
		for _, p := range required {
			if _, ok := granted[p]; !ok {
				return false, nil
			}
		}
		return true, nil
	default:
		for _, p := range required {
			if _, ok := granted[p]; ok {
				return true, nil
			}
		}
		return false, nil
	}
}
