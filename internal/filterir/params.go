package filterir

import "strconv"

// ParamPrefix is the fixed prefix for generated parameter names. Names are
// the prefix plus the map size at bind time, so they are unique within one
// compilation and stable across runs.
const ParamPrefix = "filter_param_"

// Params is the parameter map produced by one compilation: generated
// parameter name to bound constant. It is append-only; entries are never
// removed or modified, and iteration order is insertion order (the order
// the fragment references them).
//
// A Params must not be shared across concurrent compilations. The caller
// owns it after the compilation returns.
type Params struct {
	names  []string
	values map[string]Value
}

// NewParams returns an empty parameter map.
func NewParams() *Params {
	return &Params{values: make(map[string]Value)}
}

// Bind adds v under a freshly generated name and returns that name.
func (p *Params) Bind(v Value) string {
	name := ParamPrefix + strconv.Itoa(len(p.names))
	p.names = append(p.names, name)
	p.values[name] = v
	return name
}

// Names returns the generated names in insertion order.
func (p *Params) Names() []string {
	out := make([]string, len(p.names))
	copy(out, p.names)
	return out
}

// Value returns the constant bound under name.
func (p *Params) Value(name string) (Value, bool) {
	v, ok := p.values[name]
	return v, ok
}

// Len returns the number of bound parameters.
func (p *Params) Len() int {
	return len(p.names)
}
