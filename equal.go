package jsvalue

// Equal reports whether a and b are structurally equal: same variant and
// equal payloads.  Object fields are compared in order, numbers by value.
// Two nil values are equal.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(b)
}

func (Null) Equal(v Value) bool {
	_, ok := v.(Null)
	return ok
}

func (Undefined) Equal(v Value) bool {
	_, ok := v.(Undefined)
	return ok
}

func (b Boolean) Equal(v Value) bool {
	w, ok := v.(Boolean)
	return ok && b == w
}

func (n Number) Equal(v Value) bool {
	w, ok := v.(Number)
	return ok && n.d.Equal(w.d)
}

func (s String) Equal(v Value) bool {
	w, ok := v.(String)
	return ok && s == w
}

func (a Array) Equal(v Value) bool {
	w, ok := v.(Array)
	if !ok || len(a.elems) != len(w.elems) {
		return false
	}
	for i, x := range a.elems {
		if !x.Equal(w.elems[i]) {
			return false
		}
	}
	return true
}

func (o Object) Equal(v Value) bool {
	w, ok := v.(Object)
	if !ok || len(o.fields) != len(w.fields) {
		return false
	}
	for i, f := range o.fields {
		g := w.fields[i]
		if f.Name != g.Name || !f.Value.Equal(g.Value) {
			return false
		}
	}
	return true
}
