package model

// FunctionKind tags what role a Function plays on its owner.
type FunctionKind int

const (
	FuncConstructor FunctionKind = iota
	FuncMethod
	FuncFunction
	FuncGlobal
	FuncClassMethod
	FuncVirtualMethod
)

func (k FunctionKind) String() string {
	switch k {
	case FuncConstructor:
		return "constructor"
	case FuncMethod:
		return "method"
	case FuncFunction:
		return "function"
	case FuncGlobal:
		return "global"
	case FuncClassMethod:
		return "class-method"
	case FuncVirtualMethod:
		return "virtual-method"
	default:
		return "?"
	}
}

// Function describes one callable: a free function, method, constructor,
// class method, virtual method, or callback type.
type Function struct {
	Name       string
	CIdentifier string
	Kind       FunctionKind

	// Parameters is in GIR order; at most Parameters[0] has
	// InstanceParameter true, and only for Method/VirtualMethod.
	Parameters []Parameter
	Return     Parameter

	Throws bool

	Version    string
	Deprecated string

	// InstanceParameterSet caches whether Parameters[0] is the instance
	// parameter, since the invariant is "first parameter only". It is
	// exported so the flag survives a JSON round trip of the Library.
	InstanceParameterSet bool
}

// InstanceParameter reports whether f has an instance parameter and, if so,
// returns it and true.
func (f *Function) InstanceParameter() (Parameter, bool) {
	if !f.InstanceParameterSet || len(f.Parameters) == 0 {
		return Parameter{}, false
	}
	return f.Parameters[0], true
}

// MarkInstanceParameter records that Parameters[0] is the instance
// parameter. It is invalid to call this for anything but Method or
// VirtualMethod; callers enforce that during parsing.
func (f *Function) MarkInstanceParameter() {
	f.InstanceParameterSet = true
}

// HasInstanceParameter reports the cached instance-parameter flag without
// needing Parameters to be non-empty (used by validators before parameters
// are fully populated).
func (f *Function) HasInstanceParameter() bool { return f.InstanceParameterSet }

// ErrorParameterIndex returns the index of the synthesized IsError
// parameter when Throws is true, and -1 otherwise. By invariant this is
// always the last parameter.
func (f *Function) ErrorParameterIndex() int {
	if !f.Throws || len(f.Parameters) == 0 {
		return NoIndex
	}
	last := f.Parameters[len(f.Parameters)-1]
	if last.IsError {
		return len(f.Parameters) - 1
	}
	return NoIndex
}
