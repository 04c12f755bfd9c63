package model

// TypeKind tags the variant held by a Type. Kept as an explicit sum rather
// than an interface hierarchy so match sites over it stay exhaustive —
// see the "Sum types over polymorphism" design note.
type TypeKind int

const (
	KindBasic TypeKind = iota
	KindAlias
	KindEnumeration
	KindBitfield
	KindRecord
	KindUnion
	KindClass
	KindInterface
	KindFunction
	KindContainer
	KindCustom
)

func (k TypeKind) String() string {
	switch k {
	case KindBasic:
		return "Basic"
	case KindAlias:
		return "Alias"
	case KindEnumeration:
		return "Enumeration"
	case KindBitfield:
		return "Bitfield"
	case KindRecord:
		return "Record"
	case KindUnion:
		return "Union"
	case KindClass:
		return "Class"
	case KindInterface:
		return "Interface"
	case KindFunction:
		return "Function"
	case KindContainer:
		return "Container"
	case KindCustom:
		return "Custom"
	default:
		return "Unknown"
	}
}

// MemberStatus is the configured generation status of an enum/bitfield
// member, propagated during post-processing pass 9.
type MemberStatus int

const (
	StatusGenerate MemberStatus = iota
	StatusManual
	StatusIgnore
)

// Member is one value of an Enumeration or Bitfield.
type Member struct {
	Name          string
	CIdentifier   string
	Value         int64
	Status        MemberStatus
	Version       string
	Deprecated    string
}

// ErrorDomain links an Enumeration to the function that produces its GQuark,
// rewritten in place by post-processing pass 8.
type ErrorDomain struct {
	// Quark is the raw GQuark name as it appeared in the GIR (e.g. "g-foo-error")
	// before the owning function was located.
	Quark string
	// Function is the fully resolved accessor function, set once pass 8 runs.
	Function string
}

// Field is one member of a Record, Union or Class instance struct.
type Field struct {
	Name        string
	TypeID      TypeID
	CType       string
	Private     bool
	// Bits is non-zero for C bitfield struct members.
	Bits int
}

// ClassRecord links a Class to its vtable/type-struct Record, satisfying the
// invariant that gtype_struct_for and the class's class-record pointer are
// mutual.
type ClassRecord struct {
	RecordID TypeID
}

// Property describes a GObject property on a Class or Interface.
type Property struct {
	Name       string
	TypeID     TypeID
	Readable   bool
	Writable   bool
	Construct  bool
	ConstructOnly bool
	Nullable   bool
}

// Signal describes a GObject signal on a Class or Interface as declared in
// the GIR. Property-change signals are not added here; analysis records
// them only as each PropertyInfo's NotifySignal name.
type Signal struct {
	Name   string
	Params []Parameter
	Return Parameter
}

// Type is a tagged union over every kind of GIR-described entity. A Type
// lives in exactly one Namespace's slot vector; nothing else owns one.
type Type struct {
	Kind TypeKind
	Name string

	// Version/Deprecated are shared across every non-Basic variant.
	Version    string
	Deprecated string
	CType      string

	// Alias
	AliasTarget TypeID
	AliasCType  string

	// Enumeration / Bitfield
	Members     []Member
	ErrorDomain *ErrorDomain
	// Functions common to Enumeration, Bitfield, Record, Union, Class,
	// Interface, and the Namespace's free-function list.
	Functions []TypeID

	// Record / Union / Class instance fields
	Fields []Field

	// Record
	GLibGetType    string
	GTypeStructFor TypeID
	HasGTypeStructFor bool
	Opaque         bool // set by post-processing pass 6

	// Class
	VirtualMethods []TypeID
	Signals        []Signal
	Properties     []Property
	Parent         TypeID
	HasParent      bool
	Implements     []TypeID
	ClassRecordID  TypeID
	HasClassRecord bool
	FinalType      bool
	Abstract       bool
	Fundamental    bool
	RefFunction    string
	UnrefFunction  string
	Subclasses     []TypeID // populated by post-processing for final-type detection

	// Interface
	Prerequisites []TypeID

	// Function
	FunctionInfo *FunctionType

	// Container: CArray(T), FixedArray(T,n), List(T), SList(T), PtrArray(T),
	// HashTable(K,V), Array(T).
	Container *ContainerType

	// Custom: the parser records each GIR <constant> with this kind, its
	// value type in AliasTarget and its literal value in CustomSource.
	CustomSource string

	// Removed marks a Function type pulled out of normal emission after
	// being consumed elsewhere — currently only the quark-accessor function
	// rewritten into an ErrorDomain by post-processing pass 8, which must
	// not also be emitted as an ordinary free function.
	Removed bool
}

// FunctionType is the Function variant's payload; see Function in function.go
// for the richer standalone record used by namespaces/classes directly. This
// embeds the same shape so a Function can itself be referenced as a Type
// (e.g. callback typedefs).
type FunctionType struct {
	Function
}

// ContainerKind enumerates the anonymous container shapes the parser interns.
type ContainerKind int

const (
	ContainerCArray ContainerKind = iota
	ContainerFixedArray
	ContainerList
	ContainerSList
	ContainerPtrArray
	ContainerHashTable
	ContainerArray
)

// ContainerType is the payload of a Container type.
type ContainerType struct {
	Kind     ContainerKind
	Elem     TypeID
	Key      TypeID // HashTable only
	FixedLen int    // FixedArray only
}

// CanonicalKey returns the textual key the parser interns containers under,
// so two uses of e.g. List<GObject.Object> resolve to one TypeID.
func (c *ContainerType) CanonicalKey(nameOf func(TypeID) string) string {
	switch c.Kind {
	case ContainerCArray:
		return "CArray<" + nameOf(c.Elem) + ">"
	case ContainerFixedArray:
		return "FixedArray<" + nameOf(c.Elem) + "," + itoa(c.FixedLen) + ">"
	case ContainerList:
		return "List<" + nameOf(c.Elem) + ">"
	case ContainerSList:
		return "SList<" + nameOf(c.Elem) + ">"
	case ContainerPtrArray:
		return "PtrArray<" + nameOf(c.Elem) + ">"
	case ContainerHashTable:
		return "HashTable<" + nameOf(c.Key) + "," + nameOf(c.Elem) + ">"
	case ContainerArray:
		return "Array<" + nameOf(c.Elem) + ">"
	default:
		return "?"
	}
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
