package codegen

import "strings"

// ChunkKind tags the variant held by a Chunk — the "chunk tree" IR of
// spec.md §4.7/§9: "Emit IR as a recursive variant (FfiCall, Let, Unsafe,
// Tuple, ExternCFunc, Custom, Chunks), then flatten by post-order
// traversal." Kept as an explicit sum rather than an interface hierarchy for
// the same exhaustiveness reason as model.TypeKind.
type ChunkKind int

const (
	ChunkFfiCall ChunkKind = iota
	ChunkLet
	ChunkUnsafe
	ChunkTuple
	ChunkExternCFunc
	ChunkCustom
	ChunkChunks
)

// Chunk is one node of the emission IR. Only the fields relevant to Kind
// are populated; the rest are zero.
type Chunk struct {
	Kind ChunkKind

	// FfiCall: Name is the C function identifier, Args its already-rendered
	// argument expressions.
	Name string
	Args []string

	// Let: Var is the bound name, Value the wrapped child chunk producing
	// the right-hand expression.
	Var   string
	Value *Chunk

	// Unsafe, Tuple, Chunks: Children in emission order. Tuple renders its
	// children comma-joined and parenthesized; Chunks concatenates them
	// one per line; Unsafe renders exactly like Chunks, with no marker in
	// the output (Go has no `unsafe {}` expression form, so the kind only
	// tags code that touches cgo/unsafe.Pointer within the tree).
	Children []*Chunk

	// ExternCFunc: Name is the trampoline's Go function name, written on
	// the //export line; CSignature is the function header line that
	// follows it; Body its Chunks.
	CSignature string
	Body       *Chunk

	// Custom: Text is emitted verbatim.
	Text string

	// ResultErr marks that Value's chunk needs wrapping in Go's (T, error)
	// return idiom ("error-result wrapping" of spec.md §4.7).
	ResultErr bool
}

// FfiCallChunk builds a ChunkFfiCall node.
func FfiCallChunk(name string, args ...string) *Chunk {
	return &Chunk{Kind: ChunkFfiCall, Name: name, Args: args}
}

// LetChunk builds a ChunkLet node binding varName to value.
func LetChunk(varName string, value *Chunk) *Chunk {
	return &Chunk{Kind: ChunkLet, Var: varName, Value: value}
}

// UnsafeChunk builds a ChunkUnsafe node over children; it flattens like
// ChunksChunk and writes no marker of its own.
func UnsafeChunk(children ...*Chunk) *Chunk {
	return &Chunk{Kind: ChunkUnsafe, Children: children}
}

// TupleChunk builds a ChunkTuple node over children.
func TupleChunk(children ...*Chunk) *Chunk {
	return &Chunk{Kind: ChunkTuple, Children: children}
}

// ExternCFuncChunk builds a trampoline chunk bridging a Go closure to a C
// callback signature via the //export cgo convention, per spec.md's
// Glossary "Trampoline".
func ExternCFuncChunk(name, cSignature string, body *Chunk) *Chunk {
	return &Chunk{Kind: ChunkExternCFunc, Name: name, CSignature: cSignature, Body: body}
}

// CustomChunk emits text verbatim.
func CustomChunk(text string) *Chunk {
	return &Chunk{Kind: ChunkCustom, Text: text}
}

// ChunksChunk groups children for sequential emission.
func ChunksChunk(children ...*Chunk) *Chunk {
	return &Chunk{Kind: ChunkChunks, Children: children}
}

// Flatten renders c to line-oriented Go source text in a single post-order
// pass, per spec.md §4.7: "Chunks flatten to line-oriented text in a single
// post-order pass."
func (c *Chunk) Flatten() string {
	if c == nil {
		return ""
	}
	var b strings.Builder
	c.flattenInto(&b)
	return b.String()
}

func (c *Chunk) flattenInto(b *strings.Builder) {
	switch c.Kind {
	case ChunkFfiCall:
		b.WriteString(c.Name)
		b.WriteByte('(')
		b.WriteString(strings.Join(c.Args, ", "))
		b.WriteByte(')')
	case ChunkLet:
		b.WriteString("var ")
		b.WriteString(c.Var)
		b.WriteString(" = ")
		c.Value.flattenInto(b)
		b.WriteByte('\n')
	case ChunkUnsafe:
		for _, ch := range c.Children {
			ch.flattenInto(b)
			b.WriteByte('\n')
		}
	case ChunkTuple:
		b.WriteByte('(')
		for i, ch := range c.Children {
			if i > 0 {
				b.WriteString(", ")
			}
			ch.flattenInto(b)
		}
		b.WriteByte(')')
	case ChunkExternCFunc:
		b.WriteString("//export ")
		b.WriteString(c.Name)
		b.WriteByte('\n')
		b.WriteString(c.CSignature)
		b.WriteString(" {\n")
		if c.Body != nil {
			c.Body.flattenInto(b)
		}
		b.WriteString("}\n")
	case ChunkCustom:
		b.WriteString(c.Text)
	case ChunkChunks:
		for _, ch := range c.Children {
			ch.flattenInto(b)
			b.WriteByte('\n')
		}
	}
	if c.ResultErr {
		b.WriteString(", err")
	}
}
