package main

import "strconv"

// TypeKind is the structural tag of a Type.
type TypeKind int

const (
	KindNumber TypeKind = iota
	KindString
	KindBoolean
	KindNull
	KindUndefined
	KindUnknown
	KindMixed // element type of a non-homogeneous array literal
	KindArray
	KindObject
)

var kindNames = [...]string{
	KindNumber:    "number",
	KindString:    "string",
	KindBoolean:   "boolean",
	KindNull:      "null",
	KindUndefined: "undefined",
	KindUnknown:   "unknown",
	KindMixed:     "mixed",
	KindArray:     "array",
	KindObject:    "object",
}

func (k TypeKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "TypeKind(" + strconv.Itoa(int(k)) + ")"
}

// Type is a structural type. Elem and Size are only meaningful for arrays.
type Type struct {
	Kind TypeKind
	Elem *Type

	// Size is the element count captured at the declaration site. It is
	// only checked against literal indexes.
	Size      int
	SizeKnown bool
}

// Scalar types are shared.
var (
	TypeNumber    = &Type{Kind: KindNumber}
	TypeString    = &Type{Kind: KindString}
	TypeBoolean   = &Type{Kind: KindBoolean}
	TypeNull      = &Type{Kind: KindNull}
	TypeUndefined = &Type{Kind: KindUndefined}
	TypeUnknown   = &Type{Kind: KindUnknown}
	TypeMixed     = &Type{Kind: KindMixed}
	TypeObject    = &Type{Kind: KindObject}
)

// ArrayOf returns array<elem> with a known size.
func ArrayOf(elem *Type, size int) *Type {
	return &Type{Kind: KindArray, Elem: elem, Size: size, SizeKnown: true}
}

// BaseType returns the type's tag with array sizes stripped, e.g.
// "array<number>".
func (t *Type) BaseType() string {
	if t.Kind == KindArray {
		return "array<" + t.Elem.BaseType() + ">"
	}
	return t.Kind.String()
}

// String returns the base type followed by the array size, if known, e.g.
// "array<number>[3]".
func (t *Type) String() string {
	if t.Kind == KindArray && t.SizeKnown {
		return t.BaseType() + "[" + strconv.Itoa(t.Size) + "]"
	}
	return t.BaseType()
}

func (t *Type) IsUnknown() bool {
	return t.Kind == KindUnknown
}

// IsReference reports whether values of the type live on the heap.
func (t *Type) IsReference() bool {
	switch t.Kind {
	case KindString, KindArray, KindObject, KindNull, KindUndefined:
		return true
	default:
		return false
	}
}

// JSTypeName is the result of typeof for a value of this static type.
// Unknown values are numeric at runtime.
func (t *Type) JSTypeName() string {
	switch t.Kind {
	case KindString:
		return "string"
	case KindBoolean:
		return "boolean"
	case KindUndefined:
		return "undefined"
	case KindNull, KindArray, KindObject:
		return "object"
	default:
		return "number"
	}
}

// TypesEqual compares two types including array sizes.
func TypesEqual(a, b *Type) bool {
	if a.Kind != b.Kind {
		return false
	}
	if a.Kind == KindArray {
		return a.SizeKnown == b.SizeKnown && a.Size == b.Size && TypesEqual(a.Elem, b.Elem)
	}
	return true
}

// BaseTypesEqual compares two types ignoring array sizes.
func BaseTypesEqual(a, b *Type) bool {
	return a.BaseType() == b.BaseType()
}
