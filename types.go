package main

// Type is the static type of an expression.
type Type string

const (
	TypeUndefined  Type = "undefined"
	TypePixel      Type = "pixel"
	TypePercentage Type = "percentage"
	TypeScalar     Type = "scalar"
	TypeColor      Type = "color"
	TypeBool       Type = "bool"
)

// LiteralType returns the intrinsic type of a literal.
func LiteralType(lit *Literal) Type {
	switch lit.Kind {
	case LiteralPixel:
		return TypePixel
	case LiteralPercentage:
		return TypePercentage
	case LiteralScalar:
		return TypeScalar
	case LiteralColor:
		return TypeColor
	case LiteralBool:
		return TypeBool
	default:
		return TypeUndefined
	}
}

// IsDimension reports whether t is accepted by width and height.
func IsDimension(t Type) bool {
	return t == TypePixel || t == TypePercentage
}

// propertyTypes lists the value types each recognised property accepts.
var propertyTypes = map[string][]Type{
	PropertyColor:           {TypeColor},
	PropertyBackgroundColor: {TypeColor},
	PropertyWidth:           {TypePixel, TypePercentage},
	PropertyHeight:          {TypePixel, TypePercentage},
}

// IsKnownProperty reports whether name is one of the recognised properties.
func IsKnownProperty(name string) bool {
	_, ok := propertyTypes[name]
	return ok
}

// PropertyAccepts reports whether property accepts a value of type t.
// Unknown properties accept nothing.
func PropertyAccepts(property string, t Type) bool {
	for _, allowed := range propertyTypes[property] {
		if allowed == t {
			return true
		}
	}
	return false
}

// describeTypes renders the accepted types of a property for messages,
// e.g. "pixel or percentage".
func describeTypes(property string) string {
	types := propertyTypes[property]
	result := ""
	for i, t := range types {
		if i > 0 {
			result += " or "
		}
		result += string(t)
	}
	return result
}
