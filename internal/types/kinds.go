package types

// KeywordKind enumerates the primitive keyword types of the language.
type KeywordKind int

const (
	KwAny KeywordKind = iota
	KwUnknown
	KwNever
	KwVoid
	KwUndefined
	KwNull
	KwString
	KwNumber
	KwBoolean
	KwBigInt
	KwSymbol
	KwObject
)

func (k KeywordKind) String() string {
	switch k {
	case KwAny:
		return "any"
	case KwUnknown:
		return "unknown"
	case KwNever:
		return "never"
	case KwVoid:
		return "void"
	case KwUndefined:
		return "undefined"
	case KwNull:
		return "null"
	case KwString:
		return "string"
	case KwNumber:
		return "number"
	case KwBoolean:
		return "boolean"
	case KwBigInt:
		return "bigint"
	case KwSymbol:
		return "symbol"
	case KwObject:
		return "object"
	default:
		return "<unknown-kw>"
	}
}
