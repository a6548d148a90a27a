package tab

type DataType int

const (
	BooleanType DataType = iota + 1
	FloatType
	IntegerType
	StringType
)

func (dt DataType) String() string {
	switch dt {
	case BooleanType:
		return "BOOL"
	case FloatType:
		return "DOUBLE"
	case IntegerType:
		return "INT"
	case StringType:
		return "STRING"
	}

	return ""
}

// TypeOf maps a value to its data type; nulls have no type.
func TypeOf(v Value) (DataType, bool) {
	switch v.(type) {
	case BoolValue:
		return BooleanType, true
	case Float64Value:
		return FloatType, true
	case Int64Value:
		return IntegerType, true
	case StringValue:
		return StringType, true
	}
	return 0, false
}
