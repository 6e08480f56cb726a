package object

// AsBool converts the object to a Go bool, or returns an error if it is not
// a bool object.
func AsBool(obj Object) (bool, error) {
	b, ok := obj.(*Bool)
	if !ok {
		return false, newTypeErrorf("expected a bool (got %s)", obj.Type())
	}
	return b.value, nil
}

// AsString converts the object to a Go string, or returns an error if it is
// not a string object.
func AsString(obj Object) (string, error) {
	s, ok := obj.(*String)
	if !ok {
		return "", newTypeErrorf("expected a string (got %s)", obj.Type())
	}
	return s.value, nil
}

// AsInt converts the object to a Go int64, or returns an error if it is not
// an int object.
func AsInt(obj Object) (int64, error) {
	i, ok := obj.(*Int)
	if !ok {
		return 0, newTypeErrorf("expected an int (got %s)", obj.Type())
	}
	return i.value, nil
}

// AsFloat converts the object to a Go float64. Int objects are promoted.
func AsFloat(obj Object) (float64, error) {
	switch obj := obj.(type) {
	case *Int:
		return float64(obj.value), nil
	case *Float:
		return obj.value, nil
	default:
		return 0, newTypeErrorf("expected a number (got %s)", obj.Type())
	}
}

// AsList converts the object to a *List, or returns an error if it is not a
// list object.
func AsList(obj Object) (*List, error) {
	ls, ok := obj.(*List)
	if !ok {
		return nil, newTypeErrorf("expected a list (got %s)", obj.Type())
	}
	return ls, nil
}

// AsFloatSlice converts a list of numbers to a []float64.
func AsFloatSlice(obj Object) ([]float64, error) {
	ls, err := AsList(obj)
	if err != nil {
		return nil, err
	}
	values := make([]float64, 0, len(ls.items))
	for _, item := range ls.items {
		v, err := AsFloat(item)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

// FromGoType converts a simple Go value to the corresponding object.
func FromGoType(value interface{}) Object {
	switch value := value.(type) {
	case nil:
		return Nil
	case bool:
		return NewBool(value)
	case int:
		return NewInt(int64(value))
	case int64:
		return NewInt(value)
	case float64:
		return NewFloat(value)
	case string:
		return NewString(value)
	case []float64:
		return NewFloatList(value)
	case Object:
		return value
	default:
		return TypeErrorf("unsupported value type: %T", value)
	}
}
