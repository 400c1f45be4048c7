package transport

import (
	"encoding/json"
	"reflect"
	"time"

	"framtt_backend/platform/validator"
)

// Optional distinguishes "absent" from "null" in a JSON patch body.
// Set is true whenever the key was present; Value is nil for JSON null.
type Optional[T any] struct {
	Value *T
	Set   bool
}

func (o Optional[T]) IsZero() bool {
	return !o.Set
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

// validationValue exposes the inner value to validator rules. Absent and
// null both validate as nil so omitempty skips them.
func validationValue(field reflect.Value) interface{} {
	valueField := field.FieldByName("Value")
	if !valueField.IsValid() || valueField.IsNil() {
		return nil
	}
	return valueField.Elem().Interface()
}

// RegisterOptionalTypes teaches val to validate the Optional instantiations
// used by the request DTOs.
func RegisterOptionalTypes(val *validator.Validator) {
	val.RegisterCustomTypeFunc(validationValue,
		Optional[string]{},
		Optional[int]{},
		Optional[float64]{},
		Optional[time.Time]{},
		Optional[[]string]{},
	)
}
