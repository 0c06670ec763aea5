package schema

import (
	"database/sql/driver"
	"reflect"
)

// Columns returns column names of a model in field order.
func Columns(model any) []string {
	t := reflect.TypeOf(model)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	var res []string
	for i := 0; i < t.NumField(); i++ {
		if col := t.Field(i).Tag.Get("db"); col != "" {
			res = append(res, col)
		}
	}
	return res
}

// Values returns column values of a model in the order of Columns.
// sql.Null* fields are unwrapped to nil or their plain value, so the result
// can be given to any driver, including COPY.
func Values(model any) []any {
	v := reflect.ValueOf(model)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	t := v.Type()
	var res []any
	for i := 0; i < t.NumField(); i++ {
		if t.Field(i).Tag.Get("db") == "" {
			continue
		}
		val := v.Field(i).Interface()
		if vl, ok := val.(driver.Valuer); ok {
			dv, err := vl.Value()
			if err != nil {
				dv = nil
			}
			val = dv
		}
		res = append(res, val)
	}
	return res
}

// ScanTargets returns pointers to the fields of the model behind ptr in the
// order of Columns, ready for rows.Scan.
func ScanTargets(ptr any) []any {
	v := reflect.ValueOf(ptr).Elem()
	t := v.Type()
	var res []any
	for i := 0; i < t.NumField(); i++ {
		if t.Field(i).Tag.Get("db") == "" {
			continue
		}
		res = append(res, v.Field(i).Addr().Interface())
	}
	return res
}

// Rows converts models to a table of values ready for bulk insert.
func Rows[T any](models []T) [][]any {
	res := make([][]any, len(models))
	for i := range models {
		res[i] = Values(models[i])
	}
	return res
}
