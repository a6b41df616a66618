package validator

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// Bind decodes the request body into dst and validates it.
//
// JSON and urlencoded bodies are accepted; any other content type, or an empty
// body, decodes as an empty object. Field rules are checked before unknown keys
// so a bad known field is always reported first. The returned error, if any,
// is a *ValidationError.
func Bind(c *gin.Context, dst interface{}) error {
	var (
		unknown []string
		err     error
	)

	switch c.ContentType() {
	case binding.MIMEJSON:
		unknown, err = decodeJSON(c.Request.Body, dst)
	case binding.MIMEPOSTForm:
		unknown, err = decodeForm(c, dst)
	}
	if err != nil {
		return err
	}

	if err := Validate(dst); err != nil {
		return err
	}
	if len(unknown) > 0 {
		return notAllowed(unknown[0])
	}
	return nil
}

func decodeJSON(r io.Reader, dst interface{}) ([]string, error) {
	if r == nil {
		return nil, nil
	}
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, nil
	}

	// Walk the top-level keys with a token decoder to keep document order.
	dec := json.NewDecoder(bytes.NewReader(body))
	tok, err := dec.Token()
	if err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, &ValidationError{Field: "value", Message: `"value" must be an object`}
	}

	fields := structFields(dst, "json")
	accepted := make(map[string]reflect.Type, len(fields))
	for _, f := range fields {
		accepted[f.name] = f.typ
	}

	// Keys match exactly; a case variant of a known key is just another unknown key.
	known := make(map[string]json.RawMessage)
	var unknown []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, &ValidationError{Message: err.Error()}
		}
		key, _ := tok.(string)

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, &ValidationError{Message: err.Error()}
		}
		if _, ok := accepted[key]; ok {
			known[key] = raw
		} else {
			unknown = append(unknown, key)
		}
	}
	if _, err := dec.Token(); err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, &ValidationError{Message: "invalid data after top-level value"}
	}

	for _, f := range fields {
		if raw, ok := known[f.name]; ok && bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			return nil, mustBe(f.name, f.typ)
		}
	}

	// Only the exact known keys reach dst.
	filtered, err := json.Marshal(known)
	if err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}
	if err := json.Unmarshal(filtered, dst); err != nil {
		return nil, decodeError(err)
	}
	return unknown, nil
}

func decodeForm(c *gin.Context, dst interface{}) ([]string, error) {
	if err := c.Request.ParseForm(); err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}
	form := c.Request.PostForm

	known := make(map[string]bool)
	for _, f := range structFields(dst, "form") {
		known[f.name] = true
	}
	var unknown []string
	for key := range form {
		if !known[key] {
			unknown = append(unknown, key)
		}
	}
	sort.Strings(unknown)

	if err := binding.MapFormWithTag(dst, form, "form"); err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}
	return unknown, nil
}

// decodeError maps a json.Unmarshal failure to a caller-facing message.
func decodeError(err error) *ValidationError {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return mustBe(typeErr.Field, typeErr.Type)
	}
	return &ValidationError{Message: err.Error()}
}

func mustBe(key string, t reflect.Type) *ValidationError {
	return &ValidationError{Field: key, Message: fmt.Sprintf("%q must be %s", key, kindName(t))}
}

func notAllowed(key string) *ValidationError {
	return &ValidationError{Field: key, Message: fmt.Sprintf("%q is not allowed", key)}
}

func kindName(t reflect.Type) string {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return "a string"
	case reflect.Bool:
		return "a boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "a number"
	case reflect.Slice, reflect.Array:
		return "an array"
	default:
		return "an object"
	}
}

type structField struct {
	name string
	typ  reflect.Type
}

// structFields lists the keys a struct accepts under the given tag, in declaration order.
func structFields(dst interface{}, tag string) []structField {
	t := reflect.TypeOf(dst)
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil
	}

	var fields []structField
	for i := 0; i < t.NumField(); i++ {
		fld := t.Field(i)
		if !fld.IsExported() {
			continue
		}
		name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
		switch name {
		case "-":
			continue
		case "":
			name = fld.Name
		}
		fields = append(fields, structField{name: name, typ: fld.Type})
	}
	return fields
}
