// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements Validate, the per-route input gate. A route declares
// Go struct schemas for its body, route params and query string; the
// middleware decodes and validates each one and either stores the typed
// result on the context or aborts with a 400 ValidationError listing every
// violated field:
//
//	{ "error": "ValidationError", "details": [ { "path": "email", "message": "...", "code": "email" } ] }
//
// Rules live in `binding` struct tags and are evaluated by
// go-playground/validator through gin's binding engine. Messages come from
// the validator's English translations. Bodies are strict: keys must match
// exactly, unknown keys are rejected with code "unrecognized_keys", and type
// mismatches, nulls outside Nullable fields and malformed JSON get code
// "invalid_type". Bodies implementing Normalizer are normalized before the
// rules run.
package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	entrans "github.com/go-playground/validator/v10/translations/en"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tbourn/tweeter-backend/internal/apperr"
	"github.com/tbourn/tweeter-backend/internal/utils"
)

const (
	bodyKey   = "validated.body"
	paramsKey = "validated.params"
	queryKey  = "validated.query"

	codeUnrecognizedKeys = "unrecognized_keys"
	codeInvalidType      = "invalid_type"
)

// Schemas names the struct types a route accepts. Pass zero values, e.g.
// Schemas{Body: CreateUserBody{}, Params: IDParams{}}. Nil fields are skipped.
type Schemas struct {
	Body   any
	Params any
	Query  any
}

// Normalizer is implemented by body schemas that rewrite decoded input
// (trimming, Unicode normalization) before the rules run, so that length
// limits apply to the value that is stored.
type Normalizer interface {
	Normalize()
}

// FieldError is one violated rule.
type FieldError struct {
	Path    string `json:"path"    example:"email"`
	Message string `json:"message" example:"email must be a valid email address"`
	Code    string `json:"code"    example:"email"`
}

var (
	setupOnce sync.Once
	trans     ut.Translator
)

// setupValidation registers the custom rules, field naming and English
// translations on gin's validator engine.
func setupValidation() {
	setupOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			panic("middleware: gin validator engine is not go-playground/validator")
		}

		// Report fields by their wire names.
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			for _, tag := range []string{"json", "uri", "form"} {
				name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
				if name == "-" {
					return ""
				}
				if name != "" {
					return name
				}
			}
			return f.Name
		})

		// Nullable fields validate as their value; null and absent as nil.
		v.RegisterCustomTypeFunc(func(rv reflect.Value) any {
			n, ok := rv.Interface().(utils.Nullable[string])
			if !ok || !n.Valid {
				return nil
			}
			return n.Value
		}, utils.Nullable[string]{})

		_ = v.RegisterValidation("objectid", func(fl validator.FieldLevel) bool {
			return primitive.IsValidObjectID(fl.Field().String())
		})
		_ = v.RegisterValidation("notblank", validators.NotBlank)

		uni := ut.New(en.New(), en.New())
		trans, _ = uni.GetTranslator("en")
		_ = entrans.RegisterDefaultTranslations(v, trans)

		_ = v.RegisterTranslation("objectid", trans,
			func(ut ut.Translator) error { return nil },
			func(_ ut.Translator, fe validator.FieldError) string {
				if fe.Field() == "userId" {
					return "Invalid userID format!"
				}
				return "Invalid ID format!"
			})
		_ = v.RegisterTranslation("notblank", trans,
			func(ut ut.Translator) error { return ut.Add("notblank", "{0} must not be blank", true) },
			func(ut ut.Translator, fe validator.FieldError) string {
				t, _ := ut.T("notblank", fe.Field())
				return t
			})
	})
}

// Validate returns a Gin middleware enforcing s. On success the typed values
// are available through Body, Params and Query.
func Validate(s Schemas) gin.HandlerFunc {
	setupValidation()
	bodyT, paramsT, queryT := schemaType(s.Body), schemaType(s.Params), schemaType(s.Query)

	return func(c *gin.Context) {
		var details []FieldError

		if bodyT != nil {
			raw, err := io.ReadAll(c.Request.Body)
			if err != nil {
				var tooLarge *http.MaxBytesError
				if errors.As(err, &tooLarge) {
					_ = c.Error(apperr.New(http.StatusRequestEntityTooLarge, "Request body too large"))
				} else {
					_ = c.Error(err)
				}
				c.Abort()
				return
			}
			ptr, errs, decoded := decodeStrict(raw, bodyT)
			details = append(details, errs...)
			if decoded {
				if n, ok := ptr.Interface().(Normalizer); ok {
					n.Normalize()
				}
				if err := binding.Validator.ValidateStruct(ptr.Interface()); err != nil {
					details = append(details, withoutPaths(fieldErrors(err), errs)...)
				} else if len(errs) == 0 {
					c.Set(bodyKey, ptr.Elem().Interface())
				}
			}
		}

		if paramsT != nil {
			ptr := reflect.New(paramsT)
			if err := c.ShouldBindUri(ptr.Interface()); err != nil {
				details = append(details, fieldErrors(err)...)
			} else {
				c.Set(paramsKey, ptr.Elem().Interface())
			}
		}

		if queryT != nil {
			ptr := reflect.New(queryT)
			if err := c.ShouldBindQuery(ptr.Interface()); err != nil {
				details = append(details, fieldErrors(err)...)
			} else {
				c.Set(queryKey, ptr.Elem().Interface())
			}
		}

		if len(details) > 0 {
			_ = c.Error(apperr.Validation(details))
			c.Abort()
			return
		}
		c.Next()
	}
}

// Body returns the validated body stored by Validate.
func Body[T any](c *gin.Context) T { return stored[T](c, bodyKey) }

// Params returns the validated route params stored by Validate.
func Params[T any](c *gin.Context) T { return stored[T](c, paramsKey) }

// Query returns the validated query stored by Validate.
func Query[T any](c *gin.Context) T { return stored[T](c, queryKey) }

func stored[T any](c *gin.Context, key string) T {
	v, _ := c.Get(key)
	t, _ := v.(T)
	return t
}

func schemaType(v any) reflect.Type {
	if v == nil {
		return nil
	}
	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

// decodeStrict decodes a JSON object into a new t. Keys must match the
// struct's json names exactly; unknown keys are reported and dropped, and null
// is only accepted for Nullable fields. decoded is false when the input could
// not be turned into a value worth validating.
func decodeStrict(raw []byte, t reflect.Type) (ptr reflect.Value, errs []FieldError, decoded bool) {
	ptr = reflect.New(t)
	if len(bytes.TrimSpace(raw)) == 0 {
		return ptr, []FieldError{{Message: "Invalid input: expected object, received undefined", Code: codeInvalidType}}, false
	}

	var obj map[string]json.RawMessage
	dec := json.NewDecoder(bytes.NewReader(raw))
	err := dec.Decode(&obj)
	if err == nil && dec.More() {
		err = errors.New("trailing data after JSON object")
	}
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &typeErr):
		return ptr, []FieldError{{Message: "Invalid input: expected object, received " + typeErr.Value, Code: codeInvalidType}}, false
	case err != nil:
		return ptr, []FieldError{{Message: "Malformed JSON body", Code: codeInvalidType}}, false
	case obj == nil:
		return ptr, []FieldError{{Message: "Invalid input: expected object, received null", Code: codeInvalidType}}, false
	}

	fields := jsonFields(t)
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		f, known := fields[k]
		switch {
		case !known:
			errs = append(errs, FieldError{Path: k, Message: fmt.Sprintf("Unrecognized key: %q", k), Code: codeUnrecognizedKeys})
			delete(obj, k)
		case !f.nullable && string(bytes.TrimSpace(obj[k])) == "null":
			errs = append(errs, FieldError{
				Path:    k,
				Message: fmt.Sprintf("Invalid input: expected %s, received null", jsonKind(f.typ)),
				Code:    codeInvalidType,
			})
			delete(obj, k)
		}
	}

	// Re-encoding the filtered object keeps the exact keys only, so the
	// decoder's case-insensitive matching can no longer pick up stray ones.
	clean, err := json.Marshal(obj)
	if err != nil {
		return ptr, append(errs, FieldError{Message: "Malformed JSON body", Code: codeInvalidType}), false
	}
	if err := json.Unmarshal(clean, ptr.Interface()); err != nil {
		if errors.As(err, &typeErr) {
			return ptr, append(errs, FieldError{
				Path:    typeErr.Field,
				Message: fmt.Sprintf("Invalid input: expected %s, received %s", jsonKind(typeErr.Type), typeErr.Value),
				Code:    codeInvalidType,
			}), false
		}
		return ptr, append(errs, FieldError{Message: "Malformed JSON body", Code: codeInvalidType}), false
	}
	return ptr, errs, true
}

type jsonField struct {
	typ      reflect.Type
	nullable bool
}

var nullableString = reflect.TypeOf(utils.Nullable[string]{})

// jsonFields maps the exact json names of t's fields to their types.
func jsonFields(t reflect.Type) map[string]jsonField {
	out := make(map[string]jsonField, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			continue
		}
		if name == "" {
			name = f.Name
		}
		out[name] = jsonField{typ: f.Type, nullable: f.Type == nullableString}
	}
	return out
}

// jsonKind names the JSON type a Go type decodes from.
func jsonKind(t reflect.Type) string {
	if t == nil {
		return "value"
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Slice, reflect.Array:
		return "array"
	}
	return "object"
}

// fieldErrors flattens a validator (or binding) error into FieldErrors.
func fieldErrors(err error) []FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Message: err.Error(), Code: codeInvalidType}}
	}
	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{
			Path:    fieldPath(fe.Namespace()),
			Message: fe.Translate(trans),
			Code:    fe.Tag(),
		})
	}
	return out
}

// withoutPaths drops the entries of fes whose path is already reported in
// seen, so a null field is not also flagged as missing.
func withoutPaths(fes, seen []FieldError) []FieldError {
	if len(seen) == 0 {
		return fes
	}
	skip := make(map[string]bool, len(seen))
	for _, fe := range seen {
		skip[fe.Path] = true
	}
	out := fes[:0]
	for _, fe := range fes {
		if !skip[fe.Path] {
			out = append(out, fe)
		}
	}
	return out
}

// fieldPath drops the root struct name from a validator namespace
// ("CreateUserBody.email" -> "email").
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}
