package validation

import (
	"bytes"
	"io"
	"math"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/maprangsoft/crudapi/internal/errs"
	"github.com/maprangsoft/crudapi/internal/i18n"
	"github.com/tidwall/gjson"
)

// Validatable is implemented by request payload types that know how to validate themselves.
//
// Typical pattern:
//   - embed IDParam (or implement ParamBinder) to read the :id path parameter
//   - implement BodyBinder to pull typed fields out of the JSON body
//   - implement Validate() error to run Check on the fields that are set
type Validatable interface {
	Validate() error
}

// ParamBinder is implemented by payloads that read path parameters.
type ParamBinder interface {
	BindParams(c echo.Context) error
}

// BodyBinder is implemented by payloads that read a JSON request body.
type BodyBinder interface {
	BindBody(body Body) error
}

// BindAndValidate fills payload from the request and validates it.
//
// Flow:
// 1) path parameters (ParamBinder), so a bad id fails before the body is read
// 2) JSON body (BodyBinder)
// 3) payload.Validate()
//
// Every error returned is either an *errs.HTTPError of KindValidation or the
// error produced while reading the body (e.g. Echo's 413 from the body limit).
func BindAndValidate(c echo.Context, payload Validatable) error {
	if binder, ok := payload.(ParamBinder); ok {
		if err := binder.BindParams(c); err != nil {
			return err
		}
	}

	if binder, ok := payload.(BodyBinder); ok {
		body, err := ReadBody(c)
		if err != nil {
			return err
		}
		if err := binder.BindBody(body); err != nil {
			return err
		}
	}

	return payload.Validate()
}

// IDParam binds the :id path parameter. Embed it in request types that address
// a single record.
type IDParam struct {
	ID int64 `json:"-"`
}

// BindParams parses the :id path parameter with ParseID.
func (p *IDParam) BindParams(c echo.Context) error {
	id, err := ParseID(c.Param("id"))
	if err != nil {
		return err
	}
	p.ID = id
	return nil
}

// Validate is a no-op; ParseID already rejected bad ids.
func (p *IDParam) Validate() error {
	return nil
}

// Body is a parsed JSON object request body.
type Body struct {
	raw gjson.Result
}

// ReadBody reads the request body and checks it is a JSON object.
func ReadBody(c echo.Context) (Body, error) {
	data, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return Body{}, err
	}
	return ParseBody(data)
}

// ParseBody checks data is a JSON object.
func ParseBody(data []byte) (Body, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || !gjson.ValidBytes(data) {
		return Body{}, errs.NewValidationError(i18n.ErrInvalidRequestBody, nil)
	}

	raw := gjson.ParseBytes(data)
	if !raw.IsObject() {
		return Body{}, errs.NewValidationError(i18n.ErrInvalidRequestBody, nil)
	}
	return Body{raw: raw}, nil
}

// Field is one body field. Set is false when the key is absent; Null is true
// when it is present with a JSON null.
type Field[T any] struct {
	Set   bool
	Null  bool
	Value T
}

// Ptr returns nil for an absent or null field, otherwise a pointer to Value.
func (f Field[T]) Ptr() *T {
	if !f.Set || f.Null {
		return nil
	}
	v := f.Value
	return &v
}

// Present reports whether the field holds a non-null value.
func (f Field[T]) Present() bool {
	return f.Set && !f.Null
}

// get returns the value of the top-level key name. When a key repeats, the
// last occurrence wins, as with encoding/json.
func (b Body) get(name string) gjson.Result {
	var found gjson.Result
	b.raw.ForEach(func(key, value gjson.Result) bool {
		if key.String() == name {
			found = value
		}
		return true
	})
	return found
}

// String reads a string field and trims it. A non-string, non-null value
// fails with typeMsgID.
func (b Body) String(name, typeMsgID string) (Field[string], error) {
	r := b.get(name)
	switch {
	case !r.Exists():
		return Field[string]{}, nil
	case r.Type == gjson.Null:
		return Field[string]{Set: true, Null: true}, nil
	case r.Type != gjson.String:
		return Field[string]{}, FieldError(name, typeMsgID)
	}
	return Field[string]{Set: true, Value: strings.TrimSpace(r.Str)}, nil
}

// Integer reads an integral number field. Fractions, non-numbers and values
// beyond MaxSafeInteger fail with typeMsgID.
func (b Body) Integer(name, typeMsgID string) (Field[int64], error) {
	r := b.get(name)
	switch {
	case !r.Exists():
		return Field[int64]{}, nil
	case r.Type == gjson.Null:
		return Field[int64]{Set: true, Null: true}, nil
	case r.Type != gjson.Number:
		return Field[int64]{}, FieldError(name, typeMsgID)
	}

	if r.Num != math.Trunc(r.Num) || math.Abs(r.Num) > MaxSafeInteger {
		return Field[int64]{}, FieldError(name, typeMsgID)
	}
	return Field[int64]{Set: true, Value: int64(r.Num)}, nil
}
