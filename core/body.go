package core

import (
	"bytes"
	"mime"
	"mime/multipart"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
)

// structValidator is shared across every extractor that validates a decoded
// struct; validator.New() does one-time reflection setup per type, so a
// single package-level instance amortizes that across requests.
var structValidator = validator.New()

// Validatable lets a body/query destination struct add checks beyond what
// `validate:"..."` tags express (spec.md §4.3: "no imposed interface beyond
// that method existing").
type Validatable interface {
	Validate() error
}

// validateValue runs struct-tag validation, then Validate() if the type
// implements it. Either failure folds into the same 400 path as a decode
// failure, per spec.md §4.3.
func validateValue(v any) *Response {
	if err := structValidator.Struct(v); err != nil {
		if _, ok := err.(*validator.InvalidValidationError); !ok {
			return BadRequest().WithText(err.Error())
		}
	}
	if vv, ok := v.(Validatable); ok {
		if err := vv.Validate(); err != nil {
			return BadRequest().WithText(err.Error())
		}
	}
	return nil
}

func contentTypeMatches(req *Request, prefix string) bool {
	ct, ok := req.Headers.Get("Content-Type")
	if !ok {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return strings.HasPrefix(ct, prefix)
	}
	return mediaType == prefix
}

// JSONBody extracts and validates a JSON request body into T (spec.md
// §4.3). A Content-Type other than application/json rejects with 415; a
// matching Content-Type with malformed JSON rejects with 400.
type JSONBody[T any] struct{ Value T }

func (j *JSONBody[T]) Extract(req *Request, pc *paramCursor) *Response {
	if !contentTypeMatches(req, "application/json") {
		return Status(415).WithText("expected Content-Type: application/json")
	}
	if err := jsonUnmarshal(req.Body(), &j.Value); err != nil {
		return BadRequest().WithText("malformed JSON body: " + err.Error())
	}
	if reject := validateValue(&j.Value); reject != nil {
		return reject
	}
	return nil
}

// FormBody decodes application/x-www-form-urlencoded into T via
// mapstructure's weakly-typed decoding (spec.md §4.3).
type FormBody[T any] struct{ Value T }

func (f *FormBody[T]) Extract(req *Request, pc *paramCursor) *Response {
	if !contentTypeMatches(req, "application/x-www-form-urlencoded") {
		return Status(415).WithText("expected Content-Type: application/x-www-form-urlencoded")
	}
	values, err := url.ParseQuery(string(req.Body()))
	if err != nil {
		return BadRequest().WithText("malformed form body: " + err.Error())
	}
	if err := decodeFormValues(values, &f.Value); err != nil {
		return BadRequest().WithText("failed to decode form body: " + err.Error())
	}
	if reject := validateValue(&f.Value); reject != nil {
		return reject
	}
	return nil
}

// MultipartBody decodes multipart/form-data into T: file parts are skipped
// (spec.md §4.3 covers structured field decoding, not file upload storage —
// handlers needing file contents should extract *Request directly and walk
// the multipart reader themselves).
type MultipartBody[T any] struct{ Value T }

func (m *MultipartBody[T]) Extract(req *Request, pc *paramCursor) *Response {
	ct, ok := req.Headers.Get("Content-Type")
	if !ok {
		return Status(415).WithText("expected Content-Type: multipart/form-data")
	}
	mediaType, params, err := mime.ParseMediaType(ct)
	if err != nil || mediaType != "multipart/form-data" {
		return Status(415).WithText("expected Content-Type: multipart/form-data")
	}
	boundary, ok := params["boundary"]
	if !ok {
		return BadRequest().WithText("multipart/form-data missing boundary")
	}

	reader := multipart.NewReader(bytes.NewReader(req.Body()), boundary)
	values := url.Values{}
	for {
		part, err := reader.NextPart()
		if err != nil {
			break
		}
		if part.FormName() == "" || part.FileName() != "" {
			continue
		}
		buf := new(bytes.Buffer)
		if _, err := buf.ReadFrom(part); err != nil {
			return BadRequest().WithText("failed reading multipart field: " + err.Error())
		}
		values.Add(part.FormName(), buf.String())
	}

	if err := decodeFormValues(values, &m.Value); err != nil {
		return BadRequest().WithText("failed to decode multipart body: " + err.Error())
	}
	if reject := validateValue(&m.Value); reject != nil {
		return reject
	}
	return nil
}

// TextBody extracts the raw body as a string; a non text/plain
// Content-Type rejects with 415.
type TextBody string

func (t *TextBody) Extract(req *Request, pc *paramCursor) *Response {
	if !contentTypeMatches(req, "text/plain") {
		return Status(415).WithText("expected Content-Type: text/plain")
	}
	*t = TextBody(req.Body())
	return nil
}

// Query decodes the request's query string into T via mapstructure, the
// same decoding path form bodies use (spec.md §4.3).
type Query[T any] struct{ Value T }

func (q *Query[T]) Extract(req *Request, pc *paramCursor) *Response {
	values, err := url.ParseQuery(req.RawQuery())
	if err != nil {
		return BadRequest().WithText("malformed query string: " + err.Error())
	}
	if err := decodeFormValues(values, &q.Value); err != nil {
		return BadRequest().WithText("failed to decode query string: " + err.Error())
	}
	if reject := validateValue(&q.Value); reject != nil {
		return reject
	}
	return nil
}

// decodeFormValues decodes url.Values (each key potentially multi-valued)
// into dst, unwrapping single-element slices so `?id=1` binds to an int
// field rather than requiring []string.
func decodeFormValues(values url.Values, dst any) error {
	flat := make(map[string]any, len(values))
	for k, v := range values {
		if len(v) == 1 {
			flat[k] = v[0]
		} else {
			flat[k] = v
		}
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           dst,
		TagName:          "form",
	})
	if err != nil {
		return err
	}
	return decoder.Decode(flat)
}
