package workflow

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Builder validates request payloads and encodes them for the wire. A
// request with file attachments becomes a multipart body; everything else
// travels as JSON.
type Builder struct {
	validate *validator.Validate
}

// NewBuilder creates a request builder with the validation rules registered.
func NewBuilder() *Builder {
	v := validator.New()

	// notblank trims before checking, so whitespace-only input fails the
	// same way missing input does.
	v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	// Report field names as their wire names, not Go struct names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	return &Builder{validate: v}
}

// Validate checks req against its validation tags and reports every failed
// field at once, not just the first.
func (b *Builder) Validate(req interface{}) error {
	err := b.validate.Struct(req)
	if err == nil {
		return nil
	}

	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) {
		return fmt.Errorf("validation failed: %w", err)
	}

	fields := make([]string, 0, len(vErrs))
	for _, fe := range vErrs {
		fields = append(fields, fe.Field())
	}
	return &ValidationError{MissingFields: fields}
}

// FilePart is one binary attachment of a multipart request.
type FilePart struct {
	Field    string
	Filename string
	Content  io.Reader
}

// EncodeJSON serializes req as a JSON body.
func (b *Builder) EncodeJSON(req interface{}) (contentType string, body io.Reader, err error) {
	data, err := json.Marshal(req)
	if err != nil {
		return "", nil, fmt.Errorf("failed to encode request: %w", err)
	}
	return "application/json", bytes.NewReader(data), nil
}

// EncodeMultipart serializes form fields plus file attachments as a
// multipart/form-data body.
func (b *Builder) EncodeMultipart(fields map[string]string, files ...FilePart) (contentType string, body io.Reader, err error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for key, value := range fields {
		if err := w.WriteField(key, value); err != nil {
			return "", nil, fmt.Errorf("failed to write field %s: %w", key, err)
		}
	}

	for _, f := range files {
		part, err := w.CreateFormFile(f.Field, f.Filename)
		if err != nil {
			return "", nil, fmt.Errorf("failed to create part %s: %w", f.Field, err)
		}
		if _, err := io.Copy(part, f.Content); err != nil {
			return "", nil, fmt.Errorf("failed to copy %s content: %w", f.Field, err)
		}
	}

	if err := w.Close(); err != nil {
		return "", nil, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	return w.FormDataContentType(), &buf, nil
}
