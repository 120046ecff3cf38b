package prompting

import (
	"errors"
	"strconv"
	"strings"

	"github.com/itsatony/go-cuserr"
)

// NewMissingBindingError creates an error for template placeholders that
// had no effective binding. names holds every unresolved placeholder in
// order of first appearance.
func NewMissingBindingError(names []string) error {
	return cuserr.NewValidationError(ErrCodeResolve, ErrMsgMissingBinding+": "+strings.Join(names, ", ")).
		WithMetadata(MetaKeyKind, ErrKindMissingBinding).
		WithMetadata(MetaKeyPlaceholders, strings.Join(names, ","))
}

// NewNoBackendError creates an error for Generate called without a bound backend.
func NewNoBackendError() error {
	return cuserr.NewValidationError(ErrCodeGenerate, ErrMsgNoBackend).
		WithMetadata(MetaKeyKind, ErrKindNoBackend)
}

// NewSchemaCompileError creates an error for a structurally invalid schema.
// path locates the offending node within the schema description.
func NewSchemaCompileError(msg string, path string) error {
	return cuserr.NewValidationError(ErrCodeSchema, ErrMsgSchemaCompile+": "+msg).
		WithMetadata(MetaKeyKind, ErrKindSchemaCompile).
		WithMetadata(MetaKeyPath, path)
}

// NewSchemaParseError creates an error for unparseable schema input.
func NewSchemaParseError(cause error) error {
	return cuserr.WrapStdError(cause, ErrCodeSchema, ErrMsgSchemaParseFailed).
		WithMetadata(MetaKeyKind, ErrKindSchemaCompile)
}

// NewBackendError wraps a failure reported by the generation backend.
// The cause is surfaced verbatim; no retry or classification is performed.
func NewBackendError(cause error) error {
	return cuserr.WrapStdError(cause, ErrCodeGenerate, ErrMsgBackendFailed).
		WithMetadata(MetaKeyKind, ErrKindBackendFailure)
}

// NewDecodeError creates an error for raw backend text that could not be
// parsed as the configured response format.
func NewDecodeError(format string, cause error) error {
	return cuserr.WrapStdError(cause, ErrCodeDecode, ErrMsgDecodeFailed).
		WithMetadata(MetaKeyKind, ErrKindDecodeFailure).
		WithMetadata(MetaKeyFormat, format)
}

// NewValidationFailedError creates an error for decoded data that violated
// the schema. violations holds every field-level diagnostic, not just the first.
func NewValidationFailedError(violations []string) error {
	return cuserr.NewValidationError(ErrCodeValidate, ErrMsgValidationFailed+": "+strings.Join(violations, "; ")).
		WithMetadata(MetaKeyKind, ErrKindValidationFailed).
		WithMetadata(MetaKeyViolations, strings.Join(violations, "; "))
}

// NewUnknownFormatError creates an error for a response format with no
// registered decoder.
func NewUnknownFormatError(format string) error {
	return cuserr.NewNotFoundError(MetaKeyFormat, ErrMsgUnknownFormat).
		WithMetadata(MetaKeyFormat, format)
}

// NewNilRecordError creates an error for reconstructing an engine from a nil record.
func NewNilRecordError() error {
	return cuserr.NewValidationError(ErrCodeResolve, ErrMsgNilRecord)
}

// errorKind extracts the kind metadata from an error, if present.
func errorKind(err error) (string, bool) {
	var customErr *cuserr.CustomError
	if !errors.As(err, &customErr) {
		return "", false
	}
	return customErr.GetMetadata(MetaKeyKind)
}

// IsMissingBindingError reports whether err is a missing-binding failure.
func IsMissingBindingError(err error) bool {
	kind, ok := errorKind(err)
	return ok && kind == ErrKindMissingBinding
}

// IsNoBackendError reports whether err is the local no-backend precondition failure.
func IsNoBackendError(err error) bool {
	kind, ok := errorKind(err)
	return ok && kind == ErrKindNoBackend
}

// IsSchemaCompileError reports whether err is a schema compile failure.
func IsSchemaCompileError(err error) bool {
	kind, ok := errorKind(err)
	return ok && kind == ErrKindSchemaCompile
}

// IsBackendError reports whether err wraps a backend-reported failure.
func IsBackendError(err error) bool {
	kind, ok := errorKind(err)
	return ok && kind == ErrKindBackendFailure
}

// IsDecodeError reports whether err is a response decode failure.
func IsDecodeError(err error) bool {
	kind, ok := errorKind(err)
	return ok && kind == ErrKindDecodeFailure
}

// IsValidationError reports whether err is a schema validation failure.
func IsValidationError(err error) bool {
	kind, ok := errorKind(err)
	return ok && kind == ErrKindValidationFailed
}

// MissingPlaceholders extracts the unresolved placeholder names from a
// missing-binding error. Returns nil if err is not one.
func MissingPlaceholders(err error) []string {
	if !IsMissingBindingError(err) {
		return nil
	}
	var customErr *cuserr.CustomError
	if !errors.As(err, &customErr) {
		return nil
	}
	raw, ok := customErr.GetMetadata(MetaKeyPlaceholders)
	if !ok || raw == "" {
		return nil
	}
	return strings.Split(raw, ",")
}

// StorageError represents a storage-related error.
type StorageError struct {
	Message string
	Name    string
	Version int
	Cause   error
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	if e.Name != "" && e.Version > 0 {
		return e.Message + ": " + e.Name + " v" + strconv.Itoa(e.Version)
	}
	if e.Name != "" {
		return e.Message + ": " + e.Name
	}
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *StorageError) Unwrap() error {
	return e.Cause
}

// NewStoragePromptNotFoundError creates an error for a prompt missing from storage.
func NewStoragePromptNotFoundError(name string) error {
	return &StorageError{Message: ErrMsgPromptNotFound, Name: name}
}

// NewStorageVersionNotFoundError creates an error for a missing prompt version.
func NewStorageVersionNotFoundError(name string, version int) error {
	return &StorageError{Message: ErrMsgPromptVersionNotFound, Name: name, Version: version}
}

// NewStorageClosedError creates an error for operations on closed storage.
func NewStorageClosedError() error {
	return &StorageError{Message: ErrMsgStorageClosed}
}

// NewStorageDriverNotFoundError creates an error for a missing storage driver.
func NewStorageDriverNotFoundError(name string) error {
	return &StorageError{Message: ErrMsgStorageDriverNotFound, Name: name}
}

// IsPromptNotFound reports whether err indicates a prompt or version
// missing from storage.
func IsPromptNotFound(err error) bool {
	var storageErr *StorageError
	if !errors.As(err, &storageErr) {
		return false
	}
	return storageErr.Message == ErrMsgPromptNotFound || storageErr.Message == ErrMsgPromptVersionNotFound
}
