package errors

// Metadata keys attached to generation failures.
const (
	MetaGenerator = "generator"
	MetaAttempts  = "attempts"
	MetaName      = "name"
	MetaPlayer    = "player"
)

// Configuration creates an error for a bad option value or a broken static
// declaration. These abort generation for the affected player.
func Configuration(format string, args ...interface{}) *Error {
	return Newf(CodeInvalidArgument, format, args...)
}

// DanglingReference creates a configuration error for a declaration that
// names a region, item or location that was never declared.
func DanglingReference(kind, name string) *Error {
	return Newf(CodeFailedPrecondition, "unknown %s %q", kind, name).
		WithMeta(MetaName, name)
}

// GenerationExhausted reports that a resample loop ran past its bound.
func GenerationExhausted(generator string, attempts int) *Error {
	return Newf(CodeResourceExhausted, "%s generator gave up after %d attempts", generator, attempts).
		WithMeta(MetaGenerator, generator).
		WithMeta(MetaAttempts, attempts)
}

// IsConfiguration reports whether err was caused by invalid configuration
// or declarations.
func IsConfiguration(err error) bool {
	code := GetCode(err)
	return code == CodeInvalidArgument || code == CodeFailedPrecondition
}

// IsGenerationExhausted reports whether err came from a resample loop bound.
func IsGenerationExhausted(err error) bool {
	return IsResourceExhausted(err) && GetMeta(err)[MetaGenerator] != nil
}
