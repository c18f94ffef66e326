package diag

// Diagnostic records one finding that requires human judgment.
//
// Line is 1-based and refers to the input text as the engine received it,
// not to the rewritten output. Path is empty while a single document is
// being processed; the driver stamps it when aggregating across files.
type Diagnostic struct {
	Path     string
	Line     int
	Severity Severity
	Code     Code
	Message  string
}

func New(sev Severity, code Code, line int, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Line:     line,
		Message:  msg,
	}
}

func NewWarning(code Code, line int, msg string) Diagnostic {
	return New(SevWarning, code, line, msg)
}

func NewInfo(code Code, line int, msg string) Diagnostic {
	return New(SevInfo, code, line, msg)
}
