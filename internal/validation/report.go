package validation

// ReportError is one entry of a failure report.
type ReportError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Kind    string `json:"kind,omitempty"`
}

// Report is the caller-facing rendering of an outcome:
//
//	{"ok": true, "value": ...}
//	{"ok": false, "errors": [{"field": "a.b", "message": "..."}]}
//	{"ok": false, "cancelled": true}
type Report struct {
	OK        bool          `json:"ok"`
	Value     any           `json:"value,omitempty"`
	Errors    []ReportError `json:"errors,omitempty"`
	Cancelled bool          `json:"cancelled,omitempty"`
}

// NewReport renders an outcome. render maps the sealed value to whatever the
// caller is allowed to see; it is only called for a valid outcome.
func NewReport[T any](o Outcome[T], render func(T) any) Report {
	if v, ok := o.Value(); ok {
		return Report{OK: true, Value: render(v)}
	}
	return Report{Errors: ReportErrors(o.errs)}
}

// ReportErrors flattens errors into report entries, keeping their order.
func ReportErrors(errs Errors) []ReportError {
	out := make([]ReportError, len(errs))
	for i, e := range errs {
		out[i] = ReportError{Field: e.Field(), Message: e.Message, Kind: e.Kind.String()}
	}
	return out
}

// CancelledReport is the report for a call abandoned by its caller.
func CancelledReport() Report {
	return Report{Cancelled: true}
}
