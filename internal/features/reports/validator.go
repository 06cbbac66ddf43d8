package reports

import (
	"errors"
	"fmt"
	"strings"
)

// ValidateSubmit checks a submission for the fields the lifecycle
// requires: both user ids present and the context non-empty after
// trimming. Reason is deliberately not validated here; it is passed
// through as submitted.
func ValidateSubmit(req *SubmitReportRequest) error {
	var missing []string

	if req.Target == nil {
		missing = append(missing, "target")
	}
	if req.Reporter == nil {
		missing = append(missing, "reporter")
	}
	if strings.TrimSpace(req.Context) == "" {
		missing = append(missing, "context")
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required fields: %s", strings.Join(missing, ", "))
	}

	return nil
}

// ValidateAction checks the decision payload shape. Whether the report
// exists is the store's concern, not the validator's.
func ValidateAction(req *ActionReportRequest) error {
	if strings.TrimSpace(req.ReportID) == "" {
		return errors.New("missing required field: reportId")
	}
	if req.Action != string(StatusApproved) && req.Action != string(StatusDenied) {
		return fmt.Errorf("action must be %q or %q", StatusApproved, StatusDenied)
	}
	return nil
}
