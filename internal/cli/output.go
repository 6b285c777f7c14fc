package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"complaint-service/internal/model"
)

const (
	ExitSuccess      = 0
	ExitFailure      = 1
	ExitCommandError = 2
)

// ExitError carries the process exit code for a failed command.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode returns ExitFailure for errors that are not an *ExitError.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeRecord(w io.Writer, r *model.AdminRecord) {
	fmt.Fprintf(w, "Tracking ID:  %s\n", r.TrackingID)
	fmt.Fprintf(w, "Status:       %s\n", r.Status)
	fmt.Fprintf(w, "Type:         %s (%s)\n", r.Type, r.Urgency)
	fmt.Fprintf(w, "Location:     %s\n", r.Location)
	fmt.Fprintf(w, "Contact:      %s\n", r.ContactNumber)
	fmt.Fprintf(w, "Submitted:    %s\n", r.CreatedAt.Format(time.RFC3339))
	fmt.Fprintf(w, "Description:  %s\n", r.Description)
	if r.Notes != nil {
		fmt.Fprintf(w, "Notes:        %s\n", *r.Notes)
	}
	if r.AttachmentRef != nil {
		fmt.Fprintf(w, "Attachment:   %s\n", *r.AttachmentRef)
	}
	if r.AdminNotes != nil {
		fmt.Fprintf(w, "Admin notes:  %s\n", *r.AdminNotes)
	}
	fmt.Fprintln(w, "History:")
	for _, entry := range r.StatusHistory {
		line := fmt.Sprintf("  %s  %s", entry.Timestamp.Format(time.RFC3339), entry.Status)
		if entry.Notes != nil {
			line += "  " + *entry.Notes
		}
		fmt.Fprintln(w, line)
	}
}

func writeRecordTable(w io.Writer, records []model.AdminRecord) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TRACKING ID\tSTATUS\tTYPE\tURGENCY\tSUBMITTED\tLOCATION")
	for _, r := range records {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			r.TrackingID, r.Status, r.Type, r.Urgency, r.CreatedAt.Format("2006-01-02"), r.Location)
	}
	return tw.Flush()
}

func writeStatistics(w io.Writer, s model.Statistics) error {
	fmt.Fprintf(w, "Total: %d  Completed: %d  Pending: %d\n\n", s.TotalComplaints, s.Completed, s.Pending)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CATEGORY\tCOUNT")
	for _, c := range s.ByCategory {
		fmt.Fprintf(tw, "%s\t%d\n", c.Name, c.Value)
	}
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "MONTH\tCOMPLAINTS\t")
	for _, m := range s.MonthlyTrend {
		fmt.Fprintf(tw, "%s\t%d\t%s\n", m.Month, m.Complaints, strings.Repeat("#", m.Complaints))
	}
	return tw.Flush()
}
