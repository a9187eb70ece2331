// api/models/printjob.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// PrintJob is the ledger's record of one completed print attempt. A failed
// print is a valid terminal outcome, not an omission.
type PrintJob struct {
	ID           string    `json:"id"`
	Timestamp    time.Time `json:"timestamp"`
	PrinterName  string    `json:"printerName"`
	Success      bool      `json:"success"`
	ErrorMessage string    `json:"errorMessage,omitempty"`
}

// NewPrintJob derives a ledger record from a print result, capturing the
// completion time.
func NewPrintJob(result PrintResult) PrintJob {
	return PrintJob{
		ID:           uuid.New().String(),
		Timestamp:    time.Now().UTC(),
		PrinterName:  result.PrinterName,
		Success:      result.Success,
		ErrorMessage: result.ErrorMessage,
	}
}
