// api/models/models.go
package models

// PrintRequest represents one HTTP print submission
type PrintRequest struct {
	// Base64-encoded raster image, optionally a data URL
	ImageData string `json:"imageBytes"`
	// Target printer; empty means the system default
	PrinterName string `json:"printerName,omitempty"`
}

// PrintResult is the outcome of one print attempt
type PrintResult struct {
	Success      bool   `json:"success"`
	PrinterName  string `json:"printerName"`
	ErrorMessage string `json:"errorMessage,omitempty"`
}

// HelloMessage is pushed once when a WebSocket client connects
type HelloMessage struct {
	Type           string   `json:"type"`
	Status         string   `json:"status"`
	Printers       []string `json:"printers"`
	DefaultPrinter string   `json:"defaultPrinter"`
}

// NewHelloMessage builds the capability snapshot for a fresh connection
func NewHelloMessage(printers []string, defaultPrinter string) HelloMessage {
	if printers == nil {
		printers = []string{}
	}
	return HelloMessage{
		Type:           "connection",
		Status:         "connected",
		Printers:       printers,
		DefaultPrinter: defaultPrinter,
	}
}

// ErrorMessage is the inline WebSocket reply for frames that cannot be
// treated as a print submission at all
type ErrorMessage struct {
	Error string `json:"error"`
}
