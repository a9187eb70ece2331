package printer

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// PaperSize is one media size reported by a device driver. Width and height
// are in driver point units; CUPS only exposes the media name, in which case
// both stay zero and matching is purely textual.
type PaperSize struct {
	Name        string `json:"name"`
	WidthUnits  int    `json:"widthUnits"`
	HeightUnits int    `json:"heightUnits"`
}

// PrintOptions control a single spool submission
type PrintOptions struct {
	// Driver media name; empty keeps the device's configured size
	Media string
}

// Spooler is the host print system capability the executor runs against.
// Enumeration and default lookup are idempotent pass-through queries, never
// cached beyond a single resolution.
type Spooler interface {
	Printers() ([]string, error)
	DefaultPrinter() (string, error)
	PaperSizes(printer string) ([]PaperSize, error)
	Print(printer, path string, opts PrintOptions) error
}

// CUPSSpooler talks to the local CUPS daemon through its client tools
type CUPSSpooler struct{}

// Printers returns the registered destination names in system order
func (CUPSSpooler) Printers() ([]string, error) {
	out, err := exec.Command("lpstat", "-e").Output()
	if err != nil {
		return nil, fmt.Errorf("enumerate printers: %w", err)
	}

	var names []string
	for _, line := range strings.Split(string(out), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			names = append(names, line)
		}
	}
	return names, nil
}

// DefaultPrinter returns the system default destination
func (CUPSSpooler) DefaultPrinter() (string, error) {
	out, err := exec.Command("lpstat", "-d").Output()
	if err != nil {
		return "", fmt.Errorf("query default printer: %w", err)
	}

	// "system default destination: NAME", or "no system default destination"
	s := strings.TrimSpace(string(out))
	if i := strings.LastIndex(s, ": "); i >= 0 {
		return s[i+2:], nil
	}
	return "", errors.New("no default printer configured")
}

// PaperSizes returns the media sizes the destination's driver advertises
func (CUPSSpooler) PaperSizes(printer string) ([]PaperSize, error) {
	out, err := exec.Command("lpoptions", "-p", printer, "-l").Output()
	if err != nil {
		return nil, fmt.Errorf("query paper sizes for %s: %w", printer, err)
	}

	// Relevant line: "PageSize/Media Size: *Letter 4x6 w81h252 ..."
	var sizes []PaperSize
	for _, line := range strings.Split(string(out), "\n") {
		if !strings.HasPrefix(line, "PageSize/") && !strings.HasPrefix(line, "PageSize:") {
			continue
		}
		_, choices, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		for _, choice := range strings.Fields(choices) {
			// the current selection carries a leading asterisk
			sizes = append(sizes, PaperSize{Name: strings.TrimPrefix(choice, "*")})
		}
		break
	}
	return sizes, nil
}

// Print submits one file for silent printing with zero margins on all four
// sides. The call blocks until the spooler has accepted the job.
func (CUPSSpooler) Print(printer, path string, opts PrintOptions) error {
	args := []string{
		"-d", printer,
		"-o", "page-left=0",
		"-o", "page-right=0",
		"-o", "page-top=0",
		"-o", "page-bottom=0",
	}
	if opts.Media != "" {
		args = append(args, "-o", "media="+opts.Media)
	}
	args = append(args, path)

	if out, err := exec.Command("lp", args...).CombinedOutput(); err != nil {
		return fmt.Errorf("lp: %v: %s", err, strings.TrimSpace(string(out)))
	}
	return nil
}
