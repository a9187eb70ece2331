package printer

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"sync"

	"github.com/hashicorp/go-hclog"

	"github.com/printbridge/printbridge/api/models"
	"github.com/printbridge/printbridge/imaging"
	"github.com/printbridge/printbridge/ledger"
)

// ErrInvalidPrinter reports a requested printer name that is not registered
// on the system.
var ErrInvalidPrinter = errors.New("Invalid printer")

// Executor runs the label print pipeline against the host spooler. At most
// one print is in flight per resolved device at any instant; submissions to
// different devices proceed independently.
type Executor struct {
	spooler    Spooler
	jobs       *ledger.Ledger
	label      LabelSpec
	dpi        int
	scratchDir string
	logger     hclog.Logger

	mu      sync.Mutex
	devices map[string]*sync.Mutex
}

// NewExecutor creates an Executor
func NewExecutor(spooler Spooler, jobs *ledger.Ledger, label LabelSpec, dpi int, scratchDir string, logger hclog.Logger) *Executor {
	return &Executor{
		spooler:    spooler,
		jobs:       jobs,
		label:      label,
		dpi:        dpi,
		scratchDir: scratchDir,
		logger:     logger,
		devices:    make(map[string]*sync.Mutex),
	}
}

// PrintLabel decodes one submission and prints it on the named printer, or
// the system default when the name is empty. Every failure is folded into
// the returned result; nothing escapes as an error. Exactly one ledger entry
// is recorded per call, at completion.
func (e *Executor) PrintLabel(encoded, printerName string) models.PrintResult {
	result := e.run(encoded, printerName)
	e.jobs.Append(models.NewPrintJob(result))
	return result
}

func (e *Executor) run(encoded, printerName string) models.PrintResult {
	img, width, height, err := imaging.Decode(encoded)
	if err != nil {
		e.logger.Debug("decode failed", "error", err)
		return failure(printerName, err)
	}

	device, err := e.resolveDevice(printerName)
	if err != nil {
		e.logger.Warn("device resolution failed", "printer", printerName, "error", err)
		return failure(printerName, err)
	}

	lock := e.deviceLock(device)
	lock.Lock()
	defer lock.Unlock()

	// Diagnostic only: rendering is 1:1, never scaled to this size.
	e.logger.Debug("printing label",
		"printer", device,
		"widthPx", width,
		"heightPx", height,
		"widthInches", float64(width)/float64(e.dpi),
		"heightInches", float64(height)/float64(e.dpi))

	opts := PrintOptions{}
	sizes, err := e.spooler.PaperSizes(device)
	if err != nil {
		e.logger.Warn("paper size enumeration failed, keeping configured size",
			"printer", device, "error", err)
	} else if paper, ok := ResolvePaper(sizes, e.label); ok {
		opts.Media = paper.Name
	} else {
		e.logger.Warn("no media matches the label geometry, keeping configured size",
			"printer", device)
	}

	// Spool backends draw from a file handle, not an in-memory bitmap.
	path, err := e.writeScratch(img)
	if err != nil {
		return failure(device, err)
	}
	defer func() {
		if err := os.Remove(path); err != nil {
			e.logger.Warn("failed to remove scratch image", "path", path, "error", err)
		}
	}()

	if err := e.spooler.Print(device, path, opts); err != nil {
		e.logger.Error("print failed", "printer", device, "error", err)
		return failure(device, err)
	}

	e.logger.Info("label printed", "printer", device, "media", opts.Media)
	return models.PrintResult{Success: true, PrinterName: device}
}

// resolveDevice maps an explicit printer name to a registered destination,
// or falls back to the system default when none is given.
func (e *Executor) resolveDevice(printerName string) (string, error) {
	if printerName == "" {
		device, err := e.spooler.DefaultPrinter()
		if err != nil {
			return "", fmt.Errorf("resolve default printer: %w", err)
		}
		return device, nil
	}

	printers, err := e.spooler.Printers()
	if err != nil {
		return "", fmt.Errorf("enumerate printers: %w", err)
	}
	for _, name := range printers {
		if name == printerName {
			return printerName, nil
		}
	}
	return "", ErrInvalidPrinter
}

func (e *Executor) deviceLock(device string) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()

	lock, ok := e.devices[device]
	if !ok {
		lock = &sync.Mutex{}
		e.devices[device] = lock
	}
	return lock
}

func (e *Executor) writeScratch(img image.Image) (string, error) {
	f, err := os.CreateTemp(e.scratchDir, "label-*.png")
	if err != nil {
		return "", fmt.Errorf("create scratch image: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("write scratch image: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("write scratch image: %w", err)
	}
	return f.Name(), nil
}

func failure(printerName string, err error) models.PrintResult {
	return models.PrintResult{PrinterName: printerName, ErrorMessage: err.Error()}
}
