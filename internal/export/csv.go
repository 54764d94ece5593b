// Package export writes report data to CSV files for spreadsheet use. It
// queries the store directly and synchronously; document formatting beyond
// plain CSV is out of scope.
package export

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"os/exec"
	goruntime "runtime"
	"strconv"
	"strings"

	"github.com/wailsapp/wails/v2/pkg/runtime"

	"github.com/dnikolaeva/collectdesk/internal/core"
	"github.com/dnikolaeva/collectdesk/internal/debug"
	"github.com/dnikolaeva/collectdesk/internal/store"
)

// Service handles CSV report export.
type Service struct {
	state *core.AppState
	store *store.Store
}

// NewService creates a new export service.
func NewService(state *core.AppState, st *store.Store) *Service {
	return &Service{
		state: state,
		store: st,
	}
}

// GetCSVSavePath opens a save dialog and returns the selected file path.
func (s *Service) GetCSVSavePath(defaultFilename string) (string, error) {
	filePath, err := runtime.SaveFileDialog(s.state.Ctx, runtime.SaveDialogOptions{
		DefaultFilename: defaultFilename,
		Title:           "Save CSV File",
		Filters: []runtime.FileFilter{
			{DisplayName: "CSV Files (*.csv)", Pattern: "*.csv"},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to open save dialog: %w", err)
	}
	if filePath == "" {
		return "", nil // User cancelled
	}
	// Ensure .csv extension
	if !strings.HasSuffix(strings.ToLower(filePath), ".csv") {
		filePath += ".csv"
	}
	return filePath, nil
}

// RevealInFinder opens the OS file manager and selects the specified file.
func (s *Service) RevealInFinder(filePath string) error {
	if filePath == "" {
		return fmt.Errorf("file path is required")
	}

	var cmd *exec.Cmd
	switch goruntime.GOOS {
	case "darwin":
		cmd = exec.Command("open", "-R", filePath)
	case "windows":
		cmd = exec.Command("explorer", "/select,", filePath)
	case "linux":
		// Different file managers have different commands, fallback to
		// xdg-open on the containing directory
		dir := filePath
		if idx := strings.LastIndex(filePath, "/"); idx > 0 {
			dir = filePath[:idx]
		}
		cmd = exec.Command("xdg-open", dir)
	default:
		return fmt.Errorf("unsupported operating system: %s", goruntime.GOOS)
	}

	return cmd.Start()
}

// ExportCollectorsCSV writes the collector list to a CSV file chosen by the
// user. Returns the written path, or "" when the dialog was cancelled.
func (s *Service) ExportCollectorsCSV(defaultFilename string) (string, error) {
	ctx, cancel := core.ContextWithTimeout()
	defer cancel()

	collectors, err := s.store.Collectors(ctx)
	if err != nil {
		return "", err
	}

	return s.writeCSV(defaultFilename, func(w *csv.Writer) error {
		if err := w.Write([]string{"id", "surname", "name", "patronymic", "email", "country", "description"}); err != nil {
			return err
		}
		for _, c := range collectors {
			record := []string{
				strconv.FormatInt(c.ID, 10), c.Surname, c.Name,
				c.Patronymic, c.Email, c.Country, c.Description,
			}
			if err := w.Write(record); err != nil {
				return err
			}
		}
		return nil
	})
}

// ExportCollectionsCSV writes the collection list to a CSV file chosen by
// the user.
func (s *Service) ExportCollectionsCSV(defaultFilename string) (string, error) {
	ctx, cancel := core.ContextWithTimeout()
	defer cancel()

	collections, err := s.store.Collections(ctx)
	if err != nil {
		return "", err
	}

	return s.writeCSV(defaultFilename, func(w *csv.Writer) error {
		if err := w.Write([]string{"id", "name", "author", "type", "created", "items", "description"}); err != nil {
			return err
		}
		for _, c := range collections {
			record := []string{
				strconv.FormatInt(c.ID, 10), c.Name,
				strconv.FormatInt(c.Author, 10), c.CollectionType,
				c.DateOfCreation, strconv.FormatInt(c.NumberOfItems, 10), c.Description,
			}
			if err := w.Write(record); err != nil {
				return err
			}
		}
		return nil
	})
}

// ExportCatalogCSV writes the catalog list to a CSV file chosen by the user.
func (s *Service) ExportCatalogCSV(defaultFilename string) (string, error) {
	ctx, cancel := core.ContextWithTimeout()
	defer cancel()

	items, err := s.store.Catalog(ctx)
	if err != nil {
		return "", err
	}

	return s.writeCSV(defaultFilename, func(w *csv.Writer) error {
		if err := w.Write([]string{"id", "name", "rare", "country", "released", "description"}); err != nil {
			return err
		}
		for _, it := range items {
			record := []string{
				strconv.FormatInt(it.ID, 10), it.Name, it.Rare,
				it.Country, it.ReleaseDate, it.Description,
			}
			if err := w.Write(record); err != nil {
				return err
			}
		}
		return nil
	})
}

// ExportSummaryCSV writes the aggregate summary report to a CSV file chosen
// by the user.
func (s *Service) ExportSummaryCSV(defaultFilename string) (string, error) {
	ctx, cancel := core.ContextWithTimeout()
	defer cancel()

	report, err := s.store.SummaryReport(ctx)
	if err != nil {
		return "", err
	}

	return s.writeCSV(defaultFilename, func(w *csv.Writer) error {
		return WriteSummary(w, report)
	})
}

// writeCSV resolves the target path via the save dialog, then streams rows
// through a buffered writer.
func (s *Service) writeCSV(defaultFilename string, write func(w *csv.Writer) error) (string, error) {
	filePath, err := s.GetCSVSavePath(defaultFilename)
	if err != nil {
		return "", err
	}
	if filePath == "" {
		return "", nil // User cancelled
	}

	file, err := os.Create(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if err := writeTo(file, write); err != nil {
		return "", err
	}

	debug.LogExport("csv report written", map[string]interface{}{"path": filePath})
	return filePath, nil
}

func writeTo(dst io.Writer, write func(w *csv.Writer) error) error {
	buffered := bufio.NewWriter(dst)
	w := csv.NewWriter(buffered)

	if err := write(w); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return buffered.Flush()
}
