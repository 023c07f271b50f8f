package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"french_assessment_backend/internal/model"
	"french_assessment_backend/internal/util"

	"github.com/samber/lo"
	"github.com/tidwall/gjson"
)

// TargetKind tags where a submission is delivered.
type TargetKind string

const (
	TargetLocalAPI    TargetKind = "local"
	TargetSpreadsheet TargetKind = "spreadsheet"
)

func ParseTargetKind(s string) (TargetKind, bool) {
	switch TargetKind(strings.ToLower(strings.TrimSpace(s))) {
	case TargetLocalAPI:
		return TargetLocalAPI, true
	case TargetSpreadsheet:
		return TargetSpreadsheet, true
	}
	return "", false
}

// SubmissionTarget delivers one submission. Errors wrap util.ErrTransport
// or util.ErrRejected so callers can tell them apart.
type SubmissionTarget interface {
	Kind() TargetKind
	Deliver(ctx context.Context, sub *model.Submission, p *Payload) error
}

// SubmissionStore persists submissions for the local API target and the
// admin listing.
type SubmissionStore interface {
	Create(ctx context.Context, sub *model.Submission) error
	List(ctx context.Context, page, limit int, framework string) ([]model.Submission, int64, error)
	All(ctx context.Context) ([]model.Submission, error)
}

// LocalAPITarget stores the submission in the database and appends it to
// the CSV file.
type LocalAPITarget struct {
	Store SubmissionStore
	CSV   *CSVSink
}

func NewLocalAPITarget(store SubmissionStore, csv *CSVSink) *LocalAPITarget {
	return &LocalAPITarget{Store: store, CSV: csv}
}

func (t *LocalAPITarget) Kind() TargetKind { return TargetLocalAPI }

func (t *LocalAPITarget) Deliver(ctx context.Context, sub *model.Submission, p *Payload) error {
	if err := t.Store.Create(ctx, sub); err != nil {
		return fmt.Errorf("%w: store submission: %v", util.ErrTransport, err)
	}
	if t.CSV != nil {
		if err := t.CSV.Append(p); err != nil {
			return fmt.Errorf("%w: append csv: %v", util.ErrTransport, err)
		}
	}
	return nil
}

// SpreadsheetTarget posts the payload to a spreadsheet-backed script.
type SpreadsheetTarget struct {
	URL    string
	Client *http.Client
}

func NewSpreadsheetTarget(url string, client *http.Client) *SpreadsheetTarget {
	if client == nil {
		client = &http.Client{}
	}
	return &SpreadsheetTarget{URL: url, Client: client}
}

func (t *SpreadsheetTarget) Kind() TargetKind { return TargetSpreadsheet }

// Deliver succeeds only on a 2xx {"status":"ok"} response. An error body is a
// rejection; anything else, including timeouts, is a transport failure.
func (t *SpreadsheetTarget) Deliver(ctx context.Context, _ *model.Submission, p *Payload) error {
	body, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %v", util.ErrTransport, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.Client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", util.ErrTransport, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("%w: read response: %v", util.ErrTransport, err)
	}

	if !gjson.ValidBytes(raw) {
		return fmt.Errorf("%w: status %d with unreadable body", util.ErrTransport, resp.StatusCode)
	}

	res := gjson.ParseBytes(raw)
	switch strings.ToLower(res.Get("status").String()) {
	case "ok":
		if resp.StatusCode/100 == 2 {
			return nil
		}
		return fmt.Errorf("%w: status %d", util.ErrTransport, resp.StatusCode)
	case "error":
		msg := res.Get("message").String()
		if msg == "" {
			msg = "no reason given"
		}
		return &RejectedError{Message: msg}
	}
	return fmt.Errorf("%w: status %d without a status field", util.ErrTransport, resp.StatusCode)
}

// RejectedError carries the target's own explanation of a refusal.
type RejectedError struct {
	Message string
}

func (e *RejectedError) Error() string {
	return util.ErrRejected.Error() + ": " + e.Message
}

func (e *RejectedError) Unwrap() error {
	return util.ErrRejected
}

// RejectionMessage returns the target's message when err is a rejection.
func RejectionMessage(err error) string {
	var rej *RejectedError
	if errors.As(err, &rej) {
		return rej.Message
	}
	return ""
}

// CSVSink appends payloads to a CSV file. The header comes from the first
// payload written; later rows are laid out by that header, and keys it does
// not know yet widen it, with blank cells in the older rows.
type CSVSink struct {
	mu     sync.Mutex
	path   string
	header []string
}

func NewCSVSink(path string) *CSVSink {
	return &CSVSink{path: path}
}

func (s *CSVSink) Append(p *Payload) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	if s.header == nil {
		header, err := readCSVHeader(s.path)
		if err != nil {
			return err
		}
		s.header = header
	}

	if len(s.header) == 0 {
		return s.rewrite(p.Keys(), p)
	}
	if extra := lo.Without(p.Keys(), s.header...); len(extra) > 0 {
		return s.rewrite(append(append([]string{}, s.header...), extra...), p)
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvRow(s.header, p)); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

// rewrite writes the file again under header, padding the existing rows,
// and appends p.
func (s *CSVSink) rewrite(header []string, p *Payload) error {
	var rows [][]string
	if f, err := os.Open(s.path); err == nil {
		r := csv.NewReader(f)
		r.FieldsPerRecord = -1
		rows, err = r.ReadAll()
		f.Close()
		if err != nil {
			return fmt.Errorf("read %s: %w", s.path, err)
		}
		if len(rows) > 0 {
			rows = rows[1:]
		}
	} else if !os.IsNotExist(err) {
		return err
	}

	tmp := s.path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		f.Close()
		return err
	}
	for _, row := range rows {
		if len(row) < len(header) {
			row = append(row, make([]string, len(header)-len(row))...)
		}
		if err := w.Write(row); err != nil {
			f.Close()
			return err
		}
	}
	if err := w.Write(csvRow(header, p)); err != nil {
		f.Close()
		return err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return err
	}
	s.header = header
	return nil
}

func readCSVHeader(path string) ([]string, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	header, err := r.Read()
	if err == io.EOF {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header of %s: %w", path, err)
	}
	return header, nil
}

func csvRow(header []string, p *Payload) []string {
	row := make([]string, len(header))
	for i, k := range header {
		row[i] = p.String(k)
	}
	return row
}
