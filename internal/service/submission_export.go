package service

import (
	"context"
	"encoding/csv"
	"io"

	"french_assessment_backend/internal/model"

	"github.com/tidwall/gjson"
)

// ExportCSV writes every stored submission as one CSV row. Columns are the
// payload keys in first-seen order, so older rows simply leave newer
// columns blank.
func (s *SubmissionService) ExportCSV(ctx context.Context, w io.Writer) (int, error) {
	subs, err := s.All(ctx)
	if err != nil {
		return 0, err
	}
	return WriteSubmissionsCSV(subs, w)
}

func WriteSubmissionsCSV(subs []model.Submission, w io.Writer) (int, error) {
	var header []string
	seen := make(map[string]int)
	rows := make([]map[string]string, 0, len(subs))

	for _, sub := range subs {
		row := map[string]string{"submission_id": sub.ID}
		if _, ok := seen["submission_id"]; !ok {
			seen["submission_id"] = len(header)
			header = append(header, "submission_id")
		}
		gjson.ParseBytes(sub.Payload).ForEach(func(key, value gjson.Result) bool {
			k := key.String()
			if _, ok := seen[k]; !ok {
				seen[k] = len(header)
				header = append(header, k)
			}
			row[k] = value.String()
			return true
		})
		rows = append(rows, row)
	}

	cw := csv.NewWriter(w)
	if len(header) > 0 {
		if err := cw.Write(header); err != nil {
			return 0, err
		}
	}
	for _, row := range rows {
		record := make([]string, len(header))
		for i, k := range header {
			record[i] = row[k]
		}
		if err := cw.Write(record); err != nil {
			return 0, err
		}
	}
	cw.Flush()
	return len(rows), cw.Error()
}
