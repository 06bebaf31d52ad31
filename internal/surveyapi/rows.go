package surveyapi

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// Row is one export row. Columns keeps the order in which the backend sent
// the fields, which a plain map would lose.
type Row struct {
	Columns []string
	Values  map[string]any
}

// Get returns the value of a column, or nil when absent.
func (r Row) Get(column string) any {
	return r.Values[column]
}

// ParseRows decodes a JSON array of flat objects, preserving field order.
func ParseRows(raw []byte) ([]Row, error) {
	if !gjson.ValidBytes(raw) {
		return nil, errors.New("invalid JSON")
	}
	doc := gjson.ParseBytes(raw)
	if !doc.IsArray() {
		return nil, fmt.Errorf("expected a JSON array, got %s", doc.Type)
	}

	rows := []Row{}
	var err error
	doc.ForEach(func(_, item gjson.Result) bool {
		if !item.IsObject() {
			err = fmt.Errorf("row %d: expected an object", len(rows))
			return false
		}
		row := Row{Values: make(map[string]any)}
		item.ForEach(func(key, value gjson.Result) bool {
			col := key.String()
			if _, dup := row.Values[col]; !dup {
				row.Columns = append(row.Columns, col)
			}
			row.Values[col] = value.Value()
			return true
		})
		rows = append(rows, row)
		return true
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Header returns the union of the rows' columns in first-seen order.
func Header(rows []Row) []string {
	seen := make(map[string]bool)
	var header []string
	for _, r := range rows {
		for _, c := range r.Columns {
			if !seen[c] {
				seen[c] = true
				header = append(header, c)
			}
		}
	}
	return header
}

// detailReason extracts a human-readable reason from an error body of the
// form {"detail": "..."} or {"detail": [{"msg": "..."}]}.
func detailReason(body []byte) string {
	if !gjson.ValidBytes(body) {
		return ""
	}
	detail := gjson.GetBytes(body, "detail")
	switch {
	case detail.Type == gjson.String:
		return detail.String()
	case detail.IsArray():
		var msgs []string
		for _, m := range detail.Get("#.msg").Array() {
			msgs = append(msgs, m.String())
		}
		if len(msgs) > 0 {
			return strings.Join(msgs, "; ")
		}
	}
	return ""
}
