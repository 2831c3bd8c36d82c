package catalog

import (
	"fmt"
	"sort"
	"strings"

	"PromoPilot/entity"
)

// columns maps sheet header names to record fields. The header row decides
// the column order, so the sheet can be rearranged without code changes.
var columns = map[string]func(*entity.ContentRecord, string){
	entity.FieldAudience: func(r *entity.ContentRecord, v string) { r.Audience = v },
	entity.FieldLanguage: func(r *entity.ContentRecord, v string) { r.Language = v },
	entity.FieldCountry:  func(r *entity.ContentRecord, v string) { r.Country = v },
	entity.FieldTopic:    func(r *entity.ContentRecord, v string) { r.Topic = v },
	entity.FieldFormat:   func(r *entity.ContentRecord, v string) { r.Format = v },
	"text":               func(r *entity.ContentRecord, v string) { r.Text = v },
	"image_id":           func(r *entity.ContentRecord, v string) { r.ImageID = v },
}

// ParseRows converts a raw sheet value range into content records. The
// first row is the header; unknown columns are ignored.
func ParseRows(rows [][]interface{}) []entity.ContentRecord {
	if len(rows) < 2 {
		return nil
	}

	header := make([]string, len(rows[0]))
	for i, cell := range rows[0] {
		header[i] = strings.ToLower(strings.TrimSpace(cellString(cell)))
	}

	records := make([]entity.ContentRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		var record entity.ContentRecord
		for i, cell := range row {
			if i >= len(header) {
				break
			}
			if set, ok := columns[header[i]]; ok {
				set(&record, cellString(cell))
			}
		}
		records = append(records, record)
	}
	return records
}

// UniqueFacetValues returns the sorted set of non-empty values of one facet.
func UniqueFacetValues(records []entity.ContentRecord, field string) []string {
	seen := make(map[string]struct{})
	for _, record := range records {
		if v := record.Facet(field); v != "" {
			seen[v] = struct{}{}
		}
	}

	values := make([]string, 0, len(seen))
	for v := range seen {
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}

func cellString(cell interface{}) string {
	switch v := cell.(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}
