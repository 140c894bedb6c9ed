package analytics

import (
	"ConteudoOH-Backend/internal/domain"
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"
)

const (
	clicksSheet  = "clicks"
	summarySheet = "summary"
)

// ExportXLSX renders the clicks matching filter and their aggregate report
// as an Excel workbook.
func (a *Aggregator) ExportXLSX(ctx context.Context, filter Filter) (string, []byte, error) {
	records, err := a.store.ListClicks(ctx, filter.clickFilter())
	if err != nil {
		return "", nil, fmt.Errorf("failed to scan clicks: %w", err)
	}
	report, err := a.LinkAnalytics(ctx, filter)
	if err != nil {
		return "", nil, err
	}

	xl := excelize.NewFile()
	defer func() { _ = xl.Close() }()

	if err := xl.SetSheetName(xl.GetSheetName(0), clicksSheet); err != nil {
		return "", nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	header := []string{
		"click_id", "link_id", "identifier", "ponto_dooh", "campanha", "clicked_at",
		"ip_address", "device_type", "browser", "operating_system",
		"country", "state", "city", "isp", "language", "referrer",
	}
	if err := xl.SetSheetRow(clicksSheet, "A1", &header); err != nil {
		return "", nil, fmt.Errorf("failed to write header: %w", err)
	}

	for i := range records {
		rec := &records[i]
		row := []string{
			strconv.FormatInt(rec.ID, 10),
			strconv.FormatInt(rec.LinkID, 10),
			rec.Identifier,
			rec.PontoDOOH,
			rec.Campanha,
			domain.InLocation(rec.ClickedAt).Format(time.RFC3339),
			deref(rec.IPAddress),
			rec.GetDeviceType(),
			deref(rec.Browser),
			deref(rec.OperatingSystem),
			deref(rec.Country),
			deref(rec.State),
			deref(rec.City),
			deref(rec.ISP),
			deref(rec.Language),
			deref(rec.Referrer),
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := xl.SetSheetRow(clicksSheet, cell, &row); err != nil {
			return "", nil, fmt.Errorf("failed to write click row: %w", err)
		}
	}

	if _, err := xl.NewSheet(summarySheet); err != nil {
		return "", nil, fmt.Errorf("failed to create summary sheet: %w", err)
	}
	if err := writeSummary(xl, report); err != nil {
		return "", nil, err
	}

	buf, err := xl.WriteToBuffer()
	if err != nil {
		return "", nil, fmt.Errorf("failed to write workbook: %w", err)
	}

	filename := fmt.Sprintf("analytics_%s.xlsx", domain.Now().Format("20060102_150405"))
	return filename, buf.Bytes(), nil
}

func writeSummary(xl *excelize.File, report *Report) error {
	rows := [][]interface{}{
		{"metric", "key", "value"},
		{"total_clicks", "", report.TotalClicks},
		{"unique_ips", "", report.UniqueIPs},
	}

	groups := []struct {
		name string
		m    map[string]int64
	}{
		{"clicks_by_ponto", report.ClicksByPonto},
		{"clicks_by_campanha", report.ClicksByCampanha},
		{"clicks_by_device", report.ClicksByDevice},
		{"clicks_by_country", report.ClicksByCountry},
		{"clicks_by_day", report.ClicksByDay},
	}
	for _, g := range groups {
		for _, k := range sortedKeys(g.m) {
			rows = append(rows, []interface{}{g.name, k, g.m[k]})
		}
	}
	for _, l := range report.TopLinks {
		rows = append(rows, []interface{}{"top_links", l.Identifier, l.TotalClicks})
	}

	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		r := row
		if err := xl.SetSheetRow(summarySheet, cell, &r); err != nil {
			return fmt.Errorf("failed to write summary row: %w", err)
		}
	}
	return nil
}

func sortedKeys(m map[string]int64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
