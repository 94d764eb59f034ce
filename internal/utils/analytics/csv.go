package analytics

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/expense_tracker/internal/apperrors"
	"github.com/SscSPs/expense_tracker/internal/core/domain"
)

// timestamp layouts seen in storefront CSV exports
var exportTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05 -0700",
	"2006-01-02 15:04:05 MST",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	domain.DateLayout,
	"01/02/2006",
}

// ParseOrdersCSV reads an order export. Each row yields the UTC date of "Created at",
// the "Total" amount (0 when unparseable) and the order id from "Name" or "Order ID".
func ParseOrdersCSV(r io.Reader) ([]domain.OrderData, error) {
	rows, err := readCSVRecords(r)
	if err != nil {
		return nil, err
	}

	orders := make([]domain.OrderData, 0, len(rows))
	for _, row := range rows {
		total, err := strconv.ParseFloat(leadingNumber(row.get("Total")), 64)
		if err != nil {
			total = 0
		}

		orderID := row.get("Name")
		if orderID == "" {
			orderID = row.get("Order ID")
		}

		orders = append(orders, domain.OrderData{
			Date:       exportDate(row.get("Created at")),
			OrderID:    orderID,
			TotalPrice: total,
		})
	}
	return orders, nil
}

// ParseSessionsCSV reads a traffic export. The date comes from "Date" or "Day"; the session
// count from "Sessions", "Total sessions", "session_count" or the first column mentioning sessions.
func ParseSessionsCSV(r io.Reader) ([]domain.SessionData, error) {
	rows, err := readCSVRecords(r)
	if err != nil {
		return nil, err
	}

	sessions := make([]domain.SessionData, 0, len(rows))
	for _, row := range rows {
		date := row.get("Date")
		if date == "" {
			date = row.get("Day")
		}

		count := 0
		switch {
		case row.has("Sessions"):
			count, _ = parseLeadingInt(row.get("Sessions"))
		case row.has("Total sessions"):
			count, _ = parseLeadingInt(row.get("Total sessions"))
		case row.has("session_count"):
			count, _ = parseLeadingInt(row.get("session_count"))
		default:
			for i, key := range row.header {
				if !strings.Contains(strings.ToLower(key), "session") {
					continue
				}
				if n, ok := parseLeadingInt(row.values[i]); ok {
					count = n
					break
				}
			}
		}

		sessions = append(sessions, domain.SessionData{Date: date, Sessions: count})
	}
	return sessions, nil
}

type csvRow struct {
	header []string
	values []string
	index  map[string]int
}

func (r csvRow) has(key string) bool {
	_, ok := r.index[key]
	return ok
}

func (r csvRow) get(key string) string {
	i, ok := r.index[key]
	if !ok || i >= len(r.values) {
		return ""
	}
	return r.values[i]
}

// readCSVRecords reads a header row followed by data rows, skipping blank lines.
func readCSVRecords(r io.Reader) ([]csvRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return []csvRow{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: invalid CSV header: %v", apperrors.ErrValidation, err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	index := make(map[string]int, len(header))
	for i, h := range header {
		if _, dup := index[h]; !dup {
			index[h] = i
		}
	}

	rows := []csvRow{}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: invalid CSV row: %v", apperrors.ErrValidation, err)
		}
		if isBlankRecord(record) {
			continue
		}
		values := make([]string, len(header))
		copy(values, record)
		rows = append(rows, csvRow{header: header, values: values, index: index})
	}
	return rows, nil
}

func isBlankRecord(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func exportDate(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	for _, layout := range exportTimeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC().Format(domain.DateLayout)
		}
	}
	if len(raw) >= 10 {
		return raw[:10]
	}
	return raw
}

// leadingNumber returns the longest numeric prefix of s, e.g. "12.5 USD" -> "12.5".
func leadingNumber(s string) string {
	s = strings.TrimSpace(s)
	end := 0
	seenDot := false
	for i, c := range s {
		switch {
		case c >= '0' && c <= '9':
		case c == '.' && !seenDot:
			seenDot = true
		case (c == '-' || c == '+') && i == 0:
		default:
			return s[:end]
		}
		end = i + 1
	}
	return s[:end]
}

func parseLeadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	end := 0
	for i, c := range s {
		if (c >= '0' && c <= '9') || ((c == '-' || c == '+') && i == 0) {
			end = i + 1
			continue
		}
		break
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
