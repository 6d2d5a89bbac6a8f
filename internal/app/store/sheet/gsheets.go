package sheet

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Value options for writes. RAW stores strings exactly as given, so dates
// stay "YYYY-MM-DD" instead of becoming locale-formatted date cells.
const (
	valueInputRaw  = "RAW"
	insertRowsMode = "INSERT_ROWS"
)

// SheetsWorkbook is a Google spreadsheet accessed through the Sheets API v4.
type SheetsWorkbook struct {
	svc *sheets.Service
	id  string

	mu  sync.Mutex
	ids map[string]int64 // worksheet title → sheetId
}

// OpenSheets connects to the spreadsheet with the given id. Credentials and
// endpoints are supplied through opts (see option.WithCredentials).
func OpenSheets(ctx context.Context, spreadsheetID string, opts ...option.ClientOption) (*SheetsWorkbook, error) {
	if strings.TrimSpace(spreadsheetID) == "" {
		return nil, errors.New("spreadsheet id is empty")
	}
	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, connErr("sheets client", err)
	}
	return &SheetsWorkbook{svc: svc, id: spreadsheetID, ids: map[string]int64{}}, nil
}

func (wb *SheetsWorkbook) Table(ctx context.Context, name string) (Table, error) {
	sid, err := wb.sheetID(ctx, name)
	if err != nil {
		return nil, err
	}
	return &sheetsTable{wb: wb, name: name, sheetID: sid}, nil
}

func (wb *SheetsWorkbook) EnsureTable(ctx context.Context, name string, header []string) error {
	_, err := wb.sheetID(ctx, name)
	if errors.Is(err, ErrTableNotFound) {
		err = wb.addSheet(ctx, name)
	}
	if err != nil {
		return err
	}

	t := &sheetsTable{wb: wb, name: name}
	vals, err := t.Values(ctx)
	if err != nil {
		return err
	}
	if len(vals) > 0 {
		return nil
	}
	vr := &sheets.ValueRange{Values: [][]interface{}{toCells(header)}}
	_, err = wb.svc.Spreadsheets.Values.Update(wb.id, a1(name, 1), vr).
		ValueInputOption(valueInputRaw).Context(ctx).Do()
	if err != nil {
		return mapAPIError("write header "+name, err)
	}
	return nil
}

func (wb *SheetsWorkbook) Ping(ctx context.Context) error {
	_, err := wb.svc.Spreadsheets.Get(wb.id).Fields("spreadsheetId").Context(ctx).Do()
	if err != nil {
		return mapAPIError("ping", err)
	}
	return nil
}

// Close is a no-op; the HTTP client is owned by the Sheets service.
func (wb *SheetsWorkbook) Close() error { return nil }

// sheetID resolves a worksheet title, refreshing the title map once on a miss
// so worksheets added outside this process are picked up.
func (wb *SheetsWorkbook) sheetID(ctx context.Context, name string) (int64, error) {
	wb.mu.Lock()
	sid, ok := wb.ids[name]
	wb.mu.Unlock()
	if ok {
		return sid, nil
	}

	ss, err := wb.svc.Spreadsheets.Get(wb.id).Fields("sheets.properties(sheetId,title)").Context(ctx).Do()
	if err != nil {
		return 0, mapAPIError("list worksheets", err)
	}

	wb.mu.Lock()
	defer wb.mu.Unlock()
	wb.ids = make(map[string]int64, len(ss.Sheets))
	for _, s := range ss.Sheets {
		if s.Properties != nil {
			wb.ids[s.Properties.Title] = s.Properties.SheetId
		}
	}
	sid, ok = wb.ids[name]
	if !ok {
		return 0, ErrTableNotFound
	}
	return sid, nil
}

func (wb *SheetsWorkbook) addSheet(ctx context.Context, name string) error {
	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{Title: name},
			},
		}},
	}
	resp, err := wb.svc.Spreadsheets.BatchUpdate(wb.id, req).Context(ctx).Do()
	if err != nil {
		return mapAPIError("add worksheet "+name, err)
	}
	if len(resp.Replies) > 0 && resp.Replies[0].AddSheet != nil && resp.Replies[0].AddSheet.Properties != nil {
		wb.mu.Lock()
		wb.ids[name] = resp.Replies[0].AddSheet.Properties.SheetId
		wb.mu.Unlock()
	}
	return nil
}

type sheetsTable struct {
	wb      *SheetsWorkbook
	name    string
	sheetID int64
}

func (t *sheetsTable) Name() string { return t.name }

func (t *sheetsTable) Values(ctx context.Context) ([][]string, error) {
	resp, err := t.wb.svc.Spreadsheets.Values.Get(t.wb.id, quote(t.name)).Context(ctx).Do()
	if err != nil {
		return nil, mapAPIError("read "+t.name, err)
	}
	out := make([][]string, len(resp.Values))
	for i, r := range resp.Values {
		row := make([]string, len(r))
		for j, c := range r {
			if c != nil {
				row[j] = fmt.Sprint(c)
			}
		}
		out[i] = row
	}
	return out, nil
}

func (t *sheetsTable) Append(ctx context.Context, row []string) error {
	vr := &sheets.ValueRange{Values: [][]interface{}{toCells(row)}}
	_, err := t.wb.svc.Spreadsheets.Values.Append(t.wb.id, a1(t.name, 1), vr).
		ValueInputOption(valueInputRaw).
		InsertDataOption(insertRowsMode).
		Context(ctx).Do()
	if err != nil {
		return mapAPIError("append "+t.name, err)
	}
	return nil
}

func (t *sheetsTable) Update(ctx context.Context, position int, row []string) error {
	if position < 0 {
		return fmt.Errorf("%w: %d", ErrOutOfRange, position)
	}
	vr := &sheets.ValueRange{Values: [][]interface{}{toCells(row)}}
	_, err := t.wb.svc.Spreadsheets.Values.Update(t.wb.id, a1(t.name, PhysicalRow(position)), vr).
		ValueInputOption(valueInputRaw).Context(ctx).Do()
	if err != nil {
		return mapAPIError("update "+t.name, err)
	}
	return nil
}

func (t *sheetsTable) Delete(ctx context.Context, position int) error {
	if position < 0 {
		return fmt.Errorf("%w: %d", ErrOutOfRange, position)
	}
	phys := int64(PhysicalRow(position))
	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			DeleteDimension: &sheets.DeleteDimensionRequest{
				Range: &sheets.DimensionRange{
					SheetId:    t.sheetID,
					Dimension:  "ROWS",
					StartIndex: phys - 1,
					EndIndex:   phys,
					// The first worksheet usually has sheetId 0, which
					// would otherwise be dropped from the JSON body.
					ForceSendFields: []string{"SheetId"},
				},
			},
		}},
	}
	_, err := t.wb.svc.Spreadsheets.BatchUpdate(t.wb.id, req).Context(ctx).Do()
	if err != nil {
		return mapAPIError("delete row "+t.name, err)
	}
	return nil
}

func toCells(row []string) []interface{} {
	cells := make([]interface{}, len(row))
	for i, v := range row {
		cells[i] = v
	}
	return cells
}

// quote wraps a worksheet title for A1 notation.
func quote(name string) string {
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}

func a1(name string, row int) string {
	return fmt.Sprintf("%s!A%d", quote(name), row)
}

// mapAPIError classifies a Sheets API failure. 404 and an unparsable range
// (the worksheet was removed) are NotFound; everything else is a connection
// failure.
func mapAPIError(op string, err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch {
		case gerr.Code == http.StatusNotFound:
			return fmt.Errorf("%s: %w", op, ErrTableNotFound)
		case gerr.Code == http.StatusBadRequest && strings.Contains(gerr.Message, "Unable to parse range"):
			return fmt.Errorf("%s: %w", op, ErrTableNotFound)
		}
	}
	return connErr(op, err)
}
