package google

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"

	"arvr-research-backend/internal/sheets"
	"arvr-research-backend/internal/shared/telemetry"
)

// Client implements sheets.Appender against the Google Sheets API. The
// spreadsheet is resolved by display name through the Drive API, mirroring
// an open-by-name workflow on a spreadsheet already shared with the
// service account.
type Client struct {
	drive           *drive.Service
	sheets          *gsheets.Service
	spreadsheetName string
	timeout         time.Duration
	now             func() time.Time
}

// NewClient constructs the client from service-account key material.
func NewClient(ctx context.Context, credentialsJSON []byte, spreadsheetName string) (*Client, error) {
	if strings.TrimSpace(spreadsheetName) == "" {
		return nil, fmt.Errorf("spreadsheet name is required")
	}

	timeout := 30 * time.Second
	if raw := strings.TrimSpace(os.Getenv("SHEETS_TIMEOUT_SECONDS")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			timeout = time.Duration(parsed) * time.Second
		}
	}

	driveSvc, err := drive.NewService(ctx,
		option.WithCredentialsJSON(credentialsJSON),
		option.WithScopes(drive.DriveMetadataReadonlyScope),
	)
	if err != nil {
		return nil, fmt.Errorf("init drive service: %w", err)
	}

	sheetsSvc, err := gsheets.NewService(ctx,
		option.WithCredentialsJSON(credentialsJSON),
		option.WithScopes(gsheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("init sheets service: %w", err)
	}

	return &Client{
		drive:           driveSvc,
		sheets:          sheetsSvc,
		spreadsheetName: spreadsheetName,
		timeout:         timeout,
		now:             time.Now,
	}, nil
}

// AppendRow resolves the spreadsheet, opens its first worksheet, and appends
// [document_name, document_link, pps, solutions, to_solve, timestamp].
func (c *Client) AppendRow(ctx context.Context, row sheets.Row) (sheets.AppendResult, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	spreadsheetID, err := c.resolveSpreadsheetID(callCtx)
	if err != nil {
		return sheets.AppendResult{}, err
	}

	worksheet, err := c.firstWorksheetTitle(callCtx, spreadsheetID)
	if err != nil {
		return sheets.AppendResult{}, err
	}

	timestamp := c.now().Format(sheets.TimestampLayout)
	values := &gsheets.ValueRange{
		Values: [][]interface{}{{
			row.DocumentName,
			row.DocumentLink,
			row.ProblemStatement,
			row.Solutions,
			row.ToSolve,
			timestamp,
		}},
	}

	appendRange := fmt.Sprintf("'%s'!A1", worksheet)
	_, err = c.sheets.Spreadsheets.Values.Append(spreadsheetID, appendRange, values).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(callCtx).
		Do()
	if err != nil {
		return sheets.AppendResult{}, fmt.Errorf("sheet append spreadsheet=%s: %w", spreadsheetID, err)
	}

	telemetry.Info("sheet.append", map[string]any{
		"spreadsheet_id": spreadsheetID,
		"worksheet":      worksheet,
		"document_name":  row.DocumentName,
	})

	return sheets.AppendResult{
		SpreadsheetID:  spreadsheetID,
		WorksheetTitle: worksheet,
		Timestamp:      timestamp,
	}, nil
}

func (c *Client) resolveSpreadsheetID(ctx context.Context) (string, error) {
	query := fmt.Sprintf(
		"name = '%s' and mimeType = 'application/vnd.google-apps.spreadsheet' and trashed = false",
		escapeQueryValue(c.spreadsheetName),
	)
	list, err := c.drive.Files.List().
		Q(query).
		Fields("files(id, name)").
		PageSize(1).
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("sheet lookup name=%s: %w", c.spreadsheetName, err)
	}
	if len(list.Files) == 0 {
		return "", fmt.Errorf("sheet lookup name=%s: %w", c.spreadsheetName, sheets.ErrSpreadsheetNotFound)
	}
	return list.Files[0].Id, nil
}

func (c *Client) firstWorksheetTitle(ctx context.Context, spreadsheetID string) (string, error) {
	meta, err := c.sheets.Spreadsheets.Get(spreadsheetID).
		Fields("sheets(properties(title,index))").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("sheet metadata spreadsheet=%s: %w", spreadsheetID, err)
	}
	if len(meta.Sheets) == 0 || meta.Sheets[0].Properties == nil {
		return "", fmt.Errorf("sheet metadata spreadsheet=%s: no worksheets", spreadsheetID)
	}
	return meta.Sheets[0].Properties.Title, nil
}

func escapeQueryValue(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	return strings.ReplaceAll(v, `'`, `\'`)
}

var _ sheets.Appender = (*Client)(nil)
