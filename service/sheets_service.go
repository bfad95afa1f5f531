package service

import (
	"context"
	"fmt"
	"log"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"pos-storefront/utils"
)

// SheetsService handles Google Sheets API operations on the POS spreadsheet
type SheetsService struct {
	client  *sheets.Service
	sheetID string
}

// NewSheetsService creates a new SheetsService instance
// credentialsPath should be the path to the Service Account JSON file
func NewSheetsService(ctx context.Context, credentialsPath, sheetID string) (*SheetsService, error) {
	client, err := sheets.NewService(ctx,
		option.WithCredentialsFile(credentialsPath),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &SheetsService{
		client:  client,
		sheetID: sheetID,
	}, nil
}

// Ensure SheetsService implements SheetsServiceInterface
var _ SheetsServiceInterface = (*SheetsService)(nil)

// ReadTab reads columns A:Z of a tab and maps each row by the header row
func (s *SheetsService) ReadTab(ctx context.Context, tab string) ([]map[string]string, error) {
	res, err := s.client.Spreadsheets.Values.Get(s.sheetID, tab+"!A:Z").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read tab %s: %w", tab, err)
	}
	return utils.ToDicts(res.Values), nil
}

// AppendRow appends one row to a tab using RAW value input
func (s *SheetsService) AppendRow(ctx context.Context, tab string, row []interface{}) error {
	body := &sheets.ValueRange{Values: [][]interface{}{row}}
	_, err := s.client.Spreadsheets.Values.Append(s.sheetID, tab+"!A:Z", body).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to append to tab %s: %w", tab, err)
	}
	log.Printf("✓ Row appended to %s", tab)
	return nil
}
