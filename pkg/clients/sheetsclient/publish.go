package sheetsclient

import (
	"fmt"

	"google.golang.org/api/sheets/v4"
)

// PublishSchedule writes the schedule grid to the named tab, creating the tab
// if it does not exist and replacing its previous contents if it does. The
// first value row is the header.
func (c *Client) PublishSchedule(spreadsheetID, tab string, values [][]interface{}) error {
	if err := c.ensureTab(spreadsheetID, tab); err != nil {
		return err
	}

	clearRange := fmt.Sprintf("'%s'!A:Z", tab)
	if _, err := c.service.Spreadsheets.Values.Clear(spreadsheetID, clearRange, &sheets.ClearValuesRequest{}).Do(); err != nil {
		return fmt.Errorf("failed to clear tab %s: %w", tab, err)
	}

	writeRange := fmt.Sprintf("'%s'!A1", tab)
	valueRange := &sheets.ValueRange{Values: values}
	_, err := c.service.Spreadsheets.Values.Update(spreadsheetID, writeRange, valueRange).
		ValueInputOption("RAW").Do()
	if err != nil {
		return fmt.Errorf("failed to write schedule to tab %s: %w", tab, err)
	}

	return nil
}

// ensureTab creates the tab if the spreadsheet does not already have it.
func (c *Client) ensureTab(spreadsheetID, tab string) error {
	spreadsheet, err := c.service.Spreadsheets.Get(spreadsheetID).Do()
	if err != nil {
		return fmt.Errorf("failed to get spreadsheet metadata: %w", err)
	}

	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties.Title == tab {
			return nil
		}
	}

	request := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{
			{
				AddSheet: &sheets.AddSheetRequest{
					Properties: &sheets.SheetProperties{Title: tab},
				},
			},
		},
	}
	if _, err := c.service.Spreadsheets.BatchUpdate(spreadsheetID, request).Do(); err != nil {
		return fmt.Errorf("failed to create tab %s: %w", tab, err)
	}

	return nil
}
