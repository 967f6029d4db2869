// Steamsheet - Steam Library Sync to Google Sheets
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/steamsheet

package sheets

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"

	"github.com/tomtom215/steamsheet/internal/config"
	"github.com/tomtom215/steamsheet/internal/logging"
	"github.com/tomtom215/steamsheet/internal/metrics"
	"github.com/tomtom215/steamsheet/internal/models"
)

// userEntered makes the API evaluate formulas and parse numbers and
// percentages as if typed into the sheet.
const userEntered = "USER_ENTERED"

// ValuesAPI is the part of the Sheets values resource the gateway uses.
type ValuesAPI interface {
	Get(ctx context.Context, spreadsheetID, rangeAddress string) ([][]interface{}, error)
	Update(ctx context.Context, spreadsheetID, rangeAddress string, values [][]interface{}) error
}

// serviceValues adapts *sheets.Service to ValuesAPI.
type serviceValues struct {
	svc *gsheets.Service
}

func (s serviceValues) Get(ctx context.Context, spreadsheetID, rangeAddress string) ([][]interface{}, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(spreadsheetID, rangeAddress).Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	return resp.Values, nil
}

func (s serviceValues) Update(ctx context.Context, spreadsheetID, rangeAddress string, values [][]interface{}) error {
	body := &gsheets.ValueRange{Values: values}
	_, err := s.svc.Spreadsheets.Values.Update(spreadsheetID, rangeAddress, body).
		ValueInputOption(userEntered).
		Context(ctx).
		Do()
	return err
}

// Gateway reads and writes one sheet of one spreadsheet.
type Gateway struct {
	values        ValuesAPI
	spreadsheetID string
	rangeAddress  string
	policy        RetryPolicy
}

// New builds a gateway authenticated with the service-account credentials
// file from cfg.
func New(ctx context.Context, cfg *config.SheetsConfig) (*Gateway, error) {
	svc, err := gsheets.NewService(ctx,
		option.WithCredentialsFile(cfg.CredentialsFile),
		option.WithScopes(gsheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Sheets service: %w", err)
	}

	policy := RetryPolicy{MaxAttempts: cfg.WriteAttempts, Delay: cfg.WriteRetryDelay}
	return NewWithValues(serviceValues{svc: svc}, cfg, policy), nil
}

// NewWithValues builds a gateway over an arbitrary ValuesAPI.
func NewWithValues(values ValuesAPI, cfg *config.SheetsConfig, policy RetryPolicy) *Gateway {
	return &Gateway{
		values:        values,
		spreadsheetID: cfg.SpreadsheetID,
		rangeAddress:  cfg.Range,
		policy:        policy,
	}
}

// ReadAll returns every row of the configured range. Errors are logged and
// yield an empty snapshot.
func (g *Gateway) ReadAll(ctx context.Context) []models.Row {
	values, err := g.values.Get(ctx, g.spreadsheetID, g.rangeAddress)
	if err != nil {
		logging.Error().Err(err).Str("range", g.rangeAddress).Msg("Failed to read spreadsheet")
		return []models.Row{}
	}

	rows := make([]models.Row, 0, len(values))
	for _, raw := range values {
		row := make(models.Row, len(raw))
		for i, cell := range raw {
			row[i] = cellString(cell)
		}
		rows = append(rows, row)
	}
	logging.Debug().Int("rows", len(rows)).Msg("Spreadsheet snapshot loaded")
	return rows
}

// Write replaces the cells at rangeAddress with rows, clipped to the table
// width. Transient failures are retried per the gateway's policy.
func (g *Gateway) Write(ctx context.Context, rangeAddress string, rows []models.Row) error {
	values := make([][]interface{}, 0, len(rows))
	for _, row := range rows {
		clipped := row.Truncated()
		cells := make([]interface{}, len(clipped))
		for i, cell := range clipped {
			cells[i] = cell
		}
		values = append(values, cells)
	}

	err := g.policy.Do(ctx, "write "+rangeAddress, func() error {
		return g.values.Update(ctx, g.spreadsheetID, rangeAddress, values)
	})
	metrics.RecordSheetWrite(err)
	if err != nil {
		return fmt.Errorf("sheet write to %s: %w", rangeAddress, err)
	}
	return nil
}

// RowRange addresses one full row of the table, e.g. "Games!A5:G5".
func RowRange(sheet string, row int) string {
	return fmt.Sprintf("%s!A%d:G%d", sheet, row, row)
}

// SheetName strips any cell reference from a range: "Games!A1:G" -> "Games".
func SheetName(rangeAddress string) string {
	if i := strings.Index(rangeAddress, "!"); i >= 0 {
		return rangeAddress[:i]
	}
	return rangeAddress
}

// cellString renders a cell value returned by the API as text.
func cellString(cell interface{}) string {
	switch v := cell.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return models.FormatNumber(v)
	default:
		return fmt.Sprint(v)
	}
}
