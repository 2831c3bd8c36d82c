package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"PromoPilot/entity"
	"PromoPilot/internal/config"
	"PromoPilot/internal/lib/sl"
)

// SheetsCatalog reads the content catalog from a Google spreadsheet. It
// authenticates with a service account and re-fetches on every call, so
// edits to the sheet are visible immediately.
type SheetsCatalog struct {
	credentials []byte
	sheetID     string
	readRange   string
	log         *slog.Logger
}

// NewSheetsCatalog creates a catalog client over the configured sheet.
func NewSheetsCatalog(conf *config.Config, log *slog.Logger) *SheetsCatalog {
	return &SheetsCatalog{
		credentials: []byte(conf.Google.Credentials),
		sheetID:     conf.Google.SheetID,
		readRange:   conf.Google.SheetRange,
		log:         log.With(sl.Module("catalog")),
	}
}

func (c *SheetsCatalog) service(ctx context.Context) (*sheets.Service, error) {
	jwtConf, err := google.JWTConfigFromJSON(c.credentials, sheets.SpreadsheetsReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("parsing google credentials: %w", err)
	}

	svc, err := sheets.NewService(ctx, option.WithTokenSource(jwtConf.TokenSource(ctx)))
	if err != nil {
		return nil, fmt.Errorf("creating sheets service: %w", err)
	}
	return svc, nil
}

// AllRecords fetches every catalog row. Errors propagate to the caller.
func (c *SheetsCatalog) AllRecords(ctx context.Context) ([]entity.ContentRecord, error) {
	svc, err := c.service(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := svc.Spreadsheets.Values.Get(c.sheetID, c.readRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("reading sheet %s: %w", c.sheetID, err)
	}

	return ParseRows(resp.Values), nil
}

// UniqueValues lists the current choices for one facet. Failures degrade to
// an empty list so a selection keyboard is still sent.
func (c *SheetsCatalog) UniqueValues(ctx context.Context, field string) []string {
	records, err := c.AllRecords(ctx)
	if err != nil {
		c.log.With(
			slog.String("field", field),
		).Error("listing unique values", sl.Err(err))
		return nil
	}
	return UniqueFacetValues(records, field)
}
