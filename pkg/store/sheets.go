package store

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/ssargent/fieldsheet/pkg/codec"
)

const valueInputRaw = "RAW"

// SheetsConfig holds the credentials used to reach the Google Sheets API.
//
// Credentials are picked in this order: HTTPClient, service account email and
// private key, CredentialsFile, Application Default Credentials.
type SheetsConfig struct {
	ServiceAccountEmail string
	PrivateKey          string
	CredentialsFile     string

	// Endpoint overrides the API base URL.
	Endpoint string
	// HTTPClient replaces the authorised client entirely.
	HTTPClient *http.Client
}

// SheetsStore is a TableStore backed by the Google Sheets values API.
type SheetsStore struct {
	svc   *sheets.Service
	sugar *zap.SugaredLogger
}

// NewSheetsStore builds the Sheets client. ctx must outlive the store since
// it is used for token refreshes.
func NewSheetsStore(ctx context.Context, cfg SheetsConfig, logger *zap.Logger) (*SheetsStore, error) {
	opts, err := sheetsClientOptions(ctx, cfg)
	if err != nil {
		return nil, err
	}

	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &SheetsStore{
		svc:   svc,
		sugar: logger.Sugar(),
	}, nil
}

func sheetsClientOptions(ctx context.Context, cfg SheetsConfig) ([]option.ClientOption, error) {
	var opts []option.ClientOption
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint))
	}

	switch {
	case cfg.HTTPClient != nil:
		opts = append(opts, option.WithHTTPClient(cfg.HTTPClient))
	case cfg.ServiceAccountEmail != "" && cfg.PrivateKey != "":
		jwtConfig := &jwt.Config{
			Email:      cfg.ServiceAccountEmail,
			PrivateKey: []byte(NormalizePrivateKey(cfg.PrivateKey)),
			Scopes:     []string{sheets.SpreadsheetsScope},
			TokenURL:   google.JWTTokenURL,
		}
		opts = append(opts, option.WithTokenSource(jwtConfig.TokenSource(ctx)))
	case cfg.CredentialsFile != "":
		data, err := os.ReadFile(cfg.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read credentials file: %w", err)
		}
		creds, err := google.CredentialsFromJSON(ctx, data, sheets.SpreadsheetsScope)
		if err != nil {
			return nil, fmt.Errorf("failed to parse credentials file: %w", err)
		}
		opts = append(opts, option.WithTokenSource(creds.TokenSource))
	default:
		opts = append(opts, option.WithTokenSource(&defaultTokenSource{ctx: ctx}))
	}

	return opts, nil
}

// NormalizePrivateKey expands literal "\n" sequences, the usual way a PEM key
// survives being stored in a single-line environment variable.
func NormalizePrivateKey(key string) string {
	return strings.ReplaceAll(key, `\n`, "\n")
}

// defaultTokenSource resolves Application Default Credentials on first use so
// that a process without credentials can still start.
type defaultTokenSource struct {
	ctx context.Context

	once sync.Once
	src  oauth2.TokenSource
	err  error
}

func (d *defaultTokenSource) Token() (*oauth2.Token, error) {
	d.once.Do(func() {
		creds, err := google.FindDefaultCredentials(d.ctx, sheets.SpreadsheetsScope)
		if err != nil {
			d.err = fmt.Errorf("failed to find default credentials: %w", err)
			return
		}
		d.src = creds.TokenSource
	})
	if d.err != nil {
		return nil, d.err
	}
	return d.src.Token()
}

// ReadRange returns the formatted cell values of rangeSpec.
func (s *SheetsStore) ReadRange(ctx context.Context, destination, rangeSpec string) (codec.Table, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(destination, rangeSpec).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("sheets values.get %s: %w", rangeSpec, err)
	}
	s.sugar.Debugw("sheets read", "range", resp.Range, "rows", len(resp.Values))

	return toTable(resp.Values), nil
}

// ClearRange removes every value in rangeSpec.
func (s *SheetsStore) ClearRange(ctx context.Context, destination, rangeSpec string) error {
	resp, err := s.svc.Spreadsheets.Values.Clear(destination, rangeSpec, &sheets.ClearValuesRequest{}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("sheets values.clear %s: %w", rangeSpec, err)
	}
	s.sugar.Debugw("sheets clear", "range", resp.ClearedRange)

	return nil
}

// WriteRange appends table to rangeSpec with RAW input, so cells are stored
// exactly as given.
func (s *SheetsStore) WriteRange(ctx context.Context, destination, rangeSpec string, table codec.Table) error {
	vr := &sheets.ValueRange{Values: fromTable(table)}
	resp, err := s.svc.Spreadsheets.Values.Append(destination, rangeSpec, vr).
		ValueInputOption(valueInputRaw).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("sheets values.append %s: %w", rangeSpec, err)
	}
	if resp.Updates != nil {
		s.sugar.Debugw("sheets write", "range", resp.Updates.UpdatedRange, "rows", resp.Updates.UpdatedRows)
	}

	return nil
}

func toTable(values [][]interface{}) codec.Table {
	table := make(codec.Table, len(values))
	for i, row := range values {
		cells := make([]string, len(row))
		for j, v := range row {
			switch cell := v.(type) {
			case nil:
			case string:
				cells[j] = cell
			default:
				cells[j] = fmt.Sprint(cell)
			}
		}
		table[i] = cells
	}
	return table
}

func fromTable(table codec.Table) [][]interface{} {
	values := make([][]interface{}, len(table))
	for i, row := range table {
		cells := make([]interface{}, len(row))
		for j, cell := range row {
			cells[j] = cell
		}
		values[i] = cells
	}
	return values
}
