// Package config builds the process configuration from environment variables
// so main stays lean. Event dates, time windows and the profile-table list
// are configuration with compiled-in defaults, not constants scattered
// through the code.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"checkin/internal/window"
)

// Backend selects the sheets client implementation.
type Backend string

const (
	// BackendAPI talks to the remote spreadsheet REST API.
	BackendAPI Backend = "api"
	// BackendWorkbook reads and writes a local .xlsx workbook; used for
	// local development and offline operation.
	BackendWorkbook Backend = "workbook"
)

// Day pairs an event-day window with the remote table that records its
// confirmed check-ins.
type Day struct {
	Window window.DayWindow
	Table  string
}

// Config captures everything the server needs at startup.
type Config struct {
	Addr          string
	AllowedOrigin string

	RefreshInterval time.Duration

	Backend       Backend
	SheetsBaseURL string
	SheetsAPIKey  string
	SpreadsheetID string
	WorkbookPath  string

	// ProfileTables are scanned to build the roster index.
	ProfileTables []string
	Days          []Day

	// Location is a fixed offset; the event timezone applies no DST.
	Location *time.Location
}

// Profile tables partition attendees by role. The same identity number may
// appear in more than one of them.
var defaultProfileTables = []string{
	"Participantes",
	"Palestrantes",
	"Staffs",
	"Patrocinadores",
	"Expositores",
	"Imprensa",
	"Convidados",
}

// FromEnv builds a Config from environment variables, falling back to the
// compiled defaults. It fails only on values that cannot be parsed or on a
// backend left without credentials.
func FromEnv() (Config, error) {
	cfg := Config{
		Addr:          ":" + envOr("PORT", "8080"),
		AllowedOrigin: os.Getenv("ALLOWED_ORIGIN"),
		Backend:       Backend(envOr("SHEETS_BACKEND", string(BackendAPI))),
		SheetsBaseURL: envOr("SHEETS_BASE_URL", "https://sheets.googleapis.com"),
		SheetsAPIKey:  os.Getenv("SHEETS_API_KEY"),
		SpreadsheetID: os.Getenv("SPREADSHEET_ID"),
		WorkbookPath:  os.Getenv("WORKBOOK_PATH"),
	}

	offset, err := envInt("TZ_OFFSET_HOURS", -3)
	if err != nil {
		return Config{}, err
	}
	cfg.Location = time.FixedZone(fmt.Sprintf("UTC%+d", offset), offset*3600)

	minutes, err := envInt("REFRESH_INTERVAL_MINUTES", 10)
	if err != nil {
		return Config{}, err
	}
	if minutes < 1 {
		minutes = 1
	}
	cfg.RefreshInterval = time.Duration(minutes) * time.Minute

	if tables := os.Getenv("PROFILE_TABLES"); tables != "" {
		seen := make(map[string]bool)
		for _, t := range strings.Split(tables, ",") {
			t = strings.TrimSpace(t)
			if t == "" || seen[t] {
				continue
			}
			seen[t] = true
			cfg.ProfileTables = append(cfg.ProfileTables, t)
		}
	} else {
		cfg.ProfileTables = append(cfg.ProfileTables, defaultProfileTables...)
	}

	day1, err := dayFromEnv("EVENT_DAY1", "Dia1", "2025-11-21", "Credenciamento Dia 1", cfg.Location)
	if err != nil {
		return Config{}, err
	}
	day2, err := dayFromEnv("EVENT_DAY2", "Dia2", "2025-11-22", "Credenciamento Dia 2", cfg.Location)
	if err != nil {
		return Config{}, err
	}
	cfg.Days = []Day{day1, day2}

	switch cfg.Backend {
	case BackendAPI:
		if cfg.SheetsAPIKey == "" || cfg.SpreadsheetID == "" {
			return Config{}, fmt.Errorf("config: SHEETS_API_KEY and SPREADSHEET_ID are required with the api backend")
		}
	case BackendWorkbook:
		if cfg.WorkbookPath == "" {
			return Config{}, fmt.Errorf("config: WORKBOOK_PATH is required with the workbook backend")
		}
	default:
		return Config{}, fmt.Errorf("config: unknown SHEETS_BACKEND %q", cfg.Backend)
	}

	return cfg, nil
}

// dayFromEnv assembles one event day from <prefix>_DATE, <prefix>_OPEN,
// <prefix>_CLOSE and <prefix>_TABLE, with the given defaults.
func dayFromEnv(prefix, label, defaultDate, defaultTable string, loc *time.Location) (Day, error) {
	date := envOr(prefix+"_DATE", defaultDate)
	opens := envOr(prefix+"_OPEN", "07:30")
	closes := envOr(prefix+"_CLOSE", "20:00")

	start, err := time.ParseInLocation("2006-01-02 15:04", date+" "+opens, loc)
	if err != nil {
		return Day{}, fmt.Errorf("config: parse %s window start: %w", prefix, err)
	}
	end, err := time.ParseInLocation("2006-01-02 15:04", date+" "+closes, loc)
	if err != nil {
		return Day{}, fmt.Errorf("config: parse %s window end: %w", prefix, err)
	}
	if !end.After(start) {
		return Day{}, fmt.Errorf("config: %s window ends before it starts", prefix)
	}

	return Day{
		Window: window.DayWindow{
			Label: label,
			Human: window.HumanLabel(start),
			Start: start,
			End:   end,
		},
		Table: envOr(prefix+"_TABLE", defaultTable),
	}, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s must be an integer: %w", key, err)
	}
	return n, nil
}
