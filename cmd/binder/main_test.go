package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/Veraticus/binder/internal/model"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVendor struct {
	*httptest.Server
	blueprintCalls atomic.Int64
}

func newFakeVendor(t *testing.T) *fakeVendor {
	t.Helper()

	v := &fakeVendor{}
	mux := http.NewServeMux()
	mux.HandleFunc("/products/export", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[
			{"quantity": 1, "name_en": "Serra Angel", "blueprint_id": 1, "price_cents": 500,
			 "properties_hash": {"mtg_language": "en", "mtg_foil": false, "mtg_card_colors": "W"}},
			{"quantity": 3, "name_en": "Opt", "blueprint_id": 2, "price_cents": 100,
			 "properties_hash": {"mtg_language": "en", "mtg_card_colors": "U"}},
			{"quantity": 1, "name_en": "Niv-Mizzet", "blueprint_id": 3, "price_cents": 900,
			 "properties_hash": {"mtg_language": "it", "mtg_foil": true, "mtg_card_colors": "UR"}},
			{"quantity": 1, "name_en": "Token", "blueprint_id": 4, "price_cents": 900,
			 "properties_hash": {"mtg_language": "en"}}
		]`))
	})
	mux.HandleFunc("/expansions", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[
			{"id": 10, "game_id": 1, "code": "dom", "name": "Dominaria"},
			{"id": 11, "game_id": 1, "code": "grn", "name": "Guilds of Ravnica"},
			{"id": 12, "game_id": 5, "code": "swsh", "name": "Sword & Shield"}
		]`))
	})
	mux.HandleFunc("/blueprints/", func(w http.ResponseWriter, r *http.Request) {
		v.blueprintCalls.Add(1)
		switch strings.TrimPrefix(r.URL.Path, "/blueprints/") {
		case "1", "2":
			_, _ = w.Write([]byte(`{"id": 1, "expansion_id": 10}`))
		case "3":
			_, _ = w.Write([]byte(`{"id": 3, "expansion_id": 11}`))
		default:
			http.NotFound(w, r)
		}
	})

	v.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(v.Close)
	return v
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0600))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	prev := slog.Default()
	t.Cleanup(func() {
		slog.SetDefault(prev)
		viper.Reset()
		cfgFile = ""
	})

	var stdout, stderr bytes.Buffer
	root := newRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), err
}

func TestReport_JSON(t *testing.T) {
	vendor := newFakeVendor(t)
	cfg := writeConfig(t, fmt.Sprintf(`
ct_token: secret
price_cents_threshold: 300
colors: [W, U, M]
api:
  base_url: %s
`, vendor.URL))

	out, err := execute(t, "report", "--config", cfg, "--output", "json")
	require.NoError(t, err)

	var report model.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))

	require.Len(t, report.Categories, 3)
	assert.Equal(t, "M", report.Categories[0].Category.Code)
	assert.Equal(t, "W", report.Categories[1].Category.Code)
	assert.Equal(t, "U", report.Categories[2].Category.Code)

	require.Len(t, report.Categories[0].Rows, 1)
	assert.Equal(t, "Niv-Mizzet", report.Categories[0].Rows[0].Item.Name)
	assert.Equal(t, "Guilds of Ravnica", report.Categories[0].Rows[0].Expansion)

	require.Len(t, report.Categories[1].Rows, 1)
	assert.Equal(t, "Dominaria", report.Categories[1].Rows[0].Expansion)

	assert.Empty(t, report.Categories[2].Rows)
	assert.Equal(t, 2, report.TotalItems)
	assert.Equal(t, int64(1400), report.TotalValueCents)
	assert.Equal(t, int64(2), vendor.blueprintCalls.Load())
}

func TestReport_Table(t *testing.T) {
	vendor := newFakeVendor(t)
	cfg := writeConfig(t, fmt.Sprintf("ct_token: secret\napi:\n  base_url: %s\n", vendor.URL))

	out, err := execute(t, "report", "--config", cfg, "--colors", "W", "--threshold", "0")
	require.NoError(t, err)

	assert.Contains(t, out, "WHITE above 0.00 €")
	assert.Contains(t, out, "Serra Angel")
	assert.NotContains(t, out, "Niv-Mizzet")
	assert.Contains(t, out, "*** Total number of items in the binder: 1 (5.00 €)***")
}

func TestReport_CacheSkipsLookups(t *testing.T) {
	vendor := newFakeVendor(t)
	cache := filepath.Join(t.TempDir(), "cache.db")
	cfg := writeConfig(t, fmt.Sprintf(`
ct_token: secret
price_cents_threshold: 300
api:
  base_url: %s
cache:
  path: %s
`, vendor.URL, cache))

	_, err := execute(t, "report", "--config", cfg, "--output", "yaml")
	require.NoError(t, err)
	first := vendor.blueprintCalls.Load()
	assert.Equal(t, int64(2), first)

	_, err = execute(t, "report", "--config", cfg, "--output", "yaml")
	require.NoError(t, err)
	assert.Equal(t, first, vendor.blueprintCalls.Load())

	out, err := execute(t, "cache", "stats", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "2 blueprints across 2 expansions")

	out, err = execute(t, "cache", "clear", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "Removed 2 cached blueprints")
}

func TestReport_MissingToken(t *testing.T) {
	t.Setenv("CT_TOKEN", "")
	t.Setenv("BINDER_CT_TOKEN", "")
	cfg := writeConfig(t, "colors: [W]\n")

	out, err := execute(t, "report", "--config", cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ct_token")
	assert.Empty(t, out)
}

func TestReport_UnauthorizedPrintsNothing(t *testing.T) {
	vendor := newFakeVendor(t)
	cfg := writeConfig(t, fmt.Sprintf("ct_token: wrong\napi:\n  base_url: %s\n", vendor.URL))

	out, err := execute(t, "report", "--config", cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
	assert.Empty(t, out)
}

func TestExpansions_Search(t *testing.T) {
	vendor := newFakeVendor(t)
	cfg := writeConfig(t, fmt.Sprintf("ct_token: secret\napi:\n  base_url: %s\n", vendor.URL))

	out, err := execute(t, "expansions", "--config", cfg, "--search", "rav")
	require.NoError(t, err)
	assert.Contains(t, out, "Guilds of Ravnica")
	assert.NotContains(t, out, "Dominaria")
	assert.NotContains(t, out, "Sword & Shield")
}

func TestReport_ThresholdHelp(t *testing.T) {
	usage := reportCmd().Flags().Lookup("threshold").Usage
	assert.Contains(t, usage, "at or above")
}
