// Package expansion resolves blueprint ids to expansion names.
package expansion

import (
	"sort"
	"strings"

	"github.com/Veraticus/binder/internal/model"
)

// NewTable keeps the expansions of a single game, keyed by id.
func NewTable(expansions []model.Expansion, gameID int) model.ExpansionTable {
	table := make(model.ExpansionTable)
	for _, e := range expansions {
		if e.GameID == gameID {
			table[e.ID] = e
		}
	}
	return table
}

// Search returns the expansions whose name or code contains query,
// case-insensitively, sorted by name. An empty query matches everything.
func Search(table model.ExpansionTable, query string) []model.Expansion {
	query = strings.ToLower(strings.TrimSpace(query))

	var out []model.Expansion
	for _, e := range table {
		if query == "" ||
			strings.Contains(strings.ToLower(e.Name), query) ||
			strings.Contains(strings.ToLower(e.Code), query) {
			out = append(out, e)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}
