package expansion

import (
	"testing"

	"github.com/Veraticus/binder/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestNewTable(t *testing.T) {
	table := NewTable([]model.Expansion{
		{ID: 1, GameID: 1, Code: "dom", Name: "Dominaria"},
		{ID: 2, GameID: 5, Code: "swsh", Name: "Sword & Shield"},
		{ID: 3, GameID: 1, Code: "m21", Name: "Core Set 2021"},
	}, 1)

	assert.Len(t, table, 2)
	assert.Equal(t, "Dominaria", table[1].Name)
	_, ok := table[2]
	assert.False(t, ok)
}

func TestSearch(t *testing.T) {
	table := NewTable([]model.Expansion{
		{ID: 1, GameID: 1, Code: "dom", Name: "Dominaria"},
		{ID: 2, GameID: 1, Code: "dmu", Name: "Dominaria United"},
		{ID: 3, GameID: 1, Code: "m21", Name: "Core Set 2021"},
	}, 1)

	all := Search(table, "")
	assert.Len(t, all, 3)
	assert.Equal(t, "Core Set 2021", all[0].Name)

	hits := Search(table, "DOMIN")
	assert.Equal(t, []model.Expansion{table[1], table[2]}, hits)

	byCode := Search(table, "m21")
	assert.Equal(t, []model.Expansion{table[3]}, byCode)

	assert.Empty(t, Search(table, "zendikar"))
}
