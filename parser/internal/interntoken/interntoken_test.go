package interntoken

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTable(t *testing.T) {
	tab := NewTable()
	assert.Equal(t, 0, tab.Len())
	a := tab.Get("define")
	b := tab.Get(string([]byte("define")))
	assert.Equal(t, "define", a)
	assert.Equal(t, a, b)
	assert.Equal(t, 1, tab.Len())
	tab.Get("if")
	assert.Equal(t, 2, tab.Len())
}

func TestTable_nil(t *testing.T) {
	var tab *Table
	assert.Equal(t, "x", tab.Get("x"))
	assert.Equal(t, 0, tab.Len())
}
