package main

import (
	"bytes"
	"testing"

	"github.com/Akashdeep-Patra/spots/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestWriteChangesReportsNestedChildren(t *testing.T) {
	t.Parallel()

	before := model.Decode([]byte(`{"components": [
		{"kind": "list", "items": [{"title": "a"}, {"title": "group", "children": [{"title": "x"}]}]},
		{"kind": "list", "title": "same", "items": [{"title": "b"}]}
	]}`))
	after := model.Decode([]byte(`{"components": [
		{"kind": "list", "items": [{"title": "a"}, {"title": "group", "children": [{"title": "y"}]}]},
		{"kind": "list", "title": "same", "items": [{"title": "b"}]},
		{"kind": "grid", "items": [{"title": "c"}]}
	]}`))

	var out bytes.Buffer
	writeChanges(&out, before, after)

	assert.Equal(t, "0: items reload [1]\n"+
		"   nested children changed at [1]\n"+
		"1: unchanged\n"+
		"2: added (1 item(s))\n", out.String())
}
