// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package help

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShowGeneralHelp(t *testing.T) {
	var buf bytes.Buffer
	NewSystem(&buf, true).ShowGeneralHelp()

	out := buf.String()
	assert.Contains(t, out, "rollcall - find people in numbered name lists")
	assert.Contains(t, out, "-threshold")
	assert.Contains(t, out, "aliases, normalization, roster, threshold")
	assert.NotContains(t, out, "\x1b[")
}

func TestShowTopicHelp(t *testing.T) {
	var buf bytes.Buffer
	h := NewSystem(&buf, true)

	assert.True(t, h.ShowTopicHelp("Aliases"))
	out := buf.String()
	assert.Contains(t, out, "ALIASES: forms a name is searched under")
	assert.Contains(t, out, "MARIA CONCEICAO SILVA")
	assert.Contains(t, out, "SILVA MARIA CONCEICAO")

	buf.Reset()
	assert.True(t, h.ShowTopicHelp("normalization"))
	assert.Contains(t, buf.String(), "João da Silva Jr. -> JOAO SILVA")
	assert.Contains(t, buf.String(), "Ana de Souza -> ANA SOUZA")
}

func TestShowTopicHelp_Unknown(t *testing.T) {
	var buf bytes.Buffer
	assert.False(t, NewSystem(&buf, true).ShowTopicHelp("checks"))
	assert.Contains(t, buf.String(), `Unknown help topic "checks"`)
}
