// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package normalizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"diacritics folded", "João", "JOAO"},
		{"cedilla and tilde", "Conceição Araújo", "CONCEICAO ARAUJO"},
		{"particle removed from three tokens", "Maria Da Silva", "MARIA SILVA"},
		{"every particle removed", "José dos Santos de Oliveira Jr.", "JOSE SANTOS OLIVEIRA"},
		{"two tokens keep particle", "Van Gogh", "VAN GOGH"},
		{"two tokens keep lower particle", "da Silva", "DA SILVA"},
		{"punctuation becomes space", "O'Neil-Smith, A.", "O NEIL SMITH A"},
		{"whitespace collapsed", "  Ana \t\n  Souza  ", "ANA SOUZA"},
		{"empty input", "", ""},
		{"only punctuation", " .,-' ", ""},
		{"non ascii without base dropped", "Ana 李 Souza", "ANA SOUZA"},
		{"ligature decomposed", "ﬁlho Costa", "FILHO COSTA"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Normalize(tc.input))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"Maria Da Silva",
		"da de Souza",
		"Pedro de Alcântara João Carlos Leopoldo",
		"DE DA DO DAS",
		"Jr. Junior Van",
		"Ana-Maria O'Brien",
		"",
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
	}
}

func TestNormalize_ParticleBoundary(t *testing.T) {
	// Two tokens are never filtered, even when both are particles.
	assert.Equal(t, "DE DA", Normalize("de da"))
	// Three tokens: every particle token goes, whatever survives.
	assert.Equal(t, "SOUZA", Normalize("de da Souza"))
	assert.Equal(t, "", Normalize("de da dos"))
}

func TestNormalizer_CustomParticles(t *testing.T) {
	n := New([]string{"von", " der "})
	assert.Equal(t, "LUDWIG BEETHOVEN", n.Normalize("Ludwig von Beethoven"))
	assert.Equal(t, "ANA DA COSTA", n.Normalize("Ana da Costa"))
	assert.True(t, n.IsParticle("VON"))
	assert.True(t, n.IsParticle("DER"))
	assert.False(t, n.IsParticle("DA"))
}

func TestTokens(t *testing.T) {
	assert.Equal(t, []string{"ANA", "SOUZA"}, Default().Tokens("Ana de Souza"))
	assert.Empty(t, Default().Tokens("   "))
}

func TestFoldASCII(t *testing.T) {
	assert.Equal(t, "Joao Conceicao", FoldASCII("João Conceição"))
	assert.Equal(t, "Muller", FoldASCII("Müller"))
}

func TestCollapseWhitespace(t *testing.T) {
	assert.Equal(t, "a b c", CollapseWhitespace("\n a \t\tb  c \n"))
	assert.Equal(t, "", CollapseWhitespace(" \n\t "))
}
