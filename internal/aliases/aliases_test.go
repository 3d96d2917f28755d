// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package aliases

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_TwoTokens(t *testing.T) {
	got := Generate([]string{"ANA", "SOUZA"})
	assert.Equal(t, []string{"ANA SOUZA", "SOUZA ANA", "SOUZA A"}, got)
}

func TestGenerate_ThreeTokens(t *testing.T) {
	got := Generate([]string{"JOAO", "CARLOS", "COSTA"})
	want := []string{
		"JOAO CARLOS COSTA",
		"COSTA JOAO CARLOS",
		"CARLOS COSTA JOAO",
		"JOAO C COSTA",
		"COSTA J CARLOS",
		"COSTA JOAO C",
		"COSTA J C",
		"CARLOS COSTA J",
	}
	assert.Equal(t, want, got)
}

func TestGenerate_FourTokens(t *testing.T) {
	got := Generate([]string{"ANA", "BEATRIZ", "CRUZ", "DIAS"})
	require.Len(t, got, 15)

	for _, alias := range []string{
		// full forms
		"ANA BEATRIZ CRUZ DIAS", "DIAS ANA BEATRIZ CRUZ", "CRUZ DIAS ANA BEATRIZ",
		// middle runs
		"ANA B CRUZ DIAS", "ANA BEATRIZ C DIAS", "ANA B C DIAS",
		// last name first
		"DIAS A BEATRIZ CRUZ", "DIAS ANA B CRUZ", "DIAS ANA BEATRIZ C",
		"DIAS A B CRUZ", "DIAS ANA B C", "DIAS A B C",
		// last two names first
		"CRUZ DIAS A BEATRIZ", "CRUZ DIAS ANA B", "CRUZ DIAS A B",
	} {
		assert.Contains(t, got, alias)
	}
	// Non-contiguous abbreviations are never produced.
	assert.NotContains(t, got, "DIAS A BEATRIZ C")
	// The first and last tokens stay whole in the middle family.
	assert.NotContains(t, got, "A BEATRIZ CRUZ DIAS")
}

func TestGenerate_FiveTokensCount(t *testing.T) {
	got := Generate([]string{"ANA", "BEATRIZ", "CRUZ", "DIAS", "ELIAS"})
	// 3 full + 6 middle + 10 last-first + 6 last-two-first
	assert.Len(t, got, 25)
}

func TestGenerate_Degenerate(t *testing.T) {
	assert.Empty(t, Generate(nil))
	assert.Empty(t, Generate([]string{"ANA"}))
}

func TestGenerate_NoDuplicates(t *testing.T) {
	got := Generate([]string{"A", "B", "C"})
	seen := map[string]bool{}
	for _, alias := range got {
		assert.False(t, seen[alias], "duplicate alias %q", alias)
		seen[alias] = true
	}
}

func TestGenerate_DoesNotMutateInput(t *testing.T) {
	parts := []string{"JOAO", "CARLOS", "COSTA"}
	Generate(parts)
	assert.Equal(t, []string{"JOAO", "CARLOS", "COSTA"}, parts)
}

func TestAll_StopsEarly(t *testing.T) {
	var got []string
	for alias := range All([]string{"ANA", "BEATRIZ", "CRUZ", "DIAS"}) {
		got = append(got, alias)
		if len(got) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"ANA BEATRIZ CRUZ DIAS", "DIAS ANA BEATRIZ CRUZ"}, got)
}
