// Copyright (c) 2026 JournalHub. All rights reserved.
// Author: dev@journalhub.pub

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/peerreview/journalhub/pkg/slug"
)

/*
TestFrom verifies title sanitization for storage keys and deep links.
*/
func TestFrom(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain_title", "Molecular Biology of the Cell", "molecular-biology-of-the-cell"},
		{"accents_removed", "Étude des Génomes", "etude-des-genomes"},
		{"punctuation", "CRISPR/Cas9: A Review (2nd ed.)", "crispr-cas9-a-review-2nd-ed"},
		{"collapses_hyphens", "a   --  b", "a-b"},
		{"trims_edges", "  Deep Learning!  ", "deep-learning"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.From(tt.input))
		})
	}
}
