// Copyright (c) 2026 JournalHub. All rights reserved.
// Author: dev@journalhub.pub

package storage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/peerreview/journalhub/internal/platform/storage"
)

/*
TestPaperKey verifies deterministic key construction from paper metadata.
*/
func TestPaperKey(t *testing.T) {
	tests := []struct {
		name      string
		paperID   int
		version   int
		title     string
		extension string
		want      string
	}{
		{"plain", 10, 1, "Gene Expression Atlas", "pdf", "papers/10-1-gene-expression-atlas.pdf"},
		{"dotted_extension", 10, 2, "Gene Expression Atlas", ".pdf", "papers/10-2-gene-expression-atlas.pdf"},
		{"unicode_title", 7, 1, "Étude des Génomes", "pdf", "papers/7-1-etude-des-genomes.pdf"},
		{"punctuation_title", 3, 4, "CRISPR/Cas9: A Review", "pdf", "papers/3-4-crispr-cas9-a-review.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := storage.PaperKey(tt.paperID, tt.version, tt.title, tt.extension)
			assert.Equal(t, tt.want, got)
		})
	}
}
