// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLayoutModeBoundaries(t *testing.T) {
	theme := NewTheme()

	theme.SetSize(59, 24)
	assert.Equal(t, LayoutNarrow, theme.GetLayoutMode())

	theme.SetSize(60, 24)
	assert.Equal(t, LayoutMedium, theme.GetLayoutMode())

	theme.SetSize(99, 24)
	assert.Equal(t, LayoutMedium, theme.GetLayoutMode())

	theme.SetSize(100, 24)
	assert.Equal(t, LayoutWide, theme.GetLayoutMode())
}

func TestSetSizeStoresDimensions(t *testing.T) {
	theme := NewTheme()
	theme.SetSize(80, 25)

	assert.Equal(t, 80, theme.Width)
	assert.Equal(t, 25, theme.Height)
}
