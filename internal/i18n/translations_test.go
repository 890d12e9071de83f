package i18n

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTranslator_T(t *testing.T) {
	tr := NewTranslator("en-us")

	require.Equal(t, "Set translation", tr.T("en-us", "SetTranslation", nil))
	require.Equal(t, "Definir tradução", tr.T("pt-br", "SetTranslation", nil))
	require.Equal(t, `Traduções de "description"`, tr.T("pt-br", "EditorTitle", map[string]any{"Field": "description"}))
}

func TestTranslator_Fallbacks(t *testing.T) {
	tr := NewTranslator("not a tag")

	require.Equal(t, "Save", tr.T("ja", "Save", nil))
	require.Equal(t, "Missing", tr.T("en", "Missing", nil))
	require.Equal(t, "", tr.T("en", "", nil))
}
