package reader_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"parsekit/internal/reader"
)

func TestSprintRoundTripsSimpleForms(t *testing.T) {
	assert.Equal(t, "()", reader.Sprint(readForm(t, "()")))
	assert.Equal(t, "[1 :a \"s\"]", reader.Sprint(readForm(t, `[1 :a "s"]`)))
	assert.Equal(t, "nil", reader.Sprint(readForm(t, "nil")))
	assert.Equal(t, "true", reader.Sprint(readForm(t, "true")))
}

func TestSprintRendersNamespacedKeyword(t *testing.T) {
	assert.Equal(t, ":a/b", reader.Sprint(readForm(t, ":a/b")))
}

func TestSprintRendersMapLiteral(t *testing.T) {
	assert.Equal(t, "{:a 1}", reader.Sprint(readForm(t, "{:a 1}")))
}
