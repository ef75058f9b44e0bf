package common

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeText(t *testing.T) {
	assert.Equal(t, "Cars", SanitizeText("  <b>Cars</b> "))
	assert.Equal(t, "Toys & Games", SanitizeText("Toys & Games"))
	assert.Equal(t, "צעצועים", SanitizeText("<script>alert(1)</script>צעצועים"))
}

func TestSanitizeOptional(t *testing.T) {
	v, err := SanitizeOptional(nil, "nameHe", 10)
	require.NoError(t, err)
	assert.Nil(t, v)

	blank := "  <i></i> "
	v, err = SanitizeOptional(&blank, "nameHe", 10)
	require.NoError(t, err)
	assert.Nil(t, v)

	long := "abcdefghijk"
	_, err = SanitizeOptional(&long, "nameHe", 10)
	assert.EqualError(t, err, "nameHe cannot exceed 10 characters")

	he := "בובות"
	v, err = SanitizeOptional(&he, "nameHe", 5)
	require.NoError(t, err)
	assert.Equal(t, "בובות", *v)
}

func TestParseID(t *testing.T) {
	id, err := ParseID(" 42 ", "id")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, in := range []string{"", "abc", "0", "-3"} {
		_, err := ParseID(in, "id")
		assert.Error(t, err, in)
	}
}

func TestHTTPErrorHandler(t *testing.T) {
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	HTTPErrorHandler(echo.NewHTTPError(http.StatusNotFound, "Category not found"), e.NewContext(req, rec))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":{"code":"NOT_FOUND","message":"Category not found"}}`, rec.Body.String())

	rec = httptest.NewRecorder()
	HTTPErrorHandler(errors.New("boom"), e.NewContext(req, rec))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":{"code":"INTERNAL_SERVER_ERROR","message":"Internal Server Error"}}`, rec.Body.String())
}

func TestUserIDContext(t *testing.T) {
	_, ok := GetUserIDFromContext(context.Background())
	assert.False(t, ok)

	id, ok := GetUserIDFromContext(WithUserID(context.Background(), "admin"))
	assert.True(t, ok)
	assert.Equal(t, "admin", id)
}
