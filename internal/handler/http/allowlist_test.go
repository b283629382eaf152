package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/avelichko/imagegate/internal/allowlist"
	"github.com/avelichko/imagegate/models"
)

func TestCheckAllowlist_PatternMatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	h, mockImages := newHandlerWithImageService(t, ctrl)

	mockImages.EXPECT().
		Check(gomock.Any(), "https://cdn.example.com/a.png").
		Return(allowlist.Verdict{Allowed: true, MatchedPattern: 2}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/allowlist/check?url=https%3A%2F%2Fcdn.example.com%2Fa.png", nil)
	rec := httptest.NewRecorder()

	h.checkAllowlist(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var response models.AllowlistCheckResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "https://cdn.example.com/a.png", response.URL)
	assert.True(t, response.Allowed)
	require.NotNil(t, response.MatchedPattern)
	assert.Equal(t, 2, *response.MatchedPattern)
	assert.Empty(t, response.MatchedDomain)
}

func TestCheckAllowlist_DomainMatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	h, mockImages := newHandlerWithImageService(t, ctrl)

	mockImages.EXPECT().
		Check(gomock.Any(), gomock.Any()).
		Return(allowlist.Verdict{Allowed: true, MatchedPattern: -1, MatchedDomain: "img.example.com"}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/allowlist/check?url=https%3A%2F%2Fimg.example.com%2Fb.jpg", nil)
	rec := httptest.NewRecorder()

	h.checkAllowlist(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var response models.AllowlistCheckResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.True(t, response.Allowed)
	assert.Nil(t, response.MatchedPattern)
	assert.Equal(t, "img.example.com", response.MatchedDomain)
}

func TestCheckAllowlist_Denied(t *testing.T) {
	ctrl := gomock.NewController(t)
	h, mockImages := newHandlerWithImageService(t, ctrl)

	mockImages.EXPECT().
		Check(gomock.Any(), gomock.Any()).
		Return(allowlist.Verdict{Allowed: false, MatchedPattern: -1}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/allowlist/check?url=https%3A%2F%2Fother.example.org%2Fc.gif", nil)
	rec := httptest.NewRecorder()

	h.checkAllowlist(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var response models.AllowlistCheckResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.False(t, response.Allowed)
	assert.Nil(t, response.MatchedPattern)
}

func TestCheckAllowlist_InvalidURL(t *testing.T) {
	ctrl := gomock.NewController(t)
	h, mockImages := newHandlerWithImageService(t, ctrl)

	mockImages.EXPECT().
		Check(gomock.Any(), gomock.Any()).
		Return(allowlist.Verdict{MatchedPattern: -1}, allowlist.ErrInvalidImageURL)

	req := httptest.NewRequest(http.MethodGet, "/api/allowlist/check?url=not-a-url", nil)
	rec := httptest.NewRecorder()

	h.checkAllowlist(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCheckAllowlist_MissingURLParam(t *testing.T) {
	ctrl := gomock.NewController(t)
	h, _ := newHandlerWithImageService(t, ctrl)

	req := httptest.NewRequest(http.MethodGet, "/api/allowlist/check", nil)
	rec := httptest.NewRecorder()

	h.checkAllowlist(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}
