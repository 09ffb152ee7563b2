package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/instantfun/soundboard/internal/auth"
	"github.com/instantfun/soundboard/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type FavoriteHandlersTestSuite struct {
	suite.Suite
	db          *gorm.DB
	router      *gin.Engine
	authService *auth.Service

	user  *models.User
	token string
}

func (suite *FavoriteHandlersTestSuite) SetupSuite() {
	suite.db = setupTestDB(suite.T(), "favorites_handlers")
	cfg := testConfig()
	suite.authService = auth.NewService(cfg.JWTSecret, cfg.BcryptCost)
	suite.router = newTestRouter(NewHandlers(suite.authService, newMockStore(), cfg), suite.authService)
}

func (suite *FavoriteHandlersTestSuite) SetupTest() {
	suite.db.Exec("DELETE FROM favorites")
	suite.db.Exec("DELETE FROM sounds")
	suite.db.Exec("DELETE FROM users")

	suite.user, suite.token = createTestUser(suite.T(), suite.db, suite.authService, "erin")
}

func (suite *FavoriteHandlersTestSuite) doJSON(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(suite.T(), json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *FavoriteHandlersTestSuite) TestCreateFavorite() {
	sound := createTestSound(suite.T(), suite.db, suite.user, "bell")

	w := suite.doJSON("POST", "/api/favorites", suite.token, gin.H{"sound_id": sound.ID})
	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var favorite models.Favorite
	require.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &favorite))
	assert.Equal(suite.T(), suite.user.ID, favorite.UserID)
	assert.Equal(suite.T(), sound.ID, favorite.SoundID)
}

func (suite *FavoriteHandlersTestSuite) TestCreateFavoriteUnknownSound() {
	w := suite.doJSON("POST", "/api/favorites", suite.token,
		gin.H{"sound_id": "00000000-0000-0000-0000-000000000000"})
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *FavoriteHandlersTestSuite) TestCreateFavoriteMissingSoundID() {
	w := suite.doJSON("POST", "/api/favorites", suite.token, gin.H{})
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	assert.Contains(suite.T(), w.Body.String(), "sound_id is required")
}

func (suite *FavoriteHandlersTestSuite) TestDuplicateFavoriteRejected() {
	sound := createTestSound(suite.T(), suite.db, suite.user, "bell")

	first := suite.doJSON("POST", "/api/favorites", suite.token, gin.H{"sound_id": sound.ID})
	require.Equal(suite.T(), http.StatusCreated, first.Code)

	second := suite.doJSON("POST", "/api/favorites", suite.token, gin.H{"sound_id": sound.ID})
	assert.Equal(suite.T(), http.StatusBadRequest, second.Code)
	assert.Contains(suite.T(), second.Body.String(), "CONFLICT")
	assert.Contains(suite.T(), second.Body.String(), "already favorited")

	var count int64
	suite.db.Model(&models.Favorite{}).
		Where("user_id = ? AND sound_id = ?", suite.user.ID, sound.ID).
		Count(&count)
	assert.EqualValues(suite.T(), 1, count)
}

func (suite *FavoriteHandlersTestSuite) TestUniqueIndexBacksDuplicateCheck() {
	sound := createTestSound(suite.T(), suite.db, suite.user, "bell")
	require.NoError(suite.T(), suite.db.Create(&models.Favorite{UserID: suite.user.ID, SoundID: sound.ID}).Error)

	err := suite.db.Create(&models.Favorite{UserID: suite.user.ID, SoundID: sound.ID}).Error
	assert.ErrorIs(suite.T(), err, gorm.ErrDuplicatedKey)
}

func (suite *FavoriteHandlersTestSuite) TestDeleteFavorite() {
	sound := createTestSound(suite.T(), suite.db, suite.user, "bell")
	require.NoError(suite.T(), suite.db.Create(&models.Favorite{UserID: suite.user.ID, SoundID: sound.ID}).Error)

	w := suite.doJSON("DELETE", "/api/favorites/"+sound.ID, suite.token, nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var count int64
	suite.db.Model(&models.Favorite{}).Where("user_id = ?", suite.user.ID).Count(&count)
	assert.Zero(suite.T(), count)
}

func (suite *FavoriteHandlersTestSuite) TestDeleteAbsentFavoriteSucceeds() {
	w := suite.doJSON("DELETE", "/api/favorites/00000000-0000-0000-0000-000000000000", suite.token, nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
}

func (suite *FavoriteHandlersTestSuite) TestDeleteFavoriteOnlyForCaller() {
	other, otherToken := createTestUser(suite.T(), suite.db, suite.authService, "frank")
	sound := createTestSound(suite.T(), suite.db, suite.user, "bell")
	require.NoError(suite.T(), suite.db.Create(&models.Favorite{UserID: suite.user.ID, SoundID: sound.ID}).Error)
	require.NoError(suite.T(), suite.db.Create(&models.Favorite{UserID: other.ID, SoundID: sound.ID}).Error)

	w := suite.doJSON("DELETE", "/api/favorites/"+sound.ID, otherToken, nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var mine, theirs int64
	suite.db.Model(&models.Favorite{}).Where("user_id = ?", suite.user.ID).Count(&mine)
	suite.db.Model(&models.Favorite{}).Where("user_id = ?", other.ID).Count(&theirs)
	assert.EqualValues(suite.T(), 1, mine, "other users' favorites are untouched")
	assert.Zero(suite.T(), theirs)
}

func (suite *FavoriteHandlersTestSuite) TestListFavorites() {
	s1 := createTestSound(suite.T(), suite.db, suite.user, "bell")
	s2 := createTestSound(suite.T(), suite.db, suite.user, "whistle")
	createTestSound(suite.T(), suite.db, suite.user, "ignored")

	require.NoError(suite.T(), suite.db.Create(&models.Favorite{UserID: suite.user.ID, SoundID: s1.ID}).Error)
	require.NoError(suite.T(), suite.db.Create(&models.Favorite{UserID: suite.user.ID, SoundID: s2.ID}).Error)

	w := suite.doJSON("GET", "/api/favorites", suite.token, nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var sounds []models.Sound
	require.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &sounds))
	require.Len(suite.T(), sounds, 2)

	ids := map[string]bool{sounds[0].ID: true, sounds[1].ID: true}
	assert.True(suite.T(), ids[s1.ID])
	assert.True(suite.T(), ids[s2.ID])
}

func (suite *FavoriteHandlersTestSuite) TestFavoritesRequireAuth() {
	for _, req := range []struct{ method, path string }{
		{"POST", "/api/favorites"},
		{"DELETE", "/api/favorites/some-id"},
		{"GET", "/api/favorites"},
	} {
		w := suite.doJSON(req.method, req.path, "", nil)
		assert.Equal(suite.T(), http.StatusUnauthorized, w.Code, "%s %s", req.method, req.path)
	}
}

func TestFavoriteHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(FavoriteHandlersTestSuite))
}
