package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/instantfun/soundboard/internal/auth"
	"github.com/instantfun/soundboard/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type UploadTokenTestSuite struct {
	suite.Suite
	db          *gorm.DB
	authService *auth.Service
	token       string
}

func (suite *UploadTokenTestSuite) SetupSuite() {
	suite.db = setupTestDB(suite.T(), "upload_handler")
	cfg := testConfig()
	suite.authService = auth.NewService(cfg.JWTSecret, cfg.BcryptCost)
	_, suite.token = createTestUser(suite.T(), suite.db, suite.authService, "grace")
}

// routerWith builds a router around the given config so each test can vary
// the storage settings.
func (suite *UploadTokenTestSuite) routerWith(cfg *config.Config) *gin.Engine {
	return newTestRouter(NewHandlers(suite.authService, newMockStore(), cfg), suite.authService)
}

func (suite *UploadTokenTestSuite) request(router *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", "/api/upload-token", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func (suite *UploadTokenTestSuite) TestIssuesCredential() {
	cfg := testConfig()
	w := suite.request(suite.routerWith(cfg), suite.token)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var resp struct {
		Token   string `json:"token"`
		Key     string `json:"key"`
		Domain  string `json:"domain"`
		MaxSize int64  `json:"max_size"`
	}
	require.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(suite.T(), resp.Token)
	assert.NotEmpty(suite.T(), resp.Key)
	assert.Equal(suite.T(), cfg.Storage.Domain, resp.Domain)
	assert.Equal(suite.T(), cfg.MaxFileSize, resp.MaxSize)
	assert.Contains(suite.T(), w.Body.String(), "expires_at")
}

func (suite *UploadTokenTestSuite) TestRequiresAuth() {
	w := suite.request(suite.routerWith(testConfig()), "")
	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
}

func (suite *UploadTokenTestSuite) TestEachMissingStorageSettingRejected() {
	cases := []struct {
		name  string
		unset func(*config.Config)
	}{
		{"access key", func(c *config.Config) { c.Storage.AccessKey = "" }},
		{"secret key", func(c *config.Config) { c.Storage.SecretKey = "" }},
		{"bucket", func(c *config.Config) { c.Storage.Bucket = "" }},
		{"domain", func(c *config.Config) { c.Storage.Domain = "" }},
	}

	for _, tc := range cases {
		cfg := testConfig()
		tc.unset(cfg)

		w := suite.request(suite.routerWith(cfg), suite.token)
		assert.Equal(suite.T(), http.StatusInternalServerError, w.Code, "missing %s", tc.name)
		assert.Contains(suite.T(), w.Body.String(), "CONFIG_ERROR", "missing %s", tc.name)
		assert.Contains(suite.T(), w.Body.String(), "storage is not configured", "missing %s", tc.name)
	}
}

func (suite *UploadTokenTestSuite) TestNilStoreRejected() {
	cfg := testConfig()
	router := newTestRouter(NewHandlers(suite.authService, nil, cfg), suite.authService)

	w := suite.request(router, suite.token)
	assert.Equal(suite.T(), http.StatusInternalServerError, w.Code)
	assert.Contains(suite.T(), w.Body.String(), "CONFIG_ERROR")
}

func TestUploadTokenTestSuite(t *testing.T) {
	suite.Run(t, new(UploadTokenTestSuite))
}
