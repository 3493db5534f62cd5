package auth

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mrlokans/rentals/internal/config"
	"github.com/mrlokans/rentals/internal/database"
	"github.com/mrlokans/rentals/internal/database/users"
)

type recordingAuthAuditor struct {
	events []string // "action:userID:success"
}

func (r *recordingAuthAuditor) LogAuth(userID uint, action string, success bool) {
	r.events = append(r.events, fmt.Sprintf("%s:%d:%t", action, userID, success))
}

func setupAuthController(t *testing.T) (*gin.Engine, *recordingAuthAuditor) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbPath := filepath.Join(t.TempDir(), "test_auth_handlers.db")
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	cfg := config.Auth{
		BcryptCost:       bcrypt.MinCost,
		MaxLoginAttempts: 5,
		RateLimitWindow:  15 * time.Minute,
		LockoutDuration:  30 * time.Minute,
	}
	service := NewService(users.NewRepository(db.DB), cfg)

	auditor := &recordingAuthAuditor{}
	controller := NewAuthController(service, nil, cfg, auditor)
	t.Cleanup(controller.Stop)

	router := gin.New()
	controller.RegisterRoutes(router)
	return router, auditor
}

func postJSON(t *testing.T, router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestAuthController_SignupRecordsAuditEvent(t *testing.T) {
	router, auditor := setupAuthController(t)

	w := postJSON(t, router, "/auth/signup",
		`{"username":"alice","password":"sufficiently-long"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	require.Len(t, auditor.events, 1)
	assert.Equal(t, "signup:1:true", auditor.events[0])
}

func TestAuthController_LoginRecordsAuditEvents(t *testing.T) {
	router, auditor := setupAuthController(t)

	w := postJSON(t, router, "/auth/signup",
		`{"username":"alice","password":"sufficiently-long"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	t.Run("failed login is audited", func(t *testing.T) {
		w := postJSON(t, router, "/auth/login",
			`{"username":"alice","password":"wrong-password"}`)
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		require.Len(t, auditor.events, 2)
		assert.Equal(t, "login:0:false", auditor.events[1])
	})

	t.Run("successful login is audited", func(t *testing.T) {
		w := postJSON(t, router, "/auth/login",
			`{"username":"alice","password":"sufficiently-long"}`)
		assert.Equal(t, http.StatusOK, w.Code)

		require.Len(t, auditor.events, 3)
		assert.Equal(t, "login:1:true", auditor.events[2])
	})
}

func TestAuthController_WorksWithoutAuditor(t *testing.T) {
	gin.SetMode(gin.TestMode)

	dbPath := filepath.Join(t.TempDir(), "test_auth_noaudit.db")
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	cfg := config.Auth{BcryptCost: bcrypt.MinCost}
	controller := NewAuthController(NewService(users.NewRepository(db.DB), cfg), nil, cfg, nil)
	t.Cleanup(controller.Stop)

	router := gin.New()
	controller.RegisterRoutes(router)

	w := postJSON(t, router, "/auth/signup",
		`{"username":"bob","password":"sufficiently-long"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
}
