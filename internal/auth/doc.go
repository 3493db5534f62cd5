// Package auth provides authentication for the rental service.
//
// Accounts live in SQLite with bcrypt-hashed passwords; logged-in state is
// carried by server-side sessions (scs with a sqlite3 store) referenced from
// an HttpOnly cookie. Login attempts are rate limited per IP+username, and
// repeated failures lock the account for a configurable duration.
//
// # Configuration
//
//	AUTH_SESSION_SECRET=<hex-32-bytes>  # Auto-generated if empty
//	AUTH_SESSION_LIFETIME=24h           # Session duration
//	AUTH_BCRYPT_COST=12                 # bcrypt cost factor
//	AUTH_SECURE_COOKIES=true            # HTTPS-only cookies
//	AUTH_MAX_LOGIN_ATTEMPTS=5           # Failures before lockout
//	AUTH_RATE_LIMIT_WINDOW=15m          # Sliding window for counting failures
//	AUTH_LOCKOUT_DURATION=30m           # Lockout length
//
// # Usage
//
// Initialize authentication in entrypoint:
//
//	authService := auth.NewService(userRepo, cfg.Auth)
//	authMiddleware := auth.NewMiddleware(authService, sessionManager)
//	router.Use(sessionManager.SessionLoadSave())
//	router.Use(authMiddleware.Handler())
//
// Extract the user in handlers:
//
//	userID := auth.GetUserID(c)
package auth
