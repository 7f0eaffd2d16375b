package web

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"os"
	"time"

	"gymadmin/internal/adapters/email"
	"gymadmin/internal/adapters/http/middleware"
	attendanceStore "gymadmin/internal/adapters/storage/attendance"
	deviceStore "gymadmin/internal/adapters/storage/device"
	feeReminderStore "gymadmin/internal/adapters/storage/feereminder"
	fitnessClassStore "gymadmin/internal/adapters/storage/fitnessclass"
	memberStore "gymadmin/internal/adapters/storage/member"
	paymentStore "gymadmin/internal/adapters/storage/payment"
	registrationStore "gymadmin/internal/adapters/storage/registration"
	userStore "gymadmin/internal/adapters/storage/user"
)

// Stores holds all storage dependencies.
type Stores struct {
	UserStore         userStore.Store
	MemberStore       memberStore.Store
	ClassStore        fitnessClassStore.Store
	RegistrationStore registrationStore.Store
	PaymentStore      paymentStore.Store
	FeeReminderStore  feeReminderStore.Store
	DeviceStore       deviceStore.Store
	AttendanceStore   attendanceStore.Store
}

// loadCSRFKey reads the CSRF secret from GYM_CSRF_KEY (hex-encoded, 32 bytes).
// In production, the key MUST be set. In development, a random key is generated per startup.
func loadCSRFKey() []byte {
	if keyHex := os.Getenv("GYM_CSRF_KEY"); keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) != 32 {
			log.Fatal("GYM_CSRF_KEY must be 64 hex characters (32 bytes)")
		}
		return key
	}
	if os.Getenv("GYM_ENV") == "production" {
		log.Fatal("GYM_CSRF_KEY is required in production")
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatalf("failed to generate CSRF key: %v", err)
	}
	log.Println("WARNING: using random CSRF key (sessions won't survive restart). Set GYM_CSRF_KEY for production.")
	return key
}

// Global stores instance (set by NewMux)
var stores *Stores

// Global session store instance
var sessions *middleware.SessionStore

// RateLimitPerSecond controls the per-IP rate limit. Tests can increase this.
var RateLimitPerSecond = 10

// Global email sender instance (set by SetEmailSender)
var emailSender email.Sender

// SetEmailSender sets the global email sender for the application.
func SetEmailSender(sender email.Sender) {
	emailSender = sender
}

// EmailSender returns the configured sender, defaulting to a no-op.
func EmailSender() email.Sender {
	if emailSender == nil {
		return email.NewNoopSender()
	}
	return emailSender
}

// NewMux wires HTTP handlers for the app.
func NewMux(staticDir string, s *Stores) http.Handler {
	stores = s
	sessions = middleware.NewSessionStore()
	middleware.SecureCookies = os.Getenv("GYM_ENV") == "production"

	mux := http.NewServeMux()
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))
	registerRoutes(mux)

	// CSRF key: 32-byte hex-encoded secret from env var
	csrfKey := loadCSRFKey()

	// Rate limiter: configurable requests per second per IP
	limiter := middleware.NewRateLimiter(RateLimitPerSecond, time.Second)

	// Apply middleware: SecurityHeaders -> CSRF -> Auth -> RateLimit -> Mux
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(csrfKey),
		middleware.Auth(sessions),
		middleware.RateLimit(limiter),
	)
}
