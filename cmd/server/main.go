package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	emailPkg "gymadmin/internal/adapters/email"
	web "gymadmin/internal/adapters/http"
	"gymadmin/internal/adapters/storage"
	attendanceStore "gymadmin/internal/adapters/storage/attendance"
	deviceStore "gymadmin/internal/adapters/storage/device"
	feeReminderStore "gymadmin/internal/adapters/storage/feereminder"
	fitnessClassStore "gymadmin/internal/adapters/storage/fitnessclass"
	memberStore "gymadmin/internal/adapters/storage/member"
	paymentStore "gymadmin/internal/adapters/storage/payment"
	registrationStore "gymadmin/internal/adapters/storage/registration"
	userStore "gymadmin/internal/adapters/storage/user"
	"gymadmin/internal/application/orchestrators"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// Initialize database with WAL mode, foreign keys, and busy timeout
	dbPath := envOrDefault("GYM_DB_PATH", "gymadmin.db")
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	// Connection pool settings for WAL mode
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	if err := db.Ping(); err != nil {
		log.Fatalf("database unreachable: %v", err)
	}

	if err := storage.InitDB(db); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	// Wrap DB with timing so slow queries get logged
	timedDB := storage.NewTimedDB(db)

	users := userStore.NewSQLiteStore(timedDB)
	stores := &web.Stores{
		UserStore:         users,
		MemberStore:       memberStore.NewSQLiteStore(timedDB),
		ClassStore:        fitnessClassStore.NewSQLiteStore(timedDB),
		RegistrationStore: registrationStore.NewSQLiteStore(timedDB),
		PaymentStore:      paymentStore.NewSQLiteStore(timedDB),
		FeeReminderStore:  feeReminderStore.NewSQLiteStore(timedDB),
		DeviceStore:       deviceStore.NewSQLiteStore(timedDB),
		AttendanceStore:   attendanceStore.NewSQLiteStore(timedDB),
	}

	// Seed default admin user if no users exist
	created, err := orchestrators.ExecuteSeedAdmin(context.Background(), orchestrators.SeedAdminInput{
		Username: envOrDefault("GYM_ADMIN_USER", "admin"),
		Password: envOrDefault("GYM_ADMIN_PASSWORD", "admin123"),
	}, orchestrators.SeedAdminDeps{UserStore: users})
	if err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}
	if created {
		log.Println("Seeded default admin user")
	}

	// Configure email sender
	resendKey := os.Getenv("GYM_RESEND_KEY")
	emailFrom := envOrDefault("GYM_RESEND_FROM", "Gym Admin <noreply@gymadmin.example.com>")
	if resendKey != "" {
		web.SetEmailSender(emailPkg.NewResendSender(resendKey, emailFrom))
		log.Println("Email sender configured (Resend)")
	} else {
		web.SetEmailSender(emailPkg.NewNoopSender())
		if os.Getenv("GYM_ENV") == "production" {
			log.Println("WARNING: GYM_RESEND_KEY is not set — email delivery is DISABLED in production")
		} else {
			log.Println("Email sender configured (noop — set GYM_RESEND_KEY for real delivery)")
		}
	}

	// Daily fee rollover: archive paid reminders, create next billing cycle,
	// and email members whose fees are due.
	rolloverStopCh := make(chan struct{})
	orchestrators.StartDailyFeeScheduler(orchestrators.FeeRolloverDeps{
		ReminderStore: stores.FeeReminderStore,
		MemberStore:   stores.MemberStore,
		Sender:        web.EmailSender(),
		NewID:         uuid.NewString,
		Now:           time.Now,
	}, reminderHour(), rolloverStopCh)
	defer close(rolloverStopCh)

	mux := web.NewMux("static", stores)

	addr := envOrDefault("GYM_ADDR", ":8080")
	log.Printf("Gym admin %s starting on %s (env=%s)", version, addr, envOrDefault("GYM_ENV", "development"))

	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// reminderHour returns the local hour for the daily fee rollover run.
func reminderHour() int {
	if v := os.Getenv("GYM_REMINDER_HOUR"); v != "" {
		if h, err := strconv.Atoi(v); err == nil && h >= 0 && h <= 23 {
			return h
		}
	}
	return 9
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
