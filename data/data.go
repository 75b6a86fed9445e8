package data

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	_ "github.com/glebarez/go-sqlite"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/snehamhatre1409-sys/Health-Management-System/messaging"
	"github.com/snehamhatre1409-sys/Health-Management-System/types"
)

// Error kinds surfaced by the store
var (
	ErrDuplicateUser      = errors.New("username already taken")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// FormatDateTimeISO8601 formats a time.Time to ISO 8601 format with UTC timezone
// Example output: YYYY-MM-DDTHH:MM:SS.MMMZ
func FormatDateTimeISO8601(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}

func InitDatabase() {
	db := OpenDataBase()
	defer CloseDataBase(db)

	_, err := db.Exec(`
	CREATE TABLE IF NOT EXISTS users (
		id VARCHAR(36) PRIMARY KEY,
		username TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		email TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)
	`)
	if err != nil {
		log.Fatal(err)
	}

	_, err = db.Exec(`
	CREATE TABLE IF NOT EXISTS health_records (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id VARCHAR(36) NOT NULL,
		date TEXT NOT NULL,
		weight REAL NOT NULL,
		height REAL NOT NULL,
		age INTEGER NOT NULL,
		sex TEXT NOT NULL,
		activity_level TEXT NOT NULL,
		bmi REAL NOT NULL,
		bmi_status TEXT NOT NULL,
		bmr REAL NOT NULL,
		tdee REAL NOT NULL,
		water_target REAL NOT NULL,
		protein_target REAL NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (user_id) REFERENCES users(id)
	)
	`)
	if err != nil {
		log.Fatal(err)
	}

	_, err = db.Exec(`
	CREATE INDEX IF NOT EXISTS idx_health_records_user_id ON health_records(user_id)
	`)
	if err != nil {
		log.Fatal(err)
	}

	_, err = db.Exec(`
	CREATE TABLE IF NOT EXISTS weight_tracking (
		id TEXT PRIMARY KEY,
		user_id VARCHAR(36) NOT NULL,
		weight REAL NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (user_id) REFERENCES users(id)
	)
	`)
	if err != nil {
		log.Fatal(err)
	}

	_, err = db.Exec(`
	CREATE INDEX IF NOT EXISTS idx_weight_tracking_user_id ON weight_tracking(user_id)
	`)
	if err != nil {
		log.Fatal(err)
	}
}

func OpenDataBase() *sql.DB {
	dbPath := GetDBPath()
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		log.Fatal(err)
	}
	return db
}

func GetDBPath() string {
	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = ".."
	}
	return dataDir + "/health.db"
}

func CloseDataBase(db *sql.DB) {
	db.Close()
}

// CreateUser registers a new account. The password is stored as a bcrypt
// hash, never as plaintext. Returns ErrDuplicateUser when the username is
// already present; uniqueness is the only constraint enforced.
func CreateUser(username, password, email string) (*types.User, error) {
	db := OpenDataBase()
	defer CloseDataBase(db)

	var exists bool
	err := db.QueryRow("SELECT EXISTS(SELECT 1 FROM users WHERE username = ?)", username).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("error checking if username exists: %v", err)
	}
	if exists {
		return nil, ErrDuplicateUser
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %v", err)
	}

	user := &types.User{
		ID:        uuid.New().String(),
		Username:  username,
		Email:     email,
		CreatedAt: time.Now().UTC(),
	}

	query := `
	INSERT INTO users (id, username, password_hash, email, created_at)
	VALUES (?, ?, ?, ?, ?)
	`
	_, err = db.Exec(query, user.ID, user.Username, string(passwordHash), user.Email,
		FormatDateTimeISO8601(user.CreatedAt))
	if err != nil {
		return nil, fmt.Errorf("failed to insert user: %v", err)
	}

	return user, nil
}

// AuthenticateUser verifies a username/password pair against the stored
// bcrypt hash. Absent users and wrong passwords are indistinguishable to
// the caller: both return ErrInvalidCredentials.
func AuthenticateUser(username, password string) (*types.User, error) {
	db := OpenDataBase()
	defer CloseDataBase(db)

	var user types.User
	var passwordHash string
	query := `
	SELECT id, username, COALESCE(email, ''), password_hash, created_at
	FROM users
	WHERE username = ?
	`
	err := db.QueryRow(query, username).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&passwordHash,
		&user.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to query user: %v", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	return &user, nil
}

// GetUserByUsername looks up an account without checking credentials
func GetUserByUsername(username string) (*types.User, error) {
	db := OpenDataBase()
	defer CloseDataBase(db)

	var user types.User
	query := `
	SELECT id, username, COALESCE(email, ''), created_at
	FROM users
	WHERE username = ?
	`
	err := db.QueryRow(query, username).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to query user: %v", err)
	}

	return &user, nil
}

// InsertHealthRecord appends one record to a user's history. Rows are
// never updated or removed; the AUTOINCREMENT id gives insertion order.
// Returns the assigned record id.
func InsertHealthRecord(userID string, record types.HealthRecord) (int64, error) {
	db := OpenDataBase()
	defer CloseDataBase(db)

	query := `
	INSERT INTO health_records
		(user_id, date, weight, height, age, sex, activity_level,
		 bmi, bmi_status, bmr, tdee, water_target, protein_target, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := db.Exec(query,
		userID,
		record.Date,
		record.WeightKg,
		record.HeightM,
		record.AgeYears,
		record.Sex,
		record.ActivityLevel,
		record.BMI,
		record.BMIStatus,
		record.BMR,
		record.TDEE,
		record.WaterTargetL,
		record.ProteinTargetG,
		FormatDateTimeISO8601(time.Now()),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert health record: %v", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("error reading inserted record id: %v", err)
	}

	messaging.BroadcastMessage(messaging.EventRecordsUpdated)
	return id, nil
}

// GetHealthRecords returns all records for a user in insertion order
func GetHealthRecords(userID string) ([]types.HealthRecord, error) {
	db := OpenDataBase()
	defer CloseDataBase(db)

	query := `
	SELECT id, user_id, date, weight, height, age, sex, activity_level,
	       bmi, bmi_status, bmr, tdee, water_target, protein_target, created_at
	FROM health_records
	WHERE user_id = ?
	ORDER BY id ASC
	`

	rows, err := db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query health records: %v", err)
	}
	defer rows.Close()

	var records []types.HealthRecord
	for rows.Next() {
		var record types.HealthRecord
		err := rows.Scan(
			&record.ID,
			&record.UserID,
			&record.Date,
			&record.WeightKg,
			&record.HeightM,
			&record.AgeYears,
			&record.Sex,
			&record.ActivityLevel,
			&record.BMI,
			&record.BMIStatus,
			&record.BMR,
			&record.TDEE,
			&record.WaterTargetL,
			&record.ProteinTargetG,
			&record.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan health record: %v", err)
		}
		records = append(records, record)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating health records: %v", err)
	}

	return records, nil
}

// InsertWeightTracking adds a new entry to the weight_tracking table
func InsertWeightTracking(userID string, weight float64) error {
	db := OpenDataBase()
	defer CloseDataBase(db)

	id := uuid.New().String()

	query := `
	INSERT INTO weight_tracking (id, user_id, weight, created_at)
	VALUES (?, ?, ?, ?)
	`

	_, err := db.Exec(query, id, userID, weight, FormatDateTimeISO8601(time.Now()))
	if err != nil {
		return fmt.Errorf("failed to insert weight tracking record: %v", err)
	}

	return nil
}

// GetWeightTracking returns a user's weight time series, oldest first
func GetWeightTracking(userID string) ([]types.WeightEntry, error) {
	db := OpenDataBase()
	defer CloseDataBase(db)

	query := `
	SELECT id, weight, created_at
	FROM weight_tracking
	WHERE user_id = ?
	ORDER BY created_at ASC, rowid ASC
	`

	rows, err := db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query weight tracking: %v", err)
	}
	defer rows.Close()

	var entries []types.WeightEntry
	for rows.Next() {
		var entry types.WeightEntry
		if err := rows.Scan(&entry.ID, &entry.WeightKg, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan weight entry: %v", err)
		}
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating weight entries: %v", err)
	}

	return entries, nil
}
