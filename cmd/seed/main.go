package main

import (
	"context"
	"encoding/json"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"leavedesk/internal/config"
	"leavedesk/internal/db"
	"leavedesk/internal/model"
	"leavedesk/internal/repository"
)

const bcryptCost = 10

// SeedUser describes one account in the seed file.
type SeedUser struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	IsAdmin  bool   `json:"is_admin"`
}

// LegacyLeave mirrors one row of a legacy store export. The users relation
// arrives as a single object or a one-element array depending on how the
// export query was issued.
type LegacyLeave struct {
	LeaveType    string            `json:"leave_type"`
	LeavePurpose string            `json:"leave_purpose"`
	LeaveTime    string            `json:"leave_time"`
	LeaveDate    string            `json:"leave_date"`
	Status       string            `json:"status"`
	Users        model.RelatedUser `json:"users"`
}

var defaultUsers = []SeedUser{
	{FullName: "Admin User", Email: "admin@leavedesk.local", Password: "admin123", IsAdmin: true},
	{FullName: "Alice Perera", Email: "alice@leavedesk.local", Password: "password123"},
	{FullName: "Bob Silva", Email: "bob@leavedesk.local", Password: "password123"},
	{FullName: "Carol Fernando", Email: "carol@leavedesk.local", Password: "password123"},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Session{}, &model.Leave{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	leaveRepo := repository.NewLeaveRepository(gormDB)

	users := defaultUsers
	if path := os.Getenv("SEED_USERS"); path != "" {
		users, err = loadJSON[[]SeedUser](path)
		if err != nil {
			log.Fatalf("Failed to load seed users from %s: %v", path, err)
		}
	}

	byName := make(map[string]*model.User)
	created := 0
	for _, su := range users {
		existing, err := userRepo.FindByEmail(ctx, su.Email)
		if err == nil {
			byName[existing.FullName] = existing
			continue
		}
		if err != gorm.ErrRecordNotFound {
			log.Fatalf("Failed to check user %s: %v", su.Email, err)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(su.Password), bcryptCost)
		if err != nil {
			log.Fatalf("Failed to hash password for %s: %v", su.Email, err)
		}
		user := &model.User{
			FullName:     su.FullName,
			Email:        su.Email,
			PasswordHash: string(hash),
			IsAdmin:      su.IsAdmin,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			log.Fatalf("Failed to create user %s: %v", su.Email, err)
		}
		byName[user.FullName] = user
		created++
	}
	log.Printf("Seeded %d new users (%d total in file)", created, len(users))

	dumpPath := os.Getenv("SEED_DUMP")
	if dumpPath == "" {
		log.Println("SEED_DUMP not set, skipping legacy leave import")
		return
	}

	rows, err := loadJSON[[]LegacyLeave](dumpPath)
	if err != nil {
		log.Fatalf("Failed to load legacy dump from %s: %v", dumpPath, err)
	}

	imported, skipped := 0, 0
	for _, row := range rows {
		name, ok := row.Users.Resolved()
		if !ok {
			log.Printf("Skipping legacy leave on %s: unresolved employee", row.LeaveDate)
			skipped++
			continue
		}
		user, ok := byName[name]
		if !ok {
			log.Printf("Skipping legacy leave on %s: unknown employee %q", row.LeaveDate, name)
			skipped++
			continue
		}

		status := model.LeaveStatus(row.Status)
		if status == "" {
			status = model.LeaveStatusPending
		}
		leave := &model.Leave{
			UserID:       user.ID,
			LeaveType:    row.LeaveType,
			LeavePurpose: row.LeavePurpose,
			LeaveTime:    row.LeaveTime,
			LeaveDate:    row.LeaveDate,
			Status:       status,
		}
		if err := leaveRepo.Create(ctx, leave); err != nil {
			log.Printf("Failed to import leave on %s for %s: %v", row.LeaveDate, name, err)
			skipped++
			continue
		}
		imported++
	}
	log.Printf("Imported %d legacy leaves, skipped %d", imported, skipped)
}

func loadJSON[T any](path string) (T, error) {
	var out T
	data, err := os.ReadFile(path)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, err
	}
	return out, nil
}
