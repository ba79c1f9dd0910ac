package main

import (
	"context"
	"errors"
	"log"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"hrms/internal/config"
	"hrms/internal/db"
	"hrms/internal/model"
	"hrms/internal/repository"
)

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(
		&model.Department{},
		&model.Designation{},
		&model.User{},
		&model.Attendance{},
		&model.Leave{},
		&model.Payroll{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	departmentRepo := repository.NewDepartmentRepository(gormDB)
	designationRepo := repository.NewDesignationRepository(gormDB)

	if err := seedAdmin(ctx, userRepo); err != nil {
		log.Fatalf("Failed to seed admin: %v", err)
	}

	departments, err := seedDepartments(ctx, departmentRepo)
	if err != nil {
		log.Fatalf("Failed to seed departments: %v", err)
	}

	if err := seedDesignations(ctx, designationRepo, departments); err != nil {
		log.Fatalf("Failed to seed designations: %v", err)
	}

	log.Println("Seed completed successfully!")
}

// seedAdmin creates the bootstrap admin account unless one already exists
// for the configured email.
func seedAdmin(ctx context.Context, repo repository.UserRepository) error {
	email := getEnv("ADMIN_EMAIL", "admin@hrms.local")
	password := getEnv("ADMIN_PASSWORD", "admin123")

	if _, err := repo.FindByEmail(ctx, email); err == nil {
		log.Printf("Admin %s already exists, skipping", email)
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		return err
	}

	admin := &model.User{
		FirstName:    "System",
		LastName:     "Admin",
		Email:        email,
		PasswordHash: string(hash),
		Role:         model.RoleAdmin,
		IsActive:     true,
		BasicSalary:  decimal.Zero,
		DateJoined:   time.Now(),
	}
	if err := repo.Create(ctx, admin); err != nil {
		return err
	}
	log.Printf("Created admin account %s", email)
	return nil
}

// seedDepartments creates a starter set of departments, skipping any that
// already exist by name.
func seedDepartments(ctx context.Context, repo repository.DepartmentRepository) (map[string]uint, error) {
	names := []string{"Engineering", "Human Resources", "Finance"}
	ids := make(map[string]uint, len(names))

	for _, name := range names {
		existing, err := repo.FindByName(ctx, name)
		if err == nil {
			ids[name] = existing.ID
			log.Printf("Department %s already exists, skipping", name)
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		department := &model.Department{Name: name}
		if err := repo.Create(ctx, department); err != nil {
			return nil, err
		}
		ids[name] = department.ID
		log.Printf("Created department %s", name)
	}
	return ids, nil
}

// seedDesignations creates a starter set of designations per department.
func seedDesignations(ctx context.Context, repo repository.DesignationRepository, departments map[string]uint) error {
	seed := map[string][]string{
		"Engineering":     {"Software Engineer", "Engineering Manager"},
		"Human Resources": {"HR Officer"},
		"Finance":         {"Accountant"},
	}

	for departmentName, titles := range seed {
		departmentID, ok := departments[departmentName]
		if !ok {
			continue
		}
		for _, title := range titles {
			if _, err := repo.FindByNameAndDepartment(ctx, title, &departmentID); err == nil {
				log.Printf("Designation %s in %s already exists, skipping", title, departmentName)
				continue
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}

			designation := &model.Designation{Name: title, DepartmentID: &departmentID}
			if err := repo.Create(ctx, designation); err != nil {
				return err
			}
			log.Printf("Created designation %s in %s", title, departmentName)
		}
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
