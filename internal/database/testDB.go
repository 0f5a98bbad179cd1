package database

import (
	"context"
	"fmt"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/lib/pq"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	// Load env
	_ "github.com/joho/godotenv/autoload"

	"CampusHire-backend/internal/config"
	m "CampusHire-backend/internal/model"
	"CampusHire-backend/internal/utilities"
)

var testDBInstance *DBinstanceStruct
var teardown func(context.Context) error

// Exported seeded users, companies and jobs
var (
	TestStudent1   m.User
	TestStudent2   m.User
	TestRecruiter1 m.User
	TestRecruiter2 m.User
	TestCompany1   m.Company
	TestCompany2   m.Company
	TestJob1       m.Job
	TestJob2       m.Job
	TestJob3       m.Job

	// Plain password every seeded user can log in with
	TestSeedPassword = "SeedPass123!"
)

// GetTestDB starts a PostgreSQL test container and returns a teardown function,
// the DB instance, and any error encountered during setup.
func GetTestDB() (func(context.Context) error, *DBinstanceStruct, error) {

	if testDBInstance != nil && teardown != nil {
		return teardown, testDBInstance, nil
	}

	// Database configuration
	var (
		dbName = "database"
		dbPwd  = "password"
		dbUser = "user"
	)

	dbContainer, err := postgres.Run(
		context.Background(),
		"postgres:latest",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPwd),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second)),
	)
	if err != nil {
		return nil, nil, err
	}

	dbHost, err := dbContainer.Host(context.Background())
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	dbPort, err := dbContainer.MappedPort(context.Background(), nat.Port("5432/tcp"))
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	cfg := &config.DBConfig{
		UseConstr: true,
		Constr:    fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable", dbHost, dbPort.Port(), dbUser, dbPwd, dbName),
	}

	db, err := NewDBInstance(cfg)
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	if err := seedTestData(db); err != nil {
		_ = dbContainer.Terminate(context.Background())
		return nil, nil, err
	}

	testDBInstance = db
	teardown = dbContainer.Terminate

	return dbContainer.Terminate, db, nil
}

// seedTestData inserts sample users, companies and jobs if the database is empty.
func seedTestData(db *DBinstanceStruct) error {
	var userCount int64
	if err := db.Model(&m.User{}).Count(&userCount).Error; err != nil {
		return err
	}

	if userCount > 0 {
		return loadTestData(db)
	}

	hashedPwd, errHash := utilities.HashPassword(TestSeedPassword)
	if errHash != nil {
		return errHash
	}

	users := []m.User{
		{
			Email:    "student1@example.com",
			Password: hashedPwd,
			Role:     m.RoleStudent,
			EditableProfileInfo: m.EditableProfileInfo{
				FullName:    "Alice Nguyen",
				PhoneNumber: "0100000001",
				Skills:      pq.StringArray{"Go", "SQL"},
			},
		},
		{
			Email:    "student2@example.com",
			Password: hashedPwd,
			Role:     m.RoleStudent,
			EditableProfileInfo: m.EditableProfileInfo{
				FullName:    "Bob Somsak",
				PhoneNumber: "0100000002",
				Skills:      pq.StringArray{"React", "TypeScript"},
			},
		},
		{
			Email:    "recruiter1@example.com",
			Password: hashedPwd,
			Role:     m.RoleRecruiter,
			EditableProfileInfo: m.EditableProfileInfo{
				FullName:    "Carol Lin",
				PhoneNumber: "0200000001",
			},
		},
		{
			Email:    "recruiter2@example.com",
			Password: hashedPwd,
			Role:     m.RoleRecruiter,
			EditableProfileInfo: m.EditableProfileInfo{
				FullName:    "Dan Petrov",
				PhoneNumber: "0200000002",
			},
		},
	}
	if err := db.Create(&users).Error; err != nil {
		return err
	}

	for _, u := range users {
		switch u.Email {
		case "student1@example.com":
			TestStudent1 = u
		case "student2@example.com":
			TestStudent2 = u
		case "recruiter1@example.com":
			TestRecruiter1 = u
		case "recruiter2@example.com":
			TestRecruiter2 = u
		}
	}

	companies := []m.Company{
		{
			OwnerID: TestRecruiter1.ID,
			EditableCompanyInfo: m.EditableCompanyInfo{
				Name:        "TechNova",
				Description: "Innovative platform solutions",
				Website:     "https://technova.example.com",
				Location:    "Bangkok",
			},
		},
		{
			OwnerID: TestRecruiter2.ID,
			EditableCompanyInfo: m.EditableCompanyInfo{
				Name:        "DataForge",
				Description: "Data analytics consulting",
				Website:     "https://dataforge.example.com",
				Location:    "Chiang Mai",
			},
		},
	}
	if err := db.Create(&companies).Error; err != nil {
		return err
	}

	TestCompany1 = companies[0]
	TestCompany2 = companies[1]

	jobs := []m.Job{
		{
			Title:           "Backend Engineer Intern",
			Description:     "Work on Go microservices and database layers.",
			Requirements:    pq.StringArray{"Go basics", "SQL familiarity"},
			Salary:          50000,
			Location:        "Bangkok",
			JobType:         "internship",
			ExperienceLevel: "entry",
			Position:        2,
			CompanyID:       TestCompany1.ID,
			CreatedByID:     TestRecruiter1.ID,
		},
		{
			Title:           "Frontend Developer",
			Description:     "Build the component library in React.",
			Requirements:    pq.StringArray{"JS/TS fundamentals"},
			Salary:          75000,
			Location:        "Remote",
			JobType:         "full-time",
			ExperienceLevel: "mid",
			Position:        1,
			CompanyID:       TestCompany1.ID,
			CreatedByID:     TestRecruiter1.ID,
		},
		{
			Title:           "Senior Data Analyst",
			Description:     "Own data cleansing and dashboard creation.",
			Requirements:    pq.StringArray{"SQL", "Statistics"},
			Salary:          130000,
			Location:        "Chiang Mai",
			JobType:         "full-time",
			ExperienceLevel: "senior",
			Position:        1,
			CompanyID:       TestCompany2.ID,
			CreatedByID:     TestRecruiter2.ID,
		},
	}
	if err := db.Create(&jobs).Error; err != nil {
		return err
	}

	TestJob1 = jobs[0]
	TestJob2 = jobs[1]
	TestJob3 = jobs[2]

	return nil
}

// loadTestData populates exported variables when records already exist.
func loadTestData(db *DBinstanceStruct) error {
	var users []m.User
	if err := db.Where("email IN ?", []string{
		"student1@example.com", "student2@example.com",
		"recruiter1@example.com", "recruiter2@example.com",
	}).Find(&users).Error; err != nil {
		return err
	}
	for _, u := range users {
		switch u.Email {
		case "student1@example.com":
			TestStudent1 = u
		case "student2@example.com":
			TestStudent2 = u
		case "recruiter1@example.com":
			TestRecruiter1 = u
		case "recruiter2@example.com":
			TestRecruiter2 = u
		}
	}

	_ = db.First(&TestCompany1, "owner_id = ?", TestRecruiter1.ID).Error
	_ = db.First(&TestCompany2, "owner_id = ?", TestRecruiter2.ID).Error

	var jobs []m.Job
	if err := db.Order("id ASC").Limit(3).Find(&jobs).Error; err == nil {
		if len(jobs) > 0 {
			TestJob1 = jobs[0]
		}
		if len(jobs) > 1 {
			TestJob2 = jobs[1]
		}
		if len(jobs) > 2 {
			TestJob3 = jobs[2]
		}
	}

	return nil
}
