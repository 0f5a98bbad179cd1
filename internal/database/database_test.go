package database

import (
	"context"
	"log"
	"testing"

	"CampusHire-backend/internal/model"
)

var testDB *DBinstanceStruct

func TestMain(m *testing.M) {
	teardown, db, err := GetTestDB()
	if err != nil {
		log.Fatalf("could not start postgres container: %v", err)
	}
	testDB = db

	m.Run()

	if teardown != nil && teardown(context.Background()) != nil {
		log.Fatalf("could not teardown postgres container: %v", err)
	}
}

func TestHealth(t *testing.T) {
	stats := testDB.Health()

	if stats["status"] != "up" {
		t.Fatalf("expected status to be up, got %s", stats["status"])
	}

	if _, ok := stats["error"]; ok {
		t.Fatalf("expected error not to be present")
	}

	if stats["message"] != "It's healthy" {
		t.Fatalf("expected message to be 'It's healthy', got %s", stats["message"])
	}
}

func TestMigratedTables(t *testing.T) {
	for _, table := range model.MigrateAble {
		if !testDB.Migrator().HasTable(table) {
			t.Fatalf("expected table for %T to exist", table)
		}
	}
}

func TestSeededData(t *testing.T) {
	if TestStudent1.Email == "" {
		t.Fatalf("expected TestStudent1 to be seeded")
	}
	if TestCompany1.OwnerID != TestRecruiter1.ID {
		t.Fatalf("expected TestCompany1 to belong to TestRecruiter1")
	}
	if TestJob1.CreatedByID != TestRecruiter1.ID {
		t.Fatalf("expected TestJob1 to be created by TestRecruiter1")
	}
}

func TestApplicationUniqueIndex(t *testing.T) {
	first := model.Application{
		ApplicantID: TestStudent1.ID,
		JobID:       TestJob3.ID,
		Status:      model.ApplicationStatusPending,
	}
	if err := testDB.Create(&first).Error; err != nil {
		t.Fatalf("first application should insert cleanly: %v", err)
	}

	second := model.Application{
		ApplicantID: TestStudent1.ID,
		JobID:       TestJob3.ID,
		Status:      model.ApplicationStatusPending,
	}
	if err := testDB.Create(&second).Error; err == nil {
		t.Fatalf("second application for the same (applicant, job) must violate the unique index")
	}
}
