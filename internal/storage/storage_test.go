package storage

import (
	"errors"
	"path/filepath"
	"testing"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := Open(Config{
		DatabasePath: filepath.Join(t.TempDir(), "site.db"),
		LogLevel:     "silent",
	})
	if err != nil {
		t.Fatalf("open error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestSaveContact(t *testing.T) {
	db := newTestDB(t)

	contact := &Contact{Name: "Beth", Email: "beth@example.com", Message: "hi"}
	if err := db.SaveContact(contact); err != nil {
		t.Fatalf("save error: %v", err)
	}
	if contact.ID == 0 {
		t.Fatalf("保存后应回填主键")
	}
	if contact.SubmittedAt.IsZero() {
		t.Fatalf("提交时间应自动填充")
	}

	if err := db.SaveContact(nil); !errors.Is(err, ErrNilContact) {
		t.Fatalf("expected ErrNilContact, got %v", err)
	}
}

func TestGetCategory(t *testing.T) {
	db := newTestDB(t)

	category := Category{Name: "climate", Description: "climate reports"}
	if err := db.db.Create(&category).Error; err != nil {
		t.Fatalf("seed error: %v", err)
	}

	found, err := db.GetCategory(category.ID)
	if err != nil {
		t.Fatalf("get error: %v", err)
	}
	if found.Name != "climate" {
		t.Fatalf("unexpected category: %+v", found)
	}

	if _, err := db.GetCategory(9999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListReportsOrderedByTitle(t *testing.T) {
	db := newTestDB(t)

	category := Category{Name: "energy"}
	if err := db.db.Create(&category).Error; err != nil {
		t.Fatalf("seed error: %v", err)
	}
	seed := []Report{
		{CategoryID: category.ID, Title: "Zulu", Page: "/Reports/zulu.html"},
		{CategoryID: category.ID, Title: "Alpha", Page: "/Reports/alpha.html"},
		{CategoryID: category.ID + 1, Title: "Other", Page: "/Reports/other.html"},
	}
	for i := range seed {
		if err := db.db.Create(&seed[i]).Error; err != nil {
			t.Fatalf("seed error: %v", err)
		}
	}

	reports, err := db.ListReports(category.ID)
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if len(reports) != 2 {
		t.Fatalf("expected 2 reports, got %d", len(reports))
	}
	if reports[0].Title != "Alpha" || reports[1].Title != "Zulu" {
		t.Fatalf("报表应按标题排序: %+v", reports)
	}
}

func TestListStories(t *testing.T) {
	db := newTestDB(t)

	stories, err := db.ListStories()
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if len(stories) != 0 {
		t.Fatalf("空库应返回空列表, got %d", len(stories))
	}

	seed := []Story{
		{Title: "Second", Page: "/Stories/second.html"},
		{Title: "First", Page: "/Stories/first.html"},
	}
	for i := range seed {
		if err := db.db.Create(&seed[i]).Error; err != nil {
			t.Fatalf("seed error: %v", err)
		}
	}

	stories, err = db.ListStories()
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if len(stories) != 2 || stories[0].Title != "First" {
		t.Fatalf("story 应按标题排序: %+v", stories)
	}
}
