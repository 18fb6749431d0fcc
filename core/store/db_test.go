package store

import (
	"testing"

	"barkeep/core/database"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func TestDBStore_SQLite(t *testing.T) {
	db, err := database.Connect(database.Config{Driver: "sqlite", Path: ":memory:"})
	assert.NoError(t, err)

	s, err := NewDBStore(db)
	assert.NoError(t, err)

	_, ok, err := s.Load(KeyRecipes)
	assert.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, s.Save(KeyRecipes, []byte(`[{"id":"r1"}]`)))

	data, ok, err := s.Load(KeyRecipes)
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `[{"id":"r1"}]`, string(data))

	// Upsert replaces the existing row
	assert.NoError(t, s.Save(KeyRecipes, []byte(`[]`)))

	data, _, err = s.Load(KeyRecipes)
	assert.NoError(t, err)
	assert.Equal(t, "[]", string(data))

	assert.NoError(t, s.Delete(KeyRecipes))
	_, ok, err = s.Load(KeyRecipes)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestDBStore_Load_MySQL(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	// Bypass NewDBStore so AutoMigrate doesn't need schema expectations.
	s := &DBStore{db: gormDB}

	rows := sqlmock.NewRows([]string{"key", "value"}).
		AddRow(KeyPreferences, `{"techniques":[]}`)
	mock.ExpectQuery("SELECT(.*)durable_values").WillReturnRows(rows)

	data, ok, err := s.Load(KeyPreferences)
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `{"techniques":[]}`, string(data))
	assert.NoError(t, mock.ExpectationsWereMet())
}
