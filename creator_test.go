package tablecreator

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alecthomas/assert/v2"
)

func TestCreateTable(t *testing.T) {
	ctx := context.Background()
	tc, _ := newTestCreator()
	db := openMemory(t)

	assert.False(t, tc.IsTableExists(ctx, db, "staff"))

	ok, err := tc.CreateTable(ctx, db, "staff", employee{})
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, tc.IsTableExists(ctx, db, "staff"))

	assert.Equal(t, []string{
		"empID INTEGER",
		"name TEXT",
		"isPresent INTEGER",
		"salary REAL",
	}, columnTypes(t, db, "staff"))

	execAll(t, db, "INSERT INTO staff (name) VALUES ('ada')")

	var present int
	assert.NoError(t, db.GetContext(ctx, &present, "SELECT isPresent FROM staff WHERE empID = 1"))
	assert.Equal(t, 0, present)
}

func TestCreateTableIdempotent(t *testing.T) {
	ctx := context.Background()
	tc, _ := newTestCreator()
	db := openMemory(t)

	ok, err := tc.CreateTable(ctx, db, "staff", employee{})
	assert.NoError(t, err)
	assert.True(t, ok)

	type other struct {
		Code string `column:"code"`
	}

	// An existing table is left as is, even when the model differs.
	ok, err = tc.CreateTable(ctx, db, "staff", other{})
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 4, len(columnTypes(t, db, "staff")))
}

func TestCreateTableNoSQL(t *testing.T) {
	ctx := context.Background()

	closed := openMemory(t)
	assert.NoError(t, closed.Close())

	tests := []struct {
		name   string
		handle *countingHandle
		table  string
	}{
		{"ReadOnly", &countingHandle{DB: openReadOnly(t, "CREATE TABLE other (id INTEGER)")}, "staff"},
		{"Closed", &countingHandle{DB: closed}, "staff"},
		{"InvalidTableName", &countingHandle{DB: openMemory(t)}, "staff; DROP TABLE x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tc, logs := newTestCreator()

			ok, err := tc.CreateTable(ctx, tt.handle, tt.table, employee{})
			assert.NoError(t, err)
			assert.False(t, ok)

			assert.False(t, tc.CreateTableWithColumns(ctx, tt.handle, tt.table, []string{"ZNAME TEXT"}))
			assert.False(t, tc.CreateTableWithColumns(ctx, tt.handle, "T", nil))

			assert.Equal(t, 0, tt.handle.calls)
			assert.NotZero(t, logs.Len())
		})
	}
}

func TestCreateTableConfigurationError(t *testing.T) {
	ctx := context.Background()
	tc, _ := newTestCreator()

	type twoKeys struct {
		A int `column:"a" primarykey:""`
		B int `column:"b" primarykey:""`
	}

	h := &countingHandle{DB: openMemory(t)}
	ok, err := tc.CreateTable(ctx, h, "staff", twoKeys{})
	assert.False(t, ok)
	assert.IsError(t, err, ErrMultiplePrimaryKeys)

	var cfgErr *ConfigurationError
	assert.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, 0, h.calls)

	// The model is checked before the handle.
	closed := openMemory(t)
	assert.NoError(t, closed.Close())
	_, err = tc.CreateTable(ctx, closed, "staff", twoKeys{})
	assert.IsError(t, err, ErrMultiplePrimaryKeys)
}

func TestCreateTableEngineError(t *testing.T) {
	ctx := context.Background()
	mapping, err := BuildColumns(employee{})
	assert.NoError(t, err)

	t.Run("Exec", func(t *testing.T) {
		tc, logs := newTestCreator()
		db, mock := newMock(t)
		mock.ExpectQuery(catalogLookupSQL).
			WithArgs("staff").
			WillReturnRows(sqlmock.NewRows([]string{"tbl_name"}))
		mock.ExpectExec(CreateTableSQL("staff", mapping)).
			WillReturnError(errors.New("disk I/O error"))

		ok, err := tc.CreateTable(ctx, db, "staff", employee{})
		assert.NoError(t, err)
		assert.False(t, ok)
		assert.NoError(t, mock.ExpectationsWereMet())
		assert.Contains(t, logs.String(), "failed to create table")
		assert.Contains(t, logs.String(), "disk I/O error")
	})

	t.Run("Lookup", func(t *testing.T) {
		tc, logs := newTestCreator()
		db, mock := newMock(t)
		mock.ExpectQuery(catalogLookupSQL).
			WithArgs("staff").
			WillReturnError(errors.New("database is locked"))

		ok, err := tc.CreateTable(ctx, db, "staff", employee{})
		assert.NoError(t, err)
		assert.False(t, ok)
		assert.NoError(t, mock.ExpectationsWereMet())
		assert.Contains(t, logs.String(), "failed to check table existence")
	})

	t.Run("IsTableExists", func(t *testing.T) {
		tc, _ := newTestCreator()
		db, mock := newMock(t)
		mock.ExpectQuery(catalogLookupSQL).
			WithArgs("staff").
			WillReturnError(errors.New("database is locked"))

		assert.False(t, tc.IsTableExists(ctx, db, "staff"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCreateTableWithColumns(t *testing.T) {
	ctx := context.Background()
	tc, _ := newTestCreator()
	db := openMemory(t)

	assert.True(t, tc.CreateTableWithColumns(ctx, db, "ZPERSON", []string{"ZNAME TEXT", "ZID INTEGER"}))
	assert.Equal(t, []string{"ZNAME TEXT", "ZID INTEGER"}, columnTypes(t, db, "ZPERSON"))

	assert.True(t, tc.CreateTableWithColumns(ctx, db, "ZPERSON", []string{"OTHER BLOB"}))
	assert.Equal(t, []string{"ZNAME TEXT", "ZID INTEGER"}, columnTypes(t, db, "ZPERSON"))

	// Everything after the name reaches the statement as written.
	assert.True(t, tc.CreateTableWithColumns(ctx, db, "ZCHECKED", []string{"ZID INTEGER NOT NULL CHECK (ZID > 0)"}))
	_, err := db.ExecContext(ctx, "INSERT INTO ZCHECKED VALUES (0)")
	assert.Error(t, err)
	execAll(t, db, "INSERT INTO ZCHECKED VALUES (1)")

	h := &countingHandle{DB: db}
	assert.False(t, tc.CreateTableWithColumns(ctx, h, "ZEMPTY", nil))
	assert.False(t, tc.CreateTableWithColumns(ctx, h, "ZBAD", []string{"bad-name TEXT"}))
	assert.Equal(t, 0, h.calls)
}

func TestIsTableExists(t *testing.T) {
	ctx := context.Background()
	tc, _ := newTestCreator()

	ro := openReadOnly(t, "CREATE TABLE staff (id INTEGER)")
	assert.True(t, tc.IsTableExists(ctx, ro, "staff"))
	assert.False(t, tc.IsTableExists(ctx, ro, "missing"))

	closed := openMemory(t)
	assert.NoError(t, closed.Close())
	assert.False(t, tc.IsTableExists(ctx, closed, "staff"))
}
