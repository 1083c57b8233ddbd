package db

import (
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func TestCaseInsensitiveLike(t *testing.T) {
	t.Parallel()

	sqliteConn := &gorm.DB{Config: &gorm.Config{Dialector: sqlite.Dialector{}}}
	pgConn := &gorm.DB{Config: &gorm.Config{Dialector: postgres.Dialector{}}}

	if got := CaseInsensitiveLikeExpr(sqliteConn, "username"); got != "LOWER(username) LIKE ?" {
		t.Fatalf("sqlite expr = %q", got)
	}
	if got := NormalizeLikePattern(sqliteConn, "%DeSign%"); got != "%design%" {
		t.Fatalf("sqlite pattern = %q", got)
	}
	if got := CaseInsensitiveLikeExpr(pgConn, "username"); got != "username ILIKE ?" {
		t.Fatalf("postgres expr = %q", got)
	}
	if got := NormalizeLikePattern(pgConn, "%DeSign%"); got != "%DeSign%" {
		t.Fatalf("postgres pattern = %q", got)
	}
	if got := DialectName(nil); got != "" {
		t.Fatalf("nil conn dialect = %q", got)
	}
}
