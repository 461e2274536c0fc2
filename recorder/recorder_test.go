package recorder

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func testStores(t *testing.T) map[string]Recorder {
	t.Helper()
	stores := map[string]Recorder{"memory": NewMemoryStore()}

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	sqlite, err := NewSQLiteStore("file:" + name + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatal(err)
	}
	stores["sqlite"] = sqlite

	if dsn := os.Getenv("CCFIELD_POSTGRES_DSN"); dsn != "" {
		pg, err := NewPostgresStore(dsn)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := pg.db.Exec("DELETE FROM observations"); err != nil {
			t.Fatal(err)
		}
		stores["postgres"] = pg
	}
	t.Cleanup(func() {
		for _, s := range stores {
			s.Close()
		}
	})
	return stores
}

func TestRecordAndAll(t *testing.T) {
	at := time.UnixMilli(1700000000123)
	observations := []Observation{
		{Key: "o:GET:/b\t", Field: "Cache-Control", Raw: []string{"max-age=5", "public"}, Canonical: "max-age=5, public", ObservedAt: at},
		{Key: "o:GET:/a\t", Field: "Cache-Control", Raw: []string{"max-age=a"}, Error: "invalid syntax", ObservedAt: at},
		{Key: "o:GET:/a\t", Field: "Age", Raw: []string{"1, 2"}, Canonical: "1", ObservedAt: at},
		{Key: "other:GET:/a\t", Field: "Age", Raw: []string{"3"}, Canonical: "3", ObservedAt: at},
	}
	for name, store := range testStores(t) {
		ctx := context.Background()
		for _, o := range observations {
			if err := store.Record(ctx, o); err != nil {
				t.Fatalf("%s: %v", name, err)
			}
		}
		got, err := store.All(ctx, "o:GET:")
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		want := []Observation{observations[2], observations[1], observations[0]}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("%s: (-want +got)\n%s", name, diff)
		}
		if !got[0].Valid() || got[1].Valid() {
			t.Fatalf("%s: validity", name)
		}
	}
}

func TestRecordReplaces(t *testing.T) {
	for name, store := range testStores(t) {
		ctx := context.Background()
		first := Observation{Key: "k", Field: "Age", Raw: []string{"x"}, Error: "invalid syntax", ObservedAt: time.UnixMilli(1)}
		second := Observation{Key: "k", Field: "Age", Raw: []string{"5"}, Canonical: "5", ObservedAt: time.UnixMilli(2)}
		if err := store.Record(ctx, first); err != nil {
			t.Fatal(err)
		}
		if err := store.Record(ctx, second); err != nil {
			t.Fatal(err)
		}
		got, err := store.All(ctx, "")
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff([]Observation{second}, got); diff != "" {
			t.Fatalf("%s: (-want +got)\n%s", name, diff)
		}
	}
}

func TestRawLines(t *testing.T) {
	raws := map[string][]string{
		"none":      nil,
		"empty":     {""},
		"two empty": {"", ""},
		"newline":   {"a\nb", "c"},
		"quotes":    {`no-cache="a,b"`, `x="\\"`},
	}
	for name, store := range testStores(t) {
		ctx := context.Background()
		for key, raw := range raws {
			if err := store.Record(ctx, Observation{Key: key, Field: "Cache-Control", Raw: raw, ObservedAt: time.UnixMilli(0)}); err != nil {
				t.Fatalf("%s: %v", name, err)
			}
			got, err := store.All(ctx, key)
			if err != nil {
				t.Fatalf("%s: %v", name, err)
			}
			if len(got) != 1 {
				t.Fatalf("%s %s: %d observations", name, key, len(got))
			}
			if diff := cmp.Diff(raw, got[0].Raw); diff != "" {
				t.Fatalf("%s %s: (-want +got)\n%s", name, key, diff)
			}
		}
	}
}

func TestPrefixIsLiteral(t *testing.T) {
	for name, store := range testStores(t) {
		ctx := context.Background()
		store.Record(ctx, Observation{Key: "a_b", Field: "Age", ObservedAt: time.UnixMilli(0)})
		store.Record(ctx, Observation{Key: "axb", Field: "Age", ObservedAt: time.UnixMilli(0)})
		store.Record(ctx, Observation{Key: "100%", Field: "Age", ObservedAt: time.UnixMilli(0)})
		for prefix, n := range map[string]int{"a_": 1, "a": 2, "100%": 1, "1000": 0} {
			got, err := store.All(ctx, prefix)
			if err != nil {
				t.Fatal(err)
			}
			if len(got) != n {
				t.Fatalf("%s: prefix %q matched %d", name, prefix, len(got))
			}
		}
	}
}

func TestOpen(t *testing.T) {
	if _, err := Open("mysql", ""); err == nil {
		t.Fatal("expected unsupported driver error")
	}
	if _, err := NewPostgresStore(" "); err == nil {
		t.Fatal("expected empty dsn error")
	}
	s, err := Open(DriverSQLite, "file:open?mode=memory&cache=shared")
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	if q := s.query("a = ? AND b = ?"); q != "a = ? AND b = ?" {
		t.Fatalf("sqlite query %q", q)
	}
	pg := &SQLStore{driver: DriverPostgres}
	if q := pg.query("a = ? AND b = ?"); q != "a = $1 AND b = $2" {
		t.Fatalf("postgres query %q", q)
	}
}
