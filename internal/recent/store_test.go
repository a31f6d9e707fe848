package recent

import (
	"path/filepath"
	"reflect"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "recent.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStore_ListEmpty(t *testing.T) {
	s := openTestStore(t)

	got := s.List()
	if got == nil || len(got) != 0 {
		t.Errorf("List() on fresh store = %#v, want empty non-nil slice", got)
	}
}

func TestStore_AddRoundTrip(t *testing.T) {
	s := openTestStore(t)

	for _, c := range []string{"London", "Paris", "Tokyo"} {
		s.Add(c)
	}

	want := []string{"London", "Paris", "Tokyo"}
	if got := s.List(); !reflect.DeepEqual(got, want) {
		t.Errorf("List() = %v, want %v", got, want)
	}
}

func TestStore_AddIsIdempotent(t *testing.T) {
	s := openTestStore(t)

	s.Add("London")
	s.Add("Paris")
	s.Add("London")

	want := []string{"London", "Paris"}
	if got := s.List(); !reflect.DeepEqual(got, want) {
		t.Errorf("List() = %v, want %v", got, want)
	}
}

func TestStore_AddIsCaseSensitive(t *testing.T) {
	s := openTestStore(t)

	s.Add("london")
	s.Add("London")

	if got := s.List(); len(got) != 2 {
		t.Errorf("List() = %v, want both spellings kept", got)
	}
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recent.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	s.Add("Oslo")
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer s.Close()

	if got := s.List(); !reflect.DeepEqual(got, []string{"Oslo"}) {
		t.Errorf("List() after reopen = %v, want [Oslo]", got)
	}
}

func TestStore_MalformedValueFailsOpen(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"garbage", "not json"},
		{"wrong type", `{"city":"London"}`},
		{"null", "null"},
		{"truncated", `["London",`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := openTestStore(t)
			if _, err := s.db.Exec(`INSERT INTO kv (key, value) VALUES (?, ?)`, storageKey, tt.value); err != nil {
				t.Fatalf("seeding value: %v", err)
			}

			if got := s.List(); len(got) != 0 {
				t.Errorf("List() = %v, want empty", got)
			}

			// Writing over malformed state starts a fresh list.
			s.Add("Berlin")
			if got := s.List(); !reflect.DeepEqual(got, []string{"Berlin"}) {
				t.Errorf("List() after Add = %v, want [Berlin]", got)
			}
		})
	}
}

func TestDecodeOr(t *testing.T) {
	fallback := []string{"fallback"}

	if got := decodeOr([]byte(`["a","b"]`), fallback); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("decodeOr(valid) = %v", got)
	}
	if got := decodeOr([]byte(`42`), fallback); !reflect.DeepEqual(got, fallback) {
		t.Errorf("decodeOr(number) = %v, want fallback", got)
	}
	if got := decodeOr([]byte(``), fallback); !reflect.DeepEqual(got, fallback) {
		t.Errorf("decodeOr(empty) = %v, want fallback", got)
	}
}
