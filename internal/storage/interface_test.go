package storage

import "testing"

func TestDetectKind(t *testing.T) {
	tests := []struct {
		name string
		uri  string
		want Kind
	}{
		{"mongo", "mongodb://localhost:27017", KindMongo},
		{"mongo srv", "mongodb+srv://cluster0.example.net", KindMongo},
		{"postgres", "postgres://planme@localhost:5432/planme", KindPostgres},
		{"postgresql", "postgresql://planme@localhost/planme?sslmode=disable", KindPostgres},
		{"sqlite path", "/var/lib/planme/moods.db", KindSQLite},
		{"relative path", "moods.db", KindSQLite},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectKind(tt.uri); got != tt.want {
				t.Errorf("DetectKind(%q) = %q, want %q", tt.uri, got, tt.want)
			}
		})
	}
}

func TestValidateKey(t *testing.T) {
	if err := ValidateKey("u1", "2024-01-02"); err != nil {
		t.Errorf("ValidateKey() unexpected error: %v", err)
	}
	if err := ValidateKey("", "2024-01-02"); err != ErrEmptyKey {
		t.Errorf("ValidateKey(empty key) = %v, want ErrEmptyKey", err)
	}
	if err := ValidateKey("u1", ""); err != ErrEmptyKey {
		t.Errorf("ValidateKey(empty field) = %v, want ErrEmptyKey", err)
	}
}
