package schema

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"
)

func thumbnailTestSchema() *Schema {
	return New("Thumbnail",
		Field{Name: "url", Type: String, Transform: Prefix("https:")},
		Field{Name: "width", Type: Optional(Int)},
	)
}

func articleTestSchema() *Schema {
	return New("Article",
		Field{Name: "id", Type: Int},
		Field{Name: "title", Type: String},
		Field{Name: "thumbnail", Type: Optional(Model(thumbnailTestSchema()))},
	)
}

func TestDeserialize_EndToEnd(t *testing.T) {
	s := articleTestSchema()

	tests := []struct {
		name        string
		raw         map[string]any
		want        Object
		wantMissing string
	}{
		{
			name: "all fields including nested thumbnail",
			raw: map[string]any{
				"id":    float64(7),
				"title": "Earth",
				"thumbnail": map[string]any{
					"url":   "//img/e.jpg",
					"width": nil,
				},
			},
			want: Object{
				"id":    int64(7),
				"title": "Earth",
				"thumbnail": Object{
					"url":   "https://img/e.jpg",
					"width": nil,
				},
			},
		},
		{
			name: "explicit null thumbnail skips recursion",
			raw:  map[string]any{"id": float64(7), "title": "Earth", "thumbnail": nil},
			want: Object{"id": int64(7), "title": "Earth", "thumbnail": nil},
		},
		{
			name: "omitted thumbnail equals explicit null",
			raw:  map[string]any{"id": float64(7), "title": "Earth"},
			want: Object{"id": int64(7), "title": "Earth", "thumbnail": nil},
		},
		{
			name:        "missing required id",
			raw:         map[string]any{"title": "Earth"},
			wantMissing: "id",
		},
		{
			name:        "null required title",
			raw:         map[string]any{"id": float64(7), "title": nil},
			wantMissing: "title",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Deserialize(s, tt.raw)
			if tt.wantMissing != "" {
				var missing *MissingFieldError
				if !errors.As(err, &missing) {
					t.Fatalf("expected MissingFieldError, got %v", err)
				}
				if missing.Field != tt.wantMissing || missing.Model != "Article" {
					t.Errorf("got %s.%s, want Article.%s", missing.Model, missing.Field, tt.wantMissing)
				}
				return
			}
			if err != nil {
				t.Fatalf("Deserialize error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestDeserialize_NestedMissingFieldIsInnermost(t *testing.T) {
	s := articleTestSchema()
	raw := map[string]any{
		"id":        float64(1),
		"title":     "Earth",
		"thumbnail": map[string]any{"width": float64(10)},
	}

	_, err := Deserialize(s, raw)
	var missing *MissingFieldError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingFieldError, got %v", err)
	}
	if missing.Model != "Thumbnail" || missing.Field != "url" {
		t.Errorf("got %s.%s, want Thumbnail.url", missing.Model, missing.Field)
	}
}

func TestDeserialize_Sequences(t *testing.T) {
	s := New("Tags", Field{Name: "tags", Type: Seq(String)})

	tests := []struct {
		name    string
		raw     map[string]any
		want    []any
		wantErr bool
	}{
		{
			name: "order preserved",
			raw:  map[string]any{"tags": []any{"a", "b", "c"}},
			want: []any{"a", "b", "c"},
		},
		{
			name: "empty array yields empty slice",
			raw:  map[string]any{"tags": []any{}},
			want: []any{},
		},
		{
			name:    "non-array fails",
			raw:     map[string]any{"tags": "oops"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Deserialize(s, tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr = %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if !reflect.DeepEqual(got["tags"], tt.want) {
				t.Errorf("got %#v, want %#v", got["tags"], tt.want)
			}
		})
	}
}

func TestDeserialize_SequenceTransformAppliesPerElement(t *testing.T) {
	s := New("Gallery", Field{Name: "urls", Type: Seq(String), Transform: Prefix("https:")})
	got, err := Deserialize(s, map[string]any{"urls": []any{"//a.jpg", "//b.jpg"}})
	if err != nil {
		t.Fatalf("Deserialize error: %v", err)
	}
	want := []any{"https://a.jpg", "https://b.jpg"}
	if !reflect.DeepEqual(got["urls"], want) {
		t.Errorf("got %#v, want %#v", got["urls"], want)
	}
}

func TestDeserialize_Enums(t *testing.T) {
	s := New("Event", Field{Name: "type", Type: Enum("births", "deaths", "holidays")})

	t.Run("member round-trips", func(t *testing.T) {
		got, err := Deserialize(s, map[string]any{"type": "births"})
		if err != nil {
			t.Fatalf("Deserialize error: %v", err)
		}
		if got.String("type") != "births" {
			t.Errorf("got %q, want births", got.String("type"))
		}
	})

	t.Run("non-member rejected", func(t *testing.T) {
		_, err := Deserialize(s, map[string]any{"type": "weddings"})
		var bad *InvalidEnumValueError
		if !errors.As(err, &bad) {
			t.Fatalf("expected InvalidEnumValueError, got %v", err)
		}
		if bad.Value != "weddings" || bad.Field != "type" {
			t.Errorf("unexpected error detail: %+v", bad)
		}
	})
}

func TestDeserialize_Dates(t *testing.T) {
	s := New("Stamp",
		Field{Name: "day", Type: Date},
		Field{Name: "at", Type: Optional(DateTime)},
	)

	tests := []struct {
		name    string
		raw     map[string]any
		wantDay string
		wantErr bool
	}{
		{
			name:    "plain ISO date",
			raw:     map[string]any{"day": "2024-01-15"},
			wantDay: "2024-01-15",
		},
		{
			name:    "trailing marker stripped",
			raw:     map[string]any{"day": "2024-01-15Z"},
			wantDay: "2024-01-15",
		},
		{
			name:    "garbage rejected",
			raw:     map[string]any{"day": "15/01/2024"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Deserialize(s, tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr = %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got.Time("day").Format("2006-01-02") != tt.wantDay {
				t.Errorf("day = %v, want %s", got.Time("day"), tt.wantDay)
			}
		})
	}

	t.Run("datetime RFC3339", func(t *testing.T) {
		got, err := Deserialize(s, map[string]any{"day": "2024-01-15", "at": "2024-01-15T08:30:00Z"})
		if err != nil {
			t.Fatalf("Deserialize error: %v", err)
		}
		want := time.Date(2024, 1, 15, 8, 30, 0, 0, time.UTC)
		if at := got.OptTime("at"); at == nil || !at.Equal(want) {
			t.Errorf("at = %v, want %v", at, want)
		}
	})
}

func TestDeserialize_CustomConverter(t *testing.T) {
	upper := func(raw any) (any, error) {
		s, ok := raw.(string)
		if !ok {
			return nil, errors.New("expected string")
		}
		return strings.ToUpper(s), nil
	}
	s := New("Code", Field{Name: "lang", Type: Custom(upper)})

	got, err := Deserialize(s, map[string]any{"lang": "en"})
	if err != nil {
		t.Fatalf("Deserialize error: %v", err)
	}
	if got.Get("lang") != "EN" {
		t.Errorf("got %v, want EN", got.Get("lang"))
	}
}

func TestDeserialize_TransformBeforeConversion(t *testing.T) {
	// The prefix must land before the enum membership test runs, so the
	// declared members can include the prefix.
	s := New("Scheme", Field{Name: "url", Type: Enum("https://x"), Transform: Prefix("https:")})
	got, err := Deserialize(s, map[string]any{"url": "//x"})
	if err != nil {
		t.Fatalf("Deserialize error: %v", err)
	}
	if got.String("url") != "https://x" {
		t.Errorf("got %q, want https://x", got.String("url"))
	}
}

func TestDeserializeList(t *testing.T) {
	s := New("Item", Field{Name: "name", Type: String})

	t.Run("order preserved", func(t *testing.T) {
		raw := []any{
			map[string]any{"name": "first"},
			map[string]any{"name": "second"},
		}
		got, err := DeserializeList(s, raw)
		if err != nil {
			t.Fatalf("DeserializeList error: %v", err)
		}
		if len(got) != 2 || got[0].String("name") != "first" || got[1].String("name") != "second" {
			t.Errorf("unexpected result: %#v", got)
		}
	})

	t.Run("non-array input fails", func(t *testing.T) {
		if _, err := DeserializeList(s, map[string]any{}); err == nil {
			t.Fatal("expected error for non-array input")
		}
	})

	t.Run("bad element surfaces element error", func(t *testing.T) {
		_, err := DeserializeList(s, []any{map[string]any{}})
		var missing *MissingFieldError
		if !errors.As(err, &missing) {
			t.Fatalf("expected MissingFieldError, got %v", err)
		}
	})
}
