package vectorstore

import (
	"reflect"
	"testing"

	"github.com/qdrant/go-client/qdrant"
)

func TestBuildFilter(t *testing.T) {
	t.Run("nil for empty map", func(t *testing.T) {
		if got := buildFilter(nil); got != nil {
			t.Errorf("buildFilter(nil) = %v, want nil", got)
		}
		if got := buildFilter(map[string]string{}); got != nil {
			t.Errorf("buildFilter(empty) = %v, want nil", got)
		}
	})

	t.Run("skips empty values", func(t *testing.T) {
		if got := buildFilter(map[string]string{"loai_van_ban": ""}); got != nil {
			t.Errorf("buildFilter with only empty values = %v, want nil", got)
		}
	})

	t.Run("builds must conditions", func(t *testing.T) {
		got := buildFilter(map[string]string{"loai_van_ban": "Bộ luật Hình sự"})
		if got == nil {
			t.Fatal("buildFilter() = nil, want filter")
		}
		if len(got.Must) != 1 {
			t.Fatalf("Must conditions = %d, want 1", len(got.Must))
		}
	})
}

func TestConvertPayloadToMap(t *testing.T) {
	payload := map[string]*qdrant.Value{
		"so_hieu":      qdrant.NewValueString("Điều 173"),
		"loai_van_ban": qdrant.NewValueString("Bộ luật Hình sự"),
		"khoan":        qdrant.NewValueInt(2),
		"hieu_luc":     qdrant.NewValueBool(true),
		"trong_so":     qdrant.NewValueDouble(0.82),
		"nil_value":    nil,
	}

	got := convertPayloadToMap(payload)

	want := map[string]any{
		"so_hieu":      "Điều 173",
		"loai_van_ban": "Bộ luật Hình sự",
		"khoan":        int64(2),
		"hieu_luc":     true,
		"trong_so":     0.82,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("convertPayloadToMap() = %v, want %v", got, want)
	}
}

func TestConvertValueList(t *testing.T) {
	value := qdrant.NewValueList(&qdrant.ListValue{
		Values: []*qdrant.Value{
			qdrant.NewValueString("một"),
			qdrant.NewValueString("hai"),
		},
	})

	got := convertValue(value)
	want := []any{"một", "hai"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("convertValue(list) = %v, want %v", got, want)
	}
}

func TestNewQdrantStoreRejectsBadURL(t *testing.T) {
	if _, err := NewQdrantStore("://not a url"); err == nil {
		t.Error("NewQdrantStore() expected error for malformed URL")
	}
}
