package layout

import (
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestItemSetFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.json")
	set := testSet()

	if err := WriteItemSetFile(set, path); err != nil {
		t.Fatalf("WriteItemSetFile: %v", err)
	}
	got, err := ReadItemSetFile(path)
	if err != nil {
		t.Fatalf("ReadItemSetFile: %v", err)
	}

	if got.Name != set.Name || len(got.Items) != len(set.Items) {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestReadItemSetFileMissing(t *testing.T) {
	_, err := ReadItemSetFile(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Fatal("missing file should error")
	}
}

func TestReadItemSet(t *testing.T) {
	r := strings.NewReader(`{"name":"langs","items":[{"id":"go","weight":1}]}`)
	set, err := ReadItemSet(r)
	if err != nil {
		t.Fatalf("ReadItemSet: %v", err)
	}
	if set.Name != "langs" || len(set.Items) != 1 {
		t.Errorf("set = %+v", set)
	}
}

func TestLayoutFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cloud.layout.json")
	l := Layout{
		Name:      "rt",
		ItemCount: 1,
		Results:   []Result{{ID: "a", X: 1, Y: 2, FontSize: 14}},
	}

	if err := WriteLayoutFile(l, path); err != nil {
		t.Fatalf("WriteLayoutFile: %v", err)
	}
	got, err := ReadLayoutFile(path)
	if err != nil {
		t.Fatalf("ReadLayoutFile: %v", err)
	}
	if !reflect.DeepEqual(got.Results[0], l.Results[0]) {
		t.Errorf("Results[0] = %+v, want %+v", got.Results[0], l.Results[0])
	}
}
