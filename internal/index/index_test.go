package index

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/iammeter/openapps/internal/record"
	"github.com/spf13/afero"
)

func rec(id string) *record.Record {
	return &record.Record{
		ID:      id,
		Runtime: "static",
		Entry:   "apps/" + id + "/index.html",
		Tags:    []string{},
		Variant: &record.StaticFields{
			PagesURL:   "https://x.io/apps/" + id + "/index.html",
			PreviewURL: "https://x.io/apps/" + id + "/index.html",
		},
	}
}

func ids(idx *Index) []string {
	var out []string
	for _, r := range idx.Apps {
		out = append(out, r.ID)
	}
	return out
}

func TestAssemble_SortsByID(t *testing.T) {
	input := []*record.Record{rec("zeta"), rec("alpha"), rec("meter-viewer"), rec("2-tariff")}
	now := time.Date(2026, 10, 19, 8, 30, 0, 123456789, time.FixedZone("CEST", 2*3600))

	idx := Assemble(input, now)

	want := []string{"2-tariff", "alpha", "meter-viewer", "zeta"}
	if diff := cmp.Diff(want, ids(idx)); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
	if idx.Total != len(idx.Apps) {
		t.Errorf("Total = %d, len(Apps) = %d", idx.Total, len(idx.Apps))
	}
	if idx.GeneratedAt != "2026-10-19T06:30:00.123Z" {
		t.Errorf("GeneratedAt = %q", idx.GeneratedAt)
	}
	if input[0].ID != "zeta" {
		t.Error("Assemble must not reorder its input")
	}
}

func TestAssemble_LocaleAware(t *testing.T) {
	idx := Assemble([]*record.Record{rec("gamma"), rec("Beta"), rec("alpha")}, time.Now())
	want := []string{"alpha", "Beta", "gamma"}
	if diff := cmp.Diff(want, ids(idx)); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestAssemble_Deterministic(t *testing.T) {
	a := Assemble([]*record.Record{rec("b"), rec("c"), rec("a")}, time.Unix(0, 0))
	b := Assemble([]*record.Record{rec("c"), rec("a"), rec("b")}, time.Unix(100, 0))
	if diff := cmp.Diff(a.Apps, b.Apps); diff != "" {
		t.Errorf("apps differ across runs (-a +b):\n%s", diff)
	}
}

func TestAssemble_Empty(t *testing.T) {
	idx := Assemble(nil, time.Now())
	data, err := Marshal(idx)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"apps": []`) {
		t.Errorf("empty index should encode apps as []: %s", data)
	}
	if idx.Total != 0 {
		t.Errorf("Total = %d, want 0", idx.Total)
	}
}

func TestMarshal_Format(t *testing.T) {
	r := rec("a")
	r.RepoURL = "https://github.com/acme/a?x=1&y=2"
	data, err := Marshal(Assemble([]*record.Record{r}, time.Unix(0, 0)))
	if err != nil {
		t.Fatal(err)
	}
	s := string(data)
	if !strings.HasPrefix(s, "{\n  \"generatedAt\": \"1970-01-01T00:00:00.000Z\",\n  \"total\": 1,") {
		t.Errorf("unexpected layout:\n%s", s)
	}
	if !strings.Contains(s, "x=1&y=2") {
		t.Errorf("ampersand should not be HTML-escaped:\n%s", s)
	}
	if !strings.HasSuffix(s, "}\n") {
		t.Error("expected trailing newline")
	}
}

func TestWriteRead(t *testing.T) {
	fs := afero.NewMemMapFs()
	h := &record.Record{ID: "h", Runtime: "hosted", Tags: []string{}, Variant: &record.HostedFields{HostedURL: "https://h.io", HostedStatus: "live"}}
	idx := Assemble([]*record.Record{rec("b"), h}, time.Unix(0, 0))

	if err := Write(fs, "/site/apps/index.json", idx); err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	got, err := Read(fs, "/site/apps/index.json")
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	if diff := cmp.Diff(idx, got); diff != "" {
		t.Errorf("Read() mismatch (-want +got):\n%s", diff)
	}

	entries, err := afero.ReadDir(fs, "/site/apps")
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("temp files left behind: %d entries", len(entries))
	}
}

func TestWrite_Replaces(t *testing.T) {
	fs := afero.NewMemMapFs()
	path := "/site/apps/index.json"
	if err := afero.WriteFile(fs, path, []byte("stale"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := Write(fs, path, Assemble([]*record.Record{rec("a")}, time.Unix(0, 0))); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	data, _ := afero.ReadFile(fs, path)
	if strings.Contains(string(data), "stale") {
		t.Error("index was not replaced")
	}
}

func TestWrite_ReadOnlyFs(t *testing.T) {
	base := afero.NewMemMapFs()
	fs := afero.NewReadOnlyFs(base)
	err := Write(fs, "/site/apps/index.json", Assemble(nil, time.Now()))
	if err == nil {
		t.Fatal("expected error writing to a read-only filesystem")
	}
	if _, statErr := base.Stat("/site/apps/index.json"); !os.IsNotExist(statErr) {
		t.Error("no index should exist after a failed write")
	}
}

func TestRead_Missing(t *testing.T) {
	if _, err := Read(afero.NewMemMapFs(), "/nope.json"); err == nil {
		t.Fatal("expected error for missing index")
	}
}
