package settings

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"go.uber.org/zap"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.json")
	store, err := NewStore(path, zap.NewNop())
	if err != nil {
		t.Fatalf("creating store: %v", err)
	}
	t.Cleanup(store.Close)
	return store
}

func TestNewStoreMissingFileUsesDefaults(t *testing.T) {
	store := newTestStore(t)

	if store.Get() != Default() {
		t.Errorf("expected defaults, got %+v", store.Get())
	}

	// First run must not create the file; it only appears on a write.
	if _, err := os.Stat(store.Path()); !os.IsNotExist(err) {
		t.Errorf("settings file should not exist before first write: %v", err)
	}
}

func TestNewStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := NewStore(path, zap.NewNop())
	if err == nil {
		t.Fatal("expected error for corrupt settings file")
	}
	var storageErr *StorageError
	if !errors.As(err, &storageErr) {
		t.Errorf("expected *StorageError, got %T", err)
	}
}

func TestReplacePersistsAndReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	store, err := NewStore(path, zap.NewNop())
	if err != nil {
		t.Fatalf("creating store: %v", err)
	}

	doc := Default()
	doc.Units.TemperatureUnit = "fahrenheit"
	doc.Photos.RefreshInterval = 45

	if err := store.Replace(doc); err != nil {
		t.Fatalf("replacing settings: %v", err)
	}
	if store.Get() != doc {
		t.Errorf("in-memory document mismatch: %+v", store.Get())
	}
	store.Close()

	// Round-trip through a fresh store.
	reloaded, err := NewStore(path, zap.NewNop())
	if err != nil {
		t.Fatalf("reloading store: %v", err)
	}
	defer reloaded.Close()

	if reloaded.Get() != doc {
		t.Errorf("reloaded document mismatch:\n got %+v\nwant %+v", reloaded.Get(), doc)
	}
}

func TestPersistedFileIsPrettyPrinted(t *testing.T) {
	store := newTestStore(t)
	if err := store.Replace(Default()); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(store.Path())
	if err != nil {
		t.Fatalf("reading settings file: %v", err)
	}

	var indented map[string]interface{}
	if err := json.Unmarshal(data, &indented); err != nil {
		t.Fatalf("persisted file is not valid JSON: %v", err)
	}
	if len(data) < 2 || data[1] != '\n' {
		t.Error("persisted file should be indented")
	}
}

func TestMergePatchEmptyIsIdentity(t *testing.T) {
	store := newTestStore(t)
	before := store.Get()

	after, err := store.MergePatch([]byte(`{}`))
	if err != nil {
		t.Fatalf("merging empty patch: %v", err)
	}
	if after != before {
		t.Errorf("empty patch changed document:\n got %+v\nwant %+v", after, before)
	}
}

func TestMergePatchScalarOverride(t *testing.T) {
	store := newTestStore(t)

	doc, err := store.MergePatch([]byte(`{"units":{"temperature_unit":"fahrenheit"}}`))
	if err != nil {
		t.Fatalf("merging patch: %v", err)
	}

	if doc.Units.TemperatureUnit != "fahrenheit" {
		t.Errorf("expected fahrenheit, got %q", doc.Units.TemperatureUnit)
	}
	if doc.Units.TimeFormat != "24h" {
		t.Errorf("sibling time_format changed: %q", doc.Units.TimeFormat)
	}
	if doc.Display != Default().Display {
		t.Errorf("display section changed: %+v", doc.Display)
	}
	if doc.Photos != Default().Photos {
		t.Errorf("photos section changed: %+v", doc.Photos)
	}
}

func TestMergePatchInvalidResultLeavesStoreUnchanged(t *testing.T) {
	store := newTestStore(t)
	before := store.Get()

	_, err := store.MergePatch([]byte(`{"photos":{"refresh_interval":"never"}}`))
	if err == nil {
		t.Fatal("expected validation error")
	}
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Errorf("expected *ValidationError, got %T", err)
	}

	if store.Get() != before {
		t.Errorf("failed patch mutated store: %+v", store.Get())
	}
	if _, statErr := os.Stat(store.Path()); !os.IsNotExist(statErr) {
		t.Error("failed patch should not persist a file")
	}
}

func TestMergePatchRejectsNonObjectPatch(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.MergePatch([]byte(`[1,2,3]`)); err == nil {
		t.Error("expected error for array patch")
	}
	if _, err := store.MergePatch([]byte(`not json`)); err == nil {
		t.Error("expected error for malformed patch")
	}
}

func TestMergePatchPersists(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.MergePatch([]byte(`{"display":{"theme":"nest"}}`)); err != nil {
		t.Fatalf("merging patch: %v", err)
	}

	data, err := os.ReadFile(store.Path())
	if err != nil {
		t.Fatalf("reading settings file: %v", err)
	}
	doc, err := Decode(data)
	if err != nil {
		t.Fatalf("decoding persisted file: %v", err)
	}
	if doc.Display.Theme != "nest" {
		t.Errorf("persisted theme mismatch: %q", doc.Display.Theme)
	}
}

func TestResetRestoresDefaults(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.MergePatch([]byte(`{"units":{"time_format":"12h"}}`)); err != nil {
		t.Fatal(err)
	}

	doc, err := store.Reset()
	if err != nil {
		t.Fatalf("resetting settings: %v", err)
	}
	if doc != Default() {
		t.Errorf("reset did not restore defaults: %+v", doc)
	}
	if store.Get() != Default() {
		t.Errorf("store not reset: %+v", store.Get())
	}
}

func TestSecondStoreOnSamePathIsRejected(t *testing.T) {
	store := newTestStore(t)

	if _, err := NewStore(store.Path(), zap.NewNop()); err == nil {
		t.Error("expected lock conflict for second store on same path")
	}
}

func TestConcurrentReadersAndWriters(t *testing.T) {
	store := newTestStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			patch := `{"units":{"time_format":"12h"}}`
			if i%2 == 0 {
				patch = `{"units":{"time_format":"24h"}}`
			}
			if _, err := store.MergePatch([]byte(patch)); err != nil {
				t.Errorf("concurrent patch failed: %v", err)
			}
		}(i)

		wg.Add(1)
		go func() {
			defer wg.Done()
			doc := store.Get()
			// A snapshot is either fully pre- or post-write, so the
			// other unit fields must still hold defaults.
			if doc.Units.TemperatureUnit != "celsius" {
				t.Errorf("torn read: %+v", doc.Units)
			}
		}()
	}
	wg.Wait()

	format := store.Get().Units.TimeFormat
	if format != "12h" && format != "24h" {
		t.Errorf("unexpected final time_format %q", format)
	}
}
