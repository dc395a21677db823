package jsonfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/nicorlas/twitter-api/internal/domain"
)

type note struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

func newNotes(t *testing.T, seed string) *Collection[note] {
	t.Helper()
	path := filepath.Join(t.TempDir(), "notes.json")
	if err := os.WriteFile(path, []byte(seed), 0o644); err != nil {
		t.Fatal(err)
	}
	return NewCollection("notes", path, "id", func(n note) string { return n.ID })
}

func newTweets(t *testing.T) *Collection[domain.Tweet] {
	t.Helper()
	path := filepath.Join(t.TempDir(), TweetsFile)
	if err := os.WriteFile(path, []byte("[]"), 0o644); err != nil {
		t.Fatal(err)
	}
	return NewCollection("tweets", path, "tweet_id", func(tw domain.Tweet) string { return tw.ID.String() })
}

func TestInsertThenLoad(t *testing.T) {
	c := newNotes(t, "[]")

	in := note{ID: "a", Text: "first"}
	if err := c.Insert(in); err != nil {
		t.Fatal(err)
	}

	got, err := c.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0] != in {
		t.Errorf("Load() = %+v, want [%+v]", got, in)
	}
}

func TestLoadIsIdempotent(t *testing.T) {
	c := newNotes(t, `[{"id":"a","text":"x"},{"id":"b","text":"y"}]`)

	first, err := c.Load()
	if err != nil {
		t.Fatal(err)
	}
	second, err := c.Load()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("loads differ: %+v vs %+v", first, second)
	}
}

func TestLoadEmptyArray(t *testing.T) {
	c := newNotes(t, "[]")

	got, err := c.Load()
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("Load() = %#v, want empty non-nil slice", got)
	}
}

func TestFindMissingKeyNamesField(t *testing.T) {
	c := newNotes(t, `[{"id":"a","text":"x"},{"id":"b","text":"y"}]`)

	for _, key := range []string{"", "c", "A", "ab"} {
		_, err := c.Find(key)
		if !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("Find(%q) err = %v, want ErrNotFound", key, err)
		}
		var nf *domain.NotFoundError
		if !errors.As(err, &nf) {
			t.Fatalf("Find(%q) err is %T", key, err)
		}
		if nf.Field != "id" || nf.Key != key || nf.Collection != "notes" {
			t.Errorf("NotFoundError = %+v", nf)
		}
	}
}

func TestFindScansWholeCollection(t *testing.T) {
	c := newNotes(t, `[{"id":"a","text":"x"},{"id":"b","text":"y"},{"id":"c","text":"z"}]`)

	got, err := c.Find("c")
	if err != nil {
		t.Fatal(err)
	}
	if got.Text != "z" {
		t.Errorf("Find(c) = %+v", got)
	}
}

func TestFindFirstMatchWins(t *testing.T) {
	c := newNotes(t, `[{"id":"a","text":"first"},{"id":"a","text":"second"}]`)

	got, err := c.Find("a")
	if err != nil {
		t.Fatal(err)
	}
	if got.Text != "first" {
		t.Errorf("Find(a) = %+v, want first", got)
	}
}

func TestRemoveKeepsOrder(t *testing.T) {
	c := newNotes(t, `[{"id":"a","text":"1"},{"id":"b","text":"2"},{"id":"b","text":"3"},{"id":"c","text":"4"}]`)

	removed, err := c.Remove("b")
	if err != nil {
		t.Fatal(err)
	}
	if removed.Text != "2" {
		t.Errorf("removed %+v, want text 2", removed)
	}

	got, err := c.Load()
	if err != nil {
		t.Fatal(err)
	}
	want := []note{{"a", "1"}, {"b", "3"}, {"c", "4"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("after Remove: %+v, want %+v", got, want)
	}
}

func TestRemoveMissing(t *testing.T) {
	c := newNotes(t, `[{"id":"a","text":"1"}]`)

	if _, err := c.Remove("zzz"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Remove err = %v, want ErrNotFound", err)
	}
	got, _ := c.Load()
	if len(got) != 1 {
		t.Errorf("collection changed after failed remove: %+v", got)
	}
}

func TestUpdateEmptyPatchIsNoop(t *testing.T) {
	c := newTweets(t)
	tw := sampleTweet()
	if err := c.Insert(tw); err != nil {
		t.Fatal(err)
	}

	updated, err := c.Update(tw.ID.String(), domain.TweetPatch{}.Apply)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(updated, tw) {
		t.Errorf("Update with empty patch = %+v, want %+v", updated, tw)
	}
}

func TestUpdateContentOnly(t *testing.T) {
	c := newTweets(t)
	tw := sampleTweet()
	other := sampleTweet()
	other.ID = uuid.New()
	for _, rec := range []domain.Tweet{tw, other} {
		if err := c.Insert(rec); err != nil {
			t.Fatal(err)
		}
	}

	content := "hello"
	if _, err := c.Update(tw.ID.String(), domain.TweetPatch{Content: &content}.Apply); err != nil {
		t.Fatal(err)
	}

	got, err := c.Find(tw.ID.String())
	if err != nil {
		t.Fatal(err)
	}
	if got.Content != "hello" {
		t.Errorf("content = %q, want hello", got.Content)
	}
	if got.ID != tw.ID || !got.CreatedAt.Equal(tw.CreatedAt) || !reflect.DeepEqual(got.By, tw.By) || got.UpdatedAt != nil {
		t.Errorf("patch touched other fields: %+v", got)
	}

	untouched, err := c.Find(other.ID.String())
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(untouched, other) {
		t.Errorf("other record changed: %+v", untouched)
	}
}

func TestMissingFileIsStorageError(t *testing.T) {
	c := NewCollection("notes", filepath.Join(t.TempDir(), "absent.json"), "id", func(n note) string { return n.ID })

	_, err := c.Load()
	var se *StorageError
	if !errors.As(err, &se) {
		t.Fatalf("Load err = %v, want *StorageError", err)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("err should unwrap to fs.ErrNotExist: %v", err)
	}

	if err := c.Insert(note{ID: "a"}); !errors.As(err, &se) {
		t.Errorf("Insert err = %v, want *StorageError", err)
	}
	if _, err := os.Stat(c.Path()); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Insert must not create the file")
	}
}

func TestMalformedFileIsStorageError(t *testing.T) {
	for _, seed := range []string{"", "{", `{"id":"a"}`, "null", "[] []"} {
		c := newNotes(t, seed)
		_, err := c.Load()
		var se *StorageError
		if !errors.As(err, &se) {
			t.Errorf("seed %q: err = %v, want *StorageError", seed, err)
		}
		if errors.Is(err, domain.ErrNotFound) {
			t.Errorf("seed %q: storage error must not match ErrNotFound", seed)
		}
	}
}

func TestWriteLeavesValidArrayAndNoTempFiles(t *testing.T) {
	c := newNotes(t, "[]")
	for i := range 5 {
		if err := c.Insert(note{ID: fmt.Sprint(i)}); err != nil {
			t.Fatal(err)
		}
	}

	data, err := os.ReadFile(c.Path())
	if err != nil {
		t.Fatal(err)
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("file is not a JSON array: %v", err)
	}
	if len(raw) != 5 {
		t.Errorf("len = %d, want 5", len(raw))
	}

	entries, err := os.ReadDir(filepath.Dir(c.Path()))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("leftover files in data dir: %v", entries)
	}
}

func TestConcurrentInsertsInProcess(t *testing.T) {
	c := newNotes(t, "[]")

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := c.Insert(note{ID: fmt.Sprint(i)}); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()

	got, err := c.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 20 {
		t.Errorf("len = %d, want 20", len(got))
	}
}

func TestInsertUniqueRejectsTakenKey(t *testing.T) {
	c := newNotes(t, `[{"id":"a","text":"first"}]`)

	err := c.InsertUnique(note{ID: "a", Text: "second"})
	var conflict *domain.ConflictError
	if !errors.As(err, &conflict) || conflict.Field != "id" || conflict.Key != "a" {
		t.Fatalf("err = %v, want ConflictError on id", err)
	}
	if !errors.Is(err, domain.ErrConflict) {
		t.Errorf("errors.Is(err, ErrConflict) = false")
	}

	if err := c.InsertUnique(note{ID: "b"}); err != nil {
		t.Fatal(err)
	}
	got, err := c.Load()
	if err != nil {
		t.Fatal(err)
	}
	want := []note{{ID: "a", Text: "first"}, {ID: "b"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Load() = %+v, want %+v", got, want)
	}
}

func TestConcurrentInsertUniqueSameKey(t *testing.T) {
	c := newNotes(t, "[]")

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		inserted  int
		conflicts int
	)
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := c.InsertUnique(note{ID: "dup"})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				inserted++
			case errors.Is(err, domain.ErrConflict):
				conflicts++
			default:
				t.Error(err)
			}
		}()
	}
	wg.Wait()

	if inserted != 1 || conflicts != 19 {
		t.Errorf("inserted = %d, conflicts = %d, want 1 and 19", inserted, conflicts)
	}
	got, err := c.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Errorf("len = %d, want 1", len(got))
	}
}

func TestTweetStringForms(t *testing.T) {
	c := newTweets(t)
	tw := sampleTweet()
	if err := c.Insert(tw); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(c.Path())
	if err != nil {
		t.Fatal(err)
	}
	var raw []map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatal(err)
	}
	rec := raw[0]
	if rec["tweet_id"] != tw.ID.String() {
		t.Errorf("tweet_id = %v", rec["tweet_id"])
	}
	if rec["created_at"] != "2026-10-17T09:30:00Z" {
		t.Errorf("created_at = %v", rec["created_at"])
	}
	if v, ok := rec["updated_at"]; !ok || v != nil {
		t.Errorf("updated_at = %v (present %v), want null", v, ok)
	}
	by := rec["by"].(map[string]any)
	if by["birth_date"] != "1990-04-02" {
		t.Errorf("birth_date = %v", by["birth_date"])
	}
	if _, ok := by["password"]; ok {
		t.Errorf("password must not be stored")
	}
}

func TestBootstrapSeedsMissingFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	if err := Bootstrap(dir); err != nil {
		t.Fatal(err)
	}

	existing := filepath.Join(dir, UsersFile)
	if err := os.WriteFile(existing, []byte(`[{"user_name":"keep"}]`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := Bootstrap(dir); err != nil {
		t.Fatal(err)
	}

	data, _ := os.ReadFile(existing)
	if string(data) != `[{"user_name":"keep"}]` {
		t.Errorf("Bootstrap overwrote %s: %s", UsersFile, data)
	}
	for _, name := range []string{TweetsFile, CredentialsFile} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != "[]\n" {
			t.Errorf("%s = %q", name, data)
		}
	}
}

func sampleTweet() domain.Tweet {
	birth := domain.NewDate(1990, time.April, 2)
	return domain.Tweet{
		ID:        uuid.MustParse("3fa85f64-5717-4562-b3fc-2c963f66afa6"),
		Content:   "hi",
		CreatedAt: time.Date(2026, time.October, 17, 9, 30, 0, 0, time.UTC),
		By: domain.User{
			ID:        uuid.MustParse("6c1f1b0e-2f0a-4f6e-9d59-3f5d2f0f5a10"),
			UserName:  "nicorlas",
			Email:     "n@x.com",
			FirstName: "Nico",
			LastName:  "R",
			BirthDate: &birth,
		},
	}
}
