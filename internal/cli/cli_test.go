package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/riji/internal/backup"
	"github.com/julianstephens/riji/internal/journal"
	"github.com/julianstephens/riji/internal/lock"
	"github.com/julianstephens/riji/internal/models"
	"github.com/julianstephens/riji/internal/storage"
)

var fixedNow = time.Date(2025, time.June, 20, 9, 30, 5, 0, time.Local)

func newTestContext(t *testing.T, path string) (*Context, *bytes.Buffer) {
	t.Helper()
	ctx := NewContext(storage.Open(path))
	out := &bytes.Buffer{}
	ctx.Out = out
	ctx.Err = out
	ctx.In = strings.NewReader("")
	ctx.now = func() time.Time { return fixedNow }
	t.Cleanup(func() { ctx.Close() })
	return ctx, out
}

// setupJournal initializes an empty journal and returns a fresh context on it
func setupJournal(t *testing.T, name string) (*Context, *bytes.Buffer) {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	initCtx, _ := newTestContext(t, path)
	if err := (&InitCmd{NoWelcome: true}).Run(initCtx); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if err := initCtx.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	return newTestContext(t, path)
}

// reopen returns a new context on the same journal, as a second command would
func reopen(t *testing.T, ctx *Context) (*Context, *bytes.Buffer) {
	t.Helper()
	if err := ctx.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	return newTestContext(t, ctx.Store.GetConfigPath())
}

func TestInitSeedsWelcome(t *testing.T) {
	for _, name := range []string{"journal.json", "journal.db"} {
		t.Run(name, func(t *testing.T) {
			ctx, out := newTestContext(t, filepath.Join(t.TempDir(), name))
			if err := (&InitCmd{}).Run(ctx); err != nil {
				t.Fatalf("init failed: %v", err)
			}
			if !strings.Contains(out.String(), "welcome entry") {
				t.Errorf("expected welcome message, got %q", out.String())
			}

			ctx, _ = reopen(t, ctx)
			if err := ctx.Load(); err != nil {
				t.Fatalf("load failed: %v", err)
			}
			entries := ctx.Journal.Entries()
			if len(entries) != 1 || entries[0].PrimaryTag() != "心情" {
				t.Errorf("expected one welcome entry, got %+v", entries)
			}

			if err := (&InitCmd{}).Run(ctx); err == nil {
				t.Error("second init should fail")
			}
		})
	}
}

func TestCommandsRequireInit(t *testing.T) {
	ctx, _ := newTestContext(t, filepath.Join(t.TempDir(), "missing.json"))
	err := (&ListCmd{}).Run(ctx)
	if !errors.Is(err, storage.ErrNotInitialized) {
		t.Errorf("expected ErrNotInitialized, got %v", err)
	}
}

func TestNewInfersTagsAndMood(t *testing.T) {
	ctx, out := setupJournal(t, "journal.json")

	if err := (&NewCmd{Content: "今天很生气，工作太多"}).Run(ctx); err != nil {
		t.Fatalf("new failed: %v", err)
	}
	if !strings.Contains(out.String(), "Added entry") {
		t.Errorf("unexpected output %q", out.String())
	}

	entries := ctx.Journal.Entries()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	e := entries[0]
	if e.PrimaryTag() != "杭州实习" {
		t.Errorf("expected inferred tag 杭州实习, got %v", e.Tags)
	}
	if e.Mood != models.MoodAngry {
		t.Errorf("expected inferred mood 😠, got %q", e.Mood)
	}
	if !strings.HasPrefix(e.Title, "2025年6月20日") {
		t.Errorf("expected today's title, got %q", e.Title)
	}
}

func TestNewExplicitFieldsAndStdin(t *testing.T) {
	ctx, _ := setupJournal(t, "journal.db")
	ctx.In = strings.NewReader("从标准输入读到的内容\n")

	cmd := &NewCmd{Title: "2025年6月1日 旧事", Tags: []string{"回忆", "家"}, Mood: "calm"}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("new failed: %v", err)
	}

	e := ctx.Journal.Entries()[0]
	if e.Title != "2025年6月1日 旧事" || e.Content != "从标准输入读到的内容" {
		t.Errorf("unexpected entry %+v", e)
	}
	if e.Mood != models.MoodCalm || e.Category != "回忆" {
		t.Errorf("explicit mood or tags ignored: %+v", e)
	}
}

func TestNewRejectsBadInput(t *testing.T) {
	tests := []struct {
		name    string
		cmd     NewCmd
		wantErr error
	}{
		{"unknown mood", NewCmd{Content: "内容", Mood: "grumpy"}, nil},
		{"empty content", NewCmd{Content: "   "}, journal.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, _ := setupJournal(t, "journal.json")
			err := tt.cmd.Run(ctx)
			if err == nil {
				t.Fatal("expected an error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
			if ctx.Journal.Len() != 0 {
				t.Errorf("nothing should be stored, got %d entries", ctx.Journal.Len())
			}
		})
	}
}

func TestEditKeepsOmittedFields(t *testing.T) {
	ctx, _ := setupJournal(t, "journal.json")
	if err := (&NewCmd{Title: "2025年6月1日", Tags: []string{"心情"}, Content: "原来的内容", Mood: "sad"}).Run(ctx); err != nil {
		t.Fatalf("new failed: %v", err)
	}
	id := ctx.Journal.Entries()[0].ID

	ctx, _ = reopen(t, ctx)
	if err := (&EditCmd{ID: id, Content: "新的内容"}).Run(ctx); err != nil {
		t.Fatalf("edit failed: %v", err)
	}

	e, ok := ctx.Journal.Find(id)
	if !ok {
		t.Fatal("edited entry disappeared")
	}
	if e.Content != "新的内容" {
		t.Errorf("content not updated: %q", e.Content)
	}
	if e.Title != "2025年6月1日" || e.Mood != models.MoodSad || e.PrimaryTag() != "心情" {
		t.Errorf("omitted fields changed: %+v", e)
	}

	err := (&EditCmd{ID: id + 1000, Title: "x"}).Run(ctx)
	if !errors.Is(err, journal.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteConfirmation(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		yes         bool
		wantDeleted bool
	}{
		{"declined", "n\n", false, false},
		{"no answer", "", false, false},
		{"accepted", "y\n", false, true},
		{"skip prompt", "", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, _ := setupJournal(t, "journal.json")
			if err := (&NewCmd{Content: "要删除的内容"}).Run(ctx); err != nil {
				t.Fatalf("new failed: %v", err)
			}
			id := ctx.Journal.Entries()[0].ID

			ctx, _ = reopen(t, ctx)
			ctx.In = strings.NewReader(tt.input)
			if err := (&DeleteCmd{ID: id, Yes: tt.yes}).Run(ctx); err != nil {
				t.Fatalf("delete failed: %v", err)
			}

			ctx, _ = reopen(t, ctx)
			if err := ctx.Load(); err != nil {
				t.Fatalf("load failed: %v", err)
			}
			_, found := ctx.Journal.Find(id)
			if found == tt.wantDeleted {
				t.Errorf("entry found = %v, want deleted = %v", found, tt.wantDeleted)
			}
		})
	}
}

func TestShowCopiesToClipboard(t *testing.T) {
	ctx, out := setupJournal(t, "journal.json")
	if err := (&NewCmd{Title: "2025年6月3日", Content: "和朋友散步"}).Run(ctx); err != nil {
		t.Fatalf("new failed: %v", err)
	}
	id := ctx.Journal.Entries()[0].ID

	var copied string
	orig := copyToClipboard
	copyToClipboard = func(s string) error {
		copied = s
		return nil
	}
	defer func() { copyToClipboard = orig }()

	out.Reset()
	if err := (&ShowCmd{ID: id, Copy: true}).Run(ctx); err != nil {
		t.Fatalf("show failed: %v", err)
	}
	if !strings.Contains(out.String(), "和朋友散步") {
		t.Errorf("entry text not shown: %q", out.String())
	}
	if copied != "2025年6月3日\n\n和朋友散步" {
		t.Errorf("unexpected clipboard text %q", copied)
	}

	out.Reset()
	if err := (&ShowCmd{ID: id, JSON: true}).Run(ctx); err != nil {
		t.Fatalf("show --json failed: %v", err)
	}
	var e models.Entry
	if err := json.Unmarshal(out.Bytes(), &e); err != nil {
		t.Fatalf("show --json printed invalid JSON: %v", err)
	}
	if e.ID != id {
		t.Errorf("expected id %d, got %d", id, e.ID)
	}
}

// seed writes entries straight to the store
func seed(t *testing.T, ctx *Context, entries []models.Entry) {
	t.Helper()
	if err := ctx.Store.Save(entries); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
}

func sampleEntries() []models.Entry {
	return []models.Entry{
		{ID: 1, Title: "2025年6月1日", Tags: []string{"杭州实习"}, Content: "今天开会到很晚", Mood: models.MoodCalm},
		{ID: 2, Title: "2025年6月3日", Tags: []string{"心情", "出去玩"}, Content: "和朋友散步", Mood: models.MoodHappy},
		{ID: 3, Title: "2025年6月2日", Tags: []string{"杭州实习"}, Content: "又开会", Mood: models.MoodSad},
	}
}

func TestListFiltersAndOrders(t *testing.T) {
	tests := []struct {
		name string
		cmd  ListCmd
		want []int64
	}{
		{"all newest first", ListCmd{}, []int64{2, 3, 1}},
		{"by tag", ListCmd{Tag: "杭州实习"}, []int64{3, 1}},
		{"by text", ListCmd{Search: "开会"}, []int64{3, 1}},
		{"limited", ListCmd{Limit: 1}, []int64{2}},
		{"no match", ListCmd{Tag: "不存在"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, out := setupJournal(t, "journal.json")
			seed(t, ctx, sampleEntries())

			tt.cmd.JSON = true
			if err := tt.cmd.Run(ctx); err != nil {
				t.Fatalf("list failed: %v", err)
			}
			var got []models.Entry
			if err := json.Unmarshal(out.Bytes(), &got); err != nil {
				t.Fatalf("invalid JSON output: %v", err)
			}
			var ids []int64
			for _, e := range got {
				ids = append(ids, e.ID)
			}
			if len(ids) != len(tt.want) {
				t.Fatalf("expected ids %v, got %v", tt.want, ids)
			}
			for i := range ids {
				if ids[i] != tt.want[i] {
					t.Errorf("expected ids %v, got %v", tt.want, ids)
					break
				}
			}
		})
	}
}

func TestListPlainOutput(t *testing.T) {
	ctx, out := setupJournal(t, "journal.json")
	if err := (&ListCmd{}).Run(ctx); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(out.String(), "No entries found") {
		t.Errorf("expected empty message, got %q", out.String())
	}

	seed(t, ctx, sampleEntries())
	ctx, out = reopen(t, ctx)
	if err := (&ListCmd{}).Run(ctx); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	for _, want := range []string{"2025年6月3日", "和朋友散步", "杭州实习"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("expected %q in output:\n%s", want, out.String())
		}
	}
}

func TestTags(t *testing.T) {
	ctx, out := setupJournal(t, "journal.json")
	seed(t, ctx, sampleEntries())

	if err := (&TagsCmd{}).Run(ctx); err != nil {
		t.Fatalf("tags failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 tags, got %q", out.String())
	}
	if !strings.Contains(lines[0], "杭州实习") || !strings.Contains(lines[0], "2") {
		t.Errorf("expected most used tag first, got %q", lines[0])
	}
}

func TestSearchRanked(t *testing.T) {
	ctx, out := setupJournal(t, "journal.json")
	seed(t, ctx, sampleEntries())

	if err := (&SearchCmd{Query: "散步", JSON: true}).Run(ctx); err != nil {
		t.Fatalf("search failed: %v", err)
	}
	var hits []struct {
		Entry models.Entry `json:"entry"`
		Score float64      `json:"score"`
	}
	if err := json.Unmarshal(out.Bytes(), &hits); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}
	if len(hits) != 1 || hits[0].Entry.ID != 2 {
		t.Errorf("expected entry 2, got %+v", hits)
	}

	out.Reset()
	if err := (&SearchCmd{Query: "火星"}).Run(ctx); err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if !strings.Contains(out.String(), "No entries match") {
		t.Errorf("expected no-match message, got %q", out.String())
	}
}

const importText = `2025年6月14日星期六，晴
今天去西湖散步，很开心。

2025年6月15日
在杭州实习，开会。
`

func TestImportExportRoundTrip(t *testing.T) {
	ctx, out := setupJournal(t, "journal.json")
	src := filepath.Join(t.TempDir(), "diary.txt")
	if err := os.WriteFile(src, []byte(importText), 0600); err != nil {
		t.Fatalf("write import file: %v", err)
	}

	if err := (&ImportCmd{Path: src}).Run(ctx); err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if !strings.Contains(out.String(), "Imported 2 of 2 entries") {
		t.Errorf("unexpected import message %q", out.String())
	}

	// A second import of the same text finds only duplicates
	ctx, out = reopen(t, ctx)
	if err := (&ImportCmd{Path: src}).Run(ctx); err != nil {
		t.Fatalf("second import failed: %v", err)
	}
	if !strings.Contains(out.String(), "already exist") {
		t.Errorf("expected duplicate message, got %q", out.String())
	}

	exported := filepath.Join(t.TempDir(), "export.txt")
	if err := (&ExportCmd{Format: "text", Output: exported}).Run(ctx); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	other, out := setupJournal(t, "other.json")
	if err := (&ImportCmd{Path: exported}).Run(other); err != nil {
		t.Fatalf("re-import failed: %v", err)
	}
	if !strings.Contains(out.String(), "Imported 2 of 2 entries") {
		t.Errorf("unexpected re-import message %q", out.String())
	}
	want := ctx.Journal.Entries()
	got := other.Journal.Entries()
	for i := range want {
		if got[i].Title != want[i].Title || got[i].Content != want[i].Content {
			t.Errorf("entry %d changed in round trip: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestImportFromStdinAndNoData(t *testing.T) {
	ctx, _ := setupJournal(t, "journal.json")
	ctx.In = strings.NewReader("没有日期的一行\n")

	err := (&ImportCmd{Path: "-"}).Run(ctx)
	if err == nil || !strings.Contains(err.Error(), "No entries found") {
		t.Errorf("expected no-data error, got %v", err)
	}
}

func TestExportJSON(t *testing.T) {
	ctx, out := setupJournal(t, "journal.json")
	seed(t, ctx, sampleEntries())

	if err := (&ExportCmd{Format: "json", Tag: "心情"}).Run(ctx); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	var got []models.Entry
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}
	if len(got) != 1 || got[0].ID != 2 {
		t.Errorf("expected only entry 2, got %+v", got)
	}
}

func TestUnreadableJournalDegradesToEmpty(t *testing.T) {
	ctx, out := setupJournal(t, "journal.json")
	path := ctx.Store.GetConfigPath()
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatalf("write: %v", err)
	}

	if err := (&ListCmd{}).Run(ctx); err != nil {
		t.Fatalf("list should degrade, got %v", err)
	}
	if !strings.Contains(out.String(), "starting with an empty journal") {
		t.Errorf("expected a warning, got %q", out.String())
	}

	backups, err := backup.NewManager(path).ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 1 {
		t.Errorf("expected the unreadable journal to be backed up, got %d backups", len(backups))
	}
}

func TestSecondWriterIsLockedOut(t *testing.T) {
	ctx, _ := setupJournal(t, "journal.json")
	if err := ctx.LoadForWrite(); err != nil {
		t.Fatalf("LoadForWrite failed: %v", err)
	}

	other, _ := newTestContext(t, ctx.Store.GetConfigPath())
	err := (&NewCmd{Content: "内容"}).Run(other)
	if !errors.Is(err, lock.ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}

	// Readers are not blocked
	if err := (&ListCmd{}).Run(other); err != nil {
		t.Errorf("list should not need the lock: %v", err)
	}

	if err := ctx.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	other, _ = newTestContext(t, ctx.Store.GetConfigPath())
	if err := (&NewCmd{Content: "内容"}).Run(other); err != nil {
		t.Errorf("expected lock to be free after Close, got %v", err)
	}
}

func TestBackupCommands(t *testing.T) {
	for _, name := range []string{"journal.json", "journal.db"} {
		t.Run(name, func(t *testing.T) {
			ctx, out := setupJournal(t, name)
			seed(t, ctx, sampleEntries())

			if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
				t.Fatalf("backup create failed: %v", err)
			}
			if !strings.Contains(out.String(), "Backup created") {
				t.Errorf("unexpected output %q", out.String())
			}

			out.Reset()
			if err := (&BackupListCmd{}).Run(ctx); err != nil {
				t.Fatalf("backup list failed: %v", err)
			}
			if !strings.Contains(out.String(), "1 total") {
				t.Errorf("expected one backup, got %q", out.String())
			}

			backups, err := backup.NewManager(ctx.Store.GetConfigPath()).ListBackups()
			if err != nil || len(backups) != 1 {
				t.Fatalf("ListBackups: %v, %d backups", err, len(backups))
			}

			seed(t, ctx, sampleEntries()[:1])
			ctx, out = reopen(t, ctx)
			restore := &BackupRestoreCmd{BackupFile: filepath.Base(backups[0].Path), Yes: true}
			if err := restore.Run(ctx); err != nil {
				t.Fatalf("backup restore failed: %v", err)
			}
			if !strings.Contains(out.String(), "restored successfully") {
				t.Errorf("unexpected output %q", out.String())
			}

			ctx, _ = reopen(t, ctx)
			if err := ctx.Load(); err != nil {
				t.Fatalf("load after restore failed: %v", err)
			}
			if ctx.Journal.Len() != 3 {
				t.Errorf("expected 3 restored entries, got %d", ctx.Journal.Len())
			}
		})
	}
}

func TestBackupRestoreCancelled(t *testing.T) {
	ctx, out := setupJournal(t, "journal.json")
	if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
		t.Fatalf("backup create failed: %v", err)
	}
	backups, _ := backup.NewManager(ctx.Store.GetConfigPath()).ListBackups()

	ctx.In = strings.NewReader("no\n")
	if err := (&BackupRestoreCmd{BackupFile: backups[0].Path}).Run(ctx); err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if !strings.Contains(out.String(), "Restore cancelled") {
		t.Errorf("expected cancellation, got %q", out.String())
	}

	err := (&BackupRestoreCmd{BackupFile: "riji-missing.json", Yes: true}).Run(ctx)
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("expected not found error, got %v", err)
	}
}

func TestValidateFix(t *testing.T) {
	ctx, out := setupJournal(t, "journal.json")
	seed(t, ctx, []models.Entry{
		{ID: 1, Title: "2025年6月1日", Category: "心情", Content: "旧格式", Mood: models.MoodHappy},
		{ID: 1, Title: "2025年6月2日", Tags: []string{"心情"}, Content: "重复的 id", Mood: models.MoodHappy},
	})

	if err := (&ValidateCmd{}).Run(ctx); err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if !strings.Contains(out.String(), "Id 1 is used by 2 entries") {
		t.Errorf("expected duplicate id report, got:\n%s", out.String())
	}

	if err := (&ValidateCmd{Fix: true}).Run(ctx); err != nil {
		t.Fatalf("validate --fix failed: %v", err)
	}
	saved, err := ctx.Store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(saved) != 1 || len(saved[0].Tags) != 1 || saved[0].Tags[0] != "心情" {
		t.Errorf("expected repaired journal, got %+v", saved)
	}
}

func TestDoctor(t *testing.T) {
	for _, name := range []string{"journal.json", "journal.db"} {
		t.Run(name, func(t *testing.T) {
			ctx, out := setupJournal(t, name)
			seed(t, ctx, sampleEntries())

			if err := (&DoctorCmd{}).Run(ctx); err != nil {
				t.Fatalf("doctor failed on a healthy journal: %v\n%s", err, out.String())
			}
			for _, want := range []string{"Journal readable: OK (3 entries)", "Backups present: WARNING", "All diagnostics passed!"} {
				if !strings.Contains(out.String(), want) {
					t.Errorf("expected %q in output:\n%s", want, out.String())
				}
			}
		})
	}
}

func TestDoctorMissingJournal(t *testing.T) {
	ctx, out := newTestContext(t, filepath.Join(t.TempDir(), "missing.json"))
	if err := (&DoctorCmd{}).Run(ctx); err == nil {
		t.Error("doctor should fail without a journal")
	}
	if !strings.Contains(out.String(), "Journal readable: FAIL") {
		t.Errorf("expected readable failure, got:\n%s", out.String())
	}
}

func TestDebugCommands(t *testing.T) {
	ctx, out := setupJournal(t, "journal.db")
	seed(t, ctx, sampleEntries())

	if err := (&DebugPathCmd{}).Run(ctx); err != nil {
		t.Fatalf("debug path failed: %v", err)
	}
	var paths map[string]string
	if err := json.Unmarshal(out.Bytes(), &paths); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}
	if paths["path"] != ctx.Store.GetConfigPath() || paths["storage"] != "sqlite" {
		t.Errorf("unexpected paths %v", paths)
	}

	out.Reset()
	if err := (&DebugDumpEntryCmd{ID: 2}).Run(ctx); err != nil {
		t.Fatalf("debug dump-entry failed: %v", err)
	}
	if !strings.Contains(out.String(), "和朋友散步") {
		t.Errorf("unexpected dump %q", out.String())
	}

	err := (&DebugDumpEntryCmd{ID: 99}).Run(ctx)
	if !errors.Is(err, journal.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestMCPServerTools(t *testing.T) {
	ctx, _ := setupJournal(t, "journal.json")
	if err := ctx.LoadForWrite(); err != nil {
		t.Fatalf("LoadForWrite failed: %v", err)
	}

	tools := newMCPServer(ctx).ListTools()
	for _, name := range []string{
		"list_entries", "get_entry", "create_entry", "update_entry",
		"delete_entry", "import_text", "search_entries", "list_tags",
	} {
		if _, ok := tools[name]; !ok {
			t.Errorf("tool %s not registered", name)
		}
	}
}
