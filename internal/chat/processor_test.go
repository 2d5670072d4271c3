package chat

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"

	"taskchat/internal/models"
	"taskchat/internal/repository"
	"taskchat/internal/service"
)

type fixture struct {
	proc  *Processor
	repo  *repository.Repository
	tasks *service.TaskService
	user  *models.User
	other *models.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := sqlx.Connect("sqlite3", "file::memory:?_foreign_keys=on")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	if err := repository.Migrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	log := logrus.New()
	log.SetOutput(io.Discard)
	repo := repository.NewRepository(db)

	user := &models.User{Email: "a@x.com", PasswordHash: "hash"}
	if err := repo.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	other := &models.User{Email: "b@x.com", PasswordHash: "hash"}
	if err := repo.CreateUser(context.Background(), other); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	tasks := service.NewTaskService(repo, log)
	return &fixture{
		proc:  NewProcessor(repo, tasks, log),
		repo:  repo,
		tasks: tasks,
		user:  user,
		other: other,
	}
}

func TestProcessFallback(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp, err := f.proc.Process(ctx, f.user.ID, "hello there", nil)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if resp.ToolUsed != "" {
		t.Errorf("ToolUsed = %q, want none", resp.ToolUsed)
	}
	if resp.Response != fallbackReply {
		t.Errorf("Response = %q", resp.Response)
	}
	if resp.ConversationID == uuid.Nil {
		t.Error("no conversation created")
	}
}

func TestProcessRecordsBothMessages(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp, err := f.proc.Process(ctx, f.user.ID, "show my tasks", nil)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if resp.ToolUsed != "list_tasks" {
		t.Errorf("ToolUsed = %q, want list_tasks", resp.ToolUsed)
	}
	if resp.Response != "You have no tasks at the moment." {
		t.Errorf("Response = %q", resp.Response)
	}

	conv, err := f.repo.ConversationByID(ctx, resp.ConversationID, f.user.ID)
	if err != nil {
		t.Fatalf("ConversationByID: %v", err)
	}
	msgs := conv.ParsedMessages()
	if len(msgs) != 2 {
		t.Fatalf("len(messages) = %d, want 2", len(msgs))
	}
	if msgs[0].Role != models.RoleUser || msgs[0].Content != "show my tasks" {
		t.Errorf("msgs[0] = %+v", msgs[0])
	}
	if msgs[1].Role != models.RoleAssistant || msgs[1].Content != resp.Response {
		t.Errorf("msgs[1] = %+v", msgs[1])
	}
	if msgs[0].Timestamp == "" || msgs[1].Timestamp == "" {
		t.Error("timestamps not recorded")
	}
}

func TestProcessContinuesConversation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.proc.Process(ctx, f.user.ID, "hello", nil)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	second, err := f.proc.Process(ctx, f.user.ID, "hello again", &first.ConversationID)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if second.ConversationID != first.ConversationID {
		t.Errorf("conversation id changed: %s vs %s", second.ConversationID, first.ConversationID)
	}

	conv, err := f.repo.ConversationByID(ctx, first.ConversationID, f.user.ID)
	if err != nil {
		t.Fatalf("ConversationByID: %v", err)
	}
	if got := len(conv.ParsedMessages()); got != 4 {
		t.Errorf("len(messages) = %d, want 4", got)
	}
}

func TestProcessAddCreatesPlaceholderTask(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp, err := f.proc.Process(ctx, f.user.ID, "add something for me", nil)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if resp.ToolUsed != "add_task" {
		t.Errorf("ToolUsed = %q, want add_task", resp.ToolUsed)
	}

	// No entity extraction: the created task carries the placeholder title.
	tasks, err := f.tasks.List(ctx, f.user.ID)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(tasks) != 1 || tasks[0].Title != placeholderTitle {
		t.Errorf("tasks = %+v, want one task titled %q", tasks, placeholderTitle)
	}
}

func TestProcessToolFailureBecomesReply(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// The placeholder task id cannot resolve, so the tool fails; the turn
	// still succeeds and the reply carries the error.
	resp, err := f.proc.Process(ctx, f.user.ID, "delete the first one", nil)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if resp.ToolUsed != "delete_task" {
		t.Errorf("ToolUsed = %q, want delete_task", resp.ToolUsed)
	}
	if !strings.Contains(resp.Response, "problem") {
		t.Errorf("Response = %q, want failure reply", resp.Response)
	}

	conv, err := f.repo.ConversationByID(ctx, resp.ConversationID, f.user.ID)
	if err != nil {
		t.Fatalf("ConversationByID: %v", err)
	}
	if got := len(conv.ParsedMessages()); got != 2 {
		t.Errorf("len(messages) = %d, want 2", got)
	}
}

func TestProcessForeignConversation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp, err := f.proc.Process(ctx, f.user.ID, "hello", nil)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	if _, err := f.proc.Process(ctx, f.other.ID, "hello", &resp.ConversationID); !errors.Is(err, ErrConversationNotFound) {
		t.Errorf("Process = %v, want ErrConversationNotFound", err)
	}

	unknown := uuid.New()
	if _, err := f.proc.Process(ctx, f.user.ID, "hello", &unknown); !errors.Is(err, ErrConversationNotFound) {
		t.Errorf("Process = %v, want ErrConversationNotFound", err)
	}
}
