package tasks_test

import (
	"context"
	"strings"
	"sync"
	"testing"

	"wtask/internal/logging"
	"wtask/internal/notify"
	"wtask/internal/service"
	"wtask/internal/session"
	"wtask/internal/tasks"
	"wtask/internal/testutil"
)

// fakeSession records forced sign-outs.
type fakeSession struct {
	mu      sync.Mutex
	active  bool
	reasons []session.Reason
}

func (s *fakeSession) SignOut(r session.Reason) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.active {
		return false
	}
	s.active = false
	s.reasons = append(s.reasons, r)
	return true
}

type fixture struct {
	svc   *testutil.FakeService
	sess  *fakeSession
	notes *notify.Queue
	ctrl  *tasks.Controller
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		svc:   testutil.NewFakeService(),
		sess:  &fakeSession{active: true},
		notes: notify.NewQueue(0),
	}
	f.ctrl = tasks.New(f.svc, f.sess, f.notes, logging.Discard())
	return f
}

// loaded seeds the backend with the three-task scenario and refreshes.
func loaded(t *testing.T) *fixture {
	t.Helper()
	f := newFixture(t)
	f.svc.AddTask("1", "A", service.StatusNew)
	f.svc.AddTask("2", "B", service.StatusDone)
	f.svc.AddTask("3", "C", "")
	if err := f.ctrl.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	f.notes.Drain()
	return f
}

func ids(ts []service.Task) string {
	var out []string
	for _, t := range ts {
		out = append(out, t.ID)
	}
	return strings.Join(out, ",")
}

func lastNote(t *testing.T, q *notify.Queue) notify.Notification {
	t.Helper()
	active := q.Active()
	if len(active) == 0 {
		t.Fatal("expected a notification")
	}
	return active[len(active)-1]
}

func TestRefresh_CountsScenario(t *testing.T) {
	f := loaded(t)

	got := f.ctrl.Counts()
	want := service.Counts{Total: 3, New: 2, InProgress: 0, Done: 1}
	if got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
	if ids(f.ctrl.Tasks()) != "1,2,3" {
		t.Errorf("expected server order 1,2,3, got %s", ids(f.ctrl.Tasks()))
	}
}

func TestRefresh_ReplacesWholesale(t *testing.T) {
	f := loaded(t)
	f.svc.Remove(context.Background(), "2")

	if err := f.ctrl.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if ids(f.ctrl.Tasks()) != "1,3" {
		t.Errorf("expected 1,3, got %s", ids(f.ctrl.Tasks()))
	}
	if n := lastNote(t, f.notes); n.Text != "2 tasks loaded" {
		t.Errorf("unexpected notification %q", n.Text)
	}
}

func TestRefresh_FailureKeepsCollection(t *testing.T) {
	f := loaded(t)
	f.svc.ListErr = &service.Error{Kind: service.KindRequestFailed, Op: "list tasks", Status: 500, Message: "db down"}

	if err := f.ctrl.Refresh(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if f.ctrl.Len() != 3 {
		t.Errorf("expected collection unchanged, got %d tasks", f.ctrl.Len())
	}
	n := lastNote(t, f.notes)
	if n.Severity != notify.Error || !strings.Contains(n.Text, "db down") {
		t.Errorf("unexpected notification %+v", n)
	}
}

func TestFiltered(t *testing.T) {
	f := newFixture(t)
	f.svc.AddTask("1", "Foobar", service.StatusNew)
	f.svc.AddTask("2", "groceries", service.StatusDone)
	f.svc.AddTask("3", "call FOO", service.StatusDone)
	f.svc.AddTask("4", "bar", "")
	f.ctrl.Refresh(context.Background())

	tests := []struct {
		name   string
		filter tasks.Filter
		search string
		want   string
	}{
		{"all", tasks.FilterAll, "", "1,2,3,4"},
		{"done", tasks.Filter(service.StatusDone), "", "2,3"},
		{"new includes missing status", tasks.Filter(service.StatusNew), "", "1,4"},
		{"in progress", tasks.Filter(service.StatusInProgress), "", ""},
		{"search lowercase", tasks.FilterAll, "foo", "1,3"},
		{"search uppercase", tasks.FilterAll, "FOO", "1,3"},
		{"search trimmed", tasks.FilterAll, "  foo ", "1,3"},
		{"filter and search", tasks.Filter(service.StatusDone), "foo", "3"},
		{"no match", tasks.FilterAll, "zzz", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ids(f.ctrl.Filtered(tt.filter, tt.search)); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestAdd(t *testing.T) {
	f := loaded(t)

	task, err := f.ctrl.Add(context.Background(), "buy milk")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task == nil || task.Title != "buy milk" || task.Status != service.StatusNew {
		t.Fatalf("unexpected task %+v", task)
	}
	if f.ctrl.Len() != 4 {
		t.Errorf("expected 4 tasks, got %d", f.ctrl.Len())
	}
	last := f.ctrl.Tasks()[3]
	if last.Title != "buy milk" || last.Status != service.StatusNew {
		t.Errorf("expected appended task, got %+v", last)
	}
	if n := lastNote(t, f.notes); n.Severity != notify.Success || n.Text != "task added: buy milk" {
		t.Errorf("unexpected notification %+v", n)
	}
}

func TestAdd_BlankTitleMakesNoCall(t *testing.T) {
	f := loaded(t)

	for _, title := range []string{"", "   "} {
		task, err := f.ctrl.Add(context.Background(), title)
		if task != nil || err != nil {
			t.Errorf("Add(%q): expected (nil, nil), got (%v, %v)", title, task, err)
		}
	}
	if f.svc.CallCount("Create") != 0 {
		t.Errorf("expected no backend call, got %d", f.svc.CallCount("Create"))
	}
	if f.ctrl.Len() != 3 {
		t.Errorf("expected collection unchanged, got %d", f.ctrl.Len())
	}
	if f.notes.Len() != 0 {
		t.Errorf("expected no notification, got %d", f.notes.Len())
	}
}

func TestRemove(t *testing.T) {
	f := loaded(t)

	if err := f.ctrl.Remove(context.Background(), "2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ids(f.ctrl.Tasks()) != "1,3" {
		t.Errorf("expected 1,3, got %s", ids(f.ctrl.Tasks()))
	}
}

func TestRemove_FailureLeavesCollection(t *testing.T) {
	f := loaded(t)
	f.svc.RemoveErr = &service.Error{Kind: service.KindRequestFailed, Status: 500, Message: "nope"}

	if err := f.ctrl.Remove(context.Background(), "2"); err == nil {
		t.Fatal("expected error")
	}
	if ids(f.ctrl.Tasks()) != "1,2,3" {
		t.Errorf("expected collection unchanged, got %s", ids(f.ctrl.Tasks()))
	}
	if n := lastNote(t, f.notes); n.Severity != notify.Error {
		t.Errorf("expected error notification, got %+v", n)
	}
}

func TestSetStatus_OnlyTargetChanges(t *testing.T) {
	f := loaded(t)
	before := f.ctrl.Tasks()

	if _, err := f.ctrl.SetStatus(context.Background(), "3", service.StatusDone); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	after := f.ctrl.Tasks()
	for i := range after {
		want := before[i]
		if want.ID == "3" {
			want.Status = service.StatusDone
		}
		if after[i] != want {
			t.Errorf("task %d: expected %+v, got %+v", i, want, after[i])
		}
	}
	if n := lastNote(t, f.notes); n.Text != "task 3 is now Done" {
		t.Errorf("unexpected notification %q", n.Text)
	}
}

func TestSetStatus_UsesServerEcho(t *testing.T) {
	f := loaded(t)
	// A backend that normalizes any update to IN_PROGRESS.
	svc := &echoService{FakeService: f.svc, echo: service.StatusInProgress}
	ctrl := tasks.New(svc, f.sess, f.notes, logging.Discard())
	ctrl.Refresh(context.Background())

	if _, err := ctrl.SetStatus(context.Background(), "1", service.StatusDone); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := ctrl.Tasks()[0].Status; got != service.StatusInProgress {
		t.Errorf("expected server-echoed status, got %q", got)
	}
}

type echoService struct {
	*testutil.FakeService
	echo service.Status
}

func (e *echoService) SetStatus(ctx context.Context, id string, _ service.Status) (service.Task, error) {
	return e.FakeService.SetStatus(ctx, id, e.echo)
}

func TestUnauthorizedEndsSessionWithoutErrorNote(t *testing.T) {
	f := loaded(t)
	f.svc.SetStatusErr = testutil.ErrUnauthorized

	_, err := f.ctrl.SetStatus(context.Background(), "1", service.StatusDone)
	if !service.IsUnauthorized(err) {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
	if len(f.sess.reasons) != 1 || f.sess.reasons[0] != session.Expired {
		t.Errorf("expected one expired sign-out, got %v", f.sess.reasons)
	}
	for _, n := range f.notes.Active() {
		if n.Severity == notify.Error {
			t.Errorf("expected no error notification from the controller, got %q", n.Text)
		}
	}
}

func TestConcurrentUnauthorizedSignsOutOnce(t *testing.T) {
	f := loaded(t)
	f.svc.ListErr = testutil.ErrUnauthorized
	f.svc.RemoveErr = testutil.ErrUnauthorized
	f.svc.SetStatusErr = testutil.ErrUnauthorized

	var wg sync.WaitGroup
	ctx := context.Background()
	for i := 0; i < 4; i++ {
		wg.Add(3)
		go func() { defer wg.Done(); f.ctrl.Refresh(ctx) }()
		go func() { defer wg.Done(); f.ctrl.Remove(ctx, "1") }()
		go func() { defer wg.Done(); f.ctrl.SetStatus(ctx, "2", service.StatusNew) }()
	}
	wg.Wait()

	if len(f.sess.reasons) != 1 {
		t.Errorf("expected exactly one sign-out, got %d", len(f.sess.reasons))
	}
}

func TestClear(t *testing.T) {
	f := loaded(t)
	f.ctrl.Clear()
	if f.ctrl.Len() != 0 {
		t.Errorf("expected empty collection, got %d", f.ctrl.Len())
	}
	if f.ctrl.Counts() != (service.Counts{}) {
		t.Errorf("expected zero counts, got %+v", f.ctrl.Counts())
	}
}

func TestTasksReturnsCopy(t *testing.T) {
	f := loaded(t)
	got := f.ctrl.Tasks()
	got[0].Title = "mutated"
	if f.ctrl.Tasks()[0].Title != "A" {
		t.Error("expected Tasks to return a copy")
	}
}

func TestParseFilter(t *testing.T) {
	tests := []struct {
		in      string
		want    tasks.Filter
		wantErr bool
	}{
		{"", tasks.FilterAll, false},
		{"all", tasks.FilterAll, false},
		{"ALL", tasks.FilterAll, false},
		{"done", tasks.Filter(service.StatusDone), false},
		{"in-progress", tasks.Filter(service.StatusInProgress), false},
		{"later", "", true},
	}
	for _, tt := range tests {
		got, err := tasks.ParseFilter(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFilter(%q): unexpected error state %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFilter(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

