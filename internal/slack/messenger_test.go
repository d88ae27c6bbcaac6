package slack

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	slackapi "github.com/slack-go/slack"

	"github.com/ashwinyue/faq-bot/internal/model"
	"github.com/ashwinyue/faq-bot/internal/service/faq"
)

// fakeSlackAPI 记录对Slack Web API的调用
type fakeSlackAPI struct {
	mu    sync.Mutex
	calls map[string]url.Values
}

func newFakeSlackAPI(t *testing.T) (*fakeSlackAPI, *Messenger) {
	t.Helper()
	fake := &fakeSlackAPI{calls: map[string]url.Values{}}

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("failed to parse form for %s: %v", r.URL.Path, err)
		}
		fake.mu.Lock()
		fake.calls[r.URL.Path] = r.Form
		fake.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/chat.postMessage":
			_, _ = w.Write([]byte(`{"ok":true,"channel":"C-REVIEW","ts":"111.222"}`))
		case "/chat.update":
			_, _ = w.Write([]byte(`{"ok":true,"channel":"C-REVIEW","ts":"111.222","text":""}`))
		default:
			_, _ = w.Write([]byte(`{"ok":true}`))
		}
	}))
	t.Cleanup(ts.Close)

	client := slackapi.New("xoxb-test", slackapi.OptionAPIURL(ts.URL+"/"))
	return fake, NewMessenger(client, "C-REVIEW")
}

func (f *fakeSlackAPI) form(t *testing.T, path string) url.Values {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	form, seen := f.calls[path]
	if !seen {
		t.Fatalf("no call to %s recorded", path)
	}
	return form
}

func TestNotifyPending_PostsReviewMessage(t *testing.T) {
	fake, m := newFakeSlackAPI(t)

	pending := &model.PendingFAQ{
		ID:        7,
		Question:  "How do I deploy?",
		Answer:    "Use the pipeline.",
		CreatedBy: "U1",
	}
	channelID, timestamp, err := m.NotifyPending(context.Background(), pending, []string{"C1"})
	if err != nil {
		t.Fatalf("NotifyPending() failed: %v", err)
	}
	if channelID != "C-REVIEW" || timestamp != "111.222" {
		t.Fatalf("NotifyPending() = (%s, %s)", channelID, timestamp)
	}

	form := fake.form(t, "/chat.postMessage")
	if form.Get("channel") != "C-REVIEW" {
		t.Fatalf("posted to channel %q, want C-REVIEW", form.Get("channel"))
	}
	blocks := form.Get("blocks")
	if !strings.Contains(blocks, "How do I deploy?") {
		t.Fatalf("review message misses the question: %s", blocks)
	}
	// 按钮携带待审核ID，批准/驳回回调靠它定位条目
	if !strings.Contains(blocks, ActionApproveFAQ) || !strings.Contains(blocks, ActionRejectFAQ) {
		t.Fatalf("review message misses decision buttons: %s", blocks)
	}
	if !strings.Contains(blocks, `"value":"7"`) {
		t.Fatalf("decision buttons miss the pending ID: %s", blocks)
	}
}

func TestNotifyDecision_UpdatesReviewMessage(t *testing.T) {
	fake, m := newFakeSlackAPI(t)

	err := m.NotifyDecision(context.Background(), "C-REVIEW", "111.222", faq.Decision{
		Approved:   false,
		FAQ:        &model.PendingFAQ{Question: "Q", Answer: "A", CreatedBy: "U1"},
		ReviewerID: "U-ADMIN",
		Reason:     "duplicate",
	})
	if err != nil {
		t.Fatalf("NotifyDecision() failed: %v", err)
	}

	form := fake.form(t, "/chat.update")
	if form.Get("ts") != "111.222" {
		t.Fatalf("updated ts %q, want 111.222", form.Get("ts"))
	}
	blocks := form.Get("blocks")
	if !strings.Contains(blocks, "rejected by <@U-ADMIN>") || !strings.Contains(blocks, "duplicate") {
		t.Fatalf("decision record misses reviewer or reason: %s", blocks)
	}
	// 裁决后按钮必须消失
	if strings.Contains(blocks, ActionApproveFAQ) {
		t.Fatalf("decision record still carries buttons: %s", blocks)
	}
}

func TestAddReaction(t *testing.T) {
	fake, m := newFakeSlackAPI(t)

	if err := m.AddReaction(context.Background(), "C1", "123.456", "hyper-dino-wave"); err != nil {
		t.Fatalf("AddReaction() failed: %v", err)
	}

	form := fake.form(t, "/reactions.add")
	if form.Get("name") != "hyper-dino-wave" || form.Get("channel") != "C1" || form.Get("timestamp") != "123.456" {
		t.Fatalf("reactions.add form = %v", form)
	}
}
