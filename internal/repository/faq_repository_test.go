package repository

import (
	"testing"

	"github.com/ashwinyue/faq-bot/internal/model"
	"github.com/ashwinyue/faq-bot/internal/testutil"
)

func newTestRepos(t *testing.T) *Repositories {
	t.Helper()
	return NewRepositories(testutil.NewTestDB(t))
}

func createPending(t *testing.T, repos *Repositories, channels ...string) *model.PendingFAQ {
	t.Helper()
	pending := &model.PendingFAQ{Question: "Q", Answer: "A", CreatedBy: "U1", IsGlobal: len(channels) == 0}
	if err := repos.FAQ.CreatePending(pending, channels); err != nil {
		t.Fatalf("CreatePending() failed: %v", err)
	}
	return pending
}

func TestApprove_MovesRowAndBindings(t *testing.T) {
	repos := newTestRepos(t)
	pending := createPending(t, repos, "C1", "C2")

	published, err := repos.FAQ.Approve(pending.ID)
	if err != nil {
		t.Fatalf("Approve() failed: %v", err)
	}
	if published.Question != "Q" || published.Answer != "A" || published.CreatedBy != "U1" {
		t.Fatalf("published row = %+v", published)
	}

	var n int64
	repos.DB.Model(&model.PendingFAQ{}).Count(&n)
	if n != 0 {
		t.Fatalf("pending rows = %d, want 0", n)
	}
	repos.DB.Model(&model.PendingFAQChannel{}).Count(&n)
	if n != 0 {
		t.Fatalf("pending bindings = %d, want 0", n)
	}

	var bindings []model.PublishedFAQChannel
	if err := repos.DB.Where("faq_id = ?", published.ID).Order("channel_id").Find(&bindings).Error; err != nil {
		t.Fatalf("failed to load bindings: %v", err)
	}
	if len(bindings) != 2 || bindings[0].ChannelID != "C1" || bindings[1].ChannelID != "C2" {
		t.Fatalf("published bindings = %+v", bindings)
	}
}

func TestApprove_SecondDecisionLosesRow(t *testing.T) {
	repos := newTestRepos(t)
	pending := createPending(t, repos, "C1")

	if _, err := repos.FAQ.Approve(pending.ID); err != nil {
		t.Fatalf("first Approve() failed: %v", err)
	}

	// 行已被第一次裁决删除，后到者得到记录不存在
	if _, err := repos.FAQ.Approve(pending.ID); !IsNotFound(err) {
		t.Fatalf("second Approve() error = %v, want not found", err)
	}
	if _, err := repos.FAQ.Reject(pending.ID, "U2", "late"); !IsNotFound(err) {
		t.Fatalf("Reject() after approve error = %v, want not found", err)
	}

	published, err := repos.FAQ.CountPublished()
	if err != nil {
		t.Fatalf("CountPublished() failed: %v", err)
	}
	if published != 1 {
		t.Fatalf("published rows = %d, want 1", published)
	}
	var rejected int64
	repos.DB.Model(&model.RejectedFAQ{}).Count(&rejected)
	if rejected != 0 {
		t.Fatalf("rejected rows = %d, want 0", rejected)
	}
}

func TestReject_MovesRowWithReason(t *testing.T) {
	repos := newTestRepos(t)
	pending := createPending(t, repos, "C1")

	rejected, err := repos.FAQ.Reject(pending.ID, "U-REV", "not a question")
	if err != nil {
		t.Fatalf("Reject() failed: %v", err)
	}
	if rejected.RejectedBy != "U-REV" || rejected.Reason != "not a question" {
		t.Fatalf("rejected row = %+v", rejected)
	}

	var n int64
	repos.DB.Model(&model.PendingFAQ{}).Count(&n)
	if n != 0 {
		t.Fatalf("pending rows = %d, want 0", n)
	}
	repos.DB.Model(&model.PendingFAQChannel{}).Count(&n)
	if n != 0 {
		t.Fatalf("pending bindings = %d, want 0", n)
	}
}

func TestListVisible_ScopesByChannel(t *testing.T) {
	repos := newTestRepos(t)

	bound := &model.PublishedFAQ{Question: "bound", Answer: "B"}
	if err := repos.DB.Create(bound).Error; err != nil {
		t.Fatalf("failed to seed: %v", err)
	}
	if err := repos.DB.Create(&model.PublishedFAQChannel{FAQID: bound.ID, ChannelID: "C1"}).Error; err != nil {
		t.Fatalf("failed to seed binding: %v", err)
	}
	global := &model.PublishedFAQ{Question: "global", Answer: "G", IsGlobal: true}
	if err := repos.DB.Create(global).Error; err != nil {
		t.Fatalf("failed to seed: %v", err)
	}

	visible, err := repos.FAQ.ListVisible("C1")
	if err != nil {
		t.Fatalf("ListVisible(C1) failed: %v", err)
	}
	if len(visible) != 2 {
		t.Fatalf("visible in C1 = %d entries, want 2", len(visible))
	}

	visible, err = repos.FAQ.ListVisible("C2")
	if err != nil {
		t.Fatalf("ListVisible(C2) failed: %v", err)
	}
	if len(visible) != 1 || visible[0].Question != "global" {
		t.Fatalf("visible in C2 = %+v, want only the global FAQ", visible)
	}
}

func TestSetReviewMessage(t *testing.T) {
	repos := newTestRepos(t)
	pending := createPending(t, repos, "C1")

	if err := repos.FAQ.SetReviewMessage(pending.ID, "C-REVIEW", "111.222"); err != nil {
		t.Fatalf("SetReviewMessage() failed: %v", err)
	}

	loaded, err := repos.FAQ.GetPendingByID(pending.ID)
	if err != nil {
		t.Fatalf("GetPendingByID() failed: %v", err)
	}
	if loaded.ReviewChannelID != "C-REVIEW" || loaded.ReviewMessageTS != "111.222" {
		t.Fatalf("review message location = %+v", loaded)
	}
}
