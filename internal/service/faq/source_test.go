package faq

import (
	"context"
	"strconv"
	"strings"
	"testing"

	"github.com/ashwinyue/faq-bot/internal/config"
	"github.com/ashwinyue/faq-bot/internal/model"
	"github.com/ashwinyue/faq-bot/internal/repository"
	"github.com/ashwinyue/faq-bot/internal/testutil"
)

func TestTruncateLabel(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "short", input: "hi", want: "hi"},
		{name: "exactly 75", input: strings.Repeat("a", 75), want: strings.Repeat("a", 75)},
		{name: "76 gets truncated", input: strings.Repeat("a", 76), want: strings.Repeat("a", 72) + "..."},
		{name: "long", input: strings.Repeat("b", 200), want: strings.Repeat("b", 72) + "..."},
		{name: "multibyte runes", input: strings.Repeat("问", 76), want: strings.Repeat("问", 72) + "..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TruncateLabel(tt.input); got != tt.want {
				t.Errorf("TruncateLabel() = %q, want %q", got, tt.want)
			}
		})
	}
}

func seedPublished(t *testing.T, repos *repository.Repositories, f *model.PublishedFAQ, channels ...string) *model.PublishedFAQ {
	t.Helper()
	if err := repos.DB.Create(f).Error; err != nil {
		t.Fatalf("failed to seed published FAQ: %v", err)
	}
	for _, c := range channels {
		b := &model.PublishedFAQChannel{FAQID: f.ID, ChannelID: c}
		if err := repos.DB.Create(b).Error; err != nil {
			t.Fatalf("failed to seed binding: %v", err)
		}
	}
	return f
}

func TestDatabaseSource_TriggerMode(t *testing.T) {
	db := testutil.NewTestDB(t)
	repos := repository.NewRepositories(db)
	source := NewDatabaseSource(repos, config.ResolveModeTrigger)
	ctx := context.Background()

	seedPublished(t, repos, &model.PublishedFAQ{Question: "How do I deploy?", Answer: "Use the pipeline."}, "C1")
	seedPublished(t, repos, &model.PublishedFAQ{Question: "Empty one", Answer: "   "}, "C1")

	t.Run("exact match", func(t *testing.T) {
		res, err := source.Resolve(ctx, "C1", "How do I deploy?")
		if err != nil {
			t.Fatalf("Resolve() failed: %v", err)
		}
		if res.Outcome != OutcomeFound || res.Answer != "Use the pipeline." {
			t.Fatalf("Resolve() = %+v", res)
		}
	})

	t.Run("not visible in other channel", func(t *testing.T) {
		res, err := source.Resolve(ctx, "C2", "How do I deploy?")
		if err != nil {
			t.Fatalf("Resolve() failed: %v", err)
		}
		if res.Outcome != OutcomeTriggerNotFound {
			t.Fatalf("Resolve() outcome = %v, want trigger not found", res.Outcome)
		}
	})

	t.Run("no match", func(t *testing.T) {
		res, err := source.Resolve(ctx, "C1", "how do i deploy")
		if err != nil {
			t.Fatalf("Resolve() failed: %v", err)
		}
		if res.Outcome != OutcomeTriggerNotFound {
			t.Fatalf("Resolve() outcome = %v, want trigger not found", res.Outcome)
		}
	})

	t.Run("answer missing", func(t *testing.T) {
		res, err := source.Resolve(ctx, "C1", "Empty one")
		if err != nil {
			t.Fatalf("Resolve() failed: %v", err)
		}
		if res.Outcome != OutcomeAnswerMissing || res.Question != "Empty one" {
			t.Fatalf("Resolve() = %+v", res)
		}
	})

	t.Run("blank trigger", func(t *testing.T) {
		res, err := source.Resolve(ctx, "C1", "   ")
		if err != nil {
			t.Fatalf("Resolve() failed: %v", err)
		}
		if res.Outcome != OutcomeTriggerNotFound {
			t.Fatalf("Resolve() outcome = %v, want trigger not found", res.Outcome)
		}
	})
}

func TestDatabaseSource_SelectMode(t *testing.T) {
	db := testutil.NewTestDB(t)
	repos := repository.NewRepositories(db)
	source := NewDatabaseSource(repos, config.ResolveModeSelect)
	ctx := context.Background()

	bound := seedPublished(t, repos, &model.PublishedFAQ{Question: "Bound", Answer: "B"}, "C1")
	global := seedPublished(t, repos, &model.PublishedFAQ{Question: "Global", Answer: "G", IsGlobal: true})

	t.Run("by id in bound channel", func(t *testing.T) {
		res, err := source.Resolve(ctx, "C1", strconv.FormatUint(uint64(bound.ID), 10))
		if err != nil {
			t.Fatalf("Resolve() failed: %v", err)
		}
		if res.Outcome != OutcomeFound || res.Question != "Bound" {
			t.Fatalf("Resolve() = %+v", res)
		}
	})

	t.Run("by id outside bound channel", func(t *testing.T) {
		res, err := source.Resolve(ctx, "C2", strconv.FormatUint(uint64(bound.ID), 10))
		if err != nil {
			t.Fatalf("Resolve() failed: %v", err)
		}
		if res.Outcome != OutcomeTriggerNotFound {
			t.Fatalf("Resolve() outcome = %v, want trigger not found", res.Outcome)
		}
	})

	t.Run("global visible anywhere", func(t *testing.T) {
		res, err := source.Resolve(ctx, "C999", strconv.FormatUint(uint64(global.ID), 10))
		if err != nil {
			t.Fatalf("Resolve() failed: %v", err)
		}
		if res.Outcome != OutcomeFound || res.Question != "Global" {
			t.Fatalf("Resolve() = %+v", res)
		}
	})

	t.Run("non-numeric selection", func(t *testing.T) {
		res, err := source.Resolve(ctx, "C1", "not-a-number")
		if err != nil {
			t.Fatalf("Resolve() failed: %v", err)
		}
		if res.Outcome != OutcomeTriggerNotFound {
			t.Fatalf("Resolve() outcome = %v, want trigger not found", res.Outcome)
		}
	})
}

func TestDatabaseSource_OptionsOrder(t *testing.T) {
	db := testutil.NewTestDB(t)
	repos := repository.NewRepositories(db)
	source := NewDatabaseSource(repos, config.ResolveModeSelect)

	first := seedPublished(t, repos, &model.PublishedFAQ{Question: "first", Answer: "1"}, "C1")
	second := seedPublished(t, repos, &model.PublishedFAQ{Question: "second", Answer: "2", IsGlobal: true})

	options, err := source.Options(context.Background(), "C1")
	if err != nil {
		t.Fatalf("Options() failed: %v", err)
	}
	if len(options) != 2 {
		t.Fatalf("options = %+v, want 2 entries", options)
	}
	if options[0].Value != strconv.FormatUint(uint64(first.ID), 10) ||
		options[1].Value != strconv.FormatUint(uint64(second.ID), 10) {
		t.Fatalf("options out of order: %+v", options)
	}
}
