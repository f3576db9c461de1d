package generator

import (
	"testing"

	"pgregory.net/rapid"

	"github.com/felixgeelhaar/specflow/internal/backlog"
	"github.com/felixgeelhaar/specflow/internal/domain"
)

type shape struct {
	Type      domain.ItemType
	Title     string
	Priority  domain.Priority
	Component domain.Component
	Phase     domain.Phase
}

func shapes(items []backlog.Item) []shape {
	out := make([]shape, len(items))
	for i, item := range items {
		out[i] = shape{item.Type, item.Title, item.Priority, item.Component, item.Phase}
	}
	return out
}

var vocabulary = []string{
	"search", "upload", "team", "data", "legacy", "api", "mobile", "save",
	"gdpr", "fast", "secure", "wcag", "login", "dashboard", "Admin", "guest",
	"real-time", "payment", "invite", "notify", "the", "a",
}

func genText() *rapid.Generator[string] {
	return rapid.Custom(func(t *rapid.T) string {
		words := rapid.SliceOfN(rapid.SampledFrom(vocabulary), 0, 8).Draw(t, "words")
		text := ""
		for i, w := range words {
			if i > 0 {
				text += " "
			}
			text += w
		}
		return text
	})
}

func genInput() *rapid.Generator[Input] {
	return rapid.Custom(func(t *rapid.T) Input {
		return Input{
			Goal:        genText().Draw(t, "goal"),
			TargetUsers: genText().Draw(t, "users"),
			Constraints: genText().Draw(t, "constraints"),
			Template:    rapid.SampledFrom(append([]domain.Template{"unknown"}, domain.Templates...)).Draw(t, "template"),
		}
	})
}

// Two runs over the same input agree on everything except ids and timestamps.
func TestGenerate_Deterministic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		in := genInput().Draw(t, "input")

		a := NewEngine(SystemIdentity{}).Generate(in)
		b := NewEngine(SystemIdentity{}).Generate(in)

		if len(a.Stories) != len(b.Stories) || len(a.Tasks) != len(b.Tasks) || len(a.Risks) != len(b.Risks) {
			t.Fatalf("collection sizes differ: %v vs %v", counts(a), counts(b))
		}
		sa, sb := shapes(a.Combined()), shapes(b.Combined())
		for i := range sa {
			if sa[i] != sb[i] {
				t.Fatalf("item %d differs: %+v vs %+v", i, sa[i], sb[i])
			}
		}
		for i := range a.Risks {
			if a.Risks[i].Type != b.Risks[i].Type || a.Risks[i].Text != b.Risks[i].Text {
				t.Fatalf("risk %d differs", i)
			}
		}
	})
}

func TestGenerate_PartitionAndBounds(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		spec := NewEngine(nil).Generate(genInput().Draw(t, "input"))

		for _, s := range spec.Stories {
			if s.Type != domain.ItemTypeStory {
				t.Fatalf("non-story %q in stories", s.Title)
			}
		}
		for _, task := range spec.Tasks {
			if task.Type != domain.ItemTypeTask {
				t.Fatalf("non-task %q in tasks", task.Title)
			}
		}
		if len(spec.Tasks) < 16 {
			t.Fatalf("expected at least the 16 baseline tasks, got %d", len(spec.Tasks))
		}
		if len(spec.Stories) < 5 {
			t.Fatalf("expected at least 5 stories, got %d", len(spec.Stories))
		}
		if spec.Risks[len(spec.Risks)-1].Text != capacityRisk.Text {
			t.Fatalf("capacity assumption must close the risk list")
		}
		if spec.Stories[0].Priority != domain.PriorityHigh || spec.Tasks[0].Priority != domain.PriorityHigh {
			t.Fatalf("first item of each collection must be high priority")
		}
	})
}

func counts(s *backlog.Spec) [3]int {
	st, ta, ri := s.Counts()
	return [3]int{st, ta, ri}
}
