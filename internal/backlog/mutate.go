package backlog

import "github.com/felixgeelhaar/specflow/internal/domain"

// ItemPatch carries the editable fields of an item. Nil fields are left alone.
// Type is not editable, which keeps the stories/tasks partition intact.
type ItemPatch struct {
	Title       *string
	Description *string
	Priority    *domain.Priority
	Component   *domain.Component
	Phase       *domain.Phase
}

// IsEmpty reports whether the patch changes nothing.
func (p ItemPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Priority == nil &&
		p.Component == nil && p.Phase == nil
}

func (p ItemPatch) apply(item Item) Item {
	if p.Title != nil {
		item.Title = *p.Title
	}
	if p.Description != nil {
		item.Description = *p.Description
	}
	if p.Priority != nil {
		item.Priority = *p.Priority
	}
	if p.Component != nil {
		item.Component = *p.Component
	}
	if p.Phase != nil {
		item.Phase = *p.Phase
	}
	return item
}

// FindItem returns the item with id from either partition.
func (s *Spec) FindItem(id string) (Item, bool) {
	for _, item := range s.Combined() {
		if item.ID == id {
			return item, true
		}
	}
	return Item{}, false
}

// FindRisk returns the risk with id.
func (s *Spec) FindRisk(id string) (Risk, bool) {
	for _, risk := range s.Risks {
		if risk.ID == id {
			return risk, true
		}
	}
	return Risk{}, false
}

// WithItemUpdated returns a copy of s with the patch applied to item id.
// When id is unknown it returns s unchanged and false.
func (s *Spec) WithItemUpdated(id string, patch ItemPatch) (*Spec, bool) {
	if _, ok := s.FindItem(id); !ok {
		return s, false
	}

	next := s.Clone()
	for i := range next.Stories {
		if next.Stories[i].ID == id {
			next.Stories[i] = patch.apply(next.Stories[i])
		}
	}
	for i := range next.Tasks {
		if next.Tasks[i].ID == id {
			next.Tasks[i] = patch.apply(next.Tasks[i])
		}
	}
	return next, true
}

// WithItemDeleted returns a copy of s without item id.
// When id is unknown it returns s unchanged and false.
func (s *Spec) WithItemDeleted(id string) (*Spec, bool) {
	if _, ok := s.FindItem(id); !ok {
		return s, false
	}

	next := s.Clone()
	next.Stories = without(next.Stories, id)
	next.Tasks = without(next.Tasks, id)
	return next, true
}

// WithItemMoved moves source to the position target occupied in the combined
// order, then re-splits the sequence by type. Moving an item onto itself, or
// naming an unknown item, is a no-op that returns s and false.
func (s *Spec) WithItemMoved(sourceID, targetID string) (*Spec, bool) {
	if sourceID == "" || sourceID == targetID {
		return s, false
	}

	combined := s.Combined()
	sourceIdx, targetIdx := -1, -1
	for i, item := range combined {
		switch item.ID {
		case sourceID:
			sourceIdx = i
		case targetID:
			targetIdx = i
		}
	}
	if sourceIdx == -1 || targetIdx == -1 {
		return s, false
	}

	moved := combined[sourceIdx]
	rest := append(combined[:sourceIdx:sourceIdx], combined[sourceIdx+1:]...)

	reordered := make([]Item, 0, len(combined))
	reordered = append(reordered, rest[:targetIdx]...)
	reordered = append(reordered, moved)
	reordered = append(reordered, rest[targetIdx:]...)

	next := s.Clone()
	next.Stories, next.Tasks = splitByType(reordered)
	return next, true
}

// WithRiskText returns a copy of s with the text of risk id replaced.
// When id is unknown it returns s unchanged and false.
func (s *Spec) WithRiskText(id, text string) (*Spec, bool) {
	if _, ok := s.FindRisk(id); !ok {
		return s, false
	}

	next := s.Clone()
	for i := range next.Risks {
		if next.Risks[i].ID == id {
			next.Risks[i].Text = text
		}
	}
	return next, true
}

func without(items []Item, id string) []Item {
	out := make([]Item, 0, len(items))
	for _, item := range items {
		if item.ID != id {
			out = append(out, item)
		}
	}
	return out
}

func splitByType(items []Item) (stories, tasks []Item) {
	stories = make([]Item, 0, len(items))
	tasks = make([]Item, 0, len(items))
	for _, item := range items {
		switch item.Type {
		case domain.ItemTypeStory:
			stories = append(stories, item)
		case domain.ItemTypeTask:
			tasks = append(tasks, item)
		}
	}
	return stories, tasks
}
