package backlog

import "github.com/felixgeelhaar/specflow/internal/domain"

// Patch is a field-level shallow replacement for a stored Spec. Nil fields are
// left untouched; a non-nil slice pointer replaces the whole slice. ID and
// CreatedAt are identity and cannot be patched.
type Patch struct {
	Template    *domain.Template
	Goal        *string
	TargetUsers *string
	Constraints *string
	FeatureName *string
	Stories     *[]Item
	Tasks       *[]Item
	Risks       *[]Risk
}

// ContentPatch builds a patch that replaces the item and risk collections of
// a stored spec with those of s.
func ContentPatch(s *Spec) Patch {
	stories := append([]Item(nil), s.Stories...)
	tasks := append([]Item(nil), s.Tasks...)
	risks := append([]Risk(nil), s.Risks...)
	return Patch{
		Stories: &stories,
		Tasks:   &tasks,
		Risks:   &risks,
	}
}

// Apply returns a copy of s with the patch merged in.
func (p Patch) Apply(s *Spec) *Spec {
	next := s.Clone()
	if p.Template != nil {
		next.Template = *p.Template
	}
	if p.Goal != nil {
		next.Goal = *p.Goal
	}
	if p.TargetUsers != nil {
		next.TargetUsers = *p.TargetUsers
	}
	if p.Constraints != nil {
		next.Constraints = *p.Constraints
	}
	if p.FeatureName != nil {
		next.FeatureName = *p.FeatureName
	}
	if p.Stories != nil {
		next.Stories = append([]Item(nil), (*p.Stories)...)
	}
	if p.Tasks != nil {
		next.Tasks = append([]Item(nil), (*p.Tasks)...)
	}
	if p.Risks != nil {
		next.Risks = append([]Risk(nil), (*p.Risks)...)
	}
	return next
}
