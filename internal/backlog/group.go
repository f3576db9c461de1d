package backlog

import "github.com/felixgeelhaar/specflow/internal/domain"

// OtherGroup is the bucket for items with no value on the grouping dimension.
const OtherGroup = "other"

// Group is one bucket of items sharing a value on the grouping dimension.
type Group struct {
	Key   string
	Items []Item
}

// GroupItems buckets items by dim. Groups appear in the order their key is
// first seen, and items keep their relative order inside a group.
func GroupItems(items []Item, dim domain.GroupBy) []Group {
	var groups []Group
	index := make(map[string]int)

	for _, item := range items {
		key := groupKey(item, dim)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, Group{Key: key})
		}
		groups[i].Items = append(groups[i].Items, item)
	}
	return groups
}

func groupKey(item Item, dim domain.GroupBy) string {
	var key string
	switch dim {
	case domain.GroupByType:
		key = string(item.Type)
	case domain.GroupByPriority:
		key = string(item.Priority)
	case domain.GroupByComponent:
		key = string(item.Component)
	case domain.GroupByPhase:
		key = string(item.Phase)
	}
	if key == "" {
		return OtherGroup
	}
	return key
}
