package importer

import (
	"strings"

	"github.com/kolah/oacollect/internal/collection"
	"github.com/pb33f/libopenapi/orderedmap"
)

// groupByTags files each operation under its first tag, trimmed. Operations
// without a usable tag are returned separately.
func groupByTags(ops []Operation) (*orderedmap.Map[string, []Operation], []Operation) {
	groups := orderedmap.New[string, []Operation]()
	var ungrouped []Operation
	for _, op := range ops {
		tags := op.Object.Get("tags")
		if len(tags.Elems()) == 0 {
			ungrouped = append(ungrouped, op)
			continue
		}
		tag := strings.TrimSpace(tags.Elems()[0].Text())
		if tag == "" {
			ungrouped = append(ungrouped, op)
			continue
		}
		existing, _ := groups.Get(tag)
		groups.Set(tag, append(existing, op))
	}
	return groups, ungrouped
}

// itemsByTags lays out one folder per tag followed by the untagged requests.
func (im *Importer) itemsByTags(ops []Operation) ([]collection.Item, error) {
	groups, ungrouped := groupByTags(ops)

	items := make([]collection.Item, 0, groups.Len()+len(ungrouped))
	for tag, tagged := range groups.FromOldest() {
		folder := collection.Item{
			UID:   im.newUID(),
			Name:  tag,
			Type:  collection.ItemTypeFolder,
			Items: make([]collection.Item, 0, len(tagged)),
		}
		for _, op := range tagged {
			item, err := im.transformOperation(op)
			if err != nil {
				return nil, err
			}
			folder.Items = append(folder.Items, item)
		}
		items = append(items, folder)
	}
	for _, op := range ungrouped {
		item, err := im.transformOperation(op)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}
