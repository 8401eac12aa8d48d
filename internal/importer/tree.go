package importer

import (
	"strings"

	"github.com/kolah/oacollect/internal/collection"
	"github.com/pb33f/libopenapi/orderedmap"
)

// Folder is a node of the path tree. The tree root has no name; it holds
// the top-level folders and the operations on "/".
type Folder struct {
	Name       string
	SubFolders *orderedmap.Map[string, *Folder]
	Requests   []Operation
}

func newFolder(name string) *Folder {
	return &Folder{Name: name, SubFolders: orderedmap.New[string, *Folder]()}
}

func (f *Folder) child(name string) *Folder {
	if sub, ok := f.SubFolders.Get(name); ok {
		return sub
	}
	sub := newFolder(name)
	f.SubFolders.Set(name, sub)
	return sub
}

func pathSegments(path string) []string {
	var segments []string
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	return segments
}

// BuildFolderTree groups operations by path segment. Every segment but the
// last becomes a folder; the operation is filed under a folder named after
// the last segment. Folders with the same name at the same level merge and
// keep first-seen order.
func BuildFolderTree(ops []Operation) *Folder {
	root := newFolder("")
	for _, op := range ops {
		segments := pathSegments(op.Path)
		if len(segments) == 0 {
			root.Requests = append(root.Requests, op)
			continue
		}
		cur := root
		for _, seg := range segments {
			cur = cur.child(seg)
		}
		cur.Requests = append(cur.Requests, op)
	}
	return root
}

// flatten converts a folder's contents into collection items: its requests
// first, then its subfolders depth-first.
func (im *Importer) flatten(f *Folder) ([]collection.Item, error) {
	items := make([]collection.Item, 0, len(f.Requests)+f.SubFolders.Len())
	for _, op := range f.Requests {
		item, err := im.transformOperation(op)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	for name, sub := range f.SubFolders.FromOldest() {
		children, err := im.flatten(sub)
		if err != nil {
			return nil, err
		}
		items = append(items, collection.Item{
			UID:   im.newUID(),
			Name:  name,
			Type:  collection.ItemTypeFolder,
			Items: children,
		})
	}
	return items, nil
}
