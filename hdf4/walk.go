package hdf4

// Member is one object encountered during a Walk: its tag/ref identity
// plus an attached handle for the duration of the callback. Exactly one
// of Group, Data and Dataset is set for the known tags; all are nil for
// a foreign tag.
type Member struct {
	Tag int32
	Ref int32

	Group   *VGroup
	Data    *VData
	Dataset *Dataset
}

// WalkFunc visits one object during a Walk. path is the slash-joined
// chain of Vgroup names from a hierarchy root down to the object. The
// handles in m are valid only until the callback returns; re-attach by
// reference number to keep one.
type WalkFunc func(path string, m Member) error

// Walk traverses the Vgroup hierarchy depth-first, starting from the
// lone Vgroups, and calls fn for every Vgroup, Vdata and dataset member
// encountered. A Vgroup reached through several parents is visited at
// each place but descended into only once. A non-nil error from fn stops
// the walk.
func (f *File) Walk(fn WalkFunc) error {
	roots, err := f.LoneVGroups()
	if err != nil {
		return err
	}
	visited := make(map[int32]bool)
	for _, ref := range roots {
		if err := f.walkGroup(ref, "", fn, visited); err != nil {
			return err
		}
	}
	return nil
}

func (f *File) walkGroup(ref int32, parent string, fn WalkFunc, visited map[int32]bool) error {
	g, err := f.VGroup(ref)
	if err != nil {
		return err
	}
	defer g.Detach()

	name, err := g.Name()
	if err != nil {
		return err
	}
	path := parent + "/" + name
	if err := fn(path, Member{Tag: TagVGroup, Ref: ref, Group: g}); err != nil {
		return err
	}
	if visited[ref] {
		return nil
	}
	visited[ref] = true

	members, err := g.Members()
	if err != nil {
		return err
	}
	for _, tr := range members {
		switch tr.Tag {
		case TagVGroup:
			if err := f.walkGroup(tr.Ref, path, fn, visited); err != nil {
				return err
			}
		case TagVData:
			if err := f.walkVData(tr.Ref, path, fn); err != nil {
				return err
			}
		case TagSDS:
			m := Member{Tag: tr.Tag, Ref: tr.Ref, Dataset: f.catalog.byRef[tr.Ref]}
			leaf := path
			if m.Dataset != nil {
				leaf = path + "/" + m.Dataset.Name()
			}
			if err := fn(leaf, m); err != nil {
				return err
			}
		default:
			if err := fn(path, Member{Tag: tr.Tag, Ref: tr.Ref}); err != nil {
				return err
			}
		}
	}
	return nil
}

func (f *File) walkVData(ref int32, parent string, fn WalkFunc) error {
	vd, err := f.VData(ref)
	if err != nil {
		return err
	}
	defer vd.Detach()
	name, err := vd.Name()
	if err != nil {
		return err
	}
	return fn(parent+"/"+name, Member{Tag: TagVData, Ref: ref, Data: vd})
}
