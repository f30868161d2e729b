package hdf4

import (
	"fmt"

	"github.com/robert-malhotra/go-hdf4/internal/sdlib"
)

// Object tags used in Vgroup membership lists.
const (
	TagVGroup = sdlib.TagVGroup
	TagVData  = sdlib.TagVData
	TagSDS    = sdlib.TagSDS
)

// TagRef identifies one member of a Vgroup.
type TagRef = sdlib.TagRef

// VGroup is an attached Vgroup: a named, classed, ordered collection of
// references to other objects in the file. The handle stays attached
// until Detach or the owning File's Close.
type VGroup struct {
	file *File
	id   sdlib.VGroupID
	ref  int32
}

// ensureV lazily initializes the V interface for the file.
func (f *File) ensureV() error {
	if f.closed {
		return ErrClosed
	}
	if f.vStarted {
		return nil
	}
	if err := f.lib.VStart(f.id); err != nil {
		return fmt.Errorf("starting V interface: %w: %w", err, ErrOpen)
	}
	f.vStarted = true
	return nil
}

func (f *File) vMode() sdlib.AccessMode {
	if f.writable {
		return sdlib.ReadWrite
	}
	return sdlib.ReadOnly
}

// CreateVGroup creates a new Vgroup with the given name and class.
func (f *File) CreateVGroup(name, class string) (*VGroup, error) {
	if err := f.ensureV(); err != nil {
		return nil, err
	}
	if !f.writable {
		return nil, ErrReadOnly
	}
	id, err := f.lib.VAttach(f.id, sdlib.FAIL, sdlib.ReadWrite)
	if err != nil {
		return nil, fmt.Errorf("creating vgroup %q: %w: %w", name, err, ErrWrite)
	}
	vg := &VGroup{file: f, id: id}
	f.vgroups[id] = struct{}{}
	fail := func(err error) (*VGroup, error) {
		vg.Detach()
		return nil, fmt.Errorf("creating vgroup %q: %w: %w", name, err, ErrWrite)
	}
	if err := f.lib.VSetName(id, name); err != nil {
		return fail(err)
	}
	if class != "" {
		if err := f.lib.VSetClass(id, class); err != nil {
			return fail(err)
		}
	}
	ref, err := f.lib.VRef(id)
	if err != nil {
		return fail(err)
	}
	vg.ref = ref
	return vg, nil
}

// VGroup attaches to an existing Vgroup by reference number.
func (f *File) VGroup(ref int32) (*VGroup, error) {
	if err := f.ensureV(); err != nil {
		return nil, err
	}
	id, err := f.lib.VAttach(f.id, ref, f.vMode())
	if err != nil {
		return nil, fmt.Errorf("vgroup %d: %w: %w", ref, err, ErrNotFound)
	}
	f.vgroups[id] = struct{}{}
	return &VGroup{file: f, id: id, ref: ref}, nil
}

// LoneVGroups returns the reference numbers of Vgroups that are not a
// member of any other Vgroup: the roots of the grouping hierarchy.
func (f *File) LoneVGroups() ([]int32, error) {
	if err := f.ensureV(); err != nil {
		return nil, err
	}
	refs, err := f.lib.VLone(f.id)
	if err != nil {
		return nil, fmt.Errorf("lone vgroups: %w: %w", err, ErrQuery)
	}
	return refs, nil
}

// Ref returns the Vgroup's reference number.
func (g *VGroup) Ref() int32 {
	return g.ref
}

// Name returns the Vgroup's name.
func (g *VGroup) Name() (string, error) {
	name, err := g.file.lib.VName(g.id)
	if err != nil {
		return "", fmt.Errorf("vgroup %d name: %w: %w", g.ref, err, ErrQuery)
	}
	return name, nil
}

// SetName renames the Vgroup.
func (g *VGroup) SetName(name string) error {
	if !g.file.writable {
		return ErrReadOnly
	}
	if err := g.file.lib.VSetName(g.id, name); err != nil {
		return fmt.Errorf("naming vgroup %d: %w: %w", g.ref, err, ErrWrite)
	}
	return nil
}

// Class returns the Vgroup's class string.
func (g *VGroup) Class() (string, error) {
	class, err := g.file.lib.VClass(g.id)
	if err != nil {
		return "", fmt.Errorf("vgroup %d class: %w: %w", g.ref, err, ErrQuery)
	}
	return class, nil
}

// SetClass sets the Vgroup's class string.
func (g *VGroup) SetClass(class string) error {
	if !g.file.writable {
		return ErrReadOnly
	}
	if err := g.file.lib.VSetClass(g.id, class); err != nil {
		return fmt.Errorf("classing vgroup %d: %w: %w", g.ref, err, ErrWrite)
	}
	return nil
}

// Members returns the Vgroup's membership list in insertion order.
func (g *VGroup) Members() ([]TagRef, error) {
	members, err := g.file.lib.VTagRefs(g.id)
	if err != nil {
		return nil, fmt.Errorf("vgroup %d members: %w: %w", g.ref, err, ErrQuery)
	}
	return members, nil
}

// Insert appends an arbitrary tag/ref member to the Vgroup.
func (g *VGroup) Insert(member TagRef) error {
	if !g.file.writable {
		return ErrReadOnly
	}
	if err := g.file.lib.VInsert(g.id, member); err != nil {
		return fmt.Errorf("inserting into vgroup %d: %w: %w", g.ref, err, ErrWrite)
	}
	return nil
}

// AddVGroup makes child a member of the Vgroup.
func (g *VGroup) AddVGroup(child *VGroup) error {
	return g.Insert(TagRef{Tag: TagVGroup, Ref: child.ref})
}

// AddVData makes vd a member of the Vgroup.
func (g *VGroup) AddVData(vd *VData) error {
	return g.Insert(TagRef{Tag: TagVData, Ref: vd.ref})
}

// AddDataset makes ds a member of the Vgroup.
func (g *VGroup) AddDataset(ds *Dataset) error {
	return g.Insert(TagRef{Tag: TagSDS, Ref: ds.ref})
}

// Detach releases the Vgroup handle. The VGroup must not be used
// afterwards. Handles never detached are released by the file's Close.
func (g *VGroup) Detach() error {
	if _, ok := g.file.vgroups[g.id]; !ok {
		return nil
	}
	delete(g.file.vgroups, g.id)
	if err := g.file.lib.VDetach(g.id); err != nil {
		return fmt.Errorf("detaching vgroup %d: %w: %w", g.ref, err, ErrWrite)
	}
	return nil
}
