package memlib

import (
	"fmt"

	"github.com/robert-malhotra/go-hdf4/internal/sdlib"
)

type vgroupHandle struct {
	file *fileHandle
	vg   *vgroup
}

// VStart initializes the V interface for an open file.
func (l *Lib) VStart(id sdlib.FileID) error {
	f, err := l.file(id)
	if err != nil {
		return err
	}
	f.vStarted = true
	return nil
}

// VEnd shuts the V interface down.
func (l *Lib) VEnd(id sdlib.FileID) error {
	f, err := l.file(id)
	if err != nil {
		return err
	}
	f.vStarted = false
	return nil
}

func (l *Lib) vFile(id sdlib.FileID) (*fileHandle, error) {
	f, err := l.file(id)
	if err != nil {
		return nil, err
	}
	if !f.vStarted {
		return nil, fmt.Errorf("V interface not started on %s: %w", f.path, sdlib.ErrFail)
	}
	return f, nil
}

// VAttach attaches to an existing Vgroup by reference number, or creates
// a new one when ref is FAIL.
func (l *Lib) VAttach(id sdlib.FileID, ref int32, mode sdlib.AccessMode) (sdlib.VGroupID, error) {
	f, err := l.vFile(id)
	if err != nil {
		return sdlib.VGroupID(sdlib.FAIL), err
	}

	var vg *vgroup
	if ref == sdlib.FAIL {
		if !f.mode.Writable() || !mode.Writable() {
			return sdlib.VGroupID(sdlib.FAIL), fmt.Errorf("file %s is read-only: %w", f.path, sdlib.ErrFail)
		}
		vg = &vgroup{Ref: f.c.ref()}
		f.c.VGroups = append(f.c.VGroups, vg)
		f.dirty = true
	} else {
		for _, g := range f.c.VGroups {
			if g.Ref == ref {
				vg = g
				break
			}
		}
		if vg == nil {
			return sdlib.VGroupID(sdlib.FAIL), fmt.Errorf("no vgroup with ref %d: %w", ref, sdlib.ErrFail)
		}
	}

	vgID := sdlib.VGroupID(l.id())
	l.vgroups[vgID] = &vgroupHandle{file: f, vg: vg}
	return vgID, nil
}

// VDetach releases a Vgroup handle.
func (l *Lib) VDetach(vg sdlib.VGroupID) error {
	if _, err := l.vgroup(vg); err != nil {
		return err
	}
	delete(l.vgroups, vg)
	return nil
}

// VRef reports the reference number of an attached Vgroup.
func (l *Lib) VRef(vg sdlib.VGroupID) (int32, error) {
	h, err := l.vgroup(vg)
	if err != nil {
		return sdlib.FAIL, err
	}
	return h.vg.Ref, nil
}

// VName reports a Vgroup's name.
func (l *Lib) VName(vg sdlib.VGroupID) (string, error) {
	h, err := l.vgroup(vg)
	if err != nil {
		return "", err
	}
	return h.vg.Name, nil
}

// VSetName sets a Vgroup's name.
func (l *Lib) VSetName(vg sdlib.VGroupID, name string) error {
	h, err := l.writableVgroup(vg)
	if err != nil {
		return err
	}
	h.vg.Name = name
	h.file.dirty = true
	return nil
}

// VClass reports a Vgroup's class string.
func (l *Lib) VClass(vg sdlib.VGroupID) (string, error) {
	h, err := l.vgroup(vg)
	if err != nil {
		return "", err
	}
	return h.vg.Class, nil
}

// VSetClass sets a Vgroup's class string.
func (l *Lib) VSetClass(vg sdlib.VGroupID, class string) error {
	h, err := l.writableVgroup(vg)
	if err != nil {
		return err
	}
	h.vg.Class = class
	h.file.dirty = true
	return nil
}

// VTagRefs enumerates the Vgroup's members in insertion order.
func (l *Lib) VTagRefs(vg sdlib.VGroupID) ([]sdlib.TagRef, error) {
	h, err := l.vgroup(vg)
	if err != nil {
		return nil, err
	}
	return append([]sdlib.TagRef(nil), h.vg.Members...), nil
}

// VInsert appends a member to the Vgroup.
func (l *Lib) VInsert(vg sdlib.VGroupID, member sdlib.TagRef) error {
	h, err := l.writableVgroup(vg)
	if err != nil {
		return err
	}
	for _, m := range h.vg.Members {
		if m == member {
			return fmt.Errorf("member (tag=%d, ref=%d) already in vgroup %d: %w",
				member.Tag, member.Ref, h.vg.Ref, sdlib.ErrFail)
		}
	}
	h.vg.Members = append(h.vg.Members, member)
	h.file.dirty = true
	return nil
}

// VLone reports the reference numbers of Vgroups that are not a member of
// any other Vgroup.
func (l *Lib) VLone(id sdlib.FileID) ([]int32, error) {
	f, err := l.vFile(id)
	if err != nil {
		return nil, err
	}
	contained := make(map[int32]bool)
	for _, g := range f.c.VGroups {
		for _, m := range g.Members {
			if m.Tag == sdlib.TagVGroup {
				contained[m.Ref] = true
			}
		}
	}
	var lone []int32
	for _, g := range f.c.VGroups {
		if !contained[g.Ref] {
			lone = append(lone, g.Ref)
		}
	}
	return lone, nil
}

func (l *Lib) vgroup(vg sdlib.VGroupID) (*vgroupHandle, error) {
	h, ok := l.vgroups[vg]
	if !ok {
		return nil, fmt.Errorf("invalid vgroup handle %d: %w", vg, sdlib.ErrFail)
	}
	return h, nil
}

func (l *Lib) writableVgroup(vg sdlib.VGroupID) (*vgroupHandle, error) {
	h, err := l.vgroup(vg)
	if err != nil {
		return nil, err
	}
	if !h.file.mode.Writable() {
		return nil, fmt.Errorf("file %s is read-only: %w", h.file.path, sdlib.ErrFail)
	}
	return h, nil
}
