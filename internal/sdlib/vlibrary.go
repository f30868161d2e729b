package sdlib

// Object tags used in Vgroup membership lists.
const (
	TagVGroup int32 = 1965 // DFTAG_VG
	TagVData  int32 = 1962 // DFTAG_VH
	TagSDS    int32 = 720  // DFTAG_NDG
)

// TagRef identifies one member of a Vgroup: an object tag plus the
// object's reference number within the file.
type TagRef struct {
	Tag int32
	Ref int32
}

// VField describes one field of a Vdata record: a name, an element type
// and an order (the number of elements of that type per record).
type VField struct {
	Name  string
	Type  TypeCode
	Order int
}

// RecordSize returns the byte size one record contributes for this field.
func (f VField) RecordSize() int {
	order := f.Order
	if order < 1 {
		order = 1
	}
	return f.Type.Size() * order
}

// VLibrary is the V/VS call surface of the external HDF4 library: a
// hierarchical-grouping interface parallel to the SD one. The binding
// forwards to it without interpretation.
type VLibrary interface {
	// VStart initializes the V interface for an open file. Must be called
	// before any other V/VS call and balanced by VEnd.
	VStart(id FileID) error
	// VEnd shuts the V interface down for the file.
	VEnd(id FileID) error

	// VAttach attaches to the Vgroup with the given reference number, or
	// creates a new one when ref is FAIL.
	VAttach(id FileID, ref int32, mode AccessMode) (VGroupID, error)
	// VDetach releases a Vgroup handle.
	VDetach(vg VGroupID) error
	// VRef reports the reference number of an attached Vgroup.
	VRef(vg VGroupID) (int32, error)
	// VName and VSetName get and set a Vgroup's name.
	VName(vg VGroupID) (string, error)
	VSetName(vg VGroupID, name string) error
	// VClass and VSetClass get and set a Vgroup's class string.
	VClass(vg VGroupID) (string, error)
	VSetClass(vg VGroupID, class string) error
	// VTagRefs enumerates the Vgroup's members in insertion order.
	VTagRefs(vg VGroupID) ([]TagRef, error)
	// VInsert appends a member to the Vgroup.
	VInsert(vg VGroupID, member TagRef) error
	// VLone reports the reference numbers of Vgroups that are not a member
	// of any other Vgroup.
	VLone(id FileID) ([]int32, error)

	// VSAttach attaches to the Vdata with the given reference number, or
	// creates a new one when ref is FAIL.
	VSAttach(id FileID, ref int32, mode AccessMode) (VDataID, error)
	// VSDetach releases a Vdata handle.
	VSDetach(vd VDataID) error
	// VSRef reports the reference number of an attached Vdata.
	VSRef(vd VDataID) (int32, error)
	// VSName and VSSetName get and set a Vdata's name.
	VSName(vd VDataID) (string, error)
	VSSetName(vd VDataID, name string) error
	// VSClass and VSSetClass get and set a Vdata's class string.
	VSClass(vd VDataID) (string, error)
	VSSetClass(vd VDataID, class string) error
	// VSSetFields defines the record layout. Must precede the first write
	// and cannot be redefined afterwards.
	VSSetFields(vd VDataID, fields []VField) error
	// VSFields reports the record layout.
	VSFields(vd VDataID) ([]VField, error)
	// VSWrite appends n records supplied as packed field-interlaced bytes
	// and returns the number written.
	VSWrite(vd VDataID, records []byte, n int) (int, error)
	// VSRead reads up to n records from the current position and returns
	// the packed bytes plus the number read.
	VSRead(vd VDataID, n int) ([]byte, int, error)
	// VSCount reports the number of records stored.
	VSCount(vd VDataID) (int, error)
}

// RecordSize returns the packed byte size of one record with the given
// field layout.
func RecordSize(fields []VField) int {
	size := 0
	for _, f := range fields {
		size += f.RecordSize()
	}
	return size
}
