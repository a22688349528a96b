package gui

// undoRecord is one reversible edit: at pos, deleted was replaced by inserted.
type undoRecord struct {
	pos      int
	deleted  []rune
	inserted []rune
}

// undoLog is an append-only list of edits with a redo pointer. Records
// before redoPoint are applied; those from redoPoint on can be redone.
// A new edit drops everything that could have been redone.
type undoLog struct {
	records   []undoRecord
	redoPoint int
	depth     int // 0 = unbounded
}

func (u *undoLog) clear() {
	u.records = u.records[:0]
	u.redoPoint = 0
}

func (u *undoLog) push(pos int, deleted, inserted []rune) {
	if len(deleted) == 0 && len(inserted) == 0 {
		return
	}
	u.records = append(u.records[:u.redoPoint], undoRecord{
		pos:      pos,
		deleted:  append([]rune(nil), deleted...),
		inserted: append([]rune(nil), inserted...),
	})
	if u.depth > 0 && len(u.records) > u.depth {
		drop := len(u.records) - u.depth
		u.records = append(u.records[:0], u.records[drop:]...)
	}
	u.redoPoint = len(u.records)
}

func (u *undoLog) canUndo() bool { return u.redoPoint > 0 }
func (u *undoLog) canRedo() bool { return u.redoPoint < len(u.records) }

// undo returns the record to revert, moving the redo pointer back.
func (u *undoLog) undo() (undoRecord, bool) {
	if !u.canUndo() {
		return undoRecord{}, false
	}
	u.redoPoint--
	return u.records[u.redoPoint], true
}

// redo returns the record to reapply, moving the redo pointer forward.
func (u *undoLog) redo() (undoRecord, bool) {
	if !u.canRedo() {
		return undoRecord{}, false
	}
	rec := u.records[u.redoPoint]
	u.redoPoint++
	return rec, true
}
