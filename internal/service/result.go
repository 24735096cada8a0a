package service

// Action names the statement a write resolved to.
type Action string

// Write actions.
const (
	ActionInsert Action = "insert"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// WriteResult describes a completed write. A write that matched no row is
// not an error; it reports RowsAffected == 0.
type WriteResult struct {
	ID           int64
	Action       Action
	RowsAffected int64
}

// Applied reports whether the write changed a row.
func (r WriteResult) Applied() bool {
	return r.RowsAffected > 0
}
