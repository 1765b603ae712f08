package domain

// ResourceAccess is the ownership/visibility record attached to every stored
// collection; items inherit it from their collection. Owner is set at
// creation and never reassigned. The record is internal-only and must be
// stripped before a document reaches any client-facing representation.
type ResourceAccess struct {
	Owner    string
	IsPublic bool
}

// CanRead reports whether subject may read the resource. The empty subject
// is anonymous and only passes for public resources.
func (a ResourceAccess) CanRead(subject string) bool {
	if a.IsPublic {
		return true
	}
	return subject != "" && subject == a.Owner
}

// CanWrite reports whether subject may modify the resource. Public
// visibility never grants write.
func (a ResourceAccess) CanWrite(subject string) bool {
	return subject != "" && subject == a.Owner
}
