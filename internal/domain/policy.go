package domain

// CanMutate reports whether the acting user may update or delete a
// resource owned by ownerID. Ownership is absolute: there is no role
// based override, an owner mismatch always denies the mutation.
func CanMutate(actingUserID, ownerID int64) bool {
	return actingUserID > 0 && actingUserID == ownerID
}
