package owner

import "gorm.io/gorm"

// Scope returns a GORM scope restricting rows to the owner's user_id or session_token.
// An invalid owner matches nothing.
func Scope(o Owner) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if id, ok := o.UserID(); ok && o.Valid() {
			return db.Where("user_id = ?", id)
		}
		if token, ok := o.SessionToken(); ok && o.Valid() {
			return db.Where("session_token = ? AND user_id IS NULL", token)
		}
		return db.Where("1 = 0")
	}
}
