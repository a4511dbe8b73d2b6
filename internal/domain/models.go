// Package domain defines the persistence models for accounts and messages.
// These types are mapped with GORM and form the core data layer of the
// social media blog backend.
package domain

// Account represents a registered user identity. Accounts are created on
// registration and never updated or deleted afterwards.
//
// Fields:
//   - AccountID: generated integer primary key.
//   - Username: unique login name; uniqueness is enforced by a DB index so
//     concurrent registrations cannot both slip past the availability check.
//   - Password: stored as provided (plaintext credential check, no hashing).
type Account struct {
	AccountID int64  `json:"account_id" gorm:"column:account_id;primaryKey;autoIncrement"`
	Username  string `json:"username"   gorm:"type:varchar(255);not null;uniqueIndex:ux_account_username"`
	Password  string `json:"password"   gorm:"type:varchar(255);not null"`
}

// TableName returns the database table name for Account.
func (Account) TableName() string { return "account" }

// Message represents a text post authored by an account. The posting
// timestamp is client-supplied, not server-assigned.
//
// Fields:
//   - MessageID: generated integer primary key.
//   - PostedBy: foreign key to the authoring account (indexed). Every stored
//     message references an existing account at creation time; accounts are
//     never deleted, so the reference stays valid.
//   - MessageText: post body, 1–255 characters.
//   - TimePostedEpoch: client-supplied epoch timestamp, preserved across edits.
type Message struct {
	MessageID       int64  `json:"message_id"        gorm:"column:message_id;primaryKey;autoIncrement"`
	PostedBy        int64  `json:"posted_by"         gorm:"column:posted_by;not null;index:idx_message_posted_by"`
	MessageText     string `json:"message_text"      gorm:"type:varchar(255);not null"`
	TimePostedEpoch int64  `json:"time_posted_epoch" gorm:"column:time_posted_epoch;not null"`

	// Author is the posting account. The FK constraint keeps posted_by
	// pointing at a real account row.
	Author Account `json:"-" gorm:"foreignKey:PostedBy;references:AccountID;constraint:OnUpdate:CASCADE"`
}

// TableName returns the database table name for Message.
func (Message) TableName() string { return "message" }
