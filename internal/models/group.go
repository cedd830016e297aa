package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Group is a set of users sharing expenses.
//
// The creator administrates the group: only they may remove other
// members or delete the group outright. The creator is always a member.
type Group struct {
	DefaultModel
	Name        string
	CreatedBy   User `json:"-"`
	CreatedByID uuid.UUID
}

// GroupMember is a membership row linking a user to a group.
type GroupMember struct {
	GroupID   uuid.UUID `gorm:"primaryKey"`
	UserID    uuid.UUID `gorm:"primaryKey"`
	CreatedAt time.Time
}

var ErrGroupNameRequired = errors.New("the group needs a name")

// BeforeSave validates the group.
func (g *Group) BeforeSave(_ *gorm.DB) error {
	g.Name = strings.TrimSpace(g.Name)

	if g.Name == "" {
		return ErrGroupNameRequired
	}

	return nil
}

func (g *Group) BeforeCreate(tx *gorm.DB) error {
	_ = g.DefaultModel.BeforeCreate(tx)

	return tx.First(&User{}, g.CreatedByID).Error
}

// AfterCreate adds the creator as the first member.
func (g *Group) AfterCreate(tx *gorm.DB) error {
	return tx.Create(&GroupMember{GroupID: g.ID, UserID: g.CreatedByID}).Error
}

// Members returns the users in the group in join order.
func (g Group) Members(db *gorm.DB) ([]User, error) {
	var users []User

	err := db.
		Joins("JOIN group_members ON group_members.user_id = users.id").
		Where("group_members.group_id = ?", g.ID).
		Order("group_members.created_at ASC").
		Find(&users).Error

	return users, err
}

// MemberIDs returns the IDs of all members of the group.
func (g Group) MemberIDs(db *gorm.DB) ([]uuid.UUID, error) {
	members, err := g.Members(db)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(members))
	for _, m := range members {
		ids = append(ids, m.ID)
	}

	return ids, nil
}

// IsMember reports whether the user is a member of the group.
func (g Group) IsMember(db *gorm.DB, userID uuid.UUID) (bool, error) {
	var count int64
	err := db.Model(&GroupMember{}).
		Where("group_id = ? AND user_id = ?", g.ID, userID).
		Count(&count).Error

	return count > 0, err
}

// AddMember adds a user to the group. Adding a user twice returns
// ErrAlreadyMember via the unique constraint on the membership row.
func (g Group) AddMember(db *gorm.DB, userID uuid.UUID) error {
	err := db.First(&User{}, userID).Error
	if err != nil {
		return err
	}

	return db.Create(&GroupMember{GroupID: g.ID, UserID: userID}).Error
}

// RemoveMember removes a user from the group. Balance and authorization
// checks are the ledger's concern, not handled here.
func (g Group) RemoveMember(db *gorm.DB, userID uuid.UUID) error {
	return db.Where("group_id = ? AND user_id = ?", g.ID, userID).Delete(&GroupMember{}).Error
}

// Expenses returns all ledger entries of the group, oldest first.
func (g Group) Expenses(db *gorm.DB) ([]GroupExpense, error) {
	var expenses []GroupExpense

	err := db.
		Preload("Splits").
		Where(&GroupExpense{GroupID: g.ID}).
		Order("datetime(group_expenses.date) ASC, datetime(group_expenses.created_at) ASC").
		Find(&expenses).Error

	return expenses, err
}

// GroupsForUser returns all groups the user is a member of.
func GroupsForUser(db *gorm.DB, userID uuid.UUID) ([]Group, error) {
	var groups []Group

	err := db.
		Joins("JOIN group_members ON group_members.group_id = groups.id").
		Where("group_members.user_id = ?", userID).
		Order("groups.created_at ASC").
		Find(&groups).Error

	return groups, err
}
