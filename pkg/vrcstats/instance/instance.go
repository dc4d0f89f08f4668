// Package instance classifies VRChat instance identifiers into access
// categories.
//
// An instance identifier looks like
//
//	wrld_4432ea9b-729c-46e3-8eaf-846aa0a37fdd:12345~private(usr_xxx)~canRequestInvite~region(jp)
//
// and its "~" tags decide who may join it.
package instance

import (
	"strings"
)

// Category is the access-control category of an instance.
type Category string

const (
	FriendPlus  Category = "FRIEND_PLUS"
	Friend      Category = "FRIEND"
	InvitePlus  Category = "INVITE_PLUS"
	Invite      Category = "INVITE"
	Group       Category = "GROUP"
	GroupPlus   Category = "GROUP_PLUS"
	GroupPublic Category = "GROUP_PUBLIC"
	Public      Category = "PUBLIC"
)

// Instance tags consulted by Classify.
const (
	tagHidden            = "~hidden"
	tagFriends           = "~friends"
	tagPrivate           = "~private"
	tagCanRequestInvite  = "~canRequestInvite"
	tagGroup             = "~group"
	tagGroupAccessMember = "~groupAccessType(members)"
	tagGroupAccessPlus   = "~groupAccessType(plus)"
	tagGroupAccessPublic = "~groupAccessType(public)"
)

var allCategories = []Category{
	FriendPlus, Friend, InvitePlus, Invite, Group, GroupPlus, GroupPublic, Public,
}

// Categories returns all categories in rule order.
// The returned slice is a copy and may be modified by the caller.
func Categories() []Category {
	out := make([]Category, len(allCategories))
	copy(out, allCategories)
	return out
}

// ParseCategory converts a category label to a Category.
// It is case-insensitive and trims leading/trailing whitespace.
func ParseCategory(name string) (Category, bool) {
	name = strings.ToUpper(strings.TrimSpace(name))
	for _, c := range allCategories {
		if string(c) == name {
			return c, true
		}
	}
	return "", false
}

// String returns the fixed label of the category.
func (c Category) String() string {
	return string(c)
}

// rule is one classification rule. Rules are evaluated in order and the
// first match wins, since tags overlap (a group instance carries "~group"
// plus exactly one access type).
type rule struct {
	category Category
	match    func(id string) bool
}

var rules = []rule{
	{FriendPlus, func(id string) bool { return strings.Contains(id, tagHidden) }},
	{Friend, func(id string) bool { return strings.Contains(id, tagFriends) }},
	{InvitePlus, func(id string) bool {
		return strings.Contains(id, tagPrivate) && strings.Contains(id, tagCanRequestInvite)
	}},
	{Invite, func(id string) bool {
		return strings.Contains(id, tagPrivate) && !strings.Contains(id, tagCanRequestInvite)
	}},
	{Group, func(id string) bool {
		return strings.Contains(id, tagGroup) && strings.Contains(id, tagGroupAccessMember)
	}},
	{GroupPlus, func(id string) bool {
		return strings.Contains(id, tagGroup) && strings.Contains(id, tagGroupAccessPlus)
	}},
	{GroupPublic, func(id string) bool {
		return strings.Contains(id, tagGroup) && strings.Contains(id, tagGroupAccessPublic)
	}},
}

// Classify returns the category of a raw instance identifier.
// It never fails: identifiers matching no rule are Public.
func Classify(id string) Category {
	for _, r := range rules {
		if r.match(id) {
			return r.category
		}
	}
	return Public
}
