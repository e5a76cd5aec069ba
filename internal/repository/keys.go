package repository

import "fmt"

// Key layout. One blob per entity or per-user singleton.
const (
	userPrefix       = "user:"
	cardPrefix       = "card:"
	topicPrefix      = "topic:"
	sessionPrefix    = "session:"
	convStatePrefix  = "convstate:"
	ticketPrefix     = "ticket:"
	dmPrefix         = "dm:"
	assignmentPrefix = "assignment:"
)

func userKey(userID int64) string { return fmt.Sprintf("%s%d", userPrefix, userID) }

func convStateKey(userID int64) string { return fmt.Sprintf("%s%d", convStatePrefix, userID) }

func assignmentKey(id string) string { return assignmentPrefix + id }

// ownedPrefix returns "<kind><userID>:" for per-user collections.
func ownedPrefix(kind string, userID int64) string {
	return fmt.Sprintf("%s%d:", kind, userID)
}

// ownedKey returns "<kind><userID>:<id>".
func ownedKey(kind string, userID int64, id string) string {
	return ownedPrefix(kind, userID) + id
}
