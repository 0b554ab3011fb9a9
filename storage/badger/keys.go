package badger

import "fmt"

// Key prefixes for different data types
const (
	docStatsPrefix = "docsta"
	sessionPrefix  = "sessnap"
	bookmarkPrefix = "bkmark"
)

// makeDocStatsKey generates the key holding a session's document stats map.
func makeDocStatsKey(sessionID string) []byte {
	return []byte(fmt.Sprintf("%s:%s", docStatsPrefix, sessionID))
}

// makeSessionKey generates the key holding a session snapshot.
func makeSessionKey(sessionID string) []byte {
	return []byte(fmt.Sprintf("%s:%s", sessionPrefix, sessionID))
}

// makeBookmarkKey generates the key holding a session's bookmark list.
func makeBookmarkKey(sessionID string) []byte {
	return []byte(fmt.Sprintf("%s:%s", bookmarkPrefix, sessionID))
}
