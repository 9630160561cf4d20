package profiles

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/exp/slices"
	"nostrprofiles/engine/actors"
	"nostrprofiles/engine/library"
)

func GetMap() Mapped {
	startDb()
	currentState.mutex.Lock()
	defer currentState.mutex.Unlock()
	return currentState.getMap()
}

// GetProfile returns the live profile of account. Deleted profiles are not returned.
func GetProfile(account library.Account) (Record, bool) {
	startDb()
	currentState.mutex.Lock()
	defer currentState.mutex.Unlock()
	r, ok := currentState.data[account]
	if !ok || r.Deleted {
		return Record{}, false
	}
	return r, true
}

// SearchNickname returns every live profile whose nickname starts with prefix, sorted by
// nickname and then account. Profiles owned by an excluded account are left out, which is
// how a client hides its own agent from the results.
func SearchNickname(prefix string, exclude ...library.Account) ([]Record, error) {
	startDb()
	currentState.mutex.Lock()
	defer currentState.mutex.Unlock()
	return currentState.searchNickname(prefix, actors.NicknameSearchMinLength(), exclude...)
}

func (s *db) searchNickname(prefix string, minLength int, exclude ...library.Account) ([]Record, error) {
	if n := utf8.RuneCountInString(prefix); n < minLength {
		return nil, fmt.Errorf("nickname search needs at least %d characters, got %d", minLength, n)
	}
	var r []Record
	for _, record := range s.data {
		if record.Deleted || slices.Contains(exclude, record.Account) {
			continue
		}
		if strings.HasPrefix(record.Entry.Nickname(), prefix) {
			r = append(r, record)
		}
	}
	slices.SortFunc(r, func(a, b Record) bool {
		if a.Entry.Nickname() != b.Entry.Nickname() {
			return a.Entry.Nickname() < b.Entry.Nickname()
		}
		return a.Account < b.Account
	})
	return r, nil
}
