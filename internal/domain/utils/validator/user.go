package validator

import (
	"strings"
	"unicode/utf8"
)

func UserEmail(email string) bool {
	at := strings.Index(email, "@")
	return at > 0 && at < len(email)-1 && !strings.ContainsAny(email, " \t")
}

func UserPassword(password string) bool {
	return utf8.RuneCountInString(password) >= 8
}
