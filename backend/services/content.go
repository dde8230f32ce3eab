package services

import "strings"

// blockedTerms is the word list the community feed rejects outright. The
// platform serves minors, so the filter errs on the strict side.
var blockedTerms = []string{
	"fuck",
	"shit",
	"bitch",
	"asshole",
	"bastard",
	"cunt",
	"dick",
	"faggot",
	"nigger",
	"whore",
}

// CheckContent screens user-supplied text before it is saved. Every argument
// is checked; the first hit rejects the whole submission.
func CheckContent(texts ...string) error {
	for _, text := range texts {
		lower := strings.ToLower(text)
		for _, term := range blockedTerms {
			if strings.Contains(lower, term) {
				return BadRequest("inappropriate content detected")
			}
		}
	}
	return nil
}
