package blogservice

import (
	"strings"
	"unicode/utf8"

	"github.com/sushihentaime/blogapi/internal/common"
)

const (
	maxTitleLength       = 200
	maxDescriptionLength = 500
	maxTags              = 20
	maxTagLength         = 50
)

func validateTitle(v *common.Validator, title string) {
	v.Check(strings.TrimSpace(title) != "", "title", "must be provided")
	v.Check(utf8.RuneCountInString(title) <= maxTitleLength, "title", "must not be more than 200 characters long")
}

func validateDescription(v *common.Validator, description string) {
	v.Check(utf8.RuneCountInString(description) <= maxDescriptionLength, "description", "must not be more than 500 characters long")
}

func validateBody(v *common.Validator, body string) {
	v.Check(strings.TrimSpace(body) != "", "body", "must be provided")
}

func validateTags(v *common.Validator, tags []string) {
	v.Check(len(tags) <= maxTags, "tags", "must not contain more than 20 tags")
	for _, tag := range tags {
		v.Check(utf8.RuneCountInString(tag) <= maxTagLength, "tags", "each tag must not be more than 50 characters long")
	}
}

func validateState(v *common.Validator, state State) {
	v.Check(common.PermittedValue(state, StateDraft, StatePublished), "state", "must be either draft or published")
}
