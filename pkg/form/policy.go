package form

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	inlinePolicyOnce sync.Once
	inlinePolicy     *bluemonday.Policy
)

// InlinePolicy returns a shared policy allowing inline formatting in labels,
// errors and hints (emphasis, code, line breaks, spans with a class and
// links) while dropping everything else. The policy is built once.
func InlinePolicy() *bluemonday.Policy {
	inlinePolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("b", "strong", "i", "em", "u", "small", "code", "br", "span", "abbr", "a")
		policy.AllowAttrs("class").OnElements("span", "code")
		policy.AllowAttrs("title").OnElements("abbr")
		policy.AllowStandardURLs()
		policy.AllowAttrs("href").OnElements("a")
		inlinePolicy = policy
	})
	return inlinePolicy
}
