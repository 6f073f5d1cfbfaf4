package crisis

import (
	"context"
	"regexp"
	"strings"

	"github.com/freundlier/intake/pkg/utils/logging"
	"github.com/m-mizutani/gollem"
)

// classifierPrompt instructs the confirmation model to answer with a bare
// verdict so the reply can be parsed by prefix.
const classifierPrompt = `You are a crisis detector for a mental health intake system. The patient may write in English, Urdu script, or Roman Urdu. If the following message indicates suicidal ideation, self-harm, or a desire to die, reply ONLY with YES. Otherwise reply ONLY with NO.`

// yesVerdict anchors on a leading YES token. "YES." and "YES, the patient"
// count; "MAYBE YES" does not.
var yesVerdict = regexp.MustCompile(`^YES\b`)

// Detector screens patient messages for crisis signals. A cheap lexical
// pass gates an LLM confirmation call so that the classifier only runs on
// messages that already look alarming.
type Detector struct {
	keywords *KeywordSet
	llm      gollem.LLMClient
}

// NewDetector creates a Detector. A nil keyword set falls back to the
// built-in lexicon.
func NewDetector(llm gollem.LLMClient, keywords *KeywordSet) *Detector {
	if keywords == nil {
		keywords = DefaultKeywords()
	}
	return &Detector{
		keywords: keywords,
		llm:      llm,
	}
}

// Screen reports whether the message trips the lexical pre-filter. It is
// purely local and never errors.
func (x *Detector) Screen(message string) bool {
	return x.keywords.Match(message)
}

// Confirm asks the classifier model whether a lexically flagged message is
// a genuine crisis. It fails safe: any classifier failure counts as a
// confirmation, because a missed crisis is far worse than a spurious
// alert.
func (x *Detector) Confirm(ctx context.Context, message string) bool {
	logger := logging.From(ctx)

	session, err := x.llm.NewSession(ctx,
		gollem.WithSessionSystemPrompt(classifierPrompt),
	)
	if err != nil {
		logger.Warn("crisis classifier session failed, treating as confirmed", "error", err)
		return true
	}

	resp, err := session.GenerateContent(ctx, gollem.Text(message))
	if err != nil {
		logger.Warn("crisis classifier call failed, treating as confirmed", "error", err)
		return true
	}

	var reply string
	if len(resp.Texts) > 0 {
		reply = resp.Texts[0]
	}
	reply = strings.ToUpper(strings.TrimSpace(reply))

	return yesVerdict.MatchString(reply)
}

// Check runs the full two-stage detection: lexical screen, then LLM
// confirmation only when the screen fires.
func (x *Detector) Check(ctx context.Context, message string) bool {
	if !x.Screen(message) {
		return false
	}
	return x.Confirm(ctx, message)
}
