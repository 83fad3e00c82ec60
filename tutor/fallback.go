package tutor

import "strings"

const (
	GreetingReply        = "Hello! I'm your teacher assistant. How can I help you learn something new today?"
	AskForSpecificsReply = "I'd love to help you understand that better! Could you be more specific about what you'd like to learn?"
	AcknowledgmentReply  = "You're very welcome! Keep up the great work with your learning!"
	GenericReply         = "That's an interesting question! I'm here to help you learn. Could you tell me more about what you'd like to understand?"
)

type fallbackRule struct {
	keywords []string
	reply    string
}

// Rules are checked in order, the first match wins.
var fallbackRules = []fallbackRule{
	{keywords: []string{"hello", "hi", "hey", "good morning", "good afternoon"}, reply: GreetingReply},
	{keywords: []string{"help", "explain", "what", "how", "why"}, reply: AskForSpecificsReply},
	{keywords: []string{"thank", "thanks"}, reply: AcknowledgmentReply},
}

// Fallback returns a canned reply for the message. Keywords are matched as
// substrings of the lowercased message, so "this" matches "hi".
func Fallback(message string) string {
	m := strings.ToLower(message)
	for _, rule := range fallbackRules {
		for _, kw := range rule.keywords {
			if strings.Contains(m, kw) {
				return rule.reply
			}
		}
	}
	return GenericReply
}
