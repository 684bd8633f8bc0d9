package services

import (
	"fmt"
	"strings"
)

const (
	personaDirective = "You are DoctroneAI. Your goal is to assist users by providing medical information and advice. "
	styleDirective   = "Be concise and clear in your responses."
	driveDirective   = " When a medication is discussed, state whether it is safe to drive or operate machinery while taking it."
)

// PromptComposer renders the system instruction sent ahead of every message.
// Output depends only on its inputs and DriveSafetyNotice.
type PromptComposer struct {
	DriveSafetyNotice bool
}

func (c PromptComposer) Compose(medicationSummary, gender, age string) string {
	var b strings.Builder
	b.WriteString(personaDirective)
	fmt.Fprintf(&b, "If the patient reports any issues or symptoms, evaluate them considering the following details: "+
		"current medications (%s), gender (%s), and age (%s). ", medicationSummary, gender, age)
	b.WriteString(styleDirective)
	if c.DriveSafetyNotice {
		b.WriteString(driveDirective)
	}
	return b.String()
}

// ComposeGeneral is the instruction for chats without a user profile.
func (c PromptComposer) ComposeGeneral() string {
	var b strings.Builder
	b.WriteString(personaDirective)
	b.WriteString("If the patient reports any issues or symptoms, evaluate them and ask for relevant details you are missing. ")
	b.WriteString(styleDirective)
	if c.DriveSafetyNotice {
		b.WriteString(driveDirective)
	}
	return b.String()
}
