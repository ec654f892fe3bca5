// Copyright (c) 2026 JournalHub. All rights reserved.
// Author: dev@journalhub.pub

package notify

// Catalog returns the built-in notification definitions.
//
// Paths are relative deep links; the client prepends the host. The
// role-changed definition deliberately describes the journal and links to
// the journal page.
func Catalog() []Definition {
	return []Definition{
		{
			Key:          "author.paper.new-review",
			EmailSubject: `New review on "{{.PaperTitle}}"`,
			EmailBody:    `{{.ReviewerName}} reviewed your paper "{{.PaperTitle}}". Read the review at {{.HostURL}}/paper/{{.PaperID}}/reviews.`,
			Text:         `{{.ReviewerName}} reviewed "{{.PaperTitle}}"`,
			Path:         `/paper/{{.PaperID}}/reviews`,
		},
		{
			Key:          "author.paper.new-comment",
			EmailSubject: `New comment on "{{.PaperTitle}}"`,
			EmailBody:    `{{.ActorName}} commented on "{{.PaperTitle}}": {{.CommentBody}}`,
			Text:         `{{.ActorName}} commented on "{{.PaperTitle}}"`,
			Path:         `/paper/{{.PaperID}}/comments`,
		},
		{
			Key:          "author.paper.preprint-posted",
			EmailSubject: `Your preprint is live`,
			EmailBody:    `"{{.PaperTitle}}" is now publicly visible as a preprint at {{.HostURL}}/paper/{{.PaperID}}.`,
			Text:         `Preprint posted: "{{.PaperTitle}}"`,
			Path:         `/paper/{{.PaperID}}`,
		},
		{
			Key:          "author.submission.decision",
			EmailSubject: `Decision on "{{.PaperTitle}}"`,
			EmailBody:    `{{.JournalName}} has moved your submission of "{{.PaperTitle}}" to status: {{.SubmissionStatus}}.`,
			Text:         `"{{.PaperTitle}}": {{.SubmissionStatus}}`,
			Path:         `/paper/{{.PaperID}}`,
		},
		{
			Key:          "reviewer.submission.reviewer-assigned",
			EmailSubject: `Review requested: "{{.PaperTitle}}"`,
			EmailBody:    `{{.EditorName}} of {{.JournalName}} asked you to review "{{.PaperTitle}}". Start at {{.HostURL}}/paper/{{.PaperID}}.`,
			Text:         `Review requested for "{{.PaperTitle}}"`,
			Path:         `/paper/{{.PaperID}}`,
		},
		{
			Key:          "reviewer.submission.reviewer-unassigned",
			EmailSubject: `Review no longer needed`,
			EmailBody:    `You no longer need to review "{{.PaperTitle}}" for {{.JournalName}}.`,
			Text:         `Unassigned from "{{.PaperTitle}}"`,
			Path:         `/journal/{{.JournalID}}`,
		},
		{
			Key:          "editor.journal.new-submission",
			EmailSubject: `New submission to {{.JournalName}}`,
			EmailBody:    `{{.CorrespondingAuthorName}} submitted "{{.PaperTitle}}" to {{.JournalName}}. Triage it at {{.HostURL}}/journal/{{.JournalID}}/submissions.`,
			Text:         `New submission to {{.JournalName}}`,
			Path:         `/journal/{{.JournalID}}/submissions`,
		},
		{
			Key:          "member.journal.role-changed",
			EmailSubject: `Your role at {{.JournalName}} changed`,
			EmailBody:    `{{.EditorName}} changed your role at {{.JournalName}}. See your membership at {{.HostURL}}/journal/{{.JournalID}}.`,
			Text:         `Role changed at {{.JournalName}}`,
			Path:         `/journal/{{.JournalID}}`,
		},
		{
			Key:          "member.journal.member-added",
			EmailSubject: `Welcome to {{.JournalName}}`,
			EmailBody:    `{{.EditorName}} added you to {{.JournalName}}.`,
			Text:         `Added to {{.JournalName}}`,
			Path:         `/journal/{{.JournalID}}`,
		},
	}
}
