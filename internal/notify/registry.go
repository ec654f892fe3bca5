// Copyright (c) 2026 JournalHub. All rights reserved.
// Author: dev@journalhub.pub

package notify

import (
	"errors"
	"fmt"
	"strings"
	"text/template"
)

// Facet names, used in error reporting.
const (
	FacetEmailSubject = "email.subject"
	FacetEmailBody    = "email.body"
	FacetText         = "text"
	FacetPath         = "path"
)

// Definition is one notification template set, keyed by
// "<recipient-role>.<entity>.<event>".
type Definition struct {
	Key          string
	EmailSubject string
	EmailBody    string
	Text         string
	Path         string
}

// Message is a fully rendered notification.
type Message struct {
	Key          string `json:"key"`
	EmailSubject string `json:"email_subject"`
	EmailBody    string `json:"email_body"`
	Text         string `json:"text"`
	Path         string `json:"path"`
}

// Recognized namespace segments.
var (
	knownRoles = map[string]bool{
		"author":   true,
		"reviewer": true,
		"editor":   true,
		"member":   true,
	}

	knownEntities = map[string]bool{
		"paper":      true,
		"submission": true,
		"journal":    true,
		"review":     true,
		"comment":    true,
	}

	// entityPathPrefixes lists which deep-link roots a definition for each
	// entity may use. Journal events never link into paper pages and vice
	// versa; submissions may go either way since they join the two.
	entityPathPrefixes = map[string][]string{
		"paper":      {"/paper/"},
		"review":     {"/paper/"},
		"comment":    {"/paper/"},
		"journal":    {"/journal/"},
		"submission": {"/paper/", "/journal/"},
	}
)

type compiled struct {
	emailSubject *template.Template
	emailBody    *template.Template
	text         *template.Template
	path         *template.Template
}

// Registry holds parsed notification definitions.
type Registry struct {
	templates map[string]compiled
}

// NewRegistry validates and parses the given definitions. A definition that
// fails validation or parsing is a construction error, never a runtime
// surprise.
func NewRegistry(definitions []Definition) (*Registry, error) {
	if err := ValidateDefinitions(definitions); err != nil {
		return nil, err
	}

	templates := make(map[string]compiled, len(definitions))
	for _, definition := range definitions {
		parsed := compiled{}

		var err error
		if parsed.emailSubject, err = parseFacet(definition.Key, FacetEmailSubject, definition.EmailSubject); err != nil {
			return nil, err
		}
		if parsed.emailBody, err = parseFacet(definition.Key, FacetEmailBody, definition.EmailBody); err != nil {
			return nil, err
		}
		if parsed.text, err = parseFacet(definition.Key, FacetText, definition.Text); err != nil {
			return nil, err
		}
		if parsed.path, err = parseFacet(definition.Key, FacetPath, definition.Path); err != nil {
			return nil, err
		}

		templates[definition.Key] = parsed
	}

	return &Registry{templates: templates}, nil
}

func parseFacet(key, facet, text string) (*template.Template, error) {
	parsed, err := template.New(key + "#" + facet).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("notify: definition %s facet %s: %w", key, facet, err)
	}
	return parsed, nil
}

// Has reports whether a definition exists for the key.
func (registry *Registry) Has(key string) bool {
	_, ok := registry.templates[key]
	return ok
}

// Render produces the notification for a key. Each facet is rendered in
// isolation: a facet that fails execution yields an empty string for that
// facet and contributes to the joined error, while the remaining facets
// still render.
func (registry *Registry) Render(key string, ctx *Context) (Message, error) {
	parsed, ok := registry.templates[key]
	if !ok {
		return Message{}, fmt.Errorf("notify: no definition for %q", key)
	}

	message := Message{Key: key}
	var errs []error

	render := func(facet string, tmpl *template.Template) string {
		var builder strings.Builder
		if err := tmpl.Execute(&builder, ctx); err != nil {
			errs = append(errs, fmt.Errorf("notify: %s facet %s: %w", key, facet, err))
			return ""
		}
		return builder.String()
	}

	message.EmailSubject = render(FacetEmailSubject, parsed.emailSubject)
	message.EmailBody = render(FacetEmailBody, parsed.emailBody)
	message.Text = render(FacetText, parsed.text)
	message.Path = render(FacetPath, parsed.path)

	return message, errors.Join(errs...)
}

// ValidateDefinitions checks every definition for a well-formed namespace
// and a deep-link path consistent with the namespace entity. Keys must be
// unique.
func ValidateDefinitions(definitions []Definition) error {
	seen := make(map[string]bool, len(definitions))
	var errs []error

	for _, definition := range definitions {
		if seen[definition.Key] {
			errs = append(errs, fmt.Errorf("notify: duplicate definition %q", definition.Key))
			continue
		}
		seen[definition.Key] = true

		parts := strings.Split(definition.Key, ".")
		if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
			errs = append(errs, fmt.Errorf("notify: key %q is not <role>.<entity>.<event>", definition.Key))
			continue
		}

		role, entity := parts[0], parts[1]
		if !knownRoles[role] {
			errs = append(errs, fmt.Errorf("notify: %s: unknown recipient role %q", definition.Key, role))
		}
		if !knownEntities[entity] {
			errs = append(errs, fmt.Errorf("notify: %s: unknown entity %q", definition.Key, entity))
			continue
		}

		if definition.Path != "" && !pathMatchesEntity(definition.Path, entity) {
			errs = append(errs, fmt.Errorf("notify: %s: path %q does not belong to entity %q", definition.Key, definition.Path, entity))
		}
	}

	return errors.Join(errs...)
}

func pathMatchesEntity(path, entity string) bool {
	for _, prefix := range entityPathPrefixes[entity] {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
