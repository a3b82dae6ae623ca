// Copyright 2006-2010 Kirill Simonov
// Copyright 2011-2019 Canonical Ltd
// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0 AND MIT

// Event constructors shared by the stages that produce events.

package libyaml

import "strings"

// NewStreamStartEvent creates a new STREAM-START event.
func NewStreamStartEvent(encoding Encoding) Event {
	return Event{
		Type:     STREAM_START_EVENT,
		Encoding: encoding,
	}
}

// NewStreamEndEvent creates a new STREAM-END event.
func NewStreamEndEvent() Event {
	return Event{
		Type: STREAM_END_EVENT,
	}
}

// NewDocumentStartEvent creates a new DOCUMENT-START event.
func NewDocumentStartEvent(version *VersionDirective, tags []TagDirective, implicit bool) Event {
	return Event{
		Type:          DOCUMENT_START_EVENT,
		Version:       version,
		TagDirectives: tags,
		Implicit:      implicit,
	}
}

// NewDocumentEndEvent creates a new DOCUMENT-END event.
func NewDocumentEndEvent(implicit bool) Event {
	return Event{
		Type:     DOCUMENT_END_EVENT,
		Implicit: implicit,
	}
}

// NewAliasEvent creates a new ALIAS event.
func NewAliasEvent(anchor string) Event {
	return Event{
		Type:   ALIAS_EVENT,
		Anchor: anchor,
	}
}

// NewScalarEvent creates a new SCALAR event.
// plainImplicit and quotedImplicit tell whether the tag may be left out
// when the value is written plain or quoted.
func NewScalarEvent(anchor, tag, value string, plainImplicit, quotedImplicit bool, style ScalarStyle) Event {
	return Event{
		Type:           SCALAR_EVENT,
		Anchor:         anchor,
		Tag:            tag,
		Value:          value,
		Implicit:       plainImplicit,
		QuotedImplicit: quotedImplicit,
		Style:          style,
	}
}

// NewSequenceStartEvent creates a new SEQUENCE-START event.
func NewSequenceStartEvent(anchor, tag string, implicit, flow bool) Event {
	return Event{
		Type:     SEQUENCE_START_EVENT,
		Anchor:   anchor,
		Tag:      tag,
		Implicit: implicit,
		Flow:     flow,
	}
}

// NewSequenceEndEvent creates a new SEQUENCE-END event.
func NewSequenceEndEvent() Event {
	return Event{
		Type: SEQUENCE_END_EVENT,
	}
}

// NewMappingStartEvent creates a new MAPPING-START event.
func NewMappingStartEvent(anchor, tag string, implicit, flow bool) Event {
	return Event{
		Type:     MAPPING_START_EVENT,
		Anchor:   anchor,
		Tag:      tag,
		Implicit: implicit,
		Flow:     flow,
	}
}

// NewMappingEndEvent creates a new MAPPING-END event.
func NewMappingEndEvent() Event {
	return Event{
		Type: MAPPING_END_EVENT,
	}
}

// withMarks returns e spanning start to end.
func (e Event) withMarks(start, end Mark) Event {
	e.StartMark, e.EndMark = start, end
	return e
}

var eventEscaper = strings.NewReplacer(
	"\\", "\\\\",
	"\n", "\\n",
	"\t", "\\t",
	"\r", "\\r",
	"\b", "\\b",
)

// String renders e in the one-line notation of the YAML test suite, such
// as "+MAP {}", "=VAL &a <tag:yaml.org,2002:int> :1" or "=ALI *a".
func (e Event) String() string {
	var b strings.Builder
	writeProps := func() {
		if e.Anchor != "" {
			b.WriteString(" &" + e.Anchor)
		}
		if e.Tag != "" {
			b.WriteString(" <" + e.Tag + ">")
		}
	}
	switch e.Type {
	case STREAM_START_EVENT:
		b.WriteString("+STR")
	case STREAM_END_EVENT:
		b.WriteString("-STR")
	case DOCUMENT_START_EVENT:
		b.WriteString("+DOC")
		if !e.Implicit {
			b.WriteString(" ---")
		}
	case DOCUMENT_END_EVENT:
		b.WriteString("-DOC")
		if !e.Implicit {
			b.WriteString(" ...")
		}
	case SEQUENCE_START_EVENT:
		b.WriteString("+SEQ")
		if e.Flow {
			b.WriteString(" []")
		}
		writeProps()
	case SEQUENCE_END_EVENT:
		b.WriteString("-SEQ")
	case MAPPING_START_EVENT:
		b.WriteString("+MAP")
		if e.Flow {
			b.WriteString(" {}")
		}
		writeProps()
	case MAPPING_END_EVENT:
		b.WriteString("-MAP")
	case ALIAS_EVENT:
		b.WriteString("=ALI *" + e.Anchor)
	case SCALAR_EVENT:
		b.WriteString("=VAL")
		writeProps()
		b.WriteByte(' ')
		if c := e.Style.Indicator(); c != 0 {
			b.WriteByte(c)
		} else {
			b.WriteByte(':')
		}
		b.WriteString(eventEscaper.Replace(e.Value))
	default:
		return e.Type.String()
	}
	return b.String()
}
