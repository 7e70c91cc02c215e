package entities

// Schema lists the fields a response schema declares. Required fields are
// checked at the normalizer boundary; Known fields are documentation for
// consumers and never restrict what is passed through.
type Schema struct {
	Kind     Kind
	Required []string
	Known    []string
}

var schemas = map[Kind]Schema{
	KindPage: {
		Kind:     KindPage,
		Required: []string{FieldID},
		Known:    []string{"id", "name", "about", "category", "fan_count", "link", "picture", "website"},
	},
	KindPost: {
		Kind:     KindPost,
		Required: []string{FieldID},
		Known:    []string{"id", "message", "created_time", "permalink_url", "likes", "comments", "shares", "attachments", "from"},
	},
	KindComment: {
		Kind:     KindComment,
		Required: []string{FieldID, FieldPostID},
		Known:    []string{"id", "message", "created_time", "from", "like_count", "post_id"},
	},
	KindLike: {
		Kind:     KindLike,
		Required: []string{FieldID, FieldName, FieldPostID},
		Known:    []string{"id", "name", "picture", "link", "email", "post_id"},
	},
	KindMention: {
		Kind:     KindMention,
		Required: []string{FieldID},
		Known:    []string{"id", "message", "created_time", "from", "story"},
	},
	KindConversation: {
		Kind:     KindConversation,
		Required: []string{FieldID},
		Known:    []string{"id", "link", "updated_time", "messages"},
	},
	KindMessage: {
		Kind:     KindMessage,
		Required: []string{FieldID},
		Known:    []string{"id", "message", "created_time", "from"},
	},
	KindInsight: {
		Kind:     KindInsight,
		Required: []string{FieldName},
		Known:    []string{"id", "name", "period", "values", "title", "description"},
	},
	KindUser: {
		Kind:     KindUser,
		Required: []string{FieldID},
		Known:    []string{"id", "name", "picture", "link", "email"},
	},
}

// SchemaFor returns the schema of a kind. Unknown kinds only require an id.
func SchemaFor(kind Kind) Schema {
	if s, ok := schemas[kind]; ok {
		return s
	}
	return Schema{Kind: kind, Required: []string{FieldID}}
}

// Missing returns the required fields absent from r.
func (s Schema) Missing(r Record) []string {
	var missing []string
	for _, f := range s.Required {
		v, ok := r[f]
		if !ok || v == nil || v == "" {
			missing = append(missing, f)
		}
	}
	return missing
}

// IsKnown reports whether the schema declares the field.
func (s Schema) IsKnown(field string) bool {
	for _, f := range s.Known {
		if f == field {
			return true
		}
	}
	return false
}
