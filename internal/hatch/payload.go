package hatch

import "strings"

// Payload is an inbound hatch notification. Deliveries arrive in one of two
// shapes: an embed document (title and/or name/value fields) or a plain
// content string. Anything else degrades to full defaults in Interpret.
type Payload struct {
	Content   string  `json:"content"`
	ChannelID string  `json:"channel_id"`
	Embeds    []Embed `json:"embeds"`
}

// Embed is a rich-content block within a notification payload
type Embed struct {
	Title  string  `json:"title"`
	Fields []Field `json:"fields"`
}

// Field is an ordered name/value pair inside an embed
type Field struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// flatten serializes the whole payload to one searchable string,
// in document order
func (p Payload) flatten() string {
	var sb strings.Builder
	sb.WriteString(p.Content)
	for _, e := range p.Embeds {
		sb.WriteString("\n")
		sb.WriteString(e.Title)
		for _, f := range e.Fields {
			sb.WriteString("\n")
			sb.WriteString(f.Name)
			sb.WriteString("\n")
			sb.WriteString(f.Value)
		}
	}
	return sb.String()
}
