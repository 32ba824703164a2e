package components

import (
	"fmt"
	"strings"
)

// FooterData is what the page footer shows.
type FooterData struct {
	Year  int
	Name  string
	Links []string
}

// Footer renders the copyright line and the contact link labels.
type Footer struct {
	data FooterData
}

// NewFooter creates a Footer component.
func NewFooter(data FooterData) Footer {
	return Footer{data: data}
}

// Lines returns the footer text, one entry per line.
func (f Footer) Lines() []string {
	lines := []string{fmt.Sprintf("© %d %s. All rights reserved.", f.data.Year, f.data.Name)}
	if len(f.data.Links) > 0 {
		lines = append(lines, strings.Join(f.data.Links, " · "))
	}
	return lines
}
