package diagram

import "fmt"

// Visibility marks a class member as public or private.
type Visibility string

const (
	Public  Visibility = "+"
	Private Visibility = "-"
)

// Member is a field or method line of a class box.
type Member struct {
	Visibility Visibility
	Text       string
}

// Class is one box of a class diagram.
type Class struct {
	Name    string
	Members []Member
}

// Association is a directed relation between two classes.
type Association struct {
	From string
	To   string
}

// ClassDiagram is a set of classes and their associations.
type ClassDiagram struct {
	Classes      []Class
	Associations []Association
}

// Validate checks that associations only reference declared classes.
func (d *ClassDiagram) Validate() error {
	known := make(map[string]bool, len(d.Classes))
	for _, c := range d.Classes {
		if known[c.Name] {
			return fmt.Errorf("class diagram: duplicate class %q", c.Name)
		}
		known[c.Name] = true
	}
	for _, a := range d.Associations {
		if !known[a.From] || !known[a.To] {
			return fmt.Errorf("class diagram: association %s->%s references unknown class", a.From, a.To)
		}
	}
	return nil
}

// ClassBuilder assembles a ClassDiagram.
type ClassBuilder struct {
	d ClassDiagram
}

// NewClassDiagram starts an empty class diagram.
func NewClassDiagram() *ClassBuilder {
	return &ClassBuilder{}
}

// Class adds a class. Members are written as "+name" or "-name"; a member
// without a marker is public.
func (b *ClassBuilder) Class(name string, members ...string) *ClassBuilder {
	c := Class{Name: name}
	for _, m := range members {
		c.Members = append(c.Members, parseMember(m))
	}
	b.d.Classes = append(b.d.Classes, c)
	return b
}

// Uses adds an association from -> to.
func (b *ClassBuilder) Uses(from string, to ...string) *ClassBuilder {
	for _, t := range to {
		b.d.Associations = append(b.d.Associations, Association{From: from, To: t})
	}
	return b
}

// Build validates and returns the diagram.
func (b *ClassBuilder) Build() (*ClassDiagram, error) {
	d := ClassDiagram{
		Classes:      append([]Class(nil), b.d.Classes...),
		Associations: append([]Association(nil), b.d.Associations...),
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// MustBuild panics on validation errors.
func (b *ClassBuilder) MustBuild() *ClassDiagram {
	d, err := b.Build()
	if err != nil {
		panic(err)
	}
	return d
}

func parseMember(s string) Member {
	if len(s) > 0 {
		switch s[0] {
		case '+':
			return Member{Visibility: Public, Text: s[1:]}
		case '-':
			return Member{Visibility: Private, Text: s[1:]}
		}
	}
	return Member{Visibility: Public, Text: s}
}
