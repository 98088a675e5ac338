package diagram

import "fmt"

// Participant is a lifeline of a sequence diagram.
type Participant struct {
	ID    string
	Alias string // display name, defaults to ID
}

// Step is one element of a sequence: a Message or a Block.
type Step interface {
	step()
}

// Message is an arrow between two participants.
type Message struct {
	From  string
	To    string
	Text  string
	Reply bool // dashed return arrow
}

func (Message) step() {}

// BlockKind is the kind of a grouping block.
type BlockKind string

const (
	BlockLoop BlockKind = "loop"
	BlockAlt  BlockKind = "alt"
)

// Branch is one arm of a block. A loop has exactly one branch; an alt has
// one branch per alternative.
type Branch struct {
	Label string
	Steps []Step
}

// Block groups steps into a loop or alternatives.
type Block struct {
	Kind     BlockKind
	Branches []Branch
}

func (Block) step() {}

// Sequence is a sequence diagram.
type Sequence struct {
	Participants []Participant
	Steps        []Step
}

// Validate checks that every message references a declared participant and
// that blocks are well formed.
func (s *Sequence) Validate() error {
	known := make(map[string]bool, len(s.Participants))
	for _, p := range s.Participants {
		if known[p.ID] {
			return fmt.Errorf("sequence: duplicate participant %q", p.ID)
		}
		known[p.ID] = true
	}
	return validateSteps(s.Steps, known)
}

func validateSteps(steps []Step, known map[string]bool) error {
	for _, st := range steps {
		switch v := st.(type) {
		case Message:
			if !known[v.From] || !known[v.To] {
				return fmt.Errorf("sequence: message %s->%s references unknown participant", v.From, v.To)
			}
		case Block:
			if len(v.Branches) == 0 {
				return fmt.Errorf("sequence: %s block without branches", v.Kind)
			}
			if v.Kind == BlockLoop && len(v.Branches) != 1 {
				return fmt.Errorf("sequence: loop block must have one branch, has %d", len(v.Branches))
			}
			for _, br := range v.Branches {
				if err := validateSteps(br.Steps, known); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// SequenceBuilder assembles a Sequence. Blocks are opened with Loop or Alt,
// split with Else and closed with End.
type SequenceBuilder struct {
	s     Sequence
	stack []*Block
}

// NewSequence starts an empty sequence diagram.
func NewSequence() *SequenceBuilder {
	return &SequenceBuilder{}
}

// Participant declares a lifeline.
func (b *SequenceBuilder) Participant(id, alias string) *SequenceBuilder {
	b.s.Participants = append(b.s.Participants, Participant{ID: id, Alias: alias})
	return b
}

// Call adds a solid request arrow.
func (b *SequenceBuilder) Call(from, to, text string) *SequenceBuilder {
	b.add(Message{From: from, To: to, Text: text})
	return b
}

// Reply adds a dashed return arrow.
func (b *SequenceBuilder) Reply(from, to, text string) *SequenceBuilder {
	b.add(Message{From: from, To: to, Text: text, Reply: true})
	return b
}

// Loop opens a loop block.
func (b *SequenceBuilder) Loop(label string) *SequenceBuilder {
	b.stack = append(b.stack, &Block{Kind: BlockLoop, Branches: []Branch{{Label: label}}})
	return b
}

// Alt opens an alternatives block with its first branch.
func (b *SequenceBuilder) Alt(label string) *SequenceBuilder {
	b.stack = append(b.stack, &Block{Kind: BlockAlt, Branches: []Branch{{Label: label}}})
	return b
}

// Else starts the next branch of the innermost alt block.
func (b *SequenceBuilder) Else(label string) *SequenceBuilder {
	if n := len(b.stack); n > 0 {
		top := b.stack[n-1]
		top.Branches = append(top.Branches, Branch{Label: label})
	}
	return b
}

// End closes the innermost block.
func (b *SequenceBuilder) End() *SequenceBuilder {
	n := len(b.stack)
	if n == 0 {
		return b
	}
	top := b.stack[n-1]
	b.stack = b.stack[:n-1]
	b.add(*top)
	return b
}

func (b *SequenceBuilder) add(st Step) {
	if n := len(b.stack); n > 0 {
		top := b.stack[n-1]
		last := &top.Branches[len(top.Branches)-1]
		last.Steps = append(last.Steps, st)
		return
	}
	b.s.Steps = append(b.s.Steps, st)
}

// Build validates and returns the sequence. Unclosed blocks are an error.
func (b *SequenceBuilder) Build() (*Sequence, error) {
	if len(b.stack) > 0 {
		return nil, fmt.Errorf("sequence: %d unclosed block(s)", len(b.stack))
	}
	s := Sequence{
		Participants: append([]Participant(nil), b.s.Participants...),
		Steps:        append([]Step(nil), b.s.Steps...),
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// MustBuild panics on validation errors.
func (b *SequenceBuilder) MustBuild() *Sequence {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}
