package syntax

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// Options mirrors the compile-time options a Pattern carries: the initial
// flags-stack frame and the right-to-left bit.
type Options struct {
	IgnoreCase              bool
	Multiline               bool
	ExplicitCapture         bool
	Singleline              bool
	IgnorePatternWhitespace bool
	RightToLeft             bool
}

// Parser is a recursive-descent translator from pattern surface syntax to
// an expression tree. It defers back-references,
// balancing-group subtractors, and conditional predicates that can't be
// resolved until every group is registered to a post-parse pass.
type Parser struct {
	sc       *Scanner
	flags    *FlagSet
	groups   *GroupTable
	deferred []func(p *Parser) error
}

var (
	reInlineComment  = regexp.MustCompile(`^\(\?#[^)]*\)`)
	reWhitespaceRun  = regexp.MustCompile(`^[ \t\r\n\f\v]+`)
	reLineComment    = regexp.MustCompile(`^#[^\n]*`)
	reCount          = regexp.MustCompile(`^\{(\d+)(,(\d*))?\}`)
	reGroupNameOrNum = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*|[0-9]+)`)
)

// Parse translates pattern into an expression tree under opts, returning
// the tree's group table. The returned tree is fully resolved (no
// unresolved ProxyNode/ConditionalNode references remain) and already
// inverted for right-to-left evaluation if opts.RightToLeft is set.
func Parse(pattern string, opts Options) (Node, *GroupTable, error) {
	p := &Parser{
		sc:     NewScanner(pattern),
		groups: NewGroupTable(),
	}
	p.flags = NewFlagSet(map[Flag]bool{
		FlagIgnoreCase:      opts.IgnoreCase,
		FlagMultiline:       opts.Multiline,
		FlagExplicitCapture: opts.ExplicitCapture,
		FlagSingleline:      opts.Singleline,
		FlagIgnorePatternWS: opts.IgnorePatternWhitespace,
	})

	root, err := p.parseRegex()
	if err != nil {
		return nil, nil, err
	}
	if !p.sc.EOF() {
		if p.sc.ConsumeLiteral(")") {
			return nil, nil, newParseError(p.sc, "unmatched closing parenthesis")
		}
		return nil, nil, newParseErrorf(p.sc, "unexpected trailing input %q", p.sc.Remaining())
	}
	for _, task := range p.deferred {
		if err := task(p); err != nil {
			return nil, nil, err
		}
	}
	if opts.RightToLeft {
		root.Invert()
	}
	return root, p.groups, nil
}

// parseRegex parses a sequence optionally followed by `|` and another
// regex, left-associating into a chain of binary Alternation nodes.
func (p *Parser) parseRegex() (Node, error) {
	left, err := p.parseSequence()
	if err != nil {
		return nil, err
	}
	for p.sc.ConsumeLiteral("|") {
		right, err := p.parseSequence()
		if err != nil {
			return nil, err
		}
		left = &Alternation{Left: left, Right: right}
	}
	return left, nil
}

// parseSequence collects atoms until `)`, `|`, or end of pattern.
func (p *Parser) parseSequence() (Node, error) {
	var children []Node
	for {
		p.skipIgnorable()
		if p.sc.EOF() || p.sc.PeekLiteral(")") || p.sc.PeekLiteral("|") {
			break
		}
		atom, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		if atom == nil {
			continue
		}
		atom, err = p.parseRepetition(atom)
		if err != nil {
			return nil, err
		}
		children = append(children, atom)
	}
	return &Sequence{Children: children}, nil
}

func (p *Parser) skipIgnorable() {
	for {
		if p.sc.ConsumeRegexp(reInlineComment) {
			continue
		}
		if p.flags.Has(FlagIgnorePatternWS) {
			ws := p.sc.ConsumeRegexp(reWhitespaceRun)
			lc := p.sc.ConsumeRegexp(reLineComment)
			if ws || lc {
				continue
			}
		}
		return
	}
}

func (p *Parser) startsRepetition() bool {
	return p.sc.PeekLiteral("*") || p.sc.PeekLiteral("+") || p.sc.PeekLiteral("?") || p.sc.PeekRegexp(reCount)
}

// parseRepetition applies a postfix repetition modifier to atom, if
// present. Comments (and, under the x flag, whitespace) may sit between an
// atom and its modifier, and between the modifier and a lazy '?'.
func (p *Parser) parseRepetition(atom Node) (Node, error) {
	p.skipIgnorable()
	min, max, found := 0, 0, false
	switch {
	case p.sc.ConsumeLiteral("*"):
		min, max, found = 0, -1, true
	case p.sc.ConsumeLiteral("+"):
		min, max, found = 1, -1, true
	case p.sc.ConsumeLiteral("?"):
		min, max, found = 0, 1, true
	case p.sc.ConsumeRegexp(reCount):
		m := p.sc.Match()
		n, _ := strconv.Atoi(m[1])
		switch {
		case m[2] == "":
			min, max = n, n
		case m[3] == "":
			min, max = n, -1
		default:
			mm, _ := strconv.Atoi(m[3])
			min, max = n, mm
		}
		found = true
	}
	if !found {
		return atom, nil
	}
	if max != -1 && max < min {
		return nil, newParseErrorf(p.sc, "repetition quantifier range is out of order (max %d < min %d)", max, min)
	}
	p.skipIgnorable()
	lazy := p.sc.ConsumeLiteral("?")
	rep := &Repetition{Child: atom, Min: min, Max: max, Lazy: lazy}
	p.skipIgnorable()
	if p.startsRepetition() {
		return nil, newParseError(p.sc, "nested quantifier: a repetition cannot immediately follow another repetition")
	}
	return rep, nil
}

func (p *Parser) literalNode(r rune) Node {
	return &CharNode{Class: LiteralClass(r), IgnoreCase: p.flags.Has(FlagIgnoreCase)}
}

// parseAtom dispatches on the next character to build a single pattern
// atom.
func (p *Parser) parseAtom() (Node, error) {
	if p.sc.PeekLiteral("*") || p.sc.PeekLiteral("+") {
		return nil, newParseError(p.sc, "quantifier with nothing to repeat")
	}
	if p.sc.PeekLiteral("?") {
		return nil, newParseError(p.sc, "quantifier with nothing to repeat")
	}
	if p.sc.PeekRegexp(reCount) {
		return nil, newParseError(p.sc, "quantifier with nothing to repeat")
	}
	switch {
	case p.sc.ConsumeLiteral("("):
		return p.parseGroup()
	case p.sc.ConsumeLiteral("["):
		return p.parseCharClass()
	case p.sc.ConsumeLiteral("."):
		if p.flags.Has(FlagSingleline) {
			return &CharNode{Class: DotAllClass}, nil
		}
		return &CharNode{Class: DotClass}, nil
	case p.sc.ConsumeLiteral("^"):
		if p.flags.Has(FlagMultiline) {
			return LineStart(), nil
		}
		return StringStart(), nil
	case p.sc.ConsumeLiteral("$"):
		if p.flags.Has(FlagMultiline) {
			return LineEnd(), nil
		}
		return StringEnd(), nil
	case p.sc.ConsumeLiteral("\\"):
		return p.parseEscape()
	default:
		r, _ := p.sc.RuneAt(0)
		p.sc.SetPos(p.sc.Pos() + 1)
		return p.literalNode(r), nil
	}
}

func (p *Parser) readUntil(stop byte) string {
	var sb strings.Builder
	for {
		r, ok := p.sc.RuneAt(0)
		if !ok || (r < 128 && byte(r) == stop) {
			break
		}
		sb.WriteRune(r)
		p.sc.SetPos(p.sc.Pos() + 1)
	}
	return sb.String()
}

// parseScopedBody parses a nested regex under a fresh flags frame, so that
// `(?i)` and friends encountered inside only affect this group, matching
// .NET's "inline options are scoped to the enclosing group" rule.
func (p *Parser) parseScopedBody() (Node, error) {
	p.flags.Push()
	inner, err := p.parseRegex()
	p.flags.Pop()
	if err != nil {
		return nil, err
	}
	return inner, nil
}

func (p *Parser) parseGroupBodyWrap(wrap func(Node) Node) (Node, error) {
	inner, err := p.parseScopedBody()
	if err != nil {
		return nil, err
	}
	if err := p.sc.ExpectLiteral(")", "closing parenthesis"); err != nil {
		return nil, err
	}
	return wrap(inner), nil
}

var reFlags = regexp.MustCompile(`^[imnsx]*(-[imnsx]+)?`)

// parseGroup parses everything that can follow an opening `(`: the bare
// numbered/non-capturing form, and every `(?...)` construct.
func (p *Parser) parseGroup() (Node, error) {
	if !p.sc.ConsumeLiteral("?") {
		var id GroupID = NoGroup
		if !p.flags.Has(FlagExplicitCapture) {
			id = p.groups.Auto()
		}
		return p.parseGroupBodyWrap(func(inner Node) Node { return &GroupNode{ID: id, Child: inner} })
	}

	switch {
	case p.sc.ConsumeLiteral(":"):
		return p.parseGroupBodyWrap(func(inner Node) Node { return &GroupNode{ID: NoGroup, Child: inner} })
	case p.sc.ConsumeLiteral(">"):
		return p.parseGroupBodyWrap(func(inner Node) Node { return &AtomicNode{Child: inner} })
	case p.sc.ConsumeLiteral("<="):
		return p.parseGroupBodyWrap(func(inner Node) Node { return Lookbehind(false, inner) })
	case p.sc.ConsumeLiteral("<!"):
		return p.parseGroupBodyWrap(func(inner Node) Node { return Lookbehind(true, inner) })
	case p.sc.ConsumeLiteral("="):
		return p.parseGroupBodyWrap(func(inner Node) Node { return Lookahead(false, inner) })
	case p.sc.ConsumeLiteral("!"):
		return p.parseGroupBodyWrap(func(inner Node) Node { return Lookahead(true, inner) })
	case p.sc.ConsumeLiteral("<"):
		return p.parseNamedOrBalancing(">")
	case p.sc.ConsumeLiteral("'"):
		return p.parseNamedOrBalancing("'")
	case p.sc.ConsumeLiteral("("):
		return p.parseConditional()
	case p.sc.ConsumeLiteral("#"):
		// Consumed only if skipIgnorable somehow missed it (e.g. at the very
		// start of an alternative branch); treat identically.
		p.readUntil(')')
		p.sc.ConsumeLiteral(")")
		return nil, nil
	default:
		return p.parseInlineFlags()
	}
}

func (p *Parser) readGroupName() (string, error) {
	if !p.sc.ConsumeRegexp(reGroupNameOrNum) {
		return "", newParseError(p.sc, "expected group name")
	}
	return p.sc.Token(), nil
}

// parseNamedOrBalancing handles everything after `(?<` or `(?'`: a plain
// named/numbered capture `name>`, or a balancing group `name-X>` /
// `-X>`.
func (p *Parser) parseNamedOrBalancing(closeLit string) (Node, error) {
	if p.sc.ConsumeLiteral("-") {
		return p.parseBalancing("", closeLit)
	}
	name, err := p.readGroupName()
	if err != nil {
		return nil, err
	}
	if p.sc.ConsumeLiteral("-") {
		return p.parseBalancing(name, closeLit)
	}
	if err := p.sc.ExpectLiteral(closeLit, "closing delimiter of group name"); err != nil {
		return nil, err
	}
	if isDecimal(name) && name[0] == '0' {
		return nil, newParseErrorf(p.sc, "invalid group name %q: numbered group names cannot begin with zero", name)
	}
	id := p.groups.Named(name)
	return p.parseGroupBodyWrap(func(inner Node) Node { return &GroupNode{ID: id, Child: inner} })
}

func (p *Parser) parseBalancing(yName, closeLit string) (Node, error) {
	xName, err := p.readGroupName()
	if err != nil {
		return nil, err
	}
	if err := p.sc.ExpectLiteral(closeLit, "closing delimiter of balancing group header"); err != nil {
		return nil, err
	}
	bal := &BalancingNode{Y: NoGroup}
	if yName != "" {
		if isDecimal(yName) && yName[0] == '0' {
			return nil, newParseErrorf(p.sc, "invalid group name %q: numbered group names cannot begin with zero", yName)
		}
		bal.Y = p.groups.Named(yName)
	}
	pos := p.sc.Pos()
	p.deferred = append(p.deferred, func(pp *Parser) error {
		id, ok := pp.groups.Resolve(xName)
		if !ok {
			return &ParseError{Pattern: pp.sc.pattern, Pos: pos, Msg: fmt.Sprintf("reference to undefined group %q", xName)}
		}
		bal.X = id
		return nil
	})
	return p.parseGroupBodyWrap(func(inner Node) Node { bal.Child = inner; return bal })
}

// parseConditional parses `(?(cond)yes|no)`. cond is either an inline
// assertion sharing the conditional's own closing paren, or a group
// name/number resolved once every group is registered.
func (p *Parser) parseConditional() (Node, error) {
	node := &ConditionalNode{}
	ignoreCase := p.flags.Has(FlagIgnoreCase)

	if p.sc.PeekLiteral("?") {
		cond, err := p.parseConditionAssertion()
		if err != nil {
			return nil, err
		}
		node.CondExpr = cond
	} else {
		name := p.readUntil(')')
		if !p.sc.ConsumeLiteral(")") {
			return nil, newParseError(p.sc, "expected ')' to close conditional test")
		}
		pos := p.sc.Pos()
		p.deferred = append(p.deferred, func(pp *Parser) error {
			if id, ok := pp.groups.Resolve(name); ok {
				node.IsGroupCond = true
				node.Group = id
				return nil
			}
			if isDecimal(name) {
				return &ParseError{Pattern: pp.sc.pattern, Pos: pos, Msg: fmt.Sprintf("reference to undefined group number %q", name)}
			}
			node.CondExpr = Lookahead(false, literalSequence(name, ignoreCase))
			return nil
		})
	}

	// The top-level | inside the conditional separates the branches, so
	// each branch is a plain sequence; alternation within a branch needs
	// its own group. A third alternative is an error, as in .NET.
	p.flags.Push()
	defer p.flags.Pop()
	yes, err := p.parseSequence()
	if err != nil {
		return nil, err
	}
	node.Yes = yes
	if p.sc.ConsumeLiteral("|") {
		no, err := p.parseSequence()
		if err != nil {
			return nil, err
		}
		node.No = no
		if p.sc.PeekLiteral("|") {
			return nil, newParseError(p.sc, "too many alternatives in conditional")
		}
	} else {
		node.No = &Sequence{}
	}
	if err := p.sc.ExpectLiteral(")", "closing parenthesis"); err != nil {
		return nil, err
	}
	return node, nil
}

// parseConditionAssertion parses the `?=`/`?!`/`?<=`/`?<!` forms of a
// conditional's test, sharing the conditional's own closing paren as the
// assertion's closing paren.
func (p *Parser) parseConditionAssertion() (Node, error) {
	p.sc.ConsumeLiteral("?")
	var wrap func(Node) Node
	switch {
	case p.sc.ConsumeLiteral("<="):
		wrap = func(inner Node) Node { return Lookbehind(false, inner) }
	case p.sc.ConsumeLiteral("<!"):
		wrap = func(inner Node) Node { return Lookbehind(true, inner) }
	case p.sc.ConsumeLiteral("="):
		wrap = func(inner Node) Node { return Lookahead(false, inner) }
	case p.sc.ConsumeLiteral("!"):
		wrap = func(inner Node) Node { return Lookahead(true, inner) }
	default:
		return nil, newParseError(p.sc, "expected assertion in conditional test")
	}
	inner, err := p.parseScopedBody()
	if err != nil {
		return nil, err
	}
	if err := p.sc.ExpectLiteral(")", "closing parenthesis"); err != nil {
		return nil, err
	}
	return wrap(inner), nil
}

func literalSequence(text string, ignoreCase bool) Node {
	var children []Node
	for _, r := range text {
		children = append(children, &CharNode{Class: LiteralClass(r), IgnoreCase: ignoreCase})
	}
	return &Sequence{Children: children}
}

// parseInlineFlags parses `(?flags)` and `(?flags:...)`, including the
// `flags-flags` on/off form.
func (p *Parser) parseInlineFlags() (Node, error) {
	p.sc.ConsumeRegexp(reFlags)
	tok := p.sc.Token()
	if tok == "" {
		return nil, newParseError(p.sc, "unrecognized group syntax")
	}
	// The scoped form gets its own frame, so its flags end with the group.
	scoped := p.sc.ConsumeLiteral(":")
	if scoped {
		p.flags.Push()
		defer p.flags.Pop()
	}
	before, after, hasDash := strings.Cut(tok, "-")
	for _, c := range before {
		if !validFlag(byte(c)) {
			return nil, newParseErrorf(p.sc, "unknown inline option %q", string(c))
		}
		p.flags.Set(Flag(c), true)
	}
	if hasDash {
		for _, c := range after {
			if !validFlag(byte(c)) {
				return nil, newParseErrorf(p.sc, "unknown inline option %q", string(c))
			}
			p.flags.Set(Flag(c), false)
		}
	}
	if scoped {
		return p.parseGroupBodyWrap(func(inner Node) Node { return &GroupNode{ID: NoGroup, Child: inner} })
	}
	if err := p.sc.ExpectLiteral(")", "closing parenthesis"); err != nil {
		return nil, err
	}
	return nil, nil
}

// classAtom is one element read from inside `[...]`: either a single rune
// (eligible to anchor a `-` range) or a pre-built shorthand class such as
// `\d`, which a range can never use as an endpoint.
type classAtom struct {
	isChar bool
	r      rune
	cls    *CharClass
}

func (p *Parser) parseClassAtom() (classAtom, error) {
	if p.sc.ConsumeLiteral("\\") {
		return p.parseClassEscapeAtom()
	}
	r, ok := p.sc.RuneAt(0)
	if !ok {
		return classAtom{}, newParseError(p.sc, "unterminated character class")
	}
	p.sc.SetPos(p.sc.Pos() + 1)
	return classAtom{isChar: true, r: r}, nil
}

func (p *Parser) parseClassEscapeAtom() (classAtom, error) {
	r, ok := p.sc.RuneAt(0)
	if !ok {
		return classAtom{}, newParseError(p.sc, "trailing backslash in character class")
	}
	switch r {
	case 'd':
		p.sc.SetPos(p.sc.Pos() + 1)
		return classAtom{cls: DigitClass}, nil
	case 'D':
		p.sc.SetPos(p.sc.Pos() + 1)
		return classAtom{cls: NonDigitClass}, nil
	case 'w':
		p.sc.SetPos(p.sc.Pos() + 1)
		return classAtom{cls: WordClass}, nil
	case 'W':
		p.sc.SetPos(p.sc.Pos() + 1)
		return classAtom{cls: NonWordClass}, nil
	case 's':
		p.sc.SetPos(p.sc.Pos() + 1)
		return classAtom{cls: WhitespaceClass}, nil
	case 'S':
		p.sc.SetPos(p.sc.Pos() + 1)
		return classAtom{cls: NonWhitespaceClass}, nil
	}
	ch, err := ScanCharEscape(p.sc)
	if err != nil {
		return classAtom{}, err
	}
	return classAtom{isChar: true, r: ch}, nil
}

// parseClassMember reads one member of a class body: a shorthand class, a
// `lo-hi` range, or a single literal rune.
func (p *Parser) parseClassMember() (*CharClass, error) {
	first, err := p.parseClassAtom()
	if err != nil {
		return nil, err
	}
	if !first.isChar {
		return first.cls, nil
	}
	if p.sc.PeekLiteral("-") && !p.sc.PeekRune(1, ']') && !p.sc.PeekRune(1, '[') {
		save := p.sc.Pos()
		p.sc.ConsumeLiteral("-")
		second, err := p.parseClassAtom()
		if err != nil {
			return nil, err
		}
		if !second.isChar {
			p.sc.SetPos(save)
			return LiteralClass(first.r), nil
		}
		if second.r < first.r {
			return nil, newParseErrorf(p.sc, "character range %q-%q is out of order", first.r, second.r)
		}
		return RangeClass(first.r, second.r), nil
	}
	return LiteralClass(first.r), nil
}

// parseClassSet parses the body of a `[...]`, including an optional leading
// `^` negation and a trailing `-[...]` subtraction. The closing `]` is consumed by this function.
func (p *Parser) parseClassSet() (*CharClass, error) {
	negate := p.sc.ConsumeLiteral("^")
	var members []*CharClass
	for {
		if p.sc.EOF() {
			return nil, newParseError(p.sc, "unterminated character class")
		}
		if p.sc.PeekLiteral("]") {
			break
		}
		if p.sc.PeekLiteral("-") && p.sc.PeekRune(1, '[') {
			p.sc.ConsumeLiteral("-")
			p.sc.ConsumeLiteral("[")
			sub, err := p.parseClassSet()
			if err != nil {
				return nil, err
			}
			if err := p.sc.ExpectLiteral("]", "closing ']' of character class"); err != nil {
				return nil, err
			}
			base := UnionClass(members...)
			if negate {
				base = NegateClass(base)
			}
			return SubtractClass(base, sub), nil
		}
		cls, err := p.parseClassMember()
		if err != nil {
			return nil, err
		}
		members = append(members, cls)
	}
	p.sc.ConsumeLiteral("]")
	base := UnionClass(members...)
	if negate {
		return NegateClass(base), nil
	}
	return base, nil
}

func (p *Parser) parseCharClass() (Node, error) {
	cls, err := p.parseClassSet()
	if err != nil {
		return nil, err
	}
	return &CharNode{Class: cls, IgnoreCase: p.flags.Has(FlagIgnoreCase)}, nil
}

var (
	reHex2       = regexp.MustCompile(`^[0-9A-Fa-f]{2}`)
	reHex4       = regexp.MustCompile(`^[0-9A-Fa-f]{4}`)
	reDecimalRun = regexp.MustCompile(`^[0-9]+`)
)

// ScanCharEscape parses a single-character escape shared by the main
// sequence grammar, character classes, and Unescape: `\xHH`, `\uHHHH`,
// `\cX`, the short mnemonic escapes, `\0`-led octal, and any other escaped
// punctuation (which simply means itself). `b` maps to backspace here; the
// contexts where \b means a word boundary intercept it before calling this.
func ScanCharEscape(sc *Scanner) (rune, error) {
	r, ok := sc.RuneAt(0)
	if !ok {
		return 0, newParseError(sc, "trailing backslash")
	}
	adv := func() { sc.SetPos(sc.Pos() + 1) }
	switch r {
	case 'x':
		adv()
		if !sc.ConsumeRegexp(reHex2) {
			return 0, newParseError(sc, "expected two hex digits after \\x")
		}
		v, _ := strconv.ParseInt(sc.Token(), 16, 32)
		return rune(v), nil
	case 'u':
		adv()
		if !sc.ConsumeRegexp(reHex4) {
			return 0, newParseError(sc, "expected four hex digits after \\u")
		}
		v, _ := strconv.ParseInt(sc.Token(), 16, 32)
		return rune(v), nil
	case 'c':
		adv()
		cr, ok := sc.RuneAt(0)
		if !ok {
			return 0, newParseError(sc, "expected a control letter after \\c")
		}
		adv()
		return rune(unicode.ToUpper(cr)) ^ 0x40, nil
	case 't':
		adv()
		return '\t', nil
	case 'r':
		adv()
		return '\r', nil
	case 'n':
		adv()
		return '\n', nil
	case 'a':
		adv()
		return '\a', nil
	case 'b':
		adv()
		return '\b', nil
	case 'f':
		adv()
		return '\f', nil
	case 'v':
		adv()
		return '\v', nil
	case 'e':
		adv()
		return 0x1b, nil
	case '0':
		adv()
		val := 0
		for i := 0; i < 2; i++ {
			d, ok := sc.RuneAt(0)
			if !ok || d < '0' || d > '7' {
				break
			}
			val = val*8 + int(d-'0')
			adv()
		}
		return rune(val), nil
	default:
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return 0, newParseErrorf(sc, "unrecognized escape sequence \\%c", r)
		}
		adv()
		return r, nil
	}
}

// parseEscape parses everything that can follow a top-level `\`: anchors,
// shorthand classes, back-references, and single-character escapes
//.
func (p *Parser) parseEscape() (Node, error) {
	r, ok := p.sc.RuneAt(0)
	if !ok {
		return nil, newParseError(p.sc, "trailing backslash")
	}
	adv := func() { p.sc.SetPos(p.sc.Pos() + 1) }
	switch r {
	case 'd':
		adv()
		return &CharNode{Class: DigitClass}, nil
	case 'D':
		adv()
		return &CharNode{Class: NonDigitClass}, nil
	case 'w':
		adv()
		return &CharNode{Class: WordClass}, nil
	case 'W':
		adv()
		return &CharNode{Class: NonWordClass}, nil
	case 's':
		adv()
		return &CharNode{Class: WhitespaceClass}, nil
	case 'S':
		adv()
		return &CharNode{Class: NonWhitespaceClass}, nil
	case 'A':
		adv()
		return StringStart(), nil
	case 'Z':
		adv()
		return StringEnd(), nil
	case 'z':
		adv()
		return AbsoluteEnd(), nil
	case 'G':
		adv()
		return ContiguousMatch(), nil
	case 'b':
		adv()
		return WordBoundary(false), nil
	case 'B':
		adv()
		return WordBoundary(true), nil
	case 'k':
		adv()
		return p.parseNamedBackref()
	}
	if r >= '1' && r <= '9' {
		return p.parseNumericBackref()
	}
	ch, err := ScanCharEscape(p.sc)
	if err != nil {
		return nil, err
	}
	return p.literalNode(ch), nil
}

func (p *Parser) parseNamedBackref() (Node, error) {
	var closeLit string
	switch {
	case p.sc.ConsumeLiteral("<"):
		closeLit = ">"
	case p.sc.ConsumeLiteral("'"):
		closeLit = "'"
	default:
		return nil, newParseError(p.sc, "expected '<' or \"'\" after \\k")
	}
	name, err := p.readGroupName()
	if err != nil {
		return nil, err
	}
	if err := p.sc.ExpectLiteral(closeLit, "closing delimiter of \\k reference"); err != nil {
		return nil, err
	}
	ignoreCase := p.flags.Has(FlagIgnoreCase)
	proxy := &ProxyNode{}
	pos := p.sc.Pos()
	p.deferred = append(p.deferred, func(pp *Parser) error {
		id, ok := pp.groups.Resolve(name)
		if !ok {
			return &ParseError{Pattern: pp.sc.pattern, Pos: pos, Msg: fmt.Sprintf("reference to undefined group name %q", name)}
		}
		proxy.SetTarget(&ReferenceNode{Group: id, IgnoreCase: ignoreCase})
		return nil
	})
	return proxy, nil
}

// parseNumericBackref parses a maximal run of digits after `\` and defers
// disambiguation between "back-reference" and "octal escape" to the
// post-parse pass, once every group is registered.
func (p *Parser) parseNumericBackref() (Node, error) {
	if !p.sc.ConsumeRegexp(reDecimalRun) {
		return nil, newParseError(p.sc, "expected digits")
	}
	digits := p.sc.Token()
	ignoreCase := p.flags.Has(FlagIgnoreCase)
	proxy := &ProxyNode{}
	pos := p.sc.Pos()
	p.deferred = append(p.deferred, func(pp *Parser) error {
		return resolveNumericBackref(pp, proxy, digits, ignoreCase, pos)
	})
	return proxy, nil
}

// resolveNumericBackref implements .NET's disambiguation: try the full
// digit run as a group number, then shrinking prefixes, and finally salvage
// whatever's left as an octal escape followed by literal digits.
func resolveNumericBackref(pp *Parser, proxy *ProxyNode, digits string, ignoreCase bool, pos int) error {
	for n := len(digits); n >= 1; n-- {
		prefix := digits[:n]
		id, ok := pp.groups.Resolve(prefix)
		if !ok {
			continue
		}
		rest := digits[n:]
		if rest == "" {
			proxy.SetTarget(&ReferenceNode{Group: id, IgnoreCase: ignoreCase})
			return nil
		}
		children := []Node{&ReferenceNode{Group: id, IgnoreCase: ignoreCase}}
		for _, c := range rest {
			children = append(children, &CharNode{Class: LiteralClass(c), IgnoreCase: ignoreCase})
		}
		proxy.SetTarget(&Sequence{Children: children})
		return nil
	}

	oct := ""
	for _, c := range digits {
		if len(oct) == 3 || c < '0' || c > '7' {
			break
		}
		oct += string(c)
	}
	var children []Node
	if oct != "" {
		v, _ := strconv.ParseInt(oct, 8, 32)
		children = append(children, &CharNode{Class: LiteralClass(rune(v & 0xFF))})
	}
	for _, c := range digits[len(oct):] {
		children = append(children, &CharNode{Class: LiteralClass(c), IgnoreCase: ignoreCase})
	}
	if len(children) == 0 {
		return &ParseError{Pattern: pp.sc.pattern, Pos: pos, Msg: fmt.Sprintf("reference to undefined group %q", digits)}
	}
	if len(children) == 1 {
		proxy.SetTarget(children[0])
		return nil
	}
	proxy.SetTarget(&Sequence{Children: children})
	return nil
}
