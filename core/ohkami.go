package core

// Ohkami is the builder spec.md §4.7 describes: "a builder whose inputs are
// (a) a tuple of fangs and (b) a set of (pattern, method-handler-bundle)
// pairs". Registration methods accumulate routes/mounts lazily; nothing is
// parsed against the shared trie until Build assembles the whole composer
// tree in one pass, so a pattern or mount error surfaces from Build rather
// than from whichever registration call happened to trigger it.
type Ohkami struct {
	fangs    []Fang
	routes   []routeEntry
	children []mountedChild
	err      error
}

type routeEntry struct {
	method  Method
	segs    []segment
	raw     string
	handler Handler
}

type mountedChild struct {
	prefixSegs []segment
	prefixRaw  string
	child      *Ohkami
}

// New creates a composer with the given fangs attached at its own root
// (spec.md §4.7: "the fang tuple is attached to the composer's root node").
func New(fangs ...Fang) *Ohkami {
	return &Ohkami{fangs: fangs}
}

func (o *Ohkami) handle(m Method, pattern string, h Handler) *Ohkami {
	if o.err != nil {
		return o
	}
	segs, err := parsePattern(pattern)
	if err != nil {
		o.err = err
		return o
	}
	o.routes = append(o.routes, routeEntry{method: m, segs: segs, raw: pattern, handler: h})
	return o
}

func (o *Ohkami) GET(pattern string, h Handler) *Ohkami     { return o.handle(GET, pattern, h) }
func (o *Ohkami) HEAD(pattern string, h Handler) *Ohkami    { return o.handle(HEAD, pattern, h) }
func (o *Ohkami) POST(pattern string, h Handler) *Ohkami    { return o.handle(POST, pattern, h) }
func (o *Ohkami) PUT(pattern string, h Handler) *Ohkami     { return o.handle(PUT, pattern, h) }
func (o *Ohkami) PATCH(pattern string, h Handler) *Ohkami   { return o.handle(PATCH, pattern, h) }
func (o *Ohkami) DELETE(pattern string, h Handler) *Ohkami  { return o.handle(DELETE, pattern, h) }
func (o *Ohkami) OPTIONS(pattern string, h Handler) *Ohkami { return o.handle(OPTIONS, pattern, h) }

// By mounts child's routes and fangs under prefix (spec.md §4.7: "two
// composers compose via prefix.By(child) which mounts the child's tries
// under prefix and unions fangs").
func (o *Ohkami) By(prefix string, child *Ohkami) *Ohkami {
	if o.err != nil {
		return o
	}
	segs, err := parsePattern(prefix)
	if err != nil {
		o.err = err
		return o
	}
	o.children = append(o.children, mountedChild{prefixSegs: segs, prefixRaw: prefix, child: child})
	return o
}

// Build finalizes the composer tree into an immutable Radix matcher
// (spec.md §4.7: "the composer finalizes by lowering tries to radix form").
func (o *Ohkami) Build() (*Radix, error) {
	tr := newTrie()
	if err := o.insertInto(tr, nil, ""); err != nil {
		return nil, err
	}
	return compileTrie(tr), nil
}

// RouteInfo is one row of a composer's route table (SPEC_FULL.md §4.10:
// "prints the compiled route table (method, pattern, fang count)").
type RouteInfo struct {
	Method    Method
	Pattern   string
	FangCount int
}

// RouteTable walks the builder tree (not the compiled Radix, which no
// longer carries per-composer boundaries once folded) and reports every
// registered route with the number of fangs that wrap it, outermost
// composer first. Returns o.err's surfaced routes as of whatever state the
// builder is in; callers that need Build's own error should still call
// Build.
func (o *Ohkami) RouteTable() []RouteInfo {
	var rows []RouteInfo
	o.collectRoutes("", len(o.fangs), &rows)
	return rows
}

func (o *Ohkami) collectRoutes(prefixRaw string, fangCount int, rows *[]RouteInfo) {
	for _, re := range o.routes {
		*rows = append(*rows, RouteInfo{Method: re.method, Pattern: prefixRaw + re.raw, FangCount: fangCount})
	}
	for _, mc := range o.children {
		mc.child.collectRoutes(prefixRaw+mc.prefixRaw, fangCount+len(mc.child.fangs), rows)
	}
}

// insertInto recursively flattens the composer tree into tr. prefixSegs and
// prefixRaw are the full path accumulated from the root composer down to
// (but not including) o; each composer's own fangs attach at its own full
// prefix, outermost composer first, matching the nesting a request would
// actually pass through.
func (o *Ohkami) insertInto(tr *trie, prefixSegs []segment, prefixRaw string) error {
	if o.err != nil {
		return o.err
	}
	if err := tr.attachFangs(prefixSegs, o.fangs); err != nil {
		return err
	}
	for _, re := range o.routes {
		full := make([]segment, 0, len(prefixSegs)+len(re.segs))
		full = append(full, prefixSegs...)
		full = append(full, re.segs...)
		if err := tr.insert(re.method, prefixRaw+re.raw, full, re.handler); err != nil {
			return err
		}
	}
	for _, mc := range o.children {
		childSegs := make([]segment, 0, len(prefixSegs)+len(mc.prefixSegs))
		childSegs = append(childSegs, prefixSegs...)
		childSegs = append(childSegs, mc.prefixSegs...)
		if err := mc.child.insertInto(tr, childSegs, prefixRaw+mc.prefixRaw); err != nil {
			return err
		}
	}
	return nil
}
