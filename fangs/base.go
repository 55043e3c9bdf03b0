package fangs

import "github.com/yourusername/ohkami/core"

// Base is an embeddable no-op core.Fang: a fang whose work is entirely one
// side of Fore/Back (or, like Recovery and Timeout, entirely in Wrap) can
// embed Base and override only the method it needs, per core.Fang's own
// doc comment.
type Base struct{}

func (Base) Fore(req *core.Request) *core.Response     { return nil }
func (Base) Back(req *core.Request, res *core.Response) {}
