package main

import (
	"strconv"
	"sync"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/yourusername/ohkami/core"
	"github.com/yourusername/ohkami/fangs"
)

// demoUser is the sample record the demo server hands back from
// /users and /users/:index, generated with gofakeit the way the pack's own
// mock server generates placeholder fields (see
// onurartan-mockserver/server/utils.go's processTemplateJSON).
type demoUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// demoDataset holds the in-memory users the demo server serves. Built once
// at startup from the TOML config's demo_users field (default 10) so
// repeated requests see a stable set.
type demoDataset struct {
	mu    sync.RWMutex
	users []demoUser
}

func newDemoDataset(size int) *demoDataset {
	if size <= 0 {
		size = 10
	}
	users := make([]demoUser, size)
	for i := range users {
		users[i] = demoUser{
			ID:    gofakeit.UUID(),
			Name:  gofakeit.Name(),
			Email: gofakeit.Email(),
		}
	}
	return &demoDataset{users: users}
}

func (d *demoDataset) all() []demoUser {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]demoUser, len(d.users))
	copy(out, d.users)
	return out
}

func (d *demoDataset) byIndex(i int) (demoUser, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if i < 0 || i >= len(d.users) {
		return demoUser{}, false
	}
	return d.users[i], true
}

// buildDemo assembles the demo Ohkami: three hello routes (/, /greet/:name,
// /health) plus a gofakeit-backed /users listing, wrapped in the same Recovery+Logger pair
// every ohkami program is expected to carry (DESIGN.md: ambient stack is
// never dropped just because this is a demo).
func buildDemo(dataset *demoDataset) *core.Ohkami {
	o := core.New(
		fangs.NewRecovery(fangs.DefaultRecoveryConfig()),
		fangs.NewLogger(fangs.DefaultLoggerConfig()),
	)

	o.GET("/", core.Bind0(func() core.PlainText {
		return "hello, ohkami"
	}))

	o.GET("/greet/:name", core.Bind1(func(name core.StringParam) core.PlainText {
		return core.PlainText("hello, " + string(name))
	}))

	o.GET("/health", core.Bind0(func() core.JSONOf {
		return core.JSONOf{Value: map[string]string{"status": "ok"}}
	}))

	o.GET("/users", func(req *core.Request) *core.Response {
		res, err := core.OK().WithJSON(dataset.all())
		if err != nil {
			return core.InternalServerError().WithText(err.Error())
		}
		return res
	})

	o.GET("/users/:index", func(req *core.Request) *core.Response {
		raw, ok := req.Param(0)
		if !ok {
			return core.BadRequest().WithText("missing index")
		}
		i, err := strconv.Atoi(raw)
		if err != nil {
			return core.BadRequest().WithText("index must be an integer")
		}
		user, ok := dataset.byIndex(i)
		if !ok {
			return core.NotFound().WithText("no such user")
		}
		res, err := core.OK().WithJSON(user)
		if err != nil {
			return core.InternalServerError().WithText(err.Error())
		}
		return res
	})

	return o
}
