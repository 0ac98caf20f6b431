package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/bytedance/sonic"
	"github.com/sirupsen/logrus"

	"crud-mcp/internal/gateway"
)

var errUnknownTool = errors.New("unknown tool")

// prettyJSON renders tool output with stable key order and without HTML or
// non-ASCII escaping.
var prettyJSON = sonic.Config{SortMapKeys: true}.Froze()

// Dispatcher maps tool names onto backend requests and renders every
// outcome as text. Each call is independent; the dispatcher holds no
// mutable state and is safe for concurrent use.
type Dispatcher struct {
	tools   map[string]toolDef
	order   []string
	clients map[string]*gateway.Client // keyed by resource plural
	log     *logrus.Logger
}

// NewDispatcher wires the movie and task adapters against their backend
// base URLs. If log is nil the standard logger is used.
func NewDispatcher(movieBase, taskBase string, log *logrus.Logger) *Dispatcher {
	if log == nil {
		log = logrus.StandardLogger()
	}
	d := &Dispatcher{
		tools: map[string]toolDef{},
		clients: map[string]*gateway.Client{
			Movies.Plural: gateway.New(movieBase, log),
			Tasks.Plural:  gateway.New(taskBase, log),
		},
		log: log,
	}
	for _, res := range []Resource{Movies, Tasks} {
		for _, op := range []operation{opList, opGet, opCreate, opUpdate, opDelete} {
			t := toolDef{res: res, op: op}
			d.tools[t.name()] = t
			d.order = append(d.order, t.name())
		}
	}
	return d
}

// Tools returns the published tool definitions in registration order.
func (d *Dispatcher) Tools() []Tool {
	out := make([]Tool, 0, len(d.order))
	for _, name := range d.order {
		t := d.tools[name]
		out = append(out, Tool{
			Name:        name,
			Description: t.description(),
			InputSchema: t.inputSchema(),
		})
	}
	return out
}

// Call runs one tool invocation. The returned string is the complete,
// host-visible result; an error is returned only for an unknown tool or
// unusable arguments, never for a backend or transport failure.
func (d *Dispatcher) Call(ctx context.Context, name string, args map[string]any) (string, error) {
	t, ok := d.tools[name]
	if !ok {
		return "", fmt.Errorf("%w %q", errUnknownTool, name)
	}

	path := t.res.BasePath
	var id int
	if t.takesID() {
		var err error
		id, err = intArg(args, t.res.IDArg)
		if err != nil {
			return "", err
		}
		path = fmt.Sprintf("%s/%d", t.res.BasePath, id)
	}

	var body map[string]any
	if t.takesFields() {
		var err error
		body, err = t.res.attributes(args)
		if err != nil {
			return "", err
		}
	}

	res := d.clients[t.res.Plural].Do(ctx, t.method(), path, body)
	d.log.WithFields(logrus.Fields{"tool": name, "status": res.Status}).Info("tool call")
	return t.render(res, id, path), nil
}

// render applies the uniform presentation policy: transport failure, then
// not-found, then any other error status, then success.
func (t toolDef) render(res gateway.Result, id int, path string) string {
	if res.Status == 0 {
		return fmt.Sprintf("Transport error while %s %s:\n%s", t.method(), path, pretty(res.Body))
	}
	if res.Status == http.StatusNotFound && t.takesID() {
		return fmt.Sprintf("%s %d not found.", t.res.Label, id)
	}
	if res.Status >= http.StatusBadRequest {
		target := t.res.Name
		if t.op == opList {
			target = t.res.Plural
		}
		if t.takesID() {
			target = fmt.Sprintf("%s %d", t.res.Name, id)
		}
		return fmt.Sprintf("Error %d %s %s:\n%s", res.Status, t.op.gerund(), target, pretty(res.Body))
	}
	switch t.op {
	case opCreate:
		return fmt.Sprintf("%s created:\n%s", t.res.Label, pretty(res.Body))
	case opUpdate:
		return fmt.Sprintf("%s updated:\n%s", t.res.Label, pretty(res.Body))
	case opDelete:
		return fmt.Sprintf("%s %d deleted (status %d).", t.res.Label, id, res.Status)
	default:
		return pretty(res.Body)
	}
}

// attributes picks exactly the declared fields out of the host-supplied
// arguments; extras are dropped and optional fields fall back to their
// declared default.
func (r Resource) attributes(args map[string]any) (map[string]any, error) {
	body := make(map[string]any, len(r.Fields))
	for _, f := range r.Fields {
		if v, ok := args[f.Name]; ok {
			body[f.Name] = v
			continue
		}
		if f.Required {
			return nil, fmt.Errorf("missing required argument %q", f.Name)
		}
		if f.Default != nil {
			body[f.Name] = f.Default
		}
	}
	return body, nil
}

func intArg(args map[string]any, key string) (int, error) {
	v, ok := args[key]
	if !ok {
		return 0, fmt.Errorf("missing required argument %q", key)
	}
	switch n := v.(type) {
	case float64:
		return int(n), nil
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case string:
		i, err := strconv.Atoi(n)
		if err != nil {
			return 0, fmt.Errorf("argument %q must be an integer", key)
		}
		return i, nil
	}
	return 0, fmt.Errorf("argument %q must be an integer", key)
}

// pretty renders a value as 2-space indented JSON. It never fails: values
// that cannot be marshalled fall back to their plain string form.
func pretty(v any) string {
	out, err := prettyJSON.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(out)
}
