package server

import (
	"net/http"

	"github.com/mark3labs/mcp-go/mcp"
)

// Field is one backend-defined attribute, forwarded opaquely on create and
// update.
type Field struct {
	Name        string
	Type        string // "string", "number" or "boolean"
	Description string
	Required    bool
	Default     any
}

// Resource describes one backend collection. The five CRUD tools for a
// collection are generated from this descriptor; movies and tasks differ
// only in their values here.
type Resource struct {
	Name     string // singular, used in tool names and messages ("movie")
	Plural   string // collection name, used in the list tool ("movies")
	Label    string // capitalized singular, used in messages ("Movie")
	BasePath string // request path of the collection ("/movies")
	IDArg    string // name of the id argument ("movie_id")
	Fields   []Field
}

// Movies and Tasks are the two collections served by the backend.
var (
	Movies = Resource{
		Name:     "movie",
		Plural:   "movies",
		Label:    "Movie",
		BasePath: "/movies",
		IDArg:    "movie_id",
		Fields: []Field{
			{Name: "title", Type: "string", Description: "Movie title", Required: true},
			{Name: "year", Type: "number", Description: "Release year", Required: true},
			{Name: "rating", Type: "number", Description: "Rating as float (e.g., 8.6)", Required: true},
		},
	}

	Tasks = Resource{
		Name:     "task",
		Plural:   "tasks",
		Label:    "Task",
		BasePath: "/tasks",
		IDArg:    "task_id",
		Fields: []Field{
			{Name: "title", Type: "string", Description: "Task title", Required: true},
			{Name: "done", Type: "boolean", Description: "Whether the task is completed", Default: false},
		},
	}
)

type operation int

const (
	opList operation = iota
	opGet
	opCreate
	opUpdate
	opDelete
)

func (o operation) gerund() string {
	switch o {
	case opList:
		return "listing"
	case opGet:
		return "getting"
	case opCreate:
		return "creating"
	case opUpdate:
		return "updating"
	default:
		return "deleting"
	}
}

// toolDef binds one operation to one resource; the full dispatch table is
// ten of these.
type toolDef struct {
	res Resource
	op  operation
}

func (t toolDef) name() string {
	switch t.op {
	case opList:
		return "get_" + t.res.Plural
	case opGet:
		return "get_" + t.res.Name
	case opCreate:
		return "create_" + t.res.Name
	case opUpdate:
		return "update_" + t.res.Name
	default:
		return "delete_" + t.res.Name
	}
}

func (t toolDef) description() string {
	switch t.op {
	case opList:
		return "Get all " + t.res.Plural + " from the backend. Returns a pretty JSON string of the list."
	case opGet:
		return "Get a single " + t.res.Name + " by its ID."
	case opCreate:
		return "Create a new " + t.res.Name + "."
	case opUpdate:
		return "Update an existing " + t.res.Name + " by ID."
	default:
		return "Delete a " + t.res.Name + " by ID."
	}
}

func (t toolDef) method() string {
	switch t.op {
	case opCreate:
		return http.MethodPost
	case opUpdate:
		return http.MethodPut
	case opDelete:
		return http.MethodDelete
	default:
		return http.MethodGet
	}
}

// takesID reports whether the operation addresses a single record.
func (t toolDef) takesID() bool {
	return t.op != opList && t.op != opCreate
}

// takesFields reports whether the operation submits attributes as a body.
func (t toolDef) takesFields() bool {
	return t.op == opCreate || t.op == opUpdate
}

// inputSchema builds the JSON-schema object published on the HTTP tool
// listing.
func (t toolDef) inputSchema() map[string]any {
	props := map[string]any{}
	var required []string
	if t.takesID() {
		props[t.res.IDArg] = map[string]any{
			"type":        "integer",
			"description": "The numeric ID of the " + t.res.Name,
		}
		required = append(required, t.res.IDArg)
	}
	if t.takesFields() {
		for _, f := range t.res.Fields {
			p := map[string]any{"type": f.Type, "description": f.Description}
			if f.Default != nil {
				p["default"] = f.Default
			}
			props[f.Name] = p
			if f.Required {
				required = append(required, f.Name)
			}
		}
	}
	schema := map[string]any{"type": "object", "properties": props}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

// mcpTool builds the protocol-level tool declaration.
func (t toolDef) mcpTool() mcp.Tool {
	opts := []mcp.ToolOption{mcp.WithDescription(t.description())}
	if t.takesID() {
		opts = append(opts, mcp.WithNumber(t.res.IDArg,
			mcp.Required(),
			mcp.Description("The numeric ID of the "+t.res.Name),
		))
	}
	if t.takesFields() {
		for _, f := range t.res.Fields {
			var po []mcp.PropertyOption
			if f.Required {
				po = append(po, mcp.Required())
			}
			if f.Description != "" {
				po = append(po, mcp.Description(f.Description))
			}
			switch f.Type {
			case "boolean":
				if d, ok := f.Default.(bool); ok {
					po = append(po, mcp.DefaultBool(d))
				}
				opts = append(opts, mcp.WithBoolean(f.Name, po...))
			case "string":
				if d, ok := f.Default.(string); ok {
					po = append(po, mcp.DefaultString(d))
				}
				opts = append(opts, mcp.WithString(f.Name, po...))
			default:
				if d, ok := f.Default.(float64); ok {
					po = append(po, mcp.DefaultNumber(d))
				}
				opts = append(opts, mcp.WithNumber(f.Name, po...))
			}
		}
	}
	return mcp.NewTool(t.name(), opts...)
}
