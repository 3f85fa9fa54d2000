package intent

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/xeipuuv/gojsonschema"
)

// ErrDecode is returned when surviving parameters cannot be decoded.
var ErrDecode = errors.New("decode parameters")

// maxTextLength bounds any string slot echoed back to the user.
const maxTextLength = 200

// rootContext is how gojsonschema names the document itself.
const rootContext = "(root)"

// FindRolesParams are the slots of Find Roles.
type FindRolesParams struct {
	Practice string `mapstructure:"practice"`
	Location string `mapstructure:"location"`
}

// EligibilityParams are the slots of Eligibility Check. Year and experience
// stay raw; the eligibility package normalizes them.
type EligibilityParams struct {
	Degree          string `mapstructure:"degree"`
	GradYear        any    `mapstructure:"grad_year"`
	ExperienceYears any    `mapstructure:"experience_years"`
}

// TimeslotParams are the slots of the pick-slot and reschedule intents.
type TimeslotParams struct {
	Timeslot string `mapstructure:"timeslot"`
}

// ApplicationStatusParams are the slots of Application Status.
type ApplicationStatusParams struct {
	ApplicationID string `mapstructure:"application_id"`
}

// SearchRolesParams are the slots of Search Roles.
type SearchRolesParams struct {
	Keyword  string `mapstructure:"keyword"`
	Practice string `mapstructure:"practice"`
	Location string `mapstructure:"location"`
}

// PracticeInfoParams are the slots of Practice Info.
type PracticeInfoParams struct {
	Practice string `mapstructure:"practice"`
}

// DiscoverParams are the slots of Discover Roles.
type DiscoverParams struct {
	Interest string `mapstructure:"interest"`
	Location string `mapstructure:"location"`
}

// field declares one optional slot. Every slot accepts a string, a number or
// null; text slots additionally cap string length.
type field struct {
	name string
	text bool
}

func text(name string) field  { return field{name: name, text: true} }
func loose(name string) field { return field{name: name} }

var fields = map[Kind][]field{
	FindRoles:         {text("practice"), text("location")},
	EligibilityCheck:  {text("degree"), loose("grad_year"), loose("experience_years")},
	SchedulePick:      {text("timeslot")},
	Reschedule:        {text("timeslot")},
	ApplicationStatus: {text("application_id")},
	SearchRoles:       {text("keyword"), text("practice"), text("location")},
	PracticeInfo:      {text("practice")},
	DiscoverRoles:     {text("interest"), text("location")},
}

var schemas = func() map[Kind]*gojsonschema.Schema {
	out := make(map[Kind]*gojsonschema.Schema, len(fields))
	for k, fs := range fields {
		props := make(map[string]any, len(fs))
		for _, f := range fs {
			p := map[string]any{"type": []any{"string", "number", "null"}}
			if f.text {
				p["maxLength"] = maxTextLength
			}
			props[f.name] = p
		}
		doc := map[string]any{
			"type":                 "object",
			"properties":           props,
			"additionalProperties": true,
		}
		s, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(doc))
		if err != nil {
			panic(fmt.Sprintf("intent %s: invalid parameter schema: %v", k, err))
		}
		out[k] = s
	}
	return out
}()

// Fields lists the slot names declared for k, sorted.
func Fields(k Kind) []string {
	fs := fields[k]
	out := make([]string, 0, len(fs))
	for _, f := range fs {
		out = append(out, f.name)
	}
	sort.Strings(out)
	return out
}

// Decode validates raw against the schema declared for k, drops every
// declared slot that fails it, and decodes the rest into out (a pointer to
// one of the *Params structs). Dropped slot names are returned sorted so the
// caller can log them; they behave exactly like absent slots.
func Decode(k Kind, raw map[string]any, out any) ([]string, error) {
	clean := make(map[string]any, len(raw))
	for key, v := range raw {
		clean[key] = v
	}

	var dropped []string
	if schema, ok := schemas[k]; ok && len(clean) > 0 {
		result, err := schema.Validate(gojsonschema.NewGoLoader(clean))
		if err != nil {
			// The document itself could not be loaded; keep only the
			// declared slots that are plain scalars.
			dropped = dropNonScalar(k, clean)
		} else if !result.Valid() {
			seen := make(map[string]bool)
			for _, desc := range result.Errors() {
				name := rootField(desc.Field())
				if name == "" || seen[name] {
					continue
				}
				seen[name] = true
				delete(clean, name)
				dropped = append(dropped, name)
			}
		}
	}
	sort.Strings(dropped)

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
		Result:           out,
	})
	if err != nil {
		return dropped, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if err := dec.Decode(clean); err != nil {
		return dropped, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return dropped, nil
}

// rootField turns a gojsonschema field path like "practice" or
// "practice.0" into the top-level slot name. "(root)" yields "".
func rootField(path string) string {
	if path == "" || path == rootContext {
		return ""
	}
	if i := strings.IndexByte(path, '.'); i >= 0 {
		return path[:i]
	}
	return path
}

func dropNonScalar(k Kind, clean map[string]any) []string {
	var dropped []string
	for _, f := range fields[k] {
		v, ok := clean[f.name]
		if !ok || v == nil {
			continue
		}
		switch v.(type) {
		case string, float64, float32, int, int32, int64:
			continue
		}
		delete(clean, f.name)
		dropped = append(dropped, f.name)
	}
	return dropped
}
