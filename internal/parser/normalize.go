package parser

import "fmt"

// Field defaults applied by Normalize. Parsing records only what the text
// says; an empty field here means "not written".
var fieldDefaults = map[string]string{
	"attribute.type":     "str",
	"parameter.type":     "Any",
	"method.return_type": "None",
}

// Normalize fills every field of spec with its documented default: empty
// containers for missing lists, default types, and a positional "UC{n}" id
// for use cases without one. It mutates spec in place and is idempotent.
func Normalize(spec *Specification) {
	if spec == nil {
		return
	}
	spec.Classes = nonNil(spec.Classes)
	spec.Entities = nonNil(spec.Entities)
	spec.Architecture.Components = nonNil(spec.Architecture.Components)
	spec.Architecture.Connections = nonNil(spec.Architecture.Connections)
	spec.UseCases = nonNil(spec.UseCases)

	for i := range spec.Classes {
		cls := &spec.Classes[i]
		cls.Attributes = nonNil(cls.Attributes)
		cls.Methods = nonNil(cls.Methods)
		for j := range cls.Attributes {
			withDefault(&cls.Attributes[j].Type, "attribute.type")
		}
		for j := range cls.Methods {
			m := &cls.Methods[j]
			m.Parameters = nonNil(m.Parameters)
			withDefault(&m.ReturnType, "method.return_type")
			for k := range m.Parameters {
				withDefault(&m.Parameters[k].Type, "parameter.type")
			}
		}
	}

	for i := range spec.Architecture.Components {
		c := &spec.Architecture.Components[i]
		c.Responsibilities = nonNil(c.Responsibilities)
	}

	for i := range spec.UseCases {
		uc := &spec.UseCases[i]
		if uc.ID == "" {
			uc.ID = fmt.Sprintf("UC%d", i+1)
		}
		uc.Actors = nonNil(uc.Actors)
		uc.Preconditions = nonNil(uc.Preconditions)
		uc.Flow = nonNil(uc.Flow)
		uc.Postconditions = nonNil(uc.Postconditions)
	}
}

func withDefault(v *string, field string) {
	if *v == "" {
		*v = fieldDefaults[field]
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
