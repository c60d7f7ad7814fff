package types

// Assignable reports whether a value of type source may be used where
// target is expected (§4.5's assignability rules): any is bidirectionally
// compatible, never is a bottom, structural equality is by printed form,
// unions use any-compatible-member on the target side and all-compatible-
// member on the source side, and a literal is compatible with its runtime
// typeof primitive.
func Assignable(target, source *Type) bool {
	if target == nil {
		target = Any
	}
	if source == nil {
		source = Any
	}
	if target.Kind == KAny || source.Kind == KAny {
		return true
	}
	if source.Kind == KNever {
		return true
	}
	if target.Kind == KUnknown {
		return true
	}

	if source.Kind == KUnion {
		for _, m := range source.Members {
			if !Assignable(target, m) {
				return false
			}
		}
		return true
	}
	if target.Kind == KUnion {
		for _, m := range target.Members {
			if Assignable(m, source) {
				return true
			}
		}
		return false
	}

	if source.Kind == KLiteral && target.Kind != KLiteral {
		return target.Name == literalPrimitiveName(source)
	}

	if target.Print() == source.Print() {
		return true
	}

	if target.Kind == KObject && (source.Kind == KObject || source.Kind == KClass) {
		for _, tf := range target.Fields {
			sf, ok := source.Field(tf.Name)
			if !ok {
				if tf.Optional {
					continue
				}
				return false
			}
			if !Assignable(tf.Type, sf) {
				return false
			}
		}
		return true
	}

	if target.Kind == KArray && source.Kind == KArray {
		return Assignable(target.Elem, source.Elem)
	}

	return false
}

// literalPrimitiveName returns the runtime typeof name backing a literal
// type's raw spelling (§4.5: "literal to primitive works by runtime
// typeof").
func literalPrimitiveName(lit *Type) string {
	v := lit.LiteralValue
	switch {
	case v == "true" || v == "false":
		return "boolean"
	case len(v) > 0 && (v[0] == '"' || v[0] == '\''):
		return "string"
	default:
		return "number"
	}
}
