package interp

import (
	"sort"
	"strconv"

	"github.com/maruel/natural"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// registerDomainBuiltins installs the supplemental globals named in
// SPEC_FULL.md's DOMAIN STACK section: jsonEncode/jsonDecode, built on the
// pack's tidwall/gjson and tidwall/sjson rather than encoding/json.
func registerDomainBuiltins(i *Interpreter) {
	i.RegisterFunction("jsonEncode", func(i *Interpreter, args []Value) Value {
		if len(args) != 1 {
			return i.newError(TooFewArguments, "jsonEncode() expects 1 argument, got %d", len(args))
		}
		text, err := jsonEncode(args[0])
		if err != nil {
			return i.newError(UndefinedVariable, "jsonEncode: %s", err)
		}
		return &StringValue{Value: text}
	})
	i.RegisterFunction("jsonDecode", func(i *Interpreter, args []Value) Value {
		if len(args) != 1 {
			return i.newError(TooFewArguments, "jsonDecode() expects 1 argument, got %d", len(args))
		}
		s, ok := Unwrap(args[0]).(*StringValue)
		if !ok {
			return i.newError(UndefinedVariable, "jsonDecode() expects a string")
		}
		if !gjson.Valid(s.Value) {
			return i.newError(UndefinedVariable, "jsonDecode: invalid JSON")
		}
		return jsonDecode(gjson.Parse(s.Value))
	})
}

// jsonEncode walks a lagoon value and builds its JSON text incrementally
// with sjson.SetRaw, rather than marshaling through encoding/json or a
// hand-rolled writer. StructInstance values encode as objects keyed by
// their definition's declared field order.
func jsonEncode(v Value) (string, error) {
	switch val := Unwrap(v).(type) {
	case *NullValue:
		return "null", nil
	case *BoolValue:
		return strconv.FormatBool(val.Value), nil
	case *NumberValue:
		return strconv.FormatFloat(val.Value, 'g', -1, 64), nil
	case *StringValue:
		return strconv.Quote(val.Value), nil
	case *ListValue:
		doc := "[]"
		for idx, el := range val.Elements {
			raw, err := jsonEncode(el)
			if err != nil {
				return "", err
			}
			doc, err = sjson.SetRaw(doc, strconv.Itoa(idx), raw)
			if err != nil {
				return "", err
			}
		}
		return doc, nil
	case *StructInstanceValue:
		doc := "{}"
		for _, field := range val.Def.Fields {
			fv, _ := val.Env.Get(field)
			raw, err := jsonEncode(fv)
			if err != nil {
				return "", err
			}
			doc, err = sjson.SetRaw(doc, field, raw)
			if err != nil {
				return "", err
			}
		}
		return doc, nil
	default:
		return strconv.Quote(val.String()), nil
	}
}

// jsonDecode converts a parsed gjson.Result into a lagoon value. Decoded
// objects become a StructInstance of a synthesized `__json` struct
// definition (one per call) whose field order matches the key order gjson
// reports, so the decoded object exposes its fields through ordinary
// `.field` access.
func jsonDecode(r gjson.Result) Value {
	switch {
	case r.IsArray():
		var elements []Value
		r.ForEach(func(_, value gjson.Result) bool {
			elements = append(elements, jsonDecode(value))
			return true
		})
		return &ListValue{Elements: elements}
	case r.IsObject():
		def := &StructValue{Name: "__json", Methods: make(map[string]Value)}
		env := NewEnvironment()
		r.ForEach(func(key, value gjson.Result) bool {
			name := key.String()
			def.Fields = append(def.Fields, name)
			env.Set(name, jsonDecode(value))
			return true
		})
		return &StructInstanceValue{Def: def, Env: env}
	case r.Type == gjson.Null:
		return Null
	case r.Type == gjson.True || r.Type == gjson.False:
		return &BoolValue{Value: r.Bool()}
	case r.Type == gjson.Number:
		return &NumberValue{Value: r.Float()}
	default:
		return &StringValue{Value: r.String()}
	}
}

var collator = collate.New(language.Und)

// builtinLocaleCompare implements String.localeCompare(other), built on
// golang.org/x/text/collate and golang.org/x/text/language.
func builtinLocaleCompare(i *Interpreter, recv Value, args []Value) Value {
	other := argString(args, 0)
	return &NumberValue{Value: float64(collator.CompareString(ToLagoonString(recv), other))}
}

// builtinNormalize implements String.normalize(form), built on
// golang.org/x/text/unicode/norm.
func builtinNormalize(i *Interpreter, recv Value, args []Value) Value {
	s := ToLagoonString(recv)
	form := "NFC"
	if len(args) > 0 {
		form = argString(args, 0)
	}
	var f norm.Form
	switch form {
	case "NFD":
		f = norm.NFD
	case "NFKC":
		f = norm.NFKC
	case "NFKD":
		f = norm.NFKD
	default:
		f = norm.NFC
	}
	return &StringValue{Value: f.String(s)}
}

// builtinSortNatural implements List.sortNatural(), built on
// maruel/natural for human-friendly ordering ("file2" before "file10").
func builtinSortNatural(i *Interpreter, recv Value, args []Value) Value {
	src := asList(recv).Elements
	strs := make([]string, len(src))
	for idx, v := range src {
		strs[idx] = ToLagoonString(v)
	}
	sort.Slice(strs, func(a, b int) bool { return natural.Less(strs[a], strs[b]) })
	out := make([]Value, len(strs))
	for idx, s := range strs {
		out[idx] = &StringValue{Value: s}
	}
	return &ListValue{Elements: out}
}
