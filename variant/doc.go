// Package variant pre-generates specialized implementations of an operation
// for every combination of its boolean feature flags.
//
// A family is declared once with a Descriptor: a base name, call
// parameters, flag names and a body template. Generation walks the powerset
// of the flags, fixes each flag to a constant and resolves every
// conditional in the template for that subset. The result is 2^len(Flags)
// variants whose bodies contain only literal text and parameter
// references, so calling one never branches on a flag.
//
// # Template Syntax
//
// Literal text is copied verbatim. Parameters are substituted at call time:
//
//	Hello ${name}
//
// Conditionals are resolved at generation time. elsif and else are
// optional and conditionals nest:
//
//	{% if formal %}Good day{% elsif terse %}Hi{% else %}Hello{% end %}
//
// Conditions combine declared flags with ! (or not), && (or and),
// || (or or), parentheses and the constants true and false:
//
//	{% if escape && !(raw or preserve) %}...{% end %}
//
// A template can reject a flag combination outright; reaching the tag for
// any subset fails generation of the whole family:
//
//	{% if inline && block %}{% error "inline and block are exclusive" %}{% end %}
//
// Whitespace outside tags is significant. There is no escape for a literal
// {% or ${.
//
// # Example
//
//	set, err := variant.Generate(variant.Descriptor{
//	    Name:     "greet",
//	    Params:   []string{"name"},
//	    Flags:    []string{"formal"},
//	    Template: "{% if formal %}Good day, ${name}.{% else %}Hi ${name}!{% end %}",
//	})
//
//	v, _ := variant.LookupName("greet_true")
//	out, _ := v.Call("Ana") // "Good day, Ana."
//
// # Naming
//
// A variant is named by its base name followed by each flag value, in
// declaration order, rendered as true or false and joined with "_":
//
//	greet_true
//	render_false_true
//
// Name builds the same string, so a caller that knows its flags can look a
// variant up without walking the registry.
//
// # Errors
//
// Malformed templates, undeclared flags or parameters and error tags
// produce a *TemplateError naming the family, the subset being evaluated
// and the template position. Nothing of a failing family is registered.
// Invalid descriptors and name collisions produce a *ConfigurationError;
// unknown families, names or assignments a *LookupError. All of them match
// the package sentinels with errors.Is.
//
// # Concurrency
//
// Generate families during startup. After that, lookups and calls are
// read-only and safe for concurrent use.
//
// # Descriptor Files
//
// Families can be declared in YAML, TOML or JSON files and loaded with
// LoadFile, LoadDir or Registry.GenerateFiles. Schema describes the file
// format. Registry.Watch generates families from files as they appear in a
// directory. GenerateGo turns descriptors into Go source ahead of time.
package variant
