/*
Package marker parses the marker comments that turn a type declaration into a
marker item.

Marker comments are line comments that start with `// +` followed by the
configured prefix:

	// Fruit is a single piece of fruit.
	//
	// +collection:name=Fruits
	// +collection:doc="Fruits is a bowl of fruit."
	// +collection:derive=Equal, Clone, String

A bare `// +collection` line marks the item without giving any attribute; the
planner then reports the missing name.

# Attributes

  - name: identifier of the generated collection type (required)
  - doc: documentation of the generated type (optional)
  - derive: capability list (optional, may repeat)

Values are bare words or double-quoted Go strings. Lists are separated by
commas or semicolons and may be wrapped in braces: `{Equal;Clone}`.
*/
package marker
