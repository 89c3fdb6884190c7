/*
Package markup is the default markup parser behind the preview pipeline.

It reads XAML-style fragments with a strict XML tokenizer and resolves every
element against a registered vocabulary. Values whose root type is a control
are returned as *Control (a ports.Visual); other known types come back as
*Object. Malformed or unresolvable input is reported as an error carrying the
line number; the parser performs no semantic validation of attribute values.
*/
package markup
