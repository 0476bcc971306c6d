// Package model defines the typed field model consumed by renderers and widget
// resolution. The phone form type exports its fields through these types so a
// phone input can be embedded in any generated form: a single text
// field carries `format: phone`, while the country choice widget becomes an
// object field with a `country` select and a `number` text child. The curated
// `UIHints` map surfaces renderer-facing directives (`widget`, `inputType`,
// `placeholder`, `helpText`) so renderers never parse raw options.
package model
