// Package countries serves the phone country list as JSON options for form
// inputs. Each option carries the region code as value and a localized
// "Name (+code)" label.
//
// The default handler responds to GET and HEAD requests and supports query,
// limit and locale parameters. Without a locale parameter the Accept-Language
// header selects the label language.
package countries
