package form

import (
	"html"
	"sort"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"github.com/goliatone/go-phoneform/pkg/phonenumber"
)

// CountryChoice is one entry of the country select.
type CountryChoice struct {
	Region      string `json:"value"`
	Label       string `json:"label"`
	Name        string `json:"name"`
	CallingCode int    `json:"callingCode"`
}

// CountryChoices lists the selectable countries for the given region filter.
// Regions without a calling code are skipped; an empty filter (or one that
// leaves nothing) offers every supported region. Regions without a localized
// name are dropped. Choices are ordered by name using the locale's collation.
func CountryChoices(util phonenumber.Util, regions []string, locale string, formatter LabelFormatter) []CountryChoice {
	if util == nil {
		util = phonenumber.Default()
	}
	if formatter == nil {
		formatter = DefaultLabelFormatter
	}

	codes := make(map[string]int)
	for _, region := range regions {
		region = strings.ToUpper(strings.TrimSpace(region))
		if code := util.CountryCodeForRegion(region); code != 0 {
			codes[region] = code
		}
	}
	if len(codes) == 0 {
		for _, region := range util.SupportedRegions() {
			codes[region] = util.CountryCodeForRegion(region)
		}
	}

	tag := displayTag(locale)
	namer := display.Regions(tag)

	choices := make([]CountryChoice, 0, len(codes))
	for region, code := range codes {
		name := RegionName(namer, region)
		if name == "" {
			continue
		}
		choices = append(choices, CountryChoice{
			Region:      region,
			Name:        name,
			CallingCode: code,
			Label:       sanitizeLabel(formatter(name, code)),
		})
	}

	collator := collate.New(tag, collate.IgnoreCase)
	sort.SliceStable(choices, func(i, j int) bool {
		if c := collator.CompareString(choices[i].Name, choices[j].Name); c != 0 {
			return c < 0
		}
		return choices[i].Region < choices[j].Region
	})
	return choices
}

// RegionName returns the localized name of a region code, or "" when unknown.
func RegionName(namer display.Namer, region string) string {
	parsed, err := language.ParseRegion(region)
	if err != nil || !parsed.IsCountry() {
		return ""
	}
	return namer.Name(parsed)
}

// displayTag maps "fr_FR" style locales to a language tag, defaulting to
// English.
func displayTag(locale string) language.Tag {
	locale = strings.ReplaceAll(strings.TrimSpace(locale), "_", "-")
	if locale == "" {
		return language.English
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return language.English
	}
	return tag
}

func regionsOf(choices []CountryChoice) []string {
	out := make([]string, len(choices))
	for i, choice := range choices {
		out[i] = choice.Region
	}
	return out
}

var (
	labelPolicyOnce sync.Once
	labelPolicy     *bluemonday.Policy
)

// sanitizeLabel strips markup a custom formatter may introduce. Labels are
// plain text; renderers escape them.
func sanitizeLabel(raw string) string {
	labelPolicyOnce.Do(func() {
		labelPolicy = bluemonday.StrictPolicy()
	})
	return strings.TrimSpace(html.UnescapeString(labelPolicy.Sanitize(raw)))
}
