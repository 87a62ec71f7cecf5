// Package tools defines the tool catalog and renders API responses as
// markdown suitable for a chat client.
package tools

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/nicholaswilde/rescue-groups-mcp/internal/errors"
	"github.com/nicholaswilde/rescue-groups-mcp/internal/rescue/client"
)

// MaxListResults caps how many records a list formatter renders.
const MaxListResults = 5

func strOr(item gjson.Result, path, fallback string) string {
	if v := item.Get(path); v.Exists() && v.String() != "" {
		return v.String()
	}
	return fallback
}

func animalImage(attrs gjson.Result, name string) string {
	pics := attrs.Get("orgsAnimalsPictures")
	if !pics.IsArray() {
		return ""
	}
	arr := pics.Array()
	if len(arr) == 0 {
		return ""
	}
	u := arr[0].Get("urlSecureFullsize").String()
	if u == "" {
		return ""
	}
	return fmt.Sprintf("![%s](%s)", name, u)
}

// FormatSingleAnimal renders one animal record as a markdown profile.
func FormatSingleAnimal(animal gjson.Result) string {
	attrs := animal.Get("attributes")
	name := strOr(attrs, "name", "Unknown")
	breed := strOr(attrs, "breedString", "Mix")
	description := strOr(attrs, "descriptionText", "No description available.")
	sex := strOr(attrs, "sex", "Unknown")
	age := strOr(attrs, "ageGroup", "Unknown")
	size := strOr(attrs, "sizeGroup", "Unknown")
	url := attrs.Get("url").String()
	img := animalImage(attrs, name)

	return fmt.Sprintf(
		"# %s\n**Breed:** %s\n**Sex:** %s\n**Age:** %s\n**Size:** %s\n\n%s\n\n%s\n\n[View on RescueGroups](%s)",
		name, breed, sex, age, size, img, description, url,
	)
}

// FormatContactInfo renders the adopting organization's contact details
// from a response fetched with include=orgs.
func FormatContactInfo(raw json.RawMessage) (string, error) {
	root := gjson.ParseBytes(raw)
	item := client.ExtractSingleItem(root.Get("data"))
	if item == "" {
		return "", errors.NotFound("animal")
	}
	animal := gjson.Parse(item)
	animalAttrs := animal.Get("attributes")
	animalName := strOr(animalAttrs, "name", "this pet")

	var b strings.Builder
	fmt.Fprintf(&b, "## Contact Information for %s\n\n", animalName)

	var org gjson.Result
	root.Get("included").ForEach(func(_, inc gjson.Result) bool {
		if inc.Get("type").String() == "orgs" {
			org = inc
			return false
		}
		return true
	})

	if org.Exists() {
		attrs := org.Get("attributes")
		fmt.Fprintf(&b, "**Organization:** %s\n", strOr(attrs, "name", "Unknown Organization"))
		fmt.Fprintf(&b, "**Email:** %s\n", strOr(attrs, "email", "No email provided"))
		fmt.Fprintf(&b, "**Phone:** %s\n", strOr(attrs, "phone", "No phone provided"))
		fmt.Fprintf(&b, "**Location:** %s, %s\n", strOr(attrs, "city", "Unknown City"), attrs.Get("state").String())
		if url := attrs.Get("url").String(); url != "" {
			fmt.Fprintf(&b, "**Website:** [%s](%s)\n", url, url)
		}
	} else {
		b.WriteString("Detailed organization contact information is not available for this animal.\n")
	}

	if url := animalAttrs.Get("url").String(); url != "" {
		fmt.Fprintf(&b, "\n[View adoption application or more info on RescueGroups](%s)", url)
	}

	return b.String(), nil
}

// FormatAnimalResults renders a search result list, capped at MaxListResults.
func FormatAnimalResults(raw json.RawMessage) (string, error) {
	data := gjson.GetBytes(raw, "data")
	if !data.IsArray() {
		return "", errors.NotFound("animals")
	}
	animals := data.Array()
	if len(animals) == 0 {
		return "No adoptable animals found.", nil
	}
	if len(animals) > MaxListResults {
		animals = animals[:MaxListResults]
	}

	results := make([]string, 0, len(animals))
	for _, animal := range animals {
		attrs := animal.Get("attributes")
		name := strOr(attrs, "name", "Unknown")
		breed := strOr(attrs, "breedString", "Mix")
		url := attrs.Get("url").String()
		img := animalImage(attrs, name)
		results = append(results, fmt.Sprintf("### [%s](%s)\n**Breed:** %s\n\n%s", name, url, breed, img))
	}

	return strings.Join(results, "\n\n---\n\n"), nil
}

var comparisonRows = []struct {
	header string
	path   string
}{
	{"Breed", "breedString"},
	{"Age", "ageGroup"},
	{"Sex", "sex"},
	{"Size", "sizeGroup"},
	{"Kids?", "isGoodWithChildren"},
	{"Dogs?", "isGoodWithDogs"},
	{"Cats?", "isGoodWithCats"},
	{"Trained?", "isHouseTrained"},
	{"Special?", "isSpecialNeeds"},
}

// FormatComparisonTable renders the compare result as a markdown table
// with one column per animal.
func FormatComparisonTable(raw json.RawMessage) (string, error) {
	data := gjson.GetBytes(raw, "data")
	if !data.IsArray() {
		return "", errors.NotFound("animals")
	}
	animals := data.Array()
	if len(animals) == 0 {
		return "No animals to compare.", nil
	}

	var b strings.Builder

	b.WriteString("| Feature |")
	for _, animal := range animals {
		name := strOr(animal.Get("attributes"), "name", "Unknown")
		url := animal.Get("attributes.url").String()
		fmt.Fprintf(&b, " [%s](%s) |", name, url)
	}
	b.WriteByte('\n')

	b.WriteString("| :--- |")
	for range animals {
		b.WriteString(" :--- |")
	}
	b.WriteByte('\n')

	for _, row := range comparisonRows {
		fmt.Fprintf(&b, "| **%s** |", row.header)
		for _, animal := range animals {
			fmt.Fprintf(&b, " %s |", strOr(animal.Get("attributes"), row.path, "-"))
		}
		b.WriteByte('\n')
	}

	return b.String(), nil
}

// FormatSingleOrg renders one organization record.
func FormatSingleOrg(org gjson.Result) string {
	attrs := org.Get("attributes")
	return fmt.Sprintf(
		"# %s\n\n%s\n\n**Address:** %s %s %s %s\n**Phone:** %s\n**Email:** %s\n**Website:** %s\n**Facebook:** %s",
		strOr(attrs, "name", "Unknown"),
		strOr(attrs, "about", "No description available."),
		attrs.Get("street").String(),
		strOr(attrs, "city", "Unknown City"),
		attrs.Get("state").String(),
		attrs.Get("postalcode").String(),
		strOr(attrs, "phone", "No phone provided"),
		strOr(attrs, "email", "No email provided"),
		attrs.Get("url").String(),
		attrs.Get("facebookUrl").String(),
	)
}

func FormatBreedDetails(breed gjson.Result) string {
	return fmt.Sprintf("# Breed: %s", strOr(breed.Get("attributes"), "name", "Unknown"))
}

// FormatSpeciesResults renders the species list as a sorted markdown list.
func FormatSpeciesResults(raw json.RawMessage) (string, error) {
	data := gjson.GetBytes(raw, "data")
	if !data.IsArray() {
		return "", errors.NotFound("species")
	}
	items := data.Array()
	if len(items) == 0 {
		return "No species found.", nil
	}

	var names []string
	for _, s := range items {
		if name := s.Get("attributes.singular").String(); name != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	return "### Supported Species\n\n" + strings.Join(names, "\n"), nil
}

// FormatMetadataResults renders a metadata collection (colors, patterns...)
// as a sorted markdown list.
func FormatMetadataResults(raw json.RawMessage, metadataType string) (string, error) {
	data := gjson.GetBytes(raw, "data")
	if !data.IsArray() {
		return "", errors.NotFound(metadataType)
	}
	items := data.Array()
	if len(items) == 0 {
		return fmt.Sprintf("No %s found.", metadataType), nil
	}

	var names []string
	for _, i := range items {
		if name := i.Get("attributes.name").String(); name != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	return fmt.Sprintf("### Supported %s\n\n%s", metadataType, strings.Join(names, "\n")), nil
}

// FormatOrgResults renders an organization search result list.
func FormatOrgResults(raw json.RawMessage) (string, error) {
	data := gjson.GetBytes(raw, "data")
	if !data.IsArray() {
		return "", errors.NotFound("organizations")
	}
	orgs := data.Array()
	if len(orgs) == 0 {
		return "No organizations found.", nil
	}
	if len(orgs) > MaxListResults {
		orgs = orgs[:MaxListResults]
	}

	results := make([]string, 0, len(orgs))
	for _, org := range orgs {
		attrs := org.Get("attributes")
		results = append(results, fmt.Sprintf(
			"### %s\n**ID:** %s\n**Location:** %s, %s\n**Email:** %s\n**Website:** %s",
			strOr(attrs, "name", "Unknown"),
			strOr(org, "id", "Unknown ID"),
			strOr(attrs, "city", "Unknown City"),
			attrs.Get("state").String(),
			strOr(attrs, "email", "No email provided"),
			attrs.Get("url").String(),
		))
	}

	return strings.Join(results, "\n\n---\n\n"), nil
}

// FormatBreedResults renders the breed list for a species.
func FormatBreedResults(raw json.RawMessage, species string) (string, error) {
	data := gjson.GetBytes(raw, "data")
	if !data.IsArray() {
		return "", errors.NotFound("breeds")
	}
	breeds := data.Array()
	if len(breeds) == 0 {
		return fmt.Sprintf("No breeds found for species '%s'.", species), nil
	}

	var names []string
	for _, b := range breeds {
		if name := b.Get("attributes.name").String(); name != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	return fmt.Sprintf("### Breeds for %s\n\n%s", species, strings.Join(names, "\n")), nil
}
