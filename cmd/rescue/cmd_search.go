package rescue

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/nicholaswilde/rescue-groups-mcp/internal/rescue/client"
	"github.com/nicholaswilde/rescue-groups-mcp/internal/rescue/tools"
)

func init() {
	rootCmd.AddCommand(searchCmd)
	f := searchCmd.Flags()
	f.StringVar(&searchPostalCode, "postal-code", "", "zip code to search around")
	f.IntVar(&searchMiles, "miles", 0, "search radius in miles")
	f.StringVar(&searchSpecies, "species", "", "type of animal (dogs, cats, rabbits)")
	f.StringVar(&searchBreeds, "breeds", "", "breed name (partial match)")
	f.StringVar(&searchSex, "sex", "", "Male or Female")
	f.StringVar(&searchAge, "age", "", "age group (Baby, Young, Adult, Senior)")
	f.StringVar(&searchSize, "size", "", "size group (Small, Medium, Large, X-Large)")
	f.BoolVar(&searchGoodWithChildren, "good-with-children", false, "only pets good with children")
	f.BoolVar(&searchGoodWithDogs, "good-with-dogs", false, "only pets good with other dogs")
	f.BoolVar(&searchGoodWithCats, "good-with-cats", false, "only pets good with cats")
	f.BoolVar(&searchHouseTrained, "house-trained", false, "only house trained pets")
	f.BoolVar(&searchSpecialNeeds, "special-needs", false, "only special needs pets")
	f.BoolVar(&searchNeedsFoster, "needs-foster", false, "only pets needing a foster home")
	f.StringVar(&searchColor, "color", "", "color (partial match)")
	f.StringVar(&searchPattern, "pattern", "", "pattern (partial match)")
	f.StringVar(&searchSortBy, "sort-by", "", "sort order (Newest, Distance, Random)")

	rootCmd.AddCommand(randomPetCmd)
	randomPetCmd.Flags().StringVar(&randomSpecies, "species", "", "type of animal (dogs, cats)")

	rootCmd.AddCommand(listAdoptedCmd)
	listAdoptedCmd.Flags().StringVar(&adoptedPostalCode, "postal-code", "", "zip code to search around")
	listAdoptedCmd.Flags().IntVar(&adoptedMiles, "miles", 0, "search radius in miles")
	listAdoptedCmd.Flags().StringVar(&adoptedSpecies, "species", "", "type of animal")
}

var (
	searchPostalCode       string
	searchMiles            int
	searchSpecies          string
	searchBreeds           string
	searchSex              string
	searchAge              string
	searchSize             string
	searchGoodWithChildren bool
	searchGoodWithDogs     bool
	searchGoodWithCats     bool
	searchHouseTrained     bool
	searchSpecialNeeds     bool
	searchNeedsFoster      bool
	searchColor            string
	searchPattern          string
	searchSortBy           string

	randomSpecies string

	adoptedPostalCode string
	adoptedMiles      int
	adoptedSpecies    string
)

// flag values only count when the user actually set them, so that the
// configured defaults keep working.
func strFlag(cmd *cobra.Command, name string, v *string) *string {
	if cmd.Flags().Changed(name) {
		return v
	}
	return nil
}

func intFlag(cmd *cobra.Command, name string, v *int) *int {
	if cmd.Flags().Changed(name) {
		return v
	}
	return nil
}

func boolFlag(cmd *cobra.Command, name string, v *bool) *bool {
	if cmd.Flags().Changed(name) {
		return v
	}
	return nil
}

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search for adoptable pets",
	Run: func(cmd *cobra.Command, args []string) {
		app, err := newApp()
		if err != nil {
			log.Err(err).Msg("failed to initialize")
			return
		}

		searchArgs := client.SearchArgs{
			PostalCode:       strFlag(cmd, "postal-code", &searchPostalCode),
			Miles:            intFlag(cmd, "miles", &searchMiles),
			Species:          strFlag(cmd, "species", &searchSpecies),
			Breeds:           strFlag(cmd, "breeds", &searchBreeds),
			Sex:              strFlag(cmd, "sex", &searchSex),
			Age:              strFlag(cmd, "age", &searchAge),
			Size:             strFlag(cmd, "size", &searchSize),
			GoodWithChildren: boolFlag(cmd, "good-with-children", &searchGoodWithChildren),
			GoodWithDogs:     boolFlag(cmd, "good-with-dogs", &searchGoodWithDogs),
			GoodWithCats:     boolFlag(cmd, "good-with-cats", &searchGoodWithCats),
			HouseTrained:     boolFlag(cmd, "house-trained", &searchHouseTrained),
			SpecialNeeds:     boolFlag(cmd, "special-needs", &searchSpecialNeeds),
			NeedsFoster:      boolFlag(cmd, "needs-foster", &searchNeedsFoster),
			Color:            strFlag(cmd, "color", &searchColor),
			Pattern:          strFlag(cmd, "pattern", &searchPattern),
			SortBy:           strFlag(cmd, "sort-by", &searchSortBy),
		}

		raw, err := app.client.SearchPets(context.Background(), searchArgs)
		printOutput(raw, err, tools.FormatAnimalResults)
	},
}

var randomPetCmd = &cobra.Command{
	Use:   "random-pet",
	Short: "Get a random adoptable pet",
	Run: func(cmd *cobra.Command, args []string) {
		app, err := newApp()
		if err != nil {
			log.Err(err).Msg("failed to initialize")
			return
		}

		raw, err := app.client.GetRandomPet(context.Background(), strFlag(cmd, "species", &randomSpecies))
		printOutput(raw, err, tools.FormatAnimalResults)
	},
}

var listAdoptedCmd = &cobra.Command{
	Use:   "list-adopted",
	Short: "List recently adopted animals (Success Stories)",
	Run: func(cmd *cobra.Command, args []string) {
		app, err := newApp()
		if err != nil {
			log.Err(err).Msg("failed to initialize")
			return
		}

		adoptedArgs := client.AdoptedArgs{
			PostalCode: strFlag(cmd, "postal-code", &adoptedPostalCode),
			Miles:      intFlag(cmd, "miles", &adoptedMiles),
			Species:    strFlag(cmd, "species", &adoptedSpecies),
		}

		raw, err := app.client.FetchAdoptedPets(context.Background(), adoptedArgs)
		printOutput(raw, err, tools.FormatAnimalResults)
	},
}
